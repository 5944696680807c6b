package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/notification"
	"github.com/fekuna/termas-hotel-service/internal/notification/dto"
	"github.com/fekuna/termas-hotel-service/internal/notification/render"
	pkgmail "github.com/fekuna/termas-hotel-service/pkg/mail"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type notificationUseCase struct {
	repo   notification.Repository
	sender notification.Sender
	engine *render.Engine
	logger logger.ZapLogger
}

func NewNotificationUseCase(repo notification.Repository, sender notification.Sender, engine *render.Engine, log logger.ZapLogger) notification.UseCase {
	return &notificationUseCase{
		repo:   repo,
		sender: sender,
		engine: engine,
		logger: log,
	}
}

func (uc *notificationUseCase) Send(ctx context.Context, templateID, recipient string, data map[string]any, refType, refID string) (*model.SentEmail, error) {
	tmpl, ok := render.Find(templateID)
	if !ok {
		return nil, fmt.Errorf("template %s: %w", templateID, model.ErrNotFound)
	}
	recipient = strings.TrimSpace(recipient)
	if _, err := mail.ParseAddress(recipient); err != nil {
		return nil, fmt.Errorf("%w: invalid recipient %q", model.ErrInvalidInput, recipient)
	}
	if missing := render.Missing(tmpl, data); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing template variables: %s", model.ErrInvalidInput, strings.Join(missing, ", "))
	}

	msg := &pkgmail.Message{
		To:      recipient,
		Subject: uc.engine.Subject(tmpl, data),
		Body:    uc.engine.Render(tmpl.Body, data),
	}
	record := &model.SentEmail{
		ID:         uuid.New().String(),
		TemplateID: tmpl.ID,
		Recipient:  recipient,
		Subject:    msg.Subject,
		Status:     model.EmailSent,
		RefType:    optional(refType),
		RefID:      optional(refID),
		CreatedAt:  time.Now(),
	}

	sendErr := uc.sender.Send(ctx, msg)
	if sendErr != nil {
		record.Status = model.EmailFailed
		text := sendErr.Error()
		record.Error = &text
	}
	if err := uc.repo.Create(ctx, record); err != nil {
		uc.logger.Error("failed to log sent email", zap.String("template", tmpl.ID), zap.Error(err))
	}

	if sendErr != nil {
		uc.logger.Error("email not delivered",
			zap.String("template", tmpl.ID),
			zap.String("recipient", recipient),
			zap.Error(sendErr),
		)
		return record, fmt.Errorf("send %s to %s: %w", tmpl.ID, recipient, sendErr)
	}
	uc.logger.Info("email sent",
		zap.String("template", tmpl.ID),
		zap.String("recipient", recipient),
		zap.String("ref_id", refID),
	)
	return record, nil
}

func (uc *notificationUseCase) ListTemplates(_ context.Context) []render.Template {
	return render.Builtin()
}

func (uc *notificationUseCase) ListSentEmails(ctx context.Context, filters *dto.SentEmailFilters) ([]model.SentEmail, int, error) {
	if filters.Status != "" && filters.Status != model.EmailSent && filters.Status != model.EmailFailed {
		return nil, 0, fmt.Errorf("%w: unknown email status %q", model.ErrInvalidInput, filters.Status)
	}
	if filters.Page <= 0 {
		filters.Page = 1
	}
	return uc.repo.FindAll(ctx, filters)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
