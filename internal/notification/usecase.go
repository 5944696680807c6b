package notification

import (
	"context"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/notification/dto"
	"github.com/fekuna/termas-hotel-service/internal/notification/render"
	"github.com/fekuna/termas-hotel-service/pkg/mail"
)

type UseCase interface {
	// Send renders templateID with data and mails it to recipient. Every
	// attempt is logged in sent_emails, failed ones included.
	Send(ctx context.Context, templateID, recipient string, data map[string]any, refType, refID string) (*model.SentEmail, error)
	ListTemplates(ctx context.Context) []render.Template
	ListSentEmails(ctx context.Context, filters *dto.SentEmailFilters) ([]model.SentEmail, int, error)
}

// Sender is satisfied by mail.SMTPSender.
type Sender interface {
	Send(ctx context.Context, msg *mail.Message) error
}
