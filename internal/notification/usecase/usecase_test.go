package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/notification"
	"github.com/fekuna/termas-hotel-service/internal/notification/dto"
	"github.com/fekuna/termas-hotel-service/internal/notification/render"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"github.com/fekuna/termas-hotel-service/pkg/mail"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	notification.Repository
	created []*model.SentEmail
}

func (f *fakeRepo) Create(_ context.Context, e *model.SentEmail) error {
	f.created = append(f.created, e)
	return nil
}

type fakeSender struct {
	sent []*mail.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg *mail.Message) error {
	f.sent = append(f.sent, msg)
	return f.err
}

func newUseCase() (notification.UseCase, *fakeRepo, *fakeSender) {
	repo := &fakeRepo{}
	sender := &fakeSender{}
	engine := render.NewEngine("Hotel Termas", "+56 9 1111 2222", time.UTC)
	return NewNotificationUseCase(repo, sender, engine, logger.NewNop()), repo, sender
}

func confirmationData() map[string]any {
	return map[string]any{
		"numero_reserva":   "AB12CD34",
		"nombre_cliente":   "Ana Pérez",
		"fecha_checkin":    time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
		"fecha_checkout":   time.Date(2024, 8, 3, 0, 0, 0, 0, time.UTC),
		"total_reserva":    decimal.NewFromInt(180000),
		"numero_huespedes": 2,
	}
}

func TestSend(t *testing.T) {
	uc, repo, sender := newUseCase()

	e, err := uc.Send(context.Background(), model.TemplateReservationConfirmation, " ana@example.com ", confirmationData(), "reservation", "r-1")
	require.NoError(t, err)

	assert.Equal(t, model.EmailSent, e.Status)
	assert.Equal(t, "ana@example.com", e.Recipient)
	assert.Equal(t, "reservation", *e.RefType)
	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "Confirmación de Reserva #AB12CD34 - Hotel Termas", msg.Subject)
	assert.Contains(t, msg.Body, "Check-in: 01-08-2024")
	assert.Contains(t, msg.Body, "Total: $180.000")
	assert.Contains(t, msg.Body, "Habitación: No especificada")
	assert.NotContains(t, msg.Body, "{{")
	require.Len(t, repo.created, 1)
}

func TestSend_FailureIsLogged(t *testing.T) {
	uc, repo, sender := newUseCase()
	sender.err = errors.New("connection refused")

	e, err := uc.Send(context.Background(), model.TemplateReservationConfirmation, "ana@example.com", confirmationData(), "", "")
	require.Error(t, err)
	require.NotNil(t, e)
	assert.Equal(t, model.EmailFailed, e.Status)
	assert.Equal(t, "connection refused", *e.Error)
	assert.Nil(t, e.RefType)
	require.Len(t, repo.created, 1)
	assert.Equal(t, model.EmailFailed, repo.created[0].Status)
}

func TestSend_Validation(t *testing.T) {
	uc, repo, sender := newUseCase()

	_, err := uc.Send(context.Background(), "nope", "ana@example.com", nil, "", "")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = uc.Send(context.Background(), model.TemplateCheckoutThanks, "not-an-email", confirmationData(), "", "")
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = uc.Send(context.Background(), model.TemplatePaymentReceipt, "ana@example.com", confirmationData(), "", "")
	require.ErrorIs(t, err, model.ErrInvalidInput)
	assert.Contains(t, err.Error(), "Monto Pagado")

	assert.Empty(t, sender.sent)
	assert.Empty(t, repo.created)
}

func TestListSentEmails_UnknownStatus(t *testing.T) {
	uc, _, _ := newUseCase()

	_, _, err := uc.ListSentEmails(context.Background(), &dto.SentEmailFilters{Status: "queued"})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestListTemplates(t *testing.T) {
	uc, _, _ := newUseCase()
	assert.Len(t, uc.ListTemplates(context.Background()), 3)
}
