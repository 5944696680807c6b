package reservation

import (
	"context"
	"time"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/reservation/dto"
)

type UseCase interface {
	CreateReservation(ctx context.Context, input *dto.CreateReservationInput) (*model.Reservation, error)
	GetReservation(ctx context.Context, id string) (*model.Reservation, error)
	ListReservations(ctx context.Context, filters *dto.ReservationFilters) ([]model.Reservation, int, error)
	UpdateReservation(ctx context.Context, input *dto.UpdateReservationInput) (*model.Reservation, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.Reservation, error)
	Confirm(ctx context.Context, id string) (*model.Reservation, error)
	Cancel(ctx context.Context, id, reason string) (*model.Reservation, error)
	CheckIn(ctx context.Context, id string) (*model.Reservation, error)
	CheckOut(ctx context.Context, id string) (*model.Reservation, error)
	AddPayment(ctx context.Context, id string, input *dto.PaymentInput) (*model.Reservation, *model.ReservationPayment, error)
	ListPayments(ctx context.Context, id string) ([]model.ReservationPayment, error)
	AddComment(ctx context.Context, id, text, commentType string) (*model.ReservationComment, error)

	GetStats(ctx context.Context) (*model.ReservationStats, error)
	TodayArrivals(ctx context.Context, day time.Time) ([]model.Reservation, error)
	TodayDepartures(ctx context.Context, day time.Time) ([]model.Reservation, error)
	OccupancyByDate(ctx context.Context, from, to time.Time) ([]model.DailyOccupancy, error)
}

// Mailer sends one of the built-in email templates.
type Mailer interface {
	Send(ctx context.Context, templateID, recipient string, data map[string]any, refType, refID string) (*model.SentEmail, error)
}
