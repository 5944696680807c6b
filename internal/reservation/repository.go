package reservation

import (
	"context"
	"time"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/reservation/dto"
)

type Repository interface {
	// Create stores r with its products, comments and payments in one
	// transaction. It fails with model.ErrConflict when another active
	// reservation holds the room for an overlapping stay.
	Create(ctx context.Context, r *model.Reservation) error
	FindByID(ctx context.Context, id string) (*model.Reservation, error)
	// LoadDetails fills the products, comments and payments of r.
	LoadDetails(ctx context.Context, r *model.Reservation) error
	FindAll(ctx context.Context, filters *dto.ReservationFilters) ([]model.Reservation, int, error)
	// Update rewrites the guest, billing, stay and price fields of r with
	// the same availability check as Create, excluding r itself.
	Update(ctx context.Context, r *model.Reservation) error
	// ChangeStatus moves a reservation from one status to another, stores
	// comment and, when roomStatus is set, updates the room in the same
	// transaction. It fails with model.ErrInvalidTransition when the row
	// is no longer in status from.
	ChangeStatus(ctx context.Context, id, from, to string, comment *model.ReservationComment, roomStatus string) error
	// AddPayment locks the reservation, applies p to its totals and stores p
	// and comment. It returns the updated reservation.
	AddPayment(ctx context.Context, p *model.ReservationPayment, comment *model.ReservationComment) (*model.Reservation, error)
	ListPayments(ctx context.Context, reservationID string) ([]model.ReservationPayment, error)
	AddComment(ctx context.Context, c *model.ReservationComment) error

	Stats(ctx context.Context) (*model.ReservationStats, error)
	Arrivals(ctx context.Context, day time.Time) ([]model.Reservation, error)
	Departures(ctx context.Context, day time.Time) ([]model.Reservation, error)
	Occupancy(ctx context.Context, from, to time.Time) ([]model.DailyOccupancy, error)
}
