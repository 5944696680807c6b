package room

import (
	"context"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/room/dto"
)

type Repository interface {
	Create(ctx context.Context, room *model.Room) error
	FindByID(ctx context.Context, id string) (*model.Room, error)
	FindByNumber(ctx context.Context, number string) (*model.Room, error)
	FindAll(ctx context.Context, filters *dto.RoomFilters) ([]model.Room, int, error)
	Update(ctx context.Context, room *model.Room) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error

	// CountOpenReservations counts reservations on the room that still hold it.
	CountOpenReservations(ctx context.Context, roomID string) (int, error)
}
