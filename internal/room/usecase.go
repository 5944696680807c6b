package room

import (
	"context"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/room/dto"
)

type UseCase interface {
	CreateRoom(ctx context.Context, input *dto.CreateRoomInput) (*model.Room, error)
	GetRoom(ctx context.Context, id string) (*model.Room, error)
	ListRooms(ctx context.Context, filters *dto.RoomFilters) ([]model.Room, int, error)
	UpdateRoom(ctx context.Context, input *dto.UpdateRoomInput) (*model.Room, error)
	UpdateRoomStatus(ctx context.Context, id, status string) (*model.Room, error)
	DeleteRoom(ctx context.Context, id string) error
}
