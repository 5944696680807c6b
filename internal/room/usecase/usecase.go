package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/room"
	"github.com/fekuna/termas-hotel-service/internal/room/dto"
	"github.com/fekuna/termas-hotel-service/pkg/database/postgres"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type roomUseCase struct {
	repo   room.Repository
	logger logger.ZapLogger
}

func NewRoomUseCase(repo room.Repository, log logger.ZapLogger) room.UseCase {
	return &roomUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *roomUseCase) CreateRoom(ctx context.Context, input *dto.CreateRoomInput) (*model.Room, error) {
	input.Number = strings.TrimSpace(input.Number)
	if err := validateRoom(input.Number, input.Type, input.Capacity); err != nil {
		return nil, err
	}
	if input.PricePerNight.IsNegative() {
		return nil, fmt.Errorf("%w: price per night must not be negative", model.ErrInvalidInput)
	}

	existing, err := uc.repo.FindByNumber(ctx, input.Number)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: room number %s already exists", model.ErrConflict, input.Number)
	}

	now := time.Now()
	r := &model.Room{
		BaseModel:     model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Number:        input.Number,
		Type:          input.Type,
		Capacity:      input.Capacity,
		Floor:         input.Floor,
		Amenities:     optional(input.Amenities),
		PricePerNight: input.PricePerNight,
		Status:        model.RoomAvailable,
		IsActive:      true,
	}

	if err := uc.repo.Create(ctx, r); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: room number %s already exists", model.ErrConflict, input.Number)
		}
		return nil, err
	}

	uc.logger.Info("room created", zap.String("room_id", r.ID), zap.String("number", r.Number))
	return r, nil
}

func (uc *roomUseCase) GetRoom(ctx context.Context, id string) (*model.Room, error) {
	r, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("room %s: %w", id, model.ErrNotFound)
	}
	return r, nil
}

func (uc *roomUseCase) ListRooms(ctx context.Context, filters *dto.RoomFilters) ([]model.Room, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *roomUseCase) UpdateRoom(ctx context.Context, input *dto.UpdateRoomInput) (*model.Room, error) {
	r, err := uc.GetRoom(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	input.Number = strings.TrimSpace(input.Number)
	if err := validateRoom(input.Number, input.Type, input.Capacity); err != nil {
		return nil, err
	}
	if input.PricePerNight.IsNegative() {
		return nil, fmt.Errorf("%w: price per night must not be negative", model.ErrInvalidInput)
	}

	if r.Number != input.Number {
		existing, err := uc.repo.FindByNumber(ctx, input.Number)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != r.ID {
			return nil, fmt.Errorf("%w: room number %s already exists", model.ErrConflict, input.Number)
		}
	}

	r.Number = input.Number
	r.Type = input.Type
	r.Capacity = input.Capacity
	r.Floor = input.Floor
	r.Amenities = optional(input.Amenities)
	r.PricePerNight = input.PricePerNight
	r.IsActive = input.IsActive
	r.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (uc *roomUseCase) UpdateRoomStatus(ctx context.Context, id, status string) (*model.Room, error) {
	if !model.ValidRoomStatus(status) {
		return nil, fmt.Errorf("%w: unknown room status %q", model.ErrInvalidInput, status)
	}
	r, err := uc.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	uc.logger.Info("room status changed",
		zap.String("room_id", id),
		zap.String("from", r.Status),
		zap.String("to", status),
	)
	r.Status = status
	r.UpdatedAt = time.Now()
	return r, nil
}

func (uc *roomUseCase) DeleteRoom(ctx context.Context, id string) error {
	if _, err := uc.GetRoom(ctx, id); err != nil {
		return err
	}
	n, err := uc.repo.CountOpenReservations(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: room has %d active reservations", model.ErrConflict, n)
	}
	return uc.repo.Delete(ctx, id)
}

func validateRoom(number, roomType string, capacity int) error {
	if number == "" {
		return fmt.Errorf("%w: room number is required", model.ErrInvalidInput)
	}
	if strings.TrimSpace(roomType) == "" {
		return fmt.Errorf("%w: room type is required", model.ErrInvalidInput)
	}
	if capacity < 1 {
		return fmt.Errorf("%w: capacity must be at least 1", model.ErrInvalidInput)
	}
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
