package handler

import (
	"context"

	hotelv1 "github.com/fekuna/termas-hotel-service/api/hotel/v1"
	"github.com/fekuna/termas-hotel-service/internal/convert"
	"github.com/fekuna/termas-hotel-service/internal/grpcerr"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/room"
	"github.com/fekuna/termas-hotel-service/internal/room/dto"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/emptypb"
)

type RoomHandler struct {
	uc     room.UseCase
	logger logger.ZapLogger
}

func NewRoomHandler(uc room.UseCase, log logger.ZapLogger) *RoomHandler {
	return &RoomHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *RoomHandler) CreateRoom(ctx context.Context, req *hotelv1.CreateRoomRequest) (*hotelv1.RoomResponse, error) {
	price, err := convert.Decimal("price_per_night", req.PricePerNight)
	if err != nil {
		return nil, err
	}

	r, err := h.uc.CreateRoom(ctx, &dto.CreateRoomInput{
		Number:        req.Number,
		Type:          req.Type,
		Capacity:      int(req.Capacity),
		Floor:         int(req.Floor),
		Amenities:     req.Amenities,
		PricePerNight: price,
	})
	if err != nil {
		h.logger.Error("failed to create room", zap.Error(err))
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.RoomResponse{Room: mapRoomToProto(r)}, nil
}

func (h *RoomHandler) GetRoom(ctx context.Context, req *hotelv1.GetRoomRequest) (*hotelv1.RoomResponse, error) {
	r, err := h.uc.GetRoom(ctx, req.Id)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.RoomResponse{Room: mapRoomToProto(r)}, nil
}

func (h *RoomHandler) ListRooms(ctx context.Context, req *hotelv1.ListRoomsRequest) (*hotelv1.ListRoomsResponse, error) {
	rooms, count, err := h.uc.ListRooms(ctx, &dto.RoomFilters{
		SearchQuery: req.Search,
		Type:        req.Type,
		Floor:       int(req.Floor),
		MinCapacity: int(req.MinCapacity),
		Status:      req.Status,
		IsActive:    req.IsActive,
		Page:        int(req.Page),
		PageSize:    int(req.PageSize),
	})
	if err != nil {
		return nil, grpcerr.Status(err)
	}

	out := make([]*hotelv1.Room, len(rooms))
	for i := range rooms {
		out[i] = mapRoomToProto(&rooms[i])
	}
	return &hotelv1.ListRoomsResponse{Rooms: out, Total: int32(count)}, nil
}

func (h *RoomHandler) UpdateRoom(ctx context.Context, req *hotelv1.UpdateRoomRequest) (*hotelv1.RoomResponse, error) {
	price, err := convert.Decimal("price_per_night", req.PricePerNight)
	if err != nil {
		return nil, err
	}

	r, err := h.uc.UpdateRoom(ctx, &dto.UpdateRoomInput{
		ID:            req.Id,
		Number:        req.Number,
		Type:          req.Type,
		Capacity:      int(req.Capacity),
		Floor:         int(req.Floor),
		Amenities:     req.Amenities,
		PricePerNight: price,
		IsActive:      req.IsActive,
	})
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.RoomResponse{Room: mapRoomToProto(r)}, nil
}

func (h *RoomHandler) UpdateRoomStatus(ctx context.Context, req *hotelv1.UpdateRoomStatusRequest) (*hotelv1.RoomResponse, error) {
	r, err := h.uc.UpdateRoomStatus(ctx, req.Id, req.Status)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.RoomResponse{Room: mapRoomToProto(r)}, nil
}

func (h *RoomHandler) DeleteRoom(ctx context.Context, req *hotelv1.DeleteRoomRequest) (*emptypb.Empty, error) {
	if err := h.uc.DeleteRoom(ctx, req.Id); err != nil {
		return nil, grpcerr.Status(err)
	}
	return &emptypb.Empty{}, nil
}

func mapRoomToProto(r *model.Room) *hotelv1.Room {
	if r == nil {
		return nil
	}
	return &hotelv1.Room{
		Id:            r.ID,
		Number:        r.Number,
		Type:          r.Type,
		Capacity:      int32(r.Capacity),
		Floor:         int32(r.Floor),
		Amenities:     convert.Str(r.Amenities),
		PricePerNight: r.PricePerNight.String(),
		Status:        r.Status,
		IsActive:      r.IsActive,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
