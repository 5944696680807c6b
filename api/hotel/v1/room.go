package hotelv1

import (
	"context"
	"time"

	"github.com/fekuna/termas-hotel-service/pkg/rpc"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

const RoomServiceName = "termas.hotel.v1.RoomService"

type Room struct {
	Id            string    `json:"id"`
	Number        string    `json:"number"`
	Type          string    `json:"type"`
	Capacity      int32     `json:"capacity"`
	Floor         int32     `json:"floor"`
	Amenities     string    `json:"amenities,omitempty"`
	PricePerNight string    `json:"price_per_night"`
	Status        string    `json:"status"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreateRoomRequest struct {
	Number        string `json:"number"`
	Type          string `json:"type"`
	Capacity      int32  `json:"capacity"`
	Floor         int32  `json:"floor"`
	Amenities     string `json:"amenities"`
	PricePerNight string `json:"price_per_night"`
}

type GetRoomRequest struct {
	Id string `json:"id"`
}

type ListRoomsRequest struct {
	Search      string `json:"search"`
	Type        string `json:"type"`
	Floor       int32  `json:"floor"`
	MinCapacity int32  `json:"min_capacity"`
	Status      string `json:"status"`
	IsActive    *bool  `json:"is_active"`
	Page        int32  `json:"page"`
	PageSize    int32  `json:"page_size"`
}

type ListRoomsResponse struct {
	Rooms []*Room `json:"rooms"`
	Total int32   `json:"total"`
}

type UpdateRoomRequest struct {
	Id            string `json:"id"`
	Number        string `json:"number"`
	Type          string `json:"type"`
	Capacity      int32  `json:"capacity"`
	Floor         int32  `json:"floor"`
	Amenities     string `json:"amenities"`
	PricePerNight string `json:"price_per_night"`
	IsActive      bool   `json:"is_active"`
}

type UpdateRoomStatusRequest struct {
	Id     string `json:"id"`
	Status string `json:"status"`
}

type DeleteRoomRequest struct {
	Id string `json:"id"`
}

type RoomResponse struct {
	Room *Room `json:"room"`
}

type RoomServiceServer interface {
	CreateRoom(context.Context, *CreateRoomRequest) (*RoomResponse, error)
	GetRoom(context.Context, *GetRoomRequest) (*RoomResponse, error)
	ListRooms(context.Context, *ListRoomsRequest) (*ListRoomsResponse, error)
	UpdateRoom(context.Context, *UpdateRoomRequest) (*RoomResponse, error)
	UpdateRoomStatus(context.Context, *UpdateRoomStatusRequest) (*RoomResponse, error)
	DeleteRoom(context.Context, *DeleteRoomRequest) (*emptypb.Empty, error)
}

var RoomService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: RoomServiceName,
	HandlerType: (*RoomServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(RoomServiceName, "CreateRoom", RoomServiceServer.CreateRoom),
		rpc.Unary(RoomServiceName, "GetRoom", RoomServiceServer.GetRoom),
		rpc.Unary(RoomServiceName, "ListRooms", RoomServiceServer.ListRooms),
		rpc.Unary(RoomServiceName, "UpdateRoom", RoomServiceServer.UpdateRoom),
		rpc.Unary(RoomServiceName, "UpdateRoomStatus", RoomServiceServer.UpdateRoomStatus),
		rpc.Unary(RoomServiceName, "DeleteRoom", RoomServiceServer.DeleteRoom),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterRoomServiceServer(s grpc.ServiceRegistrar, srv RoomServiceServer) {
	s.RegisterService(&RoomService_ServiceDesc, srv)
}
