package handler

import (
	"context"
	"net"
	"testing"

	hotelv1 "github.com/fekuna/termas-hotel-service/api/hotel/v1"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/room/dto"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"github.com/fekuna/termas-hotel-service/pkg/rpc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type stubUseCase struct {
	created *dto.CreateRoomInput
}

func (s *stubUseCase) CreateRoom(_ context.Context, in *dto.CreateRoomInput) (*model.Room, error) {
	s.created = in
	return &model.Room{BaseModel: model.BaseModel{ID: "r-1"}, Number: in.Number, PricePerNight: in.PricePerNight, Status: model.RoomAvailable}, nil
}

func (s *stubUseCase) GetRoom(_ context.Context, id string) (*model.Room, error) {
	return nil, model.ErrNotFound
}

func (s *stubUseCase) ListRooms(context.Context, *dto.RoomFilters) ([]model.Room, int, error) {
	return []model.Room{{Number: "101"}, {Number: "102"}}, 2, nil
}

func (s *stubUseCase) UpdateRoom(context.Context, *dto.UpdateRoomInput) (*model.Room, error) {
	return nil, nil
}

func (s *stubUseCase) UpdateRoomStatus(context.Context, string, string) (*model.Room, error) {
	return nil, model.ErrInvalidInput
}

func (s *stubUseCase) DeleteRoom(context.Context, string) error { return nil }

func dial(t *testing.T, uc *stubUseCase) grpc.ClientConnInterface {
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	hotelv1.RegisterRoomServiceServer(srv, NewRoomHandler(uc, logger.NewNop()))
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := rpc.Dial("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func method(name string) string {
	return "/" + hotelv1.RoomServiceName + "/" + name
}

func TestCreateRoom_OverGRPC(t *testing.T) {
	uc := &stubUseCase{}
	conn := dial(t, uc)

	resp, err := rpc.Invoke[hotelv1.RoomResponse](context.Background(), conn, method("CreateRoom"), &hotelv1.CreateRoomRequest{
		Number: "101", Type: "doble", Capacity: 2, PricePerNight: "55000",
	})
	require.NoError(t, err)
	assert.Equal(t, "r-1", resp.Room.Id)
	assert.Equal(t, "55000", resp.Room.PricePerNight)
	assert.True(t, uc.created.PricePerNight.Equal(decimal.NewFromInt(55000)))
}

func TestCreateRoom_BadPrice(t *testing.T) {
	conn := dial(t, &stubUseCase{})

	_, err := rpc.Invoke[hotelv1.RoomResponse](context.Background(), conn, method("CreateRoom"), &hotelv1.CreateRoomRequest{
		Number: "101", PricePerNight: "abc",
	})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestErrorMapping(t *testing.T) {
	conn := dial(t, &stubUseCase{})

	_, err := rpc.Invoke[hotelv1.RoomResponse](context.Background(), conn, method("GetRoom"), &hotelv1.GetRoomRequest{Id: "x"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = rpc.Invoke[hotelv1.RoomResponse](context.Background(), conn, method("UpdateRoomStatus"), &hotelv1.UpdateRoomStatusRequest{Id: "x", Status: "?"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestListRooms(t *testing.T) {
	conn := dial(t, &stubUseCase{})

	resp, err := rpc.Invoke[hotelv1.ListRoomsResponse](context.Background(), conn, method("ListRooms"), &hotelv1.ListRoomsRequest{PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int32(2), resp.Total)
	require.Len(t, resp.Rooms, 2)
	assert.Equal(t, "102", resp.Rooms[1].Number)
}
