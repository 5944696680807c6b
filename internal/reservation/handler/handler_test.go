package handler

import (
	"context"
	"net"
	"testing"
	"time"

	hotelv1 "github.com/fekuna/termas-hotel-service/api/hotel/v1"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/reservation"
	"github.com/fekuna/termas-hotel-service/internal/reservation/dto"
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
	reservation.UseCase
	created *dto.CreateReservationInput
	payment *dto.PaymentInput
}

func (s *stubUseCase) CreateReservation(_ context.Context, in *dto.CreateReservationInput) (*model.Reservation, error) {
	s.created = in
	return &model.Reservation{
		BaseModel:      model.BaseModel{ID: "res-1"},
		CheckIn:        in.CheckIn,
		CheckOut:       in.CheckOut,
		Status:         model.StatusPrereserva,
		TotalAmount:    decimal.NewFromInt(90000),
		DiscountType:   model.AdjustmentFixed,
		DiscountValue:  in.Discount.Value,
		DiscountAmount: in.Discount.Value,
	}, nil
}

func (s *stubUseCase) CheckOut(context.Context, string) (*model.Reservation, error) {
	return nil, model.ErrInvalidTransition
}

func (s *stubUseCase) AddPayment(_ context.Context, id string, in *dto.PaymentInput) (*model.Reservation, *model.ReservationPayment, error) {
	s.payment = in
	r := &model.Reservation{BaseModel: model.BaseModel{ID: id}, PaymentStatus: model.PaymentPartial}
	return r, &model.ReservationPayment{ID: "p-1", ReservationID: id, Amount: in.Amount, PaymentMethod: in.Method}, nil
}

func (s *stubUseCase) OccupancyByDate(_ context.Context, from, to time.Time) ([]model.DailyOccupancy, error) {
	return []model.DailyOccupancy{{Date: from, Reservations: 2}, {Date: to, Reservations: 1}}, nil
}

func dial(t *testing.T, uc *stubUseCase) grpc.ClientConnInterface {
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	hotelv1.RegisterReservationServiceServer(srv, NewReservationHandler(uc, logger.NewNop()))
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
	return "/" + hotelv1.ReservationServiceName + "/" + name
}

func TestCreateReservation_OverGRPC(t *testing.T) {
	uc := &stubUseCase{}
	conn := dial(t, uc)

	resp, err := rpc.Invoke[hotelv1.ReservationResponse](context.Background(), conn, method("CreateReservation"), &hotelv1.CreateReservationRequest{
		ClientId:       "c-1",
		CheckIn:        "2026-03-01",
		CheckOut:       "2026-03-03",
		RoomId:         "room-1",
		Discount:       &hotelv1.Adjustment{Type: "fixed_amount", Value: "10000"},
		InitialPayment: &hotelv1.PaymentInput{Amount: "5000", Method: "cash"},
		Products:       []*hotelv1.ProductLine{{ProductId: "p-1", Quantity: 2, UnitPrice: "3500"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "res-1", resp.Reservation.Id)
	assert.Equal(t, int32(2), resp.Reservation.Nights)
	assert.Equal(t, "10000", resp.Reservation.Discount.Amount)
	assert.Nil(t, resp.Reservation.Surcharge)

	require.NotNil(t, uc.created.InitialPayment)
	assert.Equal(t, "5000", uc.created.InitialPayment.Amount.String())
	require.Len(t, uc.created.Products, 1)
	assert.Equal(t, 2, uc.created.Products[0].Quantity)
}

func TestCreateReservation_BadDate(t *testing.T) {
	conn := dial(t, &stubUseCase{})

	_, err := rpc.Invoke[hotelv1.ReservationResponse](context.Background(), conn, method("CreateReservation"), &hotelv1.CreateReservationRequest{
		CheckIn: "01/03/2026",
	})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestCheckOut_Twice(t *testing.T) {
	conn := dial(t, &stubUseCase{})

	_, err := rpc.Invoke[hotelv1.ReservationResponse](context.Background(), conn, method("CheckOut"), &hotelv1.ReservationActionRequest{Id: "res-1"})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestAddPayment_RequiresPayment(t *testing.T) {
	uc := &stubUseCase{}
	conn := dial(t, uc)

	_, err := rpc.Invoke[hotelv1.AddPaymentResponse](context.Background(), conn, method("AddPayment"), &hotelv1.AddPaymentRequest{ReservationId: "res-1"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	resp, err := rpc.Invoke[hotelv1.AddPaymentResponse](context.Background(), conn, method("AddPayment"), &hotelv1.AddPaymentRequest{
		ReservationId: "res-1",
		Payment:       &hotelv1.PaymentInput{Amount: "25000", Method: "card"},
	})
	require.NoError(t, err)
	assert.Equal(t, "partial", resp.Reservation.PaymentStatus)
	assert.Equal(t, "25000", resp.Payment.Amount)
	assert.Equal(t, "card", uc.payment.Method)
}

func TestOccupancyByDate(t *testing.T) {
	conn := dial(t, &stubUseCase{})

	resp, err := rpc.Invoke[hotelv1.OccupancyResponse](context.Background(), conn, method("OccupancyByDate"), &hotelv1.OccupancyRequest{From: "2026-03-01", To: "2026-03-02"})
	require.NoError(t, err)
	require.Len(t, resp.Days, 2)
	assert.Equal(t, "2026-03-01", resp.Days[0].Date)
	assert.Equal(t, int32(2), resp.Days[0].Reservations)
}
