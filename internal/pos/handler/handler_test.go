package handler

import (
	"context"
	"net"
	"testing"

	hotelv1 "github.com/fekuna/termas-hotel-service/api/hotel/v1"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/pos"
	"github.com/fekuna/termas-hotel-service/internal/pos/dto"
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
	pos.UseCase
	sale    *dto.SaleInput
	payment *dto.PaymentInput
}

func (s *stubUseCase) CreateSale(_ context.Context, in *dto.SaleInput) (*model.Sale, error) {
	s.sale = in
	paid := decimal.Zero
	for _, p := range in.Payments {
		paid = paid.Add(p.Amount)
	}
	total := decimal.NewFromInt(7000)
	return &model.Sale{
		BaseModel:     model.BaseModel{ID: "sale-1"},
		SaleNumber:    "REC-20260301-0001",
		Total:         total,
		PaidAmount:    paid,
		PaymentStatus: model.PaymentStatusOf(paid, total),
		Status:        model.SaleCompleted,
	}, nil
}

func (s *stubUseCase) AddPaymentToSale(_ context.Context, id string, in *dto.PaymentInput) (*model.Sale, error) {
	s.payment = in
	return &model.Sale{
		BaseModel:     model.BaseModel{ID: id},
		Total:         decimal.NewFromInt(7000),
		PaidAmount:    in.Amount,
		PaymentStatus: model.PaymentPaid,
		Payments: []model.SalePayment{{
			ID:             "pay-1",
			SaleID:         id,
			PaymentMethod:  in.Method,
			Amount:         in.Amount,
			ReceivedAmount: in.ReceivedAmount,
			ChangeAmount:   in.ReceivedAmount.Sub(in.Amount),
		}},
	}, nil
}

func dial(t *testing.T, uc *stubUseCase) grpc.ClientConnInterface {
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	hotelv1.RegisterPOSServiceServer(srv, NewPOSHandler(uc, logger.NewNop()))
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
	return "/" + hotelv1.POSServiceName + "/" + name
}

func TestCreateSale_WithPayments(t *testing.T) {
	uc := &stubUseCase{}
	conn := dial(t, uc)

	resp, err := rpc.Invoke[hotelv1.SaleResponse](context.Background(), conn, method("CreateSale"), &hotelv1.CreateSaleRequest{
		SessionId: "sess-1",
		Items:     []*hotelv1.SaleItemInput{{PosProductId: "pp-1", Quantity: 2}},
		Payments: []*hotelv1.SalePaymentInput{
			{Method: "cash", Amount: "3000", ReceivedAmount: "5000"},
			{Method: "card", Amount: "1000", Reference: "voucher 7"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "sale-1", resp.Sale.Id)
	assert.Equal(t, model.PaymentPartial, resp.Sale.PaymentStatus)
	assert.Equal(t, "3000", resp.Sale.PendingAmount)

	require.Len(t, uc.sale.Payments, 2)
	require.NotNil(t, uc.sale.Payments[0].ReceivedAmount)
	assert.Equal(t, "5000", uc.sale.Payments[0].ReceivedAmount.String())
	assert.Nil(t, uc.sale.Payments[1].ReceivedAmount)
	assert.Equal(t, "voucher 7", uc.sale.Payments[1].Reference)
}

func TestAddPaymentToSale(t *testing.T) {
	uc := &stubUseCase{}
	conn := dial(t, uc)

	_, err := rpc.Invoke[hotelv1.SaleResponse](context.Background(), conn, method("AddPaymentToSale"), &hotelv1.AddSalePaymentRequest{SaleId: "sale-1"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = rpc.Invoke[hotelv1.SaleResponse](context.Background(), conn, method("AddPaymentToSale"), &hotelv1.AddSalePaymentRequest{
		SaleId:  "sale-1",
		Payment: &hotelv1.SalePaymentInput{Method: "cash", Amount: "7000", ReceivedAmount: "abc"},
	})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	resp, err := rpc.Invoke[hotelv1.SaleResponse](context.Background(), conn, method("AddPaymentToSale"), &hotelv1.AddSalePaymentRequest{
		SaleId:  "sale-1",
		Payment: &hotelv1.SalePaymentInput{Method: "cash", Amount: "7000", ReceivedAmount: "10000"},
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPaid, resp.Sale.PaymentStatus)
	require.Len(t, resp.Sale.Payments, 1)
	assert.Equal(t, "3000", resp.Sale.Payments[0].ChangeAmount)
	assert.Equal(t, "10000", resp.Sale.Payments[0].ReceivedAmount)
	assert.Equal(t, "cash", uc.payment.Method)
}
