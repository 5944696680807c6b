package handler

import (
	"context"
	"net"
	"testing"

	hotelv1 "github.com/fekuna/termas-hotel-service/api/hotel/v1"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/product"
	"github.com/fekuna/termas-hotel-service/internal/product/dto"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"github.com/fekuna/termas-hotel-service/pkg/rpc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
)

type stubUseCase struct {
	product.UseCase
	created *dto.ProductInput
}

func (s *stubUseCase) CreateProduct(_ context.Context, in *dto.ProductInput) (*model.Product, error) {
	s.created = in
	return &model.Product{
		BaseModel:  model.BaseModel{ID: "p-1"},
		Name:       in.Name,
		SKU:        "SPA-ACEI-001",
		SalePrice:  in.SalePrice,
		VAT:        model.DefaultVAT,
		FinalPrice: model.FinalPriceOf(in.SalePrice, model.DefaultVAT),
	}, nil
}

func (s *stubUseCase) DeleteProduct(context.Context, string) error {
	return model.ErrConflict
}

func (s *stubUseCase) GenerateSKU(_ context.Context, name, _, _ string) (string, error) {
	return "SPA-" + name, nil
}

func dial(t *testing.T, uc product.UseCase) grpc.ClientConnInterface {
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	hotelv1.RegisterProductServiceServer(srv, NewProductHandler(uc, logger.NewNop()))
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
	return "/" + hotelv1.ProductServiceName + "/" + name
}

func TestCreateProduct_OverGRPC(t *testing.T) {
	uc := &stubUseCase{}
	conn := dial(t, uc)

	resp, err := rpc.Invoke[hotelv1.ProductResponse](context.Background(), conn, method("CreateProduct"), &hotelv1.CreateProductRequest{
		Product: &hotelv1.ProductInput{Name: "Aceite", SalePrice: "10000", Vat: "10"},
	})
	require.NoError(t, err)
	assert.Equal(t, "SPA-ACEI-001", resp.Product.Sku)
	assert.Equal(t, "11900", resp.Product.FinalPrice)
	require.NotNil(t, uc.created.VAT)
	assert.True(t, uc.created.VAT.Equal(decimal.NewFromInt(10)))
}

func TestCreateProduct_InvalidArguments(t *testing.T) {
	conn := dial(t, &stubUseCase{})

	_, err := rpc.Invoke[hotelv1.ProductResponse](context.Background(), conn, method("CreateProduct"), &hotelv1.CreateProductRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = rpc.Invoke[hotelv1.ProductResponse](context.Background(), conn, method("CreateProduct"), &hotelv1.CreateProductRequest{
		Product: &hotelv1.ProductInput{Name: "Aceite", SalePrice: "diez"},
	})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestDeleteProduct_Conflict(t *testing.T) {
	conn := dial(t, &stubUseCase{})

	_, err := rpc.Invoke[emptypb.Empty](context.Background(), conn, method("DeleteProduct"), &hotelv1.DeleteProductRequest{Id: "p-1"})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))
}

func TestGenerateSKU(t *testing.T) {
	conn := dial(t, &stubUseCase{})

	resp, err := rpc.Invoke[hotelv1.GenerateSKUResponse](context.Background(), conn, method("GenerateSKU"), &hotelv1.GenerateSKURequest{Name: "X"})
	require.NoError(t, err)
	assert.Equal(t, "SPA-X", resp.Sku)
}
