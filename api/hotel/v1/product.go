package hotelv1

import (
	"context"
	"time"

	"github.com/fekuna/termas-hotel-service/pkg/rpc"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

const ProductServiceName = "termas.hotel.v1.ProductService"

type Product struct {
	Id           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Sku          string    `json:"sku"`
	Brand        string    `json:"brand,omitempty"`
	Category     string    `json:"category,omitempty"`
	Type         string    `json:"type"`
	Unit         string    `json:"unit"`
	CostPrice    string    `json:"cost_price"`
	SalePrice    string    `json:"sale_price"`
	Vat          string    `json:"vat"`
	FinalPrice   string    `json:"final_price"`
	IsPosEnabled bool      `json:"is_pos_enabled"`
	ImageUrl     string    `json:"image_url,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ProductInput struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Sku          string `json:"sku"`
	Brand        string `json:"brand"`
	Category     string `json:"category"`
	Type         string `json:"type"`
	Unit         string `json:"unit"`
	CostPrice    string `json:"cost_price"`
	SalePrice    string `json:"sale_price"`
	Vat          string `json:"vat"`
	IsPosEnabled bool   `json:"is_pos_enabled"`
	ImageUrl     string `json:"image_url"`
	IsActive     *bool  `json:"is_active"`
}

type CreateProductRequest struct {
	Product *ProductInput `json:"product"`
}

type GetProductRequest struct {
	Id string `json:"id"`
}

type ListProductsRequest struct {
	Search       string `json:"search"`
	Category     string `json:"category"`
	Type         string `json:"type"`
	IsActive     *bool  `json:"is_active"`
	IsPosEnabled *bool  `json:"is_pos_enabled"`
	SortBy       string `json:"sort_by"`
	SortOrder    string `json:"sort_order"`
	Page         int32  `json:"page"`
	PageSize     int32  `json:"page_size"`
}

type ListProductsResponse struct {
	Products []*Product `json:"products"`
	Total    int32      `json:"total"`
}

type UpdateProductRequest struct {
	Id      string        `json:"id"`
	Product *ProductInput `json:"product"`
}

type DeleteProductRequest struct {
	Id string `json:"id"`
}

type GenerateSKURequest struct {
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Category string `json:"category"`
}

type GenerateSKUResponse struct {
	Sku string `json:"sku"`
}

type ProductResponse struct {
	Product *Product `json:"product"`
}

type ProductServiceServer interface {
	CreateProduct(context.Context, *CreateProductRequest) (*ProductResponse, error)
	GetProduct(context.Context, *GetProductRequest) (*ProductResponse, error)
	ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error)
	UpdateProduct(context.Context, *UpdateProductRequest) (*ProductResponse, error)
	DeleteProduct(context.Context, *DeleteProductRequest) (*emptypb.Empty, error)
	GenerateSKU(context.Context, *GenerateSKURequest) (*GenerateSKUResponse, error)
}

var ProductService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ProductServiceName,
	HandlerType: (*ProductServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(ProductServiceName, "CreateProduct", ProductServiceServer.CreateProduct),
		rpc.Unary(ProductServiceName, "GetProduct", ProductServiceServer.GetProduct),
		rpc.Unary(ProductServiceName, "ListProducts", ProductServiceServer.ListProducts),
		rpc.Unary(ProductServiceName, "UpdateProduct", ProductServiceServer.UpdateProduct),
		rpc.Unary(ProductServiceName, "DeleteProduct", ProductServiceServer.DeleteProduct),
		rpc.Unary(ProductServiceName, "GenerateSKU", ProductServiceServer.GenerateSKU),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterProductServiceServer(s grpc.ServiceRegistrar, srv ProductServiceServer) {
	s.RegisterService(&ProductService_ServiceDesc, srv)
}
