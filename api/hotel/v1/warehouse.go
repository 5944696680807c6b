package hotelv1

import (
	"context"
	"time"

	"github.com/fekuna/termas-hotel-service/pkg/rpc"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

const WarehouseServiceName = "termas.hotel.v1.WarehouseService"

type Warehouse struct {
	Id        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	Type      string    `json:"type"`
	ParentId  string    `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type WarehouseInput struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Type     string `json:"type"`
	ParentId string `json:"parent_id"`
}

type WarehouseProduct struct {
	Id          string `json:"id"`
	WarehouseId string `json:"warehouse_id"`
	ProductId   string `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	ProductSku  string `json:"product_sku,omitempty"`
	Quantity    string `json:"quantity"`
	MinStock    string `json:"min_stock"`
	MaxStock    string `json:"max_stock"`
	LowStock    bool   `json:"low_stock"`
}

type CreateWarehouseRequest struct {
	Warehouse *WarehouseInput `json:"warehouse"`
}

type GetWarehouseRequest struct {
	Id string `json:"id"`
}

type ListWarehousesRequest struct {
	Search   string `json:"search"`
	Type     string `json:"type"`
	ParentId string `json:"parent_id"`
	Page     int32  `json:"page"`
	PageSize int32  `json:"page_size"`
}

type ListWarehousesResponse struct {
	Warehouses []*Warehouse `json:"warehouses"`
	Total      int32        `json:"total"`
}

type UpdateWarehouseRequest struct {
	Id        string          `json:"id"`
	Warehouse *WarehouseInput `json:"warehouse"`
}

type DeleteWarehouseRequest struct {
	Id string `json:"id"`
}

type WarehouseResponse struct {
	Warehouse *Warehouse `json:"warehouse"`
}

type AssignProductRequest struct {
	WarehouseId string `json:"warehouse_id"`
	ProductId   string `json:"product_id"`
	Quantity    string `json:"quantity"`
	MinStock    string `json:"min_stock"`
	MaxStock    string `json:"max_stock"`
}

type RemoveProductRequest struct {
	WarehouseId string `json:"warehouse_id"`
	ProductId   string `json:"product_id"`
}

type ListWarehouseProductsRequest struct {
	WarehouseId string `json:"warehouse_id"`
	Search      string `json:"search"`
	// StockFilter is one of all, with_stock, without_stock, low.
	StockFilter string `json:"stock_filter"`
	Page        int32  `json:"page"`
	PageSize    int32  `json:"page_size"`
}

type ListWarehouseProductsResponse struct {
	Products []*WarehouseProduct `json:"products"`
	Total    int32               `json:"total"`
}

type WarehouseProductResponse struct {
	Product *WarehouseProduct `json:"product"`
}

type WarehouseServiceServer interface {
	CreateWarehouse(context.Context, *CreateWarehouseRequest) (*WarehouseResponse, error)
	GetWarehouse(context.Context, *GetWarehouseRequest) (*WarehouseResponse, error)
	ListWarehouses(context.Context, *ListWarehousesRequest) (*ListWarehousesResponse, error)
	UpdateWarehouse(context.Context, *UpdateWarehouseRequest) (*WarehouseResponse, error)
	DeleteWarehouse(context.Context, *DeleteWarehouseRequest) (*emptypb.Empty, error)
	AssignProduct(context.Context, *AssignProductRequest) (*WarehouseProductResponse, error)
	RemoveProduct(context.Context, *RemoveProductRequest) (*emptypb.Empty, error)
	ListWarehouseProducts(context.Context, *ListWarehouseProductsRequest) (*ListWarehouseProductsResponse, error)
}

var WarehouseService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: WarehouseServiceName,
	HandlerType: (*WarehouseServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(WarehouseServiceName, "CreateWarehouse", WarehouseServiceServer.CreateWarehouse),
		rpc.Unary(WarehouseServiceName, "GetWarehouse", WarehouseServiceServer.GetWarehouse),
		rpc.Unary(WarehouseServiceName, "ListWarehouses", WarehouseServiceServer.ListWarehouses),
		rpc.Unary(WarehouseServiceName, "UpdateWarehouse", WarehouseServiceServer.UpdateWarehouse),
		rpc.Unary(WarehouseServiceName, "DeleteWarehouse", WarehouseServiceServer.DeleteWarehouse),
		rpc.Unary(WarehouseServiceName, "AssignProduct", WarehouseServiceServer.AssignProduct),
		rpc.Unary(WarehouseServiceName, "RemoveProduct", WarehouseServiceServer.RemoveProduct),
		rpc.Unary(WarehouseServiceName, "ListWarehouseProducts", WarehouseServiceServer.ListWarehouseProducts),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterWarehouseServiceServer(s grpc.ServiceRegistrar, srv WarehouseServiceServer) {
	s.RegisterService(&WarehouseService_ServiceDesc, srv)
}
