package hotelv1

import (
	"context"
	"time"

	"github.com/fekuna/termas-hotel-service/pkg/rpc"
	"google.golang.org/grpc"
)

const InventoryServiceName = "termas.hotel.v1.InventoryService"

type Movement struct {
	Id              string    `json:"id"`
	ProductId       string    `json:"product_id"`
	FromWarehouseId string    `json:"from_warehouse_id,omitempty"`
	ToWarehouseId   string    `json:"to_warehouse_id,omitempty"`
	MovementType    string    `json:"movement_type"`
	Quantity        string    `json:"quantity"`
	Reason          string    `json:"reason,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	BatchId         string    `json:"batch_id,omitempty"`
	ReferenceType   string    `json:"reference_type,omitempty"`
	ReferenceId     string    `json:"reference_id,omitempty"`
	UserId          string    `json:"user_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type CreateMovementRequest struct {
	ProductId       string `json:"product_id"`
	FromWarehouseId string `json:"from_warehouse_id"`
	ToWarehouseId   string `json:"to_warehouse_id"`
	MovementType    string `json:"movement_type"`
	Quantity        string `json:"quantity"`
	Reason          string `json:"reason"`
	Notes           string `json:"notes"`
}

type MovementResponse struct {
	Movement *Movement `json:"movement"`
}

type TransferLine struct {
	ProductId   string `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    string `json:"quantity"`
}

type TransferProductsRequest struct {
	FromWarehouseId string          `json:"from_warehouse_id"`
	ToWarehouseId   string          `json:"to_warehouse_id"`
	Reason          string          `json:"reason"`
	Notes           string          `json:"notes"`
	Products        []*TransferLine `json:"products"`
}

type TransferProductsResponse struct {
	BatchId   string      `json:"batch_id"`
	Movements []*Movement `json:"movements"`
}

type GetMovementRequest struct {
	Id string `json:"id"`
}

type ListMovementsRequest struct {
	ProductId       string `json:"product_id"`
	FromWarehouseId string `json:"from_warehouse_id"`
	ToWarehouseId   string `json:"to_warehouse_id"`
	MovementType    string `json:"movement_type"`
	UserId          string `json:"user_id"`
	DateFrom        string `json:"date_from"`
	DateTo          string `json:"date_to"`
	Page            int32  `json:"page"`
	PageSize        int32  `json:"page_size"`
}

type ListMovementsResponse struct {
	Movements []*Movement `json:"movements"`
	Total     int32       `json:"total"`
}

type GroupedTransfer struct {
	BatchId           string          `json:"batch_id"`
	FromWarehouseId   string          `json:"from_warehouse_id"`
	FromWarehouseName string          `json:"from_warehouse_name"`
	ToWarehouseId     string          `json:"to_warehouse_id"`
	ToWarehouseName   string          `json:"to_warehouse_name"`
	Reason            string          `json:"reason,omitempty"`
	UserId            string          `json:"user_id,omitempty"`
	ProductCount      int32           `json:"product_count"`
	TotalQuantity     string          `json:"total_quantity"`
	CreatedAt         time.Time       `json:"created_at"`
	Lines             []*TransferLine `json:"lines"`
}

type ListGroupedTransfersRequest struct {
	WarehouseId string `json:"warehouse_id"`
	DateFrom    string `json:"date_from"`
	DateTo      string `json:"date_to"`
	Page        int32  `json:"page"`
	PageSize    int32  `json:"page_size"`
}

type ListGroupedTransfersResponse struct {
	Transfers []*GroupedTransfer `json:"transfers"`
	Total     int32              `json:"total"`
}

type GetMovementStatsRequest struct{}

type MovementTypeCount struct {
	MovementType string `json:"movement_type"`
	Count        int32  `json:"count"`
	Quantity     string `json:"quantity"`
}

type ProductMovementTotal struct {
	ProductId   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Movements   int32  `json:"movements"`
	Quantity    string `json:"quantity"`
}

type MovementStatsResponse struct {
	TotalMovements     int32                   `json:"total_movements"`
	TotalQuantity      string                  `json:"total_quantity"`
	Last30DaysQuantity string                  `json:"last_30_days_quantity"`
	ByType             []*MovementTypeCount    `json:"by_type"`
	TopProducts        []*ProductMovementTotal `json:"top_products"`
}

type InventoryServiceServer interface {
	CreateMovement(context.Context, *CreateMovementRequest) (*MovementResponse, error)
	TransferProducts(context.Context, *TransferProductsRequest) (*TransferProductsResponse, error)
	GetMovement(context.Context, *GetMovementRequest) (*MovementResponse, error)
	ListMovements(context.Context, *ListMovementsRequest) (*ListMovementsResponse, error)
	ListGroupedTransfers(context.Context, *ListGroupedTransfersRequest) (*ListGroupedTransfersResponse, error)
	GetMovementStats(context.Context, *GetMovementStatsRequest) (*MovementStatsResponse, error)
}

var InventoryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: InventoryServiceName,
	HandlerType: (*InventoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(InventoryServiceName, "CreateMovement", InventoryServiceServer.CreateMovement),
		rpc.Unary(InventoryServiceName, "TransferProducts", InventoryServiceServer.TransferProducts),
		rpc.Unary(InventoryServiceName, "GetMovement", InventoryServiceServer.GetMovement),
		rpc.Unary(InventoryServiceName, "ListMovements", InventoryServiceServer.ListMovements),
		rpc.Unary(InventoryServiceName, "ListGroupedTransfers", InventoryServiceServer.ListGroupedTransfers),
		rpc.Unary(InventoryServiceName, "GetMovementStats", InventoryServiceServer.GetMovementStats),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterInventoryServiceServer(s grpc.ServiceRegistrar, srv InventoryServiceServer) {
	s.RegisterService(&InventoryService_ServiceDesc, srv)
}
