package hotelv1

import (
	"context"
	"time"

	"github.com/fekuna/termas-hotel-service/pkg/rpc"
	"google.golang.org/grpc"
)

const POSServiceName = "termas.hotel.v1.POSService"

type POSProduct struct {
	Id             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	Sku            string `json:"sku"`
	Price          string `json:"price"`
	Cost           string `json:"cost"`
	CategoryId     string `json:"category_id"`
	RegisterTypeId int32  `json:"register_type_id"`
	ProductId      string `json:"product_id,omitempty"`
	IsActive       bool   `json:"is_active"`
	SortOrder      int32  `json:"sort_order"`
}

type SyncPOSProductsRequest struct{}

type SyncPOSProductsResponse struct {
	Reception  int32    `json:"reception"`
	Restaurant int32    `json:"restaurant"`
	Skipped    int32    `json:"skipped"`
	Errors     []string `json:"errors,omitempty"`
}

type GetSyncStatsRequest struct{}

type SyncStatsResponse struct {
	EnabledProducts int32 `json:"enabled_products"`
	POSProducts     int32 `json:"pos_products"`
	SyncedProducts  int32 `json:"synced_products"`
	PendingSync     int32 `json:"pending_sync"`
}

type ListPOSProductsRequest struct {
	RegisterTypeId int32  `json:"register_type_id"`
	CategoryId     string `json:"category_id"`
	Search         string `json:"search"`
	ActiveOnly     bool   `json:"active_only"`
	Page           int32  `json:"page"`
	PageSize       int32  `json:"page_size"`
}

type ListPOSProductsResponse struct {
	Products []*POSProduct `json:"products"`
	Total    int32         `json:"total"`
}

type SaleItemInput struct {
	PosProductId string `json:"pos_product_id"`
	Quantity     int32  `json:"quantity"`
	Notes        string `json:"notes"`
}

type SalePaymentInput struct {
	Method         string `json:"method"`
	Amount         string `json:"amount"`
	ReceivedAmount string `json:"received_amount"`
	Reference      string `json:"reference"`
}

type CreateSaleRequest struct {
	SessionId      string              `json:"session_id"`
	CustomerName   string              `json:"customer_name"`
	ClientId       string              `json:"client_id"`
	TableNumber    string              `json:"table_number"`
	RoomNumber     string              `json:"room_number"`
	Items          []*SaleItemInput    `json:"items"`
	Payments       []*SalePaymentInput `json:"payments"`
	DiscountAmount string              `json:"discount_amount"`
	DiscountReason string              `json:"discount_reason"`
	TaxAmount      string              `json:"tax_amount"`
	Notes          string              `json:"notes"`
}

type SaleItem struct {
	Id           string `json:"id"`
	PosProductId string `json:"pos_product_id"`
	ProductId    string `json:"product_id,omitempty"`
	ProductName  string `json:"product_name"`
	Quantity     int32  `json:"quantity"`
	UnitPrice    string `json:"unit_price"`
	Total        string `json:"total"`
	Notes        string `json:"notes,omitempty"`
}

type SalePayment struct {
	Id             string    `json:"id"`
	Method         string    `json:"method"`
	Amount         string    `json:"amount"`
	ReceivedAmount string    `json:"received_amount,omitempty"`
	ChangeAmount   string    `json:"change_amount"`
	Reference      string    `json:"reference,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type Sale struct {
	Id             string         `json:"id"`
	SessionId      string         `json:"session_id"`
	RegisterTypeId int32          `json:"register_type_id"`
	SaleNumber     string         `json:"sale_number"`
	CustomerName   string         `json:"customer_name,omitempty"`
	ClientId       string         `json:"client_id,omitempty"`
	TableNumber    string         `json:"table_number,omitempty"`
	RoomNumber     string         `json:"room_number,omitempty"`
	Subtotal       string         `json:"subtotal"`
	TaxAmount      string         `json:"tax_amount"`
	DiscountAmount string         `json:"discount_amount"`
	DiscountReason string         `json:"discount_reason,omitempty"`
	Total          string         `json:"total"`
	PaidAmount     string         `json:"paid_amount"`
	PendingAmount  string         `json:"pending_amount"`
	PaymentStatus  string         `json:"payment_status"`
	Status         string         `json:"status"`
	Notes          string         `json:"notes,omitempty"`
	UserId         string         `json:"user_id,omitempty"`
	Items          []*SaleItem    `json:"items,omitempty"`
	Payments       []*SalePayment `json:"payments,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

type SaleResponse struct {
	Sale *Sale `json:"sale"`
}

type AddSalePaymentRequest struct {
	SaleId  string            `json:"sale_id"`
	Payment *SalePaymentInput `json:"payment"`
}

type GetSaleRequest struct {
	Id string `json:"id"`
}

type ListSalesRequest struct {
	SessionId      string `json:"session_id"`
	RegisterTypeId int32  `json:"register_type_id"`
	PaymentStatus  string `json:"payment_status"`
	DateFrom       string `json:"date_from"`
	DateTo         string `json:"date_to"`
	Page           int32  `json:"page"`
	PageSize       int32  `json:"page_size"`
}

type ListSalesResponse struct {
	Sales []*Sale `json:"sales"`
	Total int32   `json:"total"`
}

type GetPaymentSummaryRequest struct {
	SessionId string `json:"session_id"`
}

type PaymentMethodTotal struct {
	Method string `json:"method"`
	Count  int32  `json:"count"`
	Amount string `json:"amount"`
}

type PaymentSummaryResponse struct {
	Methods []*PaymentMethodTotal `json:"methods"`
	Total   string                `json:"total"`
}

type POSServiceServer interface {
	SyncPOSProducts(context.Context, *SyncPOSProductsRequest) (*SyncPOSProductsResponse, error)
	GetSyncStats(context.Context, *GetSyncStatsRequest) (*SyncStatsResponse, error)
	ListPOSProducts(context.Context, *ListPOSProductsRequest) (*ListPOSProductsResponse, error)
	CreateSale(context.Context, *CreateSaleRequest) (*SaleResponse, error)
	AddPaymentToSale(context.Context, *AddSalePaymentRequest) (*SaleResponse, error)
	GetSale(context.Context, *GetSaleRequest) (*SaleResponse, error)
	ListSales(context.Context, *ListSalesRequest) (*ListSalesResponse, error)
	GetPaymentSummary(context.Context, *GetPaymentSummaryRequest) (*PaymentSummaryResponse, error)
}

var POSService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: POSServiceName,
	HandlerType: (*POSServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(POSServiceName, "SyncPOSProducts", POSServiceServer.SyncPOSProducts),
		rpc.Unary(POSServiceName, "GetSyncStats", POSServiceServer.GetSyncStats),
		rpc.Unary(POSServiceName, "ListPOSProducts", POSServiceServer.ListPOSProducts),
		rpc.Unary(POSServiceName, "CreateSale", POSServiceServer.CreateSale),
		rpc.Unary(POSServiceName, "AddPaymentToSale", POSServiceServer.AddPaymentToSale),
		rpc.Unary(POSServiceName, "GetSale", POSServiceServer.GetSale),
		rpc.Unary(POSServiceName, "ListSales", POSServiceServer.ListSales),
		rpc.Unary(POSServiceName, "GetPaymentSummary", POSServiceServer.GetPaymentSummary),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterPOSServiceServer(s grpc.ServiceRegistrar, srv POSServiceServer) {
	s.RegisterService(&POSService_ServiceDesc, srv)
}
