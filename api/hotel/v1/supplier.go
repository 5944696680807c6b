package hotelv1

import (
	"context"
	"time"

	"github.com/fekuna/termas-hotel-service/pkg/rpc"
	"google.golang.org/grpc"
)

const SupplierServiceName = "termas.hotel.v1.SupplierService"

type Supplier struct {
	Id           string    `json:"id"`
	Name         string    `json:"name"`
	Rut          string    `json:"rut"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	Category     string    `json:"category,omitempty"`
	PaymentTerms string    `json:"payment_terms,omitempty"`
	CreditLimit  string    `json:"credit_limit"`
	RankPoints   int32     `json:"rank_points"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type SupplierInput struct {
	Name         string `json:"name"`
	Rut          string `json:"rut"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Category     string `json:"category"`
	PaymentTerms string `json:"payment_terms"`
	CreditLimit  string `json:"credit_limit"`
}

type CreateSupplierRequest struct {
	Supplier *SupplierInput `json:"supplier"`
}

type GetSupplierRequest struct {
	Id string `json:"id"`
}

type ListSuppliersRequest struct {
	Search   string `json:"search"`
	Category string `json:"category"`
	Active   *bool  `json:"active"`
	Page     int32  `json:"page"`
	PageSize int32  `json:"page_size"`
}

type ListSuppliersResponse struct {
	Suppliers []*Supplier `json:"suppliers"`
	Total     int32       `json:"total"`
}

type UpdateSupplierRequest struct {
	Id       string         `json:"id"`
	Supplier *SupplierInput `json:"supplier"`
}

type SetSupplierActiveRequest struct {
	Id     string `json:"id"`
	Active bool   `json:"active"`
}

type UpdateCreditLimitRequest struct {
	Id          string `json:"id"`
	CreditLimit string `json:"credit_limit"`
}

type SupplierResponse struct {
	Supplier *Supplier `json:"supplier"`
}

type SupplierServiceServer interface {
	CreateSupplier(context.Context, *CreateSupplierRequest) (*SupplierResponse, error)
	GetSupplier(context.Context, *GetSupplierRequest) (*SupplierResponse, error)
	ListSuppliers(context.Context, *ListSuppliersRequest) (*ListSuppliersResponse, error)
	UpdateSupplier(context.Context, *UpdateSupplierRequest) (*SupplierResponse, error)
	SetSupplierActive(context.Context, *SetSupplierActiveRequest) (*SupplierResponse, error)
	UpdateCreditLimit(context.Context, *UpdateCreditLimitRequest) (*SupplierResponse, error)
}

var SupplierService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: SupplierServiceName,
	HandlerType: (*SupplierServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(SupplierServiceName, "CreateSupplier", SupplierServiceServer.CreateSupplier),
		rpc.Unary(SupplierServiceName, "GetSupplier", SupplierServiceServer.GetSupplier),
		rpc.Unary(SupplierServiceName, "ListSuppliers", SupplierServiceServer.ListSuppliers),
		rpc.Unary(SupplierServiceName, "UpdateSupplier", SupplierServiceServer.UpdateSupplier),
		rpc.Unary(SupplierServiceName, "SetSupplierActive", SupplierServiceServer.SetSupplierActive),
		rpc.Unary(SupplierServiceName, "UpdateCreditLimit", SupplierServiceServer.UpdateCreditLimit),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterSupplierServiceServer(s grpc.ServiceRegistrar, srv SupplierServiceServer) {
	s.RegisterService(&SupplierService_ServiceDesc, srv)
}
