package handler

import (
	"context"

	hotelv1 "github.com/fekuna/termas-hotel-service/api/hotel/v1"
	"github.com/fekuna/termas-hotel-service/internal/convert"
	"github.com/fekuna/termas-hotel-service/internal/grpcerr"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/supplier"
	"github.com/fekuna/termas-hotel-service/internal/supplier/dto"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type SupplierHandler struct {
	uc     supplier.UseCase
	logger logger.ZapLogger
}

func NewSupplierHandler(uc supplier.UseCase, log logger.ZapLogger) *SupplierHandler {
	return &SupplierHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *SupplierHandler) CreateSupplier(ctx context.Context, req *hotelv1.CreateSupplierRequest) (*hotelv1.SupplierResponse, error) {
	input, err := toInput(req.Supplier)
	if err != nil {
		return nil, err
	}
	s, err := h.uc.CreateSupplier(ctx, input)
	if err != nil {
		h.logger.Error("failed to create supplier", zap.Error(err))
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.SupplierResponse{Supplier: mapSupplierToProto(s)}, nil
}

func (h *SupplierHandler) GetSupplier(ctx context.Context, req *hotelv1.GetSupplierRequest) (*hotelv1.SupplierResponse, error) {
	s, err := h.uc.GetSupplier(ctx, req.Id)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.SupplierResponse{Supplier: mapSupplierToProto(s)}, nil
}

func (h *SupplierHandler) ListSuppliers(ctx context.Context, req *hotelv1.ListSuppliersRequest) (*hotelv1.ListSuppliersResponse, error) {
	suppliers, count, err := h.uc.ListSuppliers(ctx, &dto.SupplierFilters{
		SearchQuery: req.Search,
		Category:    req.Category,
		Active:      req.Active,
		Page:        int(req.Page),
		PageSize:    int(req.PageSize),
	})
	if err != nil {
		return nil, grpcerr.Status(err)
	}

	out := make([]*hotelv1.Supplier, len(suppliers))
	for i := range suppliers {
		out[i] = mapSupplierToProto(&suppliers[i])
	}
	return &hotelv1.ListSuppliersResponse{Suppliers: out, Total: int32(count)}, nil
}

func (h *SupplierHandler) UpdateSupplier(ctx context.Context, req *hotelv1.UpdateSupplierRequest) (*hotelv1.SupplierResponse, error) {
	input, err := toInput(req.Supplier)
	if err != nil {
		return nil, err
	}
	s, err := h.uc.UpdateSupplier(ctx, req.Id, input)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.SupplierResponse{Supplier: mapSupplierToProto(s)}, nil
}

func (h *SupplierHandler) SetSupplierActive(ctx context.Context, req *hotelv1.SetSupplierActiveRequest) (*hotelv1.SupplierResponse, error) {
	s, err := h.uc.SetActive(ctx, req.Id, req.Active)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.SupplierResponse{Supplier: mapSupplierToProto(s)}, nil
}

func (h *SupplierHandler) UpdateCreditLimit(ctx context.Context, req *hotelv1.UpdateCreditLimitRequest) (*hotelv1.SupplierResponse, error) {
	limit, err := convert.Decimal("credit_limit", req.CreditLimit)
	if err != nil {
		return nil, err
	}
	s, err := h.uc.UpdateCreditLimit(ctx, req.Id, limit)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.SupplierResponse{Supplier: mapSupplierToProto(s)}, nil
}

func toInput(in *hotelv1.SupplierInput) (*dto.SupplierInput, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "supplier is required")
	}
	limit, err := convert.Decimal("credit_limit", in.CreditLimit)
	if err != nil {
		return nil, err
	}
	return &dto.SupplierInput{
		Name:         in.Name,
		RUT:          in.Rut,
		Email:        in.Email,
		Phone:        in.Phone,
		Address:      in.Address,
		Category:     in.Category,
		PaymentTerms: in.PaymentTerms,
		CreditLimit:  limit,
	}, nil
}

func mapSupplierToProto(s *model.Supplier) *hotelv1.Supplier {
	if s == nil {
		return nil
	}
	return &hotelv1.Supplier{
		Id:           s.ID,
		Name:         s.Name,
		Rut:          s.RUT,
		Email:        convert.Str(s.Email),
		Phone:        convert.Str(s.Phone),
		Address:      convert.Str(s.Address),
		Category:     convert.Str(s.Category),
		PaymentTerms: convert.Str(s.PaymentTerms),
		CreditLimit:  s.CreditLimit.String(),
		RankPoints:   int32(s.RankPoints),
		Active:       s.Active,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
