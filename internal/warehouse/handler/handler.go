package handler

import (
	"context"

	hotelv1 "github.com/fekuna/termas-hotel-service/api/hotel/v1"
	"github.com/fekuna/termas-hotel-service/internal/convert"
	"github.com/fekuna/termas-hotel-service/internal/grpcerr"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/warehouse"
	"github.com/fekuna/termas-hotel-service/internal/warehouse/dto"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

type WarehouseHandler struct {
	uc     warehouse.UseCase
	logger logger.ZapLogger
}

func NewWarehouseHandler(uc warehouse.UseCase, log logger.ZapLogger) *WarehouseHandler {
	return &WarehouseHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *WarehouseHandler) CreateWarehouse(ctx context.Context, req *hotelv1.CreateWarehouseRequest) (*hotelv1.WarehouseResponse, error) {
	if req.Warehouse == nil {
		return nil, status.Error(codes.InvalidArgument, "warehouse is required")
	}
	w, err := h.uc.CreateWarehouse(ctx, toInput(req.Warehouse))
	if err != nil {
		h.logger.Error("failed to create warehouse", zap.Error(err))
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.WarehouseResponse{Warehouse: mapWarehouseToProto(w)}, nil
}

func (h *WarehouseHandler) GetWarehouse(ctx context.Context, req *hotelv1.GetWarehouseRequest) (*hotelv1.WarehouseResponse, error) {
	w, err := h.uc.GetWarehouse(ctx, req.Id)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.WarehouseResponse{Warehouse: mapWarehouseToProto(w)}, nil
}

func (h *WarehouseHandler) ListWarehouses(ctx context.Context, req *hotelv1.ListWarehousesRequest) (*hotelv1.ListWarehousesResponse, error) {
	items, count, err := h.uc.ListWarehouses(ctx, &dto.WarehouseFilters{
		SearchQuery: req.Search,
		Type:        req.Type,
		ParentID:    req.ParentId,
		Page:        int(req.Page),
		PageSize:    int(req.PageSize),
	})
	if err != nil {
		return nil, grpcerr.Status(err)
	}

	out := make([]*hotelv1.Warehouse, len(items))
	for i := range items {
		out[i] = mapWarehouseToProto(&items[i])
	}
	return &hotelv1.ListWarehousesResponse{Warehouses: out, Total: int32(count)}, nil
}

func (h *WarehouseHandler) UpdateWarehouse(ctx context.Context, req *hotelv1.UpdateWarehouseRequest) (*hotelv1.WarehouseResponse, error) {
	if req.Warehouse == nil {
		return nil, status.Error(codes.InvalidArgument, "warehouse is required")
	}
	w, err := h.uc.UpdateWarehouse(ctx, req.Id, toInput(req.Warehouse))
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.WarehouseResponse{Warehouse: mapWarehouseToProto(w)}, nil
}

func (h *WarehouseHandler) DeleteWarehouse(ctx context.Context, req *hotelv1.DeleteWarehouseRequest) (*emptypb.Empty, error) {
	if err := h.uc.DeleteWarehouse(ctx, req.Id); err != nil {
		return nil, grpcerr.Status(err)
	}
	return &emptypb.Empty{}, nil
}

func (h *WarehouseHandler) AssignProduct(ctx context.Context, req *hotelv1.AssignProductRequest) (*hotelv1.WarehouseProductResponse, error) {
	quantity, err := convert.Decimal("quantity", req.Quantity)
	if err != nil {
		return nil, err
	}
	minStock, err := convert.Decimal("min_stock", req.MinStock)
	if err != nil {
		return nil, err
	}
	input := &dto.AssignProductInput{
		WarehouseID: req.WarehouseId,
		ProductID:   req.ProductId,
		Quantity:    quantity,
		MinStock:    minStock,
	}
	if req.MaxStock != "" {
		maxStock, err := convert.Decimal("max_stock", req.MaxStock)
		if err != nil {
			return nil, err
		}
		input.MaxStock = &maxStock
	}

	wp, err := h.uc.AssignProduct(ctx, input)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.WarehouseProductResponse{Product: mapStockToProto(wp)}, nil
}

func (h *WarehouseHandler) RemoveProduct(ctx context.Context, req *hotelv1.RemoveProductRequest) (*emptypb.Empty, error) {
	if err := h.uc.RemoveProduct(ctx, req.WarehouseId, req.ProductId); err != nil {
		return nil, grpcerr.Status(err)
	}
	return &emptypb.Empty{}, nil
}

func (h *WarehouseHandler) ListWarehouseProducts(ctx context.Context, req *hotelv1.ListWarehouseProductsRequest) (*hotelv1.ListWarehouseProductsResponse, error) {
	items, count, err := h.uc.ListProducts(ctx, &dto.ProductFilters{
		WarehouseID: req.WarehouseId,
		SearchQuery: req.Search,
		StockFilter: req.StockFilter,
		Page:        int(req.Page),
		PageSize:    int(req.PageSize),
	})
	if err != nil {
		return nil, grpcerr.Status(err)
	}

	out := make([]*hotelv1.WarehouseProduct, len(items))
	for i := range items {
		out[i] = mapStockToProto(&items[i])
	}
	return &hotelv1.ListWarehouseProductsResponse{Products: out, Total: int32(count)}, nil
}

func toInput(in *hotelv1.WarehouseInput) *dto.WarehouseInput {
	return &dto.WarehouseInput{
		Name:     in.Name,
		Location: in.Location,
		Type:     in.Type,
		ParentID: in.ParentId,
	}
}

func mapWarehouseToProto(w *model.Warehouse) *hotelv1.Warehouse {
	if w == nil {
		return nil
	}
	return &hotelv1.Warehouse{
		Id:        w.ID,
		Name:      w.Name,
		Location:  convert.Str(w.Location),
		Type:      w.Type,
		ParentId:  convert.Str(w.ParentID),
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func mapStockToProto(wp *model.WarehouseProduct) *hotelv1.WarehouseProduct {
	if wp == nil {
		return nil
	}
	return &hotelv1.WarehouseProduct{
		Id:          wp.ID,
		WarehouseId: wp.WarehouseID,
		ProductId:   wp.ProductID,
		ProductName: wp.ProductName,
		ProductSku:  wp.ProductSKU,
		Quantity:    wp.Quantity.String(),
		MinStock:    wp.MinStock.String(),
		MaxStock:    wp.MaxStock.String(),
		LowStock:    wp.LowStock(),
	}
}
