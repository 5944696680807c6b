package handler

import (
	"context"

	hotelv1 "github.com/fekuna/termas-hotel-service/api/hotel/v1"
	"github.com/fekuna/termas-hotel-service/internal/auth"
	"github.com/fekuna/termas-hotel-service/internal/convert"
	"github.com/fekuna/termas-hotel-service/internal/grpcerr"
	"github.com/fekuna/termas-hotel-service/internal/inventory"
	"github.com/fekuna/termas-hotel-service/internal/inventory/dto"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InventoryHandler) CreateMovement(ctx context.Context, req *hotelv1.CreateMovementRequest) (*hotelv1.MovementResponse, error) {
	qty, err := convert.Decimal("quantity", req.Quantity)
	if err != nil {
		return nil, err
	}

	m, err := h.uc.CreateMovement(ctx, &dto.MovementInput{
		ProductID:       req.ProductId,
		FromWarehouseID: req.FromWarehouseId,
		ToWarehouseID:   req.ToWarehouseId,
		MovementType:    req.MovementType,
		Quantity:        qty,
		Reason:          req.Reason,
		Notes:           req.Notes,
		UserID:          auth.GetUserID(ctx),
	})
	if err != nil {
		h.logger.Error("failed to create movement", zap.Error(err))
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.MovementResponse{Movement: mapMovementToProto(m)}, nil
}

func (h *InventoryHandler) TransferProducts(ctx context.Context, req *hotelv1.TransferProductsRequest) (*hotelv1.TransferProductsResponse, error) {
	lines := make([]dto.TransferLineInput, 0, len(req.Products))
	for _, p := range req.Products {
		if p == nil {
			return nil, status.Error(codes.InvalidArgument, "products: empty line")
		}
		qty, err := convert.Decimal("quantity", p.Quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, dto.TransferLineInput{ProductID: p.ProductId, Quantity: qty})
	}

	batchID, movements, err := h.uc.TransferProducts(ctx, &dto.TransferInput{
		FromWarehouseID: req.FromWarehouseId,
		ToWarehouseID:   req.ToWarehouseId,
		Reason:          req.Reason,
		Notes:           req.Notes,
		Products:        lines,
		UserID:          auth.GetUserID(ctx),
	})
	if err != nil {
		h.logger.Error("failed to transfer products", zap.Error(err))
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.TransferProductsResponse{BatchId: batchID, Movements: mapMovements(movements)}, nil
}

func (h *InventoryHandler) GetMovement(ctx context.Context, req *hotelv1.GetMovementRequest) (*hotelv1.MovementResponse, error) {
	m, err := h.uc.GetMovement(ctx, req.Id)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.MovementResponse{Movement: mapMovementToProto(m)}, nil
}

func (h *InventoryHandler) ListMovements(ctx context.Context, req *hotelv1.ListMovementsRequest) (*hotelv1.ListMovementsResponse, error) {
	start, err := convert.OptDate("date_from", req.DateFrom)
	if err != nil {
		return nil, err
	}
	end, err := convert.DayEnd("date_to", req.DateTo)
	if err != nil {
		return nil, err
	}

	items, count, err := h.uc.ListMovements(ctx, &dto.MovementFilters{
		ProductID:       req.ProductId,
		FromWarehouseID: req.FromWarehouseId,
		ToWarehouseID:   req.ToWarehouseId,
		MovementType:    req.MovementType,
		UserID:          req.UserId,
		StartDate:       start,
		EndDate:         end,
		Page:            int(req.Page),
		PageSize:        int(req.PageSize),
	})
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.ListMovementsResponse{Movements: mapMovements(items), Total: int32(count)}, nil
}

func (h *InventoryHandler) ListGroupedTransfers(ctx context.Context, req *hotelv1.ListGroupedTransfersRequest) (*hotelv1.ListGroupedTransfersResponse, error) {
	start, err := convert.OptDate("date_from", req.DateFrom)
	if err != nil {
		return nil, err
	}
	end, err := convert.DayEnd("date_to", req.DateTo)
	if err != nil {
		return nil, err
	}

	groups, count, err := h.uc.ListGroupedTransfers(ctx, &dto.TransferFilters{
		WarehouseID: req.WarehouseId,
		StartDate:   start,
		EndDate:     end,
		Page:        int(req.Page),
		PageSize:    int(req.PageSize),
	})
	if err != nil {
		return nil, grpcerr.Status(err)
	}

	out := make([]*hotelv1.GroupedTransfer, len(groups))
	for i, g := range groups {
		lines := make([]*hotelv1.TransferLine, len(g.Lines))
		for j, l := range g.Lines {
			lines[j] = &hotelv1.TransferLine{ProductId: l.ProductID, ProductName: l.ProductName, Quantity: l.Quantity.String()}
		}
		out[i] = &hotelv1.GroupedTransfer{
			BatchId:           g.BatchID,
			FromWarehouseId:   g.FromWarehouseID,
			FromWarehouseName: g.FromWarehouseName,
			ToWarehouseId:     g.ToWarehouseID,
			ToWarehouseName:   g.ToWarehouseName,
			Reason:            convert.Str(g.Reason),
			UserId:            convert.Str(g.UserID),
			ProductCount:      int32(g.ProductCount),
			TotalQuantity:     g.TotalQuantity.String(),
			CreatedAt:         g.CreatedAt,
			Lines:             lines,
		}
	}
	return &hotelv1.ListGroupedTransfersResponse{Transfers: out, Total: int32(count)}, nil
}

func (h *InventoryHandler) GetMovementStats(ctx context.Context, _ *hotelv1.GetMovementStatsRequest) (*hotelv1.MovementStatsResponse, error) {
	stats, err := h.uc.GetMovementStats(ctx)
	if err != nil {
		return nil, grpcerr.Status(err)
	}

	resp := &hotelv1.MovementStatsResponse{
		TotalMovements:     int32(stats.TotalMovements),
		TotalQuantity:      stats.TotalQuantity.String(),
		Last30DaysQuantity: stats.Last30DaysQty.String(),
	}
	for _, t := range stats.ByType {
		resp.ByType = append(resp.ByType, &hotelv1.MovementTypeCount{
			MovementType: t.MovementType,
			Count:        int32(t.Count),
			Quantity:     t.Quantity.String(),
		})
	}
	for _, p := range stats.TopProducts {
		resp.TopProducts = append(resp.TopProducts, &hotelv1.ProductMovementTotal{
			ProductId:   p.ProductID,
			ProductName: p.ProductName,
			Movements:   int32(p.Movements),
			Quantity:    p.Quantity.String(),
		})
	}
	return resp, nil
}

// endOfDay turns an inclusive YYYY-MM-DD bound into an exclusive instant.
func mapMovements(items []model.InventoryMovement) []*hotelv1.Movement {
	out := make([]*hotelv1.Movement, len(items))
	for i := range items {
		out[i] = mapMovementToProto(&items[i])
	}
	return out
}

func mapMovementToProto(m *model.InventoryMovement) *hotelv1.Movement {
	if m == nil {
		return nil
	}
	return &hotelv1.Movement{
		Id:              m.ID,
		ProductId:       m.ProductID,
		FromWarehouseId: convert.Str(m.FromWarehouseID),
		ToWarehouseId:   convert.Str(m.ToWarehouseID),
		MovementType:    m.MovementType,
		Quantity:        m.Quantity.String(),
		Reason:          convert.Str(m.Reason),
		Notes:           convert.Str(m.Notes),
		BatchId:         convert.Str(m.BatchID),
		ReferenceType:   convert.Str(m.ReferenceType),
		ReferenceId:     convert.Str(m.ReferenceID),
		UserId:          convert.Str(m.UserID),
		CreatedAt:       m.CreatedAt,
	}
}
