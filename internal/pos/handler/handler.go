package handler

import (
	"context"
	"strings"

	hotelv1 "github.com/fekuna/termas-hotel-service/api/hotel/v1"
	"github.com/fekuna/termas-hotel-service/internal/convert"
	"github.com/fekuna/termas-hotel-service/internal/grpcerr"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/pos"
	"github.com/fekuna/termas-hotel-service/internal/pos/dto"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var _ hotelv1.POSServiceServer = (*POSHandler)(nil)

type POSHandler struct {
	uc     pos.UseCase
	logger logger.ZapLogger
}

func NewPOSHandler(uc pos.UseCase, log logger.ZapLogger) *POSHandler {
	return &POSHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *POSHandler) SyncPOSProducts(ctx context.Context, _ *hotelv1.SyncPOSProductsRequest) (*hotelv1.SyncPOSProductsResponse, error) {
	res, err := h.uc.SyncPOSProducts(ctx)
	if err != nil {
		h.logger.Error("failed to sync pos products", zap.Error(err))
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.SyncPOSProductsResponse{
		Reception:  int32(res.Reception),
		Restaurant: int32(res.Restaurant),
		Skipped:    int32(res.Skipped),
		Errors:     res.Errors,
	}, nil
}

func (h *POSHandler) GetSyncStats(ctx context.Context, _ *hotelv1.GetSyncStatsRequest) (*hotelv1.SyncStatsResponse, error) {
	s, err := h.uc.GetSyncStats(ctx)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.SyncStatsResponse{
		EnabledProducts: int32(s.EnabledProducts),
		POSProducts:     int32(s.POSProducts),
		SyncedProducts:  int32(s.SyncedProducts),
		PendingSync:     int32(s.PendingSync),
	}, nil
}

func (h *POSHandler) ListPOSProducts(ctx context.Context, req *hotelv1.ListPOSProductsRequest) (*hotelv1.ListPOSProductsResponse, error) {
	products, count, err := h.uc.ListPOSProducts(ctx, &dto.ProductFilters{
		RegisterTypeID: int(req.RegisterTypeId),
		CategoryID:     req.CategoryId,
		SearchQuery:    req.Search,
		ActiveOnly:     req.ActiveOnly,
		Page:           int(req.Page),
		PageSize:       int(req.PageSize),
	})
	if err != nil {
		return nil, grpcerr.Status(err)
	}

	out := make([]*hotelv1.POSProduct, 0, len(products))
	for i := range products {
		out = append(out, mapProductToProto(&products[i]))
	}
	return &hotelv1.ListPOSProductsResponse{Products: out, Total: int32(count)}, nil
}

func (h *POSHandler) CreateSale(ctx context.Context, req *hotelv1.CreateSaleRequest) (*hotelv1.SaleResponse, error) {
	discount, err := convert.Decimal("discount_amount", req.DiscountAmount)
	if err != nil {
		return nil, err
	}
	tax, err := convert.Decimal("tax_amount", req.TaxAmount)
	if err != nil {
		return nil, err
	}

	input := &dto.SaleInput{
		SessionID:      req.SessionId,
		CustomerName:   req.CustomerName,
		ClientID:       req.ClientId,
		TableNumber:    req.TableNumber,
		RoomNumber:     req.RoomNumber,
		DiscountAmount: discount,
		DiscountReason: req.DiscountReason,
		TaxAmount:      tax,
		Notes:          req.Notes,
	}
	for _, it := range req.Items {
		if it == nil {
			continue
		}
		input.Items = append(input.Items, dto.SaleItemInput{
			POSProductID: it.PosProductId,
			Quantity:     int(it.Quantity),
			Notes:        it.Notes,
		})
	}
	for _, p := range req.Payments {
		if p == nil {
			continue
		}
		in, err := paymentInput(p)
		if err != nil {
			return nil, err
		}
		input.Payments = append(input.Payments, *in)
	}

	sale, err := h.uc.CreateSale(ctx, input)
	if err != nil {
		h.logger.Error("failed to create sale", zap.String("session_id", req.SessionId), zap.Error(err))
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.SaleResponse{Sale: mapSaleToProto(sale)}, nil
}

func (h *POSHandler) AddPaymentToSale(ctx context.Context, req *hotelv1.AddSalePaymentRequest) (*hotelv1.SaleResponse, error) {
	if req.Payment == nil {
		return nil, status.Error(codes.InvalidArgument, "payment is required")
	}
	in, err := paymentInput(req.Payment)
	if err != nil {
		return nil, err
	}
	sale, err := h.uc.AddPaymentToSale(ctx, req.SaleId, in)
	if err != nil {
		h.logger.Error("failed to add payment", zap.String("sale_id", req.SaleId), zap.Error(err))
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.SaleResponse{Sale: mapSaleToProto(sale)}, nil
}

func (h *POSHandler) GetSale(ctx context.Context, req *hotelv1.GetSaleRequest) (*hotelv1.SaleResponse, error) {
	sale, err := h.uc.GetSale(ctx, req.Id)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.SaleResponse{Sale: mapSaleToProto(sale)}, nil
}

func (h *POSHandler) ListSales(ctx context.Context, req *hotelv1.ListSalesRequest) (*hotelv1.ListSalesResponse, error) {
	from, err := convert.OptDate("date_from", req.DateFrom)
	if err != nil {
		return nil, err
	}
	to, err := convert.DayEnd("date_to", req.DateTo)
	if err != nil {
		return nil, err
	}

	sales, count, err := h.uc.ListSales(ctx, &dto.SaleFilters{
		SessionID:      req.SessionId,
		RegisterTypeID: int(req.RegisterTypeId),
		PaymentStatus:  req.PaymentStatus,
		From:           from,
		To:             to,
		Page:           int(req.Page),
		PageSize:       int(req.PageSize),
	})
	if err != nil {
		return nil, grpcerr.Status(err)
	}

	out := make([]*hotelv1.Sale, 0, len(sales))
	for i := range sales {
		out = append(out, mapSaleToProto(&sales[i]))
	}
	return &hotelv1.ListSalesResponse{Sales: out, Total: int32(count)}, nil
}

func (h *POSHandler) GetPaymentSummary(ctx context.Context, req *hotelv1.GetPaymentSummaryRequest) (*hotelv1.PaymentSummaryResponse, error) {
	totals, err := h.uc.PaymentSummary(ctx, req.SessionId)
	if err != nil {
		return nil, grpcerr.Status(err)
	}

	resp := &hotelv1.PaymentSummaryResponse{Methods: make([]*hotelv1.PaymentMethodTotal, 0, len(totals))}
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t.Amount)
		resp.Methods = append(resp.Methods, &hotelv1.PaymentMethodTotal{
			Method: t.PaymentMethod,
			Count:  int32(t.Count),
			Amount: t.Amount.String(),
		})
	}
	resp.Total = sum.String()
	return resp, nil
}

func paymentInput(p *hotelv1.SalePaymentInput) (*dto.PaymentInput, error) {
	amount, err := convert.Decimal("amount", p.Amount)
	if err != nil {
		return nil, err
	}
	in := &dto.PaymentInput{Method: p.Method, Amount: amount, Reference: p.Reference}
	if strings.TrimSpace(p.ReceivedAmount) != "" {
		received, err := convert.Decimal("received_amount", p.ReceivedAmount)
		if err != nil {
			return nil, err
		}
		in.ReceivedAmount = &received
	}
	return in, nil
}

func mapProductToProto(p *model.POSProduct) *hotelv1.POSProduct {
	return &hotelv1.POSProduct{
		Id:             p.ID,
		Name:           p.Name,
		Description:    convert.Str(p.Description),
		Sku:            p.SKU,
		Price:          p.Price.String(),
		Cost:           p.Cost.String(),
		CategoryId:     p.CategoryID,
		RegisterTypeId: int32(p.RegisterTypeID),
		ProductId:      convert.Str(p.ProductID),
		IsActive:       p.IsActive,
		SortOrder:      int32(p.SortOrder),
	}
}

func mapSaleToProto(s *model.Sale) *hotelv1.Sale {
	out := &hotelv1.Sale{
		Id:             s.ID,
		SessionId:      s.SessionID,
		RegisterTypeId: int32(s.RegisterTypeID),
		SaleNumber:     s.SaleNumber,
		CustomerName:   convert.Str(s.CustomerName),
		ClientId:       convert.Str(s.ClientID),
		TableNumber:    convert.Str(s.TableNumber),
		RoomNumber:     convert.Str(s.RoomNumber),
		Subtotal:       s.Subtotal.String(),
		TaxAmount:      s.TaxAmount.String(),
		DiscountAmount: s.DiscountAmount.String(),
		DiscountReason: convert.Str(s.DiscountReason),
		Total:          s.Total.String(),
		PaidAmount:     s.PaidAmount.String(),
		PendingAmount:  decimal.Max(s.Total.Sub(s.PaidAmount), decimal.Zero).String(),
		PaymentStatus:  s.PaymentStatus,
		Status:         s.Status,
		Notes:          convert.Str(s.Notes),
		UserId:         convert.Str(s.UserID),
		CreatedAt:      s.CreatedAt,
	}
	for _, it := range s.Items {
		out.Items = append(out.Items, &hotelv1.SaleItem{
			Id:           it.ID,
			PosProductId: it.POSProductID,
			ProductId:    convert.Str(it.ProductID),
			ProductName:  it.ProductName,
			Quantity:     int32(it.Quantity),
			UnitPrice:    it.UnitPrice.String(),
			Total:        it.Total.String(),
			Notes:        convert.Str(it.Notes),
		})
	}
	for _, p := range s.Payments {
		out.Payments = append(out.Payments, &hotelv1.SalePayment{
			Id:             p.ID,
			Method:         p.PaymentMethod,
			Amount:         p.Amount.String(),
			ReceivedAmount: convert.DecStr(p.ReceivedAmount),
			ChangeAmount:   p.ChangeAmount.String(),
			Reference:      convert.Str(p.Reference),
			CreatedAt:      p.CreatedAt,
		})
	}
	return out
}
