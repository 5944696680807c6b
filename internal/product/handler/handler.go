package handler

import (
	"context"

	hotelv1 "github.com/fekuna/termas-hotel-service/api/hotel/v1"
	"github.com/fekuna/termas-hotel-service/internal/convert"
	"github.com/fekuna/termas-hotel-service/internal/grpcerr"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/product"
	"github.com/fekuna/termas-hotel-service/internal/product/dto"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) CreateProduct(ctx context.Context, req *hotelv1.CreateProductRequest) (*hotelv1.ProductResponse, error) {
	input, err := toInput(req.Product)
	if err != nil {
		return nil, err
	}

	p, err := h.uc.CreateProduct(ctx, input)
	if err != nil {
		h.logger.Error("failed to create product", zap.Error(err))
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.ProductResponse{Product: mapProductToProto(p)}, nil
}

func (h *ProductHandler) GetProduct(ctx context.Context, req *hotelv1.GetProductRequest) (*hotelv1.ProductResponse, error) {
	p, err := h.uc.GetProduct(ctx, req.Id)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.ProductResponse{Product: mapProductToProto(p)}, nil
}

func (h *ProductHandler) ListProducts(ctx context.Context, req *hotelv1.ListProductsRequest) (*hotelv1.ListProductsResponse, error) {
	products, count, err := h.uc.ListProducts(ctx, &dto.ProductFilters{
		Category:     req.Category,
		Type:         req.Type,
		IsActive:     req.IsActive,
		IsPOSEnabled: req.IsPosEnabled,
		SearchQuery:  req.Search,
		SortBy:       req.SortBy,
		SortOrder:    req.SortOrder,
		Page:         int(req.Page),
		PageSize:     int(req.PageSize),
	})
	if err != nil {
		return nil, grpcerr.Status(err)
	}

	out := make([]*hotelv1.Product, len(products))
	for i := range products {
		out[i] = mapProductToProto(&products[i])
	}
	return &hotelv1.ListProductsResponse{Products: out, Total: int32(count)}, nil
}

func (h *ProductHandler) UpdateProduct(ctx context.Context, req *hotelv1.UpdateProductRequest) (*hotelv1.ProductResponse, error) {
	input, err := toInput(req.Product)
	if err != nil {
		return nil, err
	}

	p, err := h.uc.UpdateProduct(ctx, req.Id, input)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.ProductResponse{Product: mapProductToProto(p)}, nil
}

func (h *ProductHandler) DeleteProduct(ctx context.Context, req *hotelv1.DeleteProductRequest) (*emptypb.Empty, error) {
	if err := h.uc.DeleteProduct(ctx, req.Id); err != nil {
		return nil, grpcerr.Status(err)
	}
	return &emptypb.Empty{}, nil
}

func (h *ProductHandler) GenerateSKU(ctx context.Context, req *hotelv1.GenerateSKURequest) (*hotelv1.GenerateSKUResponse, error) {
	code, err := h.uc.GenerateSKU(ctx, req.Name, req.Brand, req.Category)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.GenerateSKUResponse{Sku: code}, nil
}

func toInput(in *hotelv1.ProductInput) (*dto.ProductInput, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "product is required")
	}
	cost, err := convert.Decimal("cost_price", in.CostPrice)
	if err != nil {
		return nil, err
	}
	sale, err := convert.Decimal("sale_price", in.SalePrice)
	if err != nil {
		return nil, err
	}

	input := &dto.ProductInput{
		Name:         in.Name,
		Description:  in.Description,
		SKU:          in.Sku,
		Brand:        in.Brand,
		Category:     in.Category,
		Type:         in.Type,
		Unit:         in.Unit,
		CostPrice:    cost,
		SalePrice:    sale,
		IsPOSEnabled: in.IsPosEnabled,
		ImageURL:     in.ImageUrl,
		IsActive:     in.IsActive,
	}
	if in.Vat != "" {
		vat, err := convert.Decimal("vat", in.Vat)
		if err != nil {
			return nil, err
		}
		input.VAT = &vat
	}
	return input, nil
}

func mapProductToProto(p *model.Product) *hotelv1.Product {
	if p == nil {
		return nil
	}
	return &hotelv1.Product{
		Id:           p.ID,
		Name:         p.Name,
		Description:  convert.Str(p.Description),
		Sku:          p.SKU,
		Brand:        convert.Str(p.Brand),
		Category:     convert.Str(p.Category),
		Type:         p.Type,
		Unit:         p.Unit,
		CostPrice:    p.CostPrice.String(),
		SalePrice:    p.SalePrice.String(),
		Vat:          p.VAT.String(),
		FinalPrice:   p.FinalPrice.String(),
		IsPosEnabled: p.IsPOSEnabled,
		ImageUrl:     convert.Str(p.ImageURL),
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
