package handler

import (
	"context"

	hotelv1 "github.com/fekuna/termas-hotel-service/api/hotel/v1"
	"github.com/fekuna/termas-hotel-service/internal/category"
	"github.com/fekuna/termas-hotel-service/internal/category/dto"
	"github.com/fekuna/termas-hotel-service/internal/convert"
	"github.com/fekuna/termas-hotel-service/internal/grpcerr"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

var _ hotelv1.CategoryServiceServer = (*CategoryHandler)(nil)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CategoryHandler) CreateCategory(ctx context.Context, req *hotelv1.CreateCategoryRequest) (*hotelv1.CategoryResponse, error) {
	if req.Category == nil {
		return nil, status.Error(codes.InvalidArgument, "category is required")
	}
	cat, err := h.uc.CreateCategory(ctx, toInput(req.Category))
	if err != nil {
		h.logger.Error("failed to create category", zap.Error(err))
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.CategoryResponse{Category: mapCategoryToProto(cat)}, nil
}

func (h *CategoryHandler) GetCategory(ctx context.Context, req *hotelv1.GetCategoryRequest) (*hotelv1.CategoryResponse, error) {
	cat, err := h.uc.GetCategory(ctx, req.Id)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.CategoryResponse{Category: mapCategoryToProto(cat)}, nil
}

func (h *CategoryHandler) ListCategories(ctx context.Context, req *hotelv1.ListCategoriesRequest) (*hotelv1.ListCategoriesResponse, error) {
	filters := &dto.CategoryFilters{
		RegisterTypeID: int(req.RegisterTypeId),
		Page:           int(req.Page),
		PageSize:       int(req.PageSize),
	}
	if req.ActiveOnly {
		active := true
		filters.IsActive = &active
	}

	categories, count, err := h.uc.ListCategories(ctx, filters)
	if err != nil {
		return nil, grpcerr.Status(err)
	}

	out := make([]*hotelv1.Category, len(categories))
	for i := range categories {
		out[i] = mapCategoryToProto(&categories[i])
	}
	return &hotelv1.ListCategoriesResponse{Categories: out, Total: int32(count)}, nil
}

func (h *CategoryHandler) UpdateCategory(ctx context.Context, req *hotelv1.UpdateCategoryRequest) (*hotelv1.CategoryResponse, error) {
	if req.Category == nil {
		return nil, status.Error(codes.InvalidArgument, "category is required")
	}
	cat, err := h.uc.UpdateCategory(ctx, req.Id, toInput(req.Category))
	if err != nil {
		h.logger.Error("failed to update category", zap.String("category_id", req.Id), zap.Error(err))
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.CategoryResponse{Category: mapCategoryToProto(cat)}, nil
}

func (h *CategoryHandler) DeleteCategory(ctx context.Context, req *hotelv1.DeleteCategoryRequest) (*emptypb.Empty, error) {
	if err := h.uc.DeleteCategory(ctx, req.Id); err != nil {
		return nil, grpcerr.Status(err)
	}
	return &emptypb.Empty{}, nil
}

func toInput(in *hotelv1.CategoryInput) *dto.CategoryInput {
	return &dto.CategoryInput{
		RegisterTypeID: int(in.RegisterTypeId),
		Name:           in.Name,
		Description:    in.Description,
		Color:          in.Color,
		SortOrder:      int(in.SortOrder),
		IsActive:       in.IsActive,
	}
}

func mapCategoryToProto(c *model.Category) *hotelv1.Category {
	if c == nil {
		return nil
	}
	return &hotelv1.Category{
		Id:             c.ID,
		RegisterTypeId: int32(c.RegisterTypeID),
		Name:           c.Name,
		Description:    convert.Str(c.Description),
		Color:          convert.Str(c.Color),
		SortOrder:      int32(c.SortOrder),
		IsActive:       c.IsActive,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
