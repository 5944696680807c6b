package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/termas-hotel-service/internal/category"
	"github.com/fekuna/termas-hotel-service/internal/category/dto"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type categoryUseCase struct {
	repo   category.Repository
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CategoryInput) (*model.Category, error) {
	cat := &model.Category{IsActive: true}
	if err := apply(cat, input); err != nil {
		return nil, err
	}

	now := time.Now()
	cat.BaseModel = model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}

	uc.logger.Info("pos category created",
		zap.String("category_id", cat.ID),
		zap.Int("register_type_id", cat.RegisterTypeID),
	)
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, fmt.Errorf("category %s: %w", id, model.ErrNotFound)
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error) {
	if filters.RegisterTypeID != 0 && model.RegisterCode(filters.RegisterTypeID) == "" {
		return nil, 0, fmt.Errorf("%w: unknown register type %d", model.ErrInvalidInput, filters.RegisterTypeID)
	}
	if filters.Page <= 0 {
		filters.Page = 1
	}
	return uc.repo.FindAll(ctx, filters)
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, id string, input *dto.CategoryInput) (*model.Category, error) {
	cat, err := uc.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(cat, input); err != nil {
		return nil, err
	}
	cat.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	if _, err := uc.GetCategory(ctx, id); err != nil {
		return err
	}

	n, err := uc.repo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: category has %d pos products", model.ErrConflict, n)
	}
	return uc.repo.Delete(ctx, id)
}

func apply(cat *model.Category, input *dto.CategoryInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", model.ErrInvalidInput)
	}
	if model.RegisterCode(input.RegisterTypeID) == "" {
		return fmt.Errorf("%w: unknown register type %d", model.ErrInvalidInput, input.RegisterTypeID)
	}
	if input.SortOrder < 0 {
		return fmt.Errorf("%w: sort order must not be negative", model.ErrInvalidInput)
	}

	cat.RegisterTypeID = input.RegisterTypeID
	cat.Name = name
	cat.Description = optional(input.Description)
	cat.Color = optional(input.Color)
	cat.SortOrder = input.SortOrder
	if input.IsActive != nil {
		cat.IsActive = *input.IsActive
	}
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
