package category

import (
	"context"

	"github.com/fekuna/termas-hotel-service/internal/category/dto"
	"github.com/fekuna/termas-hotel-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindAll(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id string) error

	// CountProducts counts the POS products filed under the category.
	CountProducts(ctx context.Context, id string) (int, error)
	// DefaultForRegister returns the active category with the lowest sort
	// order of a register type, or nil when the register has none.
	DefaultForRegister(ctx context.Context, registerType int) (*model.Category, error)
}
