package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/supplier"
	"github.com/fekuna/termas-hotel-service/internal/supplier/dto"
	"github.com/fekuna/termas-hotel-service/pkg/database/postgres"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type supplierUseCase struct {
	repo   supplier.Repository
	logger logger.ZapLogger
}

func NewSupplierUseCase(repo supplier.Repository, log logger.ZapLogger) supplier.UseCase {
	return &supplierUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *supplierUseCase) CreateSupplier(ctx context.Context, input *dto.SupplierInput) (*model.Supplier, error) {
	s := &model.Supplier{Active: true}
	if err := uc.apply(ctx, s, input); err != nil {
		return nil, err
	}

	now := time.Now()
	s.BaseModel = model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, s); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: supplier rut %s already registered", model.ErrConflict, s.RUT)
		}
		return nil, err
	}

	uc.logger.Info("supplier created", zap.String("supplier_id", s.ID), zap.String("rut", s.RUT))
	return s, nil
}

func (uc *supplierUseCase) GetSupplier(ctx context.Context, id string) (*model.Supplier, error) {
	s, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("supplier %s: %w", id, model.ErrNotFound)
	}
	return s, nil
}

func (uc *supplierUseCase) ListSuppliers(ctx context.Context, filters *dto.SupplierFilters) ([]model.Supplier, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *supplierUseCase) UpdateSupplier(ctx context.Context, id string, input *dto.SupplierInput) (*model.Supplier, error) {
	s, err := uc.GetSupplier(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.apply(ctx, s, input); err != nil {
		return nil, err
	}
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *supplierUseCase) SetActive(ctx context.Context, id string, active bool) (*model.Supplier, error) {
	s, err := uc.GetSupplier(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	s.Active = active
	s.UpdatedAt = time.Now()
	return s, nil
}

func (uc *supplierUseCase) UpdateCreditLimit(ctx context.Context, id string, limit decimal.Decimal) (*model.Supplier, error) {
	if limit.IsNegative() {
		return nil, fmt.Errorf("%w: credit limit must not be negative", model.ErrInvalidInput)
	}
	s, err := uc.GetSupplier(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateCreditLimit(ctx, id, limit); err != nil {
		return nil, err
	}
	s.CreditLimit = limit
	s.UpdatedAt = time.Now()
	return s, nil
}

func (uc *supplierUseCase) apply(ctx context.Context, s *model.Supplier, input *dto.SupplierInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return fmt.Errorf("%w: supplier name is required", model.ErrInvalidInput)
	}
	rut := model.NormalizeRUT(input.RUT)
	if rut == "" {
		return fmt.Errorf("%w: supplier rut is required", model.ErrInvalidInput)
	}
	if !model.ValidRUT(rut) {
		return fmt.Errorf("%w: invalid rut %q", model.ErrInvalidInput, input.RUT)
	}
	if input.CreditLimit.IsNegative() {
		return fmt.Errorf("%w: credit limit must not be negative", model.ErrInvalidInput)
	}

	existing, err := uc.repo.FindByRUT(ctx, rut)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != s.ID {
		return fmt.Errorf("%w: rut %s already belongs to %s", model.ErrConflict, rut, existing.Name)
	}

	s.Name = name
	s.RUT = rut
	s.Email = optional(strings.ToLower(input.Email))
	s.Phone = optional(input.Phone)
	s.Address = optional(input.Address)
	s.Category = optional(input.Category)
	s.PaymentTerms = optional(input.PaymentTerms)
	s.CreditLimit = input.CreditLimit
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
