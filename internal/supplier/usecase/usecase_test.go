package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/supplier/dto"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	suppliers map[string]*model.Supplier
}

func (f *fakeRepo) Create(_ context.Context, s *model.Supplier) error {
	cp := *s
	f.suppliers[s.ID] = &cp
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*model.Supplier, error) {
	if s, ok := f.suppliers[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRepo) FindByRUT(_ context.Context, rut string) (*model.Supplier, error) {
	for _, s := range f.suppliers {
		if s.RUT == rut {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) FindAll(context.Context, *dto.SupplierFilters) ([]model.Supplier, int, error) {
	return nil, 0, nil
}

func (f *fakeRepo) Update(_ context.Context, s *model.Supplier) error {
	cp := *s
	f.suppliers[s.ID] = &cp
	return nil
}

func (f *fakeRepo) SetActive(_ context.Context, id string, active bool) error {
	f.suppliers[id].Active = active
	return nil
}

func (f *fakeRepo) UpdateCreditLimit(_ context.Context, id string, limit decimal.Decimal) error {
	f.suppliers[id].CreditLimit = limit
	return nil
}

func newUseCase() (*fakeRepo, *supplierUseCase) {
	repo := &fakeRepo{suppliers: map[string]*model.Supplier{}}
	return repo, NewSupplierUseCase(repo, logger.NewNop()).(*supplierUseCase)
}

func TestCreateSupplier(t *testing.T) {
	_, uc := newUseCase()
	ctx := context.Background()

	s, err := uc.CreateSupplier(ctx, &dto.SupplierInput{Name: "Distribuidora Sur", RUT: "11.111.111-1", Email: "VENTAS@sur.cl"})
	require.NoError(t, err)
	assert.Equal(t, "11111111-1", s.RUT)
	assert.Equal(t, "ventas@sur.cl", *s.Email)
	assert.True(t, s.Active)

	_, err = uc.CreateSupplier(ctx, &dto.SupplierInput{Name: "Otro", RUT: "11111111-1"})
	assert.ErrorIs(t, err, model.ErrConflict)

	_, err = uc.CreateSupplier(ctx, &dto.SupplierInput{Name: "Sin rut"})
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = uc.CreateSupplier(ctx, &dto.SupplierInput{Name: "Negativo", RUT: "12345678-5", CreditLimit: decimal.NewFromInt(-5)})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestSetActiveAndCreditLimit(t *testing.T) {
	repo, uc := newUseCase()
	ctx := context.Background()
	s, err := uc.CreateSupplier(ctx, &dto.SupplierInput{Name: "Lavandería", RUT: "12345678-5"})
	require.NoError(t, err)

	got, err := uc.SetActive(ctx, s.ID, false)
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.False(t, repo.suppliers[s.ID].Active)

	_, err = uc.UpdateCreditLimit(ctx, s.ID, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	got, err = uc.UpdateCreditLimit(ctx, s.ID, decimal.NewFromInt(500000))
	require.NoError(t, err)
	assert.Equal(t, "500000", got.CreditLimit.String())

	_, err = uc.SetActive(ctx, "missing", true)
	assert.ErrorIs(t, err, model.ErrNotFound)
}
