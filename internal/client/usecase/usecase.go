package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/fekuna/termas-hotel-service/internal/client"
	"github.com/fekuna/termas-hotel-service/internal/client/dto"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/pkg/database/postgres"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"github.com/fekuna/termas-hotel-service/pkg/search"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultCountry     = "Chile"
	defaultSearchLimit = 20
	maxRanking         = 5
)

type clientUseCase struct {
	repo   client.Repository
	es     *search.Client
	logger logger.ZapLogger
}

// NewClientUseCase builds the client usecase. es may be nil, in which case
// search always goes to Postgres.
func NewClientUseCase(repo client.Repository, es *search.Client, log logger.ZapLogger) client.UseCase {
	return &clientUseCase{
		repo:   repo,
		es:     es,
		logger: log,
	}
}

func (uc *clientUseCase) CreateClient(ctx context.Context, input *dto.ClientInput) (*model.Client, error) {
	c := &model.Client{
		Status:     model.ClientActive,
		TotalSpent: decimal.Zero,
	}
	if err := uc.apply(ctx, c, input); err != nil {
		return nil, err
	}

	now := time.Now()
	c.BaseModel = model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}

	if err := uc.repo.Create(ctx, c); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: client rut already registered", model.ErrConflict)
		}
		return nil, err
	}

	uc.logger.Info("client created", zap.String("client_id", c.ID), zap.String("type", c.Type))
	uc.index(c)
	return c, nil
}

func (uc *clientUseCase) GetClient(ctx context.Context, id string) (*model.Client, error) {
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("client %s: %w", id, model.ErrNotFound)
	}
	return c, nil
}

func (uc *clientUseCase) GetClientByRUT(ctx context.Context, rut string) (*model.Client, error) {
	rut = model.NormalizeRUT(rut)
	if rut == "" {
		return nil, fmt.Errorf("%w: rut is required", model.ErrInvalidInput)
	}
	c, err := uc.repo.FindByRUT(ctx, rut)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("client with rut %s: %w", rut, model.ErrNotFound)
	}
	return c, nil
}

func (uc *clientUseCase) ListClients(ctx context.Context, filters *dto.ClientFilters) ([]model.Client, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *clientUseCase) UpdateClient(ctx context.Context, id string, input *dto.ClientInput) (*model.Client, error) {
	c, err := uc.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.apply(ctx, c, input); err != nil {
		return nil, err
	}
	c.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, c); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: client rut already registered", model.ErrConflict)
		}
		return nil, err
	}
	uc.index(c)
	return c, nil
}

func (uc *clientUseCase) UpdateClientStatus(ctx context.Context, id, status string) (*model.Client, error) {
	if status != model.ClientActive && status != model.ClientInactive {
		return nil, fmt.Errorf("%w: unknown client status %q", model.ErrInvalidInput, status)
	}
	c, err := uc.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	c.Status = status
	c.UpdatedAt = time.Now()
	uc.index(c)
	return c, nil
}

func (uc *clientUseCase) SetFrequent(ctx context.Context, id string, frequent bool) (*model.Client, error) {
	c, err := uc.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.SetFrequent(ctx, id, frequent); err != nil {
		return nil, err
	}
	c.IsFrequent = frequent
	c.UpdatedAt = time.Now()
	uc.index(c)
	return c, nil
}

func (uc *clientUseCase) SetRanking(ctx context.Context, id string, ranking int) (*model.Client, error) {
	if ranking < 0 || ranking > maxRanking {
		return nil, fmt.Errorf("%w: ranking must be between 0 and %d", model.ErrInvalidInput, maxRanking)
	}
	c, err := uc.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.SetRanking(ctx, id, ranking); err != nil {
		return nil, err
	}
	c.Ranking = ranking
	c.UpdatedAt = time.Now()
	uc.index(c)
	return c, nil
}

func (uc *clientUseCase) DeleteClient(ctx context.Context, id string) (bool, error) {
	c, err := uc.GetClient(ctx, id)
	if err != nil {
		return false, err
	}

	n, err := uc.repo.CountReservations(ctx, id)
	if err != nil {
		return false, err
	}
	if n > 0 {
		if err := uc.repo.UpdateStatus(ctx, id, model.ClientInactive); err != nil {
			return false, err
		}
		c.Status = model.ClientInactive
		uc.index(c)
		uc.logger.Info("client deactivated instead of deleted",
			zap.String("client_id", id),
			zap.Int("reservations", n),
		)
		return true, nil
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return false, err
	}
	uc.unindex(id)
	return false, nil
}

// apply validates input and copies it onto c.
func (uc *clientUseCase) apply(ctx context.Context, c *model.Client, input *dto.ClientInput) error {
	clientType := strings.TrimSpace(input.Type)
	if clientType == "" {
		clientType = model.ClientPersona
	}
	if clientType != model.ClientPersona && clientType != model.ClientEmpresa {
		return fmt.Errorf("%w: unknown client type %q", model.ErrInvalidInput, clientType)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", model.ErrInvalidInput)
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email != "" {
		addr, err := mail.ParseAddress(email)
		if err != nil || addr.Address != email {
			return fmt.Errorf("%w: invalid email %q", model.ErrInvalidInput, input.Email)
		}
		existing, err := uc.repo.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != c.ID {
			return fmt.Errorf("%w: email %s already belongs to %s", model.ErrConflict, email, existing.FullName())
		}
	}

	rut := model.NormalizeRUT(input.RUT)
	if rut != "" {
		if !model.ValidRUT(rut) {
			return fmt.Errorf("%w: invalid rut %q", model.ErrInvalidInput, input.RUT)
		}
		existing, err := uc.repo.FindByRUT(ctx, rut)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != c.ID {
			return fmt.Errorf("%w: rut %s already belongs to %s", model.ErrConflict, rut, existing.FullName())
		}
	}

	country := strings.TrimSpace(input.Country)
	if country == "" {
		country = defaultCountry
	}

	c.Type = clientType
	c.Name = name
	c.LastName = optional(input.LastName)
	c.RUT = optional(rut)
	c.Email = optional(email)
	c.Phone = optional(input.Phone)
	c.Address = optional(input.Address)
	c.City = optional(input.City)
	c.Country = country
	c.Notes = optional(input.Notes)
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
