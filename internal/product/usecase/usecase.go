package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/product"
	"github.com/fekuna/termas-hotel-service/internal/product/dto"
	"github.com/fekuna/termas-hotel-service/internal/product/sku"
	"github.com/fekuna/termas-hotel-service/pkg/cache"
	"github.com/fekuna/termas-hotel-service/pkg/database/postgres"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"github.com/fekuna/termas-hotel-service/pkg/search"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	productIndex = "products"
	listCacheTTL = 5 * time.Minute
	defaultUnit  = "UND"
)

const productMapping = `{
	"mappings": {
		"properties": {
			"name": { "type": "text" },
			"description": { "type": "text" },
			"sku": { "type": "keyword" },
			"brand": { "type": "text" },
			"category": { "type": "keyword" },
			"type": { "type": "keyword" },
			"sale_price": { "type": "double" },
			"is_active": { "type": "boolean" },
			"is_pos_enabled": { "type": "boolean" },
			"created_at": { "type": "date" }
		}
	}
}`

type productUseCase struct {
	repo   product.Repository
	cache  *cache.RedisClient
	es     *search.Client
	skus   *sku.Generator
	logger logger.ZapLogger
}

// NewProductUseCase builds the product usecase. cache and es are optional.
func NewProductUseCase(repo product.Repository, cache *cache.RedisClient, es *search.Client, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  cache,
		es:     es,
		skus:   sku.NewGenerator(repo),
		logger: log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.ProductInput) (*model.Product, error) {
	p := &model.Product{IsActive: true}
	if err := uc.apply(ctx, p, input); err != nil {
		return nil, err
	}

	now := time.Now()
	p.BaseModel = model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}

	if err := uc.repo.Create(ctx, p); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: sku %s already exists", model.ErrConflict, p.SKU)
		}
		return nil, err
	}

	uc.logger.Info("product created", zap.String("product_id", p.ID), zap.String("sku", p.SKU))
	uc.invalidate()
	uc.index(p)
	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("product %s: %w", id, model.ErrNotFound)
	}
	return p, nil
}

type cachedList struct {
	Products []model.Product `json:"products"`
	Count    int             `json:"count"`
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}

	key, err := cacheKey(filters)
	if err == nil && uc.cache != nil {
		var hit cachedList
		if err := uc.cache.GetJSON(ctx, key, &hit); err == nil {
			return hit.Products, hit.Count, nil
		}
	}

	if filters.SearchQuery != "" && uc.es != nil {
		products, total, err := uc.search(ctx, filters)
		if err == nil {
			return products, total, nil
		}
		uc.logger.Error("product search failed, falling back to DB", zap.Error(err))
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if key != "" && uc.cache != nil {
		if err := uc.cache.SetJSON(ctx, key, cachedList{Products: products, Count: count}, listCacheTTL); err != nil {
			uc.logger.Warn("failed to cache product list", zap.Error(err))
		}
	}
	return products, count, nil
}

func (uc *productUseCase) search(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	must := []map[string]interface{}{
		{
			"multi_match": map[string]interface{}{
				"query":     filters.SearchQuery,
				"fields":    []string{"name^3", "sku^2", "brand", "description"},
				"fuzziness": "AUTO",
			},
		},
	}
	if filters.Category != "" {
		must = append(must, map[string]interface{}{"term": map[string]interface{}{"category": filters.Category}})
	}
	if filters.Type != "" {
		must = append(must, map[string]interface{}{"term": map[string]interface{}{"type": filters.Type}})
	}
	if filters.IsActive != nil {
		must = append(must, map[string]interface{}{"term": map[string]interface{}{"is_active": *filters.IsActive}})
	}
	if filters.IsPOSEnabled != nil {
		must = append(must, map[string]interface{}{"term": map[string]interface{}{"is_pos_enabled": *filters.IsPOSEnabled}})
	}

	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"must": must},
		},
	}
	if filters.PageSize > 0 {
		q["from"] = (filters.Page - 1) * filters.PageSize
		q["size"] = filters.PageSize
	}

	res, err := uc.es.Search(ctx, productIndex, q)
	if err != nil {
		return nil, 0, err
	}
	products := make([]model.Product, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var p model.Product
		if err := json.Unmarshal(hit.Source, &p); err == nil {
			products = append(products, p)
		}
	}
	return products, res.Hits.Total.Value, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, id string, input *dto.ProductInput) (*model.Product, error) {
	p, err := uc.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.apply(ctx, p, input); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: sku %s already exists", model.ErrConflict, p.SKU)
		}
		return nil, err
	}

	uc.invalidate()
	uc.index(p)
	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	if _, err := uc.GetProduct(ctx, id); err != nil {
		return err
	}

	holders, err := uc.repo.CountStockHolders(ctx, id)
	if err != nil {
		return err
	}
	if holders > 0 {
		return fmt.Errorf("%w: product still has stock in %d warehouses", model.ErrConflict, holders)
	}
	linked, err := uc.repo.CountPOSProducts(ctx, id)
	if err != nil {
		return err
	}
	if linked > 0 {
		return fmt.Errorf("%w: product is published in the POS", model.ErrConflict)
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info("product deleted", zap.String("product_id", id))
	uc.invalidate()
	uc.unindex(id)
	return nil
}

func (uc *productUseCase) GenerateSKU(ctx context.Context, name, brand, category string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: name is required", model.ErrInvalidInput)
	}
	base := uc.skus.Generate(ctx, name, brand, category)
	return uc.skus.EnsureUnique(ctx, base, uc.taken(""))
}

// apply validates input and copies it onto p. A blank SKU is generated.
func (uc *productUseCase) apply(ctx context.Context, p *model.Product, input *dto.ProductInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", model.ErrInvalidInput)
	}

	productType := input.Type
	if productType == "" {
		productType = model.ProductStorable
	}
	if !model.ValidProductType(productType) {
		return fmt.Errorf("%w: unknown product type %q", model.ErrInvalidInput, productType)
	}

	if input.CostPrice.IsNegative() || input.SalePrice.IsNegative() {
		return fmt.Errorf("%w: prices must not be negative", model.ErrInvalidInput)
	}

	vat := model.DefaultVAT
	if input.VAT != nil {
		vat = *input.VAT
	}
	if vat.IsNegative() || vat.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: vat must be between 0 and 100", model.ErrInvalidInput)
	}

	unit := strings.TrimSpace(input.Unit)
	if unit == "" {
		unit = defaultUnit
	}

	code := strings.ToUpper(strings.TrimSpace(input.SKU))
	switch {
	case code == "":
		base := uc.skus.Generate(ctx, name, input.Brand, input.Category)
		generated, err := uc.skus.EnsureUnique(ctx, base, uc.taken(p.ID))
		if err != nil {
			return err
		}
		code = generated
	case code != p.SKU:
		taken, err := uc.repo.IsSKUTaken(ctx, code, p.ID)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: sku %s already exists", model.ErrConflict, code)
		}
	}

	p.Name = name
	p.Description = optional(input.Description)
	p.SKU = code
	p.Brand = optional(input.Brand)
	p.Category = optional(input.Category)
	p.Type = productType
	p.Unit = unit
	p.CostPrice = input.CostPrice
	p.SalePrice = input.SalePrice
	p.VAT = vat
	p.FinalPrice = model.FinalPriceOf(input.SalePrice, vat)
	p.IsPOSEnabled = input.IsPOSEnabled
	p.ImageURL = optional(input.ImageURL)
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}
	return nil
}

func (uc *productUseCase) taken(excludeID string) func(context.Context, string) (bool, error) {
	return func(ctx context.Context, code string) (bool, error) {
		return uc.repo.IsSKUTaken(ctx, code, excludeID)
	}
}

func cacheKey(filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("products:list:%x", md5.Sum(data)), nil
}

// invalidate drops every cached product list.
func (uc *productUseCase) invalidate() {
	if uc.cache == nil {
		return
	}
	go func() {
		if _, err := uc.cache.DeleteByPattern(context.Background(), "products:list:*"); err != nil {
			uc.logger.Warn("failed to invalidate product cache", zap.Error(err))
		}
	}()
}

func (uc *productUseCase) index(p *model.Product) {
	if uc.es == nil {
		return
	}
	doc := *p
	go func() {
		ctx := context.Background()
		_ = uc.es.CreateIndex(ctx, productIndex, productMapping)
		if err := uc.es.Index(ctx, productIndex, doc.ID, doc); err != nil {
			uc.logger.Error("failed to index product", zap.String("product_id", doc.ID), zap.Error(err))
		}
	}()
}

func (uc *productUseCase) unindex(id string) {
	if uc.es == nil {
		return
	}
	go func() {
		if err := uc.es.Delete(context.Background(), productIndex, id); err != nil {
			uc.logger.Error("failed to remove product from index", zap.String("product_id", id), zap.Error(err))
		}
	}()
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
