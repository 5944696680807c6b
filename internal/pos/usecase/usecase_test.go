package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/termas-hotel-service/internal/category"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/pettycash"
	"github.com/fekuna/termas-hotel-service/internal/pos"
	"github.com/fekuna/termas-hotel-service/internal/pos/dto"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"github.com/fekuna/termas-hotel-service/pkg/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	pos.Repository
	products  map[string]model.POSProduct
	pending   map[int][]model.Product
	existing  map[string]bool
	created   []*model.POSProduct
	sale      *model.Sale
	prefix    string
	cashDelta decimal.Decimal
	payment   *model.SalePayment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		products: map[string]model.POSProduct{},
		pending:  map[int][]model.Product{},
		existing: map[string]bool{},
	}
}

func (f *fakeRepo) CreateProduct(_ context.Context, p *model.POSProduct) error {
	if f.existing[p.SKU] {
		return model.ErrConflict
	}
	f.created = append(f.created, p)
	return nil
}

func (f *fakeRepo) PendingSync(_ context.Context, registerType int) ([]model.Product, error) {
	return f.pending[registerType], nil
}

func (f *fakeRepo) FindProductsByIDs(_ context.Context, ids []string) ([]model.POSProduct, error) {
	var out []model.POSProduct
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateSale(_ context.Context, s *model.Sale, prefix string, cash decimal.Decimal) error {
	s.SaleNumber = model.FormatSaleNumber(prefix, 1)
	f.sale, f.prefix, f.cashDelta = s, prefix, cash
	return nil
}

func (f *fakeRepo) FindSale(_ context.Context, id string) (*model.Sale, error) {
	if f.sale == nil || f.sale.ID != id {
		return nil, nil
	}
	cp := *f.sale
	return &cp, nil
}

func (f *fakeRepo) AddPayment(_ context.Context, _ string, p *model.SalePayment, cash decimal.Decimal) error {
	f.payment, f.cashDelta = p, cash
	f.sale.PaidAmount = f.sale.PaidAmount.Add(p.Amount)
	f.sale.PaymentStatus = model.PaymentStatusOf(f.sale.PaidAmount, f.sale.Total)
	return nil
}

type fakeCategories struct {
	category.Repository
	defaults map[int]*model.Category
}

func (f *fakeCategories) DefaultForRegister(_ context.Context, rt int) (*model.Category, error) {
	return f.defaults[rt], nil
}

type fakeSessions struct {
	pettycash.Repository
	sessions map[string]*model.CashSession
}

func (f *fakeSessions) FindSession(_ context.Context, id string) (*model.CashSession, error) {
	return f.sessions[id], nil
}

type fakePublisher struct {
	keys   []string
	events []any
	err    error
}

func (f *fakePublisher) PublishJSON(_ context.Context, key string, event any) error {
	f.keys = append(f.keys, key)
	f.events = append(f.events, event)
	return f.err
}

type fixture struct {
	uc        pos.UseCase
	repo      *fakeRepo
	cats      *fakeCategories
	publisher *fakePublisher
}

func newFixture() *fixture {
	repo := newFakeRepo()
	repo.products["coffee"] = model.POSProduct{
		BaseModel: model.BaseModel{ID: "coffee"}, Name: "Café", Price: decimal.NewFromInt(2500),
		RegisterTypeID: model.RegisterRestaurant, ProductID: strPtr("prod-coffee"), IsActive: true,
	}
	repo.products["cake"] = model.POSProduct{
		BaseModel: model.BaseModel{ID: "cake"}, Name: "Kuchen", Price: decimal.NewFromInt(3200),
		RegisterTypeID: model.RegisterRestaurant, IsActive: true,
	}
	repo.products["towel"] = model.POSProduct{
		BaseModel: model.BaseModel{ID: "towel"}, Name: "Toalla", Price: decimal.NewFromInt(5000),
		RegisterTypeID: model.RegisterReception, IsActive: true,
	}
	repo.products["old"] = model.POSProduct{
		BaseModel: model.BaseModel{ID: "old"}, Name: "Antiguo", Price: decimal.NewFromInt(100),
		RegisterTypeID: model.RegisterRestaurant,
	}

	sessions := &fakeSessions{sessions: map[string]*model.CashSession{
		"s-open":   {BaseModel: model.BaseModel{ID: "s-open"}, RegisterTypeID: model.RegisterRestaurant, Status: model.SessionOpen},
		"s-closed": {BaseModel: model.BaseModel{ID: "s-closed"}, RegisterTypeID: model.RegisterRestaurant, Status: model.SessionClosed},
	}}
	cats := &fakeCategories{defaults: map[int]*model.Category{}}
	pub := &fakePublisher{}

	uc := NewPOSUseCase(repo, cats, sessions, pub, logger.NewNop()).(*posUseCase)
	uc.now = func() time.Time { return time.Date(2024, 7, 9, 13, 0, 0, 0, time.UTC) }
	return &fixture{uc: uc, repo: repo, cats: cats, publisher: pub}
}

func strPtr(s string) *string { return &s }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSyncPOSProducts_NoCategories(t *testing.T) {
	f := newFixture()

	_, err := f.uc.SyncPOSProducts(context.Background())
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestSyncPOSProducts_DualSync(t *testing.T) {
	f := newFixture()
	f.cats.defaults[model.RegisterReception] = &model.Category{BaseModel: model.BaseModel{ID: "cat-rec"}, RegisterTypeID: model.RegisterReception}
	f.cats.defaults[model.RegisterRestaurant] = &model.Category{BaseModel: model.BaseModel{ID: "cat-rest"}, RegisterTypeID: model.RegisterRestaurant}

	towel := model.Product{
		BaseModel: model.BaseModel{ID: "p1"}, Name: "Toalla", SKU: "TOA-001",
		SalePrice: dec("4201.68"), FinalPrice: dec("4999.99"), CostPrice: dec("2100.4"),
	}
	juice := model.Product{BaseModel: model.BaseModel{ID: "p2"}, Name: "Jugo", SalePrice: dec("1499.6")}
	f.repo.pending[model.RegisterReception] = []model.Product{towel, juice}
	f.repo.pending[model.RegisterRestaurant] = []model.Product{juice}
	f.repo.existing["PROD-p2-REST"] = true

	res, err := f.uc.SyncPOSProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Reception)
	assert.Equal(t, 0, res.Restaurant)
	assert.Equal(t, 1, res.Skipped)
	assert.Empty(t, res.Errors)

	require.Len(t, f.repo.created, 2)
	first := f.repo.created[0]
	assert.Equal(t, "TOA-001-REC", first.SKU)
	assert.Equal(t, "cat-rec", first.CategoryID)
	assert.True(t, first.Price.Equal(dec("5000")))
	assert.True(t, first.Cost.Equal(dec("2100")))
	assert.Equal(t, "p1", *first.ProductID)
	assert.True(t, first.IsActive)

	second := f.repo.created[1]
	assert.Equal(t, "PROD-p2-REC", second.SKU)
	assert.True(t, second.Price.Equal(dec("1500")))
}

func TestSyncPOSProducts_OneRegisterOnly(t *testing.T) {
	f := newFixture()
	f.cats.defaults[model.RegisterRestaurant] = &model.Category{BaseModel: model.BaseModel{ID: "cat-rest"}, RegisterTypeID: model.RegisterRestaurant}
	f.repo.pending[model.RegisterReception] = []model.Product{{BaseModel: model.BaseModel{ID: "p1"}, Name: "A"}}
	f.repo.pending[model.RegisterRestaurant] = []model.Product{{BaseModel: model.BaseModel{ID: "p1"}, Name: "A"}}

	res, err := f.uc.SyncPOSProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Reception)
	assert.Equal(t, 1, res.Restaurant)
}

func TestCreateSale(t *testing.T) {
	f := newFixture()
	ctx := middleware.WithUser(context.Background(), "cashier-1", "cashier")
	received := dec("10000")

	sale, err := f.uc.CreateSale(ctx, &dto.SaleInput{
		SessionID:   "s-open",
		TableNumber: " 4 ",
		Items: []dto.SaleItemInput{
			{POSProductID: "coffee", Quantity: 2},
			{POSProductID: "cake", Quantity: 1, Notes: "sin crema"},
		},
		Payments: []dto.PaymentInput{
			{Method: "cash", Amount: dec("5000"), ReceivedAmount: &received},
			{Method: "card", Amount: dec("2000")},
		},
		DiscountAmount: dec("1000"),
		TaxAmount:      dec("300"),
	})
	require.NoError(t, err)

	assert.Equal(t, "REST-20240709-0001", sale.SaleNumber)
	assert.Equal(t, "REST-20240709-", f.repo.prefix)
	assert.True(t, sale.Subtotal.Equal(dec("8200")))
	assert.True(t, sale.Total.Equal(dec("7500")))
	assert.True(t, sale.PaidAmount.Equal(dec("7000")))
	assert.Equal(t, model.PaymentPartial, sale.PaymentStatus)
	assert.Equal(t, model.SaleCompleted, sale.Status)
	assert.Equal(t, "4", *sale.TableNumber)
	assert.Equal(t, "cashier-1", *sale.UserID)

	assert.True(t, f.repo.cashDelta.Equal(dec("5000")))
	assert.True(t, sale.Payments[0].ChangeAmount.Equal(dec("5000")))
	assert.Nil(t, sale.Payments[1].ReceivedAmount)
	assert.True(t, sale.Items[0].Total.Equal(dec("5000")))
	assert.Equal(t, "prod-coffee", *sale.Items[0].ProductID)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, sale.ID, f.publisher.keys[0])
	event := f.publisher.events[0].(model.SaleCreatedEvent)
	assert.Equal(t, model.EventSaleCreated, event.EventType)
	assert.Equal(t, "REST-20240709-0001", event.Payload.SaleNumber)
	require.Len(t, event.Payload.Items, 2)
	assert.Equal(t, 2, event.Payload.Items[0].Quantity)
	assert.Nil(t, event.Payload.Items[1].ProductID)
}

func TestCreateSale_PublishFailureKeepsSale(t *testing.T) {
	f := newFixture()
	f.publisher.err = errors.New("broker down")

	sale, err := f.uc.CreateSale(context.Background(), &dto.SaleInput{
		SessionID: "s-open",
		Items:     []dto.SaleItemInput{{POSProductID: "coffee", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentNone, sale.PaymentStatus)
	assert.True(t, f.repo.cashDelta.IsZero())
}

func TestCreateSale_Validation(t *testing.T) {
	short := dec("100")
	cases := []struct {
		name  string
		input dto.SaleInput
		want  error
	}{
		{"no session", dto.SaleInput{Items: []dto.SaleItemInput{{POSProductID: "coffee", Quantity: 1}}}, model.ErrInvalidInput},
		{"unknown session", dto.SaleInput{SessionID: "nope", Items: []dto.SaleItemInput{{POSProductID: "coffee", Quantity: 1}}}, model.ErrNotFound},
		{"closed session", dto.SaleInput{SessionID: "s-closed", Items: []dto.SaleItemInput{{POSProductID: "coffee", Quantity: 1}}}, model.ErrSessionClosed},
		{"no items", dto.SaleInput{SessionID: "s-open"}, model.ErrInvalidInput},
		{"zero quantity", dto.SaleInput{SessionID: "s-open", Items: []dto.SaleItemInput{{POSProductID: "coffee"}}}, model.ErrInvalidInput},
		{"unknown product", dto.SaleInput{SessionID: "s-open", Items: []dto.SaleItemInput{{POSProductID: "ghost", Quantity: 1}}}, model.ErrNotFound},
		{"inactive product", dto.SaleInput{SessionID: "s-open", Items: []dto.SaleItemInput{{POSProductID: "old", Quantity: 1}}}, model.ErrInvalidInput},
		{"other register", dto.SaleInput{SessionID: "s-open", Items: []dto.SaleItemInput{{POSProductID: "towel", Quantity: 1}}}, model.ErrInvalidInput},
		{"bad method", dto.SaleInput{
			SessionID: "s-open",
			Items:     []dto.SaleItemInput{{POSProductID: "coffee", Quantity: 1}},
			Payments:  []dto.PaymentInput{{Method: "bitcoin", Amount: dec("100")}},
		}, model.ErrInvalidInput},
		{"zero payment", dto.SaleInput{
			SessionID: "s-open",
			Items:     []dto.SaleItemInput{{POSProductID: "coffee", Quantity: 1}},
			Payments:  []dto.PaymentInput{{Method: "cash"}},
		}, model.ErrInvalidInput},
		{"received less than amount", dto.SaleInput{
			SessionID: "s-open",
			Items:     []dto.SaleItemInput{{POSProductID: "coffee", Quantity: 1}},
			Payments:  []dto.PaymentInput{{Method: "cash", Amount: dec("2500"), ReceivedAmount: &short}},
		}, model.ErrInvalidInput},
		{"overpaid", dto.SaleInput{
			SessionID: "s-open",
			Items:     []dto.SaleItemInput{{POSProductID: "coffee", Quantity: 1}},
			Payments:  []dto.PaymentInput{{Method: "card", Amount: dec("2600")}},
		}, model.ErrInvalidInput},
		{"discount above subtotal", dto.SaleInput{
			SessionID:      "s-open",
			Items:          []dto.SaleItemInput{{POSProductID: "coffee", Quantity: 1}},
			DiscountAmount: dec("3000"),
		}, model.ErrInvalidInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.uc.CreateSale(context.Background(), &tc.input)
			assert.ErrorIs(t, err, tc.want)
			assert.Nil(t, f.repo.sale)
			assert.Empty(t, f.publisher.events)
		})
	}
}

func TestAddPaymentToSale(t *testing.T) {
	f := newFixture()
	sale, err := f.uc.CreateSale(context.Background(), &dto.SaleInput{
		SessionID: "s-open",
		Items:     []dto.SaleItemInput{{POSProductID: "coffee", Quantity: 2}},
	})
	require.NoError(t, err)

	updated, err := f.uc.AddPaymentToSale(context.Background(), sale.ID, &dto.PaymentInput{Method: "CASH", Amount: dec("5000")})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPaid, updated.PaymentStatus)
	assert.Equal(t, model.PayCash, f.repo.payment.PaymentMethod)
	assert.True(t, f.repo.cashDelta.Equal(dec("5000")))

	_, err = f.uc.AddPaymentToSale(context.Background(), "missing", &dto.PaymentInput{Method: "card", Amount: dec("1")})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestListSales_Validation(t *testing.T) {
	f := newFixture()

	_, _, err := f.uc.ListSales(context.Background(), &dto.SaleFilters{PaymentStatus: "unknown"})
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	from := time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC)
	to := from.Add(-time.Hour)
	_, _, err = f.uc.ListSales(context.Background(), &dto.SaleFilters{From: &from, To: &to})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestPaymentSummary_UnknownSession(t *testing.T) {
	f := newFixture()

	_, err := f.uc.PaymentSummary(context.Background(), "nope")
	assert.ErrorIs(t, err, model.ErrNotFound)
}
