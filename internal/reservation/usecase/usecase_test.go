package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/termas-hotel-service/internal/client"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/reservation/dto"
	"github.com/fekuna/termas-hotel-service/internal/room"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"github.com/fekuna/termas-hotel-service/pkg/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu           sync.Mutex
	reservations map[string]*model.Reservation
	comments     []model.ReservationComment
	payments     []model.ReservationPayment
	roomStatus   map[string]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{reservations: map[string]*model.Reservation{}, roomStatus: map[string]string{}}
}

func (f *fakeRepo) overlaps(r *model.Reservation) bool {
	for _, other := range f.reservations {
		if other.ID != r.ID && other.RoomID == r.RoomID && model.BlocksRoom(other.Status) && other.Overlaps(r.CheckIn, r.CheckOut) {
			return true
		}
	}
	return false
}

func (f *fakeRepo) Create(_ context.Context, r *model.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.overlaps(r) {
		return fmt.Errorf("%w: room is already booked for those dates", model.ErrConflict)
	}
	cp := *r
	f.reservations[r.ID] = &cp
	f.comments = append(f.comments, r.Comments...)
	f.payments = append(f.payments, r.Payments...)
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.reservations[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRepo) LoadDetails(_ context.Context, r *model.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.comments {
		if c.ReservationID == r.ID {
			r.Comments = append(r.Comments, c)
		}
	}
	for _, p := range f.payments {
		if p.ReservationID == r.ID {
			r.Payments = append(r.Payments, p)
		}
	}
	return nil
}

func (f *fakeRepo) FindAll(_ context.Context, _ *dto.ReservationFilters) ([]model.Reservation, int, error) {
	var out []model.Reservation
	for _, r := range f.reservations {
		out = append(out, *r)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(_ context.Context, r *model.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.overlaps(r) {
		return fmt.Errorf("%w: room is already booked for those dates", model.ErrConflict)
	}
	cp := *r
	f.reservations[r.ID] = &cp
	return nil
}

func (f *fakeRepo) ChangeStatus(_ context.Context, id, from, to string, comment *model.ReservationComment, roomStatus string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := f.reservations[id]
	if r.Status != from {
		return model.ErrInvalidTransition
	}
	r.Status = to
	if comment != nil {
		f.comments = append(f.comments, *comment)
	}
	if roomStatus != "" {
		f.roomStatus[r.RoomID] = roomStatus
	}
	return nil
}

func (f *fakeRepo) AddPayment(_ context.Context, p *model.ReservationPayment, comment *model.ReservationComment) (*model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := f.reservations[p.ReservationID]
	r.ApplyPayment(p.Amount)
	f.payments = append(f.payments, *p)
	if comment != nil {
		f.comments = append(f.comments, *comment)
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRepo) ListPayments(_ context.Context, id string) ([]model.ReservationPayment, error) {
	var out []model.ReservationPayment
	for _, p := range f.payments {
		if p.ReservationID == id {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) AddComment(_ context.Context, c *model.ReservationComment) error {
	f.comments = append(f.comments, *c)
	return nil
}

func (f *fakeRepo) Stats(_ context.Context) (*model.ReservationStats, error) {
	return &model.ReservationStats{Total: len(f.reservations), ActiveRooms: 3, OccupiedRooms: 1}, nil
}

func (f *fakeRepo) Arrivals(_ context.Context, d time.Time) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, r := range f.reservations {
		if r.CheckIn.Equal(d) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) Departures(_ context.Context, d time.Time) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, r := range f.reservations {
		if r.CheckOut.Equal(d) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) Occupancy(_ context.Context, from, to time.Time) ([]model.DailyOccupancy, error) {
	return nil, nil
}

type fakeRooms struct {
	room.Repository
	rooms map[string]*model.Room
}

func (f *fakeRooms) FindByID(_ context.Context, id string) (*model.Room, error) {
	if r, ok := f.rooms[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

type fakeClients struct {
	client.Repository
	clients map[string]*model.Client
}

func (f *fakeClients) FindByID(_ context.Context, id string) (*model.Client, error) {
	if c, ok := f.clients[id]; ok {
		return c, nil
	}
	return nil, nil
}

type sentMail struct {
	template  string
	recipient string
	data      map[string]any
}

type fakeMailer struct {
	sent chan sentMail
}

func (m *fakeMailer) Send(_ context.Context, templateID, recipient string, data map[string]any, _, _ string) (*model.SentEmail, error) {
	m.sent <- sentMail{template: templateID, recipient: recipient, data: data}
	return &model.SentEmail{TemplateID: templateID, Recipient: recipient, Status: model.EmailSent}, nil
}

type fixture struct {
	uc     *reservationUseCase
	repo   *fakeRepo
	mailer *fakeMailer
}

func newFixture() *fixture {
	repo := newFakeRepo()
	rooms := &fakeRooms{rooms: map[string]*model.Room{
		"room-1": {BaseModel: model.BaseModel{ID: "room-1"}, Number: "101", Type: "doble", Capacity: 2, PricePerNight: decimal.NewFromInt(50000), IsActive: true},
		"room-2": {BaseModel: model.BaseModel{ID: "room-2"}, Number: "102", Type: "suite", Capacity: 4, PricePerNight: decimal.NewFromInt(120000), IsActive: false},
	}}
	clients := &fakeClients{clients: map[string]*model.Client{
		"c-1": {BaseModel: model.BaseModel{ID: "c-1"}, Name: "Ana"},
	}}
	mailer := &fakeMailer{sent: make(chan sentMail, 8)}
	uc := NewReservationUseCase(repo, rooms, clients, mailer, time.UTC, logger.NewNop()).(*reservationUseCase)
	return &fixture{uc: uc, repo: repo, mailer: mailer}
}

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func createInput() *dto.CreateReservationInput {
	return &dto.CreateReservationInput{
		ClientID:   "c-1",
		GuestName:  "Ana Rojas",
		GuestEmail: "Ana@Example.com",
		GuestPhone: "+56911111111",
		CheckIn:    date("2026-02-10"),
		CheckOut:   date("2026-02-13"),
		Guests:     2,
		RoomID:     "room-1",
	}
}

func (f *fixture) waitMail(t *testing.T) sentMail {
	t.Helper()
	select {
	case m := <-f.mailer.sent:
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("no email sent")
	}
	return sentMail{}
}

func TestCreateReservation_PricesFromRoom(t *testing.T) {
	f := newFixture()
	in := createInput()
	in.Discount = dto.AdjustmentInput{Type: model.AdjustmentPercentage, Value: decimal.NewFromInt(10), Reason: "frecuente"}
	in.Observations = "Llega tarde"

	r, err := f.uc.CreateReservation(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, model.StatusPrereserva, r.Status)
	assert.Equal(t, "ana@example.com", r.GuestEmail)
	assert.Equal(t, "15000", r.DiscountAmount.String())
	assert.Equal(t, "135000", r.TotalAmount.String())
	assert.Equal(t, "135000", r.PendingAmount.String())
	assert.Equal(t, model.PaymentNone, r.PaymentStatus)
	require.Len(t, r.Comments, 2)
	assert.Equal(t, "Descuento aplicado: $15.000 (frecuente)", r.Comments[0].Text)
	assert.Equal(t, "Llega tarde", r.Comments[1].Text)

	m := f.waitMail(t)
	assert.Equal(t, model.TemplateReservationConfirmation, m.template)
	assert.Equal(t, "ana@example.com", m.recipient)
	assert.Equal(t, "101", m.data["habitacion"])
}

func TestCreateReservation_InitialPayment(t *testing.T) {
	f := newFixture()
	in := createInput()
	in.BaseAmount = decimal.NewFromInt(100000)
	in.InitialPayment = &dto.PaymentInput{Amount: decimal.NewFromInt(40000), Method: "transfer"}

	r, err := f.uc.CreateReservation(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "100000", r.TotalAmount.String())
	assert.Equal(t, "40000", r.PaidAmount.String())
	assert.Equal(t, "60000", r.PendingAmount.String())
	assert.Equal(t, model.PaymentPartial, r.PaymentStatus)
	require.Len(t, r.Payments, 1)
	assert.Len(t, f.repo.payments, 1)
}

func TestCreateReservation_Overlap(t *testing.T) {
	f := newFixture()
	_, err := f.uc.CreateReservation(context.Background(), createInput())
	require.NoError(t, err)

	in := createInput()
	in.CheckIn = date("2026-02-12")
	in.CheckOut = date("2026-02-14")
	_, err = f.uc.CreateReservation(context.Background(), in)
	assert.ErrorIs(t, err, model.ErrConflict)

	// Check-out day is free for the next arrival.
	in.CheckIn = date("2026-02-13")
	_, err = f.uc.CreateReservation(context.Background(), in)
	assert.NoError(t, err)
}

func TestCreateReservation_Validation(t *testing.T) {
	cases := map[string]func(*dto.CreateReservationInput){
		"missing client":      func(in *dto.CreateReservationInput) { in.ClientID = "" },
		"bad email":           func(in *dto.CreateReservationInput) { in.GuestEmail = "ana" },
		"missing phone":       func(in *dto.CreateReservationInput) { in.GuestPhone = " " },
		"checkout before":     func(in *dto.CreateReservationInput) { in.CheckOut = in.CheckIn },
		"no guests":           func(in *dto.CreateReservationInput) { in.Guests = 0 },
		"over capacity":       func(in *dto.CreateReservationInput) { in.Guests = 3 },
		"inactive room":       func(in *dto.CreateReservationInput) { in.RoomID = "room-2" },
		"corporate unnamed":   func(in *dto.CreateReservationInput) { in.ClientType = "corporate" },
		"unknown discount":    func(in *dto.CreateReservationInput) { in.Discount.Type = "gift" },
		"zero initial amount": func(in *dto.CreateReservationInput) { in.InitialPayment = &dto.PaymentInput{Method: "cash"} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			in := createInput()
			mutate(in)
			_, err := f.uc.CreateReservation(context.Background(), in)
			assert.ErrorIs(t, err, model.ErrInvalidInput)
		})
	}

	f := newFixture()
	in := createInput()
	in.ClientID = "missing"
	_, err := f.uc.CreateReservation(context.Background(), in)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestLifecycle(t *testing.T) {
	f := newFixture()
	ctx := middleware.WithUser(context.Background(), "u-1", "recepcion")

	r, err := f.uc.CreateReservation(ctx, createInput())
	require.NoError(t, err)
	f.waitMail(t)

	_, err = f.uc.CheckIn(ctx, r.ID)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)

	_, err = f.uc.Confirm(ctx, r.ID)
	require.NoError(t, err)
	_, err = f.uc.CheckIn(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoomOccupied, f.repo.roomStatus["room-1"])

	_, err = f.uc.Cancel(ctx, r.ID, "cambio de planes")
	assert.ErrorIs(t, err, model.ErrInvalidTransition)

	done, err := f.uc.CheckOut(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusFinalizada, done.Status)
	assert.Equal(t, model.RoomCleaning, f.repo.roomStatus["room-1"])
	assert.Equal(t, model.TemplateCheckoutThanks, f.waitMail(t).template)

	_, err = f.uc.CheckOut(ctx, r.ID)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)

	full, err := f.uc.GetReservation(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, full.Comments, 3)
	assert.Equal(t, "Estado cambiado de prereserva a confirmada", full.Comments[0].Text)
	assert.Equal(t, model.CommentSystem, full.Comments[0].CommentType)
}

func TestCancel_WithReason(t *testing.T) {
	f := newFixture()
	r, err := f.uc.CreateReservation(context.Background(), createInput())
	require.NoError(t, err)

	out, err := f.uc.Cancel(context.Background(), r.ID, "cambio de planes")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, out.Status)

	last := f.repo.comments[len(f.repo.comments)-1]
	assert.Equal(t, model.CommentCancellation, last.CommentType)
	assert.Contains(t, last.Text, "cambio de planes")

	// The room is free again once the reservation is cancelled.
	_, err = f.uc.CreateReservation(context.Background(), createInput())
	assert.NoError(t, err)
}

func TestAddPayment(t *testing.T) {
	f := newFixture()
	in := createInput()
	in.BaseAmount = decimal.NewFromInt(100000)
	r, err := f.uc.CreateReservation(context.Background(), in)
	require.NoError(t, err)
	f.waitMail(t)

	_, _, err = f.uc.AddPayment(context.Background(), r.ID, &dto.PaymentInput{Amount: decimal.NewFromInt(-1), Method: "cash"})
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	updated, p, err := f.uc.AddPayment(context.Background(), r.ID, &dto.PaymentInput{Amount: decimal.NewFromInt(120000), Method: "card", Reference: "voucher 12"})
	require.NoError(t, err)
	assert.Equal(t, "card", p.PaymentMethod)
	assert.Equal(t, model.PaymentPaid, updated.PaymentStatus)
	assert.True(t, updated.PendingAmount.IsZero())

	m := f.waitMail(t)
	assert.Equal(t, model.TemplatePaymentReceipt, m.template)
	assert.Equal(t, "voucher 12", m.data["referencia_pago"])

	payments, err := f.uc.ListPayments(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}

func TestUpdateReservation_RepricesOnNewDates(t *testing.T) {
	f := newFixture()
	r, err := f.uc.CreateReservation(context.Background(), createInput())
	require.NoError(t, err)
	assert.Equal(t, "150000", r.TotalAmount.String())

	out, err := f.uc.UpdateReservation(context.Background(), &dto.UpdateReservationInput{
		ID:         r.ID,
		GuestName:  r.GuestName,
		GuestEmail: r.GuestEmail,
		GuestPhone: r.GuestPhone,
		CheckIn:    date("2026-02-10"),
		CheckOut:   date("2026-02-11"),
		Guests:     1,
	})
	require.NoError(t, err)
	assert.Equal(t, "50000", out.TotalAmount.String())
	assert.Equal(t, "room-1", out.RoomID)
}

func TestAddComment(t *testing.T) {
	f := newFixture()
	r, err := f.uc.CreateReservation(context.Background(), createInput())
	require.NoError(t, err)

	_, err = f.uc.AddComment(context.Background(), r.ID, "  ", "")
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	c, err := f.uc.AddComment(context.Background(), r.ID, "Pide cuna", "service")
	require.NoError(t, err)
	assert.Equal(t, "Sistema", c.Author)
	assert.Equal(t, model.CommentService, c.CommentType)
}

func TestGetStats_OccupancyRate(t *testing.T) {
	f := newFixture()
	stats, err := f.uc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 33.33, stats.OccupancyRate)
}

func TestOccupancyByDate_Range(t *testing.T) {
	f := newFixture()
	_, err := f.uc.OccupancyByDate(context.Background(), date("2026-02-10"), date("2026-02-01"))
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestReservationNumber(t *testing.T) {
	assert.Equal(t, "3F2504E0", ReservationNumber("3f2504e0-4f89-11d3-9a0c-0305e82c3301"))
}
