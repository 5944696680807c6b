package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/fekuna/termas-hotel-service/internal/auth"
	"github.com/fekuna/termas-hotel-service/internal/client"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/reservation"
	"github.com/fekuna/termas-hotel-service/internal/reservation/dto"
	"github.com/fekuna/termas-hotel-service/internal/room"
	"github.com/fekuna/termas-hotel-service/pkg/i18n"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	clientIndividual = "individual"
	clientCorporate  = "corporate"

	systemAuthor = "Sistema"
)

type reservationUseCase struct {
	repo    reservation.Repository
	rooms   room.Repository
	clients client.Repository
	mailer  reservation.Mailer
	loc     *time.Location
	logger  logger.ZapLogger
}

// NewReservationUseCase builds the reservation usecase. mailer may be nil, in
// which case no emails are sent. Calendar days are taken in loc.
func NewReservationUseCase(
	repo reservation.Repository,
	rooms room.Repository,
	clients client.Repository,
	mailer reservation.Mailer,
	loc *time.Location,
	log logger.ZapLogger,
) reservation.UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &reservationUseCase{
		repo:    repo,
		rooms:   rooms,
		clients: clients,
		mailer:  mailer,
		loc:     loc,
		logger:  log,
	}
}

func (uc *reservationUseCase) CreateReservation(ctx context.Context, input *dto.CreateReservationInput) (*model.Reservation, error) {
	if strings.TrimSpace(input.ClientID) == "" {
		return nil, fmt.Errorf("%w: client is required", model.ErrInvalidInput)
	}
	if err := validateGuest(input.GuestName, input.GuestEmail, input.GuestPhone); err != nil {
		return nil, err
	}
	checkIn, checkOut := day(input.CheckIn), day(input.CheckOut)
	if err := validateStay(checkIn, checkOut, input.Guests); err != nil {
		return nil, err
	}
	if input.ClientType == "" {
		input.ClientType = clientIndividual
	}
	if input.ClientType != clientIndividual && input.ClientType != clientCorporate {
		return nil, fmt.Errorf("%w: unknown client type %q", model.ErrInvalidInput, input.ClientType)
	}
	if input.ClientType == clientCorporate && strings.TrimSpace(input.CompanyName) == "" {
		return nil, fmt.Errorf("%w: company name is required for corporate reservations", model.ErrInvalidInput)
	}
	if err := validateAdjustment("discount", input.Discount); err != nil {
		return nil, err
	}
	if err := validateAdjustment("surcharge", input.Surcharge); err != nil {
		return nil, err
	}
	if input.DepositAmount.IsNegative() || input.BaseAmount.IsNegative() {
		return nil, fmt.Errorf("%w: amounts must not be negative", model.ErrInvalidInput)
	}
	if input.InitialPayment != nil {
		if err := validatePayment(input.InitialPayment); err != nil {
			return nil, err
		}
	}

	c, err := uc.clients.FindByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("client %s: %w", input.ClientID, model.ErrNotFound)
	}
	rm, err := uc.bookableRoom(ctx, input.RoomID, input.Guests)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := auth.UserPtr(ctx)
	author := authorName(ctx)
	r := &model.Reservation{
		BaseModel:      model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		ClientID:       c.ID,
		GuestName:      strings.TrimSpace(input.GuestName),
		GuestEmail:     strings.ToLower(strings.TrimSpace(input.GuestEmail)),
		GuestPhone:     strings.TrimSpace(input.GuestPhone),
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		Guests:         input.Guests,
		RoomID:         rm.ID,
		ClientType:     input.ClientType,
		CompanyName:    optional(input.CompanyName),
		CompanyRUT:     optionalRUT(input.CompanyRUT),
		BillingName:    optional(input.BillingName),
		BillingRUT:     optionalRUT(input.BillingRUT),
		BillingAddress: optional(input.BillingAddress),
		AuthorizedBy:   optional(input.AuthorizedBy),
		Status:         model.StatusPrereserva,
		DepositAmount:  input.DepositAmount,
		PaymentMethod:  optional(input.PaymentMethod),
		CreatedBy:      user,
		UpdatedBy:      user,
	}
	setAdjustments(r, input.Discount, input.Surcharge)

	productsTotal := decimal.Zero
	for _, line := range input.Products {
		if strings.TrimSpace(line.ProductID) == "" || line.Quantity < 1 || line.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: product lines need a product, quantity >= 1 and a price", model.ErrInvalidInput)
		}
		total := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		productsTotal = productsTotal.Add(total)
		r.Products = append(r.Products, model.ReservationProduct{
			ID:            uuid.New().String(),
			ReservationID: r.ID,
			ProductID:     line.ProductID,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
			TotalPrice:    total,
			CreatedAt:     now,
		})
	}

	base := input.BaseAmount
	if !base.IsPositive() {
		base = rm.PricePerNight.Mul(decimal.NewFromInt(int64(r.Nights()))).Add(productsTotal)
	}
	r.PriceFrom(base)

	if r.DiscountAmount.IsPositive() {
		r.Comments = append(r.Comments, newComment(r.ID, model.CommentGeneral, systemAuthor, now,
			i18n.T("", "reservation.discount_applied", map[string]any{
				"Amount": i18n.FormatCLP(r.DiscountAmount),
				"Reason": input.Discount.Reason,
			})))
	}
	if obs := strings.TrimSpace(input.Observations); obs != "" {
		r.Comments = append(r.Comments, newComment(r.ID, model.CommentGeneral, author, now, obs))
	}

	var payment *model.ReservationPayment
	if p := input.InitialPayment; p != nil {
		payment = newPayment(ctx, r.ID, p, now)
		r.Payments = append(r.Payments, *payment)
		r.Comments = append(r.Comments, paymentComment(r.ID, author, payment, now))
		r.ApplyPayment(payment.Amount)
	}

	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	uc.logger.Info("reservation created",
		zap.String("reservation_id", r.ID),
		zap.String("room_id", r.RoomID),
		zap.String("total", r.TotalAmount.String()),
	)
	uc.notify(model.TemplateReservationConfirmation, r, rm, payment)
	return r, nil
}

func (uc *reservationUseCase) GetReservation(ctx context.Context, id string) (*model.Reservation, error) {
	r, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.LoadDetails(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (uc *reservationUseCase) ListReservations(ctx context.Context, filters *dto.ReservationFilters) ([]model.Reservation, int, error) {
	if filters.Status != "" && !model.ValidReservationStatus(filters.Status) {
		return nil, 0, fmt.Errorf("%w: unknown reservation status %q", model.ErrInvalidInput, filters.Status)
	}
	return uc.repo.FindAll(ctx, filters)
}

func (uc *reservationUseCase) UpdateReservation(ctx context.Context, input *dto.UpdateReservationInput) (*model.Reservation, error) {
	r, err := uc.find(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if !model.BlocksRoom(r.Status) {
		return nil, fmt.Errorf("%w: reservation is %s", model.ErrInvalidTransition, r.Status)
	}
	if err := validateGuest(input.GuestName, input.GuestEmail, input.GuestPhone); err != nil {
		return nil, err
	}
	checkIn, checkOut := day(input.CheckIn), day(input.CheckOut)
	if err := validateStay(checkIn, checkOut, input.Guests); err != nil {
		return nil, err
	}
	if err := validateAdjustment("discount", input.Discount); err != nil {
		return nil, err
	}
	if err := validateAdjustment("surcharge", input.Surcharge); err != nil {
		return nil, err
	}
	if input.BaseAmount.IsNegative() {
		return nil, fmt.Errorf("%w: amounts must not be negative", model.ErrInvalidInput)
	}
	if input.RoomID == "" {
		input.RoomID = r.RoomID
	}
	rm, err := uc.bookableRoom(ctx, input.RoomID, input.Guests)
	if err != nil {
		return nil, err
	}
	if r.ClientType == clientCorporate && strings.TrimSpace(input.CompanyName) == "" {
		return nil, fmt.Errorf("%w: company name is required for corporate reservations", model.ErrInvalidInput)
	}

	// Without an explicit base the previous one is kept, so products stay counted.
	base := input.BaseAmount
	if !base.IsPositive() {
		base = r.TotalAmount.Add(r.DiscountAmount).Sub(r.SurchargeAmount)
		if r.Nights() > 0 && (!checkIn.Equal(r.CheckIn) || !checkOut.Equal(r.CheckOut) || rm.ID != r.RoomID) {
			oldRoom, err := uc.rooms.FindByID(ctx, r.RoomID)
			if err != nil {
				return nil, err
			}
			extras := base
			if oldRoom != nil {
				extras = base.Sub(oldRoom.PricePerNight.Mul(decimal.NewFromInt(int64(r.Nights()))))
			}
			nights := int64(checkOut.Sub(checkIn).Hours() / 24)
			base = rm.PricePerNight.Mul(decimal.NewFromInt(nights)).Add(decimal.Max(decimal.Zero, extras))
		}
	}

	r.GuestName = strings.TrimSpace(input.GuestName)
	r.GuestEmail = strings.ToLower(strings.TrimSpace(input.GuestEmail))
	r.GuestPhone = strings.TrimSpace(input.GuestPhone)
	r.CheckIn = checkIn
	r.CheckOut = checkOut
	r.Guests = input.Guests
	r.RoomID = rm.ID
	r.CompanyName = optional(input.CompanyName)
	r.CompanyRUT = optionalRUT(input.CompanyRUT)
	r.BillingName = optional(input.BillingName)
	r.BillingRUT = optionalRUT(input.BillingRUT)
	r.BillingAddress = optional(input.BillingAddress)
	r.AuthorizedBy = optional(input.AuthorizedBy)
	setAdjustments(r, input.Discount, input.Surcharge)
	r.PriceFrom(base)
	r.UpdatedBy = auth.UserPtr(ctx)
	r.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	uc.logger.Info("reservation updated", zap.String("reservation_id", r.ID))
	return r, nil
}

func (uc *reservationUseCase) UpdateStatus(ctx context.Context, id, status string) (*model.Reservation, error) {
	if !model.ValidReservationStatus(status) {
		return nil, fmt.Errorf("%w: unknown reservation status %q", model.ErrInvalidInput, status)
	}
	switch status {
	case model.StatusEnCurso:
		return uc.CheckIn(ctx, id)
	case model.StatusFinalizada:
		return uc.CheckOut(ctx, id)
	case model.StatusCancelled:
		return uc.Cancel(ctx, id, "")
	}
	return uc.transition(ctx, id, status, "", nil)
}

func (uc *reservationUseCase) Confirm(ctx context.Context, id string) (*model.Reservation, error) {
	return uc.transition(ctx, id, model.StatusConfirmada, "", nil)
}

func (uc *reservationUseCase) Cancel(ctx context.Context, id, reason string) (*model.Reservation, error) {
	var extra *model.ReservationComment
	if reason = strings.TrimSpace(reason); reason != "" {
		c := newComment(id, model.CommentCancellation, authorName(ctx), time.Now(), reason)
		extra = &c
	}
	return uc.transition(ctx, id, model.StatusCancelled, "", extra)
}

func (uc *reservationUseCase) CheckIn(ctx context.Context, id string) (*model.Reservation, error) {
	return uc.transition(ctx, id, model.StatusEnCurso, model.RoomOccupied, nil)
}

func (uc *reservationUseCase) CheckOut(ctx context.Context, id string) (*model.Reservation, error) {
	r, err := uc.transition(ctx, id, model.StatusFinalizada, model.RoomCleaning, nil)
	if err != nil {
		return nil, err
	}
	if rm, err := uc.rooms.FindByID(ctx, r.RoomID); err == nil && rm != nil {
		uc.notify(model.TemplateCheckoutThanks, r, rm, nil)
	}
	return r, nil
}

// transition moves the reservation to status and records a system comment.
// When extra is set its text is appended and its type replaces "system".
func (uc *reservationUseCase) transition(ctx context.Context, id, status, roomStatus string, extra *model.ReservationComment) (*model.Reservation, error) {
	r, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !model.CanTransition(r.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, r.Status, status)
	}

	now := time.Now()
	text := i18n.T("", "reservation.status_changed", map[string]any{"From": r.Status, "To": status})
	kind := model.CommentSystem
	if extra != nil {
		text += ". " + extra.Text
		kind = extra.CommentType
	}
	comment := newComment(r.ID, kind, systemAuthor, now, text)

	if err := uc.repo.ChangeStatus(ctx, r.ID, r.Status, status, &comment, roomStatus); err != nil {
		return nil, err
	}
	uc.logger.Info("reservation status changed",
		zap.String("reservation_id", r.ID),
		zap.String("from", r.Status),
		zap.String("to", status),
	)
	r.Status = status
	r.UpdatedAt = now
	return r, nil
}

func (uc *reservationUseCase) AddPayment(ctx context.Context, id string, input *dto.PaymentInput) (*model.Reservation, *model.ReservationPayment, error) {
	if err := validatePayment(input); err != nil {
		return nil, nil, err
	}
	r, err := uc.find(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if r.Status == model.StatusCancelled {
		return nil, nil, fmt.Errorf("%w: reservation is cancelled", model.ErrInvalidTransition)
	}

	now := time.Now()
	p := newPayment(ctx, r.ID, input, now)
	comment := paymentComment(r.ID, authorName(ctx), p, now)

	updated, err := uc.repo.AddPayment(ctx, p, &comment)
	if err != nil {
		return nil, nil, err
	}
	uc.logger.Info("reservation payment registered",
		zap.String("reservation_id", r.ID),
		zap.String("amount", p.Amount.String()),
		zap.String("payment_status", updated.PaymentStatus),
	)

	if rm, err := uc.rooms.FindByID(ctx, updated.RoomID); err == nil && rm != nil {
		uc.notify(model.TemplatePaymentReceipt, updated, rm, p)
	}
	return updated, p, nil
}

func (uc *reservationUseCase) ListPayments(ctx context.Context, id string) ([]model.ReservationPayment, error) {
	if _, err := uc.find(ctx, id); err != nil {
		return nil, err
	}
	return uc.repo.ListPayments(ctx, id)
}

func (uc *reservationUseCase) AddComment(ctx context.Context, id, text, commentType string) (*model.ReservationComment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", model.ErrInvalidInput)
	}
	if commentType == "" {
		commentType = model.CommentGeneral
	}
	switch commentType {
	case model.CommentGeneral, model.CommentPayment, model.CommentService, model.CommentCancellation, model.CommentSystem:
	default:
		return nil, fmt.Errorf("%w: unknown comment type %q", model.ErrInvalidInput, commentType)
	}
	if _, err := uc.find(ctx, id); err != nil {
		return nil, err
	}

	c := newComment(id, commentType, authorName(ctx), time.Now(), text)
	if err := uc.repo.AddComment(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (uc *reservationUseCase) GetStats(ctx context.Context) (*model.ReservationStats, error) {
	stats, err := uc.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	if stats.ActiveRooms > 0 {
		rate := float64(stats.OccupiedRooms) / float64(stats.ActiveRooms) * 100
		stats.OccupancyRate = float64(int(rate*100+0.5)) / 100
	}
	return stats, nil
}

func (uc *reservationUseCase) TodayArrivals(ctx context.Context, d time.Time) ([]model.Reservation, error) {
	return uc.repo.Arrivals(ctx, uc.dayOrToday(d))
}

func (uc *reservationUseCase) TodayDepartures(ctx context.Context, d time.Time) ([]model.Reservation, error) {
	return uc.repo.Departures(ctx, uc.dayOrToday(d))
}

func (uc *reservationUseCase) OccupancyByDate(ctx context.Context, from, to time.Time) ([]model.DailyOccupancy, error) {
	from, to = day(from), day(to)
	if from.IsZero() || to.IsZero() {
		return nil, fmt.Errorf("%w: from and to are required", model.ErrInvalidInput)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: to must not be before from", model.ErrInvalidInput)
	}
	if to.Sub(from) > 366*24*time.Hour {
		return nil, fmt.Errorf("%w: range is limited to one year", model.ErrInvalidInput)
	}
	return uc.repo.Occupancy(ctx, from, to)
}

func (uc *reservationUseCase) find(ctx context.Context, id string) (*model.Reservation, error) {
	r, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("reservation %s: %w", id, model.ErrNotFound)
	}
	return r, nil
}

func (uc *reservationUseCase) bookableRoom(ctx context.Context, roomID string, guests int) (*model.Room, error) {
	if strings.TrimSpace(roomID) == "" {
		return nil, fmt.Errorf("%w: room is required", model.ErrInvalidInput)
	}
	rm, err := uc.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if rm == nil {
		return nil, fmt.Errorf("room %s: %w", roomID, model.ErrNotFound)
	}
	if !rm.IsActive {
		return nil, fmt.Errorf("%w: room %s is not active", model.ErrInvalidInput, rm.Number)
	}
	if guests > rm.Capacity {
		return nil, fmt.Errorf("%w: room %s holds at most %d guests", model.ErrInvalidInput, rm.Number, rm.Capacity)
	}
	return rm, nil
}

func (uc *reservationUseCase) dayOrToday(d time.Time) time.Time {
	if d.IsZero() {
		d = time.Now().In(uc.loc)
	}
	return day(d)
}

func validateGuest(name, email, phone string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: guest name is required", model.ErrInvalidInput)
	}
	if strings.TrimSpace(phone) == "" {
		return fmt.Errorf("%w: guest phone is required", model.ErrInvalidInput)
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: guest email is required", model.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid guest email %q", model.ErrInvalidInput, email)
	}
	return nil
}

func validateStay(checkIn, checkOut time.Time, guests int) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return fmt.Errorf("%w: check-in and check-out dates are required", model.ErrInvalidInput)
	}
	if !checkOut.After(checkIn) {
		return fmt.Errorf("%w: check-out must be after check-in", model.ErrInvalidInput)
	}
	if guests < 1 {
		return fmt.Errorf("%w: at least one guest is required", model.ErrInvalidInput)
	}
	return nil
}

func validateAdjustment(name string, a dto.AdjustmentInput) error {
	if a.Type == "" {
		return nil
	}
	if !model.ValidAdjustment(a.Type) {
		return fmt.Errorf("%w: unknown %s type %q", model.ErrInvalidInput, name, a.Type)
	}
	if a.Value.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative", model.ErrInvalidInput, name)
	}
	if a.Type == model.AdjustmentPercentage && a.Value.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: %s percentage must not exceed 100", model.ErrInvalidInput, name)
	}
	return nil
}

func validatePayment(p *dto.PaymentInput) error {
	if !p.Amount.IsPositive() {
		return fmt.Errorf("%w: payment amount must be positive", model.ErrInvalidInput)
	}
	if strings.TrimSpace(p.Method) == "" {
		return fmt.Errorf("%w: payment method is required", model.ErrInvalidInput)
	}
	return nil
}

func setAdjustments(r *model.Reservation, discount, surcharge dto.AdjustmentInput) {
	r.DiscountType, r.DiscountValue, r.DiscountReason = model.AdjustmentNone, decimal.Zero, nil
	if discount.Type != "" && discount.Type != model.AdjustmentNone {
		r.DiscountType, r.DiscountValue, r.DiscountReason = discount.Type, discount.Value, optional(discount.Reason)
	}
	r.SurchargeType, r.SurchargeValue, r.SurchargeReason = model.AdjustmentNone, decimal.Zero, nil
	if surcharge.Type != "" && surcharge.Type != model.AdjustmentNone {
		r.SurchargeType, r.SurchargeValue, r.SurchargeReason = surcharge.Type, surcharge.Value, optional(surcharge.Reason)
	}
}

func newComment(reservationID, kind, author string, at time.Time, text string) model.ReservationComment {
	return model.ReservationComment{
		ID:            uuid.New().String(),
		ReservationID: reservationID,
		Text:          text,
		Author:        author,
		CommentType:   kind,
		CreatedAt:     at,
	}
}

func newPayment(ctx context.Context, reservationID string, in *dto.PaymentInput, at time.Time) *model.ReservationPayment {
	return &model.ReservationPayment{
		ID:            uuid.New().String(),
		ReservationID: reservationID,
		Amount:        in.Amount,
		PaymentMethod: strings.TrimSpace(in.Method),
		Reference:     optional(in.Reference),
		Notes:         optional(in.Notes),
		ProcessedBy:   authorName(ctx),
		CreatedAt:     at,
	}
}

func paymentComment(reservationID, author string, p *model.ReservationPayment, at time.Time) model.ReservationComment {
	text := i18n.T("", "reservation.payment_registered", map[string]any{
		"Amount": i18n.FormatCLP(p.Amount),
		"Method": p.PaymentMethod,
	})
	return newComment(reservationID, model.CommentPayment, author, at, text)
}

func authorName(ctx context.Context) string {
	if id := auth.GetUserID(ctx); id != "" {
		return id
	}
	return systemAuthor
}

// day truncates t to its calendar date, keeping the date fields as written.
func day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func optionalRUT(s string) *string {
	return optional(model.NormalizeRUT(s))
}
