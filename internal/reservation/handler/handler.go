package handler

import (
	"context"

	hotelv1 "github.com/fekuna/termas-hotel-service/api/hotel/v1"
	"github.com/fekuna/termas-hotel-service/internal/convert"
	"github.com/fekuna/termas-hotel-service/internal/grpcerr"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/reservation"
	"github.com/fekuna/termas-hotel-service/internal/reservation/dto"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type ReservationHandler struct {
	uc     reservation.UseCase
	logger logger.ZapLogger
}

func NewReservationHandler(uc reservation.UseCase, log logger.ZapLogger) *ReservationHandler {
	return &ReservationHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ReservationHandler) CreateReservation(ctx context.Context, req *hotelv1.CreateReservationRequest) (*hotelv1.ReservationResponse, error) {
	checkIn, err := convert.Date("check_in", req.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := convert.Date("check_out", req.CheckOut)
	if err != nil {
		return nil, err
	}
	base, err := convert.Decimal("base_amount", req.BaseAmount)
	if err != nil {
		return nil, err
	}
	deposit, err := convert.Decimal("deposit_amount", req.DepositAmount)
	if err != nil {
		return nil, err
	}
	discount, err := toAdjustment("discount", req.Discount)
	if err != nil {
		return nil, err
	}
	surcharge, err := toAdjustment("surcharge", req.Surcharge)
	if err != nil {
		return nil, err
	}

	products := make([]dto.ProductLineInput, 0, len(req.Products))
	for _, p := range req.Products {
		if p == nil {
			continue
		}
		price, err := convert.Decimal("products.unit_price", p.UnitPrice)
		if err != nil {
			return nil, err
		}
		products = append(products, dto.ProductLineInput{
			ProductID: p.ProductId,
			Quantity:  int(p.Quantity),
			UnitPrice: price,
		})
	}

	var initial *dto.PaymentInput
	if req.InitialPayment != nil {
		initial, err = toPayment(req.InitialPayment)
		if err != nil {
			return nil, err
		}
	}

	r, err := h.uc.CreateReservation(ctx, &dto.CreateReservationInput{
		ClientID:       req.ClientId,
		GuestName:      req.GuestName,
		GuestEmail:     req.GuestEmail,
		GuestPhone:     req.GuestPhone,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		Guests:         int(req.Guests),
		RoomID:         req.RoomId,
		ClientType:     req.ClientType,
		CompanyName:    req.CompanyName,
		CompanyRUT:     req.CompanyRut,
		BillingName:    req.BillingName,
		BillingRUT:     req.BillingRut,
		BillingAddress: req.BillingAddress,
		AuthorizedBy:   req.AuthorizedBy,
		BaseAmount:     base,
		DepositAmount:  deposit,
		PaymentMethod:  req.PaymentMethod,
		Discount:       discount,
		Surcharge:      surcharge,
		Products:       products,
		Observations:   req.Observations,
		InitialPayment: initial,
	})
	if err != nil {
		h.logger.Error("failed to create reservation", zap.Error(err))
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.ReservationResponse{Reservation: mapReservationToProto(r)}, nil
}

func (h *ReservationHandler) GetReservation(ctx context.Context, req *hotelv1.GetReservationRequest) (*hotelv1.ReservationResponse, error) {
	r, err := h.uc.GetReservation(ctx, req.Id)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.ReservationResponse{Reservation: mapReservationToProto(r)}, nil
}

func (h *ReservationHandler) ListReservations(ctx context.Context, req *hotelv1.ListReservationsRequest) (*hotelv1.ListReservationsResponse, error) {
	from, err := convert.OptDate("check_in_from", req.CheckInFrom)
	if err != nil {
		return nil, err
	}
	to, err := convert.OptDate("check_in_to", req.CheckInTo)
	if err != nil {
		return nil, err
	}

	reservations, count, err := h.uc.ListReservations(ctx, &dto.ReservationFilters{
		Status:        req.Status,
		ClientType:    req.ClientType,
		CheckInFrom:   from,
		CheckInTo:     to,
		RoomID:        req.RoomId,
		PaymentStatus: req.PaymentStatus,
		SearchQuery:   req.Search,
		Page:          int(req.Page),
		PageSize:      int(req.PageSize),
	})
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.ListReservationsResponse{Reservations: mapReservations(reservations), Total: int32(count)}, nil
}

func (h *ReservationHandler) UpdateReservation(ctx context.Context, req *hotelv1.UpdateReservationRequest) (*hotelv1.ReservationResponse, error) {
	checkIn, err := convert.Date("check_in", req.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := convert.Date("check_out", req.CheckOut)
	if err != nil {
		return nil, err
	}
	base, err := convert.Decimal("base_amount", req.BaseAmount)
	if err != nil {
		return nil, err
	}
	discount, err := toAdjustment("discount", req.Discount)
	if err != nil {
		return nil, err
	}
	surcharge, err := toAdjustment("surcharge", req.Surcharge)
	if err != nil {
		return nil, err
	}

	r, err := h.uc.UpdateReservation(ctx, &dto.UpdateReservationInput{
		ID:             req.Id,
		GuestName:      req.GuestName,
		GuestEmail:     req.GuestEmail,
		GuestPhone:     req.GuestPhone,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		Guests:         int(req.Guests),
		RoomID:         req.RoomId,
		CompanyName:    req.CompanyName,
		CompanyRUT:     req.CompanyRut,
		BillingName:    req.BillingName,
		BillingRUT:     req.BillingRut,
		BillingAddress: req.BillingAddress,
		AuthorizedBy:   req.AuthorizedBy,
		BaseAmount:     base,
		Discount:       discount,
		Surcharge:      surcharge,
	})
	if err != nil {
		h.logger.Error("failed to update reservation", zap.String("reservation_id", req.Id), zap.Error(err))
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.ReservationResponse{Reservation: mapReservationToProto(r)}, nil
}

func (h *ReservationHandler) UpdateReservationStatus(ctx context.Context, req *hotelv1.UpdateReservationStatusRequest) (*hotelv1.ReservationResponse, error) {
	return h.respond(h.uc.UpdateStatus(ctx, req.Id, req.Status))
}

func (h *ReservationHandler) ConfirmReservation(ctx context.Context, req *hotelv1.ReservationActionRequest) (*hotelv1.ReservationResponse, error) {
	return h.respond(h.uc.Confirm(ctx, req.Id))
}

func (h *ReservationHandler) CancelReservation(ctx context.Context, req *hotelv1.ReservationActionRequest) (*hotelv1.ReservationResponse, error) {
	return h.respond(h.uc.Cancel(ctx, req.Id, req.Reason))
}

func (h *ReservationHandler) CheckIn(ctx context.Context, req *hotelv1.ReservationActionRequest) (*hotelv1.ReservationResponse, error) {
	return h.respond(h.uc.CheckIn(ctx, req.Id))
}

func (h *ReservationHandler) CheckOut(ctx context.Context, req *hotelv1.ReservationActionRequest) (*hotelv1.ReservationResponse, error) {
	return h.respond(h.uc.CheckOut(ctx, req.Id))
}

func (h *ReservationHandler) respond(r *model.Reservation, err error) (*hotelv1.ReservationResponse, error) {
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.ReservationResponse{Reservation: mapReservationToProto(r)}, nil
}

func (h *ReservationHandler) AddPayment(ctx context.Context, req *hotelv1.AddPaymentRequest) (*hotelv1.AddPaymentResponse, error) {
	if req.Payment == nil {
		return nil, status.Error(codes.InvalidArgument, "payment is required")
	}
	in, err := toPayment(req.Payment)
	if err != nil {
		return nil, err
	}
	r, p, err := h.uc.AddPayment(ctx, req.ReservationId, in)
	if err != nil {
		h.logger.Error("failed to add reservation payment", zap.String("reservation_id", req.ReservationId), zap.Error(err))
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.AddPaymentResponse{
		Reservation: mapReservationToProto(r),
		Payment:     mapPaymentToProto(p),
	}, nil
}

func (h *ReservationHandler) ListPayments(ctx context.Context, req *hotelv1.ListPaymentsRequest) (*hotelv1.ListPaymentsResponse, error) {
	payments, err := h.uc.ListPayments(ctx, req.ReservationId)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	out := make([]*hotelv1.ReservationPayment, len(payments))
	for i := range payments {
		out[i] = mapPaymentToProto(&payments[i])
	}
	return &hotelv1.ListPaymentsResponse{Payments: out}, nil
}

func (h *ReservationHandler) AddComment(ctx context.Context, req *hotelv1.AddCommentRequest) (*hotelv1.CommentResponse, error) {
	c, err := h.uc.AddComment(ctx, req.ReservationId, req.Text, req.CommentType)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.CommentResponse{Comment: mapCommentToProto(c)}, nil
}

func (h *ReservationHandler) GetStats(ctx context.Context, _ *hotelv1.GetStatsRequest) (*hotelv1.ReservationStats, error) {
	s, err := h.uc.GetStats(ctx)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.ReservationStats{
		Total:           int32(s.Total),
		Prereserva:      int32(s.Prereserva),
		Confirmada:      int32(s.Confirmada),
		EnCurso:         int32(s.EnCurso),
		Finalizada:      int32(s.Finalizada),
		Cancelled:       int32(s.Cancelled),
		Revenue:         s.Revenue.String(),
		PendingPayments: s.PendingPayments.String(),
		ActiveRooms:     int32(s.ActiveRooms),
		OccupiedRooms:   int32(s.OccupiedRooms),
		OccupancyRate:   s.OccupancyRate,
	}, nil
}

func (h *ReservationHandler) TodayArrivals(ctx context.Context, req *hotelv1.DayRequest) (*hotelv1.ListReservationsResponse, error) {
	d, err := convert.Date("date", req.Date)
	if err != nil {
		return nil, err
	}
	reservations, err := h.uc.TodayArrivals(ctx, d)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.ListReservationsResponse{Reservations: mapReservations(reservations), Total: int32(len(reservations))}, nil
}

func (h *ReservationHandler) TodayDepartures(ctx context.Context, req *hotelv1.DayRequest) (*hotelv1.ListReservationsResponse, error) {
	d, err := convert.Date("date", req.Date)
	if err != nil {
		return nil, err
	}
	reservations, err := h.uc.TodayDepartures(ctx, d)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.ListReservationsResponse{Reservations: mapReservations(reservations), Total: int32(len(reservations))}, nil
}

func (h *ReservationHandler) OccupancyByDate(ctx context.Context, req *hotelv1.OccupancyRequest) (*hotelv1.OccupancyResponse, error) {
	from, err := convert.Date("from", req.From)
	if err != nil {
		return nil, err
	}
	to, err := convert.Date("to", req.To)
	if err != nil {
		return nil, err
	}
	days, err := h.uc.OccupancyByDate(ctx, from, to)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	out := make([]*hotelv1.DailyOccupancy, len(days))
	for i, d := range days {
		out[i] = &hotelv1.DailyOccupancy{Date: convert.FormatDate(d.Date), Reservations: int32(d.Reservations)}
	}
	return &hotelv1.OccupancyResponse{Days: out}, nil
}

func toAdjustment(field string, a *hotelv1.Adjustment) (dto.AdjustmentInput, error) {
	if a == nil {
		return dto.AdjustmentInput{}, nil
	}
	v, err := convert.Decimal(field+".value", a.Value)
	if err != nil {
		return dto.AdjustmentInput{}, err
	}
	return dto.AdjustmentInput{Type: a.Type, Value: v, Reason: a.Reason}, nil
}

func toPayment(p *hotelv1.PaymentInput) (*dto.PaymentInput, error) {
	amount, err := convert.Decimal("payment.amount", p.Amount)
	if err != nil {
		return nil, err
	}
	return &dto.PaymentInput{
		Amount:    amount,
		Method:    p.Method,
		Reference: p.Reference,
		Notes:     p.Notes,
	}, nil
}

func mapReservations(reservations []model.Reservation) []*hotelv1.Reservation {
	out := make([]*hotelv1.Reservation, len(reservations))
	for i := range reservations {
		out[i] = mapReservationToProto(&reservations[i])
	}
	return out
}

func mapReservationToProto(r *model.Reservation) *hotelv1.Reservation {
	pb := &hotelv1.Reservation{
		Id:             r.ID,
		ClientId:       r.ClientID,
		GuestName:      r.GuestName,
		GuestEmail:     r.GuestEmail,
		GuestPhone:     r.GuestPhone,
		CheckIn:        convert.FormatDate(r.CheckIn),
		CheckOut:       convert.FormatDate(r.CheckOut),
		Nights:         int32(r.Nights()),
		Guests:         int32(r.Guests),
		RoomId:         r.RoomID,
		ClientType:     r.ClientType,
		CompanyName:    convert.Str(r.CompanyName),
		CompanyRut:     convert.Str(r.CompanyRUT),
		BillingName:    convert.Str(r.BillingName),
		BillingRut:     convert.Str(r.BillingRUT),
		BillingAddress: convert.Str(r.BillingAddress),
		AuthorizedBy:   convert.Str(r.AuthorizedBy),
		Status:         r.Status,
		TotalAmount:    r.TotalAmount.String(),
		DepositAmount:  r.DepositAmount.String(),
		PaidAmount:     r.PaidAmount.String(),
		PendingAmount:  r.PendingAmount.String(),
		PaymentStatus:  r.PaymentStatus,
		PaymentMethod:  convert.Str(r.PaymentMethod),
		CreatedBy:      convert.Str(r.CreatedBy),
		UpdatedBy:      convert.Str(r.UpdatedBy),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if r.DiscountType != "" && r.DiscountType != model.AdjustmentNone {
		pb.Discount = &hotelv1.Adjustment{
			Type:   r.DiscountType,
			Value:  r.DiscountValue.String(),
			Amount: r.DiscountAmount.String(),
			Reason: convert.Str(r.DiscountReason),
		}
	}
	if r.SurchargeType != "" && r.SurchargeType != model.AdjustmentNone {
		pb.Surcharge = &hotelv1.Adjustment{
			Type:   r.SurchargeType,
			Value:  r.SurchargeValue.String(),
			Amount: r.SurchargeAmount.String(),
			Reason: convert.Str(r.SurchargeReason),
		}
	}
	for _, p := range r.Products {
		pb.Products = append(pb.Products, &hotelv1.ReservationProduct{
			Id:         p.ID,
			ProductId:  p.ProductID,
			Quantity:   int32(p.Quantity),
			UnitPrice:  p.UnitPrice.String(),
			TotalPrice: p.TotalPrice.String(),
		})
	}
	for i := range r.Comments {
		pb.Comments = append(pb.Comments, mapCommentToProto(&r.Comments[i]))
	}
	for i := range r.Payments {
		pb.Payments = append(pb.Payments, mapPaymentToProto(&r.Payments[i]))
	}
	return pb
}

func mapCommentToProto(c *model.ReservationComment) *hotelv1.ReservationComment {
	return &hotelv1.ReservationComment{
		Id:          c.ID,
		Text:        c.Text,
		Author:      c.Author,
		CommentType: c.CommentType,
		CreatedAt:   c.CreatedAt,
	}
}

func mapPaymentToProto(p *model.ReservationPayment) *hotelv1.ReservationPayment {
	return &hotelv1.ReservationPayment{
		Id:            p.ID,
		ReservationId: p.ReservationID,
		Amount:        p.Amount.String(),
		PaymentMethod: p.PaymentMethod,
		Reference:     convert.Str(p.Reference),
		Notes:         convert.Str(p.Notes),
		ProcessedBy:   p.ProcessedBy,
		CreatedAt:     p.CreatedAt,
	}
}
