package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/termas-hotel-service/internal/convert"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"go.uber.org/zap"
)

const mailTimeout = 30 * time.Second

// ReservationNumber is the short code guests see in emails.
func ReservationNumber(id string) string {
	n := strings.ReplaceAll(id, "-", "")
	if len(n) > 8 {
		n = n[:8]
	}
	return strings.ToUpper(n)
}

// notify sends templateID to the guest in the background. Failures are logged.
func (uc *reservationUseCase) notify(templateID string, r *model.Reservation, rm *model.Room, p *model.ReservationPayment) {
	if uc.mailer == nil || r.GuestEmail == "" {
		return
	}
	data := templateData(r, rm, p)
	recipient, id := r.GuestEmail, r.ID

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
		defer cancel()
		if _, err := uc.mailer.Send(ctx, templateID, recipient, data, "reservation", id); err != nil {
			uc.logger.Warn("reservation email not sent",
				zap.String("template", templateID),
				zap.String("reservation_id", id),
				zap.Error(err),
			)
		}
	}()
}

func templateData(r *model.Reservation, rm *model.Room, p *model.ReservationPayment) map[string]any {
	data := map[string]any{
		"numero_reserva":   ReservationNumber(r.ID),
		"nombre_cliente":   r.GuestName,
		"email_cliente":    r.GuestEmail,
		"fecha_checkin":    r.CheckIn,
		"fecha_checkout":   r.CheckOut,
		"numero_huespedes": r.Guests,
		"total_reserva":    r.TotalAmount,
		"estado_reserva":   r.Status,
		"saldo_restante":   r.PendingAmount,
		"total_pagado":     r.PaidAmount,
	}
	if rm != nil {
		data["habitacion"] = rm.Number
		data["tipo_habitacion"] = rm.Type
	}
	if p != nil {
		data["monto_pagado"] = p.Amount
		data["metodo_pago"] = p.PaymentMethod
		data["fecha_pago"] = p.CreatedAt
		data["referencia_pago"] = convert.Str(p.Reference)
	}
	return data
}
