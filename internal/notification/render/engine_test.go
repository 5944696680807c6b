package render

import (
	"testing"
	"time"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine() *Engine {
	e := NewEngine("Hotel Termas", "+56 63 2318 000", time.UTC)
	e.now = func() time.Time { return time.Date(2024, 7, 9, 15, 0, 0, 0, time.UTC) }
	return e
}

func TestRender_FormatsValues(t *testing.T) {
	e := newEngine()

	out := e.Render("{{ nombre_cliente }} | {{total_reserva}} | {{numero_huespedes}} | {{fecha_checkin}} | {{fecha_pago}} | {{saldo_restante}}", map[string]any{
		"nombre_cliente":   "Ana Pérez",
		"total_reserva":    decimal.RequireFromString("1234567.4"),
		"numero_huespedes": 3,
		"fecha_checkin":    time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
		"fecha_pago":       "2024-07-30T10:00:00Z",
		"saldo_restante":   0,
	})

	assert.Equal(t, "Ana Pérez | $1.234.567 | 3 | 01-08-2024 | 30-07-2024 | $0", out)
}

func TestRender_DefaultsAndLeftovers(t *testing.T) {
	e := newEngine()

	out := e.Render("{{empresa}} {{fecha_actual}} {{metodo_pago}} [{{desconocida}}] {{nombre_cliente}}", nil)
	assert.Equal(t, "Hotel Termas 09-07-2024 No especificado [] Estimado/a Cliente", out)
}

func TestRender_KeepsNonVariableBraces(t *testing.T) {
	e := newEngine()

	out := e.Render("{{  numero_reserva\t}} {{ no es variable }} {{", map[string]any{"numero_reserva": "AB12"})
	assert.Equal(t, "AB12 {{ no es variable }} {{", out)
}

func TestRender_NilPointers(t *testing.T) {
	e := newEngine()
	var amount *decimal.Decimal
	var day *time.Time

	assert.Equal(t, "[][]", e.Render("[{{monto_pagado}}][{{fecha_pago}}]", map[string]any{"monto_pagado": amount, "fecha_pago": day}))
}

func TestIsCurrency(t *testing.T) {
	assert.True(t, IsCurrency("total_reserva"))
	assert.True(t, IsCurrency("impuestos"))
	assert.True(t, IsCurrency("monto_pagado"))
	assert.False(t, IsCurrency("numero_reserva"))
}

func TestMissing(t *testing.T) {
	tmpl, ok := Find(model.TemplatePaymentReceipt)
	require.True(t, ok)

	missing := Missing(tmpl, map[string]any{
		"nombre_cliente": "Ana",
		"numero_reserva": "  ",
		"monto_pagado":   decimal.NewFromInt(1000),
		"total_reserva":  decimal.NewFromInt(5000),
		"total_pagado":   decimal.NewFromInt(1000),
		"saldo_restante": decimal.NewFromInt(4000),
	})
	assert.Equal(t, []string{"Número de Reserva"}, missing)
}

func TestBuiltin(t *testing.T) {
	ids := []string{}
	for _, tmpl := range Builtin() {
		ids = append(ids, tmpl.ID)
	}
	assert.Equal(t, []string{model.TemplateReservationConfirmation, model.TemplatePaymentReceipt, model.TemplateCheckoutThanks}, ids)

	_, ok := Find("budget_quote")
	assert.False(t, ok)
}

func TestSubject(t *testing.T) {
	e := newEngine()
	tmpl, _ := Find(model.TemplateReservationConfirmation)

	assert.Equal(t, "Confirmación de Reserva #AB12CD34 - Hotel Termas", e.Subject(tmpl, map[string]any{"numero_reserva": "AB12CD34"}))
}
