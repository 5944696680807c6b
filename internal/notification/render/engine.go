// Package render fills the {{ key }} placeholders of the email templates.
package render

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/fekuna/termas-hotel-service/pkg/i18n"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasttemplate"
)

const dateLayout = "02-01-2006"

var (
	placeholderKey = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	isoDate        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
)

// currencyHints mark keys whose numeric values are rendered as pesos.
var currencyHints = []string{"total", "subtotal", "impuesto", "monto", "saldo", "pagado"}

type Engine struct {
	hotelName string
	phone     string
	loc       *time.Location
	now       func() time.Time
}

func NewEngine(hotelName, phone string, loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{hotelName: hotelName, phone: phone, loc: loc, now: time.Now}
}

func (e *Engine) defaults() map[string]any {
	today := e.now().In(e.loc).Format(dateLayout)
	return map[string]any{
		"empresa":               e.hotelName,
		"fecha_actual":          today,
		"contacto_persona":      "Equipo Comercial",
		"contacto_telefono":     e.phone,
		"total_reserva":         "$0",
		"monto_pagado":          "$0",
		"saldo_restante":        "$0",
		"total_pagado":          "$0",
		"metodo_pago":           "No especificado",
		"fecha_pago":            today,
		"referencia_pago":       "No aplica",
		"habitacion":            "No especificada",
		"tipo_habitacion":       "No especificado",
		"paquete":               "No especificado",
		"fecha_checkin":         "No especificada",
		"fecha_checkout":        "No especificada",
		"numero_reserva":        "No especificado",
		"nombre_cliente":        "Estimado/a Cliente",
		"email_cliente":         "No especificado",
		"numero_huespedes":      1,
		"estado_reserva":        "Confirmada",
		"politicas_cancelacion": "Consultar con el hotel",
	}
}

// Render replaces every placeholder of text. Keys missing from data fall back
// to the defaults; unknown keys are removed.
func (e *Engine) Render(text string, data map[string]any) string {
	values := e.defaults()
	for k, v := range data {
		values[k] = v
	}
	return fasttemplate.ExecuteFuncString(text, "{{", "}}", func(w io.Writer, tag string) (int, error) {
		key := strings.TrimSpace(tag)
		if !placeholderKey.MatchString(key) {
			// not a variable, leave the braces alone
			return io.WriteString(w, "{{"+tag+"}}")
		}
		v, ok := values[key]
		if !ok {
			return 0, nil
		}
		return io.WriteString(w, e.format(key, v))
	})
}

func (e *Engine) format(key string, v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case decimal.Decimal:
		if IsCurrency(key) {
			return i18n.FormatCLP(x)
		}
		return x.String()
	case *decimal.Decimal:
		if x == nil {
			return ""
		}
		return e.format(key, *x)
	case int:
		return e.format(key, decimal.NewFromInt(int64(x)))
	case int64:
		return e.format(key, decimal.NewFromInt(x))
	case float64:
		return e.format(key, decimal.NewFromFloat(x))
	case time.Time:
		return x.In(e.loc).Format(dateLayout)
	case *time.Time:
		if x == nil {
			return ""
		}
		return x.In(e.loc).Format(dateLayout)
	case string:
		if strings.Contains(key, "fecha") && isoDate.MatchString(x) {
			if t, err := time.Parse("2006-01-02", x[:10]); err == nil {
				return t.Format(dateLayout)
			}
		}
		return x
	}
	return fmt.Sprint(v)
}

// IsCurrency reports whether numeric values of key are rendered as pesos.
func IsCurrency(key string) bool {
	for _, h := range currencyHints {
		if strings.Contains(key, h) {
			return true
		}
	}
	return false
}

// Missing lists the labels of required variables that data leaves empty.
func Missing(t *Template, data map[string]any) []string {
	var missing []string
	for _, v := range t.Variables {
		if v.Required && empty(data[v.Key]) {
			missing = append(missing, v.Label)
		}
	}
	return missing
}

func empty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case time.Time:
		return x.IsZero()
	}
	return false
}

// Subject localizes the subject of t for data.
func (e *Engine) Subject(t *Template, data map[string]any) string {
	number := e.Render("{{numero_reserva}}", data)
	return i18n.T("", t.SubjectID, map[string]any{
		"Number":    number,
		"HotelName": e.hotelName,
	})
}
