package render

import "github.com/fekuna/termas-hotel-service/internal/model"

const (
	TypeText     = "text"
	TypeNumber   = "number"
	TypeDate     = "date"
	TypeCurrency = "currency"
)

type Variable struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// Template is a built-in email. SubjectID is the i18n message of the subject;
// Body uses {{ key }} placeholders.
type Template struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Category  string     `json:"category"`
	SubjectID string     `json:"subject_id"`
	Body      string     `json:"body"`
	Variables []Variable `json:"variables"`
}

var (
	varClient   = Variable{Key: "nombre_cliente", Label: "Nombre del Cliente", Type: TypeText, Required: true}
	varNumber   = Variable{Key: "numero_reserva", Label: "Número de Reserva", Type: TypeText, Required: true}
	varCheckIn  = Variable{Key: "fecha_checkin", Label: "Fecha de Check-in", Type: TypeDate, Required: true}
	varCheckOut = Variable{Key: "fecha_checkout", Label: "Fecha de Check-out", Type: TypeDate, Required: true}
	varRoom     = Variable{Key: "habitacion", Label: "Habitación", Type: TypeText}
	varGuests   = Variable{Key: "numero_huespedes", Label: "Número de Huéspedes", Type: TypeNumber}
	varTotal    = Variable{Key: "total_reserva", Label: "Total de la Reserva", Type: TypeCurrency, Required: true}
	varAmount   = Variable{Key: "monto_pagado", Label: "Monto Pagado", Type: TypeCurrency, Required: true}
	varMethod   = Variable{Key: "metodo_pago", Label: "Método de Pago", Type: TypeText}
	varPaidOn   = Variable{Key: "fecha_pago", Label: "Fecha de Pago", Type: TypeDate}
	varPaid     = Variable{Key: "total_pagado", Label: "Total Pagado", Type: TypeCurrency, Required: true}
	varBalance  = Variable{Key: "saldo_restante", Label: "Saldo Restante", Type: TypeCurrency, Required: true}
)

var builtin = []Template{
	{
		ID:        model.TemplateReservationConfirmation,
		Name:      "Confirmación de Reserva",
		Category:  "reservation",
		SubjectID: "email.subject.reservation_confirmation",
		Body: `Confirmación de Reserva {{numero_reserva}} - {{empresa}}

Estimado/a {{nombre_cliente}},

Su reserva ha sido confirmada exitosamente:

Reserva N°: {{numero_reserva}}
Check-in: {{fecha_checkin}}
Check-out: {{fecha_checkout}}
Habitación: {{habitacion}} ({{tipo_habitacion}})
Huéspedes: {{numero_huespedes}}
Total: {{total_reserva}}
Pagado: {{total_pagado}}
Saldo: {{saldo_restante}}

Contacto: {{contacto_telefono}}

¡Esperamos brindarle una experiencia inolvidable!

Saludos cordiales,
Equipo de Reservas {{empresa}}
`,
		Variables: []Variable{varClient, varNumber, varCheckIn, varCheckOut, varRoom, varGuests, varTotal},
	},
	{
		ID:        model.TemplatePaymentReceipt,
		Name:      "Comprobante de Pago",
		Category:  "client",
		SubjectID: "email.subject.payment_receipt",
		Body: `Confirmación de Pago - Reserva {{numero_reserva}} - {{empresa}}

Estimado/a {{nombre_cliente}},

Hemos recibido su pago:

Reserva N°: {{numero_reserva}}
Monto: {{monto_pagado}}
Método: {{metodo_pago}}
Fecha: {{fecha_pago}}
Referencia: {{referencia_pago}}

Total Reserva: {{total_reserva}}
Total Pagado: {{total_pagado}}
Saldo Restante: {{saldo_restante}}

¡Gracias por su pago!

Saludos cordiales,
Equipo de Reservas {{empresa}}
`,
		Variables: []Variable{varClient, varNumber, varAmount, varMethod, varPaidOn, varTotal, varPaid, varBalance},
	},
	{
		ID:        model.TemplateCheckoutThanks,
		Name:      "Agradecimiento Check-out",
		Category:  "reservation",
		SubjectID: "email.subject.checkout_thanks",
		Body: `Gracias por su visita - {{empresa}}

Estimado/a {{nombre_cliente}},

Gracias por alojarse con nosotros entre el {{fecha_checkin}} y el {{fecha_checkout}}.
Esperamos que haya disfrutado su estadía y volver a recibirle pronto.

Reserva N°: {{numero_reserva}}

Saludos cordiales,
Equipo {{empresa}}
{{contacto_telefono}}
`,
		Variables: []Variable{varClient, varNumber, varCheckIn, varCheckOut},
	},
}

// Builtin lists the built-in templates.
func Builtin() []Template {
	out := make([]Template, len(builtin))
	copy(out, builtin)
	return out
}

func Find(id string) (*Template, bool) {
	for i := range builtin {
		if builtin[i].ID == id {
			t := builtin[i]
			return &t, true
		}
	}
	return nil, false
}
