package whatsapp

import (
	"strings"
	"time"
	"unicode"
)

const (
	CmdInicio       = "/inicio"
	CmdHabitaciones = "/habitaciones"
	CmdSpa          = "/spa"
	CmdRestaurante  = "/restaurante"
	CmdReserva      = "/reserva"
	CmdPrecios      = "/precios"
	CmdUbicacion    = "/ubicacion"
	CmdContacto     = "/contacto"
	CmdEstado       = "/estado"

	chatSuffix    = "@c.us"
	countryPrefix = "56"
)

// Commands lists the bot commands in menu order.
var Commands = []string{
	CmdInicio,
	CmdHabitaciones,
	CmdSpa,
	CmdRestaurante,
	CmdReserva,
	CmdPrecios,
	CmdUbicacion,
	CmdContacto,
	CmdEstado,
}

func IsCommand(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "/")
}

// ExtractCommand returns the first word of text, lowercased.
func ExtractCommand(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// FormatPhoneNumber keeps digits only and adds the Chilean country code to
// 9-digit mobile numbers. Other lengths are returned as digits unchanged.
func FormatPhoneNumber(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)

	if strings.HasPrefix(digits, countryPrefix) {
		return digits
	}
	if len(digits) == 9 {
		return countryPrefix + digits
	}
	return digits
}

// ChatID is the gateway address for phone.
func ChatID(phone string) string {
	return FormatPhoneNumber(phone) + chatSuffix
}

// NumberFromChat strips the gateway suffix from a sender address.
func NumberFromChat(from string) string {
	return strings.TrimSuffix(from, chatSuffix)
}

// BusinessHours is an inclusive [Start, End] hour window in Location.
type BusinessHours struct {
	Start    int
	End      int
	Location *time.Location
}

func (b BusinessHours) Contains(t time.Time) bool {
	if b.Location != nil {
		t = t.In(b.Location)
	}
	h := t.Hour()
	return h >= b.Start && h <= b.End
}
