// Package convert holds the small wire/model conversions shared by handlers.
package convert

import (
	"strings"
	"time"

	hotelv1 "github.com/fekuna/termas-hotel-service/api/hotel/v1"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Decimal parses a money or quantity field. Empty means zero.
func Decimal(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, status.Errorf(codes.InvalidArgument, "%s: invalid number %q", field, s)
	}
	return d, nil
}

// Date parses a YYYY-MM-DD field. Empty means the zero time.
func Date(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(hotelv1.DateLayout, s)
	if err != nil {
		return time.Time{}, status.Errorf(codes.InvalidArgument, "%s: invalid date %q, want YYYY-MM-DD", field, s)
	}
	return t, nil
}

// OptDate is Date for optional filters.
func OptDate(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := Date(field, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DayEnd parses an inclusive YYYY-MM-DD upper bound into the exclusive
// start of the following day.
func DayEnd(field, s string) (*time.Time, error) {
	d, err := OptDate(field, s)
	if err != nil || d == nil {
		return nil, err
	}
	next := d.AddDate(0, 0, 1)
	return &next, nil
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(hotelv1.DateLayout)
}

func Str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func Opt(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func DecStr(p *decimal.Decimal) string {
	if p == nil {
		return ""
	}
	return p.String()
}
