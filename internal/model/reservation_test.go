package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestDiscountAmount(t *testing.T) {
	base := dec(100000)

	assert.True(t, DiscountAmount(AdjustmentPercentage, dec(15), base).Equal(dec(15000)))
	assert.True(t, DiscountAmount(AdjustmentPercentage, decimal.RequireFromString("12.5"), dec(99999)).Equal(dec(12500)))
	assert.True(t, DiscountAmount(AdjustmentFixed, dec(30000), base).Equal(dec(30000)))
	assert.True(t, DiscountAmount(AdjustmentFixed, dec(250000), base).Equal(base), "fixed discount is capped at base")
	assert.True(t, DiscountAmount(AdjustmentNone, dec(10), base).IsZero())
	assert.True(t, DiscountAmount(AdjustmentPercentage, dec(-5), base).IsZero())
}

func TestSurchargeAmount(t *testing.T) {
	assert.True(t, SurchargeAmount(AdjustmentPercentage, dec(10), dec(50000)).Equal(dec(5000)))
	assert.True(t, SurchargeAmount(AdjustmentFixed, dec(80000), dec(50000)).Equal(dec(80000)))
	assert.True(t, SurchargeAmount(AdjustmentNone, dec(1), dec(1)).IsZero())
}

func TestReservationPricingAndPayments(t *testing.T) {
	r := &Reservation{
		DiscountType:   AdjustmentPercentage,
		DiscountValue:  dec(10),
		SurchargeType:  AdjustmentFixed,
		SurchargeValue: dec(5000),
	}
	r.PriceFrom(dec(100000))

	assert.True(t, r.TotalAmount.Equal(dec(95000)), r.TotalAmount.String())
	assert.True(t, r.PendingAmount.Equal(dec(95000)))
	assert.Equal(t, PaymentNone, r.PaymentStatus)

	r.ApplyPayment(dec(45000))
	assert.Equal(t, PaymentPartial, r.PaymentStatus)
	assert.True(t, r.PendingAmount.Equal(dec(50000)))

	r.ApplyPayment(dec(60000))
	assert.Equal(t, PaymentPaid, r.PaymentStatus)
	assert.True(t, r.PendingAmount.IsZero(), "pending never goes negative")
	assert.True(t, r.PaidAmount.Equal(dec(105000)))
}

func TestOverlaps(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC) }
	r := &Reservation{CheckIn: day(10), CheckOut: day(13)}

	assert.True(t, r.Overlaps(day(12), day(14)))
	assert.True(t, r.Overlaps(day(8), day(11)))
	assert.True(t, r.Overlaps(day(11), day(12)))
	assert.False(t, r.Overlaps(day(13), day(15)), "check-out day is free for the next guest")
	assert.False(t, r.Overlaps(day(7), day(10)))
	assert.Equal(t, 3, r.Nights())
}
