package i18n

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCLP(t *testing.T) {
	assert.Equal(t, "$1.234.567", FormatCLP(decimal.NewFromInt(1234567)))
	assert.Equal(t, "$50.000", FormatCLP(decimal.RequireFromString("49999.6")))
	assert.Equal(t, "$0", FormatCLP(decimal.Zero))
	assert.Equal(t, "-$15.000", FormatCLP(decimal.NewFromInt(-15000)))
}
