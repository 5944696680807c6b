package convert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestDecimal(t *testing.T) {
	d, err := Decimal("amount", "1500.50")
	require.NoError(t, err)
	assert.Equal(t, "1500.5", d.String())

	d, err = Decimal("amount", "")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = Decimal("amount", "12,5")
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestDate(t *testing.T) {
	d, err := Date("check_in", "2024-12-24")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2024-12-24", FormatDate(d))

	_, err = Date("check_in", "24-12-2024")
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	p, err := OptDate("from", "")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestStrOpt(t *testing.T) {
	assert.Equal(t, "", Str(nil))
	assert.Nil(t, Opt(""))
	assert.Equal(t, "x", Str(Opt("x")))
}

func TestDayEnd(t *testing.T) {
	end, err := DayEnd("date_to", "2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *end)

	end, err = DayEnd("date_to", "")
	require.NoError(t, err)
	assert.Nil(t, end)

	_, err = DayEnd("date_to", "01-03-2024")
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
