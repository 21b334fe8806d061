package billing

import (
	"testing"
	"time"

	"billiard-club/internal/data/entity"
	"billiard-club/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sessionStart = time.Date(2025, 3, 10, 19, 0, 0, 0, time.UTC)

func TestNinetyMinutesNoServices(t *testing.T) {
	// 60,000/hour for 90 minutes
	totals, err := Calculate(sessionStart, sessionStart.Add(90*time.Minute), 60000, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 90, totals.PlayMinutes)
	assert.Equal(t, int64(90000), totals.TableCost)
	assert.Equal(t, int64(90000), totals.Subtotal)
	assert.Equal(t, int64(0), totals.DiscountAmount)
	assert.Equal(t, int64(90000), totals.AmountPaid)
}

func TestThirtyMinutesWithServiceLine(t *testing.T) {
	items := []LineItem{{UnitPrice: 15000, Quantity: 2}}

	totals, err := Calculate(sessionStart, sessionStart.Add(30*time.Minute), 60000, items, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(30000), totals.TableCost)
	assert.Equal(t, int64(30000), totals.ServicesCost)
	assert.Equal(t, int64(60000), totals.Subtotal)
	assert.Equal(t, int64(60000), totals.AmountPaid)
}

func TestPercentageDiscount(t *testing.T) {
	// 10% off a 100,000 subtotal: 100 minutes at 60,000/hour
	discount := &Discount{Type: entity.DiscountTypePercentage, Value: 10}

	totals, err := Calculate(sessionStart, sessionStart.Add(100*time.Minute), 60000, nil, discount)
	require.NoError(t, err)

	assert.Equal(t, int64(100000), totals.Subtotal)
	assert.Equal(t, int64(10000), totals.DiscountAmount)
	assert.Equal(t, int64(90000), totals.AmountPaid)
}

func TestFixedDiscountCapsAtSubtotal(t *testing.T) {
	discount := &Discount{Type: entity.DiscountTypeFixed, Value: 150000}

	totals, err := Calculate(sessionStart, sessionStart.Add(100*time.Minute), 60000, nil, discount)
	require.NoError(t, err)

	assert.Equal(t, int64(100000), totals.Subtotal)
	assert.Equal(t, int64(100000), totals.DiscountAmount)
	assert.Equal(t, int64(0), totals.AmountPaid)
}

func TestPercentageOverHundredCapsAtSubtotal(t *testing.T) {
	// A code row carrying value > 100 must still never push the paid
	// amount below zero: 150% of a 100,000 subtotal caps at 100,000.
	discount := &Discount{Type: entity.DiscountTypePercentage, Value: 150}

	totals, err := Calculate(sessionStart, sessionStart.Add(100*time.Minute), 60000, nil, discount)
	require.NoError(t, err)

	assert.Equal(t, int64(100000), totals.Subtotal)
	assert.Equal(t, int64(100000), totals.DiscountAmount)
	assert.Equal(t, int64(0), totals.AmountPaid)
}

func TestPartialMinutesFloored(t *testing.T) {
	totals, err := Calculate(sessionStart, sessionStart.Add(59*time.Minute+59*time.Second), 60000, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 59, totals.PlayMinutes)
	assert.Equal(t, int64(59000), totals.TableCost)
}

func TestEndBeforeStartFails(t *testing.T) {
	_, err := Calculate(sessionStart, sessionStart.Add(-time.Minute), 60000, nil, nil)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidInterval))
}

func TestZeroLengthSession(t *testing.T) {
	totals, err := Calculate(sessionStart, sessionStart, 60000, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, totals.PlayMinutes)
	assert.Equal(t, int64(0), totals.AmountPaid)
}

func TestAmountPaidNeverNegative(t *testing.T) {
	cases := []struct {
		name     string
		minutes  int
		rate     int64
		items    []LineItem
		discount *Discount
	}{
		{"large fixed discount", 10, 6000, nil, &Discount{Type: entity.DiscountTypeFixed, Value: 1 << 40}},
		{"full percentage", 45, 60000, []LineItem{{UnitPrice: 5000, Quantity: 3}}, &Discount{Type: entity.DiscountTypePercentage, Value: 100}},
		{"percentage over 100", 100, 60000, nil, &Discount{Type: entity.DiscountTypePercentage, Value: 250}},
		{"no discount", 200, 45000, []LineItem{{UnitPrice: 12000, Quantity: 1}}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			totals, err := Calculate(sessionStart, sessionStart.Add(time.Duration(tc.minutes)*time.Minute), tc.rate, tc.items, tc.discount)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, totals.AmountPaid, int64(0))
			assert.LessOrEqual(t, totals.DiscountAmount, totals.Subtotal)
			assert.Equal(t, totals.Subtotal-totals.DiscountAmount, totals.AmountPaid)
		})
	}
}
