package usecase

import (
	"testing"
	"time"

	"billiard-club/internal/data/entity"
	"billiard-club/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeDiscount() *entity.DiscountCode {
	return &entity.DiscountCode{
		Code:     "WEEKEND10",
		Type:     entity.DiscountTypePercentage,
		Value:    10,
		IsActive: true,
	}
}

func TestCheckEligibility(t *testing.T) {
	now := time.Date(2025, 6, 15, 20, 0, 0, 0, time.UTC)

	t.Run("eligible", func(t *testing.T) {
		assert.NoError(t, CheckEligibility(activeDiscount(), 100_000, now))
	})

	t.Run("inactive", func(t *testing.T) {
		discount := activeDiscount()
		discount.IsActive = false

		err := CheckEligibility(discount, 100_000, now)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindDiscountNotEligible))
		assert.Equal(t, apperr.ReasonInactive, apperr.ReasonOf(err))
	})

	t.Run("not started", func(t *testing.T) {
		discount := activeDiscount()
		starts := now.Add(24 * time.Hour)
		discount.StartsAt = &starts

		err := CheckEligibility(discount, 100_000, now)
		require.Error(t, err)
		assert.Equal(t, apperr.ReasonNotStarted, apperr.ReasonOf(err))
	})

	t.Run("expired", func(t *testing.T) {
		discount := activeDiscount()
		ends := now.Add(-time.Hour)
		discount.EndsAt = &ends

		err := CheckEligibility(discount, 100_000, now)
		require.Error(t, err)
		assert.Equal(t, apperr.ReasonExpired, apperr.ReasonOf(err))
	})

	t.Run("window edges are inclusive of in-window instants", func(t *testing.T) {
		discount := activeDiscount()
		starts := now.Add(-time.Hour)
		ends := now.Add(time.Hour)
		discount.StartsAt = &starts
		discount.EndsAt = &ends

		assert.NoError(t, CheckEligibility(discount, 100_000, now))
	})

	t.Run("exhausted", func(t *testing.T) {
		discount := activeDiscount()
		limit := 5
		discount.UsageLimit = &limit
		discount.UsedCount = 5

		err := CheckEligibility(discount, 100_000, now)
		require.Error(t, err)
		assert.Equal(t, apperr.ReasonExhausted, apperr.ReasonOf(err))
	})

	t.Run("limit with remaining uses passes", func(t *testing.T) {
		discount := activeDiscount()
		limit := 5
		discount.UsageLimit = &limit
		discount.UsedCount = 4

		assert.NoError(t, CheckEligibility(discount, 100_000, now))
	})

	t.Run("below minimum spend", func(t *testing.T) {
		discount := activeDiscount()
		discount.MinSpend = 150_000

		err := CheckEligibility(discount, 100_000, now)
		require.Error(t, err)
		assert.Equal(t, apperr.ReasonBelowMinimum, apperr.ReasonOf(err))
	})

	t.Run("minimum spend met exactly", func(t *testing.T) {
		discount := activeDiscount()
		discount.MinSpend = 100_000

		assert.NoError(t, CheckEligibility(discount, 100_000, now))
	})
}
