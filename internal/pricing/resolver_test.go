package pricing

import (
	"testing"
	"time"

	"billiard-club/internal/data/entity"
	"billiard-club/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rate(id string, hourly int64, priority int, active bool) *entity.PriceRate {
	r := &entity.PriceRate{
		HourlyRate: hourly,
		Priority:   priority,
		IsActive:   active,
	}
	r.ID = uuid.MustParse(id)
	return r
}

func window(r *entity.PriceRate, startMin, endMin int) *entity.PriceRate {
	r.StartMinute = &startMin
	r.EndMinute = &endMin
	return r
}

// Monday 2025-03-10, 20:30 local
var monEvening = time.Date(2025, 3, 10, 20, 30, 0, 0, time.UTC)

func TestInactiveRatesDiscarded(t *testing.T) {
	rates := []*entity.PriceRate{
		rate("00000000-0000-0000-0000-000000000001", 50000, 10, false),
		rate("00000000-0000-0000-0000-000000000002", 40000, 1, true),
	}

	chosen, err := Resolve(rates, monEvening)
	require.NoError(t, err)
	assert.Equal(t, int64(40000), chosen.HourlyRate)
}

func TestWeekdayFilter(t *testing.T) {
	weekend := rate("00000000-0000-0000-0000-000000000001", 80000, 5, true)
	weekend.Weekdays = []int32{0, 6} // Sunday, Saturday
	everyday := rate("00000000-0000-0000-0000-000000000002", 60000, 1, true)

	chosen, err := Resolve([]*entity.PriceRate{weekend, everyday}, monEvening)
	require.NoError(t, err)
	assert.Equal(t, int64(60000), chosen.HourlyRate)

	saturday := time.Date(2025, 3, 15, 20, 30, 0, 0, time.UTC)
	chosen, err = Resolve([]*entity.PriceRate{weekend, everyday}, saturday)
	require.NoError(t, err)
	assert.Equal(t, int64(80000), chosen.HourlyRate)
}

func TestTimeWindowContainment(t *testing.T) {
	evening := window(rate("00000000-0000-0000-0000-000000000001", 75000, 5, true), 18*60, 22*60)

	afternoon := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	_, err := Resolve([]*entity.PriceRate{evening}, afternoon)
	assert.True(t, apperr.IsKind(err, apperr.KindNoApplicableRate))

	chosen, err := Resolve([]*entity.PriceRate{evening}, monEvening)
	require.NoError(t, err)
	assert.Equal(t, int64(75000), chosen.HourlyRate)

	// Boundaries are inclusive
	atStart := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	_, err = Resolve([]*entity.PriceRate{evening}, atStart)
	assert.NoError(t, err)
	atEnd := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)
	_, err = Resolve([]*entity.PriceRate{evening}, atEnd)
	assert.NoError(t, err)
}

func TestOvernightWindowWraps(t *testing.T) {
	// 22:00 → 02:00, Fridays only: matches Friday night and the small
	// hours of Saturday, not Saturday night.
	night := window(rate("00000000-0000-0000-0000-000000000001", 90000, 5, true), 22*60, 2*60)
	night.Weekdays = []int32{5} // Friday

	friNight := time.Date(2025, 3, 14, 23, 30, 0, 0, time.UTC)
	_, err := Resolve([]*entity.PriceRate{night}, friNight)
	assert.NoError(t, err)

	satEarly := time.Date(2025, 3, 15, 1, 30, 0, 0, time.UTC)
	_, err = Resolve([]*entity.PriceRate{night}, satEarly)
	assert.NoError(t, err)

	satNight := time.Date(2025, 3, 15, 23, 30, 0, 0, time.UTC)
	_, err = Resolve([]*entity.PriceRate{night}, satNight)
	assert.True(t, apperr.IsKind(err, apperr.KindNoApplicableRate))

	friAfternoon := time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)
	_, err = Resolve([]*entity.PriceRate{night}, friAfternoon)
	assert.True(t, apperr.IsKind(err, apperr.KindNoApplicableRate))
}

func TestPriorityThenIDTieBreak(t *testing.T) {
	low := rate("00000000-0000-0000-0000-00000000000a", 40000, 1, true)
	highB := rate("00000000-0000-0000-0000-00000000000b", 50000, 9, true)
	highA := rate("00000000-0000-0000-0000-000000000009", 60000, 9, true)

	chosen, err := Resolve([]*entity.PriceRate{low, highB, highA}, monEvening)
	require.NoError(t, err)
	assert.Equal(t, highA.ID, chosen.ID)
}

func TestResolutionDeterministic(t *testing.T) {
	rates := []*entity.PriceRate{
		rate("00000000-0000-0000-0000-000000000003", 40000, 2, true),
		rate("00000000-0000-0000-0000-000000000001", 50000, 2, true),
		rate("00000000-0000-0000-0000-000000000002", 60000, 2, true),
	}

	first, err := Resolve(rates, monEvening)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, err := Resolve(rates, monEvening)
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
	}
}

func TestNoCandidateFails(t *testing.T) {
	_, err := Resolve(nil, monEvening)
	assert.True(t, apperr.IsKind(err, apperr.KindNoApplicableRate))
}
