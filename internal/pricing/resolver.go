// Package pricing picks the single hourly rate applicable to a table
// type at an instant. Resolution happens once, when an order opens; the
// chosen rate is snapshotted on the order and held for the whole
// session.
package pricing

import (
	"strings"
	"time"

	"billiard-club/internal/data/entity"
	"billiard-club/pkg/apperr"
)

// Resolve filters the rate set down to candidates matching the
// evaluation instant and selects by descending priority, ascending id
// as tie-break. The ordering is total, so the same inputs always give
// the same rate. No candidate left means the caller must block (an
// order never defaults to an arbitrary rate).
func Resolve(rates []*entity.PriceRate, at time.Time) (*entity.PriceRate, error) {
	var best *entity.PriceRate

	for _, rate := range rates {
		if !rate.IsActive {
			continue
		}
		if !Applies(rate, at) {
			continue
		}
		if best == nil || better(rate, best) {
			best = rate
		}
	}

	if best == nil {
		return nil, apperr.Newf(apperr.KindNoApplicableRate,
			"no active price rate applies at %s", at.Format(time.RFC3339))
	}

	return best, nil
}

// Applies reports whether a rate's weekday set and time-of-day window
// contain the instant.
//
// An overnight window (end earlier than start) wraps past midnight: the
// instant matches either on a listed weekday at or after start, or at
// or before end on the day following a listed weekday.
func Applies(rate *entity.PriceRate, at time.Time) bool {
	minute := at.Hour()*60 + at.Minute()

	if rate.StartMinute == nil || rate.EndMinute == nil {
		// No window: weekday set alone decides.
		return weekdayListed(rate.Weekdays, at.Weekday())
	}

	start, end := *rate.StartMinute, *rate.EndMinute

	if start <= end {
		return weekdayListed(rate.Weekdays, at.Weekday()) && minute >= start && minute <= end
	}

	// Overnight wrap
	if minute >= start {
		return weekdayListed(rate.Weekdays, at.Weekday())
	}
	if minute <= end {
		yesterday := (at.Weekday() + 6) % 7
		return weekdayListed(rate.Weekdays, yesterday)
	}

	return false
}

// weekdayListed treats an empty set as "every day".
func weekdayListed(weekdays []int32, day time.Weekday) bool {
	if len(weekdays) == 0 {
		return true
	}
	for _, d := range weekdays {
		if time.Weekday(d) == day {
			return true
		}
	}
	return false
}

// better orders candidates: higher priority wins, then the smaller id.
func better(candidate, current *entity.PriceRate) bool {
	if candidate.Priority != current.Priority {
		return candidate.Priority > current.Priority
	}
	return strings.Compare(candidate.ID.String(), current.ID.String()) < 0
}
