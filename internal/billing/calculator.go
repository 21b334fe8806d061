// Package billing computes final order totals. Everything here is pure:
// amounts are int64 minor currency units end to end, so there is no
// float accumulation error and rounding happens exactly once, by the
// integer division rules below. Display formatting is the caller's job.
package billing

import (
	"time"

	"billiard-club/internal/data/entity"
	"billiard-club/pkg/apperr"
)

// LineItem is one service line as the calculator sees it: the captured
// unit price and quantity, nothing else.
type LineItem struct {
	UnitPrice int64
	Quantity  int
}

// Discount is the part of a discount code that affects arithmetic.
type Discount struct {
	Type  entity.DiscountType
	Value int64
}

// Totals is the write-once result block persisted on a completed order.
type Totals struct {
	PlayMinutes    int
	TableCost      int64
	ServicesCost   int64
	Subtotal       int64
	DiscountAmount int64
	AmountPaid     int64
}

// Calculate turns a finished session into totals.
//
//	table_cost    = floor_minutes(start, end) * hourly_rate / 60
//	services_cost = sum(unit_price * quantity)
//	discount      = percentage: subtotal*value/100, fixed: value; both capped at subtotal
//	amount_paid   = subtotal - discount (never negative)
//
// end before start is an InvalidInterval error.
func Calculate(start, end time.Time, hourlyRate int64, items []LineItem, discount *Discount) (*Totals, error) {
	if end.Before(start) {
		return nil, apperr.Newf(apperr.KindInvalidInterval,
			"session end %s is before start %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
	}

	playMinutes := PlayMinutes(start, end)

	tableCost := int64(playMinutes) * hourlyRate / 60

	var servicesCost int64
	for _, item := range items {
		servicesCost += item.UnitPrice * int64(item.Quantity)
	}

	subtotal := tableCost + servicesCost
	discountAmount := DiscountAmount(subtotal, discount)

	return &Totals{
		PlayMinutes:    playMinutes,
		TableCost:      tableCost,
		ServicesCost:   servicesCost,
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		AmountPaid:     subtotal - discountAmount,
	}, nil
}

// PlayMinutes returns whole minutes between start and end, floored,
// never negative.
func PlayMinutes(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start) / time.Minute)
}

// DiscountAmount computes the deduction for a subtotal. Both branches
// cap at the subtotal so the paid amount never goes negative, whatever
// value the code row carries.
func DiscountAmount(subtotal int64, discount *Discount) int64 {
	if discount == nil {
		return 0
	}

	switch discount.Type {
	case entity.DiscountTypePercentage:
		amount := subtotal * discount.Value / 100
		if amount > subtotal {
			return subtotal
		}
		return amount
	case entity.DiscountTypeFixed:
		if discount.Value > subtotal {
			return subtotal
		}
		return discount.Value
	}

	return 0
}
