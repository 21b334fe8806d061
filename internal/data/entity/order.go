package entity

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusActive     OrderStatus = "active"
	OrderStatusPendingEnd OrderStatus = "pending_end"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Order is one table occupancy session from open to settlement.
// HourlyRate snapshots the resolved price rate at open time; later rate
// edits do not affect a running session. The totals block stays NULL
// until the order completes and is write-once after that.
type Order struct {
	Base
	TenantID       uuid.UUID   `db:"tenant_id"`
	Code           string      `db:"code"`
	TableID        uuid.UUID   `db:"table_id"`
	PriceRateID    uuid.UUID   `db:"price_rate_id"`
	HourlyRate     int64       `db:"hourly_rate"`
	Status         OrderStatus `db:"status"`
	StartedAt      *time.Time  `db:"started_at"`
	EndedAt        *time.Time  `db:"ended_at"`
	DiscountCodeID *uuid.UUID  `db:"discount_code_id"`
	PlayMinutes    *int        `db:"play_minutes"`
	Subtotal       *int64      `db:"subtotal"`
	DiscountAmount *int64      `db:"discount_amount"`
	AmountPaid     *int64      `db:"amount_paid"`
}
