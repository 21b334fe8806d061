package entity

import (
	"time"

	"github.com/google/uuid"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// DiscountCode is a promotional code. Value is whole percent for
// percentage type and minor currency units for fixed type. UsedCount
// never exceeds UsageLimit when a limit is set.
type DiscountCode struct {
	Base
	TenantID   uuid.UUID    `db:"tenant_id"`
	Code       string       `db:"code"`
	Type       DiscountType `db:"type"`
	Value      int64        `db:"value"`
	MinSpend   int64        `db:"min_spend"`
	StartsAt   *time.Time   `db:"starts_at"`
	EndsAt     *time.Time   `db:"ends_at"`
	UsageLimit *int         `db:"usage_limit"`
	UsedCount  int          `db:"used_count"`
	IsActive   bool         `db:"is_active"`
	IsPublic   bool         `db:"is_public"`
}
