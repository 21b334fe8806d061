package entity

import (
	"github.com/google/uuid"
)

// PriceRate is a time-conditioned hourly rate for a table type.
// Weekdays uses time.Weekday numbering (0 = Sunday); empty means every
// day. StartMinute/EndMinute bound a time-of-day window in minutes from
// midnight; EndMinute < StartMinute denotes an overnight window that
// wraps past midnight. HourlyRate is in minor currency units.
type PriceRate struct {
	Base
	TenantID    uuid.UUID `db:"tenant_id"`
	TableTypeID uuid.UUID `db:"table_type_id"`
	Name        string    `db:"name"`
	HourlyRate  int64     `db:"hourly_rate"`
	Weekdays    []int32   `db:"weekdays"`
	StartMinute *int      `db:"start_minute"`
	EndMinute   *int      `db:"end_minute"`
	Priority    int       `db:"priority"`
	IsActive    bool      `db:"is_active"`
}
