package entity

import (
	"github.com/google/uuid"
)

// ServiceItem is a sellable product or service (drinks, snacks, cue
// rental). Price is in minor currency units. TrackStock links the item
// to the inventory ledger; untracked items sell without stock checks.
type ServiceItem struct {
	Base
	TenantID          uuid.UUID `db:"tenant_id"`
	Name              string    `db:"name"`
	Price             int64     `db:"price"`
	TrackStock        bool      `db:"track_stock"`
	LowStockThreshold int64     `db:"low_stock_threshold"`
	IsActive          bool      `db:"is_active"`
}
