package entity

import (
	"github.com/google/uuid"
)

// OrderItem is a service line on an order. UnitPrice is captured when
// the line is added; later price changes on the service do not touch it.
type OrderItem struct {
	BaseSimple
	TenantID  uuid.UUID `db:"tenant_id"`
	OrderID   uuid.UUID `db:"order_id"`
	ServiceID uuid.UUID `db:"service_id"`
	Quantity  int       `db:"quantity"`
	UnitPrice int64     `db:"unit_price"`
	Total     int64     `db:"total"`
}
