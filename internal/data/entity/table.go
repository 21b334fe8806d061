package entity

import (
	"github.com/google/uuid"
)

type TableStatus string

const (
	TableStatusFree        TableStatus = "free"
	TableStatusOccupied    TableStatus = "occupied"
	TableStatusMaintenance TableStatus = "maintenance"
)

type TableType struct {
	Base
	TenantID uuid.UUID `db:"tenant_id"`
	Name     string    `db:"name"`
}

// Table is one physical billiard table. Status flips to occupied when an
// order is approved and back to free when it settles or is cancelled.
type Table struct {
	Base
	TenantID    uuid.UUID   `db:"tenant_id"`
	TableTypeID uuid.UUID   `db:"table_type_id"`
	Number      int         `db:"number"`
	Status      TableStatus `db:"status"`
}
