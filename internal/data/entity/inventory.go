package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InventoryTxType string

const (
	InventoryTxImport     InventoryTxType = "import"
	InventoryTxSale       InventoryTxType = "sale"
	InventoryTxAdjustment InventoryTxType = "adjustment"
	InventoryTxReturn     InventoryTxType = "return"
)

// InventoryRecord is the current stock state for one service item in
// one tenant: quantity on hand and moving-average unit cost. The
// average reflects acquisition only; sales never change it.
type InventoryRecord struct {
	Base
	TenantID    uuid.UUID       `db:"tenant_id"`
	ServiceID   uuid.UUID       `db:"service_id"`
	Quantity    int64           `db:"quantity"`
	AvgUnitCost decimal.Decimal `db:"avg_unit_cost"`
}

// InventoryTransaction is an immutable audit entry for one quantity
// change. ResultingQty snapshots the record quantity after applying
// QuantityDelta, so replaying deltas in order reproduces the record.
type InventoryTransaction struct {
	BaseSimple
	TenantID      uuid.UUID       `db:"tenant_id"`
	RecordID      uuid.UUID       `db:"record_id"`
	Type          InventoryTxType `db:"type"`
	QuantityDelta int64           `db:"quantity_delta"`
	ResultingQty  int64           `db:"resulting_qty"`
	UnitCost      decimal.Decimal `db:"unit_cost"`
	Reason        string          `db:"reason"`
	Actor         string          `db:"actor"`
}
