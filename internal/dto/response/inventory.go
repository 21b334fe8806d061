package response

import (
	"time"

	"billiard-club/internal/data/entity"
)

type InventoryRecordResponse struct {
	ID          string    `json:"id"`
	ServiceID   string    `json:"service_id"`
	Quantity    int64     `json:"quantity"`
	AvgUnitCost string    `json:"avg_unit_cost"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type InventoryTransactionResponse struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	QuantityDelta int64     `json:"quantity_delta"`
	ResultingQty  int64     `json:"resulting_qty"`
	UnitCost      string    `json:"unit_cost"`
	Reason        string    `json:"reason"`
	Actor         string    `json:"actor"`
	CreatedAt     time.Time `json:"created_at"`
}

func InventoryRecordToResponse(record *entity.InventoryRecord) InventoryRecordResponse {
	return InventoryRecordResponse{
		ID:          record.ID.String(),
		ServiceID:   record.ServiceID.String(),
		Quantity:    record.Quantity,
		AvgUnitCost: record.AvgUnitCost.StringFixed(4),
		UpdatedAt:   record.UpdatedAt,
	}
}

func InventoryTransactionToResponse(txn *entity.InventoryTransaction) InventoryTransactionResponse {
	return InventoryTransactionResponse{
		ID:            txn.ID.String(),
		Type:          string(txn.Type),
		QuantityDelta: txn.QuantityDelta,
		ResultingQty:  txn.ResultingQty,
		UnitCost:      txn.UnitCost.StringFixed(4),
		Reason:        txn.Reason,
		Actor:         txn.Actor,
		CreatedAt:     txn.CreatedAt,
	}
}
