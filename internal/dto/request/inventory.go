package request

// ImportStockRequest increases stock at a unit acquisition cost
// (decimal string, e.g. "12500.00").
type ImportStockRequest struct {
	ServiceID string `json:"service_id" validate:"required,uuid4"`
	Quantity  int64  `json:"quantity" validate:"required,min=1"`
	UnitCost  string `json:"unit_cost" validate:"required"`
	Reason    string `json:"reason" validate:"required"`
}

// AdjustStockRequest applies a signed correction. Positive deltas may
// carry a unit cost; negative ones never change the average cost.
type AdjustStockRequest struct {
	ServiceID string `json:"service_id" validate:"required,uuid4"`
	Delta     int64  `json:"delta" validate:"required"`
	UnitCost  string `json:"unit_cost,omitempty"`
	Reason    string `json:"reason" validate:"required"`
}

type ListInventoryTransactionsRequest struct {
	PaginatedRequest
	From string `json:"from" validate:"omitempty"`
	To   string `json:"to" validate:"omitempty"`
}
