package request

type OpenOrderRequest struct {
	TableID string `json:"table_id" validate:"required,uuid4"`
}

// CloseOrderRequest settles an order; the optional discount code is
// validated and consumed inside the settlement transaction.
type CloseOrderRequest struct {
	DiscountCode string `json:"discount_code,omitempty"`
}

type AddOrderItemRequest struct {
	ServiceID string `json:"service_id" validate:"required,uuid4"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type UpdateOrderItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// ListOrdersRequest filters the order read API; From/To are RFC3339.
type ListOrdersRequest struct {
	PaginatedRequest
	Status string `json:"status" validate:"omitempty,oneof=pending active pending_end completed cancelled"`
	From   string `json:"from" validate:"omitempty"`
	To     string `json:"to" validate:"omitempty"`
}
