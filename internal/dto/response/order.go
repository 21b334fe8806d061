package response

import (
	"time"

	"billiard-club/internal/data/entity"
)

// OrderTotals is present only on completed orders; amounts are minor
// currency units.
type OrderTotals struct {
	PlayMinutes    int   `json:"play_minutes"`
	Subtotal       int64 `json:"subtotal"`
	DiscountAmount int64 `json:"discount_amount"`
	AmountPaid     int64 `json:"amount_paid"`
}

type OrderItemResponse struct {
	ID        string    `json:"id"`
	ServiceID string    `json:"service_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice int64     `json:"unit_price"`
	Total     int64     `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

type OrderResponse struct {
	ID             string              `json:"id"`
	Code           string              `json:"code"`
	TableID        string              `json:"table_id"`
	PriceRateID    string              `json:"price_rate_id"`
	HourlyRate     int64               `json:"hourly_rate"`
	Status         entity.OrderStatus  `json:"status"`
	StartedAt      *time.Time          `json:"started_at,omitempty"`
	EndedAt        *time.Time          `json:"ended_at,omitempty"`
	DiscountCodeID *string             `json:"discount_code_id,omitempty"`
	Totals         *OrderTotals        `json:"totals,omitempty"`
	Items          []OrderItemResponse `json:"items,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}

func OrderItemToResponse(item *entity.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:        item.ID.String(),
		ServiceID: item.ServiceID.String(),
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice,
		Total:     item.Total,
		CreatedAt: item.CreatedAt,
	}
}

func OrderToResponse(order *entity.Order, items []*entity.OrderItem) OrderResponse {
	resp := OrderResponse{
		ID:          order.ID.String(),
		Code:        order.Code,
		TableID:     order.TableID.String(),
		PriceRateID: order.PriceRateID.String(),
		HourlyRate:  order.HourlyRate,
		Status:      order.Status,
		StartedAt:   order.StartedAt,
		EndedAt:     order.EndedAt,
		CreatedAt:   order.CreatedAt,
	}

	if order.DiscountCodeID != nil {
		id := order.DiscountCodeID.String()
		resp.DiscountCodeID = &id
	}

	// Totals are write-once at completion; anything earlier has none.
	if order.Status == entity.OrderStatusCompleted &&
		order.PlayMinutes != nil && order.Subtotal != nil &&
		order.DiscountAmount != nil && order.AmountPaid != nil {
		resp.Totals = &OrderTotals{
			PlayMinutes:    *order.PlayMinutes,
			Subtotal:       *order.Subtotal,
			DiscountAmount: *order.DiscountAmount,
			AmountPaid:     *order.AmountPaid,
		}
	}

	for _, item := range items {
		resp.Items = append(resp.Items, OrderItemToResponse(item))
	}

	return resp
}
