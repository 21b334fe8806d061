package events

import (
	"encoding/json"
	"time"
)

const (
	EventOrderRequested    = "OrderRequested"
	EventOrderApproved     = "OrderApproved"
	EventOrderEndRequested = "OrderEndRequested"
	EventOrderSettled      = "OrderSettled"
	EventOrderCancelled    = "OrderCancelled"
	EventStockLow          = "StockLow"
)

const (
	TopicOrderRequested    = "order.requested"
	TopicOrderApproved     = "order.approved"
	TopicOrderEndRequested = "order.end_requested"
	TopicOrderSettled      = "order.settled"
	TopicOrderCancelled    = "order.cancelled"
	TopicStockLow          = "stock.low"
)

// Envelope is the wire format consumed by the delivery subsystem
// (push/websocket/email). The core's obligation ends here: tenant id,
// the subject ids, and a human-readable message.
type Envelope struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	TenantID   string          `json:"tenant_id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Producer   string          `json:"producer"`
	Payload    json.RawMessage `json:"payload"`
}

type OrderEventPayload struct {
	OrderID   string `json:"order_id"`
	OrderCode string `json:"order_code"`
	TableID   string `json:"table_id"`
	Message   string `json:"message"`

	// Set on settlement only.
	AmountPaid *int64 `json:"amount_paid,omitempty"`
}

type StockLowPayload struct {
	ServiceID   string `json:"service_id"`
	ServiceName string `json:"service_name"`
	Quantity    int64  `json:"quantity"`
	Threshold   int64  `json:"threshold"`
	Message     string `json:"message"`
}

// Topic maps an event type to its kafka topic.
func Topic(eventType string) string {
	switch eventType {
	case EventOrderRequested:
		return TopicOrderRequested
	case EventOrderApproved:
		return TopicOrderApproved
	case EventOrderEndRequested:
		return TopicOrderEndRequested
	case EventOrderSettled:
		return TopicOrderSettled
	case EventOrderCancelled:
		return TopicOrderCancelled
	case EventStockLow:
		return TopicStockLow
	}
	return "events.unknown"
}
