package usecase

import (
	"testing"

	"billiard-club/internal/data/entity"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    entity.OrderStatus
		to      entity.OrderStatus
		allowed bool
	}{
		{"pending to active", entity.OrderStatusPending, entity.OrderStatusActive, true},
		{"pending to cancelled", entity.OrderStatusPending, entity.OrderStatusCancelled, true},
		{"pending to completed", entity.OrderStatusPending, entity.OrderStatusCompleted, false},
		{"pending to pending_end", entity.OrderStatusPending, entity.OrderStatusPendingEnd, false},
		{"active to pending_end", entity.OrderStatusActive, entity.OrderStatusPendingEnd, true},
		{"active to completed", entity.OrderStatusActive, entity.OrderStatusCompleted, true},
		{"active to cancelled", entity.OrderStatusActive, entity.OrderStatusCancelled, true},
		{"active to pending", entity.OrderStatusActive, entity.OrderStatusPending, false},
		{"pending_end to completed", entity.OrderStatusPendingEnd, entity.OrderStatusCompleted, true},
		{"pending_end to cancelled", entity.OrderStatusPendingEnd, entity.OrderStatusCancelled, false},
		{"pending_end to active", entity.OrderStatusPendingEnd, entity.OrderStatusActive, false},
		{"completed is terminal", entity.OrderStatusCompleted, entity.OrderStatusActive, false},
		{"completed cannot re-complete", entity.OrderStatusCompleted, entity.OrderStatusCompleted, false},
		{"cancelled is terminal", entity.OrderStatusCancelled, entity.OrderStatusActive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestItemsMutable(t *testing.T) {
	mutable := []entity.OrderStatus{entity.OrderStatusPending, entity.OrderStatusActive}
	for _, status := range mutable {
		order := &entity.Order{Code: "ORD-TEST", Status: status}
		assert.NoError(t, itemsMutable(order), string(status))
	}

	frozen := []entity.OrderStatus{entity.OrderStatusPendingEnd, entity.OrderStatusCompleted, entity.OrderStatusCancelled}
	for _, status := range frozen {
		order := &entity.Order{Code: "ORD-TEST", Status: status}
		assert.Error(t, itemsMutable(order), string(status))
	}
}
