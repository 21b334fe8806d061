package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfWrappedError(t *testing.T) {
	base := New(KindInsufficientStock, "stock would go negative")
	wrapped := fmt.Errorf("add item: %w", base)

	assert.Equal(t, KindInsufficientStock, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindInsufficientStock))
	assert.False(t, IsKind(wrapped, KindBusy))
}

func TestKindOfUnclassified(t *testing.T) {
	assert.Equal(t, KindUnavailable, KindOf(errors.New("connection refused")))
}

func TestIsMatchesOnKind(t *testing.T) {
	err := Newf(KindInvalidTransition, "order %s is completed", "ORD-1")
	assert.True(t, errors.Is(err, New(KindInvalidTransition, "")))
	assert.False(t, errors.Is(err, New(KindTableUnavailable, "")))
}

func TestReasonCarried(t *testing.T) {
	err := NewReason(KindDiscountNotEligible, ReasonBelowMinimum, "subtotal below minimum spend")
	wrapped := fmt.Errorf("settle: %w", err)

	assert.Equal(t, ReasonBelowMinimum, ReasonOf(wrapped))
	assert.Equal(t, "", ReasonOf(errors.New("plain")))
}

func TestRetryableOnlyBusy(t *testing.T) {
	assert.True(t, Retryable(New(KindBusy, "row is locked")))
	assert.False(t, Retryable(New(KindInvalidTransition, "wrong state")))
	assert.False(t, Retryable(errors.New("boom")))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("pq: deadlock detected")
	err := Wrap(KindUnavailable, "settle order", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "settle order")
}
