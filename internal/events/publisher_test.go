package events

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestPublishEnqueuesWithoutBlocking(t *testing.T) {
	p := NewKafkaPublisher([]string{"localhost:9092"}, 1, zap.NewNop())

	payload := OrderEventPayload{OrderID: uuid.New().String(), Message: "test"}

	p.Publish(EventOrderRequested, uuid.New(), "key-1", payload)
	assert.Len(t, p.inbox, 1)

	// Full inbox drops instead of stalling the caller.
	p.Publish(EventOrderRequested, uuid.New(), "key-2", payload)
	assert.Len(t, p.inbox, 1)
}

func TestPublishAfterShutdownDropsCleanly(t *testing.T) {
	p := NewKafkaPublisher([]string{"localhost:9092"}, 4, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)

	cancel()
	p.WaitClosed()

	// The inbox is closed now; a late publish must drop, not panic.
	assert.NotPanics(t, func() {
		p.Publish(EventOrderSettled, uuid.New(), "late", OrderEventPayload{OrderID: uuid.New().String()})
	})
}

func TestTopicMapping(t *testing.T) {
	assert.Equal(t, TopicOrderRequested, Topic(EventOrderRequested))
	assert.Equal(t, TopicOrderSettled, Topic(EventOrderSettled))
	assert.Equal(t, TopicStockLow, Topic(EventStockLow))
	assert.Equal(t, "events.unknown", Topic("SomethingElse"))
}
