package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher is the notification boundary. Implementations must never
// block an order transition: publishing is fire-and-forget and always
// happens after the database transaction committed.
type Publisher interface {
	Publish(eventType string, tenantID uuid.UUID, key string, payload any)
	Close()
}

// KafkaPublisher buffers envelopes into a channel drained by one writer
// goroutine. Messages are keyed so all events of one order stay
// ordered within a partition.
type KafkaPublisher struct {
	w       *kafka.Writer
	inbox   chan kafka.Message
	closeCh chan struct{}
	log     *zap.Logger

	// mu orders Publish against shutdown: the inbox closes only once
	// no sender can still reach it.
	mu     sync.RWMutex
	closed bool
}

func NewKafkaPublisher(brokers []string, buffer int, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        true,
		},
		inbox:   make(chan kafka.Message, buffer),
		closeCh: make(chan struct{}),
		log:     log.With(zap.String("component", "event_publisher")),
	}
}

// Start drains the inbox until ctx is cancelled, then flushes what is
// left and closes the writer.
func (p *KafkaPublisher) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				p.mu.Lock()
				p.closed = true
				close(p.inbox)
				p.mu.Unlock()

				for m := range p.inbox {
					if err := p.w.WriteMessages(context.Background(), m); err != nil {
						p.log.Error("Failed to flush event", zap.Error(err))
					}
				}
				_ = p.w.Close()
				close(p.closeCh)
				return
			case m := <-p.inbox:
				if err := p.w.WriteMessages(context.Background(), m); err != nil {
					p.log.Error("Failed to publish event",
						zap.Error(err),
						zap.String("topic", m.Topic),
					)
				}
			}
		}
	}()
}

func (p *KafkaPublisher) Publish(eventType string, tenantID uuid.UUID, key string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		p.log.Error("Failed to marshal event payload",
			zap.Error(err),
			zap.String("event_type", eventType),
		)
		return
	}

	envelope := Envelope{
		EventID:    uuid.New().String(),
		EventType:  eventType,
		TenantID:   tenantID.String(),
		OccurredAt: time.Now(),
		Producer:   "billiard-club-api",
		Payload:    raw,
	}

	value, err := json.Marshal(envelope)
	if err != nil {
		p.log.Error("Failed to marshal event envelope", zap.Error(err))
		return
	}

	msg := kafka.Message{
		Topic: Topic(eventType),
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.log.Warn("Publisher shut down, dropping event",
			zap.String("event_type", eventType),
			zap.String("key", key),
		)
		return
	}

	select {
	case p.inbox <- msg:
	default:
		// Inbox full: drop rather than stall an order transition.
		p.log.Warn("Event inbox full, dropping event",
			zap.String("event_type", eventType),
			zap.String("key", key),
		)
	}
}

// WaitClosed blocks until the drain goroutine finished flushing.
func (p *KafkaPublisher) WaitClosed() { <-p.closeCh }

func (p *KafkaPublisher) Close() {}

// NoopPublisher is used when kafka is disabled and in tests.
type NoopPublisher struct{}

func (NoopPublisher) Publish(eventType string, tenantID uuid.UUID, key string, payload any) {}
func (NoopPublisher) Close()                                                                {}
