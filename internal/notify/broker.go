// Package notify delivers committed workflow events to connected users and to outbound sinks.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	portssvc "github.com/SscSPs/atk_inventory_app/internal/core/ports/services"
)

const (
	subscriberBuffer = 16
	sinkQueueSize    = 256
	sinkTimeout      = 15 * time.Second
)

// Sink is an outbound channel, such as e-mail or analytics, that receives every published event.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, event domain.Event, targetUserID string) error
}

type delivery struct {
	event  domain.Event
	target string
}

// Broker is an in-process pub/sub hub. Live subscribers get events on a buffered channel;
// slow subscribers drop events rather than block publishers. Sinks are fed from a single queue
// drained by a background worker.
type Broker struct {
	logger *slog.Logger
	sinks  []Sink

	mu     sync.RWMutex
	subs   map[string]map[chan domain.Event]struct{}
	closed bool

	queue chan delivery
	done  chan struct{}
}

// NewBroker starts a broker. Close must be called to flush pending sink deliveries.
func NewBroker(logger *slog.Logger, sinks ...Sink) *Broker {
	b := &Broker{
		logger: logger,
		sinks:  sinks,
		subs:   make(map[string]map[chan domain.Event]struct{}),
		queue:  make(chan delivery, sinkQueueSize),
		done:   make(chan struct{}),
	}
	go b.drain()
	return b
}

var _ portssvc.EventBus = (*Broker)(nil)

// Publish never blocks on a subscriber or sink.
func (b *Broker) Publish(ctx context.Context, event domain.Event, targetUserID string) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}

	for ch := range b.subs[targetUserID] {
		select {
		case ch <- event:
		default:
			b.logger.Warn("Dropping event for slow subscriber",
				slog.String("event", string(event.Type)),
				slog.String("user_id", targetUserID))
		}
	}

	if len(b.sinks) == 0 {
		return
	}
	select {
	case b.queue <- delivery{event: event, target: targetUserID}:
	default:
		b.logger.Warn("Sink queue full, dropping event", slog.String("event", string(event.Type)))
	}
}

// Subscribe registers a live stream for userID until cancel is called or ctx ends.
func (b *Broker) Subscribe(ctx context.Context, userID string) (<-chan domain.Event, func()) {
	ch := make(chan domain.Event, subscriberBuffer)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	if b.subs[userID] == nil {
		b.subs[userID] = make(map[chan domain.Event]struct{})
	}
	b.subs[userID][ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[userID][ch]; !ok {
				return
			}
			delete(b.subs[userID], ch)
			if len(b.subs[userID]) == 0 {
				delete(b.subs, userID)
			}
			close(ch)
		})
	}
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-b.done:
		}
	}()
	return ch, cancel
}

// SubscriberCount returns the number of live streams for userID.
func (b *Broker) SubscriberCount(userID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[userID])
}

func (b *Broker) drain() {
	defer close(b.done)
	for d := range b.queue {
		for _, sink := range b.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
			if err := sink.Deliver(ctx, d.event, d.target); err != nil {
				b.logger.Warn("Sink delivery failed",
					slog.String("sink", sink.Name()),
					slog.String("event", string(d.event.Type)),
					slog.String("user_id", d.target),
					slog.String("error", err.Error()))
			}
			cancel()
		}
	}
}

// Close ends every subscription and waits until queued sink deliveries finish or ctx expires.
func (b *Broker) Close(ctx context.Context) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	for userID, chans := range b.subs {
		for ch := range chans {
			close(ch)
		}
		delete(b.subs, userID)
	}
	close(b.queue)
	b.mu.Unlock()

	select {
	case <-b.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
