// Package events carries advisory game notifications (purchases, claims,
// level-ups, badges) from the service to whoever cares to listen. Delivery
// is best effort: game state never depends on an event arriving.
package events

import (
	"sync"

	"github.com/okian/foil/pkg/metrics"
)

const defaultCapacity = 1024

// Kinds of events the service publishes.
const (
	KindTicketsPurchased = "tickets-purchased"
	KindTicketClaimed    = "ticket-claimed"
	KindTokensAdded      = "tokens-added"
	KindTokensSpent      = "tokens-spent"
	KindLevelUp          = "level-up"
	KindTierUnlocked     = "tier-unlocked"
	KindBadgeEarned      = "badge-earned"
)

// Event is one notification. Only the fields relevant to the kind are set.
type Event struct {
	Kind    string `json:"kind"`
	At      int64  `json:"at"`
	TierID  string `json:"tierId,omitempty"`
	ItemID  string `json:"itemId,omitempty"`
	BadgeID string `json:"badgeId,omitempty"`
	Amount  int    `json:"amount,omitempty"`
	Level   int    `json:"level,omitempty"`
	Payout  int    `json:"payout,omitempty"`
}

// Bus is a bounded fan-in channel of events.
type Bus struct {
	events chan Event
	mu     sync.RWMutex
	closed bool
}

// Option applies a configuration option to the Bus.
type Option func(*Bus)

// WithCapacity sets the buffer size of the bus.
func WithCapacity(n int) Option {
	return func(b *Bus) {
		if n > 0 {
			b.events = make(chan Event, n)
		}
	}
}

// NewBus creates a bus with the default capacity.
func NewBus(opts ...Option) *Bus {
	b := &Bus{events: make(chan Event, defaultCapacity)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Publish offers an event to the bus without blocking. Events are dropped
// when the buffer is full or the bus is closed; the return value reports
// whether the event was accepted.
func (b *Bus) Publish(e Event) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		metrics.RecordEventDropped(e.Kind)
		return false
	}
	select {
	case b.events <- e:
		metrics.RecordEventPublished(e.Kind)
		return true
	default:
		metrics.RecordEventDropped(e.Kind)
		return false
	}
}

// Events returns the receive side of the bus. The channel closes when the
// bus closes.
func (b *Bus) Events() <-chan Event {
	return b.events
}

// Len returns the number of buffered events.
func (b *Bus) Len() int {
	return len(b.events)
}

// Close shuts the bus down. Further publishes are dropped.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	close(b.events)
	b.closed = true
	return nil
}

// IsClosed reports whether the bus has been closed.
func (b *Bus) IsClosed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.closed
}
