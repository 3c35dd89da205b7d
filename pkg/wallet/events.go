package wallet

import (
	"sync"

	"suiwal/pkg/models"
)

// EventType defines the type of event being broadcast.
type EventType string

const (
	EventAccountsUpdated     EventType = "accounts_updated"
	EventActiveUpdated       EventType = "active_updated"
	EventTransactionsUpdated EventType = "transactions_updated"
	EventCooldownTick        EventType = "cooldown_tick"
	EventCooldownExpired     EventType = "cooldown_expired"
)

// Event represents a wallet state change.
type Event struct {
	Type EventType
	Data interface{}
}

// TransactionsData is the payload of EventTransactionsUpdated.
type TransactionsData struct {
	Address      string
	Transactions []models.Transaction
}

// Subscriber is a channel that receives events.
type Subscriber chan Event

// Bus fans wallet events out to subscribers. The store, faucet and feed
// share one bus so the presentation layer has a single thing to watch.
type Bus struct {
	mu          sync.RWMutex
	subscribers []Subscriber
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe adds a new subscriber and returns a channel to receive events.
func (b *Bus) Subscribe() Subscriber {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(Subscriber, 100)
	b.subscribers = append(b.subscribers, ch)
	return ch
}

// Unsubscribe removes a subscriber.
func (b *Bus) Unsubscribe(ch Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.subscribers {
		if sub == ch {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Notify delivers an event to every subscriber without blocking.
func (b *Bus) Notify(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber is slow, drop the event for it.
		}
	}
}
