package wallet

import (
	"context"
	"sync"

	"suiwal/pkg/models"

	log "github.com/sirupsen/logrus"
)

// Feed retrieves and filters the transaction history for the currently
// active account's address. History is supplementary data: fetch
// failures are logged, never surfaced.
type Feed struct {
	service Service
	bus     *Bus
	limit   int

	mu      sync.Mutex
	address string
	seq     uint64
	txs     []models.Transaction
}

func NewFeed(service Service, bus *Bus, limit int) *Feed {
	return &Feed{service: service, bus: bus, limit: limit}
}

// SetAddress retargets the feed. The list is cleared immediately so
// results for a previous address are never shown against the new one,
// and any fetch still in flight for the old address is invalidated.
func (f *Feed) SetAddress(address string) {
	f.mu.Lock()
	if f.address == address {
		f.mu.Unlock()
		return
	}
	f.address = address
	f.seq++
	f.txs = nil
	f.mu.Unlock()

	f.bus.Notify(Event{Type: EventTransactionsUpdated, Data: TransactionsData{Address: address}})
}

// Refresh fetches the history for the current target address. The
// result is applied only when it is the latest fetch issued and the
// target has not changed underneath it.
func (f *Feed) Refresh(ctx context.Context) {
	f.mu.Lock()
	f.seq++
	seq := f.seq
	address := f.address
	limit := f.limit
	f.mu.Unlock()

	if address == "" {
		return
	}

	txs, err := f.service.Transactions(ctx, address, limit)
	if err != nil {
		log.WithError(err).WithField("address", address).Warn("transaction history refresh failed")
		return
	}

	f.mu.Lock()
	if seq != f.seq || address != f.address {
		f.mu.Unlock()
		return
	}
	f.txs = txs
	f.mu.Unlock()

	f.bus.Notify(Event{Type: EventTransactionsUpdated, Data: TransactionsData{Address: address, Transactions: txs}})
}

// Address returns the feed's current target.
func (f *Feed) Address() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.address
}

// Transactions returns a snapshot of the current history.
func (f *Feed) Transactions() []models.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := make([]models.Transaction, len(f.txs))
	copy(cp, f.txs)
	return cp
}

// FilterByType is a pure, order-preserving filter. "all" (or empty) is
// the identity transform.
func FilterByType(txs []models.Transaction, filter string) []models.Transaction {
	if filter == "all" || filter == "" {
		return txs
	}
	var filtered []models.Transaction
	for _, tx := range txs {
		if tx.Type == filter {
			filtered = append(filtered, tx)
		}
	}
	return filtered
}
