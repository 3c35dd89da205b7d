package wallet

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"suiwal/pkg/models"

	log "github.com/sirupsen/logrus"
)

// DefaultNickname is used when a create request carries a blank nickname.
const DefaultNickname = "Account"

// Store owns the account collection and the active-account pointer.
// The remote service is authoritative for both; the store only mirrors
// what it was last told. Every mutation is followed by a full
// resynchronization because balances and activity may shift as a side
// effect of the mutation itself.
type Store struct {
	mu      sync.RWMutex
	service Service
	bus     *Bus

	accounts []models.Account
	active   *models.Account
	loaded   bool

	// Refresh sequence numbers. A completed fetch is applied only when
	// it is the latest issued for its target, so a slow response cannot
	// clobber the result of a newer one.
	listSeq   uint64
	activeSeq uint64
}

func NewStore(service Service, bus *Bus) *Store {
	return &Store{service: service, bus: bus}
}

// SetService allows overriding the remote service (useful for testing).
func (s *Store) SetService(service Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.service = service
}

// RefreshAccounts re-fetches the full account set. Best-effort: a
// failure is logged and the previous collection kept, so the UI shows a
// stale list rather than crashing.
func (s *Store) RefreshAccounts(ctx context.Context) {
	s.mu.Lock()
	s.listSeq++
	seq := s.listSeq
	s.mu.Unlock()

	accounts, err := s.service.ListAccounts(ctx)
	if err != nil {
		log.WithError(err).Warn("account list refresh failed, keeping previous list")
		return
	}

	s.mu.Lock()
	if seq != s.listSeq {
		s.mu.Unlock()
		return
	}
	s.accounts = accounts
	s.mu.Unlock()

	s.bus.Notify(Event{Type: EventAccountsUpdated, Data: s.Accounts()})
}

// RefreshActive re-fetches the service's notion of the active account.
// Best-effort, and always marks the initial load complete so a failed
// first request cannot leave the UI hanging.
func (s *Store) RefreshActive(ctx context.Context) {
	s.mu.Lock()
	s.activeSeq++
	seq := s.activeSeq
	s.mu.Unlock()

	active, err := s.service.ActiveAccount(ctx)

	s.mu.Lock()
	s.loaded = true
	if err != nil || seq != s.activeSeq {
		s.mu.Unlock()
		if err != nil {
			log.WithError(err).Warn("active account refresh failed, keeping previous")
		}
		return
	}
	s.active = active
	s.mu.Unlock()

	s.bus.Notify(Event{Type: EventActiveUpdated, Data: s.Active()})
}

// Resync re-fetches the list and the active pointer, strictly in order.
func (s *Store) Resync(ctx context.Context) {
	s.RefreshAccounts(ctx)
	s.RefreshActive(ctx)
}

// CreateAccount asks the service for a new account. A blank nickname
// becomes DefaultNickname. On success the store resynchronizes fully,
// since the service may auto-activate the new account.
func (s *Store) CreateAccount(ctx context.Context, nickname string) (*models.Account, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		nickname = DefaultNickname
	}

	account, err := s.service.CreateAccount(ctx, nickname)
	if err != nil {
		return nil, fmt.Errorf("creating account: %w", err)
	}

	s.Resync(ctx)
	return account, nil
}

// SwitchAccount requests activation of the given account. On success
// the active pointer is set straight from the response, avoiding an
// extra round trip, and the list is refreshed to pick up balance drift.
// Failure leaves state untouched; switching is always retryable.
func (s *Store) SwitchAccount(ctx context.Context, accountID string) (*models.Account, error) {
	account, err := s.service.SwitchAccount(ctx, accountID)
	if err != nil {
		log.WithError(err).WithField("account_id", accountID).Warn("account switch failed")
		return nil, err
	}

	s.mu.Lock()
	cp := *account
	s.active = &cp
	s.loaded = true
	s.mu.Unlock()
	s.bus.Notify(Event{Type: EventActiveUpdated, Data: s.Active()})

	s.RefreshAccounts(ctx)
	return account, nil
}

// DeleteAccount deletes the given account and resynchronizes, so the
// active pointer afterward reflects whatever the service now considers
// active, possibly nothing, and never the deleted id.
func (s *Store) DeleteAccount(ctx context.Context, accountID string) error {
	if err := s.service.DeleteAccount(ctx, accountID); err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	s.Resync(ctx)
	return nil
}

// Accounts returns a snapshot of the account collection.
func (s *Store) Accounts() []models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make([]models.Account, len(s.accounts))
	copy(cp, s.accounts)
	return cp
}

// Active returns a snapshot of the active account, nil when none is.
func (s *Store) Active() *models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == nil {
		return nil
	}
	cp := *s.active
	return &cp
}

// Loaded reports whether the initial active-account fetch has completed,
// successfully or not.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}
