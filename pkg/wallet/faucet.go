package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"suiwal/pkg/api"
	"suiwal/pkg/models"

	log "github.com/sirupsen/logrus"
)

// cooldownInterval is the countdown step. Tests shrink it.
var cooldownInterval = time.Second

// Faucet issues funding requests against a per-address cooldown enforced
// by the remote service, and mirrors that cooldown as a local countdown.
// One countdown exists per session; callers disable the action while
// Remaining() > 0.
type Faucet struct {
	service Service
	store   *Store
	bus     *Bus

	mu        sync.Mutex
	remaining int
	stop      chan struct{}
}

func NewFaucet(service Service, store *Store, bus *Bus) *Faucet {
	return &Faucet{service: service, store: store, bus: bus}
}

// RequestFunds asks the faucet to fund the address. Success triggers a
// full store resynchronization. A server-declared rate limit arms the
// countdown with the server-issued wait. Other failures carry the server
// message when present and set no cooldown.
func (f *Faucet) RequestFunds(ctx context.Context, address string) models.FaucetResult {
	err := f.service.RequestFunds(ctx, address)
	if err == nil {
		f.store.Resync(ctx)
		return models.FaucetResult{Outcome: models.FaucetOK, Message: "Success! Testnet tokens received."}
	}

	var rateErr *api.RateLimitError
	if errors.As(err, &rateErr) {
		f.startCooldown(rateErr.RetryAfter)
		return models.FaucetResult{
			Outcome:    models.FaucetRateLimited,
			Message:    fmt.Sprintf("Rate limit exceeded. Please wait %d seconds.", rateErr.RetryAfter),
			RetryAfter: rateErr.RetryAfter,
		}
	}

	var remoteErr *api.RemoteError
	if errors.As(err, &remoteErr) && remoteErr.Message != "" {
		return models.FaucetResult{Outcome: models.FaucetFailed, Message: remoteErr.Message}
	}

	log.WithError(err).Error("faucet request failed")
	return models.FaucetResult{Outcome: models.FaucetFailed, Message: "Failed to request funds. Please try again."}
}

// Remaining returns the countdown's current value in seconds.
func (f *Faucet) Remaining() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.remaining
}

// Stop tears down the countdown timer. Safe to call at any time.
func (f *Faucet) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stop != nil {
		close(f.stop)
		f.stop = nil
	}
	f.remaining = 0
}

func (f *Faucet) startCooldown(seconds int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.stop != nil {
		close(f.stop)
		f.stop = nil
	}
	if seconds <= 0 {
		f.remaining = 0
		return
	}

	f.remaining = seconds
	stop := make(chan struct{})
	f.stop = stop
	go f.countdown(stop)
}

// countdown decrements by exactly 1 per tick, clamps at 0 and then
// announces expiry so any rate-limit notice can be dismissed.
func (f *Faucet) countdown(stop chan struct{}) {
	ticker := time.NewTicker(cooldownInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			f.mu.Lock()
			if f.stop != stop {
				// A newer countdown replaced this one.
				f.mu.Unlock()
				return
			}
			f.remaining--
			remaining := f.remaining
			if remaining <= 0 {
				f.remaining = 0
				f.stop = nil
				f.mu.Unlock()
				f.bus.Notify(Event{Type: EventCooldownExpired})
				return
			}
			f.mu.Unlock()
			f.bus.Notify(Event{Type: EventCooldownTick, Data: remaining})
		case <-stop:
			return
		}
	}
}
