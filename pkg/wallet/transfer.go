package wallet

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"suiwal/pkg/models"

	log "github.com/sirupsen/logrus"
)

// Validation failures raised before any network call. Callers can test
// the failure class with errors.Is.
var (
	ErrNoActiveAccount     = errors.New("no active account selected")
	ErrMissingField        = errors.New("recipient address and amount are required")
	ErrInvalidAmount       = errors.New("amount must be a number greater than 0")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Transfer validates and executes a single token transfer from the
// active account.
type Transfer struct {
	service Service
	store   *Store
}

func NewTransfer(service Service, store *Store) *Transfer {
	return &Transfer{service: service, store: store}
}

// SendTokens runs the validation chain in order, short-circuiting on the
// first failure, and only then issues the remote transfer. The balance
// check uses the last-known balance as a UX guard; the service remains
// the final arbiter and may still reject.
func (t *Transfer) SendTokens(ctx context.Context, toAddress, amount string) models.TransferResult {
	active := t.store.Active()
	if active == nil {
		return models.TransferResult{Err: ErrNoActiveAccount}
	}

	toAddress = strings.TrimSpace(toAddress)
	amount = strings.TrimSpace(amount)
	if toAddress == "" || amount == "" {
		return models.TransferResult{Err: ErrMissingField}
	}

	parsed, err := strconv.ParseFloat(amount, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) || parsed <= 0 {
		return models.TransferResult{Err: ErrInvalidAmount}
	}

	if parsed > active.Balance {
		return models.TransferResult{Err: ErrInsufficientBalance}
	}

	tx, err := t.service.SendTokens(ctx, active.ID, toAddress, parsed)
	if err != nil {
		log.WithError(err).Error("token transfer failed")
		return models.TransferResult{Err: err}
	}

	// Resynchronize so displayed balances reflect the debit.
	t.store.Resync(ctx)
	return models.TransferResult{Success: true, Transaction: tx}
}
