package wallet

import (
	"context"
	"encoding/json"

	"suiwal/pkg/models"
)

// Service is the remote wallet service contract consumed by the wallet
// components. *api.Client satisfies it; tests substitute a mock.
type Service interface {
	ListAccounts(ctx context.Context) ([]models.Account, error)
	ActiveAccount(ctx context.Context) (*models.Account, error)
	CreateAccount(ctx context.Context, nickname string) (*models.Account, error)
	SwitchAccount(ctx context.Context, accountID string) (*models.Account, error)
	DeleteAccount(ctx context.Context, accountID string) error
	SendTokens(ctx context.Context, fromID, toAddress string, amount float64) (json.RawMessage, error)
	RequestFunds(ctx context.Context, address string) error
	Transactions(ctx context.Context, address string, limit int) ([]models.Transaction, error)
}
