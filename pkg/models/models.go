package models

import "encoding/json"

// Account is a wallet account as reported by the remote service.
// The service owns key custody and balances; this struct is display state.
type Account struct {
	ID       string  `json:"id"`
	Nickname string  `json:"nickname"`
	Address  string  `json:"address"`
	Balance  float64 `json:"balance"`
}

// Transaction types as reported by the service.
const (
	TxSent     = "sent"
	TxReceived = "received"
)

// Transaction is a single history entry. Status values pass through
// verbatim from the service. Timestamp is epoch milliseconds, 0 when unknown.
type Transaction struct {
	Digest    string `json:"digest"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp,omitempty"`
	Sender    string `json:"sender,omitempty"`
}

// TransferResult is the outcome of a send attempt. Err is set for both
// client-side validation failures and remote/transport failures.
type TransferResult struct {
	Success     bool
	Transaction json.RawMessage
	Err         error
}

// FaucetOutcome classifies a faucet request result.
type FaucetOutcome int

const (
	FaucetOK FaucetOutcome = iota
	FaucetRateLimited
	FaucetFailed
)

// FaucetResult is the outcome of a faucet request. RetryAfter is only
// meaningful for FaucetRateLimited.
type FaucetResult struct {
	Outcome    FaucetOutcome
	Message    string
	RetryAfter int
}

// EndpointResult holds the reachability test result for one service endpoint.
type EndpointResult struct {
	Path      string `json:"path"`
	Status    string `json:"status"` // "ok" or "error"
	LatencyMS int64  `json:"latency_ms,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ServiceReport holds the results of the -t connectivity test.
type ServiceReport struct {
	BaseURL        string           `json:"base_url"`
	Reachable      bool             `json:"reachable"`
	AccountCount   int              `json:"account_count"`
	ActiveNickname string           `json:"active_nickname,omitempty"`
	Endpoints      []EndpointResult `json:"endpoints,omitempty"`
}
