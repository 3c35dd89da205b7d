package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"suiwal/pkg/models"
)

// DefaultRetryAfter is assumed when a 429 response omits retry_after.
const DefaultRetryAfter = 60

var RequestTimeout = 10 * time.Second

// Client talks to the remote wallet service. All chain interaction
// (custody, signing, settlement) lives behind this contract.
type Client struct {
	BaseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = RequestTimeout
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// envelope is the common response wrapper: success plus payload or error.
type envelope struct {
	Success      bool                 `json:"success"`
	Error        string               `json:"error,omitempty"`
	RetryAfter   *int                 `json:"retry_after,omitempty"`
	Accounts     []models.Account     `json:"accounts,omitempty"`
	Account      *models.Account      `json:"account,omitempty"`
	Transaction  json.RawMessage      `json:"transaction,omitempty"`
	Transactions []models.Transaction `json:"transactions,omitempty"`
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*envelope, int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			// Non-JSON error body; keep the status as the signal.
			return &envelope{}, resp.StatusCode, nil
		}
		return nil, resp.StatusCode, fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return &env, resp.StatusCode, nil
}

// check converts an envelope into a typed error when the service declined.
func check(env *envelope, status int) error {
	if status == http.StatusTooManyRequests {
		retry := DefaultRetryAfter
		if env.RetryAfter != nil {
			retry = *env.RetryAfter
		}
		return &RateLimitError{RetryAfter: retry}
	}
	if env.Success {
		return nil
	}
	return &RemoteError{Message: env.Error}
}

// ListAccounts fetches the full account set.
func (c *Client) ListAccounts(ctx context.Context) ([]models.Account, error) {
	env, status, err := c.do(ctx, http.MethodGet, "/accounts", nil)
	if err != nil {
		return nil, err
	}
	if err := check(env, status); err != nil {
		return nil, err
	}
	return env.Accounts, nil
}

// ActiveAccount fetches the service's notion of the active account.
// Returns (nil, nil) when no account is active.
func (c *Client) ActiveAccount(ctx context.Context) (*models.Account, error) {
	env, status, err := c.do(ctx, http.MethodGet, "/accounts/active", nil)
	if err != nil {
		return nil, err
	}
	if err := check(env, status); err != nil {
		return nil, err
	}
	return env.Account, nil
}

// CreateAccount asks the service to create a new account.
func (c *Client) CreateAccount(ctx context.Context, nickname string) (*models.Account, error) {
	env, status, err := c.do(ctx, http.MethodPost, "/accounts/create", map[string]string{"nickname": nickname})
	if err != nil {
		return nil, err
	}
	if err := check(env, status); err != nil {
		return nil, err
	}
	if env.Account == nil {
		return nil, &RemoteError{Message: "service returned no account"}
	}
	return env.Account, nil
}

// SwitchAccount asks the service to activate the given account.
func (c *Client) SwitchAccount(ctx context.Context, accountID string) (*models.Account, error) {
	env, status, err := c.do(ctx, http.MethodPost, "/accounts/switch", map[string]string{"account_id": accountID})
	if err != nil {
		return nil, err
	}
	if err := check(env, status); err != nil {
		return nil, err
	}
	if env.Account == nil {
		return nil, &RemoteError{Message: "service returned no account"}
	}
	return env.Account, nil
}

// DeleteAccount asks the service to delete the given account.
func (c *Client) DeleteAccount(ctx context.Context, accountID string) error {
	env, status, err := c.do(ctx, http.MethodDelete, "/accounts/delete/"+url.PathEscape(accountID), nil)
	if err != nil {
		return err
	}
	return check(env, status)
}

// SendTokens submits a transfer from an account to an address.
// The returned payload is the service's opaque transaction record.
func (c *Client) SendTokens(ctx context.Context, fromID, toAddress string, amount float64) (json.RawMessage, error) {
	env, status, err := c.do(ctx, http.MethodPost, "/send", map[string]interface{}{
		"from_account_id": fromID,
		"to_address":      toAddress,
		"amount":          amount,
	})
	if err != nil {
		return nil, err
	}
	if err := check(env, status); err != nil {
		return nil, err
	}
	return env.Transaction, nil
}

// RequestFunds asks the faucet to fund an address. A server-enforced
// cooldown comes back as *RateLimitError.
func (c *Client) RequestFunds(ctx context.Context, address string) error {
	env, status, err := c.do(ctx, http.MethodPost, "/faucet/request", map[string]string{"address": address})
	if err != nil {
		return err
	}
	return check(env, status)
}

// Transactions fetches the history for an address. A limit <= 0 leaves
// the page size to the service.
func (c *Client) Transactions(ctx context.Context, address string, limit int) ([]models.Transaction, error) {
	path := "/transactions/" + url.PathEscape(address)
	if limit > 0 {
		path += fmt.Sprintf("?limit=%d", limit)
	}
	env, status, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if err := check(env, status); err != nil {
		return nil, err
	}
	return env.Transactions, nil
}

// Ping exercises the read endpoints and reports reachability. Used by
// the -t flag.
func (c *Client) Ping(ctx context.Context) models.ServiceReport {
	report := models.ServiceReport{BaseURL: c.BaseURL}

	start := time.Now()
	accounts, err := c.ListAccounts(ctx)
	res := models.EndpointResult{Path: "/accounts", LatencyMS: time.Since(start).Milliseconds()}
	if err != nil {
		res.Status = "error"
		res.Error = err.Error()
	} else {
		res.Status = "ok"
		report.Reachable = true
		report.AccountCount = len(accounts)
	}
	report.Endpoints = append(report.Endpoints, res)

	start = time.Now()
	active, err := c.ActiveAccount(ctx)
	res = models.EndpointResult{Path: "/accounts/active", LatencyMS: time.Since(start).Milliseconds()}
	if err != nil {
		res.Status = "error"
		res.Error = err.Error()
	} else {
		res.Status = "ok"
		report.Reachable = true
		if active != nil {
			report.ActiveNickname = active.Nickname
		}
	}
	report.Endpoints = append(report.Endpoints, res)

	return report
}
