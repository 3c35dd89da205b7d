package api

import "fmt"

// RemoteError is a rejection the service stated explicitly, either as
// success:false or as an error payload on a non-2xx status.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return "wallet service rejected the request"
	}
	return e.Message
}

// RateLimitError is returned for HTTP 429 on the faucet endpoint.
// RetryAfter is the server-issued wait in seconds.
type RateLimitError struct {
	RetryAfter int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry after %ds", e.RetryAfter)
}
