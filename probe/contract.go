package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultRequestTimeout bounds each outbound request.
const DefaultRequestTimeout = 10 * time.Second

// VerifyStatus is the outcome of one contract-verification probe.
type VerifyStatus string

const (
	// StatusVerified means the API returned verified source code for the
	// address.
	StatusVerified VerifyStatus = "verified"

	// StatusNotVerified means the API knows the address but has no
	// verified source for it.
	StatusNotVerified VerifyStatus = "not_verified"

	// StatusAuthFailure means the API rejected the request's API key.
	StatusAuthFailure VerifyStatus = "auth_failure"

	// StatusRateLimited means the API throttled the request.
	StatusRateLimited VerifyStatus = "rate_limited"

	// StatusTimeout means the request exceeded the per-request timeout.
	StatusTimeout VerifyStatus = "timeout"

	// StatusUnreachable means the request failed at the transport level.
	StatusUnreachable VerifyStatus = "unreachable"

	// StatusAPIError means the API answered with an unexpected status or
	// payload.
	StatusAPIError VerifyStatus = "api_error"
)

// IsValid returns true if the status is one of the defined outcomes.
func (s VerifyStatus) IsValid() bool {
	switch s {
	case StatusVerified, StatusNotVerified, StatusAuthFailure,
		StatusRateLimited, StatusTimeout, StatusUnreachable, StatusAPIError:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s VerifyStatus) String() string {
	return string(s)
}

// Verified reports whether the probe confirmed the contract.
func (s VerifyStatus) Verified() bool {
	return s == StatusVerified
}

// ContractClient queries a contract-verification API for one address at a
// time. The expected API shape is a GET endpoint taking the address as a
// query parameter and an x-api-key header, answering
// {"code": 0, "result": ...} where a non-null result means verified.
type ContractClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewContractClient creates a client for the given API endpoint. A nil
// httpClient gets a default with the standard per-request timeout.
func NewContractClient(baseURL, apiKey string, httpClient *http.Client) *ContractClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultRequestTimeout}
	}
	return &ContractClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// Verify probes one address. The outcome is always a status plus a
// human-readable detail; transport and API failures are statuses, not
// errors. The only returned error is context cancellation.
func (c *ContractClient) Verify(ctx context.Context, address string) (VerifyStatus, string, error) {
	reqURL := fmt.Sprintf("%s?%s", c.baseURL, url.Values{"address": {address}}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return StatusAPIError, err.Error(), nil
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", "", ctxErr
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return StatusTimeout, "request timeout", nil
		}
		return StatusUnreachable, err.Error(), nil
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return StatusAuthFailure, "authentication failed", nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return StatusRateLimited, "rate limit exceeded", nil
	case resp.StatusCode != http.StatusOK:
		return StatusAPIError, fmt.Sprintf("HTTP %d", resp.StatusCode), nil
	}

	var body struct {
		Code   *int            `json:"code"`
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return StatusAPIError, "invalid JSON response", nil
	}
	if body.Code == nil {
		return StatusAPIError, "invalid response format", nil
	}
	if *body.Code != 0 {
		return StatusAPIError, fmt.Sprintf("API error (code: %d)", *body.Code), nil
	}
	if len(body.Result) == 0 || string(body.Result) == "null" {
		return StatusNotVerified, "not verified", nil
	}
	return StatusVerified, "verified", nil
}
