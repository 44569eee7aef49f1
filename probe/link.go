package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// LinkChecker probes documentation links with HEAD requests. A link is live
// when the final response (after redirects) is below 400; client and server
// error statuses and any transport failure mark it dead.
type LinkChecker struct {
	httpClient *http.Client
}

// NewLinkChecker creates a checker. A nil httpClient gets a default with the
// standard per-request timeout; redirects are followed.
func NewLinkChecker(httpClient *http.Client) *LinkChecker {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultRequestTimeout}
	}
	return &LinkChecker{httpClient: httpClient}
}

// Check probes one URL. ok is false for 4xx/5xx statuses and transport
// failures, with detail describing the failure. The only returned error is
// context cancellation.
func (l *LinkChecker) Check(ctx context.Context, rawURL string) (ok bool, detail string, err error) {
	if rawURL == "" {
		return true, "", nil
	}

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if reqErr != nil {
		return false, fmt.Sprintf("invalid URL: %v", reqErr), nil
	}

	resp, doErr := l.httpClient.Do(req)
	if doErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, "", ctxErr
		}
		var urlErr *url.Error
		if errors.As(doErr, &urlErr) && urlErr.Timeout() {
			return false, "request timeout", nil
		}
		return false, "failed to connect", nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode < 600 {
		return false, fmt.Sprintf("returned status %d", resp.StatusCode), nil
	}
	return true, "", nil
}
