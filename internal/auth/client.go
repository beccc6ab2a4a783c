package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iola1999/AssppWeb/internal/domain"
)

// Client authenticates against the store backend over HTTPS. One POST per
// attempt, no retries; a second-factor challenge comes back as an AuthError
// with CodeRequired set and the caller drives the retry with a code.
type Client struct {
	endpoint    string
	podEndpoint string
	httpClient  *http.Client
}

// NewClient creates an authenticator client. endpoint is the default auth
// URL; podEndpoint is a template with a single %s verb substituted with the
// account's pod when the account carries one. A zero timeout disables the
// client-side deadline.
func NewClient(endpoint, podEndpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint:    endpoint,
		podEndpoint: podEndpoint,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// Authenticate posts the credentials and decodes the refreshed account
// record. Non-2xx responses are decoded into an AuthError so the caller can
// branch on CodeRequired.
func (c *Client) Authenticate(ctx context.Context, creds Credentials) (*domain.Account, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return nil, fmt.Errorf("failed to encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.urlFor(creds.Pod), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach auth backend: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read auth response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		authErr := &AuthError{}
		if err := json.Unmarshal(data, authErr); err != nil || authErr.Message == "" {
			authErr.Message = fmt.Sprintf("authentication failed with status %d", resp.StatusCode)
		}
		return nil, authErr
	}

	var account domain.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, fmt.Errorf("failed to decode refreshed account: %w", err)
	}
	account.Normalize()
	return &account, nil
}

// urlFor picks the pod-specific endpoint when the account has a pod hint.
func (c *Client) urlFor(pod string) string {
	if pod != "" && strings.Contains(c.podEndpoint, "%s") {
		return fmt.Sprintf(c.podEndpoint, pod)
	}
	return c.endpoint
}
