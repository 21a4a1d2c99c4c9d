// Package limitgate calls the remote check-listing-limit function on behalf of
// a signed-in caller.
package limitgate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gomeraway-api/internal/domain/plans"

	"go.uber.org/zap"
)

const functionPath = "/functions/v1/check-listing-limit"

// Client never fails open: every failure degrades to plans.Denied().
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New builds a client for the functions host at baseURL. apiKey is sent as the
// apikey header when set.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check asks whether the owner of accessToken may create another listing.
// userID is only used for logging. The returned error is informational; the
// decision is always safe to use.
func (c *Client) Check(ctx context.Context, userID, accessToken string) (plans.Decision, error) {
	decision, err := c.check(ctx, accessToken)
	if err != nil {
		c.log.Warn("listing limit check failed", zap.String("user_id", userID), zap.Error(err))
		return plans.Denied(), err
	}
	return decision, nil
}

func (c *Client) check(ctx context.Context, accessToken string) (plans.Decision, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+functionPath, nil)
	if err != nil {
		return plans.Decision{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return plans.Decision{}, fmt.Errorf("call limit function: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return plans.Decision{}, fmt.Errorf("read limit response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return plans.Decision{}, fmt.Errorf("limit function returned %d", resp.StatusCode)
	}

	var decision plans.Decision
	if err := json.Unmarshal(body, &decision); err != nil {
		return plans.Decision{}, fmt.Errorf("decode limit response: %w", err)
	}
	return decision, nil
}
