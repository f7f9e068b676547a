package bc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/jkivimaki/orderintake/internal/instrumentation"
)

const (
	// defaultMaxTries bounds the attempts for a single API request.
	defaultMaxTries = 3

	// dueDateOffsetDays is added to the order date to produce the due date.
	dueDateOffsetDays = 7

	// externalDocumentNo marks orders created by this pipeline.
	externalDocumentNo = "APA_FROM_EMAIL"

	apiHost  = "https://api.businesscentral.dynamics.com"
	apiScope = apiHost + "/.default"
)

// Config carries the Business Central connection settings.
type Config struct {
	TenantID     string
	Environment  string
	CompanyName  string
	ClientID     string
	ClientSecret string
}

// Options configure a Client beyond the connection settings.
type Options struct {
	// HTTPClient used for API requests. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// BaseURL overrides the company endpoint URL, used in tests.
	BaseURL string

	// TokenURL overrides the AAD token endpoint, used in tests.
	TokenURL string

	// MaxTries bounds the attempts per request.
	MaxTries uint

	// Logger for request progress. Defaults to slog.Default.
	Logger *slog.Logger

	// Metrics records retried requests. Defaults to a no-op recorder.
	Metrics *instrumentation.Metrics
}

// Client posts sales orders to the Business Central ODataV4 API. Requests
// authenticate with an AAD client-credentials token; transient failures are
// retried with exponential backoff and an expired token is refreshed once.
type Client struct {
	cfg  Config
	opts Options

	creds   *clientcredentials.Config
	baseURL string

	mu sync.Mutex
	ts oauth2.TokenSource

	// now is swapped out in tests.
	now func() time.Time
}

// NewClient creates a Business Central client for the configured tenant,
// environment and company.
func NewClient(cfg Config, optFns ...func(o *Options)) *Client {
	opts := Options{
		HTTPClient: http.DefaultClient,
		MaxTries:   defaultMaxTries,
		Logger:     slog.Default(),
		Metrics:    &instrumentation.Metrics{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	tokenURL := opts.TokenURL
	if tokenURL == "" {
		tokenURL = fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", cfg.TenantID)
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("%s/v2.0/%s/%s/ODataV4/Company('%s')",
			apiHost, cfg.TenantID, cfg.Environment, url.PathEscape(cfg.CompanyName))
	}

	return &Client{
		cfg:  cfg,
		opts: opts,
		creds: &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     tokenURL,
			Scopes:       []string{apiScope},
		},
		baseURL: baseURL,
		now:     time.Now,
	}
}

// token returns a bearer token, requesting one on first use. The token
// source is bound to a background context so it outlives individual
// request contexts.
func (c *Client) token() (*oauth2.Token, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ts == nil {
		tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, c.opts.HTTPClient)
		c.ts = c.creds.TokenSource(tokenCtx)
	}
	tok, err := c.ts.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire access token: %w", err)
	}
	return tok, nil
}

// invalidateToken drops the cached token source so the next request
// authenticates from scratch.
func (c *Client) invalidateToken() {
	c.mu.Lock()
	c.ts = nil
	c.mu.Unlock()
}

// doRequest sends one authenticated API request. Responses with status 408,
// 429 or 5xx are retried up to MaxTries with exponential backoff; a 401
// forces a single token refresh before the retry. Other error statuses fail
// immediately.
func (c *Client) doRequest(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	refreshed := false
	attempt := 0
	op := func() ([]byte, error) {
		attempt++
		tok, err := c.token()
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("failed to build request: %w", err))
		}
		req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := c.opts.HTTPClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return data, nil
		case resp.StatusCode == http.StatusUnauthorized && !refreshed:
			refreshed = true
			c.invalidateToken()
			c.opts.Metrics.RecordBCRetry(ctx, "unauthorized")
			c.opts.Logger.WarnContext(ctx, "access token rejected, refreshing",
				slog.Int("attempt", attempt))
			return nil, fmt.Errorf("unauthorized: %s", summarize(data))
		case retryableStatus(resp.StatusCode):
			c.opts.Metrics.RecordBCRetry(ctx, "transient")
			c.opts.Logger.WarnContext(ctx, "transient api error",
				slog.Int("http_status", resp.StatusCode),
				slog.Int("attempt", attempt))
			return nil, fmt.Errorf("status %d: %s", resp.StatusCode, summarize(data))
		default:
			return nil, backoff.Permanent(fmt.Errorf("api error %d: %s", resp.StatusCode, summarize(data)))
		}
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond

	data, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(c.opts.MaxTries))
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return data, nil
}

func retryableStatus(code int) bool {
	return code == http.StatusRequestTimeout ||
		code == http.StatusTooManyRequests ||
		code >= 500
}

// summarize trims an error response body for logging and error messages.
func summarize(body []byte) string {
	const limit = 300
	s := string(bytes.TrimSpace(body))
	if len(s) > limit {
		s = s[:limit] + "..."
	}
	if s == "" {
		s = "(empty body)"
	}
	return s
}
