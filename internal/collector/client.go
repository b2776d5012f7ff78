package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/startup-discovery/internal/discovery"
)

// maxAPIBody caps how much of an API response is read into memory.
const maxAPIBody = 4 << 20

// APIClient is a JSON HTTP client shared by the API-backed collectors. It
// paces requests per host and retries transient failures with backoff.
type APIClient struct {
	http      *http.Client
	limiter   *HostLimiter
	retry     *RetryPolicy
	userAgent string
	logger    *zap.Logger
}

// NewAPIClient constructs an APIClient from pipeline configuration.
func NewAPIClient(cfg discovery.Config, logger *zap.Logger) *APIClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIClient{
		http: &http.Client{
			Timeout: cfg.RequestTimeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        64,
				MaxIdleConnsPerHost: 16,
				IdleConnTimeout:     30 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
				ForceAttemptHTTP2:   true,
			},
		},
		limiter:   NewHostLimiter(2, 1),
		retry:     NewRetryPolicy(cfg.RetryAttempts),
		userAgent: cfg.UserAgent,
		logger:    logger,
	}
}

// GetJSON fetches rawURL with the given query parameters and decodes the
// JSON response into out.
func (c *APIClient) GetJSON(ctx context.Context, rawURL string, params url.Values, headers http.Header, out any) error {
	target := rawURL
	if len(params) > 0 {
		target = rawURL + "?" + params.Encode()
	}
	return c.doJSON(ctx, http.MethodGet, target, nil, headers, out)
}

// PostJSON sends body as JSON to rawURL and decodes the JSON response into
// out. Used by GraphQL-style endpoints.
func (c *APIClient) PostJSON(ctx context.Context, rawURL string, body any, headers http.Header, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request body: %w", err)
	}
	return c.doJSON(ctx, http.MethodPost, rawURL, payload, headers, out)
}

func (c *APIClient) doJSON(ctx context.Context, method, target string, body []byte, headers http.Header, out any) error {
	var lastErr error
	for attempt := 0; ; attempt++ {
		lastErr = c.once(ctx, method, target, body, headers, out)
		if lastErr == nil {
			return nil
		}
		if !c.retry.ShouldRetry(lastErr, attempt) {
			return lastErr
		}
		c.logger.Debug("Retrying API request",
			zap.String("url", target),
			zap.Int("attempt", attempt+1),
			zap.Error(lastErr),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.retry.Backoff(attempt)):
		}
	}
}

func (c *APIClient) once(ctx context.Context, method, target string, body []byte, headers http.Header, out any) error {
	if err := c.limiter.Wait(ctx, target); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Method: method, URL: target, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAPIBody))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	// Endpoints behind WAFs sometimes answer 200 with an HTML error page;
	// the decode error here is the recoverable signal for that.
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response from %s: %w", target, err)
	}
	return nil
}
