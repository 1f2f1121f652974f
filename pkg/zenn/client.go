// Package zenn fetches a user's recent articles from the Zenn public API.
package zenn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/codeGROOVE-dev/retry"

	"github.com/devchronicle/chronicle/pkg/httpcache"
	"github.com/devchronicle/chronicle/pkg/report"
)

const articleCount = 20

// Client fetches article feeds with retry and response caching.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// New builds a client. The cache may be nil.
func New(cache *httpcache.Cache, logger *slog.Logger) *Client {
	httpClient := &http.Client{Timeout: 15 * time.Second}
	if cache != nil {
		httpClient.Transport = httpcache.NewTransport(cache, nil)
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    "https://zenn.dev",
		logger:     logger,
	}
}

// FetchArticles returns the user's latest articles, most recent first.
func (c *Client) FetchArticles(ctx context.Context, username string) (*report.ZennData, error) {
	apiURL := fmt.Sprintf("%s/api/articles?username=%s&order=latest&count=%d",
		c.baseURL, url.QueryEscape(username), articleCount)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.doWithRetry(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fetching articles: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Debug("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Zenn API returned status %d: %s", resp.StatusCode, string(body))
	}

	var data report.ZennData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	c.logger.Debug("fetched articles", "username", username, "count", len(data.Articles))
	return &data, nil
}

// doWithRetry performs the request with exponential backoff and jitter.
// Client errors do not retry; 429 aborts immediately.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var lastErr error

	err := retry.Do(
		func() error {
			reqCopy := req.Clone(ctx)

			var err error
			resp, err = c.httpClient.Do(reqCopy)
			if err != nil {
				lastErr = err
				return err
			}

			if resp.StatusCode == http.StatusTooManyRequests {
				_ = resp.Body.Close()
				lastErr = fmt.Errorf("rate limited by %s", req.URL.Host)
				return retry.Unrecoverable(lastErr)
			}

			if resp.StatusCode >= 500 {
				_ = resp.Body.Close()
				lastErr = fmt.Errorf("server error from %s: %d", req.URL.Host, resp.StatusCode)
				return lastErr
			}

			return nil
		},
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.MaxDelay(10*time.Second),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Info("retrying Zenn request", "attempt", n+1, "error", err)
		}),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, lastErr
	}

	return resp, nil
}
