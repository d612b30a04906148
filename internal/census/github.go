// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package census

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/dataset-census/internal/httputil"
	"github.com/pdiddy/dataset-census/pkg/types"
)

// searchBase is the GitHub code-search endpoint. Declared as a var so
// tests can substitute an httptest server.
var searchBase = "https://api.github.com/search/code"

const (
	acceptHeader = "application/vnd.github+json"
	apiVersion   = "2022-11-28"

	defaultUserAgent = "dataset-census/0.1"
)

// Client queries the GitHub code-search API with a bearer token.
type Client struct {
	HTTP      *http.Client
	Token     string
	UserAgent string
}

// NewClient builds a code-search client from shared HTTP settings. The
// token is passed in explicitly; the package never reads the
// environment.
func NewClient(token string, cfg types.HTTPConfig) *Client {
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		HTTP:      &http.Client{Timeout: cfg.Timeout},
		Token:     token,
		UserAgent: ua,
	}
}

// Count returns the total_count GitHub code search reports for a raw
// query string. Rate-limit responses (HTTP 403) are retried per policy;
// any other non-200 status becomes an error for the caller to log and
// skip. A 200 response without a total_count field counts as zero.
func (c *Client) Count(ctx context.Context, query string, policy httputil.RetryPolicy) (int, error) {
	policy = policy.WithDefaults()

	params := url.Values{"q": {query}}
	reqURL := searchBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, policy)
	if err != nil {
		return 0, fmt.Errorf("code search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == policy.RetryStatus {
		return 0, fmt.Errorf("rate limited after %d attempt(s) (HTTP %d)", policy.MaxAttempts, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("code search returned HTTP %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return 0, fmt.Errorf("parsing code search response: %w", err)
	}
	return sr.TotalCount, nil
}

// GitHub code-search JSON structure. Only the aggregate count matters
// here; the per-file items are never requested beyond the first page.
type searchResponse struct {
	TotalCount        int  `json:"total_count"`
	IncompleteResults bool `json:"incomplete_results"`
}
