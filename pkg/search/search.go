// Package search fetches web results that give the analysis pipeline
// extra context for a task, using the Brave Search API.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const defaultEndpoint = "https://api.search.brave.com/res/v1/web/search"

// Result is a single web search hit.
type Result struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Client queries the Brave Search API.
type Client struct {
	apiKey   string
	endpoint string
	http     *http.Client
}

// New creates a Client authenticated with apiKey.
func New(apiKey string) *Client {
	return &Client{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Search returns up to max results for query. The query is widened
// toward implementation guidance, which is what the results feed.
func (c *Client) Search(ctx context.Context, query string, max int) ([]Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	q := req.URL.Query()
	q.Set("q", query+" programming implementation guide")
	q.Set("count", strconv.Itoa(max))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search request: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Web struct {
			Results []Result `json:"results"`
		} `json:"web"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	results := body.Web.Results
	if len(results) > max {
		results = results[:max]
	}
	return results, nil
}
