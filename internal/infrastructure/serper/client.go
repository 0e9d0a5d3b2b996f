package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/pricelens/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client handles communication with the Serper.dev Google Shopping API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	country     string
	language    string
	rateLimiter *rate.Limiter
	debug       bool
}

// Options tunes the client beyond the required key and base URL.
type Options struct {
	Country   string
	Language  string
	PerSecond float64
	Burst     int
}

// NewClient creates a new Serper API client. Country and language default to
// the Indian market ("in"/"en") when left empty.
func NewClient(apiKey, baseURL string, opts Options) *Client {
	if opts.Country == "" {
		opts.Country = "in"
	}
	if opts.Language == "" {
		opts.Language = "en"
	}
	if opts.PerSecond <= 0 {
		opts.PerSecond = 2.0
	}
	if opts.Burst <= 0 {
		opts.Burst = 5
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		country:     opts.Country,
		language:    opts.Language,
		rateLimiter: rate.NewLimiter(rate.Limit(opts.PerSecond), opts.Burst),
	}
}

// SetDebug enables verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// shoppingRequest is the JSON body sent to the /shopping endpoint
type shoppingRequest struct {
	Query    string `json:"q"`
	Country  string `json:"gl"`
	Language string `json:"hl"`
}

// Search issues exactly one shopping search for the query. Failures are not
// retried: a network error, a non-success status, or an unparseable body all
// surface as domain.ErrUpstreamFailure so the caller can report a single
// user-facing error.
func (c *Client) Search(ctx context.Context, query string) (*domain.ShoppingSearchResponse, error) {
	if c.debug {
		log.Printf("[serper] Search called with query: %q", query)
	}

	// Wait for rate limiter
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	body, err := json.Marshal(shoppingRequest{
		Query:    query,
		Country:  c.country,
		Language: c.language,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/shopping", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("User-Agent", "PriceLens/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[serper] Request error: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", domain.ErrUpstreamFailure, err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[serper] API error - Status: %d, Body: %s", resp.StatusCode, string(respBody))
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstreamFailure, resp.StatusCode)
	}

	var searchResp domain.ShoppingSearchResponse
	if err := json.Unmarshal(respBody, &searchResp); err != nil {
		log.Printf("[serper] JSON decode error: %v", err)
		return nil, fmt.Errorf("%w: decoding body: %v", domain.ErrUpstreamFailure, err)
	}

	if c.debug {
		log.Printf("[serper] Found %d shopping results for query: %q", len(searchResp.Shopping), query)
	}
	return &searchResp, nil
}
