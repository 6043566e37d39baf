package theoddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/XavierBriggs/Pythia/pkg/contracts"
	"github.com/XavierBriggs/Pythia/pkg/models"
)

const (
	DefaultBaseURL = "https://api.the-odds-api.com"
	apiVersion     = "v4"
	userAgent      = "Pythia/1.0 (Weekly Spread Report)"
	defaultTimeout = 10 * time.Second
)

// Client implements the VendorAdapter interface for The Odds API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	rateLimits *models.RateLimits
	mu         sync.RWMutex
}

// Config holds configuration for the client
type Config struct {
	APIKey  string
	BaseURL string // Defaults to DefaultBaseURL
	Timeout time.Duration
}

// Ensure Client implements VendorAdapter
var _ contracts.VendorAdapter = (*Client)(nil)

// NewClient creates a new The Odds API client
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		rateLimits: &models.RateLimits{},
	}
}

// FetchOdds retrieves the event list for one sport with the requested markets.
// A single attempt is made; a non-200 response is returned as *APIError.
func (c *Client) FetchOdds(ctx context.Context, opts *models.FetchOddsOptions) ([]models.Event, error) {
	endpoint := fmt.Sprintf("%s/%s/sports/%s/odds", c.baseURL, apiVersion, url.PathEscape(opts.Sport))

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("regions", strings.Join(opts.Regions, ","))
	params.Set("markets", strings.Join(opts.Markets, ","))
	params.Set("oddsFormat", opts.OddsFormat)
	params.Set("dateFormat", opts.DateFormat)

	fullURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	body, err := c.doRequest(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("fetch odds failed: %w", err)
	}

	var events []models.Event
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("parse odds response: %w", err)
	}

	return events, nil
}

// SupportsMarket checks if this adapter supports a given market
func (c *Client) SupportsMarket(market string) bool {
	supportedMarkets := map[string]bool{
		"h2h":     true,
		"spreads": true,
		"totals":  true,
	}
	return supportedMarkets[market]
}

// GetRateLimits returns a copy of the last seen quota
func (c *Client) GetRateLimits() *models.RateLimits {
	c.mu.RLock()
	defer c.mu.RUnlock()
	limits := *c.rateLimits
	return &limits
}

// doRequest performs a single HTTP request
func (c *Client) doRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	c.updateRateLimits(resp.Header)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	return body, nil
}

// updateRateLimits extracts quota info from response headers
func (c *Client) updateRateLimits(headers http.Header) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if remaining := headers.Get("x-requests-remaining"); remaining != "" {
		// The vendor reports fractional usage for some plans ("499.0")
		if val, err := strconv.ParseFloat(remaining, 64); err == nil {
			c.rateLimits.RequestsRemaining = int(val)
			c.rateLimits.Known = true
		}
	}

	if used := headers.Get("x-requests-used"); used != "" {
		if val, err := strconv.ParseFloat(used, 64); err == nil {
			c.rateLimits.RequestsUsed = int(val)
			c.rateLimits.Known = true
		}
	}
}

// APIError is a non-200 response from the vendor
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("failed to get odds: status_code %d, response body %s", e.StatusCode, e.Body)
}
