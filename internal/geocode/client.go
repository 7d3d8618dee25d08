// Package geocode resolves free-text addresses against a Nominatim-compatible
// search endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mark3labs/mirrorbook/internal/logger"
)

const (
	DefaultEndpoint  = "https://nominatim.openstreetmap.org/search"
	DefaultCountry   = "il"
	DefaultLimit     = 5
	DefaultUserAgent = "mirrorbook/1.0 (+https://github.com/mark3labs/mirrorbook)"
	DefaultTimeout   = 10 * time.Second
)

// Place is one address candidate.
type Place struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat,omitempty"`
	Lon         string `json:"lon,omitempty"`
}

// Searcher looks up address candidates for a query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Place, error)
}

// Config configures a Client. Zero fields take the defaults.
type Config struct {
	Endpoint  string
	Country   string
	Limit     int
	UserAgent string
	Language  string
	Timeout   time.Duration
}

// Client queries the geocoding endpoint over HTTP.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a geocoding client.
func NewClient(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Country == "" {
		cfg.Country = DefaultCountry
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// SearchURL returns the request URL for query.
func (c *Client) SearchURL(query string) string {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(c.cfg.Limit))
	params.Set("countrycodes", c.cfg.Country)
	return c.cfg.Endpoint + "?" + params.Encode()
}

// Search fetches up to Limit candidates for query.
func (c *Client) Search(ctx context.Context, query string) ([]Place, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.SearchURL(query), nil)
	if err != nil {
		return nil, fmt.Errorf("building geocode request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")
	if c.cfg.Language != "" {
		req.Header.Set("Accept-Language", c.cfg.Language)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("geocoder returned status %d: %s", resp.StatusCode, string(body))
	}

	var places []Place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("decoding geocode response: %w", err)
	}
	if len(places) > c.cfg.Limit {
		places = places[:c.cfg.Limit]
	}
	logger.Debug("geocode %q: %d result(s)", query, len(places))
	return places, nil
}
