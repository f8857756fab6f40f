// Package geocode is a thin client for Nominatim-style forward geocoding.
// The locator uses it to turn a volunteer's free-text address into
// coordinates before ranking hosts by distance.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the public Nominatim search endpoint.
const DefaultBaseURL = "https://nominatim.openstreetmap.org/search"

// ErrNoResults is returned when the geocoder finds nothing for a query.
// Handlers should map this to HTTP 404.
var ErrNoResults = errors.New("geocode: no results")

// Result is the resolved location for a free-text query.
type Result struct {
	Lat         float64
	Lng         float64
	DisplayName string
}

// nominatimResult is the subset of the Nominatim response the client reads.
// Nominatim returns lat/lon as strings.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Client resolves free-text addresses against a Nominatim-compatible server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New constructs a Client. An empty baseURL selects the public Nominatim
// instance; a nil httpClient gets a 10-second-timeout default.
func New(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// Search resolves query to coordinates. Returns ErrNoResults when the
// geocoder has no match.
func (c *Client) Search(ctx context.Context, query string) (Result, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("accept-language", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Result{}, fmt.Errorf("geocode.Search: build request: %w", err)
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", "sandwich-host-locator/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("geocode.Search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("geocode.Search: unexpected status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Result{}, fmt.Errorf("geocode.Search: decode: %w", err)
	}
	if len(results) == 0 {
		return Result{}, fmt.Errorf("geocode.Search: %q: %w", query, ErrNoResults)
	}

	first := results[0]
	lat, err := strconv.ParseFloat(first.Lat, 64)
	if err != nil {
		return Result{}, fmt.Errorf("geocode.Search: parse lat %q: %w", first.Lat, err)
	}
	lng, err := strconv.ParseFloat(first.Lon, 64)
	if err != nil {
		return Result{}, fmt.Errorf("geocode.Search: parse lon %q: %w", first.Lon, err)
	}

	return Result{Lat: lat, Lng: lng, DisplayName: first.DisplayName}, nil
}

// Geocode resolves query to a coordinate pair, discarding the display name.
// It satisfies the locator service's Geocoder interface.
func (c *Client) Geocode(ctx context.Context, query string) (float64, float64, error) {
	result, err := c.Search(ctx, query)
	if err != nil {
		return 0, 0, err
	}
	return result.Lat, result.Lng, nil
}
