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
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// acceptedPlaceTypes are the address classifications we trust to be a
// real city-level place. Anything else (a street, a shop, a typo that
// geocodes to a random POI) is rejected.
var acceptedPlaceTypes = map[string]struct{}{
	"city":         {},
	"town":         {},
	"county":       {},
	"municipality": {},
	"state":        {},
	"province":     {},
	"region":       {},
}

// Client communicates with a Nominatim-compatible geocoding service.
type Client struct {
	httpClient *http.Client
	// BaseURL is the service base URL. Defaults to the public Nominatim
	// instance. Exported for testing with httptest.
	BaseURL string
}

// NewClient creates a geocoding client with sensible defaults.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		BaseURL: baseURL,
	}
}

// Result is one accepted geocoding hit.
type Result struct {
	DisplayName string
	Latitude    float64
	Longitude   float64
	PlaceType   string
}

type searchRow struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Class       string `json:"class"`
	Type        string `json:"type"`
	AddressType string `json:"addresstype"`
}

// Search geocodes a free-text place name. It returns (nil, nil) when the
// service has no result or the first result is not a city-level place.
func (c *Client) Search(ctx context.Context, query string) (*Result, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	reqURL := fmt.Sprintf("%s/search?%s", c.BaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocoding request: %w", err)
	}
	// Nominatim's usage policy requires an identifying user agent
	req.Header.Set("User-Agent", "sholat-live-bot/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("geocoding service returned status %d: %s", resp.StatusCode, string(body))
	}

	var rows []searchRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	first := rows[0]
	placeType := first.AddressType
	if placeType == "" {
		placeType = first.Type
	}
	if _, ok := acceptedPlaceTypes[placeType]; !ok {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(first.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("bad latitude %q in geocoding response: %w", first.Lat, err)
	}
	lon, err := strconv.ParseFloat(first.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("bad longitude %q in geocoding response: %w", first.Lon, err)
	}

	return &Result{
		DisplayName: first.DisplayName,
		Latitude:    lat,
		Longitude:   lon,
		PlaceType:   placeType,
	}, nil
}
