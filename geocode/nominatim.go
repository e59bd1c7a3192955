package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// Address holds the parts of a reverse-geocoding result we render.
// Any of them may be empty for a given coordinate.
type Address struct {
	Road    string `json:"road"`
	Suburb  string `json:"suburb"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// Client talks to a nominatim-compatible reverse-geocoding service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{},
	}
}

// Reverse resolves coordinates into an address.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (*Address, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("reverse geocode failed with status code %d: %s", resp.StatusCode, string(b))
	}

	var result struct {
		Address *Address `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	if result.Address == nil {
		return nil, fmt.Errorf("reverse geocode response missing address")
	}

	return result.Address, nil
}

// PlaceName renders an address as "road, suburb, city, country".
// Empty segments are dropped; country stays last with no trailing
// separator.
func PlaceName(addr *Address) string {
	var parts []string
	for _, part := range []string{addr.Road, addr.Suburb, addr.City, addr.Country} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}
