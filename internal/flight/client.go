package flight

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Client is the flight search API client (RapidAPI booking provider).
type Client struct {
	host   string
	apiKey string
	http   *http.Client
}

// NewClient creates a new flight API client.
func NewClient(host, apiKey string) *Client {
	return &Client{
		host:   host,
		apiKey: apiKey,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// ---- Provider Response Types (internal, not exposed to consumers) ----

// Airport is one airport or city from the autocomplete endpoint.
type Airport struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	City     string `json:"cityName"`
	Country  string `json:"countryName"`
	Distance string `json:"distanceToCity,omitempty"`
}

type airportsResponse struct {
	Status bool      `json:"status"`
	Data   []Airport `json:"data"`
}

// SearchFlightsResult carries the provider's flight offers verbatim; the
// frontend renders them without reshaping.
type SearchFlightsResult struct {
	Status bool            `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// ---- Client Methods ----

// SearchAirports looks up airports and cities matching the query.
func (c *Client) SearchAirports(ctx context.Context, query string) ([]Airport, error) {
	endpoint := fmt.Sprintf(
		"https://%s/api/v1/flights/searchDestination?query=%s",
		c.host, url.QueryEscape(query),
	)

	slog.Debug("fetching airports", "query", query)
	var result airportsResponse
	if err := c.doGet(ctx, endpoint, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// SearchFlights fetches flight offers between two airports on a date.
func (c *Client) SearchFlights(ctx context.Context, fromID, toID, departDate string, adults int) (*SearchFlightsResult, error) {
	if adults < 1 {
		adults = 1
	}
	endpoint := fmt.Sprintf(
		"https://%s/api/v1/flights/searchFlights?fromId=%s&toId=%s&departDate=%s&adults=%d",
		c.host, url.QueryEscape(fromID), url.QueryEscape(toID), url.QueryEscape(departDate), adults,
	)

	slog.Debug("fetching flights", "from", fromID, "to", toID, "date", departDate)
	var result SearchFlightsResult
	if err := c.doGet(ctx, endpoint, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) doGet(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("flight API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode flight API response: %w", err)
	}
	return nil
}
