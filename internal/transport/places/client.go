package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sichrplace/discovery/internal/domain"
	"github.com/sichrplace/discovery/internal/domain/geo"
	"github.com/sichrplace/discovery/internal/domain/place"
)

const defaultTimeout = 10 * time.Second

// Client talks to the places provider over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a places client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// NewWithHTTPClient creates a places client with a custom http.Client.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: baseURL, http: hc}
}

// candidatePayload is the provider's wire shape for a single place.
type candidatePayload struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Lat        float64  `json:"lat"`
	Lng        float64  `json:"lng"`
	Categories []string `json:"categories,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`
	OpenNow    *bool    `json:"openNow,omitempty"`
}

type nearbyResponse struct {
	Places []candidatePayload `json:"places"`
}

// Nearby fetches candidate places around the origin within radiusKm.
func (c *Client) Nearby(ctx context.Context, origin geo.Coordinate, radiusKm float64) ([]place.Candidate, error) {
	u, err := url.Parse(c.baseURL + "/places")
	if err != nil {
		return nil, fmt.Errorf("places url: %w", err)
	}

	q := u.Query()
	q.Set("lat", strconv.FormatFloat(origin.Lat, 'f', -1, 64))
	q.Set("lng", strconv.FormatFloat(origin.Lng, 'f', -1, 64))
	q.Set("radiusKm", strconv.FormatFloat(radiusKm, 'f', -1, 64))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build places request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPlacesUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", domain.ErrPlacesUnavailable, resp.StatusCode)
	}

	var payload nearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrPlacesUnavailable, err)
	}

	candidates := make([]place.Candidate, 0, len(payload.Places))
	for _, p := range payload.Places {
		candidates = append(candidates, place.Candidate{
			ID:         p.ID,
			Name:       p.Name,
			Location:   geo.Coordinate{Lat: p.Lat, Lng: p.Lng},
			Categories: p.Categories,
			Rating:     p.Rating,
			OpenNow:    p.OpenNow,
		})
	}
	return candidates, nil
}

// HealthCheck probes the provider with a zero-radius lookup.
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.Nearby(ctx, geo.Coordinate{}, 0)
	return err
}
