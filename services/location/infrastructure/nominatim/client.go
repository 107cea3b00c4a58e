// Package nominatim queries the OpenStreetMap Nominatim search API.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/ghuser/eventplanner/services/location/domain/models"
	"github.com/ghuser/eventplanner/services/location/domain/repositories"
	domainsvcs "github.com/ghuser/eventplanner/services/location/domain/services"
)

const searchPath = "/search"

// Config tunes the client. Country is appended to every query; UserAgent is
// mandatory under the Nominatim usage policy.
type Config struct {
	BaseURL    string
	UserAgent  string
	Country    string
	RatePerSec float64
}

// Client is the primary, address-level location source.
type Client struct {
	endpoint string
	cfg      Config
	http     *http.Client
	limiter  *rate.Limiter
}

var _ repositories.Source = (*Client)(nil)

func New(cfg Config, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	limit := rate.Inf
	if cfg.RatePerSec > 0 {
		limit = rate.Limit(cfg.RatePerSec)
	}
	return &Client{
		endpoint: strings.TrimRight(cfg.BaseURL, "/") + searchPath,
		cfg:      cfg,
		http:     hc,
		limiter:  rate.NewLimiter(limit, 1),
	}
}

func (c *Client) Name() string { return "nominatim" }

type place struct {
	DisplayName string                   `json:"display_name"`
	Address     models.AddressComponents `json:"address"`
}

// Search waits for the rate limiter, queries Nominatim and classifies every
// record.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]models.LocationResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("nominatim: rate limit: %w", err)
	}

	q := query
	if c.cfg.Country != "" {
		q = query + ", " + c.cfg.Country
	}
	params := url.Values{}
	params.Set("q", q)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("nominatim: build request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim: request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim: upstream status %d", resp.StatusCode)
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("nominatim: decode: %w", err)
	}

	out := make([]models.LocationResult, 0, len(places))
	for _, p := range places {
		out = append(out, domainsvcs.Classify(p.DisplayName, p.Address))
	}
	return out, nil
}
