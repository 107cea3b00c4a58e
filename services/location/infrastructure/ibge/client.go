// Package ibge reads the IBGE municipality directory and filters it locally.
package ibge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ghuser/eventplanner/services/location/domain/models"
	"github.com/ghuser/eventplanner/services/location/domain/repositories"
	domainsvcs "github.com/ghuser/eventplanner/services/location/domain/services"
)

// Client is the secondary, city-only location source. The directory is
// downloaded on every search.
type Client struct {
	url  string
	http *http.Client
}

var _ repositories.Source = (*Client)(nil)

func New(url string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{url: url, http: hc}
}

func (c *Client) Name() string { return "ibge" }

// Any link in the region chain may be missing.
type municipality struct {
	Nome         string `json:"nome"`
	Microrregiao *struct {
		Mesorregiao *struct {
			UF *struct {
				Sigla string `json:"sigla"`
			} `json:"UF"`
		} `json:"mesorregiao"`
	} `json:"microrregiao"`
}

func (m municipality) state() string {
	if m.Microrregiao == nil || m.Microrregiao.Mesorregiao == nil || m.Microrregiao.Mesorregiao.UF == nil {
		return ""
	}
	return m.Microrregiao.Mesorregiao.UF.Sigla
}

// Search returns the municipalities whose name contains query, ignoring case
// and accents, in directory order and capped at limit.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]models.LocationResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("ibge: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ibge: request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("ibge: upstream status %d", resp.StatusCode)
	}

	var all []municipality
	if err := json.NewDecoder(resp.Body).Decode(&all); err != nil {
		return nil, fmt.Errorf("ibge: decode: %w", err)
	}

	needle := domainsvcs.Fold(strings.TrimSpace(query))
	out := make([]models.LocationResult, 0, limit)
	for _, m := range all {
		if limit > 0 && len(out) == limit {
			break
		}
		if m.Nome == "" || !strings.Contains(domainsvcs.Fold(m.Nome), needle) {
			continue
		}
		out = append(out, domainsvcs.City(m.Nome, m.state()))
	}
	return out, nil
}
