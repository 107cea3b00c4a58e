// Package backendapi is the REST client for the marketplace backend's
// /roadmaps resource.
package backendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ghuser/eventplanner/pkg/logger"
	"github.com/ghuser/eventplanner/services/roadmap/domain"
	"github.com/ghuser/eventplanner/services/roadmap/domain/models"
	"github.com/ghuser/eventplanner/services/roadmap/domain/repositories"
)

const maxResponseBytes = 4 << 20

// TokenFunc returns the bearer token for an outgoing request, or "".
type TokenFunc func(ctx context.Context) string

// StaticToken always returns tok.
func StaticToken(tok string) TokenFunc {
	return func(context.Context) string { return tok }
}

// Client implements repositories.RoadmapBackend over HTTP.
type Client struct {
	base   *url.URL
	http   *http.Client
	token  TokenFunc
	log    logger.Logger
	errors metric.Int64Counter
}

var _ repositories.RoadmapBackend = (*Client)(nil)

// New returns a Client for baseURL (e.g. http://localhost:3000/api). token
// may be nil for unauthenticated calls.
func New(baseURL string, hc *http.Client, token TokenFunc, log logger.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("backendapi: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backendapi: base url %q must be absolute", baseURL)
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	if token == nil {
		token = StaticToken("")
	}
	counter, err := otel.Meter("github.com/ghuser/eventplanner/services/roadmap/backendapi").
		Int64Counter("planner.roadmap.backend_errors",
			metric.WithDescription("Failed calls to the marketplace roadmap API"))
	if err != nil {
		return nil, fmt.Errorf("backendapi: create counter: %w", err)
	}
	return &Client{base: u, http: hc, token: token, log: log, errors: counter}, nil
}

// List returns every roadmap item of a marketplace event.
func (c *Client) List(ctx context.Context, eventID string) ([]models.RoadmapItem, error) {
	var wire []wireItem
	if err := c.do(ctx, "list", http.MethodGet, "/roadmaps/eventId/"+url.PathEscape(eventID), nil, &wire); err != nil {
		return nil, err
	}
	items := make([]models.RoadmapItem, len(wire))
	for i, w := range wire {
		items[i] = w.toModel()
	}
	return items, nil
}

func (c *Client) Get(ctx context.Context, id string) (models.RoadmapItem, error) {
	var w wireItem
	if err := c.do(ctx, "get", http.MethodGet, "/roadmaps/"+url.PathEscape(id), nil, &w); err != nil {
		return models.RoadmapItem{}, err
	}
	return w.toModel(), nil
}

func (c *Client) Create(ctx context.Context, in models.NewItem) (models.RoadmapItem, error) {
	body := createBody{
		IDEvent:     in.EventID,
		Category:    in.Category,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Status:      in.Status,
	}
	var w wireItem
	if err := c.do(ctx, "create", http.MethodPost, "/roadmaps/", body, &w); err != nil {
		return models.RoadmapItem{}, err
	}
	return w.toModel(), nil
}

func (c *Client) Update(ctx context.Context, id string, p models.ItemPatch) (models.RoadmapItem, error) {
	body := patchBody{
		Category:    p.Category,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Status:      p.Status,
	}
	var w wireItem
	if err := c.do(ctx, "update", http.MethodPut, "/roadmaps/"+url.PathEscape(id), body, &w); err != nil {
		return models.RoadmapItem{}, err
	}
	return w.toModel(), nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, "delete", http.MethodDelete, "/roadmaps/"+url.PathEscape(id), nil, nil)
}

// Ping reports whether the backend answers HTTP at all. Any status below 500
// counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base.String(), http.NoBody)
	if err != nil {
		return fmt.Errorf("backendapi: ping: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: status %d", domain.ErrBackendUnavailable, resp.StatusCode)
	}
	return nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	err := c.roundTrip(ctx, method, path, body, out)
	if err != nil {
		c.errors.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
		c.log.WarnContext(ctx, "roadmap backend call failed", "op", op, "method", method, "path", path, "error", err)
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backendapi: encode body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, reader)
	if err != nil {
		return fmt.Errorf("backendapi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read body: %w", domain.ErrBackendUnavailable, err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)
	if len(bytes.TrimSpace(raw)) == 0 {
		decodeErr = errEmptyBody
	}

	if err := statusError(resp.StatusCode, env); err != nil {
		return err
	}
	if resp.StatusCode == http.StatusNoContent && out == nil {
		return nil
	}
	if decodeErr != nil {
		if out == nil && errors.Is(decodeErr, errEmptyBody) {
			return nil
		}
		return fmt.Errorf("%w: decode envelope: %w", domain.ErrBackendUnavailable, decodeErr)
	}
	if env.Success != nil && !*env.Success {
		return fmt.Errorf("%w: %s", domain.ErrBackendRejected, orDefault(env.text(), "request not accepted"))
	}
	if out == nil {
		return nil
	}
	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return fmt.Errorf("%w: response has no data", domain.ErrBackendUnavailable)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: decode data: %w", domain.ErrBackendUnavailable, err)
	}
	return nil
}

var errEmptyBody = errors.New("empty body")

func statusError(code int, env envelope) error {
	msg := orDefault(env.text(), http.StatusText(code))
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, msg)
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return fmt.Errorf("%w: %s", domain.ErrBackendUnauthorized, msg)
	case code == http.StatusBadRequest, code == http.StatusConflict, code == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", domain.ErrBackendRejected, msg)
	default:
		return fmt.Errorf("%w: status %d: %s", domain.ErrBackendUnavailable, code, msg)
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
