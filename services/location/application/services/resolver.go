// Package services holds the location use cases: the fallback search across
// geocoders and the debounced suggester driven by user input.
package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ghuser/eventplanner/pkg/logger"
	"github.com/ghuser/eventplanner/services/location/domain/models"
	"github.com/ghuser/eventplanner/services/location/domain/repositories"
	domainsvcs "github.com/ghuser/eventplanner/services/location/domain/services"
)

const (
	DefaultMinQueryLength = 3
	DefaultMaxResults     = 8
)

// ResolverConfig bounds a search. Zero values fall back to the defaults.
type ResolverConfig struct {
	MinQueryLength int
	MaxResults     int
}

// Resolver searches the primary source and falls back to the secondary one
// when the primary has nothing to offer.
type Resolver struct {
	primary   repositories.Source
	secondary repositories.Source
	minLen    int
	max       int
	log       logger.Logger
	searches  metric.Int64Counter
}

// NewResolver returns a Resolver. secondary may be nil.
func NewResolver(primary, secondary repositories.Source, cfg ResolverConfig, log logger.Logger) *Resolver {
	if cfg.MinQueryLength <= 0 {
		cfg.MinQueryLength = DefaultMinQueryLength
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	counter, err := otel.Meter("github.com/ghuser/eventplanner/services/location").
		Int64Counter("planner.location.searches",
			metric.WithDescription("Location searches sent to each geocoder"))
	if err != nil {
		log.Warn("location search counter disabled", "error", err)
	}
	return &Resolver{
		primary:   primary,
		secondary: secondary,
		minLen:    cfg.MinQueryLength,
		max:       cfg.MaxResults,
		log:       log,
		searches:  counter,
	}
}

// MinQueryLength is the shortest trimmed query that reaches a geocoder.
func (r *Resolver) MinQueryLength() int { return r.minLen }

// Search never fails: geocoder errors are logged and read as "no results".
// The returned slice is never nil.
func (r *Resolver) Search(ctx context.Context, query string) []models.LocationResult {
	q := strings.TrimSpace(query)
	if utf8.RuneCountInString(q) < r.minLen {
		return []models.LocationResult{}
	}

	if found := r.query(ctx, r.primary, q); len(found) > 0 {
		return domainsvcs.Dedupe(found, r.max)
	}
	if ctx.Err() != nil {
		return []models.LocationResult{}
	}
	return domainsvcs.Dedupe(r.query(ctx, r.secondary, q), r.max)
}

func (r *Resolver) query(ctx context.Context, src repositories.Source, q string) []models.LocationResult {
	if src == nil {
		return nil
	}
	if r.searches != nil {
		r.searches.Add(ctx, 1, metric.WithAttributes(attribute.String("source", src.Name())))
	}

	found, err := src.Search(ctx, q, r.max)
	if err != nil {
		if ctx.Err() != nil {
			r.log.DebugContext(ctx, "location search cancelled", "source", src.Name())
		} else {
			r.log.WarnContext(ctx, "location search failed", "source", src.Name(), "error", err)
		}
		return nil
	}
	r.log.DebugContext(ctx, "location search", "source", src.Name(), "results", len(found))
	return found
}
