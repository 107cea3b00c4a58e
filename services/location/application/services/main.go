package services

import (
	"github.com/ghuser/eventplanner/pkg/app"
	"github.com/ghuser/eventplanner/services/location/infrastructure/ibge"
	"github.com/ghuser/eventplanner/services/location/infrastructure/nominatim"
)

// Services is the application-layer service container for the location
// bounded context.
type Services struct {
	Resolver *Resolver
}

// New wires Nominatim as the primary source and the IBGE directory as the
// fallback.
func New(a *app.Application) *Services {
	cfg := a.Config
	primary := nominatim.New(nominatim.Config{
		BaseURL:    cfg.NominatimURL,
		UserAgent:  cfg.NominatimUserAgent,
		Country:    cfg.GeocoderCountry,
		RatePerSec: cfg.NominatimRatePerSec,
	}, a.HTTPClient)
	secondary := ibge.New(cfg.IBGEMunicipalitiesURL, a.HTTPClient)

	return &Services{
		Resolver: NewResolver(primary, secondary, ResolverConfig{
			MinQueryLength: cfg.LocationMinQueryLength,
			MaxResults:     cfg.LocationMaxResults,
		}, a.Logger),
	}
}
