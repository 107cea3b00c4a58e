// Package services holds the pure location rules: classification of geocoder
// records, full-name composition, de-duplication and accent-insensitive
// matching.
package services

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/ghuser/eventplanner/services/location/domain/models"
)

// Classify turns one detailed-geocoder record into a LocationResult.
// Precedence: a road makes it an address, else a suburb a neighborhood, else
// a locality a city. With none of those, display is used as an address named
// after its first comma-separated segment.
func Classify(display string, addr models.AddressComponents) models.LocationResult {
	city := strings.TrimSpace(addr.Locality())
	state := strings.TrimSpace(addr.State)

	var r models.LocationResult
	switch {
	case strings.TrimSpace(addr.Thoroughfare()) != "":
		r = models.LocationResult{Kind: models.KindAddress, Name: strings.TrimSpace(addr.Thoroughfare()), City: city, State: state}
	case strings.TrimSpace(addr.District()) != "":
		r = models.LocationResult{Kind: models.KindNeighborhood, Name: strings.TrimSpace(addr.District()), City: city, State: state}
	case city != "":
		r = models.LocationResult{Kind: models.KindCity, Name: city, City: city, State: state}
	default:
		display = strings.TrimSpace(display)
		name, _, _ := strings.Cut(display, ",")
		return models.LocationResult{Kind: models.KindAddress, Name: strings.TrimSpace(name), FullName: display}
	}
	r.FullName = FullName(r.Name, r.City, r.State)
	return r
}

// City builds a city-level result, as returned by a municipality directory.
func City(name, state string) models.LocationResult {
	name = strings.TrimSpace(name)
	state = strings.TrimSpace(state)
	return models.LocationResult{
		Kind:     models.KindCity,
		Name:     name,
		FullName: FullName(name, name, state),
		City:     name,
		State:    state,
	}
}

// FullName comma-joins the non-empty parts of name, city and state. City is
// skipped when it equals name.
func FullName(name, city, state string) string {
	name, city, state = strings.TrimSpace(name), strings.TrimSpace(city), strings.TrimSpace(state)
	if strings.EqualFold(city, name) {
		city = ""
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{name, city, state} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Dedupe keeps the first result for each FullName, compared without regard
// to case, and caps the list at limit (limit <= 0 means no cap). It always
// returns a new slice.
func Dedupe(results []models.LocationResult, limit int) []models.LocationResult {
	out := make([]models.LocationResult, 0, len(results))
	seen := make(map[string]struct{}, len(results))
	for _, r := range results {
		if limit > 0 && len(out) == limit {
			break
		}
		key := strings.ToLower(strings.TrimSpace(r.FullName))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Fold lower-cases s and strips diacritics, so "São Paulo" folds to
// "sao paulo".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// ContainsFolded reports whether needle occurs in haystack ignoring case and
// accents.
func ContainsFolded(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}
