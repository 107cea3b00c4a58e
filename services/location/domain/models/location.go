package models

// Kind tells which locality fields the geocoder returned for a place.
type Kind string

const (
	KindCity         Kind = "city"
	KindNeighborhood Kind = "neighborhood"
	KindAddress      Kind = "address"
)

// LocationResult is one place suggestion. FullName is what the caller
// writes back into its form.
type LocationResult struct {
	Kind     Kind   `json:"type"`
	Name     string `json:"name"`
	FullName string `json:"fullName"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
} // @name LocationResult

// AddressComponents are the locality fields a detailed geocoder may return.
// Every field is optional.
type AddressComponents struct {
	Road          string `json:"road"`
	Street        string `json:"street"`
	Suburb        string `json:"suburb"`
	Neighbourhood string `json:"neighbourhood"`
	City          string `json:"city"`
	Town          string `json:"town"`
	Village       string `json:"village"`
	Municipality  string `json:"municipality"`
	State         string `json:"state"`
}

// Locality returns the first non-empty of city, town, village and
// municipality.
func (a AddressComponents) Locality() string {
	return firstNonEmpty(a.City, a.Town, a.Village, a.Municipality)
}

// Thoroughfare returns the road or street name.
func (a AddressComponents) Thoroughfare() string {
	return firstNonEmpty(a.Road, a.Street)
}

// District returns the suburb or neighbourhood name.
func (a AddressComponents) District() string {
	return firstNonEmpty(a.Suburb, a.Neighbourhood)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
