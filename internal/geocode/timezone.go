package geocode

import (
	"fmt"

	"github.com/ringsaturn/tzf"
)

// TimezoneFinder resolves an IANA timezone name from coordinates using the
// embedded tzf polygon data, so newly registered cities never need a
// network timezone lookup.
type TimezoneFinder struct {
	finder   tzf.F
	fallback string
}

// NewTimezoneFinder builds the finder. fallback is returned whenever a
// point does not land in any timezone polygon.
func NewTimezoneFinder(fallback string) (*TimezoneFinder, error) {
	f, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("failed to init timezone finder: %w", err)
	}
	return &TimezoneFinder{finder: f, fallback: fallback}, nil
}

// TimezoneFor returns the timezone name at (lat, lon), or the fallback.
func (t *TimezoneFinder) TimezoneFor(lat, lon float64) string {
	name := t.finder.GetTimezoneName(lon, lat)
	if name == "" {
		return t.fallback
	}
	return name
}
