package resolver

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/dodyw/sholat-live/internal/cities"
	"github.com/dodyw/sholat-live/internal/db"
	"github.com/dodyw/sholat-live/internal/geocode"
	"github.com/dodyw/sholat-live/internal/model"
)

// Geocoder turns a free-text place name into coordinates, or (nil, nil)
// when nothing city-like is found.
type Geocoder interface {
	Search(ctx context.Context, query string) (*geocode.Result, error)
}

// TimezoneSource resolves an IANA timezone name for coordinates.
type TimezoneSource interface {
	TimezoneFor(lat, lon float64) string
}

// Resolver maps a city hint to a location record: built-in table first,
// then the persistent store, then geocoding with persist-on-success.
type Resolver struct {
	store     db.Store
	geocoder  Geocoder
	timezones TimezoneSource
	sf        singleflight.Group
}

func New(store db.Store, geocoder Geocoder, timezones TimezoneSource) *Resolver {
	return &Resolver{store: store, geocoder: geocoder, timezones: timezones}
}

// Resolve returns the location for cityHint, or (nil, nil) when no tier
// can produce one. Geocoding and timezone failures degrade to not-found
// rather than propagate.
func (r *Resolver) Resolve(ctx context.Context, cityHint string) (*model.Location, error) {
	spaced := strings.ToLower(strings.TrimSpace(cityHint))
	key := cities.Normalize(cityHint)
	if key == "" {
		return nil, nil
	}

	if c, ok := cities.Lookup(cityHint); ok {
		return c.Location(), nil
	}

	loc, err := r.store.GetLocation(key)
	if err != nil {
		return nil, err
	}
	if loc == nil && spaced != key {
		// aliases in the store may keep their internal spaces
		loc, err = r.store.GetLocation(spaced)
		if err != nil {
			return nil, err
		}
	}
	if loc != nil {
		return loc, nil
	}

	// collapse concurrent lookups of the same unknown city into one
	// geocoding call
	v, err, _ := r.sf.Do(key, func() (any, error) {
		loc, err := r.resolveRemote(ctx, spaced, key)
		if loc == nil || err != nil {
			// keep the not-found result an untyped nil so callers see it
			return nil, err
		}
		return loc, nil
	})
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return v.(*model.Location), nil
}

func (r *Resolver) resolveRemote(ctx context.Context, spaced, key string) (*model.Location, error) {
	res, err := r.geocoder.Search(ctx, spaced)
	if err != nil {
		// degrade: a flaky geocoder means "no result", not a crash
		log.Error().Err(err).Str("city", spaced).Msg("geocoding lookup failed")
		res = nil
	}

	var loc *model.Location
	if res != nil {
		loc = &model.Location{
			Name:        key,
			DisplayName: displayTitle(spaced),
			Latitude:    res.Latitude,
			Longitude:   res.Longitude,
			Timezone:    r.timezones.TimezoneFor(res.Latitude, res.Longitude),
		}
		if spaced != key {
			loc.Aliases = []string{spaced}
		}
	} else if c, ok := cities.LookupInternational(key); ok {
		loc = c.Location()
	}

	if loc == nil {
		return nil, nil
	}

	created, err := r.store.CreateLocation(loc)
	if err != nil {
		// the location is still usable this request even if persisting
		// it failed
		log.Error().Err(err).Str("city", key).Msg("failed to persist resolved location")
		return loc, nil
	}
	return created, nil
}

// displayTitle upper-cases the first rune of each word: "banda aceh" ->
// "Banda Aceh".
func displayTitle(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
