package schedule

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dodyw/sholat-live/internal/db"
	"github.com/dodyw/sholat-live/internal/model"
)

// Calculator computes one formatted day of prayer times.
type Calculator interface {
	ForDate(city string, lat, lon float64, date time.Time, timezone string) (*model.PrayerTimes, error)
}

// Cache serves prayer times from the persistent store and computes on
// miss. Entries are a pure function of immutable inputs, so a stored entry
// is never stale and a hit is returned verbatim.
type Cache struct {
	store db.Store
	calc  Calculator
}

func NewCache(store db.Store, calc Calculator) *Cache {
	return &Cache{store: store, calc: calc}
}

// GetPrayerTimes returns the cached entry for (loc, date) or computes and
// stores it. A store read failure degrades to computing; a store write
// failure still returns the computed entry.
func (c *Cache) GetPrayerTimes(loc *model.Location, date time.Time) (*model.PrayerTimes, error) {
	dateStr := date.Format("2006-01-02")

	entry, err := c.store.GetPrayerTimes(loc.Name, dateStr)
	if err != nil {
		log.Error().Err(err).Str("city", loc.Name).Str("date", dateStr).Msg("cache read failed, recomputing")
	}
	if entry != nil {
		return entry, nil
	}

	entry, err = c.calc.ForDate(loc.Name, loc.Latitude, loc.Longitude, date, loc.Timezone)
	if err != nil {
		return nil, err
	}

	if err := c.store.UpsertPrayerTimes(entry); err != nil {
		log.Error().Err(err).Str("city", loc.Name).Str("date", dateStr).Msg("failed to store computed prayer times")
	}
	return entry, nil
}

// Today returns the current civil date in the location's timezone, so a
// request arriving late evening UTC still answers for the right local day.
func Today(loc *model.Location, now time.Time) time.Time {
	tz, err := time.LoadLocation(loc.Timezone)
	if err != nil {
		return now
	}
	local := now.In(tz)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, tz)
}
