package prayer

import (
	"fmt"
	"time"

	"github.com/mnadev/adhango/pkg/calc"
	"github.com/mnadev/adhango/pkg/data"
	"github.com/mnadev/adhango/pkg/util"

	"github.com/dodyw/sholat-live/internal/model"
)

// Times holds the six computed instants for one civil date, in UTC.
type Times struct {
	Fajr    time.Time
	Sunrise time.Time
	Dhuhr   time.Time
	Asr     time.Time
	Maghrib time.Time
	Isha    time.Time
}

// Calculator computes prayer times with the Moonsighting Committee method,
// matching the parameters the production bot has always used. The Shafi asr
// shadow is the method default.
type Calculator struct{}

// Compute returns the six UTC instants for the given coordinates and civil
// date. Only the Y/M/D components of date are used.
func (Calculator) Compute(lat, lon float64, date time.Time) (Times, error) {
	coords, err := util.NewCoordinates(lat, lon)
	if err != nil {
		return Times{}, fmt.Errorf("invalid coordinates (%f, %f): %w", lat, lon, err)
	}

	comps := data.NewDateComponents(date)
	params := calc.GetMethodParameters(calc.MOON_SIGHTING_COMMITTEE)

	pt, err := calc.NewPrayerTimes(coords, comps, params)
	if err != nil {
		return Times{}, fmt.Errorf("prayer time calculation failed: %w", err)
	}

	return Times{
		Fajr:    pt.Fajr,
		Sunrise: pt.Sunrise,
		Dhuhr:   pt.Dhuhr,
		Asr:     pt.Asr,
		Maghrib: pt.Maghrib,
		Isha:    pt.Isha,
	}, nil
}

// Format converts the UTC instants to the given IANA timezone and renders
// them as 24-hour "HH:MM" strings keyed by the civil date.
func Format(city string, t Times, date time.Time, timezone string) (*model.PrayerTimes, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", timezone, err)
	}

	hhmm := func(ts time.Time) string { return ts.In(loc).Format("15:04") }

	return &model.PrayerTimes{
		City:    city,
		Date:    date.Format("2006-01-02"),
		Fajr:    hhmm(t.Fajr),
		Sunrise: hhmm(t.Sunrise),
		Dhuhr:   hhmm(t.Dhuhr),
		Asr:     hhmm(t.Asr),
		Maghrib: hhmm(t.Maghrib),
		Isha:    hhmm(t.Isha),
	}, nil
}

// ForDate computes and formats a single day in one step.
func (c Calculator) ForDate(city string, lat, lon float64, date time.Time, timezone string) (*model.PrayerTimes, error) {
	t, err := c.Compute(lat, lon, date)
	if err != nil {
		return nil, err
	}
	return Format(city, t, date, timezone)
}

// ForMonth computes a formatted entry for every day of the given month.
func (c Calculator) ForMonth(lat, lon float64, year int, month time.Month, timezone string) ([]model.PrayerTimes, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", timezone, err)
	}

	// day 0 of the next month is the last day of this one
	days := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()

	out := make([]model.PrayerTimes, 0, days)
	for day := 1; day <= days; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, loc)
		entry, err := c.ForDate("", lat, lon, date, timezone)
		if err != nil {
			return nil, err
		}
		out = append(out, *entry)
	}
	return out, nil
}
