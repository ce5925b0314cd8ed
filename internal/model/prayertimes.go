package model

import "time"

// PrayerTimes is one cached day of formatted prayer times for a city.
// All six values are 24-hour "HH:MM" strings in the city's timezone.
// A row is a pure function of (latitude, longitude, date, timezone), so
// cached entries never go stale.
type PrayerTimes struct {
	ID        int       `db:"id"      json:"-"`
	City      string    `db:"city"    json:"city"`
	Date      string    `db:"date"    json:"date"` // YYYY-MM-DD
	Fajr      string    `db:"fajr"    json:"fajr"`
	Sunrise   string    `db:"sunrise" json:"sunrise"`
	Dhuhr     string    `db:"dhuhr"   json:"dhuhr"`
	Asr       string    `db:"asr"     json:"asr"`
	Maghrib   string    `db:"maghrib" json:"maghrib"`
	Isha      string    `db:"isha"    json:"isha"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}
