package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/dodyw/sholat-live/internal/model"
)

func (s *pgStore) GetPrayerTimes(city, date string) (*model.PrayerTimes, error) {
	var pt model.PrayerTimes
	err := s.db.Get(&pt, `
		SELECT id, city, date, fajr, sunrise, dhuhr, asr, maghrib, isha, updated_at
		FROM prayer_times
		WHERE city = $1 AND date = $2
		`, city, date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error().Err(err).Str("city", city).Str("date", date).Msg("failed to get prayer times")
		return nil, err
	}
	return &pt, nil
}

// UpsertPrayerTimes overwrites any existing entry for (city, date). The
// computation is deterministic, so overwriting is always safe.
func (s *pgStore) UpsertPrayerTimes(entry *model.PrayerTimes) error {
	_, err := s.db.Exec(`
		INSERT INTO prayer_times (city, date, fajr, sunrise, dhuhr, asr, maghrib, isha, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (city, date) DO UPDATE
		SET fajr = EXCLUDED.fajr,
			sunrise = EXCLUDED.sunrise,
			dhuhr = EXCLUDED.dhuhr,
			asr = EXCLUDED.asr,
			maghrib = EXCLUDED.maghrib,
			isha = EXCLUDED.isha,
			updated_at = now()
		`, entry.City, entry.Date, entry.Fajr, entry.Sunrise, entry.Dhuhr, entry.Asr, entry.Maghrib, entry.Isha)
	if err != nil {
		log.Error().Err(err).Str("city", entry.City).Str("date", entry.Date).Msg("failed to upsert prayer times")
	}
	return err
}
