package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/dodyw/sholat-live/internal/model"
)

func (s *pgStore) GetLocation(nameOrAlias string) (*model.Location, error) {
	var loc model.Location
	err := s.db.Get(&loc, `
		SELECT id, name, display_name, latitude, longitude, timezone, aliases, created_at
		FROM locations
		WHERE name = $1 OR $1 = ANY(aliases)
		`, nameOrAlias)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error().Err(err).Str("name", nameOrAlias).Msg("failed to get location")
		return nil, err
	}
	return &loc, nil
}

// CreateLocation inserts a new location record. Records are effectively
// immutable once created, so a conflicting concurrent insert just yields the
// winner's row (last-writer-wins on the race, first-writer on the data).
func (s *pgStore) CreateLocation(loc *model.Location) (*model.Location, error) {
	// re-check right before insert so a race does not duplicate records
	if existing, err := s.GetLocation(loc.Name); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	_, err := s.db.Exec(`
		INSERT INTO locations (name, display_name, latitude, longitude, timezone, aliases, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (name) DO NOTHING
		`, loc.Name, loc.DisplayName, loc.Latitude, loc.Longitude, loc.Timezone, loc.Aliases)
	if err != nil {
		log.Error().Err(err).Str("name", loc.Name).Msg("failed to create location")
		return nil, err
	}

	return s.GetLocation(loc.Name)
}

func (s *pgStore) ListLocations() ([]model.Location, error) {
	var locs []model.Location
	err := s.db.Select(&locs, `
		SELECT id, name, display_name, latitude, longitude, timezone, aliases, created_at
		FROM locations
		ORDER BY name
		`)
	if err != nil {
		log.Error().Err(err).Msg("failed to list locations")
		return nil, err
	}
	return locs, nil
}
