// exposes a Store interface that is passed to resolver, cache and API code
package db

import (
	"github.com/jmoiron/sqlx"

	"github.com/dodyw/sholat-live/internal/model"
)

type Store interface {
	// location functions; Get returns (nil, nil) when no record matches
	GetLocation(nameOrAlias string) (*model.Location, error)
	CreateLocation(loc *model.Location) (*model.Location, error)
	ListLocations() ([]model.Location, error)

	// prayer time cache functions; Get returns (nil, nil) on cache miss
	GetPrayerTimes(city, date string) (*model.PrayerTimes, error)
	UpsertPrayerTimes(entry *model.PrayerTimes) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(conn *sqlx.DB) Store {
	return &pgStore{db: conn}
}
