package model

import (
	"time"

	"github.com/lib/pq"
)

// Location is a resolvable city record. Name is the canonical key: the
// lowercased city name with spaces removed ("bandaaceh"). Aliases hold
// alternate spellings and abbreviations that resolve to the same record.
type Location struct {
	ID          int            `db:"id"           json:"id"`
	Name        string         `db:"name"         json:"name"`
	DisplayName string         `db:"display_name" json:"display_name"`
	Latitude    float64        `db:"latitude"     json:"latitude"`
	Longitude   float64        `db:"longitude"    json:"longitude"`
	Timezone    string         `db:"timezone"     json:"timezone"`
	Aliases     pq.StringArray `db:"aliases"      json:"aliases"`
	CreatedAt   time.Time      `db:"created_at"   json:"created_at"`
}
