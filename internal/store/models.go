package store

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Metadata is a JSONB object whose values are kept as raw JSON so that keys
// this service does not own survive a read-modify-write untouched.
type Metadata map[string]json.RawMessage

// Value implements the driver.Valuer interface for Metadata
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface for Metadata
func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = make(Metadata)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("incompatible type for Metadata")
	}

	// Handle empty or null JSON
	if len(bytes) == 0 || string(bytes) == "null" {
		*m = make(Metadata)
		return nil
	}

	result := make(Metadata)
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*m = result
	return nil
}

// Gig is a performance listing owned by an artist
type Gig struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	ArtistID        uuid.UUID  `db:"artist_id" json:"artist_id"`
	VenueID         *uuid.UUID `db:"venue_id" json:"venue_id,omitempty"`
	Title           string     `db:"title" json:"title"`
	Status          string     `db:"status" json:"status"`
	Metadata        Metadata   `db:"metadata" json:"metadata"`
	MetadataVersion int        `db:"metadata_version" json:"metadata_version"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// FanLocation is the free-text location blob stored on a fan profile
type FanLocation struct {
	UserID          uuid.UUID `db:"user_id"`
	LocationDetails *string   `db:"location_details"`
}

// CreateNotificationParams represents one in-app notification row
type CreateNotificationParams struct {
	UserID           uuid.UUID
	NotificationType string
	Title            string
	Content          string
	Data             json.RawMessage
	IsRead           bool
	ActionURL        string
	DedupeKey        string
	CreatedAt        time.Time
}
