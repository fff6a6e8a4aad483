package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const sqlGetArtistDisplayName = `
SELECT stage_name
FROM artist_profiles
WHERE user_id = $1
`

// GetArtistDisplayName returns the public stage name of an artist
func (s *Store) GetArtistDisplayName(ctx context.Context, artistID uuid.UUID) (string, error) {
	var name sql.NullString
	err := s.db.GetContext(ctx, &name, sqlGetArtistDisplayName, artistID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get artist display name: %w", err)
	}
	return name.String, nil
}
