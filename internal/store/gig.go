package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const sqlGetGigByID = `
SELECT id, artist_id, venue_id, title, status, metadata, metadata_version, updated_at
FROM gigs
WHERE id = $1
`

// GetGigByID retrieves a gig by ID
func (s *Store) GetGigByID(ctx context.Context, gigID uuid.UUID) (Gig, error) {
	var gig Gig
	err := s.db.GetContext(ctx, &gig, sqlGetGigByID, gigID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Gig{}, ErrNotFound
		}
		return Gig{}, fmt.Errorf("failed to get gig: %w", err)
	}
	return gig, nil
}

const sqlListGigsByArtist = `
SELECT id, artist_id, venue_id, title, status, metadata, metadata_version, updated_at
FROM gigs
WHERE artist_id = $1
ORDER BY updated_at DESC
`

// ListGigsByArtist retrieves every gig owned by an artist
func (s *Store) ListGigsByArtist(ctx context.Context, artistID uuid.UUID) ([]Gig, error) {
	var gigs []Gig
	err := s.db.SelectContext(ctx, &gigs, sqlListGigsByArtist, artistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list gigs: %w", err)
	}
	return gigs, nil
}

const sqlUpdateGigMetadata = `
UPDATE gigs
SET metadata = $2,
    metadata_version = metadata_version + 1,
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND metadata_version = $3
RETURNING id, artist_id, venue_id, title, status, metadata, metadata_version, updated_at
`

// UpdateGigMetadata replaces a gig's metadata if nobody else wrote it since
// expectedVersion was read. Returns ErrVersionConflict otherwise.
func (s *Store) UpdateGigMetadata(ctx context.Context, gigID uuid.UUID, metadata Metadata, expectedVersion int) (Gig, error) {
	var gig Gig
	err := s.db.GetContext(ctx, &gig, sqlUpdateGigMetadata, gigID, metadata, expectedVersion)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Gig{}, ErrVersionConflict
		}
		return Gig{}, fmt.Errorf("failed to update gig metadata: %w", err)
	}
	return gig, nil
}

const sqlListArtistsWithScheduledFanComms = `
SELECT DISTINCT artist_id
FROM gigs
WHERE status = 'published'
  AND COALESCE((metadata->'fan_comms'->'summary'->>'scheduled')::int, 0) > 0
`

// ListArtistsWithScheduledFanComms returns artists owning at least one published
// gig with a scheduled fan update still pending
func (s *Store) ListArtistsWithScheduledFanComms(ctx context.Context) ([]uuid.UUID, error) {
	var artistIDs []uuid.UUID
	err := s.db.SelectContext(ctx, &artistIDs, sqlListArtistsWithScheduledFanComms)
	if err != nil {
		return nil, fmt.Errorf("failed to list artists with scheduled fan updates: %w", err)
	}
	return artistIDs, nil
}
