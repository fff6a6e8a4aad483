package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const sqlGetFanLocations = `
SELECT user_id, location_details::text AS location_details
FROM fan_profiles
WHERE user_id = ANY($1::uuid[])
`

// GetFanLocations returns the stored location blob for each fan that has a profile
func (s *Store) GetFanLocations(ctx context.Context, userIDs []uuid.UUID) ([]FanLocation, error) {
	if len(userIDs) == 0 {
		return []FanLocation{}, nil
	}

	ids := make([]string, len(userIDs))
	for i, id := range userIDs {
		ids[i] = id.String()
	}

	// Sent as an array literal so the query does not depend on driver slice support
	idArray := "{" + strings.Join(ids, ",") + "}"

	var locations []FanLocation
	err := s.db.SelectContext(ctx, &locations, sqlGetFanLocations, idArray)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, fmt.Errorf("fan_profiles: %w", ErrTableUnavailable)
		}
		return nil, fmt.Errorf("failed to get fan locations: %w", err)
	}
	return locations, nil
}
