package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const sqlGetFollowerIDs = `
SELECT follower_id
FROM user_follows
WHERE following_id = $1
`

// GetFollowerIDs returns the follower ids of a user, as stored (duplicates possible)
func (s *Store) GetFollowerIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var followerIDs []uuid.UUID
	err := s.db.SelectContext(ctx, &followerIDs, sqlGetFollowerIDs, userID)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, fmt.Errorf("user_follows: %w", ErrTableUnavailable)
		}
		return nil, fmt.Errorf("failed to get followers: %w", err)
	}
	return followerIDs, nil
}
