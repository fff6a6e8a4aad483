package store

import (
	"context"
	"fmt"
	"strings"
)

const notificationColumns = 9

const sqlInsertNotificationsPrefix = `
INSERT INTO notifications (user_id, notification_type, title, content, data, is_read, action_url, dedupe_key, created_at)
VALUES `

const sqlInsertNotificationsSuffix = `
ON CONFLICT (dedupe_key) DO NOTHING`

// InsertNotifications writes one batch of notifications in a single statement.
// Rows whose dedupe_key already exists are skipped, so replaying a batch is safe.
// Returns the number of rows actually inserted.
func (s *Store) InsertNotifications(ctx context.Context, rows []CreateNotificationParams) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	var query strings.Builder
	query.WriteString(sqlInsertNotificationsPrefix)
	args := make([]interface{}, 0, len(rows)*notificationColumns)
	for i, row := range rows {
		if i > 0 {
			query.WriteString(", ")
		}
		base := i * notificationColumns
		query.WriteString(fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9))

		data := []byte(row.Data)
		if len(data) == 0 {
			data = []byte("{}")
		}
		args = append(args,
			row.UserID,
			row.NotificationType,
			row.Title,
			row.Content,
			data,
			row.IsRead,
			row.ActionURL,
			row.DedupeKey,
			row.CreatedAt,
		)
	}
	query.WriteString(sqlInsertNotificationsSuffix)

	res, err := s.db.ExecContext(ctx, query.String(), args...)
	if err != nil {
		if isUndefinedTable(err) {
			return 0, fmt.Errorf("notifications: %w", ErrTableUnavailable)
		}
		return 0, fmt.Errorf("failed to insert notifications: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(inserted), nil
}
