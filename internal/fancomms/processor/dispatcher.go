package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gigrilla/internal/fancomms"
	"gigrilla/internal/observability"
	"gigrilla/internal/store"

	"github.com/google/uuid"
)

const notificationSource = "gig_fan_comms"

type notificationPayload struct {
	Source        string                 `json:"source"`
	GigID         string                 `json:"gig_id"`
	GigTitle      string                 `json:"gig_title"`
	VenueID       *string                `json:"venue_id"`
	ArtistID      string                 `json:"artist_id"`
	QueueEntryID  string                 `json:"queue_entry_id"`
	SendMode      fancomms.SendMode      `json:"send_mode"`
	ScheduledFor  *string                `json:"scheduled_for"`
	AudienceMode  fancomms.AudienceMode  `json:"audience_mode"`
	Regions       []string               `json:"regions"`
	ArtworkChoice fancomms.ArtworkChoice `json:"artwork_choice"`
	ArtworkURL    *string                `json:"artwork_url"`
}

// DispatchNotifications writes one notification per recipient in batches and
// returns how many recipients hold the notification. A failed batch aborts the rest;
// batches already written stay, and replaying them is a no-op thanks to the dedupe key.
// Rows skipped as already delivered still count.
func (p *FanCommsProcessor) DispatchNotifications(ctx context.Context, recipients []uuid.UUID, artistName string, gig GigRef, entry fancomms.QueueEntry) (int, error) {
	if len(recipients) == 0 {
		return 0, nil
	}

	title := strings.TrimSpace(entry.Title)
	if title == "" {
		title = fmt.Sprintf("%s shared a gig update", artistName)
	}

	var venueID *string
	if gig.VenueID != nil {
		id := gig.VenueID.String()
		venueID = &id
	}

	data, err := json.Marshal(notificationPayload{
		Source:        notificationSource,
		GigID:         gig.ID.String(),
		GigTitle:      gig.Title,
		VenueID:       venueID,
		ArtistID:      gig.ArtistID.String(),
		QueueEntryID:  entry.ID,
		SendMode:      entry.SendMode,
		ScheduledFor:  entry.ScheduledFor,
		AudienceMode:  entry.AudienceMode,
		Regions:       entry.Regions,
		ArtworkChoice: entry.ArtworkChoice,
		ArtworkURL:    entry.ArtworkURL,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to encode notification payload: %w", err)
	}

	actionURL := "/gigfinder?gig=" + gig.ID.String()
	createdAt := p.now().UTC()

	delivered := 0
	for start := 0; start < len(recipients); start += p.batchSize {
		end := min(start+p.batchSize, len(recipients))

		rows := make([]store.CreateNotificationParams, 0, end-start)
		for _, userID := range recipients[start:end] {
			rows = append(rows, store.CreateNotificationParams{
				UserID:           userID,
				NotificationType: store.NotificationTypeGigFanUpdate,
				Title:            title,
				Content:          entry.Message,
				Data:             data,
				IsRead:           false,
				ActionURL:        actionURL,
				DedupeKey:        dedupeKey(entry.ID, userID),
				CreatedAt:        createdAt,
			})
		}

		inserted, err := p.store.InsertNotifications(ctx, rows)
		if err != nil {
			if errors.Is(err, store.ErrTableUnavailable) {
				return delivered, ErrNotificationsUnavailable
			}
			return delivered, fmt.Errorf("failed to insert notifications: %w", err)
		}
		if skipped := len(rows) - inserted; skipped > 0 {
			p.logger.Info(observability.WithFields(ctx,
				observability.Field{Key: "queue_entry_id", Value: entry.ID},
				observability.Field{Key: "skipped", Value: skipped},
			), "notifications already delivered, skipping duplicates")
		}
		delivered += len(rows)
	}

	return delivered, nil
}

func dedupeKey(entryID string, userID uuid.UUID) string {
	return "fan_comms:" + entryID + ":" + userID.String()
}
