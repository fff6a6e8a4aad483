package fancomms

import (
	"time"
)

// NewQueueEntry builds the provisional entry for a normalized request.
// A "now" entry starts as sent with sent_at = created_at; the caller downgrades it on failure.
func NewQueueEntry(input NormalizedInput, artworkURL *string, id string, now time.Time) QueueEntry {
	createdAt := FormatTimestamp(now)

	regions := make([]string, len(input.Regions))
	copy(regions, input.Regions)

	entry := QueueEntry{
		ID:            id,
		CreatedAt:     createdAt,
		SendMode:      input.SendMode,
		AudienceMode:  input.AudienceMode,
		Regions:       regions,
		ArtworkChoice: input.ArtworkChoice,
		ArtworkURL:    artworkURL,
		Title:         input.Title,
		Message:       input.Message,
	}

	if input.SendMode == SendModeScheduled && input.ScheduledFor != nil {
		scheduledFor := FormatTimestamp(*input.ScheduledFor)
		entry.Status = StatusScheduled
		entry.ScheduledFor = &scheduledFor
		return entry
	}

	entry.Status = StatusSent
	sentAt := createdAt
	entry.SentAt = &sentAt
	return entry
}
