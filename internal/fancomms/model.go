// Package fancomms holds the fan update queue model and the pure functions
// that build, validate and persist queue entries inside gig metadata.
package fancomms

import (
	"time"
)

// Status of a queue entry
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusSent      Status = "sent"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// SendMode fixes whether an entry is dispatched immediately or later
type SendMode string

const (
	SendModeNow       SendMode = "now"
	SendModeScheduled SendMode = "scheduled"
)

// AudienceMode selects which followers receive an update
type AudienceMode string

const (
	AudienceAllFollowers    AudienceMode = "all_followers"
	AudienceSpecificRegions AudienceMode = "specific_regions"
)

// ArtworkChoice is the preferred artwork source for an update
type ArtworkChoice string

const (
	ArtworkArtist ArtworkChoice = "artist"
	ArtworkVenue  ArtworkChoice = "venue"
)

const (
	MaxTitleLength   = 120
	MaxMessageLength = 500
	MaxRegions       = 20

	// TimestampLayout is the persisted form of every queue timestamp (UTC, millisecond precision).
	TimestampLayout = "2006-01-02T15:04:05.000Z"
)

// QueueEntry is one fan update attempt stored in a gig's metadata.
type QueueEntry struct {
	ID             string        `json:"id" validate:"required"`
	Status         Status        `json:"status" validate:"oneof=scheduled sent failed cancelled"`
	CreatedAt      string        `json:"created_at" validate:"required"`
	SendMode       SendMode      `json:"send_mode" validate:"oneof=now scheduled"`
	ScheduledFor   *string       `json:"scheduled_for"`
	SentAt         *string       `json:"sent_at"`
	AudienceMode   AudienceMode  `json:"audience_mode" validate:"oneof=all_followers specific_regions"`
	Regions        []string      `json:"regions" validate:"max=20"`
	ArtworkChoice  ArtworkChoice `json:"artwork_choice" validate:"oneof=artist venue"`
	ArtworkURL     *string       `json:"artwork_url"`
	Title          string        `json:"title" validate:"max=120"`
	Message        string        `json:"message" validate:"required,max=500"`
	RecipientCount *int          `json:"recipient_count" validate:"omitempty,min=0"`
	FailureReason  *string       `json:"failure_reason"`
}

// IsDue reports whether a scheduled entry should be dispatched at now.
// An unparsable scheduled_for counts as due.
func (e QueueEntry) IsDue(now time.Time) bool {
	if e.Status != StatusScheduled {
		return false
	}
	if e.ScheduledFor == nil {
		return true
	}
	at, err := ParseTimestamp(*e.ScheduledFor)
	if err != nil {
		return true
	}
	return !at.After(now)
}

// MarkPending returns a copy of a "now" entry parked as immediately due before its
// dispatch runs. A pending entry that never gets finalized is sent by the next sweep.
func (e QueueEntry) MarkPending() QueueEntry {
	e.Status = StatusScheduled
	e.ScheduledFor = nil
	e.SentAt = nil
	e.RecipientCount = nil
	e.FailureReason = nil
	return e
}

// MarkSent returns a copy of the entry finalized as sent.
func (e QueueEntry) MarkSent(at time.Time, recipients int) QueueEntry {
	sentAt := FormatTimestamp(at)
	e.Status = StatusSent
	e.SentAt = &sentAt
	e.RecipientCount = &recipients
	e.FailureReason = nil
	return e
}

// MarkFailed returns a copy of the entry finalized as failed.
func (e QueueEntry) MarkFailed(reason string) QueueEntry {
	zero := 0
	e.Status = StatusFailed
	e.SentAt = nil
	e.RecipientCount = &zero
	e.FailureReason = &reason
	return e
}

// MarkCancelled returns a copy of the entry moved to cancelled.
func (e QueueEntry) MarkCancelled() QueueEntry {
	e.Status = StatusCancelled
	return e
}

// Summary is the derived rollup of a queue. Total counts every entry, cancelled included.
type Summary struct {
	Sent       int     `json:"sent"`
	Scheduled  int     `json:"scheduled"`
	Failed     int     `json:"failed"`
	Total      int     `json:"total"`
	LastSentAt *string `json:"last_sent_at"`
}

// FormatTimestamp renders t in the persisted timestamp layout
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp accepts any RFC 3339 timestamp, including the persisted layout
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
