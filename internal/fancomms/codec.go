package fancomms

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// MetadataKey is the gig metadata key owned by this package
const MetadataKey = "fan_comms"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(queueEntryStructLevel, QueueEntry{})
	return v
}

// queueEntryStructLevel rejects entries whose status and timestamps disagree
func queueEntryStructLevel(sl validator.StructLevel) {
	entry := sl.Current().Interface().(QueueEntry)
	switch entry.Status {
	case StatusScheduled:
		if entry.SentAt != nil {
			sl.ReportError(entry.SentAt, "SentAt", "sent_at", "unsent", "")
		}
	case StatusSent:
		if entry.SentAt == nil {
			sl.ReportError(entry.SentAt, "SentAt", "sent_at", "required", "")
		}
	}
	if entry.SendMode == SendModeScheduled && entry.ScheduledFor == nil {
		sl.ReportError(entry.ScheduledFor, "ScheduledFor", "scheduled_for", "required", "")
	}
}

type document struct {
	Queue      []QueueEntry `json:"queue"`
	Summary    Summary      `json:"summary"`
	LastSentAt *string      `json:"last_sent_at"`
}

// ReadQueue returns the valid entries of metadata.fan_comms.queue in stored order.
// A missing or malformed queue reads as empty; invalid elements are dropped.
func ReadQueue(metadata map[string]json.RawMessage) []QueueEntry {
	entries := []QueueEntry{}

	raw, ok := metadata[MetadataKey]
	if !ok {
		return entries
	}

	var doc struct {
		Queue []json.RawMessage `json:"queue"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return entries
	}

	for _, element := range doc.Queue {
		var entry QueueEntry
		if err := json.Unmarshal(element, &entry); err != nil {
			continue
		}
		if entry.Regions == nil {
			entry.Regions = []string{}
		}
		if err := validate.Struct(entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// WriteQueue returns a copy of metadata with fan_comms replaced by the given queue and
// its recomputed summary. Every other key is carried over untouched.
func WriteQueue(metadata map[string]json.RawMessage, entries []QueueEntry) (map[string]json.RawMessage, error) {
	if entries == nil {
		entries = []QueueEntry{}
	}
	summary := Summarize(entries)

	encoded, err := json.Marshal(document{
		Queue:      entries,
		Summary:    summary,
		LastSentAt: summary.LastSentAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode fan comms queue: %w", err)
	}

	result := make(map[string]json.RawMessage, len(metadata)+1)
	for key, value := range metadata {
		result[key] = value
	}
	result[MetadataKey] = encoded
	return result, nil
}

// AppendEntry reads the queue, appends entry and writes it back
func AppendEntry(metadata map[string]json.RawMessage, entry QueueEntry) (map[string]json.RawMessage, error) {
	return WriteQueue(metadata, append(ReadQueue(metadata), entry))
}

// ReadSummary recomputes the summary of the stored queue
func ReadSummary(metadata map[string]json.RawMessage) Summary {
	return Summarize(ReadQueue(metadata))
}

// Summarize counts entries by status and finds the latest sent_at among sent entries
func Summarize(entries []QueueEntry) Summary {
	var summary Summary
	var latest string
	var latestAt int64
	for _, entry := range entries {
		summary.Total++
		switch entry.Status {
		case StatusSent:
			summary.Sent++
			if entry.SentAt == nil {
				continue
			}
			at, err := ParseTimestamp(*entry.SentAt)
			if err != nil {
				continue
			}
			if latest == "" || at.UnixNano() > latestAt {
				latest = *entry.SentAt
				latestAt = at.UnixNano()
			}
		case StatusScheduled:
			summary.Scheduled++
		case StatusFailed:
			summary.Failed++
		}
	}
	if latest != "" {
		summary.LastSentAt = &latest
	}
	return summary
}
