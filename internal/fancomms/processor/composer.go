package processor

import (
	"context"
	"time"

	"gigrilla/internal/fancomms"
	"gigrilla/internal/metrics"
	"gigrilla/internal/observability"

	"github.com/google/uuid"
)

// ComposeRequest is one artist-initiated fan update against a gig
type ComposeRequest struct {
	Raw        fancomms.RawInput
	ArtistID   uuid.UUID
	ArtistName string
	Gig        GigRef
}

// ComposeResult carries the finalized entry. The counts are nil for scheduled entries.
type ComposeResult struct {
	Entry         fancomms.QueueEntry `json:"entry"`
	TargetedCount *int                `json:"targetedCount"`
	SentCount     *int                `json:"sentCount"`
}

// Compose validates the request and builds its queue entry, sending it right away
// in "now" mode. Only validation errors are returned; a failed send comes back as
// an entry with status failed.
func (p *FanCommsProcessor) Compose(ctx context.Context, req ComposeRequest) (ComposeResult, error) {
	entry, err := p.buildEntry(req)
	if err != nil {
		return ComposeResult{}, err
	}
	return p.deliver(ctx, req, entry), nil
}

// buildEntry normalizes the request into its provisional queue entry
func (p *FanCommsProcessor) buildEntry(req ComposeRequest) (fancomms.QueueEntry, error) {
	now := p.now()

	input, err := fancomms.Normalize(req.Raw, now, p.location)
	if err != nil {
		return fancomms.QueueEntry{}, err
	}

	artworkURL := fancomms.ResolveArtwork(fancomms.ExtractArtwork(req.Gig.Metadata), input.ArtworkChoice)
	return fancomms.NewQueueEntry(input, artworkURL, p.newID(), now), nil
}

// deliver sends a "now" entry and leaves scheduled entries untouched
func (p *FanCommsProcessor) deliver(ctx context.Context, req ComposeRequest, entry fancomms.QueueEntry) ComposeResult {
	if entry.SendMode == fancomms.SendModeScheduled {
		return ComposeResult{Entry: entry}
	}

	entry, targeted, sent := p.attempt(ctx, req.ArtistID, req.ArtistName, req.Gig, entry, metrics.TriggerNow)
	return ComposeResult{
		Entry:         entry,
		TargetedCount: &targeted,
		SentCount:     &sent,
	}
}

// attempt resolves recipients and dispatches one entry, returning the finalized
// entry with the targeted and sent counts.
func (p *FanCommsProcessor) attempt(ctx context.Context, artistID uuid.UUID, artistName string, gig GigRef, entry fancomms.QueueEntry, trigger string) (fancomms.QueueEntry, int, int) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "queue_entry_id", Value: entry.ID},
		observability.Field{Key: "trigger", Value: trigger},
	)
	start := time.Now()

	recipients, err := p.ResolveRecipients(ctx, artistID, entry.AudienceMode, entry.Regions)
	sent := 0
	if err == nil {
		sent, err = p.DispatchNotifications(ctx, recipients, artistName, gig, entry)
	}
	if err != nil {
		p.logger.Error(ctx, "failed to send fan update", err)
		p.metrics.ObserveDispatch(trigger, string(fancomms.StatusFailed), sent, time.Since(start))
		return entry.MarkFailed(err.Error()), 0, 0
	}

	p.metrics.ObserveDispatch(trigger, string(fancomms.StatusSent), sent, time.Since(start))
	p.logger.Info(observability.WithFields(ctx, observability.Field{Key: "recipient_count", Value: sent}), "fan update sent")
	return entry.MarkSent(p.now(), sent), len(recipients), sent
}
