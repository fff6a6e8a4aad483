package processor

import (
	"context"
	"errors"
	"fmt"

	"gigrilla/internal/fancomms"
	"gigrilla/internal/observability"
	"gigrilla/internal/store"

	"github.com/google/uuid"
)

// GigUpdates is the fan update history of one gig
type GigUpdates struct {
	Queue   []fancomms.QueueEntry `json:"queue"`
	Summary fancomms.Summary      `json:"summary"`
}

// SendGigUpdate composes a fan update for a published gig owned by artistID and
// appends it to the gig's queue.
//
// A "now" update is saved as pending before any fan is notified and finalized after
// the dispatch. When the final write fails the pending entry stays due, and the next
// sweep settles it under the same entry id, so its notifications dedupe.
func (p *FanCommsProcessor) SendGigUpdate(ctx context.Context, artistID, gigID uuid.UUID, raw fancomms.RawInput) (ComposeResult, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "artist_id", Value: artistID.String()},
		observability.Field{Key: "gig_id", Value: gigID.String()},
	)

	gig, err := p.loadOwnedGig(ctx, artistID, gigID)
	if err != nil {
		return ComposeResult{}, err
	}

	if gig.Status != store.GigStatusPublished {
		return ComposeResult{}, ErrGigNotPublished
	}

	req := ComposeRequest{
		Raw:        raw,
		ArtistID:   artistID,
		ArtistName: p.artistName(ctx, artistID),
		Gig:        gigRef(gig),
	}
	entry, err := p.buildEntry(req)
	if err != nil {
		return ComposeResult{}, err
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "queue_entry_id", Value: entry.ID})

	queued := entry
	if entry.SendMode == fancomms.SendModeNow {
		queued = entry.MarkPending()
	}
	saved, err := p.writeQueue(ctx, gig, "send", func(queue []fancomms.QueueEntry) ([]fancomms.QueueEntry, error) {
		return append(queue, queued), nil
	})
	if err != nil {
		p.logger.Error(ctx, "failed to save fan update", err)
		return ComposeResult{}, err
	}

	result := p.deliver(ctx, req, entry)
	if entry.SendMode == fancomms.SendModeNow {
		finalized := map[string]fancomms.QueueEntry{result.Entry.ID: result.Entry}
		_, err = p.writeQueue(ctx, saved, "finalize", func(queue []fancomms.QueueEntry) ([]fancomms.QueueEntry, error) {
			return mergeTransitioned(queue, finalized), nil
		})
		if err != nil {
			p.logger.Error(ctx, "failed to finalize fan update, leaving it pending for the sweeper", err)
			return result, nil
		}
	}

	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "status", Value: string(result.Entry.Status)},
	), "fan update saved")

	return result, nil
}

// ListGigUpdates returns the queue of a gig owned by artistID, newest first
func (p *FanCommsProcessor) ListGigUpdates(ctx context.Context, artistID, gigID uuid.UUID) (GigUpdates, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "artist_id", Value: artistID.String()},
		observability.Field{Key: "gig_id", Value: gigID.String()},
	)

	gig, err := p.loadOwnedGig(ctx, artistID, gigID)
	if err != nil {
		return GigUpdates{}, err
	}

	queue := fancomms.ReadQueue(gig.Metadata)
	newestFirst := make([]fancomms.QueueEntry, len(queue))
	for i, entry := range queue {
		newestFirst[len(queue)-1-i] = entry
	}

	return GigUpdates{
		Queue:   newestFirst,
		Summary: fancomms.Summarize(queue),
	}, nil
}

// CancelScheduledUpdate moves a scheduled entry to cancelled
func (p *FanCommsProcessor) CancelScheduledUpdate(ctx context.Context, artistID, gigID uuid.UUID, entryID string) (fancomms.QueueEntry, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "artist_id", Value: artistID.String()},
		observability.Field{Key: "gig_id", Value: gigID.String()},
		observability.Field{Key: "queue_entry_id", Value: entryID},
	)

	gig, err := p.loadOwnedGig(ctx, artistID, gigID)
	if err != nil {
		return fancomms.QueueEntry{}, err
	}

	var cancelled fancomms.QueueEntry
	_, err = p.writeQueue(ctx, gig, "cancel", func(queue []fancomms.QueueEntry) ([]fancomms.QueueEntry, error) {
		for i, entry := range queue {
			if entry.ID != entryID {
				continue
			}
			if entry.Status != fancomms.StatusScheduled || entry.SendMode != fancomms.SendModeScheduled {
				return nil, ErrEntryNotCancellable
			}
			cancelled = entry.MarkCancelled()
			queue[i] = cancelled
			return queue, nil
		}
		return nil, ErrEntryNotFound
	})
	if err != nil {
		return fancomms.QueueEntry{}, err
	}

	p.logger.Info(ctx, "scheduled fan update cancelled")
	return cancelled, nil
}

func (p *FanCommsProcessor) loadOwnedGig(ctx context.Context, artistID, gigID uuid.UUID) (store.Gig, error) {
	gig, err := p.store.GetGigByID(ctx, gigID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Gig{}, ErrGigNotFound
		}
		p.logger.Error(ctx, "failed to get gig", err)
		return store.Gig{}, err
	}

	if gig.ArtistID != artistID {
		return store.Gig{}, ErrUnauthorized
	}
	return gig, nil
}

// writeQueue applies mutate to the gig's queue and saves it with a metadata_version
// compare-and-swap. On conflict the gig is re-read and mutate runs again on the fresh queue.
func (p *FanCommsProcessor) writeQueue(ctx context.Context, gig store.Gig, operation string, mutate func([]fancomms.QueueEntry) ([]fancomms.QueueEntry, error)) (store.Gig, error) {
	for attempt := 1; ; attempt++ {
		queue, err := mutate(fancomms.ReadQueue(gig.Metadata))
		if err != nil {
			return store.Gig{}, err
		}

		metadata, err := fancomms.WriteQueue(gig.Metadata, queue)
		if err != nil {
			return store.Gig{}, err
		}

		updated, err := p.store.UpdateGigMetadata(ctx, gig.ID, metadata, gig.MetadataVersion)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, store.ErrVersionConflict) {
			return store.Gig{}, fmt.Errorf("failed to save gig metadata: %w", err)
		}

		p.metrics.IncWriteConflict(operation)
		if attempt == maxWriteAttempts {
			return store.Gig{}, ErrConcurrentUpdate
		}

		p.logger.Warn(observability.WithFields(ctx, observability.Field{Key: "attempt", Value: attempt}), "gig metadata changed concurrently, retrying")
		gig, err = p.store.GetGigByID(ctx, gig.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return store.Gig{}, ErrGigNotFound
			}
			return store.Gig{}, fmt.Errorf("failed to reload gig: %w", err)
		}
	}
}
