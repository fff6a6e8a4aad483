package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gigrilla/internal/fancomms"
	"gigrilla/internal/metrics"
	"gigrilla/internal/observability"
	"gigrilla/internal/store"

	"github.com/google/uuid"
)

// SweepReport summarizes one scheduled dispatch pass
type SweepReport struct {
	GigsScanned   int `json:"gigsScanned"`
	GigsUpdated   int `json:"gigsUpdated"`
	EntriesSent   int `json:"entriesSent"`
	EntriesFailed int `json:"entriesFailed"`
}

func (r *SweepReport) add(other SweepReport) {
	r.GigsScanned += other.GigsScanned
	r.GigsUpdated += other.GigsUpdated
	r.EntriesSent += other.EntriesSent
	r.EntriesFailed += other.EntriesFailed
}

// Sweep attempts every due scheduled entry across the artist's published gigs and
// returns the rewritten metadata of each gig that changed. It does not persist anything.
func (p *FanCommsProcessor) Sweep(ctx context.Context, artistID uuid.UUID, artistName string, gigs []GigRef) map[uuid.UUID]map[string]json.RawMessage {
	updated := make(map[uuid.UUID]map[string]json.RawMessage)

	for _, gig := range gigs {
		if gig.Status != store.GigStatusPublished {
			continue
		}

		queue := fancomms.ReadQueue(gig.Metadata)
		if len(queue) == 0 {
			continue
		}

		gigCtx := observability.WithFields(ctx, observability.Field{Key: "gig_id", Value: gig.ID.String()})
		now := p.now()
		changed := false
		for i, entry := range queue {
			if !entry.IsDue(now) {
				continue
			}
			queue[i], _, _ = p.attempt(gigCtx, artistID, artistName, gig, entry, metrics.TriggerScheduled)
			changed = true
		}
		if !changed {
			continue
		}

		metadata, err := fancomms.WriteQueue(gig.Metadata, queue)
		if err != nil {
			p.logger.Error(gigCtx, "failed to write swept fan comms queue", err)
			continue
		}
		updated[gig.ID] = metadata
	}

	return updated
}

// SweepArtist sweeps every gig of one artist and saves the gigs that changed.
// Save failures are joined into the returned error; the other gigs are still saved.
func (p *FanCommsProcessor) SweepArtist(ctx context.Context, artistID uuid.UUID) (SweepReport, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "artist_id", Value: artistID.String()})

	gigs, err := p.store.ListGigsByArtist(ctx, artistID)
	if err != nil {
		p.logger.Error(ctx, "failed to list gigs for sweep", err)
		return SweepReport{}, fmt.Errorf("failed to list gigs: %w", err)
	}

	refs := make([]GigRef, len(gigs))
	for i, gig := range gigs {
		refs[i] = gigRef(gig)
	}

	report := SweepReport{GigsScanned: len(gigs)}
	if len(gigs) == 0 {
		return report, nil
	}

	swept := p.Sweep(ctx, artistID, p.artistName(ctx, artistID), refs)
	if len(swept) == 0 {
		return report, nil
	}

	var errs []error
	for _, gig := range gigs {
		metadata, ok := swept[gig.ID]
		if !ok {
			continue
		}

		transitioned := transitionedEntries(fancomms.ReadQueue(gig.Metadata), fancomms.ReadQueue(metadata))
		for _, entry := range transitioned {
			if entry.Status == fancomms.StatusSent {
				report.EntriesSent++
			} else {
				report.EntriesFailed++
			}
		}

		_, err := p.writeQueue(ctx, gig, "sweep", func(queue []fancomms.QueueEntry) ([]fancomms.QueueEntry, error) {
			return mergeTransitioned(queue, transitioned), nil
		})
		if err != nil {
			p.logger.Error(observability.WithFields(ctx, observability.Field{Key: "gig_id", Value: gig.ID.String()}), "failed to save swept gig", err)
			errs = append(errs, fmt.Errorf("gig %s: %w", gig.ID, err))
			continue
		}
		report.GigsUpdated++
	}

	p.metrics.ObserveSweep(report.GigsUpdated)
	return report, errors.Join(errs...)
}

// DueArtists lists artists owning at least one published gig with a pending scheduled update
func (p *FanCommsProcessor) DueArtists(ctx context.Context) ([]uuid.UUID, error) {
	artistIDs, err := p.store.ListArtistsWithScheduledFanComms(ctx)
	if err != nil {
		p.logger.Error(ctx, "failed to list artists with scheduled fan updates", err)
		return nil, fmt.Errorf("failed to list due artists: %w", err)
	}
	return artistIDs, nil
}

// SweepDue sweeps every artist with pending scheduled updates, one after another
func (p *FanCommsProcessor) SweepDue(ctx context.Context) (SweepReport, error) {
	artistIDs, err := p.DueArtists(ctx)
	if err != nil {
		return SweepReport{}, err
	}

	var total SweepReport
	var errs []error
	for _, artistID := range artistIDs {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		report, err := p.SweepArtist(ctx, artistID)
		total.add(report)
		if err != nil {
			errs = append(errs, fmt.Errorf("artist %s: %w", artistID, err))
		}
	}
	return total, errors.Join(errs...)
}

// transitionedEntries returns the swept entries that were scheduled before the sweep and are not anymore
func transitionedEntries(before, after []fancomms.QueueEntry) map[string]fancomms.QueueEntry {
	wasScheduled := make(map[string]bool, len(before))
	for _, entry := range before {
		wasScheduled[entry.ID] = entry.Status == fancomms.StatusScheduled
	}

	transitioned := make(map[string]fancomms.QueueEntry)
	for _, entry := range after {
		if wasScheduled[entry.ID] && entry.Status != fancomms.StatusScheduled {
			transitioned[entry.ID] = entry
		}
	}
	return transitioned
}

// mergeTransitioned applies swept entries onto a queue, only where the entry is still scheduled
func mergeTransitioned(queue []fancomms.QueueEntry, transitioned map[string]fancomms.QueueEntry) []fancomms.QueueEntry {
	merged := make([]fancomms.QueueEntry, len(queue))
	for i, entry := range queue {
		if swept, ok := transitioned[entry.ID]; ok && entry.Status == fancomms.StatusScheduled {
			merged[i] = swept
			continue
		}
		merged[i] = entry
	}
	return merged
}
