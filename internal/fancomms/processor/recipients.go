package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gigrilla/internal/fancomms"
	"gigrilla/internal/store"

	"github.com/google/uuid"
)

// ResolveRecipients returns the distinct followers of artistID, excluding the artist,
// narrowed to followers whose location mentions one of regions when audience is specific_regions.
func (p *FanCommsProcessor) ResolveRecipients(ctx context.Context, artistID uuid.UUID, audience fancomms.AudienceMode, regions []string) ([]uuid.UUID, error) {
	followerIDs, err := p.store.GetFollowerIDs(ctx, artistID)
	if err != nil {
		if errors.Is(err, store.ErrTableUnavailable) {
			return nil, fmt.Errorf("follower list is %w", ErrRecipientsUnavailable)
		}
		return nil, fmt.Errorf("failed to load followers: %w", err)
	}

	seen := make(map[uuid.UUID]struct{}, len(followerIDs))
	followers := make([]uuid.UUID, 0, len(followerIDs))
	for _, id := range followerIDs {
		if id == artistID {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		followers = append(followers, id)
	}

	if audience != fancomms.AudienceSpecificRegions || len(followers) == 0 {
		return followers, nil
	}

	filters := make([]string, 0, len(regions))
	for _, region := range regions {
		if region = strings.ToLower(strings.TrimSpace(region)); region != "" {
			filters = append(filters, region)
		}
	}

	locations, err := p.store.GetFanLocations(ctx, followers)
	if err != nil {
		if errors.Is(err, store.ErrTableUnavailable) {
			return nil, fmt.Errorf("fan location data is %w", ErrRecipientsUnavailable)
		}
		return nil, fmt.Errorf("failed to load fan locations: %w", err)
	}

	locationByUser := make(map[uuid.UUID]string, len(locations))
	for _, location := range locations {
		locationByUser[location.UserID] = strings.ToLower(locationText(location.LocationDetails))
	}

	matched := make([]uuid.UUID, 0, len(followers))
	for _, id := range followers {
		text := locationByUser[id]
		if text == "" {
			continue
		}
		for _, filter := range filters {
			if strings.Contains(text, filter) {
				matched = append(matched, id)
				break
			}
		}
	}
	return matched, nil
}

// locationText unwraps a JSON string blob; objects and anything else are matched as raw text.
func locationText(details *string) string {
	if details == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal([]byte(*details), &s); err == nil {
		return s
	}
	return *details
}
