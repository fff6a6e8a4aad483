package fancomms

import (
	"encoding/json"
	"strings"
)

// ArtworkSources are the artwork URLs a gig's metadata offers
type ArtworkSources struct {
	ArtistURL *string
	VenueURL  *string
}

// ExtractArtwork reads metadata.artwork_url and metadata.venue_override.{artwork_url,image_url}.
// Blank or non-string values count as absent.
func ExtractArtwork(metadata map[string]json.RawMessage) ArtworkSources {
	sources := ArtworkSources{
		ArtistURL: stringValue(metadata["artwork_url"]),
	}

	var venueOverride map[string]json.RawMessage
	if raw, ok := metadata["venue_override"]; ok && json.Unmarshal(raw, &venueOverride) == nil {
		sources.VenueURL = stringValue(venueOverride["artwork_url"])
		if sources.VenueURL == nil {
			sources.VenueURL = stringValue(venueOverride["image_url"])
		}
	}

	return sources
}

// ResolveArtwork returns the preferred URL, else the other one, else nil
func ResolveArtwork(sources ArtworkSources, choice ArtworkChoice) *string {
	if choice == ArtworkVenue {
		if sources.VenueURL != nil {
			return sources.VenueURL
		}
		return sources.ArtistURL
	}
	if sources.ArtistURL != nil {
		return sources.ArtistURL
	}
	return sources.VenueURL
}

func stringValue(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
