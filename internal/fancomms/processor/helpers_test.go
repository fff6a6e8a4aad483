package processor

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"gigrilla/internal/fancomms"
	"gigrilla/internal/metrics"
	"gigrilla/internal/observability"
	"gigrilla/internal/store"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestProcessor(t *testing.T) (*FanCommsProcessor, *MockFanCommsStore) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockStore := NewMockFanCommsStore(ctrl)

	p := New(mockStore, metrics.New(prometheus.NewRegistry()), Config{Location: time.UTC}, observability.NewLogger())
	p.now = func() time.Time { return fixedNow }
	next := 0
	p.newID = func() string {
		next++
		return fmt.Sprintf("entry-%d", next)
	}
	return &p, mockStore
}

// metadataWithQueue builds gig metadata holding entries next to an unrelated key
func metadataWithQueue(t *testing.T, entries ...fancomms.QueueEntry) store.Metadata {
	t.Helper()
	metadata, err := fancomms.WriteQueue(map[string]json.RawMessage{"foo": json.RawMessage(`"bar"`)}, entries)
	require.NoError(t, err)
	return metadata
}

func scheduledEntry(id string, at time.Time) fancomms.QueueEntry {
	scheduledFor := fancomms.FormatTimestamp(at)
	return fancomms.QueueEntry{
		ID:            id,
		Status:        fancomms.StatusScheduled,
		CreatedAt:     fancomms.FormatTimestamp(fixedNow.Add(-24 * time.Hour)),
		SendMode:      fancomms.SendModeScheduled,
		ScheduledFor:  &scheduledFor,
		AudienceMode:  fancomms.AudienceAllFollowers,
		Regions:       []string{},
		ArtworkChoice: fancomms.ArtworkArtist,
		Message:       "Doors at 8",
	}
}

func publishedGig(artistID uuid.UUID, metadata store.Metadata, version int) store.Gig {
	return store.Gig{
		ID:              uuid.New(),
		ArtistID:        artistID,
		Title:           "Live at the Roundhouse",
		Status:          store.GigStatusPublished,
		Metadata:        metadata,
		MetadataVersion: version,
	}
}

// savedGig is gig as the store returns it after a successful metadata write
func savedGig(gig store.Gig, metadata store.Metadata, version int) store.Gig {
	gig.Metadata = metadata
	gig.MetadataVersion = version
	return gig
}

func ptr[T any](v T) *T {
	return &v
}

func metadataFromPairs(pairs map[string]string) map[string]json.RawMessage {
	metadata := make(map[string]json.RawMessage, len(pairs))
	for key, value := range pairs {
		metadata[key] = json.RawMessage(value)
	}
	return metadata
}
