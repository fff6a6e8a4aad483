package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gigrilla/internal/metrics"
	"gigrilla/internal/observability"
	"gigrilla/internal/store"

	"github.com/google/uuid"
)

// FanCommsStore defines the database operations required by FanCommsProcessor
type FanCommsStore interface {
	GetGigByID(ctx context.Context, gigID uuid.UUID) (store.Gig, error)
	ListGigsByArtist(ctx context.Context, artistID uuid.UUID) ([]store.Gig, error)
	UpdateGigMetadata(ctx context.Context, gigID uuid.UUID, metadata store.Metadata, expectedVersion int) (store.Gig, error)
	ListArtistsWithScheduledFanComms(ctx context.Context) ([]uuid.UUID, error)
	GetArtistDisplayName(ctx context.Context, artistID uuid.UUID) (string, error)
	GetFollowerIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	GetFanLocations(ctx context.Context, userIDs []uuid.UUID) ([]store.FanLocation, error)
	InsertNotifications(ctx context.Context, rows []store.CreateNotificationParams) (int, error)
}

var (
	ErrGigNotFound              = errors.New("gig not found")
	ErrUnauthorized             = errors.New("unauthorized access to gig")
	ErrGigNotPublished          = errors.New("fan updates can only be sent for published gigs")
	ErrEntryNotFound            = errors.New("fan update not found")
	ErrEntryNotCancellable      = errors.New("only scheduled fan updates can be cancelled")
	ErrConcurrentUpdate         = errors.New("gig was modified concurrently, please retry")
	ErrRecipientsUnavailable    = errors.New("not available in this environment")
	ErrNotificationsUnavailable = errors.New("notifications are not available in this environment")
)

const (
	// MaxNotificationBatchSize is the most notification rows written per insert
	MaxNotificationBatchSize = 500

	maxWriteAttempts  = 3
	defaultArtistName = "An artist"
)

// Config tunes the processor
type Config struct {
	// Location is used to read schedules that do not name a timezone
	Location              *time.Location
	NotificationBatchSize int
}

type FanCommsProcessor struct {
	store     FanCommsStore
	metrics   *metrics.Metrics
	logger    *observability.Logger
	location  *time.Location
	batchSize int
	now       func() time.Time
	newID     func() string
}

func New(store FanCommsStore, m *metrics.Metrics, cfg Config, logger *observability.Logger) FanCommsProcessor {
	location := cfg.Location
	if location == nil {
		location = time.UTC
	}

	batchSize := cfg.NotificationBatchSize
	if batchSize <= 0 || batchSize > MaxNotificationBatchSize {
		batchSize = MaxNotificationBatchSize
	}

	return FanCommsProcessor{
		store:     store,
		metrics:   m,
		logger:    logger,
		location:  location,
		batchSize: batchSize,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// GigRef is the slice of a gig the dispatch pipeline reads
type GigRef struct {
	ID       uuid.UUID
	ArtistID uuid.UUID
	Title    string
	VenueID  *uuid.UUID
	Status   string
	Metadata map[string]json.RawMessage
}

func gigRef(gig store.Gig) GigRef {
	return GigRef{
		ID:       gig.ID,
		ArtistID: gig.ArtistID,
		Title:    gig.Title,
		VenueID:  gig.VenueID,
		Status:   gig.Status,
		Metadata: gig.Metadata,
	}
}

// artistName looks up the display name used in notification titles
func (p *FanCommsProcessor) artistName(ctx context.Context, artistID uuid.UUID) string {
	name, err := p.store.GetArtistDisplayName(ctx, artistID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			p.logger.WarnWithError(ctx, "failed to get artist display name", err)
		}
		return defaultArtistName
	}
	if name == "" {
		return defaultArtistName
	}
	return name
}
