package store

// Gig status ENUMs
const (
	GigStatusDraft     = "draft"
	GigStatusPublished = "published"
	GigStatusCancelled = "cancelled"
	GigStatusCompleted = "completed"
)

// Notification type ENUMs
const (
	NotificationTypeGigFanUpdate = "gig_fan_update"
)
