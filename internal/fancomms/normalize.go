package fancomms

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// ValidationError is returned by Normalize for any rejected input
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// RegionInput accepts either a JSON array of strings or one comma-separated string
type RegionInput []string

func (r *RegionInput) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = nil
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err == nil {
		*r = strings.Split(joined, ",")
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return errors.New("regions must be a list of strings or a comma-separated string")
	}
	*r = list
	return nil
}

// RawInput is a fan update request as submitted by the client
type RawInput struct {
	Message       string      `json:"message"`
	Title         string      `json:"title"`
	SendMode      string      `json:"sendMode"`
	ScheduledDate string      `json:"scheduledDate"`
	ScheduledTime string      `json:"scheduledTime"`
	Timezone      string      `json:"timezone"`
	AudienceMode  string      `json:"audienceMode"`
	Regions       RegionInput `json:"regions"`
	ArtworkChoice string      `json:"artworkChoice"`
}

// NormalizedInput is a request that passed validation
type NormalizedInput struct {
	Title         string
	Message       string
	SendMode      SendMode
	ScheduledFor  *time.Time
	AudienceMode  AudienceMode
	Regions       []string
	ArtworkChoice ArtworkChoice
}

// Normalize validates and canonicalizes a raw request. Schedules are read in loc
// unless the request names its own timezone.
func Normalize(raw RawInput, now time.Time, loc *time.Location) (NormalizedInput, error) {
	input := NormalizedInput{
		SendMode:      SendModeNow,
		AudienceMode:  AudienceAllFollowers,
		ArtworkChoice: ArtworkArtist,
	}
	if raw.SendMode == string(SendModeScheduled) {
		input.SendMode = SendModeScheduled
	}
	if raw.AudienceMode == string(AudienceSpecificRegions) {
		input.AudienceMode = AudienceSpecificRegions
	}
	if raw.ArtworkChoice == string(ArtworkVenue) {
		input.ArtworkChoice = ArtworkVenue
	}

	input.Title = truncateRunes(strings.TrimSpace(raw.Title), MaxTitleLength)

	input.Message = strings.TrimSpace(raw.Message)
	if input.Message == "" {
		return NormalizedInput{}, invalid("message", "message is required")
	}
	if utf8.RuneCountInString(input.Message) > MaxMessageLength {
		return NormalizedInput{}, invalid("message", "message must be 500 characters or fewer")
	}

	regions := dedupeRegions(raw.Regions)
	if len(regions) > MaxRegions {
		return NormalizedInput{}, invalid("regions", "no more than 20 regions can be targeted")
	}
	if input.AudienceMode == AudienceSpecificRegions {
		if len(regions) == 0 {
			return NormalizedInput{}, invalid("regions", "at least one region is required when targeting specific regions")
		}
		input.Regions = regions
	} else {
		input.Regions = []string{}
	}

	if input.SendMode == SendModeScheduled {
		scheduledFor, err := parseSchedule(raw, loc)
		if err != nil {
			return NormalizedInput{}, err
		}
		if !scheduledFor.After(now) {
			return NormalizedInput{}, invalid("scheduledDate", "scheduled time must be in the future")
		}
		input.ScheduledFor = &scheduledFor
	}

	return input, nil
}

func parseSchedule(raw RawInput, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if tz := strings.TrimSpace(raw.Timezone); tz != "" {
		requested, err := time.LoadLocation(tz)
		if err != nil {
			return time.Time{}, invalid("timezone", "timezone must be a valid IANA time zone")
		}
		loc = requested
	}

	date := strings.TrimSpace(raw.ScheduledDate)
	if date == "" {
		return time.Time{}, invalid("scheduledDate", "scheduled date is required")
	}
	if !datePattern.MatchString(date) {
		return time.Time{}, invalid("scheduledDate", "scheduled date must use the YYYY-MM-DD format")
	}

	clock := strings.TrimSpace(raw.ScheduledTime)
	if clock == "" {
		clock = "00:00"
	}
	if !timePattern.MatchString(clock) {
		return time.Time{}, invalid("scheduledTime", "scheduled time must use the 24-hour HH:MM format")
	}

	at, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
	if err != nil {
		return time.Time{}, invalid("scheduledDate", "scheduled date is not a valid calendar date")
	}
	return at, nil
}

// dedupeRegions trims, drops blanks and removes case-insensitive duplicates keeping the first spelling.
func dedupeRegions(regions []string) []string {
	seen := make(map[string]struct{}, len(regions))
	result := make([]string, 0, len(regions))
	for _, region := range regions {
		region = strings.TrimSpace(region)
		if region == "" {
			continue
		}
		key := strings.ToLower(region)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, region)
	}
	return result
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
