package apierrors

import (
	"errors"

	"gigrilla/internal/fancomms"
	"gigrilla/internal/fancomms/processor"
	"gigrilla/internal/store"
)

// MapError converts domain/processor errors to APIErrors.
// An APIError is returned as-is; unknown errors become a sanitized 500.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var validationErr *fancomms.ValidationError
	if errors.As(err, &validationErr) {
		return BadRequest(CodeInvalidInput, validationErr.Message)
	}

	switch {
	case errors.Is(err, processor.ErrGigNotFound):
		return NotFound(CodeGigNotFound, "Gig not found")

	case errors.Is(err, processor.ErrUnauthorized):
		return Forbidden("You do not have access to this gig")

	case errors.Is(err, processor.ErrGigNotPublished):
		return BadRequest(CodeGigNotPublished, "Fan updates can only be sent for published gigs")

	case errors.Is(err, processor.ErrEntryNotFound):
		return NotFound(CodeUpdateNotFound, "Fan update not found")

	case errors.Is(err, processor.ErrEntryNotCancellable):
		return Conflict(CodeUpdateNotCancelable, "Only scheduled fan updates can be cancelled")

	case errors.Is(err, processor.ErrConcurrentUpdate):
		return Conflict(CodeConcurrentUpdate, "The gig was updated by another request. Please try again.")

	case errors.Is(err, processor.ErrRecipientsUnavailable), errors.Is(err, processor.ErrNotificationsUnavailable),
		errors.Is(err, store.ErrTableUnavailable):
		return ServiceUnavailable(CodeDependencyMissing, "Fan updates are not available in this environment", err)

	case errors.Is(err, store.ErrNotFound):
		return NotFound(CodeNotFound, "Resource not found")

	default:
		return InternalError(err)
	}
}
