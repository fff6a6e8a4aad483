package handler

//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=mocks_test.go -package=handler

import (
	"context"
	"net/http"

	"gigrilla/internal/apierrors"
	"gigrilla/internal/fancomms"
	"gigrilla/internal/fancomms/processor"
	"gigrilla/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FanCommsProcessor is the slice of the fan comms processor the HTTP layer drives.
type FanCommsProcessor interface {
	SendGigUpdate(ctx context.Context, artistID, gigID uuid.UUID, raw fancomms.RawInput) (processor.ComposeResult, error)
	ListGigUpdates(ctx context.Context, artistID, gigID uuid.UUID) (processor.GigUpdates, error)
	CancelScheduledUpdate(ctx context.Context, artistID, gigID uuid.UUID, entryID string) (fancomms.QueueEntry, error)
	SweepArtist(ctx context.Context, artistID uuid.UUID) (processor.SweepReport, error)
}

type Handler struct {
	processor FanCommsProcessor
	logger    *observability.Logger
}

func New(processor FanCommsProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// gigURI binds the :gig_id path parameter
type gigURI struct {
	GigID string `uri:"gig_id" binding:"required,uuid"`
}

// entryURI binds the path parameters of a single queue entry
type entryURI struct {
	GigID   string `uri:"gig_id" binding:"required,uuid"`
	EntryID string `uri:"entry_id" binding:"required,max=64"`
}

// CancelResponse wraps the cancelled entry
type CancelResponse struct {
	Entry fancomms.QueueEntry `json:"entry"`
}

// HandleSendGigUpdate handles POST /api/protected/gigs/:gig_id/fan-updates
func (h *Handler) HandleSendGigUpdate(c *gin.Context) {
	ctx := c.Request.Context()

	artistID, ok := h.userID(c)
	if !ok {
		return
	}
	gigID, ok := h.gigID(c)
	if !ok {
		return
	}

	var req fancomms.RawInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "artist_id", Value: artistID.String()},
		observability.Field{Key: "gig_id", Value: gigID.String()},
	)

	result, err := h.processor.SendGigUpdate(ctx, artistID, gigID, req)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// HandleListGigUpdates handles GET /api/protected/gigs/:gig_id/fan-updates
func (h *Handler) HandleListGigUpdates(c *gin.Context) {
	ctx := c.Request.Context()

	artistID, ok := h.userID(c)
	if !ok {
		return
	}
	gigID, ok := h.gigID(c)
	if !ok {
		return
	}

	updates, err := h.processor.ListGigUpdates(ctx, artistID, gigID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, updates)
}

// HandleCancelScheduledUpdate handles POST /api/protected/gigs/:gig_id/fan-updates/:entry_id/cancel
func (h *Handler) HandleCancelScheduledUpdate(c *gin.Context) {
	ctx := c.Request.Context()

	artistID, ok := h.userID(c)
	if !ok {
		return
	}
	var uri entryURI
	if err := c.ShouldBindUri(&uri); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}
	gigID, entryID := uuid.MustParse(uri.GigID), uri.EntryID

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "gig_id", Value: gigID.String()},
		observability.Field{Key: "entry_id", Value: entryID},
	)

	entry, err := h.processor.CancelScheduledUpdate(ctx, artistID, gigID, entryID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CancelResponse{Entry: entry})
}

// HandleDispatchScheduled handles POST /api/protected/fan-updates/dispatch-scheduled.
// It sweeps only the caller's own gigs.
func (h *Handler) HandleDispatchScheduled(c *gin.Context) {
	ctx := c.Request.Context()

	artistID, ok := h.userID(c)
	if !ok {
		return
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "artist_id", Value: artistID.String()})

	report, err := h.processor.SweepArtist(ctx, artistID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *Handler) userID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := c.Get("User-ID")
	if !exists {
		apierrors.RespondWithError(c, apierrors.Unauthorized("user ID not found in context"))
		return uuid.Nil, false
	}

	raw, _ := userIDStr.(string)
	userID, err := uuid.Parse(raw)
	if err != nil {
		h.logger.Error(c.Request.Context(), "failed to parse user ID", err)
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "invalid user id"))
		return uuid.Nil, false
	}
	return userID, true
}

func (h *Handler) gigID(c *gin.Context) (uuid.UUID, bool) {
	var uri gigURI
	if err := c.ShouldBindUri(&uri); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return uuid.Nil, false
	}
	return uuid.MustParse(uri.GigID), true
}
