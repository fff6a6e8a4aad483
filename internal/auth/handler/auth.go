package handler

import (
	"strings"

	"gigrilla/internal/apierrors"
	"gigrilla/internal/auth/processor"
	"gigrilla/internal/observability"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authProcessor processor.AuthProcessor
	logger        *observability.Logger
}

func New(authProcessor processor.AuthProcessor, logger *observability.Logger) Handler {
	return Handler{authProcessor: authProcessor, logger: logger}
}

// HandleJWTMiddleware authenticates the bearer token and stores the caller's
// user id under "User-ID".
func (h *Handler) HandleJWTMiddleware(c *gin.Context) {
	ctx := c.Request.Context()
	tokenHeader := c.GetHeader("Authorization")

	if tokenHeader == "" || !strings.HasPrefix(tokenHeader, "Bearer ") {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Authorization token is missing or invalid"))
		return
	}

	tokenString := strings.TrimPrefix(tokenHeader, "Bearer ")

	userID, err := h.authProcessor.UserIDFromToken(ctx, tokenString)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.Unauthorized(err.Error()))
		return
	}

	c.Set("User-ID", userID.String())
	c.Request = c.Request.WithContext(observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: userID.String()},
	))
	c.Next()
}
