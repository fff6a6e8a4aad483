package api

import (
	"net/http"

	authHandler "gigrilla/internal/auth/handler"
	fanCommsHandler "gigrilla/internal/fancomms/handler"

	"github.com/gin-gonic/gin"
)

type API struct {
	router          *gin.RouterGroup
	authHandler     authHandler.Handler
	fanCommsHandler fanCommsHandler.Handler
	sendLimiter     gin.HandlerFunc
	metricsHandler  http.Handler
}

func New(
	router *gin.RouterGroup,
	authHandler authHandler.Handler,
	fanCommsHandler fanCommsHandler.Handler,
	sendLimiter gin.HandlerFunc,
	metricsHandler http.Handler,
) API {
	return API{
		router:          router,
		authHandler:     authHandler,
		fanCommsHandler: fanCommsHandler,
		sendLimiter:     sendLimiter,
		metricsHandler:  metricsHandler,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	if a.metricsHandler != nil {
		a.router.GET("/metrics", gin.WrapH(a.metricsHandler))
	}

	apiGroup := a.router.Group("/api")
	protectedGroup := apiGroup.Group("/protected", a.authHandler.HandleJWTMiddleware)
	{
		gigGroup := protectedGroup.Group("/gigs/:gig_id/fan-updates")
		sendChain := []gin.HandlerFunc{a.fanCommsHandler.HandleSendGigUpdate}
		if a.sendLimiter != nil {
			sendChain = append([]gin.HandlerFunc{a.sendLimiter}, sendChain...)
		}
		gigGroup.POST("", sendChain...)
		gigGroup.GET("", a.fanCommsHandler.HandleListGigUpdates)
		gigGroup.POST("/:entry_id/cancel", a.fanCommsHandler.HandleCancelScheduledUpdate)

		protectedGroup.POST("/fan-updates/dispatch-scheduled", a.fanCommsHandler.HandleDispatchScheduled)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
