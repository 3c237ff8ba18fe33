package api

import (
	"net/http"

	promotionHandler "promopilot/internal/promotion/handler"
	"promopilot/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

// callbackRateLimit caps publisher-fleet callbacks per source per minute
const callbackRateLimit = 600

type API struct {
	router           *gin.RouterGroup
	promotionHandler promotionHandler.Handler
	rateLimiter      *ratelimit.Service
}

func New(router *gin.RouterGroup, promotionHandler promotionHandler.Handler, rateLimiter *ratelimit.Service) API {
	return API{
		router:           router,
		promotionHandler: promotionHandler,
		rateLimiter:      rateLimiter,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	apiGroup := a.router.Group("/api")
	{
		linkGroup := apiGroup.Group("/projects/:projectID/links/:linkID")
		linkGroup.POST("/promotion", a.promotionHandler.HandleStartRun)
		linkGroup.DELETE("/promotion", a.promotionHandler.HandleCancelRun)
		linkGroup.GET("/promotion/status", a.promotionHandler.HandleGetStatus)

		runGroup := apiGroup.Group("/runs/:runID")
		runGroup.GET("/status", a.promotionHandler.HandleGetRunStatus)
		runGroup.GET("/report", a.promotionHandler.HandleGetReport)
	}
	// Publisher fleet callback, open but throttled per source
	apiGroup.POST("/publications/:publicationID/result",
		a.rateLimiter.Middleware("publication-callback", callbackRateLimit),
		a.promotionHandler.HandlePublicationResult,
	)
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
