package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/strikelab/internal/api/handlers"
	"github.com/stitts-dev/strikelab/internal/api/middleware"
	"github.com/stitts-dev/strikelab/internal/coach"
	"github.com/stitts-dev/strikelab/internal/services"
	"github.com/stitts-dev/strikelab/pkg/config"
	"github.com/stitts-dev/strikelab/pkg/database"
	"github.com/stitts-dev/strikelab/pkg/metrics"
)

// Dependencies is everything the router wires into handlers.
type Dependencies struct {
	DB        *database.DB
	Cache     *services.CacheService
	Imports   *services.ImportService
	Sessions  *services.SessionService
	Coach     *services.CoachService
	Chain     *coach.Chain
	Refresher *services.StatsRefresher
	Config    *config.Config
	Logger    *logrus.Logger
}

// NewRouter builds the gin engine with middleware, health probes, metrics
// and the versioned API.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(deps.Config.CorsOrigins))

	health := handlers.NewHealthHandler(deps.DB, deps.Cache, deps.Chain, deps.Refresher)
	router.GET("/health", health.GetHealth)
	router.GET("/ready", health.GetReady)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})))

	SetupRoutes(router.Group("/api/v1"), deps)
	return router
}

// SetupRoutes configures all API routes on the given router group.
func SetupRoutes(group *gin.RouterGroup, deps Dependencies) {
	sessionHandler := handlers.NewSessionHandler(deps.Imports, deps.Sessions, deps.Config.MaxUploadBytes, deps.Logger)
	connectorHandler := handlers.NewConnectorHandler(deps.Imports, deps.Config.MaxUploadBytes)
	coachHandler := handlers.NewCoachHandler(deps.Coach)

	// Public
	group.GET("/connectors", connectorHandler.ListConnectors)

	auth := group.Group("")
	auth.Use(middleware.AuthRequired(deps.Config.JWTSecret))
	{
		auth.POST("/sessions/import/csv", sessionHandler.ImportCSV)
		auth.POST("/connectors/:id/import", connectorHandler.Import)

		auth.GET("/sessions", sessionHandler.ListSessions)
		auth.GET("/sessions/:id", sessionHandler.GetSession)
		auth.DELETE("/sessions/:id", sessionHandler.DeleteSession)
		auth.GET("/sessions/:id/shots", sessionHandler.GetShots)
		auth.PATCH("/sessions/:id/shots/:shotId", sessionHandler.UpdateShot)
		auth.GET("/sessions/:id/analysis", sessionHandler.GetAnalysis)

		auth.POST("/coach/report", coachHandler.GenerateReport)
		auth.GET("/coach/reports", coachHandler.ListReports)
		auth.GET("/coach/reports/:id", coachHandler.GetReport)
		auth.POST("/coach/chat", coachHandler.Chat)
		auth.GET("/coach/chat", coachHandler.History)

		auth.POST("/logs", coachHandler.SaveLog)
		auth.GET("/logs/:sessionId", coachHandler.GetLog)
	}
}
