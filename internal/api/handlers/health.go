package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stitts-dev/strikelab/internal/coach"
	"github.com/stitts-dev/strikelab/internal/services"
	"github.com/stitts-dev/strikelab/pkg/database"
)

type HealthHandler struct {
	db        *database.DB
	cache     *services.CacheService
	chain     *coach.Chain
	refresher *services.StatsRefresher
}

func NewHealthHandler(db *database.DB, cache *services.CacheService, chain *coach.Chain, refresher *services.StatsRefresher) *HealthHandler {
	return &HealthHandler{
		db:        db,
		cache:     cache,
		chain:     chain,
		refresher: refresher,
	}
}

// GetHealth is the liveness probe; it answers 200 while the process is up.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"service":   "strikelab",
	})
}

// GetReady checks the database and, when configured, redis.
func (h *HealthHandler) GetReady(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{"database": "ok"}
	ready := true

	if err := h.db.HealthCheck(); err != nil {
		checks["database"] = err.Error()
		ready = false
	}

	switch {
	case !h.cache.Enabled():
		checks["cache"] = "disabled"
	case h.cache.Ping(ctx) != nil:
		// cache outages degrade to recomputation
		checks["cache"] = "unreachable"
	default:
		checks["cache"] = "ok"
	}

	providers := []string{}
	if h.chain != nil {
		providers = h.chain.Providers()
	}
	body := gin.H{
		"checks":         checks,
		"chat_providers": providers,
	}
	if h.refresher != nil {
		body["stats_refresher"] = h.refresher.Status()
	}

	if ready {
		body["status"] = "ready"
		c.JSON(http.StatusOK, body)
		return
	}
	body["status"] = "not_ready"
	c.JSON(http.StatusServiceUnavailable, body)
}
