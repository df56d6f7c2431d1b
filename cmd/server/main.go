package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/strikelab/internal/api"
	"github.com/stitts-dev/strikelab/internal/coach"
	"github.com/stitts-dev/strikelab/internal/services"
	"github.com/stitts-dev/strikelab/pkg/config"
	"github.com/stitts-dev/strikelab/pkg/database"
	"github.com/stitts-dev/strikelab/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	serverLog := logger.WithService("strikelab-api")
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Redis is optional; without it analyses are recomputed on every read.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient = redis.NewClient(opt)
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.WithError(err).Warn("Redis unavailable, running without analysis cache")
			redisClient.Close()
			redisClient = nil
		}
		cancel()
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	cacheService := services.NewCacheService(redisClient)

	providerDefaults := coach.ProviderSettings{
		Timeout:          cfg.AITimeout,
		RateLimit:        cfg.AIRateLimit,
		FailureThreshold: cfg.CircuitBreakerThreshold,
	}
	anthropic := providerDefaults
	anthropic.APIKey = cfg.AnthropicAPIKey
	anthropic.Model = cfg.AnthropicModel
	openai := providerDefaults
	openai.APIKey = cfg.OpenAIAPIKey
	openai.Model = cfg.OpenAIModel

	chain := coach.NewChain(log, coach.ConfiguredProviders(anthropic, openai, log)...)
	serverLog.WithField("providers", chain.Providers()).Info("Chat provider chain configured")

	refresher := services.NewStatsRefresher(db, log, cfg.StatsRefreshSchedule)
	if cfg.EnableBackgroundJobs {
		if err := refresher.Start(); err != nil {
			serverLog.Errorf("Failed to start stats refresher: %v", err)
		}
		defer refresher.Stop()
	}

	router := api.NewRouter(api.Dependencies{
		DB:        db,
		Cache:     cacheService,
		Imports:   services.NewImportService(db, log),
		Sessions:  services.NewSessionService(db, cacheService, cfg.AnalysisCacheTTL, log),
		Coach:     services.NewCoachService(db, chain, log, cfg.DefaultLanguage, cfg.ChatHistoryLimit),
		Chain:     chain,
		Refresher: refresher,
		Config:    cfg,
		Logger:    log,
	})

	if cfg.IsDevelopment() {
		for _, route := range router.Routes() {
			log.Debugf("%s %s", route.Method, route.Path)
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.AITimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		serverLog.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverLog.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	serverLog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		serverLog.Errorf("Server forced to shutdown: %v", err)
	}

	serverLog.Info("Server exited")
}
