package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/strikelab/internal/models"
	"github.com/stitts-dev/strikelab/pkg/database"
)

const refreshBatchSize = 50

// StatsRefresher fills in computed_stats for sessions that were stored
// without one.
type StatsRefresher struct {
	db        *database.DB
	logger    *logrus.Logger
	cron      *cron.Cron
	schedule  string
	cancel    context.CancelFunc
	mu        sync.Mutex
	isRunning bool
	lastRun   time.Time
	lastCount int
}

func NewStatsRefresher(db *database.DB, logger *logrus.Logger, schedule string) *StatsRefresher {
	return &StatsRefresher{
		db:       db,
		logger:   logger,
		schedule: schedule,
	}
}

// Start registers the refresh job and starts the scheduler.
func (r *StatsRefresher) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isRunning {
		return fmt.Errorf("stats refresher is already running")
	}

	// A stopped cron cannot be restarted, so every Start gets a fresh one.
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(r.logger)))
	ctx, cancel := context.WithCancel(context.Background())
	if _, err := c.AddFunc(r.schedule, func() { r.run(ctx) }); err != nil {
		cancel()
		return fmt.Errorf("failed to schedule stats refresh %q: %w", r.schedule, err)
	}

	c.Start()
	r.cron = c
	r.cancel = cancel
	r.isRunning = true
	r.logger.WithFields(logrus.Fields{
		"component": "stats_refresher",
		"schedule":  r.schedule,
	}).Info("Stats refresher started")
	return nil
}

// Stop cancels any running refresh and waits for the scheduler to drain.
// The lock is released while draining since jobs record their result under it.
func (r *StatsRefresher) Stop() {
	r.mu.Lock()
	if !r.isRunning {
		r.mu.Unlock()
		return
	}
	c, cancel := r.cron, r.cancel
	r.isRunning = false
	r.mu.Unlock()

	cancel()
	<-c.Stop().Done()
	r.logger.WithField("component", "stats_refresher").Info("Stats refresher stopped")
}

func (r *StatsRefresher) run(ctx context.Context) {
	start := time.Now()
	n, err := r.RefreshOnce(ctx)
	if errors.Is(err, context.Canceled) {
		r.logger.WithField("sessions", n).Debug("Stats refresh interrupted by shutdown")
		return
	}
	if err != nil {
		r.logger.WithError(err).Error("Stats refresh failed")
		return
	}

	r.mu.Lock()
	r.lastRun = start
	r.lastCount = n
	r.mu.Unlock()

	if n > 0 {
		r.logger.WithFields(logrus.Fields{
			"sessions": n,
			"duration": time.Since(start),
		}).Info("Stats refresh completed")
	}
}

// RefreshOnce analyses every session whose computed_stats is NULL and
// returns how many were updated.
func (r *StatsRefresher) RefreshOnce(ctx context.Context) (int, error) {
	var pending []models.Session
	err := r.db.WithContext(ctx).
		Where("computed_stats IS NULL").
		Order("created_at ASC").
		Limit(refreshBatchSize).
		Find(&pending).Error
	if err != nil {
		return 0, fmt.Errorf("failed to find sessions without stats: %w", err)
	}

	updated := 0
	for _, sess := range pending {
		if ctx.Err() != nil {
			return updated, ctx.Err()
		}

		rows, err := loadShots(r.db.WithContext(ctx), sess.ID)
		if err != nil {
			return updated, err
		}
		stats, err := encodeAnalysis(models.CanonicalShots(rows))
		if err != nil {
			return updated, err
		}
		err = r.db.WithContext(ctx).Model(&models.Session{}).
			Where("id = ?", sess.ID).
			Update("computed_stats", stats).Error
		if err != nil {
			return updated, fmt.Errorf("failed to store stats for session %s: %w", sess.ID, err)
		}
		updated++
	}
	return updated, nil
}

// Status reports scheduler state for the health endpoint.
func (r *StatsRefresher) Status() map[string]interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()

	status := map[string]interface{}{
		"is_running": r.isRunning,
		"schedule":   r.schedule,
		"last_count": r.lastCount,
	}
	if !r.lastRun.IsZero() {
		status["last_run"] = r.lastRun
	}
	if r.isRunning {
		if entries := r.cron.Entries(); len(entries) > 0 {
			status["next_run"] = entries[0].Next
		}
	}
	return status
}
