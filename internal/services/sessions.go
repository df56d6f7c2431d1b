package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/stitts-dev/strikelab/internal/analysis"
	"github.com/stitts-dev/strikelab/internal/models"
	"github.com/stitts-dev/strikelab/pkg/database"
	"github.com/stitts-dev/strikelab/pkg/logger"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrShotNotFound    = errors.New("shot not found")
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// SessionFilter narrows a session listing.
type SessionFilter struct {
	SessionType string
	Limit       int
	Offset      int
}

// ShotUpdate carries the editable fields of a shot. Nil fields are left
// untouched.
type ShotUpdate struct {
	IsMishit   *bool   `json:"is_mishit"`
	MishitType *string `json:"mishit_type"`
	Notes      *string `json:"notes"`
}

// SessionService reads and edits persisted sessions. Analyses are served
// through the cache and dropped whenever a shot changes.
type SessionService struct {
	db       *database.DB
	cache    *CacheService
	cacheTTL time.Duration
	logger   *logrus.Logger
}

func NewSessionService(db *database.DB, cache *CacheService, cacheTTL time.Duration, logger *logrus.Logger) *SessionService {
	return &SessionService{
		db:       db,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// List returns the owner's sessions, newest first, with their shot counts.
func (s *SessionService) List(ctx context.Context, ownerID uuid.UUID, f SessionFilter) ([]models.Session, int64, error) {
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	query := s.db.WithContext(ctx).Model(&models.Session{}).Where("owner_id = ?", ownerID)
	if f.SessionType != "" {
		query = query.Where("session_type = ?", f.SessionType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	var sessions []models.Session
	if err := query.Order("session_date DESC").Offset(f.Offset).Limit(f.Limit).Find(&sessions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}
	if err := s.fillShotCounts(ctx, sessions); err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

func (s *SessionService) fillShotCounts(ctx context.Context, sessions []models.Session) error {
	if len(sessions) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(sessions))
	for i, sess := range sessions {
		ids[i] = sess.ID
	}

	var rows []struct {
		SessionID uuid.UUID
		Count     int
	}
	err := s.db.WithContext(ctx).Model(&models.Shot{}).
		Select("session_id, COUNT(*) AS count").
		Where("session_id IN ?", ids).
		Group("session_id").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to count shots: %w", err)
	}

	counts := make(map[uuid.UUID]int, len(rows))
	for _, r := range rows {
		counts[r.SessionID] = r.Count
	}
	for i := range sessions {
		sessions[i].ShotCount = counts[sessions[i].ID]
	}
	return nil
}

// Get returns one of the owner's sessions.
func (s *SessionService) Get(ctx context.Context, ownerID, sessionID uuid.UUID) (*models.Session, error) {
	var session models.Session
	err := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", sessionID, ownerID).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	sessions := []models.Session{session}
	if err := s.fillShotCounts(ctx, sessions); err != nil {
		return nil, err
	}
	return &sessions[0], nil
}

// Shots returns the session's shots in shot-number order.
func (s *SessionService) Shots(ctx context.Context, ownerID, sessionID uuid.UUID) ([]models.Shot, error) {
	if _, err := s.Get(ctx, ownerID, sessionID); err != nil {
		return nil, err
	}
	return loadShots(s.db.WithContext(ctx), sessionID)
}

func loadShots(tx *gorm.DB, sessionID uuid.UUID) ([]models.Shot, error) {
	var rows []models.Shot
	if err := tx.Where("session_id = ?", sessionID).Order("shot_number ASC").Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load shots: %w", err)
	}
	return rows, nil
}

// UpdateShot edits a shot and refreshes the session's stored analysis.
func (s *SessionService) UpdateShot(ctx context.Context, ownerID, sessionID, shotID uuid.UUID, u ShotUpdate) (*models.Shot, error) {
	if _, err := s.Get(ctx, ownerID, sessionID); err != nil {
		return nil, err
	}

	var shot models.Shot
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND session_id = ?", shotID, sessionID).First(&shot).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShotNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load shot: %w", err)
		}

		if u.IsMishit != nil {
			shot.IsMishit = *u.IsMishit
			if !shot.IsMishit {
				shot.MishitType = nil
			}
		}
		if u.MishitType != nil {
			shot.MishitType = u.MishitType
		}
		if u.Notes != nil {
			shot.Notes = u.Notes
		}
		if err := tx.Save(&shot).Error; err != nil {
			return fmt.Errorf("failed to update shot: %w", err)
		}

		rows, err := loadShots(tx, sessionID)
		if err != nil {
			return err
		}
		stats, err := encodeAnalysis(models.CanonicalShots(rows))
		if err != nil {
			return err
		}
		return tx.Model(&models.Session{}).Where("id = ?", sessionID).Update("computed_stats", stats).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, AnalysisCacheKey(sessionID)); err != nil {
		logger.WithSessionContext(sessionID.String()).WithError(err).Warn("Failed to invalidate analysis cache")
	}
	return &shot, nil
}

// Delete removes a session with its shots, logs and reports.
func (s *SessionService) Delete(ctx context.Context, ownerID, sessionID uuid.UUID) error {
	if _, err := s.Get(ctx, ownerID, sessionID); err != nil {
		return err
	}

	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		for _, m := range []interface{}{&models.Shot{}, &models.SessionLog{}, &models.CoachReport{}} {
			if err := tx.Where("session_id = ?", sessionID).Delete(m).Error; err != nil {
				return fmt.Errorf("failed to delete session children: %w", err)
			}
		}
		return tx.Delete(&models.Session{}, "id = ?", sessionID).Error
	})
	if err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, AnalysisCacheKey(sessionID)); err != nil {
		logger.WithSessionContext(sessionID.String()).WithError(err).Warn("Failed to invalidate analysis cache")
	}
	return nil
}

// Analysis returns the session analysis, from cache when possible.
func (s *SessionService) Analysis(ctx context.Context, ownerID, sessionID uuid.UUID) (*analysis.SessionAnalysis, error) {
	if _, err := s.Get(ctx, ownerID, sessionID); err != nil {
		return nil, err
	}

	key := AnalysisCacheKey(sessionID)
	var cached analysis.SessionAnalysis
	switch err := s.cache.Get(ctx, key, &cached); {
	case err == nil:
		return &cached, nil
	case !errors.Is(err, ErrCacheMiss):
		s.logger.WithError(err).Warn("Analysis cache read failed")
	}

	rows, err := loadShots(s.db.WithContext(ctx), sessionID)
	if err != nil {
		return nil, err
	}
	a := analyzeTimed(models.CanonicalShots(rows))

	if err := s.cache.Set(ctx, key, a, s.cacheTTL); err != nil {
		s.logger.WithError(err).Warn("Analysis cache write failed")
	}
	return &a, nil
}

// decodeStats reads a session's stored analysis; ok is false when none is
// stored.
func decodeStats(sess models.Session) (analysis.SessionAnalysis, bool) {
	var a analysis.SessionAnalysis
	if len(sess.ComputedStats) == 0 || string(sess.ComputedStats) == "null" {
		return a, false
	}
	if err := json.Unmarshal(sess.ComputedStats, &a); err != nil {
		return a, false
	}
	return a, true
}
