package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/stitts-dev/strikelab/internal/coach"
	"github.com/stitts-dev/strikelab/internal/models"
	"github.com/stitts-dev/strikelab/pkg/database"
	"github.com/stitts-dev/strikelab/pkg/logger"
)

var (
	ErrReportNotFound = errors.New("report not found")
	ErrLogNotFound    = errors.New("session log not found")
	ErrInvalidLog     = errors.New("invalid session log")
	ErrEmptyMessage   = errors.New("message content is required")
)

const contextSessions = 3

// ChatInput is one player message to the coach.
type ChatInput struct {
	Content   string
	SessionID *uuid.UUID
	Context   *coach.ChatContext
	Language  string
}

// ChatResult is the stored assistant reply plus which provider wrote it.
type ChatResult struct {
	Message  models.ChatMessage `json:"message"`
	Provider string             `json:"provider"`
}

// CoachService builds and stores reports, session logs and the chat
// conversation.
type CoachService struct {
	db              *database.DB
	chain           *coach.Chain
	logger          *logrus.Logger
	defaultLanguage string
	historyLimit    int
}

func NewCoachService(db *database.DB, chain *coach.Chain, logger *logrus.Logger, defaultLanguage string, historyLimit int) *CoachService {
	if historyLimit <= 0 {
		historyLimit = 10
	}
	return &CoachService{
		db:              db,
		chain:           chain,
		logger:          logger,
		defaultLanguage: coach.ResolveLanguage(defaultLanguage),
		historyLimit:    historyLimit,
	}
}

func (s *CoachService) language(lang string) string {
	if lang == "" {
		return s.defaultLanguage
	}
	return coach.ResolveLanguage(lang)
}

func (s *CoachService) ownedSession(ctx context.Context, ownerID, sessionID uuid.UUID) (*models.Session, error) {
	var session models.Session
	err := s.db.WithContext(ctx).Where("id = ? AND owner_id = ?", sessionID, ownerID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return &session, nil
}

// GenerateReport analyses the session, selects the report text and stores
// it together with the analysis it was built from.
func (s *CoachService) GenerateReport(ctx context.Context, ownerID, sessionID uuid.UUID, lang string) (*models.CoachReport, error) {
	if _, err := s.ownedSession(ctx, ownerID, sessionID); err != nil {
		return nil, err
	}

	rows, err := loadShots(s.db.WithContext(ctx), sessionID)
	if err != nil {
		return nil, err
	}

	var log *models.SessionLog
	var found models.SessionLog
	err = s.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("created_at DESC").First(&found).Error
	switch {
	case err == nil:
		log = &found
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("failed to load session log: %w", err)
	}

	a := analyzeTimed(models.CanonicalShots(rows))
	text := coach.BuildReport(a, subjective(log), s.language(lang))

	linked, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis: %w", err)
	}

	report := models.CoachReport{
		SessionID:      sessionID,
		OwnerID:        ownerID,
		Diagnosis:      text.Diagnosis,
		Interpretation: text.Interpretation,
		Prescription:   text.Prescription,
		Validation:     text.Validation,
		NextBestMove:   text.NextBestMove,
		LinkedMetrics:  datatypes.JSON(linked),
		ReportType:     "session",
		Language:       text.Language,
	}
	if err := s.db.WithContext(ctx).Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	logger.WithSessionContext(sessionID.String()).WithFields(logrus.Fields{
		"report_id": report.ID,
		"language":  report.Language,
	}).Info("Coach report generated")
	return &report, nil
}

// subjective extracts the fields the report reads from a stored log.
func subjective(l *models.SessionLog) *coach.SubjectiveLog {
	if l == nil {
		return nil
	}
	out := &coach.SubjectiveLog{EnergyLevel: l.EnergyLevel}
	if len(l.FeelTags) > 0 {
		// tags that fail to decode are treated as absent
		_ = json.Unmarshal(l.FeelTags, &out.FeelTags)
	}
	return out
}

// ListReports returns the owner's reports, newest first, optionally for a
// single session.
func (s *CoachService) ListReports(ctx context.Context, ownerID uuid.UUID, sessionID *uuid.UUID) ([]models.CoachReport, error) {
	query := s.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if sessionID != nil {
		query = query.Where("session_id = ?", *sessionID)
	}

	var reports []models.CoachReport
	if err := query.Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

func (s *CoachService) GetReport(ctx context.Context, ownerID, reportID uuid.UUID) (*models.CoachReport, error) {
	var report models.CoachReport
	err := s.db.WithContext(ctx).Where("id = ? AND owner_id = ?", reportID, ownerID).First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load report: %w", err)
	}
	return &report, nil
}

// SaveLog validates and stores a subjective session log.
func (s *CoachService) SaveLog(ctx context.Context, ownerID uuid.UUID, l *models.SessionLog) error {
	if err := validateScale("energy_level", l.EnergyLevel); err != nil {
		return err
	}
	if err := validateScale("mental_state", l.MentalState); err != nil {
		return err
	}
	if len(l.FeelTags) > 0 {
		var tags []string
		if err := json.Unmarshal(l.FeelTags, &tags); err != nil {
			return fmt.Errorf("%w: feel_tags must be a list of strings", ErrInvalidLog)
		}
	}
	if l.SessionID != nil {
		if _, err := s.ownedSession(ctx, ownerID, *l.SessionID); err != nil {
			return err
		}
	}

	l.ID = uuid.Nil
	l.OwnerID = ownerID
	if err := s.db.WithContext(ctx).Create(l).Error; err != nil {
		return fmt.Errorf("failed to save session log: %w", err)
	}
	return nil
}

func validateScale(field string, v *int) error {
	if v != nil && (*v < 1 || *v > 5) {
		return fmt.Errorf("%w: %s must be between 1 and 5", ErrInvalidLog, field)
	}
	return nil
}

// GetLog returns the most recent log for one of the owner's sessions.
func (s *CoachService) GetLog(ctx context.Context, ownerID, sessionID uuid.UUID) (*models.SessionLog, error) {
	var l models.SessionLog
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND owner_id = ?", sessionID, ownerID).
		Order("created_at DESC").
		First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session log: %w", err)
	}
	return &l, nil
}

// Chat stores the player's message, asks the provider chain for a reply and
// stores that too. Provider failures never surface here.
func (s *CoachService) Chat(ctx context.Context, ownerID uuid.UUID, in ChatInput) (*ChatResult, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	history, err := s.History(ctx, ownerID, s.historyLimit)
	if err != nil {
		return nil, err
	}

	userMsg := models.ChatMessage{
		OwnerID:   ownerID,
		SessionID: in.SessionID,
		Role:      "user",
		Content:   content,
	}
	if in.Context != nil {
		raw, err := json.Marshal(in.Context)
		if err != nil {
			return nil, fmt.Errorf("failed to encode chat context: %w", err)
		}
		userMsg.Context = datatypes.JSON(raw)
	}
	if err := s.db.WithContext(ctx).Create(&userMsg).Error; err != nil {
		return nil, fmt.Errorf("failed to save chat message: %w", err)
	}

	chatCtx := in.Context
	if chatCtx == nil || len(chatCtx.RecentSessions) == 0 {
		chatCtx = s.recentContext(ctx, ownerID, chatCtx)
	}

	turns := make([]coach.Message, len(history))
	for i, m := range history {
		turns[i] = coach.Message{Role: m.Role, Content: m.Content}
	}
	reply := s.chain.Respond(ctx, coach.Request{
		Message: content,
		History: turns,
		Context: coach.BuildContext(chatCtx),
	}, s.language(in.Language))

	assistant := models.ChatMessage{
		OwnerID:   ownerID,
		SessionID: in.SessionID,
		Role:      "assistant",
		Content:   reply.Content,
	}
	if err := s.db.WithContext(ctx).Create(&assistant).Error; err != nil {
		return nil, fmt.Errorf("failed to save chat reply: %w", err)
	}

	return &ChatResult{Message: assistant, Provider: reply.Provider}, nil
}

// recentContext fills in the owner's latest analysed sessions when the
// request did not bring its own.
func (s *CoachService) recentContext(ctx context.Context, ownerID uuid.UUID, base *coach.ChatContext) *coach.ChatContext {
	out := &coach.ChatContext{}
	if base != nil {
		out.Handicap = base.Handicap
	}

	var sessions []models.Session
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND computed_stats IS NOT NULL", ownerID).
		Order("session_date DESC").
		Limit(contextSessions).
		Find(&sessions).Error
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load recent sessions for chat context")
		return out
	}

	for _, sess := range sessions {
		a, ok := decodeStats(sess)
		if !ok {
			continue
		}
		name := ""
		if sess.Name != nil {
			name = *sess.Name
		}
		out.RecentSessions = append(out.RecentSessions, coach.RecentSession{
			Name:      name,
			Date:      sess.SessionDate.Format("2006-01-02"),
			ShotCount: a.ShotCount,
			Stats: coach.SessionStats{
				StrikeScore:      a.StrikeScore,
				FaceControlScore: a.FaceControlScore,
			},
		})
	}
	return out
}

// History returns up to limit messages in chronological order.
func (s *CoachService) History(ctx context.Context, ownerID uuid.UUID, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = s.historyLimit
	}

	var msgs []models.ChatMessage
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}

	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}
