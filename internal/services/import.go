package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/stitts-dev/strikelab/internal/analysis"
	"github.com/stitts-dev/strikelab/internal/connectors"
	"github.com/stitts-dev/strikelab/internal/models"
	"github.com/stitts-dev/strikelab/internal/shots"
	"github.com/stitts-dev/strikelab/pkg/database"
	"github.com/stitts-dev/strikelab/pkg/logger"
	"github.com/stitts-dev/strikelab/pkg/metrics"
)

const shotBatchSize = 100

// Import outcomes as recorded in metrics.
const (
	importSuccess = "success"
	importEmpty   = "empty"
	importError   = "error"
)

// ImportResult reports an import. Success is false with Errors set when no
// shots could be extracted; that case is not a Go error.
type ImportResult struct {
	Success       bool       `json:"success"`
	SessionID     *uuid.UUID `json:"session_id"`
	ShotsImported int        `json:"shots_imported"`
	Errors        []string   `json:"errors"`
	Warnings      []string   `json:"warnings"`
}

// ImportService parses payloads through a connector and persists the session
// and its shots in one transaction.
type ImportService struct {
	db     *database.DB
	logger *logrus.Logger
}

func NewImportService(db *database.DB, logger *logrus.Logger) *ImportService {
	return &ImportService{
		db:     db,
		logger: logger,
	}
}

// ImportCSV imports a CSV export. Structural problems (no header row) are
// returned as errors.
func (s *ImportService) ImportCSV(ctx context.Context, content []byte, ownerID uuid.UUID, name, sessionType string) (*ImportResult, error) {
	session, warnings, err := connectors.NewCSVConnector().ParseWithWarnings(content)
	if err != nil {
		metrics.RecordImport(connectors.SourceCSV, importError, 0)
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return s.persist(ctx, session, ownerID, name, sessionType, warnings)
}

// ImportPayload imports a payload through the connector registered as
// connectorID.
func (s *ImportService) ImportPayload(ctx context.Context, connectorID string, payload []byte, ownerID uuid.UUID, name, sessionType string) (*ImportResult, error) {
	if connectorID == connectors.SourceCSV {
		return s.ImportCSV(ctx, payload, ownerID, name, sessionType)
	}

	c, err := connectors.Lookup(connectorID)
	if err != nil {
		s.logger.WithField("connector", connectorID).Warn("Import requested for unusable connector")
		return nil, err
	}

	session, err := c.Parse(payload)
	if err != nil {
		metrics.RecordImport(connectorID, importError, 0)
		return nil, fmt.Errorf("failed to parse %s payload: %w", connectorID, err)
	}
	return s.persist(ctx, session, ownerID, name, sessionType, nil)
}

func (s *ImportService) persist(ctx context.Context, parsed *shots.Session, ownerID uuid.UUID, name, sessionType string, warnings []string) (*ImportResult, error) {
	log := logger.WithImportContext(parsed.Source, ownerID.String())

	result := &ImportResult{
		Errors:   []string{},
		Warnings: append([]string{}, warnings...),
	}

	if len(parsed.Shots) == 0 {
		metrics.RecordImport(parsed.Source, importEmpty, 0)
		result.Errors = append(result.Errors, emptyImportMessage(parsed.Source))
		log.Info("Import produced no shots")
		return result, nil
	}

	if sessionType == "" {
		sessionType = parsed.SessionType
	}
	if name == "" {
		name = parsed.Name
	}

	session := models.Session{
		OwnerID:     ownerID,
		Source:      parsed.Source,
		SessionType: sessionType,
		SessionDate: parsed.SessionDate,
	}
	if name != "" {
		session.Name = &name
	}
	if parsed.Notes != "" {
		session.Notes = &parsed.Notes
	}

	raw, err := json.Marshal(parsed.RawData)
	if err != nil {
		return nil, fmt.Errorf("failed to encode raw data: %w", err)
	}
	session.RawData = datatypes.JSON(raw)

	stats, err := encodeAnalysis(parsed.Shots)
	if err != nil {
		return nil, err
	}
	session.ComputedStats = stats

	err = s.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&session).Error; err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}

		rows := make([]models.Shot, len(parsed.Shots))
		for i, c := range parsed.Shots {
			rows[i] = models.NewShot(session.ID, c)
		}
		if err := tx.CreateInBatches(rows, shotBatchSize).Error; err != nil {
			return fmt.Errorf("failed to create shots: %w", err)
		}
		return nil
	})
	if err != nil {
		metrics.RecordImport(parsed.Source, importError, 0)
		log.WithError(err).Error("Import transaction failed")
		return nil, err
	}

	metrics.RecordImport(parsed.Source, importSuccess, len(parsed.Shots))
	log.WithFields(logrus.Fields{
		"session_id": session.ID,
		"shots":      len(parsed.Shots),
		"warnings":   len(warnings),
	}).Info("Session imported")

	result.Success = true
	result.SessionID = &session.ID
	result.ShotsImported = len(parsed.Shots)
	return result, nil
}

func emptyImportMessage(source string) string {
	if source == connectors.SourceCSV {
		return "No valid shots found in CSV"
	}
	return "No valid shots found in payload"
}

// analyzeTimed runs the analysis and records its duration.
func analyzeTimed(list []shots.Shot) analysis.SessionAnalysis {
	start := time.Now()
	a := analysis.Analyze(list)
	metrics.ObserveAnalysis(time.Since(start))
	return a
}

func encodeAnalysis(list []shots.Shot) (datatypes.JSON, error) {
	data, err := json.Marshal(analyzeTimed(list))
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis: %w", err)
	}
	return datatypes.JSON(data), nil
}

// IsStructural reports whether err is a payload-shape failure rather than an
// infrastructure one.
func IsStructural(err error) bool {
	return errors.Is(err, connectors.ErrNoShotList) ||
		errors.Is(err, connectors.ErrNoHeader) ||
		errors.Is(err, connectors.ErrInvalidPayload)
}
