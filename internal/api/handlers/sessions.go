package handlers

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/strikelab/internal/services"
	"github.com/stitts-dev/strikelab/pkg/utils"
)

const multipartOverhead = 16 << 10

type SessionHandler struct {
	imports        *services.ImportService
	sessions       *services.SessionService
	maxUploadBytes int64
	logger         *logrus.Logger
}

func NewSessionHandler(imports *services.ImportService, sessions *services.SessionService, maxUploadBytes int64, logger *logrus.Logger) *SessionHandler {
	return &SessionHandler{
		imports:        imports,
		sessions:       sessions,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

func (h *SessionHandler) sendTooLarge(c *gin.Context) {
	utils.SendError(c, http.StatusRequestEntityTooLarge,
		utils.NewAppError(utils.ErrCodeValidation, "File too large", strconv.FormatInt(h.maxUploadBytes, 10)+" bytes max"))
}

// ImportCSV accepts a multipart CSV upload and stores it as a session.
func (h *SessionHandler) ImportCSV(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	if h.maxUploadBytes > 0 {
		// Room for the multipart envelope around the file itself.
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)
	}

	header, err := c.FormFile("file")
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.sendTooLarge(c)
		return
	}
	if err != nil {
		utils.SendValidationError(c, "CSV file is required", err.Error())
		return
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		utils.SendValidationError(c, "File must be a CSV", header.Filename)
		return
	}
	if h.maxUploadBytes > 0 && header.Size > h.maxUploadBytes {
		h.sendTooLarge(c)
		return
	}

	file, err := header.Open()
	if err != nil {
		utils.SendInternalError(c, "Failed to read upload")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		utils.SendInternalError(c, "Failed to read upload")
		return
	}

	name := c.PostForm("session_name")
	if name == "" {
		name = strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	}

	h.logger.WithFields(logrus.Fields{
		"owner_id": ownerID,
		"filename": header.Filename,
		"bytes":    len(content),
	}).Debug("CSV upload received")

	result, err := h.imports.ImportCSV(c.Request.Context(), content, ownerID, name, c.PostForm("session_type"))
	respondImport(c, result, err)
}

// respondImport maps an import outcome onto the response envelope.
func respondImport(c *gin.Context, result *services.ImportResult, err error) {
	switch {
	case err != nil && services.IsStructural(err):
		utils.SendError(c, http.StatusBadRequest, utils.NewAppError(utils.ErrCodeBadPayload, "Could not parse payload", errorDetails(err)))
	case err != nil:
		_ = c.Error(err)
		utils.SendInternalError(c, "Import failed")
	case !result.Success:
		utils.SendFailure(c, http.StatusUnprocessableEntity,
			utils.NewAppError(utils.ErrCodeImportFailed, "No shots imported", strings.Join(result.Errors, "; ")), result)
	default:
		utils.SendCreated(c, result)
	}
}

// ListSessions returns the caller's sessions, newest first.
func (h *SessionHandler) ListSessions(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, total, err := h.sessions.List(c.Request.Context(), ownerID, services.SessionFilter{
		SessionType: c.Query("session_type"),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		_ = c.Error(err)
		utils.SendInternalError(c, "Failed to fetch sessions")
		return
	}

	utils.SendSuccessWithMeta(c, list, &utils.Meta{Total: total, PerPage: limit})
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	sessionID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	session, err := h.sessions.Get(c.Request.Context(), ownerID, sessionID)
	if err != nil {
		sendSessionError(c, err, "Failed to fetch session")
		return
	}
	utils.SendSuccess(c, session)
}

// GetShots returns the session's shots ordered by shot number.
func (h *SessionHandler) GetShots(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	sessionID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	rows, err := h.sessions.Shots(c.Request.Context(), ownerID, sessionID)
	if err != nil {
		sendSessionError(c, err, "Failed to fetch shots")
		return
	}
	utils.SendSuccess(c, rows)
}

func (h *SessionHandler) UpdateShot(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	sessionID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	shotID, ok := uuidParam(c, "shotId")
	if !ok {
		return
	}

	var update services.ShotUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	shot, err := h.sessions.UpdateShot(c.Request.Context(), ownerID, sessionID, shotID, update)
	if err != nil {
		sendSessionError(c, err, "Failed to update shot")
		return
	}
	utils.SendSuccess(c, shot)
}

func (h *SessionHandler) DeleteSession(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	sessionID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.sessions.Delete(c.Request.Context(), ownerID, sessionID); err != nil {
		sendSessionError(c, err, "Failed to delete session")
		return
	}
	utils.SendSuccess(c, gin.H{"deleted": sessionID})
}

// GetAnalysis returns the session analysis.
func (h *SessionHandler) GetAnalysis(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	sessionID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	a, err := h.sessions.Analysis(c.Request.Context(), ownerID, sessionID)
	if err != nil {
		sendSessionError(c, err, "Failed to analyse session")
		return
	}
	utils.SendSuccess(c, a)
}

func sendSessionError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		utils.SendNotFound(c, "Session not found")
	case errors.Is(err, services.ErrShotNotFound):
		utils.SendNotFound(c, "Shot not found")
	case errors.Is(err, services.ErrReportNotFound):
		utils.SendNotFound(c, "Report not found")
	case errors.Is(err, services.ErrLogNotFound):
		utils.SendNotFound(c, "Session log not found")
	default:
		_ = c.Error(err)
		utils.SendInternalError(c, message)
	}
}
