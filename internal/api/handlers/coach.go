package handlers

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/stitts-dev/strikelab/internal/coach"
	"github.com/stitts-dev/strikelab/internal/models"
	"github.com/stitts-dev/strikelab/internal/services"
	"github.com/stitts-dev/strikelab/pkg/utils"
)

type CoachHandler struct {
	coach *services.CoachService
}

func NewCoachHandler(coach *services.CoachService) *CoachHandler {
	return &CoachHandler{coach: coach}
}

type reportRequest struct {
	SessionID uuid.UUID `json:"session_id" binding:"required"`
	Language  string    `json:"language"`
}

// GenerateReport builds and stores the five-part report for a session.
func (h *CoachHandler) GenerateReport(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	report, err := h.coach.GenerateReport(c.Request.Context(), ownerID, req.SessionID, req.Language)
	if err != nil {
		sendSessionError(c, err, "Failed to generate report")
		return
	}
	utils.SendCreated(c, report)
}

func (h *CoachHandler) ListReports(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var sessionID *uuid.UUID
	if raw := c.Query("session_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.SendValidationError(c, "Invalid session_id", err.Error())
			return
		}
		sessionID = &id
	}

	reports, err := h.coach.ListReports(c.Request.Context(), ownerID, sessionID)
	if err != nil {
		sendSessionError(c, err, "Failed to fetch reports")
		return
	}
	utils.SendSuccess(c, reports)
}

func (h *CoachHandler) GetReport(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	reportID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	report, err := h.coach.GetReport(c.Request.Context(), ownerID, reportID)
	if err != nil {
		sendSessionError(c, err, "Failed to fetch report")
		return
	}
	utils.SendSuccess(c, report)
}

type logRequest struct {
	SessionID         *uuid.UUID     `json:"session_id"`
	EnergyLevel       *int           `json:"energy_level"`
	MentalState       *int           `json:"mental_state"`
	Intent            *string        `json:"intent"`
	RoutineDiscipline *bool          `json:"routine_discipline"`
	FeelTags          []string       `json:"feel_tags"`
	ShotBlocks        datatypes.JSON `json:"shot_blocks"`
	WhatWorked        *string        `json:"what_worked"`
	TakeForward       *string        `json:"take_forward"`
	DontOverthink     *string        `json:"dont_overthink"`
	CoachNote         *string        `json:"coach_note"`
	FatigueMode       bool           `json:"fatigue_mode"`
}

// SaveLog stores the player's subjective notes for a session.
func (h *CoachHandler) SaveLog(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var req logRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	log := &models.SessionLog{
		SessionID:         req.SessionID,
		EnergyLevel:       req.EnergyLevel,
		MentalState:       req.MentalState,
		Intent:            req.Intent,
		RoutineDiscipline: req.RoutineDiscipline,
		ShotBlocks:        req.ShotBlocks,
		WhatWorked:        req.WhatWorked,
		TakeForward:       req.TakeForward,
		DontOverthink:     req.DontOverthink,
		CoachNote:         req.CoachNote,
		FatigueMode:       req.FatigueMode,
	}
	if req.FeelTags != nil {
		tags, err := json.Marshal(req.FeelTags)
		if err != nil {
			utils.SendValidationError(c, "Invalid feel_tags", err.Error())
			return
		}
		log.FeelTags = datatypes.JSON(tags)
	}

	if err := h.coach.SaveLog(c.Request.Context(), ownerID, log); err != nil {
		if errors.Is(err, services.ErrInvalidLog) {
			utils.SendValidationError(c, "Invalid session log", errorDetails(err))
			return
		}
		sendSessionError(c, err, "Failed to save session log")
		return
	}
	utils.SendCreated(c, log)
}

func (h *CoachHandler) GetLog(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	sessionID, ok := uuidParam(c, "sessionId")
	if !ok {
		return
	}

	log, err := h.coach.GetLog(c.Request.Context(), ownerID, sessionID)
	if err != nil {
		sendSessionError(c, err, "Failed to fetch session log")
		return
	}
	utils.SendSuccess(c, log)
}

type chatRequest struct {
	Content   string             `json:"content" binding:"required"`
	SessionID *uuid.UUID         `json:"session_id"`
	Context   *coach.ChatContext `json:"context"`
	Language  string             `json:"language"`
}

// Chat answers a player message. Provider outages fall back to canned
// advice, so this only fails on storage errors.
func (h *CoachHandler) Chat(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	result, err := h.coach.Chat(c.Request.Context(), ownerID, services.ChatInput{
		Content:   req.Content,
		SessionID: req.SessionID,
		Context:   req.Context,
		Language:  req.Language,
	})
	if errors.Is(err, services.ErrEmptyMessage) {
		utils.SendValidationError(c, "Message content is required", "")
		return
	}
	if err != nil {
		sendSessionError(c, err, "Failed to process chat message")
		return
	}
	utils.SendSuccess(c, result)
}

func (h *CoachHandler) History(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	msgs, err := h.coach.History(c.Request.Context(), ownerID, limit)
	if err != nil {
		sendSessionError(c, err, "Failed to fetch chat history")
		return
	}
	utils.SendSuccess(c, msgs)
}
