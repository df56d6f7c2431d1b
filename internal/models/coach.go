package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SessionLog holds the player's subjective notes for a session.
type SessionLog struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID *uuid.UUID `gorm:"type:uuid;index" json:"session_id,omitempty"`
	OwnerID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner_id"`

	// Pre-session
	EnergyLevel       *int           `json:"energy_level,omitempty"` // 1-5
	MentalState       *int           `json:"mental_state,omitempty"` // 1-5
	Intent            *string        `json:"intent,omitempty"`
	RoutineDiscipline *bool          `json:"routine_discipline,omitempty"`
	FeelTags          datatypes.JSON `json:"feel_tags,omitempty"` // ["calm", "late"]

	// During
	ShotBlocks datatypes.JSON `json:"shot_blocks,omitempty"`

	// Post-session
	WhatWorked    *string `json:"what_worked,omitempty"`
	TakeForward   *string `json:"take_forward,omitempty"`
	DontOverthink *string `json:"dont_overthink,omitempty"`
	CoachNote     *string `json:"coach_note,omitempty"`

	FatigueMode bool      `gorm:"default:false" json:"fatigue_mode"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (SessionLog) TableName() string {
	return "session_logs"
}

func (l *SessionLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// CoachReport is a persisted five-section report.
type CoachReport struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index" json:"session_id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`

	Diagnosis      string `gorm:"type:text" json:"diagnosis"`
	Interpretation string `gorm:"type:text" json:"interpretation"`
	Prescription   string `gorm:"type:text" json:"prescription"`
	Validation     string `gorm:"type:text" json:"validation"`
	NextBestMove   string `gorm:"type:text" json:"next_best_move"`

	// Analysis the text was selected from
	LinkedMetrics datatypes.JSON `json:"linked_metrics,omitempty"`
	ReportType    string         `gorm:"size:50;default:session" json:"report_type"` // session, weekly, trend
	Language      string         `gorm:"size:5;default:en" json:"language"`
	CreatedAt     time.Time      `json:"created_at"`
}

func (CoachReport) TableName() string {
	return "coach_reports"
}

func (r *CoachReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ChatMessage is one turn of the coach conversation.
type ChatMessage struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	SessionID *uuid.UUID     `gorm:"type:uuid" json:"session_id,omitempty"`
	Role      string         `gorm:"size:20;not null" json:"role"` // user, assistant
	Content   string         `gorm:"type:text;not null" json:"content"`
	Context   datatypes.JSON `json:"context,omitempty"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&Session{},
		&Shot{},
		&SessionLog{},
		&CoachReport{},
		&ChatMessage{},
	}
}
