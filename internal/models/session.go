package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Session is one imported practice session owned by a player.
type Session struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Source      string    `gorm:"size:50;not null" json:"source"`       // csv, trackman, topgolf, foresight
	SessionType string    `gorm:"size:50;not null" json:"session_type"` // range, course, simulator
	SessionDate time.Time `gorm:"not null;index" json:"session_date"`
	Name        *string   `gorm:"size:200" json:"name,omitempty"`
	Notes       *string   `json:"notes,omitempty"`

	// Payload snapshot kept for audit
	RawData datatypes.JSON `json:"raw_data,omitempty"`
	// Cached analysis; NULL until computed
	ComputedStats datatypes.JSON `json:"computed_stats,omitempty"`

	ShotCount int       `gorm:"-" json:"shot_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Shots []Shot `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"shots,omitempty"`
}

func (Session) TableName() string {
	return "sessions"
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
