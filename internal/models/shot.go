package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stitts-dev/strikelab/internal/shots"
)

// Shot is a persisted canonical shot. Units follow the import source.
type Shot struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID  uuid.UUID `gorm:"type:uuid;not null;index:idx_shots_session_number,priority:1" json:"session_id"`
	ShotNumber int       `gorm:"not null;index:idx_shots_session_number,priority:2" json:"shot_number"`
	Club       string    `gorm:"size:50;not null;index" json:"club"`

	// Ball data
	CarryDistance   *float64 `json:"carry_distance"`
	TotalDistance   *float64 `json:"total_distance"`
	BallSpeed       *float64 `json:"ball_speed"`
	LaunchAngle     *float64 `json:"launch_angle"`
	SpinRate        *float64 `json:"spin_rate"`
	SpinAxis        *float64 `json:"spin_axis"`
	OfflineDistance *float64 `json:"offline_distance"`
	PeakHeight      *float64 `json:"peak_height"`
	LandAngle       *float64 `json:"land_angle"`
	HangTime        *float64 `json:"hang_time"`

	// Club data
	ClubSpeed   *float64 `json:"club_speed"`
	SmashFactor *float64 `json:"smash_factor"`
	AttackAngle *float64 `json:"attack_angle"`
	ClubPath    *float64 `json:"club_path"`

	// Face and impact
	FaceAngle    *float64 `json:"face_angle"`
	FaceToPath   *float64 `json:"face_to_path"`
	FaceToTarget *float64 `json:"face_to_target"`
	ImpactHeight *float64 `json:"impact_height"`
	ImpactOffset *float64 `json:"impact_offset"`

	TargetDistance *float64 `json:"target_distance"`
	IsMishit       bool     `gorm:"default:false" json:"is_mishit"`
	MishitType     *string  `gorm:"size:50" json:"mishit_type,omitempty"` // thin, fat, toe, heel, shank
	Notes          *string  `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (Shot) TableName() string {
	return "shots"
}

func (s *Shot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// NewShot copies a canonical shot into a row for sessionID.
func NewShot(sessionID uuid.UUID, c shots.Shot) Shot {
	return Shot{
		SessionID:       sessionID,
		ShotNumber:      c.ShotNumber,
		Club:            c.Club,
		CarryDistance:   c.CarryDistance,
		TotalDistance:   c.TotalDistance,
		BallSpeed:       c.BallSpeed,
		LaunchAngle:     c.LaunchAngle,
		SpinRate:        c.SpinRate,
		SpinAxis:        c.SpinAxis,
		OfflineDistance: c.OfflineDistance,
		PeakHeight:      c.PeakHeight,
		LandAngle:       c.LandAngle,
		HangTime:        c.HangTime,
		ClubSpeed:       c.ClubSpeed,
		SmashFactor:     c.SmashFactor,
		AttackAngle:     c.AttackAngle,
		ClubPath:        c.ClubPath,
		FaceAngle:       c.FaceAngle,
		FaceToPath:      c.FaceToPath,
		FaceToTarget:    c.FaceToTarget,
		ImpactHeight:    c.ImpactHeight,
		ImpactOffset:    c.ImpactOffset,
		IsMishit:        c.IsMishit,
		MishitType:      c.MishitType,
	}
}

// Canonical converts the row back for analysis.
func (s Shot) Canonical() shots.Shot {
	return shots.Shot{
		ShotNumber:      s.ShotNumber,
		Club:            s.Club,
		CarryDistance:   s.CarryDistance,
		TotalDistance:   s.TotalDistance,
		BallSpeed:       s.BallSpeed,
		LaunchAngle:     s.LaunchAngle,
		SpinRate:        s.SpinRate,
		SpinAxis:        s.SpinAxis,
		OfflineDistance: s.OfflineDistance,
		PeakHeight:      s.PeakHeight,
		LandAngle:       s.LandAngle,
		HangTime:        s.HangTime,
		ClubSpeed:       s.ClubSpeed,
		SmashFactor:     s.SmashFactor,
		AttackAngle:     s.AttackAngle,
		ClubPath:        s.ClubPath,
		FaceAngle:       s.FaceAngle,
		FaceToPath:      s.FaceToPath,
		FaceToTarget:    s.FaceToTarget,
		ImpactHeight:    s.ImpactHeight,
		ImpactOffset:    s.ImpactOffset,
		IsMishit:        s.IsMishit,
		MishitType:      s.MishitType,
	}
}

// CanonicalShots converts a slice of rows.
func CanonicalShots(rows []Shot) []shots.Shot {
	out := make([]shots.Shot, len(rows))
	for i, r := range rows {
		out[i] = r.Canonical()
	}
	return out
}
