package shots

import (
	"sort"
	"time"
)

// Shot is one real or attempted golf shot after normalization. Every
// measurement is optional; a nil pointer means the source did not report it.
type Shot struct {
	ShotNumber int    `json:"shot_number"`
	Club       string `json:"club"`

	// Ball flight
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

	// Club delivery
	ClubSpeed   *float64 `json:"club_speed"`
	SmashFactor *float64 `json:"smash_factor"`
	AttackAngle *float64 `json:"attack_angle"`
	ClubPath    *float64 `json:"club_path"`

	// Face
	FaceAngle    *float64 `json:"face_angle"`
	FaceToPath   *float64 `json:"face_to_path"`
	FaceToTarget *float64 `json:"face_to_target"`

	// Impact location, mm from center
	ImpactHeight *float64 `json:"impact_height"`
	ImpactOffset *float64 `json:"impact_offset"`

	IsMishit   bool    `json:"is_mishit"`
	MishitType *string `json:"mishit_type,omitempty"`
}

// Session is a normalized import unit produced by a connector.
type Session struct {
	Source      string                 `json:"source"`
	SessionType string                 `json:"session_type"`
	SessionDate time.Time              `json:"session_date"`
	Name        string                 `json:"name,omitempty"`
	Notes       string                 `json:"notes,omitempty"`
	RawData     map[string]interface{} `json:"raw_data,omitempty"`
	Shots       []Shot                 `json:"shots"`
}

const DefaultSessionType = "range"

// SortByNumber orders shots by shot number, keeping source order for ties.
func SortByNumber(list []Shot) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].ShotNumber < list[j].ShotNumber
	})
}

// Float returns a pointer to v. Handy for literals in tests and fixtures.
func Float(v float64) *float64 {
	return &v
}
