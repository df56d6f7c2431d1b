package connectors

import "github.com/stitts-dev/strikelab/internal/shots"

// Canonical field names, shared by vendor synonym tables and CSV headers.
const (
	FieldShotNumber      = "shot_number"
	FieldClub            = "club"
	FieldCarryDistance   = "carry_distance"
	FieldTotalDistance   = "total_distance"
	FieldBallSpeed       = "ball_speed"
	FieldClubSpeed       = "club_speed"
	FieldSmashFactor     = "smash_factor"
	FieldLaunchAngle     = "launch_angle"
	FieldSpinRate        = "spin_rate"
	FieldSpinAxis        = "spin_axis"
	FieldFaceAngle       = "face_angle"
	FieldFaceToPath      = "face_to_path"
	FieldFaceToTarget    = "face_to_target"
	FieldAttackAngle     = "attack_angle"
	FieldClubPath        = "club_path"
	FieldOfflineDistance = "offline_distance"
	FieldPeakHeight      = "peak_height"
	FieldLandAngle       = "land_angle"
	FieldHangTime        = "hang_time"
	FieldImpactHeight    = "impact_height"
	FieldImpactOffset    = "impact_offset"
)

// fieldMapping names a canonical measurement and the vendor keys that may
// carry it, in priority order.
type fieldMapping struct {
	field string
	keys  []string
}

func setMeasurement(shot *shots.Shot, field string, v *float64) {
	switch field {
	case FieldCarryDistance:
		shot.CarryDistance = v
	case FieldTotalDistance:
		shot.TotalDistance = v
	case FieldBallSpeed:
		shot.BallSpeed = v
	case FieldClubSpeed:
		shot.ClubSpeed = v
	case FieldSmashFactor:
		shot.SmashFactor = v
	case FieldLaunchAngle:
		shot.LaunchAngle = v
	case FieldSpinRate:
		shot.SpinRate = v
	case FieldSpinAxis:
		shot.SpinAxis = v
	case FieldFaceAngle:
		shot.FaceAngle = v
	case FieldFaceToPath:
		shot.FaceToPath = v
	case FieldFaceToTarget:
		shot.FaceToTarget = v
	case FieldAttackAngle:
		shot.AttackAngle = v
	case FieldClubPath:
		shot.ClubPath = v
	case FieldOfflineDistance:
		shot.OfflineDistance = v
	case FieldPeakHeight:
		shot.PeakHeight = v
	case FieldLandAngle:
		shot.LandAngle = v
	case FieldHangTime:
		shot.HangTime = v
	case FieldImpactHeight:
		shot.ImpactHeight = v
	case FieldImpactOffset:
		shot.ImpactOffset = v
	}
}
