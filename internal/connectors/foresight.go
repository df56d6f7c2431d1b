package connectors

import (
	"github.com/stitts-dev/strikelab/internal/clubs"
	"github.com/stitts-dev/strikelab/internal/shots"
)

const SourceForesight = "foresight"

// Foresight's own key names come first, the generic spellings second.
var foresightFields = []fieldMapping{
	{FieldCarryDistance, []string{"carry_distance", "carry"}},
	{FieldTotalDistance, []string{"total_distance", "total"}},
	{FieldBallSpeed, []string{"ball_speed"}},
	{FieldClubSpeed, []string{"club_head_speed", "club_speed"}},
	{FieldSmashFactor, []string{"smash_factor"}},
	{FieldLaunchAngle, []string{"vertical_launch", "launch_angle"}},
	{FieldSpinRate, []string{"total_spin", "spin_rate"}},
	{FieldSpinAxis, []string{"spin_axis"}},
	{FieldFaceAngle, []string{"face_angle"}},
	{FieldFaceToPath, []string{"face_to_path"}},
	{FieldAttackAngle, []string{"angle_of_attack", "attack_angle"}},
	{FieldClubPath, []string{"club_path"}},
	{FieldOfflineDistance, []string{"side_total", "offline"}},
	{FieldPeakHeight, []string{"apex_height", "peak_height"}},
	{FieldLandAngle, []string{"descent_angle", "land_angle"}},
	{FieldImpactHeight, []string{"impact_height"}},
	{FieldImpactOffset, []string{"impact_offset"}},
}

// ForesightConnector reads GCQuad / GC3 exports.
type ForesightConnector struct{}

func NewForesightConnector() *ForesightConnector {
	return &ForesightConnector{}
}

func (c *ForesightConnector) Source() string { return SourceForesight }

func (c *ForesightConnector) Parse(payload []byte) (*shots.Session, error) {
	doc, err := decodeDocument(payload)
	if err != nil {
		return nil, err
	}
	list, err := extractVendorShots(doc, foresightFields, clubs.Normalize)
	if err != nil {
		return nil, err
	}

	return &shots.Session{
		Source:      SourceForesight,
		SessionType: shots.DefaultSessionType,
		SessionDate: doc.sessionDate(),
		Name:        "Foresight Session",
		RawData:     doc,
		Shots:       list,
	}, nil
}

func (c *ForesightConnector) ExtractShots(payload []byte) ([]shots.Shot, error) {
	doc, err := decodeDocument(payload)
	if err != nil {
		return nil, err
	}
	return extractVendorShots(doc, foresightFields, clubs.Normalize)
}
