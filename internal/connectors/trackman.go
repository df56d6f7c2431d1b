package connectors

import (
	"strings"

	"github.com/stitts-dev/strikelab/internal/clubs"
	"github.com/stitts-dev/strikelab/internal/shots"
)

const SourceTrackMan = "trackman"

// trackManClubs holds the two-letter codes TrackMan exports. They are matched
// case-sensitively before the shared alias table.
var trackManClubs = clubs.Table{
	"DR": "Driver",
	"3W": "3 Wood",
	"5W": "5 Wood",
	"7W": "7 Wood",
	"3H": "3 Hybrid",
	"4H": "4 Hybrid",
	"5H": "5 Hybrid",
	"3I": "3 Iron",
	"4I": "4 Iron",
	"5I": "5 Iron",
	"6I": "6 Iron",
	"7I": "7 Iron",
	"8I": "8 Iron",
	"9I": "9 Iron",
	"PW": "PW",
	"GW": "GW",
	"SW": "SW",
	"LW": "LW",
}

var trackManFields = []fieldMapping{
	{FieldCarryDistance, []string{"carry"}},
	{FieldTotalDistance, []string{"total"}},
	{FieldBallSpeed, []string{"ball_speed"}},
	{FieldClubSpeed, []string{"club_speed"}},
	{FieldSmashFactor, []string{"smash_factor"}},
	{FieldLaunchAngle, []string{"launch_angle"}},
	{FieldSpinRate, []string{"spin_rate"}},
	{FieldSpinAxis, []string{"spin_axis"}},
	{FieldFaceAngle, []string{"face_angle"}},
	{FieldFaceToPath, []string{"face_to_path"}},
	{FieldAttackAngle, []string{"attack_angle"}},
	{FieldClubPath, []string{"club_path"}},
	{FieldOfflineDistance, []string{"offline"}},
	{FieldPeakHeight, []string{"apex"}},
	{FieldLandAngle, []string{"land_angle"}},
	{FieldHangTime, []string{"hang_time"}},
	{FieldImpactHeight, []string{"impact_height"}},
	{FieldImpactOffset, []string{"impact_offset"}},
}

// TrackManConnector reads TrackMan session exports: full ball, club, face
// and impact data.
type TrackManConnector struct{}

func NewTrackManConnector() *TrackManConnector {
	return &TrackManConnector{}
}

func (c *TrackManConnector) Source() string { return SourceTrackMan }

func (c *TrackManConnector) Parse(payload []byte) (*shots.Session, error) {
	doc, err := decodeDocument(payload)
	if err != nil {
		return nil, err
	}
	list, err := c.extract(doc)
	if err != nil {
		return nil, err
	}

	return &shots.Session{
		Source:      SourceTrackMan,
		SessionType: shots.DefaultSessionType,
		SessionDate: doc.sessionDate(),
		Name:        strings.TrimSpace("TrackMan Session " + doc.str("session_id")),
		RawData:     doc,
		Shots:       list,
	}, nil
}

func (c *TrackManConnector) ExtractShots(payload []byte) ([]shots.Shot, error) {
	doc, err := decodeDocument(payload)
	if err != nil {
		return nil, err
	}
	return c.extract(doc)
}

func (c *TrackManConnector) extract(doc document) ([]shots.Shot, error) {
	return extractVendorShots(doc, trackManFields, trackManClubs.Normalize)
}
