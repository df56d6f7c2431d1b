package connectors

import (
	"github.com/stitts-dev/strikelab/internal/clubs"
	"github.com/stitts-dev/strikelab/internal/shots"
)

const SourceTopgolf = "topgolf"

// Toptracer has no club, face or impact data.
var topgolfFields = []fieldMapping{
	{FieldCarryDistance, []string{"carry"}},
	{FieldTotalDistance, []string{"total"}},
	{FieldBallSpeed, []string{"ball_speed"}},
	{FieldLaunchAngle, []string{"launch_angle"}},
	{FieldSpinRate, []string{"spin_rate"}},
	{FieldOfflineDistance, []string{"offline"}},
}

// TopgolfConnector reads Topgolf/Toptracer bay exports.
type TopgolfConnector struct{}

func NewTopgolfConnector() *TopgolfConnector {
	return &TopgolfConnector{}
}

func (c *TopgolfConnector) Source() string { return SourceTopgolf }

func (c *TopgolfConnector) Parse(payload []byte) (*shots.Session, error) {
	doc, err := decodeDocument(payload)
	if err != nil {
		return nil, err
	}
	list, err := extractVendorShots(doc, topgolfFields, clubs.Normalize)
	if err != nil {
		return nil, err
	}

	return &shots.Session{
		Source:      SourceTopgolf,
		SessionType: shots.DefaultSessionType,
		SessionDate: doc.sessionDate(),
		Name:        "Topgolf Session",
		RawData:     doc,
		Shots:       list,
	}, nil
}

func (c *TopgolfConnector) ExtractShots(payload []byte) ([]shots.Shot, error) {
	doc, err := decodeDocument(payload)
	if err != nil {
		return nil, err
	}
	return extractVendorShots(doc, topgolfFields, clubs.Normalize)
}
