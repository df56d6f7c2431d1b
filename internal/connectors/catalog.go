package connectors

import "fmt"

const SourceStack = "stack"

type Status string

const (
	StatusAvailable  Status = "available"
	StatusComingSoon Status = "coming_soon"
)

// Descriptor is the public listing entry for a connector.
type Descriptor struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Status       Status   `json:"status"`
	Connected    bool     `json:"connected"`
	Capabilities []string `json:"capabilities"`
}

var catalog = []Descriptor{
	{
		ID:           SourceTrackMan,
		Name:         "TrackMan",
		Description:  "Premium radar launch monitor with comprehensive ball and club data",
		Status:       StatusAvailable,
		Capabilities: []string{"ball_flight", "club_data", "face_data", "impact_location"},
	},
	{
		ID:           SourceTopgolf,
		Name:         "Topgolf",
		Description:  "Entertainment venue data from Toptracer Range systems",
		Status:       StatusAvailable,
		Capabilities: []string{"ball_flight", "basic_metrics"},
	},
	{
		ID:           SourceForesight,
		Name:         "Foresight",
		Description:  "Camera-based launch monitor (GCQuad, GC3)",
		Status:       StatusAvailable,
		Capabilities: []string{"ball_flight", "club_data", "face_data", "impact_location"},
	},
	{
		ID:           SourceStack,
		Name:         "Stack System",
		Description:  "Speed training protocol integration",
		Status:       StatusComingSoon,
		Capabilities: []string{"speed_training", "protocol_tracking"},
	},
	{
		ID:           SourceCSV,
		Name:         "CSV Import",
		Description:  "Universal fallback for any launch monitor data",
		Status:       StatusAvailable,
		Capabilities: []string{"ball_flight", "club_data"},
	},
}

// Catalog returns a copy of every known connector descriptor.
func Catalog() []Descriptor {
	out := make([]Descriptor, len(catalog))
	for i, d := range catalog {
		d.Capabilities = append([]string(nil), d.Capabilities...)
		out[i] = d
	}
	return out
}

// Describe returns the descriptor for id.
func Describe(id string) (Descriptor, bool) {
	for _, d := range catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Lookup returns the implementation for an available connector id.
func Lookup(id string) (Connector, error) {
	d, ok := Describe(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownConnector, id)
	}
	if d.Status != StatusAvailable {
		return nil, fmt.Errorf("%w: %q", ErrConnectorUnavailable, id)
	}

	switch id {
	case SourceTrackMan:
		return NewTrackManConnector(), nil
	case SourceTopgolf:
		return NewTopgolfConnector(), nil
	case SourceForesight:
		return NewForesightConnector(), nil
	case SourceCSV:
		return NewCSVConnector(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownConnector, id)
}
