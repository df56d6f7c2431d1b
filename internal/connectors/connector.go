// Package connectors turns launch-monitor exports into canonical sessions.
//
// Each vendor gets its own Connector. They are stateless apart from their
// static synonym and club-code tables, so a single value may be shared.
package connectors

import (
	"errors"

	"github.com/stitts-dev/strikelab/internal/shots"
)

var (
	// ErrNoShotList means the payload has no iterable shot list.
	ErrNoShotList = errors.New("payload has no shot list")
	// ErrNoHeader means a CSV export has no header row.
	ErrNoHeader = errors.New("csv has no header row")
	// ErrInvalidPayload means the payload could not be decoded at all.
	ErrInvalidPayload = errors.New("invalid payload")

	ErrUnknownConnector     = errors.New("unknown connector")
	ErrConnectorUnavailable = errors.New("connector not yet available")
)

// Connector maps one source-specific payload shape onto shots.Session.
type Connector interface {
	// Source is the connector identifier stored on the session.
	Source() string
	// Parse builds the full session: metadata plus extracted shots.
	Parse(payload []byte) (*shots.Session, error)
	// ExtractShots returns the payload's shots ordered by shot number.
	ExtractShots(payload []byte) ([]shots.Shot, error)
}
