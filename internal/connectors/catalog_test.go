package connectors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	list := Catalog()
	require.Len(t, list, 5)

	ids := make([]string, 0, len(list))
	for _, d := range list {
		ids = append(ids, d.ID)
		assert.NotEmpty(t, d.Capabilities)
	}
	assert.Equal(t, []string{"trackman", "topgolf", "foresight", "stack", "csv"}, ids)

	// callers get their own copy
	list[0].Capabilities[0] = "changed"
	assert.Equal(t, "ball_flight", Catalog()[0].Capabilities[0])
}

func TestLookup(t *testing.T) {
	for _, id := range []string{SourceTrackMan, SourceTopgolf, SourceForesight, SourceCSV} {
		c, err := Lookup(id)
		require.NoError(t, err, id)
		assert.Equal(t, id, c.Source())
	}

	_, err := Lookup(SourceStack)
	assert.ErrorIs(t, err, ErrConnectorUnavailable)

	_, err = Lookup("garmin")
	assert.ErrorIs(t, err, ErrUnknownConnector)
}
