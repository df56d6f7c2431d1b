package connectors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildColumnMap(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		expected ColumnMap
	}{
		{
			name:    "canonical names",
			headers: []string{"shot_number", "club", "carry_distance", "smash_factor"},
			expected: ColumnMap{
				FieldShotNumber:    "shot_number",
				FieldClub:          "club",
				FieldCarryDistance: "carry_distance",
				FieldSmashFactor:   "smash_factor",
			},
		},
		{
			name:    "vendor spellings keep original header text",
			headers: []string{"Shot #", " Club Name ", "Carry (yds)", "Ball Spd (mph)", "VLA", "Total Spin", "AoA", "FTP", "Side (m)"},
			expected: ColumnMap{
				FieldShotNumber:      "Shot #",
				FieldClub:            " Club Name ",
				FieldCarryDistance:   "Carry (yds)",
				FieldBallSpeed:       "Ball Spd (mph)",
				FieldLaunchAngle:     "VLA",
				FieldSpinRate:        "Total Spin",
				FieldAttackAngle:     "AoA",
				FieldFaceToPath:      "FTP",
				FieldOfflineDistance: "Side (m)",
			},
		},
		{
			name:     "earlier spelling wins",
			headers:  []string{"carry", "carry_distance"},
			expected: ColumnMap{FieldCarryDistance: "carry_distance"},
		},
		{
			name:     "no matches is not an error",
			headers:  []string{"foo", "bar"},
			expected: ColumnMap{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildColumnMap(tt.headers))
		})
	}
}

func TestColumnMapUnmapped(t *testing.T) {
	headers := []string{"Club", "Carry", "Temperature", "", "Notes"}
	assert.Equal(t, []string{"Temperature", "Notes"}, BuildColumnMap(headers).Unmapped(headers))
}

func TestCSVExtractShots(t *testing.T) {
	content := "Shot,Club,Carry,Total,Ball Speed,Smash,Face to Path,Offline\n" +
		"1,7i,165.5,172,120.3,1.40,-1.5,2.1\n" +
		"2,7-iron,-,N/A,n/a,,abc,0\n" +
		"x,DR,250,270,160,1.48,0.5,-8\n"

	list, err := NewCSVConnector().ExtractShots([]byte(content))
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, 1, list[0].ShotNumber)
	assert.Equal(t, "7 Iron", list[0].Club)
	assert.Equal(t, 165.5, *list[0].CarryDistance)
	assert.Equal(t, 1.40, *list[0].SmashFactor)
	assert.Equal(t, -1.5, *list[0].FaceToPath)

	second := list[1]
	assert.Equal(t, "7 Iron", second.Club)
	assert.Nil(t, second.CarryDistance)
	assert.Nil(t, second.TotalDistance)
	assert.Nil(t, second.BallSpeed)
	assert.Nil(t, second.SmashFactor)
	assert.Nil(t, second.FaceToPath)
	require.NotNil(t, second.OfflineDistance)
	assert.Equal(t, 0.0, *second.OfflineDistance)

	assert.Equal(t, 3, list[2].ShotNumber, "unparsable shot number falls back to the row index")
	assert.Equal(t, "Driver", list[2].Club)
}

func TestCSVMissingColumns(t *testing.T) {
	content := "carry\n150\n\n155\n"

	list, err := NewCSVConnector().ExtractShots([]byte(content))
	require.NoError(t, err)
	require.Len(t, list, 2)

	for i, shot := range list {
		assert.Equal(t, i+1, shot.ShotNumber)
		assert.Equal(t, "Unknown", shot.Club)
		assert.Nil(t, shot.SmashFactor)
	}
	assert.Equal(t, 155.0, *list[1].CarryDistance)
}

func TestCSVShortRowsAndOrdering(t *testing.T) {
	content := "shot_number,club,carry,face_to_path\n" +
		"3,PW,110\n" +
		"1,PW,112,0.4\n" +
		"2\n"

	list, err := NewCSVConnector().ExtractShots([]byte(content))
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, []int{1, 2, 3}, []int{list[0].ShotNumber, list[1].ShotNumber, list[2].ShotNumber})
	assert.Equal(t, 0.4, *list[0].FaceToPath)
	assert.Equal(t, "Unknown", list[1].Club)
	assert.Nil(t, list[2].FaceToPath)
}

func TestCSVParseWithWarnings(t *testing.T) {
	ts := fixedNow(t)
	content := "\ufeffClub,Carry,Weather\n7i,150,sunny\n8i,140,rain\n"

	session, warnings, err := NewCSVConnector().ParseWithWarnings([]byte(content))
	require.NoError(t, err)

	assert.Equal(t, SourceCSV, session.Source)
	assert.Equal(t, "range", session.SessionType)
	assert.Equal(t, ts, session.SessionDate)
	assert.Equal(t, 2, session.RawData["row_count"])
	assert.Equal(t, map[string]interface{}{FieldClub: "Club", FieldCarryDistance: "Carry"}, session.RawData["columns"])
	assert.Equal(t, []string{`Ignored unrecognized column "Weather"`}, warnings)
	require.Len(t, session.Shots, 2)
	assert.Equal(t, "8 Iron", session.Shots[1].Club)
}

func TestCSVHeaderOnly(t *testing.T) {
	session, err := NewCSVConnector().Parse([]byte("club,carry\n"))
	require.NoError(t, err)
	assert.Empty(t, session.Shots)
}

func TestCSVNoHeader(t *testing.T) {
	for _, content := range []string{"", "\n\n"} {
		_, err := NewCSVConnector().ExtractShots([]byte(content))
		assert.ErrorIs(t, err, ErrNoHeader)
	}
}
