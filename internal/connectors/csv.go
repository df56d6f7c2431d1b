package connectors

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/stitts-dev/strikelab/internal/clubs"
	"github.com/stitts-dev/strikelab/internal/shots"
)

const SourceCSV = "csv"

const utf8BOM = "\ufeff"

// measurementFields are read from every CSV row through the column map.
var measurementFields = []string{
	FieldCarryDistance, FieldTotalDistance,
	FieldBallSpeed, FieldClubSpeed, FieldSmashFactor,
	FieldLaunchAngle, FieldSpinRate, FieldSpinAxis,
	FieldFaceAngle, FieldFaceToPath, FieldAttackAngle,
	FieldOfflineDistance,
}

// CSVConnector reads generic comma-separated exports with a header row.
type CSVConnector struct{}

func NewCSVConnector() *CSVConnector {
	return &CSVConnector{}
}

func (c *CSVConnector) Source() string { return SourceCSV }

func (c *CSVConnector) Parse(payload []byte) (*shots.Session, error) {
	session, _, err := c.ParseWithWarnings(payload)
	return session, err
}

// ParseWithWarnings is Parse plus one warning per header that did not map
// onto a canonical field.
func (c *CSVConnector) ParseWithWarnings(payload []byte) (*shots.Session, []string, error) {
	table, err := readTable(payload)
	if err != nil {
		return nil, nil, err
	}

	columns := BuildColumnMap(table.headers)
	list := table.shots(columns)

	var warnings []string
	for _, h := range columns.Unmapped(table.headers) {
		warnings = append(warnings, fmt.Sprintf("Ignored unrecognized column %q", h))
	}

	mapped := make(map[string]interface{}, len(columns))
	for field, header := range columns {
		mapped[field] = header
	}

	return &shots.Session{
		Source:      SourceCSV,
		SessionType: shots.DefaultSessionType,
		SessionDate: now(),
		RawData: map[string]interface{}{
			"row_count": len(list),
			"columns":   mapped,
		},
		Shots: list,
	}, warnings, nil
}

func (c *CSVConnector) ExtractShots(payload []byte) ([]shots.Shot, error) {
	table, err := readTable(payload)
	if err != nil {
		return nil, err
	}
	return table.shots(BuildColumnMap(table.headers)), nil
}

type csvTable struct {
	headers []string
	index   map[string]int
	rows    [][]string
}

func readTable(payload []byte) (*csvTable, error) {
	r := csv.NewReader(bytes.NewReader(payload))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	headers, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], utf8BOM)
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, seen := index[h]; !seen {
			index[h] = i
		}
	}
	return &csvTable{headers: headers, index: index, rows: rows}, nil
}

func (t *csvTable) shots(columns ColumnMap) []shots.Shot {
	out := make([]shots.Shot, 0, len(t.rows))
	for i, row := range t.rows {
		out = append(out, t.parseRow(row, columns, i+1))
	}
	shots.SortByNumber(out)
	return out
}

// parseRow never fails: bad or missing cells become nil.
func (t *csvTable) parseRow(row []string, columns ColumnMap, rowNum int) shots.Shot {
	cell := func(field string) (string, bool) {
		header, ok := columns[field]
		if !ok {
			return "", false
		}
		i := t.index[header]
		if i >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}

	shot := shots.Shot{ShotNumber: rowNum, Club: clubs.Unknown}
	if raw, ok := cell(FieldClub); ok && raw != "" {
		shot.Club = clubs.Normalize(raw)
	}
	if raw, ok := cell(FieldShotNumber); ok {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			shot.ShotNumber = n
		}
	}
	for _, field := range measurementFields {
		raw, ok := cell(field)
		if !ok {
			continue
		}
		setMeasurement(&shot, field, cellNumber(raw))
	}
	return shot
}

func cellNumber(raw string) *float64 {
	switch raw {
	case "", "-", "N/A", "n/a":
		return nil
	}
	f, err := parseFloat(raw)
	if err != nil {
		return nil
	}
	return &f
}
