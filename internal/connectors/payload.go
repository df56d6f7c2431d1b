package connectors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/stitts-dev/strikelab/internal/clubs"
	"github.com/stitts-dev/strikelab/internal/shots"
)

// now is swapped in tests.
var now = func() time.Time { return time.Now().UTC() }

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type document map[string]interface{}

func decodeDocument(payload []byte) (document, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: payload is null", ErrInvalidPayload)
	}
	return doc, nil
}

// rawShots locates the "shots" array. Each element must be an object.
func (d document) rawShots() ([]map[string]interface{}, error) {
	v, ok := d["shots"]
	if !ok {
		return nil, ErrNoShotList
	}
	list, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: shots is %T", ErrNoShotList, v)
	}

	out := make([]map[string]interface{}, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: shot %d is not an object", ErrNoShotList, i+1)
		}
		out = append(out, obj)
	}
	return out, nil
}

// sessionDate reads the ISO-8601 "date" field, falling back to now.
func (d document) sessionDate() time.Time {
	raw, ok := d["date"].(string)
	if !ok {
		return now()
	}
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return now()
}

func (d document) str(key string) string {
	switch v := d[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// extractVendorShots applies a vendor synonym table to every raw shot.
func extractVendorShots(doc document, mappings []fieldMapping, normalize func(string) string) ([]shots.Shot, error) {
	raw, err := doc.rawShots()
	if err != nil {
		return nil, err
	}

	out := make([]shots.Shot, 0, len(raw))
	for i, rs := range raw {
		shot := shots.Shot{
			ShotNumber: shotNumber(rs[FieldShotNumber], i+1),
			Club:       normalize(clubValue(rs[FieldClub])),
		}
		for _, m := range mappings {
			setMeasurement(&shot, m.field, firstNumber(rs, m.keys...))
		}
		if mishit, ok := rs["is_mishit"].(bool); ok {
			shot.IsMishit = mishit
		}
		if kind, ok := rs["mishit_type"].(string); ok && kind != "" {
			shot.MishitType = &kind
		}
		out = append(out, shot)
	}

	shots.SortByNumber(out)
	return out, nil
}

// firstNumber returns the first key holding a usable number.
func firstNumber(raw map[string]interface{}, keys ...string) *float64 {
	for _, key := range keys {
		if v := number(raw[key]); v != nil {
			return v
		}
	}
	return nil
}

// number accepts JSON numbers and numeric strings. Anything else is nil.
func number(v interface{}) *float64 {
	var (
		f   float64
		err error
	)
	switch n := v.(type) {
	case json.Number:
		f, err = n.Float64()
	case float64:
		f = n
	case string:
		f, err = parseFloat(n)
	default:
		return nil
	}
	if err != nil {
		return nil
	}
	return &f
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return f, nil
}

// shotNumber accepts positive integers (as numbers or strings) and falls
// back to the 1-based position.
func shotNumber(v interface{}, position int) int {
	var s string
	switch n := v.(type) {
	case json.Number:
		s = n.String()
	case string:
		s = strings.TrimSpace(n)
	default:
		return position
	}
	i, err := strconv.Atoi(s)
	if err != nil || i <= 0 {
		return position
	}
	return i
}

func clubValue(v interface{}) string {
	switch c := v.(type) {
	case string:
		return c
	case json.Number:
		return c.String()
	default:
		return clubs.Unknown
	}
}
