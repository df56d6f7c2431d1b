// Package clubs maps free-text club names onto the canonical label set.
package clubs

import (
	"strings"
	"unicode"
)

const Unknown = "Unknown"

// aliases is keyed by the lower-cased, trimmed raw name.
var aliases = map[string]string{
	// Driver
	"dr":     "Driver",
	"driver": "Driver",
	"1w":     "Driver",
	"d":      "Driver",

	// Woods
	"3w":     "3 Wood",
	"3-wood": "3 Wood",
	"3 wood": "3 Wood",
	"5w":     "5 Wood",
	"5-wood": "5 Wood",
	"5 wood": "5 Wood",
	"7w":     "7 Wood",
	"7-wood": "7 Wood",
	"7 wood": "7 Wood",

	// Hybrids
	"2h":       "2 Hybrid",
	"2-hybrid": "2 Hybrid",
	"2 hybrid": "2 Hybrid",
	"3h":       "3 Hybrid",
	"3-hybrid": "3 Hybrid",
	"3 hybrid": "3 Hybrid",
	"4h":       "4 Hybrid",
	"4-hybrid": "4 Hybrid",
	"4 hybrid": "4 Hybrid",
	"5h":       "5 Hybrid",
	"5-hybrid": "5 Hybrid",
	"5 hybrid": "5 Hybrid",

	// Wedges
	"pw":             "PW",
	"pitching wedge": "PW",
	"pitching":       "PW",
	"gw":             "GW",
	"gap wedge":      "GW",
	"gap":            "GW",
	"aw":             "GW",
	"approach wedge": "GW",
	"sw":             "SW",
	"sand wedge":     "SW",
	"sand":           "SW",
	"lw":             "LW",
	"lob wedge":      "LW",
	"lob":            "LW",

	// Putter
	"putter": "Putter",
	"pt":     "Putter",
}

func init() {
	// Numbered irons: "7i", "7-iron", "7 iron".
	for _, n := range []string{"3", "4", "5", "6", "7", "8", "9"} {
		label := n + " Iron"
		aliases[n+"i"] = label
		aliases[n+"-iron"] = label
		aliases[n+" iron"] = label
	}
	// Degree wedges: "52", "52 degree", "52°".
	for _, n := range []string{"50", "52", "54", "56", "58", "60"} {
		label := n + " Wedge"
		aliases[n] = label
		aliases[n+" degree"] = label
		aliases[n+"°"] = label
	}
}

// Normalize maps a raw club name to its canonical label. Unrecognized names
// come back title-cased; empty input is Unknown.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Unknown
	}
	if label, ok := aliases[strings.ToLower(trimmed)]; ok {
		return label
	}
	return titleCase(trimmed)
}

// Table is a vendor-specific code table consulted before the shared aliases.
// Keys are matched exactly as the vendor sends them.
type Table map[string]string

// Normalize looks raw up in the vendor table and falls back to the shared
// alias table on a miss.
func (t Table) Normalize(raw string) string {
	if label, ok := t[strings.TrimSpace(raw)]; ok {
		return label
	}
	return Normalize(raw)
}

// titleCase upper-cases the first letter of every word and lower-cases the
// rest, where a word starts after any non-letter.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) && !prevLetter:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsLetter(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prevLetter = unicode.IsLetter(r)
	}
	return b.String()
}
