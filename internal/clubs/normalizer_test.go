package clubs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"iron shorthand", "7i", "7 Iron"},
		{"hyphenated iron", "7-iron", "7 Iron"},
		{"upper case iron", "7 IRON", "7 Iron"},
		{"padded iron", "  7i  ", "7 Iron"},
		{"driver code", "DR", "Driver"},
		{"driver word", "Driver", "Driver"},
		{"wood shorthand", "3w", "3 Wood"},
		{"hybrid", "4-Hybrid", "4 Hybrid"},
		{"pitching wedge", "Pitching Wedge", "PW"},
		{"approach wedge maps to gap", "AW", "GW"},
		{"degree wedge bare", "52", "52 Wedge"},
		{"degree wedge word", "52 degree", "52 Wedge"},
		{"degree wedge symbol", "52°", "52 Wedge"},
		{"putter", "PT", "Putter"},
		{"empty", "", "Unknown"},
		{"whitespace only", "   ", "Unknown"},
		{"unknown title cased", "mini driver", "Mini Driver"},
		{"unknown trimmed", "  chipper ", "Chipper"},
		{"unknown mixed case", "tOUR edge", "Tour Edge"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.raw))
		})
	}
}

func TestNormalizeIsStableAcrossSpellings(t *testing.T) {
	for _, n := range []string{"3", "4", "5", "6", "7", "8", "9"} {
		want := n + " Iron"
		for _, raw := range []string{n + "i", n + "I", n + "-iron", n + " iron", n + " IRON", n + "-Iron"} {
			assert.Equal(t, want, Normalize(raw), "raw %q", raw)
		}
	}
}

func TestTableConsultedBeforeAliases(t *testing.T) {
	table := Table{
		"DR": "Driver",
		"PT": "Putter",
		"D":  "Custom Driver",
	}

	assert.Equal(t, "Driver", table.Normalize("DR"))
	assert.Equal(t, "Custom Driver", table.Normalize("D"))
	// "d" is not in the vendor table, so the shared alias wins
	assert.Equal(t, "Driver", table.Normalize("d"))
	assert.Equal(t, "7 Iron", table.Normalize("7i"))
	assert.Equal(t, "Unknown", table.Normalize(""))
}
