package coach

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	maxContextSessions = 3
	noSessionContext   = "No session data available yet."
)

// ChatContext is the player data a chat request may carry.
type ChatContext struct {
	RecentSessions []RecentSession `json:"recent_sessions,omitempty"`
	Handicap       *float64        `json:"handicap,omitempty"`
}

// RecentSession summarizes one practice session for the provider prompt.
type RecentSession struct {
	Name      string       `json:"name"`
	Date      string       `json:"date"`
	ShotCount int          `json:"shot_count"`
	Stats     SessionStats `json:"stats"`
}

type SessionStats struct {
	StrikeScore      *float64 `json:"strike_score,omitempty"`
	FaceControlScore *float64 `json:"face_control_score,omitempty"`
}

// BuildContext renders the player context handed to external providers.
func BuildContext(c *ChatContext) string {
	if c == nil {
		return noSessionContext
	}

	var lines []string
	if len(c.RecentSessions) > 0 {
		lines = append(lines, "Recent practice sessions:")
		for i, s := range c.RecentSessions {
			if i == maxContextSessions {
				break
			}
			name := s.Name
			if name == "" {
				name = "Session"
			}
			date := s.Date
			if date == "" {
				date = "N/A"
			}
			lines = append(lines, fmt.Sprintf("- %s (%s): %d shots, Strike: %s, Face Control: %s",
				name, date, s.ShotCount, formatStat(s.Stats.StrikeScore), formatStat(s.Stats.FaceControlScore)))
		}
	}
	if c.Handicap != nil {
		lines = append(lines, "Current handicap: "+strconv.FormatFloat(*c.Handicap, 'f', -1, 64))
	}

	if len(lines) == 0 {
		return noSessionContext
	}
	return strings.Join(lines, "\n")
}

func formatStat(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}
