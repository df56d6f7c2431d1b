// Package coach turns a session analysis into coaching text: the five-part
// session report and the conversational coach with its provider fallback
// chain.
package coach

import (
	"fmt"
	"strings"

	"github.com/stitts-dev/strikelab/internal/analysis"
)

// ScoreThreshold is the score below which a report calls a metric out.
const ScoreThreshold = 75.0

// Report is the five-section coaching report for one session.
type Report struct {
	Diagnosis      string `json:"diagnosis"`
	Interpretation string `json:"interpretation"`
	Prescription   string `json:"prescription"`
	Validation     string `json:"validation"`
	NextBestMove   string `json:"next_best_move"`
	Language       string `json:"language"`
}

// SubjectiveLog carries the player's own notes on a session that the report
// correlates with the numbers.
type SubjectiveLog struct {
	EnergyLevel *int
	FeelTags    []string
}

func (l *SubjectiveLog) lowEnergy() bool {
	return l != nil && l.EnergyLevel != nil && *l.EnergyLevel > 0 && *l.EnergyLevel <= 2
}

func (l *SubjectiveLog) hasTag(tag string) bool {
	if l == nil {
		return false
	}
	for _, t := range l.FeelTags {
		if strings.EqualFold(strings.TrimSpace(t), tag) {
			return true
		}
	}
	return false
}

// BuildReport selects report text from the analysis scores and the optional
// subjective log. The output depends only on its inputs. Unknown languages
// fall back to DefaultLanguage.
func BuildReport(a analysis.SessionAnalysis, log *SubjectiveLog, lang string) Report {
	lang = ResolveLanguage(lang)
	t := reportLanguages[lang]

	return Report{
		Diagnosis:      diagnosis(t, a),
		Interpretation: interpretation(t, log),
		Prescription:   prescription(t, a),
		Validation:     t.validation,
		NextBestMove:   t.next,
		Language:       lang,
	}
}

func diagnosis(t reportTemplates, a analysis.SessionAnalysis) string {
	if a.ShotCount == 0 {
		return t.insufficient
	}

	parts := []string{fmt.Sprintf(t.summary, a.ValidShotCount, len(a.ClubsUsed))}

	strike := analysis.Score(a.StrikeScore)
	face := analysis.Score(a.FaceControlScore)
	distance := analysis.Score(a.DistanceControlScore)
	dispersion := analysis.Score(a.DispersionScore)

	if strike < ScoreThreshold {
		parts = append(parts, fmt.Sprintf(t.strike, strike))
	}
	if face < ScoreThreshold {
		parts = append(parts, fmt.Sprintf(t.face, face))
	}
	if distance < ScoreThreshold {
		parts = append(parts, fmt.Sprintf(t.distance, distance))
	}
	if dispersion < ScoreThreshold {
		parts = append(parts, fmt.Sprintf(t.dispersion, dispersion))
	}
	if len(parts) == 1 {
		parts = append(parts, t.solid)
	}
	return strings.Join(parts, " ")
}

func interpretation(t reportTemplates, log *SubjectiveLog) string {
	var parts []string
	if t.interpretationPrefix != "" {
		parts = append(parts, t.interpretationPrefix)
	}

	found := false
	if log.lowEnergy() {
		parts = append(parts, t.lowEnergy)
		found = true
	}
	if log.hasTag("stress") {
		parts = append(parts, t.stress)
		found = true
	}
	if log.hasTag("late") {
		parts = append(parts, t.late)
		found = true
	}
	if !found {
		parts = append(parts, t.keepLogging)
	}
	return strings.Join(parts, " ")
}

func prescription(t reportTemplates, a analysis.SessionAnalysis) string {
	var parts []string
	if analysis.Score(a.StrikeScore) < ScoreThreshold {
		parts = append(parts, t.strikeDrill)
	}
	if analysis.Score(a.FaceControlScore) < ScoreThreshold {
		parts = append(parts, t.faceConstraint)
	}
	if len(parts) == 0 {
		parts = append(parts, t.maintain)
	}
	return strings.Join(parts, " ")
}
