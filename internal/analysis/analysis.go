// Package analysis computes per-club statistics and the four session scores
// from canonical shots. Everything here is pure: no I/O, no shared state.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/stitts-dev/strikelab/internal/shots"
)

// ClubMetrics aggregates the valid shots hit with one club. A nil field means
// no shot carried that measurement (or, for the std fields, fewer than two).
type ClubMetrics struct {
	Count         int      `json:"count"`
	AvgCarry      *float64 `json:"avg_carry"`
	CarryStd      *float64 `json:"carry_std"`
	AvgSmash      *float64 `json:"avg_smash"`
	AvgFaceToPath *float64 `json:"avg_face_to_path"`
	FaceToPathStd *float64 `json:"face_to_path_std"`
	AvgSpinAxis   *float64 `json:"avg_spin_axis"`
	AvgOffline    *float64 `json:"avg_offline"`
	OfflineStd    *float64 `json:"offline_std"`
}

// SessionAnalysis is recomputed on every call. When a session has no valid
// shots only the counts are set.
type SessionAnalysis struct {
	ShotCount      int `json:"shot_count"`
	ValidShotCount int `json:"valid_shot_count"`
	MishitCount    int `json:"mishit_count"`

	ClubsUsed   []string               `json:"clubs_used,omitempty"`
	ClubMetrics map[string]ClubMetrics `json:"club_metrics,omitempty"`

	StrikeScore          *float64 `json:"strike_score,omitempty"`
	FaceControlScore     *float64 `json:"face_control_score,omitempty"`
	DistanceControlScore *float64 `json:"distance_control_score,omitempty"`
	DispersionScore      *float64 `json:"dispersion_score,omitempty"`
}

// HasScores reports whether the scores were computed.
func (a SessionAnalysis) HasScores() bool {
	return a.StrikeScore != nil
}

// Score returns a score value, or NeutralScore when it is absent.
func Score(v *float64) float64 {
	if v == nil {
		return NeutralScore
	}
	return *v
}

// Analyze partitions shots into valid and mishit, aggregates the valid ones
// per club and derives the four scores.
func Analyze(list []shots.Shot) SessionAnalysis {
	var result SessionAnalysis
	result.ShotCount = len(list)

	groups := make(map[string][]shots.Shot)
	var order []string
	for _, s := range list {
		if s.IsMishit {
			result.MishitCount++
			continue
		}
		result.ValidShotCount++
		if _, ok := groups[s.Club]; !ok {
			order = append(order, s.Club)
		}
		groups[s.Club] = append(groups[s.Club], s)
	}
	if result.ValidShotCount == 0 {
		return result
	}

	var (
		smash      []float64
		faceToPath []float64
		carryStds  []float64
		offStds    []float64
	)

	result.ClubsUsed = order
	result.ClubMetrics = make(map[string]ClubMetrics, len(order))
	for _, club := range order {
		group := groups[club]
		carries := collect(group, func(s shots.Shot) *float64 { return s.CarryDistance })
		smashes := collect(group, func(s shots.Shot) *float64 { return s.SmashFactor })
		ftps := collect(group, func(s shots.Shot) *float64 { return s.FaceToPath })
		axes := collect(group, func(s shots.Shot) *float64 { return s.SpinAxis })
		offline := collect(group, func(s shots.Shot) *float64 { return s.OfflineDistance })

		m := ClubMetrics{
			Count:         len(group),
			AvgCarry:      mean(carries),
			CarryStd:      sampleStd(carries),
			AvgSmash:      mean(smashes),
			AvgFaceToPath: mean(ftps),
			FaceToPathStd: sampleStd(ftps),
			AvgSpinAxis:   mean(axes),
			AvgOffline:    mean(offline),
			OfflineStd:    sampleStd(offline),
		}
		result.ClubMetrics[club] = m

		smash = append(smash, smashes...)
		faceToPath = append(faceToPath, ftps...)
		if m.CarryStd != nil {
			carryStds = append(carryStds, *m.CarryStd)
		}
		if m.OfflineStd != nil {
			offStds = append(offStds, *m.OfflineStd)
		}
	}

	result.StrikeScore = ptr(StrikeScore(smash))
	result.FaceControlScore = ptr(FaceControlScore(faceToPath))
	result.DistanceControlScore = ptr(DistanceControlScore(carryStds))
	result.DispersionScore = ptr(DispersionScore(offStds))
	return result
}

func collect(group []shots.Shot, field func(shots.Shot) *float64) []float64 {
	out := make([]float64, 0, len(group))
	for _, s := range group {
		if v := field(s); v != nil {
			out = append(out, *v)
		}
	}
	return out
}

func mean(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}
	return ptr(stat.Mean(xs, nil))
}

// sampleStd is the n-1 standard deviation; it needs two observations.
func sampleStd(xs []float64) *float64 {
	if len(xs) < 2 {
		return nil
	}
	return ptr(stat.StdDev(xs, nil))
}

func ptr(v float64) *float64 {
	return &v
}

func abs(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = math.Abs(x)
	}
	return out
}
