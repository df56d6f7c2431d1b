package analysis

import "gonum.org/v1/gonum/stat"

// Calibration constants for the session scores.
const (
	NeutralScore = 70.0

	// strike: 1.35 smash ≈ 70, 1.45 ≈ 100
	strikeBaseline      = 70.0
	strikeSmashBaseline = 1.35
	strikeSmashWeight   = 300.0

	// face control: 0° ≈ 100, 4° ≈ 60
	faceToPathWeight = 10.0

	// distance control: 0 std ≈ 100, 10 std ≈ 60
	carryStdWeight = 4.0

	// dispersion: 0 std ≈ 100, 15 std ≈ 60
	offlineStdWeight = 2.67

	maxScore = 100.0
	minScore = 0.0
)

// StrikeScore rates the mean smash factor.
func StrikeScore(smash []float64) float64 {
	if len(smash) == 0 {
		return NeutralScore
	}
	return clamp(strikeBaseline + (stat.Mean(smash, nil)-strikeSmashBaseline)*strikeSmashWeight)
}

// FaceControlScore rates the mean absolute face-to-path.
func FaceControlScore(faceToPath []float64) float64 {
	if len(faceToPath) == 0 {
		return NeutralScore
	}
	return clamp(maxScore - stat.Mean(abs(faceToPath), nil)*faceToPathWeight)
}

// DistanceControlScore rates the mean of the per-club carry deviations.
func DistanceControlScore(carryStds []float64) float64 {
	if len(carryStds) == 0 {
		return NeutralScore
	}
	return clamp(maxScore - stat.Mean(carryStds, nil)*carryStdWeight)
}

// DispersionScore rates the mean of the per-club offline deviations.
func DispersionScore(offlineStds []float64) float64 {
	if len(offlineStds) == 0 {
		return NeutralScore
	}
	return clamp(maxScore - stat.Mean(offlineStds, nil)*offlineStdWeight)
}

func clamp(v float64) float64 {
	if v > maxScore {
		return maxScore
	}
	if v < minScore {
		return minScore
	}
	return v
}
