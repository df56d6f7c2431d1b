package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/strikelab/internal/shots"
)

func shot(club string, mutate func(*shots.Shot)) shots.Shot {
	s := shots.Shot{Club: club}
	if mutate != nil {
		mutate(&s)
	}
	return s
}

func TestAnalyzeEmpty(t *testing.T) {
	a := Analyze(nil)

	assert.Equal(t, 0, a.ShotCount)
	assert.False(t, a.HasScores())
	assert.Nil(t, a.StrikeScore)
	assert.Nil(t, a.FaceControlScore)
	assert.Nil(t, a.DistanceControlScore)
	assert.Nil(t, a.DispersionScore)
	assert.Empty(t, a.ClubMetrics)
}

func TestAnalyzeAllMishits(t *testing.T) {
	list := []shots.Shot{
		shot("7 Iron", func(s *shots.Shot) { s.IsMishit = true }),
		shot("7 Iron", func(s *shots.Shot) { s.IsMishit = true }),
		shot("Driver", func(s *shots.Shot) { s.IsMishit = true }),
	}

	a := Analyze(list)
	assert.Equal(t, 3, a.ShotCount)
	assert.Equal(t, 0, a.ValidShotCount)
	assert.Equal(t, 3, a.MishitCount)
	assert.Nil(t, a.ClubMetrics)
	assert.Nil(t, a.ClubsUsed)
	assert.False(t, a.HasScores())
}

func TestStrikeScoreExample(t *testing.T) {
	var list []shots.Shot
	for i := 0; i < 5; i++ {
		list = append(list, shot("7 Iron", func(s *shots.Shot) { s.SmashFactor = shots.Float(1.42) }))
	}

	a := Analyze(list)
	require.NotNil(t, a.StrikeScore)
	assert.InDelta(t, 91.0, *a.StrikeScore, 1e-9)
}

func TestDistanceControlExample(t *testing.T) {
	var list []shots.Shot
	for _, c := range []float64{245, 251, 238, 248, 243} {
		list = append(list, shot("Driver", func(s *shots.Shot) { s.CarryDistance = shots.Float(c) }))
	}

	a := Analyze(list)
	m := a.ClubMetrics["Driver"]
	require.NotNil(t, m.CarryStd)
	assert.InDelta(t, 4.95, *m.CarryStd, 0.01)
	assert.InDelta(t, 245.0, *m.AvgCarry, 1e-9)
	assert.InDelta(t, 80.0, *a.DistanceControlScore, 0.5)
}

func TestAnalyzePerClubMetrics(t *testing.T) {
	list := []shots.Shot{
		shot("7 Iron", func(s *shots.Shot) {
			s.CarryDistance = shots.Float(160)
			s.FaceToPath = shots.Float(-2)
			s.OfflineDistance = shots.Float(4)
			s.SpinAxis = shots.Float(1)
		}),
		shot("Driver", func(s *shots.Shot) { s.CarryDistance = shots.Float(240) }),
		shot("7 Iron", func(s *shots.Shot) {
			s.CarryDistance = shots.Float(170)
			s.FaceToPath = shots.Float(2)
			s.OfflineDistance = shots.Float(-4)
		}),
		shot("7 Iron", func(s *shots.Shot) {
			s.IsMishit = true
			s.CarryDistance = shots.Float(90)
		}),
	}

	a := Analyze(list)
	assert.Equal(t, 4, a.ShotCount)
	assert.Equal(t, 3, a.ValidShotCount)
	assert.Equal(t, 1, a.MishitCount)
	assert.Equal(t, []string{"7 Iron", "Driver"}, a.ClubsUsed)

	iron := a.ClubMetrics["7 Iron"]
	assert.Equal(t, 2, iron.Count)
	assert.InDelta(t, 165.0, *iron.AvgCarry, 1e-9)
	assert.InDelta(t, 7.0711, *iron.CarryStd, 1e-3)
	assert.InDelta(t, 0.0, *iron.AvgFaceToPath, 1e-9)
	assert.InDelta(t, 1.0, *iron.AvgSpinAxis, 1e-9)
	assert.InDelta(t, 5.6569, *iron.OfflineStd, 1e-3)
	assert.Nil(t, iron.AvgSmash)

	driver := a.ClubMetrics["Driver"]
	assert.Equal(t, 1, driver.Count)
	assert.InDelta(t, 240.0, *driver.AvgCarry, 1e-9)
	assert.Nil(t, driver.CarryStd, "one observation has no deviation")

	assert.Equal(t, NeutralScore, *a.StrikeScore, "no smash readings")
	assert.InDelta(t, 80.0, *a.FaceControlScore, 1e-9)
	// only the iron contributes a carry deviation
	assert.InDelta(t, 100-7.0711*4, *a.DistanceControlScore, 1e-2)
}

func TestAnalyzeZeroIsAReading(t *testing.T) {
	list := []shots.Shot{
		shot("PW", func(s *shots.Shot) { s.FaceToPath = shots.Float(0) }),
		shot("PW", func(s *shots.Shot) { s.FaceToPath = shots.Float(4) }),
	}

	a := Analyze(list)
	assert.InDelta(t, 2.0, *a.ClubMetrics["PW"].AvgFaceToPath, 1e-9)
	assert.InDelta(t, 80.0, *a.FaceControlScore, 1e-9)
}

func TestFaceControlMonotonic(t *testing.T) {
	prev := FaceControlScore([]float64{0})
	for _, ftp := range []float64{0.5, 1, 2, 4, 8} {
		score := FaceControlScore([]float64{ftp, -ftp})
		assert.Less(t, score, prev, "ftp %v", ftp)
		prev = score
	}
	assert.Equal(t, 0.0, FaceControlScore([]float64{12}))
}

func TestScoresStayInBounds(t *testing.T) {
	extremes := [][]float64{{-1000}, {0}, {1.35}, {3}, {1000}, {1e9}}
	for _, xs := range extremes {
		for name, fn := range map[string]func([]float64) float64{
			"strike":     StrikeScore,
			"face":       FaceControlScore,
			"distance":   DistanceControlScore,
			"dispersion": DispersionScore,
		} {
			v := fn(xs)
			assert.GreaterOrEqual(t, v, 0.0, "%s %v", name, xs)
			assert.LessOrEqual(t, v, 100.0, "%s %v", name, xs)
		}
	}
}

func TestScoresNeutralWhenEmpty(t *testing.T) {
	assert.Equal(t, 70.0, StrikeScore(nil))
	assert.Equal(t, 70.0, FaceControlScore(nil))
	assert.Equal(t, 70.0, DistanceControlScore(nil))
	assert.Equal(t, 70.0, DispersionScore(nil))
	assert.Equal(t, 70.0, Score(nil))
}

func TestDispersionScore(t *testing.T) {
	assert.InDelta(t, 100-15*2.67, DispersionScore([]float64{15}), 1e-9)
	assert.InDelta(t, 100-10*2.67, DispersionScore([]float64{5, 15}), 1e-9)
}
