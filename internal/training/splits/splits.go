package splits

import (
	"math"

	"github.com/paceline/paceline/internal/training/activity"
	"github.com/paceline/paceline/internal/training/normalize"
)

type Source string

const (
	SourceKm  Source = "km"
	SourceLap Source = "lap"
)

// countTolerance is how far a split count may stray from the expected
// per-km count before the data is considered inconsistent. Empirical
// policy, kept as given.
const countTolerance = 2

// Analysis is the per-unit consistency breakdown of one session.
// Lower pace values are faster; NegativeSplit true means the athlete
// sped up over the session.
type Analysis struct {
	Source Source           `json:"source"`
	Splits []activity.Split `json:"splits"`

	FastestPaceMinKm float64 `json:"fastestPaceMinKm"`
	FastestUnit      int     `json:"fastestUnit"`
	SlowestPaceMinKm float64 `json:"slowestPaceMinKm"`
	SlowestUnit      int     `json:"slowestUnit"`

	PaceDropMinKm    float64 `json:"paceDropMinKm"`
	ConsistencyScore float64 `json:"consistencyScore"`
	NegativeSplit    bool    `json:"negativeSplit"`
}

// ExpectedKmCount is the number of per-km splits a session of the
// given distance should produce: one per full kilometer, plus one for
// a trailing remainder longer than 0.3 km.
func ExpectedKmCount(distanceKm float64) int {
	if distanceKm <= 0 {
		return 0
	}
	count := int(math.Floor(distanceKm))
	if distanceKm-math.Floor(distanceKm) > 0.3 {
		count++
	}
	return count
}

// Select picks the split sequence to analyze: km-derived splits when
// their count is within the tolerance of the expected count, recorded
// laps as a fallback under the same rule, otherwise nothing. No
// sequence means no analysis, never a guess.
func Select(kmSplits, laps []activity.Split, distanceKm float64) ([]activity.Split, Source) {
	expected := ExpectedKmCount(distanceKm)
	if expected == 0 {
		return nil, ""
	}

	if len(kmSplits) > 0 && withinTolerance(len(kmSplits), expected) {
		return kmSplits, SourceKm
	}
	if len(laps) > 0 && withinTolerance(len(laps), expected) {
		return laps, SourceLap
	}
	return nil, ""
}

// Analyze reduces an ordered split sequence to its consistency
// aggregates. Returns nil for an empty sequence.
func Analyze(seq []activity.Split, source Source) *Analysis {
	if len(seq) == 0 {
		return nil
	}

	a := &Analysis{
		Source:           source,
		Splits:           seq,
		FastestPaceMinKm: seq[0].PaceMinKm,
		FastestUnit:      seq[0].Unit,
		SlowestPaceMinKm: seq[0].PaceMinKm,
		SlowestUnit:      seq[0].Unit,
	}

	for _, s := range seq[1:] {
		if s.PaceMinKm < a.FastestPaceMinKm {
			a.FastestPaceMinKm = s.PaceMinKm
			a.FastestUnit = s.Unit
		}
		if s.PaceMinKm > a.SlowestPaceMinKm {
			a.SlowestPaceMinKm = s.PaceMinKm
			a.SlowestUnit = s.Unit
		}
	}

	a.PaceDropMinKm = round2(a.SlowestPaceMinKm - a.FastestPaceMinKm)
	a.ConsistencyScore = math.Max(0, round1(100-a.PaceDropMinKm*10))
	a.NegativeSplit = seq[len(seq)-1].PaceMinKm < seq[0].PaceMinKm

	return a
}

// ForActivity derives km splits from the activity's raw track, applies
// the selection rule against recorded laps, and analyzes the winner.
func ForActivity(a activity.Activity) *Analysis {
	kmSplits := normalize.KmSplits(a.Track)
	seq, source := Select(kmSplits, a.Laps, a.DistanceKm)
	return Analyze(seq, source)
}

func withinTolerance(count, expected int) bool {
	diff := count - expected
	if diff < 0 {
		diff = -diff
	}
	return diff <= countTolerance
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
