package recovery

import (
	"time"

	"github.com/paceline/paceline/internal/training/activity"
)

type Status string

const (
	StatusReady    Status = "ready"
	StatusModerate Status = "moderate"
	StatusLow      Status = "low"
)

const (
	minScore = 20
	maxScore = 100

	hardSessionZonePct = 25.0
)

// Factors is the breakdown of what went into a recovery score.
type Factors struct {
	DaysSinceLast      int     `json:"daysSinceLast"`
	LoadRatio          float64 `json:"loadRatio"`
	HardSessionCount   int     `json:"hardSessionCount"`
	UniqueTrainingDays int     `json:"uniqueTrainingDays"`
	DoubleSessionDays  bool    `json:"doubleSessionDays"`
}

// Score is a directional readiness heuristic, not a medical
// measurement; it never goes below 20.
type Score struct {
	Score   int     `json:"score"`
	Status  Status  `json:"status"`
	Factors Factors `json:"factors"`
}

// Compute scores current fatigue/readiness from the last 14 days of
// activities. Pure function of its inputs; calling it twice on the
// same history yields identical output.
func Compute(history []activity.Activity, now time.Time) Score {
	f := factors(history, now)

	score := 100

	switch {
	case f.DaysSinceLast == 0:
		score -= 25
	case f.DaysSinceLast == 1:
		score -= 15
	case f.DaysSinceLast >= 3:
		score += 5
	}

	switch {
	case f.LoadRatio > 1.3:
		score -= 20
	case f.LoadRatio > 1.15:
		score -= 10
	case f.LoadRatio < 0.7:
		score += 10
	}

	score -= 15 * f.HardSessionCount

	if f.DoubleSessionDays {
		score -= 10
	}

	if score > maxScore {
		score = maxScore
	}
	if score < minScore {
		score = minScore
	}

	status := StatusLow
	switch {
	case score >= 75:
		status = StatusReady
	case score >= 50:
		status = StatusModerate
	}

	return Score{
		Score:   score,
		Status:  status,
		Factors: f,
	}
}

func factors(history []activity.Activity, now time.Time) Factors {
	f := Factors{
		DaysSinceLast: 7,
		LoadRatio:     1.0,
	}

	var last7Distance, prior7Distance float64
	var last7Sessions int
	uniqueDays := map[string]bool{}
	closestDay := -1
	for _, a := range activity.Valid(history) {
		dayAge := daysBetween(a.Date, now)
		if dayAge < 0 {
			continue
		}

		switch {
		case dayAge <= 6:
			last7Distance += a.DistanceKm
			last7Sessions++
			day := a.Date.Format("2006-01-02")
			uniqueDays[day] = true
			if closestDay == -1 || dayAge < closestDay {
				closestDay = dayAge
			}
		case dayAge <= 13:
			prior7Distance += a.DistanceKm
		}

		if dayAge <= 2 && a.Zones != nil && a.Zones.Z4+a.Zones.Z5 >= hardSessionZonePct {
			f.HardSessionCount++
		}
	}

	if closestDay >= 0 {
		f.DaysSinceLast = closestDay
	}

	// an unexplained jump from zero prior volume counts as a load
	// spike, not as a null
	switch {
	case prior7Distance > 0:
		f.LoadRatio = last7Distance / prior7Distance
	case last7Distance > 0:
		f.LoadRatio = 1.5
	}

	f.UniqueTrainingDays = len(uniqueDays)
	f.DoubleSessionDays = last7Sessions > len(uniqueDays)

	return f
}

// daysBetween counts whole calendar days from a to b.
func daysBetween(a, b time.Time) int {
	aDay := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bDay := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bDay.Sub(aDay).Hours() / 24)
}
