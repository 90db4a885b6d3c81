package vma

import (
	"math"

	"github.com/paceline/paceline/internal/training/activity"
)

type Method string

const (
	MethodRacePerformance Method = "race-performance"
	MethodZ5Effort        Method = "z5-effort"
	MethodZ4Extrapolation Method = "z4-extrapolation"
)

type Confidence string

const (
	ConfidenceHigh         Confidence = "high"
	ConfidenceMedium       Confidence = "medium"
	ConfidenceLow          Confidence = "low"
	ConfidenceInsufficient Confidence = "insufficient"
)

type Reason string

const (
	ReasonNeedMoreWorkouts  Reason = "need_more_workouts"
	ReasonNeedHighIntensity Reason = "need_high_intensity"
)

const (
	// minimum zone-bearing runs before training-data inference is attempted
	minZoneRuns = 3

	minZ5EffortMin = 2.0
	minZ4EffortMin = 5.0
	minZ5Efforts   = 2
	minZ4Efforts   = 3

	// z4 runs at roughly 85-90% of VMA
	z4VMAFraction = 0.87

	vo2maxPerVMA = 3.5

	z4Caveat = "estimated from sustained zone 4 efforts, treat as a rough lower-bound"
)

// racePctOfVMA maps race distance (km) to the share of VMA an athlete
// can sustain over it. Nearest distance wins.
var racePctOfVMA = []struct {
	distanceKm float64
	pct        float64
}{
	{5, 0.95},
	{10, 0.90},
	{21.0975, 0.85},
	{42.195, 0.80},
}

// TrainingZone is a VMA-derived intensity band with its pace range.
// FromPaceMinKm is the faster end of the band.
type TrainingZone struct {
	Zone          int     `json:"zone"`
	MinPctVMA     float64 `json:"minPctVma"`
	MaxPctVMA     float64 `json:"maxPctVma"`
	FromPaceMinKm float64 `json:"fromPaceMinKm"`
	ToPaceMinKm   float64 `json:"toPaceMinKm"`
}

// Estimate is the result of one aerobic capacity estimation. When
// HasSufficientData is false only Reason and Confidence are set.
type Estimate struct {
	HasSufficientData bool           `json:"hasSufficientData"`
	Reason            Reason         `json:"reason,omitempty"`
	Method            Method         `json:"method,omitempty"`
	Confidence        Confidence     `json:"confidence"`
	VMAKmh            float64        `json:"vmaKmh,omitempty"`
	VO2Max            float64        `json:"vo2max,omitempty"`
	Caveat            string         `json:"caveat,omitempty"`
	Zones             []TrainingZone `json:"zones,omitempty"`
}

// Compute estimates VMA (maximal aerobic speed) and a VO2max proxy.
// A race goal with a target time takes priority; otherwise the
// estimate is inferred from sustained high-zone training efforts.
func Compute(history []activity.Activity, goal *activity.Goal) Estimate {
	if goal != nil && goal.DistanceKm > 0 && goal.TargetTimeMin > 0 {
		return fromRacePerformance(*goal)
	}
	return fromTrainingData(history)
}

func fromRacePerformance(goal activity.Goal) Estimate {
	paceMinKm := goal.TargetTimeMin / goal.DistanceKm
	speedKmh := 60 / paceMinKm

	pct := racePctOfVMA[0].pct
	bestDiff := math.Abs(goal.DistanceKm - racePctOfVMA[0].distanceKm)
	for _, entry := range racePctOfVMA[1:] {
		diff := math.Abs(goal.DistanceKm - entry.distanceKm)
		if diff < bestDiff {
			bestDiff = diff
			pct = entry.pct
		}
	}

	vma := speedKmh / pct

	confidence := ConfidenceMedium
	if goal.DistanceKm >= 5 {
		confidence = ConfidenceHigh
	}

	return estimate(MethodRacePerformance, confidence, vma, "")
}

func fromTrainingData(history []activity.Activity) Estimate {
	var zoneRuns []activity.Activity
	for _, a := range activity.Valid(history) {
		if a.Type != activity.TypeRun || a.Zones == nil {
			continue
		}
		zoneRuns = append(zoneRuns, a)
	}

	if len(zoneRuns) < minZoneRuns {
		return Estimate{
			Confidence: ConfidenceInsufficient,
			Reason:     ReasonNeedMoreWorkouts,
		}
	}

	var z5Paces, z4Paces []float64
	for _, a := range zoneRuns {
		z5Min := a.Zones.Z5 / 100 * a.DurationMin
		if z5Min >= minZ5EffortMin && a.BestPaceMinKm != nil && *a.BestPaceMinKm > 0 {
			z5Paces = append(z5Paces, *a.BestPaceMinKm)
		}

		z4Min := a.Zones.Z4 / 100 * a.DurationMin
		if z4Min >= minZ4EffortMin {
			if pace := avgPace(a); pace != nil {
				z4Paces = append(z4Paces, *pace)
			}
		}
	}

	if len(z5Paces) >= minZ5Efforts {
		vma := 60 / mean(z5Paces)
		return estimate(MethodZ5Effort, ConfidenceMedium, vma, "")
	}

	if len(z4Paces) >= minZ4Efforts {
		vma := (60 / mean(z4Paces)) / z4VMAFraction
		return estimate(MethodZ4Extrapolation, ConfidenceLow, vma, z4Caveat)
	}

	return Estimate{
		Confidence: ConfidenceInsufficient,
		Reason:     ReasonNeedHighIntensity,
	}
}

func estimate(method Method, confidence Confidence, vma float64, caveat string) Estimate {
	return Estimate{
		HasSufficientData: true,
		Method:            method,
		Confidence:        confidence,
		VMAKmh:            round2(vma),
		VO2Max:            round2(vma * vo2maxPerVMA),
		Caveat:            caveat,
		Zones:             TrainingZones(vma),
	}
}

// TrainingZones derives the pace bands for each intensity zone as
// percentages of VMA speed, converted back to pace via 60/speed.
func TrainingZones(vmaKmh float64) []TrainingZone {
	if vmaKmh <= 0 {
		return nil
	}

	bands := []struct{ minPct, maxPct float64 }{
		{60, 65},
		{65, 75},
		{75, 85},
		{85, 95},
		{95, 105},
	}

	zones := make([]TrainingZone, 0, len(bands))
	for i, band := range bands {
		zones = append(zones, TrainingZone{
			Zone:      i + 1,
			MinPctVMA: band.minPct,
			MaxPctVMA: band.maxPct,
			// faster end of the band comes from the higher speed
			FromPaceMinKm: round2(60 / (vmaKmh * band.maxPct / 100)),
			ToPaceMinKm:   round2(60 / (vmaKmh * band.minPct / 100)),
		})
	}
	return zones
}

func avgPace(a activity.Activity) *float64 {
	if a.PaceMinKm != nil {
		return a.PaceMinKm
	}
	if a.DistanceKm <= 0 || a.DurationMin <= 0 {
		return nil
	}
	pace := a.DurationMin / a.DistanceKm
	return &pace
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
