package signals

import (
	"math"
	"time"

	"github.com/paceline/paceline/internal/training/activity"
)

type Load string

const (
	LoadLow      Load = "low"
	LoadBalanced Load = "balanced"
	LoadHigh     Load = "high"
)

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

type Intensity string

const (
	IntensityEasy     Intensity = "easy"
	IntensityHard     Intensity = "hard"
	IntensityBalanced Intensity = "balanced"
)

type Consistency string

const (
	ConsistencyHigh     Consistency = "high"
	ConsistencyModerate Consistency = "moderate"
	ConsistencyLow      Consistency = "low"
)

// WeekSignals reduces the last 7 days to categorical signals consumed
// by the text renderer. Intensity stays empty when no activity in the
// week carries zone data.
type WeekSignals struct {
	TotalDistanceKm float64     `json:"totalDistanceKm"`
	SessionCount    int         `json:"sessionCount"`
	UniqueDays      int         `json:"uniqueDays"`
	Load            Load        `json:"load"`
	Intensity       Intensity   `json:"intensity,omitempty"`
	Consistency     Consistency `json:"consistency"`
}

// MonthSignals compares the last 30 days against the 30 before them.
type MonthSignals struct {
	TotalDistanceKm float64  `json:"totalDistanceKm"`
	PriorDistanceKm float64  `json:"priorDistanceKm"`
	DeltaPct        *float64 `json:"deltaPct,omitempty"`
	Trend           Trend    `json:"trend"`
}

// Week aggregates the last 7 days of activities into load, intensity
// and consistency signals.
func Week(history []activity.Activity, now time.Time) WeekSignals {
	var totalDistance float64
	var sessions int
	var zoneSum activity.ZoneDistribution
	var zoneCount float64
	uniqueDays := map[string]bool{}

	weekStart := now.AddDate(0, 0, -7)
	for _, a := range activity.Valid(history) {
		if a.Date.Before(weekStart) || a.Date.After(now) {
			continue
		}
		totalDistance += a.DistanceKm
		sessions++
		uniqueDays[a.Date.Format("2006-01-02")] = true
		if a.Zones != nil {
			zoneSum.Z1 += a.Zones.Z1
			zoneSum.Z2 += a.Zones.Z2
			zoneSum.Z4 += a.Zones.Z4
			zoneSum.Z5 += a.Zones.Z5
			zoneCount++
		}
	}

	s := WeekSignals{
		TotalDistanceKm: round1(totalDistance),
		SessionCount:    sessions,
		UniqueDays:      len(uniqueDays),
	}

	// boundary volumes go to the higher band
	switch {
	case totalDistance >= 80:
		s.Load = LoadHigh
	case totalDistance >= 40:
		s.Load = LoadBalanced
	default:
		s.Load = LoadLow
	}

	if zoneCount > 0 {
		lowPct := (zoneSum.Z1 + zoneSum.Z2) / zoneCount
		highPct := (zoneSum.Z4 + zoneSum.Z5) / zoneCount
		switch {
		case lowPct >= 70:
			s.Intensity = IntensityEasy
		case highPct >= 30:
			s.Intensity = IntensityHard
		default:
			s.Intensity = IntensityBalanced
		}
	}

	daysShare := float64(len(uniqueDays)) / 7
	switch {
	case daysShare >= 0.6:
		s.Consistency = ConsistencyHigh
	case daysShare >= 0.3:
		s.Consistency = ConsistencyModerate
	default:
		s.Consistency = ConsistencyLow
	}

	return s
}

// Month classifies the volume trend of the last 30 days against the
// prior 30-day window. With no prior volume to compare against, any
// current volume reads as an upward trend.
func Month(history []activity.Activity, now time.Time) MonthSignals {
	monthStart := now.AddDate(0, 0, -30)
	priorStart := now.AddDate(0, 0, -60)

	var current, prior float64
	for _, a := range activity.Valid(history) {
		switch {
		case a.Date.After(now):
			continue
		case !a.Date.Before(monthStart):
			current += a.DistanceKm
		case !a.Date.Before(priorStart):
			prior += a.DistanceKm
		}
	}

	s := MonthSignals{
		TotalDistanceKm: round1(current),
		PriorDistanceKm: round1(prior),
	}

	if prior == 0 {
		if current > 0 {
			s.Trend = TrendUp
		} else {
			s.Trend = TrendStable
		}
		return s
	}

	deltaPct := (current - prior) / prior * 100
	rounded := round1(deltaPct)
	s.DeltaPct = &rounded

	switch {
	case deltaPct > 15:
		s.Trend = TrendUp
	case deltaPct < -15:
		s.Trend = TrendDown
	default:
		s.Trend = TrendStable
	}

	return s
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
