package baseline

import (
	"math"

	"github.com/paceline/paceline/internal/training/activity"
	"github.com/paceline/paceline/internal/training/normalize"
)

const DefaultWindowDays = 14

// Baseline is the trailing-window average of an athlete's own recent
// same-type activities, used as the comparison reference instead of
// population norms. It is recomputed on every request, never stored.
type Baseline struct {
	ActivityType activity.Type `json:"activityType"`
	WindowDays   int           `json:"windowDays"`
	SampleCount  int           `json:"sampleCount"`

	MeanDistanceKm  float64                    `json:"meanDistanceKm"`
	MeanDurationMin float64                    `json:"meanDurationMin"`
	MeanHeartRate   *float64                   `json:"meanHeartRate,omitempty"`
	MeanPaceMinKm   *float64                   `json:"meanPaceMinKm,omitempty"`
	MeanSpeedKmh    *float64                   `json:"meanSpeedKmh,omitempty"`
	MeanZones       *activity.ZoneDistribution `json:"meanZones,omitempty"`

	TotalVolumeKm     float64 `json:"totalVolumeKm"`
	WeeklyAvgVolumeKm float64 `json:"weeklyAvgVolumeKm"`
}

type HeartRateStatus string

const (
	HeartRateElevated HeartRateStatus = "elevated"
	HeartRateReduced  HeartRateStatus = "reduced"
	HeartRateNormal   HeartRateStatus = "normal"
)

type DistanceStatus string

const (
	DistanceLonger  DistanceStatus = "longer"
	DistanceShorter DistanceStatus = "shorter"
	DistanceTypical DistanceStatus = "typical"
)

type PaceStatus string

const (
	PaceSlower     PaceStatus = "slower"
	PaceFaster     PaceStatus = "faster"
	PaceConsistent PaceStatus = "consistent"
)

type HeartRateComparison struct {
	DeltaPct float64         `json:"deltaPct"`
	Status   HeartRateStatus `json:"status"`
}

type DistanceComparison struct {
	DeltaPct float64        `json:"deltaPct"`
	Status   DistanceStatus `json:"status"`
}

type PaceComparison struct {
	DeltaMinKm float64    `json:"deltaMinKm"`
	Status     PaceStatus `json:"status"`
}

// Comparison holds the subject activity measured against its baseline.
// Comparisons that lack data on either side stay nil, which is a state
// of its own and never the same as "no change".
type Comparison struct {
	Baseline  Baseline             `json:"baseline"`
	HeartRate *HeartRateComparison `json:"heartRate,omitempty"`
	Distance  *DistanceComparison  `json:"distance,omitempty"`
	Pace      *PaceComparison      `json:"pace,omitempty"`
}

// Compute reduces the trailing window [subject date - windowDays,
// subject date) of same-type activities to a Baseline. The subject
// itself is excluded. Returns nil when the window holds no activities.
func Compute(history []activity.Activity, subject activity.Activity, windowDays int) *Baseline {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	windowStart := subject.Date.AddDate(0, 0, -windowDays)
	var window []activity.Activity
	for _, a := range activity.Valid(history) {
		if a.ID == subject.ID && a.ID != 0 {
			continue
		}
		if a.Type != subject.Type {
			continue
		}
		if a.Date.Before(windowStart) || !a.Date.Before(subject.Date) {
			continue
		}
		window = append(window, a)
	}

	if len(window) == 0 {
		return nil
	}

	b := &Baseline{
		ActivityType: subject.Type,
		WindowDays:   windowDays,
		SampleCount:  len(window),
	}

	var distanceSum, durationSum float64
	var hrSum, hrCount float64
	var paceSum, paceCount float64
	var speedSum, speedCount float64
	var zoneSum activity.ZoneDistribution
	var zoneCount float64
	for _, a := range window {
		distanceSum += a.DistanceKm
		durationSum += a.DurationMin
		if a.AvgHeartRate != nil {
			hrSum += *a.AvgHeartRate
			hrCount++
		}
		if pace := normalize.Pace(a); pace != nil {
			paceSum += *pace
			paceCount++
		}
		if speed := normalize.Speed(a); speed != nil {
			speedSum += *speed
			speedCount++
		}
		if a.Zones != nil {
			zoneSum.Z1 += a.Zones.Z1
			zoneSum.Z2 += a.Zones.Z2
			zoneSum.Z3 += a.Zones.Z3
			zoneSum.Z4 += a.Zones.Z4
			zoneSum.Z5 += a.Zones.Z5
			zoneCount++
		}
	}

	n := float64(len(window))
	b.MeanDistanceKm = distanceSum / n
	b.MeanDurationMin = durationSum / n
	b.TotalVolumeKm = distanceSum
	b.WeeklyAvgVolumeKm = distanceSum / (float64(windowDays) / 7)

	if hrCount > 0 {
		meanHR := hrSum / hrCount
		b.MeanHeartRate = &meanHR
	}
	if paceCount > 0 {
		meanPace := paceSum / paceCount
		b.MeanPaceMinKm = &meanPace
	}
	if speedCount > 0 {
		meanSpeed := speedSum / speedCount
		b.MeanSpeedKmh = &meanSpeed
	}
	if zoneCount > 0 {
		b.MeanZones = &activity.ZoneDistribution{
			Z1: zoneSum.Z1 / zoneCount,
			Z2: zoneSum.Z2 / zoneCount,
			Z3: zoneSum.Z3 / zoneCount,
			Z4: zoneSum.Z4 / zoneCount,
			Z5: zoneSum.Z5 / zoneCount,
		}
	}

	return b
}

// Compare measures the subject activity against its baseline window.
// Each comparison uses a dead-band around zero so that everyday noise
// does not get classified as a change. Returns nil when there is no
// baseline to compare against.
func Compare(history []activity.Activity, subject activity.Activity, windowDays int) *Comparison {
	b := Compute(history, subject, windowDays)
	if b == nil {
		return nil
	}

	cmp := &Comparison{Baseline: *b}

	if subject.AvgHeartRate != nil && b.MeanHeartRate != nil && *b.MeanHeartRate > 0 {
		deltaPct := (*subject.AvgHeartRate - *b.MeanHeartRate) / *b.MeanHeartRate * 100
		status := HeartRateNormal
		switch {
		case deltaPct > 5:
			status = HeartRateElevated
		case deltaPct < -5:
			status = HeartRateReduced
		}
		cmp.HeartRate = &HeartRateComparison{
			DeltaPct: round1(deltaPct),
			Status:   status,
		}
	}

	if b.MeanDistanceKm > 0 {
		deltaPct := (subject.DistanceKm - b.MeanDistanceKm) / b.MeanDistanceKm * 100
		status := DistanceTypical
		switch {
		case deltaPct > 15:
			status = DistanceLonger
		case deltaPct < -15:
			status = DistanceShorter
		}
		cmp.Distance = &DistanceComparison{
			DeltaPct: round1(deltaPct),
			Status:   status,
		}
	}

	if subject.Type == activity.TypeRun {
		subjectPace := normalize.Pace(subject)
		if subjectPace != nil && b.MeanPaceMinKm != nil {
			delta := *subjectPace - *b.MeanPaceMinKm
			status := PaceConsistent
			switch {
			case delta > 0.15:
				status = PaceSlower
			case delta < -0.15:
				status = PaceFaster
			}
			cmp.Pace = &PaceComparison{
				DeltaMinKm: round2(delta),
				Status:     status,
			}
		}
	}

	return cmp
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
