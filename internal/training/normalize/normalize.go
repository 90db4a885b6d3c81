package normalize

import (
	"math"

	"github.com/paceline/paceline/internal/training/activity"
)

// Pace returns the pace of a running activity in min/km, preferring a
// recorded value over a derived one. Cycling activities and degenerate
// inputs (zero distance or duration) yield no pace.
func Pace(a activity.Activity) *float64 {
	if a.Type != activity.TypeRun {
		return nil
	}
	if a.PaceMinKm != nil {
		return a.PaceMinKm
	}
	if a.DistanceKm <= 0 || a.DurationMin <= 0 {
		return nil
	}
	pace := a.DurationMin / a.DistanceKm
	return &pace
}

// Speed returns the speed of a cycling activity in km/h, preferring a
// recorded value over a derived one.
func Speed(a activity.Activity) *float64 {
	if a.Type != activity.TypeCycle {
		return nil
	}
	if a.SpeedKmh != nil {
		return a.SpeedKmh
	}
	if a.DistanceKm <= 0 || a.DurationMin <= 0 {
		return nil
	}
	speed := a.DistanceKm / (a.DurationMin / 60)
	return &speed
}

// Zones buckets each heart rate sample into one of 5 intensity zones
// by its percentage of the max heart rate:
//
//	z1: [50%, 60%)   z2: [60%, 70%)   z3: [70%, 80%)
//	z4: [80%, 90%)   z5: [90%, ∞)
//
// Samples at or above 100% of max fold into z5, samples below 50% count
// into z1 so that the returned distribution always sums to 100. An
// empty stream or unknown max heart rate yields no distribution.
func Zones(stream []activity.HRSample, maxHeartRate float64) *activity.ZoneDistribution {
	if len(stream) == 0 || maxHeartRate <= 0 {
		return nil
	}

	var counts [5]float64
	var total float64
	for _, s := range stream {
		if s.BPM <= 0 {
			continue
		}
		pct := s.BPM / maxHeartRate * 100
		switch {
		case pct >= 90:
			counts[4]++
		case pct >= 80:
			counts[3]++
		case pct >= 70:
			counts[2]++
		case pct >= 60:
			counts[1]++
		default:
			counts[0]++
		}
		total++
	}

	if total == 0 {
		return nil
	}

	return &activity.ZoneDistribution{
		Z1: round1(counts[0] / total * 100),
		Z2: round1(counts[1] / total * 100),
		Z3: round1(counts[2] / total * 100),
		Z4: round1(counts[3] / total * 100),
		Z5: round1(counts[4] / total * 100),
	}
}

// KmSplits partitions a distance/time stream into per-kilometer
// segments. A segment closes each time cumulative distance crosses an
// integer kilometer boundary (boundary time interpolated between the
// surrounding samples); its pace is the segment's elapsed minutes per
// km, and its heart rate and cadence are means of the non-nil in-segment
// samples. A trailing partial segment is kept only when it is longer
// than 0.3 km. Degenerate streams yield no splits.
func KmSplits(track []activity.TrackPoint) []activity.Split {
	if len(track) == 0 {
		return nil
	}
	last := track[len(track)-1]
	if last.DistanceKm <= 0 || last.ElapsedSec <= 0 {
		return nil
	}

	var splits []activity.Split
	var hrSum, hrCount, cadSum, cadCount float64

	closeSegment := func(unit int, elapsedSec, distanceKm float64) {
		if elapsedSec <= 0 || distanceKm <= 0 {
			return
		}
		split := activity.Split{
			Unit:      unit,
			PaceMinKm: round2(elapsedSec / 60 / distanceKm),
		}
		if hrCount > 0 {
			avgHR := round1(hrSum / hrCount)
			split.AvgHeartRate = &avgHR
		}
		if cadCount > 0 {
			avgCad := round1(cadSum / cadCount)
			split.Cadence = &avgCad
		}
		splits = append(splits, split)
		hrSum, hrCount, cadSum, cadCount = 0, 0, 0, 0
	}

	segStartSec := 0.0
	nextBoundaryKm := 1.0
	prevSec, prevKm := 0.0, 0.0
	for _, p := range track {
		if p.DistanceKm < prevKm || p.ElapsedSec < prevSec {
			// non-monotonic sample, skip it
			continue
		}

		for p.DistanceKm >= nextBoundaryKm {
			crossSec := p.ElapsedSec
			if p.DistanceKm > prevKm {
				crossSec = prevSec + (p.ElapsedSec-prevSec)*(nextBoundaryKm-prevKm)/(p.DistanceKm-prevKm)
			}
			closeSegment(len(splits)+1, crossSec-segStartSec, 1)
			segStartSec = crossSec
			nextBoundaryKm++
		}

		if p.HeartRate != nil {
			hrSum += *p.HeartRate
			hrCount++
		}
		if p.Cadence != nil {
			cadSum += *p.Cadence
			cadCount++
		}

		prevSec, prevKm = p.ElapsedSec, p.DistanceKm
	}

	remainderKm := last.DistanceKm - (nextBoundaryKm - 1)
	if remainderKm > 0.3 {
		closeSegment(len(splits)+1, last.ElapsedSec-segStartSec, remainderKm)
	}

	return splits
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
