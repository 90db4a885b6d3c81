package normalize

import (
	"testing"

	"github.com/paceline/paceline/internal/training/activity"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPace(t *testing.T) {
	run := activity.Activity{
		Type:        activity.TypeRun,
		DurationMin: 50,
		DistanceKm:  10,
	}
	pace := Pace(run)
	require.NotNil(t, pace)
	assert.InDelta(t, 5.0, *pace, 0.001)

	// recorded pace wins over the derived one
	recorded := 4.75
	run.PaceMinKm = &recorded
	pace = Pace(run)
	require.NotNil(t, pace)
	assert.Equal(t, recorded, *pace)

	cycle := activity.Activity{
		Type:        activity.TypeCycle,
		DurationMin: 60,
		DistanceKm:  30,
	}
	assert.Nil(t, Pace(cycle))

	zeroDistance := activity.Activity{
		Type:        activity.TypeRun,
		DurationMin: 50,
	}
	assert.Nil(t, Pace(zeroDistance))
}

func TestSpeed(t *testing.T) {
	cycle := activity.Activity{
		Type:        activity.TypeCycle,
		DurationMin: 90,
		DistanceKm:  45,
	}
	speed := Speed(cycle)
	require.NotNil(t, speed)
	assert.InDelta(t, 30.0, *speed, 0.001)

	run := activity.Activity{
		Type:        activity.TypeRun,
		DurationMin: 50,
		DistanceKm:  10,
	}
	assert.Nil(t, Speed(run))

	zeroDuration := activity.Activity{
		Type:       activity.TypeCycle,
		DistanceKm: 45,
	}
	assert.Nil(t, Speed(zeroDuration))
}

func TestZones(t *testing.T) {
	stream := []activity.HRSample{
		{BPM: 90},  // 45% of max, folds into z1
		{BPM: 100}, // 50%, z1
		{BPM: 130}, // 65%, z2
		{BPM: 150}, // 75%, z3
		{BPM: 159}, // 79.5%, z3
		{BPM: 170}, // 85%, z4
		{BPM: 190}, // 95%, z5
		{BPM: 210}, // 105%, folds into z5
	}

	zones := Zones(stream, 200)
	require.NotNil(t, zones)
	assert.InDelta(t, 25, zones.Z1, 0.1)
	assert.InDelta(t, 12.5, zones.Z2, 0.1)
	assert.InDelta(t, 25, zones.Z3, 0.1)
	assert.InDelta(t, 12.5, zones.Z4, 0.1)
	assert.InDelta(t, 25, zones.Z5, 0.1)
	assert.InDelta(t, 100, zones.Sum(), 1)
}

func TestZones_absent(t *testing.T) {
	assert.Nil(t, Zones(nil, 190))
	assert.Nil(t, Zones([]activity.HRSample{}, 190))
	assert.Nil(t, Zones([]activity.HRSample{{BPM: 150}}, 0))
	// zero-value samples are skipped, not bucketed
	assert.Nil(t, Zones([]activity.HRSample{{BPM: 0}, {BPM: -5}}, 190))
}

func TestZones_sumProperty(t *testing.T) {
	faker := gofakeit.New(42)
	for i := 0; i < 50; i++ {
		var stream []activity.HRSample
		for j := 0; j < faker.IntRange(1, 300); j++ {
			stream = append(stream, activity.HRSample{
				BPM: faker.Float64Range(40, 210),
			})
		}
		zones := Zones(stream, 190)
		require.NotNil(t, zones)
		assert.InDelta(t, 100, zones.Sum(), 1)
	}
}

func TestKmSplits(t *testing.T) {
	hr := func(v float64) *float64 { return &v }
	track := []activity.TrackPoint{
		{ElapsedSec: 150, DistanceKm: 0.5, HeartRate: hr(150)},
		{ElapsedSec: 300, DistanceKm: 1.0, HeartRate: hr(156)},
		{ElapsedSec: 450, DistanceKm: 1.5, HeartRate: hr(160)},
		{ElapsedSec: 600, DistanceKm: 2.0, HeartRate: hr(164)},
		{ElapsedSec: 750, DistanceKm: 2.5, HeartRate: hr(168)},
	}

	splits := KmSplits(track)
	require.Len(t, splits, 3)

	assert.Equal(t, 1, splits[0].Unit)
	assert.InDelta(t, 5.0, splits[0].PaceMinKm, 0.001)
	require.NotNil(t, splits[0].AvgHeartRate)
	assert.InDelta(t, 150, *splits[0].AvgHeartRate, 0.1)

	assert.Equal(t, 2, splits[1].Unit)
	assert.InDelta(t, 5.0, splits[1].PaceMinKm, 0.001)
	require.NotNil(t, splits[1].AvgHeartRate)
	assert.InDelta(t, 158, *splits[1].AvgHeartRate, 0.1)

	// trailing 0.5 km partial segment, pace still per km
	assert.Equal(t, 3, splits[2].Unit)
	assert.InDelta(t, 5.0, splits[2].PaceMinKm, 0.001)
}

func TestKmSplits_interpolatedBoundary(t *testing.T) {
	track := []activity.TrackPoint{
		{ElapsedSec: 240, DistanceKm: 0.8},
		{ElapsedSec: 360, DistanceKm: 1.2},
		{ElapsedSec: 660, DistanceKm: 2.2},
	}

	splits := KmSplits(track)
	require.Len(t, splits, 2)

	// boundary crossed mid-sample: 1 km reached at 300s
	assert.InDelta(t, 5.0, splits[0].PaceMinKm, 0.01)
	// 2 km reached at 600s
	assert.InDelta(t, 5.0, splits[1].PaceMinKm, 0.01)
	// trailing 0.2 km remainder dropped
}

func TestKmSplits_degenerate(t *testing.T) {
	assert.Nil(t, KmSplits(nil))
	assert.Nil(t, KmSplits([]activity.TrackPoint{}))
	assert.Nil(t, KmSplits([]activity.TrackPoint{{ElapsedSec: 100, DistanceKm: 0}}))
	assert.Nil(t, KmSplits([]activity.TrackPoint{{ElapsedSec: 0, DistanceKm: 1}}))
}
