package baseline

import (
	"testing"
	"time"

	"github.com/paceline/paceline/internal/training/activity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)

func run(id int, daysAgo int, distanceKm, durationMin float64) activity.Activity {
	return activity.Activity{
		ID:          id,
		Type:        activity.TypeRun,
		Date:        testDate.AddDate(0, 0, -daysAgo),
		DistanceKm:  distanceKm,
		DurationMin: durationMin,
	}
}

func TestCompute_emptyWindow(t *testing.T) {
	subject := run(1, 0, 10, 50)

	assert.Nil(t, Compute(nil, subject, 14))
	assert.Nil(t, Compute([]activity.Activity{subject}, subject, 14))

	// outside the window
	old := run(2, 20, 10, 50)
	assert.Nil(t, Compute([]activity.Activity{old}, subject, 14))

	// different type
	cycle := activity.Activity{
		ID:          3,
		Type:        activity.TypeCycle,
		Date:        testDate.AddDate(0, 0, -2),
		DistanceKm:  40,
		DurationMin: 90,
	}
	assert.Nil(t, Compute([]activity.Activity{cycle}, subject, 14))

	// same day as the subject but not strictly before it
	sameMoment := run(4, 0, 8, 40)
	assert.Nil(t, Compute([]activity.Activity{sameMoment}, subject, 14))
}

func TestCompute_means(t *testing.T) {
	subject := run(1, 0, 10, 50)
	history := []activity.Activity{
		subject,
		run(2, 2, 8, 42),   // pace 5.25
		run(3, 5, 12, 66),  // pace 5.5
		run(4, 10, 10, 52), // pace 5.2
	}

	b := Compute(history, subject, 14)
	require.NotNil(t, b)

	assert.Equal(t, activity.TypeRun, b.ActivityType)
	assert.Equal(t, 14, b.WindowDays)
	assert.Equal(t, 3, b.SampleCount)
	assert.InDelta(t, 10.0, b.MeanDistanceKm, 0.001)
	assert.InDelta(t, 53.333, b.MeanDurationMin, 0.001)
	assert.InDelta(t, 30.0, b.TotalVolumeKm, 0.001)
	assert.InDelta(t, 15.0, b.WeeklyAvgVolumeKm, 0.001)

	require.NotNil(t, b.MeanPaceMinKm)
	assert.InDelta(t, 5.3166, *b.MeanPaceMinKm, 0.001)

	// no HR or zone data anywhere, means stay absent
	assert.Nil(t, b.MeanHeartRate)
	assert.Nil(t, b.MeanZones)
	assert.Nil(t, b.MeanSpeedKmh)
}

func TestCompute_optionalMeansSkipMissing(t *testing.T) {
	hr := func(v float64) *float64 { return &v }

	subject := run(1, 0, 10, 50)
	withHR := run(2, 2, 8, 42)
	withHR.AvgHeartRate = hr(150)
	withHR.Zones = &activity.ZoneDistribution{Z1: 50, Z2: 30, Z3: 20}
	withoutHR := run(3, 5, 12, 66)

	b := Compute([]activity.Activity{withHR, withoutHR}, subject, 14)
	require.NotNil(t, b)
	assert.Equal(t, 2, b.SampleCount)

	// mean over the single HR-bearing activity, absence never counts as zero
	require.NotNil(t, b.MeanHeartRate)
	assert.InDelta(t, 150, *b.MeanHeartRate, 0.001)
	require.NotNil(t, b.MeanZones)
	assert.InDelta(t, 50, b.MeanZones.Z1, 0.001)
}

func TestCompare_paceFaster(t *testing.T) {
	// subject: 10 km in 50 min, pace 5.00; baseline pace 5.30
	subject := run(1, 0, 10, 50)
	history := []activity.Activity{
		subject,
		run(2, 3, 10, 53),
		run(3, 7, 10, 53),
	}

	cmp := Compare(history, subject, 14)
	require.NotNil(t, cmp)
	require.NotNil(t, cmp.Pace)
	assert.InDelta(t, -0.30, cmp.Pace.DeltaMinKm, 0.001)
	assert.Equal(t, PaceFaster, cmp.Pace.Status)

	require.NotNil(t, cmp.Distance)
	assert.Equal(t, DistanceTypical, cmp.Distance.Status)
}

func TestCompare_deadBands(t *testing.T) {
	hr := func(v float64) *float64 { return &v }

	testCases := []struct {
		name             string
		subjectHR        float64
		subjectDistance  float64
		expectedHRStatus HeartRateStatus
		expectedDistance DistanceStatus
	}{
		{
			name:             "within dead-bands",
			subjectHR:        154, // +2.7%
			subjectDistance:  11,  // +10%
			expectedHRStatus: HeartRateNormal,
			expectedDistance: DistanceTypical,
		},
		{
			name:             "elevated and longer",
			subjectHR:        160, // +6.7%
			subjectDistance:  12,  // +20%
			expectedHRStatus: HeartRateElevated,
			expectedDistance: DistanceLonger,
		},
		{
			name:             "reduced and shorter",
			subjectHR:        140, // -6.7%
			subjectDistance:  8,   // -20%
			expectedHRStatus: HeartRateReduced,
			expectedDistance: DistanceShorter,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			subject := run(1, 0, tc.subjectDistance, tc.subjectDistance*5)
			subject.AvgHeartRate = hr(tc.subjectHR)

			prior := run(2, 2, 10, 50)
			prior.AvgHeartRate = hr(150)

			cmp := Compare([]activity.Activity{prior}, subject, 14)
			require.NotNil(t, cmp)
			require.NotNil(t, cmp.HeartRate)
			assert.Equal(t, tc.expectedHRStatus, cmp.HeartRate.Status)
			require.NotNil(t, cmp.Distance)
			assert.Equal(t, tc.expectedDistance, cmp.Distance.Status)
		})
	}
}

func TestCompare_absentDataStaysAbsent(t *testing.T) {
	subject := run(1, 0, 10, 50)
	prior := run(2, 2, 10, 53)

	cmp := Compare([]activity.Activity{prior}, subject, 14)
	require.NotNil(t, cmp)
	// no HR on either side
	assert.Nil(t, cmp.HeartRate)
	// pace derivable for both
	assert.NotNil(t, cmp.Pace)
}

func TestCompute_idempotent(t *testing.T) {
	subject := run(1, 0, 10, 50)
	history := []activity.Activity{
		subject,
		run(2, 3, 10, 53),
		run(3, 7, 12, 60),
	}

	first := Compute(history, subject, 14)
	second := Compute(history, subject, 14)
	assert.Equal(t, first, second)
}

func TestCompute_skipsMalformed(t *testing.T) {
	subject := run(1, 0, 10, 50)
	malformed := activity.Activity{
		ID:   2,
		Type: activity.TypeRun,
		Date: testDate.AddDate(0, 0, -2),
		// zero duration
		DistanceKm: 10,
	}
	good := run(3, 4, 8, 42)

	b := Compute([]activity.Activity{malformed, good}, subject, 14)
	require.NotNil(t, b)
	assert.Equal(t, 1, b.SampleCount)
	assert.InDelta(t, 8, b.MeanDistanceKm, 0.001)
}
