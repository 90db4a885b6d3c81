package activity

import "time"

type Type string

const (
	TypeRun   Type = "run"
	TypeCycle Type = "cycle"
)

func (t Type) Valid() bool {
	return t == TypeRun || t == TypeCycle
}

// ZoneDistribution holds the share of session time spent in each
// heart rate zone, in percent. Values are non-negative and sum to
// approximately 100 (rounding drift up to 1 is tolerated).
type ZoneDistribution struct {
	Z1 float64 `json:"z1"`
	Z2 float64 `json:"z2"`
	Z3 float64 `json:"z3"`
	Z4 float64 `json:"z4"`
	Z5 float64 `json:"z5"`
}

func (z ZoneDistribution) Sum() float64 {
	return z.Z1 + z.Z2 + z.Z3 + z.Z4 + z.Z5
}

// Split is one per-unit record of a session, where a unit is either
// a kilometer segment or a recorded lap. Unit indexes are 1-based.
type Split struct {
	Unit         int      `json:"unit"`
	PaceMinKm    float64  `json:"paceMinKm"`
	AvgHeartRate *float64 `json:"avgHeartRate,omitempty"`
	Cadence      *float64 `json:"cadence,omitempty"`
}

// TrackPoint is one sample of a raw distance/time stream, with
// optional heart rate and cadence readings attached to the sample.
type TrackPoint struct {
	ElapsedSec float64  `json:"elapsedSec"`
	DistanceKm float64  `json:"distanceKm"`
	HeartRate  *float64 `json:"heartRate,omitempty"`
	Cadence    *float64 `json:"cadence,omitempty"`
}

// HRSample is one raw heart rate reading in beats per minute.
type HRSample struct {
	BPM float64 `json:"bpm"`
}

// Activity is an immutable record of one completed session. Optional
// telemetry is carried as pointers or nil-able slices; an absent field
// means "not measured" and is never the same thing as a zero value.
type Activity struct {
	ID          int       `json:"id"`
	UserID      string    `json:"userId"`
	Type        Type      `json:"type"`
	Date        time.Time `json:"date"`
	DurationMin float64   `json:"durationMin"`
	DistanceKm  float64   `json:"distanceKm"`

	AvgHeartRate  *float64          `json:"avgHeartRate,omitempty"`
	MaxHeartRate  *float64          `json:"maxHeartRate,omitempty"`
	Zones         *ZoneDistribution `json:"zones,omitempty"`
	PaceMinKm     *float64          `json:"paceMinKm,omitempty"`
	SpeedKmh      *float64          `json:"speedKmh,omitempty"`
	BestPaceMinKm *float64          `json:"bestPaceMinKm,omitempty"`

	Laps     []Split      `json:"laps,omitempty"`
	Track    []TrackPoint `json:"track,omitempty"`
	HRStream []HRSample   `json:"hrStream,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Malformed reports whether the record is unusable for aggregation.
// Malformed records are skipped by every computation, never fatal.
func (a Activity) Malformed() bool {
	if a.Date.IsZero() {
		return true
	}
	if a.DurationMin <= 0 || a.DistanceKm < 0 {
		return true
	}
	if !a.Type.Valid() {
		return true
	}
	return false
}

// Valid filters out malformed records from a history slice.
func Valid(history []Activity) []Activity {
	valid := make([]Activity, 0, len(history))
	for _, a := range history {
		if a.Malformed() {
			continue
		}
		valid = append(valid, a)
	}
	return valid
}
