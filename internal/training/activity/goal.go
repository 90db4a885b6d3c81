package activity

import "time"

// Goal is a race target the athlete is training for, used by the
// aerobic capacity estimator as its highest-priority signal.
type Goal struct {
	ID            int       `json:"id"`
	UserID        string    `json:"userId"`
	DistanceKm    float64   `json:"distanceKm"`
	TargetTimeMin float64   `json:"targetTimeMin"`
	EventDate     time.Time `json:"eventDate"`
	CreatedAt     time.Time `json:"createdAt"`
}
