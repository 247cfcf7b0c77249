package training

import "time"

type Session struct {
	ID          string    `json:"id"`
	AthleteID   string    `json:"athlete_id"`
	SessionDate time.Time `json:"session_date"`
	DurationMin int       `json:"duration_min"`
	DistanceM   int       `json:"distance_m"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
