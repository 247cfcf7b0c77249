package performance

import (
	"fmt"
	"time"

	"backend-swimtrack/internal/medal"
	"backend-swimtrack/internal/points"
	"backend-swimtrack/internal/standards"
)

type Performance struct {
	ID        string    `json:"id"`
	AthleteID string    `json:"athlete_id"`
	Event     string    `json:"event"`
	TimeMs    int64     `json:"time_ms"`
	Time      string    `json:"time"`
	MeetName  string    `json:"meet_name,omitempty"`
	Place     int       `json:"place,omitempty"`
	SwamAt    time.Time `json:"swam_at"`
	// IsPersonalBest is fixed at submission time; later swims never
	// rewrite it, so history keeps the best-as-of-then annotation.
	IsPersonalBest bool      `json:"is_personal_best"`
	CreatedAt      time.Time `json:"created_at"`
}

type SubmitRequest struct {
	Event    string `json:"event"`
	Time     string `json:"time"`
	MeetName string `json:"meet_name"`
	Place    int    `json:"place"`
	Date     string `json:"date"`
}

// Result is everything one submitted swim produced: the stored
// performance plus every evaluation run against it.
type Result struct {
	Performance  Performance             `json:"performance"`
	Points       int                     `json:"points"`
	Level        string                  `json:"level,omitempty"`
	Champs       *standards.ChampsResult `json:"champs,omitempty"`
	PersonalBest bool                    `json:"personal_best"`
	DropMs       int64                   `json:"drop_ms,omitempty"`
	Strategy     *points.Strategy        `json:"strategy,omitempty"`
	Medals       []medal.Medal           `json:"medals"`
}

type PersonalBest struct {
	Event  string    `json:"event"`
	TimeMs int64     `json:"time_ms"`
	Time   string    `json:"time"`
	SwamAt time.Time `json:"swam_at"`
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
