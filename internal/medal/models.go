package medal

import "time"

const (
	KindStandard    = "standard"
	KindProgress    = "progress"
	KindConsistency = "consistency"
	KindMilestone   = "milestone"
)

const (
	CodeProgress10Sec    = "PROGRESS_10SEC"
	CodeProgress5Sec     = "PROGRESS_5SEC"
	CodeProgress3Sec     = "PROGRESS_3SEC"
	CodeTraining30Days   = "TRAINING_30DAYS"
	CodeTraining60Days   = "TRAINING_60DAYS"
	CodeFirstCompetition = "FIRST_COMPETITION"
	CodeTop8Finish       = "TOP8_FINISH"
	CodeFirstPlace       = "FIRST_PLACE"
)

type Medal struct {
	ID        string    `json:"id"`
	AthleteID string    `json:"athlete_id"`
	Code      string    `json:"code"`
	Kind      string    `json:"kind"`
	Event     string    `json:"event,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	AwardedAt time.Time `json:"awarded_at"`
}

// Candidate is a medal a rule decided the athlete has earned. The
// ledger decides whether it is new.
type Candidate struct {
	Code   string
	Kind   string
	Event  string
	Detail string
}

// Context carries everything the rules need about one submitted swim.
type Context struct {
	AthleteID       string
	Event           string
	TimeMs          int64
	PerformanceDate time.Time
	Gender          string
	Age             int
	Course          string
	PrevBestMs      int64
	FirstSwim       bool
	Place           int
	TrainingDates   []time.Time
}

// StandardCode builds the award code for a motivational level, for
// example AAA -> AAA_STANDARD.
func StandardCode(level string) string {
	return level + "_STANDARD"
}
