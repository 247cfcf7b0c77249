package athlete

import "time"

type Profile struct {
	AthleteID string    `json:"athlete_id"`
	Gender    string    `json:"gender"`
	BirthDate time.Time `json:"birth_date,omitempty"`
	Age       int       `json:"age"`
	Team      string    `json:"team"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AgeAt returns the athlete's age in whole years at the given date.
// Standards qualification uses age at the performance date, not at
// evaluation time; the stored age is the fallback when no birthdate is
// on file.
func (p Profile) AgeAt(at time.Time) int {
	if p.BirthDate.IsZero() {
		return p.Age
	}
	years := at.Year() - p.BirthDate.Year()
	anniversary := p.BirthDate.AddDate(years, 0, 0)
	if anniversary.After(at) {
		years--
	}
	if years < 0 {
		years = 0
	}
	return years
}
