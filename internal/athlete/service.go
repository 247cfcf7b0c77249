package athlete

import (
	"context"
	"time"

	"backend-swimtrack/internal/db"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) GetProfile(ctx context.Context, athleteID string) (Profile, error) {
	row := s.db.QueryRow(ctx, `
		SELECT athlete_id, gender, birth_date, age, team, updated_at
		FROM athlete_profiles WHERE athlete_id=$1
	`, athleteID)
	var (
		p     Profile
		birth *time.Time
	)
	if err := row.Scan(&p.AthleteID, &p.Gender, &birth, &p.Age, &p.Team, &p.UpdatedAt); err != nil {
		return Profile{}, err
	}
	if birth != nil {
		p.BirthDate = *birth
	}
	return p, nil
}

func (s *Service) UpdateProfile(ctx context.Context, athleteID string, patch Profile) (Profile, error) {
	profile, err := s.GetProfile(ctx, athleteID)
	if err != nil {
		return Profile{}, err
	}
	if patch.Gender != "" {
		profile.Gender = patch.Gender
	}
	if !patch.BirthDate.IsZero() {
		profile.BirthDate = patch.BirthDate
	}
	if patch.Age != 0 {
		profile.Age = patch.Age
	}
	if patch.Team != "" {
		profile.Team = patch.Team
	}

	row := s.db.QueryRow(ctx, `
		UPDATE athlete_profiles
		SET gender=$2, birth_date=$3, age=$4, team=$5, updated_at=now()
		WHERE athlete_id=$1
		RETURNING updated_at
	`, athleteID, profile.Gender, birthPtr(profile.BirthDate), profile.Age, profile.Team)
	if err := row.Scan(&profile.UpdatedAt); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

func birthPtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
