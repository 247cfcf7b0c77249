package training

import (
	"context"
	"time"

	"backend-swimtrack/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) LogSession(ctx context.Context, input Session) (Session, error) {
	input.ID = uuid.NewString()
	if input.SessionDate.IsZero() {
		input.SessionDate = time.Now().UTC().Truncate(24 * time.Hour)
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO training_sessions (id, athlete_id, session_date, duration_min, distance_m, notes)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at
	`, input.ID, input.AthleteID, input.SessionDate, input.DurationMin, input.DistanceM, input.Notes)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Session{}, err
	}
	return input, nil
}

func (s *Service) Sessions(ctx context.Context, athleteID string, limit int) ([]Session, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, athlete_id, session_date, duration_min, distance_m, notes, created_at
		FROM training_sessions WHERE athlete_id=$1
		ORDER BY session_date DESC
		LIMIT $2
	`, athleteID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.AthleteID, &sess.SessionDate, &sess.DurationMin, &sess.DistanceM, &sess.Notes, &sess.CreatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, nil
}

// DatesSince returns distinct training dates on or after the cutoff,
// oldest first. Streak detection runs over these.
func (s *Service) DatesSince(ctx context.Context, athleteID string, since time.Time) ([]time.Time, error) {
	rows, err := s.db.Query(ctx, `
		SELECT DISTINCT session_date
		FROM training_sessions
		WHERE athlete_id=$1 AND session_date >= $2
		ORDER BY session_date
	`, athleteID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}
