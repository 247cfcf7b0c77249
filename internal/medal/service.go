package medal

import (
	"context"
	"log"
	"time"

	"backend-swimtrack/internal/db"
	"backend-swimtrack/internal/notify"

	"github.com/google/uuid"
)

type Notifier interface {
	Notify(event notify.Event)
}

var sleepFn = time.Sleep

// Service is the award ledger. A medal is unique per (athlete, code,
// event); re-detecting an already held medal is a no-op.
type Service struct {
	db       db.Querier
	notifier Notifier
	retries  int
	backoff  time.Duration
}

func NewService(db db.Querier, notifier Notifier, retries, backoffMs int) *Service {
	if retries < 1 {
		retries = 1
	}
	return &Service{
		db:       db,
		notifier: notifier,
		retries:  retries,
		backoff:  time.Duration(backoffMs) * time.Millisecond,
	}
}

// Award records a candidate in the ledger. The bool reports whether the
// medal is newly earned. Transient insert failures are retried a bounded
// number of times before the error surfaces.
func (s *Service) Award(ctx context.Context, athleteID string, c Candidate) (Medal, bool, error) {
	m := Medal{
		ID:        uuid.NewString(),
		AthleteID: athleteID,
		Code:      c.Code,
		Kind:      c.Kind,
		Event:     c.Event,
		Detail:    c.Detail,
		AwardedAt: time.Now().UTC(),
	}

	var lastErr error
	for attempt := 0; attempt < s.retries; attempt++ {
		if attempt > 0 {
			sleepFn(s.backoff)
		}
		tag, err := s.db.Exec(ctx, `
			INSERT INTO medals (id, athlete_id, code, kind, event, detail, awarded_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
			ON CONFLICT (athlete_id, code, event) DO NOTHING
		`, m.ID, m.AthleteID, m.Code, m.Kind, m.Event, m.Detail, m.AwardedAt)
		if err != nil {
			lastErr = err
			continue
		}
		if tag.RowsAffected() == 0 {
			return Medal{}, false, nil
		}
		if s.notifier != nil {
			s.notifier.Notify(notify.Event{
				Type:      "medal_awarded",
				AthleteID: m.AthleteID,
				Code:      m.Code,
				Event:     m.Event,
				Detail:    m.Detail,
				AwardedAt: m.AwardedAt.Format(time.RFC3339),
			})
		}
		return m, true, nil
	}
	return Medal{}, false, lastErr
}

// AwardAll runs Award for every candidate and returns the newly earned
// medals. A failed award is logged and skipped; the swim that triggered
// detection is already persisted and must not be rolled back over a
// ledger hiccup.
func (s *Service) AwardAll(ctx context.Context, athleteID string, candidates []Candidate) []Medal {
	var awarded []Medal
	for _, c := range candidates {
		m, fresh, err := s.Award(ctx, athleteID, c)
		if err != nil {
			log.Printf("award %s for %s: %v", c.Code, athleteID, err)
			continue
		}
		if fresh {
			awarded = append(awarded, m)
		}
	}
	return awarded
}

func (s *Service) Medals(ctx context.Context, athleteID string) ([]Medal, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, athlete_id, code, kind, event, detail, awarded_at
		FROM medals WHERE athlete_id=$1
		ORDER BY awarded_at DESC
	`, athleteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var medals []Medal
	for rows.Next() {
		var m Medal
		if err := rows.Scan(&m.ID, &m.AthleteID, &m.Code, &m.Kind, &m.Event, &m.Detail, &m.AwardedAt); err != nil {
			return nil, err
		}
		medals = append(medals, m)
	}
	return medals, nil
}

func (s *Service) Stats(ctx context.Context, athleteID string) (map[string]int, error) {
	rows, err := s.db.Query(ctx, `
		SELECT kind, COUNT(*)
		FROM medals WHERE athlete_id=$1
		GROUP BY kind
	`, athleteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := map[string]int{}
	for rows.Next() {
		var (
			kind  string
			count int
		)
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, err
		}
		stats[kind] = count
	}
	return stats, nil
}
