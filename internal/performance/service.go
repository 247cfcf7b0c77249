package performance

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"backend-swimtrack/internal/athlete"
	"backend-swimtrack/internal/db"
	"backend-swimtrack/internal/medal"
	"backend-swimtrack/internal/points"
	"backend-swimtrack/internal/standards"
	"backend-swimtrack/internal/swimtime"
	"backend-swimtrack/internal/training"

	"github.com/google/uuid"
)

var eventPattern = regexp.MustCompile(`^\d+_(FR|BK|BR|FL|IM)_(SCY|LCM|SCM)$`)

var sleepFn = time.Sleep

type Service struct {
	db       db.Querier
	catalog  *standards.Catalog
	profiles *athlete.Service
	sessions *training.Service
	detector *medal.Detector
	ledger   *medal.Service
	retries  int
	backoff  time.Duration
}

func NewService(
	db db.Querier,
	catalog *standards.Catalog,
	profiles *athlete.Service,
	sessions *training.Service,
	detector *medal.Detector,
	ledger *medal.Service,
	retries, backoffMs int,
) *Service {
	if retries < 1 {
		retries = 1
	}
	return &Service{
		db:       db,
		catalog:  catalog,
		profiles: profiles,
		sessions: sessions,
		detector: detector,
		ledger:   ledger,
		retries:  retries,
		backoff:  time.Duration(backoffMs) * time.Millisecond,
	}
}

// Submit runs the whole pipeline for one swim: validate, persist,
// score, resolve standards, and detect awards. The swim is stored even
// when every downstream evaluation comes up empty.
func (s *Service) Submit(ctx context.Context, athleteID string, req SubmitRequest) (Result, error) {
	event, timeMs, swamAt, err := validate(req)
	if err != nil {
		return Result{}, err
	}

	total, prevBest, err := s.history(ctx, athleteID, event)
	if err != nil {
		return Result{}, err
	}

	perf := Performance{
		ID:             uuid.NewString(),
		AthleteID:      athleteID,
		Event:          event,
		TimeMs:         timeMs,
		Time:           swimtime.Format(timeMs),
		MeetName:       req.MeetName,
		Place:          req.Place,
		SwamAt:         swamAt,
		IsPersonalBest: prevBest == 0 || timeMs < prevBest,
	}
	if err := s.insert(ctx, &perf); err != nil {
		return Result{}, err
	}

	result := Result{Performance: perf, Medals: []medal.Medal{}}
	if pts, err := points.Calculate(timeMs, event); err == nil {
		result.Points = pts
	}
	if perf.IsPersonalBest {
		result.PersonalBest = true
		if prevBest > 0 {
			result.DropMs = prevBest - timeMs
		}
	}
	if strategy, err := points.RaceStrategy(event, timeMs); err == nil {
		result.Strategy = &strategy
	}

	mc := medal.Context{
		AthleteID:       athleteID,
		Event:           event,
		TimeMs:          timeMs,
		PerformanceDate: swamAt,
		Course:          event[strings.LastIndex(event, "_")+1:],
		PrevBestMs:      prevBest,
		FirstSwim:       total == 0,
		Place:           req.Place,
	}

	profile, err := s.profiles.GetProfile(ctx, athleteID)
	if err != nil {
		log.Printf("profile lookup for %s: %v", athleteID, err)
	} else {
		mc.Gender = profile.Gender
		mc.Age = profile.AgeAt(swamAt)

		if level, ok, err := s.catalog.Resolve(timeMs, mc.Gender, mc.Age, mc.Course, event); err != nil {
			log.Printf("standards resolve for %s: %v", event, err)
		} else if ok {
			result.Level = level
		}
		if champs, err := s.catalog.CheckChamps(timeMs, mc.Gender, mc.Age, event); err == nil {
			result.Champs = &champs
		} else if !errors.Is(err, standards.ErrNotFound) {
			log.Printf("champs check for %s: %v", event, err)
		}
	}

	dates, err := s.sessions.DatesSince(ctx, athleteID, swamAt.AddDate(0, 0, -60))
	if err != nil {
		log.Printf("training dates for %s: %v", athleteID, err)
	} else {
		mc.TrainingDates = dates
	}

	candidates := s.detector.Detect(ctx, mc)
	if awarded := s.ledger.AwardAll(ctx, athleteID, candidates); awarded != nil {
		result.Medals = awarded
	}
	return result, nil
}

func validate(req SubmitRequest) (event string, timeMs int64, swamAt time.Time, err error) {
	event = strings.ToUpper(strings.TrimSpace(req.Event))
	if !eventPattern.MatchString(event) {
		return "", 0, time.Time{}, &ValidationError{Field: "event", Reason: "must look like 50_FR_SCY"}
	}

	timeMs, perr := swimtime.Parse(req.Time)
	if perr != nil {
		return "", 0, time.Time{}, &ValidationError{Field: "time", Reason: perr.Error()}
	}
	if timeMs <= 0 {
		return "", 0, time.Time{}, &ValidationError{Field: "time", Reason: "must be positive"}
	}

	swamAt = time.Now().UTC()
	if req.Date != "" {
		swamAt, perr = time.Parse("2006-01-02", req.Date)
		if perr != nil {
			return "", 0, time.Time{}, &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
		}
	}
	if req.Place < 0 {
		return "", 0, time.Time{}, &ValidationError{Field: "place", Reason: "must not be negative"}
	}
	return event, timeMs, swamAt, nil
}

func (s *Service) history(ctx context.Context, athleteID, event string) (total int64, prevBest int64, err error) {
	row := s.db.QueryRow(ctx, `
		SELECT COUNT(*), MIN(time_ms) FILTER (WHERE event=$2)
		FROM performances WHERE athlete_id=$1
	`, athleteID, event)
	var best *int64
	if err := row.Scan(&total, &best); err != nil {
		return 0, 0, err
	}
	if best != nil {
		prevBest = *best
	}
	return total, prevBest, nil
}

func (s *Service) insert(ctx context.Context, perf *Performance) error {
	var lastErr error
	for attempt := 0; attempt < s.retries; attempt++ {
		if attempt > 0 {
			sleepFn(s.backoff)
		}
		row := s.db.QueryRow(ctx, `
			INSERT INTO performances (id, athlete_id, event, time_ms, meet_name, place, swam_at, is_personal_best)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			RETURNING created_at
		`, perf.ID, perf.AthleteID, perf.Event, perf.TimeMs, perf.MeetName, perf.Place, perf.SwamAt, perf.IsPersonalBest)
		if err := row.Scan(&perf.CreatedAt); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}

// Performances lists recent swims, optionally filtered to one event.
func (s *Service) Performances(ctx context.Context, athleteID, event string, limit int) ([]Performance, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, athlete_id, event, time_ms, meet_name, place, swam_at, is_personal_best, created_at
		FROM performances
		WHERE athlete_id=$1 AND ($2 = '' OR event = $2)
		ORDER BY swam_at DESC
		LIMIT $3
	`, athleteID, event, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Performance
	for rows.Next() {
		var p Performance
		if err := rows.Scan(&p.ID, &p.AthleteID, &p.Event, &p.TimeMs, &p.MeetName, &p.Place, &p.SwamAt, &p.IsPersonalBest, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Time = swimtime.Format(p.TimeMs)
		out = append(out, p)
	}
	return out, nil
}

func (s *Service) PersonalBests(ctx context.Context, athleteID string) ([]PersonalBest, error) {
	rows, err := s.db.Query(ctx, `
		SELECT DISTINCT ON (event) event, time_ms, swam_at
		FROM performances WHERE athlete_id=$1
		ORDER BY event, time_ms
	`, athleteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bests []PersonalBest
	for rows.Next() {
		var b PersonalBest
		if err := rows.Scan(&b.Event, &b.TimeMs, &b.SwamAt); err != nil {
			return nil, err
		}
		b.Time = swimtime.Format(b.TimeMs)
		bests = append(bests, b)
	}
	return bests, nil
}

// Progress returns the athlete's history in one event, oldest first.
func (s *Service) Progress(ctx context.Context, athleteID, event string) ([]Performance, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, athlete_id, event, time_ms, meet_name, place, swam_at, is_personal_best, created_at
		FROM performances WHERE athlete_id=$1 AND event=$2
		ORDER BY swam_at
	`, athleteID, event)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Performance
	for rows.Next() {
		var p Performance
		if err := rows.Scan(&p.ID, &p.AthleteID, &p.Event, &p.TimeMs, &p.MeetName, &p.Place, &p.SwamAt, &p.IsPersonalBest, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Time = swimtime.Format(p.TimeMs)
		out = append(out, p)
	}
	return out, nil
}

// EventDistance parses the leading distance out of an event code.
func EventDistance(event string) int {
	distText, _, ok := strings.Cut(event, "_")
	if !ok {
		return 0
	}
	d, err := strconv.Atoi(distText)
	if err != nil {
		return 0
	}
	return d
}
