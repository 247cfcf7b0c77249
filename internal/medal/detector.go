package medal

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"backend-swimtrack/internal/standards"
	"backend-swimtrack/internal/swimtime"
)

type rule struct {
	name string
	eval func(ctx context.Context, mc Context) ([]Candidate, error)
}

// Detector runs every award rule against a submitted swim. Rules run
// concurrently and independently; a failing rule is logged and skipped
// so one broken table never blocks the others.
type Detector struct {
	catalog *standards.Catalog
	rules   []rule
}

func NewDetector(catalog *standards.Catalog) *Detector {
	d := &Detector{catalog: catalog}
	d.rules = []rule{
		{"standard", d.standardRule},
		{"progress", d.progressRule},
		{"consistency", d.consistencyRule},
		{"milestone", d.milestoneRule},
	}
	return d
}

func (d *Detector) Detect(ctx context.Context, mc Context) []Candidate {
	results := make(chan []Candidate, len(d.rules))
	var wg sync.WaitGroup
	for _, r := range d.rules {
		wg.Add(1)
		go func(r rule) {
			defer wg.Done()
			found, err := r.eval(ctx, mc)
			if err != nil {
				log.Printf("medal rule %s: %v", r.name, err)
				return
			}
			results <- found
		}(r)
	}
	wg.Wait()
	close(results)

	var candidates []Candidate
	for found := range results {
		candidates = append(candidates, found...)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Code < candidates[j].Code })
	return candidates
}

func (d *Detector) standardRule(_ context.Context, mc Context) ([]Candidate, error) {
	level, ok, err := d.catalog.Resolve(mc.TimeMs, mc.Gender, mc.Age, mc.Course, mc.Event)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return []Candidate{{
		Code:   StandardCode(level),
		Kind:   KindStandard,
		Event:  mc.Event,
		Detail: fmt.Sprintf("%s standard with %s", level, swimtime.Format(mc.TimeMs)),
	}}, nil
}

func (d *Detector) progressRule(_ context.Context, mc Context) ([]Candidate, error) {
	if mc.PrevBestMs <= 0 || mc.TimeMs >= mc.PrevBestMs {
		return nil, nil
	}
	drop := mc.PrevBestMs - mc.TimeMs

	var code string
	switch {
	case drop >= 10_000:
		code = CodeProgress10Sec
	case drop >= 5_000:
		code = CodeProgress5Sec
	case drop >= 3_000:
		code = CodeProgress3Sec
	default:
		return nil, nil
	}
	return []Candidate{{
		Code:   code,
		Kind:   KindProgress,
		Event:  mc.Event,
		Detail: fmt.Sprintf("dropped %.2fs", float64(drop)/1000),
	}}, nil
}

func (d *Detector) consistencyRule(_ context.Context, mc Context) ([]Candidate, error) {
	streak := longestStreak(mc.TrainingDates)
	var out []Candidate
	if streak >= 30 {
		out = append(out, Candidate{
			Code:   CodeTraining30Days,
			Kind:   KindConsistency,
			Detail: fmt.Sprintf("%d-day training streak", streak),
		})
	}
	if streak >= 60 {
		out = append(out, Candidate{
			Code:   CodeTraining60Days,
			Kind:   KindConsistency,
			Detail: fmt.Sprintf("%d-day training streak", streak),
		})
	}
	return out, nil
}

func (d *Detector) milestoneRule(_ context.Context, mc Context) ([]Candidate, error) {
	var out []Candidate
	if mc.FirstSwim {
		out = append(out, Candidate{Code: CodeFirstCompetition, Kind: KindMilestone, Detail: "first recorded swim"})
	}
	if mc.Place >= 1 && mc.Place <= 8 {
		out = append(out, Candidate{
			Code:   CodeTop8Finish,
			Kind:   KindMilestone,
			Event:  mc.Event,
			Detail: fmt.Sprintf("finished %d", mc.Place),
		})
	}
	if mc.Place == 1 {
		out = append(out, Candidate{Code: CodeFirstPlace, Kind: KindMilestone, Event: mc.Event, Detail: "won the event"})
	}
	return out, nil
}

// longestStreak counts the longest run of consecutive calendar days.
// Duplicate dates collapse to one day.
func longestStreak(dates []time.Time) int {
	if len(dates) == 0 {
		return 0
	}
	days := make([]time.Time, 0, len(dates))
	seen := map[time.Time]struct{}{}
	for _, d := range dates {
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	best, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 1
		}
	}
	return best
}
