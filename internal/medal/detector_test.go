package medal

import (
	"context"
	"testing"
	"time"

	"backend-swimtrack/internal/standards"
)

func testCatalog(t *testing.T) *standards.Catalog {
	t.Helper()
	catalog, err := standards.Load("", "")
	if err != nil {
		t.Fatalf("load standards: %v", err)
	}
	return catalog
}

func findCode(candidates []Candidate, code string) *Candidate {
	for i := range candidates {
		if candidates[i].Code == code {
			return &candidates[i]
		}
	}
	return nil
}

func TestDetectStandardMedal(t *testing.T) {
	d := NewDetector(testCatalog(t))

	candidates := d.Detect(context.Background(), Context{
		AthleteID: "athlete-1",
		Event:     "50_FR_SCY",
		Course:    "SCY",
		Gender:    "BOYS",
		Age:       10,
		TimeMs:    29000,
	})

	if c := findCode(candidates, "AAA_STANDARD"); c == nil || c.Kind != KindStandard || c.Event != "50_FR_SCY" {
		t.Fatalf("expected AAA_STANDARD, got %+v", candidates)
	}
	if findCode(candidates, "AAAA_STANDARD") != nil {
		t.Fatalf("only the best level should be reported")
	}
}

func TestDetectNoStandardForSlowTime(t *testing.T) {
	d := NewDetector(testCatalog(t))

	candidates := d.Detect(context.Background(), Context{
		Event:  "50_FR_SCY",
		Course: "SCY",
		Gender: "BOYS",
		Age:    10,
		TimeMs: 60000,
	})
	for _, c := range candidates {
		if c.Kind == KindStandard {
			t.Fatalf("unexpected standard medal: %+v", c)
		}
	}
}

func TestDetectProgressSingleTier(t *testing.T) {
	d := NewDetector(testCatalog(t))

	cases := []struct {
		prev, now int64
		want      string
	}{
		{100000, 88000, CodeProgress10Sec},
		{100000, 94000, CodeProgress5Sec},
		{100000, 96500, CodeProgress3Sec},
		{100000, 98000, ""},
		{0, 50000, ""},
	}
	for _, tc := range cases {
		candidates := d.Detect(context.Background(), Context{
			Event:      "999_FR_SCY",
			Course:     "SCY",
			PrevBestMs: tc.prev,
			TimeMs:     tc.now,
		})
		var progress []Candidate
		for _, c := range candidates {
			if c.Kind == KindProgress {
				progress = append(progress, c)
			}
		}
		if tc.want == "" {
			if len(progress) != 0 {
				t.Fatalf("prev=%d now=%d: expected no progress medal, got %+v", tc.prev, tc.now, progress)
			}
			continue
		}
		if len(progress) != 1 || progress[0].Code != tc.want {
			t.Fatalf("prev=%d now=%d: expected only %s, got %+v", tc.prev, tc.now, tc.want, progress)
		}
	}
}

func TestDetectConsistencyStreaks(t *testing.T) {
	d := NewDetector(testCatalog(t))

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	var dates []time.Time
	for i := 0; i < 30; i++ {
		dates = append(dates, start.AddDate(0, 0, i))
	}

	candidates := d.Detect(context.Background(), Context{Event: "999_FR_SCY", TrainingDates: dates})
	if findCode(candidates, CodeTraining30Days) == nil {
		t.Fatalf("expected 30-day medal for 30-day streak")
	}
	if findCode(candidates, CodeTraining60Days) != nil {
		t.Fatalf("no 60-day medal for 30-day streak")
	}

	for i := 30; i < 60; i++ {
		dates = append(dates, start.AddDate(0, 0, i))
	}
	candidates = d.Detect(context.Background(), Context{Event: "999_FR_SCY", TrainingDates: dates})
	if findCode(candidates, CodeTraining30Days) == nil || findCode(candidates, CodeTraining60Days) == nil {
		t.Fatalf("60-day streak earns both consistency medals, got %+v", candidates)
	}
}

func TestDetectStreakBrokenByGap(t *testing.T) {
	d := NewDetector(testCatalog(t))

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	var dates []time.Time
	for i := 0; i < 40; i++ {
		if i == 20 {
			continue
		}
		dates = append(dates, start.AddDate(0, 0, i))
	}

	candidates := d.Detect(context.Background(), Context{Event: "999_FR_SCY", TrainingDates: dates})
	if findCode(candidates, CodeTraining30Days) != nil {
		t.Fatalf("gap resets the streak; longest run is under 30 days")
	}
}

func TestDetectMilestones(t *testing.T) {
	d := NewDetector(testCatalog(t))

	candidates := d.Detect(context.Background(), Context{
		Event:     "999_FR_SCY",
		FirstSwim: true,
		Place:     1,
	})
	for _, code := range []string{CodeFirstCompetition, CodeTop8Finish, CodeFirstPlace} {
		if findCode(candidates, code) == nil {
			t.Fatalf("expected %s, got %+v", code, candidates)
		}
	}

	candidates = d.Detect(context.Background(), Context{Event: "999_FR_SCY", Place: 5})
	if findCode(candidates, CodeTop8Finish) == nil || findCode(candidates, CodeFirstPlace) != nil {
		t.Fatalf("fifth place earns top-8 only, got %+v", candidates)
	}

	candidates = d.Detect(context.Background(), Context{Event: "999_FR_SCY", Place: 9})
	if findCode(candidates, CodeTop8Finish) != nil {
		t.Fatalf("ninth place earns nothing, got %+v", candidates)
	}
}

func TestLongestStreakDuplicates(t *testing.T) {
	day := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	dates := []time.Time{day, day, day.AddDate(0, 0, 1)}
	if got := longestStreak(dates); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got := longestStreak(nil); got != 0 {
		t.Fatalf("expected 0 for no dates, got %d", got)
	}
}
