package points

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"backend-swimtrack/internal/swimtime"
)

// ErrUnknownEvent means no base time exists for the event.
var ErrUnknownEvent = errors.New("no base time for event")

// Base times in milliseconds, keyed by course then "distance_stroke".
// Values follow the FINA world-record reference tables.
var baseTimes = map[string]map[string]int64{
	"SCY": {
		"50_FR": 18470, "100_FR": 40890, "200_FR": 89790, "500_FR": 236360,
		"1000_FR": 500230, "1650_FR": 841500,
		"50_BK": 21070, "100_BK": 45890, "200_BK": 98760,
		"50_BR": 23820, "100_BR": 51730, "200_BR": 112450,
		"50_FL": 20240, "100_FL": 44840, "200_FL": 98150,
		"100_IM": 46960, "200_IM": 103290, "400_IM": 223840,
	},
	"LCM": {
		"50_FR": 20910, "100_FR": 46910, "200_FR": 102000, "400_FR": 220070,
		"800_FR": 452120, "1500_FR": 871300,
		"50_BK": 24000, "100_BK": 51850, "200_BK": 111920,
		"50_BR": 25950, "100_BR": 56880, "200_BR": 126120,
		"50_FL": 22270, "100_FL": 49450, "200_FL": 110730,
		"200_IM": 114000, "400_IM": 243840,
	},
}

func baseTimeFor(event string) (int64, error) {
	parts := strings.Split(event, "_")
	if len(parts) != 3 {
		return 0, ErrUnknownEvent
	}
	course, ok := baseTimes[parts[2]]
	if !ok {
		return 0, ErrUnknownEvent
	}
	base, ok := course[parts[0]+"_"+parts[1]]
	if !ok {
		return 0, ErrUnknownEvent
	}
	return base, nil
}

// Calculate returns FINA points for a time: round(1000 * (base/actual)^3).
// Faster times strictly score higher.
func Calculate(timeMs int64, event string) (int, error) {
	if timeMs <= 0 {
		return 0, ErrUnknownEvent
	}
	base, err := baseTimeFor(event)
	if err != nil {
		return 0, err
	}
	ratio := float64(base) / float64(timeMs)
	return int(math.Round(1000 * ratio * ratio * ratio)), nil
}

// TimeForPoints inverts Calculate: base / (points/1000)^(1/3), rounded to
// hundredths of a second.
func TimeForPoints(pts int, event string) (int64, error) {
	if pts <= 0 {
		return 0, ErrUnknownEvent
	}
	base, err := baseTimeFor(event)
	if err != nil {
		return 0, err
	}
	t := float64(base) / math.Cbrt(float64(pts)/1000)
	return int64(math.Round(t/10)) * 10, nil
}

// TimeStandards maps point-based achievement levels to the times needed
// to reach them for the given event.
func TimeStandards(event string) (map[string]int64, error) {
	levels := map[string]int{
		"Elite":           900,
		"National":        800,
		"Junior National": 700,
		"Regional":        600,
		"Age Group":       500,
	}
	out := make(map[string]int64, len(levels))
	for name, pts := range levels {
		t, err := TimeForPoints(pts, event)
		if err != nil {
			return nil, err
		}
		out[name] = t
	}
	return out, nil
}

// Strategy describes a pacing plan for a target time.
type Strategy struct {
	SplitsMs    []int64  `json:"splits_ms"`
	Splits      []string `json:"splits"`
	Pacing      string   `json:"pacing"`
	Description string   `json:"description"`
}

// RaceStrategy returns distance-banded split targets for the event.
// Sprints front-load the first half, 200s build through the middle, and
// longer races hold near-even pace with a slight negative split. The plan
// depends only on the event distance.
func RaceStrategy(event string, targetMs int64) (Strategy, error) {
	distText, _, ok := strings.Cut(event, "_")
	if !ok {
		return Strategy{}, ErrUnknownEvent
	}
	distance, err := strconv.Atoi(distText)
	if err != nil || distance <= 0 || targetMs <= 0 {
		return Strategy{}, ErrUnknownEvent
	}

	target := float64(targetMs)
	var s Strategy
	switch {
	case distance <= 100:
		s.SplitsMs = []int64{int64(target * 0.485), int64(target * 0.515)}
		s.Pacing = "Sprint"
		s.Description = "Fast start, maintain speed"
	case distance <= 200:
		quarter := target / 4
		for _, f := range []float64{0.95, 1.01, 1.02, 1.02} {
			s.SplitsMs = append(s.SplitsMs, int64(quarter*f))
		}
		s.Pacing = "Build"
		s.Description = "Controlled start, build through middle, strong finish"
	default:
		hundreds := distance / 100
		base := target / float64(hundreds)
		for i := 0; i < hundreds; i++ {
			factor := 1 + (float64(hundreds)/2-float64(i))*0.005
			s.SplitsMs = append(s.SplitsMs, int64(base*factor))
		}
		s.Pacing = "Even"
		s.Description = "Even pacing with slight negative split"
	}
	for _, ms := range s.SplitsMs {
		s.Splits = append(s.Splits, swimtime.Format(ms))
	}
	return s, nil
}

// Pace returns the per-100 pace and cumulative split targets for a swim.
func Pace(timeMs int64, distance int) (per100 int64, cumulative []int64) {
	if distance <= 0 || timeMs <= 0 {
		return 0, nil
	}
	per100 = timeMs * 100 / int64(distance)
	splits := (distance + 99) / 100
	for i := 1; i <= splits; i++ {
		cumulative = append(cumulative, per100*int64(i))
	}
	return per100, cumulative
}
