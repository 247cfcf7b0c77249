package standards

import "errors"

// ErrNotFound means no standards row exists for the requested key. New
// events and age groups routinely lack data, so callers treat this as a
// normal outcome.
var ErrNotFound = errors.New("no standard for key")

// Levels orders motivational standards from most elite to least.
var Levels = []string{"AAAA", "AAA", "AA", "A", "BB", "B"}

// Row holds the threshold times (ms) per level for one
// (gender, age group, course, event) key.
type Row map[string]int64

// Qualifying holds the two-tier championship cutoffs for one event.
type Qualifying struct {
	AutomaticMs     int64 `json:"automatic"`
	ConsiderationMs int64 `json:"consideration"`
}

// ChampsResult reports which championship cutoffs a time meets.
type ChampsResult struct {
	Automatic     bool `json:"automatic"`
	Consideration bool `json:"consideration"`
}

// AgeGroup buckets an age in years into the standards age groups. Ages
// above the last breakpoint fall into the final open-ended bucket.
func AgeGroup(age int) string {
	switch {
	case age <= 10:
		return "10_UNDER"
	case age <= 12:
		return "11_12"
	case age <= 14:
		return "13_14"
	case age <= 16:
		return "15_16"
	default:
		return "17_18"
	}
}

type rowKey struct {
	gender   string
	ageGroup string
	course   string
	event    string
}

type champKey struct {
	gender   string
	ageGroup string
	event    string
}

// table is one immutable snapshot of the standards data. Catalog swaps
// whole snapshots, never mutates one.
type table struct {
	rows   map[rowKey]Row
	champs map[champKey]Qualifying
}

func (t *table) row(gender, ageGroup, course, event string) (Row, error) {
	row, ok := t.rows[rowKey{gender, ageGroup, course, event}]
	if !ok {
		return nil, ErrNotFound
	}
	return row, nil
}

func (t *table) qualifying(gender, ageGroup, event string) (Qualifying, error) {
	q, ok := t.champs[champKey{gender, ageGroup, event}]
	if !ok {
		return Qualifying{}, ErrNotFound
	}
	return q, nil
}
