package standards

import "errors"

// Resolve returns the most elite motivational level a time achieves for
// the athlete's age group, or ok=false when no level (or no row) matches.
// Achieving a level implies every slower level, so only the best one is
// reported.
func (c *Catalog) Resolve(timeMs int64, gender string, age int, course, event string) (level string, ok bool, err error) {
	row, err := c.StandardsRow(gender, AgeGroup(age), course, event)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}

	for _, l := range Levels {
		threshold, exists := row[l]
		if exists && timeMs <= threshold {
			return l, true, nil
		}
	}
	return "", false, nil
}

// CheckChamps evaluates a time against the championship qualifying table.
// Missing data yields a zero result and ErrNotFound.
func (c *Catalog) CheckChamps(timeMs int64, gender string, age int, event string) (ChampsResult, error) {
	q, err := c.QualifyingTimes(gender, AgeGroup(age), event)
	if err != nil {
		return ChampsResult{}, err
	}
	return ChampsResult{
		Automatic:     timeMs <= q.AutomaticMs,
		Consideration: timeMs <= q.ConsiderationMs,
	}, nil
}
