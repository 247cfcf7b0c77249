package standards

import (
	_ "embed"
	"encoding/json"
	"os"
	"sync/atomic"
)

//go:embed data/motivational_standards.json
var embeddedMotivational []byte

//go:embed data/champs_standards.json
var embeddedChamps []byte

// Catalog owns the current standards snapshot. Reads are lock-free;
// Reload replaces the snapshot wholesale so concurrent readers never see
// a partially updated table.
type Catalog struct {
	current atomic.Pointer[table]
}

// Load builds a catalog from the embedded standards data. When a path is
// non-empty, that file overrides the corresponding embedded document.
func Load(motivationalPath, champsPath string) (*Catalog, error) {
	motivational, err := readOrEmbedded(motivationalPath, embeddedMotivational)
	if err != nil {
		return nil, err
	}
	champs, err := readOrEmbedded(champsPath, embeddedChamps)
	if err != nil {
		return nil, err
	}

	c := &Catalog{}
	if err := c.Reload(motivational, champs); err != nil {
		return nil, err
	}
	return c, nil
}

func readOrEmbedded(path string, fallback []byte) ([]byte, error) {
	if path == "" {
		return fallback, nil
	}
	return os.ReadFile(path)
}

// Reload parses both documents and atomically swaps the snapshot in.
// On parse failure the previous snapshot stays active.
func (c *Catalog) Reload(motivational, champs []byte) error {
	t, err := parseTable(motivational, champs)
	if err != nil {
		return err
	}
	c.current.Store(t)
	return nil
}

// StandardsRow returns the motivational thresholds for an exact key.
func (c *Catalog) StandardsRow(gender, ageGroup, course, event string) (Row, error) {
	return c.current.Load().row(gender, ageGroup, course, event)
}

// QualifyingTimes returns the championship cutoffs for an exact key.
func (c *Catalog) QualifyingTimes(gender, ageGroup, event string) (Qualifying, error) {
	return c.current.Load().qualifying(gender, ageGroup, event)
}

// motivational document: gender -> ageGroup -> course -> event -> level -> ms
type motivationalDoc map[string]map[string]map[string]map[string]map[string]int64

// champs document: gender -> ageGroup -> event -> {automatic, consideration}
type champsDoc map[string]map[string]map[string]Qualifying

func parseTable(motivational, champs []byte) (*table, error) {
	var mdoc motivationalDoc
	if err := json.Unmarshal(motivational, &mdoc); err != nil {
		return nil, err
	}
	var cdoc champsDoc
	if err := json.Unmarshal(champs, &cdoc); err != nil {
		return nil, err
	}

	t := &table{
		rows:   map[rowKey]Row{},
		champs: map[champKey]Qualifying{},
	}
	for gender, ageGroups := range mdoc {
		for ageGroup, courses := range ageGroups {
			for course, events := range courses {
				for event, levels := range events {
					t.rows[rowKey{gender, ageGroup, course, event}] = Row(levels)
				}
			}
		}
	}
	for gender, ageGroups := range cdoc {
		for ageGroup, events := range ageGroups {
			for event, q := range events {
				t.champs[champKey{gender, ageGroup, event}] = q
			}
		}
	}
	return t, nil
}
