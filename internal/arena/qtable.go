package arena

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// QTable is one agent's learned action-value map. It grows lazily: an
// unseen (state, action) pair reads as 0. Each table is exclusively owned
// by a single agent and never shared.
type QTable struct {
	values    map[string]float64
	warnLimit int
	warned    bool
}

func NewQTable(warnLimit int) *QTable {
	return &QTable{values: map[string]float64{}, warnLimit: warnLimit}
}

func qKey(s State, a Action) string {
	return s.Key() + ":" + strconv.Itoa(int(a))
}

func (q *QTable) Get(s State, a Action) float64 {
	return q.values[qKey(s, a)]
}

func (q *QTable) Set(s State, a Action, v float64) {
	q.values[qKey(s, a)] = v
	if !q.warned && q.warnLimit > 0 && len(q.values) > q.warnLimit {
		q.warned = true
		glog.Warningf("q-table grew past %d entries; discretization may be too fine", q.warnLimit)
	}
}

// Max returns max_a Q(s,a) over the full action enumeration, defaulting
// unseen entries to 0. This is the off-policy bootstrap target, so it does
// not filter by current legality.
func (q *QTable) Max(s State) float64 {
	best := 0.0
	first := true
	for a := Action(0); a < actionCount; a++ {
		v := q.values[qKey(s, a)]
		if first || v > best {
			best = v
			first = false
		}
	}
	return best
}

// Len reports the number of learned entries.
func (q *QTable) Len() int { return len(q.values) }

// Save writes the table as JSON. Load of the written file reconstructs an
// identical mapping.
func (q *QTable) Save(path string) error {
	b, err := json.MarshalIndent(q.values, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal q-table")
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return errors.Wrapf(err, "write q-table %s", path)
	}
	return nil
}

// Load replaces the table contents from a file written by Save.
func (q *QTable) Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read q-table %s", path)
	}
	values := map[string]float64{}
	if err := json.Unmarshal(b, &values); err != nil {
		return errors.Wrapf(err, "parse q-table %s", path)
	}
	q.values = values
	return nil
}
