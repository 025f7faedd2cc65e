package rollup

import (
	"github.com/google/uuid"
	"github.com/initiativelab/backend/internal/types"
)

// Stage is the key of a governance stage. The engine treats stages as
// opaque strings; the closed set of valid stages is enforced by the
// persistence layer.
type Stage string

// StageSet is a set of stage keys used to filter initiatives.
// The empty set excludes every initiative.
type StageSet map[Stage]struct{}

// NewStageSet returns a StageSet containing the given stages.
func NewStageSet(stages ...Stage) StageSet {
	set := make(StageSet, len(stages))
	for _, stage := range stages {
		set[stage] = struct{}{}
	}

	return set
}

// Contains reports whether the stage is in the set.
func (s StageSet) Contains(stage Stage) bool {
	_, ok := s[stage]
	return ok
}

// Entry is one ledger line within a kind: the planned monthly
// distribution and the sparse actuals recorded so far. A month missing
// from Actuals means "not yet recorded", never zero.
type Entry struct {
	Distribution map[types.Month]float64
	Actuals      map[types.Month]float64
}

// Initiative is the engine's view of one initiative: its current stage
// and the financial line entries per stage and kind. Only the entries
// under ActiveStage participate in stage-filtered rollups.
type Initiative struct {
	ID          uuid.UUID
	ActiveStage Stage
	Financials  map[Stage]map[Kind][]Entry
}

// Selector maps a line entry to the month series to aggregate.
// A nil return is treated as an empty series.
type Selector func(Entry) map[types.Month]float64

// PlannedAmounts selects the planned distribution of an entry.
func PlannedAmounts(e Entry) map[types.Month]float64 {
	return e.Distribution
}

// ActualAmounts selects the recorded actuals of an entry.
func ActualAmounts(e Entry) map[types.Month]float64 {
	return e.Actuals
}
