// Package affinity maps a computed binding energy to a qualitative verdict
// via an ordered threshold table.
package affinity

import (
	"fmt"
	"math"
	"sort"

	"github.com/aristath/qbind/internal/domain"
)

// Table is a validated, ordered threshold table. An energy classifies under
// the first threshold whose bound it is strictly less than, so the most
// extreme (most negative) bound comes first and the final +Inf bound catches
// everything else.
//
// The comparison is deliberately strict: an energy exactly on a bound falls
// through to the next label. The bounds themselves are hand-chosen domain
// constants, not physically derived.
type Table struct {
	thresholds []domain.AffinityThreshold
}

// NewTable validates the threshold list and builds a Table.
func NewTable(thresholds []domain.AffinityThreshold) (*Table, error) {
	if len(thresholds) == 0 {
		return nil, fmt.Errorf("%w: threshold table is empty", domain.ErrConstruction)
	}
	if !sort.SliceIsSorted(thresholds, func(i, j int) bool {
		return thresholds[i].Bound < thresholds[j].Bound
	}) {
		return nil, fmt.Errorf("%w: threshold bounds must be strictly ascending", domain.ErrConstruction)
	}
	for i := 1; i < len(thresholds); i++ {
		if thresholds[i].Bound == thresholds[i-1].Bound {
			return nil, fmt.Errorf("%w: duplicate threshold bound %g", domain.ErrConstruction, thresholds[i].Bound)
		}
	}
	last := thresholds[len(thresholds)-1]
	if !math.IsInf(last.Bound, 1) {
		return nil, fmt.Errorf("%w: final threshold bound must be +Inf to make classification total", domain.ErrConstruction)
	}
	for _, t := range thresholds {
		if t.Label == "" {
			return nil, fmt.Errorf("%w: threshold label is empty", domain.ErrConstruction)
		}
	}

	copied := make([]domain.AffinityThreshold, len(thresholds))
	copy(copied, thresholds)
	return &Table{thresholds: copied}, nil
}

// Classify returns the verdict label for an energy. Total over the real line:
// the +Inf catch-all guarantees a match.
func (t *Table) Classify(energy float64) string {
	for _, th := range t.thresholds {
		if energy < th.Bound {
			return th.Label
		}
	}
	// Unreachable after NewTable validation; NaN energies are rejected by the
	// evaluator before a verdict is ever requested.
	return t.thresholds[len(t.thresholds)-1].Label
}

// Thresholds returns a copy of the validated threshold list.
func (t *Table) Thresholds() []domain.AffinityThreshold {
	out := make([]domain.AffinityThreshold, len(t.thresholds))
	copy(out, t.thresholds)
	return out
}
