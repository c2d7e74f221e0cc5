// Package stats computes grouped accuracy and response-time summaries over
// session results.
package stats

import (
	"errors"
	"sort"

	"github.com/MarkTee/Psych403-FinalProject/experiment"
)

// ErrNoData is returned when a summary is requested over an empty result set.
var ErrNoData = errors.New("stats: no trial records")

// GroupStats holds the per-group means for one grouping key.
type GroupStats struct {
	Trials   int
	Accuracy float64 // fraction correct, 0.0-1.0
	MeanRT   float64 // seconds
}

// Summary holds the grouped outputs for one session: overall, per block, and
// per shown item count. Every grouping key present in the input appears
// exactly once.
type Summary struct {
	Overall GroupStats
	ByBlock map[int]GroupStats
	ByCount map[int]GroupStats
}

// Summarize aggregates the records. Empty input yields ErrNoData rather
// than a division by zero.
func Summarize(records experiment.Results) (*Summary, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}

	s := &Summary{
		ByBlock: make(map[int]GroupStats),
		ByCount: make(map[int]GroupStats),
	}

	blockAcc := newAccumulator()
	countAcc := newAccumulator()
	overall := &groupAccum{}
	for _, rec := range records {
		blockAcc.add(rec.Block, rec)
		countAcc.add(rec.Actual, rec)
		overall.add(rec)
	}

	s.Overall = overall.stats()
	for key, acc := range blockAcc.groups {
		s.ByBlock[key] = acc.stats()
	}
	for key, acc := range countAcc.groups {
		s.ByCount[key] = acc.stats()
	}
	return s, nil
}

// SortedKeys returns the grouping keys of m in ascending order, for stable
// report output.
func SortedKeys(m map[int]GroupStats) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

type groupAccum struct {
	trials  int
	correct int
	rtSum   float64
}

func (a *groupAccum) add(rec experiment.TrialRecord) {
	a.trials++
	if rec.Correct {
		a.correct++
	}
	a.rtSum += rec.RT
}

func (a *groupAccum) stats() GroupStats {
	return GroupStats{
		Trials:   a.trials,
		Accuracy: float64(a.correct) / float64(a.trials),
		MeanRT:   a.rtSum / float64(a.trials),
	}
}

type accumulator struct {
	groups map[int]*groupAccum
}

func newAccumulator() *accumulator {
	return &accumulator{groups: make(map[int]*groupAccum)}
}

func (a *accumulator) add(key int, rec experiment.TrialRecord) {
	g, ok := a.groups[key]
	if !ok {
		g = &groupAccum{}
		a.groups[key] = g
	}
	g.add(rec)
}
