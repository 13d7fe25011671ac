package dtpg

import (
	"time"

	"github.com/atpg-sat/satcore/satif"
)

// Stats is the statistics block of a test-generation run: outcome
// counts, phase timings, and the solver's cumulative and
// maximum-per-call internal counters. It is merge-friendly: Add sums
// the additive fields and max-preserves SATStatsMax, so per-worker
// Stats fold into one total.
type Stats struct {
	DetectCount   int
	UntestCount   int
	AbortCount    int

	CNFGenCount   int
	CNFGenTime    time.Duration
	SATSolveTime  time.Duration
	BacktraceTime time.Duration

	SATStatsTotal satif.Stats
	SATStatsMax   satif.Stats
}

// Add returns the merge of s and other.
func (s Stats) Add(other Stats) Stats {
	return Stats{
		DetectCount:   s.DetectCount + other.DetectCount,
		UntestCount:   s.UntestCount + other.UntestCount,
		AbortCount:    s.AbortCount + other.AbortCount,
		CNFGenCount:   s.CNFGenCount + other.CNFGenCount,
		CNFGenTime:    s.CNFGenTime + other.CNFGenTime,
		SATSolveTime:  s.SATSolveTime + other.SATSolveTime,
		BacktraceTime: s.BacktraceTime + other.BacktraceTime,
		SATStatsTotal: s.SATStatsTotal.Add(other.SATStatsTotal),
		SATStatsMax:   s.SATStatsMax.Max(other.SATStatsMax),
	}
}

// update folds one solve call's delta counters into the running totals.
func (s *Stats) update(delta satif.Stats) {
	s.SATStatsTotal = s.SATStatsTotal.Add(delta)
	s.SATStatsMax = s.SATStatsMax.Max(delta)
}
