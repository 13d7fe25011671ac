package condgen

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/atpg-sat/satcore/network"
	"github.com/atpg-sat/satcore/satif"
)

// SolverFactory constructs a fresh, independent SAT solver. CondGenMgr
// calls it once per worker goroutine, never sharing a solver (or
// anything else SAT-related) across workers.
type SolverFactory func() satif.Solver

// Mgr dispatches RootCond over every FFR of a Network across a fixed
// pool of worker goroutines; each FFR is an independent work unit.
type Mgr struct {
	net       *network.Network
	newSolver SolverFactory
	threads   int
	loopLimit int
	logger    zerolog.Logger
}

// NewMgr returns a Mgr over net. threads <= 0 defaults to
// runtime.NumCPU(); loopLimit <= 0 defaults to 1000, matching the
// configuration default of the "loop_limit"/"limit" option.
func NewMgr(net *network.Network, newSolver SolverFactory, threads, loopLimit int) *Mgr {
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	if loopLimit <= 0 {
		loopLimit = 1000
	}
	return &Mgr{net: net, newSolver: newSolver, threads: threads, loopLimit: loopLimit, logger: zerolog.Nop()}
}

// SetLogger routes per-FFR debug events to logger; the default is a
// no-op logger.
func (m *Mgr) SetLogger(logger zerolog.Logger) { m.logger = logger }

// MakeCond runs RootCond for every FFR in the Network and returns the
// results indexed by FFR id, plus the sum of every FFR's Stats. Each
// index is written by exactly one worker; the returned slice is safe
// to read once MakeCond returns.
func (m *Mgr) MakeCond() ([]DetCond, Stats) {
	n := m.net.FFRNum()
	results := make([]DetCond, n)

	var next int64 // shared FFR-id dispenser; a single atomic add, nothing more
	var mu sync.Mutex
	var total Stats
	var wg sync.WaitGroup

	workers := m.threads
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			solver := m.newSolver()
			var local Stats
			for {
				id := atomic.AddInt64(&next, 1) - 1
				if id >= int64(n) {
					break
				}
				ffr := m.net.FFR(int(id))
				dc, stats := RootCond(m.net, solver, ffr.Root(), m.loopLimit)
				results[id] = dc
				local = local.Add(stats)
				m.logger.Debug().Int("ffr", int(id)).Stringer("type", dc.Type).Msg("condgen")
			}
			mu.Lock()
			total = total.Add(local)
			mu.Unlock()
		}()
	}
	wg.Wait()

	return results, total
}
