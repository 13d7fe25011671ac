package dtpg

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/atpg-sat/satcore/booldiff"
	"github.com/atpg-sat/satcore/justify"
	"github.com/atpg-sat/satcore/network"
	"github.com/atpg-sat/satcore/satif"
	"github.com/atpg-sat/satcore/structenc"
)

// SolverFactory constructs a fresh, independent SAT solver. The driver
// calls it once per fault so that one fault's faulty-machine clauses
// never linger in another fault's solver.
type SolverFactory func() satif.Solver

// Config carries the driver's tunables. The zero value selects the
// Just1 back-trace strategy and a no-op logger.
type Config struct {
	// Justify selects the back-trace strategy used to reduce internal
	// assignments to a PPI-only vector.
	Justify justify.Strategy
	// Logger, when non-nil, receives per-fault debug events. nil means
	// zerolog.Nop().
	Logger *zerolog.Logger
}

// Driver generates one test-generation Result per fault: a detecting
// TestVector, an untestability proof, or an abort. It accumulates a
// Stats block across every Run call.
type Driver struct {
	net       *network.Network
	newSolver SolverFactory
	cfg       Config
	logger    zerolog.Logger

	stats Stats

	inputIDs   []network.NodeID
	inputIndex map[network.NodeID]int
}

// NewDriver returns a Driver over net, drawing one solver per fault
// from newSolver.
func NewDriver(net *network.Network, newSolver SolverFactory, cfg Config) *Driver {
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	d := &Driver{
		net:        net,
		newSolver:  newSolver,
		cfg:        cfg,
		logger:     logger,
		inputIndex: make(map[network.NodeID]int),
	}
	for id := 0; id < net.NodeNum(); id++ {
		n := net.Node(network.NodeID(id))
		if n.Kind() == network.KindPPI {
			d.inputIndex[n.ID()] = len(d.inputIDs)
			d.inputIDs = append(d.inputIDs, n.ID())
		}
	}
	return d
}

// Stats returns the statistics accumulated so far.
func (d *Driver) Stats() Stats { return d.stats }

// InputIDs returns the PPI node ids backing each TestVector input
// position, in position order.
func (d *Driver) InputIDs() []network.NodeID { return d.inputIDs }

// Run generates a test for one fault. The returned error is non-nil
// only for a caller contract violation (a fault whose excitation and
// FFR-propagation conditions conflict outright); solver aborts are not
// errors and surface as StatusUndetected.
func (d *Driver) Run(f *network.Fault) (Result, error) {
	solver := d.newSolver()
	engine := structenc.New(d.net, solver)
	if f.Model() == network.TransitionDelay {
		engine.SetTwoFrame(true)
	}
	enc := booldiff.NewForFault(f)
	engine.AddSubenc(enc)

	start := time.Now()
	engine.MakeCNFForNode(f.TargetNode(), network.FrameCur)

	cond := f.ExcitationCondition()
	var err error
	for _, a := range f.FFRPropagateCondition() {
		cond, err = cond.Add(a)
		if err != nil {
			return Result{}, err
		}
	}

	assumps := make([]satif.Lit, 0, len(cond)+1)
	assumps = append(assumps, enc.PropVar())
	for _, a := range cond {
		assumps = append(assumps, engine.ConvToLiteral(a))
	}
	d.stats.CNFGenCount++
	d.stats.CNFGenTime += time.Since(start)

	before := solver.GetStats()
	solveStart := time.Now()
	res, model := engine.Solve(assumps)
	d.stats.SATSolveTime += time.Since(solveStart)
	d.stats.update(subStats(solver.GetStats(), before))

	switch res {
	case satif.Unsat:
		d.stats.UntestCount++
		d.logger.Debug().Int("fault", int(f.ID())).Str("status", "untestable").Msg("dtpg")
		return Result{Status: StatusUntestable}, nil
	case satif.Unknown:
		d.stats.AbortCount++
		d.logger.Debug().Int("fault", int(f.ID())).Str("status", "abort").Msg("dtpg")
		return Result{Status: StatusUndetected}, nil
	}

	backStart := time.Now()
	idx, ok := sensitizedOutput(enc, model)
	if !ok {
		panic("dtpg: propagation literal true but no output sensitized")
	}
	cube, err := enc.ExtractSufficientCondition(model, idx)
	if err != nil {
		// The model fixes every literal in the satisfied cone, so an
		// undetermined literal means the cone and the model disagree.
		panic(err)
	}

	targets := cond
	for _, a := range cube {
		targets, err = targets.Add(a)
		if err != nil {
			// Every value came out of the same satisfying model; a
			// conflict would mean the model is inconsistent with itself.
			panic(err)
		}
	}

	j := justify.New(d.cfg.Justify, d.net, engine.GVarMap(), engine.HVarMap(), model)
	pi := j.Justify(targets)
	d.stats.BacktraceTime += time.Since(backStart)

	tv := d.vectorFrom(f, pi, engine, model)
	d.stats.DetectCount++
	d.logger.Debug().Int("fault", int(f.ID())).Str("status", "detected").Stringer("tv", tv).Msg("dtpg")
	return Result{Status: StatusDetected, TestVector: tv}, nil
}

// RunAll generates a test for every representative fault, in fault-list
// order. A fault whose Run returns a contract-violation error is
// reported StatusUndetected and logged; the remaining faults still run.
func (d *Driver) RunAll() []Result {
	faults := d.net.RepFaultList()
	results := make([]Result, len(faults))
	for i, f := range faults {
		r, err := d.Run(f)
		if err != nil {
			d.logger.Warn().Int("fault", int(f.ID())).Err(err).Msg("dtpg: fault skipped")
			r = Result{Status: StatusUndetected}
		}
		results[i] = r
	}
	return results
}

// sensitizedOutput scans enc's outputs for one the model marks as
// propagating, in ascending OutputList order.
func sensitizedOutput(enc *booldiff.BoolDiffEnc, model satif.Model) (int, bool) {
	for i := range enc.OutputList() {
		if model.Value(enc.OutputPropVar(i)) == satif.True {
			return i, true
		}
	}
	return 0, false
}

// vectorFrom packs a PPI-only AssignList into a TestVector. Under the
// transition model the vector has two frames; DFF-output positions at
// frame 1 are filled from the model (their value is implied by the
// frame-0 state, and the simulator expects the captured launch value to
// be visible in the vector).
func (d *Driver) vectorFrom(f *network.Fault, pi network.AssignList, engine *structenc.StructEngine, model satif.Model) TestVector {
	frames := 1
	if f.Model() == network.TransitionDelay {
		frames = 2
	}
	tv := NewTestVector(len(d.inputIDs), frames)

	for _, a := range pi {
		idx, ok := d.inputIndex[a.Node]
		if !ok {
			panic("dtpg: justified assignment on a non-PPI node")
		}
		frame := 0
		if frames == 2 && a.Frame == network.FrameCur {
			frame = 1
		}
		v := Val0
		if a.Value {
			v = Val1
		}
		tv.SetVal(idx, frame, v)
	}

	if frames == 2 {
		for i, q := range d.inputIDs {
			if _, ok := d.net.DFFInput(q); !ok {
				continue
			}
			if l, ok := engine.GVarMap().Lit(q); ok {
				switch model.Value(l) {
				case satif.True:
					tv.SetVal(i, 1, Val1)
				case satif.False:
					tv.SetVal(i, 1, Val0)
				}
			}
		}
	}
	return tv
}

func subStats(a, b satif.Stats) satif.Stats {
	return satif.Stats{
		Restarts:     a.Restarts - b.Restarts,
		Conflicts:    a.Conflicts - b.Conflicts,
		Decisions:    a.Decisions - b.Decisions,
		Propagations: a.Propagations - b.Propagations,
	}
}
