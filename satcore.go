package satcore

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/atpg-sat/satcore/condgen"
	"github.com/atpg-sat/satcore/condlower"
	"github.com/atpg-sat/satcore/dtpg"
	"github.com/atpg-sat/satcore/justify"
	"github.com/atpg-sat/satcore/network"
	"github.com/atpg-sat/satcore/satif"
	"github.com/atpg-sat/satcore/structenc"
)

// defaultBDDThreshold bounds the legacy bdd size estimator's
// merge-until heuristic when the caller has no better number.
const defaultBDDThreshold = 4096

// JustifyStrategy maps the "just" option to a justify.Strategy.
func JustifyStrategy(opts Options) (justify.Strategy, error) {
	switch opts.Just {
	case "just1":
		return justify.Just1, nil
	case "just2":
		return justify.Just2, nil
	default:
		return 0, NewError(KindInvalidArgument, "JustifyStrategy",
			fmt.Errorf("just %q is not one of just1/just2", opts.Just))
	}
}

// LowerMethod maps the "method" option to a condlower.Method.
func LowerMethod(opts Options) (condlower.Method, error) {
	switch m := condlower.Method(opts.Method); m {
	case condlower.MethodNaive, condlower.MethodCover, condlower.MethodFactor,
		condlower.MethodAig, condlower.MethodBDD:
		return m, nil
	default:
		return "", NewError(KindInvalidArgument, "LowerMethod",
			fmt.Errorf("method %q is not one of naive/cover/factor/aig/bdd", opts.Method))
	}
}

// NewCondGenMgr builds a condgen.Mgr from opts: worker count per
// EffectiveThreads, loop bound per LoopLimit. A non-nil logger receives
// per-FFR debug events.
func NewCondGenMgr(net *network.Network, newSolver condgen.SolverFactory, opts Options, logger *zerolog.Logger) (*condgen.Mgr, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	mgr := condgen.NewMgr(net, newSolver, opts.EffectiveThreads(), opts.LoopLimit)
	if logger != nil {
		mgr.SetLogger(*logger)
	}
	return mgr, nil
}

// NewDriver builds a dtpg.Driver from opts. A non-nil logger receives
// per-fault debug events.
func NewDriver(net *network.Network, newSolver dtpg.SolverFactory, opts Options, logger *zerolog.Logger) (*dtpg.Driver, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	strategy, err := JustifyStrategy(opts)
	if err != nil {
		return nil, err
	}
	return dtpg.NewDriver(net, newSolver, dtpg.Config{Justify: strategy, Logger: logger}), nil
}

// coverOf flattens a DetCond into one (mandatory, cover) pair the
// lowering pipeline can consume. A whole-FFR Detected result passes
// through unchanged; a per-output result distributes each output's own
// mandatory cube into its cover cubes (the global mandatory is then
// empty, since different outputs need not share one).
func coverOf(dc condgen.DetCond) (network.AssignList, []network.AssignList) {
	if len(dc.PerOutput) == 0 {
		return dc.Mandatory, dc.Cover
	}
	var cover []network.AssignList
	for _, cd := range dc.PerOutput {
		for _, cube := range cd.Cover {
			merged := cd.Mandatory.Clone()
			merged = append(merged, cube...)
			cover = append(cover, merged)
		}
	}
	return nil, cover
}

// LowerConds lowers every Detected/PartialDetected DetCond in conds
// into a SAT assumption list over engine's solver, using the method
// opts selects. The returned slice is indexed like conds; entries for
// Undetected/Overflow conditions are nil. The Size totals the clauses
// and literals this call installed (the condition-lowering layer of
// CondGenStats). A non-nil logger receives one debug event per lowered
// condition.
func LowerConds(engine *structenc.StructEngine, conds []condgen.DetCond, opts Options, logger *zerolog.Logger) ([][]satif.Lit, condlower.Size, error) {
	method, err := LowerMethod(opts)
	if err != nil {
		return nil, condlower.Size{}, err
	}

	log := zerolog.Nop()
	if logger != nil {
		log = *logger
	}

	out := make([][]satif.Lit, len(conds))
	var total condlower.Size
	for i, dc := range conds {
		switch dc.Type {
		case condgen.Detected, condgen.PartialDetected:
		default:
			continue
		}
		mandatory, cover := coverOf(dc)
		assumps, size, err := condlower.Lower(engine, method, mandatory, cover, opts.Rewrite)
		if err != nil {
			kind := KindInvalidArgument
			if errors.Is(err, condlower.ErrEmptyCoverOnDetected) {
				kind = KindLogicNotApplicable
			}
			return nil, condlower.Size{}, NewError(kind, "LowerConds", err)
		}
		out[i] = assumps
		total = total.Add(size)
		log.Debug().Int("cond", i).Str("method", string(method)).
			Int("clauses", size.Clauses).Int("literals", size.Literals).Msg("lower")
	}
	return out, total, nil
}

// CalcCNFSize estimates the lowering cost of a list of DetConds: the
// summed estimate of lowering every lowerable condition with the
// method opts selects, without materializing a single clause. Callers
// compare the estimate across methods to pick one before committing.
func CalcCNFSize(conds []condgen.DetCond, opts Options) (condlower.Size, error) {
	method, err := LowerMethod(opts)
	if err != nil {
		return condlower.Size{}, err
	}
	var total condlower.Size
	for _, dc := range conds {
		switch dc.Type {
		case condgen.Detected, condgen.PartialDetected:
		default:
			continue
		}
		_, cover := coverOf(dc)
		if len(cover) == 0 {
			return condlower.Size{}, NewError(KindLogicNotApplicable, "CalcCNFSize",
				condlower.ErrEmptyCoverOnDetected)
		}
		size, err := condlower.CalcCNFSizeForMethod(method, cover, defaultBDDThreshold)
		if err != nil {
			return condlower.Size{}, NewError(KindInvalidArgument, "CalcCNFSize", err)
		}
		total = total.Add(size)
	}
	return total, nil
}
