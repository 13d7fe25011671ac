package condgen

import (
	"github.com/atpg-sat/satcore/booldiff"
	"github.com/atpg-sat/satcore/network"
	"github.com/atpg-sat/satcore/satif"
	"github.com/atpg-sat/satcore/structenc"
)

// RootCond runs the condition-enumeration algorithm for one FFR root,
// using a freshly constructed StructEngine over solver. K bounds the number of cubes
// enumerated per unit (whole-FFR, or one output during the per-output
// restart) before falling back. The returned Stats breaks down this
// FFR's CNF contribution into the good-machine and boolean-difference
// layers.
func RootCond(net *network.Network, solver satif.Solver, r network.NodeID, k int) (DetCond, Stats) {
	baseC, baseL := solver.CnfSize()

	engine := structenc.New(net, solver)
	enc := booldiff.New(r)
	engine.AddSubenc(enc)
	engine.MakeCNFForNode(r, network.FrameCur)

	kind, mand, cover, enumC, enumL := enumerateUnit(engine, enc, enc.PropVar(), -1, k)

	var dc DetCond
	switch kind {
	case unitUndetected:
		dc = DetCond{Type: Undetected}
	case unitOverflow:
		dc = DetCond{Type: Overflow, OutputList: enc.OutputList()}
	case unitDetected:
		dc = DetCond{Type: Detected, Mandatory: mand, Cover: cover}
	default: // unitOverflowLoop: K exhausted or aborted mid-enumeration
		var restartC, restartL int
		dc, restartC, restartL = perOutputRestart(engine, enc, k)
		enumC += restartC
		enumL += restartL
	}

	totalC, totalL := solver.CnfSize()
	ownBoolDiffC, ownBoolDiffL := enc.CNFStats()
	stats := Stats{
		BoolDiffClauses:  ownBoolDiffC + enumC,
		BoolDiffLiterals: ownBoolDiffL + enumL,
	}
	stats.GoodMachineClauses = (totalC - baseC) - stats.BoolDiffClauses
	stats.GoodMachineLiterals = (totalL - baseL) - stats.BoolDiffLiterals

	return dc, stats
}

// perOutputRestart re-runs the cube enumeration anchored on each
// output's own propagation literal in turn. It also returns the
// cumulative enumeration-overhead CNF size (blocking clauses) across
// every output pass, for the caller's Stats accounting.
func perOutputRestart(engine *structenc.StructEngine, enc *booldiff.BoolDiffEnc, k int) (DetCond, int, int) {
	outs := enc.OutputList()
	var perOutput []CondData
	var residual []network.NodeID
	var enumC, enumL int

	for i, o := range outs {
		kind, mand, cover, c, l := enumerateUnit(engine, enc, enc.OutputPropVar(i), i, k)
		enumC += c
		enumL += l
		switch kind {
		case unitDetected:
			perOutput = append(perOutput, CondData{Output: o, Mandatory: mand, Cover: cover})
		case unitOverflow, unitOverflowLoop:
			residual = append(residual, o)
		case unitUndetected:
			// Genuinely not propagated through this particular output;
			// neither a success nor a resource abort, so it contributes
			// to neither list (only success and abort are accounted).
		}
	}

	var dc DetCond
	switch {
	case len(perOutput) > 0 && len(residual) == 0:
		dc = DetCond{Type: PartialDetected, PerOutput: perOutput}
	case len(perOutput) > 0 && len(residual) > 0:
		dc = DetCond{Type: PartialDetected, PerOutput: perOutput, OutputList: residual}
	case len(residual) > 0:
		dc = DetCond{Type: Overflow, OutputList: residual}
	default:
		dc = DetCond{Type: Undetected}
	}
	return dc, enumC, enumL
}

// unitKind is the outcome of one cube enumeration,
// anchored on a single activation literal (either the whole-FFR pvar or
// one output's own propagation literal).
type unitKind int

const (
	unitUndetected unitKind = iota
	unitDetected
	unitOverflow     // the anchoring solve itself aborted
	unitOverflowLoop // the cube-enumeration loop ran out of budget
)

// sensitizedOutputIndex scans enc's outputs for the one the model marks
// as propagating, in ascending OutputList order.
func sensitizedOutputIndex(enc *booldiff.BoolDiffEnc, model satif.Model) (int, bool) {
	for i := range enc.OutputList() {
		if model.Value(enc.OutputPropVar(i)) == satif.True {
			return i, true
		}
	}
	return 0, false
}

// enumerateUnit runs one cube enumeration under activation literal act: an
// initial solve, mandatory-literal pruning of the first cube, then up to
// k-1 further cubes via blocking clauses. out is the OutputList index
// act anchors on, whose cubes are extracted; out < 0 (the whole-FFR
// pvar) extracts for the first sensitized output instead. enumC/enumL are the
// clause/literal count the blocking clauses themselves added to the
// solver, for Stats accounting; every literal referenced by a target
// Assign belongs to the cone and is already materialized, so nothing
// else in this function grows the good-machine CNF.
func enumerateUnit(engine *structenc.StructEngine, enc *booldiff.BoolDiffEnc, act satif.Lit, out, k int) (kind unitKind, mandatory network.AssignList, cover []network.AssignList, enumC, enumL int) {
	solver := engine.Solver()
	blockBaseC, blockBaseL := solver.CnfSize()
	defer func() {
		c, l := solver.CnfSize()
		enumC, enumL = c-blockBaseC, l-blockBaseL
	}()

	res, model := engine.Solve([]satif.Lit{act})
	switch res {
	case satif.Unsat:
		return unitUndetected, nil, nil, 0, 0
	case satif.Unknown:
		return unitOverflow, nil, nil, 0, 0
	}

	idx, ok := out, true
	if out < 0 {
		idx, ok = sensitizedOutputIndex(enc, model)
	}
	if !ok {
		panic("condgen: propagation literal true but no output sensitized")
	}
	cube, err := enc.ExtractSufficientCondition(model, idx)
	if err != nil {
		panic(err)
	}

	for _, a := range cube {
		negLit := engine.ConvToLiteral(a.Not())
		r, _ := engine.Solve([]satif.Lit{act, negLit})
		if r == satif.Unsat {
			mandatory, err = mandatory.Add(a)
			if err != nil {
				panic(err)
			}
		}
	}
	cube = cube.Diff(mandatory)
	if len(cube) == 0 {
		return unitDetected, mandatory, []network.AssignList{mandatory}, 0, 0
	}

	cover = []network.AssignList{cube}
	cur := cube
	completed := false

	for i := 0; i < k-1; i++ {
		blockLits := make([]satif.Lit, len(cur))
		for j, a := range cur {
			blockLits[j] = engine.ConvToLiteral(a.Not())
		}
		solver.AddClause(blockLits...)

		assumps := make([]satif.Lit, 0, len(mandatory)+1)
		assumps = append(assumps, act)
		for _, a := range mandatory {
			assumps = append(assumps, engine.ConvToLiteral(a))
		}
		res2, model2 := engine.Solve(assumps)
		if res2 == satif.Unsat {
			completed = true
			break
		}
		if res2 == satif.Unknown {
			break
		}

		idx2, ok2 := out, true
		if out < 0 {
			idx2, ok2 = sensitizedOutputIndex(enc, model2)
		}
		if !ok2 {
			panic("condgen: propagation literal true but no output sensitized")
		}
		newCube, err := enc.ExtractSufficientCondition(model2, idx2)
		if err != nil {
			panic(err)
		}
		newCube = newCube.Diff(mandatory)
		if len(newCube) == 0 {
			return unitDetected, mandatory, []network.AssignList{mandatory}, 0, 0
		}
		cover = append(cover, newCube)
		cur = newCube
	}

	if completed {
		return unitDetected, mandatory, cover, 0, 0
	}
	return unitOverflowLoop, mandatory, cover, 0, 0
}
