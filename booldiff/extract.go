package booldiff

import (
	"github.com/atpg-sat/satcore/extract"
	"github.com/atpg-sat/satcore/network"
	"github.com/atpg-sat/satcore/satif"
)

// ExtractSufficientCondition recovers a sufficient AssignList for the
// outputIndex'th output in OutputList order, given a satisfied model in
// which that output's propagation literal is true. It requires no
// further SAT call: the model already determines every literal in the
// cone.
func (b *BoolDiffEnc) ExtractSufficientCondition(model satif.Model, outputIndex int) (network.AssignList, error) {
	ex := extract.New(nil)
	return ex.Extract(b, model, b.outputs[outputIndex])
}

// ExtractSufficientConditionAll recovers one sufficient AssignList per
// output whose propagation literal the model sets true.
func (b *BoolDiffEnc) ExtractSufficientConditionAll(model satif.Model) ([]network.AssignList, error) {
	ex := extract.New(nil)
	return ex.ExtractAll(b, model, b.outputs)
}
