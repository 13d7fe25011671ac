package satcore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"runtime"
)

// Options is the typed form of the JSON-shaped configuration map. Keys
// missing from a JSON object decoded by ParseOptions take the documented
// defaults; a zero-valued Options does not (Validate rejects it), so
// start from DefaultOptions when setting fields directly.
type Options struct {
	// SatParam is passed through opaquely to the solver factory.
	SatParam json.RawMessage `json:"sat_param,omitempty"`
	// MultiThread enables the multi-worker CondGen driver.
	MultiThread bool `json:"multi_thread"`
	// ThreadNum is the worker count when MultiThread is set; it
	// defaults to the hardware concurrency.
	ThreadNum int `json:"thread_num"`
	// LoopLimit is K, the maximum number of cubes enumerated per
	// CondGen result. The JSON keys "loop_limit" and "limit" are
	// synonyms; "loop_limit" wins when both are present.
	LoopLimit int `json:"loop_limit"`
	// Method selects the condition-lowering strategy: "naive",
	// "cover", "factor", "aig", or "bdd".
	Method string `json:"method"`
	// Rewrite enables the AIG local-rewriting pass; only meaningful
	// with Method "aig".
	Rewrite bool `json:"rewrite"`
	// Just selects the back-trace strategy: "just1" or "just2".
	Just string `json:"just"`
	// Extractor selects the sufficient-condition extractor; "simple"
	// is the only variant currently defined.
	Extractor string `json:"extractor"`
	// Debug is the diagnostic verbosity level.
	Debug int `json:"debug"`
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		MultiThread: false,
		ThreadNum:   runtime.NumCPU(),
		LoopLimit:   1000,
		Method:      "naive",
		Rewrite:     false,
		Just:        "just1",
		Extractor:   "simple",
	}
}

// ParseOptions decodes a JSON object into an Options, applying defaults
// for absent keys and validating the closed enums. Unknown keys are an
// invalid-argument error rather than being silently dropped, so a
// misspelled option never decays into a default.
func ParseOptions(data []byte) (Options, error) {
	opts := DefaultOptions()
	if len(data) == 0 {
		return opts, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Options{}, NewError(KindInvalidArgument, "ParseOptions", err)
	}
	for key := range raw {
		switch key {
		case "sat_param", "multi_thread", "thread_num", "loop_limit", "limit",
			"method", "rewrite", "just", "extractor", "debug":
		default:
			return Options{}, NewError(KindInvalidArgument, "ParseOptions",
				fmt.Errorf("unknown option %q", key))
		}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	type alias struct {
		Options
		Limit *int `json:"limit"`
	}
	a := alias{Options: opts}
	if err := dec.Decode(&a); err != nil {
		return Options{}, NewError(KindInvalidArgument, "ParseOptions", err)
	}
	opts = a.Options
	if _, hasLoop := raw["loop_limit"]; !hasLoop && a.Limit != nil {
		opts.LoopLimit = *a.Limit
	}

	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Validate checks the closed enums and ranges.
func (o Options) Validate() error {
	switch o.Method {
	case "naive", "cover", "factor", "aig", "bdd":
	default:
		return NewError(KindInvalidArgument, "Options.Validate",
			fmt.Errorf("method %q is not one of naive/cover/factor/aig/bdd", o.Method))
	}
	switch o.Just {
	case "just1", "just2":
	default:
		return NewError(KindInvalidArgument, "Options.Validate",
			fmt.Errorf("just %q is not one of just1/just2", o.Just))
	}
	if o.Extractor != "simple" {
		return NewError(KindInvalidArgument, "Options.Validate",
			fmt.Errorf("extractor %q is not defined", o.Extractor))
	}
	if o.ThreadNum < 0 {
		return NewError(KindInvalidArgument, "Options.Validate",
			fmt.Errorf("thread_num %d is negative", o.ThreadNum))
	}
	if o.LoopLimit < 1 {
		return NewError(KindInvalidArgument, "Options.Validate",
			fmt.Errorf("loop_limit %d must be at least 1", o.LoopLimit))
	}
	return nil
}

// EffectiveThreads returns the worker count a driver should actually
// spawn: 1 unless MultiThread is set.
func (o Options) EffectiveThreads() int {
	if !o.MultiThread {
		return 1
	}
	if o.ThreadNum > 0 {
		return o.ThreadNum
	}
	return runtime.NumCPU()
}
