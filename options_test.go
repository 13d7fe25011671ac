package satcore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	satcore "github.com/atpg-sat/satcore"
	"github.com/atpg-sat/satcore/justify"
)

func TestParseOptions_EmptyGivesDefaults(t *testing.T) {
	opts, err := satcore.ParseOptions(nil)
	require.NoError(t, err)

	assert.False(t, opts.MultiThread)
	assert.Equal(t, 1000, opts.LoopLimit)
	assert.Equal(t, "naive", opts.Method)
	assert.Equal(t, "just1", opts.Just)
	assert.Equal(t, "simple", opts.Extractor)
	assert.Positive(t, opts.ThreadNum)
	assert.Equal(t, 1, opts.EffectiveThreads(), "single-threaded unless multi_thread is set")
}

func TestParseOptions_LimitAlias(t *testing.T) {
	opts, err := satcore.ParseOptions([]byte(`{"limit": 7}`))
	require.NoError(t, err)
	assert.Equal(t, 7, opts.LoopLimit)

	// loop_limit wins when both are present.
	opts, err = satcore.ParseOptions([]byte(`{"limit": 7, "loop_limit": 9}`))
	require.NoError(t, err)
	assert.Equal(t, 9, opts.LoopLimit)
}

func TestParseOptions_FullObject(t *testing.T) {
	opts, err := satcore.ParseOptions([]byte(`{
		"sat_param": {"seed": 3},
		"multi_thread": true,
		"thread_num": 4,
		"loop_limit": 50,
		"method": "aig",
		"rewrite": true,
		"just": "just2",
		"extractor": "simple",
		"debug": 2
	}`))
	require.NoError(t, err)

	assert.True(t, opts.MultiThread)
	assert.Equal(t, 4, opts.EffectiveThreads())
	assert.Equal(t, 50, opts.LoopLimit)
	assert.Equal(t, "aig", opts.Method)
	assert.True(t, opts.Rewrite)
	assert.Equal(t, 2, opts.Debug)
	assert.JSONEq(t, `{"seed": 3}`, string(opts.SatParam))

	strategy, err := satcore.JustifyStrategy(opts)
	require.NoError(t, err)
	assert.Equal(t, justify.Just2, strategy)
}

func TestParseOptions_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown key":    `{"methd": "naive"}`,
		"bad method":     `{"method": "bogus"}`,
		"bad just":       `{"just": "just3"}`,
		"bad extractor":  `{"extractor": "fancy"}`,
		"zero loop":      `{"loop_limit": 0}`,
		"malformed json": `{"method": `,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := satcore.ParseOptions([]byte(in))
			require.Error(t, err)

			var serr *satcore.Error
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, satcore.KindInvalidArgument, serr.Kind)
		})
	}
}
