package bindtests

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bindgen/internal/catalog"
	"github.com/roach88/bindgen/internal/emit"
	"github.com/roach88/bindgen/internal/ir"
)

func TestExpectedGolden(t *testing.T) {
	f, err := Expected(catalog.API(), Sequence())
	require.NoError(t, err)
	assert.Equal(t, Path, f.Path)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "bindtests.expected", f.Content)
}

func TestSequenceResolves(t *testing.T) {
	api := catalog.API()
	for _, cmd := range Sequence() {
		_, err := emit.ResolveCall(api, cmd)
		assert.NoError(t, err, "%v", cmd)
	}
}

func TestSequenceCoversEveryOptArgKind(t *testing.T) {
	api := catalog.API()
	seen := make(map[ir.OptArgKind]bool)
	for _, cmd := range Sequence() {
		call, err := emit.ResolveCall(api, cmd)
		require.NoError(t, err)
		for _, o := range call.OptArgs {
			seen[o.OptArg.Kind] = true
		}
	}
	for k := ir.OptBool; k <= ir.OptStringList; k++ {
		assert.True(t, seen[k], "no call supplies a %s optarg", k)
	}
}

func TestExpectedRejectsSilentActions(t *testing.T) {
	_, err := Expected(catalog.API(), []ir.Command{{"launch"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "launch does not print a trace")
}

func TestExpectedFormatting(t *testing.T) {
	f, err := Expected(catalog.API(), []ir.Command{
		{"internal_test_only_optargs", "test:-7"},
	})
	require.NoError(t, err)
	assert.Equal(t, "-7\nEOF\n", string(f.Content))

	f, err = Expected(catalog.API(), nil)
	require.NoError(t, err)
	assert.Equal(t, "EOF\n", string(f.Content))
}

func TestFormatStringList(t *testing.T) {
	assert.Equal(t, "[]", format(emit.Value{Kind: ir.ArgStringList, Strs: []string{}}))
	assert.Equal(t, `["a", "b c"]`, format(emit.Value{Kind: ir.ArgStringList, Strs: []string{"a", "b c"}}))
}
