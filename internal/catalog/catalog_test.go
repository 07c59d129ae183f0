package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bindgen/internal/ir"
)

func TestAPIReturnsFreshValue(t *testing.T) {
	a := API()
	a.Actions[0].Name = "mutated"
	assert.NotEqual(t, "mutated", API().Actions[0].Name)
}

func TestEveryKindIsExercised(t *testing.T) {
	api := API()

	args := map[ir.ArgKind]bool{}
	optargs := map[ir.OptArgKind]bool{}
	rets := map[ir.RetKind]bool{}
	for _, a := range api.Actions {
		for _, arg := range a.Style.Args {
			args[arg.Kind] = true
		}
		for _, o := range a.Style.OptArgs {
			optargs[o.Kind] = true
		}
		rets[a.Style.Ret.Kind] = true
	}
	fields := map[ir.FieldKind]bool{}
	for _, s := range api.Structs {
		for _, f := range s.Fields {
			fields[f.Kind] = true
		}
	}

	for k := ir.ArgString; k <= ir.ArgPointer; k++ {
		assert.True(t, args[k], "argument kind %s unused", k)
	}
	for k := ir.OptBool; k <= ir.OptStringList; k++ {
		assert.True(t, optargs[k], "optarg kind %s unused", k)
	}
	for k := ir.RetErr; k <= ir.RetBufferOut; k++ {
		assert.True(t, rets[k], "return kind %s unused", k)
	}
	for k := ir.FieldChar; k <= ir.FieldOptPercent; k++ {
		assert.True(t, fields[k], "field kind %s unused", k)
	}
}

func TestStructUsageCoversAllClassifications(t *testing.T) {
	usage := map[string]ir.StructUsage{}
	for _, u := range ir.RStructsUsedBy(API().Actions) {
		usage[u.Name] = u.Usage
	}
	assert.Equal(t, ir.UsedBoth, usage["stat"])
	assert.Equal(t, ir.UsedBoth, usage["lvm_pv"])
	assert.Equal(t, ir.UsedSingular, usage["version"])
	assert.Equal(t, ir.UsedList, usage["dirent"])
}

func TestStatAndMkswapU(t *testing.T) {
	api := API()

	stat, ok := api.Action("stat")
	require.True(t, ok)
	assert.Equal(t, ir.RetStructOf("stat"), stat.Style.Ret)
	assert.Equal(t, []ir.Arg{ir.Str(ir.Pathname, "path")}, stat.Style.Args)
	assert.False(t, stat.IsDeprecated())
	assert.False(t, stat.Cancellable)

	mkswapU, ok := api.Action("mkswap_U")
	require.True(t, ok)
	assert.Equal(t, "linuxfsuuid", mkswapU.Optional)
	assert.Equal(t, ir.Replaced("mkswap"), mkswapU.DeprecatedBy)
}

func TestEventsHaveDistinctBits(t *testing.T) {
	api := API()
	assert.Len(t, api.Events, 10)
	assert.Equal(t, uint64(0x3ff), ir.AllEvents(api.Events))
}

func TestSixtyThreeOptArgsIsAtTheLimit(t *testing.T) {
	a, ok := API().Action("internal_test_63_optargs")
	require.True(t, ok)
	assert.Len(t, a.Style.OptArgs, ir.MaxOptArgs)
	assert.Equal(t, "opt63", a.Style.OptArgs[62].Name)
}
