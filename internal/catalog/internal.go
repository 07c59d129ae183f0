package catalog

import (
	"fmt"

	"github.com/roach88/bindgen/internal/ir"
)

// InternalTest is the action the bindtests sequence drives. It takes one
// argument of every kind a binding can pass, plus every optional kind.
const InternalTest = "internal_test"

func internalActions() []ir.Action {
	internal := func(name string, style ir.Style, short string) ir.Action {
		return ir.Action{
			Name:       name,
			Style:      style,
			ShortDesc:  short,
			Visibility: ir.VisibilityInternal,
		}
	}

	actions := []ir.Action{
		internal(InternalTest, ir.Style{
			Ret: ir.RetOf(ir.RetErr),
			Args: []ir.Arg{
				ir.Str(ir.PlainString, "str"),
				ir.OptStr("optstr"),
				ir.StrList(ir.PlainString, "strlist"),
				ir.Bool("b"),
				ir.Int("integer"),
				ir.Int64("integer64"),
				ir.Str(ir.FileIn, "filein"),
				ir.Str(ir.FileOut, "fileout"),
				ir.BufferIn("bufferin"),
			},
			OptArgs: []ir.OptArg{
				{Kind: ir.OptBool, Name: "obool"},
				{Kind: ir.OptInt, Name: "oint"},
				{Kind: ir.OptInt64, Name: "oint64"},
				{Kind: ir.OptString, Name: "ostring"},
				{Kind: ir.OptStringList, Name: "ostringlist"},
			},
		}, "internal test function - do not use"),
		internal("internal_test_only_optargs", ir.Style{
			Ret:     ir.RetOf(ir.RetErr),
			OptArgs: []ir.OptArg{{Kind: ir.OptInt, Name: "test"}},
		}, "internal test function - do not use"),
		internal("internal_test_63_optargs", ir.Style{
			Ret:     ir.RetOf(ir.RetErr),
			OptArgs: sixtyThreeOptArgs(),
		}, "internal test function - do not use"),
	}

	// One action per return kind, each taking a string that controls the
	// result, plus an error variant for kinds that can signal errors.
	rets := []struct {
		suffix string
		ret    ir.Ret
	}{
		{"rint", ir.RetOf(ir.RetInt)},
		{"rint64", ir.RetOf(ir.RetInt64)},
		{"rbool", ir.RetOf(ir.RetBool)},
		{"rconststring", ir.RetOf(ir.RetConstString)},
		{"rconstoptstring", ir.RetOf(ir.RetConstOptString)},
		{"rstring", ir.RetOf(ir.RetString)},
		{"rstringlist", ir.RetOf(ir.RetStringList)},
		{"rstruct", ir.RetStructOf("lvm_pv")},
		{"rstructlist", ir.RetStructListOf("lvm_pv")},
		{"rhashtable", ir.RetOf(ir.RetHashtable)},
		{"rbufferout", ir.RetOf(ir.RetBufferOut)},
	}
	for _, r := range rets {
		actions = append(actions,
			internal("internal_test_"+r.suffix,
				ir.Style{Ret: r.ret, Args: []ir.Arg{ir.Str(ir.PlainString, "str")}},
				"internal test function - do not use"),
			internal("internal_test_"+r.suffix+"err",
				ir.Style{Ret: r.ret},
				"internal test function - do not use"),
		)
	}
	return actions
}

func sixtyThreeOptArgs() []ir.OptArg {
	optargs := make([]ir.OptArg, ir.MaxOptArgs)
	for i := range optargs {
		optargs[i] = ir.OptArg{Kind: ir.OptInt, Name: fmt.Sprintf("opt%d", i+1)}
	}
	return optargs
}
