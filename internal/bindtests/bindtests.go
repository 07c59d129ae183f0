// Package bindtests defines the call sequence every binding replays
// against the internal test actions, and the trace those actions print
// when driven by it. A binding passes when its run reproduces the
// expected file byte for byte.
package bindtests

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/bindgen/internal/emit"
	"github.com/roach88/bindgen/internal/ir"
	"github.com/roach88/bindgen/internal/output"
)

// Path is where the expected trace is written, relative to the output root.
const Path = "tests/bindtests.expected"

// tracing lists the actions whose implementation prints its arguments.
var tracing = map[string]bool{
	"internal_test":              true,
	"internal_test_only_optargs": true,
	"internal_test_63_optargs":   true,
}

// Sequence returns the fixed command list.
func Sequence() []ir.Command {
	base := func(strlist, b, n string) ir.Command {
		return ir.Command{"internal_test", "abc", "def", strlist, b, n, n, "123", "456", "abc"}
	}
	with := func(cmd ir.Command, optargs ...string) ir.Command {
		return append(cmd, optargs...)
	}
	return []ir.Command{
		base("", "false", "0"),
		{"internal_test", "abc", "NULL", "", "false", "0", "0", "123", "456", "abc"},
		{"internal_test", "", "def", "", "false", "0", "0", "123", "456", "abc"},
		{"internal_test", "", "", "", "false", "0", "0", "123", "456", "abc"},
		base("1", "false", "0"),
		base("1 2", "false", "0"),
		base("1", "true", "0"),
		base("1", "false", "-1"),
		base("1", "false", "-2"),
		base("1", "false", "1"),
		base("1", "false", "2"),
		base("1", "false", "4095"),
		{"internal_test", "abc", "def", "1", "false", "0", "0", "", "", "abc"},
		with(base("", "false", "0"), "obool:true"),
		with(base("", "false", "0"), "oint:1", "ostring:string"),
		with(base("", "false", "0"), "obool:false", "oint:-1", "oint64:9", "ostringlist:a b"),
		with(base("", "false", "0"), "oint64:-4611686018427387904", "ostringlist:"),
		{"internal_test_only_optargs"},
		{"internal_test_only_optargs", "test:3"},
		{"internal_test_63_optargs"},
		{"internal_test_63_optargs", "opt1:1", "opt63:63"},
	}
}

func format(v emit.Value) string {
	switch v.Kind {
	case ir.ArgString, ir.ArgBufferIn:
		return v.Str
	case ir.ArgOptString:
		if v.Null {
			return "null"
		}
		return v.Str
	case ir.ArgStringList:
		quoted := make([]string, len(v.Strs))
		for i, s := range v.Strs {
			quoted[i] = strconv.Quote(s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	case ir.ArgBool:
		return strconv.FormatBool(v.Bool)
	case ir.ArgInt, ir.ArgInt64:
		return strconv.FormatInt(v.Int, 10)
	default:
		panic("format: no trace form for " + v.Kind.String())
	}
}

// Expected renders the trace printed by replaying cmds: one line per
// required argument, then one per optional argument ("unset" when not
// supplied), and a final EOF line.
func Expected(api *ir.API, cmds []ir.Command) (output.File, error) {
	p := output.NewPrinter()
	for _, cmd := range cmds {
		if !tracing[cmd.Name()] {
			return output.File{}, fmt.Errorf("bindtests: %s does not print a trace", cmd.Name())
		}
		call, err := emit.ResolveCall(api, cmd)
		if err != nil {
			return output.File{}, fmt.Errorf("bindtests: %w", err)
		}
		for _, v := range call.Args {
			p.Println(format(v))
		}
		for i := range call.Action.Style.OptArgs {
			if v, ok := call.Supplied(i); ok {
				p.Println(format(v))
			} else {
				p.Println("unset")
			}
		}
	}
	p.Println("EOF")
	return p.File(Path)
}
