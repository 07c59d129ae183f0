package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/bindgen/internal/ir"
)

// Value is one test-command argument decoded against the parameter it is
// passed to. Only the field matching Kind is meaningful.
type Value struct {
	Kind ir.ArgKind
	Str  string   // ArgString, ArgOptString, ArgBufferIn
	Null bool     // ArgOptString written as NULL
	Strs []string // ArgStringList; never nil
	Bool bool
	Int  int64 // ArgInt, ArgInt64
}

// OptValue is a supplied optional argument.
type OptValue struct {
	Index  int // position in the action's optarg list, i.e. its bit
	OptArg ir.OptArg
	Value  Value
}

// Call is a test command resolved into typed values, so backends print
// literals without re-parsing strings.
type Call struct {
	Action  *ir.Action
	Args    []Value    // one per required argument, in order
	OptArgs []OptValue // supplied optional arguments, in declaration order
	Bitmask uint64
}

// Supplied returns the value of the optional argument at index i, if the
// call supplies it.
func (c *Call) Supplied(i int) (Value, bool) {
	for _, o := range c.OptArgs {
		if o.Index == i {
			return o.Value, true
		}
	}
	return Value{}, false
}

// ResolveCall decodes cmd against the action it names. Literal syntax:
//
//	string, bufferin   taken verbatim
//	optstring          verbatim, or NULL for no value
//	stringlist         whitespace-separated elements; "" is the empty list
//	bool               true or false
//	int, int64         decimal
//
// Arguments past the required ones are optional arguments written
// name:value. Pointer arguments have no literal form.
func ResolveCall(api *ir.API, cmd ir.Command) (Call, error) {
	a, ok := api.Action(cmd.Name())
	if !ok {
		return Call{}, fmt.Errorf("unknown action %q", cmd.Name())
	}
	args := cmd[1:]
	if len(args) < len(a.Style.Args) {
		return Call{}, fmt.Errorf("%s: needs %d arguments, got %d", a.Name, len(a.Style.Args), len(args))
	}

	call := Call{Action: a}
	for i, arg := range a.Style.Args {
		v, err := parseValue(arg, args[i])
		if err != nil {
			return Call{}, fmt.Errorf("%s: argument %s: %w", a.Name, arg.Name, err)
		}
		call.Args = append(call.Args, v)
	}

	optShapes := ir.ArgsOfOptArgs(a.Style.OptArgs)
	supplied := make(map[int]Value)
	for _, extra := range args[len(a.Style.Args):] {
		name, raw, ok := strings.Cut(extra, ":")
		if !ok {
			return Call{}, fmt.Errorf("%s: extra argument %q is not name:value", a.Name, extra)
		}
		i := optArgIndex(a, name)
		if i < 0 {
			return Call{}, fmt.Errorf("%s: unknown optional argument %q", a.Name, name)
		}
		if _, dup := supplied[i]; dup {
			return Call{}, fmt.Errorf("%s: optional argument %q given twice", a.Name, name)
		}
		v, err := parseValue(optShapes[i], raw)
		if err != nil {
			return Call{}, fmt.Errorf("%s: optional argument %s: %w", a.Name, name, err)
		}
		supplied[i] = v
	}
	for i, o := range a.Style.OptArgs {
		if v, ok := supplied[i]; ok {
			call.OptArgs = append(call.OptArgs, OptValue{Index: i, OptArg: o, Value: v})
			call.Bitmask |= ir.OptArgBit(i)
		}
	}
	return call, nil
}

func optArgIndex(a *ir.Action, name string) int {
	for i, o := range a.Style.OptArgs {
		if o.Name == name {
			return i
		}
	}
	return -1
}

func parseValue(arg ir.Arg, raw string) (Value, error) {
	v := Value{Kind: arg.Kind}
	switch arg.Kind {
	case ir.ArgString, ir.ArgBufferIn:
		v.Str = raw
	case ir.ArgOptString:
		if raw == "NULL" {
			v.Null = true
		} else {
			v.Str = raw
		}
	case ir.ArgStringList:
		v.Strs = strings.Fields(raw)
		if v.Strs == nil {
			v.Strs = []string{}
		}
	case ir.ArgBool:
		switch raw {
		case "true":
			v.Bool = true
		case "false":
		default:
			return v, fmt.Errorf("%q is not a boolean", raw)
		}
	case ir.ArgInt:
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return v, fmt.Errorf("%q is not a 32-bit integer", raw)
		}
		v.Int = n
	case ir.ArgInt64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return v, fmt.Errorf("%q is not a 64-bit integer", raw)
		}
		v.Int = n
	case ir.ArgPointer:
		return v, fmt.Errorf("pointer arguments cannot be written as test literals")
	default:
		panic("parseValue: unknown arg kind " + arg.Kind.String())
	}
	return v, nil
}
