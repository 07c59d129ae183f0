package ir

import (
	"cmp"
	"slices"
)

// ErrCode is the error-signalling convention of a generated wrapper.
type ErrCode int

const (
	// CannotSignalError means the wrapper has no failure path.
	CannotSignalError ErrCode = iota
	// ErrorIsMinusOne means a raw result of -1 signals failure.
	ErrorIsMinusOne
	// ErrorIsNULL means a NULL raw result signals failure.
	ErrorIsNULL
)

func (e ErrCode) String() string {
	switch e {
	case CannotSignalError:
		return "cannot-signal-error"
	case ErrorIsMinusOne:
		return "error-is-minus-one"
	case ErrorIsNULL:
		return "error-is-null"
	default:
		panic("unknown errcode")
	}
}

// ErrCodeOf maps a return shape to its error convention. Every emitter
// consults this; none re-derives it.
func ErrCodeOf(ret Ret) ErrCode {
	switch ret.Kind {
	case RetConstOptString:
		return CannotSignalError
	case RetErr, RetInt, RetInt64, RetBool:
		return ErrorIsMinusOne
	case RetConstString, RetString, RetStringList, RetStruct,
		RetStructList, RetHashtable, RetBufferOut:
		return ErrorIsNULL
	default:
		panic("ErrCodeOf: unknown return kind " + ret.Kind.String())
	}
}

// StructUsage classifies how a struct is returned across an action set.
type StructUsage int

const (
	UsedSingular StructUsage = 1 << iota
	UsedList
	UsedBoth = UsedSingular | UsedList
)

func (u StructUsage) String() string {
	switch u {
	case UsedSingular:
		return "singular"
	case UsedList:
		return "list"
	case UsedBoth:
		return "both"
	default:
		panic("unknown struct usage")
	}
}

// Join combines two classifications. Singular joined with list is both; joining
// a classification with itself is a no-op.
func (u StructUsage) Join(v StructUsage) StructUsage {
	return u | v
}

// NeedsCopy reports whether a single-struct copy routine is required.
func (u StructUsage) NeedsCopy() bool { return u&UsedSingular != 0 }

// NeedsListCopy reports whether a struct-list copy routine is required.
func (u StructUsage) NeedsListCopy() bool { return u&UsedList != 0 }

// StructUse pairs a struct name with its classification.
type StructUse struct {
	Name  string
	Usage StructUsage
}

// RStructsUsedBy classifies every struct returned by the given actions.
// The result has one entry per referenced struct, sorted by name.
func RStructsUsedBy(actions []Action) []StructUse {
	usage := make(map[string]StructUsage)
	for i := range actions {
		ret := actions[i].Style.Ret
		switch ret.Kind {
		case RetStruct:
			usage[ret.Struct] = usage[ret.Struct].Join(UsedSingular)
		case RetStructList:
			usage[ret.Struct] = usage[ret.Struct].Join(UsedList)
		}
	}

	uses := make([]StructUse, 0, len(usage))
	for name, u := range usage {
		uses = append(uses, StructUse{Name: name, Usage: u})
	}
	slices.SortFunc(uses, func(a, b StructUse) int { return cmp.Compare(a.Name, b.Name) })
	return uses
}

// ArgsOfOptArgs downcasts optional arguments to the required-argument
// shape, for contexts that do not distinguish the two.
func ArgsOfOptArgs(optargs []OptArg) []Arg {
	args := make([]Arg, len(optargs))
	for i, o := range optargs {
		switch o.Kind {
		case OptBool:
			args[i] = Bool(o.Name)
		case OptInt:
			args[i] = Int(o.Name)
		case OptInt64:
			args[i] = Int64(o.Name)
		case OptString:
			args[i] = Str(PlainString, o.Name)
		case OptStringList:
			args[i] = StrList(PlainString, o.Name)
		default:
			panic("ArgsOfOptArgs: unknown optarg kind " + o.Kind.String())
		}
	}
	return args
}

// NameOfArg returns the declared name of an argument.
func NameOfArg(a Arg) string { return a.Name }

// NameOfOptArg returns the declared name of an optional argument.
func NameOfOptArg(o OptArg) string { return o.Name }

// CompareActions orders actions by name.
func CompareActions(a, b Action) int {
	return cmp.Compare(a.Name, b.Name)
}

// SortActions returns a copy of actions in canonical order. The input is
// left untouched.
func SortActions(actions []Action) []Action {
	sorted := slices.Clone(actions)
	slices.SortStableFunc(sorted, CompareActions)
	return sorted
}

// SortedActions returns the API's actions in canonical order.
func (api *API) SortedActions() []Action {
	return SortActions(api.Actions)
}

// Action looks up an action by name.
func (api *API) Action(name string) (*Action, bool) {
	for i := range api.Actions {
		if api.Actions[i].Name == name {
			return &api.Actions[i], true
		}
	}
	return nil, false
}

// Struct looks up a struct by name.
func (api *API) Struct(name string) (*Struct, bool) {
	for i := range api.Structs {
		if api.Structs[i].Name == name {
			return &api.Structs[i], true
		}
	}
	return nil, false
}

// DaemonActions returns the daemon actions ordered by procedure number.
func (api *API) DaemonActions() []Action {
	var out []Action
	for _, a := range api.Actions {
		if a.IsDaemon() {
			out = append(out, a)
		}
	}
	slices.SortStableFunc(out, func(a, b Action) int { return cmp.Compare(a.ProcNr, b.ProcNr) })
	return out
}

// SortedStructs returns the API's structs ordered by name.
func (api *API) SortedStructs() []Struct {
	s := slices.Clone(api.Structs)
	slices.SortStableFunc(s, func(a, b Struct) int { return cmp.Compare(a.Name, b.Name) })
	return s
}

// AllArgNames returns the names of required then optional arguments.
func (a *Action) AllArgNames() []string {
	names := make([]string, 0, len(a.Style.Args)+len(a.Style.OptArgs))
	for _, arg := range a.Style.Args {
		names = append(names, NameOfArg(arg))
	}
	for _, o := range a.Style.OptArgs {
		names = append(names, NameOfOptArg(o))
	}
	return names
}

// HasArgKind reports whether any required argument has the given kind.
func (a *Action) HasArgKind(k ArgKind) bool {
	for _, arg := range a.Style.Args {
		if arg.Kind == k {
			return true
		}
	}
	return false
}
