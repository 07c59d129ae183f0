package compiler

import (
	"fmt"

	"cuelang.org/go/cue"

	"github.com/roach88/bindgen/internal/ir"
)

// CompileAction parses a CUE value into an Action.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the action struct itself, named by its label:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`action: mkfs_btrfs: { ... }`)
//	a, err := CompileAction(v.LookupPath(cue.ParsePath("action.mkfs_btrfs")))
//
// CompileAction decodes; it does not validate. Names, aliases and test
// sequences are checked later against the whole API.
func CompileAction(v cue.Value) (*ir.Action, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	a := &ir.Action{Name: label(v), Blocking: true}
	where := "action." + a.Name

	var err error
	if a.ShortDesc, err = requiredString(v, "shortdesc", where); err != nil {
		return nil, err
	}
	if a.LongDesc, err = optionalString(v, "longdesc"); err != nil {
		return nil, err
	}
	if a.Style, err = parseStyle(v, where); err != nil {
		return nil, err
	}
	if a.ProcNr, err = optionalInt(v, "proc_nr", where); err != nil {
		return nil, err
	}
	if a.ProcNr < 0 {
		f, _ := lookup(v, "proc_nr")
		return nil, &CompileError{Field: where + ".proc_nr", Message: "must not be negative", Pos: f.Pos()}
	}
	if a.NonCAliases, err = stringList(v, "non_c_aliases"); err != nil {
		return nil, err
	}
	if a.FishAlias, err = stringList(v, "fish_alias"); err != nil {
		return nil, err
	}
	if a.DeprecatedBy, err = parseDeprecation(v, where); err != nil {
		return nil, err
	}
	if a.Optional, err = optionalString(v, "optional"); err != nil {
		return nil, err
	}
	if a.Added, err = optionalString(v, "added"); err != nil {
		return nil, err
	}
	if a.Visibility, err = parseVisibility(v, where); err != nil {
		return nil, err
	}

	// Blocking defaults to true; everything the daemon runs blocks.
	if f, ok := lookup(v, "blocking"); ok {
		if a.Blocking, err = f.Bool(); err != nil {
			return nil, formatCUEError(err)
		}
	}
	if a.Cancellable, err = optionalBool(v, "cancellable"); err != nil {
		return nil, err
	}
	if a.ConfigOnly, err = optionalBool(v, "config_only"); err != nil {
		return nil, err
	}
	if a.LegacyNULTruncation, err = optionalBool(v, "legacy_nul_truncation"); err != nil {
		return nil, err
	}

	if a.Tests, err = parseTests(v, where); err != nil {
		return nil, err
	}
	return a, nil
}

// parseStyle decodes ret, args and optargs. ret is either a kind name or
// a {kind, struct} pair for struct returns.
func parseStyle(v cue.Value, where string) (ir.Style, error) {
	var style ir.Style

	retVal, ok := lookup(v, "ret")
	if !ok {
		return style, &CompileError{Field: where + ".ret", Message: "ret is required", Pos: v.Pos()}
	}
	if s, err := retVal.String(); err == nil {
		k, err := ir.ParseRetKind(s)
		if err != nil {
			return style, &CompileError{Field: where + ".ret", Message: err.Error(), Pos: retVal.Pos()}
		}
		style.Ret = ir.RetOf(k)
	} else {
		k, err := parseKind(retVal, "kind", where+".ret", ir.ParseRetKind)
		if err != nil {
			return style, err
		}
		style.Ret = ir.Ret{Kind: k}
		if style.Ret.Struct, err = optionalString(retVal, "struct"); err != nil {
			return style, err
		}
	}
	switch style.Ret.Kind {
	case ir.RetStruct, ir.RetStructList:
		if style.Ret.Struct == "" {
			return style, &CompileError{
				Field:   where + ".ret.struct",
				Message: fmt.Sprintf("a %s return must name its struct", style.Ret.Kind),
				Pos:     retVal.Pos(),
			}
		}
	default:
		if style.Ret.Struct != "" {
			return style, &CompileError{
				Field:   where + ".ret.struct",
				Message: fmt.Sprintf("a %s return cannot name a struct", style.Ret.Kind),
				Pos:     retVal.Pos(),
			}
		}
	}

	if argsVal, ok := lookup(v, "args"); ok {
		iter, err := argsVal.List()
		if err != nil {
			return style, formatCUEError(err)
		}
		for i := 0; iter.Next(); i++ {
			arg, err := parseArg(iter.Value(), fmt.Sprintf("%s.args[%d]", where, i))
			if err != nil {
				return style, err
			}
			style.Args = append(style.Args, arg)
		}
	}

	if optVal, ok := lookup(v, "optargs"); ok {
		iter, err := optVal.List()
		if err != nil {
			return style, formatCUEError(err)
		}
		for i := 0; iter.Next(); i++ {
			elem := iter.Value()
			at := fmt.Sprintf("%s.optargs[%d]", where, i)
			name, err := requiredString(elem, "name", at)
			if err != nil {
				return style, err
			}
			k, err := parseKind(elem, "kind", at, ir.ParseOptArgKind)
			if err != nil {
				return style, err
			}
			style.OptArgs = append(style.OptArgs, ir.OptArg{Kind: k, Name: name})
		}
	}
	return style, nil
}

func parseArg(v cue.Value, where string) (ir.Arg, error) {
	var arg ir.Arg
	name, err := requiredString(v, "name", where)
	if err != nil {
		return arg, err
	}
	k, err := parseKind(v, "kind", where, ir.ParseArgKind)
	if err != nil {
		return arg, err
	}
	arg = ir.Arg{Kind: k, Name: name}

	sub, err := optionalString(v, "sub")
	if err != nil {
		return arg, err
	}
	if sub != "" && k != ir.ArgString && k != ir.ArgStringList {
		return arg, &CompileError{Field: where + ".sub", Message: fmt.Sprintf("%s arguments have no subkind", k), Pos: v.Pos()}
	}
	if arg.Sub, err = ir.ParseStringKind(sub); err != nil {
		return arg, &CompileError{Field: where + ".sub", Message: err.Error(), Pos: v.Pos()}
	}

	if k == ir.ArgPointer {
		if arg.CType, err = requiredString(v, "ctype", where); err != nil {
			return arg, err
		}
	}
	return arg, nil
}

func parseDeprecation(v cue.Value, where string) (ir.Deprecation, error) {
	repl, err := optionalString(v, "deprecated_by")
	if err != nil {
		return ir.Deprecation{}, err
	}
	bare, err := optionalBool(v, "deprecated")
	if err != nil {
		return ir.Deprecation{}, err
	}
	switch {
	case repl != "" && bare:
		return ir.Deprecation{}, &CompileError{
			Field:   where + ".deprecated",
			Message: "set deprecated_by or deprecated, not both",
			Pos:     v.Pos(),
		}
	case repl != "":
		return ir.Replaced(repl), nil
	case bare:
		return ir.Deprecation{Kind: ir.DeprecatedNoReplacement}, nil
	}
	return ir.Deprecation{}, nil
}

func parseVisibility(v cue.Value, where string) (ir.Visibility, error) {
	s, err := optionalString(v, "visibility")
	if err != nil {
		return 0, err
	}
	switch s {
	case "", "public":
		return ir.VisibilityPublic, nil
	case "internal":
		return ir.VisibilityInternal, nil
	case "debug":
		return ir.VisibilityDebug, nil
	}
	return 0, &CompileError{
		Field:   where + ".visibility",
		Message: fmt.Sprintf("unknown visibility %q", s),
		Pos:     v.Pos(),
	}
}

var checkOps = map[string]bool{"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true}

func parseTests(v cue.Value, where string) ([]ir.Test, error) {
	testsVal, ok := lookup(v, "tests")
	if !ok {
		return nil, nil
	}
	iter, err := testsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var tests []ir.Test
	for i := 0; iter.Next(); i++ {
		tv := iter.Value()
		at := fmt.Sprintf("%s.tests[%d]", where, i)
		var t ir.Test

		if init, err := optionalString(tv, "init"); err != nil {
			return nil, err
		} else if init != "" {
			if t.Init, err = ir.ParseTestInit(init); err != nil {
				return nil, &CompileError{Field: at + ".init", Message: err.Error(), Pos: tv.Pos()}
			}
		}

		group, err := optionalString(tv, "if_available")
		if err != nil {
			return nil, err
		}
		disabled, err := optionalBool(tv, "disabled")
		if err != nil {
			return nil, err
		}
		switch {
		case group != "" && disabled:
			return nil, &CompileError{Field: at, Message: "a test cannot be both disabled and if_available", Pos: tv.Pos()}
		case group != "":
			t.Apply = ir.Applicability{Kind: ir.IfAvailable, Group: group}
		case disabled:
			t.Apply = ir.Applicability{Kind: ir.Disabled}
		}

		if kind, err := optionalString(tv, "assert"); err != nil {
			return nil, err
		} else if kind != "" {
			if t.Assert.Kind, err = ir.ParseAssertKind(kind); err != nil {
				return nil, &CompileError{Field: at + ".assert", Message: err.Error(), Pos: tv.Pos()}
			}
		}
		if t.Assert.Expect, err = optionalString(tv, "expect"); err != nil {
			return nil, err
		}

		seqVal, ok := lookup(tv, "seq")
		if !ok {
			return nil, &CompileError{Field: at + ".seq", Message: "seq is required", Pos: tv.Pos()}
		}
		seqIter, err := seqVal.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for seqIter.Next() {
			var cmd ir.Command
			if err := seqIter.Value().Decode(&cmd); err != nil {
				return nil, formatCUEError(err)
			}
			t.Assert.Seq = append(t.Assert.Seq, cmd)
		}

		if checksVal, ok := lookup(tv, "checks"); ok {
			ci, err := checksVal.List()
			if err != nil {
				return nil, formatCUEError(err)
			}
			for ci.Next() {
				var c ir.StructCheck
				if err := ci.Value().Decode(&c); err != nil {
					return nil, formatCUEError(err)
				}
				if !checkOps[c.Op] {
					return nil, &CompileError{Field: at + ".checks", Message: fmt.Sprintf("unknown operator %q", c.Op), Pos: ci.Value().Pos()}
				}
				t.Checks = append(t.Checks, c)
			}
		}

		tests = append(tests, t)
	}
	return tests, nil
}
