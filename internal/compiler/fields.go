package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
)

// Field accessors shared by the action, struct and event decoders. Each
// takes the enclosing value, the field name and the dotted path used in
// error messages.

func lookup(v cue.Value, field string) (cue.Value, bool) {
	f := v.LookupPath(cue.ParsePath(field))
	return f, f.Exists()
}

func requiredString(v cue.Value, field, where string) (string, error) {
	f, ok := lookup(v, field)
	if !ok {
		return "", &CompileError{
			Field:   where + "." + field,
			Message: field + " is required",
			Pos:     v.Pos(),
		}
	}
	s, err := f.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

func optionalString(v cue.Value, field string) (string, error) {
	f, ok := lookup(v, field)
	if !ok {
		return "", nil
	}
	s, err := f.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

func optionalBool(v cue.Value, field string) (bool, error) {
	f, ok := lookup(v, field)
	if !ok {
		return false, nil
	}
	b, err := f.Bool()
	if err != nil {
		return false, formatCUEError(err)
	}
	return b, nil
}

// optionalInt decodes an integer field. Floats are rejected even when they
// hold an integral value, so a proc_nr of 12.0 is an error rather than 12.
func optionalInt(v cue.Value, field, where string) (int, error) {
	f, ok := lookup(v, field)
	if !ok {
		return 0, nil
	}
	return intValue(f, where+"."+field)
}

func intValue(v cue.Value, where string) (int, error) {
	if k := v.IncompleteKind(); k != cue.IntKind {
		return 0, &CompileError{
			Field:   where,
			Message: fmt.Sprintf("must be an integer, got %v", k),
			Pos:     v.Pos(),
		}
	}
	n, err := v.Int64()
	if err != nil {
		return 0, formatCUEError(err)
	}
	return int(n), nil
}

func stringList(v cue.Value, field string) ([]string, error) {
	f, ok := lookup(v, field)
	if !ok {
		return nil, nil
	}
	iter, err := f.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var out []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out = append(out, s)
	}
	return out, nil
}

// parseKind wraps one of the ir.Parse*Kind functions with position info.
func parseKind[K any](v cue.Value, field, where string, parse func(string) (K, error)) (K, error) {
	var zero K
	s, err := requiredString(v, field, where)
	if err != nil {
		return zero, err
	}
	k, err := parse(s)
	if err != nil {
		f, _ := lookup(v, field)
		return zero, &CompileError{Field: where + "." + field, Message: err.Error(), Pos: f.Pos()}
	}
	return k, nil
}

// label returns the last path selector of v, which is the name under
// which a definition was declared.
func label(v cue.Value) string {
	sels := v.Path().Selectors()
	if len(sels) == 0 {
		return ""
	}
	return sels[len(sels)-1].String()
}
