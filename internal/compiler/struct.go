package compiler

import (
	"fmt"

	"cuelang.org/go/cue"

	"github.com/roach88/bindgen/internal/ir"
)

// CompileStruct parses a struct definition. Fields are a list so their
// declaration order, which is the wire order, survives decoding:
//
//	struct: lvm_vg: fields: [
//		{name: "vg_name", kind: "string"},
//		{name: "vg_size", kind: "bytes"},
//	]
func CompileStruct(v cue.Value) (*ir.Struct, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	s := &ir.Struct{Name: label(v)}
	where := "struct." + s.Name

	fieldsVal, ok := lookup(v, "fields")
	if !ok {
		return nil, &CompileError{Field: where + ".fields", Message: "fields are required", Pos: v.Pos()}
	}
	iter, err := fieldsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for i := 0; iter.Next(); i++ {
		fv := iter.Value()
		at := fmt.Sprintf("%s.fields[%d]", where, i)
		name, err := requiredString(fv, "name", at)
		if err != nil {
			return nil, err
		}
		k, err := parseKind(fv, "kind", at, ir.ParseFieldKind)
		if err != nil {
			return nil, err
		}
		s.Fields = append(s.Fields, ir.Field{Name: name, Kind: k})
	}
	return s, nil
}

// CompileEvent parses an event declared as `event: <name>: <bit>`.
func CompileEvent(v cue.Value) (*ir.Event, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	name := label(v)
	bit, err := intValue(v, "event."+name)
	if err != nil {
		return nil, err
	}
	if bit < 0 {
		return nil, &CompileError{Field: "event." + name, Message: "bit must not be negative", Pos: v.Pos()}
	}
	return &ir.Event{Name: name, Bit: uint(bit)}, nil
}
