package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/roach88/bindgen/internal/ir"
)

// Result holds the definitions decoded from one CUE instance.
type Result struct {
	Actions   []ir.Action
	Structs   []ir.Struct
	Events    []ir.Event
	FileCount int // Number of CUE files found
}

// LoadDir loads the CUE package in dir and decodes its action, struct and
// event definitions. It stops at the first error.
func LoadDir(dir string) (*Result, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &CompileError{Field: "api_dir", Message: fmt.Sprintf("cannot access %s: %v", dir, err)}
	}
	if !info.IsDir() {
		return nil, &CompileError{Field: "api_dir", Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	cueFiles, err := FindCUEFiles(dir)
	if err != nil {
		return nil, &CompileError{Field: "api_dir", Message: fmt.Sprintf("scanning %s: %v", dir, err)}
	}
	if len(cueFiles) == 0 {
		return nil, &CompileError{Field: "api_dir", Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &CompileError{Field: "api_dir", Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, formatCUEError(inst.Err)
	}

	value := ctx.BuildInstance(inst)
	result, err := Decode(value)
	if err != nil {
		return nil, err
	}
	result.FileCount = len(cueFiles)
	return result, nil
}

// Decode extracts the action, struct and event definitions from a built
// CUE value. Missing sections are empty, not errors.
func Decode(value cue.Value) (*Result, error) {
	if err := value.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	result := &Result{}

	if err := eachField(value, "struct", func(v cue.Value) error {
		s, err := CompileStruct(v)
		if err != nil {
			return err
		}
		result.Structs = append(result.Structs, *s)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := eachField(value, "event", func(v cue.Value) error {
		e, err := CompileEvent(v)
		if err != nil {
			return err
		}
		result.Events = append(result.Events, *e)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := eachField(value, "action", func(v cue.Value) error {
		a, err := CompileAction(v)
		if err != nil {
			return err
		}
		result.Actions = append(result.Actions, *a)
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

func eachField(value cue.Value, section string, fn func(cue.Value) error) error {
	sv, ok := lookup(value, section)
	if !ok {
		return nil
	}
	iter, err := sv.Fields()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		if err := fn(iter.Value()); err != nil {
			return err
		}
	}
	return nil
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// Merge returns a copy of base with the decoded definitions appended. base
// is left untouched. Name clashes are not resolved here; the consistency
// check reports them.
func Merge(base *ir.API, r *Result) *ir.API {
	merged := &ir.API{
		Prefix:  base.Prefix,
		Actions: slices.Concat(base.Actions, r.Actions),
		Structs: slices.Concat(base.Structs, r.Structs),
		Events:  slices.Concat(base.Events, r.Events),
	}
	return merged
}
