package emit

import (
	"github.com/roach88/bindgen/internal/ir"
	"github.com/roach88/bindgen/internal/output"
)

// Backend is the set of print functions that make up one target. Visit
// owns the traversal and calls these in a fixed order; a backend only
// decides what text each phase produces.
//
// A backend that cannot express something records an *EmitError with
// p.Fail and keeps going; the printer drops all later output.
type Backend interface {
	Target() Target
	// Files returns the bindings and test file paths, relative to the
	// output root.
	Files() (bindings, tests string)
	NewPrinter() *output.Printer
	// Skip reports whether the target leaves an action out entirely.
	Skip(a *ir.Action) bool
	// FunctionName is the action's name in the target's calling
	// convention. Documentation cross references are rewritten with it.
	FunctionName(name string) string

	Prologue(p *output.Printer, api *ir.API)
	StructDecl(p *output.Printer, s *ir.Struct)
	StructCopy(p *output.Printer, s *ir.Struct, usage ir.StructUsage)

	// Declare prints the signature and documentation; doc is the rendered
	// long description plus notes, one line per element.
	Declare(p *output.Printer, a *ir.Action, doc []string)
	MarshalArg(p *output.Printer, a *ir.Action, arg ir.Arg)
	MarshalOptArg(p *output.Printer, a *ir.Action, i int, o ir.OptArg)
	// CallAndCheck prints the underlying call followed by the error check
	// for ec. Nothing may touch the raw result before this check.
	CallAndCheck(p *output.Printer, a *ir.Action, ec ir.ErrCode)
	MarshalRet(p *output.Printer, a *ir.Action)
	Finish(p *output.Printer, a *ir.Action)
	Epilogue(p *output.Printer, api *ir.API)

	TestPrologue(p *output.Printer, api *ir.API)
	TestOpen(p *output.Printer, name string, init ir.TestInit)
	// SkipUnless skips the open test unless every group is available.
	SkipUnless(p *output.Printer, groups []string)
	TestStep(p *output.Printer, step Step)
	TestClose(p *output.Printer)
	TestEpilogue(p *output.Printer)
}

// HeaderBackend is a Backend whose bindings and tests include a separate
// declarations file. Header is given the same bound actions as Visit.
type HeaderBackend interface {
	Backend
	HeaderFile() string
	Header(p *output.Printer, api *ir.API, bound []ir.Action)
}

// Expect is what a test step requires of its call.
type Expect int

const (
	ExpectSuccess Expect = iota
	ExpectFailure
	ExpectString // result equals Step.Value
	ExpectTrue
	ExpectFalse
	// ExpectExpr holds when the C expression Step.Value over "ret" is
	// true. Targets other than C rely on Step.Checks instead.
	ExpectExpr
)

// Step is one call in a replayed test.
type Step struct {
	Test   string // name of the enclosing test
	Call   Call
	Expect Expect
	Value  string
	Checks []ir.StructCheck
}

// NeedsResult reports whether the step inspects the call's result.
func (s Step) NeedsResult() bool {
	switch s.Expect {
	case ExpectString, ExpectTrue, ExpectFalse:
		return true
	}
	return len(s.Checks) > 0
}
