// Package emit turns an API into binding source for each target.
//
// Visit is the single traversal shared by every target. For each action
// in canonical order it runs three phases: declare, marshal in (required
// then optional arguments), and call-check-marshal-out. Struct routines are
// emitted per ir.RStructsUsedBy so no target gets a copy routine it never
// calls. A Backend supplies the text for each phase.
package emit

import (
	"fmt"
	"strings"

	"github.com/roach88/bindgen/internal/docs"
	"github.com/roach88/bindgen/internal/ir"
	"github.com/roach88/bindgen/internal/output"
	"github.com/roach88/bindgen/internal/strutil"
)

// DefaultWidth is the documentation wrap width when Context.Width is 0.
const DefaultWidth = 72

// featureCheck is the action test replays call to ask whether a feature
// group is available.
const featureCheck = "feature_available"

// Context is everything a Visit reads. It is not modified.
type Context struct {
	API       *ir.API
	Docs      docs.Renderer // nil means docs.TextRenderer
	Width     int
	Bindtests []ir.Command // replayed verbatim as the "bindtests" test
}

func (c *Context) renderer() docs.Renderer {
	if c.Docs == nil {
		return docs.TextRenderer{}
	}
	return c.Docs
}

func (c *Context) width() int {
	if c.Width == 0 {
		return DefaultWidth
	}
	return c.Width
}

// Visit emits the bindings and test files for one backend. On error no
// file is returned.
func Visit(ctx *Context, b Backend) (bindings, tests output.File, err error) {
	api := ctx.API
	bound := boundActions(api, b)
	bindingsPath, testsPath := b.Files()

	p := b.NewPrinter()
	b.Prologue(p, api)
	for _, s := range api.SortedStructs() {
		b.StructDecl(p, &s)
	}
	for _, use := range ir.RStructsUsedBy(bound) {
		s, ok := api.Struct(use.Name)
		if !ok {
			p.Fail(emitErr(b.Target(), "", "struct %q is returned but not declared", use.Name))
			continue
		}
		b.StructCopy(p, s, use.Usage)
	}

	for i := range bound {
		a := &bound[i]
		doc, err := renderDoc(ctx, b, a)
		if err != nil {
			p.Fail(emitErr(b.Target(), a.Name, "documentation: %v", err))
		}
		b.Declare(p, a, doc)
		for _, arg := range a.Style.Args {
			b.MarshalArg(p, a, arg)
		}
		for j, o := range a.Style.OptArgs {
			b.MarshalOptArg(p, a, j, o)
		}
		b.CallAndCheck(p, a, ir.ErrCodeOf(a.Style.Ret))
		b.MarshalRet(p, a)
		b.Finish(p, a)
	}
	b.Epilogue(p, api)

	if bindings, err = p.File(bindingsPath); err != nil {
		return output.File{}, output.File{}, err
	}
	if tests, err = visitTests(ctx, b, bound, testsPath); err != nil {
		return output.File{}, output.File{}, err
	}
	return bindings, tests, nil
}

// Header emits the declarations file of a header backend.
func Header(ctx *Context, hb HeaderBackend) (output.File, error) {
	p := hb.NewPrinter()
	hb.Header(p, ctx.API, boundActions(ctx.API, hb))
	return p.File(hb.HeaderFile())
}

func boundActions(api *ir.API, b Backend) []ir.Action {
	var bound []ir.Action
	for _, a := range api.SortedActions() {
		if !b.Skip(&a) {
			bound = append(bound, a)
		}
	}
	return bound
}

// renderDoc renders the long description, with cross references in the
// target's naming, followed by the deprecation, feature and version notes.
func renderDoc(ctx *Context, b Backend, a *ir.Action) ([]string, error) {
	var paras []string
	if a.LongDesc != "" {
		paras = append(paras, docs.ResolveRefs(ctx.API, a.LongDesc, b.FunctionName))
	}
	paras = append(paras, docs.Notes(a, b.FunctionName)...)
	if len(paras) == 0 {
		return nil, nil
	}
	text, err := ctx.renderer().Render(a.Name, strings.Join(paras, "\n\n"), ctx.width())
	if err != nil {
		return nil, err
	}
	return strutil.Lines(text), nil
}

// TestGates returns the feature groups that must all be available for t
// to run: the action's own group, then the test's if-available group.
func TestGates(a *ir.Action, t ir.Test) []string {
	var gates []string
	if a.Optional != "" {
		gates = append(gates, a.Optional)
	}
	if t.Apply.Kind == ir.IfAvailable && t.Apply.Group != a.Optional {
		gates = append(gates, t.Apply.Group)
	}
	return gates
}

// TestName names the i'th test of an action.
func TestName(a *ir.Action, i int) string {
	return fmt.Sprintf("%s_%d", a.Name, i)
}

// testSteps resolves a test's command sequence. Every command but the last
// must succeed; the last is judged by the test's assertion.
func testSteps(api *ir.API, name string, t ir.Test) ([]Step, error) {
	steps := make([]Step, 0, len(t.Assert.Seq))
	for _, cmd := range t.Assert.Seq {
		call, err := ResolveCall(api, cmd)
		if err != nil {
			return nil, err
		}
		steps = append(steps, Step{Test: name, Call: call})
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("test %s has no commands", name)
	}

	last := &steps[len(steps)-1]
	switch t.Assert.Kind {
	case ir.AssertRun:
	case ir.AssertLastFail:
		if ir.ErrCodeOf(last.Call.Action.Style.Ret) == ir.CannotSignalError {
			return nil, fmt.Errorf("test %s expects %s to fail, but it cannot signal an error", name, last.Call.Action.Name)
		}
		last.Expect = ExpectFailure
	case ir.AssertResultString:
		if !returnsString(last.Call.Action.Style.Ret) {
			return nil, fmt.Errorf("test %s compares %s with a string, but it returns %s", name, last.Call.Action.Name, last.Call.Action.Style.Ret.Kind)
		}
		last.Expect, last.Value = ExpectString, t.Assert.Expect
	case ir.AssertResultTrue, ir.AssertResultFalse:
		if last.Call.Action.Style.Ret.Kind != ir.RetBool {
			return nil, fmt.Errorf("test %s expects a boolean, but %s returns %s", name, last.Call.Action.Name, last.Call.Action.Style.Ret.Kind)
		}
		last.Expect = ExpectTrue
		if t.Assert.Kind == ir.AssertResultFalse {
			last.Expect = ExpectFalse
		}
	case ir.AssertResult:
		last.Expect, last.Value = ExpectExpr, t.Assert.Expect
	default:
		panic("testSteps: unknown assert kind " + t.Assert.Kind.String())
	}

	if len(t.Checks) > 0 {
		if last.Call.Action.Style.Ret.Kind != ir.RetStruct {
			return nil, fmt.Errorf("test %s has structure checks, but %s does not return a struct", name, last.Call.Action.Name)
		}
		last.Checks = t.Checks
	}
	return steps, nil
}

func returnsString(ret ir.Ret) bool {
	switch ret.Kind {
	case ir.RetConstString, ir.RetConstOptString, ir.RetString, ir.RetBufferOut:
		return true
	}
	return false
}

func visitTests(ctx *Context, b Backend, bound []ir.Action, path string) (output.File, error) {
	api := ctx.API
	isBound := make(map[string]bool, len(bound))
	for _, a := range bound {
		isBound[a.Name] = true
	}

	p := b.NewPrinter()
	b.TestPrologue(p, api)
	for i := range bound {
		a := &bound[i]
		for j, t := range a.Tests {
			if t.Apply.Kind == ir.Disabled {
				continue
			}
			name := TestName(a, j)
			steps, err := testSteps(api, name, t)
			if err != nil {
				p.Fail(emitErr(b.Target(), a.Name, "%v", err))
				continue
			}
			gates := TestGates(a, t)
			if len(gates) > 0 && !isBound[featureCheck] {
				p.Fail(emitErr(b.Target(), a.Name, "test %s is gated, but %s is not bound", name, featureCheck))
				continue
			}
			for _, s := range steps {
				if !isBound[s.Call.Action.Name] {
					p.Fail(emitErr(b.Target(), a.Name, "test %s calls %s, which this target does not bind", name, s.Call.Action.Name))
				}
			}

			b.TestOpen(p, name, t.Init)
			if len(gates) > 0 {
				b.SkipUnless(p, gates)
			}
			for _, s := range steps {
				b.TestStep(p, s)
			}
			b.TestClose(p)
		}
	}

	if len(ctx.Bindtests) > 0 {
		b.TestOpen(p, "bindtests", ir.InitNone)
		for _, cmd := range ctx.Bindtests {
			call, err := ResolveCall(api, cmd)
			if err != nil {
				p.Fail(emitErr(b.Target(), "", "bindtests: %v", err))
				continue
			}
			if !isBound[call.Action.Name] {
				p.Fail(emitErr(b.Target(), call.Action.Name, "bindtests calls an action this target does not bind"))
				continue
			}
			b.TestStep(p, Step{Test: "bindtests", Call: call})
		}
		b.TestClose(p)
	}
	b.TestEpilogue(p)
	return p.File(path)
}
