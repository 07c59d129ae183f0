package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/bindgen/internal/ir"
	"github.com/roach88/bindgen/internal/output"
	"github.com/roach88/bindgen/internal/strutil"
)

// goBackend emits a cgo package. Methods hang off *Guestfs and return
// error last; optional arguments travel in Optargs<Name> structs whose
// X_is_set fields select the bits.
type goBackend struct {
	api *ir.API
}

var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

func goIdent(name string) string {
	if goKeywords[name] {
		return name + "_"
	}
	return name
}

func (b *goBackend) Target() Target              { return TargetGo }
func (b *goBackend) Files() (string, string)     { return "golang/guestfs.go", "golang/guestfs_generated_test.go" }
func (b *goBackend) NewPrinter() *output.Printer { return output.NewPrinter() }
func (b *goBackend) Skip(a *ir.Action) bool      { return a.HasArgKind(ir.ArgPointer) }

func (b *goBackend) FunctionName(name string) string { return "g." + strutil.Capitalize(name) }

func (b *goBackend) cName(name string) string { return "C." + b.api.Prefix + name }

func (b *goBackend) cStruct(name string) string { return "C.struct_" + b.api.Prefix + name }

func goOptargsType(a *ir.Action) string { return "Optargs" + strutil.Capitalize(a.Name) }

func goStructType(name string) string { return strutil.CamelCase(name) }

func goBanner(p *output.Printer) {
	p.Printf("// Code generated by bindgen %s. DO NOT EDIT.\n\n", ir.GeneratorVersion)
}

func (b *goBackend) Prologue(p *output.Printer, api *ir.API) {
	b.api = api
	goBanner(p)
	p.Println("package guestfs")
	p.Println()
	p.Lines(
		"/*",
		"#cgo LDFLAGS: -lguestfs",
		"#include <stdio.h>",
		"#include <stdlib.h>",
		`#include "guestfs.h"`,
		"*/",
		`import "C"`,
		"",
		"import (",
		`	"fmt"`,
		`	"runtime"`,
		`	"syscall"`,
		`	"unsafe"`,
		")",
		"",
	)

	var rows [][]string
	for _, e := range api.Events {
		rows = append(rows, []string{strutil.Upper("event_" + e.Name), fmt.Sprintf("= uint64(0x%x)", e.Mask())})
	}
	rows = append(rows, []string{"EVENT_ALL", fmt.Sprintf("= uint64(0x%x)", ir.AllEvents(api.Events))})
	p.Println("// Event bits.")
	p.Println("const (")
	p.Indent()
	p.Lines(strutil.Columns(rows, " ")...)
	p.Dedent()
	p.Println(")")
	p.Println()

	p.Lines(
		"// Guestfs is a handle. The zero value is a closed handle.",
		"type Guestfs struct {",
		"	g *C.guestfs_h",
		"}",
		"",
		"// GuestfsError is returned by every failing call.",
		"type GuestfsError struct {",
		"	Op     string",
		"	Errmsg string",
		"	Errno  syscall.Errno",
		"}",
		"",
		"func (e *GuestfsError) Error() string {",
		"	if e.Errno == 0 {",
		`		return fmt.Sprintf("%s: %s", e.Op, e.Errmsg)`,
		"	}",
		`	return fmt.Sprintf("%s: %s: %s", e.Op, e.Errmsg, e.Errno)`,
		"}",
		"",
		"func get_error_from_handle(g *Guestfs, op string) *GuestfsError {",
		"	errno := syscall.Errno(C."+api.Prefix+"last_errno(g.g))",
		"	errmsg := C.GoString(C."+api.Prefix+"last_error(g.g))",
		"	return &GuestfsError{Op: op, Errmsg: errmsg, Errno: errno}",
		"}",
		"",
		"func closed_handle_error(op string) *GuestfsError {",
		`	return &GuestfsError{Op: op, Errmsg: "handle is closed"}`,
		"}",
		"",
		"// Create returns a new handle.",
		"func Create() (*Guestfs, error) {",
		"	c_g := C."+api.Prefix+"create()",
		"	if c_g == nil {",
		`		return nil, &GuestfsError{Op: "create", Errmsg: "failed to create handle"}`,
		"	}",
		"	g := &Guestfs{g: c_g}",
		"	runtime.SetFinalizer(g, (*Guestfs).Close)",
		"	return g, nil",
		"}",
		"",
		"// Close frees the handle. Calls on a closed handle fail.",
		"func (g *Guestfs) Close() error {",
		"	if g.g == nil {",
		`		return closed_handle_error("close")`,
		"	}",
		"	C."+api.Prefix+"close(g.g)",
		"	g.g = nil",
		"	return nil",
		"}",
		"",
		"func next_string(argv **C.char) **C.char {",
		"	return (**C.char)(unsafe.Add(unsafe.Pointer(argv), unsafe.Sizeof(*argv)))",
		"}",
		"",
		"// arg_string_list copies xs into a NULL-terminated array in C memory.",
		"func arg_string_list(xs []string) **C.char {",
		"	r := (**C.char)(C.calloc(C.size_t(len(xs)+1), C.size_t(unsafe.Sizeof((*C.char)(nil)))))",
		"	s := unsafe.Slice(r, len(xs)+1)",
		"	for i, x := range xs {",
		"		s[i] = C.CString(x)",
		"	}",
		"	return r",
		"}",
		"",
		"func free_string_list(argv **C.char) {",
		"	for p := argv; *p != nil; p = next_string(p) {",
		"		C.free(unsafe.Pointer(*p))",
		"	}",
		"	C.free(unsafe.Pointer(argv))",
		"}",
		"",
		"func return_string_list(argv **C.char) []string {",
		"	r := []string{}",
		"	for p := argv; *p != nil; p = next_string(p) {",
		"		r = append(r, C.GoString(*p))",
		"	}",
		"	return r",
		"}",
		"",
		"func return_hashtable(argv **C.char) map[string]string {",
		"	r := make(map[string]string)",
		"	for p := argv; *p != nil; p = next_string(p) {",
		"		key := C.GoString(*p)",
		"		p = next_string(p)",
		"		if *p == nil {",
		"			break",
		"		}",
		"		r[key] = C.GoString(*p)",
		"	}",
		"	return r",
		"}",
		"",
	)
}

func goFieldType(k ir.FieldKind) string {
	switch k {
	case ir.FieldChar:
		return "byte"
	case ir.FieldString:
		return "string"
	case ir.FieldBuffer:
		return "[]byte"
	case ir.FieldUUID:
		return fmt.Sprintf("[%d]byte", ir.UUIDLen)
	case ir.FieldInt32:
		return "int32"
	case ir.FieldUInt32:
		return "uint32"
	case ir.FieldInt64:
		return "int64"
	case ir.FieldUInt64, ir.FieldBytes:
		return "uint64"
	case ir.FieldOptPercent:
		return "float32"
	default:
		panic("goFieldType: unknown field kind " + k.String())
	}
}

func (b *goBackend) StructDecl(p *output.Printer, s *ir.Struct) {
	rows := make([][]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		rows = append(rows, []string{strutil.Capitalize(f.Name), goFieldType(f.Kind)})
	}
	p.Printf("type %s struct {\n", goStructType(s.Name))
	p.Indent()
	p.Lines(strutil.Columns(rows, " ")...)
	p.Dedent()
	p.Println("}")
	p.Println()
}

func (b *goBackend) StructCopy(p *output.Printer, s *ir.Struct, usage ir.StructUsage) {
	typ := goStructType(s.Name)
	p.Printf("func copy_%s(r *%s, c *%s) {\n", s.Name, typ, b.cStruct(s.Name))
	p.Indent()
	for _, f := range s.Fields {
		dst := "r." + strutil.Capitalize(f.Name)
		src := "c." + f.Name
		switch f.Kind {
		case ir.FieldChar:
			p.Printf("%s = byte(%s)\n", dst, src)
		case ir.FieldString:
			p.Printf("%s = C.GoString(%s)\n", dst, src)
		case ir.FieldBuffer:
			p.Printf("%s = C.GoBytes(unsafe.Pointer(%s), C.int(%s_len))\n", dst, src, src)
		case ir.FieldUUID:
			p.Printf("for i := range %s {\n\t%s[i] = byte(%s[i])\n}\n", dst, dst, src)
		default:
			p.Printf("%s = %s(%s)\n", dst, goFieldType(f.Kind), src)
		}
	}
	p.Dedent()
	p.Println("}")
	p.Println()

	if usage.NeedsCopy() {
		p.Printf("func return_%s(c *%s) *%s {\n", s.Name, b.cStruct(s.Name), typ)
		p.Printf("\tr := &%s{}\n\tcopy_%s(r, c)\n\treturn r\n}\n\n", typ, s.Name)
	}
	if usage.NeedsListCopy() {
		p.Printf("func return_%s_list(c *%s_list) []%s {\n", s.Name, b.cStruct(s.Name), typ)
		p.Indent()
		p.Println("elems := unsafe.Slice(c.val, int(c.len))")
		p.Printf("r := make([]%s, len(elems))\n", typ)
		p.Printf("for i := range elems {\n\tcopy_%s(&r[i], &elems[i])\n}\n", s.Name)
		p.Println("return r")
		p.Dedent()
		p.Println("}")
		p.Println()
	}
}

func goArgType(k ir.ArgKind) string {
	switch k {
	case ir.ArgString:
		return "string"
	case ir.ArgOptString:
		return "*string"
	case ir.ArgStringList:
		return "[]string"
	case ir.ArgBool:
		return "bool"
	case ir.ArgInt:
		return "int"
	case ir.ArgInt64:
		return "int64"
	case ir.ArgBufferIn:
		return "[]byte"
	case ir.ArgPointer:
		return "unsafe.Pointer"
	default:
		panic("goArgType: unknown arg kind " + k.String())
	}
}

func goOptArgType(k ir.OptArgKind) string {
	switch k {
	case ir.OptBool:
		return "bool"
	case ir.OptInt:
		return "int"
	case ir.OptInt64:
		return "int64"
	case ir.OptString:
		return "string"
	case ir.OptStringList:
		return "[]string"
	default:
		panic("goOptArgType: unknown optarg kind " + k.String())
	}
}

func goRetType(ret ir.Ret) string {
	switch ret.Kind {
	case ir.RetErr:
		return ""
	case ir.RetInt:
		return "int"
	case ir.RetInt64:
		return "int64"
	case ir.RetBool:
		return "bool"
	case ir.RetConstString, ir.RetString:
		return "string"
	case ir.RetConstOptString:
		return "*string"
	case ir.RetStringList:
		return "[]string"
	case ir.RetStruct:
		return "*" + goStructType(ret.Struct)
	case ir.RetStructList:
		return "[]" + goStructType(ret.Struct)
	case ir.RetHashtable:
		return "map[string]string"
	case ir.RetBufferOut:
		return "[]byte"
	default:
		panic("goRetType: unknown ret kind " + ret.Kind.String())
	}
}

func goZero(ret ir.Ret) string {
	switch ret.Kind {
	case ir.RetInt, ir.RetInt64:
		return "0"
	case ir.RetBool:
		return "false"
	case ir.RetConstString, ir.RetString:
		return `""`
	default:
		return "nil"
	}
}

// goFailReturn is the return statement for an error value err.
func goFailReturn(ret ir.Ret, err string) string {
	if ret.Kind == ir.RetErr {
		return "return " + err
	}
	return "return " + goZero(ret) + ", " + err
}

func (b *goBackend) Declare(p *output.Printer, a *ir.Action, doc []string) {
	name := strutil.Capitalize(a.Name)
	if len(a.Style.OptArgs) > 0 {
		p.Printf("// %s holds the optional arguments of %s.\n", goOptargsType(a), name)
		p.Printf("type %s struct {\n", goOptargsType(a))
		p.Indent()
		for i, o := range a.Style.OptArgs {
			if i > 0 {
				p.Println()
			}
			field := strutil.Capitalize(o.Name)
			p.Printf("// %s is ignored unless %s_is_set is true.\n", field, field)
			p.Printf("%s_is_set bool\n", field)
			p.Printf("%s %s\n", field, goOptArgType(o.Kind))
		}
		p.Dedent()
		p.Println("}")
		p.Println()
	}

	p.Printf("// %s: %s\n", name, a.ShortDesc)
	if len(doc) > 0 {
		p.Println("//")
		for _, l := range doc {
			if l == "" {
				p.Println("//")
			} else {
				p.Printf("// %s\n", l)
			}
		}
	}

	params := make([]string, 0, len(a.Style.Args)+1)
	for _, arg := range a.Style.Args {
		params = append(params, goIdent(arg.Name)+" "+goArgType(arg.Kind))
	}
	if len(a.Style.OptArgs) > 0 {
		params = append(params, "optargs *"+goOptargsType(a))
	}
	results := "error"
	if rt := goRetType(a.Style.Ret); rt != "" {
		results = "(" + rt + ", error)"
	}
	p.Printf("func (g *Guestfs) %s(%s) %s {\n", name, strings.Join(params, ", "), results)
	p.Indent()
	p.Println("if g.g == nil {")
	p.Printf("\t%s\n", goFailReturn(a.Style.Ret, fmt.Sprintf("closed_handle_error(%q)", a.Name)))
	p.Println("}")
}

func (b *goBackend) MarshalArg(p *output.Printer, a *ir.Action, arg ir.Arg) {
	n := goIdent(arg.Name)
	c := "c_" + arg.Name
	switch arg.Kind {
	case ir.ArgString:
		p.Printf("%s := C.CString(%s)\n", c, n)
		p.Printf("defer C.free(unsafe.Pointer(%s))\n", c)
	case ir.ArgOptString:
		p.Printf("var %s *C.char\n", c)
		p.Printf("if %s != nil {\n", n)
		p.Printf("\t%s = C.CString(*%s)\n", c, n)
		p.Printf("\tdefer C.free(unsafe.Pointer(%s))\n", c)
		p.Println("}")
	case ir.ArgStringList:
		p.Printf("%s := arg_string_list(%s)\n", c, n)
		p.Printf("defer free_string_list(%s)\n", c)
	case ir.ArgBool:
		p.Printf("var %s C.int\n", c)
		p.Printf("if %s {\n\t%s = 1\n}\n", n, c)
	case ir.ArgInt:
		p.Printf("%s := C.int(%s)\n", c, n)
	case ir.ArgInt64:
		p.Printf("%s := C.int64_t(%s)\n", c, n)
	case ir.ArgBufferIn:
		if a.LegacyNULTruncation {
			p.Printf("%s := C.CString(string(%s))\n", c, n)
			p.Printf("defer C.free(unsafe.Pointer(%s))\n", c)
		} else {
			p.Printf("%s := C.CBytes(%s)\n", c, n)
			p.Printf("defer C.free(%s)\n", c)
		}
	case ir.ArgPointer:
		p.Fail(emitErr(TargetGo, a.Name, "argument %s: pointer arguments have no Go form", arg.Name))
	default:
		panic("MarshalArg: unknown arg kind " + arg.Kind.String())
	}
}

func (b *goBackend) MarshalOptArg(p *output.Printer, a *ir.Action, i int, o ir.OptArg) {
	if i == 0 {
		p.Printf("c_optargs := %s_argv{}\n", b.cStruct(a.Name))
	}
	field := "optargs." + strutil.Capitalize(o.Name)
	c := "c_optargs." + o.Name
	p.Printf("if optargs != nil && %s_is_set {\n", field)
	p.Indent()
	p.Printf("c_optargs.bitmask |= C.%s\n", strutil.Upper(b.api.Prefix+a.Name+"_"+o.Name+"_bitmask"))
	switch o.Kind {
	case ir.OptBool:
		p.Printf("if %s {\n\t%s = 1\n}\n", field, c)
	case ir.OptInt:
		p.Printf("%s = C.int(%s)\n", c, field)
	case ir.OptInt64:
		p.Printf("%s = C.int64_t(%s)\n", c, field)
	case ir.OptString:
		p.Printf("%s = C.CString(%s)\n", c, field)
		p.Printf("defer C.free(unsafe.Pointer(%s))\n", c)
	case ir.OptStringList:
		p.Printf("%s = arg_string_list(%s)\n", c, field)
		p.Printf("defer free_string_list(%s)\n", c)
	}
	p.Dedent()
	p.Println("}")
}

func (b *goBackend) CallAndCheck(p *output.Printer, a *ir.Action, ec ir.ErrCode) {
	args := []string{"g.g"}
	for _, arg := range a.Style.Args {
		c := "c_" + arg.Name
		if arg.Kind == ir.ArgBufferIn && !a.LegacyNULTruncation {
			args = append(args, "(*C.char)("+c+")", "C.size_t(len("+goIdent(arg.Name)+"))")
			continue
		}
		args = append(args, c)
	}
	if a.Style.Ret.Kind == ir.RetBufferOut {
		p.Println("var size C.size_t")
		args = append(args, "&size")
	}
	fn := b.cName(a.Name)
	if len(a.Style.OptArgs) > 0 {
		fn += "_argv"
		args = append(args, "&c_optargs")
	}
	p.Println()
	p.Printf("r := %s(%s)\n", fn, strings.Join(args, ", "))
	fail := goFailReturn(a.Style.Ret, fmt.Sprintf("get_error_from_handle(g, %q)", a.Name))
	switch ec {
	case ir.ErrorIsMinusOne:
		p.Printf("if r == -1 {\n\t%s\n}\n", fail)
	case ir.ErrorIsNULL:
		p.Printf("if r == nil {\n\t%s\n}\n", fail)
	case ir.CannotSignalError:
	default:
		panic("CallAndCheck: unknown errcode")
	}
}

func (b *goBackend) MarshalRet(p *output.Printer, a *ir.Action) {
	ret := a.Style.Ret
	switch ret.Kind {
	case ir.RetErr:
		p.Println("return nil")
	case ir.RetInt:
		p.Println("return int(r), nil")
	case ir.RetInt64:
		p.Println("return int64(r), nil")
	case ir.RetBool:
		p.Println("return r != 0, nil")
	case ir.RetConstString:
		p.Println("return C.GoString(r), nil")
	case ir.RetConstOptString:
		p.Println("if r == nil {\n\treturn nil, nil\n}")
		p.Println("s := C.GoString(r)\nreturn &s, nil")
	case ir.RetString:
		p.Println("defer C.free(unsafe.Pointer(r))")
		p.Println("return C.GoString(r), nil")
	case ir.RetStringList:
		p.Println("defer free_string_list(r)")
		p.Println("return return_string_list(r), nil")
	case ir.RetHashtable:
		p.Println("defer free_string_list(r)")
		p.Println("return return_hashtable(r), nil")
	case ir.RetStruct:
		p.Printf("defer %s(r)\n", b.cName("free_"+ret.Struct))
		p.Printf("return return_%s(r), nil\n", ret.Struct)
	case ir.RetStructList:
		p.Printf("defer %s_list(r)\n", b.cName("free_"+ret.Struct))
		p.Printf("return return_%s_list(r), nil\n", ret.Struct)
	case ir.RetBufferOut:
		p.Println("defer C.free(unsafe.Pointer(r))")
		p.Println("return C.GoBytes(unsafe.Pointer(r), C.int(size)), nil")
	default:
		panic("MarshalRet: unknown ret kind " + ret.Kind.String())
	}
}

func (b *goBackend) Finish(p *output.Printer, a *ir.Action) {
	p.Dedent()
	p.Println("}")
	p.Println()
}

func (b *goBackend) Epilogue(p *output.Printer, api *ir.API) {}

func (b *goBackend) TestPrologue(p *output.Printer, api *ir.API) {
	b.api = api
	goBanner(p)
	p.Println("package guestfs")
	p.Println()
	p.Println(`import "testing"`)
	p.Println()
	p.Println("func strp(s string) *string { return &s }")
	p.Println()
}

func (b *goBackend) TestOpen(p *output.Printer, name string, init ir.TestInit) {
	p.Printf("func Test_%s(t *testing.T) {\n", name)
	p.Indent()
	p.Printf("g := testHandle(t, %q)\n", init.String())
}

func goStrings(ss []string) string {
	quoted := make([]string, len(ss))
	for i, s := range ss {
		quoted[i] = strutil.GoQuote(s)
	}
	return "[]string{" + strings.Join(quoted, ", ") + "}"
}

func (b *goBackend) SkipUnless(p *output.Printer, groups []string) {
	p.Printf("if ok, err := g.%s(%s); err != nil || !ok {\n", strutil.Capitalize(featureCheck), goStrings(groups))
	p.Printf("\tt.Skip(%s)\n", strutil.GoQuote("feature not available: "+strings.Join(groups, " ")))
	p.Println("}")
}

func goValue(v Value) string {
	switch v.Kind {
	case ir.ArgString:
		return strutil.GoQuote(v.Str)
	case ir.ArgOptString:
		if v.Null {
			return "nil"
		}
		return "strp(" + strutil.GoQuote(v.Str) + ")"
	case ir.ArgStringList:
		return goStrings(v.Strs)
	case ir.ArgBool:
		return strconv.FormatBool(v.Bool)
	case ir.ArgInt, ir.ArgInt64:
		return strconv.FormatInt(v.Int, 10)
	case ir.ArgBufferIn:
		return "[]byte(" + strutil.GoQuote(v.Str) + ")"
	default:
		panic("goValue: unexpected value kind " + v.Kind.String())
	}
}

func goCheckValue(c ir.StructCheck) string {
	if _, err := strconv.ParseInt(c.Value, 10, 64); err == nil {
		return c.Value
	}
	return strutil.GoQuote(c.Value)
}

func (b *goBackend) TestStep(p *output.Printer, step Step) {
	call := step.Call
	a := call.Action
	ret := a.Style.Ret

	args := make([]string, 0, len(call.Args)+1)
	for _, v := range call.Args {
		args = append(args, goValue(v))
	}
	if len(a.Style.OptArgs) > 0 {
		if len(call.OptArgs) == 0 {
			args = append(args, "nil")
		} else {
			fields := make([]string, 0, 2*len(call.OptArgs))
			for _, o := range call.OptArgs {
				f := strutil.Capitalize(o.OptArg.Name)
				fields = append(fields, f+"_is_set: true", f+": "+goValue(o.Value))
			}
			args = append(args, "&"+goOptargsType(a)+"{"+strings.Join(fields, ", ")+"}")
		}
	}
	expr := fmt.Sprintf("g.%s(%s)", strutil.Capitalize(a.Name), strings.Join(args, ", "))
	lhs := "_, err"
	if ret.Kind == ir.RetErr {
		lhs = "err"
	}

	if step.Expect == ExpectFailure {
		p.Printf("if %s := %s; err == nil {\n", lhs, expr)
		p.Printf("\tt.Errorf(\"%%s: expected %%s to fail\", %q, %q)\n", step.Test, a.Name)
		p.Println("}")
		return
	}
	if !step.NeedsResult() {
		p.Printf("if %s := %s; err != nil {\n", lhs, expr)
		p.Printf("\tt.Fatalf(\"%%s: %%s: %%v\", %q, %q, err)\n", step.Test, a.Name)
		p.Println("}")
		return
	}

	p.Println("{")
	p.Indent()
	p.Printf("r, err := %s\n", expr)
	p.Printf("if err != nil {\n\tt.Fatalf(\"%%s: %%s: %%v\", %q, %q, err)\n}\n", step.Test, a.Name)
	switch step.Expect {
	case ExpectString:
		want := strutil.GoQuote(step.Value)
		switch ret.Kind {
		case ir.RetConstOptString:
			p.Printf("if r == nil || *r != %s {\n", want)
			p.Printf("\tt.Errorf(\"%%s: got %%v, want %%q\", %q, r, %s)\n", step.Test, want)
		case ir.RetBufferOut:
			p.Printf("if string(r) != %s {\n", want)
			p.Printf("\tt.Errorf(\"%%s: got %%q, want %%q\", %q, r, %s)\n", step.Test, want)
		default:
			p.Printf("if r != %s {\n", want)
			p.Printf("\tt.Errorf(\"%%s: got %%q, want %%q\", %q, r, %s)\n", step.Test, want)
		}
		p.Println("}")
	case ExpectTrue:
		p.Printf("if !r {\n\tt.Errorf(\"%%s: expected true\", %q)\n}\n", step.Test)
	case ExpectFalse:
		p.Printf("if r {\n\tt.Errorf(\"%%s: expected false\", %q)\n}\n", step.Test)
	}
	for _, c := range step.Checks {
		cond := fmt.Sprintf("r.%s %s %s", strutil.Capitalize(c.Field), c.Op, goCheckValue(c))
		p.Printf("if !(%s) {\n", cond)
		p.Printf("\tt.Errorf(\"%%s: check failed: %%s\", %q, %q)\n", step.Test, c.Field+" "+c.Op+" "+c.Value)
		p.Println("}")
	}
	p.Dedent()
	p.Println("}")
}

func (b *goBackend) TestClose(p *output.Printer) {
	p.Dedent()
	p.Println("}")
	p.Println()
}

func (b *goBackend) TestEpilogue(p *output.Printer) {}
