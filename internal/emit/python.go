package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/bindgen/internal/ir"
	"github.com/roach88/bindgen/internal/output"
	"github.com/roach88/bindgen/internal/strutil"
)

// pyBackend emits a ctypes module. The GuestFS class is opened by the
// first bound action, so the module-level struct helpers print first.
type pyBackend struct {
	api    *ir.API
	opened bool
	tests  int
}

var pyKeywords = map[string]bool{
	"and": true, "as": true, "assert": true, "async": true, "await": true,
	"class": true, "def": true, "del": true, "elif": true, "except": true,
	"finally": true, "from": true, "global": true, "import": true, "in": true,
	"is": true, "lambda": true, "nonlocal": true, "not": true, "or": true,
	"pass": true, "raise": true, "try": true, "while": true, "with": true,
	"yield": true, "None": true, "True": true, "False": true, "self": true,
}

func pyIdent(name string) string {
	if pyKeywords[name] {
		return name + "_"
	}
	return name
}

func (b *pyBackend) Target() Target              { return TargetPython }
func (b *pyBackend) Files() (string, string)     { return "python/guestfs.py", "python/t/test_generated.py" }
func (b *pyBackend) NewPrinter() *output.Printer { return output.NewIndentPrinter("    ") }
func (b *pyBackend) Skip(a *ir.Action) bool      { return a.HasArgKind(ir.ArgPointer) }

func (b *pyBackend) FunctionName(name string) string { return "g." + name }

func pyArgvClass(a *ir.Action) string { return "_" + strutil.CamelCase(a.Name) + "Argv" }

func pyStructClass(name string) string { return "_" + strutil.CamelCase(name) }

func pyBitmask(a *ir.Action, o ir.OptArg) string {
	return strutil.Upper(a.Name + "_" + o.Name + "_bitmask")
}

func pyBanner(p *output.Printer) {
	p.Printf("# Generated by bindgen %s. Do not edit.\n", ir.GeneratorVersion)
}

func (b *pyBackend) Prologue(p *output.Printer, api *ir.API) {
	b.api = api
	b.opened = false
	pyBanner(p)
	p.Lines(
		`"""ctypes bindings for libguestfs."""`,
		"",
		"import ctypes",
		"import ctypes.util",
		"",
		`_lib = ctypes.CDLL(ctypes.util.find_library("guestfs"))`,
		`_libc = ctypes.CDLL(ctypes.util.find_library("c"))`,
		"_libc.free.argtypes = [ctypes.c_void_p]",
		"",
	)
	for _, e := range api.Events {
		p.Printf("%s = 0x%x\n", strutil.Upper("event_"+e.Name), e.Mask())
	}
	p.Printf("EVENT_ALL = 0x%x\n", ir.AllEvents(api.Events))
	p.Println()
	p.Lines(
		"",
		"class Error(Exception):",
		`    """A libguestfs call failed."""`,
		"",
		"    def __init__(self, op, msg, errno):",
		`        super().__init__("%s: %s" % (op, msg))`,
		"        self.op = op",
		"        self.errno = errno",
		"",
		"",
		"def _c_string_list(strs):",
		"    arr = (ctypes.c_char_p * (len(strs) + 1))()",
		"    for i, s in enumerate(strs):",
		"        arr[i] = s.encode()",
		"    arr[len(strs)] = None",
		"    return arr",
		"",
		"",
		"def _take_string_list(p):",
		"    r = []",
		"    arr = ctypes.cast(p, ctypes.POINTER(ctypes.c_void_p))",
		"    i = 0",
		"    while arr[i]:",
		"        r.append(ctypes.string_at(arr[i]).decode())",
		"        _libc.free(arr[i])",
		"        i += 1",
		"    _libc.free(p)",
		"    return r",
		"",
		"",
		"def _take_hashtable(p):",
		"    items = _take_string_list(p)",
		"    return dict(zip(items[0::2], items[1::2]))",
		"",
		"",
		"class _Handle:",
		"    def __init__(self):",
		"        _lib."+api.Prefix+"create.restype = ctypes.c_void_p",
		"        self._g = ctypes.c_void_p(_lib."+api.Prefix+"create())",
		"        if not self._g.value:",
		`            raise Error("create", "failed to create handle", 0)`,
		"",
		"    def close(self):",
		"        if self._g.value:",
		"            _lib."+api.Prefix+"close(self._g)",
		"            self._g = ctypes.c_void_p()",
		"",
		"    def _check_not_closed(self):",
		"        if not self._g.value:",
		`            raise Error("closed", "handle is closed", 0)`,
		"",
		"    def _error(self, op):",
		"        _lib."+api.Prefix+"last_error.restype = ctypes.c_char_p",
		"        msg = _lib."+api.Prefix+"last_error(self._g)",
		"        errno = _lib."+api.Prefix+"last_errno(self._g)",
		`        return Error(op, msg.decode() if msg else "unknown error", errno)`,
		"",
	)

	for _, a := range api.SortedActions() {
		if b.Skip(&a) || len(a.Style.OptArgs) == 0 {
			continue
		}
		p.Println()
		for i, o := range a.Style.OptArgs {
			p.Printf("%s = 1 << %d\n", pyBitmask(&a, o), i)
		}
		p.Println()
		p.Println()
		p.Printf("class %s(ctypes.Structure):\n", pyArgvClass(&a))
		p.Indent()
		p.Println("_fields_ = [")
		p.Indent()
		p.Println(`("bitmask", ctypes.c_uint64),`)
		for _, o := range a.Style.OptArgs {
			p.Printf("(%q, %s),\n", o.Name, pyOptArgCType(o.Kind))
		}
		p.Dedent()
		p.Println("]")
		p.Dedent()
	}
	p.Println()
}

func pyOptArgCType(k ir.OptArgKind) string {
	switch k {
	case ir.OptBool, ir.OptInt:
		return "ctypes.c_int"
	case ir.OptInt64:
		return "ctypes.c_int64"
	case ir.OptString:
		return "ctypes.c_char_p"
	case ir.OptStringList:
		return "ctypes.POINTER(ctypes.c_char_p)"
	default:
		panic("pyOptArgCType: unknown optarg kind " + k.String())
	}
}

func pyFieldCType(f ir.Field) []string {
	switch f.Kind {
	case ir.FieldChar:
		return []string{"ctypes.c_char"}
	case ir.FieldString:
		return []string{"ctypes.c_char_p"}
	case ir.FieldBuffer:
		return []string{"ctypes.c_uint32", "ctypes.c_void_p"}
	case ir.FieldUUID:
		return []string{fmt.Sprintf("ctypes.c_char * %d", ir.UUIDLen)}
	case ir.FieldInt32:
		return []string{"ctypes.c_int32"}
	case ir.FieldUInt32:
		return []string{"ctypes.c_uint32"}
	case ir.FieldInt64:
		return []string{"ctypes.c_int64"}
	case ir.FieldUInt64, ir.FieldBytes:
		return []string{"ctypes.c_uint64"}
	case ir.FieldOptPercent:
		return []string{"ctypes.c_float"}
	default:
		panic("pyFieldCType: unknown field kind " + f.Kind.String())
	}
}

func (b *pyBackend) StructDecl(p *output.Printer, s *ir.Struct) {
	cls := pyStructClass(s.Name)
	p.Println()
	p.Printf("class %s(ctypes.Structure):\n", cls)
	p.Indent()
	p.Println("_fields_ = [")
	p.Indent()
	for _, f := range s.Fields {
		types := pyFieldCType(f)
		if len(types) == 2 {
			p.Printf("(%q, %s),\n", f.Name+"_len", types[0])
			p.Printf("(%q, %s),\n", f.Name, types[1])
			continue
		}
		p.Printf("(%q, %s),\n", f.Name, types[0])
	}
	p.Dedent()
	p.Println("]")
	p.Dedent()
	p.Println()
	p.Println()
	p.Printf("class %sList(ctypes.Structure):\n", cls)
	p.Indent()
	p.Printf("_fields_ = [(\"len\", ctypes.c_uint32), (\"val\", ctypes.POINTER(%s))]\n", cls)
	p.Dedent()
	p.Println()
}

func (b *pyBackend) StructCopy(p *output.Printer, s *ir.Struct, usage ir.StructUsage) {
	cls := pyStructClass(s.Name)
	p.Println()
	p.Printf("def _%s_to_dict(c):\n", s.Name)
	p.Indent()
	p.Println("return {")
	p.Indent()
	for _, f := range s.Fields {
		var v string
		switch f.Kind {
		case ir.FieldChar:
			v = fmt.Sprintf("c.%s.decode()", f.Name)
		case ir.FieldString:
			v = fmt.Sprintf("c.%s.decode()", f.Name)
		case ir.FieldBuffer:
			v = fmt.Sprintf("ctypes.string_at(c.%s, c.%s_len)", f.Name, f.Name)
		case ir.FieldUUID:
			v = fmt.Sprintf("ctypes.string_at(ctypes.addressof(c) + %s.%s.offset, %d)", cls, f.Name, ir.UUIDLen)
		case ir.FieldOptPercent:
			v = fmt.Sprintf("None if c.%s < 0 else c.%s", f.Name, f.Name)
		default:
			v = "c." + f.Name
		}
		p.Printf("%q: %s,\n", f.Name, v)
	}
	p.Dedent()
	p.Println("}")
	p.Dedent()
	p.Println()

	if usage.NeedsCopy() {
		p.Println()
		p.Printf("def _copy_%s(p):\n", s.Name)
		p.Printf("    return _%s_to_dict(p.contents)\n", s.Name)
		p.Println()
	}
	if usage.NeedsListCopy() {
		p.Println()
		p.Printf("def _copy_%s_list(p):\n", s.Name)
		p.Println("    lst = p.contents")
		p.Printf("    return [_%s_to_dict(lst.val[i]) for i in range(lst.len)]\n", s.Name)
		p.Println()
	}
}

func pyDocLine(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"""`, `\"\"\"`)
}

func (b *pyBackend) Declare(p *output.Printer, a *ir.Action, doc []string) {
	if !b.opened {
		p.Println()
		p.Println("class GuestFS(_Handle):")
		p.Indent()
		p.Println(`"""A libguestfs handle."""`)
		p.Println()
		b.opened = true
	}

	params := []string{"self"}
	for _, arg := range a.Style.Args {
		params = append(params, pyIdent(arg.Name))
	}
	for _, o := range a.Style.OptArgs {
		params = append(params, pyIdent(o.Name)+"=None")
	}
	p.Printf("def %s(%s):\n", pyIdent(a.Name), strings.Join(params, ", "))
	p.Indent()
	if len(doc) == 0 {
		p.Printf(`"""%s"""`+"\n", pyDocLine(a.ShortDesc))
	} else {
		p.Println(`"""` + pyDocLine(a.ShortDesc))
		p.Println()
		for _, l := range doc {
			p.Println(pyDocLine(l))
		}
		p.Println(`"""`)
	}
	p.Println("self._check_not_closed()")
}

func (b *pyBackend) MarshalArg(p *output.Printer, a *ir.Action, arg ir.Arg) {
	n := pyIdent(arg.Name)
	c := "c_" + arg.Name
	switch arg.Kind {
	case ir.ArgString:
		p.Printf("%s = %s.encode()\n", c, n)
	case ir.ArgOptString:
		p.Printf("%s = None if %s is None else %s.encode()\n", c, n, n)
	case ir.ArgStringList:
		p.Printf("%s = _c_string_list(%s)\n", c, n)
	case ir.ArgBool:
		p.Printf("%s = 1 if %s else 0\n", c, n)
	case ir.ArgInt:
		p.Printf("%s = ctypes.c_int(%s)\n", c, n)
	case ir.ArgInt64:
		p.Printf("%s = ctypes.c_int64(%s)\n", c, n)
	case ir.ArgBufferIn:
		p.Printf("%s = bytes(%s)\n", c, n)
	case ir.ArgPointer:
		p.Fail(emitErr(TargetPython, a.Name, "argument %s: pointer arguments have no Python form", arg.Name))
	default:
		panic("MarshalArg: unknown arg kind " + arg.Kind.String())
	}
}

func (b *pyBackend) MarshalOptArg(p *output.Printer, a *ir.Action, i int, o ir.OptArg) {
	if i == 0 {
		p.Printf("c_optargs = %s()\n", pyArgvClass(a))
	}
	n := pyIdent(o.Name)
	p.Printf("if %s is not None:\n", n)
	p.Indent()
	p.Printf("c_optargs.bitmask |= %s\n", pyBitmask(a, o))
	switch o.Kind {
	case ir.OptBool:
		p.Printf("c_optargs.%s = 1 if %s else 0\n", o.Name, n)
	case ir.OptInt, ir.OptInt64:
		p.Printf("c_optargs.%s = %s\n", o.Name, n)
	case ir.OptString:
		p.Printf("c_optargs.%s = %s.encode()\n", o.Name, n)
	case ir.OptStringList:
		p.Printf("c_optargs.%s = ctypes.cast(_c_string_list(%s), ctypes.POINTER(ctypes.c_char_p))\n", o.Name, n)
	}
	p.Dedent()
}

func pyRestype(ret ir.Ret) string {
	switch ret.Kind {
	case ir.RetErr, ir.RetInt, ir.RetBool:
		return "ctypes.c_int"
	case ir.RetInt64:
		return "ctypes.c_int64"
	case ir.RetConstString, ir.RetConstOptString:
		return "ctypes.c_char_p"
	case ir.RetString, ir.RetBufferOut, ir.RetStringList, ir.RetHashtable:
		return "ctypes.c_void_p"
	case ir.RetStruct:
		return "ctypes.POINTER(" + pyStructClass(ret.Struct) + ")"
	case ir.RetStructList:
		return "ctypes.POINTER(" + pyStructClass(ret.Struct) + "List)"
	default:
		panic("pyRestype: unknown ret kind " + ret.Kind.String())
	}
}

// pyIsNull tests r for the NULL pointer as ctypes hands it back for the
// restype: c_char_p and c_void_p give None, a POINTER type gives a false
// pointer object. An empty string is not NULL.
func pyIsNull(ret ir.Ret) string {
	switch ret.Kind {
	case ir.RetStruct, ir.RetStructList:
		return "not r"
	default:
		return "r is None"
	}
}

func (b *pyBackend) CallAndCheck(p *output.Printer, a *ir.Action, ec ir.ErrCode) {
	args := []string{"self._g"}
	for _, arg := range a.Style.Args {
		c := "c_" + arg.Name
		args = append(args, c)
		if arg.Kind == ir.ArgBufferIn && !a.LegacyNULTruncation {
			args = append(args, "ctypes.c_size_t(len("+c+"))")
		}
	}
	if a.Style.Ret.Kind == ir.RetBufferOut {
		p.Println("size = ctypes.c_size_t()")
		args = append(args, "ctypes.byref(size)")
	}
	fn := b.api.Prefix + a.Name
	if len(a.Style.OptArgs) > 0 {
		fn += "_argv"
		args = append(args, "ctypes.byref(c_optargs)")
	}
	p.Printf("f = _lib.%s\n", fn)
	p.Printf("f.restype = %s\n", pyRestype(a.Style.Ret))
	p.Printf("r = f(%s)\n", strings.Join(args, ", "))
	switch ec {
	case ir.ErrorIsMinusOne:
		p.Println("if r == -1:")
	case ir.ErrorIsNULL:
		p.Printf("if %s:\n", pyIsNull(a.Style.Ret))
	case ir.CannotSignalError:
		return
	default:
		panic("CallAndCheck: unknown errcode")
	}
	p.Printf("    raise self._error(%q)\n", a.Name)
}

func (b *pyBackend) MarshalRet(p *output.Printer, a *ir.Action) {
	ret := a.Style.Ret
	switch ret.Kind {
	case ir.RetErr:
	case ir.RetInt, ir.RetInt64:
		p.Println("return r")
	case ir.RetBool:
		p.Println("return r != 0")
	case ir.RetConstString:
		p.Println("return r.decode()")
	case ir.RetConstOptString:
		p.Println("return None if r is None else r.decode()")
	case ir.RetString:
		p.Println("v = ctypes.string_at(r).decode()")
		p.Println("_libc.free(r)")
		p.Println("return v")
	case ir.RetStringList:
		p.Println("return _take_string_list(r)")
	case ir.RetHashtable:
		p.Println("return _take_hashtable(r)")
	case ir.RetStruct:
		p.Printf("v = _copy_%s(r)\n", ret.Struct)
		p.Printf("_lib.%sfree_%s(r)\n", b.api.Prefix, ret.Struct)
		p.Println("return v")
	case ir.RetStructList:
		p.Printf("v = _copy_%s_list(r)\n", ret.Struct)
		p.Printf("_lib.%sfree_%s_list(r)\n", b.api.Prefix, ret.Struct)
		p.Println("return v")
	case ir.RetBufferOut:
		p.Println("v = ctypes.string_at(r, size.value)")
		p.Println("_libc.free(r)")
		p.Println("return v")
	default:
		panic("MarshalRet: unknown ret kind " + ret.Kind.String())
	}
}

func (b *pyBackend) Finish(p *output.Printer, a *ir.Action) {
	p.Dedent()
	p.Println()
}

func (b *pyBackend) Epilogue(p *output.Printer, api *ir.API) {
	if !b.opened {
		p.Println()
		p.Println("class GuestFS(_Handle):")
		p.Println(`    """A libguestfs handle."""`)
		return
	}
	p.Dedent()
}

func (b *pyBackend) TestPrologue(p *output.Printer, api *ir.API) {
	b.api = api
	b.tests = 0
	pyBanner(p)
	p.Lines(
		"",
		"import unittest",
		"",
		"import guestfs",
		"from testutil import handle",
		"",
		"",
		"class TestGenerated(unittest.TestCase):",
	)
	p.Indent()
}

func (b *pyBackend) TestOpen(p *output.Printer, name string, init ir.TestInit) {
	if b.tests > 0 {
		p.Println()
	}
	b.tests++
	p.Printf("def test_%s(self):\n", name)
	p.Indent()
	p.Printf("g = handle(%q)\n", init.String())
}

func pyStrings(ss []string) string {
	quoted := make([]string, len(ss))
	for i, s := range ss {
		quoted[i] = strutil.PyQuote(s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func (b *pyBackend) SkipUnless(p *output.Printer, groups []string) {
	p.Printf("if not g.%s(%s):\n", featureCheck, pyStrings(groups))
	p.Printf("    self.skipTest(%s)\n", strutil.PyQuote("feature not available: "+strings.Join(groups, " ")))
}

func pyValue(v Value) string {
	switch v.Kind {
	case ir.ArgString:
		return strutil.PyQuote(v.Str)
	case ir.ArgOptString:
		if v.Null {
			return "None"
		}
		return strutil.PyQuote(v.Str)
	case ir.ArgStringList:
		return pyStrings(v.Strs)
	case ir.ArgBool:
		if v.Bool {
			return "True"
		}
		return "False"
	case ir.ArgInt, ir.ArgInt64:
		return strconv.FormatInt(v.Int, 10)
	case ir.ArgBufferIn:
		return "b" + strutil.PyQuote(v.Str)
	default:
		panic("pyValue: unexpected value kind " + v.Kind.String())
	}
}

func (b *pyBackend) TestStep(p *output.Printer, step Step) {
	call := step.Call
	a := call.Action
	args := make([]string, 0, len(call.Args)+len(call.OptArgs))
	for _, v := range call.Args {
		args = append(args, pyValue(v))
	}
	for _, o := range call.OptArgs {
		args = append(args, pyIdent(o.OptArg.Name)+"="+pyValue(o.Value))
	}
	expr := fmt.Sprintf("g.%s(%s)", pyIdent(a.Name), strings.Join(args, ", "))

	if step.Expect == ExpectFailure {
		p.Println("with self.assertRaises(guestfs.Error):")
		p.Printf("    %s\n", expr)
		return
	}
	if !step.NeedsResult() {
		p.Println(expr)
		return
	}
	p.Printf("r = %s\n", expr)
	switch step.Expect {
	case ExpectString:
		want := strutil.PyQuote(step.Value)
		if a.Style.Ret.Kind == ir.RetBufferOut {
			want = "b" + want
		}
		p.Printf("self.assertEqual(r, %s)\n", want)
	case ExpectTrue:
		p.Println("self.assertTrue(r)")
	case ExpectFalse:
		p.Println("self.assertFalse(r)")
	}
	for _, c := range step.Checks {
		want := c.Value
		if _, err := strconv.ParseInt(c.Value, 10, 64); err != nil {
			want = strutil.PyQuote(c.Value)
		}
		p.Printf("self.assertTrue(r[%q] %s %s)\n", c.Field, c.Op, want)
	}
}

func (b *pyBackend) TestClose(p *output.Printer) {
	p.Dedent()
}

func (b *pyBackend) TestEpilogue(p *output.Printer) {
	if b.tests == 0 {
		p.Println("pass")
	}
	p.Dedent()
	p.Lines(
		"",
		"",
		`if __name__ == "__main__":`,
		"    unittest.main()",
	)
}
