package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/bindgen/internal/ir"
	"github.com/roach88/bindgen/internal/output"
	"github.com/roach88/bindgen/internal/strutil"
)

// cBackend emits the public C entry points: argument validation around
// the guestfs_impl_* implementations, optarg bitmask macros and argv
// structs, and the struct copy routines.
type cBackend struct {
	api   *ir.API
	test  string
	tests []string
}

func (b *cBackend) Target() Target                     { return TargetC }
func (b *cBackend) Files() (string, string)            { return "c/guestfs-actions.c", "c/tests.c" }
func (b *cBackend) NewPrinter() *output.Printer        { return output.NewIndentPrinter("  ") }
func (b *cBackend) Skip(*ir.Action) bool               { return false }
func (b *cBackend) FunctionName(name string) string    { return b.api.Prefix + name }
func (b *cBackend) macro(parts ...string) string       { return strutil.Upper(b.api.Prefix + strings.Join(parts, "_")) }
func (b *cBackend) structType(name string) string      { return "struct " + b.api.Prefix + name }
func (b *cBackend) argvType(a *ir.Action) string       { return "struct " + b.api.Prefix + a.Name + "_argv" }
func (b *cBackend) implName(a *ir.Action) string       { return b.api.Prefix + "impl_" + a.Name }
func (b *cBackend) freeName(structName string) string  { return b.api.Prefix + "free_" + structName }
func (b *cBackend) copyName(structName string) string  { return b.api.Prefix + "copy_" + structName }
func (b *cBackend) entryName(a *ir.Action) string {
	if len(a.Style.OptArgs) > 0 {
		return b.api.Prefix + a.Name + "_argv"
	}
	return b.api.Prefix + a.Name
}

func cBanner(p *output.Printer) {
	p.Printf("/* This file is generated by bindgen %s. Do not edit. */\n\n", ir.GeneratorVersion)
}

// cDecl joins a C type and a name, without a space after a '*'.
func cDecl(typ, name string) string {
	if strings.HasSuffix(typ, "*") {
		return typ + name
	}
	return typ + " " + name
}

func (b *cBackend) retType(ret ir.Ret) string {
	switch ret.Kind {
	case ir.RetErr, ir.RetInt, ir.RetBool:
		return "int"
	case ir.RetInt64:
		return "int64_t"
	case ir.RetConstString, ir.RetConstOptString:
		return "const char *"
	case ir.RetString, ir.RetBufferOut:
		return "char *"
	case ir.RetStringList, ir.RetHashtable:
		return "char **"
	case ir.RetStruct:
		return b.structType(ret.Struct) + " *"
	case ir.RetStructList:
		return b.structType(ret.Struct) + "_list *"
	default:
		panic("retType: unknown ret kind " + ret.Kind.String())
	}
}

func cArgType(arg ir.Arg) string {
	switch arg.Kind {
	case ir.ArgString, ir.ArgOptString, ir.ArgBufferIn:
		return "const char *"
	case ir.ArgStringList:
		return "char *const *"
	case ir.ArgBool, ir.ArgInt:
		return "int"
	case ir.ArgInt64:
		return "int64_t"
	case ir.ArgPointer:
		return arg.CType
	default:
		panic("cArgType: unknown arg kind " + arg.Kind.String())
	}
}

func (b *cBackend) params(a *ir.Action) []string {
	params := []string{"guestfs_h *g"}
	for _, arg := range a.Style.Args {
		params = append(params, cDecl(cArgType(arg), arg.Name))
		if arg.Kind == ir.ArgBufferIn && !a.LegacyNULTruncation {
			params = append(params, "size_t "+arg.Name+"_size")
		}
	}
	if a.Style.Ret.Kind == ir.RetBufferOut {
		params = append(params, "size_t *size_r")
	}
	if len(a.Style.OptArgs) > 0 {
		params = append(params, "const "+b.argvType(a)+" *optargs")
	}
	return params
}

func errReturn(ec ir.ErrCode) string {
	if ec == ir.ErrorIsMinusOne {
		return "-1"
	}
	return "NULL"
}

func (b *cBackend) Prologue(p *output.Printer, api *ir.API) {
	b.api = api
	cBanner(p)
	p.Lines(
		"#include <config.h>",
		"",
		"#include <stdio.h>",
		"#include <stdlib.h>",
		"#include <stdint.h>",
		"#include <string.h>",
		"",
		`#include "guestfs.h"`,
		`#include "guestfs-internal.h"`,
		"",
	)
}

func cFieldDecl(f ir.Field) []string {
	switch f.Kind {
	case ir.FieldChar:
		return []string{"char " + f.Name + ";"}
	case ir.FieldString:
		return []string{"char *" + f.Name + ";"}
	case ir.FieldBuffer:
		return []string{"uint32_t " + f.Name + "_len;", "char *" + f.Name + ";"}
	case ir.FieldUUID:
		return []string{fmt.Sprintf("char %s[%d]; /* not NUL-terminated */", f.Name, ir.UUIDLen)}
	case ir.FieldInt32:
		return []string{"int32_t " + f.Name + ";"}
	case ir.FieldUInt32:
		return []string{"uint32_t " + f.Name + ";"}
	case ir.FieldInt64:
		return []string{"int64_t " + f.Name + ";"}
	case ir.FieldUInt64, ir.FieldBytes:
		return []string{"uint64_t " + f.Name + ";"}
	case ir.FieldOptPercent:
		return []string{"float " + f.Name + "; /* [0..100] or -1 */"}
	default:
		panic("cFieldDecl: unknown field kind " + f.Kind.String())
	}
}

// StructDecl prints nothing: the struct types live in the header.
func (b *cBackend) StructDecl(p *output.Printer, s *ir.Struct) {}

// ownedFields lists the fields of s that point at separately allocated
// memory.
func ownedFields(s *ir.Struct) []ir.Field {
	var owned []ir.Field
	for _, f := range s.Fields {
		if f.Kind == ir.FieldString || f.Kind == ir.FieldBuffer {
			owned = append(owned, f)
		}
	}
	return owned
}

// StructCopy emits the copy and free routines the usage calls for, on top
// of static field helpers they share.
func (b *cBackend) StructCopy(p *output.Printer, s *ir.Struct, usage ir.StructUsage) {
	st := b.structType(s.Name)
	owned := ownedFields(s)

	p.Printf("static void\nfree_%s_fields (%s *v)\n{\n", s.Name, st)
	p.Indent()
	if len(owned) == 0 {
		p.Println("(void) v;")
	}
	for _, f := range owned {
		p.Printf("free (v->%s);\n", f.Name)
	}
	p.Dedent()
	p.Println("}")
	p.Println()

	// On failure dst holds no allocations.
	p.Printf("static int\ncopy_%s (%s *dst, const %s *src)\n{\n", s.Name, st, st)
	p.Indent()
	p.Println("memcpy (dst, src, sizeof *dst);")
	for _, f := range owned {
		p.Printf("dst->%s = NULL;\n", f.Name)
	}
	for _, f := range owned {
		switch f.Kind {
		case ir.FieldString:
			p.Printf("dst->%s = strdup (src->%s);\n", f.Name, f.Name)
			p.Printf("if (dst->%s == NULL)\n  goto error;\n", f.Name)
		case ir.FieldBuffer:
			p.Printf("if (src->%s_len > 0) {\n", f.Name)
			p.Printf("  dst->%s = malloc (src->%s_len);\n", f.Name, f.Name)
			p.Printf("  if (dst->%s == NULL)\n    goto error;\n", f.Name)
			p.Printf("  memcpy (dst->%s, src->%s, src->%s_len);\n", f.Name, f.Name, f.Name)
			p.Println("}")
		}
	}
	p.Println("return 0;")
	if len(owned) > 0 {
		p.Dedent()
		p.Println()
		p.Println(" error:")
		p.Indent()
		p.Printf("free_%s_fields (dst);\n", s.Name)
		p.Println("return -1;")
	}
	p.Dedent()
	p.Println("}")
	p.Println()

	if usage.NeedsCopy() {
		p.Printf("%s *\n%s (const %s *inp)\n{\n", st, b.copyName(s.Name), st)
		p.Indent()
		p.Printf("%s *out;\n\n", st)
		p.Println("out = malloc (sizeof *out);")
		p.Println("if (out == NULL)\n  return NULL;")
		p.Printf("if (copy_%s (out, inp) == -1) {\n", s.Name)
		p.Println("  free (out);\n  return NULL;\n}")
		p.Println("return out;")
		p.Dedent()
		p.Println("}")
		p.Println()

		p.Printf("void\n%s (%s *v)\n{\n", b.freeName(s.Name), st)
		p.Indent()
		p.Println("if (v == NULL)\n  return;")
		p.Printf("free_%s_fields (v);\n", s.Name)
		p.Println("free (v);")
		p.Dedent()
		p.Println("}")
		p.Println()
	}

	if usage.NeedsListCopy() {
		p.Printf("%s_list *\n%s_list (const %s_list *inp)\n{\n", st, b.copyName(s.Name), st)
		p.Indent()
		p.Printf("%s_list *out;\nsize_t i;\n\n", st)
		p.Println("out = malloc (sizeof *out);")
		p.Println("if (out == NULL)\n  return NULL;")
		p.Println("out->len = inp->len;")
		p.Printf("out->val = calloc (inp->len, sizeof (%s));\n", st)
		p.Println("if (out->val == NULL) {\n  free (out);\n  return NULL;\n}")
		p.Println("for (i = 0; i < inp->len; ++i) {")
		p.Printf("  if (copy_%s (&out->val[i], &inp->val[i]) == -1) {\n", s.Name)
		p.Println("    while (i > 0)")
		p.Printf("      free_%s_fields (&out->val[--i]);\n", s.Name)
		p.Println("    free (out->val);\n    free (out);\n    return NULL;\n  }\n}")
		p.Println("return out;")
		p.Dedent()
		p.Println("}")
		p.Println()

		p.Printf("void\n%s_list (%s_list *v)\n{\n", b.freeName(s.Name), st)
		p.Indent()
		p.Printf("size_t i;\n\n")
		p.Println("if (v == NULL)\n  return;")
		p.Println("for (i = 0; i < v->len; ++i)")
		p.Printf("  free_%s_fields (&v->val[i]);\n", s.Name)
		p.Println("free (v->val);")
		p.Println("free (v);")
		p.Dedent()
		p.Println("}")
		p.Println()
	}
}

func cOptArgType(o ir.OptArg) string {
	switch o.Kind {
	case ir.OptBool, ir.OptInt:
		return "int"
	case ir.OptInt64:
		return "int64_t"
	case ir.OptString:
		return "const char *"
	case ir.OptStringList:
		return "char *const *"
	default:
		panic("cOptArgType: unknown optarg kind " + o.Kind.String())
	}
}

func cComment(p *output.Printer, lines []string) {
	p.Println("/*")
	for _, l := range lines {
		if l == "" {
			p.Println(" *")
		} else {
			p.Printf(" * %s\n", strings.ReplaceAll(l, "*/", "* /"))
		}
	}
	p.Println(" */")
}

// signature prints the return type on its own line, then the entry point
// with one parameter per line.
func (b *cBackend) signature(p *output.Printer, a *ir.Action, storage string) {
	name := b.entryName(a)
	p.Printf("%s%s\n%s (", storage, b.retType(a.Style.Ret), name)
	cont := strings.Repeat(" ", len(name)+2)
	for i, prm := range b.params(a) {
		if i > 0 {
			p.Printf(",\n%s", cont)
		}
		p.Printf("%s", prm)
	}
	p.Printf(")")
}

func (b *cBackend) Declare(p *output.Printer, a *ir.Action, doc []string) {
	cComment(p, append([]string{a.Name + ": " + a.ShortDesc}, prependBlank(doc)...))
	b.signature(p, a, "")
	p.Println()
	p.Println("{")
	p.Indent()
	if len(a.Style.OptArgs) > 0 {
		p.Printf("%s optargs_null;\n", b.argvType(a))
	}
	p.Printf("%s;\n\n", cDecl(b.retType(a.Style.Ret), "r"))
	if len(a.Style.OptArgs) > 0 {
		p.Println("if (optargs == NULL) {")
		p.Println("  optargs_null.bitmask = 0;")
		p.Println("  optargs = &optargs_null;")
		p.Println("}")
	}
}

func prependBlank(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	return append([]string{""}, lines...)
}

func (b *cBackend) nullCheck(p *output.Printer, a *ir.Action, cond, what, name string) {
	p.Printf("if (%s) {\n", cond)
	p.Printf("  error (g, \"%%s: %%s: %s cannot be NULL\", \"%s\", \"%s\");\n", what, a.Name, name)
	p.Printf("  return %s;\n", errReturn(ir.ErrCodeOf(a.Style.Ret)))
	p.Println("}")
}

func (b *cBackend) MarshalArg(p *output.Printer, a *ir.Action, arg ir.Arg) {
	switch arg.Kind {
	case ir.ArgString, ir.ArgStringList, ir.ArgBufferIn:
		b.nullCheck(p, a, arg.Name+" == NULL", "parameter", arg.Name)
		if arg.Kind == ir.ArgBufferIn && a.LegacyNULTruncation {
			p.Printf("size_t %s_size = strlen (%s);\n", arg.Name, arg.Name)
		}
	case ir.ArgOptString, ir.ArgBool, ir.ArgInt, ir.ArgInt64, ir.ArgPointer:
	default:
		panic("MarshalArg: unknown arg kind " + arg.Kind.String())
	}
}

func (b *cBackend) MarshalOptArg(p *output.Printer, a *ir.Action, i int, o ir.OptArg) {
	if i == 0 {
		known := uint64(1)<<uint(len(a.Style.OptArgs)) - 1
		p.Printf("if ((optargs->bitmask & UINT64_C(0x%x)) != 0) {\n", ^known)
		p.Printf("  error (g, \"%%s: unknown option in optargs bitmask\", \"%s\");\n", a.Name)
		p.Printf("  return %s;\n", errReturn(ir.ErrCodeOf(a.Style.Ret)))
		p.Println("}")
	}
	switch o.Kind {
	case ir.OptString, ir.OptStringList:
		cond := fmt.Sprintf("(optargs->bitmask & %s) &&\n    optargs->%s == NULL", b.macro(a.Name, o.Name, "bitmask"), o.Name)
		b.nullCheck(p, a, cond, "optional parameter", o.Name)
	}
}

func (b *cBackend) CallAndCheck(p *output.Printer, a *ir.Action, ec ir.ErrCode) {
	args := []string{"g"}
	for _, arg := range a.Style.Args {
		args = append(args, arg.Name)
		if arg.Kind == ir.ArgBufferIn {
			args = append(args, arg.Name+"_size")
		}
	}
	if a.Style.Ret.Kind == ir.RetBufferOut {
		args = append(args, "size_r")
	}
	if len(a.Style.OptArgs) > 0 {
		args = append(args, "optargs")
	}
	p.Printf("\nr = %s (%s);\n", b.implName(a), strings.Join(args, ", "))
	switch ec {
	case ir.ErrorIsMinusOne:
		p.Println("if (r == -1)\n  return -1;")
	case ir.ErrorIsNULL:
		p.Println("if (r == NULL)\n  return NULL;")
	case ir.CannotSignalError:
		p.Println("/* NULL here means no value, not an error. */")
	default:
		panic("CallAndCheck: unknown errcode")
	}
}

func (b *cBackend) MarshalRet(p *output.Printer, a *ir.Action) {
	p.Println("return r;")
}

func (b *cBackend) Finish(p *output.Printer, a *ir.Action) {
	p.Dedent()
	p.Println("}")
	p.Println()
}

func (b *cBackend) Epilogue(p *output.Printer, api *ir.API) {}

func (b *cBackend) TestPrologue(p *output.Printer, api *ir.API) {
	b.api = api
	b.tests = nil
	cBanner(p)
	p.Lines(
		"#include <config.h>",
		"",
		"#include <stdio.h>",
		"#include <stdlib.h>",
		"#include <stdint.h>",
		"#include <string.h>",
		"",
		`#include "guestfs.h"`,
		`#include "guestfs-utils.h"`,
		`#include "tests.h"`,
		"",
	)
}

func (b *cBackend) TestOpen(p *output.Printer, name string, init ir.TestInit) {
	b.test = name
	b.tests = append(b.tests, name)
	p.Printf("static int\ntest_%s (guestfs_h *g)\n{\n", name)
	p.Indent()
	if init != ir.InitNone {
		p.Printf("if (init_%s (g) == -1)\n  return -1;\n", init)
	}
}

func (b *cBackend) SkipUnless(p *output.Printer, groups []string) {
	quoted := make([]string, 0, len(groups)+1)
	for _, g := range groups {
		quoted = append(quoted, `"`+strutil.CQuote(g)+`"`)
	}
	quoted = append(quoted, "NULL")
	p.Println("{")
	p.Indent()
	p.Printf("const char *groups[] = { %s };\n", strings.Join(quoted, ", "))
	p.Printf("int r = %sfeature_available (g, (char **) groups);\n", b.api.Prefix)
	p.Println("if (r == -1)\n  return -1;")
	p.Println("if (!r) {")
	p.Printf("  skipped (\"%s\", \"feature not available: %s\");\n", b.test, strings.Join(groups, " "))
	p.Println("  return 0;")
	p.Println("}")
	p.Dedent()
	p.Println("}")
}

func cString(s string) string { return `"` + strutil.CQuote(s) + `"` }

// cValue returns the C expression for v, printing any array declaration
// it needs under the name tmp.
func cValue(p *output.Printer, v Value, tmp string) string {
	switch v.Kind {
	case ir.ArgString, ir.ArgBufferIn:
		return cString(v.Str)
	case ir.ArgOptString:
		if v.Null {
			return "NULL"
		}
		return cString(v.Str)
	case ir.ArgStringList:
		elems := make([]string, 0, len(v.Strs)+1)
		for _, s := range v.Strs {
			elems = append(elems, cString(s))
		}
		elems = append(elems, "NULL")
		p.Printf("const char *const %s[] = { %s };\n", tmp, strings.Join(elems, ", "))
		return "(char **) " + tmp
	case ir.ArgBool:
		if v.Bool {
			return "1"
		}
		return "0"
	case ir.ArgInt:
		return strconv.FormatInt(v.Int, 10)
	case ir.ArgInt64:
		return "INT64_C(" + strconv.FormatInt(v.Int, 10) + ")"
	default:
		panic("cValue: unexpected value kind " + v.Kind.String())
	}
}

func (b *cBackend) freeResult(ret ir.Ret) string {
	switch ret.Kind {
	case ir.RetString, ir.RetBufferOut:
		return "free (ret);"
	case ir.RetStringList, ir.RetHashtable:
		return b.api.Prefix + "int_free_string_list (ret);"
	case ir.RetStruct:
		return b.freeName(ret.Struct) + " (ret);"
	case ir.RetStructList:
		return b.freeName(ret.Struct) + "_list (ret);"
	}
	return ""
}

func (b *cBackend) fail(p *output.Printer, format string, args ...string) {
	quoted := make([]string, 0, len(args)+1)
	quoted = append(quoted, cString(b.test))
	for _, a := range args {
		quoted = append(quoted, cString(a))
	}
	p.Printf("fprintf (stderr, \"%%s: %s\\n\", %s);\n", format, strings.Join(quoted, ", "))
	p.Println("return -1;")
}

func (b *cBackend) TestStep(p *output.Printer, step Step) {
	call := step.Call
	a := call.Action
	ret := a.Style.Ret
	ec := ir.ErrCodeOf(ret)

	p.Println("{")
	p.Indent()
	p.Printf("%s;\n", cDecl(b.retType(ret), "ret"))
	if ret.Kind == ir.RetBufferOut {
		p.Println("size_t size;")
	}

	args := []string{"g"}
	for i, v := range call.Args {
		args = append(args, cValue(p, v, fmt.Sprintf("arg%d", i)))
		if v.Kind == ir.ArgBufferIn && !a.LegacyNULTruncation {
			args = append(args, strconv.Itoa(len(v.Str)))
		}
	}
	if ret.Kind == ir.RetBufferOut {
		args = append(args, "&size")
	}
	if len(a.Style.OptArgs) > 0 {
		p.Printf("%s optargs;\n", b.argvType(a))
		p.Printf("optargs.bitmask = UINT64_C(0x%x);\n", call.Bitmask)
		for _, o := range call.OptArgs {
			p.Printf("optargs.%s = %s;\n", o.OptArg.Name, cValue(p, o.Value, "opt"+strconv.Itoa(o.Index)))
		}
		args = append(args, "&optargs")
	}
	p.Printf("ret = %s (%s);\n", b.entryName(a), strings.Join(args, ", "))

	if step.Expect == ExpectFailure {
		p.Printf("if (ret != %s) {\n", errReturn(ec))
		p.Indent()
		b.fail(p, "expected %s to fail", a.Name)
		p.Dedent()
		p.Println("}")
		p.Dedent()
		p.Println("}")
		return
	}

	if ec != ir.CannotSignalError {
		p.Printf("if (ret == %s)\n  return -1;\n", errReturn(ec))
	}
	check := func(cond, format string, args ...string) {
		p.Printf("if (%s) {\n", cond)
		p.Indent()
		b.fail(p, format, args...)
		p.Dedent()
		p.Println("}")
	}
	switch step.Expect {
	case ExpectString:
		if ret.Kind == ir.RetBufferOut {
			check(fmt.Sprintf("size != %d || memcmp (ret, %s, size) != 0", len(step.Value), cString(step.Value)),
				"unexpected result from %s", a.Name)
		} else {
			cond := fmt.Sprintf("strcmp (ret, %s) != 0", cString(step.Value))
			if ec == ir.CannotSignalError {
				cond = "ret == NULL || " + cond
			}
			check(cond,
				"expected \\\"%s\\\" from %s", step.Value, a.Name)
		}
	case ExpectTrue:
		check("!ret", "expected %s to return true", a.Name)
	case ExpectFalse:
		check("ret", "expected %s to return false", a.Name)
	case ExpectExpr:
		check("!("+step.Value+")", "condition failed: %s", step.Value)
	}
	if step.Expect != ExpectExpr {
		for _, c := range step.Checks {
			check("!("+cCheckExpr(c)+")", "check failed: %s", c.Field+" "+c.Op+" "+c.Value)
		}
	}
	if free := b.freeResult(ret); free != "" {
		p.Println(free)
	}
	p.Dedent()
	p.Println("}")
}

func cCheckExpr(c ir.StructCheck) string {
	if _, err := strconv.ParseInt(c.Value, 10, 64); err == nil {
		return fmt.Sprintf("ret->%s %s %s", c.Field, c.Op, c.Value)
	}
	return fmt.Sprintf("strcmp (ret->%s, %s) %s 0", c.Field, cString(c.Value), c.Op)
}

func (b *cBackend) TestClose(p *output.Printer) {
	p.Println("return 0;")
	p.Dedent()
	p.Println("}")
	p.Println()
}

func (b *cBackend) TestEpilogue(p *output.Printer) {
	p.Println("const struct test tests[] = {")
	p.Indent()
	for _, name := range b.tests {
		p.Printf("{ %s, test_%s },\n", cString(name), name)
	}
	p.Println("{ NULL, NULL }")
	p.Dedent()
	p.Println("};")
	p.Printf("const size_t nr_tests = %d;\n", len(b.tests))
}
