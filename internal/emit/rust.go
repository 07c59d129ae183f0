package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/bindgen/internal/ir"
	"github.com/roach88/bindgen/internal/output"
	"github.com/roach88/bindgen/internal/strutil"
)

// rustBackend emits a module of the guestfs crate. It relies on the
// crate's hand-written base, error and utils modules for the handle,
// error conversion and list helpers.
type rustBackend struct {
	api *ir.API
}

var rustKeywords = map[string]bool{
	"as": true, "async": true, "await": true, "box": true, "break": true,
	"const": true, "continue": true, "crate": true, "dyn": true, "else": true,
	"enum": true, "extern": true, "false": true, "fn": true, "for": true,
	"if": true, "impl": true, "in": true, "let": true, "loop": true,
	"match": true, "mod": true, "move": true, "mut": true, "pub": true,
	"ref": true, "return": true, "self": true, "static": true, "struct": true,
	"super": true, "trait": true, "true": true, "type": true, "unsafe": true,
	"use": true, "where": true, "while": true, "yield": true,
}

func rustIdent(name string) string {
	if rustKeywords[name] {
		return "r#" + name
	}
	return name
}

func (b *rustBackend) Target() Target              { return TargetRust }
func (b *rustBackend) Files() (string, string)     { return "rust/src/guestfs.rs", "rust/tests/generated.rs" }
func (b *rustBackend) NewPrinter() *output.Printer { return output.NewIndentPrinter("    ") }
func (b *rustBackend) Skip(a *ir.Action) bool      { return a.HasArgKind(ir.ArgPointer) }

func (b *rustBackend) FunctionName(name string) string { return "Handle::" + name }

func rustStruct(name string) string { return strutil.CamelCase(name) }

func rustOptArgs(a *ir.Action) string { return strutil.CamelCase(a.Name) + "OptArgs" }

func (b *rustBackend) cFunc(a *ir.Action) string {
	if len(a.Style.OptArgs) > 0 {
		return b.api.Prefix + a.Name + "_argv"
	}
	return b.api.Prefix + a.Name
}

func rustBanner(p *output.Printer) {
	p.Printf("// Generated by bindgen %s. Do not edit.\n\n", ir.GeneratorVersion)
}

func (b *rustBackend) Prologue(p *output.Printer, api *ir.API) {
	b.api = api
	rustBanner(p)
	p.Lines(
		"#![allow(non_snake_case, unused_imports, dead_code)]",
		"",
		"use crate::base::*;",
		"use crate::error;",
		"use crate::utils::*;",
		"use std::collections;",
		"use std::convert::TryFrom;",
		"use std::ffi;",
		"use std::os::raw::{c_char, c_int, c_void};",
		"use std::ptr;",
		"use std::slice;",
		"",
		`extern "C" {`,
		"    fn free(buf: *const c_void);",
		"}",
		"",
	)
	for _, e := range api.Events {
		p.Printf("pub const %s: u64 = 0x%x;\n", strutil.Upper("event_"+e.Name), e.Mask())
	}
	p.Printf("pub const EVENT_ALL: u64 = 0x%x;\n", ir.AllEvents(api.Events))
	p.Println()
	p.Lines(
		fmt.Sprintf("fn uuid_bytes(raw: &[c_char; %d]) -> [u8; %d] {", ir.UUIDLen, ir.UUIDLen),
		fmt.Sprintf("    let mut u = [0u8; %d];", ir.UUIDLen),
		"    for (i, c) in raw.iter().enumerate() {",
		"        u[i] = *c as u8;",
		"    }",
		"    u",
		"}",
		"",
	)
}

func rustFieldTypes(k ir.FieldKind) (raw, pub string) {
	switch k {
	case ir.FieldChar:
		return "c_char", "char"
	case ir.FieldString:
		return "*const c_char", "String"
	case ir.FieldBuffer:
		return "*const c_char", "Vec<u8>"
	case ir.FieldUUID:
		return fmt.Sprintf("[c_char; %d]", ir.UUIDLen), fmt.Sprintf("[u8; %d]", ir.UUIDLen)
	case ir.FieldInt32:
		return "i32", "i32"
	case ir.FieldUInt32:
		return "u32", "u32"
	case ir.FieldInt64:
		return "i64", "i64"
	case ir.FieldUInt64, ir.FieldBytes:
		return "u64", "u64"
	case ir.FieldOptPercent:
		return "f32", "Option<f32>"
	default:
		panic("rustFieldTypes: unknown field kind " + k.String())
	}
}

func (b *rustBackend) StructDecl(p *output.Printer, s *ir.Struct) {
	name := rustStruct(s.Name)
	p.Println("#[repr(C)]")
	p.Printf("struct Raw%s {\n", name)
	p.Indent()
	for _, f := range s.Fields {
		raw, _ := rustFieldTypes(f.Kind)
		if f.Kind == ir.FieldBuffer {
			p.Printf("%s_len: u32,\n", f.Name)
		}
		p.Printf("%s: %s,\n", rustIdent(f.Name), raw)
	}
	p.Dedent()
	p.Println("}")
	p.Println()

	p.Println(`#[link(name = "guestfs")]`)
	p.Println(`extern "C" {`)
	p.Printf("    fn %sfree_%s(v: *const Raw%s);\n", b.api.Prefix, s.Name, name)
	p.Printf("    fn %sfree_%s_list(l: *const RawList<Raw%s>);\n", b.api.Prefix, s.Name, name)
	p.Println("}")
	p.Println()

	p.Println("#[derive(Debug, Clone)]")
	p.Printf("pub struct %s {\n", name)
	p.Indent()
	for _, f := range s.Fields {
		_, pub := rustFieldTypes(f.Kind)
		p.Printf("pub %s: %s,\n", rustIdent(f.Name), pub)
	}
	p.Dedent()
	p.Println("}")
	p.Println()
}

// StructCopy always emits the TryFrom conversion; the list helper
// iterates with it.
func (b *rustBackend) StructCopy(p *output.Printer, s *ir.Struct, usage ir.StructUsage) {
	name := rustStruct(s.Name)
	p.Printf("impl TryFrom<*const Raw%s> for %s {\n", name, name)
	p.Indent()
	p.Println("type Error = error::Error;")
	p.Println()
	p.Printf("fn try_from(raw: *const Raw%s) -> Result<Self, Self::Error> {\n", name)
	p.Indent()
	p.Println("Ok(unsafe {")
	p.Indent()
	p.Printf("%s {\n", name)
	p.Indent()
	for _, f := range s.Fields {
		src := "(*raw)." + rustIdent(f.Name)
		var v string
		switch f.Kind {
		case ir.FieldChar:
			v = src + " as u8 as char"
		case ir.FieldString:
			v = "char_ptr_to_string(" + src + ")?"
		case ir.FieldBuffer:
			v = fmt.Sprintf("slice::from_raw_parts(%s as *const u8, (*raw).%s_len as usize).to_vec()", src, f.Name)
		case ir.FieldUUID:
			v = "uuid_bytes(&" + src + ")"
		case ir.FieldOptPercent:
			v = fmt.Sprintf("if %s < 0.0 { None } else { Some(%s) }", src, src)
		default:
			v = src
		}
		p.Printf("%s: %s,\n", rustIdent(f.Name), v)
	}
	p.Dedent()
	p.Println("}")
	p.Dedent()
	p.Println("})")
	p.Dedent()
	p.Println("}")
	p.Dedent()
	p.Println("}")
	p.Println()

	if usage.NeedsListCopy() {
		p.Printf("fn %s_list(l: *const RawList<Raw%s>) -> Result<Vec<%s>, error::Error> {\n", s.Name, name, name)
		p.Printf("    struct_list::<Raw%s, %s>(l)\n", name, name)
		p.Println("}")
		p.Println()
	}
}

func rustArgType(k ir.ArgKind) (pub, raw string) {
	switch k {
	case ir.ArgString:
		return "&str", "*const c_char"
	case ir.ArgOptString:
		return "Option<&str>", "*const c_char"
	case ir.ArgStringList:
		return "&[&str]", "*const *const c_char"
	case ir.ArgBool:
		return "bool", "c_int"
	case ir.ArgInt:
		return "i32", "c_int"
	case ir.ArgInt64:
		return "i64", "i64"
	case ir.ArgBufferIn:
		return "&[u8]", "*const c_char"
	default:
		panic("rustArgType: no Rust type for " + k.String())
	}
}

func rustOptArgType(k ir.OptArgKind) (pub, raw string) {
	switch k {
	case ir.OptBool:
		return "Option<bool>", "c_int"
	case ir.OptInt:
		return "Option<i32>", "c_int"
	case ir.OptInt64:
		return "Option<i64>", "i64"
	case ir.OptString:
		return "Option<&'a str>", "*const c_char"
	case ir.OptStringList:
		return "Option<&'a [&'a str]>", "*const *const c_char"
	default:
		panic("rustOptArgType: unknown optarg kind " + k.String())
	}
}

func rustRetType(ret ir.Ret) (pub, raw string) {
	switch ret.Kind {
	case ir.RetErr:
		return "()", "c_int"
	case ir.RetInt:
		return "i32", "c_int"
	case ir.RetInt64:
		return "i64", "i64"
	case ir.RetBool:
		return "bool", "c_int"
	case ir.RetConstString, ir.RetString:
		return "String", "*const c_char"
	case ir.RetConstOptString:
		return "Option<String>", "*const c_char"
	case ir.RetStringList:
		return "Vec<String>", "*const *const c_char"
	case ir.RetStruct:
		return rustStruct(ret.Struct), "*const Raw" + rustStruct(ret.Struct)
	case ir.RetStructList:
		return "Vec<" + rustStruct(ret.Struct) + ">", "*const RawList<Raw" + rustStruct(ret.Struct) + ">"
	case ir.RetHashtable:
		return "collections::HashMap<String, String>", "*const *const c_char"
	case ir.RetBufferOut:
		return "Vec<u8>", "*const c_char"
	default:
		panic("rustRetType: unknown ret kind " + ret.Kind.String())
	}
}

func hasBorrowedOptArg(a *ir.Action) bool {
	for _, o := range a.Style.OptArgs {
		if o.Kind == ir.OptString || o.Kind == ir.OptStringList {
			return true
		}
	}
	return false
}

func rustDoc(p *output.Printer, lines []string) {
	for _, l := range lines {
		if l == "" {
			p.Println("///")
		} else {
			p.Printf("/// %s\n", l)
		}
	}
}

func (b *rustBackend) Declare(p *output.Printer, a *ir.Action, doc []string) {
	optType := rustOptArgs(a)
	if len(a.Style.OptArgs) > 0 {
		lifetime := ""
		if hasBorrowedOptArg(a) {
			lifetime = "<'a>"
		}
		p.Println("#[derive(Default)]")
		p.Printf("pub struct %s%s {\n", optType, lifetime)
		p.Indent()
		for _, o := range a.Style.OptArgs {
			pub, _ := rustOptArgType(o.Kind)
			p.Printf("pub %s: %s,\n", rustIdent(o.Name), pub)
		}
		p.Dedent()
		p.Println("}")
		p.Println()
		p.Println("#[repr(C)]")
		p.Printf("struct Raw%s {\n", optType)
		p.Indent()
		p.Println("bitmask: u64,")
		for _, o := range a.Style.OptArgs {
			_, raw := rustOptArgType(o.Kind)
			p.Printf("%s: %s,\n", rustIdent(o.Name), raw)
		}
		p.Dedent()
		p.Println("}")
		p.Println()
	}

	rawParams := []string{"g: *mut guestfs_h"}
	params := []string{"&self"}
	for _, arg := range a.Style.Args {
		pub, raw := rustArgType(arg.Kind)
		n := rustIdent(arg.Name)
		rawParams = append(rawParams, n+": "+raw)
		params = append(params, n+": "+pub)
		if arg.Kind == ir.ArgBufferIn && !a.LegacyNULTruncation {
			rawParams = append(rawParams, arg.Name+"_size: usize")
		}
	}
	if a.Style.Ret.Kind == ir.RetBufferOut {
		rawParams = append(rawParams, "size_r: *mut usize")
	}
	if len(a.Style.OptArgs) > 0 {
		rawParams = append(rawParams, "optargs: *const Raw"+optType)
		params = append(params, "optargs: "+optType)
	}
	pubRet, rawRet := rustRetType(a.Style.Ret)

	p.Println(`#[link(name = "guestfs")]`)
	p.Println(`extern "C" {`)
	p.Printf("    fn %s(%s) -> %s;\n", b.cFunc(a), strings.Join(rawParams, ", "), rawRet)
	p.Println("}")
	p.Println()
	p.Println("impl<'a> Handle<'a> {")
	p.Indent()
	rustDoc(p, append([]string{a.ShortDesc}, prependBlank(doc)...))
	p.Printf("pub fn %s(%s) -> Result<%s, error::Error> {\n", rustIdent(a.Name), strings.Join(params, ", "), pubRet)
	p.Indent()
}

func (b *rustBackend) MarshalArg(p *output.Printer, a *ir.Action, arg ir.Arg) {
	n := rustIdent(arg.Name)
	c := "c_" + arg.Name
	switch arg.Kind {
	case ir.ArgString:
		p.Printf("let %s = ffi::CString::new(%s)?;\n", c, n)
	case ir.ArgOptString:
		p.Printf("let %s = match %s {\n", c, n)
		p.Println("    Some(s) => Some(ffi::CString::new(s)?),")
		p.Println("    None => None,")
		p.Println("};")
	case ir.ArgStringList:
		p.Printf("let %s_v = arg_string_list(%s)?;\n", c, n)
		p.Printf("let mut %s: Vec<*const c_char> = %s_v.iter().map(|s| s.as_ptr()).collect();\n", c, c)
		p.Printf("%s.push(ptr::null());\n", c)
	case ir.ArgBool:
		p.Printf("let %s: c_int = if %s { 1 } else { 0 };\n", c, n)
	case ir.ArgInt, ir.ArgInt64:
	case ir.ArgBufferIn:
		if a.LegacyNULTruncation {
			p.Printf("let mut %s = %s.to_vec();\n", c, n)
			p.Printf("%s.push(0);\n", c)
		}
	case ir.ArgPointer:
		p.Fail(emitErr(TargetRust, a.Name, "argument %s: pointer arguments have no Rust form", arg.Name))
	default:
		panic("MarshalArg: unknown arg kind " + arg.Kind.String())
	}
}

func (b *rustBackend) MarshalOptArg(p *output.Printer, a *ir.Action, i int, o ir.OptArg) {
	if i == 0 {
		p.Printf("let mut c_optargs = Raw%s {\n", rustOptArgs(a))
		p.Indent()
		p.Println("bitmask: 0,")
		for _, oa := range a.Style.OptArgs {
			var zero string
			switch oa.Kind {
			case ir.OptString, ir.OptStringList:
				zero = "ptr::null()"
			default:
				zero = "0"
			}
			p.Printf("%s: %s,\n", rustIdent(oa.Name), zero)
		}
		p.Dedent()
		p.Println("};")
	}
	n := rustIdent(o.Name)
	bit := fmt.Sprintf("c_optargs.bitmask |= 1 << %d;", i)
	switch o.Kind {
	case ir.OptBool:
		p.Printf("if let Some(v) = optargs.%s {\n", n)
		p.Printf("    %s\n", bit)
		p.Printf("    c_optargs.%s = if v { 1 } else { 0 };\n", n)
		p.Println("}")
	case ir.OptInt, ir.OptInt64:
		p.Printf("if let Some(v) = optargs.%s {\n", n)
		p.Printf("    %s\n", bit)
		p.Printf("    c_optargs.%s = v;\n", n)
		p.Println("}")
	case ir.OptString:
		p.Printf("let c_opt_%s = match optargs.%s {\n", o.Name, n)
		p.Println("    Some(s) => Some(ffi::CString::new(s)?),")
		p.Println("    None => None,")
		p.Println("};")
		p.Printf("if let Some(ref s) = c_opt_%s {\n", o.Name)
		p.Printf("    %s\n", bit)
		p.Printf("    c_optargs.%s = s.as_ptr();\n", n)
		p.Println("}")
	case ir.OptStringList:
		p.Printf("let c_opt_%s_v = match optargs.%s {\n", o.Name, n)
		p.Println("    Some(l) => Some(arg_string_list(l)?),")
		p.Println("    None => None,")
		p.Println("};")
		p.Printf("let c_opt_%s: Option<Vec<*const c_char>> = c_opt_%s_v.as_ref().map(|v| {\n", o.Name, o.Name)
		p.Println("    let mut p: Vec<*const c_char> = v.iter().map(|s| s.as_ptr()).collect();")
		p.Println("    p.push(ptr::null());")
		p.Println("    p")
		p.Println("});")
		p.Printf("if let Some(ref l) = c_opt_%s {\n", o.Name)
		p.Printf("    %s\n", bit)
		p.Printf("    c_optargs.%s = l.as_ptr();\n", n)
		p.Println("}")
	}
}

func (b *rustBackend) CallAndCheck(p *output.Printer, a *ir.Action, ec ir.ErrCode) {
	args := []string{"self.g"}
	for _, arg := range a.Style.Args {
		n := rustIdent(arg.Name)
		c := "c_" + arg.Name
		switch arg.Kind {
		case ir.ArgString:
			args = append(args, c+".as_ptr()")
		case ir.ArgOptString:
			args = append(args, c+".as_ref().map_or(ptr::null(), |s| s.as_ptr())")
		case ir.ArgStringList:
			args = append(args, c+".as_ptr()")
		case ir.ArgBool:
			args = append(args, c)
		case ir.ArgInt, ir.ArgInt64:
			args = append(args, n)
		case ir.ArgBufferIn:
			if a.LegacyNULTruncation {
				args = append(args, c+".as_ptr() as *const c_char")
			} else {
				args = append(args, n+".as_ptr() as *const c_char", n+".len()")
			}
		}
	}
	if a.Style.Ret.Kind == ir.RetBufferOut {
		p.Println("let mut size = 0usize;")
		args = append(args, "&mut size")
	}
	if len(a.Style.OptArgs) > 0 {
		args = append(args, "&c_optargs")
	}
	p.Printf("let r = unsafe { %s(%s) };\n", b.cFunc(a), strings.Join(args, ", "))
	switch ec {
	case ir.ErrorIsMinusOne:
		p.Println("if r == -1 {")
	case ir.ErrorIsNULL:
		p.Println("if r.is_null() {")
	case ir.CannotSignalError:
		return
	default:
		panic("CallAndCheck: unknown errcode")
	}
	p.Printf("    return Err(self.get_error_from_handle(%q));\n", a.Name)
	p.Println("}")
}

func (b *rustBackend) MarshalRet(p *output.Printer, a *ir.Action) {
	ret := a.Style.Ret
	switch ret.Kind {
	case ir.RetErr:
		p.Println("Ok(())")
	case ir.RetInt, ir.RetInt64:
		p.Println("Ok(r)")
	case ir.RetBool:
		p.Println("Ok(r != 0)")
	case ir.RetConstString:
		p.Println("Ok(unsafe { char_ptr_to_string(r) }?)")
	case ir.RetConstOptString:
		p.Println("if r.is_null() {")
		p.Println("    Ok(None)")
		p.Println("} else {")
		p.Println("    Ok(Some(unsafe { char_ptr_to_string(r) }?))")
		p.Println("}")
	case ir.RetString:
		p.Println("let s = unsafe { char_ptr_to_string(r) };")
		p.Println("unsafe { free(r as *const c_void) };")
		p.Println("Ok(s?)")
	case ir.RetStringList:
		p.Println("let s = string_list(r);")
		p.Println("free_string_list(r);")
		p.Println("s")
	case ir.RetHashtable:
		p.Println("let h = hashmap(r);")
		p.Println("free_string_list(r);")
		p.Println("h")
	case ir.RetStruct:
		p.Printf("let s = %s::try_from(r);\n", rustStruct(ret.Struct))
		p.Printf("unsafe { %sfree_%s(r) };\n", b.api.Prefix, ret.Struct)
		p.Println("s")
	case ir.RetStructList:
		p.Printf("let l = %s_list(r);\n", ret.Struct)
		p.Printf("unsafe { %sfree_%s_list(r) };\n", b.api.Prefix, ret.Struct)
		p.Println("l")
	case ir.RetBufferOut:
		p.Println("let buf = unsafe { slice::from_raw_parts(r as *const u8, size) }.to_vec();")
		p.Println("unsafe { free(r as *const c_void) };")
		p.Println("Ok(buf)")
	default:
		panic("MarshalRet: unknown ret kind " + ret.Kind.String())
	}
}

func (b *rustBackend) Finish(p *output.Printer, a *ir.Action) {
	p.Dedent()
	p.Println("}")
	p.Dedent()
	p.Println("}")
	p.Println()
}

func (b *rustBackend) Epilogue(p *output.Printer, api *ir.API) {}

func (b *rustBackend) TestPrologue(p *output.Printer, api *ir.API) {
	b.api = api
	rustBanner(p)
	p.Lines(
		"#![allow(non_snake_case)]",
		"",
		"extern crate guestfs;",
		"",
		"mod common;",
		"",
		"use guestfs::*;",
		"",
	)
}

func (b *rustBackend) TestOpen(p *output.Printer, name string, init ir.TestInit) {
	p.Println("#[test]")
	p.Printf("fn %s() {\n", name)
	p.Indent()
	p.Printf("let g = common::handle(%q);\n", init.String())
}

func rustStrings(ss []string) string {
	quoted := make([]string, len(ss))
	for i, s := range ss {
		quoted[i] = strutil.RustQuote(s)
	}
	return "&[" + strings.Join(quoted, ", ") + "]"
}

func (b *rustBackend) SkipUnless(p *output.Printer, groups []string) {
	p.Printf("if !g.%s(%s).unwrap_or(false) {\n", featureCheck, rustStrings(groups))
	p.Printf("    eprintln!(%s);\n", strutil.RustQuote("skipped: feature not available: "+strings.Join(groups, " ")))
	p.Println("    return;")
	p.Println("}")
}

func rustValue(v Value) string {
	switch v.Kind {
	case ir.ArgString:
		return strutil.RustQuote(v.Str)
	case ir.ArgOptString:
		if v.Null {
			return "None"
		}
		return "Some(" + strutil.RustQuote(v.Str) + ")"
	case ir.ArgStringList:
		return rustStrings(v.Strs)
	case ir.ArgBool:
		return strconv.FormatBool(v.Bool)
	case ir.ArgInt, ir.ArgInt64:
		return strconv.FormatInt(v.Int, 10)
	case ir.ArgBufferIn:
		return "b" + strutil.RustQuote(v.Str)
	default:
		panic("rustValue: unexpected value kind " + v.Kind.String())
	}
}

func (b *rustBackend) TestStep(p *output.Printer, step Step) {
	call := step.Call
	a := call.Action
	ret := a.Style.Ret
	args := make([]string, 0, len(call.Args)+1)
	for _, v := range call.Args {
		args = append(args, rustValue(v))
	}
	if len(a.Style.OptArgs) > 0 {
		if len(call.OptArgs) == 0 {
			args = append(args, "Default::default()")
		} else {
			fields := make([]string, 0, len(call.OptArgs)+1)
			for _, o := range call.OptArgs {
				fields = append(fields, rustIdent(o.OptArg.Name)+": Some("+rustValue(o.Value)+")")
			}
			if len(call.OptArgs) < len(a.Style.OptArgs) {
				fields = append(fields, "..Default::default()")
			}
			args = append(args, rustOptArgs(a)+" { "+strings.Join(fields, ", ")+" }")
		}
	}
	expr := fmt.Sprintf("g.%s(%s)", rustIdent(a.Name), strings.Join(args, ", "))

	if step.Expect == ExpectFailure {
		p.Printf("assert!(%s.is_err(), %s);\n", expr, strutil.RustQuote(step.Test+": expected "+a.Name+" to fail"))
		return
	}
	if !step.NeedsResult() {
		p.Printf("%s.expect(%s);\n", expr, strutil.RustQuote(a.Name))
		return
	}
	p.Printf("let r = %s.expect(%s);\n", expr, strutil.RustQuote(a.Name))
	switch step.Expect {
	case ExpectString:
		want := strutil.RustQuote(step.Value)
		switch ret.Kind {
		case ir.RetConstOptString:
			p.Printf("assert_eq!(r.as_deref(), Some(%s));\n", want)
		case ir.RetBufferOut:
			p.Printf("assert_eq!(r, b%s);\n", want)
		default:
			p.Printf("assert_eq!(r, %s);\n", want)
		}
	case ExpectTrue:
		p.Println("assert!(r);")
	case ExpectFalse:
		p.Println("assert!(!r);")
	}
	for _, c := range step.Checks {
		lhs := "r." + rustIdent(c.Field)
		want := c.Value
		if _, err := strconv.ParseInt(c.Value, 10, 64); err != nil {
			lhs += ".as_str()"
			want = strutil.RustQuote(c.Value)
		}
		p.Printf("assert!(%s %s %s, %s);\n", lhs, c.Op, want, strutil.RustQuote(step.Test+": check failed: "+c.Field+" "+c.Op+" "+c.Value))
	}
}

func (b *rustBackend) TestClose(p *output.Printer) {
	p.Dedent()
	p.Println("}")
	p.Println()
}

func (b *rustBackend) TestEpilogue(p *output.Printer) {}
