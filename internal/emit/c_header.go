package emit

import (
	"fmt"

	"github.com/roach88/bindgen/internal/ir"
	"github.com/roach88/bindgen/internal/output"
	"github.com/roach88/bindgen/internal/strutil"
)

var _ HeaderBackend = (*cBackend)(nil)

func (b *cBackend) HeaderFile() string { return "c/guestfs.h" }

// Header prints the public declarations shared by the entry points, the
// generated C tests and the cgo preamble of the Go bindings.
func (b *cBackend) Header(p *output.Printer, api *ir.API, bound []ir.Action) {
	b.api = api
	guard := b.macro("h") + "_"
	handle := api.Prefix + "h"

	cBanner(p)
	p.Printf("#ifndef %s\n#define %s\n\n", guard, guard)
	p.Lines(
		"#include <stddef.h>",
		"#include <stdint.h>",
		"",
		"#ifdef __cplusplus",
		`extern "C" {`,
		"#endif",
		"",
	)
	p.Printf("typedef struct %s %s;\n\n", handle, handle)
	p.Printf("extern %s *%screate (void);\n", handle, api.Prefix)
	p.Printf("extern void %sclose (%s *g);\n", api.Prefix, handle)
	p.Printf("extern const char *%slast_error (%s *g);\n", api.Prefix, handle)
	p.Printf("extern int %slast_errno (%s *g);\n\n", api.Prefix, handle)

	var rows [][]string
	for _, e := range api.Events {
		rows = append(rows, []string{"#define", b.macro("event", e.Name), fmt.Sprintf("UINT64_C(0x%x)", e.Mask())})
	}
	rows = append(rows, []string{"#define", b.macro("event", "all"), fmt.Sprintf("UINT64_C(0x%x)", ir.AllEvents(api.Events))})
	p.Lines(strutil.Columns(rows, " ")...)
	p.Println()

	for _, s := range api.SortedStructs() {
		b.structDef(p, &s)
	}
	for _, use := range ir.RStructsUsedBy(bound) {
		st := b.structType(use.Name)
		if use.Usage.NeedsCopy() {
			p.Printf("extern %s *%s (const %s *);\n", st, b.copyName(use.Name), st)
			p.Printf("extern void %s (%s *);\n", b.freeName(use.Name), st)
		}
		if use.Usage.NeedsListCopy() {
			p.Printf("extern %s_list *%s_list (const %s_list *);\n", st, b.copyName(use.Name), st)
			p.Printf("extern void %s_list (%s_list *);\n", b.freeName(use.Name), st)
		}
	}
	p.Println()

	for i := range bound {
		a := &bound[i]
		if len(a.Style.OptArgs) > 0 {
			b.argvDef(p, a)
		}
		p.Printf("/* %s: %s */\n", a.Name, a.ShortDesc)
		b.signature(p, a, "extern ")
		p.Println(";")
		p.Println()
	}

	p.Lines(
		"#ifdef __cplusplus",
		"}",
		"#endif",
		"",
	)
	p.Printf("#endif /* %s */\n", guard)
}

func (b *cBackend) structDef(p *output.Printer, s *ir.Struct) {
	p.Printf("%s {\n", b.structType(s.Name))
	p.Indent()
	for _, f := range s.Fields {
		p.Lines(cFieldDecl(f)...)
	}
	p.Dedent()
	p.Println("};")
	p.Println()
	p.Printf("%s_list {\n", b.structType(s.Name))
	p.Indent()
	p.Println("uint32_t len;")
	p.Printf("%s *val;\n", b.structType(s.Name))
	p.Dedent()
	p.Println("};")
	p.Println()
}

// argvDef prints the optarg bit macros and the argv struct; bit i is the
// i'th optional argument.
func (b *cBackend) argvDef(p *output.Printer, a *ir.Action) {
	var rows [][]string
	for i, o := range a.Style.OptArgs {
		rows = append(rows, []string{"#define", b.macro(a.Name, o.Name, "bitmask"), fmt.Sprintf("(UINT64_C(1)<<%d)", i)})
	}
	p.Lines(strutil.Columns(rows, " ")...)
	p.Println()
	p.Printf("%s {\n", b.argvType(a))
	p.Indent()
	p.Println("uint64_t bitmask;")
	for _, o := range a.Style.OptArgs {
		p.Printf("%s;\n", cDecl(cOptArgType(o), o.Name))
	}
	p.Dedent()
	p.Println("};")
	p.Println()
}
