// Package protocol emits the XDR description of the daemon wire protocol.
//
// The constants below are a fixed external contract shared with every
// deployed daemon. Changing any of them is a protocol break, not a
// regeneration.
package protocol

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"github.com/roach88/bindgen/internal/ir"
	"github.com/roach88/bindgen/internal/output"
	"github.com/roach88/bindgen/internal/strutil"
)

const (
	Program      = 0x2000F5F5
	Version      = 4
	MessageMax   = 4 * 1024 * 1024
	MaxChunkSize = 8192
	ErrorLen     = 256

	// Out-of-band length words that replace a message length on the wire.
	LaunchFlag   = 0xf5f55ff5
	CancelFlag   = 0xffffeeee
	ProgressFlag = 0xffff5555
)

// Path is where the XDR file is written, relative to the output root.
const Path = "protocol/guestfs_protocol.x"

// ErrNotWireable is returned for a daemon action whose return shape has
// no wire form.
var ErrNotWireable = errors.New("return kind cannot cross the wire")

// Procedure is one entry of the procedure enum.
type Procedure struct {
	Name   string
	Number int
}

// Procedures returns the daemon actions ordered by procedure number.
func Procedures(api *ir.API) []Procedure {
	var procs []Procedure
	for _, a := range api.DaemonActions() {
		procs = append(procs, Procedure{Name: a.Name, Number: a.ProcNr})
	}
	return procs
}

func xdrField(f ir.Field) string {
	switch f.Kind {
	case ir.FieldChar:
		return "char " + f.Name
	case ir.FieldString:
		return "string " + f.Name + "<>"
	case ir.FieldBuffer:
		return "opaque " + f.Name + "<>"
	case ir.FieldUUID:
		return fmt.Sprintf("opaque %s[%d]", f.Name, ir.UUIDLen)
	case ir.FieldInt32:
		return "int " + f.Name
	case ir.FieldUInt32:
		return "unsigned int " + f.Name
	case ir.FieldInt64:
		return "hyper " + f.Name
	case ir.FieldUInt64, ir.FieldBytes:
		return "unsigned hyper " + f.Name
	case ir.FieldOptPercent:
		return "float " + f.Name
	default:
		panic("xdrField: unknown field kind " + f.Kind.String())
	}
}

// xdrArg returns the member for arg, or "" when the argument travels
// out of band as a file transfer.
func xdrArg(arg ir.Arg) string {
	switch arg.Kind {
	case ir.ArgString:
		if arg.Sub == ir.FileIn || arg.Sub == ir.FileOut {
			return ""
		}
		return "string " + arg.Name + "<>"
	case ir.ArgOptString:
		return "guestfs_str *" + arg.Name
	case ir.ArgStringList:
		return "guestfs_str " + arg.Name + "<>"
	case ir.ArgBool:
		return "bool " + arg.Name
	case ir.ArgInt:
		return "int " + arg.Name
	case ir.ArgInt64:
		return "hyper " + arg.Name
	case ir.ArgBufferIn:
		return "opaque " + arg.Name + "<>"
	default:
		panic("xdrArg: no wire form for " + arg.Kind.String())
	}
}

func xdrRet(a *ir.Action) (string, error) {
	ret := a.Style.Ret
	switch ret.Kind {
	case ir.RetErr:
		return "", nil
	case ir.RetInt:
		return "int ret", nil
	case ir.RetInt64:
		return "hyper ret", nil
	case ir.RetBool:
		return "bool ret", nil
	case ir.RetString:
		return "string ret<>", nil
	case ir.RetStringList, ir.RetHashtable:
		return "guestfs_str ret<>", nil
	case ir.RetStruct:
		return "guestfs_int_" + ret.Struct + " ret", nil
	case ir.RetStructList:
		return "guestfs_int_" + ret.Struct + "_list ret", nil
	case ir.RetBufferOut:
		return "opaque ret<>", nil
	case ir.RetConstString, ir.RetConstOptString:
		return "", fmt.Errorf("protocol: action %q returns %s: %w", a.Name, ret.Kind, ErrNotWireable)
	default:
		panic("xdrRet: unknown ret kind " + ret.Kind.String())
	}
}

func members(p *output.Printer, name string, fields []string) {
	p.Printf("struct %s {\n", name)
	p.Indent()
	for _, f := range fields {
		p.Printf("%s;\n", f)
	}
	p.Dedent()
	p.Println("};")
	p.Println()
}

// Generate renders the XDR file for api. Only daemon actions appear.
func Generate(api *ir.API) (output.File, error) {
	p := output.NewIndentPrinter("  ")
	p.Printf("/* This file is generated by bindgen %s. Do not edit. */\n\n", ir.GeneratorVersion)
	p.Println("%#include <config.h>")
	p.Println()
	p.Println("typedef string guestfs_str<>;")
	p.Println()

	p.Println("/* Internal structures. */")
	p.Println()
	for _, s := range api.SortedStructs() {
		fields := make([]string, 0, len(s.Fields))
		for _, f := range s.Fields {
			fields = append(fields, xdrField(f))
		}
		members(p, "guestfs_int_"+s.Name, fields)
		p.Printf("typedef struct guestfs_int_%s guestfs_int_%s_list<>;\n\n", s.Name, s.Name)
	}

	p.Println("/* Function arguments and return values. */")
	p.Println()
	daemon := ir.SortActions(api.DaemonActions())
	for i := range daemon {
		a := &daemon[i]
		var args []string
		for _, arg := range slices.Concat(a.Style.Args, ir.ArgsOfOptArgs(a.Style.OptArgs)) {
			if m := xdrArg(arg); m != "" {
				args = append(args, m)
			}
		}
		if len(args) > 0 {
			members(p, "guestfs_"+a.Name+"_args", args)
		}
		ret, err := xdrRet(a)
		if err != nil {
			return output.File{}, err
		}
		if ret != "" {
			members(p, "guestfs_"+a.Name+"_ret", []string{ret})
		}
	}

	p.Println("/* Table of procedure numbers. */")
	p.Println("enum guestfs_procedure {")
	p.Indent()
	procs := Procedures(api)
	for i, proc := range procs {
		sep := ","
		if i == len(procs)-1 {
			sep = ""
		}
		p.Printf("GUESTFS_PROC_%s = %d%s\n", strutil.Upper(proc.Name), proc.Number, sep)
	}
	p.Dedent()
	p.Println("};")
	p.Println()

	p.Lines(
		fmt.Sprintf("const GUESTFS_MESSAGE_MAX = %d;", MessageMax),
		"",
		fmt.Sprintf("const GUESTFS_PROGRAM = 0x%X;", Program),
		fmt.Sprintf("const GUESTFS_PROTOCOL_VERSION = %d;", Version),
		"",
		fmt.Sprintf("const GUESTFS_LAUNCH_FLAG = 0x%x;", LaunchFlag),
		fmt.Sprintf("const GUESTFS_CANCEL_FLAG = 0x%x;", CancelFlag),
		fmt.Sprintf("const GUESTFS_PROGRESS_FLAG = 0x%x;", ProgressFlag),
		"",
		"enum guestfs_message_direction {",
		"  GUESTFS_DIRECTION_CALL = 0,",
		"  GUESTFS_DIRECTION_REPLY = 1",
		"};",
		"",
		"enum guestfs_message_status {",
		"  GUESTFS_STATUS_OK = 0,",
		"  GUESTFS_STATUS_ERROR = 1",
		"};",
		"",
		fmt.Sprintf("const GUESTFS_ERROR_LEN = %d;", ErrorLen),
		"",
	)
	members(p, "guestfs_message_error", []string{
		"string errno_string<32>",
		"string error_message<GUESTFS_ERROR_LEN>",
	})
	members(p, "guestfs_message_header", []string{
		"unsigned prog",
		"unsigned vers",
		"guestfs_procedure proc",
		"guestfs_message_direction direction",
		"unsigned serial",
		"hyper progress_hint",
		"unsigned hyper optargs_bitmask",
		"guestfs_message_status status",
	})
	p.Printf("const GUESTFS_MAX_CHUNK_SIZE = %d;\n\n", MaxChunkSize)
	members(p, "guestfs_chunk", []string{
		"int cancel",
		"opaque data<GUESTFS_MAX_CHUNK_SIZE>",
	})
	members(p, "guestfs_progress", []string{
		"guestfs_procedure proc",
		"unsigned serial",
		"unsigned hyper position",
		"unsigned hyper total",
	})

	f, err := p.File(Path)
	if err != nil {
		return output.File{}, err
	}
	f.Content = bytes.TrimSuffix(f.Content, []byte("\n"))
	return f, nil
}
