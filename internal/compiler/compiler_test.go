package compiler

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bindgen/internal/catalog"
	"github.com/roach88/bindgen/internal/checks"
	"github.com/roach88/bindgen/internal/ir"
)

const btrfsDefs = `
struct: lvm_vg: fields: [
	{name: "vg_name", kind: "string"},
	{name: "vg_uuid", kind: "uuid"},
	{name: "vg_size", kind: "bytes"},
]

event: custom: 20

action: mkfs_btrfs: {
	proc_nr:   317
	shortdesc: "create a btrfs filesystem"
	longdesc:  "Create a btrfs filesystem on C<devices>."
	ret:       "err"
	args: [{kind: "stringlist", sub: "device", name: "devices"}]
	optargs: [
		{kind: "int64", name: "allocstart"},
		{kind: "string", name: "label"},
	]
	optional: "btrfs"
	added:    "1.17.35"
	tests: [{
		init: "empty"
		seq: [["mkfs_btrfs", "/dev/sda1", "label:test"]]
	}]
}

action: vgs_full: {
	proc_nr:   13
	shortdesc: "list the LVM volume groups (VGs)"
	longdesc:  "List all the volume groups detected."
	ret: {kind: "structlist", struct: "lvm_vg"}
	optional: "lvm2"
}
`

func compile(t *testing.T, src string) cue.Value {
	t.Helper()
	v := cuecontext.New().CompileString(src)
	require.NoError(t, v.Err())
	return v
}

func TestCompileActionFull(t *testing.T) {
	v := compile(t, btrfsDefs)

	a, err := CompileAction(v.LookupPath(cue.ParsePath("action.mkfs_btrfs")))
	require.NoError(t, err)

	assert.Equal(t, "mkfs_btrfs", a.Name)
	assert.Equal(t, 317, a.ProcNr)
	assert.Equal(t, "create a btrfs filesystem", a.ShortDesc)
	assert.Equal(t, ir.RetOf(ir.RetErr), a.Style.Ret)
	assert.Equal(t, []ir.Arg{ir.StrList(ir.Device, "devices")}, a.Style.Args)
	assert.Equal(t, []ir.OptArg{
		{Kind: ir.OptInt64, Name: "allocstart"},
		{Kind: ir.OptString, Name: "label"},
	}, a.Style.OptArgs)
	assert.Equal(t, "btrfs", a.Optional)
	assert.Equal(t, "1.17.35", a.Added)
	assert.True(t, a.Blocking, "blocking defaults to true")
	assert.Equal(t, ir.VisibilityPublic, a.Visibility)

	require.Len(t, a.Tests, 1)
	assert.Equal(t, ir.InitEmpty, a.Tests[0].Init)
	assert.Equal(t, ir.Always, a.Tests[0].Apply.Kind)
	assert.Equal(t, ir.AssertRun, a.Tests[0].Assert.Kind)
	assert.Equal(t, []ir.Command{{"mkfs_btrfs", "/dev/sda1", "label:test"}}, a.Tests[0].Assert.Seq)
}

func TestCompileActionStructReturn(t *testing.T) {
	v := compile(t, btrfsDefs)

	a, err := CompileAction(v.LookupPath(cue.ParsePath("action.vgs_full")))
	require.NoError(t, err)
	assert.Equal(t, ir.RetStructListOf("lvm_vg"), a.Style.Ret)
	assert.Empty(t, a.Style.Args)
	assert.Empty(t, a.Tests)
}

func TestCompileActionTestVariants(t *testing.T) {
	v := compile(t, `
		action: getxattrs: {
			shortdesc: "list extended attributes of a file or directory"
			ret: {kind: "structlist", struct: "xattr"}
			args: [{kind: "string", sub: "pathname", name: "path"}]
			deprecated: true
			visibility: "debug"
			blocking: false
			tests: [
				{if_available: "linuxacl", assert: "last_fail", seq: [["getxattrs", "/nothing"]]},
				{disabled: true, seq: [["getxattrs", "/"]]},
				{
					assert: "result"
					expect: "ret->len == 0"
					checks: [{field: "len", op: "==", value: "0"}]
					seq: [["getxattrs", "/empty"]]
				},
			]
		}
	`)

	a, err := CompileAction(v.LookupPath(cue.ParsePath("action.getxattrs")))
	require.NoError(t, err)

	assert.Equal(t, ir.DeprecatedNoReplacement, a.DeprecatedBy.Kind)
	assert.Equal(t, ir.VisibilityDebug, a.Visibility)
	assert.False(t, a.Blocking)

	require.Len(t, a.Tests, 3)
	assert.Equal(t, ir.Applicability{Kind: ir.IfAvailable, Group: "linuxacl"}, a.Tests[0].Apply)
	assert.Equal(t, ir.AssertLastFail, a.Tests[0].Assert.Kind)
	assert.Equal(t, ir.Disabled, a.Tests[1].Apply.Kind)
	assert.Equal(t, ir.AssertResult, a.Tests[2].Assert.Kind)
	assert.Equal(t, "ret->len == 0", a.Tests[2].Assert.Expect)
	assert.Equal(t, []ir.StructCheck{{Field: "len", Op: "==", Value: "0"}}, a.Tests[2].Checks)
}

func TestCompileActionPointerArg(t *testing.T) {
	v := compile(t, `
		action: add_libvirt_dom: {
			shortdesc: "add the disk(s) from a libvirt domain"
			ret: "int"
			args: [{kind: "pointer", ctype: "virDomainPtr", name: "dom"}]
		}
	`)

	a, err := CompileAction(v.LookupPath(cue.ParsePath("action.add_libvirt_dom")))
	require.NoError(t, err)
	assert.Equal(t, []ir.Arg{ir.Pointer("virDomainPtr", "dom")}, a.Style.Args)
}

func TestCompileActionErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		field  string
		substr string
	}{
		{
			name:   "missing shortdesc",
			src:    `action: a: {ret: "err"}`,
			field:  "action.a.shortdesc",
			substr: "required",
		},
		{
			name:   "missing ret",
			src:    `action: a: {shortdesc: "x"}`,
			field:  "action.a.ret",
			substr: "required",
		},
		{
			name:   "unknown return kind",
			src:    `action: a: {shortdesc: "x", ret: "float"}`,
			field:  "action.a.ret",
			substr: "unknown return kind",
		},
		{
			name:   "struct return without struct",
			src:    `action: a: {shortdesc: "x", ret: {kind: "struct"}}`,
			field:  "action.a.ret.struct",
			substr: "must name its struct",
		},
		{
			name:   "struct on scalar return",
			src:    `action: a: {shortdesc: "x", ret: {kind: "int", struct: "stat"}}`,
			field:  "action.a.ret.struct",
			substr: "cannot name a struct",
		},
		{
			name:   "float procedure number",
			src:    `action: a: {shortdesc: "x", ret: "err", proc_nr: 12.0}`,
			field:  "action.a.proc_nr",
			substr: "must be an integer",
		},
		{
			name:   "negative procedure number",
			src:    `action: a: {shortdesc: "x", ret: "err", proc_nr: -1}`,
			field:  "action.a.proc_nr",
			substr: "negative",
		},
		{
			name:   "unknown arg kind",
			src:    `action: a: {shortdesc: "x", ret: "err", args: [{kind: "float", name: "f"}]}`,
			field:  "action.a.args[0].kind",
			substr: "unknown argument kind",
		},
		{
			name:   "subkind on int",
			src:    `action: a: {shortdesc: "x", ret: "err", args: [{kind: "int", sub: "device", name: "n"}]}`,
			field:  "action.a.args[0].sub",
			substr: "no subkind",
		},
		{
			name:   "pointer without ctype",
			src:    `action: a: {shortdesc: "x", ret: "err", args: [{kind: "pointer", name: "p"}]}`,
			field:  "action.a.args[0].ctype",
			substr: "required",
		},
		{
			name:   "both deprecation forms",
			src:    `action: a: {shortdesc: "x", ret: "err", deprecated: true, deprecated_by: "b"}`,
			field:  "action.a.deprecated",
			substr: "not both",
		},
		{
			name:   "unknown visibility",
			src:    `action: a: {shortdesc: "x", ret: "err", visibility: "secret"}`,
			field:  "action.a.visibility",
			substr: `"secret"`,
		},
		{
			name:   "test without seq",
			src:    `action: a: {shortdesc: "x", ret: "err", tests: [{init: "empty"}]}`,
			field:  "action.a.tests[0].seq",
			substr: "required",
		},
		{
			name:   "disabled and gated",
			src:    `action: a: {shortdesc: "x", ret: "err", tests: [{disabled: true, if_available: "g", seq: [["a"]]}]}`,
			field:  "action.a.tests[0]",
			substr: "both disabled",
		},
		{
			name:   "unknown check operator",
			src:    `action: a: {shortdesc: "x", ret: "err", tests: [{seq: [["a"]], checks: [{field: "f", op: "=~", value: "1"}]}]}`,
			field:  "action.a.tests[0].checks",
			substr: `"=~"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := compile(t, tt.src)
			_, err := CompileAction(v.LookupPath(cue.ParsePath("action.a")))
			require.Error(t, err)

			var ce *CompileError
			require.True(t, errors.As(err, &ce), "want *CompileError, got %T: %v", err, err)
			assert.Equal(t, tt.field, ce.Field)
			assert.Contains(t, ce.Message, tt.substr)
		})
	}
}

func TestCompileErrorHasPosition(t *testing.T) {
	v := cuecontext.New().CompileString(`action: a: {shortdesc: "x", ret: "err", proc_nr: 1.5}`, cue.Filename("defs.cue"))
	require.NoError(t, v.Err())

	_, err := CompileAction(v.LookupPath(cue.ParsePath("action.a")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "defs.cue:1:")
}

func TestCompileStruct(t *testing.T) {
	v := compile(t, btrfsDefs)

	s, err := CompileStruct(v.LookupPath(cue.ParsePath("struct.lvm_vg")))
	require.NoError(t, err)
	assert.Equal(t, &ir.Struct{Name: "lvm_vg", Fields: []ir.Field{
		{Name: "vg_name", Kind: ir.FieldString},
		{Name: "vg_uuid", Kind: ir.FieldUUID},
		{Name: "vg_size", Kind: ir.FieldBytes},
	}}, s)
}

func TestCompileStructErrors(t *testing.T) {
	v := compile(t, `
		struct: nofields: {}
		struct: badkind: fields: [{name: "x", kind: "float"}]
	`)

	_, err := CompileStruct(v.LookupPath(cue.ParsePath("struct.nofields")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fields are required")

	_, err = CompileStruct(v.LookupPath(cue.ParsePath("struct.badkind")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "struct.badkind.fields[0].kind")
}

func TestCompileEvent(t *testing.T) {
	v := compile(t, `event: {custom: 20, bad: 1.0, neg: -3}`)

	e, err := CompileEvent(v.LookupPath(cue.ParsePath("event.custom")))
	require.NoError(t, err)
	assert.Equal(t, &ir.Event{Name: "custom", Bit: 20}, e)

	_, err = CompileEvent(v.LookupPath(cue.ParsePath("event.bad")))
	assert.ErrorContains(t, err, "must be an integer")

	_, err = CompileEvent(v.LookupPath(cue.ParsePath("event.neg")))
	assert.ErrorContains(t, err, "negative")
}

func TestDecodeKeepsDeclarationOrder(t *testing.T) {
	r, err := Decode(compile(t, btrfsDefs))
	require.NoError(t, err)

	require.Len(t, r.Actions, 2)
	assert.Equal(t, "mkfs_btrfs", r.Actions[0].Name)
	assert.Equal(t, "vgs_full", r.Actions[1].Name)
	require.Len(t, r.Structs, 1)
	require.Len(t, r.Events, 1)
}

func TestDecodeEmpty(t *testing.T) {
	r, err := Decode(compile(t, `other: 1`))
	require.NoError(t, err)
	assert.Empty(t, r.Actions)
	assert.Empty(t, r.Structs)
	assert.Empty(t, r.Events)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	src := "package api\n" + btrfsDefs
	require.NoError(t, os.WriteFile(filepath.Join(dir, "btrfs.cue"), []byte(src), 0644))

	r, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, r.FileCount)
	assert.Len(t, r.Actions, 2)
}

func TestLoadDirErrors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
		assert.ErrorContains(t, err, "cannot access")
	})

	t.Run("no cue files", func(t *testing.T) {
		_, err := LoadDir(t.TempDir())
		assert.ErrorContains(t, err, "no CUE files")
	})

	t.Run("not a directory", func(t *testing.T) {
		f := filepath.Join(t.TempDir(), "defs.cue")
		require.NoError(t, os.WriteFile(f, []byte("package api\n"), 0644))
		_, err := LoadDir(f)
		assert.ErrorContains(t, err, "not a directory")
	})

	t.Run("syntax error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.cue"), []byte("package api\naction: {"), 0644))
		_, err := LoadDir(dir)
		assert.Error(t, err)
	})
}

func TestMergeIntoCatalogPassesCheck(t *testing.T) {
	r, err := Decode(compile(t, btrfsDefs))
	require.NoError(t, err)

	base := catalog.API()
	n := len(base.Actions)
	merged := Merge(base, r)

	assert.Len(t, base.Actions, n, "base is untouched")
	assert.Len(t, merged.Actions, n+2)
	_, ok := merged.Action("mkfs_btrfs")
	assert.True(t, ok)
	_, ok = merged.Struct("lvm_vg")
	assert.True(t, ok)

	require.NoError(t, checks.Check(merged))
}

func TestMergedClashIsReportedByCheck(t *testing.T) {
	r, err := Decode(compile(t, `
		action: stat: {
			shortdesc: "get file information"
			longdesc:  "Again."
			ret: "err"
		}
	`))
	require.NoError(t, err)

	err = checks.Check(Merge(catalog.API(), r))
	var ce *checks.CheckError
	require.True(t, errors.As(err, &ce), "got %v", err)
	assert.Equal(t, checks.ErrNameDuplicate, ce.Code)
}
