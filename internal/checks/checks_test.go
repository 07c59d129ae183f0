package checks

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bindgen/internal/catalog"
	"github.com/roach88/bindgen/internal/ir"
)

func TestCatalogPasses(t *testing.T) {
	assert.NoError(t, Check(catalog.API()))
}

// base returns a minimal valid API that each case breaks in one way.
func base() *ir.API {
	return &ir.API{
		Prefix: "guestfs_",
		Actions: []ir.Action{
			{
				Name:       "stat",
				Style:      ir.Style{Ret: ir.RetStructOf("stat"), Args: []ir.Arg{ir.Str(ir.Pathname, "path")}},
				ProcNr:     52,
				ShortDesc:  "get file information",
				LongDesc:   "Returns file information for the given C<path>.",
				Blocking:   true,
				Visibility: ir.VisibilityPublic,
				Tests: []ir.Test{{
					Apply:  ir.Applicability{Kind: ir.Always},
					Assert: ir.TestAssertion{Kind: ir.AssertRun, Seq: []ir.Command{{"stat", "/empty"}}},
				}},
			},
			{
				Name:       "mkswap",
				Style:      ir.Style{Ret: ir.RetOf(ir.RetErr), Args: []ir.Arg{ir.Str(ir.Device, "device")}, OptArgs: []ir.OptArg{{Kind: ir.OptString, Name: "label"}}},
				ProcNr:     278,
				ShortDesc:  "create a swap partition",
				LongDesc:   "Create a Linux swap partition on C<device>.",
				Blocking:   true,
				Visibility: ir.VisibilityPublic,
			},
		},
		Structs: []ir.Struct{{Name: "stat", Fields: []ir.Field{{Name: "size", Kind: ir.FieldInt64}}}},
		Events:  []ir.Event{{Name: "close", Bit: 0}, {Name: "progress", Bit: 3}},
	}
}

func mkswapU() ir.Action {
	return ir.Action{
		Name:         "mkswap_U",
		Style:        ir.Style{Ret: ir.RetOf(ir.RetErr), Args: []ir.Arg{ir.Str(ir.GUID, "uuid"), ir.Str(ir.Device, "device")}},
		ProcNr:       132,
		DeprecatedBy: ir.Replaced("mkswap"),
		Optional:     "linuxfsuuid",
		ShortDesc:    "create a swap partition with an explicit UUID",
		LongDesc:     "Create a swap partition on C<device> with UUID C<uuid>.",
		Blocking:     true,
		Visibility:   ir.VisibilityPublic,
		Tests: []ir.Test{{
			Init:  ir.InitEmpty,
			Apply: ir.Applicability{Kind: ir.Always},
			Assert: ir.TestAssertion{Kind: ir.AssertRun, Seq: []ir.Command{
				{"mkswap_U", "a3a61220-882b-4f61-89f4-cf24dcc7297d", "/dev/sda1"},
			}},
		}},
	}
}

func TestBaseAPIPasses(t *testing.T) {
	api := base()
	api.Actions = append(api.Actions, mkswapU())
	require.NoError(t, Check(api))
}

func TestCheckRules(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(api *ir.API)
		wantCode string
		wantIn   []string
	}{
		{
			name:     "empty name",
			mutate:   func(api *ir.API) { api.Actions[1].Name = "" },
			wantCode: ErrNameEmpty,
		},
		{
			name:     "uppercase start",
			mutate:   func(api *ir.API) { api.Actions[1].Name = "Mkswap" },
			wantCode: ErrNameMalformed,
			wantIn:   []string{`action "Mkswap"`},
		},
		{
			name:     "dash in name",
			mutate:   func(api *ir.API) { api.Actions[1].Name = "mk-swap" },
			wantCode: ErrNameDash,
		},
		{
			name:     "native prefix leak",
			mutate:   func(api *ir.API) { api.Actions[1].Name = "guestfs_mkswap" },
			wantCode: ErrNamePrefix,
		},
		{
			name:     "alias collides with another action",
			mutate:   func(api *ir.API) { api.Actions[0].NonCAliases = []string{"mkswap"} },
			wantCode: ErrNameDuplicate,
			wantIn:   []string{`alias "mkswap"`, `used by action "mkswap"`},
		},
		{
			name:     "fish alias with dash",
			mutate:   func(api *ir.API) { api.Actions[1].FishAlias = []string{"mk-swap"} },
			wantCode: ErrNameDash,
		},
		{
			name:     "uppercase parameter",
			mutate:   func(api *ir.API) { api.Actions[1].Style.Args[0].Name = "Device" },
			wantCode: ErrParamUppercase,
		},
		{
			name:     "doubled underscore",
			mutate:   func(api *ir.API) { api.Actions[1].Style.Args[0].Name = "dev__ice" },
			wantCode: ErrParamUnderscore,
		},
		{
			name:     "reserved parameter",
			mutate:   func(api *ir.API) { api.Actions[1].Style.Args[0].Name = "value" },
			wantCode: ErrParamReserved,
			wantIn:   []string{`"value"`},
		},
		{
			name:     "ocaml keyword optarg",
			mutate:   func(api *ir.API) { api.Actions[1].Style.OptArgs[0].Name = "val" },
			wantCode: ErrParamReserved,
		},
		{
			name: "optarg duplicates argument",
			mutate: func(api *ir.API) {
				api.Actions[1].Style.OptArgs[0].Name = "device"
			},
			wantCode: ErrParamDuplicate,
		},
		{
			name: "dangling replacement",
			mutate: func(api *ir.API) {
				api.Actions[1].DeprecatedBy = ir.Replaced("mkswap_opts")
			},
			wantCode: ErrReplacementMissing,
			wantIn:   []string{`"mkswap_opts"`},
		},
		{
			name:     "replaced by itself",
			mutate:   func(api *ir.API) { api.Actions[1].DeprecatedBy = ir.Replaced("mkswap") },
			wantCode: ErrReplacementSelf,
		},
		{
			name: "test never calls its action",
			mutate: func(api *ir.API) {
				api.Actions[1].Tests = []ir.Test{{Assert: ir.TestAssertion{Seq: []ir.Command{{"stat", "/"}}}}}
			},
			wantCode: ErrNoSelfTest,
			wantIn:   []string{`action "mkswap"`},
		},
		{
			name: "test calls unknown action",
			mutate: func(api *ir.API) {
				api.Actions[0].Tests[0].Assert.Seq = append([]ir.Command{{"mount", "/dev/sda1", "/"}}, api.Actions[0].Tests[0].Assert.Seq...)
			},
			wantCode: ErrTestUnknownAction,
		},
		{
			name: "test command missing argument",
			mutate: func(api *ir.API) {
				api.Actions[0].Tests[0].Assert.Seq = []ir.Command{{"stat"}}
			},
			wantCode: ErrTestArity,
		},
		{
			name: "test command with undeclared optarg",
			mutate: func(api *ir.API) {
				api.Actions[1].Tests = []ir.Test{{Assert: ir.TestAssertion{Seq: []ir.Command{{"mkswap", "/dev/sda1", "uuid:x"}}}}}
			},
			wantCode: ErrTestArity,
		},
		{
			name: "empty test",
			mutate: func(api *ir.API) {
				api.Actions[0].Tests[0].Assert.Seq = nil
			},
			wantCode: ErrTestEmpty,
		},
		{
			name: "cancellable constoptstring",
			mutate: func(api *ir.API) {
				api.Actions[1].Style.Ret = ir.RetOf(ir.RetConstOptString)
				api.Actions[1].Cancellable = true
			},
			wantCode: ErrCancelNoErrorChannel,
		},
		{
			name: "cancellable but not blocking",
			mutate: func(api *ir.API) {
				api.Actions[1].ProcNr = 0
				api.Actions[1].Blocking = false
				api.Actions[1].Cancellable = true
			},
			wantCode: ErrCancelNotBlocking,
		},
		{
			name:     "duplicate procedure number",
			mutate:   func(api *ir.API) { api.Actions[1].ProcNr = 52 },
			wantCode: ErrProcNrDuplicate,
			wantIn:   []string{`"mkswap"`, "52"},
		},
		{
			name:     "non-blocking daemon action",
			mutate:   func(api *ir.API) { api.Actions[1].Blocking = false },
			wantCode: ErrDaemonNotBlocking,
		},
		{
			name: "daemon action with pointer",
			mutate: func(api *ir.API) {
				api.Actions[1].Style.Args = append(api.Actions[1].Style.Args, ir.Pointer("virDomainPtr", "dom"))
			},
			wantCode: ErrDaemonPointer,
		},
		{
			name:     "config-only daemon action",
			mutate:   func(api *ir.API) { api.Actions[1].ConfigOnly = true },
			wantCode: ErrDaemonConfigOnly,
		},
		{
			name:     "undeclared struct",
			mutate:   func(api *ir.API) { api.Structs = nil },
			wantCode: ErrUnknownStruct,
		},
		{
			name:     "struct without fields",
			mutate:   func(api *ir.API) { api.Structs[0].Fields = nil },
			wantCode: ErrStructNoFields,
		},
		{
			name:     "reserved field",
			mutate:   func(api *ir.API) { api.Structs[0].Fields[0].Name = "type" },
			wantCode: ErrParamReserved,
			wantIn:   []string{`struct "stat"`, `field "type"`},
		},
		{
			name:     "shortdesc with period",
			mutate:   func(api *ir.API) { api.Actions[1].ShortDesc = "create a swap partition." },
			wantCode: ErrShortDesc,
		},
		{
			name:     "public without longdesc",
			mutate:   func(api *ir.API) { api.Actions[1].LongDesc = "" },
			wantCode: ErrLongDesc,
		},
		{
			name:     "longdesc trailing newline",
			mutate:   func(api *ir.API) { api.Actions[1].LongDesc += "\n" },
			wantCode: ErrLongDesc,
		},
		{
			name:     "malformed optional group",
			mutate:   func(api *ir.API) { api.Actions[1].Optional = "linux-fs" },
			wantCode: ErrOptionalGroup,
		},
		{
			name:     "duplicate event bit",
			mutate:   func(api *ir.API) { api.Events[1].Bit = 0 },
			wantCode: ErrEventDuplicate,
		},
		{
			name:     "event bit out of range",
			mutate:   func(api *ir.API) { api.Events[1].Bit = 64 },
			wantCode: ErrEventBit,
		},
		{
			name:     "legacy truncation on current action",
			mutate:   func(api *ir.API) { api.Actions[1].LegacyNULTruncation = true },
			wantCode: ErrLegacyTruncation,
		},
		{
			name: "legacy truncation without buffer",
			mutate: func(api *ir.API) {
				api.Actions[1].DeprecatedBy = ir.Replaced("stat")
				api.Actions[1].LegacyNULTruncation = true
			},
			wantCode: ErrLegacyTruncation,
			wantIn:   []string{"no buffer argument"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := base()
			tt.mutate(api)

			err := Check(api)
			require.Error(t, err)

			var ce *CheckError
			require.True(t, errors.As(err, &ce), "want *CheckError, got %T", err)
			assert.Equal(t, tt.wantCode, ce.Code, "error: %v", err)
			for _, s := range tt.wantIn {
				assert.Contains(t, err.Error(), s)
			}
		})
	}
}

func TestSelfTestViolationNamesAction(t *testing.T) {
	api := base()
	bad := mkswapU()
	bad.Tests[0].Assert.Seq = []ir.Command{{"mkswap", "/dev/sda1"}}
	api.Actions = append(api.Actions, bad)

	err := Check(api)
	require.Error(t, err)
	assert.Equal(t, `[E122] action "mkswap_U": has tests, but none of them calls "mkswap_U"`, err.Error())
}

func TestRedundantIfAvailableRejected(t *testing.T) {
	api := base()
	a := mkswapU()
	a.Tests[0].Apply = ir.Applicability{Kind: ir.IfAvailable, Group: "linuxfsuuid"}
	api.Actions = append(api.Actions, a)

	err := Check(api)
	require.Error(t, err)
	var ce *CheckError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, ErrRedundantGate, ce.Code)
	assert.Contains(t, err.Error(), `action "mkswap_U"`)
	assert.Contains(t, err.Error(), `"linuxfsuuid"`)
}

func TestSixtyFourOptArgsRejected(t *testing.T) {
	api := base()
	optargs := make([]ir.OptArg, 64)
	for i := range optargs {
		optargs[i] = ir.OptArg{Kind: ir.OptBool, Name: fmt.Sprintf("o%d", i)}
	}
	api.Actions[1].Style.OptArgs = optargs

	err := Check(api)
	require.Error(t, err)
	assert.Equal(t, `[E116] action "mkswap": has 64 optional arguments; the maximum is 63`, err.Error())
}

func TestSixtyThreeOptArgsAccepted(t *testing.T) {
	api := base()
	optargs := make([]ir.OptArg, 63)
	for i := range optargs {
		optargs[i] = ir.OptArg{Kind: ir.OptBool, Name: fmt.Sprintf("o%d", i)}
	}
	api.Actions[1].Style.OptArgs = optargs
	assert.NoError(t, Check(api))
}

func TestCheckIsFailFastInCanonicalOrder(t *testing.T) {
	api := base()
	// Both actions are broken; "mkswap" sorts before "stat".
	api.Actions[0].ShortDesc = ""
	api.Actions[1].ShortDesc = ""

	err := Check(api)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `action "mkswap"`)
}

func TestIsReserved(t *testing.T) {
	for _, w := range []string{"value", "argv", "struct", "begin", "where", "data"} {
		assert.True(t, IsReserved(w), w)
	}
	for _, w := range []string{"path", "device", "setval", "label"} {
		assert.False(t, IsReserved(w), w)
	}
}
