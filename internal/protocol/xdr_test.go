package protocol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bindgen/internal/catalog"
	"github.com/roach88/bindgen/internal/ir"
)

// Deployed daemons depend on these exact values.
func TestWireConstants(t *testing.T) {
	assert.Equal(t, 0x2000F5F5, Program)
	assert.Equal(t, 4, Version)
	assert.Equal(t, 4194304, MessageMax)
	assert.Equal(t, 8192, MaxChunkSize)
	assert.Equal(t, 256, ErrorLen)
	assert.Equal(t, uint32(0xf5f55ff5), uint32(LaunchFlag))
	assert.Equal(t, uint32(0xffffeeee), uint32(CancelFlag))
	assert.Equal(t, uint32(0xffff5555), uint32(ProgressFlag))
}

func generate(t *testing.T) string {
	t.Helper()
	f, err := Generate(catalog.API())
	require.NoError(t, err)
	assert.Equal(t, Path, f.Path)
	return string(f.Content)
}

func TestGenerateCarriesConstants(t *testing.T) {
	out := generate(t)
	for _, want := range []string{
		"const GUESTFS_MESSAGE_MAX = 4194304;\n",
		"const GUESTFS_PROGRAM = 0x2000F5F5;\n",
		"const GUESTFS_PROTOCOL_VERSION = 4;\n",
		"const GUESTFS_LAUNCH_FLAG = 0xf5f55ff5;\n",
		"const GUESTFS_CANCEL_FLAG = 0xffffeeee;\n",
		"const GUESTFS_PROGRESS_FLAG = 0xffff5555;\n",
		"const GUESTFS_ERROR_LEN = 256;\n",
		"const GUESTFS_MAX_CHUNK_SIZE = 8192;\n",
		"  GUESTFS_DIRECTION_CALL = 0,\n  GUESTFS_DIRECTION_REPLY = 1\n",
		"  GUESTFS_STATUS_OK = 0,\n  GUESTFS_STATUS_ERROR = 1\n",
		"  unsigned hyper optargs_bitmask;\n",
	} {
		assert.Contains(t, out, want)
	}
	assert.True(t, strings.HasPrefix(out, "/* This file is generated by bindgen "+ir.GeneratorVersion+". Do not edit. */\n"))
	assert.True(t, strings.HasSuffix(out, "};\n"))
	assert.False(t, strings.HasSuffix(out, "\n\n"))
}

func TestProceduresOrderedByNumber(t *testing.T) {
	procs := Procedures(catalog.API())
	require.NotEmpty(t, procs)
	assert.Equal(t, Procedure{Name: "cat", Number: 4}, procs[0])
	for i := 1; i < len(procs); i++ {
		assert.Less(t, procs[i-1].Number, procs[i].Number)
	}

	out := generate(t)
	assert.Contains(t, out, "enum guestfs_procedure {\n  GUESTFS_PROC_CAT = 4,\n")
	assert.Contains(t, out, "  GUESTFS_PROC_FEATURE_AVAILABLE = 398\n};\n")
}

func TestLibraryActionsStayOffTheWire(t *testing.T) {
	out := generate(t)
	assert.NotContains(t, out, "guestfs_launch_")
	assert.NotContains(t, out, "guestfs_get_path_")
	assert.NotContains(t, out, "INTERNAL_TEST")
}

func TestArgsAndRets(t *testing.T) {
	out := generate(t)
	for _, want := range []string{
		"struct guestfs_upload_args {\n  string remotefilename<>;\n};\n",
		"struct guestfs_download_args {\n  string remotefilename<>;\n};\n",
		"struct guestfs_mkswap_args {\n  string device<>;\n  string label<>;\n  string uuid<>;\n};\n",
		"struct guestfs_lstatlist_args {\n  string path<>;\n  guestfs_str names<>;\n};\n",
		"struct guestfs_write_args {\n  string path<>;\n  opaque content<>;\n};\n",
		"struct guestfs_stat_ret {\n  guestfs_int_stat ret;\n};\n",
		"struct guestfs_lstatlist_ret {\n  guestfs_int_stat_list ret;\n};\n",
		"struct guestfs_ls_ret {\n  guestfs_str ret<>;\n};\n",
		"struct guestfs_read_file_ret {\n  opaque ret<>;\n};\n",
		"struct guestfs_blockdev_getsize64_ret {\n  hyper ret;\n};\n",
		"typedef struct guestfs_int_stat guestfs_int_stat_list<>;\n",
		"  opaque pv_uuid[32];\n",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "guestfs_mkswap_ret")
	assert.NotContains(t, out, "guestfs_pvs_full_args")
}

func TestConstStringDaemonActionIsRejected(t *testing.T) {
	api := &ir.API{
		Prefix: catalog.Prefix,
		Actions: []ir.Action{{
			Name:   "get_label",
			Style:  ir.Style{Ret: ir.RetOf(ir.RetConstString)},
			ProcNr: 7,
		}},
	}
	_, err := Generate(api)
	require.ErrorIs(t, err, ErrNotWireable)
	assert.Contains(t, err.Error(), `"get_label"`)
}
