package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bindgen/internal/checks"
	"github.com/roach88/bindgen/internal/config"
	"github.com/roach88/bindgen/internal/docs"
	"github.com/roach88/bindgen/internal/output"
)

const btrfsDefs = `package api

struct: lvm_vg: fields: [
	{name: "vg_name", kind: "string"},
	{name: "vg_uuid", kind: "uuid"},
	{name: "vg_size", kind: "bytes"},
]

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

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.OutputDir = filepath.Join(dir, "out")
	cfg.Store = filepath.Join(dir, "state", "bindgen.db")
	return cfg
}

func paths(files []output.File) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

func TestPlanAllTargets(t *testing.T) {
	cfg := config.Default()
	api, err := Check(cfg)
	require.NoError(t, err)

	files, err := Plan(api, cfg, docs.TextRenderer{})
	require.NoError(t, err)

	want := []string{
		"c/guestfs.h",
		"c/guestfs-actions.c",
		"c/tests.c",
		"golang/guestfs.go",
		"golang/guestfs_generated_test.go",
		"python/guestfs.py",
		"python/t/test_generated.py",
		"rust/src/guestfs.rs",
		"rust/tests/generated.rs",
		"protocol/guestfs_protocol.x",
		"tests/bindtests.expected",
		output.ManifestName,
	}
	if diff := cmp.Diff(want, paths(files)); diff != "" {
		t.Errorf("planned paths (-want +got):\n%s", diff)
	}

	manifest := files[len(files)-1]
	sorted := slices.Clone(want)
	slices.Sort(sorted)
	assert.Equal(t, strings.Join(sorted, "\n")+"\n", string(manifest.Content))
}

func TestPlanSubset(t *testing.T) {
	cfg := config.Default()
	cfg.Targets = []string{"go"}
	cfg.Bindtests = false
	api, err := Check(cfg)
	require.NoError(t, err)

	files, err := Plan(api, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"c/guestfs.h",
		"golang/guestfs.go",
		"golang/guestfs_generated_test.go",
		"protocol/guestfs_protocol.x",
		output.ManifestName,
	}, paths(files))
	assert.NotContains(t, string(files[2].Content), "Test_bindtests")
}

func TestPlanIsDeterministic(t *testing.T) {
	cfg := config.Default()
	api, err := Check(cfg)
	require.NoError(t, err)

	a, err := Plan(api, cfg, docs.TextRenderer{})
	require.NoError(t, err)
	b, err := Plan(api, cfg, docs.NewCache(docs.TextRenderer{}))
	require.NoError(t, err)
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, string(a[i].Content), string(b[i].Content), a[i].Path)
	}
}

func TestRunWritesEverything(t *testing.T) {
	cfg := testConfig(t)
	res, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	require.Len(t, res.Files, 12)
	assert.Equal(t, 12, res.Stats.FilesWritten)
	assert.Zero(t, res.Stats.FilesUnchanged)
	assert.Positive(t, res.Stats.Lines)
	assert.NotEmpty(t, res.Fingerprint)
	assert.Positive(t, res.DocCacheMisses)

	id, err := uuid.Parse(res.RunID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())

	for _, f := range res.Files {
		assert.FileExists(t, filepath.Join(cfg.OutputDir, filepath.FromSlash(f.Path)))
		assert.True(t, f.Changed)
	}
	assert.FileExists(t, filepath.Join(cfg.OutputDir, LockName))
}

func TestRunIsIdempotent(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	first, err := Run(ctx, cfg)
	require.NoError(t, err)

	manifest := filepath.Join(cfg.OutputDir, output.ManifestName)
	before, err := os.Stat(manifest)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	second, err := Run(ctx, cfg)
	require.NoError(t, err)
	assert.Zero(t, second.Stats.FilesWritten)
	assert.Equal(t, len(second.Files), second.Stats.FilesUnchanged)
	assert.Equal(t, first.Stats.Lines, second.Stats.Lines)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.Zero(t, second.DocCacheMisses, "every rendering comes from the persisted cache")
	assert.Equal(t, first.DocCacheHits+first.DocCacheMisses, second.DocCacheHits)

	after, err := os.Stat(manifest)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())

	runs, err := History(ctx, cfg, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.RunID, runs[0].ID)
	assert.Equal(t, first.RunID, runs[1].ID)
	assert.Equal(t, "c,go,python,rust", runs[0].Targets)

	files, err := RunFiles(ctx, cfg, second.RunID)
	require.NoError(t, err)
	require.Len(t, files, len(second.Files))
	for _, f := range files {
		assert.False(t, f.Changed, f.Path)
		assert.Len(t, f.SHA256, 64)
	}

	_, err = RunFiles(ctx, cfg, "missing")
	assert.ErrorContains(t, err, "run missing not found")
}

func TestRunWithoutStore(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store = ""

	res, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Empty(t, res.RunID)
	assert.NoDirExists(t, filepath.Join(filepath.Dir(cfg.OutputDir), "state"))

	_, err = History(context.Background(), cfg, 1)
	assert.Error(t, err)
	_, err = RunFiles(context.Background(), cfg, "any")
	assert.Error(t, err)
}

func TestRunRewritesEditedFile(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()
	_, err := Run(ctx, cfg)
	require.NoError(t, err)

	edited := filepath.Join(cfg.OutputDir, "protocol", "guestfs_protocol.x")
	require.NoError(t, os.WriteFile(edited, []byte("hand edit\n"), 0644))

	res, err := Run(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats.FilesWritten)
	for _, f := range res.Files {
		assert.Equal(t, f.Path == "protocol/guestfs_protocol.x", f.Changed, f.Path)
	}
}

func TestRunMergesAPIDir(t *testing.T) {
	cfg := testConfig(t)
	cfg.APIDir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cfg.APIDir, "btrfs.cue"), []byte(btrfsDefs), 0644))

	_, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	xdr, err := os.ReadFile(filepath.Join(cfg.OutputDir, "protocol", "guestfs_protocol.x"))
	require.NoError(t, err)
	assert.Contains(t, string(xdr), "GUESTFS_PROC_MKFS_BTRFS = 317")
	assert.Contains(t, string(xdr), "struct guestfs_int_lvm_vg {")

	goSrc, err := os.ReadFile(filepath.Join(cfg.OutputDir, "golang", "guestfs.go"))
	require.NoError(t, err)
	assert.Contains(t, string(goSrc), "func (g *Guestfs) Mkfs_btrfs(")
}

func TestFailedCheckWritesNothing(t *testing.T) {
	cfg := testConfig(t)
	cfg.APIDir = t.TempDir()
	clash := `package api

action: stat: {
	shortdesc: "get file information"
	longdesc:  "Again."
	ret: "err"
}
`
	require.NoError(t, os.WriteFile(filepath.Join(cfg.APIDir, "clash.cue"), []byte(clash), 0644))

	_, err := Run(context.Background(), cfg)
	var ce *checks.CheckError
	require.True(t, errors.As(err, &ce), "got %v", err)
	assert.Equal(t, checks.ErrNameDuplicate, ce.Code)
	assert.NoDirExists(t, cfg.OutputDir)
}

func TestBadAPIDir(t *testing.T) {
	cfg := testConfig(t)
	cfg.APIDir = filepath.Join(t.TempDir(), "missing")
	_, err := LoadAPI(cfg)
	assert.ErrorContains(t, err, "cannot access")
}
