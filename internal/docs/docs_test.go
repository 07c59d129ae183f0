package docs

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bindgen/internal/ir"
	"github.com/roach88/bindgen/internal/store"
)

func TestTextRendererWrapsParagraphs(t *testing.T) {
	markup := "Returns file information for the given C<path>.\n\nThis is the same as the B<stat(2)> system call."
	got, err := TextRenderer{}.Render("stat", markup, 30)
	require.NoError(t, err)
	assert.Equal(t,
		"Returns file information for\nthe given path.\n\nThis is the same as the\nstat(2) system call.",
		got)
}

func TestTextRendererKeepsVerbatimBlocks(t *testing.T) {
	markup := "Example:\n\n mkswap_U uuid /dev/sda1\n part_disk /dev/sda mbr\n\nDone."
	got, err := TextRenderer{}.Render("mkswap_U", markup, 72)
	require.NoError(t, err)
	assert.Equal(t, "Example:\n\n mkswap_U uuid /dev/sda1\n part_disk /dev/sda mbr\n\nDone.", got)
}

func TestTextRendererErrors(t *testing.T) {
	_, err := TextRenderer{}.Render("x", "text", 5)
	assert.ErrorContains(t, err, "too narrow")

	_, err = TextRenderer{}.Render("x", "see C<guestfs_stat for details", 72)
	assert.ErrorContains(t, err, "unterminated")
}

func testAPI() *ir.API {
	return &ir.API{
		Prefix:  "guestfs_",
		Actions: []ir.Action{{Name: "mkswap"}, {Name: "lstat"}},
	}
}

func TestResolveRefs(t *testing.T) {
	markup := "Use C<guestfs_mkswap> or C<guestfs_lstat>, not C<guestfs_unknown> or C<mkswap>."
	got := ResolveRefs(testAPI(), markup, func(n string) string { return "g." + n })
	assert.Equal(t, "Use C<g.mkswap> or C<g.lstat>, not C<guestfs_unknown> or C<mkswap>.", got)
}

func TestNotes(t *testing.T) {
	a := &ir.Action{
		Name:         "mkswap_U",
		DeprecatedBy: ir.Replaced("mkswap"),
		Optional:     "linuxfsuuid",
		Added:        "1.0.55",
	}
	notes := Notes(a, func(n string) string { return "guestfs_" + n })
	require.Len(t, notes, 3)
	assert.Contains(t, notes[0], "use guestfs_mkswap instead")
	assert.Contains(t, notes[1], `"linuxfsuuid"`)
	assert.Equal(t, "Added in version 1.0.55.", notes[2])

	assert.Empty(t, Notes(&ir.Action{Name: "stat"}, func(n string) string { return n }))
}

type countingRenderer struct{ calls int }

func (r *countingRenderer) Render(name, markup string, width int) (string, error) {
	r.calls++
	return TextRenderer{}.Render(name, markup, width)
}

func TestCacheMemoizes(t *testing.T) {
	inner := &countingRenderer{}
	c := NewCache(inner)

	a, err := c.Render("stat", "Get file information.", 72)
	require.NoError(t, err)
	b, err := c.Render("stat", "Get file information.", 72)
	require.NoError(t, err)
	_, err = c.Render("stat", "Get file information.", 60)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, 2, inner.calls)
	hits, misses := c.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 2, misses)
}

func TestCacheLoadSaveThroughStore(t *testing.T) {
	ctx := context.Background()
	s, err := store.Open(filepath.Join(t.TempDir(), "bindgen.db"))
	require.NoError(t, err)
	defer s.Close()

	first := NewCache(TextRenderer{})
	require.NoError(t, first.Load(ctx, s))
	_, err = first.Render("cat", "Return the contents of the file.", 72)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, s))

	inner := &countingRenderer{}
	second := NewCache(inner)
	require.NoError(t, second.Load(ctx, s))
	assert.Equal(t, 1, second.Len())

	got, err := second.Render("cat", "Return the contents of the file.", 72)
	require.NoError(t, err)
	assert.Equal(t, "Return the contents of the file.", got)
	assert.Zero(t, inner.calls, "a loaded entry must not be re-rendered")
}
