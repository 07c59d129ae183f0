package output

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinterIndentation(t *testing.T) {
	p := NewPrinter()
	p.Printf("func f() {\n")
	p.Indent()
	p.Printf("x := 1\n\ny := %d\n", 2)
	p.Dedent()
	p.Println("}")

	assert.Equal(t, "func f() {\n\tx := 1\n\n\ty := 2\n}\n", string(p.Bytes()))
	assert.Equal(t, 5, p.LineCount())
}

func TestIndentPrinterUsesUnit(t *testing.T) {
	p := NewIndentPrinter("    ")
	p.Println("def f():")
	p.Indent()
	p.Println("if x:")
	p.Indent()
	p.Println("return 1")
	assert.Equal(t, "def f():\n    if x:\n        return 1\n", string(p.Bytes()))
}

func TestPrinterPartialLines(t *testing.T) {
	p := NewPrinter()
	p.Indent()
	p.Printf("a")
	p.Printf("b\n")
	assert.Equal(t, "\tab\n", string(p.Bytes()))
}

func TestPrinterFailIsSticky(t *testing.T) {
	first := errors.New("first")
	p := NewPrinter()
	p.Printf("kept\n")
	p.Fail(first)
	p.Fail(errors.New("second"))
	p.Printf("dropped\n")

	assert.Same(t, first, p.Err())
	assert.Equal(t, "kept\n", string(p.Bytes()))

	_, err := p.File("x")
	assert.ErrorIs(t, err, first)
}

func TestWriteIfChangedCreates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.go")

	changed, err := WriteIfChanged(path, []byte("package x\n"))
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package x\n", string(got))
}

func TestWriteIfChangedPreservesMtime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.h")
	_, err := WriteIfChanged(path, []byte("v1\n"))
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, past, past))

	changed, err := WriteIfChanged(path, []byte("v1\n"))
	require.NoError(t, err)
	assert.False(t, changed)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(past), "identical content must not touch the file")

	changed, err = WriteIfChanged(path, []byte("v2\n"))
	require.NoError(t, err)
	assert.True(t, changed)
	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().After(past), "new content must update mtime")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestStats(t *testing.T) {
	var s Stats
	s.Record(File{Content: []byte("a\nb\n")}, true)
	s.Record(File{Content: []byte("c\n")}, false)

	var total Stats
	total.Add(s)
	total.Add(s)
	assert.Equal(t, Stats{FilesWritten: 2, FilesUnchanged: 2, Lines: 6}, total)
}

func TestManifestGolden(t *testing.T) {
	files := []File{
		{Path: "rust/src/guestfs.rs"},
		{Path: "c/guestfs-actions.c"},
		{Path: "protocol/guestfs_protocol.x"},
		{Path: "c/guestfs-actions.c"},
		{Path: "golang/guestfs.go"},
	}
	m := Manifest(files)
	assert.Equal(t, ManifestName, m.Path)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "manifest", m.Content)
}

func TestLockExcludesSecondHolder(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".bindgen.lock")

	l, err := Lock(path)
	require.NoError(t, err)

	_, err = TryLock(path)
	assert.Error(t, err, "second holder must be refused while the lock is held")

	require.NoError(t, l.Close())
	l2, err := TryLock(path)
	require.NoError(t, err)
	assert.NoError(t, l2.Close())
	assert.NoError(t, l2.Close(), "Close is idempotent")
}
