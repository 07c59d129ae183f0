package strutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrim(t *testing.T) {
	assert.Equal(t, "a b", Trim("\t a b \r\n"))
	assert.Equal(t, "", Trim(" \n"))
}

func TestNSplit(t *testing.T) {
	assert.Equal(t, []string{}, NSplit(",", ""))
	assert.Equal(t, []string{"a", "", "b"}, NSplit(",", "a,,b"))
	assert.Equal(t, []string{"abc"}, NSplit(",", "abc"))
}

func TestSplitOnce(t *testing.T) {
	before, after, ok := SplitOnce(":", "label:swap:1")
	assert.True(t, ok)
	assert.Equal(t, "label", before)
	assert.Equal(t, "swap:1", after)

	_, _, ok = SplitOnce(":", "label")
	assert.False(t, ok)
}

func TestReplace(t *testing.T) {
	assert.Equal(t, "guestfs-stat", Replace("guestfs_stat", "_", "-"))
	assert.Equal(t, "abc", Replace("abc", "", "x"))
}

func TestQuoting(t *testing.T) {
	tests := []struct {
		name  string
		quote func(string) string
		in    string
		want  string
	}{
		{"c plain", CQuote, "abc", "abc"},
		{"c escapes", CQuote, "a\"b\\c\nd", `a\"b\\c\nd`},
		{"c non-ascii", CQuote, "\x00\xff", `\000\377`},
		{"go", GoQuote, "a\"b", `"a\"b"`},
		{"python", PyQuote, "it's\n", `"it's\n"`},
		{"rust", RustQuote, "a\"b\x01", `"a\"b\x01"`},
		{"rust utf8", RustQuote, "café", `"café"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.quote(tt.in))
		})
	}
}

func TestCaseConversion(t *testing.T) {
	assert.Equal(t, "MKSWAP_U", Upper("mkswap_U"))
	assert.Equal(t, "Add_drive", Capitalize("add_drive"))
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "LvmPv", CamelCase("lvm_pv"))
	assert.Equal(t, "MkswapU", CamelCase("mkswap_U"))
	assert.Equal(t, "Stat", CamelCase("stat"))
	assert.Equal(t, "add-drive-opts", Dashify("add_drive_opts"))
}

func TestColumns(t *testing.T) {
	rows := [][]string{
		{"dev", "int64", "device"},
		{"ino", "int64", "inode"},
		{"blksize", "int64", "block size"},
	}
	want := []string{
		"dev     : int64 : device",
		"ino     : int64 : inode",
		"blksize : int64 : block size",
	}
	assert.Equal(t, want, Columns(rows, " : "))
}

func TestWrap(t *testing.T) {
	assert.Equal(t,
		[]string{"Returns file", "information for", "the given path."},
		Wrap("Returns file information for the given path.", 16))
	assert.Equal(t, []string{"supercalifragilistic", "x"}, Wrap("supercalifragilistic x", 5))
	assert.Equal(t, []string{}, Wrap("  ", 10))
}
