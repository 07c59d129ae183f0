// Package strutil holds the text helpers shared by every emitter: trimming,
// splitting, replacement, quoting for embedding in each target's string
// literal syntax, identifier case conversion and column layout.
package strutil

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	upper = cases.Upper(language.Und)
	title = cases.Title(language.Und)
)

// Trim removes leading and trailing spaces, tabs, carriage returns and
// newlines. Other Unicode space is preserved.
func Trim(s string) string {
	return strings.Trim(s, " \t\r\n")
}

// NSplit splits s on every occurrence of sep. Unlike strings.Split, an empty
// input yields an empty slice.
func NSplit(sep, s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, sep)
}

// SplitOnce splits s at the first sep. ok is false if sep does not occur.
func SplitOnce(sep, s string) (before, after string, ok bool) {
	return strings.Cut(s, sep)
}

// Replace substitutes every occurrence of old with repl. An empty old is
// a no-op rather than an insertion between every rune.
func Replace(s, old, repl string) string {
	if old == "" {
		return s
	}
	return strings.ReplaceAll(s, old, repl)
}

// Lines splits text into lines, dropping one trailing newline.
func Lines(text string) []string {
	return NSplit("\n", strings.TrimSuffix(text, "\n"))
}

// CQuote returns s as a C string literal body (without the quotes). Bytes
// outside printable ASCII are written as octal escapes so the result is
// valid in any C source encoding.
func CQuote(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if c < 0x20 || c >= 0x7f {
				fmt.Fprintf(&b, `\%03o`, c)
			} else {
				b.WriteByte(c)
			}
		}
	}
	return b.String()
}

// GoQuote returns s as a double-quoted Go string literal.
func GoQuote(s string) string {
	return strconv.Quote(s)
}

// PyQuote returns s as a double-quoted Python string literal.
func PyQuote(s string) string {
	return `"` + CQuote(s) + `"`
}

// RustQuote returns s as a double-quoted Rust string literal. Rust has no
// octal escapes, so non-ASCII bytes become \x escapes or stay as UTF-8.
func RustQuote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case utf8.RuneError:
			b.WriteString(`\u{fffd}`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\x%02x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Upper converts an identifier to upper case, as used for C macro names.
func Upper(s string) string {
	return upper.String(s)
}

// Capitalize upper-cases the first letter only: "add_drive" -> "Add_drive".
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return upper.String(string(r)) + s[size:]
}

// CamelCase joins underscore-separated words with each word title-cased:
// "lvm_pv" -> "LvmPv", "mkswap_U" -> "MkswapU".
func CamelCase(s string) string {
	var b strings.Builder
	for _, word := range strings.Split(s, "_") {
		if word == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(word)
		b.WriteString(title.String(string(r)))
		b.WriteString(word[size:])
	}
	return b.String()
}

// Dashify turns an action name into its CLI form: "add_drive" -> "add-drive".
func Dashify(s string) string {
	return strings.ReplaceAll(s, "_", "-")
}

// Columns lays out rows as left-aligned columns separated by sep. The last
// column is never padded, so lines carry no trailing whitespace.
func Columns(rows [][]string, sep string) []string {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}

	out := make([]string, len(rows))
	for r, row := range rows {
		var b strings.Builder
		for i, cell := range row {
			if i > 0 {
				b.WriteString(sep)
			}
			b.WriteString(cell)
			if i < len(row)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
			}
		}
		out[r] = b.String()
	}
	return out
}

// Wrap fills text into lines of at most width runes, breaking at spaces.
// Words longer than width get a line of their own.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{}
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if utf8.RuneCountInString(line)+1+utf8.RuneCountInString(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}
