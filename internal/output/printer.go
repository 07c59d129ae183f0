package output

import (
	"bytes"
	"fmt"
	"strings"
)

// Printer buffers the text of one generated file.
//
// Printing after a failure is a no-op, so emitters can keep calling the
// printer unconditionally and check Err once at the end.
type Printer struct {
	buf    bytes.Buffer
	indent int
	unit   string
	bol    bool // at beginning of line
	err    error
}

// NewPrinter returns an empty printer that indents with tabs.
func NewPrinter() *Printer {
	return NewIndentPrinter("\t")
}

// NewIndentPrinter returns an empty printer that indents with unit, for
// targets whose conventions use spaces.
func NewIndentPrinter(unit string) *Printer {
	return &Printer{unit: unit, bol: true}
}

// Printf formats and appends text. Each line that starts inside the call is
// prefixed with the current indentation; blank lines are never indented.
func (p *Printer) Printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	p.write(fmt.Sprintf(format, args...))
}

// Println appends the operands separated by spaces, then a newline.
func (p *Printer) Println(args ...any) {
	if p.err != nil {
		return
	}
	p.write(fmt.Sprintln(args...))
}

// Lines appends each line followed by a newline.
func (p *Printer) Lines(lines ...string) {
	for _, l := range lines {
		p.Printf("%s\n", l)
	}
}

// Indent increases indentation by one unit for following lines.
func (p *Printer) Indent() { p.indent++ }

// Dedent undoes one Indent.
func (p *Printer) Dedent() {
	if p.indent > 0 {
		p.indent--
	}
}

func (p *Printer) write(s string) {
	for len(s) > 0 {
		line, rest, nl := strings.Cut(s, "\n")
		if p.bol && line != "" {
			p.buf.WriteString(strings.Repeat(p.unit, p.indent))
		}
		p.buf.WriteString(line)
		p.bol = false
		if nl {
			p.buf.WriteByte('\n')
			p.bol = true
		}
		s = rest
	}
}

// Fail records err unless an earlier error is already recorded. Only the
// first failure is kept.
func (p *Printer) Fail(err error) {
	if p.err == nil && err != nil {
		p.err = err
	}
}

// Err returns the first recorded failure.
func (p *Printer) Err() error { return p.err }

// Bytes returns the buffered text.
func (p *Printer) Bytes() []byte { return p.buf.Bytes() }

// LineCount returns the number of complete lines buffered.
func (p *Printer) LineCount() int {
	return bytes.Count(p.buf.Bytes(), []byte{'\n'})
}

// File returns the buffered text as a File at path.
func (p *Printer) File(path string) (File, error) {
	if p.err != nil {
		return File{}, p.err
	}
	return File{Path: path, Content: bytes.Clone(p.buf.Bytes())}, nil
}

// File is one fully computed output.
type File struct {
	Path    string // relative to the output root, slash-separated
	Content []byte
}

// Lines returns the number of newline-terminated lines in the file.
func (f File) Lines() int {
	return bytes.Count(f.Content, []byte{'\n'})
}
