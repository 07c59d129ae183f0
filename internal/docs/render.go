package docs

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/roach88/bindgen/internal/strutil"
)

// Renderer converts markup into line-wrapped plain text.
//
// Implementations must be referentially transparent: equal (name, markup,
// width) always yield equal text. Cache relies on this.
type Renderer interface {
	Render(name, markup string, width int) (string, error)
}

// TextRenderer is the built-in Renderer.
type TextRenderer struct{}

var (
	formatCode = regexp.MustCompile(`([CBIFL])<([^<>]*)>`)
	openCode   = regexp.MustCompile(`\b[CBIFL]<`)
)

// Render implements Renderer. name is used only in error messages.
func (TextRenderer) Render(name, markup string, width int) (string, error) {
	if width < 20 {
		return "", fmt.Errorf("render %s: width %d is too narrow", name, width)
	}
	var out []string
	for _, para := range paragraphs(markup) {
		if len(out) > 0 {
			out = append(out, "")
		}
		if isVerbatim(para) {
			out = append(out, para...)
			continue
		}
		text := formatCode.ReplaceAllString(strings.Join(para, " "), "$2")
		if loc := openCode.FindStringIndex(text); loc != nil {
			return "", fmt.Errorf("render %s: unterminated formatting code at %q", name, text[loc[0]:])
		}
		out = append(out, strutil.Wrap(text, width)...)
	}
	return strings.Join(out, "\n"), nil
}

// paragraphs splits markup on blank lines.
func paragraphs(markup string) [][]string {
	var paras [][]string
	var cur []string
	for _, line := range strutil.Lines(markup) {
		if strutil.Trim(line) == "" {
			if len(cur) > 0 {
				paras = append(paras, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, strings.TrimRight(line, " \t"))
	}
	if len(cur) > 0 {
		paras = append(paras, cur)
	}
	return paras
}

func isVerbatim(para []string) bool {
	return strings.HasPrefix(para[0], " ")
}
