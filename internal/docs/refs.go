package docs

import (
	"regexp"
	"strings"

	"github.com/roach88/bindgen/internal/ir"
)

var crossRef = regexp.MustCompile(`C<([a-z][a-zA-Z0-9_]*)>`)

// ResolveRefs rewrites cross references to other actions. A reference is
// written C<prefix_name>, for example C<guestfs_mkswap>; each one naming an
// existing action becomes C<rename(name)>. Other C<...> sequences are left
// alone.
func ResolveRefs(api *ir.API, markup string, rename func(name string) string) string {
	return crossRef.ReplaceAllStringFunc(markup, func(m string) string {
		inner := m[2 : len(m)-1]
		name, ok := strings.CutPrefix(inner, api.Prefix)
		if !ok {
			return m
		}
		if _, exists := api.Action(name); !exists {
			return m
		}
		return "C<" + rename(name) + ">"
	})
}

// Notes returns the annotation paragraphs appended to an action's
// documentation: deprecation, feature-group gating and version added.
// rename converts an action name into the target's calling convention.
func Notes(a *ir.Action, rename func(name string) string) []string {
	var notes []string
	switch a.DeprecatedBy.Kind {
	case ir.ReplacedBy:
		notes = append(notes, "This function is deprecated. In new code, use "+
			rename(a.DeprecatedBy.Replacement)+" instead.")
	case ir.DeprecatedNoReplacement:
		notes = append(notes, "This function is deprecated. There is no replacement. "+
			"Consult the API documentation for further information.")
	}
	if a.Optional != "" {
		notes = append(notes, "This function depends on the feature \""+a.Optional+
			"\". Check it is available before calling it.")
	}
	if a.Added != "" {
		notes = append(notes, "Added in version "+a.Added+".")
	}
	return notes
}
