package output

import (
	"slices"
	"strings"
)

// ManifestName is the file, relative to the output root, that lists every
// generator-owned path.
const ManifestName = "MANIFEST.generated"

// Manifest returns the manifest for files: every path, sorted and
// deduplicated, one per line. The manifest lists itself.
func Manifest(files []File) File {
	paths := make([]string, 0, len(files)+1)
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	paths = append(paths, ManifestName)
	slices.Sort(paths)
	paths = slices.Compact(paths)

	var b strings.Builder
	for _, p := range paths {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	return File{Path: ManifestName, Content: []byte(b.String())}
}
