// Package compiler decodes API definitions written in CUE into IR values.
//
// A definitions directory holds one CUE package with up to three top-level
// sections, each keyed by name:
//
//	action: <name>: {...}
//	struct: <name>: fields: [...]
//	event:  <name>: <bit>
//
// Decoded definitions are merged into the compiled-in catalog with Merge
// and then go through the same consistency check as everything else.
package compiler
