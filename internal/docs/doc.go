// Package docs renders action documentation for embedding in generated
// comments.
//
// Documentation is written in a small POD-like markup: paragraphs separated
// by blank lines, C<code>, B<bold>, I<italic>, F<file> and L<link>
// sequences, and verbatim blocks indented by a space. The Renderer
// interface is the only thing emitters depend on; Cache wraps any Renderer
// with a content-hash keyed memo that the driver loads from and saves to
// the store explicitly.
package docs
