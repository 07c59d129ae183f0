// Package output coordinates generated files.
//
// Emitters print into a Printer, which buffers text in memory, counts lines
// and carries the first error any printing step recorded. Nothing touches
// the filesystem until every file of a run has been computed; the driver
// then writes each File with WriteIfChanged, so unchanged files keep their
// modification time and downstream incremental builds stay quiet.
//
// Lock serializes concurrent generator processes on one output tree.
package output
