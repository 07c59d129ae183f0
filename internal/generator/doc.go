// Package generator drives one generation run.
//
// A run is strictly ordered:
//
//  1. load the API (compiled-in catalog, optionally merged with CUE
//     definitions) and run the consistency checks
//  2. plan every output file in memory: bindings and tests per target,
//     the XDR protocol file, the bindtests trace and the manifest
//  3. take the output directory lock
//  4. write each file only if its bytes changed
//  5. record the run in the journal and persist the doc cache
//
// Nothing touches the output directory before step 3, so a failed check
// or emitter error leaves the previous output intact.
package generator
