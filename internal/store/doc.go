// Package store provides SQLite-backed persistence for bindgen.
//
// Two things outlive a single generator run:
//   - the documentation cache: rendered text keyed by the content hash of
//     (name, markup, width), so unchanged docs are never re-rendered
//   - the generation journal: one record per run plus one per output file
//
// Nothing in the store affects generated content. Deleting the database
// only costs re-rendering time and journal history.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait on contention instead of failing
//   - foreign_keys=ON: outputs reference runs
package store
