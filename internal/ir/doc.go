// Package ir provides the intermediate representation for bindgen.
//
// This package contains the API model (actions, arguments, return shapes,
// structs, events, tests) and the pure derivation functions every emitter
// consults. All other internal packages import ir; ir imports nothing
// internal. This keeps the IR the foundational layer with no circular
// dependencies.
//
// Key design constraints:
//   - Every variant kind is a closed enumeration; switches over kinds are
//     total and panic on an unknown kind.
//   - ErrCodeOf is the single source of truth for the error convention of
//     an action's generated wrapper.
//   - Canonical order is by action name (CompareActions). Emitted files must
//     never depend on map iteration order.
//   - The IR is constructed once and read-only afterwards.
package ir
