package emit

import "fmt"

// Target selects a backend. The set is closed: adding a target means
// adding a constant here and a case to BackendFor.
type Target int

const (
	TargetC Target = iota
	TargetGo
	TargetPython
	TargetRust
)

var targetNames = [...]string{
	TargetC:      "c",
	TargetGo:     "go",
	TargetPython: "python",
	TargetRust:   "rust",
}

func (t Target) String() string {
	if t < 0 || int(t) >= len(targetNames) {
		panic(fmt.Sprintf("unknown target: %d", int(t)))
	}
	return targetNames[t]
}

// ParseTarget is the inverse of Target.String.
func ParseTarget(s string) (Target, error) {
	for i, n := range targetNames {
		if n == s {
			return Target(i), nil
		}
	}
	return 0, fmt.Errorf("unknown target %q (want one of c, go, python, rust)", s)
}

// AllTargets returns every target in declaration order.
func AllTargets() []Target {
	return []Target{TargetC, TargetGo, TargetPython, TargetRust}
}

// BackendFor returns a fresh backend for t. Backends carry per-run state,
// so each Visit needs its own.
func BackendFor(t Target) Backend {
	switch t {
	case TargetC:
		return &cBackend{}
	case TargetGo:
		return &goBackend{}
	case TargetPython:
		return &pyBackend{}
	case TargetRust:
		return &rustBackend{}
	default:
		panic(fmt.Sprintf("BackendFor: unknown target %d", int(t)))
	}
}

// HeaderFor returns the backend whose header t's output includes. The Go
// bindings reach the library through cgo and so share the C header.
func HeaderFor(t Target) (HeaderBackend, bool) {
	switch t {
	case TargetC, TargetGo:
		return &cBackend{}, true
	default:
		return nil, false
	}
}
