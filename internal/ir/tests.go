package ir

import "fmt"

// TestInit is the precondition a test needs before its commands run.
type TestInit int

const (
	InitNone TestInit = iota
	InitEmpty
	InitPartition
	InitBasicFS
	InitISOFS
	InitScratchFS
)

var testInitNames = [...]string{
	InitNone:      "none",
	InitEmpty:     "empty",
	InitPartition: "partition",
	InitBasicFS:   "basicfs",
	InitISOFS:     "isofs",
	InitScratchFS: "scratchfs",
}

func (i TestInit) String() string {
	if i < 0 || int(i) >= len(testInitNames) {
		panic(fmt.Sprintf("unknown test init: %d", int(i)))
	}
	return testInitNames[i]
}

// ParseTestInit is the inverse of TestInit.String.
func ParseTestInit(s string) (TestInit, error) {
	for i, n := range testInitNames {
		if n == s {
			return TestInit(i), nil
		}
	}
	return 0, fmt.Errorf("unknown test init %q", s)
}

// ApplyKind says when a test runs.
type ApplyKind int

const (
	Always ApplyKind = iota
	IfAvailable
	Disabled
)

// Applicability gates a test. Group is set only for IfAvailable.
type Applicability struct {
	Kind  ApplyKind `json:"kind"`
	Group string    `json:"group,omitempty"`
}

// AssertKind selects how a test's command sequence is judged.
type AssertKind int

const (
	// AssertRun passes if every command succeeds.
	AssertRun AssertKind = iota
	// AssertResult evaluates a C-like expression over the last result "ret".
	AssertResult
	// AssertResultString compares the last (string) result to Expect.
	AssertResultString
	AssertResultTrue
	AssertResultFalse
	// AssertLastFail passes if all but the last command succeed and the
	// last one fails.
	AssertLastFail
)

var assertKindNames = [...]string{
	AssertRun:          "run",
	AssertResult:       "result",
	AssertResultString: "result_string",
	AssertResultTrue:   "result_true",
	AssertResultFalse:  "result_false",
	AssertLastFail:     "last_fail",
}

func (k AssertKind) String() string {
	if k < 0 || int(k) >= len(assertKindNames) {
		panic(fmt.Sprintf("unknown assert kind: %d", int(k)))
	}
	return assertKindNames[k]
}

// ParseAssertKind is the inverse of AssertKind.String.
func ParseAssertKind(s string) (AssertKind, error) {
	for i, n := range assertKindNames {
		if n == s {
			return AssertKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown assertion kind %q", s)
}

// Command is one call in a test sequence: the action name followed by its
// arguments as strings. Optional arguments are written "name:value".
type Command []string

// Name returns the invoked action name, or "" for an empty command.
func (c Command) Name() string {
	if len(c) == 0 {
		return ""
	}
	return c[0]
}

// TestAssertion is the command sequence plus how to judge it.
type TestAssertion struct {
	Kind   AssertKind `json:"kind"`
	Seq    []Command  `json:"seq"`
	Expect string     `json:"expect,omitempty"` // AssertResult expression or AssertResultString value
}

// StructCheck is an expected-structure check applied to a struct result.
type StructCheck struct {
	Field string `json:"field"`
	Op    string `json:"op"` // "==", "!=", "<", ">", "<=", ">="
	Value string `json:"value"`
}

// Test is one test attached to an action.
type Test struct {
	Init   TestInit      `json:"init"`
	Apply  Applicability `json:"apply"`
	Assert TestAssertion `json:"assert"`
	Checks []StructCheck `json:"checks,omitempty"`
}

// Commands flattens the command names invoked by all the given tests, in order.
func Commands(tests []Test) []string {
	var names []string
	for _, t := range tests {
		for _, c := range t.Assert.Seq {
			names = append(names, c.Name())
		}
	}
	return names
}
