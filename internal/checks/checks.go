// Package checks validates an API before any emitter runs.
//
// Check is fail-fast: the first violation aborts generation, because a
// partially consistent IR would silently produce broken target code. Every
// violation is a *CheckError naming the offending action, struct or event
// and the rule it broke.
package checks

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/roach88/bindgen/internal/ir"
)

// Check error codes (E101-E149)
const (
	// Action names (E101-E105)
	ErrNameEmpty     = "E101" // name is empty
	ErrNameMalformed = "E102" // name does not match ^[a-z][a-zA-Z0-9_]*$
	ErrNameDash      = "E103" // name contains a dash
	ErrNamePrefix    = "E104" // name carries the native prefix
	ErrNameDuplicate = "E105" // name or alias already used

	// Parameter, optional argument and struct field names (E110-E116)
	ErrParamEmpty      = "E110" // name is empty
	ErrParamUppercase  = "E111" // name contains an uppercase letter
	ErrParamDash       = "E112" // name contains a dash
	ErrParamUnderscore = "E113" // leading, trailing or doubled underscore
	ErrParamReserved   = "E114" // name collides with a reserved word
	ErrParamDuplicate  = "E115" // name used twice in one action or struct
	ErrTooManyOptArgs  = "E116" // more than 63 optional arguments

	// Deprecation and tests (E120-E126)
	ErrReplacementMissing = "E120" // replaced-by names no existing action
	ErrReplacementSelf    = "E121" // replaced-by names the action itself
	ErrNoSelfTest         = "E122" // tests never invoke the action
	ErrTestUnknownAction  = "E123" // test command names no existing action
	ErrRedundantGate      = "E124" // if-available repeats the action's own group
	ErrTestArity          = "E125" // test command has the wrong arguments
	ErrTestEmpty          = "E126" // test has no commands

	// Flags (E130-E135)
	ErrCancelNoErrorChannel = "E130" // cancellable action cannot signal errors
	ErrCancelNotBlocking    = "E131" // cancellable action is not blocking
	ErrProcNrDuplicate      = "E132" // daemon procedure number reused
	ErrDaemonNotBlocking    = "E133" // daemon action is not blocking
	ErrDaemonPointer        = "E134" // daemon action takes a pointer
	ErrDaemonConfigOnly     = "E135" // daemon action is config-only

	// Structs (E136-E138)
	ErrUnknownStruct   = "E136" // return references an undeclared struct
	ErrStructNoFields  = "E137" // struct has no fields
	ErrStructMalformed = "E138" // struct name malformed or duplicated

	// Documentation and grouping (E139-E141)
	ErrShortDesc     = "E139" // shortdesc empty or ends with a period
	ErrLongDesc      = "E140" // longdesc empty or ends with a newline
	ErrOptionalGroup = "E141" // feature group name malformed

	// Events (E145-E146)
	ErrEventDuplicate = "E145" // event name or bit reused
	ErrEventBit       = "E146" // event bit out of range

	// Legacy behaviour (E149)
	ErrLegacyTruncation = "E149" // NUL truncation on an action that may not use it
)

// CheckError is the first rule violation found in an API.
type CheckError struct {
	Code    string `json:"code"`
	Subject string `json:"subject"` // e.g. `action "stat"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *CheckError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Subject, e.Message)
}

var (
	actionNamePattern = regexp.MustCompile(`^[a-z][a-zA-Z0-9_]*$`)
	groupNamePattern  = regexp.MustCompile(`^[a-z][a-z0-9]*$`)
	structNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// Check runs every rule over events, structs and then actions in canonical
// order. It returns nil or a *CheckError.
func Check(api *ir.API) error {
	if err := checkEvents(api.Events); err != nil {
		return err
	}
	if err := checkStructs(api.Structs); err != nil {
		return err
	}

	c := &checker{api: api, names: make(map[string]string)}
	for _, a := range api.SortedActions() {
		if err := c.action(&a); err != nil {
			return err
		}
	}
	return nil
}

type checker struct {
	api     *ir.API
	names   map[string]string // name or alias -> owning action
	procNrs map[int]string
}

func (c *checker) action(a *ir.Action) error {
	rules := []func(*ir.Action) error{
		c.checkNames,
		checkParams,
		c.checkDeprecation,
		c.checkTests,
		checkFlags,
		c.checkDaemon,
		c.checkReturn,
		checkDocs,
		checkLegacyTruncation,
	}
	for _, rule := range rules {
		if err := rule(a); err != nil {
			return err
		}
	}
	return nil
}

func actionErr(a *ir.Action, code, format string, args ...any) *CheckError {
	return &CheckError{
		Code:    code,
		Subject: fmt.Sprintf("action %q", a.Name),
		Message: fmt.Sprintf(format, args...),
	}
}

func (c *checker) checkNames(a *ir.Action) error {
	all := append([]string{a.Name}, a.NonCAliases...)
	all = append(all, a.FishAlias...)

	for i, name := range all {
		what := "name"
		if i > 0 {
			what = fmt.Sprintf("alias %q", name)
		}
		switch {
		case name == "":
			return actionErr(a, ErrNameEmpty, "%s is empty", what)
		case strings.Contains(name, "-"):
			return actionErr(a, ErrNameDash, "%s contains a dash; dashes are added by emitters that need them", what)
		case !actionNamePattern.MatchString(name):
			return actionErr(a, ErrNameMalformed, "%s must start with a lowercase letter and contain only letters, digits and underscores", what)
		case c.api.Prefix != "" && strings.HasPrefix(name, c.api.Prefix):
			return actionErr(a, ErrNamePrefix, "%s must not carry the native prefix %q", what, c.api.Prefix)
		}
		if owner, dup := c.names[name]; dup {
			return actionErr(a, ErrNameDuplicate, "%s is already used by action %q", what, owner)
		}
		c.names[name] = a.Name
	}
	return nil
}

func checkParams(a *ir.Action) error {
	if n := len(a.Style.OptArgs); n > ir.MaxOptArgs {
		return actionErr(a, ErrTooManyOptArgs,
			"has %d optional arguments; the maximum is %d", n, ir.MaxOptArgs)
	}

	seen := make(map[string]bool)
	for _, name := range a.AllArgNames() {
		if err := checkIdent(name); err != nil {
			err.Subject = fmt.Sprintf("action %q", a.Name)
			return err
		}
		if seen[name] {
			return actionErr(a, ErrParamDuplicate, "parameter %q is declared twice", name)
		}
		seen[name] = true
	}
	return nil
}

// checkIdent applies the parameter/field naming rules. The caller fills in
// Subject.
func checkIdent(name string) *CheckError {
	fail := func(code, format string, args ...any) *CheckError {
		return &CheckError{Code: code, Message: fmt.Sprintf(format, args...)}
	}
	switch {
	case name == "":
		return fail(ErrParamEmpty, "parameter name is empty")
	case strings.ToLower(name) != name:
		return fail(ErrParamUppercase, "parameter %q contains uppercase letters", name)
	case strings.Contains(name, "-"):
		return fail(ErrParamDash, "parameter %q contains a dash", name)
	case strings.HasPrefix(name, "_"), strings.HasSuffix(name, "_"), strings.Contains(name, "__"):
		return fail(ErrParamUnderscore, "parameter %q has a leading, trailing or doubled underscore", name)
	case IsReserved(name):
		return fail(ErrParamReserved, "parameter %q is a reserved word in generated code", name)
	}
	return nil
}

func (c *checker) checkDeprecation(a *ir.Action) error {
	if a.DeprecatedBy.Kind != ir.ReplacedBy {
		return nil
	}
	repl := a.DeprecatedBy.Replacement
	if repl == a.Name {
		return actionErr(a, ErrReplacementSelf, "is deprecated in favour of itself")
	}
	if _, ok := c.api.Action(repl); !ok {
		return actionErr(a, ErrReplacementMissing, "is deprecated in favour of %q, which does not exist", repl)
	}
	return nil
}

func (c *checker) checkTests(a *ir.Action) error {
	if len(a.Tests) == 0 {
		return nil
	}

	selfTested := false
	for i, t := range a.Tests {
		if len(t.Assert.Seq) == 0 {
			return actionErr(a, ErrTestEmpty, "test %d has no commands", i)
		}
		if t.Apply.Kind == ir.IfAvailable && !groupNamePattern.MatchString(t.Apply.Group) {
			return actionErr(a, ErrOptionalGroup, "test %d is gated on malformed group %q", i, t.Apply.Group)
		}
		if t.Apply.Kind == ir.IfAvailable && t.Apply.Group == a.Optional {
			return actionErr(a, ErrRedundantGate,
				"test %d is marked if-available %q, which the action's own optional group already implies",
				i, t.Apply.Group)
		}
		for _, cmd := range t.Assert.Seq {
			callee, ok := c.api.Action(cmd.Name())
			if !ok {
				return actionErr(a, ErrTestUnknownAction, "test %d calls unknown action %q", i, cmd.Name())
			}
			if err := checkArity(callee, cmd); err != nil {
				return actionErr(a, ErrTestArity, "test %d: %v", i, err)
			}
			if callee.Name == a.Name {
				selfTested = true
			}
		}
	}
	if !selfTested {
		return actionErr(a, ErrNoSelfTest, "has tests, but none of them calls %q", a.Name)
	}
	return nil
}

// checkArity verifies a test command supplies every required argument,
// followed only by name:value pairs for declared optional arguments.
func checkArity(callee *ir.Action, cmd ir.Command) error {
	args := cmd[1:]
	if len(args) < len(callee.Style.Args) {
		return fmt.Errorf("%s needs %d arguments, got %d", callee.Name, len(callee.Style.Args), len(args))
	}
	for _, extra := range args[len(callee.Style.Args):] {
		name, _, ok := strings.Cut(extra, ":")
		if !ok || !hasOptArg(callee, name) {
			return fmt.Errorf("%s: %q is not an optional argument", callee.Name, extra)
		}
	}
	return nil
}

func hasOptArg(a *ir.Action, name string) bool {
	for _, o := range a.Style.OptArgs {
		if o.Name == name {
			return true
		}
	}
	return false
}

func checkFlags(a *ir.Action) error {
	if a.Optional != "" && !groupNamePattern.MatchString(a.Optional) {
		return actionErr(a, ErrOptionalGroup, "optional group %q must match %s", a.Optional, groupNamePattern)
	}
	if !a.Cancellable {
		return nil
	}
	if ir.ErrCodeOf(a.Style.Ret) == ir.CannotSignalError {
		return actionErr(a, ErrCancelNoErrorChannel,
			"is cancellable, but a %s return cannot signal the error a cancellation needs",
			a.Style.Ret.Kind)
	}
	if !a.Blocking {
		return actionErr(a, ErrCancelNotBlocking, "is cancellable but not blocking")
	}
	return nil
}

func (c *checker) checkDaemon(a *ir.Action) error {
	if !a.IsDaemon() {
		return nil
	}
	if c.procNrs == nil {
		c.procNrs = make(map[int]string)
	}
	if owner, dup := c.procNrs[a.ProcNr]; dup {
		return actionErr(a, ErrProcNrDuplicate, "procedure number %d is already used by %q", a.ProcNr, owner)
	}
	c.procNrs[a.ProcNr] = a.Name

	switch {
	case !a.Blocking:
		return actionErr(a, ErrDaemonNotBlocking, "daemon actions must be blocking")
	case a.HasArgKind(ir.ArgPointer):
		return actionErr(a, ErrDaemonPointer, "daemon actions cannot take pointer arguments")
	case a.ConfigOnly:
		return actionErr(a, ErrDaemonConfigOnly, "daemon actions cannot be config-only")
	}
	return nil
}

func (c *checker) checkReturn(a *ir.Action) error {
	switch a.Style.Ret.Kind {
	case ir.RetStruct, ir.RetStructList:
		if _, ok := c.api.Struct(a.Style.Ret.Struct); !ok {
			return actionErr(a, ErrUnknownStruct, "returns undeclared struct %q", a.Style.Ret.Struct)
		}
	}
	return nil
}

func checkDocs(a *ir.Action) error {
	switch {
	case strings.TrimSpace(a.ShortDesc) == "":
		return actionErr(a, ErrShortDesc, "shortdesc is empty")
	case strings.HasSuffix(a.ShortDesc, "."):
		return actionErr(a, ErrShortDesc, "shortdesc must not end with a period")
	case a.Visibility == ir.VisibilityPublic && strings.TrimSpace(a.LongDesc) == "":
		return actionErr(a, ErrLongDesc, "public actions need a longdesc")
	case strings.HasSuffix(a.LongDesc, "\n"):
		return actionErr(a, ErrLongDesc, "longdesc must not end with a newline")
	}
	return nil
}

func checkLegacyTruncation(a *ir.Action) error {
	if !a.LegacyNULTruncation {
		return nil
	}
	if !a.IsDeprecated() {
		return actionErr(a, ErrLegacyTruncation, "only deprecated actions may keep NUL-truncating buffers")
	}
	if !a.HasArgKind(ir.ArgBufferIn) {
		return actionErr(a, ErrLegacyTruncation, "NUL truncation is set but there is no buffer argument")
	}
	return nil
}

func checkStructs(structs []ir.Struct) error {
	seen := make(map[string]bool)
	for _, s := range structs {
		subject := fmt.Sprintf("struct %q", s.Name)
		if !structNamePattern.MatchString(s.Name) {
			return &CheckError{Code: ErrStructMalformed, Subject: subject,
				Message: "struct names must be lowercase identifiers"}
		}
		if seen[s.Name] {
			return &CheckError{Code: ErrStructMalformed, Subject: subject,
				Message: "struct is declared twice"}
		}
		seen[s.Name] = true

		if len(s.Fields) == 0 {
			return &CheckError{Code: ErrStructNoFields, Subject: subject,
				Message: "struct has no fields"}
		}
		fields := make(map[string]bool)
		for _, f := range s.Fields {
			if err := checkIdent(f.Name); err != nil {
				err.Subject = subject
				err.Message = strings.Replace(err.Message, "parameter", "field", 1)
				return err
			}
			if fields[f.Name] {
				return &CheckError{Code: ErrParamDuplicate, Subject: subject,
					Message: fmt.Sprintf("field %q is declared twice", f.Name)}
			}
			fields[f.Name] = true
		}
	}
	return nil
}

func checkEvents(events []ir.Event) error {
	names := make(map[string]bool)
	bits := make(map[uint]string)
	for _, e := range events {
		subject := fmt.Sprintf("event %q", e.Name)
		if e.Bit >= 64 {
			return &CheckError{Code: ErrEventBit, Subject: subject,
				Message: fmt.Sprintf("bit %d does not fit in a 64-bit mask", e.Bit)}
		}
		if names[e.Name] {
			return &CheckError{Code: ErrEventDuplicate, Subject: subject,
				Message: "event is declared twice"}
		}
		if owner, dup := bits[e.Bit]; dup {
			return &CheckError{Code: ErrEventDuplicate, Subject: subject,
				Message: fmt.Sprintf("bit %d is already used by event %q", e.Bit, owner)}
		}
		names[e.Name] = true
		bits[e.Bit] = e.Name
	}
	return nil
}
