package emit

import "fmt"

// EmitError reports an IR shape a backend cannot express, or a test
// command it cannot replay. It is fatal to the run: Visit returns it and
// nothing for the target is written.
type EmitError struct {
	Target  Target `json:"target"`
	Action  string `json:"action,omitempty"`
	Message string `json:"message"`
}

func (e *EmitError) Error() string {
	if e.Action == "" {
		return fmt.Sprintf("emit %s: %s", e.Target, e.Message)
	}
	return fmt.Sprintf("emit %s: action %q: %s", e.Target, e.Action, e.Message)
}

func emitErr(t Target, action, format string, args ...any) *EmitError {
	return &EmitError{Target: t, Action: action, Message: fmt.Sprintf(format, args...)}
}
