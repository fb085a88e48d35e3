package dispatch

import (
	"errors"
	"fmt"
)

// ErrEmptyConfiguration is returned when the configuration resource has no
// non-blank line to declare an entry point.
var ErrEmptyConfiguration = errors.New("configuration resource declares no entry point")

// ResolutionError reports a declared entry point that no registration
// matches.
type ResolutionError struct {
	Name string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("entry point '%s' is not registered", e.Name)
}

// ExecutionError wraps a failure inside the entry point itself, whether a
// returned error or a recovered panic. It is raised exactly once, at the
// dispatch boundary.
type ExecutionError struct {
	Name string
	Err  error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("entry point '%s' failed: %v", e.Name, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
