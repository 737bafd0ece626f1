package postproc

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrKernelMustBeSet = errors.New("kernel must be set")
	ErrBodyMustBeSet   = errors.New("body must be set")
	ErrDuplicateStep   = errors.New("duplicate step name")
)

// MissingParameterError reports a required parameter of a triggered step that
// the pool did not supply.
type MissingParameterError struct {
	Step  string
	Param string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("step %s: required parameter %q is not set", e.Step, e.Param)
}

// InvalidParameterError reports a supplied parameter value that violates a
// documented constraint.
type InvalidParameterError struct {
	Step   string
	Param  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("step %s: parameter %q: %s", e.Step, e.Param, e.Reason)
}

// GeometryError reports a kernel operation that failed to produce a valid
// solid. It wraps the kernel's own error.
type GeometryError struct {
	Step string
	Op   string
	Err  error
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("step %s: %s failed: %v", e.Step, e.Op, e.Err)
}

func (e *GeometryError) Unwrap() error { return e.Err }
