package actions

import "fmt"

// ValidationError is returned by handlers when an action parameter is
// missing or has the wrong type.
// The input does not change between executions, a validated action fails on
// every retry until the attempt limit is reached.
type ValidationError struct {
	msg string
}

func newValidationError(format string, a ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, a...)}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.msg
}

// PreconditionError is returned by handlers when the state of the pull
// request or repository does not allow the operation, e.g. the PR is not
// mergeable or a required check failed.
// The condition can become true later, retrying is meaningful.
type PreconditionError struct {
	msg string
}

func newPreconditionError(format string, a ...any) *PreconditionError {
	return &PreconditionError{msg: fmt.Sprintf(format, a...)}
}

func (e *PreconditionError) Error() string {
	return "precondition failed: " + e.msg
}
