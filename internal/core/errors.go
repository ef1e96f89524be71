package core

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes a failed gating cycle
type ErrorKind string

const (
	KindInputMissing  ErrorKind = "InputMissingError"
	KindModelInit     ErrorKind = "ModelInitError"
	KindConfiguration ErrorKind = "ConfigurationError"
)

// User-facing messages of each gate
const (
	MsgMissingInput     = "missing user input"
	MsgModelInitFailed  = "failed to initialize model"
	MsgModelUnavailable = "model could not be initialized"
	MsgNoUsecase        = "no use case selected"
)

// GateError is reported to the user when a gate fails. Error() exposes only the
// kind and message; the cause is kept for logs and errors.Is.
type GateError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func newGateError(kind ErrorKind, message string, cause error) *GateError {
	return &GateError{Kind: kind, Message: message, Err: cause}
}

// Error implements the error interface.
func (e *GateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *GateError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a gate error, or "" for any other error
func KindOf(err error) ErrorKind {
	var ge *GateError
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return ""
}

// IsKind reports whether err is a gate error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
