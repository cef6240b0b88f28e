package fakeweb

import (
	"errors"
	"fmt"
)

// ErrDisposed is returned by an Output, or a Response writing to one, after it has been closed.
var ErrDisposed = errors.New("cannot access a closed output")

// ErrHandlerStackEmpty is returned by Context.RestoreCurrentHandler when no handler was pushed.
var ErrHandlerStackEmpty = errors.New("handler stack is empty")

// ArgumentError reports an invalid argument passed to a constructor or method. Nil is true when
// the argument was missing (nil or empty) rather than malformed.
type ArgumentError struct {
	Param   string
	Message string
	Nil     bool
}

func (e *ArgumentError) Error() string {
	if e.Nil {
		return fmt.Sprintf("value cannot be null or empty (parameter %q)", e.Param)
	}
	return fmt.Sprintf("%s (parameter %q)", e.Message, e.Param)
}

func nilArgument(param string) error {
	return &ArgumentError{Param: param, Nil: true}
}

func invalidArgument(param, message string) error {
	return &ArgumentError{Param: param, Message: message}
}
