package empower

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrInvalidArgument          = errors.New("empower argument should be a function or object")
	ErrUnsupportedConfiguration = errors.New("cannot use destructive:true with a function or struct value")
	ErrNotCallable              = errors.New("assertion is not callable")
	ErrMemberNotFound           = errors.New("member not found")
)

type (
	// TargetError reports a target that cannot be empowered.
	TargetError struct {
		Target any
		Reason error
	}

	// PatternError reports call patterns that could not be parsed.
	PatternError struct {
		Reason error
	}

	// OptionsError reports options that failed validation.
	OptionsError struct {
		Reason error
	}

	// ArgumentError reports arguments that cannot be bound
	// to the parameters of an assertion.
	ArgumentError struct {
		Func   reflect.Type
		Index  int
		Reason string
	}

	// PanicError carries a recovered panic value that is not an error.
	PanicError struct {
		Value any
	}

	// AssertionError is the failure an assertion may return.
	// Context is filled in by the default error handler when
	// the failing call was captured.
	AssertionError struct {
		Message  string
		Actual   any
		Expected any
		Operator string
		Context  *Context
	}
)


// TargetError

func (e *TargetError) Error() string {
	return fmt.Sprintf("%v: %T", e.Reason, e.Target)
}

func (e *TargetError) Unwrap() error {
	return e.Reason
}


// PatternError

func (e *PatternError) Error() string {
	return fmt.Sprintf("patterns: %v", e.Reason)
}

func (e *PatternError) Unwrap() error {
	return e.Reason
}


// OptionsError

func (e *OptionsError) Error() string {
	return fmt.Sprintf("options: %v", e.Reason)
}

func (e *OptionsError) Unwrap() error {
	return e.Reason
}


// ArgumentError

func (e *ArgumentError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("cannot call %v: %s", e.Func, e.Reason)
	}
	return fmt.Sprintf("cannot call %v: argument %d %s", e.Func, e.Index, e.Reason)
}


// PanicError

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}


// AssertionError

func (e *AssertionError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Operator != "" {
		return fmt.Sprintf("%v %s %v", e.Actual, e.Operator, e.Expected)
	}
	return "assertion failed"
}
