package empower

import (
	"errors"
	"reflect"

	"github.com/go-logr/logr"
	"github.com/imdario/mergo"
)

type (
	// SuccessEvent describes an assertion call that returned normally.
	// Context is set when the call was captured, otherwise Args
	// holds the raw arguments.
	SuccessEvent struct {
		Member          string
		ReturnValue     any
		OriginalMessage []any
		Context         *Context
		Args            []any
	}

	// ErrorEvent describes an assertion call that failed.
	ErrorEvent struct {
		Member          string
		Error           error
		OriginalMessage []any
		Context         *Context
		Args            []any
	}

	// SuccessHandler decides the result of a successful call.
	SuccessHandler func(event SuccessEvent) (any, error)

	// ErrorHandler decides the result of a failed call.
	ErrorHandler func(event ErrorEvent) (any, error)

	// Options control how an assertion is empowered.
	Options struct {
		Patterns    []string       `validate:"required,dive,required"`
		OnError     ErrorHandler   `validate:"required"`
		OnSuccess   SuccessHandler `validate:"required"`
		Destructive bool
		Logger      logr.Logger
	}

	// optionsTransformer only merges loggers with a sink.
	optionsTransformer struct{}
)

// DefaultPatterns are the call patterns of the standard assert API.
var DefaultPatterns = []string{
	"assert(value, [message])",
	"assert.ok(value, [message])",
	"assert.equal(actual, expected, [message])",
	"assert.notEqual(actual, expected, [message])",
	"assert.strictEqual(actual, expected, [message])",
	"assert.notStrictEqual(actual, expected, [message])",
	"assert.deepEqual(actual, expected, [message])",
	"assert.notDeepEqual(actual, expected, [message])",
	"assert.deepStrictEqual(actual, expected, [message])",
	"assert.notDeepStrictEqual(actual, expected, [message])",
}

// DefaultOptions returns the baseline Options.
func DefaultOptions() Options {
	return Options{
		Patterns:    append([]string(nil), DefaultPatterns...),
		OnError:     PassError,
		OnSuccess:   PassReturn,
		Destructive: false,
		Logger:      logr.Discard(),
	}
}

// PassError returns the failure unchanged, attaching the
// captured context to an *AssertionError.
func PassError(event ErrorEvent) (any, error) {
	var ae *AssertionError
	if event.Context != nil && errors.As(event.Error, &ae) {
		ae.Context = event.Context
	}
	return nil, event.Error
}

// PassReturn returns the value returned by the assertion.
func PassReturn(event SuccessEvent) (any, error) {
	return event.ReturnValue, nil
}

// MergeOptions merges options over the defaults in order
// and validates the result.  Only non-zero fields override,
// so a later Destructive false or empty Patterns leaves the
// earlier value in place.  Start from DefaultOptions and
// assign the fields directly to turn them off.
func MergeOptions(options ...Options) (Options, error) {
	merged := DefaultOptions()
	for _, o := range options {
		if err := mergo.Merge(&merged, o,
			mergo.WithOverride,
			mergo.WithTransformers(optionsTransformer{}),
		); err != nil {
			return merged, &OptionsError{err}
		}
	}
	if err := validateOptions(&merged); err != nil {
		return merged, err
	}
	return merged, nil
}

func (optionsTransformer) Transformer(
	typ reflect.Type,
) func(dst, src reflect.Value) error {
	if typ != loggerType {
		return nil
	}
	return func(dst, src reflect.Value) error {
		if logger, ok := src.Interface().(logr.Logger); ok &&
			logger.GetSink() != nil && dst.CanSet() {
			dst.Set(src)
		}
		return nil
	}
}

var loggerType = reflect.TypeFor[logr.Logger]()
