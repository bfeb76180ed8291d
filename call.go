package empower

import (
	"fmt"
	"reflect"

	"github.com/miruken-go/empower/internal"
)

// invoke calls fun with args, converting a panic or a trailing
// non-nil error into a Failure.
func invoke(
	fun  reflect.Value,
	args []any,
) (outcome Outcome) {
	in, err := bindArgs(fun.Type(), args)
	if err != nil {
		return Failure{err}
	}
	defer func() {
		if r := recover(); r != nil {
			if err, ok := r.(error); ok {
				outcome = Failure{err}
			} else {
				outcome = Failure{&PanicError{r}}
			}
		}
	}()
	return mergeOutput(fun.Call(in))
}

// forward calls fun with args as an undecorated call would.
// Panics are not recovered.
func forward(
	fun  reflect.Value,
	args []any,
) (any, error) {
	in, err := bindArgs(fun.Type(), args)
	if err != nil {
		return nil, err
	}
	switch o := mergeOutput(fun.Call(in)).(type) {
	case Failure:
		return nil, o.Err
	case Success:
		return o.Value, nil
	default:
		panic(fmt.Sprintf("invalid outcome: %+v", o))
	}
}

// forwarder adapts fun to a Callable.
func forwarder(fun reflect.Value) Callable {
	return func(args ...any) (any, error) {
		return forward(fun, args)
	}
}

// bindArgs converts args to the input values of typ.
// Missing trailing arguments receive zero values.
func bindArgs(
	typ  reflect.Type,
	args []any,
) ([]reflect.Value, error) {
	numIn    := typ.NumIn()
	variadic := typ.IsVariadic()
	fixed    := numIn
	if variadic {
		fixed--
	}
	if !variadic && len(args) > numIn {
		return nil, &ArgumentError{typ, -1,
			fmt.Sprintf("expected %d arguments, got %d", numIn, len(args))}
	}
	count := len(args)
	if count < fixed {
		count = fixed
	}
	in := make([]reflect.Value, count)
	for i := range in {
		var paramType reflect.Type
		if i >= fixed {
			paramType = typ.In(fixed).Elem()
		} else {
			paramType = typ.In(i)
		}
		if i >= len(args) || args[i] == nil {
			in[i] = reflect.Zero(paramType)
			continue
		}
		arg := reflect.ValueOf(args[i])
		if !arg.Type().AssignableTo(paramType) {
			return nil, &ArgumentError{typ, i,
				fmt.Sprintf("%v is not assignable to %v", arg.Type(), paramType)}
		}
		in[i] = arg
	}
	return in, nil
}

// mergeOutput analyzes the function return values.
// If the last output is a non-nil error it is a Failure.
// Otherwise, the remaining outputs are the Success value:
// nil if none, the value if one, or a []any if many.
func mergeOutput(out []reflect.Value) Outcome {
	if n := len(out); n > 0 {
		last := out[n-1]
		if last.Type().Implements(internal.ErrorType) &&
			(last.Kind() == reflect.Interface || last.Kind() == reflect.Ptr) {
			if !last.IsNil() {
				return Failure{last.Interface().(error)}
			}
			out = out[:n-1]
		}
	}
	switch len(out) {
	case 0:
		return Success{}
	case 1:
		return Success{out[0].Interface()}
	default:
		values := make([]any, len(out))
		for i, o := range out {
			values[i] = o.Interface()
		}
		return Success{values}
	}
}
