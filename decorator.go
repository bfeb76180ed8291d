package empower

import (
	"reflect"
	"strings"

	"github.com/go-logr/logr"
	"github.com/miruken-go/empower/internal"
	"github.com/miruken-go/empower/internal/slices"
	"github.com/miruken-go/empower/signature"
)

type (
	// decorator builds the enhanced callables of a receiver
	// from the configured call patterns.
	decorator struct {
		receiver  reflect.Value
		kind      TargetKind
		onError   ErrorHandler
		onSuccess SuccessHandler
		logger    logr.Logger
		matchers  []signature.Matcher
	}

	// callSpec binds a callable to the number of leading
	// arguments that may be captured.
	callSpec struct {
		member           string
		thisObj          reflect.Value
		fun              reflect.Value
		numArgsToCapture int
	}

	// invocation is a single call of a decorated callable.
	invocation struct {
		callSpec
		values  []any
		message []any
	}
)

func newDecorator(
	receiver reflect.Value,
	kind     TargetKind,
	options  *Options,
) (*decorator, error) {
	matchers, err := signature.ParseAll(options.Patterns)
	if err != nil {
		return nil, &PatternError{err}
	}
	return &decorator{
		receiver:  receiver,
		kind:      kind,
		onError:   options.OnError,
		onSuccess: options.OnSuccess,
		logger:    options.Logger.WithName("decorator"),
		matchers:  matchers,
	}, nil
}

// enhancement decorates the members named by method call patterns.
// A later pattern for the same member replaces an earlier one.
func (d *decorator) enhancement() map[string]Callable {
	container := make(map[string]Callable)
	for _, matcher := range slices.Filter(d.matchers, signature.Matcher.IsMethodCall) {
		name, fun, ok := d.method(matcher.Callee.Member)
		if !ok {
			d.logger.V(1).Info("member not found",
				"member", matcher.Callee.Member, "pattern", matcher.Pattern)
			continue
		}
		container[name] = decorate(callSpec{
			member:           name,
			thisObj:          d.receiver,
			fun:              fun,
			numArgsToCapture: NumArgsToCapture(matcher),
		}, d)
		d.logger.V(1).Info("decorated", "member", name, "pattern", matcher.Pattern)
	}
	return container
}

// container decorates the receiver itself when exactly one
// function call pattern applies.  Otherwise, it returns nil.
func (d *decorator) container() Callable {
	if d.kind != Function {
		return nil
	}
	candidates := slices.Filter(d.matchers, signature.Matcher.IsFunctionCall)
	if len(candidates) != 1 {
		d.logger.V(1).Info("function left undecorated", "candidates", len(candidates))
		return nil
	}
	return decorate(callSpec{
		fun:              d.receiver,
		numArgsToCapture: NumArgsToCapture(candidates[0]),
	}, d)
}

// concreteAssert runs a captured invocation.
func (d *decorator) concreteAssert(
	inv invocation,
	ctx *Context,
) (any, error) {
	args := append(append([]any{}, inv.values...), inv.message...)
	switch o := invoke(inv.fun, args).(type) {
	case Failure:
		return d.onError(ErrorEvent{
			Member:          inv.member,
			Error:           o.Err,
			OriginalMessage: inv.message,
			Context:         ctx,
		})
	case Success:
		return d.onSuccess(SuccessEvent{
			Member:          inv.member,
			ReturnValue:     o.Value,
			OriginalMessage: inv.message,
			Context:         ctx,
		})
	default:
		panic("cannot be here")
	}
}

// fallbackAssert runs an invocation without a captured context.
func (d *decorator) fallbackAssert(inv invocation) (any, error) {
	args := append(append([]any{}, inv.values...), inv.message...)
	switch o := invoke(inv.fun, args).(type) {
	case Failure:
		return d.onError(ErrorEvent{
			Member:          inv.member,
			Error:           o.Err,
			OriginalMessage: inv.message,
			Args:            args,
		})
	case Success:
		return d.onSuccess(SuccessEvent{
			Member:          inv.member,
			ReturnValue:     o.Value,
			OriginalMessage: inv.message,
			Args:            args,
		})
	default:
		panic("cannot be here")
	}
}

// method resolves a callable member of the receiver.
// The name is tried as written and then in its exported form.
func (d *decorator) method(
	name string,
) (string, reflect.Value, bool) {
	for _, candidate := range memberNames(name) {
		if fun, ok := lookupMember(d.receiver, candidate); ok {
			return candidate, fun, true
		}
	}
	return "", reflect.Value{}, false
}

// NumArgsToCapture is the number of leading arguments of matcher
// that may be captured.  A trailing optional "message" is excluded.
func NumArgsToCapture(matcher signature.Matcher) int {
	n := len(matcher.Args)
	if n > 0 {
		if last := matcher.Args[n-1]; last.Name == "message" && last.Optional {
			n--
		}
	}
	return n
}

func memberNames(name string) []string {
	if name == "" {
		return nil
	}
	exported := strings.ToUpper(name[:1]) + name[1:]
	if exported == name {
		return []string{name}
	}
	return []string{name, exported}
}

func lookupMember(
	receiver reflect.Value,
	name     string,
) (reflect.Value, bool) {
	if receiver.Kind() == reflect.Map {
		key := reflect.ValueOf(name).Convert(receiver.Type().Key())
		fun := internal.Indirect(receiver.MapIndex(key))
		if fun.Kind() == reflect.Func && !internal.IsNil(fun) {
			return fun, true
		}
		return reflect.Value{}, false
	}
	if fun := receiver.MethodByName(name); fun.IsValid() {
		return fun, true
	}
	if fun := funcField(receiver, name); fun.IsValid() {
		return fun, true
	}
	return reflect.Value{}, false
}

// funcField returns the value of the exported func field name
// of a struct receiver, or the zero Value if there is none.
func funcField(
	receiver reflect.Value,
	name     string,
) reflect.Value {
	s := reflect.Indirect(receiver)
	if s.Kind() != reflect.Struct {
		return reflect.Value{}
	}
	field, ok := s.Type().FieldByName(name)
	if !ok || !field.IsExported() || field.Type.Kind() != reflect.Func {
		return reflect.Value{}
	}
	fun, err := s.FieldByIndexErr(field.Index)
	if err != nil || internal.IsNil(fun) {
		return reflect.Value{}
	}
	return fun
}
