package empower

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/miruken-go/empower/internal"
)

type (
	// Callable is the uniform signature of an enhanced assertion.
	Callable func(args ...any) (any, error)

	// Assertion is an empowered assertion function or object.
	// It carries the original members, the enhanced members
	// and the capture capability used by instrumented callers.
	Assertion struct {
		kind    TargetKind
		target  reflect.Value
		call    Callable
		members map[string]Callable
		capt    CaptureFunc
		expr    ExprFunc
	}
)

// Capability keys attached to empowered map targets.
const (
	CaptKey = "_capt"
	ExprKey = "_expr"
)

func (a *Assertion) Kind() TargetKind {
	return a.kind
}

// Target returns the empowered target.  It is the original
// object when destructive, otherwise a shallow copy.
func (a *Assertion) Target() any {
	return a.target.Interface()
}

// Call invokes an empowered function.
func (a *Assertion) Call(args ...any) (any, error) {
	if a.call == nil {
		return nil, ErrNotCallable
	}
	return a.call(args...)
}

// Method returns the member callable by name.
func (a *Assertion) Method(name string) (Callable, bool) {
	for _, candidate := range memberNames(name) {
		if m, ok := a.members[candidate]; ok {
			return m, true
		}
	}
	return nil, false
}

// Invoke calls the named member.
func (a *Assertion) Invoke(name string, args ...any) (any, error) {
	if m, ok := a.Method(name); ok {
		return m(args...)
	}
	return nil, fmt.Errorf("%w: %s", ErrMemberNotFound, name)
}

// Members returns the sorted member names.
func (a *Assertion) Members() []string {
	names := make([]string, 0, len(a.members))
	for name := range a.members {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Capt records a sub-expression value.
func (a *Assertion) Capt(value any, path string) any {
	return a.capt(value, path)
}

// Expr completes a captured argument expression.
func (a *Assertion) Expr(value any, source Source) *Captured {
	return a.expr(value, source)
}

// IsEmpowered reports whether target already carries
// the capture capability.
func IsEmpowered(target any) bool {
	if a, ok := target.(*Assertion); ok {
		return a != nil
	}
	_, _, ok := capabilities(reflect.ValueOf(target))
	return ok
}

// attach installs the capture capability on a.
// Map targets also receive it as entries.
func (a *Assertion) attach(recorder *Recorder) {
	a.capt = recorder.Capt
	a.expr = recorder.Expr
	if a.target.Kind() == reflect.Map {
		setMember(a.target, CaptKey, reflect.ValueOf(a.capt))
		setMember(a.target, ExprKey, reflect.ValueOf(a.expr))
	}
}

// capabilities extracts the capture capability from a map target.
func capabilities(v reflect.Value) (CaptureFunc, ExprFunc, bool) {
	if v.Kind() != reflect.Map || v.IsNil() ||
		v.Type().Key().Kind() != reflect.String {
		return nil, nil, false
	}
	key  := v.Type().Key()
	capt := internal.Indirect(v.MapIndex(reflect.ValueOf(CaptKey).Convert(key)))
	expr := internal.Indirect(v.MapIndex(reflect.ValueOf(ExprKey).Convert(key)))
	if !capt.IsValid() || !expr.IsValid() {
		return nil, nil, false
	}
	c, ok1 := capt.Interface().(CaptureFunc)
	e, ok2 := expr.Interface().(ExprFunc)
	if !ok1 || !ok2 || c == nil || e == nil {
		return nil, nil, false
	}
	return c, e, true
}

// collectMembers returns undecorated callables for every
// member of receiver: map entries holding functions, or the
// methods and exported func fields of any other receiver.
func collectMembers(receiver reflect.Value) map[string]Callable {
	members := make(map[string]Callable)
	if receiver.Kind() == reflect.Map {
		iter := receiver.MapRange()
		for iter.Next() {
			name := iter.Key().String()
			if name == CaptKey || name == ExprKey {
				continue
			}
			fun := internal.Indirect(iter.Value())
			if fun.Kind() == reflect.Func && !internal.IsNil(fun) {
				members[name] = forwarder(fun)
			}
		}
		return members
	}
	typ := receiver.Type()
	for i := 0; i < typ.NumMethod(); i++ {
		members[typ.Method(i).Name] = forwarder(receiver.Method(i))
	}
	if s := reflect.Indirect(receiver); s.Kind() == reflect.Struct {
		for _, field := range reflect.VisibleFields(s.Type()) {
			if _, ok := members[field.Name]; ok || field.Anonymous {
				continue
			}
			if fun := funcField(receiver, field.Name); fun.IsValid() {
				members[field.Name] = forwarder(fun)
			}
		}
	}
	return members
}

// setMember stores value in a map target when the element
// type can hold it.  It reports whether the entry was set.
func setMember(
	target reflect.Value,
	name   string,
	value  reflect.Value,
) bool {
	elemType := target.Type().Elem()
	if !value.Type().AssignableTo(elemType) {
		return false
	}
	target.SetMapIndex(reflect.ValueOf(name).Convert(target.Type().Key()), value)
	return true
}

// shallowCopy copies an object target, preserving its type.
func shallowCopy(target reflect.Value) reflect.Value {
	switch target.Kind() {
	case reflect.Map:
		c := reflect.MakeMapWithSize(target.Type(), target.Len())
		iter := target.MapRange()
		for iter.Next() {
			c.SetMapIndex(iter.Key(), iter.Value())
		}
		return c
	case reflect.Ptr:
		c := reflect.New(target.Type().Elem())
		c.Elem().Set(target.Elem())
		return c
	case reflect.Struct:
		c := reflect.New(target.Type()).Elem()
		c.Set(target)
		return c
	default:
		panic(fmt.Sprintf("cannot copy %v", target.Type()))
	}
}
