// Package empower enhances assertion functions and objects so
// that their calls report captured argument values and
// expression context to configurable handlers, without
// changing whether an assertion passes or fails.
package empower

import (
	"fmt"
	"maps"
	"reflect"
)

// TargetKind is the shape of an assertion being empowered.
type TargetKind uint8

const (
	Function TargetKind = iota
	Object
)

func (k TargetKind) String() string {
	switch k {
	case Function: return "Function"
	case Object: return "Object"
	default:
		return fmt.Sprintf("TargetKind(%d)", k)
	}
}

// Empower enhances an assertion function or object.
// The target must be a non-nil func, a map with string keys,
// a struct or a non-nil pointer to a struct.  Options are
// merged over DefaultOptions in order.  Destructive requires
// a map or a pointer to a struct.
// A target that is already empowered is returned as is.
func Empower(
	target  any,
	options ...Options,
) (*Assertion, error) {
	if a, ok := target.(*Assertion); ok && a != nil {
		return a, nil
	}
	kind, v, err := kindOf(target)
	if err != nil {
		return nil, err
	}
	if capt, expr, ok := capabilities(v); ok {
		return &Assertion{
			kind:    kind,
			target:  v,
			members: collectMembers(v),
			capt:    capt,
			expr:    expr,
		}, nil
	}
	var enhanced *Assertion
	switch kind {
	case Function:
		enhanced, err = empowerFunction(v, options)
	case Object:
		enhanced, err = empowerObject(v, options)
	default:
		panic("cannot be here")
	}
	if err != nil {
		return nil, err
	}
	enhanced.attach(NewRecorder())
	return enhanced, nil
}

func empowerObject(
	assertObject reflect.Value,
	options      []Options,
) (*Assertion, error) {
	config, err := MergeOptions(options...)
	if err != nil {
		return nil, err
	}
	// struct values are copies and cannot be changed in place
	if config.Destructive && assertObject.Kind() == reflect.Struct {
		return nil, &TargetError{assertObject.Interface(), ErrUnsupportedConfiguration}
	}
	target := assertObject
	if !config.Destructive {
		target = shallowCopy(assertObject)
	}
	receiver := target
	if receiver.Kind() == reflect.Struct {
		receiver = receiver.Addr()
	}
	d, err := newDecorator(receiver, Object, &config)
	if err != nil {
		return nil, err
	}
	enhancement := d.enhancement()
	members     := collectMembers(receiver)
	maps.Copy(members, enhancement)
	if target.Kind() == reflect.Map {
		for name, member := range enhancement {
			if !setMember(target, name, reflect.ValueOf(member)) {
				config.Logger.V(1).Info("member not replaced", "member", name,
					"type", target.Type().Elem())
			}
		}
	}
	config.Logger.V(1).Info("empowered", "kind", Object,
		"destructive", config.Destructive, "enhanced", len(enhancement))
	return &Assertion{
		kind:    Object,
		target:  target,
		members: members,
	}, nil
}

func empowerFunction(
	assertFunction reflect.Value,
	options        []Options,
) (*Assertion, error) {
	config, err := MergeOptions(options...)
	if err != nil {
		return nil, err
	}
	if config.Destructive {
		return nil, &TargetError{assertFunction.Interface(), ErrUnsupportedConfiguration}
	}
	d, err := newDecorator(assertFunction, Function, &config)
	if err != nil {
		return nil, err
	}
	call := d.container()
	if call == nil {
		call = forwarder(assertFunction)
	}
	enhancement := d.enhancement()
	members     := collectMembers(assertFunction)
	maps.Copy(members, enhancement)
	config.Logger.V(1).Info("empowered", "kind", Function,
		"enhanced", len(enhancement))
	return &Assertion{
		kind:    Function,
		target:  assertFunction,
		call:    call,
		members: members,
	}, nil
}

// kindOf resolves the TargetKind of target.
func kindOf(target any) (TargetKind, reflect.Value, error) {
	v := reflect.ValueOf(target)
	switch v.Kind() {
	case reflect.Func:
		if !v.IsNil() {
			return Function, v, nil
		}
	case reflect.Map:
		if !v.IsNil() && v.Type().Key().Kind() == reflect.String {
			return Object, v, nil
		}
	case reflect.Ptr:
		if !v.IsNil() && v.Elem().Kind() == reflect.Struct {
			return Object, v, nil
		}
	case reflect.Struct:
		return Object, v, nil
	}
	return 0, v, &TargetError{target, ErrInvalidArgument}
}
