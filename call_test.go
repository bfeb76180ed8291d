package empower

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/suite"
)

type CallTestSuite struct {
	suite.Suite
}

func (suite *CallTestSuite) TestBindArgs() {
	suite.Run("PadsMissing", func() {
		fun := func(a int, b string) {}
		in, err := bindArgs(reflect.TypeOf(fun), []any{1})
		suite.Require().NoError(err)
		suite.Len(in, 2)
		suite.Equal("", in[1].Interface())
	})

	suite.Run("Nil", func() {
		fun := func(a error, b *int) {}
		in, err := bindArgs(reflect.TypeOf(fun), []any{nil, nil})
		suite.Require().NoError(err)
		suite.True(in[0].IsNil())
		suite.True(in[1].IsNil())
	})

	suite.Run("Variadic", func() {
		fun := func(a int, rest ...string) {}
		in, err := bindArgs(reflect.TypeOf(fun), []any{1, "x", "y"})
		suite.Require().NoError(err)
		suite.Len(in, 3)
		in, err = bindArgs(reflect.TypeOf(fun), nil)
		suite.Require().NoError(err)
		suite.Len(in, 1)
	})

	suite.Run("TooMany", func() {
		fun := func(a int) {}
		_, err := bindArgs(reflect.TypeOf(fun), []any{1, 2})
		var ae *ArgumentError
		suite.Require().True(errors.As(err, &ae))
		suite.Equal(-1, ae.Index)
	})

	suite.Run("NotAssignable", func() {
		fun := func(a int) {}
		_, err := bindArgs(reflect.TypeOf(fun), []any{"1"})
		var ae *ArgumentError
		suite.Require().True(errors.As(err, &ae))
		suite.Equal(0, ae.Index)
		suite.Contains(ae.Error(), "string is not assignable to int")
	})
}

func (suite *CallTestSuite) TestMergeOutput() {
	call := func(fun any, args ...any) Outcome {
		return invoke(reflect.ValueOf(fun), args)
	}
	suite.Equal(Success{}, call(func() {}))
	suite.Equal(Success{}, call(func() error { return nil }))
	suite.Equal(Success{1}, call(func() (int, error) { return 1, nil }))
	suite.Equal(Success{[]any{1, "a"}}, call(func() (int, string) { return 1, "a" }))
	boom := errors.New("boom")
	suite.Equal(Failure{boom}, call(func() (int, error) { return 0, boom }))
	suite.Equal(Failure{boom}, call(func() { panic(boom) }))
	suite.Equal(Failure{&PanicError{42}}, call(func() { panic(42) }))
	var typed *AssertionError
	suite.Equal(Success{}, call(func() *AssertionError { return typed }))
}

func (suite *CallTestSuite) TestForward() {
	ret, err := forward(reflect.ValueOf(func(a, b int) int { return a + b }), []any{1, 2})
	suite.NoError(err)
	suite.Equal(3, ret)
	_, err = forwarder(reflect.ValueOf(func() error { return errors.New("x") }))()
	suite.EqualError(err, "x")
	suite.Panics(func() {
		_, _ = forward(reflect.ValueOf(func() { panic("y") }), nil)
	})
}

func TestCallTestSuite(t *testing.T) {
	suite.Run(t, new(CallTestSuite))
}
