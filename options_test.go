package empower

import (
	"errors"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/suite"
)

type OptionsTestSuite struct {
	suite.Suite
}

func (suite *OptionsTestSuite) TestDefaultOptions() {
	options := DefaultOptions()
	suite.Equal(DefaultPatterns, options.Patterns)
	suite.False(options.Destructive)
	suite.NotNil(options.OnError)
	suite.NotNil(options.OnSuccess)

	options.Patterns[0] = "changed()"
	suite.Equal("assert(value, [message])", DefaultPatterns[0])
}

func (suite *OptionsTestSuite) TestMergeOptions() {
	suite.Run("Defaults", func() {
		options, err := MergeOptions()
		suite.Require().NoError(err)
		suite.Equal(DefaultPatterns, options.Patterns)
	})

	suite.Run("Overrides", func() {
		onSuccess := func(SuccessEvent) (any, error) { return "ok", nil }
		options, err := MergeOptions(Options{
			Patterns:    []string{"check(value)"},
			OnSuccess:   onSuccess,
			Destructive: true,
		})
		suite.Require().NoError(err)
		suite.Equal([]string{"check(value)"}, options.Patterns)
		suite.True(options.Destructive)
		ret, _ := options.OnSuccess(SuccessEvent{})
		suite.Equal("ok", ret)
		_, err = options.OnError(ErrorEvent{Error: errors.New("kept")})
		suite.EqualError(err, "kept")
	})

	suite.Run("InOrder", func() {
		options, err := MergeOptions(
			Options{Patterns: []string{"first(value)"}},
			Options{Destructive: true},
			Options{Patterns: []string{"second(value)"}},
		)
		suite.Require().NoError(err)
		suite.Equal([]string{"second(value)"}, options.Patterns)
		suite.True(options.Destructive)
	})

	suite.Run("ZeroValuesDoNotOverride", func() {
		options, err := MergeOptions(
			Options{Patterns: []string{"check(value)"}, Destructive: true},
			Options{Patterns: []string{}, Destructive: false},
		)
		suite.Require().NoError(err)
		suite.Equal([]string{"check(value)"}, options.Patterns)
		suite.True(options.Destructive)

		reset := options
		reset.Destructive = false
		options, err = MergeOptions(reset)
		suite.Require().NoError(err)
		suite.False(options.Destructive)
	})

	suite.Run("Logger", func() {
		var logged bool
		logger := funcr.New(func(_, _ string) { logged = true }, funcr.Options{})
		options, err := MergeOptions(Options{Logger: logger}, Options{})
		suite.Require().NoError(err)
		options.Logger.Info("hello")
		suite.True(logged)
	})

	suite.Run("Invalid", func() {
		_, err := MergeOptions(Options{Patterns: []string{""}})
		var oe *OptionsError
		suite.Require().True(errors.As(err, &oe))
		suite.Contains(err.Error(), "Patterns[0] is a required field")
	})
}

func (suite *OptionsTestSuite) TestPassError() {
	ctx := &Context{Source: Source{Content: "assert(x)"}}
	suite.Run("AttachesContext", func() {
		ae := &AssertionError{Message: "failed"}
		ret, err := PassError(ErrorEvent{Error: ae, Context: ctx})
		suite.Nil(ret)
		suite.Same(ae, err)
		suite.Same(ctx, ae.Context)
	})

	suite.Run("WrappedAssertionError", func() {
		ae := &AssertionError{}
		_, _ = PassError(ErrorEvent{Error: errors.Join(errors.New("x"), ae), Context: ctx})
		suite.Same(ctx, ae.Context)
	})

	suite.Run("WithoutContext", func() {
		ae := &AssertionError{}
		_, err := PassError(ErrorEvent{Error: ae})
		suite.Same(ae, err)
		suite.Nil(ae.Context)
	})
}

func (suite *OptionsTestSuite) TestAssertionErrorMessage() {
	suite.EqualError(&AssertionError{Message: "m"}, "m")
	suite.EqualError(&AssertionError{Actual: 1, Expected: 2, Operator: "=="}, "1 == 2")
	suite.EqualError(&AssertionError{}, "assertion failed")
}

func TestOptionsTestSuite(t *testing.T) {
	suite.Run(t, new(OptionsTestSuite))
}
