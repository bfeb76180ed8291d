package empower

import (
	"errors"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	play "github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
	"github.com/hashicorp/go-multierror"
)

// optionsValidator validates Options with english messages.
type optionsValidator struct {
	validate   *play.Validate
	translator ut.Translator
}

var (
	validatorOnce sync.Once
	validator     optionsValidator
)

func validateOptions(options *Options) error {
	validatorOnce.Do(func() {
		english  := en.New()
		trans, _ := ut.New(english, english).GetTranslator("en")
		validate := play.New()
		if err := entrans.RegisterDefaultTranslations(validate, trans); err != nil {
			trans = nil
		}
		validator = optionsValidator{validate, trans}
	})
	return validator.Validate(options)
}

func (v optionsValidator) Validate(options *Options) error {
	err := v.validate.Struct(options)
	if err == nil {
		return nil
	}
	var fieldErrors play.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return &OptionsError{err}
	}
	var invalid error
	for _, fe := range fieldErrors {
		if v.translator != nil {
			invalid = multierror.Append(invalid, errors.New(fe.Translate(v.translator)))
		} else {
			invalid = multierror.Append(invalid, fe)
		}
	}
	return &OptionsError{invalid}
}
