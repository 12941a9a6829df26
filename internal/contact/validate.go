package contact

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// emailPattern accepts anything shaped like a@b.c. The excluded class matches
// ECMAScript \s so addresses the site's own form accepts are accepted here too.
var emailPattern = regexp.MustCompile(`^[^\t\n\v\f\r\p{Zs}\x{2028}\x{2029}\x{FEFF}@]+@[^\t\n\v\f\r\p{Zs}\x{2028}\x{2029}\x{FEFF}@]+\.[^\t\n\v\f\r\p{Zs}\x{2028}\x{2029}\x{FEFF}@]+$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("contactemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

// validate maps struct tag failures onto the messages shown to the visitor.
// A missing field wins over a malformed email.
func validate(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msg := MsgInvalidEmail
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			msg = MsgMissingFields
			break
		}
	}

	return &ValidationError{Message: msg}
}
