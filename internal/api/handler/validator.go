package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// formValidator adapts go-playground/validator to echo's Validator interface
// for the signup and login form schemas. Failures come back as one error whose
// text is shown to the user verbatim, so messages stay in form-field terms.
type formValidator struct {
	validate *validator.Validate
}

func NewValidator() *formValidator {
	return &formValidator{validate: validator.New()}
}

func (fv *formValidator) Validate(i any) error {
	err := fv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "email":
			msgs = append(msgs, field+" must be a valid email")
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
