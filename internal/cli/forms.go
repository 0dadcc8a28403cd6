package cli

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type registerForm struct {
	Email    string `validate:"required,email"`
	Username string `validate:"required"`
	Password string `validate:"required,min=6"`
	Confirm  string `validate:"eqfield=Password"`
}

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type profileForm struct {
	Email    string `validate:"required,email"`
	Username string `validate:"required"`
	Password string `validate:"omitempty,min=6"`
}

type noteForm struct {
	Title    string
	Content  string `validate:"required"`
	Category string `validate:"required,oneof=work study personal"`
}

// formError is an input problem found before any service is called. Its
// text is meant for the user as is.
type formError struct {
	msg string
}

func (e *formError) Error() string { return e.msg }

// checkForm validates form and turns the first failed rule into a
// formError.
func checkForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	e := verrs[0]
	var msg string
	switch e.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required", e.Field())
	case "email":
		msg = "Please enter a valid email"
	case "min":
		msg = fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param())
	case "eqfield":
		msg = "Passwords do not match"
	case "oneof":
		msg = fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param())
	default:
		msg = fmt.Sprintf("%s is invalid", e.Field())
	}
	return &formError{msg: msg}
}
