// Package forms validates submitted form records. Validation never reads the
// request; handlers build an input value and pass it in explicitly.
package forms

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"socialblog/store"
)

var validate = newValidator()

// newValidator reports errors under the html form name instead of the Go field name.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("maxbytes", maxBytes); err != nil {
		panic(err)
	}
	return v
}

// maxBytes is max measured in bytes; the builtin max counts runes.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// FieldErrors maps a form field name to its messages, in the order found.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

func (fe FieldErrors) Has(field string) bool {
	return len(fe[field]) > 0
}

func (fe FieldErrors) Valid() bool {
	return len(fe) == 0
}

type RegistrationInput struct {
	Username        string `form:"username" validate:"required,min=2,max=20"`
	Email           string `form:"email" validate:"required,email,max=120"`
	Password        string `form:"password" validate:"required,maxbytes=72"` // bcrypt input limit
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
}

func (in RegistrationInput) Normalize() RegistrationInput {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	return in
}

type LoginInput struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
	Remember bool   `form:"remember"`
}

func (in LoginInput) Normalize() LoginInput {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	return in
}

type NameInput struct {
	Name string `form:"name" validate:"required"`
}

func (in NameInput) Normalize() NameInput {
	in.Name = strings.TrimSpace(in.Name)
	return in
}

// ValidateRegistration checks field rules and then asks lookup whether the
// username and email are still free. Store failures are returned as err.
func ValidateRegistration(ctx context.Context, in RegistrationInput, lookup store.UserLookup) (FieldErrors, error) {
	fe := check(in)

	if !fe.Has("username") {
		taken, err := lookup.UsernameTaken(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			fe.Add("username", "That username is taken. Please choose a different one.")
		}
	}

	if !fe.Has("email") {
		taken, err := lookup.EmailTaken(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			fe.Add("email", "That email is taken. Please choose a different one.")
		}
	}

	return fe, nil
}

func ValidateLogin(in LoginInput) FieldErrors {
	return check(in)
}

func ValidateName(in NameInput) FieldErrors {
	return check(in)
}

func check(in any) FieldErrors {
	fe := FieldErrors{}
	err := validate.Struct(in)
	if err == nil {
		return fe
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fe.Add("form", err.Error())
		return fe
	}
	for _, v := range verrs {
		fe.Add(v.Field(), message(v))
	}
	return fe
}

func message(v validator.FieldError) string {
	switch v.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "min":
		return fmt.Sprintf("Field must be at least %s characters long.", v.Param())
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", v.Param())
	case "maxbytes":
		return fmt.Sprintf("Field cannot be longer than %s bytes.", v.Param())
	case "eqfield":
		return "Field must be equal to password."
	default:
		return "Invalid value."
	}
}
