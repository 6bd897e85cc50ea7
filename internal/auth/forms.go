package auth

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// MaxWard is the highest ward number offered in the signup form.
const MaxWard = 32

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Number   string `json:"number" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,pwlen"`
	Address  string `json:"address" validate:"required"`
	WardNo   string `json:"wardNo" validate:"required,ward"`
}

// ValidateLogin checks a login form before it is sent.
func ValidateLogin(req LoginRequest) error {
	return validateForm(req)
}

// ValidateSignup checks a signup form before it is sent.
func ValidateSignup(req SignupRequest) error {
	return validateForm(req)
}

// ValidWard reports whether s is a ward number between 1 and MaxWard
// written with digits only.
func ValidWard(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= 1 && n <= MaxWard
}

type formValidator struct {
	validate *validator.Validate
	trans    ut.Translator
}

var loadValidator = sync.OnceValues(newFormValidator)

func newFormValidator() (*formValidator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("ward", func(fl validator.FieldLevel) bool {
		return ValidWard(fl.Field().String())
	}); err != nil {
		return nil, fmt.Errorf("failed to register ward validation: %w", err)
	}
	if err := validate.RegisterTranslation("ward", trans, func(ut ut.Translator) error {
		return ut.Add("ward", "{0} must be a ward number from 1 to 32", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("ward", fe.Field())
		return t
	}); err != nil {
		return nil, fmt.Errorf("failed to register ward translation: %w", err)
	}

	if err := validate.RegisterValidation("pwlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes
	}); err != nil {
		return nil, fmt.Errorf("failed to register password validation: %w", err)
	}
	if err := validate.RegisterTranslation("pwlen", trans, func(ut ut.Translator) error {
		return ut.Add("pwlen", "{0} must be at most 72 bytes long", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("pwlen", fe.Field())
		return t
	}); err != nil {
		return nil, fmt.Errorf("failed to register password translation: %w", err)
	}

	return &formValidator{validate: validate, trans: trans}, nil
}

func validateForm(form any) error {
	v, err := loadValidator()
	if err != nil {
		return err
	}

	err = v.validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate form: %w", err)
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: fe.Translate(v.trans),
		})
	}
	return out
}
