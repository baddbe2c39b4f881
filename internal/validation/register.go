package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator tags bound to the rule functions.
const (
	TagLetters = "letters"
	TagPhone   = "phone"
	TagGmail   = "gmail"
)

var tagKinds = map[string]error{
	TagLetters: ErrLettersOnly,
	TagPhone:   ErrPhoneDigits,
	TagGmail:   ErrEmailDomain,
}

// New returns a validator with the academy tags registered. Field names in
// errors come from the json tag.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	if err := Register(v); err != nil {
		panic(err)
	}
	return v
}

// Register binds the letters, phone and gmail tags on an existing validator.
func Register(v *validator.Validate) error {
	rules := map[string]func(string) error{
		TagLetters: LettersOnly,
		TagPhone:   Phone,
		TagGmail:   EmailDomain,
	}
	for tag, rule := range rules {
		rule := rule
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return rule(fl.Field().String()) == nil
		}); err != nil {
			return err
		}
	}
	return nil
}

// Details converts validator errors into a field to message map.
func Details(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	details := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details[fieldErr.Field()] = fieldMessage(fieldErr)
	}
	return details
}

func fieldMessage(fieldErr validator.FieldError) string {
	if kind, ok := tagKinds[fieldErr.Tag()]; ok {
		return kind.Error()
	}
	switch fieldErr.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return "must be at most " + fieldErr.Param() + " characters"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + fieldErr.Param()
	default:
		return "invalid value"
	}
}
