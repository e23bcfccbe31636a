// Package validation wraps go-playground/validator with the listing rules:
// US state codes, the genre list and North American phone numbers. Field
// names in errors come from the `form` tag so they match the submitted
// fields.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

var phonePattern = regexp.MustCompile(`^\(?\d{3}\)?[-. ]?\d{3}[-. ]?\d{4}$`)

// FieldError is a single failed rule.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

func (e FieldError) Error() string {
	return e.Message
}

// Errors collects every failed field of one struct.
type Errors []FieldError

func (ve Errors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	messages := make([]string, 0, len(ve))
	for _, e := range ve {
		messages = append(messages, e.Message)
	}
	return strings.Join(messages, "; ")
}

// Map returns the first message per field.
func (ve Errors) Map() map[string]string {
	out := make(map[string]string, len(ve))
	for _, e := range ve {
		if _, ok := out[e.Field]; !ok {
			out[e.Field] = e.Message
		}
	}
	return out
}

// Fields returns the failed field names in sorted order.
func (ve Errors) Fields() []string {
	fields := make([]string, 0, len(ve))
	for field := range ve.Map() {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Get returns the shared validator, registering the custom rules on first use.
func Get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})

		mustRegister("usstate", func(fl validator.FieldLevel) bool {
			_, ok := stateSet[fl.Field().String()]
			return ok
		})
		mustRegister("genre", func(fl validator.FieldLevel) bool {
			_, ok := genreSet[fl.Field().String()]
			return ok
		})
		mustRegister("phone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validator: %v", tag, err))
	}
}

// Struct validates s. It returns nil or an Errors value.
func Struct(s any) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Errors{{Field: "form", Tag: "invalid", Message: err.Error()}}
	}

	out := make(Errors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: translate(fe),
		})
	}
	return out
}

var messages = map[string]string{
	"required": "%s is required",
	"url":      "%s must be a valid URL",
	"usstate":  "%s must be a US state code",
	"genre":    "%s contains an unknown genre",
	"phone":    "%s must be a phone number like 123-456-7890",
	"gt":       "%s must be selected",
}

func translate(fe validator.FieldError) string {
	if tmpl, ok := messages[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, fe.Field())
	}
	switch fe.Tag() {
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s needs at least %s entries", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}
