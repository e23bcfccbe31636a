// Package forms maps submitted url.Values onto typed forms and from forms onto
// records. Each entity has its own explicit mapping; nothing is copied by name.
package forms

import (
	"errors"
	"net/url"
	"strings"

	"fyyur/internal/validation"
)

// Errors maps form field names to the message shown next to the field.
type Errors map[string]string

// Has reports whether field failed.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Any reports whether any field failed.
func (e Errors) Any() bool {
	return len(e) > 0
}

// Add records msg for field unless the field already has a message.
func (e Errors) Add(field, msg string) {
	if !e.Has(field) {
		e[field] = msg
	}
}

func (e Errors) orNil() Errors {
	if len(e) == 0 {
		return nil
	}
	return e
}

// validate runs the struct rules and folds slice element errors such as
// genres[2] into their field.
func validate(form any) Errors {
	errs := Errors{}
	err := validation.Struct(form)
	if err == nil {
		return errs
	}

	var ve validation.Errors
	if !errors.As(err, &ve) {
		errs.Add("form", err.Error())
		return errs
	}
	for _, fe := range ve {
		field, _, _ := strings.Cut(fe.Field, "[")
		errs.Add(field, strings.Replace(fe.Message, fe.Field, field, 1))
	}
	return errs
}

func text(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

// checked reads an HTML checkbox, which is absent when unticked.
func checked(values url.Values, key string) bool {
	switch strings.ToLower(values.Get(key)) {
	case "y", "yes", "on", "true", "1":
		return true
	}
	return false
}

func multi(values url.Values, key string) []string {
	out := make([]string, 0, len(values[key]))
	for _, v := range values[key] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
