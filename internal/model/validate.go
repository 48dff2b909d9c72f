package model

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError describes why one field of a document was rejected.
type FieldError struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
	Path    string `json:"path"`
	Value   any    `json:"value,omitempty"`
}

// ValidationErrors maps a field path to the reason it was rejected.
type ValidationErrors map[string]FieldError

func (v ValidationErrors) Error() string {
	paths := make([]string, 0, len(v))
	for p := range v {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	msgs := make([]string, 0, len(paths))
	for _, p := range paths {
		msgs = append(msgs, fmt.Sprintf("%s: %s", p, v[p].Message))
	}
	return "validation failed: " + strings.Join(msgs, ", ")
}

// Validate checks t against the thought schema. It returns nil or a
// ValidationErrors value.
func (t Thought) Validate() error {
	err := validate.Struct(t)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(ValidationErrors, len(verrs))
	for _, fe := range verrs {
		path := fe.Field()
		out[path] = fieldError(path, fe)
	}
	return out
}

func fieldError(path string, fe validator.FieldError) FieldError {
	switch fe.Tag() {
	case "required":
		return FieldError{
			Message: fmt.Sprintf("Path `%s` is required.", path),
			Kind:    "required",
			Path:    path,
		}
	case "min":
		return FieldError{
			Message: fmt.Sprintf("Path `%s` (`%v`) is shorter than the minimum allowed length (%s).", path, fe.Value(), fe.Param()),
			Kind:    "minlength",
			Path:    path,
			Value:   fe.Value(),
		}
	case "max":
		return FieldError{
			Message: fmt.Sprintf("Path `%s` (`%v`) is longer than the maximum allowed length (%s).", path, fe.Value(), fe.Param()),
			Kind:    "maxlength",
			Path:    path,
			Value:   fe.Value(),
		}
	default:
		return FieldError{
			Message: fmt.Sprintf("Path `%s` failed the %q check.", path, fe.Tag()),
			Kind:    fe.Tag(),
			Path:    path,
			Value:   fe.Value(),
		}
	}
}
