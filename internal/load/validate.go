package load

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// StatusTag is the validator tag that accepts exactly one of Statuses().
const StatusTag = "loadstatus"

// Validator knows the load status tag and reports fields by their json (or
// form) name. It is safe for concurrent use.
var Validator = NewValidator()

// NewValidator builds a fresh validator configured like Validator. It panics
// if the status tag cannot be registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation(StatusTag, func(fl validator.FieldLevel) bool {
		_, ok := ParseStatus(fl.Field().String())
		return ok
	})
	if err != nil {
		panic(fmt.Sprintf("load: register %s validation: %v", StatusTag, err))
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// FieldErrors maps a dotted field path to a message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "invalid load: " + strings.Join(parts, "; ")
}

// Validate checks a payload built outside the wizard, for example one read
// from a file by the CLI.
func Validate(l Load) error {
	err := Validator.Struct(l)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate load: %w", err)
	}
	out := FieldErrors{}
	for _, fe := range verrs {
		path := fe.Namespace()
		if i := strings.Index(path, "."); i >= 0 {
			path = path[i+1:]
		}
		out[path] = describe(fe)
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case StatusTag:
		names := make([]string, 0, len(Statuses()))
		for _, s := range Statuses() {
			names = append(names, string(s))
		}
		return "must be one of " + strings.Join(names, ", ")
	default:
		return "failed " + fe.Tag()
	}
}
