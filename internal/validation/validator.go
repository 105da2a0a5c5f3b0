// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	instance *validator.Validate
	once     sync.Once
)

// FieldError is one failed constraint.
type FieldError struct {
	// Path is the dotted field path below the validated struct, e.g. "recommend.alpha".
	Path string

	// Tag is the failed validation tag, e.g. "lte".
	Tag string

	// Param is the tag parameter, e.g. "1" for "lte=1".
	Param string

	// Value is the rejected value.
	Value any

	// Message is the human-readable description.
	Message string
}

func (e FieldError) Error() string {
	return e.Message
}

// Errors lists every failed constraint of a struct, in field order.
type Errors []FieldError

func (errs Errors) Error() string {
	if len(errs) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// GetValidator returns the shared validator.
func GetValidator() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(fieldName)
	})
	return instance
}

// fieldName names a field by its koanf key, then its json name, so
// messages read like config paths and request fields.
func fieldName(fld reflect.StructField) string {
	for _, key := range []string{"koanf", "json"} {
		name, _, _ := strings.Cut(fld.Tag.Get(key), ",")
		switch name {
		case "-":
			return ""
		case "":
			continue
		default:
			return name
		}
	}
	return fld.Name
}

// ValidateStruct checks the validate tags of s. A constraint failure is
// returned as Errors; anything else (a nil or non-struct s) as a plain error.
func ValidateStruct(s any) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	out := make(Errors, len(verrs))
	for i, fe := range verrs {
		path := fieldPath(fe.Namespace())
		out[i] = FieldError{
			Path:    path,
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: message(fe, path),
		}
	}
	return out
}

// fieldPath strips the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

// message renders fe for the field at path.
func message(fe validator.FieldError, path string) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return path + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", path, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", path, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", path, param)
	case "lt":
		return fmt.Sprintf("%s must be less than %s", path, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", path, param)
	case "min":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s must be at least %s characters", path, param)
		case reflect.Slice, reflect.Map:
			return fmt.Sprintf("%s must contain at least %s entries", path, param)
		}
		return fmt.Sprintf("%s must be at least %s", path, param)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", path, param)
		}
		return fmt.Sprintf("%s must be at most %s", path, param)
	default:
		return fmt.Sprintf("%s failed %s validation", path, fe.Tag())
	}
}
