// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

// Package validation provides struct validation using
// go-playground/validator v10. It exposes a thread-safe singleton
// validator with a custom validator for pipeline date strings.
//
// Example:
//
//	type PlacesConfig struct {
//	    RatePerSecond float64 `validate:"gt=0"`
//	}
//	if err := validation.ValidateStruct(&cfg); err != nil { ... }
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// getValidator returns the singleton validator, creating it on first use.
// The singleton caches struct metadata, so reuse is significantly faster
// than creating validators per call.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// eventdate: a calendar date in YYYY-MM-DD form.
		//nolint:errcheck // registration only fails for nil funcs
		validate.RegisterValidation("eventdate", func(fl validator.FieldLevel) bool {
			_, err := time.Parse("2006-01-02", fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// StructError wraps validator field errors with readable messages.
type StructError struct {
	fields []string
}

// Error implements the error interface.
func (e *StructError) Error() string {
	if len(e.fields) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(e.fields, "; ")
}

// Fields returns the per-field failure descriptions.
func (e *StructError) Fields() []string {
	return e.fields
}

// ValidateStruct validates a struct using its `validate` tags. Returns
// nil when the struct is valid, or a *StructError describing every
// failing field.
func ValidateStruct(s interface{}) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation internal error: %w", err)
	}

	se := &StructError{}
	for _, fe := range verrs {
		msg := fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("%s failed %q(%s)", fe.Namespace(), fe.Tag(), fe.Param())
		}
		se.fields = append(se.fields, msg)
	}
	return se
}
