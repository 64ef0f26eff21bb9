// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// This package is used in the service layer, never in storage. It ensures that
// business logic only operates on semantically valid data.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/apperr"
)

var (
	// emailRegex accepts "local@domain.tld" with no whitespace and a single '@'.
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// countryCodeRegex matches ISO 3166 alpha-2 or alpha-3 codes.
	countryCodeRegex = regexp.MustCompile(`^[A-Z]{2,3}$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload").WithCode("INVALID_JSON")
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// Email fails if the value does not look like local@domain.tld.
func (v *Validator) Email(field, value string) *Validator {
	if !IsEmail(value) {
		v.add(field, "Must be a valid email address")
	}
	return v
}

// CountryCode fails if the value is not two or three uppercase letters.
func (v *Validator) CountryCode(field, value string) *Validator {
	if !countryCodeRegex.MatchString(value) {
		v.add(field, "Must be a 2 or 3 letter uppercase country code")
	}
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("maxStay", len(maxStay) > 100, "Too long")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
func (v *Validator) Err() error {
	return v.ErrCode("VALIDATION_ERROR", "Validation failed")
}

// ErrCode is like Err but lets the caller pick the code and message, for
// operations that report a specific failure such as MISSING_FIELDS.
func (v *Validator) ErrCode(code, message string) error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError(message, v.errs...).WithCode(code)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// IsEmail reports whether value matches the accepted email shape.
func IsEmail(value string) bool {
	return emailRegex.MatchString(value)
}

// Failure builds a single-code validation error with no field details.
func Failure(code, message string) *apperr.AppError {
	return apperr.ValidationError(message).WithCode(code)
}
