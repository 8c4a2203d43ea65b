// Package util provides utility functions and common error types.
package util

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for reconciliation failures
var (
	ErrParse             = errors.New("parse error")
	ErrMissingField      = errors.New("required field missing")
	ErrUnrecognizedValue = errors.New("unrecognized field value")
	ErrInvalidManifest   = errors.New("invalid manifest")
	ErrValidationFailed  = errors.New("validation failed")
)

// ParseError reports malformed text in an existing configuration, such as a
// bad VLAN range token.
type ParseError struct {
	Input  string // the offending line
	Token  string // the offending token, if narrower than the line
	Reason string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse error in %q", e.Input)
	if e.Token != "" && e.Token != e.Input {
		msg += fmt.Sprintf(" at token %q", e.Token)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// NewParseError creates a new parse error
func NewParseError(input, token, reason string) *ParseError {
	return &ParseError{
		Input:  input,
		Token:  token,
		Reason: reason,
	}
}

// MissingFieldError reports a manifest entry that lacks a field required by
// the fields it does carry.
type MissingFieldError struct {
	Object string // e.g. "vlan 10", "interface Ethernet1/1"
	Field  string
	Reason string
}

func (e *MissingFieldError) Error() string {
	msg := fmt.Sprintf("%s: missing required field %q", e.Object, e.Field)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// NewMissingFieldError creates a missing field error
func NewMissingFieldError(object, field, reason string) *MissingFieldError {
	return &MissingFieldError{
		Object: object,
		Field:  field,
		Reason: reason,
	}
}

// UnrecognizedValueError reports an enum field carrying a value outside its
// allowed set.
type UnrecognizedValueError struct {
	Object  string
	Field   string
	Value   string
	Allowed []string
}

func (e *UnrecognizedValueError) Error() string {
	msg := fmt.Sprintf("%s: unrecognized %s %q", e.Object, e.Field, e.Value)
	if len(e.Allowed) > 0 {
		msg += " (valid: " + strings.Join(e.Allowed, ", ") + ")"
	}
	return msg
}

func (e *UnrecognizedValueError) Unwrap() error {
	return ErrUnrecognizedValue
}

// NewUnrecognizedValueError creates an unrecognized value error
func NewUnrecognizedValueError(object, field, value string, allowed ...string) *UnrecognizedValueError {
	return &UnrecognizedValueError{
		Object:  object,
		Field:   field,
		Value:   value,
		Allowed: allowed,
	}
}

// ValidationError represents one or more validation failures
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "validation failed: " + e.Errors[0]
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// ValidationBuilder helps accumulate validation errors
type ValidationBuilder struct {
	errors []string
}

// Add adds an error message if condition is false
func (v *ValidationBuilder) Add(condition bool, message string) *ValidationBuilder {
	if !condition {
		v.errors = append(v.errors, message)
	}
	return v
}

// AddErrorf adds a formatted error message
func (v *ValidationBuilder) AddErrorf(format string, args ...interface{}) *ValidationBuilder {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
	return v
}

// AddErr adds err's message, prefixed with context, when err is non-nil
func (v *ValidationBuilder) AddErr(context string, err error) *ValidationBuilder {
	if err != nil {
		v.errors = append(v.errors, context+": "+err.Error())
	}
	return v
}

// Build returns the validation error or nil if no errors
func (v *ValidationBuilder) Build() error {
	if len(v.errors) == 0 {
		return nil
	}
	return &ValidationError{Errors: v.errors}
}
