package model

import "fmt"

// ParseError represents a failure to read a field from user input
type ParseError struct {
	Field   string
	Value   string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse %s %q: %s (%v)", e.Field, e.Value, e.Message, e.Cause)
	}
	return fmt.Sprintf("parse %s %q: %s", e.Field, e.Value, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new parse error
func NewParseError(field, value, message string, cause error) *ParseError {
	return &ParseError{
		Field:   field,
		Value:   value,
		Message: message,
		Cause:   cause,
	}
}

// ValidationError represents validation failures
type ValidationError struct {
	Field   string
	Value   interface{}
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation failed on %s: %s (value=%v, rule=%s)", e.Field, e.Message, e.Value, e.Rule)
	}
	return fmt.Sprintf("validation failed on %s: %s (rule=%s)", e.Field, e.Message, e.Rule)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, rule, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	}
}

// RenderError represents document rendering failures
type RenderError struct {
	Format  string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render failed [%s]: %s (%v)", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("render failed [%s]: %s", e.Format, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// NewRenderError creates a new render error
func NewRenderError(format, message string, cause error) *RenderError {
	return &RenderError{
		Format:  format,
		Message: message,
		Cause:   cause,
	}
}
