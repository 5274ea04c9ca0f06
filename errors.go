package beangen

import (
	"errors"
	"fmt"
)

// Standard sentinel errors returned by generated code.
var (
	// ErrNoMatchingConstant is returned when a value matches no constant
	// of a generated enum.
	ErrNoMatchingConstant = errors.New("beangen: no matching enum constant")

	// ErrUnknownAttribute is returned when an attribute wildcard lookup
	// finds nothing.
	ErrUnknownAttribute = errors.New("beangen: unknown attribute")
)

// NoMatchingConstantError is returned by the FromValue functions of
// generated enums.
type NoMatchingConstantError struct {
	enum  string
	value string
}

// Error returns the error string.
func (e *NoMatchingConstantError) Error() string {
	return fmt.Sprintf("beangen: %s has no constant with value %s", e.enum, e.value)
}

// Is reports whether the target error matches NoMatchingConstantError.
// This allows errors.Is(err, ErrNoMatchingConstant) to return true.
func (e *NoMatchingConstantError) Is(err error) bool {
	return err == ErrNoMatchingConstant
}

// Enum returns the qualified name of the enum type.
func (e *NoMatchingConstantError) Enum() string {
	return e.enum
}

// Value returns the string form of the value that was looked up.
func (e *NoMatchingConstantError) Value() string {
	return e.value
}

// NewNoMatchingConstantError returns a new NoMatchingConstantError for the
// given enum and the string form of the value.
func NewNoMatchingConstantError(enum, value string) *NoMatchingConstantError {
	return &NoMatchingConstantError{enum: enum, value: value}
}

// IsNoMatchingConstant returns true if the error is a NoMatchingConstantError.
func IsNoMatchingConstant(err error) bool {
	if err == nil {
		return false
	}
	var e *NoMatchingConstantError
	return errors.As(err, &e) || errors.Is(err, ErrNoMatchingConstant)
}

// AttributeError is returned when a required wildcard attribute is missing.
type AttributeError struct {
	Name string
}

// Error returns the error string.
func (e *AttributeError) Error() string {
	return fmt.Sprintf("beangen: attribute %s not present", e.Name)
}

// Is reports whether the target error matches AttributeError.
func (e *AttributeError) Is(err error) bool {
	return err == ErrUnknownAttribute
}

// IsUnknownAttribute returns true if the error is an AttributeError.
func IsUnknownAttribute(err error) bool {
	if err == nil {
		return false
	}
	var e *AttributeError
	return errors.As(err, &e) || errors.Is(err, ErrUnknownAttribute)
}
