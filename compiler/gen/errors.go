package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrFatal indicates the compile was aborted by a fatal diagnostic.
	ErrFatal = errors.New("beangen: fatal compile error")
	// ErrRecoverable indicates the compile completed with reported errors.
	ErrRecoverable = errors.New("beangen: compile reported errors")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("beangen: missing configuration")
)

// CompileError is returned next to a complete outline when recoverable
// diagnostics were reported. The caller decides whether to emit anyway.
type CompileError struct {
	Diagnostics []Diagnostic
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "beangen: compile error: %d diagnostic", len(e.Diagnostics))
	if len(e.Diagnostics) != 1 {
		b.WriteString("s")
	}
	for _, d := range e.Diagnostics {
		b.WriteString("\n\t")
		b.WriteString(d.String())
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for CompileError.
func (e *CompileError) Is(target error) bool {
	return target == ErrRecoverable
}

// DiagnosticError wraps a single diagnostic as an error.
type DiagnosticError struct {
	Diagnostic Diagnostic
}

// Error implements the error interface.
func (e *DiagnosticError) Error() string {
	return "beangen: " + e.Diagnostic.String()
}

// Is reports whether the target matches the sentinel error for the
// severity of the wrapped diagnostic.
func (e *DiagnosticError) Is(target error) bool {
	if e.Diagnostic.Severity == SeverityFatal {
		return target == ErrFatal
	}
	return target == ErrRecoverable
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("beangen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("beangen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// IsCompileError reports whether err is or wraps a *CompileError.
func IsCompileError(err error) bool {
	var e *CompileError
	return errors.As(err, &e)
}

// IsDiagnosticError reports whether err is or wraps a *DiagnosticError.
func IsDiagnosticError(err error) bool {
	var e *DiagnosticError
	return errors.As(err, &e)
}

// IsConfigError reports whether err is or wraps a *ConfigError.
func IsConfigError(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}

// Diagnostics returns the diagnostics carried by err, if any.
func Diagnostics(err error) []Diagnostic {
	var ce *CompileError
	if errors.As(err, &ce) {
		return ce.Diagnostics
	}
	var de *DiagnosticError
	if errors.As(err, &de) {
		return []Diagnostic{de.Diagnostic}
	}
	return nil
}
