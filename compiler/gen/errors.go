package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("enumgen: missing configuration")
	// ErrUnresolvedColumns indicates a rule whose columns could not be
	// matched against the table it was applied to.
	ErrUnresolvedColumns = errors.New("enumgen: unresolved columns")
	// ErrFormatFailed indicates generated output that failed formatting.
	ErrFormatFailed = errors.New("enumgen: format failed")
)

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("enumgen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("enumgen: config error for %q: %s", e.Option, e.Message)
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

// ResolveError reports a rule whose id, description or key column could not
// be found on the table it matched. The orchestrator downgrades it to an
// inline diagnostic; it never aborts a run.
type ResolveError struct {
	Rule    string   // raw rule line
	Table   string   // table the rule was applied to
	Missing []string // which of "id", "description", "key" were not found
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	var b strings.Builder
	b.WriteString("enumgen: rule ")
	fmt.Fprintf(&b, "%q", e.Rule)
	if e.Table != "" {
		b.WriteString(" on table ")
		b.WriteString(e.Table)
	}
	b.WriteString(": cannot resolve ")
	b.WriteString(strings.Join(e.Missing, ", "))
	b.WriteString(" column")
	if len(e.Missing) > 1 {
		b.WriteString("s")
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for ResolveError.
func (e *ResolveError) Is(target error) bool {
	return target == ErrUnresolvedColumns
}

// NewResolveError creates a new ResolveError.
func NewResolveError(rule, table string, missing ...string) *ResolveError {
	return &ResolveError{
		Rule:    rule,
		Table:   table,
		Missing: missing,
	}
}

// FormatError represents a generated file that failed gofmt-level formatting.
type FormatError struct {
	File  string
	Cause error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("enumgen: format %s: %v", e.File, e.Cause)
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for FormatError.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormatFailed
}

// NewFormatError creates a new FormatError.
func NewFormatError(file string, cause error) *FormatError {
	return &FormatError{
		File:  file,
		Cause: cause,
	}
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsResolveError reports whether the error is a ResolveError.
func IsResolveError(err error) bool {
	var resolveErr *ResolveError
	return errors.As(err, &resolveErr)
}

// IsFormatError reports whether the error is a FormatError.
func IsFormatError(err error) bool {
	var formatErr *FormatError
	return errors.As(err, &formatErr)
}
