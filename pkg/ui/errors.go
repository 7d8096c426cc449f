package ui

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration matches every ConfigurationError via errors.Is.
	ErrConfiguration = errors.New("ui: configuration error")
	// ErrNotFound matches every NotFoundError via errors.Is.
	ErrNotFound = errors.New("ui: not found")
)

// ConfigurationError reports wiring mistakes made by application code: a
// missing required id, a duplicate id, an unknown stock type, a static
// property targeted by a mapping and similar. These are programming errors
// and are expected to propagate to the top of the request.
type ConfigurationError struct {
	Op      string
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("configuration error")
	if e.Op != "" {
		b.WriteString(" (")
		b.WriteString(e.Op)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes the wrapped cause.
func (e *ConfigurationError) Unwrap() error { return e.Err }

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// Configurationf builds a ConfigurationError for op with a formatted message.
func Configurationf(op, format string, args ...any) error {
	return &ConfigurationError{Op: op, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a failed lookup by id or position.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	kind := e.Kind
	if kind == "" {
		kind = "object"
	}
	return fmt.Sprintf("%s %q not found", kind, e.Key)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NotFound builds a NotFoundError. Non-string keys are formatted with %v.
func NotFound(kind string, key any) error {
	return &NotFoundError{Kind: kind, Key: fmt.Sprint(key)}
}

// IsConfigurationError reports whether err carries a ConfigurationError.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsNotFound reports whether err carries a NotFoundError.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
