package ui

import "strings"

// Severity classifies a Message.
type Severity string

const (
	SeverityNotice      Severity = "notice"
	SeverityWarning     Severity = "warning"
	SeverityError       Severity = "error"
	SeveritySystemError Severity = "system-error"
	SeverityInfo        Severity = "info"
)

// Content types for message bodies.
const (
	ContentTypeText = "text/plain"
	ContentTypeXML  = "text/xml"
)

// Message is a user-facing note attached to a widget. Validation failures are
// reported as messages with SeverityError, never as Go errors.
type Message struct {
	Primary     string
	Secondary   string
	Severity    Severity
	ContentType string
}

// NewMessage constructs a plain-text message. An empty severity defaults to
// SeverityNotice.
func NewMessage(primary string, severity Severity) *Message {
	if severity == "" {
		severity = SeverityNotice
	}
	return &Message{
		Primary:     primary,
		Severity:    severity,
		ContentType: ContentTypeText,
	}
}

// ErrorMessage constructs a validation message with SeverityError.
func ErrorMessage(primary string) *Message {
	return NewMessage(primary, SeverityError)
}

// IsError reports whether the message blocks a successful submission.
func (m *Message) IsError() bool {
	if m == nil {
		return false
	}
	return m.Severity == SeverityError || m.Severity == SeveritySystemError
}

// CSSClass returns the class list used when rendering the message.
func (m *Message) CSSClass() string {
	severity := string(m.Severity)
	if severity == "" {
		severity = string(SeverityNotice)
	}
	return "formkit-message formkit-message-" + severity
}

// Clone returns a copy of the message.
func (m *Message) Clone() *Message {
	if m == nil {
		return nil
	}
	clone := *m
	return &clone
}

// WithTitle replaces %s placeholders in the primary text with title. Field
// wrappers use it to name the offending field.
func (m *Message) WithTitle(title string) *Message {
	clone := m.Clone()
	if clone != nil && strings.Contains(clone.Primary, "%s") {
		clone.Primary = strings.ReplaceAll(clone.Primary, "%s", title)
	}
	return clone
}
