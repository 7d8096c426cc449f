package i18n

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// NumberFormatter formats and parses numbers using locale conventions.
type NumberFormatter struct {
	tag     language.Tag
	printer *message.Printer

	group   string
	decimal string
}

// NewNumberFormatter returns a formatter for locale. Unknown or empty locales
// use English conventions.
func NewNumberFormatter(locale string) *NumberFormatter {
	tag := language.English
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		if parsed, err := language.Parse(trimmed); err == nil {
			tag = parsed
		}
	}
	f := &NumberFormatter{tag: tag, printer: message.NewPrinter(tag)}
	f.detectSeparators()
	return f
}

// Locale returns the BCP 47 tag used by the formatter.
func (f *NumberFormatter) Locale() string {
	return f.tag.String()
}

// FormatInt formats an integer with grouping separators.
func (f *NumberFormatter) FormatInt(value int64) string {
	return f.printer.Sprint(number.Decimal(value))
}

// FormatFloat formats value with exactly decimals fraction digits. A negative
// decimals value keeps the natural precision.
func (f *NumberFormatter) FormatFloat(value float64, decimals int) string {
	if decimals < 0 {
		return f.printer.Sprint(number.Decimal(value))
	}
	return f.printer.Sprint(number.Decimal(value, number.Scale(decimals)))
}

// Parse reads a localized number, accepting grouping separators.
func (f *NumberFormatter) Parse(raw string) (float64, error) {
	normalized, err := f.normalize(raw)
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("i18n: parse number %q: %w", raw, err)
	}
	return value, nil
}

// ParseInt reads a localized integer.
func (f *NumberFormatter) ParseInt(raw string) (int64, error) {
	normalized, err := f.normalize(raw)
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseInt(normalized, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("i18n: parse integer %q: %w", raw, err)
	}
	return value, nil
}

// GroupSeparator returns the digit grouping separator of the locale.
func (f *NumberFormatter) GroupSeparator() string { return f.group }

// DecimalSeparator returns the decimal separator of the locale.
func (f *NumberFormatter) DecimalSeparator() string { return f.decimal }

// Decimals returns the number of fraction digits in a localized number.
func (f *NumberFormatter) Decimals(raw string) int {
	normalized, err := f.normalize(raw)
	if err != nil {
		return 0
	}
	if idx := strings.Index(normalized, "."); idx >= 0 {
		return len(normalized) - idx - 1
	}
	return 0
}

func (f *NumberFormatter) normalize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("i18n: empty number")
	}
	if f.group != "" {
		trimmed = strings.ReplaceAll(trimmed, f.group, "")
	}
	// non-breaking spaces are used as group separators by several locales
	trimmed = strings.ReplaceAll(trimmed, "\u00a0", "")
	trimmed = strings.ReplaceAll(trimmed, "\u202f", "")
	if f.decimal != "" && f.decimal != "." {
		trimmed = strings.ReplaceAll(trimmed, f.decimal, ".")
	}
	return trimmed, nil
}

func (f *NumberFormatter) detectSeparators() {
	f.group, f.decimal = ",", "."
	sample := []rune(f.FormatFloat(1234.5, 1))
	// expected shape: 1<group>234<decimal>5
	if len(sample) < 7 {
		return
	}
	var runes []rune
	for _, r := range sample {
		if r < '0' || r > '9' {
			runes = append(runes, r)
		}
	}
	switch len(runes) {
	case 2:
		f.group, f.decimal = string(runes[0]), string(runes[1])
	case 1:
		f.group, f.decimal = "", string(runes[0])
	}
}
