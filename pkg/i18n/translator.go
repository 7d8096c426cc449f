// Package i18n holds the translation and number formatting seams consumed by
// widgets at display time. Catalog management is left to callers; the
// MapTranslator and LoadCatalog helpers cover static catalogs.
package i18n

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrMissingTranslator is reported to MissingHandler when no translator is set.
var ErrMissingTranslator = errors.New("i18n: translator not configured")

// ErrMissingTranslation is returned by MapTranslator for unknown keys.
var ErrMissingTranslation = errors.New("i18n: missing translation")

// Translator resolves a message key for a locale. Args are applied with
// fmt-style verbs when the message contains any.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate delegates to the wrapped function.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingHandler decides the string used when a translation is unavailable.
type MissingHandler func(locale, key string, args []any, err error) string

// DefaultMissing returns the fallback when set, else the key itself.
func DefaultMissing(fallback string) MissingHandler {
	return func(_ string, key string, _ []any, _ error) string {
		if strings.TrimSpace(fallback) != "" {
			return fallback
		}
		return key
	}
}

// Translate resolves key through t, falling back to fallback (or the key)
// when t is nil or the lookup fails.
func Translate(t Translator, locale, key, fallback string, onMissing MissingHandler, args ...any) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	if onMissing == nil {
		onMissing = DefaultMissing(fallback)
	}
	if t == nil {
		return onMissing(locale, key, args, ErrMissingTranslator)
	}
	result, err := t.Translate(locale, key, args...)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(locale, key, args, err)
}

// MapTranslator is a static catalog keyed by locale then message key. Lookups
// for a regional locale ("fr-CA") fall back to the base language ("fr").
type MapTranslator struct {
	mu       sync.RWMutex
	catalogs map[string]map[string]string
}

// NewMapTranslator constructs a translator seeded with catalogs.
func NewMapTranslator(catalogs map[string]map[string]string) *MapTranslator {
	t := &MapTranslator{catalogs: make(map[string]map[string]string)}
	for locale, messages := range catalogs {
		t.Add(locale, messages)
	}
	return t
}

// Add merges messages into the catalog for locale.
func (t *MapTranslator) Add(locale string, messages map[string]string) {
	locale = normalizeLocale(locale)
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.catalogs == nil {
		t.catalogs = make(map[string]map[string]string)
	}
	catalog := t.catalogs[locale]
	if catalog == nil {
		catalog = make(map[string]string, len(messages))
		t.catalogs[locale] = catalog
	}
	for key, message := range messages {
		catalog[strings.TrimSpace(key)] = message
	}
}

// Translate implements Translator.
func (t *MapTranslator) Translate(locale, key string, args ...any) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, candidate := range localeCandidates(locale) {
		catalog := t.catalogs[candidate]
		if catalog == nil {
			continue
		}
		if message, ok := catalog[key]; ok {
			if len(args) > 0 && strings.Contains(message, "%") {
				return fmt.Sprintf(message, args...), nil
			}
			return message, nil
		}
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrMissingTranslation, key, locale)
}

// Locales returns the locales with loaded catalogs.
func (t *MapTranslator) Locales() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, 0, len(t.catalogs))
	for locale := range t.catalogs {
		out = append(out, locale)
	}
	return out
}

// LoadCatalog reads a YAML (or JSON) document of the form
//
//	en:
//	  messages.required: "%s is required"
//
// from fsys and merges it into a new MapTranslator.
func LoadCatalog(fsys fs.FS, path string) (*MapTranslator, error) {
	if fsys == nil {
		return nil, errors.New("i18n: catalog filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("i18n: read catalog %s: %w", path, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML/JSON catalog payload.
func ParseCatalog(data []byte) (*MapTranslator, error) {
	var doc map[string]map[string]string
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("i18n: decode catalog: %w", err)
	}
	return NewMapTranslator(doc), nil
}

func normalizeLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	return strings.ReplaceAll(locale, "_", "-")
}

func localeCandidates(locale string) []string {
	locale = normalizeLocale(locale)
	if locale == "" {
		return []string{""}
	}
	candidates := []string{locale}
	if idx := strings.Index(locale, "-"); idx > 0 {
		candidates = append(candidates, locale[:idx])
	}
	return candidates
}
