package ui

import (
	"fmt"
	"io"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/assets"
	"github.com/goliatone/go-formkit/pkg/i18n"
)

// RenderContext is threaded through one display pass. It carries the output
// sink, the translation and locale collaborators, the theme selection, the
// accumulating head entries and the markers used to emit shared snippets
// only once per pass.
type RenderContext struct {
	Writer     io.Writer
	Translator i18n.Translator
	OnMissing  i18n.MissingHandler
	Locale     string
	Numbers    *i18n.NumberFormatter
	Theme      *theme.RendererConfig
	Assets     *assets.Set

	emitted map[string]struct{}
}

// RenderOption customises a RenderContext.
type RenderOption func(*RenderContext)

// WithTranslator sets the translator and locale used by T.
func WithTranslator(t i18n.Translator, locale string) RenderOption {
	return func(rc *RenderContext) {
		rc.Translator = t
		rc.Locale = strings.TrimSpace(locale)
	}
}

// WithMissingTranslationHandler overrides the fallback used by T.
func WithMissingTranslationHandler(handler i18n.MissingHandler) RenderOption {
	return func(rc *RenderContext) {
		rc.OnMissing = handler
	}
}

// WithLocale sets the locale used for number formatting and translation.
func WithLocale(locale string) RenderOption {
	return func(rc *RenderContext) {
		rc.Locale = strings.TrimSpace(locale)
	}
}

// WithTheme attaches a resolved theme selection.
func WithTheme(cfg *theme.RendererConfig) RenderOption {
	return func(rc *RenderContext) {
		rc.Theme = cfg
	}
}

// WithAssets shares an asset set across render passes.
func WithAssets(set *assets.Set) RenderOption {
	return func(rc *RenderContext) {
		if set != nil {
			rc.Assets = set
		}
	}
}

// NewRenderContext constructs a render context writing to w.
func NewRenderContext(w io.Writer, opts ...RenderOption) *RenderContext {
	if w == nil {
		w = io.Discard
	}
	rc := &RenderContext{Writer: w}
	for _, opt := range opts {
		if opt != nil {
			opt(rc)
		}
	}
	if rc.Assets == nil {
		rc.Assets = assets.NewSet()
	}
	if rc.Numbers == nil {
		rc.Numbers = i18n.NewNumberFormatter(rc.Locale)
	}
	return rc
}

// Once returns true the first time key is seen during this render pass.
func (rc *RenderContext) Once(key string) bool {
	if rc.emitted == nil {
		rc.emitted = make(map[string]struct{})
	}
	if _, ok := rc.emitted[key]; ok {
		return false
	}
	rc.emitted[key] = struct{}{}
	return true
}

// T translates key, falling back to fallback (or the key) when no translator
// is configured or the lookup fails.
func (rc *RenderContext) T(key, fallback string, args ...any) string {
	if rc == nil {
		if fallback != "" {
			return fallback
		}
		return key
	}
	return i18n.Translate(rc.Translator, rc.Locale, key, fallback, rc.OnMissing, args...)
}

// NumberFormatter returns the locale-aware formatter for this pass.
func (rc *RenderContext) NumberFormatter() *i18n.NumberFormatter {
	if rc.Numbers == nil {
		rc.Numbers = i18n.NewNumberFormatter(rc.Locale)
	}
	return rc.Numbers
}

// AssetURL resolves an asset path through the theme when one is set.
func (rc *RenderContext) AssetURL(path string) string {
	return assets.ThemeResolver(rc.Theme)(path)
}

// AddHeadEntries merges widget head entries into the pass-wide set.
func (rc *RenderContext) AddHeadEntries(set *assets.Set) {
	if rc.Assets == nil {
		rc.Assets = assets.NewSet()
	}
	rc.Assets.Merge(set)
}

// WriteString writes raw markup to the output sink.
func (rc *RenderContext) WriteString(s string) error {
	if s == "" {
		return nil
	}
	if _, err := io.WriteString(rc.Writer, s); err != nil {
		return fmt.Errorf("ui: write markup: %w", err)
	}
	return nil
}

// With returns a shallow copy of rc writing to w. Once markers are shared with
// the original so nested buffers do not re-emit shared snippets.
func (rc *RenderContext) With(w io.Writer) *RenderContext {
	if rc.emitted == nil {
		rc.emitted = make(map[string]struct{})
	}
	clone := *rc
	clone.Writer = w
	return &clone
}
