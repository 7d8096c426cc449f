package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/goliatone/go-formkit/pkg/i18n"
	"github.com/goliatone/go-formkit/pkg/state"
	"github.com/goliatone/go-formkit/pkg/ui"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// DefaultMaxMemory bounds multipart parsing, matching net/http.
const DefaultMaxMemory int64 = 32 << 20

// BuildFunc returns a fresh widget tree for a request. Trees are never
// shared between requests.
type BuildFunc func(r *http.Request) (*widgets.Form, error)

// SubmitFunc handles a valid submission. It owns the response: a typical
// implementation redirects. A returned error is reported as a 500 unless it
// implements HTTPError.
type SubmitFunc func(w http.ResponseWriter, r *http.Request, form *widgets.Form) error

// GuardFunc rejects requests before the tree is built.
type GuardFunc func(r *http.Request) error

// StateKeyFunc names the stored state snapshot for a request. An empty key
// disables persistence for that request.
type StateKeyFunc func(r *http.Request) string

type Options struct {
	Build    BuildFunc
	OnSubmit SubmitFunc
	Guard    GuardFunc

	// Translator and Locales drive the render locale negotiated from
	// Accept-Language. The first locale is the fallback.
	Translator i18n.Translator
	Locales    []string

	// Store persists widget states of submitted forms under StateKey and
	// restores them on GET.
	Store    state.Store
	StateKey StateKeyFunc

	RenderOptions []ui.RenderOption
	MaxMemory     int64
	Logger        *slog.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		MaxMemory: DefaultMaxMemory,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.MaxMemory <= 0 {
		opts.MaxMemory = DefaultMaxMemory
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Locales != nil {
		opts.Locales = append([]string{}, opts.Locales...)
	}
	if opts.RenderOptions != nil {
		opts.RenderOptions = append([]ui.RenderOption{}, opts.RenderOptions...)
	}
	return opts
}

func WithBuild(fn BuildFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Build = fn
	}
}

func WithSubmit(fn SubmitFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.OnSubmit = fn
	}
}

func WithGuard(fn GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = fn
	}
}

// WithTranslator sets the translator and the locales offered to clients.
func WithTranslator(t i18n.Translator, locales ...string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Translator = t
		o.Locales = locales
	}
}

// WithStateStore enables state persistence.
func WithStateStore(store state.Store, key StateKeyFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Store = store
		o.StateKey = key
	}
}

func WithRenderOptions(opts ...ui.RenderOption) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RenderOptions = append(o.RenderOptions, opts...)
	}
}

func WithMaxMemory(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxMemory = limit
	}
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func (o Options) stateKey(r *http.Request) string {
	if o.Store == nil || o.StateKey == nil {
		return ""
	}
	return o.StateKey(r)
}

func requestContext(r *http.Request) context.Context {
	if r == nil {
		return context.Background()
	}
	return r.Context()
}
