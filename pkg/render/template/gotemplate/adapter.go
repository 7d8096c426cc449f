package gotemplate

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-formkit/pkg/htmltag"
	"github.com/goliatone/go-formkit/pkg/option"
	"github.com/goliatone/go-formkit/pkg/render/template"
)

// inlineFS is the empty loader root of engines that only render inline
// template strings.
var inlineFS embed.FS

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	engineOpts []gotemplatepkg.Option
	hasLoader  bool
	inlineOnly bool
	sanitize   bool
}

// WithBaseDir loads named templates from a directory on disk.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			return
		}
		cfg.hasLoader = true
		cfg.engineOpts = append(cfg.engineOpts, gotemplatepkg.WithBaseDir(dir))
	}
}

// WithFS loads named templates from files.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		if files == nil {
			return
		}
		cfg.hasLoader = true
		cfg.engineOpts = append(cfg.engineOpts, gotemplatepkg.WithFS(files))
	}
}

// WithExtension overrides the ".tpl" extension appended to template names.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		if ext = strings.TrimSpace(ext); ext != "" {
			cfg.engineOpts = append(cfg.engineOpts, gotemplatepkg.WithExtension(ext))
		}
	}
}

// WithTemplateFunc registers pongo2 filters (values of type
// pongo2.FilterFunction) and global helper functions.
func WithTemplateFunc(funcs map[string]any) Option {
	return func(cfg *config) {
		if len(funcs) > 0 {
			cfg.engineOpts = append(cfg.engineOpts, gotemplatepkg.WithTemplateFunc(funcs))
		}
	}
}

// WithGlobalData seeds values available to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) > 0 {
			cfg.engineOpts = append(cfg.engineOpts, gotemplatepkg.WithGlobalData(data))
		}
	}
}

// WithGoTemplateOptions passes options straight to the go-template engine.
func WithGoTemplateOptions(opts ...gotemplatepkg.Option) Option {
	return func(cfg *config) {
		for _, opt := range opts {
			if opt != nil {
				cfg.engineOpts = append(cfg.engineOpts, opt)
			}
		}
	}
}

// WithString allows an engine without a loader, for callers that only
// render inline template strings.
func WithString() Option {
	return func(cfg *config) {
		cfg.inlineOnly = true
	}
}

// WithSanitizedOutput passes every rendered template through
// htmltag.Sanitize. Use it for templates authored by end users.
func WithSanitizedOutput() Option {
	return func(cfg *config) {
		cfg.sanitize = true
	}
}

// Engine renders pongo2 templates through go-template. Names containing
// template markup are rendered inline; other names load "<name><ext>" from
// the configured directory or file system.
type Engine struct {
	*gotemplatepkg.Engine
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine. Every engine carries the formkit filters
// (formkit_value, formkit_classes).
func New(options ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	if !cfg.hasLoader {
		if !cfg.inlineOnly {
			return nil, errors.New("gotemplate: need to provide either base dir or fs.FS")
		}
		cfg.engineOpts = append(cfg.engineOpts, gotemplatepkg.WithFS(inlineFS))
	}

	opts := append([]gotemplatepkg.Option{gotemplatepkg.WithTemplateFunc(Filters())}, cfg.engineOpts...)
	engine, err := gotemplatepkg.NewRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: %w", err)
	}
	if cfg.sanitize {
		engine.RegisterPostHook(func(ctx *gotemplatepkg.HookContext) (string, error) {
			return htmltag.Sanitize(ctx.Output), nil
		})
	}
	return &Engine{Engine: engine}, nil
}

// Filters returns the formkit template filters:
//
//	formkit_value    option value in submitted form ("1"/"0" for booleans)
//	formkit_classes  space separated, de-duplicated class list from a string or list
func Filters() map[string]any {
	return map[string]any{
		"formkit_value":   pongo2.FilterFunction(filterValue),
		"formkit_classes": pongo2.FilterFunction(filterClasses),
	}
}

func filterValue(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(option.ValueString(in.Interface())), nil
}

func filterClasses(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	var tokens []string
	seen := make(map[string]struct{})
	add := func(raw string) {
		for _, token := range strings.Fields(raw) {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			tokens = append(tokens, token)
		}
	}
	if in.IsString() || !in.CanSlice() {
		add(in.String())
	} else {
		in.Iterate(func(_, _ int, key, _ *pongo2.Value) bool {
			add(key.String())
			return true
		}, func() {})
	}
	return pongo2.AsValue(strings.Join(tokens, " ")), nil
}
