// Package formkit is the entry point of the toolkit: it loads widget trees
// from YAML documents or OpenAPI operations, runs the init, process and
// display lifecycle over them and renders the result as HTML.
package formkit

import (
	"bytes"
	"context"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/assets"
	"github.com/goliatone/go-formkit/pkg/builder"
	"github.com/goliatone/go-formkit/pkg/ui"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// LoadForm builds a form from data. With an operation id data is read as an
// OpenAPI document and the form is derived from that operation's request
// body; otherwise data is a YAML widget tree whose root must be a form.
func LoadForm(ctx context.Context, data []byte, operationID string, options ...builder.Option) (*widgets.Form, error) {
	b := builder.New(options...)

	var root ui.Widget
	var err error
	if strings.TrimSpace(operationID) != "" {
		spec, specErr := builder.FromOpenAPI(ctx, data, operationID)
		if specErr != nil {
			return nil, specErr
		}
		root, err = b.Build(spec)
	} else {
		root, err = b.BuildDocument(data)
	}
	if err != nil {
		return nil, err
	}
	form, ok := root.(*widgets.Form)
	if !ok {
		return nil, ui.Configurationf("load", "document root %q is not a form", root.Object().ID)
	}
	return form, nil
}

// Render initialises root, processes data when it is a submission and
// returns the markup prefixed by the head entries collected while
// displaying.
func Render(root ui.Widget, data ui.FormData, options ...ui.RenderOption) ([]byte, error) {
	if err := ui.InitTree(root); err != nil {
		return nil, err
	}
	if err := ui.ProcessTree(root, data); err != nil {
		return nil, err
	}

	var body bytes.Buffer
	rc := ui.NewRenderContext(&body, options...)
	if err := ui.DisplayTree(root, rc); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := rc.Assets.Display(&out, rc.AssetURL); err != nil {
		return nil, err
	}
	out.Write(body.Bytes())
	return out.Bytes(), nil
}

// IsValid reports whether root carries no error messages. Forms must also
// have been submitted.
func IsValid(root ui.Widget) bool {
	if form, ok := root.(*widgets.Form); ok {
		return form.IsValid()
	}
	return root != nil && !ui.HasErrors(root)
}

// WithStylesheet links uri in the head entries of a render pass.
func WithStylesheet(uri string) ui.RenderOption {
	return ui.WithAssets(assets.NewSet(assets.Style(uri)))
}

// ResolveTheme asks selector for a theme and turns the selection into a
// renderer configuration. Manifest tokens become CSS custom properties and
// asset keys resolve below assetBase when it is set.
func ResolveTheme(selector theme.ThemeSelector, name, variant, assetBase string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, ui.Configurationf("theme", "theme selector is nil")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, err
	}
	if selection == nil {
		return nil, ui.NotFound("theme", name)
	}

	cfg := &theme.RendererConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
	}
	if selection.Manifest != nil && len(selection.Manifest.Tokens) > 0 {
		cfg.Tokens = make(map[string]string, len(selection.Manifest.Tokens))
		cfg.CSSVars = make(map[string]string, len(selection.Manifest.Tokens))
		for key, value := range selection.Manifest.Tokens {
			cfg.Tokens[key] = value
			cfg.CSSVars["--"+strings.TrimPrefix(key, "--")] = value
		}
	}
	if base := strings.TrimRight(strings.TrimSpace(assetBase), "/"); base != "" {
		cfg.AssetURL = func(key string) string {
			if key == "" || strings.Contains(key, "://") || strings.HasPrefix(key, "/") {
				return key
			}
			return base + "/" + key
		}
	}
	return cfg, nil
}
