package gotemplate_test

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-formkit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formkit/pkg/testsupport"
)

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	files := fstest.MapFS{
		"hello.tpl":      {Data: []byte("Hello {{ name }}!")},
		"use-global.tpl": {Data: []byte("env={{ settings.env }}")},
		"use-filter.tpl": {Data: []byte("{{ name|formkit_shout }}")},
	}
	engine, err := gotemplate.New(gotemplate.WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})
	if result != "Hello Ada!" || written != result {
		t.Fatalf("render template mismatch: result %q written %q", result, written)
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "env=staging" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("formkit_shout", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "ADA!" {
		t.Fatalf("unexpected output %q", result)
	}
	if err := engine.RegisterFilter("formkit_shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter registration to fail")
	}
}

func TestEngine_InlineOnly(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithString())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	type row struct {
		Name string `json:"name"`
	}
	result, err := engine.Render("<b>{{ name }}</b>", row{Name: "Grace"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "<b>Grace</b>" {
		t.Fatalf("unexpected output %q", result)
	}

	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without a loader")
	}
}

func TestEngine_FormkitFilters(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithString())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	cases := []struct {
		name string
		src  string
		data map[string]any
		want string
	}{
		{name: "bool value", src: "{{ on|formkit_value }}", data: map[string]any{"on": true}, want: "1"},
		{name: "string value", src: "{{ v|formkit_value }}", data: map[string]any{"v": "eu"}, want: "eu"},
		{name: "class list", src: `{{ classes|formkit_classes }}`, data: map[string]any{"classes": []any{"a b", "b", "c"}}, want: "a b c"},
		{name: "class string", src: `{{ classes|formkit_classes }}`, data: map[string]any{"classes": " x  x y "}, want: "x y"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := engine.RenderString(tc.src, tc.data)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestEngine_SanitizedOutput(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithString(), gotemplate.WithSanitizedOutput())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	got, err := engine.Render(`<p>{{ body|safe }}</p>`, map[string]any{"body": `hi<script>alert(1)</script>`})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "<p>hi</p>" {
		t.Fatalf("expected sanitized output, got %q", got)
	}
}

func TestEngine_GoTemplateOptionsReachTheEngine(t *testing.T) {
	files := fstest.MapFS{"card.html": {Data: []byte("[{{ title }}|{{ brand }}]")}}
	engine, err := gotemplate.New(
		gotemplate.WithFS(files),
		gotemplate.WithGoTemplateOptions(gotemplatepkg.WithExtension(".html")),
		gotemplate.WithGlobalData(map[string]any{"brand": "formkit"}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	got, err := engine.Render("card", map[string]any{"title": "Signup"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "[Signup|formkit]" {
		t.Fatalf("unexpected output %q", got)
	}
}
