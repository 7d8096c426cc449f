package formkit

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/builder"
	"github.com/goliatone/go-formkit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formkit/pkg/ui"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

const contactDocument = `
id: contact
kind: form
children:
  - id: email_field
    kind: field
    title: Email
    children:
      - id: email
        kind: entry
        props:
          required: true
  - id: send
    kind: button
    title: Send
`

const petsDocument = `
openapi: 3.0.3
info: {title: Pets, version: "1.0"}
paths:
  /pets:
    post:
      operationId: createPet
      requestBody:
        content:
          application/x-www-form-urlencoded:
            schema:
              type: object
              required: [name]
              properties:
                name: {type: string}
      responses:
        "201": {description: created}
`

func TestLoadForm_YAMLAndOpenAPI(t *testing.T) {
	form, err := LoadForm(context.Background(), []byte(contactDocument), "")
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}
	if form.ID != "contact" {
		t.Fatalf("expected contact form, got %q", form.ID)
	}

	pets, err := LoadForm(context.Background(), []byte(petsDocument), "createPet")
	if err != nil {
		t.Fatalf("load openapi: %v", err)
	}
	if pets.ID != "createPet" || pets.Action != "/pets" {
		t.Fatalf("unexpected openapi form %q action %q", pets.ID, pets.Action)
	}
}

func TestLoadForm_RootMustBeForm(t *testing.T) {
	_, err := LoadForm(context.Background(), []byte("id: lonely\nkind: entry\n"), "")
	if !errors.Is(err, ui.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRender_LifecycleAndValidity(t *testing.T) {
	form, err := LoadForm(context.Background(), []byte(contactDocument), "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	data := ui.NewFormData(map[string][]string{
		widgets.ProcessFieldName("contact"): {"contact"},
		"email":                             {""},
	}, true)

	out, err := Render(form, data, WithStylesheet("/formkit/formkit.css"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	if !strings.HasPrefix(html, `<link rel="stylesheet" href="/formkit/formkit.css" />`) {
		t.Fatalf("expected stylesheet link first:\n%s", html)
	}
	if !strings.Contains(html, "The Email field is required.") {
		t.Fatalf("expected required message:\n%s", html)
	}
	if IsValid(form) {
		t.Fatalf("form with errors must not be valid")
	}

	entry := widgets.NewEntry("standalone")
	if err := ui.InitTree(entry); err != nil {
		t.Fatalf("init: %v", err)
	}
	if !IsValid(entry) {
		t.Fatalf("widget without messages must be valid")
	}
}

func TestAssetsFS_ContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), DefaultStylesheet)
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), ".formkit-form-field") {
		t.Fatalf("expected stylesheet to style form fields")
	}
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
}

func (s *stubThemeSelector) Select(_, _ string, _ ...theme.QueryOption) (*theme.Selection, error) {
	return s.selection, s.err
}

func TestResolveTheme(t *testing.T) {
	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:    "acme",
			Version: "1.0.0",
			Tokens:  map[string]string{"brand": "#123456"},
		},
	}}

	cfg, err := ResolveTheme(selector, "acme", "dark", "/themes/acme/")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if diff := cmp.Diff(map[string]string{"--brand": "#123456"}, cfg.CSSVars); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.AssetURL("logo.svg"); got != "/themes/acme/logo.svg" {
		t.Fatalf("unexpected asset url %q", got)
	}

	form := widgets.NewForm("themed")
	out, err := Render(form, nil, ui.WithTheme(cfg))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "--brand: #123456;") || !strings.Contains(string(out), `data-theme="acme"`) {
		t.Fatalf("expected theme variables and attributes:\n%s", out)
	}

	if _, err := ResolveTheme(&stubThemeSelector{}, "missing", "", ""); !errors.Is(err, ui.ErrNotFound) {
		t.Fatalf("expected not found for empty selection, got %v", err)
	}
}

func TestLoadForm_SharedTemplateEngine(t *testing.T) {
	const doc = `
id: notice
kind: form
children:
  - id: intro
    kind: template
    props:
      template: intro
`
	engine, err := gotemplate.New(gotemplate.WithFS(fstest.MapFS{
		"intro.tpl": {Data: []byte(`<p class="{{ "lead lead note"|formkit_classes }}">Welcome</p>`)},
	}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	form, err := LoadForm(context.Background(), []byte(doc), "", builder.WithEngine(engine))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	out, err := Render(form, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `<p class="lead note">Welcome</p>`) {
		t.Fatalf("expected file template output:\n%s", out)
	}
}
