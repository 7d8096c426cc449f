package builder

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/testsupport"
	"github.com/goliatone/go-formkit/pkg/ui"
	"github.com/goliatone/go-formkit/pkg/view"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

const signupDocument = `
id: signup
kind: form
props:
  action: /signup
children:
  - id: name_field
    kind: field
    title: Name
    props:
      notes: [Your full name]
    children:
      - id: name
        kind: entry
        props:
          required: true
          max_length: 40
  - id: plan_field
    kind: field
    title: Plan
    children:
      - id: plan
        kind: flydown
        options:
          - {value: 1, title: Free}
          - {divider: true, title: Paid}
          - {value: 2, title: Pro, classes: [popular]}
  - id: seats
    kind: integer
    props:
      minimum: 1
      maximum: 10
  - id: send
    kind: button
    props:
      stock: create
`

func TestBuildDocument_FormLifecycle(t *testing.T) {
	root, err := New().BuildDocument([]byte(signupDocument))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	form, ok := root.(*widgets.Form)
	if !ok {
		t.Fatalf("expected *widgets.Form, got %T", root)
	}
	data := ui.NewFormData(map[string][]string{
		widgets.ProcessFieldName("signup"): {"signup"},
		"name":                             {""},
		"plan":                             {"2"},
		"seats":                            {"12"},
		"send":                             {"Create"},
	}, true)
	out := testsupport.Lifecycle(t, form, data)

	if form.IsValid() {
		t.Fatalf("expected invalid form")
	}
	plan, _ := ui.FindWidget(form, "plan")
	if got := plan.(*widgets.Flydown).Value; got != 2 {
		t.Fatalf("expected plan 2, got %#v", got)
	}
	if button, ok := form.ClickedButton(); !ok || button.ID != "send" {
		t.Fatalf("expected send button to be clicked")
	}
	testsupport.AssertContainsInOrder(t, out,
		`<form id="signup" method="post" action="/signup"`,
		`The Name field is required.`,
		`<div class="formkit-note">Your full name</div>`,
		`<option value="" disabled class="formkit-option-divider">Paid</option>`,
		`<option value="2" selected class="popular">Pro</option>`,
		`id="seats"`,
		`value="Create"`,
	)
	seats, _ := ui.FindWidget(form, "seats")
	if messages := seats.Messages(); len(messages) != 1 || !strings.Contains(messages[0].Primary, "more than 10") {
		t.Fatalf("unexpected seats messages: %+v", messages)
	}
}

func TestBuild_Errors(t *testing.T) {
	b := New()
	if _, err := b.Build(Spec{ID: "x", Kind: "carousel"}); !errors.Is(err, ui.ErrNotFound) {
		t.Fatalf("expected not found for unknown kind, got %v", err)
	}
	leaf := Spec{ID: "e", Kind: KindEntry, Children: []Spec{{ID: "c", Kind: KindEntry}}}
	if _, err := b.Build(leaf); !errors.Is(err, ui.ErrConfiguration) {
		t.Fatalf("expected configuration error for children of a leaf, got %v", err)
	}
	nested := Spec{ID: "a", Kind: KindForm, Children: []Spec{{ID: "b", Kind: KindForm}}}
	if _, err := b.Build(nested); !errors.Is(err, ui.ErrConfiguration) {
		t.Fatalf("expected configuration error for nested forms, got %v", err)
	}
	badMapping := Spec{ID: "t", Kind: KindTableView, Columns: []ColumnSpec{{
		ID: "c", Renderers: []RendererSpec{{ID: "r", Kind: RendererText, Mappings: []string{"text"}}},
	}}}
	if _, err := b.Build(badMapping); !errors.Is(err, ui.ErrConfiguration) {
		t.Fatalf("expected configuration error for malformed mapping, got %v", err)
	}
}

type person struct {
	ID     int
	Name   string
	Active bool
}

func TestBuild_TableViewWithSelector(t *testing.T) {
	doc := `
id: people
kind: table_view
props:
  row_id_field: ID
columns:
  - id: pick
    renderers:
      - {id: chosen, kind: checkbox, mappings: ["value:ID"]}
  - id: name
    title: Name
    renderers:
      - {id: name_text, kind: text, mappings: ["text:Name"]}
  - id: active
    title: Active
    renderers:
      - {id: active_flag, kind: boolean, props: {true_content: "On"}, mappings: ["value:Active"]}
`
	root, err := New().BuildDocument([]byte(doc))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	table := root.(*view.TableView)
	table.Model = []any{person{1, "Ada", true}, person{2, "Linus", false}}

	data := ui.NewFormData(map[string][]string{"chosen[]": {"2"}}, true)
	out := testsupport.Lifecycle(t, table, data)

	selection, err := table.SelectionByID("chosen")
	if err != nil {
		t.Fatalf("selection: %v", err)
	}
	if diff := cmp.Diff([]string{"2"}, selection.Items()); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
	testsupport.AssertContainsInOrder(t, out,
		`<tr data-row-id="1">`, `Ada`, `On`,
		`<tr class="odd" data-row-id="2">`, `value="2" checked`, `Linus`, `No`,
	)
}

func TestBuild_TreeKindsSubmitIndexPaths(t *testing.T) {
	const doc = `
id: prefs
kind: form
children:
  - id: region
    kind: tree_flydown
    options:
      - value: eu
        title: Europe
        children:
          - {value: de, title: Germany}
      - {value: eu/de, title: Elsewhere}
  - id: topics
    kind: checkbox_tree
    props:
      required: true
    options:
      - value: lang
        title: Languages
        children:
          - {value: go, title: Go}
          - {value: zig, title: Zig}
`
	root, err := New().BuildDocument([]byte(doc))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	form := root.(*widgets.Form)
	data := ui.NewFormData(map[string][]string{
		widgets.ProcessFieldName("prefs"): {"prefs"},
		"region":                          {"0.0"},
		"topics[]":                        {"0.1"},
	}, true)
	out := testsupport.Lifecycle(t, form, data)

	region := ui.DescendantsOf[*widgets.TreeFlydown](form)[0]
	if region.Value != "de" {
		t.Fatalf("expected de, got %v", region.Value)
	}
	topics := ui.DescendantsOf[*widgets.CheckboxTree](form)[0]
	if diff := cmp.Diff([]any{"zig"}, topics.Values); diff != "" {
		t.Fatalf("topics mismatch (-want +got):\n%s", diff)
	}
	if !form.IsValid() {
		t.Fatalf("expected valid form")
	}
	testsupport.AssertContainsInOrder(t, out,
		`<option value="0.0" selected>`,
		`<option value="1">Elsewhere</option>`,
		`id="topics_0.1" value="0.1" checked />`,
	)
}

func TestRegistry(t *testing.T) {
	b := New(WithWidget("greeting", func(_ *Builder, s Spec) (ui.Widget, error) {
		return widgets.NewContentBlock(s.ID, "hello "+s.String("who")), nil
	}))
	if !b.Widgets.Has("greeting") || !b.Widgets.Has(KindForm) {
		t.Fatalf("expected built-in and custom kinds")
	}
	if err := b.Widgets.Register(KindForm, nil); !errors.Is(err, ui.ErrConfiguration) {
		t.Fatalf("expected duplicate registration error, got %v", err)
	}
	w, err := b.Build(Spec{ID: "g", Kind: "greeting", Props: map[string]any{"who": "world"}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if out := testsupport.Lifecycle(t, w, nil); out != "hello world" {
		t.Fatalf("unexpected output %q", out)
	}
	kinds := b.Renderers.List()
	if diff := cmp.Diff([]string{"boolean", "checkbox", "image", "link", "null_text", "numeric", "radio", "template", "text"}, kinds); diff != "" {
		t.Fatalf("renderer kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDecodeKeepsTree(t *testing.T) {
	spec, err := Decode([]byte(signupDocument))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	encoded, err := Encode(spec)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	again, err := Decode(encoded)
	if err != nil {
		t.Fatalf("decode again: %v", err)
	}
	if diff := cmp.Diff(spec, again); diff != "" {
		t.Fatalf("document changed (-want +got):\n%s", diff)
	}
}
