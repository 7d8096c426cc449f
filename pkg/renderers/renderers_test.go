package renderers_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/cell"
	"github.com/goliatone/go-formkit/pkg/renderers"
	"github.com/goliatone/go-formkit/pkg/testsupport"
	"github.com/goliatone/go-formkit/pkg/ui"
	"github.com/goliatone/go-formkit/pkg/view"
)

type account struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Active  bool    `json:"active"`
	Balance float64 `json:"balance"`
	Note    any     `json:"note"`
}

func accounts() []any {
	return []any{
		account{ID: 1, Name: "Ada", Active: true, Balance: 1234.5},
		account{ID: 2, Name: "Grace", Balance: 12},
		account{ID: 3, Name: "Linus", Active: true, Balance: -7.25, Note: "vip"},
	}
}

func render(t *testing.T, r cell.Renderer, opts ...ui.RenderOption) string {
	t.Helper()
	var buf bytes.Buffer
	if err := r.Render(ui.NewRenderContext(&buf, opts...)); err != nil {
		t.Fatalf("render %s: %v", r.Object().ID, err)
	}
	return buf.String()
}

func TestCheckbox_SelectionRoundTrip(t *testing.T) {
	check := renderers.NewCheckbox("items")
	selectColumn := view.NewColumn("select", "")
	if err := selectColumn.AddRendererWithMappings(check, cell.NewMapping("value", "id")); err != nil {
		t.Fatalf("mapping: %v", err)
	}
	name := renderers.NewText("name_text")
	nameColumn := view.NewColumn("name", "Name")
	if err := nameColumn.AddRendererWithMappings(name, cell.NewMapping("text", "name")); err != nil {
		t.Fatalf("mapping: %v", err)
	}
	table := view.NewTableView("accounts", selectColumn, nameColumn)
	table.Model = accounts()

	data := ui.NewFormData(map[string][]string{"items[]": {"1", "3"}}, true)
	out := testsupport.Lifecycle(t, table, data)

	selection, err := table.SelectionByID("items")
	if err != nil {
		t.Fatalf("selection: %v", err)
	}
	if diff := cmp.Diff([]string{"1", "3"}, selection.Items()); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
	if got := strings.Count(out, " checked"); got != 2 {
		t.Fatalf("expected two checked inputs, got %d:\n%s", got, out)
	}
	testsupport.AssertContainsInOrder(t, out,
		`name="items[]" id="items_1" value="1" checked`,
		`Ada`,
		`name="items[]" id="items_2" value="2" class=`,
		`Grace`,
	)
}

func TestRadio_KeepsSingleValue(t *testing.T) {
	radio := renderers.NewRadio("choice")
	column := view.NewColumn("pick", "", radio)
	if err := column.AddMappingToRenderer(radio, cell.NewMapping("value", "id")); err != nil {
		t.Fatalf("mapping: %v", err)
	}
	table := view.NewTableView("accounts", column)
	table.Model = accounts()

	out := testsupport.Lifecycle(t, table, ui.NewFormData(map[string][]string{"choice": {"2"}}, true))
	selection, _ := table.Selection(nil)
	if diff := cmp.Diff([]string{"2"}, selection.Items()); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(out, `type="radio" name="choice" id="choice_2" value="2" checked`) {
		t.Fatalf("expected second radio checked:\n%s", out)
	}
}

func TestSelectors_RequireView(t *testing.T) {
	check := renderers.NewCheckbox("orphan")
	if _, err := check.Checked(); !ui.IsConfigurationError(err) {
		t.Fatalf("expected configuration error outside a view, got %v", err)
	}
}

func TestText_Formatting(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		value  any
		ctype  string
		expect string
	}{
		{name: "plain", text: "a < b", expect: "a &lt; b"},
		{name: "value only", value: 42, expect: "42"},
		{name: "format", text: "#%v", value: 7, expect: "#7"},
		{name: "array", text: "%v-%v", value: cell.ToArray([]any{1, 2}), expect: "1-2"},
		{name: "markup", text: "<b>%s</b>", value: "x", ctype: "text/xml", expect: "<b>x</b>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := renderers.NewText("t")
			_ = r.SetProperty("text", tc.text)
			_ = r.SetProperty("value", tc.value)
			if tc.ctype != "" {
				_ = r.SetProperty("content_type", tc.ctype)
			}
			if got := render(t, r); got != tc.expect {
				t.Fatalf("want %q, got %q", tc.expect, got)
			}
		})
	}
}

func TestNullText(t *testing.T) {
	r := renderers.NewNullText("note")
	if got := render(t, r); got != `<span class="formkit-null-text-cell-renderer">&lt;none&gt;</span>` {
		t.Fatalf("unexpected null output %q", got)
	}
	_ = r.SetProperty("text", "vip")
	if got := render(t, r); got != "vip" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestBoolean_ContentAndClasses(t *testing.T) {
	r := renderers.NewBoolean("active")
	set := cell.NewSet()
	if err := set.AddWithMappings(r, cell.NewMapping("value", "active")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := set.ApplyMappingsToRenderer(r, accounts()[0]); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := render(t, r); got != "Yes" {
		t.Fatalf("want Yes, got %q", got)
	}
	if diff := cmp.Diff([]string{"formkit-boolean-cell-renderer", "formkit-boolean-true"}, cell.CSSClassNames(r, true)); diff != "" {
		t.Fatalf("classes mismatch (-want +got):\n%s", diff)
	}

	if err := set.ApplyMappingsToRenderer(r, accounts()[1]); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := render(t, r); got != "No" {
		t.Fatalf("want No, got %q", got)
	}
}

func TestNumeric_Locale(t *testing.T) {
	cases := []struct {
		name      string
		locale    string
		value     any
		precision int
		expect    string
	}{
		{name: "integer", locale: "en", value: 1234567, precision: -1, expect: "1,234,567"},
		{name: "natural", locale: "en", value: 1234.5, precision: -1, expect: "1,234.5"},
		{name: "fixed", locale: "en", value: 12, precision: 2, expect: "12.00"},
		{name: "german", locale: "de", value: 1234.5, precision: -1, expect: "1.234,5"},
		{name: "null", locale: "en", value: nil, precision: -1, expect: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := renderers.NewNumeric("balance")
			_ = r.SetProperty("value", tc.value)
			_ = r.SetProperty("precision", tc.precision)
			if got := render(t, r, ui.WithLocale(tc.locale)); got != tc.expect {
				t.Fatalf("want %q, got %q", tc.expect, got)
			}
		})
	}
}

func TestLink_SensitiveAndInsensitive(t *testing.T) {
	r := renderers.NewLink("edit")
	set := cell.NewSet()
	if err := set.AddWithMappings(r,
		cell.NewMapping("link_value", "id"),
		cell.NewMapping("value", "name"),
		cell.NewMapping("sensitive", "active"),
	); err != nil {
		t.Fatalf("add: %v", err)
	}
	_ = r.SetProperty("link", "/accounts/%v/edit")
	_ = r.SetProperty("text", "Edit %s")

	if err := set.ApplyMappingsToRenderer(r, accounts()[0]); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := render(t, r); got != `<a href="/accounts/1/edit">Edit Ada</a>` {
		t.Fatalf("unexpected link %q", got)
	}
	if err := set.ApplyMappingsToRenderer(r, accounts()[1]); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := render(t, r); got != `<span class="formkit-link-cell-renderer-insensitive">Edit Grace</span>` {
		t.Fatalf("unexpected insensitive link %q", got)
	}
}

func TestImage(t *testing.T) {
	r := renderers.NewImage("avatar")
	_ = r.SetProperty("image", "/avatars/%v.png")
	_ = r.SetProperty("value", 3)
	_ = r.SetProperty("alt", "Avatar")
	_ = r.SetProperty("width", 32)
	if got := render(t, r); got != `<img src="/avatars/3.png" alt="Avatar" width="32" />` {
		t.Fatalf("unexpected image %q", got)
	}
}

func TestTemplate_UsesMappedProperties(t *testing.T) {
	r := renderers.NewTemplate("tpl", "<em>{{ name }}</em>#{{ id }}", nil)
	set := cell.NewSet()
	if err := set.AddWithMappings(r, cell.NewMapping("name", "name")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := set.AddMappings(r, cell.NewMapping("template", "name")); !ui.IsConfigurationError(err) {
		t.Fatalf("expected static template source to reject mappings, got %v", err)
	}
	if err := set.ApplyMappingsToRenderer(r, accounts()[1]); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := render(t, r); got != "<em>Grace</em>#tpl" {
		t.Fatalf("unexpected template output %q", got)
	}
}

func TestCopyKeepsConcreteType(t *testing.T) {
	originals := []cell.Renderer{
		renderers.NewText("a"), renderers.NewNullText("b"), renderers.NewBoolean("c"),
		renderers.NewNumeric("d"), renderers.NewLink("e"), renderers.NewImage("f"),
		renderers.NewTemplate("g", "", nil), renderers.NewCheckbox("h"), renderers.NewRadio("i"),
	}
	for _, r := range originals {
		clone, ok := r.Copy("_x").(cell.Renderer)
		if !ok {
			t.Fatalf("copy of %s is not a renderer", r.Object().ID)
		}
		if clone.Object().ID != r.Object().ID+"_x" {
			t.Fatalf("unexpected copy id %q", clone.Object().ID)
		}
		if !ui.Same(clone.Object().Self(), clone) {
			t.Fatalf("copy of %s is not bound to itself", r.Object().ID)
		}
	}
}
