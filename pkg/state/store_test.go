package state

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-formkit/pkg/testsupport"
	"github.com/goliatone/go-formkit/pkg/ui"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

type fixture struct {
	form   *widgets.Form
	title  *widgets.Entry
	amount *widgets.IntegerEntry
	size   *widgets.Flydown
	tags   *widgets.CheckboxList
}

func newFixture() fixture {
	f := fixture{
		title:  widgets.NewEntry("title"),
		amount: widgets.NewIntegerEntry("amount"),
		size:   widgets.NewFlydown("size"),
		tags:   widgets.NewCheckboxList("tags"),
	}
	f.size.AddOption(1, "Small")
	f.size.AddOption(2, "Large")
	f.tags.AddOption("a", "A")
	f.tags.AddOption("b", "B")
	f.form = widgets.NewForm("edit", f.title, f.amount, f.size, f.tags)
	return f
}

func submit(t *testing.T, f fixture) {
	t.Helper()
	data := ui.NewFormData(map[string][]string{
		widgets.ProcessFieldName("edit"): {"edit"},
		"title":                          {"Draft"},
		"amount":                         {"1,500"},
		"size":                           {"2"},
		"tags[]":                         {"b"},
	}, true)
	testsupport.Lifecycle(t, f.form, data)
}

func assertRestored(t *testing.T, f fixture) {
	t.Helper()
	if f.title.Text() != "Draft" {
		t.Fatalf("title not restored: %q", f.title.Text())
	}
	if value, ok := f.amount.Int(); !ok || value != 1500 {
		t.Fatalf("amount not restored: %v %v", value, ok)
	}
	if f.size.Value != 2 {
		t.Fatalf("size must regain the option value type, got %#v", f.size.Value)
	}
	if !f.tags.IsChecked("b") || f.tags.IsChecked("a") {
		t.Fatalf("tags not restored: %v", f.tags.Values)
	}
}

func exerciseStore(t *testing.T, store Store) {
	ctx := testsupport.Context()

	original := newFixture()
	submit(t, original)
	if err := Save(ctx, store, "edit:42", original.form); err != nil {
		t.Fatalf("save: %v", err)
	}

	restored := newFixture()
	found, err := Restore(ctx, store, "edit:42", restored.form)
	if err != nil || !found {
		t.Fatalf("restore: found=%v err=%v", found, err)
	}
	assertRestored(t, restored)

	if err := store.Delete(ctx, "edit:42"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	found, err = Restore(ctx, store, "edit:42", newFixture().form)
	if err != nil || found {
		t.Fatalf("expected missing snapshot after delete, found=%v err=%v", found, err)
	}
	if _, err := store.Load(ctx, "edit:42"); !ui.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if err := store.Save(ctx, " ", nil); !ui.IsConfigurationError(err) {
		t.Fatalf("expected configuration error for blank key, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestBoltStore(t *testing.T) {
	store, err := OpenBolt(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()
	exerciseStore(t, store)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewMemoryStore().Save(ctx, "k", nil); err == nil {
		t.Fatalf("expected context error")
	}
}
