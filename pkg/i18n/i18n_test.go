package i18n

import (
	"errors"
	"testing"
	"testing/fstest"
)

func TestMapTranslator_FallsBackToBaseLanguage(t *testing.T) {
	tr := NewMapTranslator(map[string]map[string]string{
		"fr": {"save": "Enregistrer"},
	})
	got, err := tr.Translate("fr_CA", "save")
	if err != nil || got != "Enregistrer" {
		t.Fatalf("expected base language translation, got %q (%v)", got, err)
	}
	if _, err := tr.Translate("fr", "missing"); !errors.Is(err, ErrMissingTranslation) {
		t.Fatalf("expected ErrMissingTranslation, got %v", err)
	}
}

func TestMapTranslator_FormatsArgs(t *testing.T) {
	tr := NewMapTranslator(map[string]map[string]string{
		"en": {"required": "%s is required"},
	})
	got, _ := tr.Translate("en", "required", "Name")
	if got != "Name is required" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestTranslate_Fallbacks(t *testing.T) {
	if got := Translate(nil, "en", "key", "Fallback", nil); got != "Fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := Translate(nil, "en", "key", "", nil); got != "key" {
		t.Fatalf("expected key, got %q", got)
	}
	var seen error
	handler := func(_ string, _ string, _ []any, err error) string {
		seen = err
		return "handled"
	}
	if got := Translate(nil, "en", "key", "x", handler); got != "handled" || !errors.Is(seen, ErrMissingTranslator) {
		t.Fatalf("expected handler to run with ErrMissingTranslator, got %q (%v)", got, seen)
	}
}

func TestLoadCatalog(t *testing.T) {
	fsys := fstest.MapFS{
		"catalog.yaml": &fstest.MapFile{Data: []byte("en:\n  hello: Hello\nes:\n  hello: Hola\n")},
	}
	tr, err := LoadCatalog(fsys, "catalog.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got, _ := tr.Translate("es", "hello"); got != "Hola" {
		t.Fatalf("unexpected translation %q", got)
	}
}

func TestNumberFormatter_English(t *testing.T) {
	f := NewNumberFormatter("en")
	if got := f.FormatInt(1234567); got != "1,234,567" {
		t.Fatalf("unexpected integer format %q", got)
	}
	if got := f.FormatFloat(1234.5, 2); got != "1,234.50" {
		t.Fatalf("unexpected float format %q", got)
	}
	value, err := f.Parse("1,234.25")
	if err != nil || value != 1234.25 {
		t.Fatalf("unexpected parse %v (%v)", value, err)
	}
	if got := f.Decimals("12.345"); got != 3 {
		t.Fatalf("expected 3 decimals, got %d", got)
	}
}

func TestNumberFormatter_ParseIntRejectsGarbage(t *testing.T) {
	f := NewNumberFormatter("")
	if _, err := f.ParseInt("12a"); err == nil {
		t.Fatalf("expected parse error")
	}
	if v, err := f.ParseInt("2,000"); err != nil || v != 2000 {
		t.Fatalf("unexpected parse %d (%v)", v, err)
	}
}
