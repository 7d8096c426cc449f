package option

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/ui"
)

func titles(opts []Option) []string {
	out := make([]string, 0, len(opts))
	for _, opt := range opts {
		out = append(out, opt.Title)
	}
	return out
}

func TestControl_MetadataFollowsOptionIdentity(t *testing.T) {
	var c Control
	first := c.AddOption("x", "First")
	second := c.AddOption("x", "Second")

	if err := c.SetOptionMetadata(second, MetaClasses, "highlight bold"); err != nil {
		t.Fatalf("set metadata: %v", err)
	}
	if _, ok := c.OptionMetadataValue(first, MetaClasses); ok {
		t.Fatalf("metadata must not leak between options sharing a value")
	}
	if diff := cmp.Diff([]string{"highlight", "bold"}, c.OptionClasses(second)); diff != "" {
		t.Fatalf("classes mismatch (-want +got):\n%s", diff)
	}

	if _, err := c.RemoveOption(second); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := c.OptionMetadata(second); ok {
		t.Fatalf("metadata must be removed with its option")
	}
	if _, err := c.RemoveOption(second); !errors.Is(err, ui.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double removal, got %v", err)
	}
}

func TestControl_MetadataValueAbsentIsNotAnError(t *testing.T) {
	var c Control
	h := c.AddOption(1, "One")
	if value, ok := c.OptionMetadataValue(h, "missing"); ok || value != nil {
		t.Fatalf("expected absent metadata")
	}
	if _, ok := c.OptionMetadataValue(Handle(99), "classes"); ok {
		t.Fatalf("expected absent metadata for unknown handle")
	}
}

func TestControl_RemoveOptionsByValueRemovesAll(t *testing.T) {
	var c Control
	c.AddOption("a", "A1")
	c.AddOption("b", "B")
	c.AddOption("a", "A2")

	removed := c.RemoveOptionsByValue("a")
	if diff := cmp.Diff([]string{"A1", "A2"}, titles(removed)); diff != "" {
		t.Fatalf("removed mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"B"}, titles(c.Options())); diff != "" {
		t.Fatalf("remaining mismatch (-want +got):\n%s", diff)
	}
}

func TestControl_AddOptionsByArrayPreservesOrder(t *testing.T) {
	var c Control
	c.AddOptionsByArray([]string{"z", "a", "m"}, map[string]string{"z": "Zed", "a": "Ay"})
	if diff := cmp.Diff([]string{"Zed", "Ay", "m"}, titles(c.Options())); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestControl_ValidateUniqueValues(t *testing.T) {
	var c Control
	c.AddOption("x", "One")
	c.AddDivider("--")
	c.AddDivider("--")
	if err := c.ValidateUniqueValues(); err != nil {
		t.Fatalf("dividers must not count as duplicates: %v", err)
	}
	c.AddOption("x", "Two")
	if err := c.ValidateUniqueValues(); !errors.Is(err, ui.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestControl_ValueEqualityUsesScalarForm(t *testing.T) {
	var c Control
	c.AddOption(7, "Seven")
	if got := c.OptionsByValue("7"); len(got) != 1 {
		t.Fatalf("expected int and string values to compare equal, got %d", len(got))
	}
}

func TestControl_CopyIsIndependent(t *testing.T) {
	var c Control
	h := c.AddOption("a", "A")
	clone := c.CopyControl()
	if err := clone.SetOptionMetadata(h, "k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok := c.OptionMetadataValue(h, "k"); ok {
		t.Fatalf("metadata shared between copies")
	}
}

func TestTreeOptionsPaths(t *testing.T) {
	root := NewTree("Regions")
	europe := root.Add(New("eu", "Europe"))
	europe.Add(New("fr", "France"))
	spain := europe.Add(New("es", "Spain"))

	if spain.PathString() != "0.1" || root.Count() != 4 {
		t.Fatalf("unexpected tree shape: %q / %d", spain.PathString(), root.Count())
	}
}
