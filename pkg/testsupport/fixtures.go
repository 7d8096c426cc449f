package testsupport

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/goliatone/go-formkit/pkg/ui"
)

// Lifecycle runs Init, Process and Display over root and returns the markup.
// A nil data value skips the processing step.
func Lifecycle(t *testing.T, root ui.Widget, data ui.FormData, opts ...ui.RenderOption) string {
	t.Helper()

	if err := ui.InitTree(root); err != nil {
		t.Fatalf("init tree: %v", err)
	}
	if data != nil {
		if err := ui.ProcessTree(root, data); err != nil {
			t.Fatalf("process tree: %v", err)
		}
	}
	return Display(t, root, opts...)
}

// Display renders root into a string.
func Display(t *testing.T, root ui.Widget, opts ...ui.RenderOption) string {
	t.Helper()

	var buf bytes.Buffer
	if err := root.Display(ui.NewRenderContext(&buf, opts...)); err != nil {
		t.Fatalf("display: %v", err)
	}
	return buf.String()
}

// AssertContainsInOrder fails unless every part occurs in out, each after the
// previous one.
func AssertContainsInOrder(t *testing.T, out string, parts ...string) {
	t.Helper()

	offset := 0
	for _, part := range parts {
		idx := strings.Index(out[offset:], part)
		if idx < 0 {
			t.Fatalf("expected %q after offset %d in:\n%s", part, offset, out)
		}
		offset += idx + len(part)
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
