package optionsearch

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/option"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

const catalog = `
# Zones offered by the scheduling form
-- Americas
America/Chicago|Chicago
America/New_York|New York
America/New_York|Duplicate
-- Europe
Europe/Paris|Paris
Europe/Berlin
`

func loadCatalog(t *testing.T) []option.Option {
	t.Helper()
	options, err := LoadOptions(strings.NewReader(catalog))
	if err != nil {
		t.Fatalf("load options: %v", err)
	}
	return options
}

func TestLoadOptions_KeepsOrderDividersAndFirstValue(t *testing.T) {
	options := loadCatalog(t)

	var titles []string
	for _, opt := range options {
		titles = append(titles, opt.Title)
	}
	want := []string{"Americas", "Chicago", "New York", "Europe", "Paris", "Europe/Berlin"}
	if diff := cmp.Diff(want, titles); diff != "" {
		t.Fatalf("titles mismatch (-want +got):\n%s", diff)
	}
	if options[0].Selectable() || !options[1].Selectable() {
		t.Fatalf("expected leading divider followed by a plain option")
	}
	if _, err := LoadOptions(nil); err == nil {
		t.Fatalf("expected error for nil reader")
	}
}

func TestSearch(t *testing.T) {
	options := append(loadCatalog(t), option.NewBlank("Pick one"))
	cases := []struct {
		name  string
		query string
		limit int
		opts  Options
		want  []Result
	}{
		{
			name:  "title prefix before contains",
			query: "pa",
			opts:  NewOptions(),
			want:  []Result{{Value: "Europe/Paris", Label: "Paris", Group: "Europe"}},
		},
		{
			name:  "value match",
			query: "america/",
			opts:  NewOptions(),
			want: []Result{
				{Value: "America/Chicago", Label: "Chicago", Group: "Americas"},
				{Value: "America/New_York", Label: "New York", Group: "Americas"},
			},
		},
		{
			name:  "prefix ordering",
			query: "e",
			opts:  NewOptions(WithMaxLimit(3)),
			limit: 10,
			want: []Result{
				{Value: "Europe/Berlin", Label: "Europe/Berlin", Group: "Europe"},
				{Value: "America/Chicago", Label: "Chicago", Group: "Americas"},
				{Value: "America/New_York", Label: "New York", Group: "Americas"},
			},
		},
		{
			name: "empty query none",
			opts: NewOptions(),
		},
		{
			name: "empty query top",
			opts: NewOptions(WithEmptySearchMode(EmptySearchTop), WithDefaultLimit(1)),
			want: []Result{{Value: "America/Chicago", Label: "Chicago", Group: "Americas"}},
		},
		{
			name:  "negative limit",
			query: "paris",
			limit: -1,
			opts:  NewOptions(),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Search(options, tc.query, tc.limit, tc.opts)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("results mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

type searchPayload struct {
	Data []Result `json:"data"`
}

func TestHandler_SearchesFlydownOptions(t *testing.T) {
	flydown := widgets.NewFlydown("zone")
	for _, opt := range loadCatalog(t) {
		if opt.Selectable() {
			flydown.AddOption(opt.Value, opt.Title)
		} else {
			flydown.AddDivider(opt.Title)
		}
	}
	h := NewHandler(WithControl(&flydown.Control), WithSearchParam("search"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/options?search=new", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}
	var payload searchPayload
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []Result{{Value: "America/New_York", Label: "New York", Group: "Americas"}}
	if diff := cmp.Diff(want, payload.Data); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}

	flydown.AddOption("America/Newhaven", "Newhaven")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/options?search=new", nil))
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Data) != 2 {
		t.Fatalf("expected the control to be read per request, got %#v", payload.Data)
	}
}

func TestHandler_EmptyAndErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/options?q=x", nil))
	var payload searchPayload
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Data == nil || len(payload.Data) != 0 {
		t.Fatalf("expected empty data array, got %#v", payload.Data)
	}

	cases := []struct {
		name   string
		method string
		fns    []OptionFn
		want   int
	}{
		{name: "method", method: http.MethodPost, want: http.StatusMethodNotAllowed},
		{
			name:   "guard",
			method: http.MethodGet,
			fns: []OptionFn{WithGuard(func(*http.Request) error {
				return StatusError{Code: http.StatusUnauthorized}
			})},
			want: http.StatusUnauthorized,
		},
		{
			name:   "source",
			method: http.MethodGet,
			fns: []OptionFn{WithSource(func(*http.Request) ([]option.Option, error) {
				return nil, errors.New("backend down")
			})},
			want: http.StatusInternalServerError,
		},
		{name: "head", method: http.MethodHead, fns: []OptionFn{WithOptions(loadCatalog(t))}, want: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(tc.fns...).ServeHTTP(rec, httptest.NewRequest(tc.method, "/api/options?q=paris", nil))
			if rec.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestRoutes(t *testing.T) {
	if got := MountPath("/admin"); got != "/admin/api/options" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("admin/", WithRoutePath("zones")); got != "/admin/zones" {
		t.Fatalf("unexpected mount path: %q", got)
	}

	mux := http.NewServeMux()
	pattern, err := RegisterRoutes(mux, "/admin", WithOptions(loadCatalog(t)))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, pattern+"?q=berlin", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Europe/Berlin") {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}
	if _, err := RegisterRoutes(nil, "/admin"); err == nil {
		t.Fatalf("expected error for nil mux")
	}
}
