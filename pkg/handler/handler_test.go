package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goliatone/go-formkit/pkg/state"
	"github.com/goliatone/go-formkit/pkg/ui"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

func buildSignup(_ *http.Request) (*widgets.Form, error) {
	name := widgets.NewEntry("name")
	name.Required = true
	submit := widgets.NewButton("submit")
	submit.TitleText = "Save"
	return widgets.NewForm("signup",
		widgets.NewFormField("name_field", "Name", name),
		submit,
	), nil
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func signupValues(name string) url.Values {
	return url.Values{
		widgets.ProcessFieldName("signup"): {"signup"},
		"name":                             {name},
		"submit":                           {"Save"},
	}
}

func testContext() context.Context { return context.Background() }

func entryText(t *testing.T, form *widgets.Form) string {
	t.Helper()
	w, err := ui.FindWidget(form, "name")
	if err != nil {
		t.Fatalf("find name entry: %v", err)
	}
	return w.(*widgets.Entry).Text()
}

func TestHandler_GetRendersForm(t *testing.T) {
	h := NewHandler(WithBuild(buildSignup))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/signup", nil))

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html content-type, got %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `<form id="signup"`) || !strings.Contains(body, `name="_formkit_process_signup"`) {
		t.Fatalf("unexpected body:\n%s", body)
	}
}

func TestHandler_HeadWritesNoBody(t *testing.T) {
	h := NewHandler(WithBuild(buildSignup))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/signup", nil))
	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Fatalf("expected empty 200, got %d with %d bytes", rec.Code, rec.Body.Len())
	}
}

func TestHandler_InvalidSubmissionRedisplays(t *testing.T) {
	called := false
	h := NewHandler(
		WithBuild(buildSignup),
		WithSubmit(func(http.ResponseWriter, *http.Request, *widgets.Form) error {
			called = true
			return nil
		}),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postForm("/signup", signupValues("  ")))

	if called {
		t.Fatalf("submit callback must not run for an invalid form")
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "The Name field is required.") {
		t.Fatalf("expected required message in body:\n%s", rec.Body.String())
	}
}

func TestHandler_ValidSubmissionCallsSubmit(t *testing.T) {
	var got string
	h := NewHandler(
		WithBuild(buildSignup),
		WithSubmit(func(w http.ResponseWriter, r *http.Request, form *widgets.Form) error {
			got = entryText(t, form)
			if button, ok := form.ClickedButton(); !ok || button.ID != "submit" {
				t.Fatalf("expected submit button to be clicked")
			}
			http.Redirect(w, r, "/done", http.StatusSeeOther)
			return nil
		}),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postForm("/signup", signupValues("Ada")))

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/done" {
		t.Fatalf("expected redirect to /done, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if got != "Ada" {
		t.Fatalf("expected submitted name Ada, got %q", got)
	}
}

func TestHandler_ValidSubmissionWithoutCallbackRedirects(t *testing.T) {
	h := NewHandler(WithBuild(buildSignup))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postForm("/signup?step=1", signupValues("Ada")))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/signup?step=1" {
		t.Fatalf("expected redirect to the form url, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestHandler_ForeignSubmissionIsIgnored(t *testing.T) {
	called := false
	h := NewHandler(
		WithBuild(buildSignup),
		WithSubmit(func(http.ResponseWriter, *http.Request, *widgets.Form) error {
			called = true
			return nil
		}),
	)
	values := url.Values{"name": {"Ada"}, widgets.ProcessFieldName("other"): {"other"}}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postForm("/signup", values))

	if called || rec.Code != http.StatusOK {
		t.Fatalf("expected plain redisplay, got status %d called=%v", rec.Code, called)
	}
	if strings.Contains(rec.Body.String(), "formkit-message-error") {
		t.Fatalf("foreign submission must not validate:\n%s", rec.Body.String())
	}
}

func TestHandler_SubmissionErrorAppliesMessages(t *testing.T) {
	h := NewHandler(
		WithBuild(buildSignup),
		WithSubmit(func(http.ResponseWriter, *http.Request, *widgets.Form) error {
			return &SubmissionError{Fields: map[string][]string{
				"name": {"Name already taken."},
				"form": {"Try again later."},
			}}
		}),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postForm("/signup", signupValues("Ada")))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `<div id="signup_messages" class="formkit-message-display">`) {
		t.Fatalf("expected form-level message display:\n%s", body)
	}
	if strings.Index(body, "Try again later.") > strings.Index(body, `<form id="signup"`) {
		t.Fatalf("form-level messages must precede the form:\n%s", body)
	}
	if !strings.Contains(body, "Name already taken.") || !strings.Contains(body, `value="Ada"`) {
		t.Fatalf("expected field message and redisplayed value:\n%s", body)
	}
}

func TestHandler_SubmitFailureUsesStatus(t *testing.T) {
	h := NewHandler(
		WithBuild(buildSignup),
		WithSubmit(func(http.ResponseWriter, *http.Request, *widgets.Form) error {
			return StatusError{Code: http.StatusConflict, Err: errors.New("stale")}
		}),
	)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postForm("/signup", signupValues("Ada")))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
}

func TestHandler_RejectsUnsupportedMethods(t *testing.T) {
	h := NewHandler(WithBuild(buildSignup))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/signup", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, HEAD, POST" {
		t.Fatalf("unexpected Allow header %q", allow)
	}
}

func TestHandler_GuardAndBuildErrors(t *testing.T) {
	cases := []struct {
		name string
		opts []OptionFn
		want int
	}{
		{
			name: "guard status",
			opts: []OptionFn{WithBuild(buildSignup), WithGuard(func(*http.Request) error {
				return StatusError{Code: http.StatusUnauthorized}
			})},
			want: http.StatusUnauthorized,
		},
		{
			name: "guard plain error",
			opts: []OptionFn{WithBuild(buildSignup), WithGuard(func(*http.Request) error {
				return errors.New("nope")
			})},
			want: http.StatusForbidden,
		},
		{
			name: "missing build",
			want: http.StatusInternalServerError,
		},
		{
			name: "duplicate ids",
			opts: []OptionFn{WithBuild(func(*http.Request) (*widgets.Form, error) {
				return widgets.NewForm("dup", widgets.NewEntry("x"), widgets.NewEntry("x")), nil
			})},
			want: http.StatusInternalServerError,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(tc.opts...).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			if rec.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestHandler_StateStoreRestoresLastSubmission(t *testing.T) {
	store := state.NewMemoryStore()
	h := NewHandler(
		WithBuild(buildSignup),
		WithStateStore(store, func(r *http.Request) string { return "signup:" + r.URL.Query().Get("user") }),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postForm("/signup?user=7", signupValues("Grace")))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after save, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/signup?user=7", nil))
	if !strings.Contains(rec.Body.String(), `value="Grace"`) {
		t.Fatalf("expected restored value:\n%s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/signup?user=8", nil))
	if rec.Code != http.StatusOK || strings.Contains(rec.Body.String(), `value="Grace"`) {
		t.Fatalf("other keys must render a blank form")
	}
}

func TestHandler_RejectedSubmissionIsNotStored(t *testing.T) {
	store := state.NewMemoryStore()
	accept := false
	h := NewHandler(
		WithBuild(buildSignup),
		WithStateStore(store, func(*http.Request) string { return "signup" }),
		WithSubmit(func(w http.ResponseWriter, r *http.Request, _ *widgets.Form) error {
			if !accept {
				return &SubmissionError{Fields: map[string][]string{"name": {"taken"}}}
			}
			http.Redirect(w, r, "/done", http.StatusSeeOther)
			return nil
		}),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postForm("/signup", signupValues("rejected-name")))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
	if stored, err := store.Load(testContext(), "signup"); !ui.IsNotFound(err) {
		t.Fatalf("rejected values must not be stored, got %#v (err %v)", stored, err)
	}

	accept = true
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, postForm("/signup", signupValues("accepted-name")))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	stored, err := store.Load(testContext(), "signup")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if stored["name"] != "accepted-name" {
		t.Fatalf("expected accepted value to be stored, got %#v", stored)
	}
}

func TestNegotiateLocale(t *testing.T) {
	cases := []struct {
		header    string
		supported []string
		want      string
	}{
		{header: "de-DE,de;q=0.9,en;q=0.5", supported: []string{"en", "de"}, want: "de"},
		{header: "fr", supported: []string{"en", "de"}, want: "en"},
		{header: "", supported: []string{"es", "en"}, want: "es"},
		{header: "de", supported: nil, want: ""},
	}
	for _, tc := range cases {
		if got := NegotiateLocale(tc.header, tc.supported); got != tc.want {
			t.Fatalf("NegotiateLocale(%q, %v) = %q, want %q", tc.header, tc.supported, got, tc.want)
		}
	}
}
