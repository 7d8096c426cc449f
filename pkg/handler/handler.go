// Package handler serves a widget tree over net/http: GET renders the form,
// POST runs the lifecycle and either hands a valid submission to a callback
// or redisplays the form with its messages.
package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"github.com/goliatone/go-formkit/pkg/state"
	"github.com/goliatone/go-formkit/pkg/ui"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// SubmissionError carries server-side validation failures returned by a
// SubmitFunc. Fields are keyed by widget id; keys that match no widget
// become form-level messages. The form is redisplayed with status 422.
type SubmissionError struct {
	Fields map[string][]string
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("handler: submission rejected (%d field(s))", len(e.Fields))
}

// Handler is an alias of NewHandler.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds a handler from a pre-constructed Options value.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodPost:
		default:
			w.Header().Set("Allow", strings.Join([]string{http.MethodGet, http.MethodHead, http.MethodPost}, ", "))
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeError(w, err, http.StatusForbidden)
				return
			}
		}

		if opts.Build == nil {
			opts.Logger.Error("formkit handler without build function", "path", r.URL.Path)
			writeError(w, nil, http.StatusInternalServerError)
			return
		}
		form, err := opts.Build(r)
		if err == nil && form == nil {
			err = ui.Configurationf("build", "build function returned no form")
		}
		if err == nil {
			err = ui.InitTree(form)
		}
		if err != nil {
			opts.Logger.Error("formkit build failed", "path", r.URL.Path, "error", err)
			writeError(w, err, http.StatusInternalServerError)
			return
		}

		ctx := requestContext(r)
		key := opts.stateKey(r)
		status := http.StatusOK
		var formLevel []string

		if r.Method == http.MethodPost {
			data, err := parseSubmission(r, opts.MaxMemory)
			if err != nil {
				writeError(w, StatusError{Code: http.StatusBadRequest, Err: err}, http.StatusBadRequest)
				return
			}
			if err := ui.ProcessTree(form, data); err != nil {
				opts.Logger.Error("formkit process failed", "form", form.ID, "error", err)
				writeError(w, err, http.StatusInternalServerError)
				return
			}
			switch {
			case form.IsValid():
				if opts.OnSubmit == nil {
					if err := saveState(ctx, opts, key, form); err != nil {
						writeError(w, err, http.StatusInternalServerError)
						return
					}
					http.Redirect(w, r, r.URL.RequestURI(), http.StatusSeeOther)
					return
				}
				err := opts.OnSubmit(w, r, form)
				if err == nil {
					// the callback owns the response; a failed save can only be logged
					_ = saveState(ctx, opts, key, form)
					return
				}
				var rejected *SubmissionError
				if !errors.As(err, &rejected) {
					opts.Logger.Error("formkit submit failed", "form", form.ID, "error", err)
					writeError(w, err, http.StatusInternalServerError)
					return
				}
				formLevel = ui.ApplyErrorPayload(form, rejected.Fields)
				status = http.StatusUnprocessableEntity
			case form.IsSubmitted():
				status = http.StatusUnprocessableEntity
			}
		} else if key != "" {
			if _, err := state.Restore(ctx, opts.Store, key, form); err != nil {
				opts.Logger.Warn("formkit state restore failed", "form", form.ID, "key", key, "error", err)
			}
		}

		body, err := render(form, formLevel, opts.renderOptions(r))
		if err != nil {
			opts.Logger.Error("formkit display failed", "form", form.ID, "error", err)
			writeError(w, err, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(body)
	})
}

// saveState stores the values of an accepted submission under key.
func saveState(ctx context.Context, opts Options, key string, form *widgets.Form) error {
	if key == "" {
		return nil
	}
	if err := state.Save(ctx, opts.Store, key, form); err != nil {
		opts.Logger.Error("formkit state save failed", "form", form.ID, "key", key, "error", err)
		return err
	}
	return nil
}

func render(form *widgets.Form, formLevel []string, renderOpts []ui.RenderOption) ([]byte, error) {
	var body bytes.Buffer
	rc := ui.NewRenderContext(&body, renderOpts...)

	if len(formLevel) > 0 {
		display := widgets.NewMessageDisplay(form.ID + "_messages")
		for _, text := range formLevel {
			display.Add(ui.ErrorMessage(text))
		}
		if err := display.Display(rc); err != nil {
			return nil, err
		}
	}
	if err := ui.DisplayTree(form, rc); err != nil {
		return nil, err
	}

	if rc.Assets == nil || rc.Assets.Len() == 0 {
		return body.Bytes(), nil
	}
	var page bytes.Buffer
	if err := rc.Assets.Display(&page, rc.AssetURL); err != nil {
		return nil, err
	}
	page.Write(body.Bytes())
	return page.Bytes(), nil
}

func parseSubmission(r *http.Request, maxMemory int64) (ui.FormData, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(maxMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return nil, fmt.Errorf("handler: parse submission: %w", err)
	}
	return ui.NewFormData(r.PostForm, true), nil
}

func (o Options) renderOptions(r *http.Request) []ui.RenderOption {
	out := append([]ui.RenderOption{}, o.RenderOptions...)
	locale := NegotiateLocale(r.Header.Get("Accept-Language"), o.Locales)
	if o.Translator != nil {
		return append(out, ui.WithTranslator(o.Translator, locale))
	}
	if locale != "" {
		out = append(out, ui.WithLocale(locale))
	}
	return out
}

// NegotiateLocale picks the supported locale best matching an
// Accept-Language header. The first supported locale is the fallback; no
// supported locales yields "".
func NegotiateLocale(header string, supported []string) string {
	var names []string
	var tags []language.Tag
	for _, locale := range supported {
		tag, err := language.Parse(strings.TrimSpace(locale))
		if err != nil {
			continue
		}
		names = append(names, locale)
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return ""
	}
	_, idx := language.MatchStrings(language.NewMatcher(tags), header)
	if idx < 0 || idx >= len(names) {
		return names[0]
	}
	return names[idx]
}

func writeError(w http.ResponseWriter, err error, fallback int) {
	if w == nil {
		return
	}
	code := fallback
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = fallback
		}
	}
	http.Error(w, http.StatusText(code), code)
}
