package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/goliatone/go-formkit"
	"github.com/goliatone/go-formkit/components/optionsearch"
	"github.com/goliatone/go-formkit/pkg/builder"
	"github.com/goliatone/go-formkit/pkg/handler"
	"github.com/goliatone/go-formkit/pkg/prompt"
	"github.com/goliatone/go-formkit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formkit/pkg/state"
	"github.com/goliatone/go-formkit/pkg/ui"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

func main() {
	source := flag.String("source", "", "YAML widget document or OpenAPI document path")
	opID := flag.String("operation", "", "OpenAPI operation ID; empty reads -source as a widget document")
	list := flag.Bool("list", false, "list the operation IDs of an OpenAPI document and exit")
	output := flag.String("output", "", "output file (stdout if empty)")
	locale := flag.String("locale", "", "render locale")
	stylesheet := flag.String("stylesheet", "", "stylesheet URI linked before the form")
	interactive := flag.Bool("interactive", false, "fill the form from terminal prompts before rendering")
	serve := flag.String("serve", "", "serve the form over HTTP on this address instead of printing it")
	statePath := flag.String("state", "", "bbolt file persisting submitted values when serving")
	templatesDir := flag.String("templates", "", "directory of .tpl templates used by template widgets")
	catalog := flag.String("options", "", "option catalog served at /formkit/api/options when serving")
	flag.Parse()

	ctx := context.Background()

	if strings.TrimSpace(*source) == "" {
		log.Fatalf("missing -source")
	}
	data, err := os.ReadFile(*source)
	if err != nil {
		log.Fatalf("read source: %v", err)
	}

	if *list {
		ids, err := builder.OperationIDs(ctx, data)
		if err != nil {
			log.Fatalf("list operations: %v", err)
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return
	}

	var buildOpts []builder.Option
	if *templatesDir != "" {
		engine, err := gotemplate.New(gotemplate.WithBaseDir(*templatesDir), gotemplate.WithString())
		if err != nil {
			log.Fatalf("template engine: %v", err)
		}
		buildOpts = append(buildOpts, builder.WithEngine(engine))
	}

	load := func() (*widgets.Form, error) {
		return formkit.LoadForm(ctx, data, *opID, buildOpts...)
	}
	var renderOpts []ui.RenderOption
	if *locale != "" {
		renderOpts = append(renderOpts, ui.WithLocale(*locale))
	}

	if *serve != "" {
		if err := runServer(*serve, *statePath, *catalog, load, renderOpts); err != nil {
			log.Fatalf("serve: %v", err)
		}
		return
	}

	form, err := load()
	if err != nil {
		log.Fatalf("load form: %v", err)
	}
	if *stylesheet != "" {
		renderOpts = append(renderOpts, formkit.WithStylesheet(*stylesheet))
	}

	var submission ui.FormData
	if *interactive {
		if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			log.Fatalf("-interactive needs a terminal on stdin")
		}
		answers, err := prompt.Collect(ctx, form, prompt.NewSurveyDriver(os.Stderr))
		if err != nil {
			log.Fatalf("prompt: %v", err)
		}
		submission = answers
	}

	outputHTML, err := formkit.Render(form, submission, renderOpts...)
	if err != nil {
		log.Fatalf("render form: %v", err)
	}
	if submission != nil {
		for _, line := range prompt.Messages(form) {
			fmt.Fprintln(os.Stderr, line)
		}
	}

	if *output != "" {
		if err := os.WriteFile(*output, outputHTML, 0o644); err != nil {
			log.Fatalf("write output: %v", err)
		}
		fmt.Printf("Form written to %s\n", *output)
	} else {
		fmt.Println(string(outputHTML))
	}
}

func runServer(addr, statePath, catalogPath string, load func() (*widgets.Form, error), renderOpts []ui.RenderOption) error {
	opts := []handler.OptionFn{
		handler.WithBuild(func(*http.Request) (*widgets.Form, error) { return load() }),
		handler.WithRenderOptions(append(renderOpts, formkit.WithStylesheet("/formkit/"+formkit.DefaultStylesheet))...),
	}
	if statePath != "" {
		store, err := state.OpenBolt(statePath)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, handler.WithStateStore(store, func(r *http.Request) string { return r.URL.Path }))
	}

	mux := http.NewServeMux()
	mux.Handle("/formkit/", http.StripPrefix("/formkit/", http.FileServerFS(formkit.AssetsFS())))
	mux.Handle("/", handler.NewHandler(opts...))
	if catalogPath != "" {
		f, err := os.Open(catalogPath)
		if err != nil {
			return err
		}
		catalog, err := optionsearch.LoadOptions(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("load options: %w", err)
		}
		pattern, err := optionsearch.RegisterRoutes(mux, "/formkit", optionsearch.WithOptions(catalog))
		if err != nil {
			return err
		}
		log.Printf("option search on %s (%d options)", pattern, len(catalog))
	}

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	return nil
}
