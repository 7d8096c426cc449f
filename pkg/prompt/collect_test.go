package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/option"
	"github.com/goliatone/go-formkit/pkg/ui"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

type stubDriver struct {
	inputs    []string
	passwords []string
	confirm   []bool
	selectIdx []int
	multiIdx  [][]int

	inputPos   int
	passPos    int
	confirmPos int
	selectPos  int
	multiPos   int

	messages []string
	selects  []SelectConfig
	multis   []SelectConfig
	infos    []string
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	if cfg.Validator != nil {
		if err := cfg.Validator(val); err != nil {
			return "", err
		}
	}
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, cfg InputConfig) (string, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.messages = append(s.messages, cfg.Message)
	s.selects = append(s.selects, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	s.messages = append(s.messages, cfg.Message)
	s.multis = append(s.multis, cfg)
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multi-select scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

type profile struct {
	form   *widgets.Form
	name   *widgets.Entry
	age    *widgets.IntegerEntry
	plan   *widgets.Flydown
	tags   *widgets.CheckboxList
	news   *widgets.Checkbox
	region *widgets.TreeFlydown
}

func newProfile() profile {
	p := profile{}
	p.name = widgets.NewEntry("name")
	p.name.Required = true
	p.age = widgets.NewIntegerEntry("age")
	minimum := 18.0
	p.age.Minimum = &minimum
	p.plan = widgets.NewFlydown("plan")
	p.plan.AddOption(1, "Free")
	p.plan.AddDivider("Paid")
	p.plan.AddOption(2, "Pro")
	p.tags = widgets.NewCheckboxList("tags")
	p.tags.ShowCheckAll = true
	p.tags.AddOption("go", "Go")
	p.tags.AddOption("rust", "Rust")
	p.tags.AddOption("zig", "Zig")
	p.news = widgets.NewCheckbox("news")
	p.news.TitleText = "Newsletter"

	regions := option.NewTree("")
	europe := regions.Add(option.New("eu", "Europe"))
	europe.Add(option.New("de", "Germany"))
	regions.Add(option.New("us", "United States"))
	p.region = widgets.NewTreeFlydown("region", regions)

	secret := widgets.NewHiddenField("ref", "campaign-7")
	hidden := widgets.NewEntry("internal")
	hidden.SetVisible(false)

	save := widgets.NewButton("save")
	save.TitleText = "Save"
	draft := widgets.NewButton("draft")
	draft.TitleText = "Save draft"

	field := widgets.NewFormField("name_field", "Name", p.name)
	field.AddNote("As printed on your card.")
	p.form = widgets.NewForm("profile",
		field,
		widgets.NewFormField("age_field", "Age", p.age),
		widgets.NewFormField("plan_field", "Plan", p.plan),
		widgets.NewFormField("tags_field", "Tags", p.tags),
		p.news,
		widgets.NewFormField("region_field", "Region", p.region),
		secret,
		hidden,
		save,
		draft,
	)
	return p
}

func TestCollect_BuildsSubmission(t *testing.T) {
	p := newProfile()
	if err := ui.InitTree(p.form); err != nil {
		t.Fatalf("init: %v", err)
	}
	driver := &stubDriver{
		inputs:    []string{"Ada", "36"},
		confirm:   []bool{true},
		selectIdx: []int{2, 2, 1},
		multiIdx:  [][]int{{0, 2}},
	}

	data, err := Collect(context.Background(), p.form, driver)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	wantPrompts := []string{"Name", "Age", "Plan", "Tags", "Newsletter", "Region", "Action"}
	if diff := cmp.Diff(wantPrompts, driver.messages); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"(none)", "Free", "Pro"}, driver.selects[0].Options); diff != "" {
		t.Fatalf("plan options mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"(none)", "Europe", "  Germany", "United States"}, driver.selects[1].Options); diff != "" {
		t.Fatalf("region options mismatch (-want +got):\n%s", diff)
	}

	checks := map[string][]string{
		"name":                              {"Ada"},
		"age":                               {"36"},
		"plan":                              {"2"},
		"tags":                              {"go", "zig"},
		"news":                              {"on"},
		"region":                            {"0.0"},
		"ref":                               {"campaign-7"},
		"draft":                             {"Save draft"},
		widgets.ProcessFieldName("profile"): {"profile"},
	}
	for name, want := range checks {
		if diff := cmp.Diff(want, data.Values(name)); diff != "" {
			t.Fatalf("%s mismatch (-want +got):\n%s", name, diff)
		}
	}
	if data.Has("internal") || data.Has("save") {
		t.Fatalf("hidden widgets and unchosen buttons must not be submitted")
	}

	if err := ui.ProcessTree(p.form, data); err != nil {
		t.Fatalf("process: %v", err)
	}
	if !p.form.IsValid() {
		t.Fatalf("expected valid form, messages: %v", Messages(p.form))
	}
	if button, ok := p.form.ClickedButton(); !ok || button.ID != "draft" {
		t.Fatalf("expected draft button clicked")
	}
	if got, _ := p.age.Int(); got != 36 {
		t.Fatalf("expected age 36, got %d", got)
	}
	if p.region.Path != "0.0" || p.region.Value != "de" {
		t.Fatalf("expected region 0.0 (de), got %q (%v)", p.region.Path, p.region.Value)
	}
}

func TestCollect_DefaultsFollowCurrentState(t *testing.T) {
	p := newProfile()
	if err := ui.InitTree(p.form); err != nil {
		t.Fatalf("init: %v", err)
	}
	p.plan.Value = 2
	p.tags.Values = []any{"rust"}
	driver := &stubDriver{
		inputs:    []string{"Ada", ""},
		confirm:   []bool{false},
		selectIdx: []int{2, 0, 0},
		multiIdx:  [][]int{{1}},
	}
	if _, err := Collect(context.Background(), p.form, driver); err != nil {
		t.Fatalf("collect: %v", err)
	}
	if got := driver.selects[0].DefaultIndex; got != 2 {
		t.Fatalf("expected plan default index 2, got %d", got)
	}
	if diff := cmp.Diff([]int{1}, driver.multis[0].Defaults); diff != "" {
		t.Fatalf("tags defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_ReportsValidationMessages(t *testing.T) {
	p := newProfile()
	driver := &stubDriver{
		inputs:    []string{"Ada", "12"},
		confirm:   []bool{false},
		selectIdx: []int{0, 0, 0},
		multiIdx:  [][]int{nil},
	}

	valid, err := Run(context.Background(), p.form, driver)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if valid {
		t.Fatalf("expected invalid form for age below minimum")
	}
	if diff := cmp.Diff([]string{"The Age field must not be less than 18."}, driver.infos); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_Errors(t *testing.T) {
	p := newProfile()
	if err := ui.InitTree(p.form); err != nil {
		t.Fatalf("init: %v", err)
	}

	if _, err := Collect(context.Background(), p.form, &stubDriver{inputs: []string{"Ada", "abc"}}); err == nil {
		t.Fatalf("expected number validation error")
	}
	if _, err := Collect(context.Background(), p.form, &stubDriver{
		inputs:    []string{"Ada", "1"},
		selectIdx: []int{9},
	}); !errors.Is(err, ErrNoChoice) {
		t.Fatalf("expected ErrNoChoice, got %v", err)
	}
	if _, err := Collect(context.Background(), nil, &stubDriver{}); !errors.Is(err, ui.ErrConfiguration) {
		t.Fatalf("expected configuration error for nil form, got %v", err)
	}
}

func TestCollect_CheckboxTreeUsesIndexPaths(t *testing.T) {
	topicsTree := option.NewTree("")
	lang := topicsTree.Add(option.New("lang", "Languages"))
	lang.Add(option.New("go", "Go"))
	lang.Add(option.New("zig", "Zig"))
	topics := widgets.NewCheckboxTree("topics", topicsTree)
	if err := topics.SetState([]string{"0.0"}); err != nil {
		t.Fatalf("set state: %v", err)
	}
	form := widgets.NewForm("prefs",
		widgets.NewFormField("topics_field", "Topics", topics),
		widgets.NewButton("save"),
	)
	if err := ui.InitTree(form); err != nil {
		t.Fatalf("init: %v", err)
	}

	driver := &stubDriver{multiIdx: [][]int{{1, 2}}}
	data, err := Collect(context.Background(), form, driver)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if diff := cmp.Diff([]string{"Languages", "  Go", "  Zig"}, driver.multis[0].Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1}, driver.multis[0].Defaults); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"0.0", "0.1"}, data.Values("topics")); diff != "" {
		t.Fatalf("submitted paths mismatch (-want +got):\n%s", diff)
	}
	if err := ui.ProcessTree(form, data); err != nil {
		t.Fatalf("process: %v", err)
	}
	if diff := cmp.Diff([]any{"go", "zig"}, topics.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}
