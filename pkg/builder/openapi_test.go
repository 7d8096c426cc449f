package builder

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/testsupport"
	"github.com/goliatone/go-formkit/pkg/ui"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

const petstore = `
openapi: 3.0.3
info:
  title: Pets
  version: "1.0"
paths:
  /pets:
    post:
      operationId: createPet
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [name, size]
              properties:
                name:
                  type: string
                  maxLength: 20
                  x-formkit-order: 1
                size:
                  type: string
                  enum: [small, large]
                age:
                  type: integer
                  minimum: 0
                  description: Age in years
                vaccinated:
                  type: boolean
                tags:
                  type: array
                  items:
                    type: string
                    enum: [friendly, loud]
                secret:
                  type: string
                  format: password
                id:
                  type: integer
                  readOnly: true
      responses:
        "201":
          description: created
  /pets/{id}:
    delete:
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: integer
      responses:
        "204":
          description: deleted
`

func TestFromOpenAPI_BuildsFieldsInOrder(t *testing.T) {
	ctx := testsupport.Context()
	spec, err := FromOpenAPI(ctx, []byte(petstore), "createPet")
	if err != nil {
		t.Fatalf("from openapi: %v", err)
	}
	if spec.Kind != KindForm || spec.ID != "createPet" || spec.String("action") != "/pets" {
		t.Fatalf("unexpected form spec: %+v", spec)
	}

	var got []string
	for _, child := range spec.Children {
		if child.Kind == KindField {
			got = append(got, child.Children[0].ID+"="+child.Children[0].Kind)
			continue
		}
		got = append(got, child.ID+"="+child.Kind)
	}
	want := []string{
		"name=entry",
		"age=integer",
		"secret=password",
		"size=radio_list",
		"tags=checkbox_list",
		"vaccinated=checkbox",
		"createPet_submit=button",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}

	root, err := New().Build(spec)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	data := ui.NewFormData(map[string][]string{
		widgets.ProcessFieldName("createPet"): {"createPet"},
		"name":                                {"Rex"},
		"size":                                {"large"},
		"age":                                 {"-1"},
		"tags[]":                              {"loud"},
	}, true)
	out := testsupport.Lifecycle(t, root, data)
	form := root.(*widgets.Form)
	if form.IsValid() {
		t.Fatalf("negative age must invalidate the form")
	}
	testsupport.AssertContainsInOrder(t, out,
		`<label for="name">Name<span class="formkit-required-marker">*</span></label>`,
		`The Age field must not be less than 0.`,
		`<div class="formkit-note">Age in years</div>`,
		`value="large" checked`,
		`value="loud" checked`,
	)
}

func TestFromOpenAPI_FallbackOperationKeyAndErrors(t *testing.T) {
	ctx := testsupport.Context()
	ids, err := OperationIDs(ctx, []byte(petstore))
	if err != nil {
		t.Fatalf("operation ids: %v", err)
	}
	if diff := cmp.Diff([]string{"createPet", "delete:/pets/{id}"}, ids); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	spec, err := FromOpenAPI(ctx, []byte(petstore), "delete:/pets/{id}", WithSubmit(widgets.StockDelete, ""))
	if err != nil {
		t.Fatalf("from openapi: %v", err)
	}
	if spec.ID != "delete_pets_id" || len(spec.Children) != 1 || spec.Children[0].String("stock") != widgets.StockDelete {
		t.Fatalf("unexpected spec: %+v", spec)
	}

	if _, err := FromOpenAPI(ctx, []byte(petstore), "missing"); !errors.Is(err, ui.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := FromOpenAPI(ctx, nil, "createPet"); err == nil {
		t.Fatalf("expected error for empty document")
	}
}

func TestKindResolver_PriorityAndHints(t *testing.T) {
	r := NewKindResolver()
	r.Register("slider", 65, func(f Field) bool { return f.Type == "integer" && f.Maximum != nil })

	maximum := 5.0
	cases := []struct {
		field Field
		want  string
	}{
		{Field{Type: "integer", Maximum: &maximum}, "slider"},
		{Field{Type: "integer"}, KindInteger},
		{Field{Type: "string", Enum: []any{"a", "b"}}, KindFlydown},
		{Field{Type: "string", Enum: []any{"a", "b"}, Required: true}, KindRadioList},
		{Field{Type: "string", Kind: KindContent}, KindContent},
		{Field{Type: "boolean"}, KindCheckbox},
	}
	for _, tc := range cases {
		got, ok := r.Resolve(tc.field)
		if !ok || got != tc.want {
			t.Fatalf("resolve %+v: expected %q, got %q", tc.field, tc.want, got)
		}
	}
	if _, ok := (&KindResolver{}).Resolve(Field{Type: "string"}); ok {
		t.Fatalf("empty resolver must not resolve")
	}
}
