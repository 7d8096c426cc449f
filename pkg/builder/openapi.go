package builder

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formkit/pkg/cell"
	"github.com/goliatone/go-formkit/pkg/ui"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Schema extensions understood by the OpenAPI builder.
const (
	ExtensionKind  = "x-formkit-kind"
	ExtensionOrder = "x-formkit-order"
)

var requestMediaTypes = []string{
	"application/x-www-form-urlencoded",
	"multipart/form-data",
	"application/json",
}

type openAPIConfig struct {
	resolver    *KindResolver
	submitStock string
	submitTitle string
}

// OpenAPIOption customises FromOpenAPI.
type OpenAPIOption func(*openAPIConfig)

// WithResolver replaces the kind resolver.
func WithResolver(resolver *KindResolver) OpenAPIOption {
	return func(cfg *openAPIConfig) {
		if resolver != nil {
			cfg.resolver = resolver
		}
	}
}

// WithSubmit sets the stock preset and title of the generated submit button.
func WithSubmit(stock, title string) OpenAPIOption {
	return func(cfg *openAPIConfig) {
		if strings.TrimSpace(stock) != "" {
			cfg.submitStock = stock
		}
		cfg.submitTitle = title
	}
}

// FromOpenAPI derives a form document from the request body of the operation
// named operationID. The form posts to the operation path.
func FromOpenAPI(ctx context.Context, data []byte, operationID string, opts ...OpenAPIOption) (Spec, error) {
	cfg := openAPIConfig{resolver: NewKindResolver(), submitStock: widgets.StockSubmit}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := ctx.Err(); err != nil {
		return Spec{}, err
	}
	if len(data) == 0 {
		return Spec{}, fmt.Errorf("builder: openapi document is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return Spec{}, fmt.Errorf("builder: load openapi document: %w", err)
	}
	method, path, op, err := findOperation(doc, operationID)
	if err != nil {
		return Spec{}, err
	}

	form := Spec{
		ID:   formID(operationID),
		Kind: KindForm,
		Props: map[string]any{
			"action": path,
			"method": strings.ToLower(method),
		},
	}
	if op.RequestBody != nil && op.RequestBody.Value != nil {
		if mediaType, schema := requestSchema(op.RequestBody.Value.Content); schema != nil {
			if mediaType == "multipart/form-data" {
				form.Props["encoding"] = mediaType
			}
			for _, field := range SchemaFields(schema) {
				child, err := cfg.fieldSpec(field)
				if err != nil {
					return Spec{}, err
				}
				form.Children = append(form.Children, child)
			}
		}
	}
	form.Children = append(form.Children, Spec{
		ID:    form.ID + "_submit",
		Kind:  KindButton,
		Title: cfg.submitTitle,
		Props: map[string]any{"stock": cfg.submitStock},
	})
	return form, nil
}

// OperationIDs lists the operation ids of an OpenAPI document, sorted.
func OperationIDs(ctx context.Context, data []byte) ([]string, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("builder: load openapi document: %w", err)
	}
	var ids []string
	if doc.Paths != nil {
		for path, item := range doc.Paths.Map() {
			for method, op := range item.Operations() {
				ids = append(ids, operationKey(method, path, op))
			}
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func findOperation(doc *openapi3.T, operationID string) (string, string, *openapi3.Operation, error) {
	if doc.Paths != nil {
		paths := doc.Paths.InMatchingOrder()
		for _, path := range paths {
			item := doc.Paths.Value(path)
			if item == nil {
				continue
			}
			for method, op := range item.Operations() {
				if operationKey(method, path, op) == operationID {
					return method, path, op, nil
				}
			}
		}
	}
	return "", "", nil, ui.NotFound("operation", operationID)
}

// operationKey falls back to "method:path" for operations without an id.
func operationKey(method, path string, op *openapi3.Operation) string {
	if op.OperationID != "" {
		return op.OperationID
	}
	return strings.ToLower(method) + ":" + path
}

func requestSchema(content openapi3.Content) (string, *openapi3.Schema) {
	for _, mediaType := range requestMediaTypes {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mediaType, mt.Schema.Value
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if mt := content[key]; mt.Schema != nil && mt.Schema.Value != nil {
			return key, mt.Schema.Value
		}
	}
	return "", nil
}

// SchemaFields converts the properties of an object schema into fields,
// ordered by the order extension and then by name.
func SchemaFields(schema *openapi3.Schema) []Field {
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}
	fields := make([]Field, 0, len(schema.Properties))
	for name, ref := range schema.Properties {
		if ref == nil || ref.Value == nil || ref.Value.ReadOnly {
			continue
		}
		fields = append(fields, convertField(name, ref.Value, required[name]))
	}
	sort.SliceStable(fields, func(i, j int) bool {
		oi, oj := fields[i].Order, fields[j].Order
		if oi != oj {
			if oi == 0 {
				return false
			}
			if oj == 0 {
				return true
			}
			return oi < oj
		}
		return fields[i].Name < fields[j].Name
	})
	return fields
}

func convertField(name string, src *openapi3.Schema, required bool) Field {
	field := Field{
		Name:        name,
		Title:       src.Title,
		Description: src.Description,
		Type:        firstSchemaType(src.Type),
		Format:      src.Format,
		Enum:        append([]any(nil), src.Enum...),
		Required:    required,
		MinLength:   int(src.MinLength),
		Pattern:     src.Pattern,
		Default:     src.Default,
	}
	if field.Title == "" {
		field.Title = humanize(name)
	}
	if src.MaxLength != nil {
		field.MaxLength = int(*src.MaxLength)
	}
	if src.Min != nil {
		value := *src.Min
		field.Minimum = &value
	}
	if src.Max != nil {
		value := *src.Max
		field.Maximum = &value
	}
	if src.Items != nil && src.Items.Value != nil {
		field.ItemType = firstSchemaType(src.Items.Value.Type)
		field.ItemEnum = append([]any(nil), src.Items.Value.Enum...)
	}
	if kind, ok := src.Extensions[ExtensionKind].(string); ok {
		field.Kind = kind
	}
	if order, ok := cell.ToFloat(src.Extensions[ExtensionOrder]); ok {
		field.Order = int(order)
	}
	return field
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		if value != "null" {
			return value
		}
	}
	return ""
}

func (cfg openAPIConfig) fieldSpec(field Field) (Spec, error) {
	kind, ok := cfg.resolver.Resolve(field)
	if !ok {
		return Spec{}, ui.Configurationf("openapi", "no widget kind for field %q of type %q", field.Name, field.Type)
	}
	input := Spec{ID: field.Name, Kind: kind, Props: map[string]any{}}
	if field.Required {
		input.Props["required"] = true
	}
	if field.Default != nil {
		input.Props["value"] = field.Default
	}
	switch kind {
	case KindEntry, KindPassword:
		if field.MinLength > 0 {
			input.Props["min_length"] = field.MinLength
		}
		if field.MaxLength > 0 {
			input.Props["max_length"] = field.MaxLength
		}
		if field.Pattern != "" {
			input.Props["pattern"] = field.Pattern
		}
	case KindNumeric, KindInteger:
		if field.Minimum != nil {
			input.Props["minimum"] = *field.Minimum
		}
		if field.Maximum != nil {
			input.Props["maximum"] = *field.Maximum
		}
	case KindFlydown, KindRadioList:
		input.Options = enumOptions(field.Enum)
	case KindCheckboxList:
		input.Options = enumOptions(field.ItemEnum)
	case KindCheckbox:
		input.Props["value"] = cell.Truthy(field.Default)
	}

	wrapper := Spec{
		ID:       field.Name + "_field",
		Kind:     KindField,
		Title:    field.Title,
		Children: []Spec{input},
	}
	if field.Description != "" {
		wrapper.Props = map[string]any{"notes": []any{field.Description}}
	}
	return wrapper, nil
}

func enumOptions(values []any) []OptionSpec {
	out := make([]OptionSpec, 0, len(values))
	for _, value := range values {
		out = append(out, OptionSpec{Value: value, Title: humanize(cell.ToString(value))})
	}
	return out
}

func formID(operationID string) string {
	var b strings.Builder
	separated := false
	for _, r := range operationID {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			separated = false
			continue
		}
		if !separated {
			b.WriteByte('_')
			separated = true
		}
	}
	id := strings.Trim(b.String(), "_")
	if id == "" {
		return "form"
	}
	return id
}

func humanize(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
	})
	if len(words) == 0 {
		return name
	}
	text := strings.ToLower(strings.Join(words, " "))
	runes := []rune(text)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
