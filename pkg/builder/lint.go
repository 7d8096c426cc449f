package builder

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formkit/pkg/cell"
)

const extensionNamespace = "x-formkit"

// Violation is an unsupported or malformed formkit extension found in an
// OpenAPI document.
type Violation struct {
	Location string
	Message  string
}

func (v Violation) String() string {
	return v.Location + " -> " + v.Message
}

// LintExtensions reports the x-formkit extensions of data that FromOpenAPI
// would ignore or that name widget kinds unknown to b. Violations are sorted
// by location.
func (b *Builder) LintExtensions(ctx context.Context, data []byte) ([]Violation, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("builder: load openapi document: %w", err)
	}

	var result []Violation
	if doc.Paths != nil {
		for _, path := range doc.Paths.InMatchingOrder() {
			item := doc.Paths.Value(path)
			if item == nil {
				continue
			}
			for method, op := range item.Operations() {
				if op == nil || op.RequestBody == nil || op.RequestBody.Value == nil {
					continue
				}
				base := []string{"operation", operationKey(method, path, op), "requestBody"}
				for mediaType, content := range op.RequestBody.Value.Content {
					if content == nil || content.Schema == nil || content.Schema.Value == nil {
						continue
					}
					result = append(result, b.lintSchema(appendPath(base, mediaType), content.Schema.Value, 0)...)
				}
			}
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Location == result[j].Location {
			return result[i].Message < result[j].Message
		}
		return result[i].Location < result[j].Location
	})
	return result, nil
}

func (b *Builder) lintSchema(path []string, schema *openapi3.Schema, depth int) []Violation {
	// Recursive schemas are resolved into cycles by the loader.
	if schema == nil || depth > 32 {
		return nil
	}
	result := b.lintExtensions(path, schema.Extensions)

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil {
			continue
		}
		result = append(result, b.lintSchema(appendPath(path, "properties."+name), ref.Value, depth+1)...)
	}
	if schema.Items != nil {
		result = append(result, b.lintSchema(appendPath(path, "items"), schema.Items.Value, depth+1)...)
	}
	return result
}

func (b *Builder) lintExtensions(path []string, extensions map[string]any) []Violation {
	keys := make([]string, 0, len(extensions))
	for key := range extensions {
		if strings.HasPrefix(key, extensionNamespace) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	location := strings.Join(path, ".")
	var result []Violation
	for _, key := range keys {
		value := extensions[key]
		switch key {
		case ExtensionKind:
			kind, ok := value.(string)
			switch {
			case !ok:
				result = append(result, Violation{location, fmt.Sprintf("%s must be a string, found %T", key, value)})
			case !b.Widgets.Has(kind):
				result = append(result, Violation{location, fmt.Sprintf("%s %q is not a registered widget kind", key, kind)})
			}
		case ExtensionOrder:
			order, ok := cell.ToFloat(value)
			if !ok || order != math.Trunc(order) {
				result = append(result, Violation{location, fmt.Sprintf("%s must be an integer, found %v", key, value)})
			}
		default:
			result = append(result, Violation{location, fmt.Sprintf("unsupported extension %s", key)})
		}
	}
	return result
}

func appendPath(path []string, part string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, part)
}
