// Package openapiform converts one operation's request body from an OpenAPI 3
// document into a form document, so schemas can be authored against an
// existing API instead of written by hand. Only properties expressible as
// form field kinds are carried over; the rest are skipped.
package openapiform

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/formflow/formflow/pkg/schema"
)

// FromDocument locates operationID inside the document and builds a Form
// from its JSON request body. The body must be an object schema.
func FromDocument(ctx context.Context, data []byte, operationID string) (schema.Form, error) {
	if err := ctx.Err(); err != nil {
		return schema.Form{}, err
	}
	if len(data) == 0 {
		return schema.Form{}, errors.New("openapiform: document payload is empty")
	}
	if strings.TrimSpace(operationID) == "" {
		return schema.Form{}, errors.New("openapiform: operation id is required")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return schema.Form{}, fmt.Errorf("openapiform: load document: %w", err)
	}

	op, err := findOperation(doc, operationID)
	if err != nil {
		return schema.Form{}, err
	}

	body := requestBodySchema(op)
	if body == nil {
		return schema.Form{}, fmt.Errorf("openapiform: operation %q has no usable request body", operationID)
	}
	if !hasType(body, "object") || len(body.Properties) == 0 {
		return schema.Form{}, fmt.Errorf("openapiform: operation %q request body is not an object schema", operationID)
	}

	required := make(map[string]struct{}, len(body.Required))
	for _, name := range body.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	var fields []schema.Field
	for _, name := range names {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		_, req := required[name]
		if field, ok := mapField(name, ref.Value, req); ok {
			fields = append(fields, field)
		}
	}
	if len(fields) == 0 {
		return schema.Form{}, fmt.Errorf("openapiform: operation %q yields no mappable fields", operationID)
	}

	title := strings.TrimSpace(op.Summary)
	if title == "" {
		title = operationID
	}
	version := ""
	if doc.Info != nil {
		version = doc.Info.Version
	}

	form := schema.Form{
		Title:   title,
		FormID:  operationID,
		Version: version,
		Sections: []schema.Section{{
			OrderIndex:  1,
			Title:       title,
			Description: strings.TrimSpace(op.Description),
			Fields:      fields,
		}},
	}
	schema.Normalize(&form)
	if err := schema.Validate(form); err != nil {
		return schema.Form{}, fmt.Errorf("openapiform: %w", err)
	}
	return form, nil
}

func findOperation(doc *openapi3.T, operationID string) (*openapi3.Operation, error) {
	if doc.Paths != nil {
		for _, item := range doc.Paths.Map() {
			if item == nil {
				continue
			}
			for _, op := range item.Operations() {
				if op != nil && op.OperationID == operationID {
					return op, nil
				}
			}
		}
	}
	return nil, fmt.Errorf("openapiform: operation %q not found", operationID)
}

func requestBodySchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func mapField(name string, src *openapi3.Schema, required bool) (schema.Field, bool) {
	kind, ok := fieldKind(src)
	if !ok {
		return schema.Field{}, false
	}

	field := schema.Field{
		FieldID:     name,
		Kind:        kind,
		Label:       labelFor(name, src),
		Placeholder: strings.TrimSpace(src.Description),
		Required:    required,
	}

	if kind == schema.FieldKindDropdown {
		for _, raw := range src.Enum {
			value := fmt.Sprint(raw)
			field.Options = append(field.Options, schema.Option{Value: value, Label: value})
		}
	}

	if kind != schema.FieldKindCheckbox && kind != schema.FieldKindDropdown {
		if src.MinLength > 0 {
			value := int(src.MinLength)
			field.MinLength = &value
		}
		if src.MaxLength != nil {
			value := int(*src.MaxLength)
			field.MaxLength = &value
		}
	}

	return field, true
}

func fieldKind(src *openapi3.Schema) (schema.FieldKind, bool) {
	switch {
	case hasType(src, "boolean"):
		return schema.FieldKindCheckbox, true
	case hasType(src, "string"):
		if len(src.Enum) > 0 {
			return schema.FieldKindDropdown, true
		}
		switch strings.ToLower(src.Format) {
		case "email":
			return schema.FieldKindEmail, true
		case "date":
			return schema.FieldKindDate, true
		case "tel", "phone":
			return schema.FieldKindTel, true
		case "textarea":
			return schema.FieldKindTextarea, true
		default:
			return schema.FieldKindText, true
		}
	default:
		// Numbers, arrays, and nested objects have no form control.
		return "", false
	}
}

func hasType(src *openapi3.Schema, want string) bool {
	if src == nil || src.Type == nil {
		return false
	}
	for _, t := range src.Type.Slice() {
		if t == want {
			return true
		}
	}
	return false
}

func labelFor(name string, src *openapi3.Schema) string {
	if title := strings.TrimSpace(src.Title); title != "" {
		return title
	}
	return humanize(name)
}

// humanize turns camelCase or snake_case identifiers into a spaced,
// capitalised label.
func humanize(name string) string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = nil
		}
	}
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case r >= 'A' && r <= 'Z':
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
	}
	flush()
	if len(words) == 0 {
		return name
	}
	for i, word := range words {
		runes := []rune(word)
		if runes[0] >= 'a' && runes[0] <= 'z' {
			runes[0] = runes[0] - 'a' + 'A'
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
