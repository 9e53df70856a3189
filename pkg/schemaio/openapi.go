package schemaio

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formstate/pkg/model"
)

// OrderExtension lists property names in the order fields should appear.
// Properties not listed follow in alphabetical order.
const OrderExtension = "x-formstate-order"

var (
	// ErrOperationNotFound is returned when no operation matches the id.
	ErrOperationNotFound = errors.New("schemaio: operation not found")
	// ErrNoRequestBody is returned when the operation has no object body.
	ErrNoRequestBody = errors.New("schemaio: operation has no object request body")
)

// FromOpenAPI derives a Schema from the request body of an OpenAPI
// operation. Only flat object bodies are supported; nested objects and
// arrays are skipped since they have no matching field kind.
func FromOpenAPI(ctx context.Context, data []byte, operationID string) (model.Schema, error) {
	if err := ctx.Err(); err != nil {
		return model.Schema{}, err
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return model.Schema{}, fmt.Errorf("schemaio: load openapi document: %w", err)
	}

	operation := findOperation(spec, operationID)
	if operation == nil {
		return model.Schema{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	body := requestSchema(operation.RequestBody)
	if body == nil || !body.Type.Is(openapi3.TypeObject) || len(body.Properties) == 0 {
		return model.Schema{}, fmt.Errorf("%w: %q", ErrNoRequestBody, operationID)
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	var fields []model.Field
	for _, name := range propertyOrder(body) {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		field, ok := convertProperty(name, ref.Value)
		if !ok {
			continue
		}
		field.Required = required[name]
		fields = append(fields, field)
	}

	schema, err := model.NewSchema(fields...)
	if err != nil {
		return model.Schema{}, fmt.Errorf("schemaio: operation %q: %w", operationID, err)
	}
	return schema, nil
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec == nil || spec.Paths == nil {
		return nil
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(requestBody *openapi3.RequestBodyRef) *openapi3.Schema {
	if requestBody == nil || requestBody.Value == nil {
		return nil
	}
	content := requestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func convertProperty(name string, src *openapi3.Schema) (model.Field, bool) {
	field := model.Field{
		Name:  name,
		Label: strings.TrimSpace(src.Title),
	}

	switch {
	case src.Type.Is(openapi3.TypeBoolean):
		field.Kind = model.KindCheckbox
	case src.Type.Is(openapi3.TypeInteger), src.Type.Is(openapi3.TypeNumber):
		field.Kind = model.KindNumber
		if src.Min != nil {
			field.Min = model.Float(*src.Min)
		}
		if src.Max != nil {
			field.Max = model.Float(*src.Max)
		}
	case src.Type.Is(openapi3.TypeString):
		switch {
		case len(src.Enum) > 0:
			field.Kind = model.KindRadio
			for _, option := range src.Enum {
				field.Options = append(field.Options, fmt.Sprint(option))
			}
			return field, true
		case src.Format == "email":
			field.Kind = model.KindEmail
		default:
			field.Kind = model.KindText
		}
		if src.MinLength > 0 {
			field.MinLength = model.Int(int(src.MinLength))
		}
		if src.MaxLength != nil {
			field.MaxLength = model.Int(int(*src.MaxLength))
		}
	default:
		return model.Field{}, false
	}
	return field, true
}

func propertyOrder(body *openapi3.Schema) []string {
	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	raw, ok := body.Extensions[OrderExtension].([]any)
	if !ok || len(raw) == 0 {
		return names
	}

	ordered := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, entry := range raw {
		name, ok := entry.(string)
		if !ok || seen[name] {
			continue
		}
		if _, exists := body.Properties[name]; !exists {
			continue
		}
		seen[name] = true
		ordered = append(ordered, name)
	}
	for _, name := range names {
		if !seen[name] {
			ordered = append(ordered, name)
		}
	}
	return ordered
}
