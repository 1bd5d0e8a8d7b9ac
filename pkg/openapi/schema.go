package openapi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/validation"
)

const (
	// Version is the OpenAPI version the exported document declares.
	Version = "3.0.3"
	// RegistrationPath is the path the register operation is mounted on.
	RegistrationPath = "/registrations"
	// OperationID identifies the register operation.
	OperationID = "register"

	schemaRegistration    = "Registration"
	schemaSummaryRow      = "SummaryRow"
	schemaValidationError = "ValidationError"

	// ExtensionOptions lists the catalog choices for select fields. Choices
	// are advisory: unknown values are accepted and rendered as-is.
	ExtensionOptions = "x-options"
	// ExtensionLabel carries the human-readable field label.
	ExtensionLabel = "x-label"
)

// RegistrationSchema describes the submitted payload. Required keys, the email
// pattern, and the password length mirror the validation engine; age bounds
// and the uppercase/digit rules depend on the clock or on Unicode classes and
// are left to the engine.
func RegistrationSchema(catalog model.Catalog) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Description = "Registration form submission."

	for _, key := range model.Fields {
		property := fieldSchema(key, catalog)
		property.Extensions = map[string]any{ExtensionLabel: key.Label()}
		switch key {
		case model.FieldProgram:
			property.Extensions[ExtensionOptions] = programOptions(catalog)
		case model.FieldGender:
			property.Extensions[ExtensionOptions] = genderOptions(catalog)
		}
		schema.WithProperty(string(key), property)
	}

	required := make([]string, 0, len(model.RequiredFields)+1)
	for _, key := range model.RequiredFields {
		required = append(required, string(key))
	}
	required = append(required, string(model.FieldPhysics))
	return schema.WithRequired(required)
}

func fieldSchema(key model.FieldKey, _ model.Catalog) *openapi3.Schema {
	switch key {
	case model.FieldEmail:
		return openapi3.NewStringSchema().WithPattern(validation.EmailPattern)
	case model.FieldDOB:
		return openapi3.NewStringSchema().WithFormat("date")
	case model.FieldPassword, model.FieldConfirmPassword:
		s := openapi3.NewStringSchema().WithMinLength(validation.MinimumPasswordLength)
		s.Format = "password"
		s.WriteOnly = true
		return s
	case model.FieldPhysics:
		s := openapi3.NewBoolSchema()
		s.Description = "Must be true to register."
		return s
	default:
		return openapi3.NewStringSchema().WithMinLength(1)
	}
}

func programOptions(catalog model.Catalog) []map[string]string {
	out := make([]map[string]string, 0, len(catalog.Programs))
	for _, program := range catalog.Programs {
		out = append(out, map[string]string{"value": program.Value, "label": program.Label})
	}
	return out
}

func genderOptions(catalog model.Catalog) []string {
	return append([]string(nil), catalog.Genders...)
}

func summaryRowSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("label", openapi3.NewStringSchema()).
		WithProperty("value", openapi3.NewStringSchema()).
		WithRequired([]string{"label", "value"})
}

func validationErrorSchema() *openapi3.Schema {
	kinds := []any{
		string(model.KindRequiredFieldMissing),
		string(model.KindInvalidEmailFormat),
		string(model.KindDOBUnparseable),
		string(model.KindDOBTooYoung),
		string(model.KindDOBTooOld),
		string(model.KindPasswordTooShort),
		string(model.KindPasswordMissingUpper),
		string(model.KindPasswordMissingDigit),
		string(model.KindPasswordMismatch),
		string(model.KindAcknowledgementMissing),
	}
	fields := make([]any, 0, len(model.Fields))
	for _, key := range model.Fields {
		fields = append(fields, string(key))
	}
	return openapi3.NewObjectSchema().
		WithProperty("field", openapi3.NewStringSchema().WithEnum(fields...)).
		WithProperty("kind", openapi3.NewStringSchema().WithEnum(kinds...)).
		WithProperty("message", openapi3.NewStringSchema()).
		WithRequired([]string{"field", "kind", "message"})
}

// Document builds an OpenAPI document exposing a single register operation.
// 200 carries the confirmation summary; 422 carries the validation errors.
func Document(catalog model.Catalog) *openapi3.T {
	components := openapi3.NewComponents()
	components.Schemas = openapi3.Schemas{
		schemaRegistration:    openapi3.NewSchemaRef("", RegistrationSchema(catalog)),
		schemaSummaryRow:      openapi3.NewSchemaRef("", summaryRowSchema()),
		schemaValidationError: openapi3.NewSchemaRef("", validationErrorSchema()),
	}

	ref := func(name string) *openapi3.SchemaRef {
		return openapi3.NewSchemaRef("#/components/schemas/"+name, components.Schemas[name].Value)
	}

	summary := openapi3.NewArraySchema()
	summary.Items = ref(schemaSummaryRow)
	summary.MinItems = 8
	failures := openapi3.NewArraySchema()
	failures.Items = ref(schemaValidationError)
	failures.MinItems = 1

	operation := &openapi3.Operation{
		OperationID: OperationID,
		Summary:     "Validate a registration",
		RequestBody: &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().
				WithRequired(true).
				WithJSONSchemaRef(ref(schemaRegistration)),
		},
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(200, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().
					WithDescription("Registration accepted; confirmation summary.").
					WithJSONSchema(summary),
			}),
			openapi3.WithStatus(422, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().
					WithDescription("Registration rejected; one error per field.").
					WithJSONSchema(failures),
			}),
		),
	}

	return &openapi3.T{
		OpenAPI: Version,
		Info: &openapi3.Info{
			Title:   "Registration",
			Version: "1.0.0",
		},
		Paths: openapi3.NewPaths(
			openapi3.WithPath(RegistrationPath, &openapi3.PathItem{Post: operation}),
		),
		Components: &components,
	}
}

// MarshalDocument validates the document and encodes it as indented JSON.
func MarshalDocument(ctx context.Context, catalog model.Catalog) ([]byte, error) {
	doc := Document(catalog)
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate document: %w", err)
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi: encode document: %w", err)
	}
	return append(out, '\n'), nil
}
