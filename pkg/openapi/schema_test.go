package openapi_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/openapi"
	"github.com/goliatone/go-regform/pkg/testsupport"
)

func validPayload() map[string]any {
	return map[string]any{
		"firstName":       "Kratos",
		"lastName":        "Of Sparta",
		"dob":             "1990-03-21",
		"program":         "godslayer",
		"password":        "Godmode9",
		"confirmPassword": "Godmode9",
		"email":           "kratos@olympus.gr",
		"gender":          "Demigod",
		"physics":         true,
	}
}

func TestDocument_Validates(t *testing.T) {
	doc := openapi.Document(testsupport.Catalog())
	if err := doc.Validate(context.Background()); err != nil {
		t.Fatalf("document invalid: %v", err)
	}

	item := doc.Paths.Find(openapi.RegistrationPath)
	if item == nil || item.Post == nil || item.Post.OperationID != openapi.OperationID {
		t.Fatalf("register operation missing")
	}
	if item.Post.Responses.Status(422) == nil {
		t.Fatalf("expected a 422 response")
	}
}

func TestMarshalDocument_RoundTrips(t *testing.T) {
	data, err := openapi.MarshalDocument(context.Background(), testsupport.Catalog())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	loaded, err := openapi3.NewLoader().LoadFromData(data)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	registration := loaded.Components.Schemas["Registration"]
	if registration == nil || registration.Value == nil {
		t.Fatalf("registration schema missing")
	}
	if registration.Value.Properties["password"].Value.MinLength != 8 {
		t.Fatalf("expected password minLength 8")
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if raw["openapi"] != openapi.Version {
		t.Fatalf("unexpected version %v", raw["openapi"])
	}
}

func TestRegistrationSchema_Shape(t *testing.T) {
	schema := openapi.RegistrationSchema(testsupport.Catalog())

	want := []string{"firstName", "lastName", "dob", "program", "password", "confirmPassword", "email", "gender", "physics"}
	if diff := cmp.Diff(want, schema.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	if len(schema.Properties["program"].Value.Enum) != 0 {
		t.Fatalf("program must not be an enum; unknown values are accepted")
	}
	options, ok := schema.Properties["program"].Value.Extensions[openapi.ExtensionOptions].([]map[string]string)
	if !ok || len(options) != 5 || options[2]["value"] != "godslayer" {
		t.Fatalf("unexpected program options %#v", schema.Properties["program"].Value.Extensions)
	}
	if got := schema.Properties["physics"].Value.Extensions[openapi.ExtensionLabel]; got != model.FieldPhysics.Label() {
		t.Fatalf("unexpected physics label %v", got)
	}
}

func TestCheckPayload_Valid(t *testing.T) {
	schema := openapi.RegistrationSchema(testsupport.Catalog())
	if got := openapi.CheckPayload(schema, validPayload()); len(got) != 0 {
		t.Fatalf("expected no violations, got %#v", got)
	}

	payload := validPayload()
	payload["program"] = "unknown-program"
	if got := openapi.CheckPayload(schema, payload); len(got) != 0 {
		t.Fatalf("unknown program should pass structurally, got %#v", got)
	}
}

func TestCheckPayload_Violations(t *testing.T) {
	schema := openapi.RegistrationSchema(testsupport.Catalog())
	payload := validPayload()
	delete(payload, "lastName")
	payload["physics"] = "yes"
	payload["email"] = "kratos@olympus"
	payload["password"] = "short"

	got := openapi.CheckPayload(schema, payload)

	paths := make(map[string]string, len(got))
	for _, v := range got {
		paths[v.Path] = v.Rule
	}
	want := map[string]string{
		"/lastName": "required",
		"/physics":  "type",
		"/email":    "pattern",
		"/password": "minLength",
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}
