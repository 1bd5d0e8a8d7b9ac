package regform_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/submission"
	"github.com/goliatone/go-regform/pkg/testsupport"
	"github.com/goliatone/go-regform/pkg/validation"
)

func TestCheck_ValidPayload(t *testing.T) {
	sub, err := submission.Decode([]byte(`{
  "firstName": "Kratos", "lastName": "Of Sparta", "dob": "1990-03-21",
  "program": "godslayer", "password": "Godmode9", "confirmPassword": "Godmode9",
  "email": "kratos@olympus.gr", "gender": "Demigod", "physics": true
}`), "payload.json")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	result, err := regform.Check(context.Background(), testsupport.Catalog(), sub, regform.WithClock(testsupport.Clock()))
	if err != nil {
		t.Fatalf("check: %v", err)
	}

	if !result.Outcome.Success || !result.View.Success() {
		t.Fatalf("expected success, got %#v", result.Outcome)
	}
	if len(result.Violations) != 0 || len(result.Unknown) != 0 {
		t.Fatalf("unexpected violations %#v / unknown %#v", result.Violations, result.Unknown)
	}
}

func TestCheck_LooseKeysAgreeWithSchema(t *testing.T) {
	sub, err := submission.Decode([]byte(`{"Data": {
  "FirstName": " Kratos ", "LASTNAME": "Of Sparta", "DOB": "1990-03-21",
  "Program": "godslayer", "Password": "Godmode9", "confirmpassword": "Godmode9",
  "Email": " kratos@olympus.gr ", "Gender": "Demigod", "Physics": "yes"
}}`), "payload.json")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	result, err := regform.Check(context.Background(), testsupport.Catalog(), sub, regform.WithClock(testsupport.Clock()))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !result.Outcome.Success {
		t.Fatalf("expected success, got %#v", result.Outcome.Errors)
	}
	if len(result.Violations) != 0 {
		t.Fatalf("accepted registration should have no schema violations, got %#v", result.Violations)
	}
}

func TestCheck_ReportsEngineAndSchema(t *testing.T) {
	sub, err := submission.Decode([]byte("email: nope\nphysics: yes\nextra: 1\n"), "payload.yaml")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	result, err := regform.Check(context.Background(), testsupport.Catalog(), sub, regform.WithClock(testsupport.Clock()))
	if err != nil {
		t.Fatalf("check: %v", err)
	}

	if result.Outcome.Success || result.Outcome.Status != model.StatusInvalid {
		t.Fatalf("expected failure, got %#v", result.Outcome)
	}
	// "yes" sets the acknowledgement, so the engine does not flag physics.
	for _, entry := range result.Outcome.Errors {
		if entry.Field == model.FieldPhysics {
			t.Fatalf("physics should be acknowledged: %#v", entry)
		}
	}
	emailErr, ok := findError(result.Outcome.Errors, model.FieldEmail)
	if !ok || emailErr.Message != validation.MessageInvalidEmail {
		t.Fatalf("expected email format error, got %#v", result.Outcome.Errors)
	}
	if len(result.Violations) == 0 {
		t.Fatalf("expected schema violations")
	}
	if diff := cmp.Diff([]string{"extra"}, result.Unknown); diff != "" {
		t.Fatalf("unknown mismatch (-want +got):\n%s", diff)
	}
}

func TestNewRegistry(t *testing.T) {
	registry, err := regform.NewRegistry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if diff := cmp.Diff([]string{"tui", "vanilla"}, registry.List()); diff != "" {
		t.Fatalf("renderers mismatch (-want +got):\n%s", diff)
	}

	s := regform.NewSession(testsupport.Catalog(), regform.WithClock(testsupport.Clock()))
	html, err := registry.MustGet("vanilla").Render(context.Background(), s.View())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(html), "<html") {
		t.Fatalf("expected an HTML page, got %q", html)
	}
}

func TestEmbeddedFS(t *testing.T) {
	if _, err := regform.EmbeddedTemplates().Open("templates/page.tmpl"); err != nil {
		t.Fatalf("templates: %v", err)
	}
	if _, err := regform.EmbeddedAssets().Open("regform-vanilla.css"); err != nil {
		t.Fatalf("assets: %v", err)
	}
}

func findError(errs []model.ValidationError, key model.FieldKey) (model.ValidationError, bool) {
	for _, entry := range errs {
		if entry.Field == key {
			return entry, true
		}
	}
	return model.ValidationError{}, false
}
