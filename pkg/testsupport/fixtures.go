package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/model"
)

// Today is the fixed date tests use as "now".
var Today = time.Date(2025, time.June, 15, 9, 30, 0, 0, time.UTC)

// Clock returns a clock pinned to Today.
func Clock() func() time.Time {
	return FixedClock(Today)
}

// FixedClock returns a clock that always reports at.
func FixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// YearsBefore formats the date exactly years before Today, shifted by days.
func YearsBefore(years, days int) string {
	return Today.AddDate(-years, 0, days).Format("2006-01-02")
}

// Catalog returns the program and gender lists used across tests.
func Catalog() model.Catalog {
	return model.Catalog{
		Programs: []model.Program{
			{Value: "king-kong-dad", Label: "King Kong Dad Protocol (Beginner)"},
			{Value: "spartan-strength", Label: "Spartan Strength (Intermediate)"},
			{Value: "godslayer", Label: "Godslayer Combat Conditioning (Pro)"},
			{Value: "legend-protocol", Label: "Legend Protocol (Special)"},
			{Value: "forced-motivation", Label: "Forced Motivation Plan (Special)"},
		},
		Genders: []string{"Man", "Machine", "Demigod"},
	}
}

// ValidValues returns a field map that passes every check relative to Today.
func ValidValues() map[model.FieldKey]string {
	return map[model.FieldKey]string{
		model.FieldFirstName:       "Kratos",
		model.FieldLastName:        "Of Sparta",
		model.FieldDOB:             "1990-03-21",
		model.FieldProgram:         "godslayer",
		model.FieldPassword:        "Godmode9",
		model.FieldConfirmPassword: "Godmode9",
		model.FieldEmail:           "kratos@olympus.gr",
		model.FieldGender:          "Demigod",
		model.FieldPhysics:         "true",
	}
}

// State builds a FormState from values, failing the test on unknown keys.
func State(t *testing.T, values map[model.FieldKey]string) *model.FormState {
	t.Helper()

	state := model.NewFormState()
	for _, key := range model.Fields {
		value, ok := values[key]
		if !ok {
			continue
		}
		if err := state.Set(key, value); err != nil {
			t.Fatalf("set %s: %v", key, err)
		}
	}
	return state
}

// ValidState returns a FormState populated with ValidValues, with overrides
// applied on top.
func ValidState(t *testing.T, overrides map[model.FieldKey]string) *model.FormState {
	t.Helper()

	values := ValidValues()
	for key, value := range overrides {
		values[key] = value
	}
	return State(t, values)
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	WriteMaybeGolden(t, path, payload)
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
