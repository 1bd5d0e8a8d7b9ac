package render

import (
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/validation"
)

// Summary row labels, in display order.
const (
	LabelFirstName   = "First Name"
	LabelLastName    = "Last Name"
	LabelDateOfBirth = "Date of Birth"
	LabelAge         = "Age"
	LabelProgram     = "Program"
	LabelEmail       = "Email"
	LabelGender      = "Gender"
	LabelCompliance  = "Physics Laws"
)

const (
	// AgeUnknown is shown when the date of birth cannot be parsed.
	AgeUnknown = "—"
	// ComplianceValue is the fixed acknowledgement line.
	ComplianceValue = "Not familiar (confirmed)"
)

// Summary derives the eight confirmation rows from a passing form. It does not
// mutate state. Programs missing from the catalog are shown as their raw value.
func Summary(state *model.FormState, catalog model.Catalog, today time.Time) []model.Row {
	if state == nil {
		return nil
	}

	age := AgeUnknown
	if years, ok := validation.ComputeAge(state.Value(model.FieldDOB), today); ok {
		age = strconv.Itoa(years)
	}

	return []model.Row{
		{Label: LabelFirstName, Value: strings.TrimSpace(state.Value(model.FieldFirstName))},
		{Label: LabelLastName, Value: strings.TrimSpace(state.Value(model.FieldLastName))},
		{Label: LabelDateOfBirth, Value: state.Value(model.FieldDOB)},
		{Label: LabelAge, Value: age},
		{Label: LabelProgram, Value: catalog.ProgramLabel(state.Value(model.FieldProgram))},
		{Label: LabelEmail, Value: strings.TrimSpace(state.Value(model.FieldEmail))},
		{Label: LabelGender, Value: state.Value(model.FieldGender)},
		{Label: LabelCompliance, Value: ComplianceValue},
	}
}
