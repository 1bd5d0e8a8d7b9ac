package render

import (
	"time"

	"github.com/goliatone/go-regform/pkg/model"
)

// View is the display model handed to renderers after a dispatch. It never
// carries password values.
type View struct {
	Status string       `json:"status"`
	Banner model.Banner `json:"banner"`
	// Values echoes the non-secret field values so renderers can prefill
	// controls.
	Values map[string]string `json:"values,omitempty"`
	// Errors holds the per-field messages of the last validation pass.
	Errors map[string][]string `json:"errors,omitempty"`
	// FormErrors holds messages not attached to any field.
	FormErrors []string `json:"formErrors,omitempty"`
	// Summary is only populated after a successful pass.
	Summary []model.Row `json:"summary,omitempty"`
}

// Success reports whether the view carries a confirmation summary.
func (v View) Success() bool {
	return len(v.Summary) > 0
}

// NewView assembles a View from the form state. Summary rows are derived only
// when the state is Valid.
func NewView(state *model.FormState, catalog model.Catalog, banner model.Banner, today time.Time) View {
	if state == nil {
		return View{Banner: banner}
	}

	view := View{
		Status: state.Status().String(),
		Banner: banner,
		Values: make(map[string]string, len(model.Fields)),
	}
	for _, key := range model.Fields {
		if isSecret(key) {
			continue
		}
		view.Values[string(key)] = state.Value(key)
	}

	errs := make([]model.ValidationError, 0, len(model.Fields))
	for _, key := range model.Fields {
		if message := state.Error(key); message != "" {
			errs = append(errs, model.ValidationError{Field: key, Message: message})
		}
	}
	mapping := MapErrors(errs)
	view.Errors = mapping.Fields
	view.FormErrors = mapping.Form

	if state.Status() == model.StatusValid {
		view.Summary = Summary(state, catalog, today)
	}
	return view
}

func isSecret(key model.FieldKey) bool {
	return key == model.FieldPassword || key == model.FieldConfirmPassword
}
