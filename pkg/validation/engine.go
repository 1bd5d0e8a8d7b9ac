package validation

import (
	"time"

	"github.com/goliatone/go-regform/pkg/model"
)

// Result captures the outcome of one validation pass.
type Result struct {
	Success bool                    `json:"success"`
	Errors  []model.ValidationError `json:"errors,omitempty"`
}

// ErrorFor returns the recorded error for key, if any.
func (r Result) ErrorFor(key model.FieldKey) (model.ValidationError, bool) {
	for _, entry := range r.Errors {
		if entry.Field == key {
			return entry, true
		}
	}
	return model.ValidationError{}, false
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the source of "today" used for age checks.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// Engine runs the registration checks over a FormState.
type Engine struct {
	now func() time.Time
}

// NewEngine constructs an Engine using the wall clock unless overridden.
func NewEngine(options ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// Now returns the engine's notion of today.
func (e *Engine) Now() time.Time {
	return e.now()
}

// Validate clears every error slot, runs a full pass, writes the recorded
// errors back into state and sets the status to Valid or Invalid.
func (e *Engine) Validate(state *model.FormState) Result {
	if state == nil {
		return e.Evaluate(model.NewFormState())
	}

	result := e.Evaluate(state)
	state.RecordPass(result.Errors)
	return result
}

// Evaluate runs the checks without touching state. Every step runs; only the
// multi-rule password and DOB checks stop at their own first failure.
func (e *Engine) Evaluate(state *model.FormState) Result {
	if state == nil {
		state = model.NewFormState()
	}
	rec := &recorder{}
	today := e.now()

	for _, key := range model.RequiredFields {
		if !IsNonEmpty(state.Value(key)) {
			rec.record(key, model.KindRequiredFieldMissing, MessageRequired)
		}
	}

	email := state.Value(model.FieldEmail)
	if IsNonEmpty(email) && !ValidateEmail(email) {
		rec.record(model.FieldEmail, model.KindInvalidEmailFormat, MessageInvalidEmail)
	}

	dob := state.Value(model.FieldDOB)
	if IsNonEmpty(dob) {
		if kind, message := CheckDOB(dob, today); message != "" {
			rec.record(model.FieldDOB, kind, message)
		}
	}

	password := state.Value(model.FieldPassword)
	if IsNonEmpty(password) {
		if kind, message := CheckPassword(password); message != "" {
			rec.record(model.FieldPassword, kind, message)
		}
	}

	confirm := state.Value(model.FieldConfirmPassword)
	if IsNonEmpty(password) && IsNonEmpty(confirm) && password != confirm {
		rec.record(model.FieldConfirmPassword, model.KindPasswordMismatch, MessagePasswordMismatch)
	}

	if !state.Acknowledged() {
		rec.record(model.FieldPhysics, model.KindAcknowledgementMissing, MessageAcknowledgementMissing)
	}

	return Result{
		Success: len(rec.errors) == 0,
		Errors:  rec.errors,
	}
}

// recorder keeps at most one entry per field; a later record for the same
// field replaces the earlier one in place.
type recorder struct {
	errors []model.ValidationError
}

func (r *recorder) record(field model.FieldKey, kind model.ErrorKind, message string) {
	entry := model.ValidationError{Field: field, Kind: kind, Message: message}
	for i := range r.errors {
		if r.errors[i].Field == field {
			r.errors[i] = entry
			return
		}
	}
	r.errors = append(r.errors, entry)
}
