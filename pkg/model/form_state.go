package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownField is returned when a mutation names a slot the form does not have.
var ErrUnknownField = errors.New("model: unknown field")

// FormState is the mutable record of one registration attempt: raw field
// values, one error slot per field, and the overall status. It is owned by a
// single session and is not safe for concurrent use.
type FormState struct {
	values       map[FieldKey]string
	acknowledged bool
	errors       map[FieldKey]string
	status       Status
}

// NewFormState returns an empty, pristine form.
func NewFormState() *FormState {
	s := &FormState{}
	s.Reset()
	return s
}

// Reset restores every value and error slot to empty and the status to Pristine.
func (s *FormState) Reset() {
	s.values = make(map[FieldKey]string, len(Fields))
	s.errors = make(map[FieldKey]string, len(Fields))
	for _, key := range Fields {
		s.values[key] = ""
		s.errors[key] = ""
	}
	s.acknowledged = false
	s.status = StatusPristine
}

// Set writes a raw value and clears the field's error slot. Values for the
// acknowledgement field are interpreted with ParseAcknowledgement.
func (s *FormState) Set(key FieldKey, value string) error {
	if !key.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	if key.IsAcknowledgement() {
		s.SetAcknowledged(ParseAcknowledgement(value))
		return nil
	}
	s.values[key] = value
	s.errors[key] = ""
	return nil
}

// SetAcknowledged toggles the acknowledgement checkbox and clears its error slot.
func (s *FormState) SetAcknowledged(checked bool) {
	s.acknowledged = checked
	if checked {
		s.values[FieldPhysics] = "true"
	} else {
		s.values[FieldPhysics] = ""
	}
	s.errors[FieldPhysics] = ""
}

// Value returns the raw value stored for key.
func (s *FormState) Value(key FieldKey) string {
	return s.values[key]
}

// Acknowledged reports whether the acknowledgement field is affirmatively set.
func (s *FormState) Acknowledged() bool {
	return s.acknowledged
}

// Values returns a copy of the raw values keyed by field.
func (s *FormState) Values() map[FieldKey]string {
	out := make(map[FieldKey]string, len(s.values))
	for key, value := range s.values {
		out[key] = value
	}
	return out
}

// Error returns the message in the field's error slot, or "".
func (s *FormState) Error(key FieldKey) string {
	return s.errors[key]
}

// Errored reports whether the field is currently marked with an error.
func (s *FormState) Errored(key FieldKey) bool {
	return s.errors[key] != ""
}

// ClearErrors empties every error slot.
func (s *FormState) ClearErrors() {
	for _, key := range Fields {
		s.errors[key] = ""
	}
}

// RecordPass stores the errors of a completed validation pass: every slot is
// cleared, each error is written to its field's slot, and the status becomes
// Valid when errs is empty and Invalid otherwise. Errors naming unknown
// fields have no slot and only affect the status.
func (s *FormState) RecordPass(errs []ValidationError) {
	s.ClearErrors()
	for _, entry := range errs {
		if entry.Field.Valid() {
			s.errors[entry.Field] = entry.Message
		}
	}
	if len(errs) == 0 {
		s.status = StatusValid
		return
	}
	s.status = StatusInvalid
}

// Errors returns the non-empty error slots.
func (s *FormState) Errors() map[FieldKey]string {
	out := make(map[FieldKey]string)
	for key, message := range s.errors {
		if message != "" {
			out[key] = message
		}
	}
	return out
}

// HasErrors reports whether any error slot is non-empty.
func (s *FormState) HasErrors() bool {
	for _, message := range s.errors {
		if message != "" {
			return true
		}
	}
	return false
}

// Status returns the outcome of the last validation pass.
func (s *FormState) Status() Status {
	return s.status
}

// ParseAcknowledgement interprets checkbox-style input. "true", "1", "yes",
// "y", "on" and "checked" are affirmative; everything else is not.
func ParseAcknowledgement(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "y", "on", "checked":
		return true
	default:
		return false
	}
}
