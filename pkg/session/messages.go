package session

import "github.com/goliatone/go-regform/pkg/model"

// Message is an input event handled by Session.Dispatch.
type Message interface {
	messageName() string
}

// FieldChanged records a new raw value for one field. For the acknowledgement
// field the value is interpreted with model.ParseAcknowledgement.
type FieldChanged struct {
	Key   model.FieldKey
	Value string
}

// SubmitRequested runs a validation pass.
type SubmitRequested struct{}

// ResetRequested restores the form to its initial state.
type ResetRequested struct{}

func (FieldChanged) messageName() string    { return "field_changed" }
func (SubmitRequested) messageName() string { return "submit_requested" }
func (ResetRequested) messageName() string  { return "reset_requested" }

// Outcome is the observable result of handling one message.
type Outcome struct {
	Success bool                    `json:"success"`
	Errors  []model.ValidationError `json:"errors,omitempty"`
	Summary []model.Row             `json:"summary,omitempty"`
	Banner  model.Banner            `json:"banner"`
	Status  model.Status            `json:"status"`
}
