package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-regform/pkg/catalog"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/session"
)

const (
	dobHelp     = "Use YYYY-MM-DD."
	physicsText = "I confirm I am not familiar with the laws of physics"
)

// Run prompts for every field, submits, and re-prompts the rejected fields
// until a pass succeeds or the attempt budget is spent. The final outcome is
// returned alongside ErrAttemptsExhausted when no pass succeeded.
func (r *Renderer) Run(ctx context.Context, s *session.Session) (session.Outcome, error) {
	if ctx == nil {
		return session.Outcome{}, errors.New("tui: context is required")
	}
	if s == nil {
		return session.Outcome{}, errors.New("tui: session is nil")
	}

	pending := model.Fields
	var outcome session.Outcome
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		for _, key := range pending {
			if err := r.promptField(ctx, s, key); err != nil {
				return outcome, err
			}
		}

		var err error
		outcome, err = s.Dispatch(session.SubmitRequested{})
		if err != nil {
			return outcome, fmt.Errorf("tui: submit: %w", err)
		}
		r.logger.Debug("submit attempt",
			slog.Int("attempt", attempt),
			slog.String("status", outcome.Status.String()),
		)

		if err := r.report(ctx, s); err != nil {
			return outcome, err
		}
		if outcome.Success {
			return outcome, nil
		}
		pending = retryFields(outcome.Errors)
	}

	return outcome, ErrAttemptsExhausted
}

func (r *Renderer) report(ctx context.Context, s *session.Session) error {
	out, err := r.Render(ctx, s.View())
	if err != nil {
		return err
	}
	if len(out) == 0 {
		return nil
	}
	return r.driver.Info(ctx, string(trimNewline(out)))
}

func (r *Renderer) promptField(ctx context.Context, s *session.Session, key model.FieldKey) error {
	state := s.State()
	var (
		value string
		err   error
	)

	switch key {
	case model.FieldPassword, model.FieldConfirmPassword:
		value, err = r.driver.Secret(ctx, SecretPrompt{Message: key.Label()})
	case model.FieldProgram:
		value, err = r.promptProgram(ctx, s.Catalog(), state.Value(key))
	case model.FieldGender:
		value, err = r.promptGender(ctx, s.Catalog(), state.Value(key))
	case model.FieldPhysics:
		var checked bool
		checked, err = r.driver.Confirm(ctx, ConfirmPrompt{
			Message: physicsText,
			Default: state.Acknowledged(),
		})
		if checked {
			value = "true"
		}
	default:
		prompt := TextPrompt{Message: key.Label(), Default: state.Value(key)}
		if key == model.FieldDOB {
			prompt.Help = dobHelp
		}
		value, err = r.driver.Text(ctx, prompt)
	}
	if err != nil {
		return err
	}

	if _, err := s.Dispatch(session.FieldChanged{Key: key, Value: value}); err != nil {
		return fmt.Errorf("tui: %s: %w", key, err)
	}
	return nil
}

// promptProgram offers program labels and maps the chosen label back to its
// catalog value. An unrecognised answer leaves the field empty.
func (r *Renderer) promptProgram(ctx context.Context, c model.Catalog, current string) (string, error) {
	label, err := r.driver.Choose(ctx, ChoicePrompt{
		Message: model.FieldProgram.Label(),
		Options: catalog.ProgramLabels(c),
		Default: c.ProgramLabel(current),
	})
	if err != nil {
		return "", err
	}
	value, _ := catalog.ProgramValue(c, label)
	return value, nil
}

func (r *Renderer) promptGender(ctx context.Context, c model.Catalog, current string) (string, error) {
	choice, err := r.driver.Choose(ctx, ChoicePrompt{
		Message: model.FieldGender.Label(),
		Options: c.Genders,
		Default: current,
	})
	if err != nil {
		return "", err
	}
	if !contains(c.Genders, choice) {
		return "", nil
	}
	return choice, nil
}

// retryFields returns the rejected fields in form order. Password and
// confirmation are always re-prompted together.
func retryFields(errs []model.ValidationError) []model.FieldKey {
	failed := make(map[model.FieldKey]struct{}, len(errs)+1)
	for _, entry := range errs {
		switch entry.Field {
		case model.FieldPassword, model.FieldConfirmPassword:
			failed[model.FieldPassword] = struct{}{}
			failed[model.FieldConfirmPassword] = struct{}{}
		default:
			failed[entry.Field] = struct{}{}
		}
	}
	out := make([]model.FieldKey, 0, len(failed))
	for _, key := range model.Fields {
		if _, ok := failed[key]; ok {
			out = append(out, key)
		}
	}
	return out
}

func trimNewline(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}
