package session

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-regform/internal/logging"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/validation"
)

var (
	// ErrReentrantDispatch is returned when Dispatch is called while another
	// message is still being handled.
	ErrReentrantDispatch = errors.New("session: reentrant dispatch")
	// ErrUnknownMessage is returned for message types the session does not handle.
	ErrUnknownMessage = errors.New("session: unknown message")
)

// Observer is notified after each handled message. It runs before Dispatch
// returns, so it must not dispatch.
type Observer func(msg Message, outcome Outcome)

// Option configures a Session.
type Option func(*Session)

// WithEngine overrides the validation engine.
func WithEngine(engine *validation.Engine) Option {
	return func(s *Session) {
		if engine != nil {
			s.engine = engine
		}
	}
}

// WithLogger sets the logger used for dispatch traces.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver registers a callback invoked after every handled message.
func WithObserver(observer Observer) Option {
	return func(s *Session) {
		if observer != nil {
			s.observers = append(s.observers, observer)
		}
	}
}

// Session owns one FormState and processes messages one at a time. It is not
// safe for concurrent use.
type Session struct {
	state     *model.FormState
	engine    *validation.Engine
	catalog   model.Catalog
	logger    *slog.Logger
	observers []Observer

	banner      model.Banner
	errors      []model.ValidationError
	summary     []model.Row
	dispatching bool
}

// New returns a session with a pristine form backed by catalog.
func New(catalog model.Catalog, options ...Option) *Session {
	s := &Session{
		state:   model.NewFormState(),
		engine:  validation.NewEngine(),
		catalog: catalog,
		logger:  logging.Discard(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Dispatch handles msg to completion and reports the resulting outcome.
func (s *Session) Dispatch(msg Message) (Outcome, error) {
	if s.dispatching {
		return Outcome{}, ErrReentrantDispatch
	}
	s.dispatching = true
	defer func() { s.dispatching = false }()

	var err error
	switch m := msg.(type) {
	case FieldChanged:
		err = s.handleFieldChanged(m)
	case *FieldChanged:
		if m == nil {
			return Outcome{}, fmt.Errorf("%w: nil FieldChanged", ErrUnknownMessage)
		}
		err = s.handleFieldChanged(*m)
	case SubmitRequested, *SubmitRequested:
		s.handleSubmit()
	case ResetRequested, *ResetRequested:
		s.handleReset()
	default:
		return Outcome{}, fmt.Errorf("%w: %T", ErrUnknownMessage, msg)
	}
	if err != nil {
		return Outcome{}, err
	}

	outcome := s.outcome()
	for _, observer := range s.observers {
		observer(msg, outcome)
	}
	return outcome, nil
}

func (s *Session) handleFieldChanged(m FieldChanged) error {
	if err := s.state.Set(m.Key, m.Value); err != nil {
		return fmt.Errorf("session: field changed: %w", err)
	}
	s.errors = dropField(s.errors, m.Key)
	s.logger.Debug("field changed", slog.String("field", string(m.Key)))
	return nil
}

func (s *Session) handleSubmit() {
	result := s.engine.Validate(s.state)
	s.errors = result.Errors
	s.banner = render.BannerFor(result)
	if s.state.Status() == model.StatusValid {
		s.summary = render.Summary(s.state, s.catalog, s.engine.Now())
	} else {
		s.summary = nil
	}

	attrs := []any{
		slog.String("status", s.state.Status().String()),
		slog.Int("errors", len(result.Errors)),
	}
	for _, entry := range result.Errors {
		s.logger.Debug("field rejected",
			slog.String("field", string(entry.Field)),
			slog.String("kind", string(entry.Kind)),
		)
	}
	s.logger.Info("validation pass", attrs...)
}

func (s *Session) handleReset() {
	s.state.Reset()
	s.errors = nil
	s.summary = nil
	s.banner = render.ResetBanner()
	s.logger.Debug("form reset")
}

func (s *Session) outcome() Outcome {
	out := Outcome{
		Success: s.state.Status() == model.StatusValid && len(s.summary) > 0,
		Banner:  s.banner,
		Status:  s.state.Status(),
	}
	if len(s.errors) > 0 {
		out.Errors = append([]model.ValidationError(nil), s.errors...)
	}
	if len(s.summary) > 0 {
		out.Summary = append([]model.Row(nil), s.summary...)
	}
	return out
}

// State exposes the underlying form for read access.
func (s *Session) State() *model.FormState {
	return s.state
}

// Catalog returns the option lists the session was built with.
func (s *Session) Catalog() model.Catalog {
	return s.catalog
}

// Outcome reports the current outcome without handling a message.
func (s *Session) Outcome() Outcome {
	return s.outcome()
}

// View builds the display model for renderers. The summary is the snapshot
// taken by the last successful pass.
func (s *Session) View() render.View {
	view := render.NewView(s.state, s.catalog, s.banner, s.engine.Now())
	view.Summary = nil
	if len(s.summary) > 0 {
		view.Summary = append([]model.Row(nil), s.summary...)
	}
	return view
}

func dropField(entries []model.ValidationError, key model.FieldKey) []model.ValidationError {
	if len(entries) == 0 {
		return entries
	}
	out := entries[:0:0]
	for _, entry := range entries {
		if entry.Field != key {
			out = append(out, entry)
		}
	}
	return out
}
