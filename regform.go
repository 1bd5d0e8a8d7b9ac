package regform

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/openapi"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
	vanilla "github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/session"
	"github.com/goliatone/go-regform/pkg/submission"
	"github.com/goliatone/go-regform/pkg/validation"
)

// Outcome aliases session.Outcome for callers that only import the root package.
type Outcome = session.Outcome

// View aliases render.View.
type View = render.View

// Option configures the helpers in this package.
type Option func(*options)

type options struct {
	now    func() time.Time
	logger *slog.Logger
	theme  *theme.RendererConfig
}

// WithClock pins "today" for age checks.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger routes session traces to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTheme passes go-theme configuration to the HTML renderer.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(o *options) {
		o.theme = cfg
	}
}

func collect(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&o)
	}
	return o
}

// NewSession builds a session over catalog with the configured clock and logger.
func NewSession(catalog model.Catalog, opts ...Option) *session.Session {
	o := collect(opts)
	sessionOpts := []session.Option{
		session.WithEngine(validation.NewEngine(validation.WithClock(o.now))),
	}
	if o.logger != nil {
		sessionOpts = append(sessionOpts, session.WithLogger(o.logger))
	}
	return session.New(catalog, sessionOpts...)
}

// NewRegistry registers the HTML ("vanilla") and text ("tui") renderers.
func NewRegistry(opts ...Option) (*render.Registry, error) {
	o := collect(opts)

	html, err := vanilla.New(vanilla.WithTheme(o.theme), vanilla.WithDefaultStyles())
	if err != nil {
		return nil, fmt.Errorf("regform: html renderer: %w", err)
	}
	text, err := tui.New(tui.WithOutputFormat(tui.OutputFormatPrettyText))
	if err != nil {
		return nil, fmt.Errorf("regform: text renderer: %w", err)
	}

	registry := render.NewRegistry()
	for _, renderer := range []render.Renderer{html, text} {
		if err := registry.Register(renderer); err != nil {
			return nil, fmt.Errorf("regform: register %s: %w", renderer.Name(), err)
		}
	}
	return registry, nil
}

// CheckResult is the outcome of a non-interactive payload check.
type CheckResult struct {
	Outcome Outcome `json:"outcome"`
	View    View    `json:"view"`
	// Violations lists structural problems reported by the OpenAPI schema.
	Violations []openapi.Violation `json:"violations,omitempty"`
	// Unknown lists payload keys that are not form fields.
	Unknown []string `json:"unknown,omitempty"`
}

// Check replays a decoded submission through a fresh session, submits it,
// and collects the schema violations alongside the validation outcome.
func Check(ctx context.Context, catalog model.Catalog, sub submission.Submission, opts ...Option) (CheckResult, error) {
	if err := ctx.Err(); err != nil {
		return CheckResult{}, err
	}

	s := NewSession(catalog, opts...)
	if err := sub.Apply(s); err != nil {
		return CheckResult{}, err
	}
	outcome, err := s.Dispatch(session.SubmitRequested{})
	if err != nil {
		return CheckResult{}, fmt.Errorf("regform: submit: %w", err)
	}

	return CheckResult{
		Outcome:    outcome,
		View:       s.View(),
		Violations: openapi.CheckPayload(openapi.RegistrationSchema(catalog), sub.Canonical()),
		Unknown:    sub.Unknown,
	}, nil
}
