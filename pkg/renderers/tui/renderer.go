package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/goliatone/go-regform/internal/logging"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
)

// Renderer drives a registration session from the terminal and formats the
// resulting view as text or JSON.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	maxAttempts  int
	theme        Theme
	logger       *slog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, pretty output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatPrettyText,
		maxAttempts:  DefaultMaxAttempts,
		logger:       logging.Discard(),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = newSurveyDriver()
	}

	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatJSON {
		return "application/json"
	}
	return "text/plain"
}

// Render serializes a view without prompting.
func (r *Renderer) Render(ctx context.Context, view render.View) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if r.outputFormat == OutputFormatJSON {
		out, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode view: %w", err)
		}
		return append(out, '\n'), nil
	}
	return []byte(r.prettyPrint(view)), nil
}

func (r *Renderer) prettyPrint(view render.View) string {
	var b strings.Builder
	if view.Banner.Message != "" {
		b.WriteString(r.bannerLine(view.Banner))
		b.WriteByte('\n')
	}

	for _, message := range view.FormErrors {
		fmt.Fprintf(&b, "%s%s\n", r.theme.ErrorPrefix, message)
	}
	for _, line := range fieldErrorLines(view.Errors) {
		fmt.Fprintf(&b, "%s%s\n", r.theme.ErrorPrefix, line)
	}

	if len(view.Summary) > 0 {
		width := 0
		for _, row := range view.Summary {
			if len(row.Label) > width {
				width = len(row.Label)
			}
		}
		for _, row := range view.Summary {
			fmt.Fprintf(&b, "  %-*s  %s\n", width+1, row.Label+":", row.Value)
		}
	}
	return b.String()
}

func (r *Renderer) bannerLine(banner model.Banner) string {
	switch banner.Tone {
	case model.ToneSuccess:
		return r.theme.SuccessPrefix + banner.Message
	case model.ToneError:
		return r.theme.ErrorPrefix + banner.Message
	default:
		return r.theme.InfoPrefix + banner.Message
	}
}

// fieldErrorLines lists errors in form order; unknown keys follow sorted.
func fieldErrorLines(errs map[string][]string) []string {
	if len(errs) == 0 {
		return nil
	}
	var lines []string
	seen := make(map[string]struct{}, len(errs))
	for _, key := range model.Fields {
		messages, ok := errs[string(key)]
		if !ok {
			continue
		}
		seen[string(key)] = struct{}{}
		for _, message := range messages {
			lines = append(lines, key.Label()+": "+message)
		}
	}

	var rest []string
	for key := range errs {
		if _, ok := seen[key]; !ok {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		for _, message := range errs[key] {
			lines = append(lines, key+": "+message)
		}
	}
	return lines
}
