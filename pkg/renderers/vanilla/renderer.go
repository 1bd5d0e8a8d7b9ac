package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	rendertemplate "github.com/goliatone/go-regform/pkg/render/template"
	gotemplate "github.com/goliatone/go-regform/pkg/render/template/gotemplate"
)

const (
	// DefaultTitle is used when no page title is configured.
	DefaultTitle = "Registration"
	// DefaultPageTemplate is the embedded page layout.
	DefaultPageTemplate = "templates/page.tmpl"
	// PagePartial is the theme partial key that replaces the page layout.
	PagePartial = "regform.page"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	theme            *theme.RendererConfig
	stylesheet       string
	inlineStyles     bool
	title            string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme applies theme tokens, CSS variables and asset resolution.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithStylesheet links an external stylesheet. It takes precedence over a
// theme-resolved stylesheet.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		cfg.stylesheet = strings.TrimSpace(href)
	}
}

// WithDefaultStyles inlines the embedded stylesheet.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			cfg.title = trimmed
		}
	}
}

// Renderer produces a standalone HTML page showing the banner, the per-field
// errors and, after a successful pass, the confirmation summary.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	theme        *theme.RendererConfig
	stylesheet   string
	inlineStyles bool
	title        string
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), title: DefaultTitle}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	stylesheet := cfg.stylesheet
	if stylesheet == "" {
		stylesheet = themeStylesheet(cfg.theme)
	}

	return &Renderer{
		templates:    renderer,
		theme:        cfg.theme,
		stylesheet:   stylesheet,
		inlineStyles: cfg.inlineStyles,
		title:        cfg.title,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, view render.View) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate(r.pageTemplate(), r.pageData(view))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// pageTemplate honours a theme override of the page partial.
func (r *Renderer) pageTemplate() string {
	if r.theme != nil {
		if name := strings.TrimSpace(r.theme.Partials[PagePartial]); name != "" {
			return name
		}
	}
	return DefaultPageTemplate
}

func (r *Renderer) pageData(view render.View) map[string]any {
	data := map[string]any{
		"title":      r.title,
		"status":     view.Status,
		"classes":    chromeClasses(),
		"stylesheet": r.stylesheet,
		"theme":      buildThemeContext(r.theme),
		"banner": map[string]any{
			"message": view.Banner.Message,
			"tone":    string(view.Banner.Tone),
		},
		"errors":  errorItems(view),
		"summary": summaryItems(view.Summary),
	}
	if r.inlineStyles {
		data["inline_styles"] = defaultStylesheet()
	}
	return data
}

// errorItems lists field errors in form order followed by form-level messages.
func errorItems(view render.View) []any {
	var items []any
	for _, key := range model.Fields {
		for _, message := range view.Errors[string(key)] {
			items = append(items, map[string]any{
				"field":   string(key),
				"label":   key.Label(),
				"message": message,
			})
		}
	}
	for _, message := range view.FormErrors {
		items = append(items, map[string]any{
			"field":   "",
			"label":   "Form",
			"message": message,
		})
	}
	return items
}

func summaryItems(rows []model.Row) []any {
	if len(rows) == 0 {
		return nil
	}
	items := make([]any, 0, len(rows))
	for _, row := range rows {
		items = append(items, map[string]any{
			"label": row.Label,
			"value": sanitizeValue(row.Value),
		})
	}
	return items
}
