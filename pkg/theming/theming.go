package theming

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

const (
	// DefaultTheme names the bundled manifest.
	DefaultTheme = "regform"
	// DefaultVariant is used when no variant is requested.
	DefaultVariant = "light"
)

var (
	// ErrUnknownTheme is returned when no manifest matches the requested name.
	ErrUnknownTheme = errors.New("theming: unknown theme")
	// ErrUnknownVariant is returned when the manifest has no such variant.
	ErrUnknownVariant = errors.New("theming: unknown variant")
)

// Selector matches go-theme's selector contract.
type Selector interface {
	Select(name, variant string, opts ...theme.QueryOption) (*theme.Selection, error)
}

// Builtin returns the bundled manifests keyed by name.
func Builtin() map[string]*theme.Manifest {
	return map[string]*theme.Manifest{
		DefaultTheme: {
			Name:    DefaultTheme,
			Version: "1.0.0",
			Tokens: map[string]string{
				"surface":      "#ffffff",
				"text":         "#1b1b1b",
				"accent":       "#8a1c1c",
				"border":       "#eeeeee",
				"success-bg":   "#e6f6ec",
				"success-text": "#135d2d",
				"error-bg":     "#fdecec",
				"error-text":   "#8a1c1c",
			},
			Variants: map[string]theme.Variant{
				DefaultVariant: {},
				"dark": {
					Tokens: map[string]string{
						"surface":      "#141414",
						"text":         "#f2f2f2",
						"accent":       "#f2b8b5",
						"border":       "#2e2e2e",
						"success-bg":   "#10331f",
						"success-text": "#9fe0b4",
						"error-bg":     "#3b1212",
						"error-text":   "#f2b8b5",
					},
				},
			},
		},
	}
}

// ManifestSelector selects from an in-memory set of manifests.
type ManifestSelector struct {
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

// NewSelector builds a selector over manifests. Empty defaults fall back to
// DefaultTheme and DefaultVariant.
func NewSelector(manifests map[string]*theme.Manifest, defaultTheme, defaultVariant string) *ManifestSelector {
	if defaultTheme == "" {
		defaultTheme = DefaultTheme
	}
	if defaultVariant == "" {
		defaultVariant = DefaultVariant
	}
	return &ManifestSelector{
		manifests:      manifests,
		defaultTheme:   defaultTheme,
		defaultVariant: defaultVariant,
	}
}

// Select resolves name/variant, applying the selector defaults to empty values.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultTheme
	}
	variant = strings.TrimSpace(variant)
	if variant == "" {
		variant = s.defaultVariant
	}

	manifest, ok := s.manifests[name]
	if !ok || manifest == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	if _, ok := manifest.Variants[variant]; !ok && len(manifest.Variants) > 0 {
		return nil, fmt.Errorf("%w: %q has no variant %q", ErrUnknownVariant, name, variant)
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// Resolve selects a theme and converts it into renderer configuration.
func Resolve(selector Selector, name, variant string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, errors.New("theming: selector is nil")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, err
	}
	return RendererConfig(selection), nil
}

// RendererConfig merges the manifest with its selected variant: variant
// tokens, templates and asset files override the base ones, and every token
// is exposed as a CSS custom property.
func RendererConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest
	variant := manifest.Variants[selection.Variant]

	tokens := mergeStrings(manifest.Tokens, variant.Tokens)
	partials := mergeStrings(manifest.Templates, variant.Templates)
	files := mergeStrings(manifest.Assets.Files, variant.Assets.Files)
	prefix := manifest.Assets.Prefix
	if variant.Assets.Prefix != "" {
		prefix = variant.Assets.Prefix
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars(tokens),
		AssetURL: assetResolver(prefix, files),
	}
}

func mergeStrings(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(override))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range override {
		out[key] = value
	}
	return out
}

func cssVars(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	out := make(map[string]string, len(tokens))
	for key, value := range tokens {
		name := strings.TrimPrefix(strings.TrimSpace(key), "--")
		if name == "" {
			continue
		}
		out["--"+name] = value
	}
	return out
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.HasPrefix(file, "/") || strings.Contains(file, "://") || prefix == "" {
			return file
		}
		if strings.Contains(prefix, "://") {
			return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
		}
		return path.Join(prefix, file)
	}
}

// Names lists the manifest names in sorted order.
func Names(manifests map[string]*theme.Manifest) []string {
	out := make([]string, 0, len(manifests))
	for name := range manifests {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
