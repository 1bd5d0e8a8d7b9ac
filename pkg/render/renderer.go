package render

import "context"

// Renderer converts a View into a byte representation (HTML, text, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view View) ([]byte, error)
}
