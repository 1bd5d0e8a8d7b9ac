package template

import "io"

// TemplateRenderer executes a named template. The rendered page is returned
// and also written to any writers supplied.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
