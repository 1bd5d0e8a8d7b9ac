// Package regform validates registration forms and renders their
// confirmation summaries.
//
// The root package wires the building blocks together: sessions over a
// catalog (pkg/session), the HTML and text renderers (pkg/renderers), and a
// non-interactive Check for JSON or YAML payloads (pkg/submission,
// pkg/openapi). Lower-level packages can be used directly when more control
// is needed.
package regform
