// Package render turns a validated form into display models. Summary derives
// the eight confirmation rows, BannerFor picks the aggregate message, and
// NewView bundles values, per-field errors and the summary for a Renderer.
// Renderers are looked up by name through a Registry.
package render
