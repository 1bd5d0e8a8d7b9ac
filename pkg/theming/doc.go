// Package theming resolves go-theme manifests into the renderer configuration
// consumed by the HTML renderer.
package theming
