// Package tui runs the registration form from a terminal using survey
// prompts, and renders session views as plain text or JSON.
package tui
