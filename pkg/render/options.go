package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions carries per-request data. Renderers never mutate it.
type RenderOptions struct {
	// Title overrides the heading of HTML output.
	Title string
	// Action and Method populate the HTML form element.
	Action string
	Method string
	// Values prefills controls, keyed by field code.
	Values map[string]string
	// Errors surfaces validation messages keyed by field code.
	Errors map[string]string
	// Collapsed records which sections start collapsed.
	Collapsed *CollapseState
	// Hidden lists extra hidden inputs emitted with the form.
	Hidden []HiddenField
	// Theme is an optional go-theme configuration.
	Theme *theme.RendererConfig
}

// Value returns the prefilled value for code.
func (o RenderOptions) Value(code string) string {
	return o.Values[code]
}

// Error returns the validation message for code.
func (o RenderOptions) Error(code string) string {
	return o.Errors[code]
}

// IsCollapsed reports whether the section at path starts collapsed.
func (o RenderOptions) IsCollapsed(path string) bool {
	return o.Collapsed.IsCollapsed(path)
}
