// Package render defines the renderer contract, a renderer registry and the
// per-request state renderers consume: prefilled values, validation messages,
// collapsed sections and theme configuration.
package render
