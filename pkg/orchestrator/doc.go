// Package orchestrator wires the loader → extractor → validator → substituter
// pipeline and the renderer registry behind a single entry point. Every
// collaborator can be injected through options; missing ones fall back to the
// built-in implementations.
package orchestrator
