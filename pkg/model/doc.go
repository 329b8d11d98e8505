// Package model defines the field/section tree extracted from a form template
// together with the alias map used to substitute values back into the original
// markup. The tree is immutable once built: UI state such as collapsed
// sections is tracked by renderers, keyed by SectionPath, so the same
// StructureResult can be shared by concurrent callers.
package model
