// Package template exposes the public contracts for fetching form templates
// and XSLT dictionaries. Documents are kept as raw text; extraction happens in
// pkg/extract. The loader implementation lives under internal/template.
package template
