// Package formtemplate extracts fillable field trees from pseudo-XML form
// templates and writes user values back into them.
//
// The three core operations are exposed directly:
//
//	dict := formtemplate.ExtractDictionary(xslt)
//	result := formtemplate.ExtractStructure(tpl, xslt, formtemplate.DefaultExcludedCodes())
//	filled := formtemplate.Substitute(tpl, result.AliasMap, values)
//
// NewOrchestrator wires loading, validation, prefill and rendering around
// them.
package formtemplate

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formtemplate/pkg/extract"
	"github.com/goliatone/go-formtemplate/pkg/model"
	"github.com/goliatone/go-formtemplate/pkg/orchestrator"
	"github.com/goliatone/go-formtemplate/pkg/render"
	"github.com/goliatone/go-formtemplate/pkg/substitute"
	pkgtemplate "github.com/goliatone/go-formtemplate/pkg/template"
)

// StructureResult aliases model.StructureResult.
type StructureResult = model.StructureResult

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface validation errors.
type RenderOptions = render.RenderOptions

// ExtractDictionary parses option lists from an XSLT dictionary.
func ExtractDictionary(text string) model.Dictionary {
	return extract.New().Dictionary(text)
}

// ExtractStructure derives the field tree and alias map from a template.
// Blocks whose code is listed in excluded are skipped.
func ExtractStructure(templateText, dictionaryText string, excluded []string) model.StructureResult {
	return extract.New().Structure(templateText, dictionaryText, excluded)
}

// Substitute replaces placeholder markers with values keyed by field code.
func Substitute(templateText string, aliases model.AliasMap, values map[string]string) string {
	return substitute.Substitute(templateText, aliases, values)
}

// DefaultExcludedCodes lists the service blocks hidden from the inspection act
// forms.
func DefaultExcludedCodes() []string {
	return extract.DefaultExcludedCodes()
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// RenderHTML loads the template and dictionary and renders them as an HTML
// form with the default renderer.
func RenderHTML(ctx context.Context, templateSource, dictionarySource pkgtemplate.Source, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Render(ctx, orchestrator.RenderRequest{
		Request: orchestrator.Request{
			TemplateSource:   templateSource,
			DictionarySource: dictionarySource,
		},
	})
}

// Fill loads the template and dictionary and substitutes values.
func Fill(ctx context.Context, templateSource, dictionarySource pkgtemplate.Source, values map[string]string, options ...orchestrator.Option) (string, error) {
	out, err := orchestrator.New(options...).Fill(ctx, orchestrator.FillRequest{
		Request: orchestrator.Request{
			TemplateSource:   templateSource,
			DictionarySource: dictionarySource,
		},
		Values: values,
	})
	if err != nil {
		return "", err
	}
	return out.Text, nil
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices are resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector, defaultTheme, defaultVariant string) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector, defaultTheme, defaultVariant)
}
