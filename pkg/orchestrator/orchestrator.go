package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formtemplate/internal/logging"
	internalLoader "github.com/goliatone/go-formtemplate/internal/template/loader"
	"github.com/goliatone/go-formtemplate/pkg/extract"
	"github.com/goliatone/go-formtemplate/pkg/model"
	"github.com/goliatone/go-formtemplate/pkg/openapi"
	"github.com/goliatone/go-formtemplate/pkg/prefill"
	"github.com/goliatone/go-formtemplate/pkg/render"
	"github.com/goliatone/go-formtemplate/pkg/renderers/vanilla"
	"github.com/goliatone/go-formtemplate/pkg/substitute"
	pkgtemplate "github.com/goliatone/go-formtemplate/pkg/template"
	"github.com/goliatone/go-formtemplate/pkg/validation"
)

const defaultRendererName = vanilla.Name

// Orchestrator coordinates template loading, structure extraction, value
// validation, substitution and rendering.
type Orchestrator struct {
	loader            pkgtemplate.Loader
	extractor         extract.Extractor
	registry          *render.Registry
	defaultRenderer   string
	validator         *validation.Validator
	substituteOptions []substitute.Option
	substituter       *substitute.Substituter
	blockOnErrors     bool
	excludedCodes     []string
	profileMapping    prefill.Mapping
	transformer       Transformer
	logger            *slog.Logger
	themeSelector     theme.ThemeSelector
	themeName         string
	themeVariant      string
	themeFallbacks    map[string]string
	initialiseErr     error
	defaultsApplied   bool
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request identifies the template and dictionary to work on. Documents take
// precedence over sources. The dictionary is optional; without one, select
// fields carry no options.
type Request struct {
	TemplateSource   pkgtemplate.Source
	DictionarySource pkgtemplate.Source

	Template   *pkgtemplate.Document
	Dictionary *pkgtemplate.Document

	// ExcludedCodes overrides the orchestrator exclusion list when non-nil.
	ExcludedCodes []string
}

// FillRequest carries the values to write into the template.
type FillRequest struct {
	Request

	// Values maps field codes to user input.
	Values map[string]string
	// Profile, when set, overlays profile data onto Values before validation.
	Profile *prefill.Profile
}

// FillResult is the outcome of a Fill call.
type FillResult struct {
	Text      string
	Values    map[string]string
	Errors    validation.Errors
	Structure model.StructureResult
}

// RenderRequest describes a form rendering.
type RenderRequest struct {
	Request

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string
	// Options carries per-request render data.
	Options render.RenderOptions
	// Profile, when set, overlays profile data onto Options.Values.
	Profile *prefill.Profile
	// ValidateValues fills Options.Errors from Options.Values when the caller
	// did not provide errors.
	ValidateValues bool
	// Theme and Variant override the default theme selection.
	Theme   string
	Variant string
}

// Structure loads the template and dictionary and returns the field tree with
// its alias map.
func (o *Orchestrator) Structure(ctx context.Context, req Request) (model.StructureResult, error) {
	_, result, err := o.prepare(ctx, req)
	return result, err
}

// Fill extracts the structure, overlays profile data, validates and writes the
// values into the template text. With BlockOnErrors the returned error wraps
// validation.Errors and the result carries no text.
func (o *Orchestrator) Fill(ctx context.Context, req FillRequest) (FillResult, error) {
	doc, result, err := o.prepare(ctx, req.Request)
	if err != nil {
		return FillResult{}, err
	}
	log := logging.FromContext(ctx, o.logger)

	values := copyValues(req.Values)
	if req.Profile != nil {
		values = prefill.Apply(values, *req.Profile, o.profileMapping)
		log.Debug("profile applied", "fields", len(values))
	}

	errs := o.validator.Validate(result.Fields(), values)
	out := FillResult{Values: values, Errors: errs, Structure: result}
	if len(errs) > 0 {
		log.Debug("values failed validation", "invalid", len(errs))
		if o.blockOnErrors {
			return out, fmt.Errorf("orchestrator: fill: %w", errs)
		}
	}

	out.Text = o.substituter.Substitute(doc.Text(), result.AliasMap, values)
	log.Debug("template filled", "aliases", len(result.AliasMap), "bytes", len(out.Text))
	return out, nil
}

// Render extracts the structure and renders it with the requested renderer.
func (o *Orchestrator) Render(ctx context.Context, req RenderRequest) ([]byte, error) {
	_, result, err := o.prepare(ctx, req.Request)
	if err != nil {
		return nil, err
	}
	log := logging.FromContext(ctx, o.logger)

	options := req.Options
	if req.Profile != nil {
		options.Values = prefill.Apply(options.Values, *req.Profile, o.profileMapping)
	}
	if req.ValidateValues && options.Errors == nil {
		if errs := o.validator.Validate(result.Fields(), options.Values); len(errs) > 0 {
			options.Errors = errs
		}
	}
	if options.Theme == nil {
		cfg, err := o.resolveTheme(req.Theme, req.Variant)
		if err != nil {
			return nil, err
		}
		options.Theme = cfg
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}
	log.Debug("rendering form", "renderer", renderer.Name())

	output, err := renderer.Render(ctx, result, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Schema exports the extracted structure as a validated OpenAPI document.
func (o *Orchestrator) Schema(ctx context.Context, req Request, options ...openapi.Option) ([]byte, error) {
	_, result, err := o.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	data, err := openapi.Marshal(ctx, result, options...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: export schema: %w", err)
	}
	return data, nil
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

func (o *Orchestrator) prepare(ctx context.Context, req Request) (pkgtemplate.Document, model.StructureResult, error) {
	if ctx == nil {
		return pkgtemplate.Document{}, model.StructureResult{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return pkgtemplate.Document{}, model.StructureResult{}, err
	}
	if err := o.initialiseErr; err != nil {
		return pkgtemplate.Document{}, model.StructureResult{}, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		if err := o.initialiseErr; err != nil {
			return pkgtemplate.Document{}, model.StructureResult{}, err
		}
	}
	log := logging.FromContext(ctx, o.logger)

	doc, err := o.resolveDocument(ctx, "template", req.Template, req.TemplateSource)
	if err != nil {
		return pkgtemplate.Document{}, model.StructureResult{}, err
	}
	var dictionary string
	if req.Dictionary != nil || req.DictionarySource != nil {
		dict, err := o.resolveDocument(ctx, "dictionary", req.Dictionary, req.DictionarySource)
		if err != nil {
			return pkgtemplate.Document{}, model.StructureResult{}, err
		}
		dictionary = dict.Text()
	}

	excluded := o.excludedCodes
	if req.ExcludedCodes != nil {
		excluded = req.ExcludedCodes
	}
	result := o.extractor.Structure(doc.Text(), dictionary, excluded)
	log.Debug("structure extracted",
		"template", doc.Location(),
		"sections", len(result.Structure),
		"aliases", len(result.AliasMap),
	)

	if err := o.applyTransformer(ctx, &result); err != nil {
		return pkgtemplate.Document{}, model.StructureResult{}, err
	}
	return doc, result, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, label string, doc *pkgtemplate.Document, src pkgtemplate.Source) (pkgtemplate.Document, error) {
	if doc != nil {
		return *doc, nil
	}
	if src == nil {
		return pkgtemplate.Document{}, fmt.Errorf("orchestrator: %s source or document is required", label)
	}
	loaded, err := o.loader.Load(ctx, src)
	if err != nil {
		return pkgtemplate.Document{}, fmt.Errorf("orchestrator: load %s: %w", label, err)
	}
	logging.FromContext(ctx, o.logger).Debug("document loaded",
		"kind", label,
		"location", loaded.Location(),
		"bytes", len(loaded.Raw()),
	)
	return loaded, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) resolveTheme(name, variant string) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	if name == "" {
		name = o.themeName
	}
	if variant == "" {
		variant = o.themeVariant
	}
	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	return render.ThemeFromSelection(selection, o.themeFallbacks), nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, result *model.StructureResult) error {
	if o.transformer == nil || result == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, result); err != nil {
		return fmt.Errorf("orchestrator: transform structure: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalLoader.New(pkgtemplate.NewLoaderOptions())
	}
	if o.extractor == nil {
		o.extractor = extract.New()
	}
	if o.validator == nil {
		o.validator = validation.New()
	}
	if o.substituter == nil {
		o.substituter = substitute.New(o.substituteOptions...)
	}
	if o.excludedCodes == nil {
		o.excludedCodes = extract.DefaultExcludedCodes()
	}
	if o.profileMapping == nil {
		o.profileMapping = prefill.DefaultMapping()
	}
	if o.logger == nil {
		o.logger = logging.Discard()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}

func copyValues(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for code, value := range values {
		out[code] = value
	}
	return out
}
