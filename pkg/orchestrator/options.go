package orchestrator

import (
	"log/slog"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formtemplate/pkg/extract"
	"github.com/goliatone/go-formtemplate/pkg/prefill"
	"github.com/goliatone/go-formtemplate/pkg/render"
	"github.com/goliatone/go-formtemplate/pkg/substitute"
	pkgtemplate "github.com/goliatone/go-formtemplate/pkg/template"
	"github.com/goliatone/go-formtemplate/pkg/validation"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom template loader.
func WithLoader(loader pkgtemplate.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithExtractor injects a custom structure extractor.
func WithExtractor(extractor extract.Extractor) Option {
	return func(o *Orchestrator) {
		o.extractor = extractor
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithValidator replaces the field validator.
func WithValidator(v *validation.Validator) Option {
	return func(o *Orchestrator) {
		o.validator = v
	}
}

// WithSanitizer strips markup from values before substitution.
func WithSanitizer() Option {
	return func(o *Orchestrator) {
		o.substituteOptions = append(o.substituteOptions, substitute.WithSanitizer())
	}
}

// WithValueTransform registers a transform applied to every value before
// substitution.
func WithValueTransform(fn substitute.ValueTransform) Option {
	return func(o *Orchestrator) {
		if fn == nil {
			return
		}
		o.substituteOptions = append(o.substituteOptions, substitute.WithValueTransform(fn))
	}
}

// WithBlockOnErrors makes Fill refuse to substitute when any value fails
// validation.
func WithBlockOnErrors(block bool) Option {
	return func(o *Orchestrator) {
		o.blockOnErrors = block
	}
}

// WithExcludedCodes replaces the default block exclusion list. Passing no
// codes disables exclusion.
func WithExcludedCodes(codes ...string) Option {
	return func(o *Orchestrator) {
		o.excludedCodes = append([]string{}, codes...)
	}
}

// WithProfileMapping sets the field code → profile key mapping used for
// prefill.
func WithProfileMapping(mapping prefill.Mapping) Option {
	return func(o *Orchestrator) {
		o.profileMapping = mapping
	}
}

// WithTransformer registers a Transformer that rewrites the extracted
// structure before it is returned or rendered.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithLogger sets the logger. Debug records trace every pipeline step.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithThemeSelector resolves a go-theme selection for every render request
// that does not carry its own theme configuration.
func WithThemeSelector(selector theme.ThemeSelector, defaultTheme, defaultVariant string) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
		o.themeName = defaultTheme
		o.themeVariant = defaultVariant
	}
}

// WithThemeFallbacks forwards fallback partials used when deriving renderer
// configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		if len(fallbacks) == 0 {
			return
		}
		if o.themeFallbacks == nil {
			o.themeFallbacks = make(map[string]string, len(fallbacks))
		}
		for key, value := range fallbacks {
			o.themeFallbacks[key] = value
		}
	}
}
