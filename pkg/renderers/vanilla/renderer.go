// Package vanilla renders an extracted form tree as a plain HTML form using
// pongo2 templates. Sections become collapsible fieldsets; each field is
// rendered through a per-control template that themes may override.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formtemplate/pkg/model"
	"github.com/goliatone/go-formtemplate/pkg/render"
	rendertemplate "github.com/goliatone/go-formtemplate/pkg/render/template"
	"github.com/goliatone/go-formtemplate/pkg/render/template/gotemplate"
)

const (
	// Name is the registry identifier.
	Name = "vanilla"

	defaultSelectLabel = "-- выберите --"
	defaultSubmitLabel = "Сохранить"
	formTemplate       = "templates/form.tmpl"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	selectLabel      string
	submitLabel      string
	inlineStyles     bool
	themeSelector    theme.ThemeSelector
	themeName        string
	themeVariant     string
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithSelectLabel sets the caption of the empty select option.
func WithSelectLabel(label string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(label) != "" {
			cfg.selectLabel = label
		}
	}
}

// WithSubmitLabel sets the submit button caption.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(label) != "" {
			cfg.submitLabel = label
		}
	}
}

// WithInlineStyles embeds the bundled stylesheet in the output.
func WithInlineStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// WithThemeSelector resolves a theme for requests that carry none.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(cfg *config) {
		cfg.themeSelector = selector
		cfg.themeName = name
		cfg.themeVariant = variant
	}
}

// Renderer produces HTML forms.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	selectLabel string
	submitLabel string
	inlineCSS   string
	theme       *theme.RendererConfig
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:  TemplatesFS(),
		selectLabel: defaultSelectLabel,
		submitLabel: defaultSubmitLabel,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	engine := cfg.templateRenderer
	if engine == nil {
		built, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		engine = built
	}

	r := &Renderer{
		templates:   engine,
		selectLabel: cfg.selectLabel,
		submitLabel: cfg.submitLabel,
	}
	if cfg.inlineStyles {
		r.inlineCSS = defaultStylesheet()
	}
	if cfg.themeSelector != nil {
		selection, err := cfg.themeSelector.Select(cfg.themeName, cfg.themeVariant)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: select theme: %w", err)
		}
		r.theme = render.ThemeFromSelection(selection, nil)
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the form tree as HTML.
func (r *Renderer) Render(ctx context.Context, result model.StructureResult, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	themeCfg := options.Theme
	if themeCfg == nil {
		themeCfg = r.theme
	}

	rows := buildRows(result.Structure, options)
	for i := range rows {
		if rows[i].Kind != rowField {
			continue
		}
		html, err := r.renderControl(rows[i].Field, themeCfg)
		if err != nil {
			return nil, err
		}
		rows[i].HTML = html
	}

	view := formView{
		Title:       options.Title,
		Method:      methodOrDefault(options.Method),
		Action:      options.Action,
		InlineCSS:   r.inlineCSS,
		SubmitLabel: r.submitLabel,
		Rows:        rows,
	}
	for _, hidden := range render.MergeHiddenFields(options.Hidden...) {
		view.Hidden = append(view.Hidden, hiddenView{Name: hidden.Name, Value: hidden.Value})
	}
	if themeCfg != nil {
		view.Theme = themeView{
			Name:    themeCfg.Theme,
			Variant: themeCfg.Variant,
			Style:   render.CSSVarsStyle(themeCfg.CSSVars),
		}
		if themeCfg.AssetURL != nil {
			view.Stylesheet = themeCfg.AssetURL("stylesheet")
		}
	}

	out, err := r.templates.RenderTemplate(formTemplate, view)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(out), nil
}

func (r *Renderer) renderControl(field *fieldView, themeCfg *theme.RendererConfig) (string, error) {
	var partials map[string]string
	if themeCfg != nil {
		partials = themeCfg.Partials
	}
	name := controlTemplate(field.control, partials)
	out, err := r.templates.RenderTemplate(name, controlView{Field: field, SelectLabel: r.selectLabel})
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: render field %q: %w", field.Code, err)
	}
	return strings.TrimRight(out, "\n"), nil
}

func methodOrDefault(method string) string {
	method = strings.ToLower(strings.TrimSpace(method))
	if method == "" {
		return "post"
	}
	return method
}
