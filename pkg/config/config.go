// Package config loads CLI and orchestrator settings, value tables and user
// profiles from JSON or YAML files.
package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formtemplate/pkg/extract"
	"github.com/goliatone/go-formtemplate/pkg/prefill"
	"github.com/goliatone/go-formtemplate/pkg/render"
)

// DefaultSelectLabel is the empty option shown before a choice is made.
const DefaultSelectLabel = "-- выберите --"

// Labels overrides the fallback captions used by extraction and rendering.
type Labels struct {
	Field   string `json:"field" yaml:"field"`
	Block   string `json:"block" yaml:"block"`
	Section string `json:"section" yaml:"section"`
	Select  string `json:"select" yaml:"select"`
}

// Theme describes an inline go-theme manifest for HTML output. Tokens become
// CSS custom properties; Templates override renderer partials such as
// "forms.select".
type Theme struct {
	Name      string                  `json:"name" yaml:"name"`
	Variant   string                  `json:"variant" yaml:"variant"`
	Tokens    map[string]string       `json:"tokens,omitempty" yaml:"tokens,omitempty"`
	Templates map[string]string       `json:"templates,omitempty" yaml:"templates,omitempty"`
	Variants  map[string]ThemeVariant `json:"variants,omitempty" yaml:"variants,omitempty"`
}

// ThemeVariant overrides the base theme tokens and templates.
type ThemeVariant struct {
	Tokens    map[string]string `json:"tokens,omitempty" yaml:"tokens,omitempty"`
	Templates map[string]string `json:"templates,omitempty" yaml:"templates,omitempty"`
}

// Manifest converts the theme into a go-theme manifest. It returns nil when
// no theme is named.
func (t Theme) Manifest() *theme.Manifest {
	if strings.TrimSpace(t.Name) == "" {
		return nil
	}
	manifest := &theme.Manifest{
		Name:      t.Name,
		Tokens:    t.Tokens,
		Templates: t.Templates,
	}
	if len(t.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(t.Variants))
		for name, variant := range t.Variants {
			manifest.Variants[name] = theme.Variant{
				Tokens:    variant.Tokens,
				Templates: variant.Templates,
			}
		}
	}
	return manifest
}

// Selector returns a selector serving the configured theme, or nil.
func (t Theme) Selector() theme.ThemeSelector {
	manifest := t.Manifest()
	if manifest == nil {
		return nil
	}
	selector := render.NewStaticThemeSelector(manifest)
	selector.DefaultVariant = t.Variant
	return selector
}

// Config holds file based settings. Keys missing from a file keep their
// Default values; profileMap entries extend the default mapping.
type Config struct {
	Template       string            `json:"template" yaml:"template"`
	Dictionary     string            `json:"dictionary" yaml:"dictionary"`
	ExcludedCodes  []string          `json:"excludedCodes" yaml:"excludedCodes"`
	ProfileMap     prefill.Mapping   `json:"profileMap" yaml:"profileMap"`
	SanitizeValues bool              `json:"sanitizeValues" yaml:"sanitizeValues"`
	BlockOnErrors  bool              `json:"blockOnErrors" yaml:"blockOnErrors"`
	Renderer       string            `json:"renderer" yaml:"renderer"`
	Labels         Labels            `json:"labels" yaml:"labels"`
	Theme          Theme             `json:"theme" yaml:"theme"`
	Extra          map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ExcludedCodes: extract.DefaultExcludedCodes(),
		ProfileMap:    prefill.DefaultMapping(),
		Renderer:      "vanilla",
		Labels: Labels{
			Field:   extract.DefaultFieldLabel,
			Block:   extract.DefaultBlockLabel,
			Section: extract.DefaultSectionLabel,
			Select:  DefaultSelectLabel,
		},
	}
}

// Load reads a configuration file from disk.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads a configuration file from fsys.
func LoadFS(fsys fs.FS, name string) (Config, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", name, err)
	}
	return Parse(data, name)
}

// Parse decodes JSON, falling back to YAML, on top of Default.
func Parse(data []byte, source string) (Config, error) {
	cfg := Default()
	if err := decode(data, source, &cfg, Default); err != nil {
		return Config{}, err
	}
	cfg.Labels = cfg.Labels.withDefaults()
	return cfg, nil
}

// LoadValues reads a code -> value table.
func LoadValues(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read values %s: %w", path, err)
	}
	values := map[string]string{}
	reset := func() map[string]string { return map[string]string{} }
	if err := decode(data, path, &values, reset); err != nil {
		return nil, err
	}
	return values, nil
}

// LoadProfile reads a user profile.
func LoadProfile(path string) (prefill.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return prefill.Profile{}, fmt.Errorf("config: read profile %s: %w", path, err)
	}
	var profile prefill.Profile
	reset := func() prefill.Profile { return prefill.Profile{} }
	if err := decode(data, path, &profile, reset); err != nil {
		return prefill.Profile{}, err
	}
	return profile, nil
}

func decode[T any](data []byte, source string, out *T, reset func() T) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("config: file %s is empty", source)
	}
	if err := json.Unmarshal(data, out); err == nil {
		return nil
	}
	*out = reset()
	if err := yaml.Unmarshal(data, out); err == nil {
		return nil
	}
	return fmt.Errorf("config: parse %s: invalid JSON or YAML", source)
}

func (l Labels) withDefaults() Labels {
	if strings.TrimSpace(l.Field) == "" {
		l.Field = extract.DefaultFieldLabel
	}
	if strings.TrimSpace(l.Block) == "" {
		l.Block = extract.DefaultBlockLabel
	}
	if strings.TrimSpace(l.Section) == "" {
		l.Section = extract.DefaultSectionLabel
	}
	if strings.TrimSpace(l.Select) == "" {
		l.Select = DefaultSelectLabel
	}
	return l
}

// ExtractOptions converts the label settings into extractor options.
func (c Config) ExtractOptions() []extract.Option {
	return []extract.Option{
		extract.WithFieldLabel(c.Labels.Field),
		extract.WithBlockLabel(c.Labels.Block),
		extract.WithSectionLabel(c.Labels.Section),
	}
}
