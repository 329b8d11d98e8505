package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeFromSelection resolves a go-theme selection into renderer
// configuration. Variant tokens, templates and asset files override the base
// manifest; fallbacks fill partials neither defines.
func ThemeFromSelection(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if selection == nil {
		return nil
	}

	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: copyStrings(fallbacks),
		Tokens:   map[string]string{},
	}

	prefix := ""
	files := map[string]string{}
	if manifest := selection.Manifest; manifest != nil {
		if cfg.Theme == "" {
			cfg.Theme = manifest.Name
		}
		mergeStrings(&cfg.Partials, manifest.Templates)
		mergeStrings(&cfg.Tokens, manifest.Tokens)
		mergeStrings(&files, manifest.Assets.Files)
		prefix = manifest.Assets.Prefix

		if variant, ok := manifest.Variants[selection.Variant]; ok {
			mergeStrings(&cfg.Partials, variant.Templates)
			mergeStrings(&cfg.Tokens, variant.Tokens)
			mergeStrings(&files, variant.Assets.Files)
			if variant.Assets.Prefix != "" {
				prefix = variant.Assets.Prefix
			}
		}
	}

	cfg.CSSVars = CSSVars(cfg.Tokens)
	cfg.AssetURL = assetResolver(prefix, files)
	return cfg
}

// CSSVars maps token names to custom properties ("brand" -> "--brand").
func CSSVars(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		name := strings.TrimSpace(key)
		if name == "" {
			continue
		}
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		vars[name] = value
	}
	return vars
}

// CSSVarsStyle renders custom properties as an inline style declaration list,
// sorted by name.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s: %s;", key, vars[key])
	}
	return b.String()
}

// StaticThemeSelector serves selections from an in-memory manifest set. Empty
// names fall back to the configured defaults.
type StaticThemeSelector struct {
	Manifests      map[string]*theme.Manifest
	DefaultTheme   string
	DefaultVariant string
}

var _ theme.ThemeSelector = (*StaticThemeSelector)(nil)

// NewStaticThemeSelector indexes manifests by Name. The first manifest is the
// default theme.
func NewStaticThemeSelector(manifests ...*theme.Manifest) *StaticThemeSelector {
	s := &StaticThemeSelector{Manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, manifest := range manifests {
		if manifest == nil || manifest.Name == "" {
			continue
		}
		if s.DefaultTheme == "" {
			s.DefaultTheme = manifest.Name
		}
		s.Manifests[manifest.Name] = manifest
	}
	return s
}

// Select implements theme.ThemeSelector.
func (s *StaticThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if s == nil || len(s.Manifests) == 0 {
		return nil, errors.New("render: no themes registered")
	}
	if name == "" {
		name = s.DefaultTheme
	}
	if variant == "" {
		variant = s.DefaultVariant
	}
	manifest, ok := s.Manifests[name]
	if !ok {
		return nil, fmt.Errorf("render: theme %q not found", name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("render: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	prefix = strings.TrimRight(prefix, "/")
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if prefix == "" || strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
			return file
		}
		return prefix + "/" + file
	}
}

func mergeStrings(dst *map[string]string, src map[string]string) {
	if len(src) == 0 {
		return
	}
	if *dst == nil {
		*dst = make(map[string]string, len(src))
	}
	for key, value := range src {
		(*dst)[key] = value
	}
}

func copyStrings(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
