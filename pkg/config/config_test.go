package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formtemplate/pkg/config"
	"github.com/goliatone/go-formtemplate/pkg/extract"
	"github.com/goliatone/go-formtemplate/pkg/prefill"
)

func TestParse_JSON(t *testing.T) {
	data := []byte(`{
  "template": "MiniEditor.xml",
  "excludedCodes": ["Print"],
  "blockOnErrors": true,
  "labels": {"section": "Блок"}
}`)

	cfg, err := config.Parse(data, "config.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := config.Default()
	want.Template = "MiniEditor.xml"
	want.ExcludedCodes = []string{"Print"}
	want.BlockOnErrors = true
	want.Labels.Section = "Блок"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_YAML(t *testing.T) {
	data := []byte(`
dictionary: Dictionary.xslt
sanitizeValues: true
renderer: tui
profileMap:
  Owner: last_name
theme:
  name: default
  variant: dark
`)

	cfg, err := config.Parse(data, "config.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := config.Default()
	want.Dictionary = "Dictionary.xslt"
	want.SanitizeValues = true
	want.Renderer = "tui"
	want.ProfileMap["Owner"] = prefill.KeyLastName
	want.Theme = config.Theme{Name: "default", Variant: "dark"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := config.Parse([]byte("  \n"), "empty.yaml"); err == nil {
		t.Fatalf("expected error for empty file")
	}
	if _, err := config.Parse([]byte("template: [unclosed"), "bad.yaml"); err == nil {
		t.Fatalf("expected error for invalid YAML")
	}
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	if diff := cmp.Diff(extract.DefaultExcludedCodes(), cfg.ExcludedCodes); diff != "" {
		t.Fatalf("excluded codes mismatch (-want +got):\n%s", diff)
	}
	if cfg.Labels.Select != config.DefaultSelectLabel {
		t.Fatalf("unexpected select label %q", cfg.Labels.Select)
	}
	if len(cfg.ExtractOptions()) != 3 {
		t.Fatalf("expected three extract options")
	}
}

func TestLoadFS(t *testing.T) {
	files := fstest.MapFS{"cfg.json": {Data: []byte(`{"renderer":"vanilla"}`)}}
	cfg, err := config.LoadFS(files, "cfg.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Renderer != "vanilla" {
		t.Fatalf("unexpected renderer %q", cfg.Renderer)
	}
	if _, err := config.LoadFS(files, "missing.json"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadValuesAndProfile(t *testing.T) {
	dir := t.TempDir()
	valuesPath := filepath.Join(dir, "values.yaml")
	profilePath := filepath.Join(dir, "profile.json")
	if err := os.WriteFile(valuesPath, []byte("FIO1: Иванов\nPhone: \"+7999\"\n"), 0o600); err != nil {
		t.Fatalf("write values: %v", err)
	}
	if err := os.WriteFile(profilePath, []byte(`{"last_name":"Петров","email":"p@example.test"}`), 0o600); err != nil {
		t.Fatalf("write profile: %v", err)
	}

	values, err := config.LoadValues(valuesPath)
	if err != nil {
		t.Fatalf("load values: %v", err)
	}
	if diff := cmp.Diff(map[string]string{"FIO1": "Иванов", "Phone": "+7999"}, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	profile, err := config.LoadProfile(profilePath)
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if diff := cmp.Diff(prefill.Profile{LastName: "Петров", Email: "p@example.test"}, profile); diff != "" {
		t.Fatalf("profile mismatch (-want +got):\n%s", diff)
	}
}

func TestTheme_Selector(t *testing.T) {
	cfg, err := config.Parse([]byte(`
theme:
  name: act
  variant: dark
  tokens:
    accent: "#0050b3"
  variants:
    dark:
      tokens:
        accent: "#69b1ff"
`), "theme.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	selector := cfg.Theme.Selector()
	if selector == nil {
		t.Fatalf("expected selector")
	}
	selection, err := selector.Select("", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if selection.Theme != "act" || selection.Variant != "dark" {
		t.Fatalf("unexpected selection %+v", selection)
	}
	if got := selection.Manifest.Variants["dark"].Tokens["accent"]; got != "#69b1ff" {
		t.Fatalf("unexpected variant token %q", got)
	}

	if config.Default().Theme.Selector() != nil {
		t.Fatalf("expected no selector without a theme name")
	}
}
