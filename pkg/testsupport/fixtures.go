// Package testsupport bundles template fixtures shared by package tests.
package testsupport

import (
	"embed"
	"os"
	"path/filepath"
	"testing"
)

//go:embed testdata/*
var fixtures embed.FS

// Fixture names bundled with the package.
const (
	ActTemplate       = "act.xml"
	ActDictionary     = "dictionary.xslt"
	ActTemplatePath   = "testdata/" + ActTemplate
	ActDictionaryPath = "testdata/" + ActDictionary
)

// FixturesFS exposes the bundled fixtures rooted at testdata/.
func FixturesFS() embed.FS {
	return fixtures
}

// MustFixture returns the content of a bundled fixture.
func MustFixture(t testing.TB, name string) string {
	t.Helper()

	data, err := fixtures.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return string(data)
}

// WriteFixtures copies the bundled fixtures into dir so file based sources can
// be exercised. It returns the template and dictionary paths.
func WriteFixtures(t testing.TB, dir string) (templatePath, dictionaryPath string) {
	t.Helper()

	templatePath = filepath.Join(dir, ActTemplate)
	dictionaryPath = filepath.Join(dir, ActDictionary)
	for name, path := range map[string]string{ActTemplate: templatePath, ActDictionary: dictionaryPath} {
		if err := os.WriteFile(path, []byte(MustFixture(t, name)), 0o644); err != nil {
			t.Fatalf("write fixture %s: %v", name, err)
		}
	}
	return templatePath, dictionaryPath
}
