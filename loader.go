package formtemplate

import (
	internalLoader "github.com/goliatone/go-formtemplate/internal/template/loader"
	pkgtemplate "github.com/goliatone/go-formtemplate/pkg/template"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...pkgtemplate.LoaderOption) pkgtemplate.Loader {
	cfg := pkgtemplate.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}
