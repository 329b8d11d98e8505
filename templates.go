package formtemplate

import (
	"io/fs"

	"github.com/goliatone/go-formtemplate/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in HTML renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// EmbeddedAssets exposes the default stylesheet served next to rendered forms.
func EmbeddedAssets() fs.FS {
	return vanilla.AssetsFS()
}
