package render

import (
	"context"

	"github.com/goliatone/go-formtemplate/pkg/model"
)

// Renderer converts an extracted form tree into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, result model.StructureResult, options RenderOptions) ([]byte, error)
}
