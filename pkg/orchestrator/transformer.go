package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-formtemplate/pkg/model"
)

// Transformer rewrites an extracted structure before it is returned, filled or
// rendered. Implementations may relabel fields, tighten validation or drop
// options; they must not change field codes.
type Transformer interface {
	Transform(ctx context.Context, result *model.StructureResult) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, result *model.StructureResult) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, result *model.StructureResult) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, result)
}

// JSONPresetTransformer applies declarative overrides loaded from a JSON file.
// Fields are keyed by code, sections by their dotted index path:
//
//	{
//	  "sections": {"0.1": {"name": "Собственник"}},
//	  "fields": {
//	    "FIO1": {"name": "Фамилия", "regex": "[А-Я][а-я]+", "errorText": "Только кириллица"}
//	  }
//	}
type JSONPresetTransformer struct {
	document jsonTransformDocument
}

type jsonTransformDocument struct {
	Sections map[string]jsonSectionPatch `json:"sections"`
	Fields   map[string]jsonFieldPatch   `json:"fields"`
}

type jsonSectionPatch struct {
	Name string `json:"name"`
}

type jsonFieldPatch struct {
	Name      string  `json:"name"`
	Regex     *string `json:"regex"`
	ErrorText *string `json:"errorText"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document jsonTransformDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON transformer document from the
// provided filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the preset. The tree is rebuilt rather than mutated so
// earlier results sharing nodes stay untouched.
func (t *JSONPresetTransformer) Transform(ctx context.Context, result *model.StructureResult) error {
	if t == nil || result == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	result.Structure = t.rewrite(nil, result.Structure)
	return nil
}

func (t *JSONPresetTransformer) rewrite(prefix model.SectionPath, nodes []model.Node) []model.Node {
	if nodes == nil {
		return nil
	}
	out := make([]model.Node, len(nodes))
	for idx, node := range nodes {
		path := prefix.Child(idx)
		switch typed := node.(type) {
		case model.Section:
			if patch, ok := t.document.Sections[path.String()]; ok && patch.Name != "" {
				typed.Name = patch.Name
			}
			typed.Children = t.rewrite(path, typed.Children)
			out[idx] = typed
		case model.Field:
			if patch, ok := t.document.Fields[typed.Code]; ok {
				typed = patch.apply(typed)
			}
			out[idx] = typed
		default:
			out[idx] = node
		}
	}
	return out
}

func (p jsonFieldPatch) apply(field model.Field) model.Field {
	if p.Name != "" {
		field.Name = p.Name
	}
	if p.Regex != nil {
		field.Regex = *p.Regex
	}
	if p.ErrorText != nil {
		field.ErrorText = *p.ErrorText
	}
	return field
}
