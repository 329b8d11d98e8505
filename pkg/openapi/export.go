package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formtemplate/pkg/model"
	"github.com/goliatone/go-formtemplate/pkg/validation"
)

const (
	// DefaultPath is the endpoint that receives the value table.
	DefaultPath = "/fill"
	// DefaultOperationID names the fill operation.
	DefaultOperationID = "fillTemplate"
	// ValuesSchemaName is the component schema holding one property per field.
	ValuesSchemaName = "FillValues"

	extAlias      = "x-alias"
	extDictionary = "x-dictionary"
	extLabels     = "x-enum-labels"
	extErrorText  = "x-error-text"
)

// Options configures the exported document.
type Options struct {
	Title       string
	Version     string
	Path        string
	OperationID string
}

// Option mutates Options.
type Option func(*Options)

// WithTitle sets info.title. Blank titles keep the default.
func WithTitle(title string) Option {
	return func(o *Options) {
		if strings.TrimSpace(title) != "" {
			o.Title = title
		}
	}
}

// WithVersion sets info.version. Blank versions keep the default.
func WithVersion(version string) Option {
	return func(o *Options) {
		if strings.TrimSpace(version) != "" {
			o.Version = version
		}
	}
}

// WithPath overrides DefaultPath.
func WithPath(path string) Option {
	return func(o *Options) { o.Path = path }
}

// WithOperationID overrides DefaultOperationID.
func WithOperationID(id string) Option {
	return func(o *Options) { o.OperationID = id }
}

func newOptions(options ...Option) Options {
	cfg := Options{
		Title:       "Form template",
		Version:     "1.0.0",
		Path:        DefaultPath,
		OperationID: DefaultOperationID,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// ValuesSchema returns an object schema with one optional string property per
// field code, in document order.
func ValuesSchema(result model.StructureResult) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Title = ValuesSchemaName
	for _, field := range result.Fields() {
		schema.WithProperty(field.Code, fieldSchema(field, result.AliasMap[field.Code]))
	}
	return schema
}

func fieldSchema(field model.Field, alias string) *openapi3.Schema {
	schema := openapi3.NewStringSchema()
	schema.Title = field.Name
	schema.Extensions = map[string]any{}

	if field.Type == model.FieldTypeDate {
		schema.WithFormat("date")
	}
	if field.Regex != "" {
		if re, err := validation.Compile(field.Regex); err == nil {
			schema.WithPattern(re.String())
		}
		if field.ErrorText != "" {
			schema.Extensions[extErrorText] = field.ErrorText
		}
	}
	if alias != "" {
		schema.Extensions[extAlias] = alias
	}
	if field.Dictionary != "" {
		schema.Extensions[extDictionary] = field.Dictionary
	}
	if len(field.Options) > 0 {
		values, labels := enumOf(field.Options)
		schema.WithEnum(values...)
		schema.Extensions[extLabels] = labels
	}
	if len(schema.Extensions) == 0 {
		schema.Extensions = nil
	}
	return schema
}

// enumOf keeps the first label of each distinct value.
func enumOf(options []model.Option) ([]any, []string) {
	seen := make(map[string]struct{}, len(options))
	values := make([]any, 0, len(options))
	labels := make([]string, 0, len(options))
	for _, opt := range options {
		if _, dup := seen[opt.Value]; dup {
			continue
		}
		seen[opt.Value] = struct{}{}
		values = append(values, opt.Value)
		labels = append(labels, opt.Label)
	}
	return values, labels
}

// Document builds the OpenAPI description of the fill endpoint.
func Document(result model.StructureResult, options ...Option) (*openapi3.T, error) {
	cfg := newOptions(options...)
	if cfg.Path == "" || cfg.Path[0] != '/' {
		return nil, fmt.Errorf("openapi: path %q must start with /", cfg.Path)
	}

	values := ValuesSchema(result)
	body := openapi3.NewRequestBody().
		WithRequired(true).
		WithDescription("Values keyed by field code").
		WithJSONSchemaRef(openapi3.NewSchemaRef("#/components/schemas/"+ValuesSchemaName, values))

	ok := openapi3.NewResponse().
		WithDescription("Template text with placeholders substituted").
		WithContent(openapi3.NewContentWithSchema(openapi3.NewStringSchema(), []string{"application/xml"}))
	invalid := openapi3.NewResponse().
		WithDescription("Validation messages keyed by field code").
		WithJSONSchema(openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewStringSchema()))

	op := openapi3.NewOperation()
	op.OperationID = cfg.OperationID
	op.Summary = "Substitute values into the form template"
	op.RequestBody = &openapi3.RequestBodyRef{Value: body}
	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{Value: ok}),
		openapi3.WithStatus(http.StatusUnprocessableEntity, &openapi3.ResponseRef{Value: invalid}),
	)

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   cfg.Title,
			Version: cfg.Version,
		},
		Paths: openapi3.NewPaths(openapi3.WithPath(cfg.Path, &openapi3.PathItem{Post: op})),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				ValuesSchemaName: openapi3.NewSchemaRef("", values),
			},
		},
	}
	return doc, nil
}

// Marshal exports result as indented JSON and validates the output.
func Marshal(ctx context.Context, result model.StructureResult, options ...Option) ([]byte, error) {
	doc, err := Document(result, options...)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi: marshal document: %w", err)
	}
	if err := Validate(ctx, data); err != nil {
		return nil, err
	}
	return data, nil
}

// Validate loads a serialized document and runs kin-openapi validation.
func Validate(ctx context.Context, data []byte) error {
	if len(data) == 0 {
		return errors.New("openapi: document payload is empty")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return fmt.Errorf("openapi: load document: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return fmt.Errorf("openapi: validate: %w", err)
	}
	return nil
}
