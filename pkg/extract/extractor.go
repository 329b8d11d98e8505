// Package extract exposes the template structure extractor. The scanning
// implementation lives in internal/extract; callers depend on the Extractor
// contract so the scanning strategy can change without touching the model.
package extract

import (
	internalextract "github.com/goliatone/go-formtemplate/internal/extract"
	"github.com/goliatone/go-formtemplate/pkg/model"
)

// Default labels applied when template markup omits a Name attribute.
const (
	DefaultFieldLabel   = internalextract.DefaultFieldLabel
	DefaultBlockLabel   = internalextract.DefaultBlockLabel
	DefaultSectionLabel = internalextract.DefaultSectionLabel
)

// Extractor derives dictionaries and field trees from raw markup. Both methods
// are total: malformed input yields empty results, never errors.
type Extractor interface {
	Dictionary(text string) model.Dictionary
	Structure(templateText, dictionaryText string, excluded []string) model.StructureResult
}

// Option configures the extractor behaviour.
type Option func(*internalextract.Options)

// WithFieldLabel overrides the label used for parameters without a Name.
func WithFieldLabel(label string) Option {
	return func(opts *internalextract.Options) {
		opts.FieldLabel = label
	}
}

// WithBlockLabel overrides the label used for blocks without a Name.
func WithBlockLabel(label string) Option {
	return func(opts *internalextract.Options) {
		opts.BlockLabel = label
	}
}

// WithSectionLabel overrides the label used for labelled wrappers without a
// Name.
func WithSectionLabel(label string) Option {
	return func(opts *internalextract.Options) {
		opts.SectionLabel = label
	}
}

// WithForms restricts the Form codes whose blocks are surfaced. The default
// is Act and Info.
func WithForms(codes ...string) Option {
	return func(opts *internalextract.Options) {
		opts.Forms = append([]string(nil), codes...)
	}
}

// New returns an Extractor backed by the internal scanner.
func New(options ...Option) Extractor {
	cfg := internalextract.Options{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return internalextract.New(cfg)
}

// DefaultExcludedCodes returns the block codes that never surface as
// fillable sections in the inspection act templates.
func DefaultExcludedCodes() []string {
	return []string{
		"Versions",
		"Transfer",
		"Print",
		"ContractorDate",
		"RegisterRight",
		"ContractorNumber",
		"Contractor",
		"ContractorRegNumber",
		"Utilization",
		"Flats",
		"RightRegisteredUnregistered",
		"AgentLetter",
		"XXX",
		"NameSRO",
		"ContractorSRO",
		"Conclusion",
	}
}
