// Package substitute writes field values back into template markup by
// replacing placeholder markers located through an alias map.
package substitute

import (
	"sort"
	"strings"

	"github.com/goliatone/go-formtemplate/internal/scan"
	"github.com/goliatone/go-formtemplate/pkg/model"
)

// ValueTransform rewrites a value before it is written into the template.
type ValueTransform func(code, value string) string

// Option configures a Substituter.
type Option func(*Substituter)

// WithValueTransform appends a transform applied to every value in
// registration order.
func WithValueTransform(fn ValueTransform) Option {
	return func(s *Substituter) {
		if fn != nil {
			s.transforms = append(s.transforms, fn)
		}
	}
}

// Substituter replaces placeholder markers with field values.
type Substituter struct {
	transforms []ValueTransform
}

// New constructs a Substituter.
func New(options ...Option) *Substituter {
	s := &Substituter{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Substitute replaces every External/Editor marker whose key appears in
// aliases with values[code]. Missing values become the empty string and
// markers without an alias entry are left untouched. Text produced by a
// replacement is never scanned again.
func (s *Substituter) Substitute(text string, aliases model.AliasMap, values map[string]string) string {
	if text == "" || len(aliases) == 0 {
		return text
	}
	byAlias := invert(aliases)

	markers := scan.FindMarkers(text)
	if len(markers) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	cursor := 0
	for _, marker := range markers {
		code, ok := byAlias[marker.Key]
		if !ok {
			continue
		}
		b.WriteString(text[cursor:marker.Start])
		b.WriteString(s.value(code, values[code]))
		cursor = marker.End
	}
	b.WriteString(text[cursor:])
	return b.String()
}

func (s *Substituter) value(code, value string) string {
	for _, fn := range s.transforms {
		value = fn(code, value)
	}
	return value
}

// invert maps alias keys back to codes. When several codes share an alias the
// lexically smallest code wins.
func invert(aliases model.AliasMap) map[string]string {
	codes := make([]string, 0, len(aliases))
	for code := range aliases {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	out := make(map[string]string, len(aliases))
	for _, code := range codes {
		alias := aliases[code]
		if _, exists := out[alias]; exists {
			continue
		}
		out[alias] = code
	}
	return out
}

// Substitute applies the default Substituter, writing values verbatim.
func Substitute(text string, aliases model.AliasMap, values map[string]string) string {
	return New().Substitute(text, aliases, values)
}
