package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FieldType enumerates the parameter element kinds recognised in templates.
// The value determines the editor a renderer should present.
type FieldType string

const (
	FieldTypeParam  FieldType = "Param"
	FieldTypeText   FieldType = "ParamText"
	FieldTypeDate   FieldType = "ParamDate"
	FieldTypeSelect FieldType = "ParamSelect"
	FieldTypeMemo   FieldType = "ParamMemo"
)

// FieldTypes lists every recognised kind in the order used by scanners.
func FieldTypes() []FieldType {
	return []FieldType{FieldTypeParam, FieldTypeText, FieldTypeDate, FieldTypeSelect, FieldTypeMemo}
}

// Valid reports whether t is one of the recognised kinds.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeParam, FieldTypeText, FieldTypeDate, FieldTypeSelect, FieldTypeMemo:
		return true
	default:
		return false
	}
}

// Option is a single dictionary entry.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Dictionary maps a dictionary name to its options in source order.
type Dictionary map[string][]Option

// Lookup returns the options registered under name.
func (d Dictionary) Lookup(name string) ([]Option, bool) {
	if d == nil {
		return nil, false
	}
	opts, ok := d[name]
	return opts, ok
}

// Node is either a *Field-like leaf or a Section. The interface is sealed.
type Node interface {
	isNode()
}

// Field models a fillable parameter surfaced from the template.
type Field struct {
	Type       FieldType `json:"type"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Regex      string    `json:"regex,omitempty"`
	ErrorText  string    `json:"errorText,omitempty"`
	Dictionary string    `json:"dictionary,omitempty"`
	Options    []Option  `json:"options,omitempty"`
}

func (Field) isNode() {}

// Section groups fields and nested sections under a label.
type Section struct {
	Name     string `json:"name"`
	Children []Node `json:"children"`
}

func (Section) isNode() {}

// MarshalJSON keeps an empty section serialised as "children": [].
func (s Section) MarshalJSON() ([]byte, error) {
	type alias struct {
		Name     string `json:"name"`
		Children []Node `json:"children"`
	}
	children := s.Children
	if children == nil {
		children = []Node{}
	}
	return json.Marshal(alias{Name: s.Name, Children: children})
}

// AliasMap relates a field code to the identifier used inside its placeholder
// marker in the original template.
type AliasMap map[string]string

// StructureResult is the output of one extraction pass.
type StructureResult struct {
	Structure []Node   `json:"structure"`
	AliasMap  AliasMap `json:"aliasMap"`
}

// MarshalJSON normalises nil collections so consumers always see arrays and
// objects.
func (r StructureResult) MarshalJSON() ([]byte, error) {
	type alias struct {
		Structure []Node   `json:"structure"`
		AliasMap  AliasMap `json:"aliasMap"`
	}
	out := alias{Structure: r.Structure, AliasMap: r.AliasMap}
	if out.Structure == nil {
		out.Structure = []Node{}
	}
	if out.AliasMap == nil {
		out.AliasMap = AliasMap{}
	}
	return json.Marshal(out)
}

// Fields returns the flattened field list in document order.
func (r StructureResult) Fields() []Field {
	return Flatten(r.Structure)
}

// SectionPath identifies a section by its index at every nesting level.
// Identity is positional; a re-parse of a reordered template yields different
// paths.
type SectionPath []int

// String renders the path as dot separated indices, e.g. "0.2".
func (p SectionPath) String() string {
	if len(p) == 0 {
		return ""
	}
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ".")
}

// Child returns a new path extended with idx.
func (p SectionPath) Child(idx int) SectionPath {
	out := make(SectionPath, len(p), len(p)+1)
	copy(out, p)
	return append(out, idx)
}
