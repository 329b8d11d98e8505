package render

import (
	"fmt"
	"strings"
)

// HiddenField is a hidden input emitted alongside the visible controls.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// MergeHiddenFields drops unnamed fields and keeps the last value per name,
// preserving first-seen order.
func MergeHiddenFields(fields ...HiddenField) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	index := make(map[string]int, len(fields))
	out := make([]HiddenField, 0, len(fields))
	for _, field := range fields {
		if field.Name == "" {
			continue
		}
		if at, ok := index[field.Name]; ok {
			out[at].Value = field.Value
			continue
		}
		index[field.Name] = len(out)
		out = append(out, field)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
