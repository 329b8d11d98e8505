package model

// Flatten collects every field beneath nodes in document order.
func Flatten(nodes []Node) []Field {
	var out []Field
	Walk(nodes, func(_ SectionPath, node Node) bool {
		if field, ok := node.(Field); ok {
			out = append(out, field)
		}
		return true
	})
	return out
}

// Walk visits nodes depth-first in document order. The path passed to fn is the
// index path of the node itself. Returning false from fn skips the children of
// a section.
func Walk(nodes []Node, fn func(path SectionPath, node Node) bool) {
	walk(nil, nodes, fn)
}

func walk(prefix SectionPath, nodes []Node, fn func(SectionPath, Node) bool) {
	for idx, node := range nodes {
		path := prefix.Child(idx)
		if !fn(path, node) {
			continue
		}
		if section, ok := node.(Section); ok {
			walk(path, section.Children, fn)
		}
	}
}

// FieldByCode returns the field registered under code.
func FieldByCode(nodes []Node, code string) (Field, bool) {
	var (
		found Field
		ok    bool
	)
	Walk(nodes, func(_ SectionPath, node Node) bool {
		if ok {
			return false
		}
		if field, isField := node.(Field); isField && field.Code == code {
			found, ok = field, true
			return false
		}
		return true
	})
	return found, ok
}

// SectionAt resolves a section by path.
func SectionAt(nodes []Node, path SectionPath) (Section, bool) {
	if len(path) == 0 {
		return Section{}, false
	}
	current := nodes
	var section Section
	for _, idx := range path {
		if idx < 0 || idx >= len(current) {
			return Section{}, false
		}
		next, ok := current[idx].(Section)
		if !ok {
			return Section{}, false
		}
		section = next
		current = next.Children
	}
	return section, true
}
