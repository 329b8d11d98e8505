package render

import (
	"sort"
	"sync"

	"github.com/goliatone/go-formtemplate/pkg/model"
)

// CollapseState tracks which sections of a form tree are collapsed. Sections
// are identified by their SectionPath string, so the extracted tree itself
// never changes. The zero value has every section expanded; a nil
// *CollapseState is valid for reads.
type CollapseState struct {
	mu        sync.RWMutex
	collapsed map[string]bool
}

// NewCollapseState returns a state with the given paths collapsed.
func NewCollapseState(paths ...string) *CollapseState {
	s := &CollapseState{}
	for _, path := range paths {
		s.Set(path, true)
	}
	return s
}

// IsCollapsed reports whether path is collapsed.
func (s *CollapseState) IsCollapsed(path string) bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collapsed[path]
}

// Set stores the collapsed flag for path.
func (s *CollapseState) Set(path string, collapsed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !collapsed {
		delete(s.collapsed, path)
		return
	}
	if s.collapsed == nil {
		s.collapsed = make(map[string]bool)
	}
	s.collapsed[path] = true
}

// Toggle flips path and returns the new state.
func (s *CollapseState) Toggle(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := !s.collapsed[path]
	if !next {
		delete(s.collapsed, path)
		return false
	}
	if s.collapsed == nil {
		s.collapsed = make(map[string]bool)
	}
	s.collapsed[path] = true
	return true
}

// CollapseAll marks every section of nodes collapsed.
func (s *CollapseState) CollapseAll(nodes []model.Node) {
	model.Walk(nodes, func(path model.SectionPath, node model.Node) bool {
		if _, ok := node.(model.Section); ok {
			s.Set(path.String(), true)
		}
		return true
	})
}

// Paths lists the collapsed paths in sorted order.
func (s *CollapseState) Paths() []string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	paths := make([]string, 0, len(s.collapsed))
	for path := range s.collapsed {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
