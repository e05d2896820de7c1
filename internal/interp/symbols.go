package interp

import (
	"sort"
)

// SymbolTable maps variable names to values for one evaluation, or for a
// whole REPL session. Every frame of an evaluation sees the same table.
type SymbolTable struct {
	vars map[string]Number
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{vars: make(map[string]Number)}
}

// Get returns the value bound to name.
func (s *SymbolTable) Get(name string) (Number, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Set binds or rebinds name.
func (s *SymbolTable) Set(name string, v Number) {
	s.vars[name] = v
}

func (s *SymbolTable) clone() *SymbolTable {
	vars := make(map[string]Number, len(s.vars))
	for name, v := range s.vars {
		vars[name] = v
	}
	return &SymbolTable{vars: vars}
}

func (s *SymbolTable) Len() int { return len(s.vars) }

// Names returns bound names in sorted order.
func (s *SymbolTable) Names() []string {
	names := make([]string, 0, len(s.vars))
	for name := range s.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
