package ast

import (
	"tally/internal/source"
)

// Tree is the parser output: one expression program over one file.
type Tree struct {
	File  source.FileID
	Exprs *Exprs
	Root  ExprID
}

// NewTree allocates an empty tree; hint is the expected node count.
func NewTree(file source.FileID, hint uint) *Tree {
	return &Tree{File: file, Exprs: NewExprs(hint)}
}

// Span returns the span of the root expression.
func (t *Tree) Span() source.Span {
	if root := t.Exprs.Get(t.Root); root != nil {
		return root.Span
	}
	return source.Span{File: t.File}
}

// Walk visits nodes depth-first in source order; returning false skips the subtree.
func (t *Tree) Walk(visit func(id ExprID, depth int) bool) {
	var walk func(id ExprID, depth int)
	walk = func(id ExprID, depth int) {
		if !id.IsValid() || !visit(id, depth) {
			return
		}
		for _, child := range t.Exprs.Children(id) {
			walk(child, depth+1)
		}
	}
	walk(t.Root, 0)
}

// Depth returns the height of the tree; a single literal has depth 1.
func (t *Tree) Depth() int {
	maxDepth := 0
	t.Walk(func(_ ExprID, depth int) bool {
		if depth+1 > maxDepth {
			maxDepth = depth + 1
		}
		return true
	})
	return maxDepth
}
