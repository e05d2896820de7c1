package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"tally/internal/ast"
	"tally/internal/source"
	"tally/internal/token"
)

// CheckSpanInvariants runs span invariants on a parsed tree:
// 1) every node span is non-empty, in sf and within content bounds
// 2) stored positions agree with positions recomputed from offsets
// 3) every child span is contained in its parent span
func CheckSpanInvariants(tree *ast.Tree, sf *source.File) error {
	if tree == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	if !tree.Root.IsValid() {
		return fmt.Errorf("tree has no root")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var firstErr error
	tree.Walk(func(id ast.ExprID, _ int) bool {
		if firstErr != nil {
			return false
		}
		expr := tree.Exprs.Get(id)
		if expr == nil {
			firstErr = fmt.Errorf("nil node for id=%d", id)
			return false
		}
		if err := checkSpan(expr.Span, sf, lenContent); err != nil {
			firstErr = fmt.Errorf("%s node %d: %w", expr.Kind, id, err)
			return false
		}
		for _, child := range tree.Exprs.Children(id) {
			csp := tree.Exprs.Get(child).Span
			if !expr.Span.Contains(csp) {
				firstErr = fmt.Errorf("%s node %d span %v does not contain child %v", expr.Kind, id, expr.Span, csp)
				return false
			}
		}
		return true
	})
	return firstErr
}

// CheckTokenInvariants verifies a successful token stream:
// 1) it ends with exactly one EOF at the end of the content
// 2) token spans are non-empty, ordered and non-overlapping
// 3) token text is the source slice under its span
func CheckTokenInvariants(tokens []token.Token, sf *source.File) error {
	if len(tokens) == 0 {
		return fmt.Errorf("empty token stream")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	last := tokens[len(tokens)-1]
	if last.Kind != token.EOF {
		return fmt.Errorf("stream ends with %s, not EOF", last.Kind)
	}
	if !last.Span.Empty() || last.Span.Start != sf.End() {
		return fmt.Errorf("EOF span %v is not the end of input %v", last.Span, sf.End())
	}

	var prevEnd uint32
	for i, tok := range tokens[:len(tokens)-1] {
		if tok.Kind == token.EOF {
			return fmt.Errorf("EOF at index %d before the end", i)
		}
		if tok.Span.Empty() {
			return fmt.Errorf("token %d (%s) has empty span", i, tok.Kind)
		}
		if err := checkSpan(tok.Span, sf, lenContent); err != nil {
			return fmt.Errorf("token %d (%s): %w", i, tok.Kind, err)
		}
		if tok.Span.Start.Offset < prevEnd {
			return fmt.Errorf("token %d (%s) overlaps previous token", i, tok.Kind)
		}
		if text := string(sf.Content[tok.Span.Start.Offset:tok.Span.End.Offset]); text != tok.Text {
			return fmt.Errorf("token %d text %q, source has %q", i, tok.Text, text)
		}
		prevEnd = tok.Span.End.Offset
	}
	return nil
}

func checkSpan(sp source.Span, sf *source.File, lenContent uint32) error {
	if sp.File != sf.ID {
		return fmt.Errorf("span points to different file id: got=%d want=%d", sp.File, sf.ID)
	}
	if sp.End.Offset <= sp.Start.Offset {
		return fmt.Errorf("empty span %v", sp)
	}
	if sp.End.Offset > lenContent {
		return fmt.Errorf("span end beyond content: %d > %d", sp.End.Offset, lenContent)
	}
	if got := sf.PositionAt(sp.Start.Offset); got != sp.Start {
		return fmt.Errorf("start position %v, recomputed %v", sp.Start, got)
	}
	if got := sf.PositionAt(sp.End.Offset); got != sp.End {
		return fmt.Errorf("end position %v, recomputed %v", sp.End, got)
	}
	return nil
}
