package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"tally/internal/ast"
	"tally/internal/source"
)

type ASTNodeOutput struct {
	Type     string          `json:"type" msgpack:"type"`
	Op       string          `json:"op,omitempty" msgpack:"op,omitempty"`
	Name     string          `json:"name,omitempty" msgpack:"name,omitempty"`
	Value    any             `json:"value,omitempty" msgpack:"value,omitempty"`
	Text     string          `json:"text,omitempty" msgpack:"text,omitempty"`
	Span     SpanOut         `json:"span" msgpack:"span"`
	Children []ASTNodeOutput `json:"children,omitempty" msgpack:"children,omitempty"`
}

type treeNode struct {
	label    string
	children []*treeNode
}

// buildExprTreeNode строит узел для печати; метка содержит вид узла,
// его полезную нагрузку и span.
func buildExprTreeNode(tree *ast.Tree, id ast.ExprID) *treeNode {
	exprs := tree.Exprs
	expr := exprs.Get(id)
	var detail string
	switch expr.Kind {
	case ast.ExprNumber:
		if n, ok := exprs.Number(id); ok {
			detail = n.Text
		}
	case ast.ExprAssign:
		if a, ok := exprs.Assign(id); ok {
			detail = a.Name
		}
	case ast.ExprIdent:
		if v, ok := exprs.Ident(id); ok {
			detail = v.Name
		}
	case ast.ExprUnary:
		if u, ok := exprs.Unary(id); ok {
			detail = u.Op.String()
		}
	case ast.ExprBinary:
		if b, ok := exprs.Binary(id); ok {
			detail = b.Op.String()
		}
	}

	label := expr.Kind.String()
	if detail != "" {
		label += " " + detail
	}
	node := &treeNode{label: fmt.Sprintf("%s (span: %s)", label, formatSpan(expr.Span))}
	for _, child := range exprs.Children(id) {
		node.children = append(node.children, buildExprTreeNode(tree, child))
	}
	return node
}

func formatSpan(sp source.Span) string {
	start, end := sp.Start.Human(), sp.End.Human()
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

// FormatTreePretty prints the tree with ├─/└─ connectors, one node per line.
func FormatTreePretty(w io.Writer, tree *ast.Tree, fs *source.FileSet) error {
	if tree == nil || !tree.Root.IsValid() {
		return fmt.Errorf("empty tree")
	}
	header := "Tree"
	if fs != nil && int(tree.File) < fs.Len() {
		header = fs.Get(tree.File).FormatPath("auto", fs.BaseDir())
	}
	if _, err := fmt.Fprintf(w, "%s (span: %s)\n", header, formatSpan(tree.Span())); err != nil {
		return err
	}
	var b strings.Builder
	writeTreeNode(&b, buildExprTreeNode(tree, tree.Root), "", true)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeTreeNode(b *strings.Builder, node *treeNode, prefix string, last bool) {
	b.WriteString(prefix)
	if last {
		b.WriteString("└─ ")
		prefix += "   "
	} else {
		b.WriteString("├─ ")
		prefix += "│  "
	}
	b.WriteString(node.label)
	b.WriteByte('\n')
	for i, child := range node.children {
		writeTreeNode(b, child, prefix, i == len(node.children)-1)
	}
}

// BuildTreeOutput converts the tree rooted at tree.Root.
func BuildTreeOutput(tree *ast.Tree) ASTNodeOutput {
	return buildNodeOutput(tree.Exprs, tree.Root)
}

func buildNodeOutput(exprs *ast.Exprs, id ast.ExprID) ASTNodeOutput {
	expr := exprs.Get(id)
	out := ASTNodeOutput{Type: expr.Kind.String(), Span: makeSpanOut(expr.Span)}
	switch expr.Kind {
	case ast.ExprNumber:
		n, _ := exprs.Number(id)
		out.Text = n.Text
		switch {
		case !n.IsFloat:
			out.Value = n.Int
		case !math.IsInf(n.Float, 0):
			out.Value = n.Float
		}
	case ast.ExprAssign:
		a, _ := exprs.Assign(id)
		out.Name = a.Name
	case ast.ExprIdent:
		v, _ := exprs.Ident(id)
		out.Name = v.Name
	case ast.ExprUnary:
		u, _ := exprs.Unary(id)
		out.Op = u.Op.String()
	case ast.ExprBinary:
		bin, _ := exprs.Binary(id)
		out.Op = bin.Op.String()
	}
	for _, child := range exprs.Children(id) {
		out.Children = append(out.Children, buildNodeOutput(exprs, child))
	}
	return out
}

func FormatTreeJSON(w io.Writer, tree *ast.Tree) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTreeOutput(tree))
}

func FormatTreeMsgpack(w io.Writer, tree *ast.Tree) error {
	return msgpack.NewEncoder(w).Encode(BuildTreeOutput(tree))
}

// WriteTree dispatches on format.
func WriteTree(w io.Writer, format Format, tree *ast.Tree, fs *source.FileSet) error {
	if tree == nil || !tree.Root.IsValid() {
		return fmt.Errorf("empty tree")
	}
	switch format {
	case FormatJSON:
		return FormatTreeJSON(w, tree)
	case FormatMsgpack:
		return FormatTreeMsgpack(w, tree)
	default:
		return FormatTreePretty(w, tree, fs)
	}
}

// Sexpr renders the tree on one line, e.g. (+ 2 (* 3 4)); the REPL uses it.
func Sexpr(tree *ast.Tree) string {
	var b strings.Builder
	writeSexpr(&b, tree.Exprs, tree.Root)
	return b.String()
}

func writeSexpr(b *strings.Builder, exprs *ast.Exprs, id ast.ExprID) {
	switch exprs.Get(id).Kind {
	case ast.ExprNumber:
		n, _ := exprs.Number(id)
		if n.IsFloat {
			s := strconv.FormatFloat(n.Float, 'g', -1, 64)
			// 2.0 печатается как 2, помечаем как float
			if !strings.ContainsAny(s, ".eIN") {
				s += ".0"
			}
			b.WriteString(s)
			return
		}
		b.WriteString(strconv.FormatInt(n.Int, 10))
	case ast.ExprIdent:
		v, _ := exprs.Ident(id)
		b.WriteString(v.Name)
	case ast.ExprAssign:
		a, _ := exprs.Assign(id)
		b.WriteString("(var " + a.Name + " ")
		writeSexpr(b, exprs, a.Value)
		b.WriteByte(')')
	case ast.ExprUnary:
		u, _ := exprs.Unary(id)
		b.WriteString("(" + u.Op.String() + " ")
		writeSexpr(b, exprs, u.Operand)
		b.WriteByte(')')
	case ast.ExprBinary:
		bin, _ := exprs.Binary(id)
		b.WriteString("(" + bin.Op.String() + " ")
		writeSexpr(b, exprs, bin.Left)
		b.WriteByte(' ')
		writeSexpr(b, exprs, bin.Right)
		b.WriteByte(')')
	}
}
