package interp

import (
	"fmt"

	"tally/internal/ast"
	"tally/internal/diag"
	"tally/internal/source"
	"tally/internal/trace"
)

// DefaultRootName names the program frame when the caller has none.
const DefaultRootName = "<program>"

// Options configure an Interpreter.
type Options struct {
	// Tracer receives one ScopeNode point per evaluated node at LevelDebug.
	Tracer trace.Tracer
	// TraceParent is the span ID the node points hang under.
	TraceParent uint64
}

// Interpreter walks one tree. It is not safe for concurrent use; batch runs
// create one per input.
type Interpreter struct {
	symbols *SymbolTable
	tracer  trace.Tracer
	parent  uint64
	steps   int
}

// New creates an interpreter over symbols; nil means a fresh table.
func New(symbols *SymbolTable, opts Options) *Interpreter {
	if symbols == nil {
		symbols = NewSymbolTable()
	}
	tr := opts.Tracer
	if tr == nil {
		tr = trace.Nop
	}
	return &Interpreter{symbols: symbols, tracer: tr, parent: opts.TraceParent}
}

// Evaluate runs tree in a fresh root frame named rootName with fresh bindings.
func Evaluate(tree *ast.Tree, rootName string) (Number, *diag.Diagnostic) {
	if rootName == "" {
		rootName = DefaultRootName
	}
	return New(nil, Options{}).Eval(tree, NewRootContext(rootName))
}

// Symbols returns the bindings the interpreter writes to.
func (in *Interpreter) Symbols() *SymbolTable { return in.symbols }

// Steps returns how many nodes were evaluated so far.
func (in *Interpreter) Steps() int { return in.steps }

// Eval evaluates tree.Root in ctx. On failure no value is returned.
func (in *Interpreter) Eval(tree *ast.Tree, ctx *Context) (Number, *diag.Diagnostic) {
	if tree == nil || !tree.Root.IsValid() {
		panic("interp: empty tree")
	}
	return in.visit(tree.Exprs, tree.Root, ctx)
}

func (in *Interpreter) visit(exprs *ast.Exprs, id ast.ExprID, ctx *Context) (Number, *diag.Diagnostic) {
	in.steps++
	expr := exprs.Get(id)

	var (
		res Number
		err *diag.Diagnostic
	)
	switch expr.Kind {
	case ast.ExprNumber:
		res = in.visitNumber(exprs, id)
	case ast.ExprIdent:
		res, err = in.visitIdent(exprs, id, expr.Span, ctx)
	case ast.ExprAssign:
		res, err = in.visitAssign(exprs, id, expr.Span, ctx)
	case ast.ExprUnary:
		res, err = in.visitUnary(exprs, id, expr.Span, ctx)
	case ast.ExprBinary:
		res, err = in.visitBinary(exprs, id, expr.Span, ctx)
	default:
		panic(fmt.Sprintf("interp: unhandled expression kind %d", expr.Kind))
	}
	if err != nil {
		return Number{}, err
	}

	// значение всегда несёт span узла, который его произвёл
	res = res.at(expr.Span, ctx)
	if trace.Wants(in.tracer, trace.ScopeNode) {
		trace.Point(in.tracer, trace.ScopeNode, expr.Kind.String(), in.parent,
			fmt.Sprintf("%s = %s in %s", expr.Span.Start, res, ctx.DisplayName))
	}
	return res, nil
}

func (in *Interpreter) visitNumber(exprs *ast.Exprs, id ast.ExprID) Number {
	data, _ := exprs.Number(id)
	if data.IsFloat {
		return Float(data.Float)
	}
	return Int(data.Int)
}

func (in *Interpreter) visitIdent(exprs *ast.Exprs, id ast.ExprID, span source.Span, ctx *Context) (Number, *diag.Diagnostic) {
	data, _ := exprs.Ident(id)
	v, ok := in.symbols.Get(data.Name)
	if !ok {
		return Number{}, in.fail(diag.RunUndefinedName, span, fmt.Sprintf("'%s' is not defined", data.Name), ctx)
	}
	return v, nil
}

// visitAssign evaluates the value in a child frame named after the variable,
// binds it and returns it.
func (in *Interpreter) visitAssign(exprs *ast.Exprs, id ast.ExprID, span source.Span, ctx *Context) (Number, *diag.Diagnostic) {
	data, _ := exprs.Assign(id)
	child := ctx.Child(data.Name, span)
	v, err := in.visit(exprs, data.Value, child)
	if err != nil {
		return Number{}, err
	}
	in.symbols.Set(data.Name, v)
	return v, nil
}

func (in *Interpreter) visitUnary(exprs *ast.Exprs, id ast.ExprID, span source.Span, ctx *Context) (Number, *diag.Diagnostic) {
	data, _ := exprs.Unary(id)
	operand, err := in.visit(exprs, data.Operand, ctx)
	if err != nil {
		return Number{}, err
	}
	res, aerr := negate(operand)
	if aerr != nil {
		return Number{}, in.fail(aerr.code, span, aerr.msg, ctx)
	}
	return res, nil
}

// visitBinary: левый операнд, при ошибке стоп; правый, при ошибке стоп; операция.
func (in *Interpreter) visitBinary(exprs *ast.Exprs, id ast.ExprID, span source.Span, ctx *Context) (Number, *diag.Diagnostic) {
	data, _ := exprs.Binary(id)
	left, err := in.visit(exprs, data.Left, ctx)
	if err != nil {
		return Number{}, err
	}
	right, err := in.visit(exprs, data.Right, ctx)
	if err != nil {
		return Number{}, err
	}

	res, aerr := apply(data.Op, left, right)
	if aerr != nil {
		at := span
		if aerr.atOperand {
			at = right.Span
		}
		return Number{}, in.fail(aerr.code, at, aerr.msg, ctx)
	}
	return res, nil
}

func (in *Interpreter) fail(code diag.Code, span source.Span, msg string, ctx *Context) *diag.Diagnostic {
	return diag.Runtime(code, span, msg, ctx.Traceback(span))
}
