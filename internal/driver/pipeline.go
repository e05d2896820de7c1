package driver

import (
	"context"
	"fmt"
	"time"

	"tally/internal/ast"
	"tally/internal/diag"
	"tally/internal/interp"
	"tally/internal/lexer"
	"tally/internal/observ"
	"tally/internal/parser"
	"tally/internal/source"
	"tally/internal/token"
	"tally/internal/trace"
)

// Options control one pipeline run.
type Options struct {
	// RootName names the program frame in tracebacks; "" means "<program>".
	RootName string
	// MaxDepth bounds expression nesting; 0 disables the guard.
	MaxDepth int
	// Session, when set, evaluates against persistent bindings (REPL).
	Session *interp.Session
	// Timer receives stage durations; a fresh one is made when nil.
	Timer *observ.Timer
	// Sink receives stage events for the file.
	Sink ProgressSink
}

// Result holds what the pipeline produced before it stopped.
// A failed stage leaves its own output empty and sets Diag.
type Result struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Tree    *ast.Tree
	Value   interp.Number
	Diag    *diag.Diagnostic
	Timer   *observ.Timer
	// Reached is the last stage that ran.
	Reached Stage
}

// OK reports whether every requested stage succeeded.
func (r *Result) OK() bool { return r != nil && r.Diag == nil }

// Evaluated reports whether Value holds a result.
func (r *Result) Evaluated() bool { return r.OK() && r.Reached == StageEval }

// Tokenize runs the lexer over a file already in fs.
func Tokenize(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) *Result {
	return run(ctx, fs, id, opts, StageTokenize)
}

// Parse tokenizes and parses.
func Parse(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) *Result {
	return run(ctx, fs, id, opts, StageParse)
}

// Eval runs the whole pipeline.
func Eval(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) *Result {
	return run(ctx, fs, id, opts, StageEval)
}

// EvalSource evaluates text registered under name, e.g. "<stdin>".
func EvalSource(ctx context.Context, name, text string, opts Options) *Result {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(text))
	return Eval(ctx, fs, id, opts)
}

// LoadFile reads path into a new FileSet.
func LoadFile(path string) (*source.FileSet, source.FileID, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, 0, fmt.Errorf("load %s: %w", path, err)
	}
	return fs, id, nil
}

func run(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options, until Stage) *Result {
	timer := opts.Timer
	if timer == nil {
		timer = observ.NewTimer()
	}
	file := fs.Get(id)
	res := &Result{FileSet: fs, File: file, Timer: timer}
	name := file.Name()
	started := time.Now()

	tracer := trace.FromContext(ctx)
	fileSpan := trace.Begin(tracer, trace.ScopeFile, "file", trace.CurrentSpan(ctx)).
		WithExtra("path", name)
	ctx = trace.WithSpan(ctx, fileSpan)
	defer func() {
		detail := "ok"
		if res.Diag != nil {
			detail = res.Diag.Code.ID()
		} else {
			emit(opts.Sink, Event{File: name, Stage: res.Reached, Status: StatusDone, Elapsed: time.Since(started)})
		}
		fileSpan.End(detail)
	}()

	res.Reached = StageTokenize
	stage(ctx, opts.Sink, timer, name, StageTokenize, func(context.Context) (string, *diag.Diagnostic) {
		toks, d := lexer.Tokenize(file)
		if d != nil {
			return d.Code.ID(), d
		}
		res.Tokens = toks
		return fmt.Sprintf("%d tokens", len(toks)), nil
	}, &res.Diag)
	if res.Diag != nil || until == StageTokenize {
		return res
	}

	res.Reached = StageParse
	stage(ctx, opts.Sink, timer, name, StageParse, func(context.Context) (string, *diag.Diagnostic) {
		if d := CheckDepth(res.Tokens, opts.MaxDepth); d != nil {
			return d.Code.ID(), d
		}
		tree, d := parser.Parse(res.Tokens)
		if d != nil {
			return d.Code.ID(), d
		}
		res.Tree = tree
		return fmt.Sprintf("%d nodes", tree.Exprs.Len()), nil
	}, &res.Diag)
	if res.Diag != nil || until == StageParse {
		return res
	}

	res.Reached = StageEval
	stage(ctx, opts.Sink, timer, name, StageEval, func(ctx context.Context) (string, *diag.Diagnostic) {
		v, d := evaluate(ctx, res.Tree, opts)
		if d != nil {
			return d.Code.ID(), d
		}
		res.Value = v
		return v.String(), nil
	}, &res.Diag)
	return res
}

// stage runs fn inside a trace span and a timer phase and reports events.
func stage(ctx context.Context, sink ProgressSink, timer *observ.Timer, file string, st Stage,
	fn func(ctx context.Context) (string, *diag.Diagnostic), out **diag.Diagnostic) {
	emit(sink, Event{File: file, Stage: st, Status: StatusWorking})
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeStage, string(st), trace.CurrentSpan(ctx))
	idx := timer.Begin(string(st))
	start := time.Now()

	note, d := fn(trace.WithSpan(ctx, span))

	elapsed := time.Since(start)
	timer.End(idx, note)
	span.End(note)
	if d != nil {
		*out = d
		emit(sink, Event{File: file, Stage: st, Status: StatusError, Err: d, Elapsed: elapsed})
	}
}

func evaluate(ctx context.Context, tree *ast.Tree, opts Options) (interp.Number, *diag.Diagnostic) {
	iopts := interp.Options{
		Tracer:      trace.FromContext(ctx),
		TraceParent: trace.CurrentSpan(ctx),
	}
	if opts.Session != nil {
		return opts.Session.EvalWith(tree, iopts)
	}
	root := opts.RootName
	if root == "" {
		root = interp.DefaultRootName
	}
	return interp.New(nil, iopts).Eval(tree, interp.NewRootContext(root))
}
