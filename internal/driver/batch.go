package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"tally/internal/observ"
	"tally/internal/source"
	"tally/internal/trace"
)

// DefaultExt is the source file extension picked up by batch runs.
const DefaultExt = ".tly"

// BatchOptions configure EvalDir.
type BatchOptions struct {
	Options
	// Jobs bounds parallelism; <= 0 means GOMAXPROCS.
	Jobs int
	// Ext selects files by suffix; "" means DefaultExt.
	Ext string
}

// FileResult is the outcome for one file of a batch.
// Err is set only when the file could not be loaded.
type FileResult struct {
	Path   string
	Result *Result
	Err    error
}

// ListSources возвращает отсортированный список файлов с расширением ext.
func ListSources(dir, ext string) ([]string, error) {
	if ext == "" {
		ext = DefaultExt
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// EvalDir evaluates every source file under dir in parallel. Each file gets
// its own tokens, tree, bindings and context chain; only the FileSet, filled
// before the workers start, is shared. Results keep the order of ListSources.
func EvalDir(ctx context.Context, dir string, opts BatchOptions) (*source.FileSet, []FileResult, error) {
	files, err := ListSources(dir, opts.Ext)
	if err != nil {
		return nil, nil, fmt.Errorf("list %s: %w", dir, err)
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	tracer := trace.FromContext(ctx)
	batchSpan := trace.Begin(tracer, trace.ScopeDriver, "eval-dir", trace.CurrentSpan(ctx)).
		WithExtra("dir", dir)
	ctx = trace.WithSpan(ctx, batchSpan)

	// Предзагружаем все файлы: FileSet не потокобезопасен на запись
	results := make([]FileResult, len(files))
	ids := make([]source.FileID, len(files))
	for i, path := range files {
		results[i].Path = path
		ids[i], results[i].Err = fileSet.Load(path)
		if results[i].Err == nil {
			emit(opts.Sink, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		} else {
			emit(opts.Sink, Event{File: path, Stage: StageLoad, Status: StatusError, Err: results[i].Err})
		}
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i := range files {
		if results[i].Err != nil {
			continue
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			fileOpts := opts.Options
			fileOpts.Timer = observ.NewTimer()
			fileOpts.Session = nil
			// индекс i уникален для горутины, мьютекс не нужен
			results[i].Result = Eval(gctx, fileSet, ids[i], fileOpts)
			return nil
		})
	}

	err = g.Wait()
	batchSpan.End(fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// Timers collects the per-file timers of a batch.
func Timers(results []FileResult) []*observ.Timer {
	out := make([]*observ.Timer, 0, len(results))
	for _, r := range results {
		if r.Result != nil {
			out = append(out, r.Result.Timer)
		}
	}
	return out
}

// Failed counts files that did not load or stopped on a diagnostic.
func Failed(results []FileResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil || !r.Result.OK() {
			n++
		}
	}
	return n
}
