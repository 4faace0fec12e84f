package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"reprint/internal/diag"
	"reprint/internal/printer"
	"reprint/internal/trace"
	"reprint/internal/transform"
)

// ErrChanged is returned by Check when reprinting an unmodified tree did not
// give back the input.
var ErrChanged = errors.New("reprint would change files")

// Extensions lists the file suffixes picked up when walking directories.
var Extensions = []string{".js", ".mjs", ".cjs"}

// Options configure Run and Check.
type Options struct {
	Jobs      int // GOMAXPROCS when zero
	MaxErrors int // 100 when zero
	Recipe    transform.Recipe
	Printer   printer.Options
	Cache     *DiskCache // nil disables caching
	Progress  ProgressSink
	Tracer    trace.Tracer
	// Timings attaches a per-file timing report to every Result.
	Timings bool
}

func (o Options) maxErrors() int {
	if o.MaxErrors <= 0 {
		return 100
	}
	return o.MaxErrors
}

// ListFiles expands paths: files are taken as given, directories are walked
// for Extensions, skipping hidden directories and node_modules. The result
// is sorted and free of duplicates.
func ListFiles(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			files = append(files, p)
		}
	}
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if path != root && (strings.HasPrefix(name, ".") || name == "node_modules") {
					return filepath.SkipDir
				}
				return nil
			}
			for _, ext := range Extensions {
				if strings.HasSuffix(path, ext) {
					add(path)
					break
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// Run reprints every file under paths in parallel. Per-file failures are
// reported in Result.Err; the returned error is for listing failures and
// cancellation only.
func Run(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	files, err := ListFiles(paths)
	if err != nil {
		return nil, err
	}
	return RunFiles(ctx, files, opts)
}

// RunFiles is Run over an explicit file list.
func RunFiles(ctx context.Context, files []string, opts Options) ([]Result, error) {
	if len(files) == 0 {
		return nil, nil
	}
	recipeKey, err := RecipeFingerprint(opts.Recipe)
	if err != nil {
		return nil, err
	}

	sp := trace.Begin(opts.Tracer, trace.ScopeDriver, "run", 0).
		WithExtra("files", fmt.Sprint(len(files)))

	// Настраиваем параллелизм
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			w := worker{opts: opts, recipeKey: recipeKey, parent: sp.ID()}
			results[i] = w.file(path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		sp.End("canceled")
		return results, err
	}
	sp.End("")
	return results, nil
}

// Source reprints src as if read from name. It is Run for one in-memory
// file (stdin).
func Source(name string, src []byte, opts Options) Result {
	recipeKey, err := RecipeFingerprint(opts.Recipe)
	if err != nil {
		return Result{Path: name, Input: string(src), Err: err}
	}
	w := worker{opts: opts, recipeKey: recipeKey}
	return w.source(name, src)
}

// Check reprints every file without changes and fails with ErrChanged when
// any output differs from its input. Each differing file gets a
// PrintRoundTrip diagnostic.
func Check(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	opts.Recipe = transform.Recipe{}
	results, err := Run(ctx, paths, opts)
	if err != nil {
		return results, err
	}
	changed := 0
	for i := range results {
		r := &results[i]
		if r.Err != nil || !r.Changed {
			continue
		}
		changed++
		diag.ReportWarning(diag.BagReporter{Bag: r.Bag, Path: r.Path}, diag.PrintRoundTrip, firstDifference(r.Input, r.Output),
			"reprinting the unmodified tree changed the file").Emit()
	}
	if changed > 0 {
		return results, fmt.Errorf("%w: %d file(s)", ErrChanged, changed)
	}
	return results, nil
}

// Failed joins the per-file errors of results, nil when there are none.
func Failed(results []Result) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Path, r.Err))
		}
	}
	return errors.Join(errs...)
}
