package driver

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"reprint/internal/diag"
	"reprint/internal/observ"
	"reprint/internal/parser"
	"reprint/internal/printer"
	"reprint/internal/reprint"
	"reprint/internal/source"
	"reprint/internal/trace"
	"reprint/internal/transform"
)

// Result is the outcome for one file.
type Result struct {
	Path    string
	Input   string
	Output  string
	Changed bool // Output differs from Input
	Edits   int  // recipe edits applied
	Cached  bool
	Bag     *diag.Bag
	Timing  *observ.Report
	Err     error
}

var zeroRange source.Range

// worker processes files one at a time. Every file gets its own parse,
// snapshot and printer; nothing is shared between goroutines but opts.
type worker struct {
	opts      Options
	recipeKey string
	parent    uint64
}

func (w worker) file(path string) Result {
	start := time.Now()
	emit(w.opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
	src, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		emit(w.opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err, Elapsed: time.Since(start)})
		bag := diag.NewBag(w.opts.maxErrors())
		diag.ReportError(diag.BagReporter{Bag: bag, Path: path}, diag.IOLoadFileError, zeroRange,
			"failed to load file: "+err.Error()).Emit()
		return Result{Path: path, Bag: bag, Err: err}
	}
	return w.source(path, src)
}

func (w worker) source(path string, src []byte) (res Result) {
	start := time.Now()
	sp := trace.Begin(w.opts.Tracer, trace.ScopeFile, "file", w.parent).WithExtra("path", path)
	defer func() {
		status := StatusDone
		switch {
		case res.Err != nil:
			status = StatusError
			sp.End("error")
		case res.Cached:
			status = StatusCached
			sp.End("cached")
		default:
			sp.End("")
		}
		emit(w.opts.Progress, Event{File: path, Stage: StagePrint, Status: status, Err: res.Err, Elapsed: time.Since(start)})
	}()

	var timer *observ.Timer
	if w.opts.Timings {
		timer = observ.NewTimer()
	}

	var key Digest
	if w.opts.Cache != nil {
		key = cacheKey(src, w.recipeKey, w.opts.Printer)
		var payload CachePayload
		done := timer.Track("cache")
		hit, err := w.opts.Cache.Get(key, &payload)
		done("")
		if err == nil && hit {
			res = payloadToResult(path, &payload, w.opts.maxErrors())
			res.Input = string(src)
			w.attachTimings(&res, timer)
			return res
		}
	}

	res = w.rewrite(path, src, timer)
	if res.Err == nil && w.opts.Cache != nil {
		// ошибка записи кэша не должна ронять прогон
		_ = w.opts.Cache.Put(key, resultToPayload(&res))
	}
	w.attachTimings(&res, timer)
	return res
}

func (w worker) rewrite(path string, src []byte, timer *observ.Timer) Result {
	bag := diag.NewBag(w.opts.maxErrors())
	reporter := diag.BagReporter{Bag: bag, Path: path}
	res := Result{Path: path, Input: string(src), Bag: bag}

	emit(w.opts.Progress, Event{File: path, Stage: StageParse, Status: StatusWorking})
	done := timer.Track("parse")
	parsed, err := parser.Parse(path, src, parser.Options{
		TabWidth:  w.opts.Printer.TabWidth,
		MaxErrors: w.opts.maxErrors(),
		Reporter:  reporter,
		Tracer:    w.opts.Tracer,
	})
	done("")
	if err != nil {
		res.Err = err
		return res
	}

	if !w.opts.Recipe.Empty() {
		emit(w.opts.Progress, Event{File: path, Stage: StageTransform, Status: StatusWorking})
		done = timer.Track("transform")
		st, err := transform.Apply(parsed.File, w.opts.Recipe)
		done("")
		if err != nil {
			diag.ReportError(reporter, diag.ConfigUnknownRule, zeroRange, err.Error()).Emit()
			res.Err = err
			return res
		}
		res.Edits = st.Edits
	}

	emit(w.opts.Progress, Event{File: path, Stage: StagePrint, Status: StatusWorking})
	popts := w.opts.Printer
	popts.Tracer = w.opts.Tracer
	popts.Reporter = reporter
	done = timer.Track("print")
	out, err := printer.New(popts, parsed.Snapshot).Print(parsed.File)
	done("")
	if err != nil {
		if errors.Is(err, reprint.ErrContract) {
			diag.ReportError(reporter, diag.PrintContract, zeroRange, err.Error()).Emit()
		}
		res.Err = err
		return res
	}
	res.Output = out.String()
	res.Changed = res.Output != res.Input
	return res
}

func (w worker) attachTimings(res *Result, timer *observ.Timer) {
	if timer == nil {
		return
	}
	rep := timer.Report()
	res.Timing = &rep
	reportTimings(res.Bag, res.Path, rep)
}

// firstDifference is the position of the first byte where a and b differ,
// counted in a.
func firstDifference(a, b string) source.Range {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	f := source.Virtual("", a)
	pos := f.PosOf(i)
	return source.Range{Start: pos, End: pos}
}
