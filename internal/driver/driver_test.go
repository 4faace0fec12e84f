package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"reprint/internal/diag"
	"reprint/internal/observ"
	"reprint/internal/parser"
	"reprint/internal/printer"
	"reprint/internal/source"
	"reprint/internal/transform"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func testOptions() Options {
	return Options{Jobs: 2, Printer: printer.DefaultOptions()}
}

func TestListFilesSkipsHiddenAndVendored(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.js":              "a;\n",
		"sub/b.mjs":         "b;\n",
		"sub/readme.md":     "#\n",
		"node_modules/c.js": "c;\n",
		".cache/d.js":       "d;\n",
	})
	files, err := ListFiles([]string{dir, filepath.Join(dir, "a.js")})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{filepath.Join(dir, "a.js"), filepath.Join(dir, "sub", "b.mjs")}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Fatalf("files (-want +got):\n%s", diff)
	}
}

func TestRunIdentity(t *testing.T) {
	srcs := map[string]string{
		"a.js": "// a\nfoo(1,  2);\n",
		"b.js": "if (x) {\r\n\ty = [1,2];\r\n}\r\n",
	}
	dir := writeFiles(t, srcs)
	results, err := Run(context.Background(), []string{dir}, testOptions())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("want 2 results got %d", len(results))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("%s: %v", r.Path, r.Err)
		}
		if r.Changed || r.Output != srcs[filepath.Base(r.Path)] {
			t.Fatalf("%s: want %q got %q", r.Path, srcs[filepath.Base(r.Path)], r.Output)
		}
	}
	if _, err := Check(context.Background(), []string{dir}, testOptions()); err != nil {
		t.Fatalf("check: %v", err)
	}
}

func TestRunRecipe(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.js": "exports.foo({\n    bar: 42,\n    baz: this\n});\n"})
	opts := testOptions()
	opts.Recipe = transform.Recipe{Rules: []transform.Rule{transform.Rename{From: "this", To: "self"}}}
	results, err := Run(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	r := results[0]
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	want := "exports.foo({\n    bar: 42,\n    baz: self\n});\n"
	if r.Output != want || !r.Changed || r.Edits != 1 {
		t.Fatalf("want %q (1 edit) got %q (%d edits, changed=%t)", want, r.Output, r.Edits, r.Changed)
	}
}

func TestParseErrorStaysPerFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{"bad.js": "foo(;\n", "good.js": "foo();\n"})
	results, err := Run(context.Background(), []string{dir}, testOptions())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	bad, good := results[0], results[1]
	if !errors.Is(bad.Err, parser.ErrSyntax) {
		t.Fatalf("want syntax error got %v", bad.Err)
	}
	if !bad.Bag.HasErrors() {
		t.Fatalf("want diagnostics for %s", bad.Path)
	}
	if good.Err != nil || good.Output != "foo();\n" {
		t.Fatalf("good file: %v %q", good.Err, good.Output)
	}
	if err := Failed(results); !errors.Is(err, parser.ErrSyntax) {
		t.Fatalf("want joined syntax error got %v", err)
	}
}

func TestMissingFileIsReported(t *testing.T) {
	results, err := RunFiles(context.Background(), []string{filepath.Join(t.TempDir(), "nope.js")}, testOptions())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !errors.Is(results[0].Err, os.ErrNotExist) {
		t.Fatalf("want ErrNotExist got %v", results[0].Err)
	}
	d, ok := results[0].Bag.First()
	if !ok || d.Code != diag.IOLoadFileError {
		t.Fatalf("want IOLoadFileError got %+v", d)
	}
}

func TestCanceledContext(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.js": "a;\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, []string{dir}, testOptions()); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled got %v", err)
	}
}

func TestDiskCache(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := cacheKey([]byte("a;\n"), "", printer.DefaultOptions())
	var got CachePayload
	if hit, err := cache.Get(key, &got); hit || err != nil {
		t.Fatalf("want miss got hit=%t err=%v", hit, err)
	}
	want := CachePayload{Path: "a.js", Output: "a;\n", Diagnostics: []CachedDiagnostic{{Code: 3001, Message: "m"}}}
	if err := cache.Put(key, &want); err != nil {
		t.Fatalf("put: %v", err)
	}
	if hit, err := cache.Get(key, &got); !hit || err != nil {
		t.Fatalf("want hit got hit=%t err=%v", hit, err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("payload (-want +got):\n%s", diff)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if hit, _ := cache.Get(key, &got); hit {
		t.Fatalf("entry survived DropAll")
	}
}

func TestCacheKeyDependsOnInputs(t *testing.T) {
	base := cacheKey([]byte("a;"), "r", printer.DefaultOptions())
	other := printer.DefaultOptions()
	other.TabWidth = 2
	keys := []Digest{
		cacheKey([]byte("b;"), "r", printer.DefaultOptions()),
		cacheKey([]byte("a;"), "s", printer.DefaultOptions()),
		cacheKey([]byte("a;"), "r", other),
		cacheKey([]byte("a;r"), "", printer.DefaultOptions()),
	}
	for i, k := range keys {
		if k == base || k.IsZero() {
			t.Fatalf("key %d collides with base", i)
		}
	}
}

func TestRunUsesCache(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.js": "x = this;\n"})
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := testOptions()
	opts.Cache = cache
	opts.Recipe = transform.Recipe{Rules: []transform.Rule{transform.Rename{From: "this", To: "self"}}}
	first, err := Run(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Run(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first[0].Cached || !second[0].Cached {
		t.Fatalf("want miss then hit got %t %t", first[0].Cached, second[0].Cached)
	}
	if second[0].Output != "x = self;\n" || second[0].Edits != 1 || !second[0].Changed {
		t.Fatalf("cached result differs: %+v", second[0])
	}
}

type recordSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func TestProgressEvents(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.js": "a;\n"})
	sink := &recordSink{}
	opts := testOptions()
	opts.Progress = sink
	if _, err := Run(context.Background(), []string{dir}, opts); err != nil {
		t.Fatal(err)
	}
	var got []Status
	for _, ev := range sink.events {
		got = append(got, ev.Status)
	}
	want := []Status{StatusQueued, StatusWorking, StatusWorking, StatusWorking, StatusDone}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("statuses (-want +got):\n%s", diff)
	}
}

func TestTimingsAttached(t *testing.T) {
	r := Source("a.js", []byte("a;\n"), Options{Printer: printer.DefaultOptions(), Timings: true})
	if r.Err != nil {
		t.Fatal(r.Err)
	}
	if r.Timing == nil || len(r.Timing.Phases) != 2 {
		t.Fatalf("want parse and print phases got %+v", r.Timing)
	}
	d, ok := r.Bag.First()
	if !ok || d.Code != diag.ObsTimings {
		t.Fatalf("want timing diagnostic got %+v", d)
	}
}

func TestTimingsSurviveFullBag(t *testing.T) {
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SynExpectSemicolon, source.NewRange(1, 0, 1, 1), "missing ;"))
	reportTimings(bag, "a.js", observ.Report{TotalMS: 1.5, Phases: []observ.PhaseReport{{Name: "parse", DurationMS: 1.5}}})
	if bag.Len() != 2 {
		t.Fatalf("want 2 diagnostics got %d", bag.Len())
	}
	d := bag.Items()[1]
	if d.Code != diag.ObsTimings || d.Path != "a.js" || len(d.Notes) != 1 {
		t.Fatalf("want timing diagnostic for a.js got %+v", d)
	}
	if !strings.Contains(d.Notes[0].Msg, `"path":"a.js"`) || !strings.Contains(d.Notes[0].Msg, `"name":"parse"`) {
		t.Fatalf("note lacks path or phases: %s", d.Notes[0].Msg)
	}
}

func TestWrite(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.js": "x = this;\n"})
	path := filepath.Join(dir, "a.js")
	if err := os.Chmod(path, 0o600); err != nil {
		t.Fatal(err)
	}
	if wrote, err := Write(Result{Path: path, Output: "same"}); wrote || err != nil {
		t.Fatalf("unchanged result written: %t %v", wrote, err)
	}
	if wrote, err := Write(Result{Path: path, Output: "x = self;\n", Changed: true}); !wrote || err != nil {
		t.Fatalf("write: %t %v", wrote, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "x = self;\n" {
		t.Fatalf("want %q got %q", "x = self;\n", data)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("want mode 0600 got %v", info.Mode().Perm())
	}
}

func TestLineDiff(t *testing.T) {
	got := LineDiff("a\nb\nc\n", "a\nx\nc\n")
	want := []DiffLine{
		{Op: DiffKeep, Line: 1, Text: "a"},
		{Op: DiffDelete, Line: 2, Text: "b"},
		{Op: DiffInsert, Line: 2, Text: "x"},
		{Op: DiffKeep, Line: 3, Text: "c"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("diff (-want +got):\n%s", diff)
	}
	hunks := Hunks(LineDiff("1\n2\n3\n4\n5\n6\n7\n", "A\n2\n3\n4\n5\n6\nG\n"), 1)
	var ops []DiffOp
	for _, h := range hunks {
		ops = append(ops, h.Op)
	}
	wantOps := []DiffOp{DiffDelete, DiffInsert, DiffKeep, DiffKeep, DiffKeep, DiffDelete, DiffInsert}
	if diff := cmp.Diff(wantOps, ops); diff != "" {
		t.Fatalf("hunk ops (-want +got):\n%s", diff)
	}
	if hunks[2].Text != "2" || hunks[3].Line != 0 || hunks[4].Text != "6" {
		t.Fatalf("unexpected hunks %+v", hunks)
	}
}

func TestFirstDifference(t *testing.T) {
	got := firstDifference("ab\ncd\n", "ab\ncx\n")
	if want := (source.Range{Start: source.Pos{Line: 2, Column: 1}, End: source.Pos{Line: 2, Column: 1}}); got != want {
		t.Fatalf("want %v got %v", want, got)
	}
}
