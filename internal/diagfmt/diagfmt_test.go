package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"reprint/internal/diag"
	"reprint/internal/source"
)

func sampleBag() *diag.Bag {
	bag := diag.NewBag(10)
	d := diag.NewError(diag.SynExpectExpression, source.NewRange(2, 5, 2, 6), "expected expression, got \";\"")
	d.Path = "src/a.js"
	bag.Add(d.WithNote(source.NewRange(2, 4, 2, 5), "call opened here"))
	return bag
}

func TestPretty(t *testing.T) {
	files := map[string]*source.File{
		"src/a.js": source.Virtual("src/a.js", "x;\n\tfoo(;\n"),
	}
	var buf bytes.Buffer
	err := Pretty(&buf, sampleBag(), func(p string) *source.File { return files[p] }, PrettyOpts{ShowNotes: true})
	if err != nil {
		t.Fatal(err)
	}
	want := "src/a.js:2:6: ERROR SYN2007: expected expression, got \";\"\n" +
		" 2 |     foo(;\n" +
		"   |      ^\n" +
		"  note: call opened here\n"
	if got := buf.String(); got != want {
		t.Fatalf("want %q got %q", want, got)
	}
}

func TestPrettyWithoutSource(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, sampleBag(), nil, PrettyOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatal(err)
	}
	want := "a.js:2:6: ERROR SYN2007: expected expression, got \";\"\n"
	if got := buf.String(); got != want {
		t.Fatalf("want %q got %q", want, got)
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleBag(), JSONOpts{IncludeNotes: true}); err != nil {
		t.Fatal(err)
	}
	var got DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	loc := LocationJSON{File: "src/a.js", StartLine: 2, StartCol: 5, EndLine: 2, EndCol: 6}
	want := DiagnosticsOutput{Count: 1, Diagnostics: []DiagnosticJSON{{
		Severity: "ERROR",
		Code:     "SYN2007",
		Message:  "expected expression, got \";\"",
		Location: loc,
		Notes: []NoteJSON{{
			Message:  "call opened here",
			Location: LocationJSON{File: "src/a.js", StartLine: 2, StartCol: 4, EndLine: 2, EndCol: 5},
		}},
	}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("json (-want +got):\n%s", diff)
	}
	if out := BuildDiagnosticsOutput(sampleBag(), JSONOpts{Max: 0}); out.Diagnostics[0].Notes != nil {
		t.Fatalf("notes included without IncludeNotes")
	}
}
