package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"reprint/internal/diag"
	"reprint/internal/diagfmt"
	"reprint/internal/driver"
	"reprint/internal/source"
)

var (
	diffHeaderColor = color.New(color.Bold)
	diffDeleteColor = color.New(color.FgRed)
	diffInsertColor = color.New(color.FgGreen)
	diffGapColor    = color.New(color.FgCyan)
)

// diffContext is the number of unchanged lines kept around each change.
const diffContext = 2

// renderDiff writes the line diff of one result.
func renderDiff(w io.Writer, r driver.Result) error {
	if _, err := diffHeaderColor.Fprintf(w, "--- %s\n+++ %s\n", r.Path, r.Path); err != nil {
		return err
	}
	for _, l := range driver.Hunks(driver.LineDiff(r.Input, r.Output), diffContext) {
		var err error
		switch {
		case l.Op == driver.DiffKeep && l.Line == 0:
			_, err = diffGapColor.Fprintln(w, "@@")
		case l.Op == driver.DiffDelete:
			_, err = diffDeleteColor.Fprintf(w, "-%s\n", l.Text)
		case l.Op == driver.DiffInsert:
			_, err = diffInsertColor.Fprintf(w, "+%s\n", l.Text)
		default:
			_, err = fmt.Fprintf(w, " %s\n", l.Text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// collectDiagnostics merges the bags of results, timing reports excluded:
// those are printed by renderTimings.
func collectDiagnostics(results []driver.Result) *diag.Bag {
	total := 0
	for _, r := range results {
		if r.Bag != nil {
			total += r.Bag.Len()
		}
	}
	out := diag.NewBag(max(total, 1))
	for _, r := range results {
		if r.Bag == nil {
			continue
		}
		for _, d := range r.Bag.Items() {
			if d.Code != diag.ObsTimings {
				out.Add(d)
			}
		}
	}
	out.Sort()
	return out
}

func renderDiagnostics(w io.Writer, results []driver.Result, format string, quiet bool) error {
	bag := collectDiagnostics(results)
	if format == "json" {
		return diagfmt.JSON(w, bag, diagfmt.JSONOpts{IncludeNotes: true})
	}
	if bag.Len() == 0 {
		return nil
	}
	files := make(map[string]*source.File, len(results))
	for _, r := range results {
		files[r.Path] = source.Virtual(r.Path, r.Input)
	}
	filtered := bag
	if quiet {
		// в тихом режиме только ошибки
		filtered = diag.NewBag(bag.Len())
		for _, d := range bag.Items() {
			if d.Severity == diag.SevError {
				filtered.Add(d)
			}
		}
	}
	return diagfmt.Pretty(w, filtered, func(p string) *source.File { return files[p] }, diagfmt.PrettyOpts{
		Color:     !color.NoColor,
		ShowNotes: true,
	})
}

func renderTimings(w io.Writer, results []driver.Result) {
	for _, r := range results {
		if r.Timing == nil {
			continue
		}
		parts := make([]string, 0, len(r.Timing.Phases))
		for _, p := range r.Timing.Phases {
			parts = append(parts, fmt.Sprintf("%s %.2f ms", p.Name, p.DurationMS))
		}
		fmt.Fprintf(w, "%s: %s (total %.2f ms)\n", r.Path, strings.Join(parts, ", "), r.Timing.TotalMS)
	}
}
