// Package diag defines the diagnostic model shared by the lexer, the parser
// and the driver.
//
// Diagnostic is the central record: a Severity, a numeric Code with a stable
// string form (see codes.go), a short Message, the Path of the file and the
// Primary source.Range the finding points at, plus optional Notes.
//
// Producers emit through a Reporter so they do not depend on storage. The
// parser builds diagnostics with ReportError/ReportWarning, optionally chains
// WithNote and calls Emit; BagReporter collects them into a Bag, which
// supports sorting and deduplication. FormatShort renders a deterministic,
// one-line-per-entry listing used by the CLI and by tests.
//
// Package diag does no IO.
package diag
