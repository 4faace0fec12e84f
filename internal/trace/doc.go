// Package trace is the logging layer of reprint.
//
// Events are emitted at four scopes: driver (CLI run), file (one source
// file), pass (parse, transform, print) and node (one reprint decision).
// The level picks how deep events go:
//
//   - off: nothing
//   - error: only what the ring buffer keeps for crash dumps
//   - phase: driver and pass spans
//   - detail: plus file spans
//   - debug: plus per-node reprint decisions
//
// Tracers travel through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tr)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "print", 0)
//	defer span.End("")
//
// Use NewStreamTracer for text or NDJSON output, NewRingTracer to keep the
// last events in memory, and NewMultiTracer to do both.
package trace
