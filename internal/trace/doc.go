// Package trace provides a lightweight instrumentation profiler.
//
// The trace package records named timed spans and streams them into a file in
// Chrome's trace-event JSON format, ready to be opened in chrome://tracing or
// Perfetto.
//
// # Usage
//
// The composition root owns a single Instrumentor and ends the session
// explicitly:
//
//	in := trace.New(trace.WithLogger(logger))
//	in.BeginSession("startup", "startup.json")
//	defer in.EndSession()
//
// Instrumented code times a region with one deferred call:
//
//	func load(in *trace.Instrumentor) {
//		defer in.Function().Stop()
//		...
//	}
//
// # Sessions
//
// At most one session is open per Instrumentor. Beginning a session while
// another is open closes the previous one first and logs a warning. Span
// records written while no session is open are dropped.
//
// # Output
//
// Every record is flushed as soon as it is written. The file is valid JSON only
// after EndSession writes the closing "]}"; a process that exits without ending
// the session leaves the epilogue missing.
//
// # Context Propagation
//
// The Instrumentor can travel with a context:
//
//	ctx = trace.WithInstrumentor(ctx, in)
//	defer trace.ScopeFrom(ctx, "parse").Stop()
package trace
