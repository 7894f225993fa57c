// Package diagnostics describes which code path a cache lookup took.
//
// Every completed lookup can be reported to a Recorder as a Detail: where the value came from
// (CACHE or DATASOURCE) and which side of the per-key lock was taken (NONE, READ or WRITE).
// Recorders are optional and have no effect on the values returned by the cache; they exist to
// verify the single-flight behavior in tests and to feed metrics, traces and logs.
//
// The caller identity is carried by the context (see WithCallerID), so that a MemoryRecorder
// can keep the latest Detail of each caller.
package diagnostics
