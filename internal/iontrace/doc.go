// Package iontrace models a compiler's per-pass IR debug trace.
//
// The trace is a read-only snapshot decoded once per run: an ordered list
// of functions, each with an ordered list of optimization passes, each
// pass carrying a graph-structured MIR snapshot and an optional linear
// LIR snapshot. The package also repairs traces truncated mid-write
// (the producing process may crash while spewing) so that a partial
// trace still decodes.
//
// Other internal packages import iontrace; iontrace imports nothing
// internal.
package iontrace
