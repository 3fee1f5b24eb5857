// Package session holds the in-memory session registry.
//
// A session is created on the first screenshot of a new id and lives until
// an explicit cleanup call removes it; nothing is evicted implicitly and
// the screenshot list is unbounded. Mutations for one session run under a
// per-session lock so concurrent appends cannot interleave, which keeps the
// rendered context file's ordering stable.
package session
