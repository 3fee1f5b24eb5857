// Package contextfile renders the per-session context artifact.
//
// The file is rebuilt from the session's in-memory screenshot list on every
// render rather than appended to, so a previous partial write can never
// corrupt it. Layout contract, verified bit-exactly by tests: the first
// line is "SESSION CONTEXT", a "Last Updated:" line is refreshed on every
// render, and each screenshot contributes exactly one "SCREENSHOT N" line.
package contextfile
