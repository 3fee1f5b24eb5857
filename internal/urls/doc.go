// Package urls discovers and normalizes URLs inside noisy OCR text.
//
// OCR output mangles URLs in predictable ways: spaces appear inside hosts
// and paths, scheme separators lose characters, and trailing punctuation
// from surrounding prose sticks to the match. Discovery runs an ordered
// pattern table from most specific (Google Docs/Drive fragments) to most
// general (any http(s) URL), then repairs each candidate into a canonical
// form.
//
// Normalization is deterministic and idempotent: re-normalizing an already
// normalized URL yields the same string. The pattern set is a tuned
// baseline, not a complete extractor; URLs split across OCR line breaks are
// not recovered.
package urls
