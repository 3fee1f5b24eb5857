// Package pipeline orchestrates one screenshot pass: OCR, URL discovery,
// URL resolution, session append, context render.
//
// Each stage is individually fault tolerant. An OCR failure degrades to
// empty text, discovery over empty text is an empty list, and a failed URL
// resolution is recorded on that URL's record without touching the rest.
// Only filesystem-level failures (missing source image, unwritable context
// directory) fail the whole call.
//
// The service also carries the call-in contract the overlay layer consumes:
// Initialize, ProcessScreenshot, GenerateSessionContext, CleanupSession,
// CleanupAll, Status.
package pipeline
