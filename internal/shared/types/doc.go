// Package types provides shared data structures for the ScreenSense core.
//
// This package defines the records that flow through the screenshot
// pipeline, keeping every component on the same shapes.
//
// Core Types:
//   - Session: ordered screenshot history for one usage episode
//   - Screenshot: one processed capture (OCR text, resolved URLs)
//   - ResolvedURL: outcome of resolving a single discovered URL
//   - Result: uniform pipeline outcome returned to the overlay layer
//   - Status: service readiness snapshot
//
// Classification:
//   - URLKind: google_docs, google_sheets, google_slides, drive_file, web
package types
