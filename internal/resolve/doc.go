// Package resolve turns discovered URLs into textual content.
//
// Every URL is classified once against a Google Drive pattern table
// (document, spreadsheet, presentation, generic Drive file) with anything
// else treated as a plain web page, then dispatched to one resolver per
// kind:
//   - documents: Docs API paragraph tree first, then a three-step public
//     scrape fallback (/edit, /view, /pub) with a selector cascade
//   - spreadsheets: Sheets API, bounded range per sheet, sheet failures skipped
//   - presentations: Slides API, shape text runs flattened per slide
//   - drive files: metadata plus a direct-download URL for binary types
//   - web: plain GET, raw body stored, all statuses accepted
//
// Failures are contained per URL and surfaced as structured fields on the
// record; a failed resolution never aborts the caller's pass over the rest
// of the list. Outbound requests share a rate limiter and a bounded
// concurrency slot pool.
//
// Built on:
//   - resty over a retryablehttp transport for fetching
//   - goquery CSS selectors and htmlquery XPath for scrape extraction
//   - chardet + x/net/html/charset for response decoding
//   - google.golang.org/api clients for the authenticated paths
package resolve
