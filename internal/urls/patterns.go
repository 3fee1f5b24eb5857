package urls

import "regexp"

// candidate character class: anything that can legitimately appear in a URL,
// stopping at whitespace and common HTML/quote delimiters
const tail = `[^\s"'<>]*`

// discoveryPatterns runs most specific first. Google editor fragments
// tolerate single OCR-inserted spaces around dots and slashes; the general
// patterns do not, to keep false positives down.
var discoveryPatterns = []*regexp.Regexp{
	// Google editor URLs, with or without scheme
	regexp.MustCompile(`(?i)(?:https?\s*:\s*/{1,2}\s*)?docs\s*\.\s*google\s*\.\s*com\s*/\s*(?:document|spreadsheets|presentation)\s*/\s*d\s*/\s*[A-Za-z0-9_-]+` + tail),

	// Drive file URLs, including the open?id= variant
	regexp.MustCompile(`(?i)(?:https?\s*:\s*/{1,2}\s*)?drive\s*\.\s*google\s*\.\s*com\s*/\s*(?:file\s*/\s*d\s*/\s*[A-Za-z0-9_-]+` + tail + `|open\s*\?\s*id\s*=\s*[A-Za-z0-9_-]+)`),

	// Bare document/file paths with a plausible id
	regexp.MustCompile(`(?i)/(?:document|file)/d/[A-Za-z0-9_-]{10,}` + tail),

	// Any http(s) URL
	regexp.MustCompile(`(?i)https?\s*:\s*/{1,2}` + `[^\s"'<>]+`),

	// Scheme-less www./docs./drive. prefixes
	regexp.MustCompile(`(?i)\b(?:www|docs|drive)\.[^\s"'<>]+\.[^\s"'<>]+`),
}

var (
	anySpace     = regexp.MustCompile(`\s+`)
	schemeRepair = regexp.MustCompile(`(?i)^(https?)(?::/{0,3}|/{2,3})`)
	dupSlash     = regexp.MustCompile(`/{2,}`)

	docsEditorPath = regexp.MustCompile(`(?i)^(/(?:document|spreadsheets|presentation)/d/[A-Za-z0-9_-]+)`)
	driveFilePath  = regexp.MustCompile(`(?i)^(/file/d/[A-Za-z0-9_-]+)`)
)
