package urls

import (
	"net/url"
	"strings"
)

const minCandidateLength = 10

// trailing punctuation that OCR drags in from surrounding prose
const trailingJunk = ".,;:!?'\")]}>"

// Discovered pairs a raw matched substring with its canonical form.
type Discovered struct {
	Original   string `json:"original"`
	Normalized string `json:"normalized"`
}

// Discover finds and normalizes every URL in the given text. Duplicates are
// removed by normalized form, keeping the first occurrence so downstream
// records are reproducible. Empty text yields an empty result, never an
// error.
func Discover(text string) []Discovered {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	seen := make(map[string]bool)
	var found []Discovered

	for _, re := range discoveryPatterns {
		for _, match := range re.FindAllString(text, -1) {
			normalized, ok := Normalize(match)
			if !ok || seen[normalized] {
				continue
			}
			seen[normalized] = true
			found = append(found, Discovered{Original: match, Normalized: normalized})
		}
	}
	return found
}

// Extract returns only the normalized forms.
func Extract(text string) []string {
	discovered := Discover(text)
	if len(discovered) == 0 {
		return nil
	}
	out := make([]string, len(discovered))
	for i, d := range discovered {
		out[i] = d.Normalized
	}
	return out
}

// Normalize repairs one raw candidate into canonical form. The second
// return is false when the candidate fails validation and must be
// discarded. Normalize is idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) (string, bool) {
	// OCR inserts spaces inside URLs; a real URL never contains whitespace
	s := anySpace.ReplaceAllString(strings.TrimSpace(raw), "")
	s = strings.TrimRight(s, trailingJunk)
	if s == "" {
		return "", false
	}

	// Repair a mangled scheme separator (https:/x, https//x, https:x)
	s = schemeRepair.ReplaceAllString(s, "$1://")

	// Collapse duplicate slashes outside the scheme
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[:i+3] + dupSlash.ReplaceAllString(s[i+3:], "/")
	} else {
		s = dupSlash.ReplaceAllString(s, "/")
	}

	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		// already schemed
	case strings.HasPrefix(lower, "www."), strings.HasPrefix(lower, "docs."), strings.HasPrefix(lower, "drive."):
		s = "https://" + s
	case strings.HasPrefix(lower, "/document/d/"):
		s = "https://docs.google.com" + s
	case strings.HasPrefix(lower, "/file/d/"):
		s = "https://drive.google.com" + s
	default:
		return "", false
	}

	s = canonicalizeGoogle(s)

	if !valid(s) {
		return "", false
	}
	return s, true
}

// canonicalizeGoogle strips /edit, /view and /preview suffixes plus query
// strings from Google URLs, then re-appends /edit when a document id was
// found. Non-Google URLs pass through untouched.
func canonicalizeGoogle(s string) string {
	u, err := url.Parse(s)
	if err != nil {
		return s
	}
	host := strings.ToLower(u.Hostname())
	if host != "docs.google.com" && host != "drive.google.com" {
		return s
	}

	// open?id= carries the file id in the query; rewrite before dropping it
	if host == "drive.google.com" && strings.EqualFold(u.Path, "/open") {
		if id := u.Query().Get("id"); id != "" {
			return "https://drive.google.com/file/d/" + id + "/edit"
		}
	}

	u.RawQuery = ""
	u.Fragment = ""

	if m := docsEditorPath.FindStringSubmatch(u.Path); m != nil {
		u.Path = m[1] + "/edit"
	} else if m := driveFilePath.FindStringSubmatch(u.Path); m != nil {
		u.Path = m[1] + "/edit"
	} else {
		for _, suffix := range []string{"/edit", "/view", "/preview"} {
			u.Path = strings.TrimSuffix(u.Path, suffix)
		}
	}
	return u.String()
}

// valid applies the generic rejection rules from the discovery contract.
func valid(s string) bool {
	if len(s) < minCandidateLength {
		return false
	}
	lower := strings.ToLower(s)
	for _, scheme := range []string{"javascript:", "mailto:", "data:"} {
		if strings.Contains(lower, scheme) {
			return false
		}
	}

	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return strings.Contains(u.Hostname(), ".")
}
