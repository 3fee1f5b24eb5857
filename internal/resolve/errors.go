package resolve

import (
	"errors"
	"fmt"
)

// ErrNoContent is the terminal failure when every scrape selector and the
// raw text-node fallback came back empty.
var ErrNoContent = errors.New("could not extract meaningful content")

// HintShareDocument is the remediation hint attached to permission failures.
const HintShareDocument = "share the document with the service account, or set link sharing to anyone with the link"

// AuthError marks a Drive API credential or permission failure. It triggers
// the scrape fallback rather than failing the resolution outright.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string { return fmt.Sprintf("drive api auth: %v", e.Err) }
func (e *AuthError) Unwrap() error { return e.Err }

// ScrapeBlockedError marks a sign-in wall or access-denied page.
type ScrapeBlockedError struct {
	URL    string
	Status int
	Reason string
}

func (e *ScrapeBlockedError) Error() string {
	return fmt.Sprintf("scrape blocked at %s: %s", e.URL, e.Reason)
}

// NetworkError marks a timeout or connection failure on an outbound call.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("fetch %s: %v", e.URL, e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }
