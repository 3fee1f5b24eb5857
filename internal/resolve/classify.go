package resolve

import (
	"regexp"

	"github.com/GriffinCanCode/ScreenSense/internal/shared/types"
)

// Classification is the result of matching a URL against the Drive table.
type Classification struct {
	Kind   types.URLKind
	FileID string
}

var driveTable = []struct {
	re   *regexp.Regexp
	kind types.URLKind
}{
	{regexp.MustCompile(`(?i)docs\.google\.com/document/d/([A-Za-z0-9_-]+)`), types.KindGoogleDocs},
	{regexp.MustCompile(`(?i)docs\.google\.com/spreadsheets/d/([A-Za-z0-9_-]+)`), types.KindGoogleSheets},
	{regexp.MustCompile(`(?i)docs\.google\.com/presentation/d/([A-Za-z0-9_-]+)`), types.KindGoogleSlides},
	{regexp.MustCompile(`(?i)drive\.google\.com/file/d/([A-Za-z0-9_-]+)`), types.KindDriveFile},
	{regexp.MustCompile(`(?i)drive\.google\.com/open\?id=([A-Za-z0-9_-]+)`), types.KindDriveFile},
}

// Classify matches a normalized URL against the Drive pattern table.
// Anything that does not match is a plain web page.
func Classify(url string) Classification {
	for _, entry := range driveTable {
		if m := entry.re.FindStringSubmatch(url); m != nil {
			return Classification{Kind: entry.kind, FileID: m[1]}
		}
	}
	return Classification{Kind: types.KindWeb}
}
