package contextfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/GriffinCanCode/ScreenSense/internal/shared/types"
)

const (
	ocrExcerptLimit     = 2000
	contentExcerptLimit = 1000
)

// Assembler writes session context files into one directory.
type Assembler struct {
	dir string
}

// New creates an assembler rooted at dir. The directory is created on
// demand at render time.
func New(dir string) *Assembler {
	return &Assembler{dir: dir}
}

// Path returns the deterministic artifact path for a session id.
func (a *Assembler) Path(sessionID string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '_'
		}
		return r
	}, sessionID)
	return filepath.Join(a.dir, safe+"-context.txt")
}

// Render rebuilds the context file from the session's current state and
// returns its path. Rendering twice with no new screenshots produces
// byte-identical bodies except the Last Updated line.
func (a *Assembler) Render(s *types.Session) (string, error) {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return "", fmt.Errorf("contextfile: create dir: %w", err)
	}

	path := a.Path(s.ID)
	body := renderBody(s, time.Now())
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("contextfile: write: %w", err)
	}
	return path, nil
}

// renderBody produces the whole artifact. Factored from Render so tests
// can pin the clock.
func renderBody(s *types.Session, now time.Time) string {
	var b strings.Builder

	b.WriteString("SESSION CONTEXT\n")
	b.WriteString(strings.Repeat("=", 64) + "\n")
	fmt.Fprintf(&b, "Session ID: %s\n", s.ID)
	fmt.Fprintf(&b, "Started: %s\n", s.CreatedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Last Updated: %s\n", now.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Screenshots Processed: %d\n", len(s.Screenshots))

	for i, shot := range s.Screenshots {
		b.WriteString("\n")
		fmt.Fprintf(&b, "SCREENSHOT %d\n", i+1)
		fmt.Fprintf(&b, "Captured: %s\n", shot.CapturedAt.UTC().Format(time.RFC3339))
		fmt.Fprintf(&b, "Source: %s\n", shot.ImagePath)

		b.WriteString("\n--- OCR TEXT ---\n")
		if text := strings.TrimSpace(shot.OCRText); text != "" {
			b.WriteString(excerpt(text, ocrExcerptLimit) + "\n")
		} else if shot.OCRFailed {
			b.WriteString("(ocr failed, no text extracted)\n")
		} else {
			b.WriteString("(no text extracted)\n")
		}

		if len(shot.URLs) > 0 {
			b.WriteString("\n--- LINKS ---\n")
			for j, u := range shot.URLs {
				writeLink(&b, j+1, u)
			}
		}

		if shot.VisualDescription != "" {
			b.WriteString("\n--- VISUAL DESCRIPTION ---\n")
			b.WriteString(strings.TrimSpace(shot.VisualDescription) + "\n")
		}
	}

	return b.String()
}

// writeLink renders one resolved URL summary.
func writeLink(b *strings.Builder, n int, u types.ResolvedURL) {
	fmt.Fprintf(b, "[%d] %s (%s)\n", n, u.Normalized, u.Kind)
	if u.Title != "" {
		fmt.Fprintf(b, "    Title: %s\n", u.Title)
	}
	if !u.Success {
		fmt.Fprintf(b, "    ERROR: %s\n", u.Error)
		if u.Hint != "" {
			fmt.Fprintf(b, "    Hint: %s\n", u.Hint)
		}
		return
	}
	if u.DownloadURL != "" {
		fmt.Fprintf(b, "    Download: %s (%s)\n", u.DownloadURL, u.MimeType)
	}
	if content := strings.TrimSpace(u.Content); content != "" {
		indented := strings.ReplaceAll(excerpt(content, contentExcerptLimit), "\n", "\n    ")
		fmt.Fprintf(b, "    %s\n", indented)
	}
}

// excerpt truncates at a rune boundary with a marker.
func excerpt(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "... [truncated]"
}
