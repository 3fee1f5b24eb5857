package contextfile

import (
	"os"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/ScreenSense/internal/shared/types"
)

var screenshotMarker = regexp.MustCompile(`(?m)^SCREENSHOT \d+$`)

func testSession(n int) *types.Session {
	s := &types.Session{
		ID:        "S1",
		CreatedAt: time.Date(2025, 8, 24, 10, 0, 0, 0, time.UTC),
	}
	for i := 0; i < n; i++ {
		s.Screenshots = append(s.Screenshots, &types.Screenshot{
			ID:         "shot",
			ImagePath:  "screenshots/cap.png",
			CapturedAt: s.CreatedAt.Add(time.Duration(i) * time.Minute),
			OCRText:    "some text",
		})
	}
	return s
}

func TestRenderHeaderAndMarkers(t *testing.T) {
	a := New(t.TempDir())
	s := testSession(3)

	path, err := a.Render(s)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(data)

	lines := strings.Split(body, "\n")
	assert.Equal(t, "SESSION CONTEXT", lines[0])
	assert.Contains(t, body, "Last Updated: ")

	markers := screenshotMarker.FindAllString(body, -1)
	require.Equal(t, []string{"SCREENSHOT 1", "SCREENSHOT 2", "SCREENSHOT 3"}, markers)
}

func TestRenderBodyIdempotent(t *testing.T) {
	s := testSession(2)
	now := time.Date(2025, 8, 24, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, renderBody(s, now), renderBody(s, now))
}

func TestRenderGrowsStrictlyWithScreenshots(t *testing.T) {
	a := New(t.TempDir())
	s := testSession(0)

	prev := -1
	for i := 1; i <= 3; i++ {
		s.Screenshots = append(s.Screenshots, &types.Screenshot{
			ID:         "shot",
			ImagePath:  "screenshots/cap.png",
			CapturedAt: time.Now(),
			OCRText:    "text of the capture",
		})
		path, err := a.Render(s)
		require.NoError(t, err)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, int(info.Size()), prev)
		prev = int(info.Size())

		data, _ := os.ReadFile(path)
		assert.Len(t, screenshotMarker.FindAllString(string(data), -1), i)
	}
}

func TestRenderEmptyOCRHasNoLinkSection(t *testing.T) {
	s := testSession(0)
	s.Screenshots = append(s.Screenshots, &types.Screenshot{
		ID:         "shot",
		ImagePath:  "screenshots/cap.png",
		CapturedAt: time.Now(),
		OCRText:    "",
	})

	body := renderBody(s, time.Now())
	assert.Contains(t, body, "(no text extracted)")
	assert.NotContains(t, body, "--- LINKS ---")
}

func TestRenderLinkSummaries(t *testing.T) {
	s := testSession(0)
	s.Screenshots = append(s.Screenshots, &types.Screenshot{
		ID:         "shot",
		ImagePath:  "screenshots/cap.png",
		CapturedAt: time.Now(),
		OCRText:    "see docs",
		URLs: []types.ResolvedURL{
			{
				Normalized: "https://docs.google.com/document/d/OK1234567/edit",
				Kind:       types.KindGoogleDocs,
				Success:    true,
				Title:      "Plan",
				Content:    "Line one\nLine two",
			},
			{
				Normalized: "https://docs.google.com/document/d/DENIED123/edit",
				Kind:       types.KindGoogleDocs,
				Success:    false,
				Error:      "scrape blocked at .../edit: redirected to sign-in",
				Hint:       "share the document with the service account",
			},
		},
	})

	body := renderBody(s, time.Now())
	assert.Contains(t, body, "--- LINKS ---")
	assert.Contains(t, body, "[1] https://docs.google.com/document/d/OK1234567/edit (google_docs)")
	assert.Contains(t, body, "    Title: Plan")
	assert.Contains(t, body, "    Line one\n    Line two")
	assert.Contains(t, body, "    ERROR: scrape blocked")
	assert.Contains(t, body, "    Hint: share the document")
}

func TestPathIsDeterministic(t *testing.T) {
	a := New("/tmp/contexts")
	assert.Equal(t, a.Path("S1"), a.Path("S1"))
	assert.Equal(t, "/tmp/contexts/a_b-context.txt", a.Path("a/b"))
}
