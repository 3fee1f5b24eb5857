package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/GriffinCanCode/ScreenSense/internal/shared/types"
)

// resolvePresentation fetches all slides through the Slides API and
// flattens each slide's shape text runs into one string per slide.
func (r *Resolver) resolvePresentation(ctx context.Context, res *types.ResolvedURL, fileID string) {
	viewURL := r.docsBase + "/presentation/d/" + fileID + "/edit"

	if r.google == nil {
		r.publicMetadata(ctx, res, viewURL, &AuthError{Err: errors.New("no api credentials configured")})
		return
	}

	presentation, err := r.google.Slides.Presentations.Get(fileID).Context(ctx).Do()
	if err != nil {
		r.publicMetadata(ctx, res, viewURL, classifyAPIError(err))
		return
	}

	res.Title = presentation.Title

	var parts []string
	for i, slide := range presentation.Slides {
		var b strings.Builder
		for _, element := range slide.PageElements {
			if element.Shape == nil || element.Shape.Text == nil {
				continue
			}
			for _, te := range element.Shape.Text.TextElements {
				if te.TextRun != nil {
					b.WriteString(te.TextRun.Content)
				}
			}
		}
		if text := strings.TrimSpace(b.String()); text != "" {
			parts = append(parts, fmt.Sprintf("--- Slide %d ---\n%s", i+1, text))
		}
	}

	res.Success = true
	res.Content = strings.Join(parts, "\n\n")
	res.WordCount = len(strings.Fields(res.Content))
}
