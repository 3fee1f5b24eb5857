package resolve

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/docs/v1"

	"github.com/GriffinCanCode/ScreenSense/internal/shared/types"
)

// resolveDocument tries the structured Docs API first and falls back to
// scraping the public views on any API failure.
func (r *Resolver) resolveDocument(ctx context.Context, res *types.ResolvedURL, fileID string) {
	if r.google != nil {
		doc, err := r.google.Docs.Documents.Get(fileID).Context(ctx).Do()
		if err == nil {
			text, structure := flattenDocument(doc)
			res.Success = true
			res.Title = doc.Title
			res.Content = text
			res.Structure = structure
			res.WordCount = len(strings.Fields(text))
			return
		}
		r.log.Warn("docs api failed, falling back to scrape",
			zap.String("file_id", fileID),
			zap.Error(classifyAPIError(err)))
	}
	r.scrapeDocument(ctx, res, fileID)
}

// flattenDocument walks the paragraph/run tree into plain text and records
// the heading styles encountered, in document order.
func flattenDocument(doc *docs.Document) (string, []string) {
	if doc.Body == nil {
		return "", nil
	}

	var b strings.Builder
	var structure []string
	for _, element := range doc.Body.Content {
		p := element.Paragraph
		if p == nil {
			continue
		}
		if p.ParagraphStyle != nil {
			style := p.ParagraphStyle.NamedStyleType
			if style != "" && style != "NORMAL_TEXT" {
				structure = append(structure, style)
			}
		}
		for _, pe := range p.Elements {
			if pe.TextRun != nil {
				b.WriteString(pe.TextRun.Content)
			}
		}
	}
	return strings.TrimSpace(b.String()), structure
}
