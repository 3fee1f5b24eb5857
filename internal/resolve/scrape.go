package resolve

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/ScreenSense/internal/shared/types"
)

// scrapeCandidates are tried in order; the chain stops at the first
// response that is not a sign-in wall and yields content.
var scrapeCandidates = []string{"/edit", "/view", "/pub"}

// contentSelectors are probed most specific first: the Docs editor
// container, the published-doc wrappers, ARIA roles, finally body.
var contentSelectors = []string{
	".kix-appview-editor",
	"#contents",
	".doc-content",
	"[role='document']",
	"[role='main']",
	"body",
}

// signInMarkers identify a Google sign-in or access-denied page.
var signInMarkers = []string{
	"accounts.google.com",
	"servicelogin",
	"you need access",
	"request access",
	"access denied",
}

// scrapeDocument walks the public-view candidates for a document id,
// extracting readable text from the first page that is not blocked.
func (r *Resolver) scrapeDocument(ctx context.Context, res *types.ResolvedURL, fileID string) {
	base := r.docsBase + "/document/d/" + fileID
	var lastErr error

	for _, suffix := range scrapeCandidates {
		candidate := base + suffix

		body, status, finalURL, err := r.fetch(ctx, candidate)
		if err != nil {
			lastErr = &NetworkError{URL: candidate, Err: err}
			continue
		}
		if reason := blockedReason(finalURL, body); reason != "" {
			lastErr = &ScrapeBlockedError{URL: candidate, Status: status, Reason: reason}
			r.log.Debug("scrape candidate blocked",
				zap.String("url", candidate),
				zap.String("reason", reason))
			continue
		}

		text, err := extractReadableText(body)
		if err != nil {
			lastErr = err
			continue
		}

		res.Success = true
		res.IsPublic = true
		res.Content = text
		res.WordCount = len(strings.Fields(text))
		if title := pageTitle(body); title != "" {
			res.Title = title
		}
		return
	}

	setFailure(res, lastErr)
}

// extractReadableText probes the selector cascade and returns paragraphs
// joined with blank lines. When no selector yields paragraphs it scans raw
// text nodes longer than three words; zero fragments is ErrNoContent.
func extractReadableText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	for _, selector := range contentSelectors {
		container := doc.Find(selector).First()
		if container.Length() == 0 {
			continue
		}

		var fragments []string
		container.Find("p, h1, h2, h3, h4, h5, h6, li").Each(func(_ int, s *goquery.Selection) {
			if text := strings.TrimSpace(s.Text()); text != "" {
				fragments = append(fragments, text)
			}
		})
		if len(fragments) > 0 {
			return strings.Join(fragments, "\n\n"), nil
		}
	}

	if fragments := rawTextFragments(html); len(fragments) > 0 {
		return strings.Join(fragments, "\n\n"), nil
	}
	return "", ErrNoContent
}

// rawTextFragments is the last-resort scan: every text node carrying more
// than three words, in document order.
func rawTextFragments(html string) []string {
	root, err := htmlquery.Parse(strings.NewReader(html))
	if err != nil {
		return nil
	}
	nodes, err := htmlquery.QueryAll(root, "//body//text()[not(ancestor::script) and not(ancestor::style)]")
	if err != nil {
		return nil
	}

	var fragments []string
	for _, node := range nodes {
		text := strings.TrimSpace(node.Data)
		if len(strings.Fields(text)) > 3 {
			fragments = append(fragments, text)
		}
	}
	return fragments
}

// blockedReason returns a non-empty reason when the response is a sign-in
// redirect or access-denied notice.
func blockedReason(finalURL, body string) string {
	if strings.Contains(strings.ToLower(finalURL), "accounts.google.com") {
		return "redirected to sign-in"
	}
	probe := strings.ToLower(body)
	if len(probe) > 4096 {
		probe = probe[:4096]
	}
	for _, marker := range signInMarkers {
		if strings.Contains(probe, marker) {
			return "page requires sign-in (" + marker + ")"
		}
	}
	return ""
}

// pageTitle pulls the <title> tag, trimming Google's product suffix.
func pageTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	for _, suffix := range []string{" - Google Docs", " - Google Sheets", " - Google Slides", " - Google Drive"} {
		title = strings.TrimSuffix(title, suffix)
	}
	return title
}

// publicMetadata fetches the public HTML view of a Google file and derives
// a title from it. Content stays unavailable; the record fails with the
// original cause plus a remediation hint, but keeps whatever metadata the
// public page exposed.
func (r *Resolver) publicMetadata(ctx context.Context, res *types.ResolvedURL, viewURL string, cause error) {
	body, status, finalURL, err := r.fetch(ctx, viewURL)
	if err == nil && blockedReason(finalURL, body) == "" {
		if title := pageTitle(body); title != "" {
			res.Title = title
			res.IsPublic = true
		}
	}
	if res.HTTPStatus == 0 && status != 0 {
		res.HTTPStatus = status
	}
	setFailure(res, cause)
}
