package resolve

import (
	"context"
	"errors"

	"github.com/gabriel-vasile/mimetype"
	"google.golang.org/api/googleapi"

	"github.com/GriffinCanCode/ScreenSense/internal/shared/types"
)

// Google-native MIME types that re-dispatch to a structured resolver.
const (
	mimeGoogleDoc    = "application/vnd.google-apps.document"
	mimeGoogleSheet  = "application/vnd.google-apps.spreadsheet"
	mimeGoogleSlides = "application/vnd.google-apps.presentation"
)

// sniffLimit bounds how much of a public download is pulled for type
// detection.
const sniffLimit = 8192

// resolveDriveFile fetches file metadata through the Drive API. Google
// editor types re-dispatch to their structured resolver; binary types get
// a direct-download URL and metadata only.
func (r *Resolver) resolveDriveFile(ctx context.Context, res *types.ResolvedURL, fileID string) {
	if r.google != nil {
		file, err := r.google.Drive.Files.Get(fileID).
			Fields("id, name, mimeType, size, webViewLink").
			SupportsAllDrives(true).
			Context(ctx).Do()
		if err == nil {
			res.Title = file.Name
			res.MimeType = file.MimeType

			switch file.MimeType {
			case mimeGoogleDoc:
				r.resolveDocument(ctx, res, fileID)
			case mimeGoogleSheet:
				r.resolveSpreadsheet(ctx, res, fileID)
			case mimeGoogleSlides:
				r.resolvePresentation(ctx, res, fileID)
			default:
				// pdf, docx, xlsx, pptx, plain text and friends: no
				// content extraction, metadata plus download link
				res.Success = true
				res.DownloadURL = driveDownloadURL(fileID)
			}
			return
		}
		r.publicDriveFallback(ctx, res, fileID, classifyAPIError(err))
		return
	}
	r.publicDriveFallback(ctx, res, fileID, &AuthError{Err: errors.New("no api credentials configured")})
}

// publicDriveFallback derives what it can from the public file page: a
// title from <title>, and a MIME type sniffed from the first bytes of the
// public download.
func (r *Resolver) publicDriveFallback(ctx context.Context, res *types.ResolvedURL, fileID string, cause error) {
	viewURL := "https://drive.google.com/file/d/" + fileID + "/view"

	body, status, finalURL, err := r.fetch(ctx, viewURL)
	if err != nil || blockedReason(finalURL, body) != "" {
		if res.HTTPStatus == 0 {
			res.HTTPStatus = status
		}
		setFailure(res, cause)
		return
	}

	if title := pageTitle(body); title != "" {
		res.Title = title
	}
	res.IsPublic = true
	res.DownloadURL = driveDownloadURL(fileID)

	if prefix, err := r.fetchPrefix(ctx, res.DownloadURL, sniffLimit); err == nil && len(prefix) > 0 {
		res.MimeType = mimetype.Detect(prefix).String()
	}

	res.Success = true
}

// driveDownloadURL builds the direct-download form for a Drive file id.
func driveDownloadURL(fileID string) string {
	return "https://drive.google.com/uc?export=download&id=" + fileID
}

// classifyAPIError wraps credential and permission failures as AuthError so
// callers pick the scrape fallback and attach the share hint.
func classifyAPIError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && (apiErr.Code == 401 || apiErr.Code == 403) {
		return &AuthError{Err: err}
	}
	return err
}
