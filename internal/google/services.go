package google

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
	"google.golang.org/api/slides/v1"
)

// Read-only scopes for every API the resolver touches.
var Scopes = []string{
	drive.DriveReadonlyScope,
	docs.DocumentsReadonlyScope,
	sheets.SpreadsheetsReadonlyScope,
	slides.PresentationsReadonlyScope,
}

// Services bundles the authenticated API clients.
type Services struct {
	Drive  *drive.Service
	Docs   *docs.Service
	Sheets *sheets.Service
	Slides *slides.Service
}

// NewFromJSON constructs all four clients from a service-account key.
func NewFromJSON(ctx context.Context, credentials []byte) (*Services, error) {
	jwtCfg, err := google.JWTConfigFromJSON(credentials, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("google: parse service account: %w", err)
	}
	httpClient := jwtCfg.Client(ctx)

	driveSvc, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("google: drive client: %w", err)
	}
	docsSvc, err := docs.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("google: docs client: %w", err)
	}
	sheetsSvc, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("google: sheets client: %w", err)
	}
	slidesSvc, err := slides.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("google: slides client: %w", err)
	}

	return &Services{
		Drive:  driveSvc,
		Docs:   docsSvc,
		Sheets: sheetsSvc,
		Slides: slidesSvc,
	}, nil
}

// Load reads credentials from a file path, or from inline JSON when path is
// empty. Returns (nil, nil) when neither is configured.
func Load(ctx context.Context, path, inline string) (*Services, error) {
	var credentials []byte
	switch {
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("google: read credentials: %w", err)
		}
		credentials = data
	case inline != "":
		credentials = []byte(inline)
	default:
		return nil, nil
	}
	return NewFromJSON(ctx, credentials)
}
