package resolve

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/saintfish/chardet"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/ScreenSense/internal/google"
	"github.com/GriffinCanCode/ScreenSense/internal/logging"
	"github.com/GriffinCanCode/ScreenSense/internal/shared/types"
	"github.com/GriffinCanCode/ScreenSense/internal/urls"
)

// Options configures a Resolver.
type Options struct {
	Timeout        time.Duration
	MaxConcurrent  int
	RequestsPerSec int
	UserAgent      string
	Google         *google.Services // nil means scrape-only mode
	Logger         *logging.Logger

	// Observer, when set, is called once per resolution with its outcome.
	Observer func(kind string, success bool, duration time.Duration)
}

// Resolver fetches textual content for discovered URLs.
type Resolver struct {
	http      *resty.Client
	limiter   *rate.Limiter
	sem       chan struct{}
	google    *google.Services
	log       *logging.Logger
	userAgent string
	observer  func(kind string, success bool, duration time.Duration)

	// Overridable in tests; production value points at Google.
	docsBase string
}

// New creates a resolver with a production HTTP client: retryable transport,
// finite timeout, and every status code accepted without error.
func New(opts Options) *Resolver {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 4
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 2
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = nil

	httpClient := resty.New().
		SetTimeout(opts.Timeout).
		SetTransport(retryClient.HTTPClient.Transport)

	limit := rate.Inf
	if opts.RequestsPerSec > 0 {
		limit = rate.Limit(opts.RequestsPerSec)
	}

	return &Resolver{
		http:      httpClient,
		limiter:   rate.NewLimiter(limit, max(opts.RequestsPerSec, 1)),
		sem:       make(chan struct{}, opts.MaxConcurrent),
		google:    opts.Google,
		log:       opts.Logger.Named("resolve"),
		userAgent: opts.UserAgent,
		observer:  opts.Observer,
		docsBase:  "https://docs.google.com",
	}
}

// Mode reports whether the authenticated API path is available.
func (r *Resolver) Mode() string {
	if r.google != nil {
		return "api"
	}
	return "scrape_only"
}

// Resolve classifies one URL and dispatches to the kind-specific resolver.
// The returned record always carries the classification; failures are
// structured fields, never a Go error.
func (r *Resolver) Resolve(ctx context.Context, d urls.Discovered) types.ResolvedURL {
	res := types.ResolvedURL{
		Original:   d.Original,
		Normalized: d.Normalized,
	}

	c := Classify(d.Normalized)
	res.Kind = c.Kind
	start := time.Now()

	switch c.Kind {
	case types.KindGoogleDocs:
		r.resolveDocument(ctx, &res, c.FileID)
	case types.KindGoogleSheets:
		r.resolveSpreadsheet(ctx, &res, c.FileID)
	case types.KindGoogleSlides:
		r.resolvePresentation(ctx, &res, c.FileID)
	case types.KindDriveFile:
		r.resolveDriveFile(ctx, &res, c.FileID)
	default:
		r.resolveWeb(ctx, &res)
	}

	if r.observer != nil {
		r.observer(string(res.Kind), res.Success, time.Since(start))
	}

	if res.Success {
		r.log.Debug("resolved",
			zap.String("url", d.Normalized),
			zap.String("kind", string(res.Kind)))
	} else {
		r.log.Warn("resolution failed",
			zap.String("url", d.Normalized),
			zap.String("kind", string(res.Kind)),
			zap.String("cause", res.Error))
	}
	return res
}

// ResolveAll resolves a screenshot's URL list with bounded fan-out.
// Completion order is arbitrary; the returned slice preserves discovery
// order so rendered output is reproducible.
func (r *Resolver) ResolveAll(ctx context.Context, discovered []urls.Discovered) []types.ResolvedURL {
	if len(discovered) == 0 {
		return nil
	}

	results := make([]types.ResolvedURL, len(discovered))
	var wg sync.WaitGroup
	for i, d := range discovered {
		wg.Add(1)
		go func(i int, d urls.Discovered) {
			defer wg.Done()
			r.sem <- struct{}{}
			defer func() { <-r.sem }()
			results[i] = r.Resolve(ctx, d)
		}(i, d)
	}
	wg.Wait()
	return results
}

// fetch performs one rate-limited GET and returns the decoded body, status
// code and final URL after redirects.
func (r *Resolver) fetch(ctx context.Context, url string) (string, int, string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", 0, "", err
	}

	req := r.http.R().SetContext(ctx)
	if r.userAgent != "" {
		req.SetHeader("User-Agent", r.userAgent)
	}
	resp, err := req.Get(url)
	if err != nil {
		return "", 0, "", err
	}

	final := url
	if raw := resp.RawResponse; raw != nil && raw.Request != nil && raw.Request.URL != nil {
		final = raw.Request.URL.String()
	}
	body := decodeBody(resp.Body(), resp.Header().Get("Content-Type"))
	return body, resp.StatusCode(), final, nil
}

// fetchPrefix pulls at most limit bytes of a URL. A Range header asks the
// server to bound the transfer; the limited reader bounds it regardless.
func (r *Resolver) fetchPrefix(ctx context.Context, url string, limit int64) ([]byte, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req := r.http.R().SetContext(ctx).SetDoNotParseResponse(true)
	if r.userAgent != "" {
		req.SetHeader("User-Agent", r.userAgent)
	}
	req.SetHeader("Range", fmt.Sprintf("bytes=0-%d", limit-1))
	resp, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	body := resp.RawBody()
	defer body.Close()
	return io.ReadAll(io.LimitReader(body, limit))
}

// decodeBody converts a response body to UTF-8, using the declared charset
// when present and byte-level detection when not.
func decodeBody(raw []byte, contentType string) string {
	if len(raw) == 0 {
		return ""
	}
	if reader, err := charset.NewReader(bytes.NewReader(raw), contentType); err == nil {
		if decoded, err := io.ReadAll(reader); err == nil {
			return string(decoded)
		}
	}
	if best, err := chardet.NewTextDetector().DetectBest(raw); err == nil {
		if reader, err := charset.NewReaderLabel(best.Charset, bytes.NewReader(raw)); err == nil {
			if decoded, err := io.ReadAll(reader); err == nil {
				return string(decoded)
			}
		}
	}
	return string(raw)
}

// setFailure records a structured failure on the resolution record.
func setFailure(res *types.ResolvedURL, err error) {
	if err == nil {
		err = ErrNoContent
	}
	res.Success = false
	res.Error = err.Error()

	var blocked *ScrapeBlockedError
	var auth *AuthError
	switch {
	case errors.As(err, &blocked):
		res.HTTPStatus = blocked.Status
		res.Hint = HintShareDocument
	case errors.As(err, &auth):
		res.Hint = HintShareDocument
	}
}
