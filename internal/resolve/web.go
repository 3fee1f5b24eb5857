package resolve

import (
	"context"
	"strings"

	"github.com/GriffinCanCode/ScreenSense/internal/shared/types"
)

// resolveWeb issues a plain GET and stores the raw body as content. Every
// status code is accepted; interpretation is deferred to the consumer.
// Only a transport-level failure fails the resolution.
func (r *Resolver) resolveWeb(ctx context.Context, res *types.ResolvedURL) {
	body, status, _, err := r.fetch(ctx, res.Normalized)
	if err != nil {
		setFailure(res, &NetworkError{URL: res.Normalized, Err: err})
		return
	}

	res.Success = true
	res.HTTPStatus = status
	res.Content = body
	res.WordCount = len(strings.Fields(body))
	if title := pageTitle(body); title != "" {
		res.Title = title
	}
}
