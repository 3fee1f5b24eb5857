package resolve

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/ScreenSense/internal/shared/types"
	"github.com/GriffinCanCode/ScreenSense/internal/urls"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	return New(Options{
		Timeout:       5 * time.Second,
		MaxConcurrent: 4,
		UserAgent:     "test-agent",
	})
}

func discovered(u string) urls.Discovered {
	return urls.Discovered{Original: u, Normalized: u}
}

const signInPage = `<html><head><title>Sign in - Google Accounts</title></head>
<body>ServiceLogin required</body></html>`

func TestScrapeFallbackOrdering(t *testing.T) {
	var mu sync.Mutex
	var paths []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		mu.Lock()
		paths = append(paths, req.URL.Path)
		mu.Unlock()

		switch req.URL.Path {
		case "/document/d/TESTID01/edit":
			w.Write([]byte(signInPage))
		case "/document/d/TESTID01/view":
			w.Write([]byte(publishedDoc))
		default:
			t.Errorf("unexpected request: %s", req.URL.Path)
		}
	}))
	defer srv.Close()

	r := newTestResolver(t)
	r.docsBase = srv.URL

	res := r.Resolve(context.Background(), discovered("https://docs.google.com/document/d/TESTID01/edit"))

	require.True(t, res.Success)
	assert.Equal(t, types.KindGoogleDocs, res.Kind)
	assert.True(t, res.IsPublic)
	assert.Equal(t, "Quarterly Plan", res.Title)
	assert.Contains(t, res.Content, "First milestone")
	assert.Greater(t, res.WordCount, 0)

	// /edit was blocked by the sign-in wall, /view succeeded, /pub never tried
	require.Equal(t, []string{
		"/document/d/TESTID01/edit",
		"/document/d/TESTID01/view",
	}, paths)
}

func TestScrapeAllCandidatesBlocked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(signInPage))
	}))
	defer srv.Close()

	r := newTestResolver(t)
	r.docsBase = srv.URL

	res := r.Resolve(context.Background(), discovered("https://docs.google.com/document/d/BLOCKED1/edit"))

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "scrape blocked")
	assert.Equal(t, HintShareDocument, res.Hint)
	assert.Equal(t, http.StatusOK, res.HTTPStatus)
}

func TestScrapeNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`<html><body><div></div></body></html>`))
	}))
	defer srv.Close()

	r := newTestResolver(t)
	r.docsBase = srv.URL

	res := r.Resolve(context.Background(), discovered("https://docs.google.com/document/d/EMPTYDOC/edit"))

	assert.False(t, res.Success)
	assert.Equal(t, ErrNoContent.Error(), res.Error)
}

func TestResolveWeb(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`<html><head><title>Example Page</title></head><body><p>hello from the web</p></body></html>`))
	}))
	defer srv.Close()

	r := newTestResolver(t)
	res := r.Resolve(context.Background(), discovered(srv.URL+"/page"))

	require.True(t, res.Success)
	assert.Equal(t, types.KindWeb, res.Kind)
	assert.Equal(t, http.StatusOK, res.HTTPStatus)
	assert.Contains(t, res.Content, "hello from the web")
	assert.Equal(t, "Example Page", res.Title)
}

func TestResolveWebAcceptsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("gone"))
	}))
	defer srv.Close()

	r := newTestResolver(t)
	res := r.Resolve(context.Background(), discovered(srv.URL+"/missing"))

	// status codes are stored, not interpreted
	assert.True(t, res.Success)
	assert.Equal(t, http.StatusNotFound, res.HTTPStatus)
	assert.Equal(t, "gone", res.Content)
}

func TestResolveWebNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {}))
	dead := srv.URL
	srv.Close()

	r := newTestResolver(t)
	res := r.Resolve(context.Background(), discovered(dead+"/unreachable"))

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "fetch")
}

func TestResolveAllPreservesDiscoveryOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		// make the first URL the slowest so completion order differs
		if req.URL.Path == "/a" {
			time.Sleep(50 * time.Millisecond)
		}
		w.Write([]byte("<html><body><p>page " + req.URL.Path + "</p></body></html>"))
	}))
	defer srv.Close()

	r := newTestResolver(t)
	input := []urls.Discovered{
		discovered(srv.URL + "/a"),
		discovered(srv.URL + "/b"),
		discovered(srv.URL + "/c"),
	}
	results := r.ResolveAll(context.Background(), input)

	require.Len(t, results, 3)
	for i, res := range results {
		assert.Equal(t, input[i].Normalized, res.Normalized)
		assert.True(t, res.Success)
	}
}

func TestSpreadsheetWithoutCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`<html><head><title>Budget - Google Sheets</title></head><body><p>preview</p></body></html>`))
	}))
	defer srv.Close()

	r := newTestResolver(t)
	r.docsBase = srv.URL

	res := r.Resolve(context.Background(), discovered("https://docs.google.com/spreadsheets/d/SHEET42/edit"))

	assert.False(t, res.Success)
	assert.Equal(t, types.KindGoogleSheets, res.Kind)
	assert.Equal(t, "Budget", res.Title)
	assert.True(t, res.IsPublic)
	assert.Equal(t, HintShareDocument, res.Hint)
}

func TestResolverMode(t *testing.T) {
	assert.Equal(t, "scrape_only", newTestResolver(t).Mode())
}

func TestFetchPrefixBoundsTransfer(t *testing.T) {
	var gotRange string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotRange = req.Header.Get("Range")
		// a server that ignores Range and streams the whole file
		w.Write([]byte("%PDF-1.7"))
		w.Write(make([]byte, 64*1024))
	}))
	defer srv.Close()

	r := newTestResolver(t)
	prefix, err := r.fetchPrefix(context.Background(), srv.URL+"/big.pdf", sniffLimit)

	require.NoError(t, err)
	assert.Equal(t, "bytes=0-8191", gotRange)
	assert.Len(t, prefix, sniffLimit)
	assert.True(t, strings.HasPrefix(string(prefix), "%PDF-"))
}
