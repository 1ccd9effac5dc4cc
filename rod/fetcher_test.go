//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/newsdesk"
	"github.com/fwojciec/newsdesk/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const liveBlogHTML = `<!DOCTYPE html>
<html>
<head><title>Live: Election Night</title></head>
<body>
<article id="story">Loading...</article>
<script>
document.getElementById('story').textContent = 'Polls have closed across the region';
</script>
</body>
</html>`

func newBrowserFetcher(t *testing.T, opts ...rod.Option) *rod.Fetcher {
	t.Helper()

	fetcher, err := rod.NewFetcher(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fetcher.Close() })
	return fetcher
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns script-rendered HTML", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(liveBlogHTML))
		}))
		defer srv.Close()

		result, err := newBrowserFetcher(t).Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Contains(t, result.HTML, "Polls have closed across the region")
		assert.NotContains(t, result.HTML, "Loading...")
		assert.Equal(t, http.StatusOK, result.StatusCode)
		assert.False(t, result.FetchedAt.IsZero())
	})

	t.Run("reports the final URL after redirects", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/short", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/2024/05/election-night", http.StatusFound)
		})
		mux.HandleFunc("/2024/05/election-night", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(liveBlogHTML))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		result, err := newBrowserFetcher(t).Fetch(context.Background(), srv.URL+"/short")

		require.NoError(t, err)
		assert.Equal(t, srv.URL+"/2024/05/election-night", result.URL)
	})

	t.Run("maps error statuses to fetch errors", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer srv.Close()

		_, err := newBrowserFetcher(t).Fetch(context.Background(), srv.URL)

		var fe *newsdesk.FetchError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, newsdesk.FetchHTTPError, fe.Kind)
		assert.Equal(t, http.StatusNotFound, fe.StatusCode)
		assert.Equal(t, newsdesk.ENOTFOUND, newsdesk.ErrorCode(err))
	})

	t.Run("times out slow pages", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(500 * time.Millisecond)
			_, _ = w.Write([]byte(`<html><body>late edition</body></html>`))
		}))
		defer srv.Close()

		_, err := newBrowserFetcher(t, rod.WithFetchTimeout(100*time.Millisecond)).Fetch(context.Background(), srv.URL)

		require.Error(t, err)
		assert.Equal(t, newsdesk.ETIMEOUT, newsdesk.ErrorCode(err))
	})

	t.Run("returns canceled contexts unchanged", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newBrowserFetcher(t).Fetch(ctx, "http://example.com")

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFetcher_Close(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)

	require.NoError(t, fetcher.Close())
	require.NoError(t, fetcher.Close())

	_, err = fetcher.Fetch(context.Background(), "http://example.com")
	assert.Equal(t, newsdesk.EINVALID, newsdesk.ErrorCode(err))
}
