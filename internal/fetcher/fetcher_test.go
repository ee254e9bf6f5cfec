package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><head><title>t</title><style>p{}</style></head><body>
<nav>menu-item</nav>
<p>(1) kitap-lar</p>
<p>book-PL   <b>here</b></p>
<table><tr><td>lie-PROG=3SG</td><td>x</td></tr></table>
<script>var a = b-c;</script>
<p>'the books'</p>
</body></html>`

func newTestFetcher() *Fetcher {
	return New(5*time.Second, 1<<20, "glossary-test")
}

func TestFetch_HTML(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "glossary-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	}))
	defer srv.Close()

	got, err := newTestFetcher().Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "(1) kitap-lar\nbook-PL here\nlie-PROG=3SG x\n'the books'", got)
}

func TestFetch_PlainText(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("dog-PL\n  spaced  \n"))
	}))
	defer srv.Close()

	got, err := newTestFetcher().Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "dog-PL\n  spaced  \n", got)
}

func TestFetch_Errors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := newTestFetcher().Fetch(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "HTTP 404")

	_, err = newTestFetcher().Fetch(context.Background(), "ftp://example.com/x")
	assert.ErrorContains(t, err, "unsupported scheme")
}

func TestFetch_LimitsBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("0123456789"))
	}))
	defer srv.Close()

	got, err := New(time.Second, 4, "x").Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "0123", got)
}

func TestIsURL(t *testing.T) {
	t.Parallel()

	assert.True(t, IsURL("https://example.com"))
	assert.True(t, IsURL(" http://example.com"))
	assert.True(t, IsURL("www.example.com"))
	assert.False(t, IsURL("gloss.txt"))
	assert.False(t, IsURL("-"))
}
