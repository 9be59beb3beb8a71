package crow

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func gzipApp(h Handler) *App {
	app := New()
	Use[GzipContext](app, Gzip{})
	return app.Then(h)
}

func gunzip(t *testing.T, data io.Reader) string {
	t.Helper()
	gz, err := gzip.NewReader(data)
	assert.NoError(t, err)
	out, err := io.ReadAll(gz)
	assert.NoError(t, err)
	return string(out)
}

func TestGzipCompressesWhenAccepted(t *testing.T) {
	app := gzipApp(func(w *ResponseWriter, r *http.Request, cs *Contexts) error {
		io.WriteString(w, strings.Repeat("hello gzip! ", 20))
		return nil
	})

	rec := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	app.ServeHTTP(rec, req)

	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	assert.Equal(t, "Accept-Encoding", rec.Header().Get("Vary"))
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))
	assert.Equal(t, strings.Repeat("hello gzip! ", 20), gunzip(t, rec.Body))
}

func TestGzipSkippedWithoutAcceptHeader(t *testing.T) {
	app := gzipApp(func(w *ResponseWriter, r *http.Request, cs *Contexts) error {
		io.WriteString(w, "plain")
		return nil
	})

	rec := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	app.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Equal(t, "plain", rec.Body.String())
}

func TestGzipSkipFlag(t *testing.T) {
	app := gzipApp(func(w *ResponseWriter, r *http.Request, cs *Contexts) error {
		Get[GzipContext](cs).Skip = true
		io.WriteString(w, "precompressed bytes")
		return nil
	})

	rec := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	app.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Equal(t, "precompressed bytes", rec.Body.String())
}

func TestGzipMinSize(t *testing.T) {
	app := New()
	Use[GzipContext](app, Gzip{MinSize: 1024})
	app.Then(func(w *ResponseWriter, r *http.Request, cs *Contexts) error {
		io.WriteString(w, "tiny")
		return nil
	})

	rec := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	app.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Equal(t, "tiny", rec.Body.String())
}

func TestGzipLeavesEmptyBodiesAlone(t *testing.T) {
	app := gzipApp(func(w *ResponseWriter, r *http.Request, cs *Contexts) error {
		w.WriteHeader(http.StatusNoContent)
		return nil
	})

	rec := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	app.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
