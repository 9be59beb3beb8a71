package crow

import (
	"bytes"
	"compress/gzip"
	"net/http"
	"strings"
)

const (
	headerAcceptEncoding  = "Accept-Encoding"
	headerContentEncoding = "Content-Encoding"
	headerContentLength   = "Content-Length"
	headerContentType     = "Content-Type"
	headerVary            = "Vary"
)

// Gzip is a stage that compresses the buffered response body during the
// after phase for clients that accept gzip. Register it after the Logger
// stage so the logger records the compressed size:
//
//	crow.Use[crow.GzipContext](app, crow.Gzip{})
//
// Responses that were flushed or hijacked are left alone, as are responses
// that already carry a Content-Encoding. Note that this does NOT auto-detect
// already-compressed content types (e.g. jpg images); use GzipContext.Skip
// for those routes.
type Gzip struct {
	// MinSize is the minimum body size, in bytes, worth compressing.
	// Zero compresses everything.
	MinSize int
}

// GzipContext is the Gzip stage's per-request context.
type GzipContext struct {
	// Skip disables compression for this request. Handlers may set it at
	// any point before the Gzip stage's after hook runs.
	Skip bool
	// Compressed reports whether the response body was gzip'd.
	Compressed bool

	accepted bool
}

func (Gzip) BeforeHandle(w *ResponseWriter, r *http.Request, ctx *GzipContext) {
	ctx.accepted = strings.Contains(r.Header.Get(headerAcceptEncoding), "gzip")
}

func (g Gzip) AfterHandle(w *ResponseWriter, r *http.Request, ctx *GzipContext) {
	if ctx.Skip || !ctx.accepted || w.wrote || w.body.Len() < g.MinSize || w.body.Len() == 0 {
		return
	}
	if w.Header().Get(headerContentEncoding) != "" {
		return
	}

	if w.Header().Get(headerContentType) == "" {
		w.Header().Set(headerContentType, http.DetectContentType(w.body.Bytes()))
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	gz.Write(w.body.Bytes()) // writes to a bytes.Buffer cannot fail
	gz.Close()

	w.Header().Set(headerContentEncoding, "gzip")
	w.Header().Set(headerVary, headerAcceptEncoding)
	w.Header().Del(headerContentLength)
	w.body.Reset()
	w.body.Write(buf.Bytes())
	w.Size = buf.Len()
	ctx.Compressed = true
}
