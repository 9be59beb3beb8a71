package crow

import (
	"bufio"
	"bytes"
	"fmt"
	"net"
	"net/http"
)

// NewResponseWriter wraps an http.ResponseWriter in a crow ResponseWriter.
// The App does this automatically for every request; the constructor is
// exported so stage hooks can be driven directly in tests.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w}
}

// ResponseWriter wraps http.ResponseWriter to add tracking of the response
// size and status code, and to buffer the body until the after hooks have
// run. Headers written from an after hook (e.g. Set-Cookie) therefore still
// make it onto the wire.
//
// Unlike the underlying http.ResponseWriter, WriteHeader may be called more
// than once while the response is buffered: the last status code wins, which
// lets error handlers override a status a handler already set.
type ResponseWriter struct {
	http.ResponseWriter
	Size int // The size of the response written so far, in bytes.
	Code int // The status code of the response, or 0 if not written yet.

	body  bytes.Buffer
	ended bool
	wrote bool // status + buffered body already sent (Flush or Hijack)
}

// End marks the response as finished. When called from a before hook it
// signals the App to skip the remaining before hooks and the handler; the
// after hooks of the stages that already ran still execute. Nothing is sent
// to the client until the pipeline completes.
func (w *ResponseWriter) End() { w.ended = true }

// Ended reports whether End has been called for this response.
func (w *ResponseWriter) Ended() bool { return w.ended }

func (w *ResponseWriter) WriteHeader(code int) {
	if w.wrote {
		return // too late, the status is on the wire
	}
	w.Code = code
}

func (w *ResponseWriter) Write(p []byte) (int, error) {
	if w.Code == 0 {
		w.Code = http.StatusOK
	}
	var n int
	var err error
	if w.wrote {
		n, err = w.ResponseWriter.Write(p)
	} else {
		n, err = w.body.Write(p)
	}
	w.Size += n
	return n, err
}

// Flush sends the status code and everything buffered so far to the client
// and switches the writer to pass-through mode. Use it for streaming
// responses; note that headers added by after hooks are lost once a response
// has been flushed.
func (w *ResponseWriter) Flush() {
	w.flush()
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack lets the caller take over the connection, disabling buffering and
// any further writes through this ResponseWriter.
func (w *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("the ResponseWriter doesn't support the Hijacker interface")
	}
	w.wrote = true
	return hijacker.Hijack()
}

// flush writes the recorded status code and the buffered body to the
// underlying ResponseWriter. The App calls it exactly once after the after
// hooks; it is a no-op for responses that were flushed or hijacked.
func (w *ResponseWriter) flush() {
	if w.wrote {
		return
	}
	w.wrote = true
	if w.Code == 0 {
		w.Code = http.StatusOK
	}
	w.ResponseWriter.WriteHeader(w.Code)
	if w.body.Len() > 0 {
		w.ResponseWriter.Write(w.body.Bytes())
		w.body.Reset()
	}
}
