package crow

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"
)

// Injected for testing
var time_Now = time.Now
var os_Stderr io.Writer = os.Stderr

// Logger is the request-logging stage. Its context is a LogEntry: the
// before hook records the request basics, the after hook fills in the
// response fields and commits the entry via WriteLog. Register it first so
// its after hook runs last and sees the final status code and size.
//
// Other stages and handlers can annotate the entry through the aggregate:
//
//	crow.Get[crow.LogEntry](cs).Note["user"] = user.Id()
type Logger struct{}

// LogEntry is the information tracked on a per-request basis by the Logger
// stage.  All fields other than Note are automatically filled in.  The Note
// field is a generic key-value string map for adding additional per-request
// metadata to the logs.
type LogEntry struct {
	RemoteIp     string
	Start        time.Time
	Request      *http.Request
	StatusCode   int
	ResponseSize int
	Elapsed      time.Duration
	Error        error
	Note         map[string]string
	// set to true to suppress logging this request
	Quiet bool
}

func (Logger) BeforeHandle(w *ResponseWriter, r *http.Request, e *LogEntry) {
	e.RemoteIp = remoteIp(r)
	e.Start = time_Now()
	e.Request = r
	e.Note = map[string]string{}
}

func (Logger) AfterHandle(w *ResponseWriter, r *http.Request, e *LogEntry) {
	e.Elapsed = time_Now().Sub(e.Start)
	e.ResponseSize = w.Size
	e.StatusCode = w.Code
	if e.StatusCode == 0 {
		e.StatusCode = http.StatusOK
	}
	WriteLog(*e)
}

// NoLog suppresses log output for this request.  For example:
//
//	// suppress logging of the favicon request to reduce log spam.
//	app.Then(func(w *crow.ResponseWriter, r *http.Request, cs *crow.Contexts) error {
//	    if r.URL.Path == "/favicon.ico" {
//	        crow.NoLog(cs)
//	    }
//	    ...
//	})
//
// This depends on WriteLog respecting the Quiet flag, which the default
// implementation does.  NoLog is a no-op when the Logger stage isn't
// installed.
func NoLog(cs *Contexts) {
	if e, ok := Lookup[LogEntry](cs); ok {
		e.Quiet = true
	}
}

// Some nice escape codes
const (
	_GREEN  = "\033[32m"
	_YELLOW = "\033[33m"
	_RESET  = "\033[0m"
	_RED    = "\033[91m"
)

// WriteLog is called to actually write a LogEntry out to the log. By
// default, it writes to stderr and colors normal requests green, slow
// requests yellow, and errors red.  You can replace the function to adjust
// the formatting or use whatever logging library you like.
var WriteLog = func(e LogEntry) {
	if e.Quiet {
		return
	}
	col, reset := logColors(e)
	fmt.Fprintf(os_Stderr, "%s%s %s \"%s %s\" (%d %dB %s) %s%s\n",
		col,
		e.Start.Format(time.RFC3339), e.RemoteIp,
		e.Request.Method, e.Request.RequestURI,
		e.StatusCode, e.ResponseSize, e.Elapsed,
		e.NotesAndError(),
		reset)
}

// NotesAndError formats the Note values and error (if any) for logging.
func (l LogEntry) NotesAndError() string {
	pairs := make([]string, 0, len(l.Note))
	for k, v := range l.Note {
		pairs = append(pairs, fmt.Sprintf("%s=%q", k, v))
	}
	sort.Strings(pairs)
	msg := strings.Join(pairs, " ")
	if l.Error != nil {
		msg += "\n  ERROR: " + l.Error.Error()
	}
	return msg
}

func logColors(e LogEntry) (start, reset string) {
	col, reset := _GREEN, _RESET
	if e.Elapsed > 30*time.Millisecond {
		col = _YELLOW
	}
	if e.StatusCode >= 400 || e.Error != nil {
		col, reset = _RED, _RESET
	}
	return col, reset
}

// remoteIp extracts the remote IP from the request.  Adapted from code in
// Martini:
//
//	https://github.com/go-martini/martini/blob/1d33529c15f19/logger.go#L14..L20
func remoteIp(r *http.Request) string {
	if addr := r.Header.Get("X-Real-IP"); addr != "" {
		return addr
	} else if addr := r.Header.Get("X-Forwarded-For"); addr != "" {
		return addr
	}
	return r.RemoteAddr
}
