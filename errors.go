package crow

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// Error is an error implementation that provides the ability to specify
// three things to the crow error handler:
//   - The HTTP status code that should be used in the response.
//   - The client-facing message that should be sent.  Typically this is a
//     sanitized error message, such as "Internal Server Error".
//   - Internal debugging detail including a log message and the underlying
//     error that should be included in the server logs.
//
// Note that Cause may be nil.
type Error struct {
	Code      int
	ClientMsg string
	LogMsg    string
	Cause     error
}

func (e Error) Error() string {
	return fmt.Sprintf("[%d] %s: %v", e.Code, e.LogMsg, e.Cause)
}

func (e Error) Unwrap() error { return e.Cause }

// Done is a sentinel error value that can be used to interrupt request
// handling without triggering the default error handling.  HandleError will
// not attempt to write any status code or client message, nor will it add
// the error to the log.
var Done = errors.New("<done>")

// ToError converts any error to a crow.Error, filling in the code and
// client message with safe defaults if necessary.
func ToError(err error) Error {
	e, ok := err.(Error)
	if !ok {
		e = Error{LogMsg: "Failure", Cause: err}
	}
	if e.Code == 0 {
		e.Code = http.StatusInternalServerError
	}
	if e.ClientMsg == "" {
		e.ClientMsg = http.StatusText(e.Code)
	}
	return e
}

func handleErrorCommon(cs *Contexts, err error) Error {
	e := ToError(err)
	if l, ok := Lookup[LogEntry](cs); ok {
		msg := fmt.Sprintf("(%d) %s", e.Code, e.LogMsg)
		if e.Cause != nil {
			msg += ": " + e.Cause.Error()
		}
		l.Error = errors.New(msg)
	}
	return e
}

// HandleError is the default error handler, included in crow.TheUsual.
// If the error is a crow.Error, it responds with the specified status code
// and client message.  Otherwise, it responds with a 500.  In both cases,
// the underlying error is added to the request log when the Logger stage is
// installed.
//
// If the error is crow.Done, HandleError does nothing.
func HandleError(w *ResponseWriter, r *http.Request, cs *Contexts, err error) {
	if err == Done {
		return
	}
	e := handleErrorCommon(cs, err)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(e.Code)
	fmt.Fprintln(w, e.ClientMsg)
}

// HandleErrorJson is identical to HandleError except that it responds to the
// client as JSON instead of plain text.  Again, detailed error info is added
// to the request log.
//
// If the error is crow.Done, HandleErrorJson does nothing.
func HandleErrorJson(w *ResponseWriter, r *http.Request, cs *Contexts, err error) {
	if err == Done {
		return
	}
	e := handleErrorCommon(cs, err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Code)
	fmt.Fprintf(w, `{"error":%q}`, e.ClientMsg)
	fmt.Fprintln(w)
}

// PanicError is the error produced when a stage hook or the handler panics.
// It includes the panic'd value (Val), the name of the hook or handler that
// panicked (Stage), and the raw Go stack trace (RawStack).
type PanicError struct {
	Val      interface{}
	Stage    string
	RawStack string
}

func newPanicError(stage string, val interface{}) PanicError {
	var stack [8192]byte
	n := runtime.Stack(stack[:], false)
	return PanicError{Val: val, Stage: stage, RawStack: string(stack[:n])}
}

// FilteredStack returns the stack trace without the crow.* frames that
// implement panic capture, since these are generally just noise.
func (p PanicError) FilteredStack() []string {
	lines := strings.Split(p.RawStack, "\n")
	var filtered []string
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if strings.HasPrefix(line, "github.com/SysLik000/Crow.runHook") ||
			strings.HasPrefix(line, "github.com/SysLik000/Crow.runHandler") ||
			strings.HasPrefix(line, "runtime.gopanic") ||
			strings.HasPrefix(line, "runtime.Stack") {
			i++
			continue
		}
		filtered = append(filtered, line)
	}
	return filtered
}

func (p PanicError) Error() string {
	return fmt.Sprintf("Panic executing %s: %v\n  Filtered call stack:\n    %s",
		p.Stage, p.Val, strings.Join(p.FilteredStack(), "\n    "))
}
