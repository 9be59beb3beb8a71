package crow

import (
	"fmt"
	"net/http"
	"reflect"
)

// Handler is the terminal application handler invoked between the before and
// after hooks. Returning a non-nil error aborts normal processing and hands
// the error to the app's error handler; the after hooks still run.
type Handler func(w *ResponseWriter, r *http.Request, cs *Contexts) error

// ErrorHandler handles an error from a handler or a captured hook panic.
// Error handlers may write to the response; by convention they do nothing
// when err is Done.
type ErrorHandler func(w *ResponseWriter, r *http.Request, cs *Contexts, err error)

// Stage is one middleware in the pipeline, parameterized by its per-request
// context type C. For each request, BeforeHandle runs before the handler and
// AfterHandle runs after it, both receiving the same freshly-allocated *C.
//
// AfterHandle always runs once BeforeHandle has run for this request, even
// when a before hook ended the response early or a handler failed, so stages
// can reliably emit response headers from AfterHandle.
type Stage[C any] interface {
	BeforeHandle(w *ResponseWriter, r *http.Request, ctx *C)
	AfterHandle(w *ResponseWriter, r *http.Request, ctx *C)
}

// ContextsStage is a Stage whose hooks also receive the full per-request
// context aggregate, for stages that read other stages' contexts. When a
// registered stage implements ContextsStage[C], the ...All hooks are invoked
// instead of the plain ones; ctx is always identical to Get[C](all).
type ContextsStage[C any] interface {
	Stage[C]
	BeforeHandleAll(w *ResponseWriter, r *http.Request, ctx *C, all *Contexts)
	AfterHandleAll(w *ResponseWriter, r *http.Request, ctx *C, all *Contexts)
}

// App is an ordered pipeline of stages around a terminal handler. It
// implements http.Handler. Configure it up front (Use/Then/OnErr) and treat
// it as immutable once serving: the stage list is read concurrently by every
// in-flight request.
type App struct {
	stages  []stageEntry
	handler Handler
	onErr   ErrorHandler
}

// stageEntry is the type-erased record of one registered stage. The typed
// hook signatures are closed over at registration time so that request
// processing involves no reflection.
type stageEntry struct {
	name    string       // concrete stage type, for diagnostics
	ctxType reflect.Type // the stage's context type C
	newCtx  func() interface{}
	before  func(w *ResponseWriter, r *http.Request, cs *Contexts)
	after   func(w *ResponseWriter, r *http.Request, cs *Contexts)
}

// New constructs a clean App with no stages, ready for you to start piling
// on the middleware.
func New() *App {
	return &App{}
}

// TheUsual constructs a popular new App with the delicious defaults
// installed and ready to go: request logging and simple error handling.
func TheUsual() *App {
	app := New()
	Use[LogEntry](app, Logger{})
	return app.OnErr(HandleError)
}

// Use registers a stage on the app. C is the stage's context type and must
// be unique across the app: it is the key other stages and handlers use to
// reach this stage's per-request context via Get[C]. Registering two stages
// with the same context type panics, since the second stage's context would
// be unreachable.
//
// Stages run their before hooks in registration order and their after hooks
// in reverse registration order.
func Use[C any](app *App, s Stage[C]) *App {
	ctxType := reflect.TypeOf((*C)(nil)).Elem()
	for _, st := range app.stages {
		if st.ctxType == ctxType {
			panic(fmt.Errorf("crow: context type %s is already registered by "+
				"stage %s -- each stage must declare its own context type",
				ctxType, st.name))
		}
	}

	get := func(cs *Contexts) *C { return cs.vals[ctxType].(*C) }
	entry := stageEntry{
		name:    fmt.Sprintf("%T", s),
		ctxType: ctxType,
		newCtx:  func() interface{} { return new(C) },
	}
	if all, ok := s.(ContextsStage[C]); ok {
		entry.before = func(w *ResponseWriter, r *http.Request, cs *Contexts) {
			all.BeforeHandleAll(w, r, get(cs), cs)
		}
		entry.after = func(w *ResponseWriter, r *http.Request, cs *Contexts) {
			all.AfterHandleAll(w, r, get(cs), cs)
		}
	} else {
		entry.before = func(w *ResponseWriter, r *http.Request, cs *Contexts) {
			s.BeforeHandle(w, r, get(cs))
		}
		entry.after = func(w *ResponseWriter, r *http.Request, cs *Contexts) {
			s.AfterHandle(w, r, get(cs))
		}
	}
	app.stages = append(app.stages, entry)
	return app
}

// Then sets the terminal handler and returns the app.
func (a *App) Then(h Handler) *App {
	a.handler = h
	return a
}

// OnErr sets the error handler used for handler errors and captured panics.
// Apps without one fall back to HandleError.
func (a *App) OnErr(h ErrorHandler) *App {
	a.onErr = h
	return a
}

// ServeHTTP implements the http.Handler interface, running the full
// pipeline around the handler registered with Then.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.Invoke(w, r, a.handler)
}

// Invoke runs the pipeline with an explicit terminal handler instead of the
// one registered with Then. Router adapters use this to close request-scoped
// values (like path params) into the handler.
//
// The lifecycle for one request is strictly:
//
//	before hooks (registration order) -> handler -> after hooks (reverse)
//
// The handler is skipped when a before hook ends the response or panics; the
// before scan stops at that stage. After hooks then run for every stage
// whose before hook ran. Finally the buffered status and body are flushed to
// the client.
func (a *App) Invoke(w http.ResponseWriter, r *http.Request, h Handler) {
	rw := NewResponseWriter(w)
	cs := a.newContexts()

	ran := 0
	var err error
	for _, st := range a.stages {
		err = runHook(st.name, rw, r, cs, st.before)
		ran++
		if err != nil || rw.Ended() {
			break
		}
	}

	if err == nil && !rw.Ended() && h != nil {
		err = runHandler(rw, r, cs, h)
	}
	if err != nil {
		a.errorHandler()(rw, r, cs, err)
	}

	for i := ran - 1; i >= 0; i-- {
		st := a.stages[i]
		if err := runHook(st.name, rw, r, cs, st.after); err != nil {
			a.errorHandler()(rw, r, cs, err)
		}
	}

	rw.flush()
}

func (a *App) errorHandler() ErrorHandler {
	if a.onErr != nil {
		return a.onErr
	}
	return HandleError
}

func (a *App) newContexts() *Contexts {
	vals := make(map[reflect.Type]interface{}, len(a.stages))
	for _, st := range a.stages {
		vals[st.ctxType] = st.newCtx()
	}
	return &Contexts{vals: vals}
}

func runHook(stage string, w *ResponseWriter, r *http.Request, cs *Contexts,
	hook func(*ResponseWriter, *http.Request, *Contexts)) (err error) {

	defer func() {
		if v := recover(); v != nil {
			err = newPanicError(stage, v)
		}
	}()
	hook(w, r, cs)
	return nil
}

func runHandler(w *ResponseWriter, r *http.Request, cs *Contexts, h Handler) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = newPanicError("handler", v)
		}
	}()
	return h(w, r, cs)
}
