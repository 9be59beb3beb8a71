// Package crow is a small middleware framework for go built around typed
// per-request contexts.
//
// Every middleware ("stage") declares its own context type. For each request
// the App allocates one fresh context per registered stage, runs every
// stage's BeforeHandle in registration order, then the application handler,
// then every AfterHandle in reverse order. A stage never sees another
// stage's concrete type unless it asks for it by type:
//
//   - Avoid globals and untyped context bags: per-request state lives in a
//     struct the stage itself defines.
//   - Cross-stage reads are compile-time typed: crow.Get[C](cs) returns the
//     exact context value the owning stage mutates.
//   - Abort request handling early with ResponseWriter.End, or by returning
//     an error from the handler.
//
// # Example
//
// Here's a simple complete program using crow:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//	    "net/http"
//
//	    crow "github.com/SysLik000/Crow"
//	    "github.com/SysLik000/Crow/cookies"
//	)
//
//	func main() {
//	    app := crow.TheUsual()
//	    crow.Use[cookies.Context](app, cookies.Parser{})
//	    app.Then(func(w *crow.ResponseWriter, r *http.Request, cs *crow.Contexts) error {
//	        cc := crow.Get[cookies.Context](cs)
//	        fmt.Fprintf(w, "Hello %s!", cc.GetCookie("name"))
//	        cc.SetCookie("seen", "yes").Path("/").HTTPOnly()
//	        return nil
//	    })
//	    if err := http.ListenAndServe(":6060", app); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Stages
//
// A stage is any value implementing Stage[C] for its context type C. The
// two hooks bracket the handler: BeforeHandle typically decodes request
// state into the context, AfterHandle typically emits response headers from
// it. If a before hook ends the response (w.End()), the handler and any
// remaining before hooks are skipped, but the after hooks of every stage
// that already ran still execute, so they always get a chance to emit
// headers.
//
// Stages that need to read other stages' contexts implement ContextsStage[C]
// instead; its hooks additionally receive the full *Contexts aggregate.
//
// # The response buffer
//
// Handlers and hooks write to a *ResponseWriter that buffers the body and
// status code; crow sends both to the client only after the after hooks have
// run. That is what makes "set a header from an after hook" work at all:
// nothing has hit the wire yet. Calling Flush or Hijack opts a request out
// of buffering (and therefore out of late header edits).
//
// # Errors
//
// Handlers return errors. A non-nil error stops normal processing and is
// passed to the app's error handler (HandleError by default, which logs it
// and sends the appropriate status code). Panics inside hooks or handlers
// are captured as a PanicError and routed the same way; they never take the
// server down.
package crow
