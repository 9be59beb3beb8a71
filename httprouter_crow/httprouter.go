// Package httprouter_crow is a httprouter-adapter for crow that provides the
// httprouter path parameters to the application handler.
package httprouter_crow

import (
	"net/http"

	crow "github.com/SysLik000/Crow"
	"github.com/julienschmidt/httprouter"
)

// Handler is a crow.Handler that additionally receives the httprouter route
// parameters.
type Handler func(w *crow.ResponseWriter, r *http.Request, cs *crow.Contexts, p httprouter.Params) error

// H adapts a crow App and a params-aware handler into an httprouter.Handle.
// The app's stages run around the handler exactly as they do for
// App.ServeHTTP. For example:
//
//	app := crow.TheUsual()
//	crow.Use[cookies.Context](app, cookies.Parser{})
//
//	r := httprouter.New()
//	r.GET("/user/:id", httprouter_crow.H(app, getUser))
//
//	func getUser(w *crow.ResponseWriter, r *http.Request, cs *crow.Contexts, p httprouter.Params) error {
//	    ...
//	}
func H(app *crow.App, h Handler) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		app.Invoke(w, r, func(rw *crow.ResponseWriter, r *http.Request, cs *crow.Contexts) error {
			return h(rw, r, cs, p)
		})
	}
}
