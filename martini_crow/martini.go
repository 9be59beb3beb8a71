// Package martini_crow is a martini-adapter for crow that provides the
// martini route parameters to the application handler.
package martini_crow

import (
	"net/http"

	crow "github.com/SysLik000/Crow"
	"github.com/go-martini/martini"
)

// Handler is a crow.Handler that additionally receives the martini route
// parameters.
type Handler func(w *crow.ResponseWriter, r *http.Request, cs *crow.Contexts, p martini.Params) error

// H adapts a crow App and a params-aware handler into a martini handler:
//
//	m := martini.Classic()
//	m.Get("/say/:greeting/:name", martini_crow.H(app, greet))
func H(app *crow.App, h Handler) martini.Handler {
	return func(w http.ResponseWriter, r *http.Request, p martini.Params) {
		app.Invoke(w, r, func(rw *crow.ResponseWriter, r *http.Request, cs *crow.Contexts) error {
			return h(rw, r, cs, p)
		})
	}
}
