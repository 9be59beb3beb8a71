package httprouter_crow_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	crow "github.com/SysLik000/Crow"
	"github.com/SysLik000/Crow/cookies"
	"github.com/SysLik000/Crow/httprouter_crow"
	"github.com/julienschmidt/httprouter"
)

func TestParamsRouting(t *testing.T) {
	// An example handler using the httprouter.Params as an input.
	greet := func(w *crow.ResponseWriter, r *http.Request, cs *crow.Contexts, p httprouter.Params) error {
		fmt.Fprintf(w, "%s %s", p[0].Value, p[1].Value)
		return nil
	}

	// An example server using the httprouter_crow adapter.
	app := crow.New()
	r := httprouter.New()
	r.GET("/say/:greeting/:name", httprouter_crow.H(app, greet))

	// Call the server.
	rw := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/say/Hi/Bob", nil)
	r.ServeHTTP(rw, req)

	// Validate the output.
	if rw.Body.String() != "Hi Bob" {
		t.Errorf("Wrong response: %q", rw.Body.String())
	}
}

func TestStagesRunAroundRoutedHandlers(t *testing.T) {
	whoami := func(w *crow.ResponseWriter, r *http.Request, cs *crow.Contexts, p httprouter.Params) error {
		fmt.Fprintf(w, "%s is %s", p.ByName("name"), crow.Get[cookies.Context](cs).GetCookie("role"))
		return nil
	}

	app := crow.New()
	crow.Use[cookies.Context](app, cookies.Parser{})
	r := httprouter.New()
	r.GET("/whoami/:name", httprouter_crow.H(app, whoami))

	rw := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/whoami/Bob", nil)
	req.Header.Set("Cookie", "role=admin")
	r.ServeHTTP(rw, req)

	if rw.Body.String() != "Bob is admin" {
		t.Errorf("Wrong response: %q", rw.Body.String())
	}
}
