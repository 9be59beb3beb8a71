package cookies

import (
	"net/http"
	"strings"

	crow "github.com/SysLik000/Crow"
)

// Context is the Parser stage's per-request state: the jar of cookies parsed
// from the request, and the cookies staged for the response. Handlers and
// other stages reach it through the aggregate:
//
//	cc := crow.Get[cookies.Context](cs)
type Context struct {
	jar          map[string]string
	cookiesToAdd []*Cookie
}

// GetCookie returns the value of the named request cookie, or an empty
// string if the cookie is absent. A cookie that was present with an empty
// value is indistinguishable from an absent one here.
func (c *Context) GetCookie(name string) string {
	return c.jar[name]
}

// SetCookie stages an outgoing cookie and returns it for attribute chaining:
//
//	cc.SetCookie("session", id).Path("/").MaxAge(3600).HTTPOnly()
//
// Every staged cookie becomes one Set-Cookie header, in staging order;
// staging the same name twice emits two headers.
func (c *Context) SetCookie(name, value string) *Cookie {
	ck := New(name, value)
	c.cookiesToAdd = append(c.cookiesToAdd, ck)
	return ck
}

// Parser is the cookie-parsing stage. Before the handler runs it parses the
// request's Cookie header into the context's jar; after the handler (and
// unconditionally, even when the response was ended early) it appends one
// Set-Cookie header per staged cookie.
//
// A request carrying two or more Cookie headers is rejected outright with a
// 400 and the handler is skipped. Joining or picking one of the headers
// would silently change which cookie values the application sees, so the
// stage refuses to guess.
type Parser struct{}

func (Parser) BeforeHandle(w *crow.ResponseWriter, r *http.Request, ctx *Context) {
	headers := r.Header.Values("Cookie")
	if len(headers) == 0 {
		return
	}
	if len(headers) > 1 {
		w.WriteHeader(http.StatusBadRequest)
		w.End()
		return
	}
	ctx.jar = make(map[string]string)
	parseJar(headers[0], ctx.jar)
}

func (Parser) AfterHandle(w *crow.ResponseWriter, r *http.Request, ctx *Context) {
	for _, ck := range ctx.cookiesToAdd {
		w.Header().Add("Set-Cookie", ck.Format())
	}
}

// parseJar scans a Cookie request-header value left to right and inserts
// each name=value pair into jar, first write wins. The grammar in the wild
// is loose, so the scan is deliberately tolerant: whatever doesn't parse as
// a pair is dropped and scanning continues -- a malformed header yields a
// partial jar, never an error.
func parseJar(header string, jar map[string]string) {
	pos := 0
	for pos < len(header) {
		eq := strings.IndexByte(header[pos:], '=')
		if eq < 0 {
			break // trailing fragment with no '=': discard
		}
		name := strings.TrimSpace(header[pos : pos+eq])
		pos += eq + 1
		for pos < len(header) && header[pos] == ' ' {
			pos++
		}
		if pos == len(header) {
			break // incomplete trailing pair: discard
		}

		var value string
		if semi := strings.IndexByte(header[pos:], ';'); semi < 0 {
			value = header[pos:]
			pos = len(header)
		} else {
			value = header[pos : pos+semi]
			pos += semi + 1
			for pos < len(header) && header[pos] == ' ' {
				pos++
			}
		}
		value = strings.TrimSpace(value)
		// Strip exactly one matching pair of surrounding quotes. The
		// length check also guards indexing an empty unquoted value.
		if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
			value = value[1 : len(value)-1]
		}

		if _, exists := jar[name]; !exists {
			jar[name] = value
		}
	}
}
