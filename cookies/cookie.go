// Package cookies provides the cookie-parsing stage for crow along with the
// Cookie value type it serializes into Set-Cookie response headers.
package cookies

import (
	"strconv"
	"strings"
	"time"
)

// SameSitePolicy is the value of a cookie's SameSite attribute.
type SameSitePolicy int

const (
	SameSiteStrict SameSitePolicy = iota
	SameSiteLax
	SameSiteNone
)

func (p SameSitePolicy) String() string {
	switch p {
	case SameSiteStrict:
		return "Strict"
	case SameSiteLax:
		return "Lax"
	case SameSiteNone:
		return "None"
	}
	return "SameSitePolicy(" + strconv.Itoa(int(p)) + ")"
}

// httpDate is the fixed HTTP-date layout used by the Expires attribute:
// three-letter weekday, zero-padded day, three-letter month, four-digit
// year, 24-hour time, literal GMT. Go's reference-layout formatting is
// locale-independent, so this renders identically everywhere.
const httpDate = "Mon, 02 Jan 2006 15:04:05 GMT"

// Cookie stores the key, value and attributes of one outgoing cookie.
// The key is fixed at construction; attributes are set through the chainable
// setters, in any order and any number of times -- the last call for an
// attribute wins. An attribute that was never set is simply omitted from
// the header.
//
// No validation is performed on the character content of any field;
// producing well-formed header values is the caller's responsibility.
type Cookie struct {
	key      string
	value    string
	expires  *time.Time
	maxAge   *int64
	domain   string
	path     string
	secure   bool
	httpOnly bool
	sameSite *SameSitePolicy
}

// New creates a Cookie with the given key and value, both stored verbatim.
// The value may be empty; it is then rendered as `""` by Format.
func New(key, value string) *Cookie {
	return &Cookie{key: key, value: value}
}

// Expires sets the Expires attribute to an absolute time.
func (c *Cookie) Expires(t time.Time) *Cookie {
	c.expires = &t
	return c
}

// MaxAge sets the Max-Age attribute, in seconds. Negative values request
// immediate expiry.
func (c *Cookie) MaxAge(seconds int64) *Cookie {
	c.maxAge = &seconds
	return c
}

// MaxAgeFor sets the Max-Age attribute from a duration, truncated to whole
// seconds.
func (c *Cookie) MaxAgeFor(d time.Duration) *Cookie {
	return c.MaxAge(int64(d / time.Second))
}

// Domain sets the Domain attribute. An empty domain is treated as not set.
func (c *Cookie) Domain(name string) *Cookie {
	c.domain = name
	return c
}

// Path sets the Path attribute. An empty path is treated as not set.
func (c *Cookie) Path(path string) *Cookie {
	c.path = path
	return c
}

// Secure sets the Secure attribute.
func (c *Cookie) Secure() *Cookie {
	c.secure = true
	return c
}

// HTTPOnly sets the HttpOnly attribute.
func (c *Cookie) HTTPOnly() *Cookie {
	c.httpOnly = true
	return c
}

// SameSite sets the SameSite attribute.
func (c *Cookie) SameSite(p SameSitePolicy) *Cookie {
	c.sameSite = &p
	return c
}

// Format renders the cookie as a Set-Cookie header value. The attribute
// order is fixed regardless of the order the setters were called in:
// Expires, Max-Age, Domain, Path, Secure, HttpOnly, SameSite.
func (c *Cookie) Format() string {
	const divider = "; "

	var b strings.Builder
	b.WriteString(c.key)
	b.WriteByte('=')
	if c.value == "" {
		b.WriteString(`""`)
	} else {
		b.WriteString(c.value)
	}
	if c.expires != nil {
		b.WriteString(divider)
		b.WriteString("Expires=")
		b.WriteString(c.expires.UTC().Format(httpDate))
	}
	if c.maxAge != nil {
		b.WriteString(divider)
		b.WriteString("Max-Age=")
		b.WriteString(strconv.FormatInt(*c.maxAge, 10))
	}
	if c.domain != "" {
		b.WriteString(divider)
		b.WriteString("Domain=")
		b.WriteString(c.domain)
	}
	if c.path != "" {
		b.WriteString(divider)
		b.WriteString("Path=")
		b.WriteString(c.path)
	}
	if c.secure {
		b.WriteString(divider)
		b.WriteString("Secure")
	}
	if c.httpOnly {
		b.WriteString(divider)
		b.WriteString("HttpOnly")
	}
	if c.sameSite != nil {
		b.WriteString(divider)
		b.WriteString("SameSite=")
		b.WriteString(c.sameSite.String())
	}
	return b.String()
}
