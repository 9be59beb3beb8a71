package cookies

import (
	"time"

	"github.com/dchest/authcookie"
)

// SetSigned stages a cookie whose value is wrapped in a signed, expiring
// envelope (HMAC-SHA256 over the value and expiry). The returned Cookie can
// be chained further for transport attributes; its Max-Age is preset to
// match the signature's lifetime.
//
// The value is signed, not encrypted: clients can read it, they just can't
// alter it.
func (c *Context) SetSigned(name, value string, ttl time.Duration, secret []byte) *Cookie {
	signed := authcookie.New(value, time.Now().Add(ttl), secret)
	return c.SetCookie(name, signed).MaxAgeFor(ttl)
}

// GetSigned returns the verified value of a cookie staged with SetSigned on
// an earlier request. Missing, tampered-with, and expired cookies all come
// back as an empty string, mirroring GetCookie's absent-is-empty semantics.
func (c *Context) GetSigned(name string, secret []byte) string {
	return authcookie.Login(c.GetCookie(name), secret)
}
