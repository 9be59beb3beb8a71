package cookies

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSignedRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	var out Context
	ck := out.SetSigned("auth", "bob", time.Hour, secret)
	assert.Contains(t, ck.Format(), "Max-Age=3600")

	// Simulate the next request carrying the signed value back.
	in := Context{jar: map[string]string{"auth": out.cookiesToAdd[0].value}}
	assert.Equal(t, "bob", in.GetSigned("auth", secret))
}

func TestSignedRejectsTamperingAndWrongKey(t *testing.T) {
	secret := []byte("test-secret")

	var out Context
	out.SetSigned("auth", "bob", time.Hour, secret)
	signed := out.cookiesToAdd[0].value

	in := Context{jar: map[string]string{"auth": signed + "x"}}
	assert.Equal(t, "", in.GetSigned("auth", secret))

	in = Context{jar: map[string]string{"auth": signed}}
	assert.Equal(t, "", in.GetSigned("auth", []byte("other-secret")))
}

func TestSignedMissingCookieIsEmpty(t *testing.T) {
	var in Context
	assert.Equal(t, "", in.GetSigned("auth", []byte("test-secret")))
}

func TestSignedExpired(t *testing.T) {
	secret := []byte("test-secret")

	var out Context
	out.SetSigned("auth", "bob", -time.Minute, secret)

	in := Context{jar: map[string]string{"auth": out.cookiesToAdd[0].value}}
	assert.Equal(t, "", in.GetSigned("auth", secret))
}
