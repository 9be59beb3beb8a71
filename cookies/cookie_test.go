package cookies

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatBareCookie(t *testing.T) {
	assert.Equal(t, "k=v", New("k", "v").Format())
}

func TestFormatEmptyValue(t *testing.T) {
	assert.Equal(t, `k=""`, New("k", "").Format())
}

func TestFormatFlagsAndSameSite(t *testing.T) {
	c := New("k", "v").Secure().HTTPOnly().SameSite(SameSiteLax)
	assert.Equal(t, "k=v; Secure; HttpOnly; SameSite=Lax", c.Format())
}

func TestFormatAttributeOrderIsFixed(t *testing.T) {
	when := time.Date(2021, time.June, 9, 10, 18, 14, 0, time.UTC)
	want := "session=abc123; Expires=Wed, 09 Jun 2021 10:18:14 GMT; " +
		"Max-Age=3600; Domain=example.com; Path=/; Secure; HttpOnly; SameSite=Lax"

	// Two different setter call orders, same header.
	a := New("session", "abc123").
		Expires(when).MaxAge(3600).Domain("example.com").Path("/").
		Secure().HTTPOnly().SameSite(SameSiteLax)
	b := New("session", "abc123").
		SameSite(SameSiteLax).HTTPOnly().Secure().
		Path("/").Domain("example.com").MaxAge(3600).Expires(when)

	assert.Equal(t, want, a.Format())
	assert.Equal(t, want, b.Format())
}

func TestFormatExpiresRendersUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	when := time.Date(2021, time.June, 9, 12, 18, 14, 0, loc) // 10:18:14 UTC
	c := New("k", "v").Expires(when)
	assert.Equal(t, "k=v; Expires=Wed, 09 Jun 2021 10:18:14 GMT", c.Format())
}

func TestMaxAgeVariants(t *testing.T) {
	assert.Equal(t, "k=v; Max-Age=-1", New("k", "v").MaxAge(-1).Format())
	// Durations are truncated to whole seconds.
	assert.Equal(t, "k=v; Max-Age=90", New("k", "v").MaxAgeFor(90500*time.Millisecond).Format())
	assert.Equal(t, "k=v; Max-Age=0", New("k", "v").MaxAgeFor(900*time.Millisecond).Format())
}

func TestLastSetterCallWins(t *testing.T) {
	c := New("k", "v").Path("/a").Path("/b").MaxAge(10).MaxAge(20)
	assert.Equal(t, "k=v; Max-Age=20; Path=/b", c.Format())
}

func TestEmptyDomainAndPathAreOmitted(t *testing.T) {
	assert.Equal(t, "k=v", New("k", "v").Domain("").Path("").Format())
}

func TestSameSitePolicyString(t *testing.T) {
	assert.Equal(t, "Strict", SameSiteStrict.String())
	assert.Equal(t, "Lax", SameSiteLax.String())
	assert.Equal(t, "None", SameSiteNone.String())
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, kv := range [][2]string{
		{"session", "abc123"},
		{"k", "v"},
		{"name", "with space"},
		{"empty", ""},
	} {
		header := New(kv[0], kv[1]).Format()
		jar := map[string]string{}
		parseJar(header, jar)
		assert.Equal(t, map[string]string{kv[0]: kv[1]}, jar, "header %q", header)
	}
}
