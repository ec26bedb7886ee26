package proxyfront

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseForwardedTakesLastElement(t *testing.T) {
	el, ok := ParseForwarded(`for=192.0.2.1;proto=http, for="[2001:db8::1]";proto=https;host=example.com;port=8443`)
	assert.True(t, ok)
	assert.Equal(t, "https", el.Proto)
	assert.Equal(t, "example.com", el.Host)
	assert.Equal(t, "8443", el.Port)
	assert.Equal(t, "[2001:db8::1]", el.For)
}

func TestParseForwardedUnescapesQuotedString(t *testing.T) {
	el, ok := ParseForwarded(`for="_gazonk\"proxy"`)
	assert.True(t, ok)
	assert.Equal(t, `_gazonk"proxy`, el.For)
}

func TestParseForwardedEmpty(t *testing.T) {
	_, ok := ParseForwarded("")
	assert.False(t, ok)
}

func TestParseXForwardedFor(t *testing.T) {
	assert.Equal(t, "203.0.113.1", ParseXForwardedFor("203.0.113.1, 10.0.0.1, 10.0.0.2"))
}

func TestParseFor(t *testing.T) {
	t.Run("bracketed IPv6 with port", func(t *testing.T) {
		ip, printable := ParseFor("[2001:db8::1]:9090")
		assert.Equal(t, "2001:db8::1", ip.String())
		assert.Equal(t, "2001:db8::1", printable)
	})
	t.Run("IPv4 with port", func(t *testing.T) {
		ip, _ := ParseFor("192.0.2.5:443")
		assert.Equal(t, "192.0.2.5", ip.String())
	})
	t.Run("bare IPv4", func(t *testing.T) {
		ip, _ := ParseFor("192.0.2.5")
		assert.Equal(t, "192.0.2.5", ip.String())
	})
	t.Run("unparseable falls back to sanitized token", func(t *testing.T) {
		ip, printable := ParseFor("_hidden proxy!")
		assert.Nil(t, ip)
		assert.Equal(t, "_hidden-proxy-", printable)
	})
}

func TestSanitizeHost(t *testing.T) {
	assert.Equal(t, "example.com", SanitizeHost("Example.COM:8080"))
	assert.Equal(t, "[2001:db8::1]", SanitizeHost("[2001:DB8::1]"))
	assert.Equal(t, "evil--host", SanitizeHost("evil//host"))
}

func TestDefaultPort(t *testing.T) {
	assert.Equal(t, 443, DefaultPort("https"))
	assert.Equal(t, 80, DefaultPort("http"))
	assert.Equal(t, 80, DefaultPort(""))
}

func TestParsePort(t *testing.T) {
	_, ok := ParsePort("70000")
	assert.False(t, ok)
	p, ok := ParsePort("8443")
	assert.True(t, ok)
	assert.Equal(t, 8443, p)
}
