package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectMediaType(t *testing.T) {
	offered := []string{"text/html", "application/json"}

	t.Run("exact match preferred", func(t *testing.T) {
		got, ok := SelectMediaType("application/json, text/html;q=0.9", offered)
		assert.True(t, ok)
		assert.Equal(t, "application/json", got)
	})

	t.Run("wildcard falls back to first offered", func(t *testing.T) {
		got, ok := SelectMediaType("*/*", offered)
		assert.True(t, ok)
		assert.Equal(t, "text/html", got)
	})

	t.Run("specific beats wildcard at equal q", func(t *testing.T) {
		got, ok := SelectMediaType("*/*, application/json", offered)
		assert.True(t, ok)
		assert.Equal(t, "application/json", got)
	})

	t.Run("no acceptable type", func(t *testing.T) {
		_, ok := SelectMediaType("application/xml", offered)
		assert.False(t, ok)
	})

	t.Run("missing Accept defaults to wildcard", func(t *testing.T) {
		got, ok := SelectMediaType("", offered)
		assert.True(t, ok)
		assert.Equal(t, "text/html", got)
	})
}

func TestSelectLanguage(t *testing.T) {
	offered := []string{"en", "fr", "de"}

	got, ok := SelectLanguage("fr;q=0.8, de;q=0.9", offered)
	assert.True(t, ok)
	assert.Equal(t, "de", got)

	_, ok = SelectLanguage("es", offered)
	assert.False(t, ok)
}

func TestSelectCharset(t *testing.T) {
	offered := []string{NoCharset}
	got, ok := SelectCharset("utf-8", offered)
	assert.True(t, ok)
	assert.Equal(t, NoCharset, got)
}

func TestSelectEncoding(t *testing.T) {
	offered := []string{"identity", "gzip"}

	got, ok := SelectEncoding("gzip;q=1.0, identity;q=0.5", offered)
	assert.True(t, ok)
	assert.Equal(t, "gzip", got)

	got, ok = SelectEncoding("", offered)
	assert.True(t, ok)
	assert.Equal(t, "identity", got)
}
