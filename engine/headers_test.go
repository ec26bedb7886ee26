package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeadersCaseInsensitive(t *testing.T) {
	h := make(Headers)
	h.Set("content-type", "text/plain")
	assert.Equal(t, "text/plain", h.Get("Content-Type"))
	assert.True(t, h.Has("CONTENT-TYPE"))

	h.Add("X-Custom", "a")
	h.Add("x-custom", "b")
	assert.Equal(t, []string{"a", "b"}, h.Values("X-Custom"))
}

func TestComposeVary(t *testing.T) {
	t.Run("fewer than two dimensions emits nothing", func(t *testing.T) {
		consulted := map[string]bool{"Accept": true}
		assert.Equal(t, "", composeVary(consulted, nil))
	})

	t.Run("two or more dimensions compose in fixed order", func(t *testing.T) {
		consulted := map[string]bool{"Accept-Encoding": true, "Accept": true}
		assert.Equal(t, "Accept, Accept-Encoding", composeVary(consulted, nil))
	})

	t.Run("controller variances are appended without duplication", func(t *testing.T) {
		consulted := map[string]bool{"Accept": true, "Accept-Language": true}
		got := composeVary(consulted, []string{"Accept", "Cookie"})
		assert.Equal(t, "Accept, Accept-Language, Cookie", got)
	})
}
