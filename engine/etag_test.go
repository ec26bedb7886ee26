package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrongMatch(t *testing.T) {
	assert.True(t, strongMatch(`"v1"`, []string{`"v1"`}))
	assert.True(t, strongMatch(`"v1"`, []string{"*"}))
	assert.False(t, strongMatch(`W/"v1"`, []string{`"v1"`}), "a weak etag never strong-matches")
	assert.False(t, strongMatch(`"v1"`, []string{`W/"v1"`}), "a weak candidate never strong-matches")
	assert.False(t, strongMatch(`"v1"`, []string{`"v2"`}))
}

func TestWeakMatch(t *testing.T) {
	assert.True(t, weakMatch(`"v1"`, []string{`W/"v1"`}))
	assert.True(t, weakMatch(`W/"v1"`, []string{`"v1"`}))
	assert.True(t, weakMatch(`"v1"`, []string{"*"}))
	assert.False(t, weakMatch(`"v1"`, []string{`"v2"`}))
}

func TestParseETagList(t *testing.T) {
	assert.Equal(t, []string{"*"}, parseETagList("*"))
	assert.Equal(t, []string{`"v1"`, `W/"v2"`}, parseETagList(`"v1", W/"v2"`))
	assert.Nil(t, parseETagList(""))
}

func TestResolveETagConsultsOnce(t *testing.T) {
	ctx := NewContext()
	ctrl := &countingETagController{etag: `"v1"`, ok: true}

	tag1, ok1 := resolveETag(ctx, ctrl)
	tag2, ok2 := resolveETag(ctx, ctrl)

	assert.Equal(t, `"v1"`, tag1)
	assert.True(t, ok1)
	assert.Equal(t, tag1, tag2)
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, 1, ctrl.calls, "GenerateETag must be consulted at most once per request")
}

type countingETagController struct {
	BaseController
	etag  string
	ok    bool
	calls int
}

func (c *countingETagController) GenerateETag(*Context) (string, bool) {
	c.calls++
	return c.etag, c.ok
}
