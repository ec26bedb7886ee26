package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeSink records what the emitter writes, for assertions.
type fakeSink struct {
	status  int
	headers Headers
	body    []byte
}

func (s *fakeSink) WriteHeader(status int, headers Headers) {
	s.status = status
	s.headers = headers.Clone()
}
func (s *fakeSink) Write(p []byte) (int, error) {
	s.body = append(s.body, p...)
	return len(p), nil
}
func (s *fakeSink) Finish() error { return nil }

// docController serves a fixed byte payload with a stable ETag and
// Last-Modified, standing in for the "simple resource" of spec.md §8.
type docController struct {
	BaseController
	content      []byte
	etag         string
	lastModified time.Time
}

func (c *docController) ContentTypesProvided(*Context) []ProvidedType {
	return []ProvidedType{{MediaType: "text/plain", Render: func(*Context) (Body, error) {
		return NewBytesBody(c.content), nil
	}}}
}
func (c *docController) GenerateETag(*Context) (string, bool)    { return c.etag, c.etag != "" }
func (c *docController) LastModified(*Context) (time.Time, bool) { return c.lastModified, true }
func (c *docController) RangeOK(*Context) bool                   { return true }

func newDocController() *docController {
	return &docController{
		content:      []byte("0123456789"),
		etag:         `"doc-v1"`,
		lastModified: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func runRequest(ctrl Controller, method, path string, headers Headers) (*Context, *fakeSink) {
	eng := NewEngine(EngineConfig{}, NoopMetrics{}, nil)
	em := NewEmitter(EngineConfig{}, NoopMetrics{}, nil)
	ctx := NewContext()
	ctx.Method = method
	ctx.Path = path
	ctx.Version = "HTTP/1.1"
	if headers != nil {
		ctx.Header = headers
	}
	eng.Decide(ctx, ctrl)
	sink := &fakeSink{}
	_ = em.Emit(ctx, sink)
	return ctx, sink
}

// greeterController is the "default controller returning body hi" of
// spec.md §8 Scenario 1.
type greeterController struct {
	BaseController
}

func (greeterController) ContentTypesProvided(*Context) []ProvidedType {
	return []ProvidedType{{MediaType: "text/html", Render: func(*Context) (Body, error) {
		return NewBytesBody([]byte("hi")), nil
	}}}
}

func TestSimpleGET(t *testing.T) {
	ctx, sink := runRequest(greeterController{}, "GET", "/x", nil)

	assert.Equal(t, StatusOK, ctx.Status)
	assert.Equal(t, StatusOK, sink.status)
	assert.Equal(t, "hi", string(sink.body))
	assert.Equal(t, "text/html", sink.headers.Get("Content-Type"))
	assert.Equal(t, "2", sink.headers.Get("Content-Length"))
}

func TestSimpleGETWithConditionalHeaders(t *testing.T) {
	ctrl := newDocController()
	ctx, sink := runRequest(ctrl, "GET", "/doc", nil)

	assert.Equal(t, StatusOK, ctx.Status)
	assert.Equal(t, StatusOK, sink.status)
	assert.Equal(t, "0123456789", string(sink.body))
	assert.Equal(t, `"doc-v1"`, sink.headers.Get("ETag"))
}

func TestSuffixRangeRequest(t *testing.T) {
	ctrl := newDocController()
	h := make(Headers)
	h.Set("Range", "bytes=-4")
	_, sink := runRequest(ctrl, "GET", "/doc", h)

	assert.Equal(t, StatusPartialContent, sink.status)
	assert.Equal(t, "6789", string(sink.body))
	assert.Equal(t, "bytes 6-9/10", sink.headers.Get("Content-Range"))
}

func TestMultipartRangeRequest(t *testing.T) {
	ctrl := newDocController()
	h := make(Headers)
	h.Set("Range", "bytes=0-1,5-6")
	_, sink := runRequest(ctrl, "GET", "/doc", h)

	assert.Equal(t, StatusPartialContent, sink.status)
	ct := sink.headers.Get("Content-Type")
	assert.Contains(t, ct, "multipart/byteranges; boundary=")
	assert.Contains(t, string(sink.body), "01")
	assert.Contains(t, string(sink.body), "56")
}

func TestConditionalGETNotModified(t *testing.T) {
	ctrl := newDocController()
	h := make(Headers)
	h.Set("If-None-Match", `"doc-v1"`)
	ctx, sink := runRequest(ctrl, "GET", "/doc", h)

	assert.Equal(t, StatusNotModified, ctx.Status)
	assert.Equal(t, StatusNotModified, sink.status)
	assert.Empty(t, sink.body)
	assert.Equal(t, "", sink.headers.Get("Content-Type"))
}

func TestConditionalGETIfMatchFails(t *testing.T) {
	ctrl := newDocController()
	h := make(Headers)
	h.Set("If-Match", `"stale"`)
	ctx, _ := runRequest(ctrl, "GET", "/doc", h)

	assert.Equal(t, StatusPreconditionFailed, ctx.Status)
}

func TestMethodNotAllowedSetsAllowHeader(t *testing.T) {
	ctrl := newDocController()
	ctx, _ := runRequest(ctrl, "DELETE", "/doc", nil)

	assert.Equal(t, StatusMethodNotAllowed, ctx.Status)
	assert.Equal(t, "GET, HEAD", ctx.RespHeader.Get("Allow"))
}

// variantController reports an extra Vary dimension beyond what
// negotiation itself consults.
type variantController struct {
	docController
}

func (variantController) Variances(*Context) []string { return []string{"Cookie"} }

func TestControllerVariancesContributeToVary(t *testing.T) {
	ctrl := &variantController{docController: *newDocController()}
	h := make(Headers)
	h.Set("Accept-Language", "en")
	_, sink := runRequest(ctrl, "GET", "/doc", h)

	assert.Equal(t, "Accept-Language, Cookie", sink.headers.Get("Vary"))
}

func TestContentTypeOmitsCharsetWhenNoCharset(t *testing.T) {
	ctrl := newDocController()
	_, sink := runRequest(ctrl, "GET", "/doc", nil)

	assert.Equal(t, "text/plain", sink.headers.Get("Content-Type"))
}

func TestDecisionGraphVisitBoundTerminates(t *testing.T) {
	eng := &Engine{Config: EngineConfig{}, Metrics: NoopMetrics{}, table: map[node]nodeFunc{
		nB13: func(ctx *Context, ctrl Controller, e *Engine) node { return nB13 }, // deliberate cycle
	}}
	ctx := NewContext()
	ctx.Method = "GET"
	ctrl := newDocController()
	eng.Decide(ctx, ctrl)
	assert.Equal(t, StatusInternalServerError, ctx.Status)
}
