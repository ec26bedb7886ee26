package engine

import "io"

// NoCharset is the sentinel a controller's CharsetsProvided callback
// returns to opt out of charset negotiation entirely (skip E5/E6 and omit
// "; charset=" from Content-Type).
const NoCharset = "no-charset"

// Context is the single mutable object threaded through one request's
// decision-graph traversal, emitter pass, and finish hook. It is
// single-owner: exactly one request per Context, never mutated
// concurrently. Go-idiomatic deviation from the source's "(value,
// new_context) per callback" functional style: callbacks receive *Context
// and mutate it (or their own ControllerState) directly, since Go favors
// pointer mutation over threading an immutable value through every call
// (see DESIGN.md Open Questions).
type Context struct {
	// --- immutable request facet (set by the proxy front door / transport) ---
	Method     string // uppercase ASCII, compared byte-exact
	Version    string // "HTTP/1.1", "HTTP/1.0"
	Path       string
	Query      string
	Header     Headers
	PeerAddr   string // the literal socket peer, pre-proxy-resolution
	Scheme     string // authoritative, after §4.1
	Host       string // authoritative
	Port       int    // authoritative
	Remote     string // authoritative, printable
	ViaProxy   bool
	RequestID  string
	Body       io.ReadCloser
	EntityLen  int64 // -1 if unknown (chunked request body)

	// --- negotiation result ---
	ContentType      string
	Charset          string // NoCharset sentinel, or "" until negotiated
	Language         string
	ContentEncoding  string // default "identity"
	TransferEncoding string // "" => framed by Content-Length or chunked

	consulted map[string]bool // dimensions actually consulted, for Vary
	variances []string        // controller's extra Vary entries

	// --- response accumulator ---
	Status     int
	RespHeader Headers
	RespBody   Body
	SetCookies []string // raw Set-Cookie values, appended verbatim

	rangeOK     bool
	rangeOKRead bool
	rawRanges   []RawRange
	rangeParsed bool

	etag            string
	etagCached      bool
	lastModified    int64 // unix seconds; 0 means unset
	lastModifiedSet bool

	// --- controller handle ---
	ControllerState any

	// --- bookkeeping ---
	Halted     bool
	HaltStatus int
	FailErr    error
	visits     int
}

// NewContext builds a Context for one inbound request with the
// defaults spec.md §3 requires: RangeOK true until a controller disables
// it, ContentEncoding "identity", empty negotiation results otherwise.
func NewContext() *Context {
	return &Context{
		Header:          make(Headers),
		RespHeader:      make(Headers),
		ContentEncoding: "identity",
		EntityLen:       -1,
		rangeOK:         true,
		consulted:       make(map[string]bool, 4),
	}
}

// MarkConsulted records that a negotiation dimension header was inspected,
// feeding the Vary composition in headers.go.
func (c *Context) MarkConsulted(dimension string) { c.consulted[dimension] = true }

// SetVariances records the controller's extra Vary entries.
func (c *Context) SetVariances(v []string) { c.variances = v }

// Vary returns the composed Vary header value, or "" if fewer than two
// dimensions were consulted.
func (c *Context) Vary() string { return composeVary(c.consulted, c.variances) }

// ReadRangeOK returns whether ranges are permitted for this request,
// consulting the controller exactly once and caching the result, per the
// "range-ok is read exactly once" invariant.
func (c *Context) ReadRangeOK(ctrl Controller) bool {
	if !c.rangeOKRead {
		c.rangeOK = callRangeOK(ctrl, c)
		c.rangeOKRead = true
	}
	return c.rangeOK
}

// RawRanges parses the Range header exactly once and caches the result;
// subsequent calls return the same slice, satisfying the idempotency
// invariant without re-parsing.
func (c *Context) RawRanges() []RawRange {
	if !c.rangeParsed {
		c.rangeParsed = true
		if !c.ReadRangeOKCached() {
			c.rawRanges = nil
		} else if header := c.Header.Get("Range"); header != "" {
			if raws, ok := ParseRangeHeader(header); ok {
				c.rawRanges = raws
			}
		}
	}
	return c.rawRanges
}

// ReadRangeOKCached returns the cached range-ok flag without consulting
// the controller; RawRanges calls this after ReadRangeOK has already run
// at node G (existence) time, per the decision graph's node ordering.
func (c *Context) ReadRangeOKCached() bool { return c.rangeOK }

// Halt short-circuits the decision graph with status N, per the
// `{halt, Code}` controller signal.
func (c *Context) Halt(status int) { c.Halted = true; c.HaltStatus = status }

// Fail short-circuits the decision graph with the 500 path, per the
// `{error, Reason}` controller signal.
func (c *Context) Fail(err error) { c.Halted = true; c.HaltStatus = StatusInternalServerError; c.FailErr = err }

// CachedETag returns the ETag computed earlier in this request, if any.
func (c *Context) CachedETag() (string, bool) { return c.etag, c.etagCached }

// CacheETag stores the ETag so it is consulted exactly once per request.
func (c *Context) CacheETag(etag string) { c.etag = etag; c.etagCached = true }

// CachedLastModified returns the Last-Modified computed earlier in this
// request, if any.
func (c *Context) CachedLastModified() (int64, bool) { return c.lastModified, c.lastModifiedSet }

// CacheLastModified stores Last-Modified so it is consulted once.
func (c *Context) CacheLastModified(t int64) { c.lastModified = t; c.lastModifiedSet = true }
