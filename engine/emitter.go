package engine

import (
	"io"
	"os"
	"strconv"
	"time"
)

// Sink is the minimal transport-facing surface the emitter drives: set
// the status/headers once, then write body bytes (possibly zero times,
// for HEAD or an empty body), then signal completion.
type Sink interface {
	WriteHeader(status int, headers Headers)
	Write(p []byte) (int, error)
	Finish() error
}

// Emitter streams a Context's response body to a Sink, applying the
// framing rules in spec.md §4.5: HEAD suppression, fixed-length vs
// chunked, and multipart/byteranges assembly. File bodies are always
// copied through the Sink in FileChunkSize reads; Config.UseSendfile is
// not consulted.
type Emitter struct {
	Config  EngineConfig
	Metrics Metrics
	Logger  Logger
}

// NewEmitter builds an Emitter sharing the Engine's configuration.
func NewEmitter(cfg EngineConfig, metrics Metrics, log Logger) *Emitter {
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &Emitter{Config: cfg, Metrics: metrics, Logger: log}
}

// Emit writes ctx's response through sink, applying range slicing and
// multipart assembly for non-HEAD 200 bodies that support ranges and
// carried a satisfiable Range header. Every file handle it opens is
// released on every exit path, success or error.
func (em *Emitter) Emit(ctx *Context, sink Sink) error {
	headers := ctx.RespHeader
	headers.SetIfAbsent("Server", em.serverHeader())
	headers.SetIfAbsent("Date", FormatHTTPDate(time.Now()))
	if ctx.Status == StatusNotModified {
		headers.Del("Content-Length")
		headers.Del("Content-Type")
	} else if ctx.ContentType != "" {
		headers.SetIfAbsent("Content-Type", finalContentType(ctx))
	}

	isHead := ctx.Method == "HEAD"
	body := ctx.RespBody

	// Range handling only applies to whole, known-length bodies on a 200
	// response to a non-HEAD request that the controller allowed to be
	// ranged; HEAD responses are never ranged.
	if ctx.Status == StatusOK && !isHead && ctx.ReadRangeOKCached() {
		if spans, total, ok := em.rangeableSpans(ctx, body); ok && len(spans) > 0 {
			return em.emitRanged(ctx, sink, body, spans, total)
		}
	}

	switch body.Kind {
	case BodyNone:
		sink.WriteHeader(ctx.Status, headers)
		if !isHead {
			em.Metrics.ObserveBytesOut(0)
		}
		return sink.Finish()
	case BodyBytes:
		if !isHead {
			headers.Set("Content-Length", strconv.Itoa(len(body.Bytes)))
		}
		sink.WriteHeader(ctx.Status, headers)
		if !isHead {
			if _, err := sink.Write(body.Bytes); err != nil {
				return err
			}
			em.Metrics.ObserveBytesOut(int64(len(body.Bytes)))
		}
		return sink.Finish()
	case BodyFilePath, BodyFileHandle:
		return em.emitFile(ctx, sink, body, isHead)
	case BodyStream:
		return em.emitStream(ctx, sink, body.Next, isHead)
	case BodyWriter:
		sink.WriteHeader(ctx.Status, headers)
		if isHead {
			return sink.Finish()
		}
		if err := body.Write(func(p []byte, fin bool) error {
			if len(p) > 0 {
				if _, err := sink.Write(p); err != nil {
					return err
				}
				em.Metrics.ObserveBytesOut(int64(len(p)))
			}
			return nil
		}); err != nil {
			return err
		}
		return sink.Finish()
	case BodySizedStream:
		producer := body.Produce(0, body.TotalSize)
		return em.emitStream(ctx, sink, producer, isHead)
	default:
		sink.WriteHeader(ctx.Status, headers)
		return sink.Finish()
	}
}

// finalContentType composes the Content-Type header value from the
// negotiated media type and charset, omitting "; charset=" entirely when
// the controller opted out of charset negotiation via NoCharset.
func finalContentType(ctx *Context) string {
	if ctx.Charset == "" || ctx.Charset == NoCharset {
		return ctx.ContentType
	}
	return ctx.ContentType + "; charset=" + ctx.Charset
}

func (em *Emitter) serverHeader() string {
	if em.Config.ServerHeader != "" {
		return em.Config.ServerHeader
	}
	return "Engine/1.0"
}

// rangeableSpans returns the normalized spans and total size for a body
// that supports byte ranges (bytes, file path/handle, or sized stream),
// or ok=false if the body kind can't be ranged or the Range header
// parsed to nothing satisfiable.
func (em *Emitter) rangeableSpans(ctx *Context, body Body) ([]Span, int64, bool) {
	var total int64
	switch body.Kind {
	case BodyBytes:
		total = int64(len(body.Bytes))
	case BodyFilePath:
		info, err := os.Stat(body.Path)
		if err != nil {
			return nil, 0, false
		}
		total = info.Size()
	case BodyFileHandle:
		info, err := body.File.Stat()
		if err != nil {
			return nil, 0, false
		}
		total = info.Size()
	case BodySizedStream:
		total = body.TotalSize
	default:
		return nil, 0, false
	}
	raws := ctx.RawRanges()
	if len(raws) == 0 {
		return nil, total, false
	}
	spans := NormalizeRanges(raws, total)
	if len(spans) == 0 {
		return nil, total, false
	}
	em.Metrics.ObserveRangeRequest(len(spans) > 1)
	return spans, total, true
}

func (em *Emitter) emitRanged(ctx *Context, sink Sink, body Body, spans []Span, total int64) error {
	headers := ctx.RespHeader
	contentType := ctx.ContentType

	if len(spans) == 1 {
		sp := spans[0]
		headers.Set("Content-Range", "bytes "+strconv.FormatInt(sp.Offset, 10)+"-"+strconv.FormatInt(sp.Offset+sp.Length-1, 10)+"/"+strconv.FormatInt(total, 10))
		headers.Set("Content-Length", strconv.FormatInt(sp.Length, 10))
		sink.WriteHeader(StatusPartialContent, headers)
		if ctx.Method == "HEAD" {
			return sink.Finish()
		}
		n, err := em.writeBodySpan(sink, body, sp)
		em.Metrics.ObserveBytesOut(n)
		if err != nil {
			return err
		}
		return sink.Finish()
	}

	boundary := NewBoundary(em.Logger)
	length := MultipartLength(boundary, contentType, spans, total)
	headers.Set("Content-Type", "multipart/byteranges; boundary="+boundary)
	headers.Set("Content-Length", strconv.FormatInt(length, 10))
	sink.WriteHeader(StatusPartialContent, headers)
	if ctx.Method == "HEAD" {
		return sink.Finish()
	}
	var written int64
	for _, sp := range spans {
		preamble := PartPreamble(boundary, contentType, sp, total)
		if _, err := sink.Write(preamble); err != nil {
			return err
		}
		written += int64(len(preamble))
		n, err := em.writeBodySpan(sink, body, sp)
		written += n
		if err != nil {
			return err
		}
		if _, err := sink.Write([]byte("\r\n")); err != nil {
			return err
		}
		written += 2
	}
	closing := ClosingBoundary(boundary)
	if _, err := sink.Write(closing); err != nil {
		return err
	}
	written += int64(len(closing))
	em.Metrics.ObserveBytesOut(written)
	return sink.Finish()
}

func (em *Emitter) writeBodySpan(sink Sink, body Body, sp Span) (int64, error) {
	switch body.Kind {
	case BodyBytes:
		end := sp.Offset + sp.Length
		if end > int64(len(body.Bytes)) {
			end = int64(len(body.Bytes))
		}
		slice := body.Bytes[sp.Offset:end]
		n, err := sink.Write(slice)
		return int64(n), err
	case BodyFilePath:
		f, err := os.Open(body.Path)
		if err != nil {
			return 0, err
		}
		defer f.Close()
		return copySpan(sink, f, sp, em.chunkSize())
	case BodyFileHandle:
		return copySpan(sink, body.File, sp, em.chunkSize())
	default:
		return 0, nil
	}
}

func copySpan(sink Sink, f *os.File, sp Span, chunkSize int) (int64, error) {
	if _, err := f.Seek(sp.Offset, io.SeekStart); err != nil {
		return 0, err
	}
	return io.CopyN(writerFunc(sink.Write), f, sp.Length)
}

// writerFunc adapts a Write method value to io.Writer.
type writerFunc func([]byte) (int, error)

func (w writerFunc) Write(p []byte) (int, error) { return w(p) }

func (em *Emitter) chunkSize() int {
	if em.Config.FileChunkSize > 0 {
		return em.Config.FileChunkSize
	}
	return 65536
}

func (em *Emitter) emitFile(ctx *Context, sink Sink, body Body, isHead bool) error {
	var f *os.File
	var err error
	ownsFile := false
	if body.Kind == BodyFilePath {
		f, err = os.Open(body.Path)
		if err != nil {
			return err
		}
		ownsFile = true
	} else {
		f = body.File
	}
	if ownsFile {
		defer f.Close()
	}
	info, err := f.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	headers := ctx.RespHeader
	if !isHead {
		headers.Set("Content-Length", strconv.FormatInt(size, 10))
	}
	sink.WriteHeader(ctx.Status, headers)
	if isHead {
		return sink.Finish()
	}
	// No OS sendfile path is taken, whatever Config.UseSendfile says:
	// the file is always copied through sink.Write in chunkSize reads.
	n, err := io.CopyBuffer(writerFunc(sink.Write), f, make([]byte, em.chunkSize()))
	em.Metrics.ObserveBytesOut(n)
	if err != nil {
		return err
	}
	return sink.Finish()
}

func (em *Emitter) emitStream(ctx *Context, sink Sink, next Producer, isHead bool) error {
	headers := ctx.RespHeader
	headers.Del("Content-Length") // chunked: length is not known up front
	sink.WriteHeader(ctx.Status, headers)
	if isHead || next == nil {
		return sink.Finish()
	}
	var total int64
	for {
		chunk, ok := next()
		if !ok || chunk.IsDone() {
			break
		}
		if chunk.IsFileSpan {
			f, err := os.Open(chunk.File)
			if err != nil {
				return err
			}
			n, err := copySpan(sink, f, Span{Offset: chunk.Offset, Length: chunk.Length}, em.chunkSize())
			f.Close()
			total += n
			if err != nil {
				return err
			}
			continue
		}
		if len(chunk.Data) == 0 {
			// empty-chunk suppression: consumed silently, never emitted
			// as a spurious zero-length frame.
			continue
		}
		if _, err := sink.Write(chunk.Data); err != nil {
			return err
		}
		total += int64(len(chunk.Data))
	}
	em.Metrics.ObserveBytesOut(total)
	return sink.Finish()
}
