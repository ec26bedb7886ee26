package engine

import "os"

// BodyKind discriminates the tagged variants of a response Body. Emitter
// code switches exhaustively on Kind rather than type-asserting the body,
// mirroring the six named variants in the design notes.
type BodyKind uint8

const (
	BodyNone BodyKind = iota
	BodyBytes
	BodyFilePath
	BodyFileHandle
	BodyStream
	BodyWriter
	BodySizedStream
)

// Chunk is one element of a Stream body. A chunk either carries bytes
// directly or names a byte range of a file to splice into the output,
// letting a controller interleave file contents with generated bytes
// without re-entering the emitter.
type Chunk struct {
	Data       []byte
	File       string // spliced as File[Offset:Offset+Length] when IsFileSpan is set
	Offset     int64
	Length     int64
	IsFileSpan bool
}

// Done is a sentinel chunk signaling end of stream.
var Done = Chunk{}

// IsDone reports whether c is the end-of-stream sentinel.
func (c Chunk) IsDone() bool {
	return !c.IsFileSpan && c.File == "" && c.Data == nil && c.Length == 0 && c.Offset == 0
}

// Producer pulls the next chunk from a Stream body. It returns Done (with
// ok=false) once exhausted. Implementations must not be called again
// after returning ok=false.
type Producer func() (chunk Chunk, ok bool)

// SinkFunc is the callback a Writer body drives to push bytes; fin=true on
// the final call, after which the emitter closes out the response framing.
type SinkFunc func(p []byte, fin bool) error

// WriterFunc is a controller-supplied callback that receives a sink and
// drives emission itself.
type WriterFunc func(sink SinkFunc) error

// Body is a tagged value naming exactly one of the variants in Kind. The
// zero value is BodyNone (an empty body).
type Body struct {
	Kind BodyKind

	// BodyBytes
	Bytes []byte

	// BodyFilePath
	Path string

	// BodyFileHandle
	File *os.File

	// BodyStream
	Next Producer

	// BodyWriter
	Write WriterFunc

	// BodySizedStream
	TotalSize int64
	Produce   func(from, to int64) Producer
}

// NewBytesBody wraps an in-memory byte slice.
func NewBytesBody(b []byte) Body { return Body{Kind: BodyBytes, Bytes: b} }

// NewFilePathBody names a filesystem path whose length is discovered lazily
// by the emitter.
func NewFilePathBody(path string) Body { return Body{Kind: BodyFilePath, Path: path} }

// NewFileHandleBody wraps an already-open seekable file.
func NewFileHandleBody(f *os.File) Body { return Body{Kind: BodyFileHandle, File: f} }

// NewStreamBody wraps a pull iterator of chunks.
func NewStreamBody(next Producer) Body { return Body{Kind: BodyStream, Next: next} }

// NewWriterBody wraps a sink-driving callback.
func NewWriterBody(w WriterFunc) Body { return Body{Kind: BodyWriter, Write: w} }

// NewSizedStreamBody wraps a producer factory with a known total length,
// used when the emitter must slice a sub-range of the stream (e.g. a
// range request against a generator-backed resource).
func NewSizedStreamBody(total int64, produce func(from, to int64) Producer) Body {
	return Body{Kind: BodySizedStream, TotalSize: total, Produce: produce}
}

// IsEmpty reports whether the body is the BodyNone variant. A BodyBytes
// holding zero bytes is not empty by this test.
func (b Body) IsEmpty() bool { return b.Kind == BodyNone }
