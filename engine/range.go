package engine

import (
	"strconv"
	"strings"
)

// RawRange is one `first-pos "-" [last-pos]` or `"-" suffix-length` entry
// from a Range header, before normalization against a known body size.
// Absent is represented by -1, mirroring the spec's {start|∅, end|∅} pair.
type RawRange struct {
	Start int64 // -1 means absent (suffix form)
	End   int64 // -1 means absent (open-ended form)
}

// Span is a concrete, normalized byte interval: [Offset, Offset+Length).
type Span struct {
	Offset int64
	Length int64
}

// ParseRangeHeader parses a "Range: bytes=..." header value into its raw,
// unnormalized parts. Any syntax error in the whole header is treated as
// "no satisfiable ranges" per the spec's permissive policy: the caller
// falls back to a full 200 response rather than 416.
func ParseRangeHeader(value string) ([]RawRange, bool) {
	const prefix = "bytes="
	value = strings.TrimSpace(value)
	if !strings.HasPrefix(value, prefix) {
		return nil, false
	}
	specs := strings.Split(value[len(prefix):], ",")
	raws := make([]RawRange, 0, len(specs))
	for _, spec := range specs {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			return nil, false
		}
		dash := strings.IndexByte(spec, '-')
		if dash < 0 {
			return nil, false
		}
		startStr, endStr := spec[:dash], spec[dash+1:]
		raw := RawRange{Start: -1, End: -1}
		if startStr == "" {
			// "-suffix-length"
			if endStr == "" {
				return nil, false
			}
			n, err := strconv.ParseInt(endStr, 10, 64)
			if err != nil || n < 0 {
				return nil, false
			}
			raw.End = n // reuse End to carry suffix-length; Start stays -1
		} else {
			a, err := strconv.ParseInt(startStr, 10, 64)
			if err != nil || a < 0 {
				return nil, false
			}
			raw.Start = a
			if endStr != "" {
				b, err := strconv.ParseInt(endStr, 10, 64)
				if err != nil || b < 0 {
					return nil, false
				}
				raw.End = b
			}
		}
		raws = append(raws, raw)
	}
	if len(raws) == 0 {
		return nil, false
	}
	return raws, true
}

// NormalizeRanges converts raw ranges against a known body size into
// concrete spans, dropping unsatisfiable entries, per the table in
// spec.md §4.4. Pure function: calling it twice on the same inputs
// yields identical output slices, satisfying the idempotency invariant.
func NormalizeRanges(raws []RawRange, size int64) []Span {
	if size <= 0 {
		return nil
	}
	spans := make([]Span, 0, len(raws))
	for _, r := range raws {
		switch {
		case r.Start == -1:
			// suffix form: {∅, n}
			n := r.End
			if n == 0 {
				continue // zero-length suffix is never satisfiable
			}
			if n > size {
				spans = append(spans, Span{Offset: 0, Length: size})
			} else {
				spans = append(spans, Span{Offset: size - n, Length: n})
			}
		case r.End == -1:
			// prefix form: {a, ∅}
			a := r.Start
			if a >= size {
				continue
			}
			spans = append(spans, Span{Offset: a, Length: size - a})
		default:
			// closed form: {a, b}
			a, b := r.Start, r.End
			if a <= b && b < size {
				spans = append(spans, Span{Offset: a, Length: b - a + 1})
			}
			// else drop
		}
	}
	return spans
}
