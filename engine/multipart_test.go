package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBoundaryIsUniqueAndHex(t *testing.T) {
	a := NewBoundary(nil)
	b := NewBoundary(nil)
	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
}

func TestMultipartLengthMatchesActualBytes(t *testing.T) {
	boundary := "abc123"
	contentType := "text/plain"
	spans := []Span{{Offset: 0, Length: 2}, {Offset: 5, Length: 2}}
	total := int64(10)

	want := MultipartLength(boundary, contentType, spans, total)

	var got int64
	for _, sp := range spans {
		got += int64(len(PartPreamble(boundary, contentType, sp, total)))
		got += sp.Length
		got += 2
	}
	got += int64(len(ClosingBoundary(boundary)))

	assert.Equal(t, want, got)
}

func TestPartPreambleContainsContentRange(t *testing.T) {
	preamble := PartPreamble("BOUND", "text/plain", Span{Offset: 2, Length: 3}, 10)
	assert.Contains(t, string(preamble), "--BOUND\r\n")
	assert.Contains(t, string(preamble), "content-range: bytes 2-4/10")
}
