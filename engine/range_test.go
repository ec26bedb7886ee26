package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRangeHeader(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []RawRange
		ok    bool
	}{
		{"closed", "bytes=0-499", []RawRange{{0, 499}}, true},
		{"prefix", "bytes=500-", []RawRange{{500, -1}}, true},
		{"suffix", "bytes=-500", []RawRange{{-1, 500}}, true},
		{"multi", "bytes=0-49,50-99", []RawRange{{0, 49}, {50, 99}}, true},
		{"no prefix", "0-499", nil, false},
		{"empty spec", "bytes=0-499,", nil, false},
		{"garbage", "bytes=abc", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRangeHeader(tt.value)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNormalizeRanges(t *testing.T) {
	size := int64(1000)

	t.Run("closed within bounds", func(t *testing.T) {
		spans := NormalizeRanges([]RawRange{{0, 499}}, size)
		assert.Equal(t, []Span{{Offset: 0, Length: 500}}, spans)
	})

	t.Run("prefix", func(t *testing.T) {
		spans := NormalizeRanges([]RawRange{{500, -1}}, size)
		assert.Equal(t, []Span{{Offset: 500, Length: 500}}, spans)
	})

	t.Run("suffix within size", func(t *testing.T) {
		spans := NormalizeRanges([]RawRange{{-1, 500}}, size)
		assert.Equal(t, []Span{{Offset: 500, Length: 500}}, spans)
	})

	t.Run("suffix larger than size clamps to whole body", func(t *testing.T) {
		spans := NormalizeRanges([]RawRange{{-1, 5000}}, size)
		assert.Equal(t, []Span{{Offset: 0, Length: size}}, spans)
	})

	t.Run("zero-length suffix is dropped", func(t *testing.T) {
		spans := NormalizeRanges([]RawRange{{-1, 0}}, size)
		assert.Empty(t, spans)
	})

	t.Run("prefix at or beyond size is dropped", func(t *testing.T) {
		spans := NormalizeRanges([]RawRange{{1000, -1}}, size)
		assert.Empty(t, spans)
	})

	t.Run("closed range beyond size is dropped", func(t *testing.T) {
		spans := NormalizeRanges([]RawRange{{900, 1200}}, size)
		assert.Empty(t, spans)
	})

	t.Run("zero size never satisfiable", func(t *testing.T) {
		spans := NormalizeRanges([]RawRange{{0, 10}}, 0)
		assert.Empty(t, spans)
	})

	t.Run("idempotent on repeated calls", func(t *testing.T) {
		raws := []RawRange{{0, 99}, {-1, 50}}
		first := NormalizeRanges(raws, size)
		second := NormalizeRanges(raws, size)
		assert.Equal(t, first, second)
	})
}
