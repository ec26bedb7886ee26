package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatHTTPDate(t *testing.T) {
	tm := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "Thu, 05 Mar 2026 12:00:00 GMT", FormatHTTPDate(tm))
}

func TestParseHTTPDate(t *testing.T) {
	tests := []string{
		"Thu, 05 Mar 2026 12:00:00 GMT",
		"Thursday, 05-Mar-26 12:00:00 GMT",
		"Thu Mar  5 12:00:00 2026",
	}
	for _, v := range tests {
		_, ok := parseHTTPDate(v)
		assert.True(t, ok, "expected %q to parse", v)
	}

	_, ok := parseHTTPDate("not a date")
	assert.False(t, ok)
}
