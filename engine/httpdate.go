package engine

import "time"

// httpDateLayouts covers the three date formats RFC 7231 §7.1.1.1
// requires servers to accept, newest-preferred first (RFC 1123) down to
// the obsolete asctime form.
var httpDateLayouts = []string{
	time.RFC1123,
	time.RFC1123Z,
	"Monday, 02-Jan-06 15:04:05 MST", // RFC 850
	"Mon Jan _2 15:04:05 2006",       // asctime
}

// parseHTTPDate parses an HTTP-date header value, returning ok=false for
// any unparseable value (callers treat that as "condition not present"
// per RFC 7231 §7.1.1.1).
func parseHTTPDate(value string) (time.Time, bool) {
	for _, layout := range httpDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// FormatHTTPDate renders t in RFC 1123 GMT form for Date/Last-Modified/
// Expires headers.
func FormatHTTPDate(t time.Time) string {
	return t.UTC().Format(http1123)
}

const http1123 = "Mon, 02 Jan 2006 15:04:05 GMT"
