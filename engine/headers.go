package engine

import (
	"sort"
	"strings"
)

// Headers is a case-insensitive multi-value header map. Keys are stored
// canonicalized (e.g. "Content-Type") the way net/http.Header does, but
// lookups normalize the requested key too so callers never have to think
// about casing.
type Headers map[string][]string

func canonKey(k string) string {
	if k == "" {
		return k
	}
	b := []byte(strings.ToLower(k))
	upperNext := true
	for i, c := range b {
		if upperNext && c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
		upperNext = c == '-'
	}
	return string(b)
}

// Set replaces all values for key.
func (h Headers) Set(key, value string) { h[canonKey(key)] = []string{value} }

// Add appends a value for key.
func (h Headers) Add(key, value string) {
	k := canonKey(key)
	h[k] = append(h[k], value)
}

// Get returns the first value for key, or "" if absent.
func (h Headers) Get(key string) string {
	v := h[canonKey(key)]
	if len(v) == 0 {
		return ""
	}
	return v[0]
}

// Values returns all values for key.
func (h Headers) Values(key string) []string { return h[canonKey(key)] }

// Has reports whether key has at least one value.
func (h Headers) Has(key string) bool { return len(h[canonKey(key)]) > 0 }

// Del removes all values for key.
func (h Headers) Del(key string) { delete(h, canonKey(key)) }

// SetIfAbsent sets key only if it has no existing value.
func (h Headers) SetIfAbsent(key, value string) {
	if !h.Has(key) {
		h.Set(key, value)
	}
}

// Clone returns a deep copy.
func (h Headers) Clone() Headers {
	out := make(Headers, len(h))
	for k, v := range h {
		cp := make([]string, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

// SortedKeys returns the header names in stable sorted order, useful for
// deterministic test assertions and wire emission.
func (h Headers) SortedKeys() []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// negotiationDimensionHeaders lists the negotiation dimensions in the
// fixed order the Vary header composes them.
var negotiationDimensionHeaders = []string{"Accept", "Accept-Language", "Accept-Charset", "Accept-Encoding"}

// composeVary builds the Vary header value from the dimensions actually
// consulted during negotiation (tracked on the Context) plus the
// controller's own `variances` list. Emits nothing unless at least two
// entries are present, per the Vary invariant.
func composeVary(consulted map[string]bool, variances []string) string {
	var parts []string
	for _, dim := range negotiationDimensionHeaders {
		if consulted[dim] {
			parts = append(parts, dim)
		}
	}
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		seen[p] = true
	}
	for _, v := range variances {
		if !seen[v] {
			parts = append(parts, v)
			seen[v] = true
		}
	}
	if len(parts) < 2 {
		return ""
	}
	return strings.Join(parts, ", ")
}
