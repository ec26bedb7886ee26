package engine

import "strings"

// parseETagList splits a comma-separated If-Match / If-None-Match field
// value into its individual entity-tag tokens, preserving any "W/" weak
// prefix for the caller's comparison function to interpret.
func parseETagList(header string) []string {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil
	}
	if header == "*" {
		return []string{"*"}
	}
	var out []string
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isWeak(tag string) bool { return strings.HasPrefix(tag, "W/") }

func stripWeak(tag string) string {
	if isWeak(tag) {
		return tag[2:]
	}
	return tag
}

// strongMatch implements RFC 7232 §2.3.2's strong comparison: two entity
// tags match iff neither is weak and their opaque-tags are identical.
// Used by If-Match (G11).
func strongMatch(etag string, list []string) bool {
	if isWeak(etag) {
		return false
	}
	for _, candidate := range list {
		if candidate == "*" {
			return true
		}
		if isWeak(candidate) {
			continue
		}
		if candidate == etag {
			return true
		}
	}
	return false
}

// weakMatch implements RFC 7232 §2.3.2's weak comparison: entity tags
// match if their opaque-tags are identical, ignoring weakness. Used by
// If-None-Match (K13).
func weakMatch(etag string, list []string) bool {
	for _, candidate := range list {
		if candidate == "*" {
			return true
		}
		if stripWeak(candidate) == stripWeak(etag) {
			return true
		}
	}
	return false
}

// resolveETag consults GenerateETag at most once per request, caching the
// result on Context per the "consulted exactly once" invariant. The
// controller is expected to return an already-quoted entity-tag (e.g.
// `"v1"` or `W/"v1"`), matching common webmachine convention.
func resolveETag(ctx *Context, ctrl Controller) (string, bool) {
	if tag, ok := ctx.CachedETag(); ok {
		return tag, tag != ""
	}
	tag, ok := ctrl.GenerateETag(ctx)
	if ok {
		ctx.CacheETag(tag)
	} else {
		ctx.CacheETag("")
	}
	return tag, ok
}

// resolveLastModified consults LastModified at most once per request.
func resolveLastModified(ctx *Context, ctrl Controller) (int64, bool) {
	if t, ok := ctx.CachedLastModified(); ok {
		return t, t != 0
	}
	t, ok := ctrl.LastModified(ctx)
	if ok {
		unix := t.Unix()
		ctx.CacheLastModified(unix)
		return unix, true
	}
	ctx.CacheLastModified(0)
	return 0, false
}
