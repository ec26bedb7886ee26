package engine

// --- G7..L17: existence / identity --------------------------------------

func doG7(ctx *Context, ctrl Controller, e *Engine) node {
	if ctrl.ResourceExists(ctx) {
		ctx.ReadRangeOK(ctrl) // consulted here, once, per the Context doc comment
		return nG8
	}
	return nH7
}

func doG8(ctx *Context, ctrl Controller, e *Engine) node {
	if ctx.Header.Has("If-Match") {
		return nG9
	}
	return nH10
}

func doG9(ctx *Context, ctrl Controller, e *Engine) node {
	if ctx.Header.Get("If-Match") == "*" {
		return nH10
	}
	return nG11
}

func doG11(ctx *Context, ctrl Controller, e *Engine) node {
	etag, _ := resolveETag(ctx, ctrl)
	list := parseETagList(ctx.Header.Get("If-Match"))
	if strongMatch(etag, list) {
		return nH10
	}
	return terminate(ctx, StatusPreconditionFailed)
}

func doH7(ctx *Context, ctrl Controller, e *Engine) node {
	if ctx.Header.Get("If-Match") == "*" {
		return terminate(ctx, StatusPreconditionFailed)
	}
	return nI7
}

func doH10(ctx *Context, ctrl Controller, e *Engine) node {
	if ctx.Header.Has("If-Unmodified-Since") {
		return nH11
	}
	return nI12
}

func doH11(ctx *Context, ctrl Controller, e *Engine) node {
	if _, ok := parseHTTPDate(ctx.Header.Get("If-Unmodified-Since")); ok {
		return nH12
	}
	return nI12 // invalid date: condition ignored per RFC 7232 §3.4
}

func doH12(ctx *Context, ctrl Controller, e *Engine) node {
	ius, _ := parseHTTPDate(ctx.Header.Get("If-Unmodified-Since"))
	lastMod, ok := resolveLastModified(ctx, ctrl)
	if ok && lastMod > ius.Unix() {
		return terminate(ctx, StatusPreconditionFailed)
	}
	return nI12
}

func doI4(ctx *Context, ctrl Controller, e *Engine) node {
	if location, ok := ctrl.MovedPermanently(ctx); ok {
		ctx.RespHeader.Set("Location", location)
		return terminate(ctx, StatusMovedPermanently)
	}
	return nP3
}

func doI7(ctx *Context, ctrl Controller, e *Engine) node {
	if ctx.Method == "PUT" {
		return nI4
	}
	return nK7
}

func doI12(ctx *Context, ctrl Controller, e *Engine) node {
	if ctx.Header.Has("If-None-Match") {
		return nI13
	}
	return nL13
}

func doI13(ctx *Context, ctrl Controller, e *Engine) node {
	if ctx.Header.Get("If-None-Match") == "*" {
		return nJ18
	}
	return nK13
}

func doJ18(ctx *Context, ctrl Controller, e *Engine) node {
	if ctx.Method == "GET" || ctx.Method == "HEAD" {
		applyNotModifiedHeaders(ctx, ctrl)
		return terminate(ctx, StatusNotModified)
	}
	return terminate(ctx, StatusPreconditionFailed)
}

func doK13(ctx *Context, ctrl Controller, e *Engine) node {
	etag, _ := resolveETag(ctx, ctrl)
	list := parseETagList(ctx.Header.Get("If-None-Match"))
	if weakMatch(etag, list) {
		return nJ18
	}
	return nL13
}

func doK5(ctx *Context, ctrl Controller, e *Engine) node {
	if location, ok := ctrl.MovedPermanently(ctx); ok {
		ctx.RespHeader.Set("Location", location)
		return terminate(ctx, StatusMovedPermanently)
	}
	return nL5
}

func doK7(ctx *Context, ctrl Controller, e *Engine) node {
	if ctrl.PreviouslyExisted(ctx) {
		return nK5
	}
	return nL7
}

func doL5(ctx *Context, ctrl Controller, e *Engine) node {
	if location, ok := ctrl.MovedTemporarily(ctx); ok {
		ctx.RespHeader.Set("Location", location)
		return terminate(ctx, StatusMovedTemporarily)
	}
	return nM5
}

func doL7(ctx *Context, ctrl Controller, e *Engine) node {
	if ctx.Method == "POST" {
		return nM7
	}
	return terminate(ctx, StatusNotFound)
}

func doL13(ctx *Context, ctrl Controller, e *Engine) node {
	if ctx.Header.Has("If-Modified-Since") {
		return nL14
	}
	return nM16
}

func doL14(ctx *Context, ctrl Controller, e *Engine) node {
	if _, ok := parseHTTPDate(ctx.Header.Get("If-Modified-Since")); ok {
		return nL15
	}
	return nM16
}

func doL15(ctx *Context, ctrl Controller, e *Engine) node {
	ims, _ := parseHTTPDate(ctx.Header.Get("If-Modified-Since"))
	if ims.After(nowFunc()) {
		return nM16
	}
	return nL17
}

func doL17(ctx *Context, ctrl Controller, e *Engine) node {
	ims, _ := parseHTTPDate(ctx.Header.Get("If-Modified-Since"))
	lastMod, ok := resolveLastModified(ctx, ctrl)
	if ok && lastMod > ims.Unix() {
		return nM16
	}
	applyNotModifiedHeaders(ctx, ctrl)
	return terminate(ctx, StatusNotModified)
}

// applyNotModifiedHeaders sets ETag and Expires for a 304 response while
// leaving Content-Length and Content-Type unset, per the conditional-GET
// invariant. It does not set Cache-Control; one the controller already
// put in RespHeader is kept.
func applyNotModifiedHeaders(ctx *Context, ctrl Controller) {
	if etag, ok := resolveETag(ctx, ctrl); ok {
		ctx.RespHeader.Set("ETag", etag)
	}
	if expires, ok := ctrl.Expires(ctx); ok {
		ctx.RespHeader.Set("Expires", FormatHTTPDate(expires))
	}
}

// nowFunc is indirected so tests can control "now" for If-Modified-Since
// future-date handling without sleeping.
var nowFunc = defaultNow
