package engine

import "strings"

// --- B13..B3: service / request well-formedness -------------------------

func doB13(ctx *Context, ctrl Controller, e *Engine) node {
	if !ctrl.ServiceAvailable(ctx) {
		return terminate(ctx, StatusServiceUnavailable)
	}
	return nB12
}

func doB12(ctx *Context, ctrl Controller, e *Engine) node {
	for _, m := range ctrl.KnownMethods(ctx) {
		if m == ctx.Method { // compared byte-exact uppercase ASCII
			return nB11
		}
	}
	return terminate(ctx, StatusNotImplemented)
}

func doB11(ctx *Context, ctrl Controller, e *Engine) node {
	if ctrl.URITooLong(ctx) {
		return terminate(ctx, StatusRequestURITooLong)
	}
	return nB10
}

func doB10(ctx *Context, ctrl Controller, e *Engine) node {
	allowed := ctrl.AllowedMethods(ctx)
	for _, m := range allowed {
		if m == ctx.Method {
			return nB9
		}
	}
	ctx.RespHeader.Set("Allow", strings.Join(allowed, ", "))
	return terminate(ctx, StatusMethodNotAllowed)
}

func doB9(ctx *Context, ctrl Controller, e *Engine) node {
	if ctrl.MalformedRequest(ctx) {
		return terminate(ctx, StatusBadRequest)
	}
	return nB8
}

func doB8(ctx *Context, ctrl Controller, e *Engine) node {
	ok, challenge := ctrl.IsAuthorized(ctx)
	if !ok {
		if challenge != "" {
			ctx.RespHeader.Set("WWW-Authenticate", challenge)
		}
		return terminate(ctx, StatusUnauthorized)
	}
	return nB7
}

func doB7(ctx *Context, ctrl Controller, e *Engine) node {
	if ctrl.Forbidden(ctx) {
		return terminate(ctx, StatusForbidden)
	}
	return nB6
}

func doB6(ctx *Context, ctrl Controller, e *Engine) node {
	if !ctrl.ValidContentHeaders(ctx) {
		return terminate(ctx, StatusNotImplemented)
	}
	return nB5
}

func doB5(ctx *Context, ctrl Controller, e *Engine) node {
	if !ctrl.KnownContentType(ctx) {
		return terminate(ctx, StatusUnsupportedMediaType)
	}
	return nB4
}

func doB4(ctx *Context, ctrl Controller, e *Engine) node {
	if !ctrl.ValidEntityLength(ctx) {
		return terminate(ctx, StatusRequestEntityTooLarge)
	}
	return nB3
}

func doB3(ctx *Context, ctrl Controller, e *Engine) node {
	if ctx.Method != "OPTIONS" {
		return nC3
	}
	for k, vs := range ctrl.Options(ctx) {
		for _, v := range vs {
			ctx.RespHeader.Add(k, v)
		}
	}
	ctx.RespHeader.SetIfAbsent("Allow", strings.Join(ctrl.AllowedMethods(ctx), ", "))
	return terminate(ctx, StatusOK)
}
