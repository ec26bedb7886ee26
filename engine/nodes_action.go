package engine

import "time"

// --- M5..P11: action -----------------------------------------------------

func doM5(ctx *Context, ctrl Controller, e *Engine) node {
	if ctx.Method == "POST" {
		return nN5
	}
	return terminate(ctx, StatusGone)
}

func doM7(ctx *Context, ctrl Controller, e *Engine) node {
	if ctrl.AllowMissingPost(ctx) {
		return nN11
	}
	return terminate(ctx, StatusNotFound)
}

func doM16(ctx *Context, ctrl Controller, e *Engine) node {
	switch ctx.Method {
	case "DELETE":
		return nM20
	case "POST":
		return nN16
	case "PUT":
		return nO14
	default:
		return nO18
	}
}

func doM20(ctx *Context, ctrl Controller, e *Engine) node {
	ok, err := ctrl.DeleteResource(ctx)
	if err != nil {
		return terminate(ctx, StatusInternalServerError)
	}
	if !ok {
		return terminate(ctx, StatusInternalServerError)
	}
	if ctrl.DeleteCompleted(ctx) {
		if ctx.RespBody.IsEmpty() {
			return terminate(ctx, StatusNoContent)
		}
		return terminate(ctx, StatusOK)
	}
	return terminate(ctx, StatusAccepted)
}

func doN5(ctx *Context, ctrl Controller, e *Engine) node {
	if ctrl.PostIsCreate(ctx) {
		return nN11
	}
	return nN16
}

func doN11(ctx *Context, ctrl Controller, e *Engine) node {
	path, ok := ctrl.CreatePath(ctx)
	if !ok {
		return terminate(ctx, StatusInternalServerError)
	}
	location := path
	if base, ok := ctrl.BaseURI(ctx); ok {
		location = base + path
	}
	ctx.RespHeader.Set("Location", location)
	if status, ok := acceptRequestBody(ctx, ctrl); !ok {
		return terminate(ctx, status)
	}
	return nP11
}

func doN16(ctx *Context, ctrl Controller, e *Engine) node {
	outcome, err := ctrl.ProcessPost(ctx)
	if err != nil {
		return terminate(ctx, StatusInternalServerError)
	}
	if outcome.Halt {
		return terminate(ctx, outcome.HaltStatus)
	}
	if outcome.Redirect {
		ctx.RespHeader.Set("Location", outcome.RedirectURI)
		return terminate(ctx, StatusSeeOther)
	}
	if !outcome.Handled {
		return terminate(ctx, StatusInternalServerError)
	}
	return nP11
}

func doO14(ctx *Context, ctrl Controller, e *Engine) node {
	if ctrl.IsConflict(ctx) {
		return terminate(ctx, StatusConflict)
	}
	return nO16
}

func doO16(ctx *Context, ctrl Controller, e *Engine) node {
	if status, ok := acceptRequestBody(ctx, ctrl); !ok {
		return terminate(ctx, status)
	}
	return nO18
}

func doO18(ctx *Context, ctrl Controller, e *Engine) node {
	if ctx.Method == "GET" || ctx.Method == "HEAD" {
		if etag, ok := resolveETag(ctx, ctrl); ok {
			ctx.RespHeader.Set("ETag", etag)
		}
		if lastMod, ok := resolveLastModified(ctx, ctrl); ok {
			ctx.RespHeader.Set("Last-Modified", FormatHTTPDate(time.Unix(lastMod, 0)))
		}
		if expires, ok := ctrl.Expires(ctx); ok {
			ctx.RespHeader.Set("Expires", FormatHTTPDate(expires))
		}
	}
	if ctrl.MultipleChoices(ctx) {
		return terminate(ctx, StatusMultipleChoices)
	}
	return nO20
}

func doO20(ctx *Context, ctrl Controller, e *Engine) node {
	if (ctx.Method == "GET" || ctx.Method == "HEAD") && ctx.RespBody.IsEmpty() {
		if err := renderBody(ctx, ctrl); err != nil {
			return terminate(ctx, StatusInternalServerError)
		}
	}
	if ctx.Status != 0 {
		return terminate(ctx, ctx.Status)
	}
	if ctx.RespBody.IsEmpty() {
		return terminate(ctx, StatusNoContent)
	}
	return terminate(ctx, StatusOK)
}

func doP3(ctx *Context, ctrl Controller, e *Engine) node {
	if ctrl.IsConflict(ctx) {
		return terminate(ctx, StatusConflict)
	}
	if status, ok := acceptRequestBody(ctx, ctrl); !ok {
		return terminate(ctx, status)
	}
	return nP11
}

func doP11(ctx *Context, ctrl Controller, e *Engine) node {
	if ctx.RespHeader.Has("Location") {
		return terminate(ctx, StatusCreated)
	}
	return nO20
}

// acceptRequestBody locates the AcceptedType matching the request's
// Content-Type and invokes it, the shared step behind O16 (PUT), N11
// (POST-as-create) and P3 (create-on-moved-PUT).
func acceptRequestBody(ctx *Context, ctrl Controller) (status int, ok bool) {
	accepted := ctrl.ContentTypesAccepted(ctx)
	if len(accepted) == 0 {
		return StatusUnsupportedMediaType, false
	}
	reqType := ctx.Header.Get("Content-Type")
	for _, a := range accepted {
		if mediaTypeMatches(a.MediaType, reqType) {
			handled, err := a.Accept(ctx)
			if err != nil {
				return StatusInternalServerError, false
			}
			if !handled {
				return StatusBadRequest, false
			}
			return 0, true
		}
	}
	return StatusUnsupportedMediaType, false
}

func renderBody(ctx *Context, ctrl Controller) error {
	for _, t := range ctrl.ContentTypesProvided(ctx) {
		if t.MediaType == ctx.ContentType {
			body, err := t.Render(ctx)
			if err != nil {
				return err
			}
			ctx.RespBody = body
			return nil
		}
	}
	return nil
}

func mediaTypeMatches(pattern, actual string) bool {
	if actual == "" {
		return pattern == "*/*"
	}
	// ignore parameters (e.g. "; charset=utf-8") on the request side
	for i := 0; i < len(actual); i++ {
		if actual[i] == ';' {
			actual = actual[:i]
			break
		}
	}
	return pattern == actual || pattern == "*/*"
}
