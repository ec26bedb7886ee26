package engine

// --- C3..F7: content negotiation ----------------------------------------

func providedMediaTypes(types []ProvidedType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.MediaType
	}
	return out
}

func doC3(ctx *Context, ctrl Controller, e *Engine) node {
	ctx.SetVariances(ctrl.Variances(ctx))
	types := ctrl.ContentTypesProvided(ctx)
	if len(types) == 0 {
		return terminate(ctx, StatusNotAcceptable)
	}
	header := ctx.Header.Get("Accept")
	if header == "" {
		ctx.ContentType = types[0].MediaType
		return nD4
	}
	ctx.MarkConsulted("Accept")
	return nC4
}

func doC4(ctx *Context, ctrl Controller, e *Engine) node {
	types := ctrl.ContentTypesProvided(ctx)
	selected, ok := SelectMediaType(ctx.Header.Get("Accept"), providedMediaTypes(types))
	if !ok {
		return terminate(ctx, StatusNotAcceptable)
	}
	ctx.ContentType = selected
	return nD4
}

func doD4(ctx *Context, ctrl Controller, e *Engine) node {
	header := ctx.Header.Get("Accept-Language")
	if header == "" {
		return nE5
	}
	ctx.MarkConsulted("Accept-Language")
	return nD5
}

func doD5(ctx *Context, ctrl Controller, e *Engine) node {
	header := ctx.Header.Get("Accept-Language")
	ranges := parseWeightedList(header)
	best := -1.0
	chosen := ""
	for _, r := range ranges {
		if r.q <= best {
			continue
		}
		if ctrl.LanguageAvailable(ctx, r.token) {
			best = r.q
			chosen = r.token
		}
	}
	if chosen == "" {
		return terminate(ctx, StatusNotAcceptable)
	}
	ctx.Language = chosen
	return nE5
}

func doE5(ctx *Context, ctrl Controller, e *Engine) node {
	charsets := ctrl.CharsetsProvided(ctx)
	if len(charsets) == 1 && charsets[0] == NoCharset {
		ctx.Charset = NoCharset
		return nF6
	}
	header := ctx.Header.Get("Accept-Charset")
	if header == "" {
		if len(charsets) > 0 {
			ctx.Charset = charsets[0]
		}
		return nF6
	}
	ctx.MarkConsulted("Accept-Charset")
	return nE6
}

func doE6(ctx *Context, ctrl Controller, e *Engine) node {
	charsets := ctrl.CharsetsProvided(ctx)
	selected, ok := SelectCharset(ctx.Header.Get("Accept-Charset"), charsets)
	if !ok {
		return terminate(ctx, StatusNotAcceptable)
	}
	ctx.Charset = selected
	return nF6
}

func doF6(ctx *Context, ctrl Controller, e *Engine) node {
	encodings := ctrl.ContentEncodingsProvided(ctx)
	if len(encodings) == 0 {
		encodings = []string{"identity"}
	}
	header := ctx.Header.Get("Accept-Encoding")
	if header == "" {
		ctx.ContentEncoding = encodings[0]
		return nG7
	}
	ctx.MarkConsulted("Accept-Encoding")
	return nF7
}

func doF7(ctx *Context, ctrl Controller, e *Engine) node {
	encodings := ctrl.ContentEncodingsProvided(ctx)
	if len(encodings) == 0 {
		encodings = []string{"identity"}
	}
	selected, ok := SelectEncoding(ctx.Header.Get("Accept-Encoding"), encodings)
	if !ok {
		return terminate(ctx, StatusNotAcceptable)
	}
	ctx.ContentEncoding = selected
	return nG7
}
