// Package nethttp bridges net/http to the decision engine: it builds an
// engine.Context from an *http.Request (via proxyfront), drives
// Engine.Decide, and emits the result through an http.ResponseWriter-backed
// Sink.
package nethttp

import (
	"net/http"

	"github.com/hexraft/webmachine/engine"
	"github.com/hexraft/webmachine/proxyfront"
)

// Resolver maps a request path to the Controller that should handle it.
// A nil Controller with ok=false yields a 404 before the decision graph
// even starts, matching a router miss.
type Resolver interface {
	Resolve(ctx *engine.Context) (engine.Controller, bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx *engine.Context) (engine.Controller, bool)

func (f ResolverFunc) Resolve(ctx *engine.Context) (engine.Controller, bool) { return f(ctx) }

// Logger is the narrow logging surface the handler needs.
type Logger interface {
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)
}

// Handler adapts an Engine + Emitter + Resolver into an http.Handler.
type Handler struct {
	Engine     *engine.Engine
	Emitter    *engine.Emitter
	Resolver   Resolver
	ProxyTrust proxyfront.Config
	Logger     Logger
}

// NewHandler builds a Handler.
func NewHandler(eng *engine.Engine, em *engine.Emitter, resolver Resolver, trust proxyfront.Config, log Logger) *Handler {
	return &Handler{Engine: eng, Emitter: em, Resolver: resolver, ProxyTrust: trust, Logger: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := proxyfront.Resolve(h.ProxyTrust, proxyfront.RawRequest{
		PeerAddr: r.RemoteAddr,
		Scheme:   schemeOf(r),
		Host:     r.Host,
		Header:   engine.Headers(r.Header.Clone()),
	}, h.Logger)

	ctx.Method = r.Method
	ctx.Version = r.Proto
	ctx.Path = r.URL.Path
	ctx.Query = r.URL.RawQuery
	ctx.Body = r.Body
	if r.ContentLength >= 0 {
		ctx.EntityLen = r.ContentLength
	}

	ctrl, ok := h.Resolver.Resolve(ctx)
	if !ok {
		http.NotFound(w, r)
		return
	}

	h.Engine.Decide(ctx, ctrl)
	ctx.RespHeader.SetIfAbsent("X-Request-Id", ctx.RequestID)

	sink := &responseWriterSink{w: w}
	if err := h.Emitter.Emit(ctx, sink); err != nil && h.Logger != nil {
		h.Logger.Error("emit failed", "request_id", ctx.RequestID, "error", err.Error())
	}
}

func schemeOf(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

// responseWriterSink adapts http.ResponseWriter to engine.Sink.
type responseWriterSink struct {
	w           http.ResponseWriter
	wroteHeader bool
}

func (s *responseWriterSink) WriteHeader(status int, headers engine.Headers) {
	hdr := s.w.Header()
	for k, vs := range headers {
		for i, v := range vs {
			if i == 0 {
				hdr.Set(k, v)
			} else {
				hdr.Add(k, v)
			}
		}
	}
	s.w.WriteHeader(status)
	s.wroteHeader = true
}

func (s *responseWriterSink) Write(p []byte) (int, error) {
	if !s.wroteHeader {
		s.w.WriteHeader(http.StatusOK)
		s.wroteHeader = true
	}
	return s.w.Write(p)
}

func (s *responseWriterSink) Finish() error { return nil }
