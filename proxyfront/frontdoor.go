package proxyfront

import (
	"net"

	"github.com/google/uuid"

	"github.com/hexraft/webmachine/engine"
)

// Logger is the narrow slice of structured logging the front door needs,
// satisfied by internal/logging's zap wrapper without importing zap here.
type Logger interface {
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)
}

// RawRequest carries the pieces of an inbound connection the front door
// needs before an engine.Context can be built: the literal socket peer,
// the scheme the listener itself terminated (e.g. "https" for a TLS
// listener, "http" otherwise), and the as-received header set.
type RawRequest struct {
	PeerAddr string // host:port, as returned by net.Conn.RemoteAddr
	Scheme   string // the listener's own scheme, pre-proxy-resolution
	Host     string // the Host header, pre-sanitization
	Header   engine.Headers
}

// Resolve populates the proxy-facing fields of ctx (Scheme, Host, Port,
// Remote, ViaProxy, RequestID) from req, honoring cfg's trust policy. When
// the peer is untrusted, every forwarded header is ignored and the
// connection's own scheme/host/peer are used verbatim. A Forwarded header
// takes precedence over legacy X-Forwarded-* headers when both are present,
// per spec.md §4.1.
func Resolve(cfg Config, req RawRequest, log Logger) *engine.Context {
	ctx := engine.NewContext()
	ctx.Header = req.Header
	ctx.PeerAddr = req.PeerAddr

	peerIP := hostIP(req.PeerAddr)
	trusted := cfg.Trusted(peerIP)

	scheme := req.Scheme
	host := SanitizeHost(req.Host)
	port := DefaultPort(scheme)
	remote := req.PeerAddr
	if peerIP != nil {
		remote = peerIP.String()
	}
	viaProxy := false

	if trusted {
		if fwd := req.Header.Get("Forwarded"); fwd != "" {
			if el, ok := ParseForwarded(fwd); ok {
				viaProxy = true
				if el.Proto != "" {
					scheme = el.Proto
				}
				if el.Host != "" {
					host = SanitizeHost(el.Host)
				}
				if el.Port != "" {
					if p, ok := ParsePort(el.Port); ok {
						port = p
					}
				}
				if el.For != "" {
					if ip, printable := ParseFor(el.For); ip != nil {
						remote = ip.String()
					} else if printable != "" {
						remote = printable
					}
				}
				if el.Port == "" {
					port = DefaultPort(scheme)
				}
			}
		} else {
			if v := req.Header.Get("X-Forwarded-Proto"); v != "" {
				viaProxy = true
				scheme = v
			}
			if v := req.Header.Get("X-Forwarded-Host"); v != "" {
				viaProxy = true
				host = SanitizeHost(v)
			}
			if v := req.Header.Get("X-Forwarded-Port"); v != "" {
				if p, ok := ParsePort(v); ok {
					viaProxy = true
					port = p
				}
			} else if viaProxy {
				port = DefaultPort(scheme)
			}
			if v := req.Header.Get("X-Forwarded-For"); v != "" {
				viaProxy = true
				if first := ParseXForwardedFor(v); first != "" {
					if ip, printable := ParseFor(first); ip != nil {
						remote = ip.String()
					} else if printable != "" {
						remote = printable
					}
				}
			}
		}
		if log != nil && viaProxy {
			log.Info("trusted proxy headers applied", "peer", req.PeerAddr, "scheme", scheme, "host", host, "remote", remote)
		}
	} else if log != nil && hasAnyForwardedHeader(req.Header) {
		log.Error("ignoring forwarded headers from untrusted peer", "peer", req.PeerAddr)
	}

	ctx.Scheme = scheme
	ctx.Host = host
	ctx.Port = port
	ctx.Remote = remote
	ctx.ViaProxy = viaProxy
	ctx.RequestID = stampRequestID(req.Header)
	return ctx
}

func hasAnyForwardedHeader(h engine.Headers) bool {
	return h.Has("Forwarded") || h.Has("X-Forwarded-For") || h.Has("X-Forwarded-Proto") ||
		h.Has("X-Forwarded-Host") || h.Has("X-Forwarded-Port")
}

func hostIP(addr string) net.IP {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}
	return net.ParseIP(host)
}

// stampRequestID reuses an inbound "X-Request-Id" if present (useful when
// an upstream load balancer already assigned one), else mints a fresh
// UUIDv4, per SPEC_FULL.md §4.1.
func stampRequestID(h engine.Headers) string {
	if id := h.Get("X-Request-Id"); id != "" {
		return id
	}
	return uuid.NewString()
}
