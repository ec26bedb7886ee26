// Package proxyfront reconstructs the authoritative request scheme, host,
// port and remote address from Forwarded / X-Forwarded-* headers under a
// configurable trust policy, per spec.md §4.1.
package proxyfront

import "net"

// TrustPolicy names which peers may dictate proxy headers.
type TrustPolicy string

const (
	TrustNone    TrustPolicy = "none"
	TrustAny     TrustPolicy = "any"
	TrustLocal   TrustPolicy = "local"
	TrustIPList  TrustPolicy = "ip-list"
)

// Config configures the front door's trust decision.
type Config struct {
	Policy TrustPolicy
	IPList []*net.IPNet // parsed CIDRs, used only when Policy == TrustIPList
}

// privateRanges are the RFC1918/loopback/link-local/ULA ranges trusted
// under TrustLocal.
var privateRanges = mustParseCIDRs(
	"127.0.0.0/8",
	"10.0.0.0/8",
	"192.168.0.0/16",
	"172.16.0.0/12",
	"169.254.0.0/16",
	"::1/128",
	"fd00::/8",
	"fe80::/10",
)

func mustParseCIDRs(cidrs ...string) []*net.IPNet {
	out := make([]*net.IPNet, 0, len(cidrs))
	for _, c := range cidrs {
		_, n, err := net.ParseCIDR(c)
		if err != nil {
			panic(err) // only reachable if a literal above is malformed
		}
		out = append(out, n)
	}
	return out
}

// Trusted reports whether peer is permitted to dictate proxy headers
// under cfg's policy.
func (cfg Config) Trusted(peer net.IP) bool {
	if peer == nil {
		return false
	}
	switch cfg.Policy {
	case TrustAny:
		return true
	case TrustLocal:
		return inAny(peer, privateRanges)
	case TrustIPList:
		return inAny(peer, cfg.IPList)
	case TrustNone, "":
		return false
	default:
		return false
	}
}

func inAny(ip net.IP, nets []*net.IPNet) bool {
	for _, n := range nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
