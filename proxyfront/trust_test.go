package proxyfront

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrustedPolicies(t *testing.T) {
	loopback := net.ParseIP("127.0.0.1")
	external := net.ParseIP("203.0.113.5")

	assert.False(t, (Config{Policy: TrustNone}).Trusted(external))
	assert.True(t, (Config{Policy: TrustAny}).Trusted(external))
	assert.True(t, (Config{Policy: TrustLocal}).Trusted(loopback))
	assert.False(t, (Config{Policy: TrustLocal}).Trusted(external))

	_, cidr, _ := net.ParseCIDR("203.0.113.0/24")
	listCfg := Config{Policy: TrustIPList, IPList: []*net.IPNet{cidr}}
	assert.True(t, listCfg.Trusted(external))
	assert.False(t, listCfg.Trusted(net.ParseIP("198.51.100.9")))
}

func TestTrustedNilPeer(t *testing.T) {
	assert.False(t, (Config{Policy: TrustAny}).Trusted(nil))
}
