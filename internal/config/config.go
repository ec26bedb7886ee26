// Package config loads and hot-reloads the engine's YAML configuration.
package config

import (
	"fmt"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hexraft/webmachine/engine"
	"github.com/hexraft/webmachine/proxyfront"
)

// Config is the top-level configuration document.
type Config struct {
	ListenAddr    string   `yaml:"listen_addr"`
	ServerHeader  string   `yaml:"server_header"`
	UseSendfile   string   `yaml:"use_sendfile"` // "disabled" | "in-process" | "offload"
	FileChunkSize int      `yaml:"file_chunk_size"`
	IdleTimeout   string   `yaml:"idle_timeout"`
	ProxyTrust    string   `yaml:"proxy_trust"`
	ProxyIPList   []string `yaml:"proxy_ip_list"`
	LogLevel      string   `yaml:"log_level"`
	MetricsAddr   string   `yaml:"metrics_addr"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		ListenAddr:    ":8080",
		ServerHeader:  "webmachine",
		UseSendfile:   "offload",
		FileChunkSize: 65536,
		IdleTimeout:   "60s",
		ProxyTrust:    "none",
		LogLevel:      "info",
		MetricsAddr:   ":9090",
	}
}

// Load reads and parses path into a Config, filling unset fields from
// Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// ProxyConfig translates the YAML proxy_trust/proxy_ip_list fields into a
// proxyfront.Config, per spec.md §4.1's trust policy.
func (c *Config) ProxyConfig() (proxyfront.Config, error) {
	pc := proxyfront.Config{Policy: proxyfront.TrustPolicy(c.ProxyTrust)}
	if pc.Policy == "" {
		pc.Policy = proxyfront.TrustNone
	}
	if pc.Policy == proxyfront.TrustIPList {
		for _, cidr := range c.ProxyIPList {
			_, n, err := net.ParseCIDR(cidr)
			if err != nil {
				return pc, fmt.Errorf("config: proxy_ip_list entry %q: %w", cidr, err)
			}
			pc.IPList = append(pc.IPList, n)
		}
	}
	return pc, nil
}

// EngineConfig translates the YAML fields into an engine.EngineConfig,
// defaulting an unparseable idle_timeout to 60s.
func (c *Config) EngineConfig() engine.EngineConfig {
	idle, err := time.ParseDuration(c.IdleTimeout)
	if err != nil || idle <= 0 {
		idle = 60 * time.Second
	}
	sendfile := c.UseSendfile
	if sendfile == "" {
		sendfile = "disabled"
	}
	return engine.EngineConfig{
		ServerHeader:  c.ServerHeader,
		UseSendfile:   sendfile,
		FileChunkSize: c.FileChunkSize,
		IdleTimeout:   idle,
	}
}

// Store holds the live configuration and swaps it atomically on reload,
// so request-handling goroutines never observe a half-written Config.
type Store struct {
	mu  sync.Mutex
	val atomic.Pointer[Config]
}

// NewStore wraps an initial Config for atomic hot-reload access.
func NewStore(initial *Config) *Store {
	s := &Store{}
	s.val.Store(initial)
	return s
}

// Get returns the currently active configuration.
func (s *Store) Get() *Config { return s.val.Load() }

// Swap installs cfg as the active configuration.
func (s *Store) Swap(cfg *Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.val.Store(cfg)
}
