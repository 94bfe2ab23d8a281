// Package document merges the generated policy groups with the raw proxies
// and the static tables into one configuration document.
package document

import (
	"gopkg.in/yaml.v3"

	"github.com/John-Robertt/policygen-go/internal/model"
	"github.com/John-Robertt/policygen-go/internal/static"
)

// Config is the full yaml-ready document. Field order here is emission
// order in the output.
type Config struct {
	MixedPort          int    `yaml:"mixed-port,omitempty"`
	AllowLan           bool   `yaml:"allow-lan,omitempty"`
	Mode               string `yaml:"mode,omitempty"`
	LogLevel           string `yaml:"log-level,omitempty"`
	ExternalController string `yaml:"external-controller,omitempty"`

	IPv6              bool `yaml:"ipv6"`
	KeepAliveInterval int  `yaml:"keep-alive-interval,omitempty"`

	DNS     static.DNS     `yaml:"dns"`
	Sniffer static.Sniffer `yaml:"sniffer"`

	Proxies     []map[string]any `yaml:"proxies"`
	ProxyGroups []model.Group    `yaml:"proxy-groups"`
	Rules       []string         `yaml:"rules"`
}

// Build merges one run's outputs. It validates the static rule table
// against the emitted groups before composing; a dangling reference there
// is a programming defect and fails the run instead of shipping a broken
// document.
func Build(proxies []model.Proxy, groups []model.Group, flags model.Flags) (Config, error) {
	rules := static.Rules(flags)
	if err := static.ValidateRules(rules, groups); err != nil {
		return Config{}, err
	}

	cfg := Config{
		IPv6:        flags.IPv6,
		DNS:         static.DNSBlock(flags),
		Sniffer:     static.SnifferBlock(flags),
		Proxies:     make([]map[string]any, 0, len(proxies)),
		ProxyGroups: groups,
		Rules:       rules,
	}

	if flags.FullConfig {
		cfg.MixedPort = 7890
		cfg.AllowLan = true
		cfg.Mode = "rule"
		cfg.LogLevel = "info"
		cfg.ExternalController = "127.0.0.1:9090"
	}
	if flags.KeepAlive {
		cfg.KeepAliveInterval = 30
	}

	for _, p := range proxies {
		cfg.Proxies = append(cfg.Proxies, p.Document())
	}
	return cfg, nil
}

// Marshal renders the document as YAML. yaml.v3 sorts map keys, so the
// output is byte-stable for identical input.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
