package config

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const proxyEnvPrefix = "CONSOLE_PROXY_"

// ProxyRule forwards every request under its prefix to Target.
type ProxyRule struct {
	Prefix string `koanf:"-"`
	Target string `koanf:"target"`
}

// ProxyConfig is the dev server's prefix → upstream table.
type ProxyConfig struct {
	// ChangeOrigin sends the target host as the Host header.
	ChangeOrigin bool `koanf:"change_origin"`
	// LogRewrites logs the original and rewritten path of every request.
	LogRewrites bool `koanf:"log_rewrites"`
	// WS allows websocket upgrades through the proxy.
	WS bool `koanf:"ws"`

	Rules map[string]ProxyRule `koanf:"rules"`
}

func DefaultProxyConfig() map[string]any {
	return map[string]any{
		"change_origin":          true,
		"log_rewrites":           false,
		"ws":                     true,
		"rules./api.target":      "http://localhost:8020/",
		"rules./api/auth.target": "http://localhost:8090/",
	}
}

// LoadProxy layers the proxy table from defaults, the YAML file at path
// (skipped when path is empty) and CONSOLE_PROXY_* environment variables,
// lowest precedence first. A file that defines rules replaces the default
// rules rather than merging into them.
func LoadProxy(path string) (*ProxyConfig, error) {
	k := koanf.New(".")

	for key, value := range DefaultProxyConfig() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to load proxy defaults: %w", err)
		}
	}

	if path != "" {
		fk := koanf.New(".")
		if err := fk.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load proxy config %s: %w", path, err)
		}
		if fk.Exists("rules") {
			k.Delete("rules")
		}
		if err := k.Merge(fk); err != nil {
			return nil, fmt.Errorf("failed to merge proxy config: %w", err)
		}
	}

	// CONSOLE_PROXY_LOG_REWRITES -> log_rewrites
	envProvider := env.Provider(proxyEnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, proxyEnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load proxy env: %w", err)
	}

	var cfg ProxyConfig
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to decode proxy config: %w", err)
	}

	for prefix, rule := range cfg.Rules {
		rule.Prefix = prefix
		cfg.Rules[prefix] = rule
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every rule has a slash-led prefix and an absolute
// http(s) target.
func (c *ProxyConfig) Validate() error {
	if len(c.Rules) == 0 {
		return ErrNoProxyRules
	}
	for _, rule := range c.RuleList() {
		if !strings.HasPrefix(rule.Prefix, "/") {
			return fmt.Errorf("%w: prefix %q must start with /", ErrInvalidProxyRule, rule.Prefix)
		}
		target, err := url.Parse(rule.Target)
		if err != nil {
			return fmt.Errorf("%w: target %q for %s: %v", ErrInvalidProxyRule, rule.Target, rule.Prefix, err)
		}
		if (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
			return fmt.Errorf("%w: target %q for %s must be an absolute http(s) URL", ErrInvalidProxyRule, rule.Target, rule.Prefix)
		}
	}
	return nil
}

// RuleList returns the rules sorted by prefix.
func (c *ProxyConfig) RuleList() []ProxyRule {
	rules := make([]ProxyRule, 0, len(c.Rules))
	for prefix, rule := range c.Rules {
		rule.Prefix = prefix
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].Prefix < rules[j].Prefix })
	return rules
}
