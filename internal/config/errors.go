package config

import "errors"

var (
	ErrNoProxyRules     = errors.New("proxy config has no rules")
	ErrInvalidProxyRule = errors.New("invalid proxy rule")
)
