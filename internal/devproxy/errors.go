package devproxy

import "errors"

var (
	ErrEmptyPrefix   = errors.New("proxy prefix must not be empty")
	ErrInvalidTarget = errors.New("proxy target must be an absolute http(s) URL")
)
