package config

import (
	"errors"
)

// Sentinel kinds for config failures, so callers can tell a rejected
// value from a file or env read that failed, via errors.Is.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
