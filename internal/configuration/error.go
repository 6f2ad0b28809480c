package configuration

import "errors"

var (
	// ErrReadFailed occurs when a configuration file exists but cannot be
	// read or parsed.
	ErrReadFailed = errors.New("failed to read configuration")

	// ErrInvalidValue occurs when a configuration value cannot be parsed into
	// the type of its key.
	ErrInvalidValue = errors.New("invalid configuration value")
)
