// Package config contains platform configuration file access.
package config

import (
	"github.com/go-home-io/cmdswitch/common"
)

// IConfigProvider provides capabilities for loading and storing system configuration.
type IConfigProvider interface {
	Load() ([]byte, error)
	Save([]byte) error
	Changed() bool
	Location() string
}

// ConstructConfig contains data required for a new config provider.
type ConstructConfig struct {
	Location string
	Logger   common.ILoggerProvider
}

// NewConfigProvider constructs a new config provider.
// Empty location falls back to the default config path.
func NewConfigProvider(ctor *ConstructConfig) IConfigProvider {
	return getFsProvider(ctor)
}
