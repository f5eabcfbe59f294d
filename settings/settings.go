package settings

import (
	"github.com/go-home-io/cmdswitch/common"
	"github.com/go-home-io/cmdswitch/providers"
	"github.com/go-home-io/cmdswitch/systems/logger"
)

// SystemLogger returns default system logger.
func (s *settingsProvider) SystemLogger() common.ILoggerProvider {
	return s.logger
}

// Logger returns logger which marks every entry with the system name.
func (s *settingsProvider) Logger(system string) common.ILoggerProvider {
	return logger.NewSystemLogger(s.logger, system)
}

// Cron returns system's cron provider.
func (s *settingsProvider) Cron() providers.ICronProvider {
	return s.cron
}

// Validator returns yaml validator provider.
func (s *settingsProvider) Validator() providers.IValidatorProvider {
	return s.validator
}

// Security returns HTTP API users store.
func (s *settingsProvider) Security() providers.ISecurityProvider {
	return s.security
}

// Platform returns loaded platform settings.
func (s *settingsProvider) Platform() *providers.PlatformSettings {
	return s.platform
}

// Switches returns the latest known switches definitions.
func (s *settingsProvider) Switches() []*providers.SwitchConfig {
	s.Lock()
	defer s.Unlock()
	return s.switches
}
