// Package settings is responsible for parsing yaml-based configuration.
package settings

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-home-io/cmdswitch/common"
	"github.com/go-home-io/cmdswitch/providers"
	"github.com/go-home-io/cmdswitch/systems/config"
	"github.com/go-home-io/cmdswitch/systems/logger"
	"github.com/go-home-io/cmdswitch/systems/secret"
	"github.com/go-home-io/cmdswitch/systems/security"
	"github.com/go-home-io/cmdswitch/utils"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	// Logger system.
	logSystem = "settings"
	// Key of the switches list in the platform file.
	switchesKey = "switches"
	// Logger flushing schedule.
	flushSpec = "@every 10s"
)

// StartUpOptions defines arguments allowed by the system.
type StartUpOptions struct {
	Config   string `short:"c" long:"config" description:"Platform config file. Defaults to ./configs/config.yaml."`
	LogLevel string `short:"l" long:"log-level" description:"Overrides configured log level."`
}

// System settings.
type settingsProvider struct {
	sync.Mutex

	logger    common.ILoggerProvider
	cron      providers.ICronProvider
	validator providers.IValidatorProvider
	config    config.IConfigProvider
	template  ITemplateProvider
	security  providers.ISecurityProvider

	platform *providers.PlatformSettings
	switches []*providers.SwitchConfig
	logLevel string
}

// Contains data required for a new settings provider.
type constructSettings struct {
	Options   *StartUpOptions
	NewLogger func(level string) common.ILoggerProvider
	Cron      providers.ICronProvider
}

// Load system configuration.
func Load(options *StartUpOptions) providers.ISettingsProvider {
	s, err := newSettingsProvider(&constructSettings{
		Options:   options,
		NewLogger: logger.NewConsoleLogger,
		Cron:      utils.NewCron(),
	})

	if err != nil {
		s.logger.Fatal("Failed to load configuration", err, common.LogSystemToken, logSystem)
		return nil
	}

	return s
}

// Constructs settings provider out of the platform file.
// Returned provider always has a logger, even if loading failed.
func newSettingsProvider(ctor *constructSettings) (*settingsProvider, error) {
	level := ctor.Options.LogLevel
	if "" == level {
		level = "info"
	}

	s := &settingsProvider{
		logger:   ctor.NewLogger(level),
		cron:     ctor.Cron,
		logLevel: ctor.Options.LogLevel,
	}

	s.validator = utils.NewValidator(s.logger)
	s.config = config.NewConfigProvider(&config.ConstructConfig{
		Location: ctor.Options.Config,
		Logger:   s.Logger("config"),
	})
	secrets := secret.NewSecretProvider(&secret.ConstructSecret{
		ConfigLocation: s.config.Location(),
		Logger:         s.Logger("secret"),
	})
	s.template = newTemplateProvider(&constructTemplate{Logger: s.logger, Secrets: secrets})
	s.security = security.NewSecurityProvider(&security.ConstructSecurity{
		ConfigLocation: s.config.Location(),
		Logger:         s.Logger("security"),
	})

	platform, err := s.read()
	if err != nil {
		return s, err
	}

	if l, ok := s.logger.(common.ILevelLogger); ok && "" == s.logLevel {
		l.SetLevel(platform.Log.Level)
	}

	s.platform = platform
	s.switches = s.validSwitches(platform.Switches)
	platform.Switches = s.switches

	if _, err := s.cron.AddFunc(flushSpec, func() {
		s.logger.Flush()
	}); err != nil {
		return s, errors.Wrap(err, "failed to register logger flushing")
	}

	s.logger.Info("Configuration is loaded", common.LogSystemToken, logSystem,
		common.LogFileToken, s.config.Location())
	return s, nil
}

// ReloadSwitches re-reads switches if the platform file was changed.
func (s *settingsProvider) ReloadSwitches() ([]*providers.SwitchConfig, bool) {
	if !s.config.Changed() {
		return nil, false
	}

	s.logger.Info("Config file was changed, reloading", common.LogSystemToken, logSystem,
		common.LogFileToken, s.config.Location())
	platform, err := s.read()
	if err != nil {
		s.logger.Error("Failed to reload configuration", err, common.LogSystemToken, logSystem)
		return nil, false
	}

	switches := s.validSwitches(platform.Switches)

	s.Lock()
	s.switches = switches
	s.Unlock()

	return switches, true
}

// SaveSwitches replaces switches list in the platform file, keeping other settings.
func (s *settingsProvider) SaveSwitches(switches []*providers.SwitchConfig) error {
	raw, err := s.config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to read config file")
	}

	content := yaml.MapSlice{}
	if err := yaml.Unmarshal(raw, &content); err != nil {
		return errors.Wrap(err, "failed to parse config file")
	}

	stored := make([]*providers.SwitchConfig, 0, len(switches))
	for _, v := range switches {
		stored = append(stored, compact(v))
	}

	found := false
	for ii := range content {
		if key, ok := content[ii].Key.(string); ok && switchesKey == key {
			content[ii].Value = stored
			found = true
		}
	}

	if !found {
		content = append(content, yaml.MapItem{Key: switchesKey, Value: stored})
	}

	data, err := yaml.Marshal(content)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := s.config.Save(data); err != nil {
		return errors.Wrap(err, "failed to save config file")
	}

	s.Lock()
	s.switches = switches
	s.Unlock()
	return nil
}

// Reads, processes and validates platform file.
func (s *settingsProvider) read() (*providers.PlatformSettings, error) {
	raw, err := s.config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	data, err := s.template.Process(raw)
	if err != nil {
		return nil, err
	}

	platform := &providers.PlatformSettings{}
	if err := yaml.Unmarshal(data, platform); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	if !s.validator.Validate(platform) {
		return nil, &utils.ErrInvalidConfig{}
	}

	return platform, nil
}

// Drops switches without a name and duplicates.
func (s *settingsProvider) validSwitches(switches []*providers.SwitchConfig) []*providers.SwitchConfig {
	result := make([]*providers.SwitchConfig, 0, len(switches))
	seen := make(map[string]bool)
	for ii, v := range switches {
		if nil == v || "" == strings.TrimSpace(v.Name) || !s.validator.Validate(v) {
			s.logger.Warn("Skipping switch without a name", common.LogSystemToken, logSystem,
				common.LogFieldToken, switchField(ii))
			continue
		}

		if seen[v.Name] {
			s.logger.Warn("Skipping duplicated switch", common.LogSystemToken, logSystem,
				common.LogSwitchNameToken, v.Name)
			continue
		}

		seen[v.Name] = true
		result = append(result, v)
	}

	return result
}

// Drops empty commands from the stored definition.
func compact(cfg *providers.SwitchConfig) *providers.SwitchConfig {
	c := *cfg
	for _, v := range []**string{&c.OnCmd, &c.OffCmd, &c.StateCmd} {
		if nil != *v && "" == **v {
			*v = nil
		}
	}

	return &c
}

func switchField(idx int) string {
	return fmt.Sprintf("%s[%d]", switchesKey, idx)
}
