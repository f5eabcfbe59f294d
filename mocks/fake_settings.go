//go:build !release

package mocks

import (
	"sync"

	"github.com/go-home-io/cmdswitch/common"
	"github.com/go-home-io/cmdswitch/providers"
)

type fakeSettings struct {
	sync.Mutex
	logger   common.ILoggerProvider
	cron     *fakeCron
	platform *providers.PlatformSettings
	security providers.ISecurityProvider
	reload   []*providers.SwitchConfig
	saved    []*providers.SwitchConfig
}

func (f *fakeSettings) SystemLogger() common.ILoggerProvider {
	return f.logger
}

func (f *fakeSettings) Logger(string) common.ILoggerProvider {
	return f.logger
}

func (f *fakeSettings) Cron() providers.ICronProvider {
	return f.cron
}

func (f *fakeSettings) Validator() providers.IValidatorProvider {
	return FakeNewValidator(true)
}

func (f *fakeSettings) Security() providers.ISecurityProvider {
	return f.security
}

// SetSecurity replaces users store.
func (f *fakeSettings) SetSecurity(security providers.ISecurityProvider) {
	f.security = security
}

func (f *fakeSettings) Platform() *providers.PlatformSettings {
	return f.platform
}

func (f *fakeSettings) Switches() []*providers.SwitchConfig {
	return f.platform.Switches
}

func (f *fakeSettings) ReloadSwitches() ([]*providers.SwitchConfig, bool) {
	f.Lock()
	defer f.Unlock()
	if nil == f.reload {
		return nil, false
	}

	r := f.reload
	f.reload = nil
	return r, true
}

func (f *fakeSettings) SaveSwitches(switches []*providers.SwitchConfig) error {
	f.Lock()
	defer f.Unlock()
	f.saved = switches
	return nil
}

// SetReload makes next ReloadSwitches call return provided switches.
func (f *fakeSettings) SetReload(switches []*providers.SwitchConfig) {
	f.Lock()
	defer f.Unlock()
	f.reload = switches
}

// Saved returns switches passed to the last SaveSwitches call.
func (f *fakeSettings) Saved() []*providers.SwitchConfig {
	f.Lock()
	defer f.Unlock()
	return f.saved
}

// FakeCron returns underlying fake cron.
func (f *fakeSettings) FakeCron() *fakeCron {
	return f.cron
}

// FakeNewSettings creates fake settings with default timeouts and provided switches.
func FakeNewSettings(logCallback func(string), switches ...*providers.SwitchConfig) *fakeSettings {
	return &fakeSettings{
		logger:   FakeNewLogger(logCallback),
		cron:     FakeNewCron(),
		security: FakeNewSecurityProvider(nil),
		platform: &providers.PlatformSettings{
			Platform: "cmdSwitch2",
			API:      &providers.APISettings{Port: 8080},
			Cache:    &providers.CacheSettings{Path: ""},
			Log:      &providers.LogSettings{Level: "debug"},
			Timeouts: &providers.TimeoutSettings{SetMs: 1000, ResetMs: 1000},
			Reload:   &providers.ReloadSettings{IntervalSeconds: 30},
			MQTT:     &providers.MQTTSettings{Topic: "cmdswitch", ClientID: "cmdswitch", QoS: 1},
			Switches: switches,
		},
	}
}
