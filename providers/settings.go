package providers

import (
	"github.com/go-home-io/cmdswitch/common"
)

// ISettingsProvider defines settings loader provider logic.
type ISettingsProvider interface {
	SystemLogger() common.ILoggerProvider
	Logger(system string) common.ILoggerProvider
	Cron() ICronProvider
	Validator() IValidatorProvider
	Security() ISecurityProvider
	Platform() *PlatformSettings
	Switches() []*SwitchConfig
	ReloadSwitches() ([]*SwitchConfig, bool)
	SaveSwitches([]*SwitchConfig) error
}

// PlatformSettings has all data loaded from the platform config file.
type PlatformSettings struct {
	Platform string           `yaml:"platform" default:"cmdSwitch2"`
	API      *APISettings     `yaml:"api" default:"{}"`
	Cache    *CacheSettings   `yaml:"cache" default:"{}"`
	Log      *LogSettings     `yaml:"log" default:"{}"`
	Timeouts *TimeoutSettings `yaml:"timeouts" default:"{}"`
	Reload   *ReloadSettings  `yaml:"reload" default:"{}"`
	MQTT     *MQTTSettings    `yaml:"mqtt" default:"{}"`
	Switches []*SwitchConfig  `yaml:"switches"`
}

// APISettings has configured data for the HTTP control surface.
type APISettings struct {
	Port int `yaml:"port" validate:"required,port" default:"8080"`
}

// CacheSettings has configured accessories cache location.
type CacheSettings struct {
	Path string `yaml:"path" default:"./accessories.yaml"`
}

// LogSettings has configured logger data.
type LogSettings struct {
	Level string `yaml:"level" validate:"oneof=debug info warn warning error" default:"info"`
}

// TimeoutSettings has configured controller timeouts in milliseconds.
type TimeoutSettings struct {
	SetMs   int `yaml:"set" validate:"gt=0" default:"1000"`
	ResetMs int `yaml:"reset" validate:"gt=0" default:"1000"`
}

// ReloadSettings has configured config re-load data.
type ReloadSettings struct {
	IntervalSeconds int `yaml:"interval" validate:"gte=0" default:"30"`
}

// MQTTSettings has configured data for optional MQTT publishing.
type MQTTSettings struct {
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id" default:"cmdswitch"`
	Topic    string `yaml:"topic" default:"cmdswitch"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	QoS      int    `yaml:"qos" validate:"gte=0,lte=2" default:"1"`
}
