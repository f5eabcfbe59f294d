package providers

import (
	"strings"

	"github.com/spf13/cast"
)

// DefaultPollingInterval is used when interval is absent, zero or not a number.
const DefaultPollingInterval = 1

// SwitchConfig has data describing a single switch definition.
// Nil commands, polling or interval mean "not specified".
type SwitchConfig struct {
	Name         string      `yaml:"name" json:"name" validate:"required"`
	OnCmd        *string     `yaml:"on_cmd,omitempty" json:"on_cmd,omitempty"`
	OffCmd       *string     `yaml:"off_cmd,omitempty" json:"off_cmd,omitempty"`
	StateCmd     *string     `yaml:"state_cmd,omitempty" json:"state_cmd,omitempty"`
	Polling      interface{} `yaml:"polling,omitempty" json:"polling,omitempty"`
	Interval     interface{} `yaml:"interval,omitempty" json:"interval,omitempty"`
	Manufacturer string      `yaml:"manufacturer,omitempty" json:"manufacturer,omitempty"`
	Model        string      `yaml:"model,omitempty" json:"model,omitempty"`
	Serial       string      `yaml:"serial,omitempty" json:"serial,omitempty"`
}

// PollingValue returns parsed polling flag and whether it was specified.
// Only boolean true and case-insensitive "true" enable polling.
func (c *SwitchConfig) PollingValue() (bool, bool) {
	switch v := c.Polling.(type) {
	case nil:
		return false, false
	case bool:
		return v, true
	case string:
		return strings.ToUpper(strings.TrimSpace(v)) == "TRUE", true
	default:
		return false, true
	}
}

// IntervalValue returns parsed polling interval in seconds and whether it was specified.
func (c *SwitchConfig) IntervalValue() (int, bool) {
	if nil == c.Interval {
		return 0, false
	}

	interval, err := cast.ToIntE(c.Interval)
	if err != nil || interval <= 0 {
		return DefaultPollingInterval, true
	}

	return interval, true
}

// Authoritative returns a copy where every unspecified field holds its default value.
// Configuration file is authoritative: a missing command clears the previous one.
func (c *SwitchConfig) Authoritative() *SwitchConfig {
	polling, _ := c.PollingValue()
	interval, ok := c.IntervalValue()
	if !ok {
		interval = DefaultPollingInterval
	}

	return &SwitchConfig{
		Name:         c.Name,
		OnCmd:        String(StringValue(c.OnCmd)),
		OffCmd:       String(StringValue(c.OffCmd)),
		StateCmd:     String(StringValue(c.StateCmd)),
		Polling:      polling,
		Interval:     interval,
		Manufacturer: c.Manufacturer,
		Model:        c.Model,
		Serial:       c.Serial,
	}
}

// String returns a pointer to the provided string.
func String(s string) *string {
	return &s
}

// StringValue returns dereferenced string or empty one.
func StringValue(s *string) string {
	if nil == s {
		return ""
	}

	return *s
}
