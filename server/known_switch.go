package server

import (
	"github.com/go-home-io/cmdswitch/providers"
	"github.com/go-home-io/cmdswitch/systems/switches"
)

// Switch representation returned by the API.
type knownSwitch struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	On           bool   `json:"on"`
	Reachable    bool   `json:"reachable"`
	Polling      bool   `json:"polling"`
	Interval     int    `json:"interval"`
	OnCmd        string `json:"on_cmd,omitempty"`
	OffCmd       string `json:"off_cmd,omitempty"`
	StateCmd     string `json:"state_cmd,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	Model        string `json:"model,omitempty"`
	Serial       string `json:"serial,omitempty"`
}

// Builds API representation of the switch.
func newKnownSwitch(sw *switches.Switch, on bool) *knownSwitch {
	cfg := sw.Config()
	interval, _ := cfg.IntervalValue()
	return &knownSwitch{
		ID:           sw.ID(),
		Name:         sw.Name(),
		On:           on,
		Reachable:    sw.IsReachable(),
		Polling:      sw.IsPolling(),
		Interval:     interval,
		OnCmd:        providers.StringValue(cfg.OnCmd),
		OffCmd:       providers.StringValue(cfg.OffCmd),
		StateCmd:     providers.StringValue(cfg.StateCmd),
		Manufacturer: cfg.Manufacturer,
		Model:        cfg.Model,
		Serial:       cfg.Serial,
	}
}
