// Package switches contains command-backed switches logic:
// registry of known switches, controller-driven get/set and background polling.
package switches

import (
	"sync"
	"sync/atomic"

	"github.com/go-home-io/cmdswitch/providers"
	"github.com/go-home-io/cmdswitch/utils"
)

// Switch describes a single configured switch.
// Power state itself lives in the state store.
type Switch struct {
	mutex sync.RWMutex

	id   string
	name string

	onCmd    string
	offCmd   string
	stateCmd string

	polling  bool
	interval int

	manufacturer string
	model        string
	serial       string

	reachable bool

	generation uint64
}

// Immutable copy of switch definition.
type switchSnapshot struct {
	ID        string
	Name      string
	OnCmd     string
	OffCmd    string
	StateCmd  string
	Polling   bool
	Interval  int
	Reachable bool
}

// Creates a new switch with default values.
func newSwitch(name string) *Switch {
	return &Switch{
		id:       utils.AccessoryID(name),
		name:     name,
		interval: providers.DefaultPollingInterval,
	}
}

// ID returns accessory ID.
func (s *Switch) ID() string {
	return s.id
}

// Name returns switch name.
func (s *Switch) Name() string {
	return s.name
}

// IsPolling returns whether switch state is refreshed in background.
func (s *Switch) IsPolling() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.polling && s.stateCmd != ""
}

// IsReachable returns whether switch is present in the current configuration.
func (s *Switch) IsReachable() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.reachable
}

// Config returns full switch definition.
func (s *Switch) Config() *providers.SwitchConfig {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return &providers.SwitchConfig{
		Name:         s.name,
		OnCmd:        providers.String(s.onCmd),
		OffCmd:       providers.String(s.offCmd),
		StateCmd:     providers.String(s.stateCmd),
		Polling:      s.polling,
		Interval:     s.interval,
		Manufacturer: s.manufacturer,
		Model:        s.model,
		Serial:       s.serial,
	}
}

// Returns consistent copy of the definition.
func (s *Switch) snapshot() *switchSnapshot {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return &switchSnapshot{
		ID:        s.id,
		Name:      s.name,
		OnCmd:     s.onCmd,
		OffCmd:    s.offCmd,
		StateCmd:  s.stateCmd,
		Polling:   s.polling,
		Interval:  s.interval,
		Reachable: s.reachable,
	}
}

// Applies every specified field of the config.
func (s *Switch) apply(cfg *providers.SwitchConfig) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if nil != cfg.OnCmd {
		s.onCmd = *cfg.OnCmd
	}

	if nil != cfg.OffCmd {
		s.offCmd = *cfg.OffCmd
	}

	if nil != cfg.StateCmd {
		s.stateCmd = *cfg.StateCmd
	}

	if polling, ok := cfg.PollingValue(); ok {
		s.polling = polling
	}

	if interval, ok := cfg.IntervalValue(); ok {
		s.interval = interval
	}

	if "" != cfg.Manufacturer {
		s.manufacturer = cfg.Manufacturer
	}

	if "" != cfg.Model {
		s.model = cfg.Model
	}

	if "" != cfg.Serial {
		s.serial = cfg.Serial
	}
}

// Updates reachability flag.
func (s *Switch) setReachable(reachable bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.reachable = reachable
}

// Returns initial power state for a brand new switch.
// Switch with only off command can't be turned on or queried, so it starts as on.
func (s *Switch) initialState() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.offCmd != "" && s.onCmd == "" && s.stateCmd == ""
}

// Returns bridge representation of the switch.
func (s *Switch) accessory(state bool) *providers.Accessory {
	cfg := s.Config()
	return &providers.Accessory{
		ID:           s.id,
		Name:         s.name,
		Category:     providers.AccessoryCategorySwitch,
		Manufacturer: cfg.Manufacturer,
		Model:        cfg.Model,
		Serial:       cfg.Serial,
		On:           state,
		Context:      cfg,
	}
}

// Starts a new state transition and returns its generation.
func (s *Switch) nextGeneration() uint64 {
	return atomic.AddUint64(&s.generation, 1)
}

// Checks whether transition is still the most recent one.
func (s *Switch) isLatest(generation uint64) bool {
	return atomic.LoadUint64(&s.generation) == generation
}
