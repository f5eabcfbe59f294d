package switches

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-home-io/cmdswitch/common"
	"github.com/go-home-io/cmdswitch/providers"
	"github.com/gobwas/glob"
	"github.com/pkg/errors"
)

// Registry owns every known switch.
type Registry struct {
	mutex    sync.RWMutex
	switches map[string]*Switch

	bridge providers.IBridgeProvider
	store  providers.IStateStoreProvider
	logger common.ILoggerProvider

	controller *Controller
	poller     *Poller
}

// ConstructRegistry has data required for a new registry.
type ConstructRegistry struct {
	Bridge       providers.IBridgeProvider
	Store        providers.IStateStoreProvider
	Runner       providers.IRunnerProvider
	Logger       common.ILoggerProvider
	Context      context.Context
	SetTimeout   time.Duration
	ResetDelay   time.Duration
	IntervalUnit time.Duration
}

// NewRegistry constructs a new registry together with controller and poller,
// both of them resolve switches through the registry.
func NewRegistry(ctor *ConstructRegistry) *Registry {
	r := &Registry{
		switches: make(map[string]*Switch),
		bridge:   ctor.Bridge,
		store:    ctor.Store,
		logger:   ctor.Logger,
	}

	r.controller = NewController(&ConstructController{
		Lookup:     r,
		Runner:     ctor.Runner,
		Store:      ctor.Store,
		Bridge:     ctor.Bridge,
		Logger:     ctor.Logger,
		Context:    ctor.Context,
		SetTimeout: ctor.SetTimeout,
		ResetDelay: ctor.ResetDelay,
	})

	r.poller = NewPoller(&ConstructPoller{
		Lookup:       r,
		Controller:   r.controller,
		Store:        ctor.Store,
		Bridge:       ctor.Bridge,
		Logger:       ctor.Logger,
		Context:      ctor.Context,
		IntervalUnit: ctor.IntervalUnit,
	})

	return r
}

// Controller returns switches controller.
func (r *Registry) Controller() *Controller {
	return r.controller
}

// Get returns switch by name.
func (r *Registry) Get(name string) (*Switch, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	sw, ok := r.switches[name]
	return sw, ok
}

// Names returns sorted names of all known switches.
func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.switches))
	for k := range r.switches {
		names = append(names, k)
	}

	sort.Strings(names)
	return names
}

// Switches returns all known switches sorted by name.
func (r *Registry) Switches() []*Switch {
	names := r.Names()
	result := make([]*Switch, 0, len(names))
	for _, v := range names {
		if sw, ok := r.Get(v); ok {
			result = append(result, sw)
		}
	}

	return result
}

// Configs returns definitions of all known switches.
func (r *Registry) Configs() []*providers.SwitchConfig {
	switches := r.Switches()
	result := make([]*providers.SwitchConfig, 0, len(switches))
	for _, v := range switches {
		result = append(result, v.Config())
	}

	return result
}

// State returns stored state of the switch.
func (r *Registry) State(name string) (bool, bool) {
	if _, ok := r.Get(name); !ok {
		return false, false
	}

	return r.store.Get(name)
}

// Match returns sorted names of switches matching the pattern.
func (r *Registry) Match(pattern glob.Glob) []string {
	result := make([]string, 0)
	for _, v := range r.Names() {
		if pattern.Match(v) {
			result = append(result, v)
		}
	}

	return result
}

// Restore re-creates switches from the bridge cache.
// Restored switches are unreachable until configuration confirms them.
func (r *Registry) Restore(cached []*providers.Accessory) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, v := range cached {
		if nil == v.Context || "" == strings.TrimSpace(v.Context.Name) {
			r.logger.Warn("Dropping cached accessory without definition", common.LogSwitchIDToken, v.ID)
			if err := r.bridge.UnregisterAccessory(v.ID); err != nil {
				r.logger.Error("Failed to unregister accessory", err, common.LogSwitchIDToken, v.ID)
			}
			continue
		}

		sw := newSwitch(v.Context.Name)
		if "" != v.ID {
			sw.id = v.ID
		}

		sw.apply(v.Context.Authoritative())
		r.switches[sw.name] = sw
		r.store.Set(sw.name, v.On)
		r.logger.Debug("Restored switch from cache", common.LogSwitchNameToken, sw.name)
	}
}

// Upsert adds a new switch or updates an existing one.
// Only specified fields of the config are applied to an existing switch.
func (r *Registry) Upsert(cfg *providers.SwitchConfig) (*Switch, error) {
	if nil == cfg || "" == strings.TrimSpace(cfg.Name) {
		return nil, &ErrInvalidConfig{}
	}

	sw, err := r.upsert(cfg)
	if err != nil {
		return nil, err
	}

	snap := sw.snapshot()
	if !snap.Polling {
		go r.refresh(sw)
	}

	if snap.Polling && "" != snap.StateCmd {
		r.poller.Start(snap.Name)
	} else {
		r.poller.Stop(snap.Name)
	}

	return sw, nil
}

// ReconcileStartup removes every switch which is not present in configuration.
func (r *Registry) ReconcileStartup(names []string) {
	configured := make(map[string]bool, len(names))
	for _, v := range names {
		configured[v] = true
	}

	for _, v := range r.Names() {
		if !configured[v] {
			r.Remove(v)
		}
	}
}

// Apply loads authoritative configuration: every switch is upserted
// and switches missing from it are removed.
func (r *Registry) Apply(configs []*providers.SwitchConfig) {
	names := make([]string, 0, len(configs))
	for _, v := range configs {
		if nil == v {
			continue
		}

		if _, err := r.Upsert(v.Authoritative()); err != nil {
			r.logger.Error("Failed to load switch", err, common.LogSwitchNameToken, v.Name)
			continue
		}

		names = append(names, v.Name)
	}

	r.ReconcileStartup(names)
}

// Remove unregisters switch. Unknown names are ignored.
func (r *Registry) Remove(name string) {
	r.mutex.Lock()
	sw, ok := r.switches[name]
	if !ok {
		r.mutex.Unlock()
		return
	}

	delete(r.switches, name)
	r.mutex.Unlock()

	r.poller.Stop(name)
	if err := r.bridge.UnregisterAccessory(sw.ID()); err != nil {
		r.logger.Error("Failed to unregister accessory", err, common.LogSwitchNameToken, name)
	}

	r.store.Delete(name)
	r.logger.Info("Switch is removed", common.LogSwitchNameToken, name)
}

// Stop terminates background activities.
func (r *Registry) Stop() {
	r.poller.StopAll()
}

// Creates or updates switch record and its bridge accessory.
func (r *Registry) upsert(cfg *providers.SwitchConfig) (*Switch, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	sw, ok := r.switches[cfg.Name]
	if ok {
		sw.apply(cfg)
		sw.setReachable(true)
		state, _ := r.store.Get(cfg.Name)
		if err := r.bridge.UpdateAccessory(sw.accessory(state)); err != nil {
			r.logger.Error("Failed to update accessory", err, common.LogSwitchNameToken, cfg.Name)
		}

		r.logger.Info("Switch is updated", common.LogSwitchNameToken, cfg.Name)
		return sw, nil
	}

	sw = newSwitch(cfg.Name)
	sw.apply(cfg)
	sw.setReachable(true)

	state := sw.initialState()
	if err := r.bridge.RegisterAccessory(sw.accessory(state)); err != nil {
		return nil, errors.Wrap(err, "failed to register accessory")
	}

	r.switches[cfg.Name] = sw
	r.store.Set(cfg.Name, state)
	r.logger.Info("Switch is added", common.LogSwitchNameToken, cfg.Name,
		common.LogSwitchIDToken, sw.ID())
	return sw, nil
}

// Reads initial state, controller notifies the bridge if it differs.
func (r *Registry) refresh(sw *Switch) {
	if _, err := r.controller.GetPowerState(sw.Name()); err != nil {
		r.logger.Debug("Failed to read initial state", common.LogSwitchNameToken, sw.Name())
	}
}
