package server

import (
	"sync"

	"github.com/go-home-io/cmdswitch/common"
	"github.com/go-home-io/cmdswitch/providers"
	"github.com/go-home-io/cmdswitch/systems/switches"
	"github.com/gobwas/glob"
)

// Result of a group command for a single switch.
type groupResult struct {
	Status  string `json:"status"`
	Problem string `json:"problem,omitempty"`
}

// Returns every known switch with its stored state.
func (s *CmdSwitchServer) commandListSwitches() []*knownSwitch {
	names := s.registry.Names()
	result := make([]*knownSwitch, 0, len(names))
	for _, v := range names {
		sw, ok := s.registry.Get(v)
		if !ok {
			continue
		}

		on, _ := s.registry.State(v)
		result = append(result, newKnownSwitch(sw, on))
	}

	return result
}

// Returns switch with the current state.
func (s *CmdSwitchServer) commandGetSwitch(name string) (*knownSwitch, error) {
	on, err := s.controller.GetPowerState(name)
	if err != nil {
		return nil, err
	}

	sw, ok := s.registry.Get(name)
	if !ok {
		return nil, &switches.ErrUnknownSwitch{Name: name}
	}

	return newKnownSwitch(sw, on), nil
}

// Adds or updates switch.
func (s *CmdSwitchServer) commandUpsertSwitch(cfg *providers.SwitchConfig) (*knownSwitch, error) {
	sw, err := s.registry.Upsert(cfg)
	if err != nil {
		s.Logger.Warn("Failed to update switch", common.LogSystemToken, logSystem,
			common.LogSwitchNameToken, cfg.Name, common.LogErrorToken, err.Error())
		return nil, err
	}

	on, _ := s.registry.State(cfg.Name)
	return newKnownSwitch(sw, on), nil
}

// Removes switch.
func (s *CmdSwitchServer) commandRemoveSwitch(name string) error {
	if _, ok := s.registry.Get(name); !ok {
		return &switches.ErrUnknownSwitch{Name: name}
	}

	s.registry.Remove(name)
	return nil
}

// Changes switch state.
func (s *CmdSwitchServer) commandSetState(name string, state string) error {
	on, err := parseState(state)
	if err != nil {
		return err
	}

	err = s.controller.SetPowerState(name, on)
	if err != nil {
		s.Logger.Warn("Failed to change switch state", common.LogSystemToken, logSystem,
			common.LogSwitchNameToken, name, common.LogErrorToken, err.Error())
	}

	return err
}

// Changes state of all matching switches concurrently.
func (s *CmdSwitchServer) commandSetGroupState(pattern string, state string) (map[string]*groupResult, error) {
	on, err := parseState(state)
	if err != nil {
		return nil, err
	}

	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, &ErrBadRequest{}
	}

	names := s.registry.Match(g)
	if 0 == len(names) {
		return nil, &ErrNoMatches{Pattern: pattern}
	}

	mutex := sync.Mutex{}
	wg := sync.WaitGroup{}
	results := make(map[string]*groupResult, len(names))
	for _, v := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			res := &groupResult{Status: "OK"}
			if err := s.controller.SetPowerState(name, on); err != nil {
				res = &groupResult{Status: "ERROR", Problem: err.Error()}
			}

			mutex.Lock()
			results[name] = res
			mutex.Unlock()
		}(v)
	}

	wg.Wait()
	return results, nil
}
