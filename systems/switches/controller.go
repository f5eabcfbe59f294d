package switches

import (
	"context"
	"time"

	"github.com/go-home-io/cmdswitch/common"
	"github.com/go-home-io/cmdswitch/providers"
)

const (
	// DefaultSetTimeout is how long controller waits for a command before assuming success.
	DefaultSetTimeout = 1 * time.Second
	// DefaultResetDelay is how long momentary switch stays in a new state.
	DefaultResetDelay = 1 * time.Second
)

// ISwitchLookup defines source of known switches.
type ISwitchLookup interface {
	Get(name string) (*Switch, bool)
}

// Controller serves get/set requests coming from the bridge.
type Controller struct {
	lookup ISwitchLookup
	runner providers.IRunnerProvider
	store  providers.IStateStoreProvider
	bridge providers.IBridgeProvider
	logger common.ILoggerProvider

	ctx        context.Context
	setTimeout time.Duration
	resetDelay time.Duration
}

// ConstructController has data required for a new controller.
type ConstructController struct {
	Lookup     ISwitchLookup
	Runner     providers.IRunnerProvider
	Store      providers.IStateStoreProvider
	Bridge     providers.IBridgeProvider
	Logger     common.ILoggerProvider
	Context    context.Context
	SetTimeout time.Duration
	ResetDelay time.Duration
}

// NewController constructs a new switch controller.
func NewController(ctor *ConstructController) *Controller {
	c := &Controller{
		lookup:     ctor.Lookup,
		runner:     ctor.Runner,
		store:      ctor.Store,
		bridge:     ctor.Bridge,
		logger:     ctor.Logger,
		ctx:        ctor.Context,
		setTimeout: ctor.SetTimeout,
		resetDelay: ctor.ResetDelay,
	}

	if nil == c.ctx {
		c.ctx = context.Background()
	}

	if c.setTimeout <= 0 {
		c.setTimeout = DefaultSetTimeout
	}

	if c.resetDelay <= 0 {
		c.resetDelay = DefaultResetDelay
	}

	return c
}

// GetPowerState returns current switch state.
// Polled switches are answered from the store without running anything.
func (c *Controller) GetPowerState(name string) (bool, error) {
	sw, ok := c.lookup.Get(name)
	if !ok {
		return false, &ErrUnknownSwitch{Name: name}
	}

	snap := sw.snapshot()
	if snap.Polling || "" == snap.StateCmd {
		state, _ := c.store.Get(name)
		c.logger.Debug("Reporting stored state", common.LogSwitchNameToken, name,
			common.LogStateToken, stateString(state))
		return state, nil
	}

	state, _ := c.checkState(c.ctx, snap)
	if current, ok := c.lookup.Get(name); ok && current == sw && c.store.Set(name, state) {
		c.bridge.NotifyCharacteristicChanged(sw.ID(), state)
	}

	c.logger.Debug("Reporting checked state", common.LogSwitchNameToken, name,
		common.LogStateToken, stateString(state))
	return state, nil
}

// SetPowerState changes switch state.
// Returns within set timeout: slow commands are assumed to succeed.
func (c *Controller) SetPowerState(name string, on bool) error {
	sw, ok := c.lookup.Get(name)
	if !ok {
		return &ErrUnknownSwitch{Name: name}
	}

	snap := sw.snapshot()
	cmd, reverse := snap.OnCmd, snap.OffCmd
	if !on {
		cmd, reverse = snap.OffCmd, snap.OnCmd
	}

	generation := sw.nextGeneration()
	if "" == reverse && "" == snap.StateCmd {
		c.scheduleReset(sw, on)
	}

	if "" == cmd {
		c.applyState(sw, generation, on)
		return nil
	}

	answer := make(chan error, 1)
	go func() {
		res, ok := <-c.runner.Run(c.ctx, cmd)
		if !ok {
			res = &providers.RunResult{ErrorOccurred: true}
		}

		answer <- c.complete(sw, generation, on, cmd, res)
	}()

	timer := time.NewTimer(c.setTimeout)
	select {
	case err := <-answer:
		timer.Stop()
		return err
	case <-timer.C:
		c.logger.Warn("Command took too long, assuming success", common.LogSwitchNameToken, name,
			common.LogStateToken, stateString(on))
		return nil
	}
}

// Identify handles identify request from the bridge.
func (c *Controller) Identify(name string) error {
	if _, ok := c.lookup.Get(name); !ok {
		return &ErrUnknownSwitch{Name: name}
	}

	c.logger.Info("Identify requested", common.LogSwitchNameToken, name)
	return nil
}

// Processes finished set command.
// Error fails the request only if switch wasn't already in the desired state.
func (c *Controller) complete(sw *Switch, generation uint64, on bool, cmd string,
	res *providers.RunResult) error {
	stored, _ := c.store.Get(sw.Name())
	if res.ErrorOccurred && on != stored {
		c.logger.Error("Failed to change switch state", res.Err, common.LogSwitchNameToken, sw.Name(),
			common.LogStateToken, stateString(on), common.LogCommandToken, cmd, common.LogStderrToken, res.Stderr)
		return &ErrCommandFailed{Name: sw.Name(), Command: cmd, Stderr: res.Stderr}
	}

	if res.ErrorOccurred {
		c.logger.Debug("Ignoring command error, switch is already in the desired state",
			common.LogSwitchNameToken, sw.Name(), common.LogStderrToken, res.Stderr)
	}

	c.logger.Info("Switch is turned "+stateString(on), common.LogSwitchNameToken, sw.Name())
	c.applyState(sw, generation, on)
	return nil
}

// Stores new state unless a newer transition has started or switch was removed.
func (c *Controller) applyState(sw *Switch, generation uint64, on bool) {
	if !sw.isLatest(generation) {
		c.logger.Debug("Skipping outdated state update", common.LogSwitchNameToken, sw.Name(),
			common.LogStateToken, stateString(on))
		return
	}

	if _, ok := c.lookup.Get(sw.Name()); !ok {
		return
	}

	if c.store.Set(sw.Name(), on) {
		c.bridge.NotifyCharacteristicChanged(sw.ID(), on)
	}
}

// Flips momentary switch back after reset delay without running any command.
func (c *Controller) scheduleReset(sw *Switch, on bool) {
	time.AfterFunc(c.resetDelay, func() {
		if current, ok := c.lookup.Get(sw.Name()); !ok || current != sw {
			return
		}

		sw.nextGeneration()
		c.logger.Debug("Restoring momentary switch", common.LogSwitchNameToken, sw.Name(),
			common.LogStateToken, stateString(!on))
		c.store.Set(sw.Name(), !on)
		c.bridge.NotifyCharacteristicChanged(sw.ID(), !on)
	})
}

// Runs state command and returns derived state and whether it succeeded.
func (c *Controller) checkState(ctx context.Context, snap *switchSnapshot) (bool, bool) {
	res, ok := <-c.runner.Run(ctx, snap.StateCmd)
	if !ok {
		return false, false
	}

	if res.ErrorOccurred {
		c.logger.Error("Failed to determine switch state", res.Err, common.LogSwitchNameToken, snap.Name,
			common.LogCommandToken, snap.StateCmd, common.LogStderrToken, res.Stderr)
	}

	return res.HasOutput, !res.ErrorOccurred
}

// Human readable state.
func stateString(on bool) string {
	if on {
		return "on"
	}

	return "off"
}
