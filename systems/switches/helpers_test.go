package switches

import (
	"context"
	"sync"
	"time"

	"github.com/go-home-io/cmdswitch/mocks"
	"github.com/go-home-io/cmdswitch/providers"
	"github.com/go-home-io/cmdswitch/systems/state"
)

const (
	testSetTimeout   = 200 * time.Millisecond
	testResetDelay   = 200 * time.Millisecond
	testIntervalUnit = 10 * time.Millisecond
)

func getRegistry(runner providers.IRunnerProvider, bridge providers.IBridgeProvider) *Registry {
	return NewRegistry(&ConstructRegistry{
		Bridge:       bridge,
		Store:        state.NewStateStore(),
		Runner:       runner,
		Logger:       mocks.FakeNewLogger(nil),
		SetTimeout:   testSetTimeout,
		ResetDelay:   testResetDelay,
		IntervalUnit: testIntervalUnit,
	})
}

func switchConfig(name, on, off, check string) *providers.SwitchConfig {
	cfg := &providers.SwitchConfig{Name: name}
	if "" != on {
		cfg.OnCmd = providers.String(on)
	}
	if "" != off {
		cfg.OffCmd = providers.String(off)
	}
	if "" != check {
		cfg.StateCmd = providers.String(check)
	}

	return cfg
}

// Runner which tracks how many commands run at the same time.
type countingRunner struct {
	sync.Mutex
	delay     time.Duration
	hasOutput bool
	// Command keeps running after cancellation.
	ignoreCancel bool
	inFlight     int
	maxInFlight  int
	calls        int
}

func (c *countingRunner) Run(ctx context.Context, _ string) <-chan *providers.RunResult {
	c.Lock()
	c.calls++
	c.inFlight++
	if c.inFlight > c.maxInFlight {
		c.maxInFlight = c.inFlight
	}
	out := c.hasOutput
	if c.ignoreCancel {
		ctx = context.Background()
	}
	c.Unlock()

	done := make(chan *providers.RunResult, 1)
	go func() {
		res := &providers.RunResult{HasOutput: out}
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			res = &providers.RunResult{ErrorOccurred: true}
		}
		c.Lock()
		c.inFlight--
		c.Unlock()
		done <- res
		close(done)
	}()

	return done
}

func (c *countingRunner) stats() (int, int) {
	c.Lock()
	defer c.Unlock()
	return c.calls, c.maxInFlight
}
