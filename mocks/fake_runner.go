//go:build !release

package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/go-home-io/cmdswitch/providers"
)

// FakeCommand describes scripted command behaviour.
type FakeCommand struct {
	Delay         time.Duration
	HasOutput     bool
	ErrorOccurred bool
}

type fakeRunner struct {
	sync.Mutex
	commands map[string]*FakeCommand
	calls    map[string]int
}

// Run returns scripted result after the configured delay.
// Unknown commands succeed without output.
func (f *fakeRunner) Run(ctx context.Context, command string) <-chan *providers.RunResult {
	f.Lock()
	f.calls[command]++
	cmd, ok := f.commands[command]
	if !ok {
		cmd = &FakeCommand{}
	}
	res := *cmd
	f.Unlock()

	done := make(chan *providers.RunResult, 1)
	go func() {
		defer close(done)
		if res.Delay > 0 {
			select {
			case <-time.After(res.Delay):
			case <-ctx.Done():
			}
		}

		done <- &providers.RunResult{
			HasOutput:     res.HasOutput,
			ErrorOccurred: res.ErrorOccurred,
		}
	}()

	return done
}

// SetCommand scripts command result.
func (f *fakeRunner) SetCommand(command string, result *FakeCommand) {
	f.Lock()
	defer f.Unlock()
	f.commands[command] = result
}

// Calls returns how many times command was invoked.
func (f *fakeRunner) Calls(command string) int {
	f.Lock()
	defer f.Unlock()
	return f.calls[command]
}

// TotalCalls returns how many commands were invoked.
func (f *fakeRunner) TotalCalls() int {
	f.Lock()
	defer f.Unlock()
	total := 0
	for _, v := range f.calls {
		total += v
	}

	return total
}

// FakeNewRunner creates a fake command runner.
func FakeNewRunner() *fakeRunner {
	return &fakeRunner{
		commands: make(map[string]*FakeCommand),
		calls:    make(map[string]int),
	}
}
