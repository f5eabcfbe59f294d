package providers

import "context"

// RunResult has data about a finished shell command.
type RunResult struct {
	// HasOutput is true if command wrote anything to stdout.
	HasOutput bool
	// ErrorOccurred is true if process failed or wrote anything to stderr.
	ErrorOccurred bool
	Stderr        string
	Err           error
}

// IRunnerProvider defines shell command runner.
// Returned channel receives exactly one result and then closes.
type IRunnerProvider interface {
	Run(ctx context.Context, command string) <-chan *RunResult
}
