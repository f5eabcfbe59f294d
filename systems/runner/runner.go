// Package runner executes shell commands for switches.
package runner

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/go-home-io/cmdswitch/common"
	"github.com/go-home-io/cmdswitch/providers"
	"github.com/pkg/errors"
)

const (
	// Default shell used for commands.
	defaultShell = "/bin/sh"
	// How long to wait for orphaned children holding output pipes.
	pipesWaitDelay = 2 * time.Second
)

// Shell runner implementation.
type provider struct {
	shell  string
	logger common.ILoggerProvider
}

// ConstructRunner has data required for a new command runner.
type ConstructRunner struct {
	Shell  string
	Logger common.ILoggerProvider
}

// NewRunner constructs a new shell command runner.
func NewRunner(ctor *ConstructRunner) providers.IRunnerProvider {
	shell := ctor.Shell
	if "" == shell {
		shell = defaultShell
	}

	return &provider{
		shell:  shell,
		logger: ctor.Logger,
	}
}

// Run launches command in a shell and reports result once it's finished.
// Context is used only to kill processes on shutdown, there is no timeout.
func (p *provider) Run(ctx context.Context, command string) <-chan *providers.RunResult {
	done := make(chan *providers.RunResult, 1)
	go func() {
		defer close(done)
		done <- p.run(ctx, command)
	}()

	return done
}

// Executes command and collects outputs.
func (p *provider) run(ctx context.Context, command string) *providers.RunResult {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, p.shell, "-c", command)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = pipesWaitDelay
	// Own process group, so cancellation kills children holding output pipes as well.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}

	p.logger.Debug("Executing command", common.LogCommandToken, command)
	err := cmd.Run()

	res := &providers.RunResult{
		HasOutput: stdout.Len() > 0,
		Stderr:    strings.TrimSpace(stderr.String()),
	}

	if err != nil {
		res.Err = errors.Wrap(err, "command failed")
	}

	res.ErrorOccurred = res.Err != nil || stderr.Len() > 0
	return res
}
