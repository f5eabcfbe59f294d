package logger

import (
	"bytes"
	"errors"
	"io/ioutil"
	"testing"

	"github.com/go-home-io/cmdswitch/common"
	"github.com/go-home-io/cmdswitch/mocks"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests proper fields allocation.
func TestCorrectFields(t *testing.T) {
	r := withFields("f1", "f1", "f2", "f2")
	assert.Equal(t, 2, len(r))

	r = withFields("f1", "f1", "f2", "f2", "f3")
	assert.Equal(t, 2, len(r))
}

// Tests loading log level.
func TestLogLevel(t *testing.T) {
	in := []struct {
		In       string
		Expected logrus.Level
	}{
		{In: "warning", Expected: logrus.WarnLevel},
		{In: "warn", Expected: logrus.WarnLevel},
		{In: "error", Expected: logrus.ErrorLevel},
		{In: "err", Expected: logrus.ErrorLevel},
		{In: "debug", Expected: logrus.DebugLevel},
		{In: "DBG", Expected: logrus.DebugLevel},
		{In: "info", Expected: logrus.InfoLevel},
		{In: "incorrect", Expected: logrus.InfoLevel},
	}

	for _, v := range in {
		assert.Equal(t, v.Expected, getLogLevel(v.In), v.In)
	}
}

// Tests that entries carry fields and error.
func TestConsoleLoggerEntries(t *testing.T) {
	l := newConsoleLogger(&bytes.Buffer{}, "debug")
	hook := test.NewLocal(l.logger)

	l.Debug("debug", common.LogSwitchNameToken, "tv")
	l.Info("info")
	l.Warn("warn")
	l.Error("error", errors.New("boom"), common.LogCommandToken, "true")
	l.Error("nil error", nil)

	entries := hook.AllEntries()
	require.Equal(t, 5, len(entries))
	assert.Equal(t, logrus.DebugLevel, entries[0].Level)
	assert.Equal(t, "tv", entries[0].Data[common.LogSwitchNameToken])
	assert.Equal(t, "boom", entries[3].Data[common.LogErrorToken])
	assert.Equal(t, "true", entries[3].Data[common.LogCommandToken])
	_, ok := entries[4].Data[common.LogErrorToken]
	assert.False(t, ok)
}

// Tests that level filters messages.
func TestConsoleLoggerLevel(t *testing.T) {
	l := newConsoleLogger(&bytes.Buffer{}, "warn")
	hook := test.NewLocal(l.logger)

	l.Debug("debug")
	l.Info("info")
	l.Warn("warn")

	require.Equal(t, 1, len(hook.AllEntries()))
	assert.Equal(t, "warn", hook.LastEntry().Message)
}

// Tests that fatal exits.
func TestConsoleLoggerFatal(t *testing.T) {
	l := newConsoleLogger(&bytes.Buffer{}, "info")
	exitCode := -1
	l.logger.ExitFunc = func(code int) {
		exitCode = code
	}

	l.Fatal("fatal", errors.New("boom"))
	assert.Equal(t, 1, exitCode)
}

// Tests that every operation invoked correctly.
func TestSystemLogger(t *testing.T) {
	debug := false
	info := false
	warn := false
	err := false
	fatal := false

	l := NewSystemLogger(mocks.FakeNewLogger(func(s string) {
		switch s {
		case "Debug":
			debug = true
		case "Info":
			info = true
		case "Warn":
			warn = true
		case "Error":
			err = true
		case "Fatal":
			fatal = true
		}
	}), "test")

	l.Debug("Debug")
	l.Info("Info")
	l.Warn("Warn")
	l.Error("Error", errors.New(""))
	l.Fatal("Fatal", errors.New(""))
	l.Flush()

	assert.True(t, debug, "debug")
	assert.True(t, info, "info")
	assert.True(t, warn, "warn")
	assert.True(t, err, "err")
	assert.True(t, fatal, "fatal")
}

// Tests that system field is attached.
func TestSystemLoggerFields(t *testing.T) {
	base := newConsoleLogger(&bytes.Buffer{}, "debug")
	hook := test.NewLocal(base.logger)

	l := NewSystemLogger(base, "poller")
	l.Info("msg", common.LogSwitchNameToken, "tv")

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "poller", hook.LastEntry().Data[common.LogSystemToken])
	assert.Equal(t, "tv", hook.LastEntry().Data[common.LogSwitchNameToken])
}

// Tests level change.
func TestConsoleLoggerSetLevel(t *testing.T) {
	l := newConsoleLogger(ioutil.Discard, "error")
	assert.Equal(t, logrus.ErrorLevel, l.logger.Level)

	var _ common.ILevelLogger = l
	l.SetLevel("debug")
	assert.Equal(t, logrus.DebugLevel, l.logger.Level)
}
