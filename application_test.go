package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fortytw2/leaktest"
	"github.com/go-home-io/cmdswitch/mocks"
	"github.com/go-home-io/cmdswitch/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Returns switches used by tests.
func testSwitches() []*providers.SwitchConfig {
	return []*providers.SwitchConfig{
		{Name: "tv", OnCmd: providers.String("true"), OffCmd: providers.String("true")},
		{Name: "lamp", OnCmd: providers.String("true")},
	}
}

// Tests switches loading, config re-load and cache restore.
func TestApplication(t *testing.T) {
	defer leaktest.CheckTimeout(t, 3*time.Second)()

	dir, err := ioutil.TempDir("", "cmdswitch")
	require.NoError(t, err)
	defer os.RemoveAll(dir) // nolint: errcheck
	cache := filepath.Join(dir, "accessories.yaml")

	s := mocks.FakeNewSettings(nil, testSwitches()...)
	s.Platform().Cache.Path = cache

	app, err := newApplication(s)
	require.NoError(t, err)

	assert.Equal(t, []string{"lamp", "tv"}, app.registry.Names())
	assert.Equal(t, 2, len(app.bridge.Accessories()))
	assert.Equal(t, 1, s.FakeCron().Jobs())
	require.NoError(t, app.registry.Controller().SetPowerState("tv", true))

	s.FakeCron().Fire()
	assert.Equal(t, 2, len(app.registry.Names()))

	s.SetReload([]*providers.SwitchConfig{testSwitches()[0]})
	s.FakeCron().Fire()
	assert.Equal(t, []string{"tv"}, app.registry.Names())

	app.Stop()
	assert.Equal(t, 0, s.FakeCron().Jobs())

	s = mocks.FakeNewSettings(nil, testSwitches()...)
	s.Platform().Cache.Path = cache
	s.Platform().Reload.IntervalSeconds = 0

	app, err = newApplication(s)
	require.NoError(t, err)
	defer app.Stop()

	assert.Equal(t, 0, s.FakeCron().Jobs())
	on, ok := app.registry.State("tv")
	assert.True(t, ok)
	assert.True(t, on)
	assert.Equal(t, 2, len(app.bridge.Accessories()))
}

// Tests that stop isn't blocked by a hanging polled state command.
func TestApplicationStopHangingState(t *testing.T) {
	defer leaktest.CheckTimeout(t, 3*time.Second)()

	dir, err := ioutil.TempDir("", "cmdswitch")
	require.NoError(t, err)
	defer os.RemoveAll(dir) // nolint: errcheck

	s := mocks.FakeNewSettings(nil, &providers.SwitchConfig{
		Name:     "tv",
		OnCmd:    providers.String("true"),
		StateCmd: providers.String("sleep 10"),
		Polling:  true,
	})
	s.Platform().Cache.Path = filepath.Join(dir, "accessories.yaml")

	app, err := newApplication(s)
	require.NoError(t, err)
	sw, ok := app.registry.Get("tv")
	require.True(t, ok)
	require.True(t, sw.IsPolling())

	// Let the first cycle start the command.
	time.Sleep(200 * time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		app.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("stop is blocked by state command")
	}
}
