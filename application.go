package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-home-io/cmdswitch/common"
	"github.com/go-home-io/cmdswitch/providers"
	"github.com/go-home-io/cmdswitch/server"
	"github.com/go-home-io/cmdswitch/systems/bridge"
	"github.com/go-home-io/cmdswitch/systems/fanout"
	"github.com/go-home-io/cmdswitch/systems/mqtt"
	"github.com/go-home-io/cmdswitch/systems/runner"
	"github.com/go-home-io/cmdswitch/systems/state"
	"github.com/go-home-io/cmdswitch/systems/switches"
	"github.com/go-home-io/cmdswitch/systems/wizard"
	"github.com/pkg/errors"
)

const (
	// Logger system.
	logSystem = "cmdswitch"
	// How long to wait for HTTP connections on shutdown.
	shutdownTimeout = 5 * time.Second
)

// Wires all systems together.
type application struct {
	settings providers.ISettingsProvider
	logger   common.ILoggerProvider

	cancel   context.CancelFunc
	fanOut   providers.IFanOutProvider
	bridge   providers.IBridgeProvider
	registry *switches.Registry
	server   *server.CmdSwitchServer
	mqtt     *mqtt.Client
	reloadID int
}

// Creates every system and loads configured switches.
func newApplication(s providers.ISettingsProvider) (*application, error) {
	platform := s.Platform()
	ctx, cancel := context.WithCancel(context.Background())
	app := &application{
		settings: s,
		logger:   s.SystemLogger(),
		cancel:   cancel,
		fanOut:   fanout.NewFanOut(),
		reloadID: -1,
	}

	app.bridge = bridge.NewBridge(&bridge.ConstructBridge{
		CachePath: platform.Cache.Path,
		Logger:    s.Logger("bridge"),
		FanOut:    app.fanOut,
	})

	app.registry = switches.NewRegistry(&switches.ConstructRegistry{
		Bridge:     app.bridge,
		Store:      state.NewStateStore(),
		Runner:     runner.NewRunner(&runner.ConstructRunner{Logger: s.Logger("runner")}),
		Logger:     s.Logger("switches"),
		Context:    ctx,
		SetTimeout: time.Duration(platform.Timeouts.SetMs) * time.Millisecond,
		ResetDelay: time.Duration(platform.Timeouts.ResetMs) * time.Millisecond,
	})

	app.registry.Restore(app.bridge.CachedAccessories())
	app.registry.Apply(s.Switches())

	if platform.Reload.IntervalSeconds > 0 {
		id, err := s.Cron().AddFunc(fmt.Sprintf("@every %ds", platform.Reload.IntervalSeconds), app.reload)
		if err != nil {
			app.Stop()
			return nil, errors.Wrap(err, "failed to schedule config reload")
		}

		app.reloadID = id
	}

	if "" != platform.MQTT.Broker {
		client, err := mqtt.NewClient(&mqtt.ConstructClient{
			Settings:   platform.MQTT,
			Bridge:     app.bridge,
			Controller: app.registry.Controller(),
			Names:      app.registry,
			Logger:     s.Logger("mqtt"),
		})

		if err != nil {
			app.Stop()
			return nil, err
		}

		app.mqtt = client
	}

	app.server = server.NewServer(&server.ConstructServer{
		Settings:   s,
		Registry:   app.registry,
		Controller: app.registry.Controller(),
		Bridge:     app.bridge,
		Wizard: wizard.NewWizard(&wizard.ConstructWizard{
			Registry: app.registry,
			Save:     s.SaveSwitches,
			Logger:   s.Logger("wizard"),
		}),
	})

	return app, nil
}

// Run starts HTTP server and blocks until stop signal.
func (a *application) Run() {
	a.server.Start()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	a.logger.Info("Received stop command, exiting", common.LogSystemToken, logSystem)
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error("Failed to stop server", err, common.LogSystemToken, logSystem)
	}

	a.Stop()
}

// Stop terminates background activities and kills running commands.
func (a *application) Stop() {
	if a.reloadID >= 0 {
		a.settings.Cron().RemoveFunc(a.reloadID)
		a.reloadID = -1
	}

	a.cancel()
	if nil != a.mqtt {
		a.mqtt.Close()
		a.mqtt = nil
	}

	a.registry.Stop()
	a.fanOut.Close()
	a.logger.Flush()
}

// Re-applies switches if configuration file was changed.
func (a *application) reload() {
	configs, changed := a.settings.ReloadSwitches()
	if !changed {
		return
	}

	a.logger.Info("Configuration was changed, re-loading switches", common.LogSystemToken, logSystem)
	a.registry.Apply(configs)
}
