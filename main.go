package main

import (
	"github.com/go-home-io/cmdswitch/settings"
	"github.com/jessevdk/go-flags"
)

func main() {
	options := &settings.StartUpOptions{}
	_, err := flags.Parse(options)
	if err != nil {
		panic(err)
	}

	s := settings.Load(options)
	s.SystemLogger().Info("Starting cmdswitch")

	app, err := newApplication(s)
	if err != nil {
		s.SystemLogger().Fatal("Failed to start cmdswitch", err)
	}

	app.Run()
}
