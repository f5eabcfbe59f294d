package mqtt

import (
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/go-home-io/cmdswitch/providers"
)

const (
	defaultConnectTimeout    = 10 * time.Second
	defaultPublishTimeout    = 5 * time.Second
	defaultDisconnectQuiesce = 250
	defaultKeepAlive         = 60 * time.Second
	defaultMaxReconnect      = time.Minute
)

// Creates paho options from the platform settings.
// Broker publishes "offline" status if connection is lost unexpectedly.
func buildClientOptions(settings *providers.MQTTSettings, topics Topics) *pahomqtt.ClientOptions {
	opts := pahomqtt.NewClientOptions()
	opts.AddBroker(settings.Broker)
	opts.SetClientID(settings.ClientID)

	if "" != settings.Username {
		opts.SetUsername(settings.Username)
		opts.SetPassword(settings.Password)
	}

	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetMaxReconnectInterval(defaultMaxReconnect)
	opts.SetConnectTimeout(defaultConnectTimeout)
	opts.SetKeepAlive(defaultKeepAlive)
	// Set requests may block until the command answers.
	opts.SetOrderMatters(false)
	opts.SetWill(topics.Status(), payloadOffline, byte(settings.QoS), true)

	return opts
}
