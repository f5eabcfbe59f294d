// Package mqtt publishes switch states to an MQTT broker
// and accepts state change requests from it.
package mqtt

import (
	"strconv"
	"sync"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/go-home-io/cmdswitch/common"
	"github.com/go-home-io/cmdswitch/providers"
	"github.com/go-home-io/cmdswitch/utils"
	"github.com/pkg/errors"
)

// IController defines switch state control.
type IController interface {
	SetPowerState(name string, on bool) error
}

// ISwitchNames defines known switches source.
type ISwitchNames interface {
	Names() []string
}

// Client bridges characteristic updates and MQTT.
type Client struct {
	client     pahomqtt.Client
	topics     Topics
	qos        byte
	broker     string
	bridge     providers.IBridgeProvider
	controller IController
	names      ISwitchNames
	logger     common.ILoggerProvider

	subID int64
	wg    sync.WaitGroup
}

// ConstructClient has data required for a new MQTT client.
// Client is optional and is used instead of a real paho client.
type ConstructClient struct {
	Settings   *providers.MQTTSettings
	Bridge     providers.IBridgeProvider
	Controller IController
	Names      ISwitchNames
	Logger     common.ILoggerProvider
	Client     pahomqtt.Client
}

// NewClient connects to the broker and starts publishing.
func NewClient(ctor *ConstructClient) (*Client, error) {
	c := &Client{
		topics:     Topics{prefix: ctor.Settings.Topic},
		qos:        byte(ctor.Settings.QoS),
		broker:     ctor.Settings.Broker,
		bridge:     ctor.Bridge,
		controller: ctor.Controller,
		names:      ctor.Names,
		logger:     ctor.Logger,
		client:     ctor.Client,
	}

	if nil == c.client {
		opts := buildClientOptions(ctor.Settings, c.topics)
		opts.SetOnConnectHandler(func(pahomqtt.Client) {
			c.logger.Info("Connected to the broker", common.LogURLToken, c.broker)
			c.restore()
		})
		opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
			c.logger.Error("Lost connection to the broker", err, common.LogURLToken, c.broker)
		})
		c.client = pahomqtt.NewClient(opts)
	}

	token := c.client.Connect()
	if !token.WaitTimeout(defaultConnectTimeout) {
		return nil, &ErrConnectionFailed{Broker: c.broker}
	}

	if err := token.Error(); err != nil {
		return nil, errors.Wrap(err, (&ErrConnectionFailed{Broker: c.broker}).Error())
	}

	if nil != ctor.Client {
		c.restore()
	}

	id, updates := c.bridge.Subscribe()
	c.subID = id
	c.wg.Add(1)
	go c.publishUpdates(updates)

	return c, nil
}

// Close stops publishing and disconnects from the broker.
func (c *Client) Close() {
	c.bridge.Unsubscribe(c.subID)
	c.wg.Wait()

	if c.client.IsConnected() {
		c.client.Publish(c.topics.Status(), c.qos, true, payloadOffline).WaitTimeout(defaultPublishTimeout)
	}

	c.client.Disconnect(defaultDisconnectQuiesce)
}

// Subscribes to set requests and publishes current states.
// Called on every (re)connect.
func (c *Client) restore() {
	token := c.client.Subscribe(c.topics.SetWildcard(), c.qos, c.handleSet)
	if token.WaitTimeout(defaultPublishTimeout) && nil != token.Error() {
		c.logger.Error("Failed to subscribe", token.Error(), common.LogTopicToken, c.topics.SetWildcard())
	}

	c.publish(c.topics.Status(), payloadOnline)
	for _, v := range c.bridge.Accessories() {
		c.publish(c.topics.State(v.Name), statePayload(v.On))
	}
}

// Publishes every characteristic change until un-subscribed.
func (c *Client) publishUpdates(updates chan *providers.CharacteristicUpdate) {
	defer c.wg.Done()

	for u := range updates {
		c.publish(c.topics.State(u.Name), statePayload(u.On))
	}
}

// Publishes retained message.
func (c *Client) publish(topic string, payload string) {
	token := c.client.Publish(topic, c.qos, true, payload)
	if !token.WaitTimeout(defaultPublishTimeout) {
		c.logger.Warn("Publish timed out", common.LogTopicToken, topic)
		return
	}

	if err := token.Error(); err != nil {
		c.logger.Error("Failed to publish", err, common.LogTopicToken, topic)
	}
}

// Processes state change request.
func (c *Client) handleSet(_ pahomqtt.Client, msg pahomqtt.Message) {
	normalized, ok := c.topics.SwitchFromSet(msg.Topic())
	if !ok {
		c.logger.Warn("Unexpected topic", common.LogTopicToken, msg.Topic())
		return
	}

	name, ok := c.resolve(normalized)
	if !ok {
		c.logger.Warn("Request for unknown switch", common.LogTopicToken, msg.Topic())
		return
	}

	on, err := parsePayload(msg.Payload())
	if err != nil {
		c.logger.Warn("Unexpected payload", common.LogTopicToken, msg.Topic(),
			common.LogStateToken, strconv.Quote(string(msg.Payload())))
		return
	}

	if err := c.controller.SetPowerState(name, on); err != nil {
		c.logger.Error("Failed to change switch state", err, common.LogSwitchNameToken, name)
	}
}

// Finds switch by its normalized name.
func (c *Client) resolve(normalized string) (string, bool) {
	for _, v := range c.names.Names() {
		if utils.NormalizeName(v) == normalized {
			return v, true
		}
	}

	return "", false
}
