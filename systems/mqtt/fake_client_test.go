package mqtt

import (
	"errors"
	"sync"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

// Completed token.
type fakeToken struct {
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Error() error                   { return t.err }
func (t *fakeToken) Done() <-chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}

// Received message.
type fakeMessage struct {
	topic   string
	payload []byte
}

func (m *fakeMessage) Duplicate() bool   { return false }
func (m *fakeMessage) Qos() byte         { return 1 }
func (m *fakeMessage) Retained() bool    { return false }
func (m *fakeMessage) Topic() string     { return m.topic }
func (m *fakeMessage) MessageID() uint16 { return 1 }
func (m *fakeMessage) Payload() []byte   { return m.payload }
func (m *fakeMessage) Ack()              {}

type published struct {
	topic    string
	payload  string
	retained bool
}

// In-memory paho client.
type fakeClient struct {
	sync.Mutex
	connectErr   error
	connected    bool
	published    []*published
	handlers     map[string]pahomqtt.MessageHandler
	disconnected bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		published: make([]*published, 0),
		handlers:  make(map[string]pahomqtt.MessageHandler),
	}
}

func (f *fakeClient) IsConnected() bool {
	f.Lock()
	defer f.Unlock()
	return f.connected
}

func (f *fakeClient) IsConnectionOpen() bool {
	return f.IsConnected()
}

func (f *fakeClient) Connect() pahomqtt.Token {
	f.Lock()
	defer f.Unlock()
	f.connected = nil == f.connectErr
	return &fakeToken{err: f.connectErr}
}

func (f *fakeClient) Disconnect(uint) {
	f.Lock()
	defer f.Unlock()
	f.connected = false
	f.disconnected = true
}

func (f *fakeClient) Publish(topic string, _ byte, retained bool, payload interface{}) pahomqtt.Token {
	f.Lock()
	defer f.Unlock()
	f.published = append(f.published, &published{topic: topic, payload: payload.(string), retained: retained})
	return &fakeToken{}
}

func (f *fakeClient) Subscribe(topic string, _ byte, callback pahomqtt.MessageHandler) pahomqtt.Token {
	f.Lock()
	defer f.Unlock()
	f.handlers[topic] = callback
	return &fakeToken{}
}

func (f *fakeClient) SubscribeMultiple(map[string]byte, pahomqtt.MessageHandler) pahomqtt.Token {
	return &fakeToken{err: errors.New("not supported")}
}

func (f *fakeClient) Unsubscribe(...string) pahomqtt.Token {
	return &fakeToken{}
}

func (f *fakeClient) AddRoute(string, pahomqtt.MessageHandler) {
}

func (f *fakeClient) OptionsReader() pahomqtt.ClientOptionsReader {
	return pahomqtt.ClientOptionsReader{}
}

// Delivers message to the subscription.
func (f *fakeClient) deliver(subscription, topic, payload string) bool {
	f.Lock()
	h, ok := f.handlers[subscription]
	f.Unlock()
	if !ok {
		return false
	}

	h(f, &fakeMessage{topic: topic, payload: []byte(payload)})
	return true
}

// Returns last retained payload of the topic.
func (f *fakeClient) last(topic string) (string, bool) {
	f.Lock()
	defer f.Unlock()
	for ii := len(f.published) - 1; ii >= 0; ii-- {
		if f.published[ii].topic == topic && f.published[ii].retained {
			return f.published[ii].payload, true
		}
	}

	return "", false
}
