//go:build !release

package mocks

import (
	"errors"
	"sync"

	"github.com/go-home-io/cmdswitch/providers"
)

type fakeBridge struct {
	sync.Mutex
	cached        []*providers.Accessory
	registered    map[string]*providers.Accessory
	unregistered  []string
	notifications []*providers.CharacteristicUpdate
	subscribers   map[int64]chan *providers.CharacteristicUpdate
	failRegister  bool
}

func (f *fakeBridge) RegisterAccessory(a *providers.Accessory) error {
	f.Lock()
	defer f.Unlock()
	if f.failRegister {
		return errors.New("register failed")
	}

	f.registered[a.ID] = a
	return nil
}

func (f *fakeBridge) UnregisterAccessory(id string) error {
	f.Lock()
	defer f.Unlock()
	delete(f.registered, id)
	f.unregistered = append(f.unregistered, id)
	return nil
}

func (f *fakeBridge) UpdateAccessory(a *providers.Accessory) error {
	f.Lock()
	defer f.Unlock()
	f.registered[a.ID] = a
	return nil
}

func (f *fakeBridge) NotifyCharacteristicChanged(id string, value bool) {
	f.Lock()
	defer f.Unlock()
	upd := &providers.CharacteristicUpdate{ID: id, On: value}
	if a, ok := f.registered[id]; ok {
		a.On = value
		upd.Name = a.Name
	}

	f.notifications = append(f.notifications, upd)
	for _, v := range f.subscribers {
		select {
		case v <- upd:
		default:
		}
	}
}

func (f *fakeBridge) CachedAccessories() []*providers.Accessory {
	f.Lock()
	defer f.Unlock()
	return f.cached
}

func (f *fakeBridge) Accessories() []*providers.Accessory {
	f.Lock()
	defer f.Unlock()
	res := make([]*providers.Accessory, 0, len(f.registered))
	for _, v := range f.registered {
		res = append(res, v)
	}

	return res
}

func (f *fakeBridge) Subscribe() (int64, chan *providers.CharacteristicUpdate) {
	f.Lock()
	defer f.Unlock()
	id := int64(len(f.subscribers) + 1)
	c := make(chan *providers.CharacteristicUpdate, 10)
	f.subscribers[id] = c
	return id, c
}

func (f *fakeBridge) Unsubscribe(id int64) {
	f.Lock()
	defer f.Unlock()
	if c, ok := f.subscribers[id]; ok {
		close(c)
		delete(f.subscribers, id)
	}
}

// IsRegistered returns whether accessory with ID is registered.
func (f *fakeBridge) IsRegistered(id string) bool {
	f.Lock()
	defer f.Unlock()
	_, ok := f.registered[id]
	return ok
}

// Unregistered returns IDs of all unregistered accessories.
func (f *fakeBridge) Unregistered() []string {
	f.Lock()
	defer f.Unlock()
	return append([]string{}, f.unregistered...)
}

// Notifications returns every characteristic update received so far.
func (f *fakeBridge) Notifications() []*providers.CharacteristicUpdate {
	f.Lock()
	defer f.Unlock()
	return append([]*providers.CharacteristicUpdate{}, f.notifications...)
}

// FailRegister forces RegisterAccessory to fail.
func (f *fakeBridge) FailRegister() {
	f.Lock()
	defer f.Unlock()
	f.failRegister = true
}

// FakeNewBridge creates a fake bridge with pre-cached accessories.
func FakeNewBridge(cached ...*providers.Accessory) *fakeBridge {
	f := &fakeBridge{
		cached:        cached,
		registered:    make(map[string]*providers.Accessory),
		unregistered:  make([]string, 0),
		notifications: make([]*providers.CharacteristicUpdate, 0),
		subscribers:   make(map[int64]chan *providers.CharacteristicUpdate),
	}

	for _, v := range cached {
		f.registered[v.ID] = v
	}

	return f
}
