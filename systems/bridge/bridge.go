// Package bridge contains in-process home-automation bridge
// which keeps accessories cache and publishes state changes.
package bridge

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/go-home-io/cmdswitch/common"
	"github.com/go-home-io/cmdswitch/providers"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Cache file content.
type cacheFile struct {
	Accessories []*providers.Accessory `yaml:"accessories"`
}

// Implements IBridgeProvider.
type provider struct {
	sync.Mutex

	path        string
	logger      common.ILoggerProvider
	fanOut      providers.IFanOutProvider
	accessories map[string]*providers.Accessory
	cached      []*providers.Accessory
}

// ConstructBridge has data required for a new bridge.
type ConstructBridge struct {
	CachePath string
	Logger    common.ILoggerProvider
	FanOut    providers.IFanOutProvider
}

// NewBridge constructs a new bridge and loads previously cached accessories.
// Missing cache file is not an error.
func NewBridge(ctor *ConstructBridge) providers.IBridgeProvider {
	b := &provider{
		path:        ctor.CachePath,
		logger:      ctor.Logger,
		fanOut:      ctor.FanOut,
		accessories: make(map[string]*providers.Accessory),
		cached:      make([]*providers.Accessory, 0),
	}

	cached, err := b.load()
	if err != nil {
		b.logger.Error("Failed to load accessories cache", err, common.LogFileToken, b.path)
		return b
	}

	for _, v := range cached {
		if nil == v || "" == v.ID {
			continue
		}

		b.accessories[v.ID] = v
		b.cached = append(b.cached, v)
	}

	b.logger.Info("Loaded cached accessories", common.LogFileToken, b.path)
	return b
}

// RegisterAccessory adds a new accessory.
func (b *provider) RegisterAccessory(a *providers.Accessory) error {
	b.Lock()
	defer b.Unlock()

	if _, ok := b.accessories[a.ID]; ok {
		return &ErrDuplicateAccessory{ID: a.ID}
	}

	b.accessories[a.ID] = copyAccessory(a)
	b.logger.Debug("Registered accessory", common.LogSwitchIDToken, a.ID, common.LogSwitchNameToken, a.Name)
	return b.persist()
}

// UnregisterAccessory removes accessory.
func (b *provider) UnregisterAccessory(id string) error {
	b.Lock()
	defer b.Unlock()

	if _, ok := b.accessories[id]; !ok {
		return &ErrUnknownAccessory{ID: id}
	}

	delete(b.accessories, id)
	b.logger.Debug("Unregistered accessory", common.LogSwitchIDToken, id)
	return b.persist()
}

// UpdateAccessory refreshes accessory metadata.
func (b *provider) UpdateAccessory(a *providers.Accessory) error {
	b.Lock()
	defer b.Unlock()

	if _, ok := b.accessories[a.ID]; !ok {
		return &ErrUnknownAccessory{ID: a.ID}
	}

	b.accessories[a.ID] = copyAccessory(a)
	return b.persist()
}

// NotifyCharacteristicChanged records a new "On" value and publishes it.
func (b *provider) NotifyCharacteristicChanged(id string, value bool) {
	b.Lock()
	a, ok := b.accessories[id]
	if !ok {
		b.Unlock()
		b.logger.Debug("Ignoring update for unknown accessory", common.LogSwitchIDToken, id)
		return
	}

	a.On = value
	update := &providers.CharacteristicUpdate{ID: id, Name: a.Name, On: value}
	if err := b.persist(); err != nil {
		b.logger.Error("Failed to save accessories cache", err, common.LogFileToken, b.path)
	}
	b.Unlock()

	select {
	case b.fanOut.ChannelInStateUpdates() <- update:
	default:
		b.logger.Warn("State updates queue is full, dropping update", common.LogSwitchIDToken, id)
	}
}

// CachedAccessories returns accessories loaded from the cache at start-up.
func (b *provider) CachedAccessories() []*providers.Accessory {
	b.Lock()
	defer b.Unlock()

	result := make([]*providers.Accessory, 0, len(b.cached))
	for _, v := range b.cached {
		result = append(result, copyAccessory(v))
	}

	return result
}

// Accessories returns currently registered accessories sorted by name.
func (b *provider) Accessories() []*providers.Accessory {
	b.Lock()
	defer b.Unlock()

	return b.sorted()
}

// Subscribe allows to subscribe to the characteristic updates.
func (b *provider) Subscribe() (int64, chan *providers.CharacteristicUpdate) {
	return b.fanOut.SubscribeStateUpdates()
}

// Unsubscribe allows to un-subscribe from the characteristic updates.
func (b *provider) Unsubscribe(id int64) {
	b.fanOut.UnSubscribeStateUpdates(id)
}

// Returns copies of registered accessories sorted by name.
func (b *provider) sorted() []*providers.Accessory {
	result := make([]*providers.Accessory, 0, len(b.accessories))
	for _, v := range b.accessories {
		result = append(result, copyAccessory(v))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Reads cache file.
func (b *provider) load() ([]*providers.Accessory, error) {
	if "" == b.path {
		return nil, nil
	}

	data, err := ioutil.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "read failed")
	}

	content := &cacheFile{}
	if err := yaml.Unmarshal(data, content); err != nil {
		return nil, errors.Wrap(err, "unmarshal failed")
	}

	return content.Accessories, nil
}

// Writes cache file. Caller must hold the lock.
func (b *provider) persist() error {
	if "" == b.path {
		return nil
	}

	data, err := yaml.Marshal(&cacheFile{Accessories: b.sorted()})
	if err != nil {
		return errors.Wrap(err, "marshal failed")
	}

	if err := os.MkdirAll(filepath.Dir(b.path), os.ModePerm); err != nil {
		return errors.Wrap(err, "mkdir failed")
	}

	tmp := b.path + ".tmp"
	if err := ioutil.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrap(err, "write failed")
	}

	return errors.Wrap(os.Rename(tmp, b.path), "rename failed")
}

// Returns independent copy of the accessory.
func copyAccessory(a *providers.Accessory) *providers.Accessory {
	c := *a
	if nil != a.Context {
		ctx := *a.Context
		c.Context = &ctx
	}

	return &c
}
