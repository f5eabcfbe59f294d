// Package fanout contains implementation of pub-sub fanout channels.
package fanout

import (
	"math/rand"
	"sync"

	"github.com/go-home-io/cmdswitch/providers"
	"github.com/go-home-io/cmdswitch/utils"
)

// Subscriber channel size. Updates are dropped once it's full.
const subscriberQueueSize = 10

// Implements IFanOutProvider.
type provider struct {
	sync.Mutex

	inStateUpdates  chan *providers.CharacteristicUpdate
	outStateUpdates map[int64]chan *providers.CharacteristicUpdate

	done      chan struct{}
	closeOnce sync.Once
}

// NewFanOut constructs new FanOut provider.
func NewFanOut() providers.IFanOutProvider {
	p := &provider{
		inStateUpdates:  make(chan *providers.CharacteristicUpdate, subscriberQueueSize),
		outStateUpdates: make(map[int64]chan *providers.CharacteristicUpdate),
		done:            make(chan struct{}),
	}

	go p.internalCycle()
	return p
}

// SubscribeStateUpdates allows to subscribe to the switch state updates.
func (p *provider) SubscribeStateUpdates() (int64, chan *providers.CharacteristicUpdate) {
	p.Lock()
	defer p.Unlock()

	c := make(chan *providers.CharacteristicUpdate, subscriberQueueSize)
	id := p.getID()
	for {
		if _, ok := p.outStateUpdates[id]; !ok {
			break
		}
		id = p.getID()
	}

	p.outStateUpdates[id] = c
	return id, c
}

// UnSubscribeStateUpdates allows to un-subscribe from the switch state updates.
func (p *provider) UnSubscribeStateUpdates(id int64) {
	p.Lock()
	defer p.Unlock()

	c, ok := p.outStateUpdates[id]
	if !ok {
		return
	}

	close(c)
	delete(p.outStateUpdates, id)
}

// ChannelInStateUpdates returns input channel for the state updates.
func (p *provider) ChannelInStateUpdates() chan *providers.CharacteristicUpdate {
	return p.inStateUpdates
}

// Close stops broadcasting and closes every subscriber channel.
func (p *provider) Close() {
	p.closeOnce.Do(func() {
		close(p.done)

		p.Lock()
		defer p.Unlock()
		for k, v := range p.outStateUpdates {
			close(v)
			delete(p.outStateUpdates, k)
		}
	})
}

// Returns random ID.
func (p *provider) getID() int64 {
	return utils.TimeNow() + rand.Int63()
}

func (p *provider) internalCycle() {
	for {
		select {
		case <-p.done:
			return
		case u := <-p.inStateUpdates:
			p.stateUpdates(u)
		}
	}
}

// Broadcasts state updates. Slow subscribers lose the update.
func (p *provider) stateUpdates(update *providers.CharacteristicUpdate) {
	p.Lock()
	defer p.Unlock()

	for _, v := range p.outStateUpdates {
		select {
		case v <- update:
		default:
		}
	}
}
