package switches

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/go-home-io/cmdswitch/common"
	"github.com/go-home-io/cmdswitch/providers"
)

// Poller refreshes switch states in background.
// Every switch has its own loop, next cycle starts only after the previous one finished.
type Poller struct {
	mutex sync.Mutex
	wg    sync.WaitGroup

	lookup     ISwitchLookup
	controller *Controller
	store      providers.IStateStoreProvider
	bridge     providers.IBridgeProvider
	logger     common.ILoggerProvider

	ctx          context.Context
	intervalUnit time.Duration
	loops        map[string]*pollLoop
	stopping     map[string]*pollLoop
}

// Single running loop.
// Cancelling the context stops the loop and kills its state command.
type pollLoop struct {
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// ConstructPoller has data required for a new poller.
type ConstructPoller struct {
	Lookup       ISwitchLookup
	Controller   *Controller
	Store        providers.IStateStoreProvider
	Bridge       providers.IBridgeProvider
	Logger       common.ILoggerProvider
	Context      context.Context
	IntervalUnit time.Duration
}

// NewPoller constructs a new poller.
func NewPoller(ctor *ConstructPoller) *Poller {
	p := &Poller{
		lookup:       ctor.Lookup,
		controller:   ctor.Controller,
		store:        ctor.Store,
		bridge:       ctor.Bridge,
		logger:       ctor.Logger,
		ctx:          ctor.Context,
		intervalUnit: ctor.IntervalUnit,
		loops:        make(map[string]*pollLoop),
		stopping:     make(map[string]*pollLoop),
	}

	if nil == p.ctx {
		p.ctx = context.Background()
	}

	if p.intervalUnit <= 0 {
		p.intervalUnit = time.Second
	}

	return p
}

// Start launches polling loop for the switch. Running loop is not duplicated.
// A loop which is still stopping is awaited before the first cycle.
func (p *Poller) Start(name string) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if _, ok := p.loops[name]; ok {
		return
	}

	ctx, cancel := context.WithCancel(p.ctx)
	l := &pollLoop{
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	var prev chan struct{}
	if old, ok := p.stopping[name]; ok {
		prev = old.done
	}

	p.loops[name] = l
	p.wg.Add(1)
	go p.loop(name, l, prev)
}

// Stop terminates polling loop for the switch.
func (p *Poller) Stop(name string) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if l, ok := p.loops[name]; ok {
		l.cancel()
		delete(p.loops, name)
		p.stopping[name] = l
	}
}

// StopAll terminates every loop and waits until they're gone.
func (p *Poller) StopAll() {
	p.mutex.Lock()
	for k, v := range p.loops {
		v.cancel()
		delete(p.loops, k)
		p.stopping[k] = v
	}
	p.mutex.Unlock()

	p.wg.Wait()
}

// IsPolling returns whether loop for the switch is running.
func (p *Poller) IsPolling(name string) bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	_, ok := p.loops[name]
	return ok
}

// Single switch polling loop.
func (p *Poller) loop(name string, l *pollLoop, prev chan struct{}) {
	defer p.wg.Done()
	defer close(l.done)
	defer p.forget(name, l)
	defer l.cancel()

	// Previous loop is already cancelled, so it ends as soon as its command is killed.
	if nil != prev {
		<-prev
	}

	for nil == l.ctx.Err() {
		sw, ok := p.lookup.Get(name)
		if !ok {
			p.logger.Debug("Switch was removed, stopping polling", common.LogSwitchNameToken, name)
			return
		}

		snap := sw.snapshot()
		if !snap.Polling || "" == snap.StateCmd {
			p.logger.Debug("Polling is disabled, stopping", common.LogSwitchNameToken, name)
			return
		}

		p.cycle(l.ctx, sw, snap)

		timer := time.NewTimer(time.Duration(snap.Interval) * p.intervalUnit)
		select {
		case <-l.ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// Single polling cycle.
func (p *Poller) cycle(ctx context.Context, sw *Switch, snap *switchSnapshot) {
	state, ok := p.controller.checkState(ctx, snap)
	if !ok || nil != ctx.Err() {
		return
	}

	if current, ok := p.lookup.Get(snap.Name); !ok || current != sw {
		return
	}

	if p.store.Set(snap.Name, state) {
		p.logger.Debug("Polled state changed", common.LogSwitchNameToken, snap.Name,
			common.LogStateToken, stateString(state), common.LogIntervalToken, strconv.Itoa(snap.Interval))
		p.bridge.NotifyCharacteristicChanged(snap.ID, state)
	}
}

// Drops finished loop unless it was already replaced.
func (p *Poller) forget(name string, l *pollLoop) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if current, ok := p.loops[name]; ok && current == l {
		delete(p.loops, name)
	}

	if current, ok := p.stopping[name]; ok && current == l {
		delete(p.stopping, name)
	}
}
