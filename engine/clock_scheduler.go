package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/system-defender/core"
	"github.com/lixenwraith/system-defender/status"
)

// Ticker is advanced once per scheduler tick
// Implementations take the world lock themselves
type Ticker interface {
	Tick()
}

// TickerFunc adapts a function to Ticker
type TickerFunc func()

// Tick calls f()
func (f TickerFunc) Tick() { f() }

// ClockScheduler drives a Ticker on a fixed interval with drift correction
// Pausing is the Ticker's concern; the scheduler always ticks at full rate
type ClockScheduler struct {
	target   Ticker
	provider TimeProvider

	// Tick configuration
	tickInterval     time.Duration
	nextTickDeadline time.Time // Next tick deadline for drift correction

	tickCount atomic.Uint64
	mu        sync.RWMutex

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	// updateDone receives a non-blocking signal after every tick
	updateDone chan<- struct{}

	statTicks *atomic.Int64
}

// NewClockScheduler creates a scheduler for target at tickInterval
// Returns the scheduler and the channel signalled after each completed tick
func NewClockScheduler(target Ticker, provider TimeProvider, tickInterval time.Duration, stats *status.Registry) (*ClockScheduler, <-chan struct{}) {
	if provider == nil {
		provider = NewMonotonicTimeProvider()
	}
	if stats == nil {
		stats = status.NewRegistry()
	}
	updateDone := make(chan struct{}, 1)

	cs := &ClockScheduler{
		target:       target,
		provider:     provider,
		tickInterval: tickInterval,
		stopChan:     make(chan struct{}),
		updateDone:   updateDone,
		statTicks:    stats.Ints.Get(status.KeyTicks),
	}
	return cs, updateDone
}

// Start begins the scheduler loop
func (cs *ClockScheduler) Start() {
	if cs.running.CompareAndSwap(false, true) {
		cs.wg.Add(1)
		core.Go(cs.schedulerLoop)
	}
}

// Stop halts the scheduler loop and waits for the in-flight tick
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		if cs.running.CompareAndSwap(true, false) {
			close(cs.stopChan)
			cs.wg.Wait()
		}
	})
}

// TickCount returns the number of ticks executed
func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount.Load()
}

// IsRunning reports whether the loop is active
func (cs *ClockScheduler) IsRunning() bool {
	return cs.running.Load()
}

// schedulerLoop sleeps until each deadline, ticks, then schedules the next deadline
func (cs *ClockScheduler) schedulerLoop() {
	defer cs.wg.Done()

	cs.mu.Lock()
	cs.nextTickDeadline = cs.provider.Now().Add(cs.tickInterval)
	cs.mu.Unlock()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-cs.stopChan:
			return
		default:
		}

		now := cs.provider.Now()

		cs.mu.RLock()
		deadline := cs.nextTickDeadline
		cs.mu.RUnlock()

		var sleepDuration time.Duration
		if !now.Before(deadline) {
			cs.processTick()

			cs.mu.Lock()
			cs.nextTickDeadline = cs.nextTickDeadline.Add(cs.tickInterval)

			// Skip ahead instead of bursting when far behind (suspend, debugger)
			maxBehind := cs.tickInterval * 2
			if now.Sub(cs.nextTickDeadline) > maxBehind {
				cs.nextTickDeadline = now.Add(cs.tickInterval)
			}
			deadline = cs.nextTickDeadline
			cs.mu.Unlock()

			sleepDuration = deadline.Sub(cs.provider.Now())
		} else {
			sleepDuration = deadline.Sub(now)
		}

		if sleepDuration > 0 {
			timer.Reset(sleepDuration)
			select {
			case <-timer.C:
			case <-cs.stopChan:
				return
			}
		}
	}
}

// processTick executes one clock cycle
func (cs *ClockScheduler) processTick() {
	cs.target.Tick()

	ticks := cs.tickCount.Add(1)
	cs.statTicks.Store(int64(ticks))

	select {
	case cs.updateDone <- struct{}{}:
	default:
	}
}
