// ABOUTME: Periodic background collection over a Shared collector
// ABOUTME: Each tick runs one complete stop-the-world cycle

package gc

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultSweepInterval is used when NewSweeper is given a non-positive interval
const DefaultSweepInterval = 30 * time.Second

// Sweeper calls Collect on a Shared collector at a fixed interval
type Sweeper struct {
	shared   *Shared
	interval time.Duration
	verbose  bool
	enabled  atomic.Bool

	mu      sync.Mutex // guards stop/stopped
	stop    chan struct{}
	stopped chan struct{}

	sweepCount atomic.Uint64
	lastStats  atomic.Pointer[Stats]
}

// NewSweeper creates a stopped, enabled sweeper
func NewSweeper(s *Shared, interval time.Duration, verbose bool) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	sw := &Sweeper{
		shared:   s,
		interval: interval,
		verbose:  verbose,
	}
	sw.enabled.Store(true)
	return sw
}

// Start launches the sweep loop. Calling Start on a running sweeper is a no-op.
func (sw *Sweeper) Start() {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.stop != nil {
		return
	}
	sw.stop = make(chan struct{})
	sw.stopped = make(chan struct{})
	go sw.loop(sw.stop, sw.stopped)
}

// Stop halts the loop and waits for an in-flight cycle to finish.
// It is safe to call on a sweeper that was never started.
func (sw *Sweeper) Stop() {
	sw.mu.Lock()
	stopCh, stoppedCh := sw.stop, sw.stopped
	sw.stop, sw.stopped = nil, nil
	sw.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
		<-stoppedCh
	}
}

// SetEnabled pauses or resumes sweeping without stopping the loop
func (sw *Sweeper) SetEnabled(enabled bool) { sw.enabled.Store(enabled) }

func (sw *Sweeper) IsEnabled() bool { return sw.enabled.Load() }

func (sw *Sweeper) Interval() time.Duration { return sw.interval }

// SweepCount returns how many cycles this sweeper has run
func (sw *Sweeper) SweepCount() uint64 { return sw.sweepCount.Load() }

// LastStats returns the latest cycle run by this sweeper, or nil
func (sw *Sweeper) LastStats() *Stats { return sw.lastStats.Load() }

// SweepNow runs a cycle immediately, regardless of the timer
func (sw *Sweeper) SweepNow() Stats {
	stats := sw.shared.Collect(sw.verbose)
	sw.sweepCount.Add(1)
	sw.lastStats.Store(&stats)
	return stats
}

func (sw *Sweeper) loop(stopCh <-chan struct{}, stoppedCh chan struct{}) {
	defer close(stoppedCh)

	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if sw.enabled.Load() {
				sw.SweepNow()
			}
		}
	}
}
