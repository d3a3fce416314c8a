// ABOUTME: Tests for the mutex-guarded collector and the periodic sweeper
// ABOUTME: Run with -race to check the single-lock discipline

package gc

import (
	"sync"
	"testing"
	"time"
)

func TestSharedConcurrentMutators(t *testing.T) {
	s := NewShared(New())
	defer s.Close()

	const workers, perWorker = 8, 100
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				n := &node{name: "shared"}
				if err := s.Track(n); err != nil {
					t.Error(err)
					return
				}
				if i%2 == 0 {
					if err := s.AddRoot(n); err != nil {
						t.Error(err)
					}
				}
				if i%10 == 0 {
					s.Collect(false)
				}
			}
		}()
	}
	wg.Wait()

	stats := s.Collect(false)
	if stats.Live != workers*perWorker/2 {
		t.Errorf("live = %d, want %d", stats.Live, workers*perWorker/2)
	}
	if s.Live() != stats.Live {
		t.Errorf("Live() = %d, want %d", s.Live(), stats.Live)
	}
}

func TestSharedPinAndDo(t *testing.T) {
	s := NewShared(New())
	defer s.Close()

	n := &node{name: "pinned"}
	if err := s.Track(n); err != nil {
		t.Fatal(err)
	}
	if err := s.Pin(n); err != nil {
		t.Fatal(err)
	}

	var count int
	s.Do(func(c *Collector) { count = c.PinCount(n) })
	if count != 1 {
		t.Errorf("PinCount inside Do = %d, want 1", count)
	}

	if err := s.Unpin(n); err != nil {
		t.Fatal(err)
	}
	_ = s.AddRoot(n)
	s.RemoveRoot(n)
	if stats := s.Collect(false); stats.Dead != 1 {
		t.Errorf("dead = %d, want 1", stats.Dead)
	}
}

func TestSweeperRunsPeriodically(t *testing.T) {
	s := NewShared(New())
	defer s.Close()

	sw := NewSweeper(s, 5*time.Millisecond, false)
	if !sw.IsEnabled() || sw.Interval() != 5*time.Millisecond {
		t.Fatalf("enabled=%v interval=%v", sw.IsEnabled(), sw.Interval())
	}

	for i := 0; i < 10; i++ {
		_ = s.Track(&node{name: "garbage"})
	}

	sw.Start()
	sw.Start()
	deadline := time.Now().Add(5 * time.Second)
	for sw.SweepCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	sw.Stop()
	sw.Stop()

	if sw.SweepCount() == 0 {
		t.Fatal("sweeper never ran")
	}
	if s.Live() != 0 {
		t.Errorf("live after sweep = %d, want 0", s.Live())
	}
	if sw.LastStats() == nil {
		t.Error("LastStats() = nil after sweeping")
	}
}

func TestSweeperDisabled(t *testing.T) {
	s := NewShared(New())
	defer s.Close()

	sw := NewSweeper(s, time.Millisecond, false)
	sw.SetEnabled(false)
	_ = s.Track(&node{name: "survivor"})

	sw.Start()
	time.Sleep(20 * time.Millisecond)
	sw.Stop()

	if sw.SweepCount() != 0 || s.Live() != 1 {
		t.Errorf("disabled sweeper ran: count=%d live=%d", sw.SweepCount(), s.Live())
	}

	stats := sw.SweepNow()
	if stats.Dead != 1 || sw.SweepCount() != 1 {
		t.Errorf("SweepNow dead=%d count=%d, want 1/1", stats.Dead, sw.SweepCount())
	}
}

func TestSweeperDefaultInterval(t *testing.T) {
	sw := NewSweeper(NewShared(New()), 0, false)
	if sw.Interval() != DefaultSweepInterval {
		t.Errorf("Interval() = %v, want %v", sw.Interval(), DefaultSweepInterval)
	}
	sw.Stop()
}
