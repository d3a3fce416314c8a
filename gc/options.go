// ABOUTME: Functional options for constructing a Collector
// ABOUTME: Covers logging, verbosity, work-list sizing and stats recording

package gc

import "github.com/tliron/commonlog"

// DefaultWorkListCapacity is the initial capacity of the mark work-list
const DefaultWorkListCapacity = 64

// Recorder receives the statistics of every completed cycle
type Recorder interface {
	Record(Stats) error
}

// Option configures a Collector
type Option func(*Collector)

// WithLogger replaces the default "marksweep.gc" logger
func WithLogger(log commonlog.Logger) Option {
	return func(c *Collector) {
		if log != nil {
			c.log = log
		}
	}
}

// WithVerbose reports every cycle at info level, as if Collect(true)
func WithVerbose(verbose bool) Option {
	return func(c *Collector) {
		c.verbose = verbose
	}
}

// WithWorkListCapacity presizes the mark work-list
func WithWorkListCapacity(n int) Option {
	return func(c *Collector) {
		if n > 0 {
			c.workListCap = n
		}
	}
}

// WithRecorder hands each cycle's Stats to r
func WithRecorder(r Recorder) Option {
	return func(c *Collector) {
		c.recorder = r
	}
}
