// ABOUTME: Per-cycle collection statistics
// ABOUTME: Observability only, never consulted by the algorithm

package gc

import (
	"fmt"
	"time"

	"github.com/inhies/go-bytesize"
)

// Stats describes one collection cycle
type Stats struct {
	Cycle        uint64        // 1-based cycle number
	Roots        int           // roots at the start of the cycle
	Pinned       int           // distinct pinned objects at the start of the cycle
	HeapBefore   int           // tracked objects before the sweep
	Live         int           // objects that survived
	Dead         int           // objects unregistered and released
	Traced       int           // objects marked by this cycle's mark phase
	PeakWorkList int           // deepest the mark work-list grew
	FreedBytes   uint64        // bytes reported by swept Sizer objects
	Duration     time.Duration // wall-clock time for mark and sweep
	Timestamp    time.Time     // when the cycle started
}

// ElapsedMicros returns the cycle duration in microseconds
func (s Stats) ElapsedMicros() int64 {
	return s.Duration.Microseconds()
}

func (s Stats) String() string {
	return fmt.Sprintf("cycle %d: %d live, %d dead, %s freed in %dµs",
		s.Cycle, s.Live, s.Dead, bytesize.New(float64(s.FreedBytes)), s.ElapsedMicros())
}
