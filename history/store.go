// ABOUTME: Durable history of collection cycles backed by pebble
// ABOUTME: One CBOR-encoded record per cycle, keyed by cycle number

package history

import (
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/fxamacker/cbor/v2"

	"github.com/prateek/marksweep/gc"
)

// ErrNotFound is returned by Get for a cycle that was never recorded
var ErrNotFound = errors.New("history: cycle not found")

const keyPrefix = "cycle/"

// Record is the stored form of one cycle's statistics
type Record struct {
	Cycle        uint64 `cbor:"1,keyasint"`
	Roots        int    `cbor:"2,keyasint"`
	Pinned       int    `cbor:"3,keyasint"`
	HeapBefore   int    `cbor:"4,keyasint"`
	Live         int    `cbor:"5,keyasint"`
	Dead         int    `cbor:"6,keyasint"`
	Traced       int    `cbor:"7,keyasint"`
	PeakWorkList int    `cbor:"8,keyasint"`
	FreedBytes   uint64 `cbor:"9,keyasint"`
	DurationNs   int64  `cbor:"10,keyasint"`
	UnixNano     int64  `cbor:"11,keyasint"`
}

// FromStats converts collector statistics to a record
func FromStats(s gc.Stats) Record {
	return Record{
		Cycle:        s.Cycle,
		Roots:        s.Roots,
		Pinned:       s.Pinned,
		HeapBefore:   s.HeapBefore,
		Live:         s.Live,
		Dead:         s.Dead,
		Traced:       s.Traced,
		PeakWorkList: s.PeakWorkList,
		FreedBytes:   s.FreedBytes,
		DurationNs:   int64(s.Duration),
		UnixNano:     s.Timestamp.UnixNano(),
	}
}

// Stats converts a record back to collector statistics
func (r Record) Stats() gc.Stats {
	return gc.Stats{
		Cycle:        r.Cycle,
		Roots:        r.Roots,
		Pinned:       r.Pinned,
		HeapBefore:   r.HeapBefore,
		Live:         r.Live,
		Dead:         r.Dead,
		Traced:       r.Traced,
		PeakWorkList: r.PeakWorkList,
		FreedBytes:   r.FreedBytes,
		Duration:     time.Duration(r.DurationNs),
		Timestamp:    time.Unix(0, r.UnixNano),
	}
}

// Store persists cycle records. It implements gc.Recorder.
type Store struct {
	db *pebble.DB
}

var _ gc.Recorder = (*Store)(nil)

// Open opens or creates a store in dir
func Open(dir string) (*Store, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("history: close: %w", err)
	}
	return nil
}

// Record stores s, replacing any earlier record for the same cycle
func (s *Store) Record(stats gc.Stats) error {
	val, err := cbor.Marshal(FromStats(stats))
	if err != nil {
		return fmt.Errorf("history: encode cycle %d: %w", stats.Cycle, err)
	}
	if err := s.db.Set(keyFor(stats.Cycle), val, pebble.Sync); err != nil {
		return fmt.Errorf("history: write cycle %d: %w", stats.Cycle, err)
	}
	return nil
}

// Get returns the record for one cycle
func (s *Store) Get(cycle uint64) (Record, error) {
	val, closer, err := s.db.Get(keyFor(cycle))
	if errors.Is(err, pebble.ErrNotFound) {
		return Record{}, fmt.Errorf("cycle %d: %w", cycle, ErrNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("history: read cycle %d: %w", cycle, err)
	}
	defer closer.Close()

	return decodeRecord(val)
}

// Each calls fn for every record in cycle order, stopping at the first error
func (s *Store) Each(fn func(Record) error) error {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(keyPrefix),
		UpperBound: []byte(keyPrefix + "~"),
	})
	if err != nil {
		return fmt.Errorf("history: iterate: %w", err)
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		rec, err := decodeRecord(iter.Value())
		if err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	if err := iter.Error(); err != nil {
		return fmt.Errorf("history: iterate: %w", err)
	}
	return nil
}

// Totals sums live and dead counts across every stored cycle
func (s *Store) Totals() (cycles int, dead int, freed uint64, err error) {
	err = s.Each(func(r Record) error {
		cycles++
		dead += r.Dead
		freed += r.FreedBytes
		return nil
	})
	return cycles, dead, freed, err
}

func decodeRecord(val []byte) (Record, error) {
	var rec Record
	if err := cbor.Unmarshal(val, &rec); err != nil {
		return Record{}, fmt.Errorf("history: decode record: %w", err)
	}
	return rec, nil
}

// keyFor zero-pads so lexical key order matches cycle order
func keyFor(cycle uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", keyPrefix, cycle))
}
