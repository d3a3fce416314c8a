// ABOUTME: Tests for TOML configuration loading and validation
// ABOUTME: Covers defaults, overrides, durations and rejected values

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prateek/marksweep/gc"
	"github.com/prateek/marksweep/heapdump"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if c.Collector.SweepInterval.Duration != gc.DefaultSweepInterval {
		t.Errorf("sweep interval = %v, want %v", c.Collector.SweepInterval, gc.DefaultSweepInterval)
	}
	if c.LogPath() != nil {
		t.Errorf("LogPath() = %q, want nil", *c.LogPath())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marksweep.toml")
	data := `
[collector]
verbose = true
sweep-interval = "250ms"

[log]
verbosity = 2
path = "/tmp/marksweep.log"

[history]
dir = "/var/lib/marksweep"

[dump]
format = "cbor"
path = "heap.cbor"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !c.Collector.Verbose {
		t.Error("collector.verbose not applied")
	}
	if c.Collector.SweepInterval.Duration != 250*time.Millisecond {
		t.Errorf("sweep interval = %v, want 250ms", c.Collector.SweepInterval)
	}
	if c.Collector.WorkListCapacity != gc.DefaultWorkListCapacity {
		t.Errorf("work list capacity = %d, want default %d", c.Collector.WorkListCapacity, gc.DefaultWorkListCapacity)
	}
	if c.Log.Verbosity != 2 || c.LogPath() == nil || *c.LogPath() != "/tmp/marksweep.log" {
		t.Errorf("log = %+v", c.Log)
	}
	if c.History.Dir != "/var/lib/marksweep" {
		t.Errorf("history.dir = %q", c.History.Dir)
	}
	if c.Dump.Format != "cbor" || c.Dump.Path != "heap.cbor" {
		t.Errorf("dump = %+v", c.Dump)
	}
	if len(c.Options()) != 2 {
		t.Errorf("Options() returned %d options, want 2", len(c.Options()))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist", err)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{
			name:    "zero work list",
			data:    "[collector]\nwork-list-capacity = 0\n",
			wantErr: ErrInvalid,
		},
		{
			name:    "negative interval",
			data:    "[collector]\nsweep-interval = \"-1s\"\n",
			wantErr: ErrInvalid,
		},
		{
			name:    "verbosity too low",
			data:    "[log]\nverbosity = -2\n",
			wantErr: ErrInvalid,
		},
		{
			name:    "unknown key",
			data:    "[collector]\nincremental = true\n",
			wantErr: ErrInvalid,
		},
		{
			name:    "unknown dump format",
			data:    "[dump]\nformat = \"hprof\"\n",
			wantErr: heapdump.ErrUnknownFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), "test.toml")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseBadDuration(t *testing.T) {
	_, err := Parse([]byte("[collector]\nsweep-interval = \"soon\"\n"), "test.toml")
	if err == nil {
		t.Fatal("Parse() accepted an unparseable duration")
	}
}

func TestOptionsApplyToCollector(t *testing.T) {
	c := Default()
	c.Collector.Verbose = true

	col := gc.New(c.Options()...)
	defer col.Close()

	b, err := gc.NewBuffer(col, 8)
	if err != nil {
		t.Fatal(err)
	}
	if err := col.AddRoot(b); err != nil {
		t.Fatal(err)
	}
	if s := col.Collect(false); s.Live != 1 {
		t.Errorf("Collect() live = %d, want 1", s.Live)
	}
}
