// ABOUTME: TOML configuration for the collector, logging, history and dumps
// ABOUTME: Missing keys keep the values from Default

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/prateek/marksweep/gc"
	"github.com/prateek/marksweep/heapdump"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Config is the contents of a marksweep.toml file
type Config struct {
	Collector Collector `toml:"collector"`
	Log       Log       `toml:"log"`
	History   History   `toml:"history"`
	Dump      Dump      `toml:"dump"`
}

type Collector struct {
	Verbose          bool     `toml:"verbose"`
	WorkListCapacity int      `toml:"work-list-capacity"`
	SweepInterval    Duration `toml:"sweep-interval"`
}

// Log is handed to commonlog.Configure. An empty Path logs to stderr.
type Log struct {
	Verbosity int    `toml:"verbosity"`
	Path      string `toml:"path"`
}

// History enables the cycle store when Dir is set
type History struct {
	Dir string `toml:"dir"`
}

// Dump writes a snapshot after the run when Path is set
type Dump struct {
	Format string `toml:"format"`
	Path   string `toml:"path"`
}

// Duration is a time.Duration written as a string such as "30s"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Collector: Collector{
			WorkListCapacity: gc.DefaultWorkListCapacity,
			SweepInterval:    Duration{gc.DefaultSweepInterval},
		},
		Log: Log{
			Verbosity: 1,
		},
		Dump: Dump{
			Format: "json",
		},
	}
}

// Load parses the file at path over the defaults and validates the result
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes TOML data over the defaults. name is used in errors.
func Parse(data []byte, name string) (*Config, error) {
	c := Default()
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", name, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q: %w", name, undecoded[0].String(), ErrInvalid)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return c, nil
}

// Validate checks value ranges and that the dump format is registered
func (c *Config) Validate() error {
	if c.Collector.WorkListCapacity <= 0 {
		return fmt.Errorf("collector.work-list-capacity must be positive, got %d: %w",
			c.Collector.WorkListCapacity, ErrInvalid)
	}
	if c.Collector.SweepInterval.Duration < 0 {
		return fmt.Errorf("collector.sweep-interval must not be negative: %w", ErrInvalid)
	}
	if c.Log.Verbosity < -1 {
		return fmt.Errorf("log.verbosity must be -1 or more, got %d: %w", c.Log.Verbosity, ErrInvalid)
	}
	if _, err := heapdump.Lookup(c.Dump.Format); err != nil {
		return fmt.Errorf("dump.format: %w", err)
	}
	return nil
}

// LogPath returns the log path in the form commonlog.Configure expects
func (c *Config) LogPath() *string {
	if c.Log.Path == "" {
		return nil
	}
	p := c.Log.Path
	return &p
}

// Options translates the collector section into gc options
func (c *Config) Options() []gc.Option {
	return []gc.Option{
		gc.WithVerbose(c.Collector.Verbose),
		gc.WithWorkListCapacity(c.Collector.WorkListCapacity),
	}
}
