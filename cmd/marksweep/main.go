// ABOUTME: Command-line driver that exercises the collector on canned scenarios
// ABOUTME: Optionally records cycle history and writes a heap dump

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/prateek/marksweep"
	"github.com/prateek/marksweep/config"
	"github.com/prateek/marksweep/gc"
	"github.com/prateek/marksweep/heapdump"
	"github.com/prateek/marksweep/history"
)

var log = commonlog.GetLogger("marksweep.cmd")

func main() {
	configPath := flag.String("config", "", "Path to a marksweep.toml file")
	verbose := flag.Bool("v", false, "Report every cycle at info level")
	count := flag.Int("n", 1000, "Objects allocated by the bulk scenarios")
	dumpPath := flag.String("dump", "", "Write a heap snapshot to this file before the final cycle")
	dumpFormat := flag.String("format", "", "Dump format (overrides [dump] format)")
	historyDir := flag.String("history", "", "Record cycle statistics in this directory")
	sweep := flag.Duration("sweep", 0, "Also run a background sweeper at this interval for one tick")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: marksweep [options]\n\n")
		fmt.Fprintf(os.Stderr, "Runs the collector through its reference scenarios and reports each cycle.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  marksweep -v                         # Run scenarios with cycle reports\n")
		fmt.Fprintf(os.Stderr, "  marksweep -dump heap.cbor -format cbor  # Also write a snapshot\n")
		fmt.Fprintf(os.Stderr, "  marksweep -history ./gc-history      # Record every cycle\n")
	}
	flag.Parse()

	if *showVersion {
		fmt.Println("marksweep", marksweep.Version)
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *verbose {
		cfg.Collector.Verbose = true
		if cfg.Log.Verbosity < 1 {
			cfg.Log.Verbosity = 1
		}
	}
	if *dumpPath != "" {
		cfg.Dump.Path = *dumpPath
	}
	if *dumpFormat != "" {
		cfg.Dump.Format = *dumpFormat
	}
	if *historyDir != "" {
		cfg.History.Dir = *historyDir
	}
	if *sweep > 0 {
		cfg.Collector.SweepInterval = config.Duration{Duration: *sweep}
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	commonlog.Configure(cfg.Log.Verbosity, cfg.LogPath())

	if err := run(cfg, *count, *sweep > 0); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, count int, sweep bool) error {
	opts := cfg.Options()
	if cfg.History.Dir != "" {
		store, err := history.Open(cfg.History.Dir)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, gc.WithRecorder(store))
		defer printHistory(store)
	}

	c := gc.New(opts...)
	defer c.Close()

	for _, s := range scenarios {
		if err := s.run(c, count); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
		fmt.Printf("%-28s ok\n", s.name)
	}

	if err := scene(c); err != nil {
		return err
	}
	fmt.Printf("%-28s %d objects pending reclaim\n", "dry run", len(c.Garbage()))
	if cfg.Dump.Path != "" {
		if err := writeDump(c, cfg.Dump); err != nil {
			return err
		}
	}
	fmt.Printf("%-28s %s\n", "final cycle", c.Collect(false))

	if sweep {
		return runSweeper(c, cfg.Collector.SweepInterval.Duration, cfg.Collector.Verbose)
	}
	return nil
}

func writeDump(c *gc.Collector, d config.Dump) error {
	f, err := os.Create(d.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := heapdump.Write(f, d.Format, c.Snapshot()); err != nil {
		return fmt.Errorf("writing %s dump: %w", d.Format, err)
	}
	log.Infof("wrote %s snapshot of %d objects to %s", d.Format, c.Live(), d.Path)
	return nil
}

// runSweeper hands the collector to a sweeper and waits for one tick
func runSweeper(c *gc.Collector, interval time.Duration, verbose bool) error {
	shared := gc.NewShared(c)
	for i := 0; i < 10; i++ {
		if err := shared.Track(&gc.Buffer{}); err != nil {
			return fmt.Errorf("background sweep: %w", err)
		}
	}

	sw := gc.NewSweeper(shared, interval, verbose)
	sw.Start()
	deadline := time.Now().Add(interval * 3)
	for sw.SweepCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(interval / 4)
	}
	sw.Stop()

	if s := sw.LastStats(); s != nil {
		fmt.Printf("%-28s %s\n", "background sweep", s)
	}
	return nil
}

func printHistory(store *history.Store) {
	n, dead, freed, err := store.Totals()
	if err != nil {
		log.Warningf("reading history: %s", err)
		return
	}
	fmt.Printf("history: %d cycles recorded, %d objects reclaimed, %d bytes freed\n", n, dead, freed)
}
