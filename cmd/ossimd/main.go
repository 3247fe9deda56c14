// Command ossimd runs the paging/scheduling simulator: it listens on a
// unix-domain socket for client processes, round-robins their CPU
// bursts, and resolves their page accesses against a configurable
// eviction policy.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tuannm99/ossim/internal/config"
	"github.com/tuannm99/ossim/internal/ipc"
	"github.com/tuannm99/ossim/internal/proc"
	"github.com/tuannm99/ossim/internal/sched"
	"github.com/tuannm99/ossim/internal/simd"
	"github.com/tuannm99/ossim/internal/vm"
)

func main() {
	var (
		cfgPath   = flag.String("config", "ossim.yaml", "path to ossim yaml config")
		pages     = flag.Int("pages", 0, "override: pages per process page table (0 = from config)")
		frames    = flag.Int("frames", 0, "override: number of physical frames (0 = from config)")
		threshold = flag.Int("threshold", -1, "override: minimum free frames maintained (-1 = from config)")
		policy    = flag.String("policy", "", "override: eviction policy FIFO|RANDOM|NRU|LRU|CLOCK (empty = from config)")
		socket    = flag.String("socket", "", "override: unix socket path (empty = from config)")
		debug     = flag.Bool("debug", false, "override: enable debug logging")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *pages > 0 {
		cfg.Pages = *pages
	}
	if *frames > 0 {
		cfg.Frames = *frames
	}
	if *threshold >= 0 {
		cfg.Threshold = *threshold
	}
	if *policy != "" {
		cfg.Policy = *policy
	}
	if *socket != "" {
		cfg.SocketPath = *socket
	}
	if *debug {
		cfg.Debug = true
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*cfg); err != nil {
		slog.Error("ossimd: fatal", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.SimConfig) error {
	command := proc.NewQueue()
	ready := proc.NewQueue()
	blocked := proc.NewQueue()
	registry := proc.NewRegistry()

	frontend, err := ipc.Listen(cfg.SocketPath, cfg.Pages, uint32(cfg.TickMs), command, ready, blocked, registry)
	if err != nil {
		return fmt.Errorf("ossimd: listen: %w", err)
	}
	defer func() { _ = frontend.Close() }()

	frames := vm.NewFrameTable(cfg.Frames)
	swap := vm.NewSwapStore()
	engine, err := vm.NewEngine(cfg.Policy, cfg.Frames, registry)
	if err != nil {
		return fmt.Errorf("ossimd: engine: %w", err)
	}
	scheduler := sched.New(ready, command, uint32(cfg.TimeSlice), uint32(cfg.TickMs))
	loop := simd.New(frontend, scheduler, engine, frames, swap, cfg.Threshold, uint32(cfg.TickMs))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("ossimd: listening", "socket", cfg.SocketPath, "pages", cfg.Pages, "frames", cfg.Frames,
		"threshold", cfg.Threshold, "policy", cfg.Policy, "tick_ms", cfg.TickMs, "time_slice_ms", cfg.TimeSlice)

	started := time.Now()
	stats := loop.Run(ctx)

	slog.Info("ossimd: shutdown",
		"uptime", time.Since(started).Round(time.Millisecond),
		"ticks", stats.Ticks,
		"page_accesses", stats.TotalPageAccesses,
		"page_faults", stats.TotalPageFaults,
		"swaps_in", stats.TotalSwapsIn,
		"swaps_out", stats.TotalSwapsOut,
	)
	return nil
}
