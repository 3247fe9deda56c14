// Package simd drives the simulator's tick loop: the single-threaded
// cooperative scheduling order that polls IPC, advances time, steps
// the CPU scheduler, and resolves page accesses against the VM engine.
// Everything here runs on one goroutine, so none of the state it
// touches (queues, frame table, swap store) needs locking.
package simd

import (
	"context"
	"log/slog"
	"time"

	"github.com/tuannm99/ossim/internal/ipc"
	"github.com/tuannm99/ossim/internal/proc"
	"github.com/tuannm99/ossim/internal/sched"
	"github.com/tuannm99/ossim/internal/vm"
)

const logPrefix = "simd: "

// Stats is a point-in-time snapshot of simulator counters, reported on
// shutdown.
type Stats struct {
	Ticks             uint64
	TotalPageAccesses uint64
	TotalPageFaults   uint64
	TotalSwapsIn      uint64
	TotalSwapsOut     uint64
}

// Loop ties the IPC front-end, scheduler and VM engine together. Each
// full tick is split into two halves: IPC/blocked polling happens on
// both halves (so a client's message is never more than half a tick
// stale), while the scheduler step and page resolution happen once,
// on the second half. Both halves see the same simulated time, which
// advances by one full tick after the second half.
type Loop struct {
	frontend  *ipc.Frontend
	scheduler *sched.Scheduler
	engine    *vm.Engine
	frames    *vm.FrameTable
	swap      *vm.SwapStore
	threshold int
	tickMs    uint32

	now   uint32
	stats Stats
}

// New builds a tick loop. threshold is the minimum number of free
// frames the engine maintains via eager eviction (spec §4.6).
func New(frontend *ipc.Frontend, scheduler *sched.Scheduler, engine *vm.Engine, frames *vm.FrameTable, swap *vm.SwapStore, threshold int, tickMs uint32) *Loop {
	return &Loop{
		frontend:  frontend,
		scheduler: scheduler,
		engine:    engine,
		frames:    frames,
		swap:      swap,
		threshold: threshold,
		tickMs:    tickMs,
	}
}

// Run blocks until ctx is cancelled, stepping the simulator at half-
// tick granularity, and returns the final stats snapshot.
func (l *Loop) Run(ctx context.Context) Stats {
	halfMs := l.tickMs / 2
	if halfMs == 0 {
		halfMs = 1
	}
	ticker := time.NewTicker(time.Duration(halfMs) * time.Millisecond)
	defer ticker.Stop()

	secondHalf := false
	for {
		select {
		case <-ctx.Done():
			return l.snapshot()
		case <-ticker.C:
			l.frontend.AcceptAndCommandPoll(l.now)
			l.frontend.BlockedPoll(l.now)

			if secondHalf {
				if l.scheduler.Step(l.now) == sched.Dispatched {
					l.resolvePages(l.scheduler.CPU())
				}
				l.stats.Ticks++
				l.now += l.tickMs

				if l.now%1000 == 0 {
					slog.Debug(logPrefix+"current time", "ms", l.now)
				}
			}

			secondHalf = !secondHalf
		}
	}
}

// resolvePages walks the full requested-pages list of a burst that
// just landed on the CPU, resolving every vpn against the VM engine in
// order. A burst preempted and later redispatched re-walks its whole
// list from the start, matching the reference implementation's
// dispatch-time loop rather than spreading one access per tick.
//
// A negative vpn denotes a write (ipc/message.go's wire format): the
// magnitude is what PageRequest resolves, and on success the PTE's
// dirty bit is set, the sign itself carrying no other meaning.
func (l *Loop) resolvePages(cpu *proc.PCB) {
	if cpu == nil {
		return
	}

	for _, raw := range cpu.RequestedPages {
		isWrite := raw < 0
		vpn := raw
		if isWrite {
			vpn = -vpn
		}

		if err := l.engine.PageEviction(l.frames, l.swap, l.threshold); err != nil {
			slog.Warn(logPrefix+"eviction", "pid", cpu.Pid, "err", err)
		}
		pte, err := l.engine.PageRequest(l.now, cpu, l.frames, l.swap, vpn)
		if err != nil {
			slog.Warn(logPrefix+"page request", "pid", cpu.Pid, "vpn", vpn, "err", err)
			continue
		}
		if isWrite {
			pte.Dirty = true
		}
		l.stats.TotalPageAccesses++
	}
}

func (l *Loop) snapshot() Stats {
	s := l.stats
	s.TotalPageFaults = l.engine.PageFaults
	s.TotalSwapsIn = l.swap.TotalSwapsIn
	s.TotalSwapsOut = l.swap.TotalSwapsOut
	return s
}
