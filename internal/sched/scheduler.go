// Package sched implements the round-robin CPU scheduler: one CPU
// slot, a time slice, and the READY/COMMAND transitions a finished or
// preempted burst makes.
package sched

import (
	"log/slog"

	"github.com/tuannm99/ossim/internal/ipc"
	"github.com/tuannm99/ossim/internal/proc"
)

const logPrefix = "sched: "

// StepResult distinguishes whether Step kept the same task running or
// just installed a new one onto the CPU.
type StepResult int

const (
	Continued StepResult = iota
	Dispatched
)

// Scheduler is a single-CPU round-robin dispatcher with preemptive
// time slicing.
type Scheduler struct {
	ready     *proc.Queue
	command   *proc.Queue
	cpu       *proc.PCB
	timeSlice uint32
	ticksMs   uint32
}

// New builds a scheduler bound to the READY and COMMAND queues it
// moves PCBs between.
func New(ready, command *proc.Queue, timeSliceMs, ticksMs uint32) *Scheduler {
	return &Scheduler{ready: ready, command: command, timeSlice: timeSliceMs, ticksMs: ticksMs}
}

// CPU returns the PCB currently occupying the CPU slot, or nil if idle.
func (s *Scheduler) CPU() *proc.PCB {
	return s.cpu
}

// Step advances the scheduler by one tick. If the CPU is occupied, its
// elapsed time grows by TICKS_MS; a finished burst is sent DONE and
// moved to COMMAND, a burst that outran its time slice is preempted
// back to the tail of READY. If the CPU ends up idle, the head of
// READY (if any) is dispatched. The return value tells the tick loop
// whether a *new* burst just landed on the CPU, which is when its
// requested pages need to be resolved through the VM engine.
func (s *Scheduler) Step(now uint32) StepResult {
	if s.cpu != nil {
		s.cpu.ElapsedMs += s.ticksMs

		if s.cpu.ElapsedMs >= s.cpu.TimeMs {
			if err := ipc.WriteMessage(s.cpu.Conn, ipc.Message{Pid: s.cpu.Pid, Request: ipc.RequestDone, TimeMs: now}); err != nil {
				slog.Warn(logPrefix+"write DONE", "pid", s.cpu.Pid, "err", err)
			}
			slog.Debug(logPrefix+"burst finished", "pid", s.cpu.Pid)
			s.cpu.Status = proc.Command
			s.command.Enqueue(s.cpu)
			s.cpu = nil
		} else if now-s.cpu.SliceStartMs >= s.timeSlice {
			slog.Debug(logPrefix+"preempted", "pid", s.cpu.Pid)
			s.cpu.SliceStartMs = 0
			s.ready.Enqueue(s.cpu)
			s.cpu = nil
		}
	}

	if s.cpu == nil {
		next := s.ready.Dequeue()
		if next != nil {
			next.SliceStartMs = now
			s.cpu = next
			slog.Debug(logPrefix+"dispatched", "pid", next.Pid)
			return Dispatched
		}
	}

	return Continued
}
