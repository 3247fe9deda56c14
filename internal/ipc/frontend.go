package ipc

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/tuannm99/ossim/internal/proc"
)

const logPrefix = "ipc: "

// Frontend owns the listening unix socket and the three per-tick
// duties spec §4.7 assigns it: accepting new clients, polling the
// COMMAND queue for RUN/BLOCK messages, and ticking the BLOCKED
// queue's simulated I/O timers. All three run on the tick-loop
// goroutine; nothing here blocks it.
type Frontend struct {
	ln           *net.UnixListener
	socketPath   string
	command      *proc.Queue
	ready        *proc.Queue
	blocked      *proc.Queue
	registry     *proc.Registry
	readers      map[*proc.PCB]*connReader
	pageCapacity int
	ticksMs      uint32
	nextPid      int32
}

// Listen binds a unix-domain socket at path, removing any stale socket
// file left behind by a previous run.
func Listen(path string, pageCapacity int, ticksMs uint32, command, ready, blocked *proc.Queue, registry *proc.Registry) (*Frontend, error) {
	_ = os.Remove(path)

	addr, err := net.ResolveUnixAddr("unix", path)
	if err != nil {
		return nil, fmt.Errorf("ipc: resolve socket path: %w", err)
	}
	ln, err := net.ListenUnix("unix", addr)
	if err != nil {
		return nil, fmt.Errorf("ipc: listen: %w", err)
	}

	return &Frontend{
		ln:           ln,
		socketPath:   path,
		command:      command,
		ready:        ready,
		blocked:      blocked,
		registry:     registry,
		readers:      make(map[*proc.PCB]*connReader),
		pageCapacity: pageCapacity,
		ticksMs:      ticksMs,
	}, nil
}

// Close stops accepting connections and unlinks the socket file.
func (f *Frontend) Close() error {
	err := f.ln.Close()
	_ = os.Remove(f.socketPath)
	return err
}

// AcceptAndCommandPoll implements spec §4.7(a) and (b): drain the
// accept backlog into COMMAND, then walk COMMAND for a complete
// RUN/BLOCK/anything-else message from each client.
func (f *Frontend) AcceptAndCommandPoll(now uint32) {
	f.acceptLoop()
	f.commandPoll(now)
}

func (f *Frontend) acceptLoop() {
	for {
		if err := f.ln.SetDeadline(time.Now()); err != nil {
			slog.Error(logPrefix+"set accept deadline", "err", err)
			return
		}
		conn, err := f.ln.AcceptUnix()
		if err != nil {
			if !errors.Is(err, os.ErrDeadlineExceeded) {
				slog.Debug(logPrefix+"accept", "err", err)
			}
			return
		}

		f.nextPid++
		pcb := proc.New(conn, f.pageCapacity)
		f.readers[pcb] = newConnReader(conn)
		f.command.Enqueue(pcb)
		slog.Debug(logPrefix+"client connected", "provisional_pid", f.nextPid)
	}
}

func (f *Frontend) commandPoll(now uint32) {
	f.command.Each(func(pcb *proc.PCB) {
		reader := f.readers[pcb]
		msg, err := reader.TryRead()
		if errors.Is(err, ErrWouldBlock) {
			return
		}
		if err != nil {
			f.dropPCB(pcb, f.command)
			return
		}

		switch msg.Request {
		case RequestRun:
			pcb.Pid = msg.Pid
			pcb.TimeMs = msg.TimeMs
			pcb.ElapsedMs = 0
			pcb.Status = proc.Running
			pcb.RequestedPages = msg.Pages
			f.command.Remove(pcb)
			f.ready.Enqueue(pcb)
			f.registry.Put(pcb)
			f.ack(pcb, now)
			slog.Debug(logPrefix+"RUN", "pid", pcb.Pid, "time_ms", pcb.TimeMs, "pages", len(pcb.RequestedPages))
		case RequestBlock:
			pcb.Pid = msg.Pid
			pcb.TimeMs = msg.TimeMs
			pcb.Status = proc.Blocked
			f.command.Remove(pcb)
			f.blocked.Enqueue(pcb)
			f.registry.Put(pcb)
			f.ack(pcb, now)
			slog.Debug(logPrefix+"BLOCK", "pid", pcb.Pid, "time_ms", pcb.TimeMs)
		default:
			slog.Warn(logPrefix+"unexpected message from client", "request", msg.Request)
		}
	})
}

func (f *Frontend) ack(pcb *proc.PCB, now uint32) {
	if err := WriteMessage(pcb.Conn, Message{Pid: pcb.Pid, Request: RequestAck, TimeMs: now}); err != nil {
		slog.Warn(logPrefix+"write ACK", "pid", pcb.Pid, "err", err)
	}
}

// BlockedPoll implements spec §4.7(c): decrement each blocked PCB's
// remaining time by at most TICKS_MS once per tick, and promote it
// back to COMMAND with a DONE message once it reaches zero.
func (f *Frontend) BlockedPoll(now uint32) {
	f.blocked.Each(func(pcb *proc.PCB) {
		if pcb.LastUpdateMs < now {
			if pcb.TimeMs > f.ticksMs {
				pcb.TimeMs -= f.ticksMs
			} else {
				pcb.TimeMs = 0
			}
			pcb.LastUpdateMs = now
		}

		if pcb.TimeMs == 0 {
			if err := WriteMessage(pcb.Conn, Message{Pid: pcb.Pid, Request: RequestDone, TimeMs: now}); err != nil {
				slog.Warn(logPrefix+"write DONE", "pid", pcb.Pid, "err", err)
			}
			pcb.Status = proc.Command
			f.blocked.Remove(pcb)
			f.command.Enqueue(pcb)
			slog.Debug(logPrefix+"BLOCK finished", "pid", pcb.Pid)
		}
	})
}

func (f *Frontend) dropPCB(pcb *proc.PCB, q *proc.Queue) {
	slog.Debug(logPrefix+"client disconnected", "pid", pcb.Pid)
	_ = pcb.Conn.Close()
	q.Remove(pcb)
	delete(f.readers, pcb)
	f.registry.Delete(pcb.Pid)
}
