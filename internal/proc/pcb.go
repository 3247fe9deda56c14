// Package proc implements process control blocks and the three
// scheduling queues (COMMAND, READY, BLOCKED) that the IPC front-end
// and scheduler move PCBs between.
package proc

import (
	"container/list"
	"net"

	"github.com/tuannm99/ossim/internal/vm"
)

// Status is a PCB's place in the simulator's state machine.
type Status int

const (
	Command Status = iota
	Blocked
	Running
	Stopped
	Terminated
)

func (s Status) String() string {
	switch s {
	case Command:
		return "COMMAND"
	case Blocked:
		return "BLOCKED"
	case Running:
		return "RUNNING"
	case Stopped:
		return "STOPPED"
	case Terminated:
		return "TERMINATED"
	default:
		return "UNKNOWN"
	}
}

// PCB is a Process Control Block: one simulated client task. A PCB is
// owned by exactly one queue (or the CPU slot) at any instant; elem
// tracks its node in whichever queue currently holds it, letting
// Queue.Remove run in O(1) instead of scanning.
type PCB struct {
	Pid            int32
	Status         Status
	TimeMs         uint32
	ElapsedMs      uint32
	SliceStartMs   uint32
	LastUpdateMs   uint32
	Conn           net.Conn
	RequestedPages []int32
	pageTable      *vm.PageTable

	elem *list.Element
}

// New allocates a PCB with a freshly created page table of the given
// capacity. Pid/TimeMs are set later, once a RUN/BLOCK message
// arrives; a just-accepted connection starts with pid=0, time=0.
func New(conn net.Conn, pageTableCapacity int) *PCB {
	return &PCB{
		Status:    Command,
		Conn:      conn,
		pageTable: vm.NewPageTable(pageTableCapacity),
	}
}

// PID implements vm.Process.
func (p *PCB) PID() int32 { return p.Pid }

// PageTable implements vm.Process.
func (p *PCB) PageTable() *vm.PageTable { return p.pageTable }
