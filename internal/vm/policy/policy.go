// Package policy implements the five pluggable page-replacement
// strategies the VM engine dispatches through a single interface.
// Each policy reads (and, for Clock, mutates) the reference/dirty/
// last-accessed bits of whichever PTE currently maps into a frame,
// through the FrameView the engine provides — policies never hold
// their own shadow copy of that state, since it must stay in sync
// with bits the VM engine also mutates on ordinary page hits.
package policy

import "errors"

// ErrUnknownPolicy is returned by New for an unrecognized policy name.
var ErrUnknownPolicy = errors.New("policy: unknown replacement policy")

const InvalidFrame int32 = -1

// FrameView is the engine's read/write window into frame state, built
// fresh before each eviction sweep. Present/Referenced/Dirty/
// LastAccessed resolve through the frame's owning process's page
// table; NextFIFO pops the frame table's own occupation-order queue
// (only the FIFO policy consumes it).
type FrameView interface {
	NumFrames() int
	Present(id int32) bool
	Referenced(id int32) bool
	Dirty(id int32) bool
	LastAccessed(id int32) uint32
	ClearReferenced(id int32)
	NextFIFO() int32
}

// Policy selects the next victim frame id, or InvalidFrame if no
// present frame is a candidate.
type Policy interface {
	SelectVictim(fv FrameView) int32
	Name() string
}

// New constructs the named policy. capacity is passed only to Clock,
// which stores it; Clock's sweep bound and cursor wrap come from the
// FrameView's NumFrames.
func New(name string, capacity int) (Policy, error) {
	switch name {
	case "FIFO":
		return &FIFO{}, nil
	case "RANDOM":
		return NewRandom(), nil
	case "NRU":
		return &NRU{}, nil
	case "LRU":
		return &LRU{}, nil
	case "CLOCK":
		return NewClock(capacity), nil
	default:
		return nil, ErrUnknownPolicy
	}
}
