package vm

import "container/list"

// frameDescriptor is the physical-frame side of the frame<->PTE
// relationship. It stores the owning pid and vpn rather than a raw
// pointer to the PTE, avoiding the ownership cycle the spec calls out:
// the PTE already stores the frame id, so the pair never needs to
// point at each other's memory directly.
type frameDescriptor struct {
	occupied bool
	pid      int32
	vpn      int32
}

// FrameTable is the fixed-size table of physical frames: a free-frame
// LIFO stack (all frames, initially) and an eviction-order FIFO (used
// by the FIFO replacement policy, empty initially).
type FrameTable struct {
	frames       []frameDescriptor
	free         []int32    // LIFO stack of free frame ids
	evictionFIFO *list.List // FIFO of occupied frame ids
	fifoElems    map[int32]*list.Element
}

// NewFrameTable allocates n frame descriptors and seeds the free
// stack with every frame id.
func NewFrameTable(n int) *FrameTable {
	if n <= 0 {
		n = 1
	}
	ft := &FrameTable{
		frames:       make([]frameDescriptor, n),
		free:         make([]int32, n),
		evictionFIFO: list.New(),
		fifoElems:    make(map[int32]*list.Element, n),
	}
	for i := 0; i < n; i++ {
		ft.free[i] = int32(i)
	}
	return ft
}

// NumFrames returns the total number of physical frames.
func (ft *FrameTable) NumFrames() int {
	return len(ft.frames)
}

// FreeCount returns the number of frames currently on the free stack.
func (ft *FrameTable) FreeCount() int {
	return len(ft.free)
}

// PopFree pops the top free frame id, or InvalidFrame if none remain.
func (ft *FrameTable) PopFree() int32 {
	n := len(ft.free)
	if n == 0 {
		return InvalidFrame
	}
	id := ft.free[n-1]
	ft.free = ft.free[:n-1]
	return id
}

// PushFree returns a frame id to the free pool.
func (ft *FrameTable) PushFree(id int32) {
	ft.free = append(ft.free, id)
}

// PushEviction appends a frame id to the tail of the eviction-order
// FIFO, recording it as occupied.
func (ft *FrameTable) PushEviction(id int32) {
	if elem, ok := ft.fifoElems[id]; ok {
		ft.evictionFIFO.Remove(elem)
	}
	ft.fifoElems[id] = ft.evictionFIFO.PushBack(id)
}

// PopEviction dequeues the head of the eviction-order FIFO, or
// InvalidFrame if it is empty.
func (ft *FrameTable) PopEviction() int32 {
	front := ft.evictionFIFO.Front()
	if front == nil {
		return InvalidFrame
	}
	ft.evictionFIFO.Remove(front)
	id := front.Value.(int32)
	delete(ft.fifoElems, id)
	return id
}

// RemoveEviction drops id from the eviction FIFO without returning it
// (used when a different policy selects id as victim, keeping the
// FIFO's bookkeeping consistent with actual occupancy).
func (ft *FrameTable) RemoveEviction(id int32) {
	if elem, ok := ft.fifoElems[id]; ok {
		ft.evictionFIFO.Remove(elem)
		delete(ft.fifoElems, id)
	}
}

// Occupy records that frame id now holds (pid, vpn).
func (ft *FrameTable) Occupy(id int32, pid int32, vpn int32) {
	ft.frames[id] = frameDescriptor{occupied: true, pid: pid, vpn: vpn}
}

// Vacate clears frame id's occupancy and removes it from the eviction
// FIFO if present.
func (ft *FrameTable) Vacate(id int32) {
	ft.frames[id] = frameDescriptor{}
	ft.RemoveEviction(id)
}

// Owner returns the (pid, vpn) occupying frame id, and whether it is
// occupied at all.
func (ft *FrameTable) Owner(id int32) (pid int32, vpn int32, ok bool) {
	fd := ft.frames[id]
	return fd.pid, fd.vpn, fd.occupied
}
