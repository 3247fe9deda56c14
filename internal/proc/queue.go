package proc

import "container/list"

// Queue is a FIFO of PCB handles with O(1) enqueue, dequeue, and
// removal of an arbitrary member — the last of which the command and
// blocked polls both need every tick. Ownership rule: when a PCB
// leaves a Queue only its list node is freed; the PCB itself persists
// and is re-enqueued onto whichever queue it transitions to next.
type Queue struct {
	l *list.List
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{l: list.New()}
}

// Enqueue appends pcb to the tail.
func (q *Queue) Enqueue(pcb *PCB) {
	pcb.elem = q.l.PushBack(pcb)
}

// Dequeue removes and returns the head, or nil if the queue is empty.
func (q *Queue) Dequeue() *PCB {
	front := q.l.Front()
	if front == nil {
		return nil
	}
	q.l.Remove(front)
	pcb := front.Value.(*PCB)
	pcb.elem = nil
	return pcb
}

// Remove unlinks pcb from the queue. No-op if pcb isn't currently
// queued here.
func (q *Queue) Remove(pcb *PCB) {
	if pcb.elem == nil {
		return
	}
	n := q.l.Len()
	q.l.Remove(pcb.elem)
	if q.l.Len() < n {
		pcb.elem = nil
	}
}

// Len returns the number of PCBs currently queued.
func (q *Queue) Len() int {
	return q.l.Len()
}

// Each calls fn for every PCB currently in the queue, in FIFO order,
// from a snapshot taken before iterating — safe against fn moving the
// PCB out of this queue (and even into it again) mid-walk, the way the
// command and blocked polls both do.
func (q *Queue) Each(fn func(pcb *PCB)) {
	var pcbs []*PCB
	for e := q.l.Front(); e != nil; e = e.Next() {
		pcbs = append(pcbs, e.Value.(*PCB))
	}
	for _, pcb := range pcbs {
		fn(pcb)
	}
}
