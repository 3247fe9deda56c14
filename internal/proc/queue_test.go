package proc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueue_FIFOOrder(t *testing.T) {
	q := NewQueue()
	a := &PCB{Pid: 1}
	b := &PCB{Pid: 2}
	c := &PCB{Pid: 3}

	q.Enqueue(a)
	q.Enqueue(b)
	q.Enqueue(c)
	require.Equal(t, 3, q.Len())

	require.Same(t, a, q.Dequeue())
	require.Same(t, b, q.Dequeue())
	require.Same(t, c, q.Dequeue())
	require.Nil(t, q.Dequeue())
}

func TestQueue_RemoveArbitraryMember(t *testing.T) {
	q := NewQueue()
	a := &PCB{Pid: 1}
	b := &PCB{Pid: 2}
	c := &PCB{Pid: 3}
	q.Enqueue(a)
	q.Enqueue(b)
	q.Enqueue(c)

	q.Remove(b)
	require.Equal(t, 2, q.Len())
	require.Same(t, a, q.Dequeue())
	require.Same(t, c, q.Dequeue())
}

func TestQueue_RemoveIsNoOpWhenNotQueued(t *testing.T) {
	q := NewQueue()
	a := &PCB{Pid: 1}
	q.Remove(a) // never enqueued
	require.Equal(t, 0, q.Len())
}

func TestQueue_EachSnapshotsBeforeIterating(t *testing.T) {
	q := NewQueue()
	other := NewQueue()
	a := &PCB{Pid: 1}
	b := &PCB{Pid: 2}
	q.Enqueue(a)
	q.Enqueue(b)

	var seen []int32
	q.Each(func(pcb *PCB) {
		seen = append(seen, pcb.Pid)
		q.Remove(pcb)
		other.Enqueue(pcb)
	})

	require.Equal(t, []int32{1, 2}, seen)
	require.Equal(t, 0, q.Len())
	require.Equal(t, 2, other.Len())
}
