package proc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_PutLookupDelete(t *testing.T) {
	r := NewRegistry()
	pcb := New(nil, 10)
	pcb.Pid = 5
	r.Put(pcb)

	found, ok := r.Lookup(5)
	require.True(t, ok)
	require.Equal(t, int32(5), found.PID())

	r.Delete(5)
	_, ok = r.Lookup(5)
	require.False(t, ok)
}

func TestRegistry_LookupMiss(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Lookup(99)
	require.False(t, ok)
}
