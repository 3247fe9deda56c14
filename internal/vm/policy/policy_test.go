package policy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// memView is a minimal in-memory FrameView for exercising policies in
// isolation, independent of the vm package's live-PTE adapter.
type memView struct {
	present      []bool
	referenced   []bool
	dirty        []bool
	lastAccessed []uint32
	fifo         []int32
}

func newMemView(n int) *memView {
	return &memView{
		present:      make([]bool, n),
		referenced:   make([]bool, n),
		dirty:        make([]bool, n),
		lastAccessed: make([]uint32, n),
	}
}

func (v *memView) NumFrames() int                { return len(v.present) }
func (v *memView) Present(id int32) bool          { return v.present[id] }
func (v *memView) Referenced(id int32) bool       { return v.referenced[id] }
func (v *memView) Dirty(id int32) bool            { return v.dirty[id] }
func (v *memView) LastAccessed(id int32) uint32   { return v.lastAccessed[id] }
func (v *memView) ClearReferenced(id int32)       { v.referenced[id] = false }
func (v *memView) NextFIFO() int32 {
	if len(v.fifo) == 0 {
		return InvalidFrame
	}
	id := v.fifo[0]
	v.fifo = v.fifo[1:]
	return id
}

func TestNew_UnknownPolicy(t *testing.T) {
	_, err := New("BOGUS", 4)
	require.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestNew_AllKnownPolicies(t *testing.T) {
	for _, name := range []string{"FIFO", "RANDOM", "NRU", "LRU", "CLOCK"} {
		p, err := New(name, 4)
		require.NoError(t, err)
		require.Equal(t, name, p.Name())
	}
}

func TestFIFO_SelectsFromOccupationOrder(t *testing.T) {
	v := newMemView(3)
	v.present = []bool{true, true, true}
	v.fifo = []int32{1, 0, 2}

	p := &FIFO{}
	require.Equal(t, int32(1), p.SelectVictim(v))
	require.Equal(t, int32(0), p.SelectVictim(v))
	require.Equal(t, int32(2), p.SelectVictim(v))
	require.Equal(t, InvalidFrame, p.SelectVictim(v))
}

func TestLRU_PicksOldestTimestamp(t *testing.T) {
	v := newMemView(3)
	v.present = []bool{true, true, true}
	v.lastAccessed = []uint32{50, 10, 30}

	p := &LRU{}
	require.Equal(t, int32(1), p.SelectVictim(v))
}

func TestLRU_IgnoresAbsentFrames(t *testing.T) {
	v := newMemView(3)
	v.present = []bool{false, true, true}
	v.lastAccessed = []uint32{0, 40, 30}

	p := &LRU{}
	require.Equal(t, int32(2), p.SelectVictim(v))
}

func TestNRU_PicksLowestClass(t *testing.T) {
	v := newMemView(3)
	v.present = []bool{true, true, true}
	v.referenced = []bool{true, false, true}
	v.dirty = []bool{true, true, false}
	// classes: 3, 1, 2

	p := &NRU{}
	require.Equal(t, int32(1), p.SelectVictim(v))
}

func TestNRU_ShortCircuitsOnClassZero(t *testing.T) {
	v := newMemView(3)
	v.present = []bool{true, true, true}
	v.referenced = []bool{true, false, true}
	v.dirty = []bool{false, false, false}
	// classes: 2, 0, 2 -> frame 1 wins immediately

	p := &NRU{}
	require.Equal(t, int32(1), p.SelectVictim(v))
}

func TestClock_SecondChanceSweep(t *testing.T) {
	v := newMemView(3)
	v.present = []bool{true, true, true}
	v.referenced = []bool{true, true, false}

	p := NewClock(3)
	victim := p.SelectVictim(v)

	require.Equal(t, int32(2), victim)
	// Both referenced frames should have been given their second
	// chance and cleared on the way past.
	require.False(t, v.referenced[0])
	require.False(t, v.referenced[1])
}

func TestClock_CursorPersistsAcrossCalls(t *testing.T) {
	v := newMemView(2)
	v.present = []bool{true, true}

	p := NewClock(2)
	first := p.SelectVictim(v)
	second := p.SelectVictim(v)
	require.NotEqual(t, first, second)
}

func TestClock_NoCandidateWhenNonePresent(t *testing.T) {
	v := newMemView(2)
	p := NewClock(2)
	require.Equal(t, InvalidFrame, p.SelectVictim(v))
}

func TestRandom_OnlyPicksPresentFrames(t *testing.T) {
	v := newMemView(4)
	v.present = []bool{false, true, false, false}

	p := NewRandomSeeded(1)
	for i := 0; i < 20; i++ {
		require.Equal(t, int32(1), p.SelectVictim(v))
	}
}

func TestRandom_NoCandidateWhenNonePresent(t *testing.T) {
	v := newMemView(3)
	p := NewRandomSeeded(1)
	require.Equal(t, InvalidFrame, p.SelectVictim(v))
}
