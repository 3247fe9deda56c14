package vm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrameTable_FreeStackIsLIFO(t *testing.T) {
	ft := NewFrameTable(3)
	require.Equal(t, 3, ft.NumFrames())
	require.Equal(t, 3, ft.FreeCount())

	a := ft.PopFree()
	b := ft.PopFree()
	c := ft.PopFree()
	require.Equal(t, int32(2), a)
	require.Equal(t, int32(1), b)
	require.Equal(t, int32(0), c)
	require.Equal(t, InvalidFrame, ft.PopFree())

	ft.PushFree(c)
	require.Equal(t, int32(0), ft.PopFree())
}

func TestFrameTable_OccupyAndOwner(t *testing.T) {
	ft := NewFrameTable(2)
	f := ft.PopFree()
	ft.Occupy(f, 7, 3)

	pid, vpn, ok := ft.Owner(f)
	require.True(t, ok)
	require.Equal(t, int32(7), pid)
	require.Equal(t, int32(3), vpn)

	ft.Vacate(f)
	_, _, ok = ft.Owner(f)
	require.False(t, ok)
}

func TestFrameTable_EvictionFIFOOrder(t *testing.T) {
	ft := NewFrameTable(3)
	a := ft.PopFree()
	b := ft.PopFree()
	c := ft.PopFree()

	ft.PushEviction(a)
	ft.PushEviction(b)
	ft.PushEviction(c)

	require.Equal(t, a, ft.PopEviction())
	require.Equal(t, b, ft.PopEviction())
	require.Equal(t, c, ft.PopEviction())
	require.Equal(t, InvalidFrame, ft.PopEviction())
}

func TestFrameTable_PushEvictionMovesToTail(t *testing.T) {
	ft := NewFrameTable(3)
	a := ft.PopFree()
	b := ft.PopFree()

	ft.PushEviction(a)
	ft.PushEviction(b)
	ft.PushEviction(a) // re-push: a moves behind b

	require.Equal(t, b, ft.PopEviction())
	require.Equal(t, a, ft.PopEviction())
}

func TestFrameTable_VacateRemovesFromEviction(t *testing.T) {
	ft := NewFrameTable(2)
	a := ft.PopFree()
	b := ft.PopFree()
	ft.PushEviction(a)
	ft.PushEviction(b)

	ft.Vacate(a)
	require.Equal(t, b, ft.PopEviction())
	require.Equal(t, InvalidFrame, ft.PopEviction())
}
