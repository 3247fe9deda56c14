package vm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPageTable_FindValidRange(t *testing.T) {
	pt := NewPageTable(10)

	pte, err := pt.Find(1)
	require.NoError(t, err)
	require.Equal(t, InvalidFrame, pte.FrameID)

	pte, err = pt.Find(9)
	require.NoError(t, err)
	require.NotNil(t, pte)
}

func TestPageTable_FindOutOfRange(t *testing.T) {
	pt := NewPageTable(10)

	_, err := pt.Find(0)
	require.ErrorIs(t, err, ErrLookupOutOfRange)

	_, err = pt.Find(10)
	require.ErrorIs(t, err, ErrLookupOutOfRange)

	_, err = pt.Find(-1)
	require.ErrorIs(t, err, ErrLookupOutOfRange)
}

func TestPageTable_LastSlotUnreachable(t *testing.T) {
	pt := NewPageTable(5)
	require.Equal(t, 5, pt.Capacity())

	// vpn=4 maps to array index 3, leaving index 4 (capacity-1) dead.
	pte, err := pt.Find(4)
	require.NoError(t, err)
	require.NotNil(t, pte)

	_, err = pt.Find(5)
	require.ErrorIs(t, err, ErrLookupOutOfRange)
}

func TestPageTable_MutationPersists(t *testing.T) {
	pt := NewPageTable(10)

	pte, err := pt.Find(3)
	require.NoError(t, err)
	pte.Present = true
	pte.Referenced = true
	pte.LastAccessed = 42

	again, err := pt.Find(3)
	require.NoError(t, err)
	require.True(t, again.Present)
	require.True(t, again.Referenced)
	require.Equal(t, uint32(42), again.LastAccessed)
}
