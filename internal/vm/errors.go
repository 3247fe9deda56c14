package vm

import "errors"

// Sentinel errors surfaced by the paging subsystem. None of these are
// fatal to the tick loop; callers log and continue per the simulator's
// error-handling design (operational errors never abort a running
// simulation).
var (
	// ErrLookupOutOfRange is returned by PageTable.Find for a VPN
	// outside [1, capacity-1].
	ErrLookupOutOfRange = errors.New("vm: vpn out of range")

	// ErrNotSwapped is returned by SwapStore.SwapIn when the
	// (pid, vpn) key has no recorded swap entry.
	ErrNotSwapped = errors.New("vm: page not found in swap store")

	// ErrNoVictim is returned by Engine.PageEviction when the policy
	// finds no present frame to evict (the policy itself reports this
	// as InvalidFrame).
	ErrNoVictim = errors.New("vm: no victim frame available")

	// ErrNoFrame is returned by PageRequest when the free-frame stack
	// is empty at allocation time (the tick loop should have run
	// PageEviction first to prevent this).
	ErrNoFrame = errors.New("vm: no free frame available")
)
