package vm

import (
	"log/slog"

	"github.com/tuannm99/ossim/internal/vm/policy"
)

// Process is the minimal view of a running task the VM engine needs:
// its pid and its owned page table. internal/proc.PCB implements this.
type Process interface {
	PID() int32
	PageTable() *PageTable
}

// Registry resolves a pid to its Process, so the engine can look up
// the PTE behind any frame regardless of which process owns it (a
// frame descriptor only stores pid+vpn, never a pointer, per the
// ownership-cycle design note).
type Registry interface {
	Lookup(pid int32) (Process, bool)
}

// Engine orchestrates page requests and eviction against one
// FrameTable/SwapStore pair, through one active replacement policy.
type Engine struct {
	Policy     policy.Policy
	Registry   Registry
	PageFaults uint64
}

// NewEngine builds an engine around the named replacement policy.
func NewEngine(policyName string, numFrames int, registry Registry) (*Engine, error) {
	p, err := policy.New(policyName, numFrames)
	if err != nil {
		return nil, err
	}
	return &Engine{Policy: p, Registry: registry}, nil
}

// PageRequest resolves vpn for proc, handling the hit / swap-in-fault /
// first-touch-fault cases from spec §4.5. The caller must have already
// ensured a free frame exists (via PageEviction) when a fault is
// possible; if the free stack is empty anyway, ErrNoFrame is returned
// and the PTE is left untouched.
func (e *Engine) PageRequest(now uint32, proc Process, ft *FrameTable, swap *SwapStore, vpn int32) (*PTE, error) {
	pte, err := proc.PageTable().Find(vpn)
	if err != nil {
		return nil, err
	}
	pid := proc.PID()

	if pte.Present {
		pte.Referenced = true
		pte.LastAccessed = now
		return pte, nil
	}

	// FrameID != InvalidFrame means this page has been allocated
	// before and is now resident in the swap store (it was evicted,
	// not merely untouched).
	if pte.FrameID != InvalidFrame {
		frame := ft.PopFree()
		if frame == InvalidFrame {
			return nil, ErrNoFrame
		}
		e.PageFaults++
		if err := swap.SwapIn(pid, vpn, pte); err != nil {
			slog.Warn(logPrefix+"page_request: admitting page without swap record", "pid", pid, "vpn", vpn)
		}
		pte.FrameID = frame
		ft.Occupy(frame, pid, vpn)
		ft.PushEviction(frame)
		pte.Present = true
		pte.Referenced = true
		pte.LastAccessed = now
		return pte, nil
	}

	// First-touch allocation.
	frame := ft.PopFree()
	if frame == InvalidFrame {
		return nil, ErrNoFrame
	}
	e.PageFaults++
	pte.FrameID = frame
	pte.Dirty = false
	ft.Occupy(frame, pid, vpn)
	ft.PushEviction(frame)
	pte.Present = true
	pte.Referenced = true
	pte.LastAccessed = now
	return pte, nil
}

// PageEviction evicts frames via the active policy until the free
// stack holds at least threshold frames. Returns ErrNoVictim if the
// policy cannot find a candidate while still below threshold.
func (e *Engine) PageEviction(ft *FrameTable, swap *SwapStore, threshold int) error {
	for ft.FreeCount() < threshold {
		fv := &frameView{ft: ft, registry: e.Registry}
		victim := e.Policy.SelectVictim(fv)
		if victim == InvalidFrame {
			slog.Warn(logPrefix + "eviction: no victim frame available")
			return ErrNoVictim
		}

		pid, vpn, ok := ft.Owner(victim)
		if !ok {
			// Inconsistent: the policy named a frame the table
			// doesn't think is occupied. Reclaim it and move on.
			ft.Vacate(victim)
			ft.PushFree(victim)
			continue
		}

		proc, ok := e.Registry.Lookup(pid)
		if !ok {
			ft.Vacate(victim)
			ft.PushFree(victim)
			continue
		}
		pte, err := proc.PageTable().Find(vpn)
		if err != nil {
			ft.Vacate(victim)
			ft.PushFree(victim)
			continue
		}

		slog.Debug(logPrefix+"evicting", "pid", pid, "vpn", vpn, "frame", victim, "policy", e.Policy.Name())
		pte.Present = false
		swap.SwapOut(pid, vpn, pte)
		ft.Vacate(victim)
		ft.PushFree(victim)
	}
	return nil
}

// frameView adapts a FrameTable + Registry pair into the policy
// package's read/write view over frame state.
type frameView struct {
	ft       *FrameTable
	registry Registry
}

func (v *frameView) NumFrames() int { return v.ft.NumFrames() }

func (v *frameView) pte(id int32) *PTE {
	pid, vpn, ok := v.ft.Owner(id)
	if !ok {
		return nil
	}
	proc, ok := v.registry.Lookup(pid)
	if !ok {
		return nil
	}
	pte, err := proc.PageTable().Find(vpn)
	if err != nil {
		return nil
	}
	return pte
}

func (v *frameView) Present(id int32) bool {
	pte := v.pte(id)
	return pte != nil && pte.Present
}

func (v *frameView) Referenced(id int32) bool {
	pte := v.pte(id)
	return pte != nil && pte.Referenced
}

func (v *frameView) Dirty(id int32) bool {
	pte := v.pte(id)
	return pte != nil && pte.Dirty
}

func (v *frameView) LastAccessed(id int32) uint32 {
	pte := v.pte(id)
	if pte == nil {
		return 0
	}
	return pte.LastAccessed
}

func (v *frameView) ClearReferenced(id int32) {
	if pte := v.pte(id); pte != nil {
		pte.Referenced = false
	}
}

func (v *frameView) NextFIFO() int32 {
	return v.ft.PopEviction()
}
