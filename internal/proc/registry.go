package proc

import "github.com/tuannm99/ossim/internal/vm"

// Registry resolves a pid to its PCB, satisfying vm.Registry so the
// paging engine can look up the page table behind any frame. A PCB is
// registered once the client tells us its pid (on RUN or BLOCK) and
// unregistered when its channel closes.
type Registry struct {
	byPid map[int32]*PCB
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byPid: make(map[int32]*PCB)}
}

// Put registers pcb under its current Pid.
func (r *Registry) Put(pcb *PCB) {
	r.byPid[pcb.Pid] = pcb
}

// Delete removes pid from the registry.
func (r *Registry) Delete(pid int32) {
	delete(r.byPid, pid)
}

// Lookup implements vm.Registry.
func (r *Registry) Lookup(pid int32) (vm.Process, bool) {
	pcb, ok := r.byPid[pid]
	if !ok {
		return nil, false
	}
	return pcb, true
}
