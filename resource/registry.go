package resource

import (
	"sync"

	"github.com/PolySync/doogie/cmark"
)

// Registry tracks the NodeResource of every node handed out for one
// connected tree, keyed by node identity. Looking up the same node twice
// yields the same cell.
type Registry struct {
	cells map[cmark.NodePtr]*NodeResource
	mu    sync.Mutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		cells: make(map[cmark.NodePtr]*NodeResource),
	}
}

// ResourceFor returns the cell tracked for p, creating and tracking one if
// none exists.
func (r *Registry) ResourceFor(p cmark.NodePtr) *NodeResource {
	r.mu.Lock()
	defer r.mu.Unlock()

	if res, ok := r.cells[p]; ok {
		return res
	}
	res := NewNodeResource(p)
	r.adopt(p, res)
	return res
}

// Track registers res. An existing cell for the same identity is kept.
func (r *Registry) Track(res *NodeResource) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cells[res.ID()]; !ok {
		r.adopt(res.ID(), res)
	}
}

// adopt inserts res under id and records r as its owner. r.mu must be held.
func (r *Registry) adopt(id cmark.NodePtr, res *NodeResource) {
	r.cells[id] = res
	res.owner.Store(r)
}

// Lookup returns the cell tracked for p.
func (r *Registry) Lookup(p cmark.NodePtr) (*NodeResource, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.cells[p]
	return res, ok
}

// Len returns the number of tracked cells.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cells)
}

// Absorb moves every cell of other into r, leaving other empty.
// Absorbing a registry into itself does nothing.
func (r *Registry) Absorb(other *Registry) {
	if other == nil || other == r {
		return
	}

	other.mu.Lock()
	cells := other.cells
	other.cells = make(map[cmark.NodePtr]*NodeResource)
	other.mu.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	for id, res := range cells {
		if _, ok := r.cells[id]; !ok {
			r.adopt(id, res)
		}
	}
}

// Invalidate clears res and every tracked cell in its subtree and stops
// tracking them. The subtree is collected before any cell is cleared. It
// returns the handle only to the caller that actually cleared res, so the
// engine node is freed at most once.
func (r *Registry) Invalidate(res *NodeResource) cmark.NodePtr {
	p, ok := res.Pointer()
	if !ok {
		return 0
	}
	ids := subtree(p)

	r.mu.Lock()
	for _, id := range ids {
		cell, ok := r.cells[id]
		if !ok {
			continue
		}
		delete(r.cells, id)
		if cell != res {
			cell.clear()
		}
	}
	r.mu.Unlock()

	return res.clear()
}

// Prune moves the tracked cells of res's subtree into a new registry and
// returns it. res is always tracked by the result, so a detached root is
// never represented by two cells.
func (r *Registry) Prune(res *NodeResource) *Registry {
	out := NewRegistry()
	if p, ok := res.Pointer(); ok {
		ids := subtree(p)

		r.mu.Lock()
		for _, id := range ids {
			if cell, ok := r.cells[id]; ok {
				delete(r.cells, id)
				out.adopt(id, cell)
			}
		}
		r.mu.Unlock()
	}
	out.Track(res)
	return out
}

// Reconcile runs mutate on res's node and afterwards clears every tracked
// cell of the former subtree whose node the mutation removed from it. It
// returns the number of cells cleared.
func (r *Registry) Reconcile(res *NodeResource, mutate func(cmark.NodePtr)) int {
	p, ok := res.Pointer()
	if !ok {
		return 0
	}
	before := subtree(p)
	mutate(p)

	after := make(map[cmark.NodePtr]struct{}, len(before))
	for _, id := range subtree(p) {
		after[id] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	cleared := 0
	for _, id := range before {
		if _, ok := after[id]; ok {
			continue
		}
		if cell, ok := r.cells[id]; ok {
			delete(r.cells, id)
			cell.clear()
			cleared++
		}
	}
	return cleared
}

// subtree returns p and all of its descendants in document order, walking
// the engine with its own iterator.
func subtree(p cmark.NodePtr) []cmark.NodePtr {
	it := cmark.IterNew(p)
	if it == 0 {
		return nil
	}
	defer cmark.IterFree(it)

	var ids []cmark.NodePtr
	for ev := cmark.IterNext(it); ev != cmark.EventDone && ev != cmark.EventNone; ev = cmark.IterNext(it) {
		if ev == cmark.EventEnter {
			ids = append(ids, cmark.IterGetNode(it))
		}
	}
	return ids
}
