package resource

import (
	"sync/atomic"

	"github.com/PolySync/doogie/cmark"
	"github.com/PolySync/doogie/errors"
)

// NodeResource is a shared liveness cell for one engine node. Every
// capability built for the node holds the same cell, so invalidating it is
// seen by all of them at once. Invalidation is terminal.
type NodeResource struct {
	owner atomic.Pointer[Registry]
	ptr   atomic.Uint64
	id    cmark.NodePtr
}

// NewNodeResource creates a valid cell for p.
func NewNodeResource(p cmark.NodePtr) *NodeResource {
	r := &NodeResource{id: p}
	r.ptr.Store(uint64(p))
	return r
}

// ID returns the node identity the cell was created for. It stays the same
// after invalidation.
func (r *NodeResource) ID() cmark.NodePtr {
	return r.id
}

// IsValid reports whether the node may still be used.
func (r *NodeResource) IsValid() bool {
	return r.ptr.Load() != 0
}

// Pointer returns the engine handle while the cell is valid.
func (r *NodeResource) Pointer() (cmark.NodePtr, bool) {
	p := cmark.NodePtr(r.ptr.Load())
	return p, p != 0
}

// Acquire returns the engine handle, or a ResourceUnavailable error for
// the given phase and operation once the cell has been invalidated.
func (r *NodeResource) Acquire(phase errors.Phase, op string) (cmark.NodePtr, error) {
	p, ok := r.Pointer()
	if !ok {
		return 0, errors.ResourceUnavailable(phase, op)
	}
	return p, nil
}

// Registry returns the registry currently tracking the cell, or nil if no
// registry has tracked it yet. Prune and Absorb keep it current as subtrees
// move between trees.
func (r *NodeResource) Registry() *Registry {
	return r.owner.Load()
}

// clear invalidates the cell and returns the handle it held, or 0 if
// another caller got there first.
func (r *NodeResource) clear() cmark.NodePtr {
	p := r.ptr.Load()
	if p == 0 || !r.ptr.CompareAndSwap(p, 0) {
		return 0
	}
	return cmark.NodePtr(p)
}
