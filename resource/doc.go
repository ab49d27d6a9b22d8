// Package resource tracks the liveness of engine nodes handed out to
// callers.
//
// The engine frees whole subtrees at once and never tells anyone. Every
// node a caller can hold is therefore paired with a NodeResource, a shared
// cell that goes from valid to invalid exactly once. Capabilities check the
// cell before each engine call through Acquire:
//
//	p, err := res.Acquire(errors.PhaseAccess, "get_content")
//	if err != nil {
//		return "", err // ResourceUnavailable
//	}
//
// # Registry
//
// A Registry maps node identities to cells for one connected tree, so
// asking twice for the same node yields the same cell:
//
//	reg := resource.NewRegistry()
//	res := reg.ResourceFor(p)
//	res == reg.ResourceFor(p) // true
//
// Structural changes move cells between registries. Prune splits the cells
// of a detached subtree into a new registry; Absorb merges one registry
// into another when subtrees are joined. Each cell records the registry
// that currently owns it, so code holding an older registry reference can
// find the right one through NodeResource.Registry.
//
// # Freeing
//
// Invalidate clears a cell and every tracked cell below it before the
// engine node is freed, and hands the engine handle only to the caller
// that won the race, so a subtree is freed at most once:
//
//	if p := reg.Invalidate(res); p != 0 {
//		cmark.NodeFree(p)
//	}
//
// Reconcile covers engine operations that free nodes on their own, such
// as text consolidation: cells of nodes that vanished are cleared.
package resource
