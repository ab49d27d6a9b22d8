package node

import (
	"runtime"

	"github.com/PolySync/doogie/cmark"
	"github.com/PolySync/doogie/resource"
)

// Iterator walks a subtree depth-first. Container nodes are reported on
// enter and on exit; leaf nodes only on enter.
//
//	it, err := root.Traverse.Iter()
//	if err != nil { ... }
//	defer it.Close()
//	for it.Next() {
//		n, ev := it.Node(), it.Event()
//	}
//
// Once the walk is done, Next keeps returning false. The walk also ends
// when the node it was opened on is invalidated. An iterator that is never
// closed releases its engine iterator when it is garbage collected.
type Iterator struct {
	it      cmark.IterPtr
	res     *resource.NodeResource
	reg     *resource.Registry
	factory Factory
	cleanup runtime.Cleanup

	node   *Node
	event  EventType
	err    error
	done   bool
	closed bool
}

// Next advances to the next event and reports whether there is one.
func (it *Iterator) Next() bool {
	if it.done || it.closed || it.it == 0 || !it.res.IsValid() {
		it.finish()
		return false
	}

	ev, err := parseEventType("iter_next", cmark.IterNext(it.it))
	if err != nil {
		it.err = err
		it.finish()
		return false
	}
	if ev == EventDone || ev == EventNone {
		it.finish()
		return false
	}

	reg := registryOf(it.res, it.reg)
	p := cmark.IterGetNode(it.it)
	if p == 0 {
		it.finish()
		return false
	}
	it.node = &Node{it.factory.Build(reg.ResourceFor(p), reg)}
	it.event = ev
	return true
}

func (it *Iterator) finish() {
	it.done = true
	it.node = nil
	it.event = EventDone
}

// Node returns the node of the current event, or nil once done.
func (it *Iterator) Node() *Node {
	return it.node
}

// Event returns the current event, EventDone once done.
func (it *Iterator) Event() EventType {
	return it.event
}

// Err returns the error that stopped the walk early, if any.
func (it *Iterator) Err() error {
	return it.err
}

// Close releases the engine iterator. It is safe to call more than once.
func (it *Iterator) Close() {
	if it.closed {
		return
	}
	it.closed = true
	it.finish()
	if it.it != 0 {
		it.cleanup.Stop()
		cmark.IterFree(it.it)
	}
}

func newIterator(p cmark.NodePtr, res *resource.NodeResource, reg *resource.Registry, f Factory) *Iterator {
	it := &Iterator{
		it:      cmark.IterNew(p),
		res:     res,
		reg:     reg,
		factory: f,
	}
	if it.it != 0 {
		it.cleanup = runtime.AddCleanup(it, cmark.IterFree, it.it)
	}
	return it
}
