// Package cmark is the CommonMark engine behind doogie.
//
// It exposes a C-style API over an arena of nodes: callers hold opaque
// NodePtr and IterPtr handles, memory is managed manually with NodeFree and
// IterFree, and failures are reported through status codes and zero values
// rather than errors. The package is deliberately unsafe to use directly;
// package node builds a safe capability layer on top of it.
//
// # Handles
//
// A NodePtr carries a slot index and a generation. Freeing a node bumps the
// generation of its slot, so a stale handle never aliases a later
// allocation. Using a stale handle is reported to observers as
// EventInvalidAccess and logged at warn level:
//
//	doc := cmark.ParseDocument([]byte("# Hello\n"), cmark.OptDefault)
//	heading := cmark.NodeFirstChild(doc)
//	cmark.NodeFree(doc)                 // frees heading too
//	cmark.NodeGetType(heading)          // NodeNone, EventInvalidAccess
//
// # Parsing and rendering
//
// ParseDocument delegates the CommonMark grammar to goldmark and converts
// its AST into arena nodes. RenderCommonMark and RenderXML render any
// subtree in cmark's output formats.
//
// # Iteration
//
// IterNew opens a depth-first iterator. Containers produce EventEnter and
// EventExit, leaves only EventEnter, and EventDone follows the root:
//
//	it := cmark.IterNew(doc)
//	defer cmark.IterFree(it)
//	for ev := cmark.IterNext(it); ev != cmark.EventDone; ev = cmark.IterNext(it) {
//		n := cmark.IterGetNode(it)
//		...
//	}
//
// # Observers
//
// Subscribe registers an Observer for allocation, free, iterator and
// invalid-use events. GetStats reports live nodes and iterators.
package cmark
