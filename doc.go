// Package doogie provides safe access to CommonMark document trees.
//
// Documents are parsed into trees of engine-managed nodes. The engine
// allocates and frees nodes by hand, and a freed handle must never be used
// again. doogie wraps every handle in a Node whose capabilities check a
// shared liveness cell before touching the engine, so a Node that outlives
// its tree reports an error instead of reading freed memory.
//
// # Architecture Overview
//
//	doogie/            Root package with parse and construction entry points
//	├── node/          Nodes, capabilities, iterators and child-type tables
//	├── resource/      Liveness cells and per-tree registries
//	├── cmark/         The node engine: arena, parser, renderers, iterators
//	├── errors/        Structured error types for debugging
//	└── cmd/doogie/    Command-line renderer and tree browser
//
// # Quick Start
//
// Parse a document, edit it and render it back:
//
//	root := doogie.ParseDocument("# Hello\n\nworld\n")
//	defer root.Close()
//
//	for n, ev := range root.Traverse.Walk() {
//	    if t, _ := n.Get.Type(); t == node.TypeText && ev == node.EventEnter {
//	        s, _ := n.Get.Content()
//	        _ = n.Set.SetContent(strings.ToUpper(s))
//	    }
//	}
//	fmt.Print(root.Render.CommonMark()) // "# HELLO\n\nWORLD\n"
//
// # Capabilities
//
// What a Node may do is fixed when it is built by a node.Factory:
//
//   - Get: read type, content, positions and attributes
//   - Set: replace literal content and fence info
//   - Traverse: move to neighbours, iterate a subtree
//   - Mutate: unlink, append children, consolidate text
//   - Render: CommonMark and XML output
//   - Destruct: free the subtree (roots only)
//
// Nodes reached from a root never carry a destructor. A root must be closed
// exactly once; closing it again is harmless.
//
// # Thread Safety
//
// The engine serializes its own operations, so independent documents may be
// used from different goroutines. A single tree and its Nodes are NOT
// thread-safe and should be used by one goroutine at a time.
package doogie
