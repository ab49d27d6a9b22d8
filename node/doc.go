// Package node is a safe layer over the cmark engine's node handles.
//
// A Node pairs one engine node with the capabilities it was granted: a
// Getter, Setter, Traverser, Mutator, Renderer and Destructor. Which ones a
// node carries is decided by a Factory when the node is built. Roots
// returned by ParseDocument and New get every capability and own their
// subtree:
//
//	root := node.ParseDocument("# Hello\n")
//	defer root.Close()
//
//	heading, _ := root.Traverse.FirstChild()
//	text, _ := heading.Traverse.FirstChild()
//	s, _ := text.Get.Content() // "Hello"
//
// Nodes reached from another node share a liveness cell per engine node,
// kept in a resource.Registry per tree. Freeing a root, or consolidating
// text nodes, invalidates every Node of the affected nodes, and any further
// call on them returns an errors.KindResourceUnavailable error instead of
// touching freed memory.
//
// Unlink turns a node into the root of a new tree with its own registry
// and a destructor. AppendChild moves a subtree into another tree and hands
// its ownership to that tree.
package node
