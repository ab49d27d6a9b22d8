package node

import (
	"fmt"

	"github.com/PolySync/doogie/resource"
)

// Capabilities is the set of operations granted on a node. A nil field
// means the capability was not granted.
type Capabilities struct {
	Get      *Getter
	Set      *Setter
	Traverse *Traverser
	Mutate   *Mutator
	Render   *Renderer
	Destruct *Destructor
}

// Node is a handle to one engine node together with its granted
// capabilities. Roots own their subtree and must be closed; nodes reached
// through a traverser, iterator or mutator never own anything.
type Node struct {
	Capabilities
}

// Close frees the node's subtree if the node was granted a destructor.
// Closing twice, or closing a node without a destructor, does nothing.
func (n *Node) Close() {
	if n == nil || n.Destruct == nil {
		return
	}
	n.Destruct.Free()
}

// IsValid reports whether the node can still be used.
func (n *Node) IsValid() bool {
	res := n.resource()
	return res != nil && res.IsValid()
}

// String describes the node as "<heading Node>", or "<Unavailable Node>"
// once it has been invalidated or when it cannot be read.
func (n *Node) String() string {
	if n != nil && n.Get != nil {
		if name, err := n.Get.TypeString(); err == nil {
			return fmt.Sprintf("<%s Node>", name)
		}
	}
	return "<Unavailable Node>"
}

// resource returns the liveness cell shared by n's capabilities.
func (n *Node) resource() *resource.NodeResource {
	if n == nil {
		return nil
	}
	switch {
	case n.Get != nil:
		return n.Get.res
	case n.Set != nil:
		return n.Set.res
	case n.Traverse != nil:
		return n.Traverse.res
	case n.Mutate != nil:
		return n.Mutate.res
	case n.Render != nil:
		return n.Render.res
	case n.Destruct != nil:
		return n.Destruct.res
	}
	return nil
}

// registryOf returns the registry that currently tracks res. Subtrees move
// between registries when they are unlinked or appended, so the registry a
// capability was built with is only a fallback.
func registryOf(res *resource.NodeResource, fallback *resource.Registry) *resource.Registry {
	if r := res.Registry(); r != nil {
		return r
	}
	return fallback
}
