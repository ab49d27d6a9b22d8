package node

import (
	"iter"

	"github.com/PolySync/doogie/cmark"
	"github.com/PolySync/doogie/errors"
	"github.com/PolySync/doogie/resource"
)

// Traverser moves from a node to its neighbours. Neighbours are granted
// the child factory and share the node's registry.
type Traverser struct {
	res     *resource.NodeResource
	reg     *resource.Registry
	factory Factory
}

// NextSibling returns the following sibling, or nil if there is none.
func (t *Traverser) NextSibling() (*Node, error) {
	return t.step("next_sibling", cmark.NodeNext)
}

// PrevSibling returns the preceding sibling, or nil if there is none.
func (t *Traverser) PrevSibling() (*Node, error) {
	return t.step("prev_sibling", cmark.NodePrevious)
}

// Parent returns the parent, or nil for a root.
func (t *Traverser) Parent() (*Node, error) {
	return t.step("parent", cmark.NodeParent)
}

// FirstChild returns the first child, or nil for a node without children.
func (t *Traverser) FirstChild() (*Node, error) {
	return t.step("first_child", cmark.NodeFirstChild)
}

// LastChild returns the last child, or nil for a node without children.
func (t *Traverser) LastChild() (*Node, error) {
	return t.step("last_child", cmark.NodeLastChild)
}

// Itself returns a non-owning Node for the traverser's own node.
func (t *Traverser) Itself() (*Node, error) {
	return t.step("itself", func(p cmark.NodePtr) cmark.NodePtr { return p })
}

func (t *Traverser) step(op string, move func(cmark.NodePtr) cmark.NodePtr) (*Node, error) {
	p, err := t.res.Acquire(errors.PhaseTraverse, op)
	if err != nil {
		return nil, err
	}
	q := move(p)
	if q == 0 {
		return nil, nil
	}
	return t.wrap(q), nil
}

func (t *Traverser) wrap(p cmark.NodePtr) *Node {
	reg := registryOf(t.res, t.reg)
	return &Node{t.factory.Build(reg.ResourceFor(p), reg)}
}

// Iter opens a depth-first iterator over the node's subtree. The caller
// should Close it.
func (t *Traverser) Iter() (*Iterator, error) {
	p, err := t.res.Acquire(errors.PhaseTraverse, "iter")
	if err != nil {
		return nil, err
	}
	return newIterator(p, t.res, t.reg, t.factory), nil
}

// Walk yields every enter and exit event of the subtree. The engine
// iterator is released when the loop ends, including on break. Walk on an
// invalid node yields nothing.
func (t *Traverser) Walk() iter.Seq2[*Node, EventType] {
	return func(yield func(*Node, EventType) bool) {
		it, err := t.Iter()
		if err != nil {
			return
		}
		defer it.Close()
		for it.Next() {
			if !yield(it.Node(), it.Event()) {
				return
			}
		}
	}
}
