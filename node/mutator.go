package node

import (
	"go.uber.org/zap"

	"github.com/PolySync/doogie/cmark"
	"github.com/PolySync/doogie/errors"
	"github.com/PolySync/doogie/resource"
)

// Mutator changes the structure of the tree around a node.
type Mutator struct {
	res     *resource.NodeResource
	reg     *resource.Registry
	factory Factory
}

func (m *Mutator) registry() *resource.Registry {
	return registryOf(m.res, m.reg)
}

// Unlink detaches the node from its parent and siblings. The returned Node
// roots a tree of its own: its subtree moves to a new registry and it is
// granted a destructor, so the caller must Close it or append it elsewhere.
func (m *Mutator) Unlink() (*Node, error) {
	p, err := m.res.Acquire(errors.PhaseMutate, "unlink")
	if err != nil {
		return nil, err
	}
	cmark.NodeUnlink(p)
	reg := m.registry().Prune(m.res)
	Logger().Debug("unlinked node",
		zap.Uint64("node", uint64(p)),
		zap.Int("tracked", reg.Len()))
	return &Node{m.factory.WithDestructor().Build(m.res, reg)}, nil
}

// AppendChild makes child the last child of the node, detaching it from
// wherever it was. The child's subtree joins this node's registry and its
// capabilities are rebuilt without a destructor, since the tree now owns
// it. The child must have been granted a mutator.
func (m *Mutator) AppendChild(child *Node) error {
	if child == nil || child.Mutate == nil {
		return errors.ResourceUnavailable(errors.PhaseMutate, "append_child")
	}
	cp, err := child.Mutate.res.Acquire(errors.PhaseMutate, "append_child")
	if err != nil {
		return err
	}
	pp, err := m.res.Acquire(errors.PhaseMutate, "append_child")
	if err != nil {
		return err
	}

	if code := cmark.NodeAppendChild(pp, cp); code != cmark.StatusOK {
		Logger().Debug("append rejected",
			zap.Uint64("parent", uint64(pp)),
			zap.Uint64("child", uint64(cp)),
			zap.Int("code", code))
		return errors.ReturnCode(errors.PhaseMutate, "append_child", code)
	}

	parentReg := m.registry()
	if childReg := child.Mutate.registry(); childReg != parentReg {
		parentReg.Absorb(childReg.Prune(child.Mutate.res))
		Logger().Debug("absorbed subtree",
			zap.Uint64("parent", uint64(pp)),
			zap.Uint64("child", uint64(cp)),
			zap.Int("tracked", parentReg.Len()))
	}
	child.Capabilities = m.factory.Build(parentReg.ResourceFor(cp), parentReg)
	return nil
}

// CanAppendChild predicts whether AppendChild(child) would succeed, without
// changing anything.
func (m *Mutator) CanAppendChild(child *Node) (bool, error) {
	if child == nil || child.Mutate == nil {
		return false, errors.ResourceUnavailable(errors.PhaseMutate, "can_append_child")
	}
	cp, err := child.Mutate.res.Acquire(errors.PhaseMutate, "can_append_child")
	if err != nil {
		return false, err
	}
	pp, err := m.res.Acquire(errors.PhaseMutate, "can_append_child")
	if err != nil {
		return false, err
	}

	for a := pp; a != 0; a = cmark.NodeParent(a) {
		if a == cp {
			return false, nil
		}
	}
	parent, err := parseType(errors.PhaseMutate, "can_append_child", cmark.NodeGetType(pp))
	if err != nil {
		return false, err
	}
	kind, err := parseType(errors.PhaseMutate, "can_append_child", cmark.NodeGetType(cp))
	if err != nil {
		return false, err
	}
	return CanContain(parent, kind), nil
}

// ConsolidateTextNodes merges adjacent text nodes in the subtree. Nodes
// merged into their predecessor are freed and every Node referring to them
// becomes unavailable.
func (m *Mutator) ConsolidateTextNodes() error {
	p, err := m.res.Acquire(errors.PhaseMutate, "consolidate_text_nodes")
	if err != nil {
		return err
	}
	n := m.registry().Reconcile(m.res, cmark.ConsolidateTextNodes)
	Logger().Debug("consolidated text nodes",
		zap.Uint64("node", uint64(p)),
		zap.Int("invalidated", n))
	return nil
}
