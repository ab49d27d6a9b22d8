package node

import (
	"strings"

	"github.com/PolySync/doogie/resource"
)

// Capability is one permission a Node may be granted.
type Capability uint8

const (
	CapGetter Capability = 1 << iota
	CapSetter
	CapDestructor
	CapTraverser
	CapMutator
	CapRenderer

	capAll = CapGetter | CapSetter | CapDestructor | CapTraverser | CapMutator | CapRenderer
)

var capNames = []struct {
	c    Capability
	name string
}{
	{CapGetter, "getter"},
	{CapSetter, "setter"},
	{CapDestructor, "destructor"},
	{CapTraverser, "traverser"},
	{CapMutator, "mutator"},
	{CapRenderer, "renderer"},
}

func (c Capability) String() string {
	if c == 0 {
		return "none"
	}
	var parts []string
	for _, n := range capNames {
		if c&n.c != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Factory is an immutable set of capabilities to grant. The With methods
// return a new Factory and leave the receiver untouched.
type Factory struct {
	caps Capability
}

// NewFactory returns a factory that grants nothing.
func NewFactory() Factory {
	return Factory{}
}

func (f Factory) with(c Capability) Factory {
	return Factory{caps: f.caps | c}
}

func (f Factory) WithGetter() Factory     { return f.with(CapGetter) }
func (f Factory) WithSetter() Factory     { return f.with(CapSetter) }
func (f Factory) WithDestructor() Factory { return f.with(CapDestructor) }
func (f Factory) WithTraverser() Factory  { return f.with(CapTraverser) }
func (f Factory) WithMutator() Factory    { return f.with(CapMutator) }
func (f Factory) WithRenderer() Factory   { return f.with(CapRenderer) }
func (f Factory) WithAll() Factory        { return f.with(capAll) }

// Has reports whether every capability in c is granted.
func (f Factory) Has(c Capability) bool {
	return f.caps&c == c
}

// Capabilities returns the granted set.
func (f Factory) Capabilities() Capability {
	return f.caps
}

// ChildFactory returns the same set without the destructor. Nodes reached
// from another node never own their subtree.
func (f Factory) ChildFactory() Factory {
	return Factory{caps: f.caps &^ CapDestructor}
}

// Build wires the granted capabilities to res. Traversers and mutators mint
// related nodes through reg using the child factory.
func (f Factory) Build(res *resource.NodeResource, reg *resource.Registry) Capabilities {
	var c Capabilities
	child := f.ChildFactory()
	if f.Has(CapGetter) {
		c.Get = &Getter{res: res}
	}
	if f.Has(CapSetter) {
		c.Set = &Setter{res: res}
	}
	if f.Has(CapDestructor) {
		c.Destruct = &Destructor{res: res, reg: reg}
	}
	if f.Has(CapTraverser) {
		c.Traverse = &Traverser{res: res, reg: reg, factory: child}
	}
	if f.Has(CapMutator) {
		c.Mutate = &Mutator{res: res, reg: reg, factory: child}
	}
	if f.Has(CapRenderer) {
		c.Render = &Renderer{res: res}
	}
	return c
}
