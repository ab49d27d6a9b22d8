package node

import (
	"github.com/PolySync/doogie/cmark"
	"github.com/PolySync/doogie/errors"
	"github.com/PolySync/doogie/resource"
)

// ParseDocument parses CommonMark text into a document root with every
// capability. The caller must Close the root.
func ParseDocument(text string) *Node {
	return ParseDocumentWithOptions(text, OptDefault)
}

// ParseDocumentWithOptions is ParseDocument with parse options, e.g.
// OptSmart.
func ParseDocumentWithOptions(text string, opts Options) *Node {
	p := cmark.ParseDocument([]byte(text), opts)
	reg := resource.NewRegistry()
	return &Node{NewFactory().WithAll().Build(reg.ResourceFor(p), reg)}
}

// Builder creates detached nodes with a fixed set of capabilities.
type Builder struct {
	factory Factory
}

func NewBuilder(f Factory) Builder {
	return Builder{factory: f}
}

// Build creates a detached node of kind t in a registry of its own.
func (b Builder) Build(t Type) (*Node, error) {
	if t <= TypeNone || t > TypeImage {
		return nil, errors.BadEnum(errors.PhaseMutate, "new_node", int(t), "node type")
	}
	p := cmark.NodeNew(int(t))
	if p == 0 {
		return nil, errors.ReturnCode(errors.PhaseMutate, "new_node", cmark.StatusFailed)
	}
	reg := resource.NewRegistry()
	return &Node{b.factory.Build(reg.ResourceFor(p), reg)}, nil
}

// New creates a detached node of kind t with every capability. The caller
// must Close it or append it to another tree.
func New(t Type) (*Node, error) {
	return NewBuilder(NewFactory().WithAll()).Build(t)
}
