package node

import (
	"go.uber.org/zap"

	"github.com/PolySync/doogie/cmark"
	"github.com/PolySync/doogie/resource"
)

// Destructor frees the subtree of a root node.
type Destructor struct {
	res *resource.NodeResource
	reg *resource.Registry
}

// Free invalidates every tracked Node of the subtree and then frees the
// engine nodes. Only the first call frees anything.
func (d *Destructor) Free() {
	reg := registryOf(d.res, d.reg)
	before := reg.Len()
	p := reg.Invalidate(d.res)
	if p == 0 {
		return
	}
	cmark.NodeFree(p)
	Logger().Debug("freed node",
		zap.Uint64("node", uint64(p)),
		zap.Int("invalidated", before-reg.Len()))
}
