package node

import (
	"github.com/PolySync/doogie/cmark"
	"github.com/PolySync/doogie/resource"
)

// Renderer serializes a subtree. A node that is no longer available
// renders as "".
type Renderer struct {
	res *resource.NodeResource
}

// CommonMark renders the subtree as CommonMark text.
func (r *Renderer) CommonMark() string {
	return r.CommonMarkWithOptions(OptDefault)
}

func (r *Renderer) CommonMarkWithOptions(opts Options) string {
	return r.render(opts, cmark.RenderCommonMark)
}

// XML renders the subtree in the CommonMark XML format.
func (r *Renderer) XML() string {
	return r.XMLWithOptions(OptDefault)
}

func (r *Renderer) XMLWithOptions(opts Options) string {
	return r.render(opts, cmark.RenderXML)
}

func (r *Renderer) render(opts Options, render func(cmark.NodePtr, cmark.Options) string) string {
	p, ok := r.res.Pointer()
	if !ok {
		return ""
	}
	return render(p, opts)
}
