package node

import (
	"strings"

	"github.com/PolySync/doogie/cmark"
	"github.com/PolySync/doogie/errors"
	"github.com/PolySync/doogie/resource"
)

// Setter writes node attributes.
type Setter struct {
	res *resource.NodeResource
}

// SetContent replaces the literal text of the node.
func (s *Setter) SetContent(text string) error {
	return s.set("set_content", text, cmark.NodeSetLiteral)
}

// SetFenceInfo replaces the info string of a code block.
func (s *Setter) SetFenceInfo(info string) error {
	return s.set("set_fence_info", info, cmark.NodeSetFenceInfo)
}

func (s *Setter) set(op, text string, set func(cmark.NodePtr, string) int) error {
	p, err := s.res.Acquire(errors.PhaseUpdate, op)
	if err != nil {
		return err
	}
	if i := strings.IndexByte(text, 0); i >= 0 {
		return errors.Encoding(errors.PhaseUpdate, op, i)
	}
	if code := set(p, text); code != cmark.StatusOK {
		return errors.ReturnCode(errors.PhaseUpdate, op, code)
	}
	return nil
}
