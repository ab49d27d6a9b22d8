package node

import (
	"github.com/PolySync/doogie/cmark"
	"github.com/PolySync/doogie/errors"
	"github.com/PolySync/doogie/resource"
)

// Getter reads node attributes.
type Getter struct {
	res *resource.NodeResource
}

func (g *Getter) acquire(op string) (cmark.NodePtr, error) {
	return g.res.Acquire(errors.PhaseAccess, op)
}

func (g *Getter) text(op string, get func(cmark.NodePtr) (string, bool)) (string, error) {
	p, err := g.acquire(op)
	if err != nil {
		return "", err
	}
	s, _ := get(p)
	return s, nil
}

func (g *Getter) number(op string, get func(cmark.NodePtr) int) (int, error) {
	p, err := g.acquire(op)
	if err != nil {
		return 0, err
	}
	return get(p), nil
}

// Content returns the literal text of text, code, code block and HTML
// nodes, and "" for every other kind.
func (g *Getter) Content() (string, error) {
	return g.text("get_content", cmark.NodeGetLiteral)
}

// Type returns the node kind. A node the engine reports as untyped yields
// a NodeNone error.
func (g *Getter) Type() (Type, error) {
	p, err := g.acquire("get_type")
	if err != nil {
		return TypeNone, err
	}
	t, err := parseType(errors.PhaseAccess, "get_type", cmark.NodeGetType(p))
	if err != nil {
		return TypeNone, err
	}
	if t == TypeNone {
		return TypeNone, errors.NodeNone(errors.PhaseAccess, "get_type")
	}
	return t, nil
}

// TypeString returns the engine's name for the node kind.
func (g *Getter) TypeString() (string, error) {
	p, err := g.acquire("get_type_string")
	if err != nil {
		return "", err
	}
	return cmark.NodeGetTypeString(p), nil
}

// StartLine returns the 1-based line the node starts on, 0 when unknown.
func (g *Getter) StartLine() (int, error) {
	return g.number("get_start_line", cmark.NodeGetStartLine)
}

// StartColumn returns the 1-based column the node starts at, 0 when unknown.
func (g *Getter) StartColumn() (int, error) {
	return g.number("get_start_column", cmark.NodeGetStartColumn)
}

// EndLine returns the 1-based line the node ends on, 0 when unknown.
func (g *Getter) EndLine() (int, error) {
	return g.number("get_end_line", cmark.NodeGetEndLine)
}

// EndColumn returns the 1-based column the node ends at, 0 when unknown.
func (g *Getter) EndColumn() (int, error) {
	return g.number("get_end_column", cmark.NodeGetEndColumn)
}

// ListType returns the marker style of a list node, ListNone otherwise.
func (g *Getter) ListType() (ListType, error) {
	p, err := g.acquire("get_list_type")
	if err != nil {
		return ListNone, err
	}
	return parseListType("get_list_type", cmark.NodeGetListType(p))
}

// DelimType returns the delimiter of an ordered list node.
func (g *Getter) DelimType() (DelimType, error) {
	p, err := g.acquire("get_delim_type")
	if err != nil {
		return DelimNone, err
	}
	return parseDelimType("get_delim_type", cmark.NodeGetListDelim(p))
}

// ListStart returns the first number of an ordered list.
func (g *Getter) ListStart() (int, error) {
	return g.number("get_list_start", cmark.NodeGetListStart)
}

// ListTight reports whether a list is tight.
func (g *Getter) ListTight() (bool, error) {
	tight, err := g.number("get_list_tight", cmark.NodeGetListTight)
	return tight != 0, err
}

// HeadingLevel returns 1 to 6 for headings and 0 for every other kind.
func (g *Getter) HeadingLevel() (int, error) {
	return g.number("get_heading_level", cmark.NodeGetHeadingLevel)
}

// URL returns the destination of a link or image, "" for other nodes.
func (g *Getter) URL() (string, error) {
	return g.text("get_url", cmark.NodeGetURL)
}

// Title returns the title of a link or image, "" for other nodes.
func (g *Getter) Title() (string, error) {
	return g.text("get_title", cmark.NodeGetTitle)
}

// FenceInfo returns the info string of a code block.
func (g *Getter) FenceInfo() (string, error) {
	return g.text("get_fence_info", cmark.NodeGetFenceInfo)
}

// ID returns a number that identifies the node for as long as it is valid.
// Two Node values with the same ID refer to the same engine node.
func (g *Getter) ID() (uint64, error) {
	p, err := g.acquire("get_id")
	if err != nil {
		return 0, err
	}
	return uint64(p), nil
}
