package cmark

import "strings"

// NodeNew allocates a detached node of type t. It returns 0 for tags
// outside the enumeration or NodeNone.
func NodeNew(t int) NodePtr {
	if t <= NodeNone || t > lastInline {
		return 0
	}
	engine.lock()
	defer engine.unlock()
	return engine.alloc(t).ptr
}

// NodeFree unlinks p and frees it together with all of its descendants.
// Freeing a stale handle is reported and otherwise ignored.
func NodeFree(p NodePtr) {
	if p == 0 {
		return
	}
	engine.lock()
	defer engine.unlock()

	n := engine.lookup(p)
	if n == nil {
		Logger().Warn("free of freed node", zapNode(p))
		engine.emit(Event{Type: EventInvalidFree, Node: p, Op: "free"})
		return
	}
	unlink(n)
	engine.release(n)
}

// NodeGetType returns the raw type tag of p, NodeNone for null or stale
// handles.
func NodeGetType(p NodePtr) int {
	engine.lock()
	defer engine.unlock()
	if n := engine.resolve(p, "get_type"); n != nil {
		return n.typ
	}
	return NodeNone
}

// NodeGetTypeString returns the engine's name for p's type.
func NodeGetTypeString(p NodePtr) string {
	engine.lock()
	defer engine.unlock()
	if n := engine.resolve(p, "get_type_string"); n != nil {
		return TypeName(n.typ)
	}
	return "NONE"
}

// NodeGetLiteral returns the literal text of p. The second result is false
// when p has no literal, which the native API expresses as NULL.
func NodeGetLiteral(p NodePtr) (string, bool) {
	engine.lock()
	defer engine.unlock()
	n := engine.resolve(p, "get_literal")
	if n == nil || !hasLiteral(n.typ) {
		return "", false
	}
	return n.literal, true
}

// NodeSetLiteral replaces the literal text of p.
func NodeSetLiteral(p NodePtr, s string) int {
	engine.lock()
	defer engine.unlock()
	n := engine.resolve(p, "set_literal")
	if n == nil || !hasLiteral(n.typ) || strings.IndexByte(s, 0) >= 0 {
		return StatusFailed
	}
	n.literal = s
	return StatusOK
}

// NodeGetStartLine returns the line on which p begins, 0 when unknown.
func NodeGetStartLine(p NodePtr) int {
	engine.lock()
	defer engine.unlock()
	if n := engine.resolve(p, "get_start_line"); n != nil {
		return n.startLine
	}
	return 0
}

// NodeGetStartColumn returns the column at which p begins, 0 when unknown.
func NodeGetStartColumn(p NodePtr) int {
	engine.lock()
	defer engine.unlock()
	if n := engine.resolve(p, "get_start_column"); n != nil {
		return n.startColumn
	}
	return 0
}

// NodeGetEndLine returns the line on which p ends, 0 when unknown.
func NodeGetEndLine(p NodePtr) int {
	engine.lock()
	defer engine.unlock()
	if n := engine.resolve(p, "get_end_line"); n != nil {
		return n.endLine
	}
	return 0
}

// NodeGetEndColumn returns the column at which p ends, 0 when unknown.
func NodeGetEndColumn(p NodePtr) int {
	engine.lock()
	defer engine.unlock()
	if n := engine.resolve(p, "get_end_column"); n != nil {
		return n.endColumn
	}
	return 0
}

func NodeGetListType(p NodePtr) int {
	engine.lock()
	defer engine.unlock()
	if n := engine.resolve(p, "get_list_type"); n != nil && n.typ == NodeList {
		return n.listType
	}
	return NoList
}

func NodeSetListType(p NodePtr, t int) int {
	engine.lock()
	defer engine.unlock()
	n := engine.resolve(p, "set_list_type")
	if n == nil || n.typ != NodeList || (t != BulletList && t != OrderedList) {
		return StatusFailed
	}
	n.listType = t
	return StatusOK
}

func NodeGetListDelim(p NodePtr) int {
	engine.lock()
	defer engine.unlock()
	if n := engine.resolve(p, "get_list_delim"); n != nil && n.typ == NodeList {
		return n.listDelim
	}
	return NoDelim
}

func NodeSetListDelim(p NodePtr, d int) int {
	engine.lock()
	defer engine.unlock()
	n := engine.resolve(p, "set_list_delim")
	if n == nil || n.typ != NodeList || d < NoDelim || d > ParenDelim {
		return StatusFailed
	}
	n.listDelim = d
	return StatusOK
}

func NodeGetListStart(p NodePtr) int {
	engine.lock()
	defer engine.unlock()
	if n := engine.resolve(p, "get_list_start"); n != nil && n.typ == NodeList {
		return n.listStart
	}
	return 0
}

func NodeSetListStart(p NodePtr, start int) int {
	engine.lock()
	defer engine.unlock()
	n := engine.resolve(p, "set_list_start")
	if n == nil || n.typ != NodeList || start < 0 {
		return StatusFailed
	}
	n.listStart = start
	return StatusOK
}

// NodeGetListTight returns 1 for a tight list, 0 otherwise.
func NodeGetListTight(p NodePtr) int {
	engine.lock()
	defer engine.unlock()
	if n := engine.resolve(p, "get_list_tight"); n != nil && n.typ == NodeList && n.listTight {
		return 1
	}
	return 0
}

func NodeSetListTight(p NodePtr, tight int) int {
	engine.lock()
	defer engine.unlock()
	n := engine.resolve(p, "set_list_tight")
	if n == nil || n.typ != NodeList {
		return StatusFailed
	}
	n.listTight = tight != 0
	return StatusOK
}

// NodeGetHeadingLevel returns the level of a heading, 0 for other nodes.
func NodeGetHeadingLevel(p NodePtr) int {
	engine.lock()
	defer engine.unlock()
	if n := engine.resolve(p, "get_heading_level"); n != nil && n.typ == NodeHeading {
		return n.headingLevel
	}
	return 0
}

func NodeSetHeadingLevel(p NodePtr, level int) int {
	engine.lock()
	defer engine.unlock()
	n := engine.resolve(p, "set_heading_level")
	if n == nil || n.typ != NodeHeading || level < 1 || level > 6 {
		return StatusFailed
	}
	n.headingLevel = level
	return StatusOK
}

// NodeGetURL returns the destination of a link or image.
func NodeGetURL(p NodePtr) (string, bool) {
	engine.lock()
	defer engine.unlock()
	n := engine.resolve(p, "get_url")
	if n == nil || (n.typ != NodeLink && n.typ != NodeImage) {
		return "", false
	}
	return n.url, true
}

func NodeSetURL(p NodePtr, url string) int {
	engine.lock()
	defer engine.unlock()
	n := engine.resolve(p, "set_url")
	if n == nil || (n.typ != NodeLink && n.typ != NodeImage) {
		return StatusFailed
	}
	n.url = url
	return StatusOK
}

// NodeGetTitle returns the title of a link or image.
func NodeGetTitle(p NodePtr) (string, bool) {
	engine.lock()
	defer engine.unlock()
	n := engine.resolve(p, "get_title")
	if n == nil || (n.typ != NodeLink && n.typ != NodeImage) {
		return "", false
	}
	return n.title, true
}

func NodeSetTitle(p NodePtr, title string) int {
	engine.lock()
	defer engine.unlock()
	n := engine.resolve(p, "set_title")
	if n == nil || (n.typ != NodeLink && n.typ != NodeImage) {
		return StatusFailed
	}
	n.title = title
	return StatusOK
}

// NodeGetFenceInfo returns the info string of a code block.
func NodeGetFenceInfo(p NodePtr) (string, bool) {
	engine.lock()
	defer engine.unlock()
	n := engine.resolve(p, "get_fence_info")
	if n == nil || n.typ != NodeCodeBlock {
		return "", false
	}
	return n.info, true
}

// NodeSetFenceInfo replaces the info string of a code block.
func NodeSetFenceInfo(p NodePtr, info string) int {
	engine.lock()
	defer engine.unlock()
	n := engine.resolve(p, "set_fence_info")
	if n == nil || n.typ != NodeCodeBlock || strings.IndexByte(info, 0) >= 0 {
		return StatusFailed
	}
	n.info = info
	return StatusOK
}

func handleOf(n *node) NodePtr {
	if n == nil {
		return 0
	}
	return n.ptr
}

// NodeNext returns the next sibling of p, 0 if none.
func NodeNext(p NodePtr) NodePtr {
	engine.lock()
	defer engine.unlock()
	if n := engine.resolve(p, "next"); n != nil {
		return handleOf(n.next)
	}
	return 0
}

// NodePrevious returns the previous sibling of p, 0 if none.
func NodePrevious(p NodePtr) NodePtr {
	engine.lock()
	defer engine.unlock()
	if n := engine.resolve(p, "previous"); n != nil {
		return handleOf(n.prev)
	}
	return 0
}

// NodeParent returns the parent of p, 0 if none.
func NodeParent(p NodePtr) NodePtr {
	engine.lock()
	defer engine.unlock()
	if n := engine.resolve(p, "parent"); n != nil {
		return handleOf(n.parent)
	}
	return 0
}

// NodeFirstChild returns the first child of p, 0 if none.
func NodeFirstChild(p NodePtr) NodePtr {
	engine.lock()
	defer engine.unlock()
	if n := engine.resolve(p, "first_child"); n != nil {
		return handleOf(n.first)
	}
	return 0
}

// NodeLastChild returns the last child of p, 0 if none.
func NodeLastChild(p NodePtr) NodePtr {
	engine.lock()
	defer engine.unlock()
	if n := engine.resolve(p, "last_child"); n != nil {
		return handleOf(n.last)
	}
	return 0
}

// NodeUnlink detaches p from its parent and siblings. The node and its
// subtree stay allocated.
func NodeUnlink(p NodePtr) {
	engine.lock()
	defer engine.unlock()
	if n := engine.resolve(p, "unlink"); n != nil {
		unlink(n)
	}
}

func unlink(n *node) {
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if p := n.parent; p != nil {
		if p.first == n {
			p.first = n.next
		}
		if p.last == n {
			p.last = n.prev
		}
	}
	n.parent = nil
	n.prev = nil
	n.next = nil
}

func appendChild(parent, child *node) {
	unlink(child)
	child.parent = parent
	if parent.last != nil {
		parent.last.next = child
		child.prev = parent.last
	} else {
		parent.first = child
	}
	parent.last = child
}

// canContain reports whether child may be appended to parent.
func canContain(parent, child *node) bool {
	if parent == nil || child == nil {
		return false
	}
	for cur := parent; cur != nil; cur = cur.parent {
		if cur == child {
			return false
		}
	}
	if child.typ == NodeDocument {
		return false
	}

	switch parent.typ {
	case NodeDocument, NodeBlockQuote, NodeItem:
		return isBlock(child.typ) && child.typ != NodeItem
	case NodeList:
		return child.typ == NodeItem
	case NodeCustomBlock:
		return true
	case NodeParagraph, NodeHeading, NodeEmph, NodeStrong, NodeLink,
		NodeImage, NodeCustomInline:
		return isInline(child.typ)
	}
	return false
}

// NodeAppendChild appends child as the last child of parent, first
// unlinking it from wherever it was. It fails when parent cannot contain
// child or when the append would create a cycle.
func NodeAppendChild(parent, child NodePtr) int {
	engine.lock()
	defer engine.unlock()
	pn := engine.resolve(parent, "append_child")
	cn := engine.resolve(child, "append_child")
	if !canContain(pn, cn) {
		return StatusFailed
	}
	appendChild(pn, cn)
	return StatusOK
}

// ConsolidateTextNodes merges runs of adjacent text nodes in p's subtree
// into their first node. Merged-away nodes are freed.
func ConsolidateTextNodes(p NodePtr) {
	engine.lock()
	defer engine.unlock()
	if n := engine.resolve(p, "consolidate_text_nodes"); n != nil {
		consolidate(n)
	}
}

func consolidate(n *node) {
	if n.typ == NodeText {
		return
	}
	for c := n.first; c != nil; c = c.next {
		if c.typ != NodeText {
			consolidate(c)
			continue
		}
		var b strings.Builder
		b.WriteString(c.literal)
		merged := false
		for c.next != nil && c.next.typ == NodeText {
			t := c.next
			b.WriteString(t.literal)
			if t.endLine != 0 {
				c.endLine, c.endColumn = t.endLine, t.endColumn
			}
			unlink(t)
			engine.release(t)
			merged = true
		}
		if merged {
			c.literal = b.String()
		}
	}
}
