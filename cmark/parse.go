package cmark

import (
	"bytes"
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var (
	plainMarkdown = goldmark.New()
	smartMarkdown = goldmark.New(goldmark.WithExtensions(extension.Typographer))
)

// ParseDocument parses buf as CommonMark and returns a new document node
// owning the whole tree. NUL bytes are replaced with U+FFFD. OptSmart
// enables smart punctuation; other options only affect rendering.
func ParseDocument(buf []byte, opts Options) NodePtr {
	src := bytes.ReplaceAll(buf, []byte{0}, []byte("\uFFFD"))

	md := plainMarkdown
	if opts&OptSmart != 0 {
		md = smartMarkdown
	}
	doc := md.Parser().Parse(text.NewReader(src))

	engine.lock()
	defer engine.unlock()

	c := &converter{src: src, lines: lineStarts(src)}
	root := engine.alloc(NodeDocument)
	c.children(doc, root)
	c.fill(root)

	root.startLine, root.startColumn = 1, 1
	if end := len(bytes.TrimRight(src, "\r\n")); end > 0 {
		root.endLine, root.endColumn = c.pos(end - 1)
	}
	return root.ptr
}

// converter maps a goldmark AST onto arena nodes. The arena lock must be
// held while it runs.
type converter struct {
	src   []byte
	lines []int
}

func lineStarts(src []byte) []int {
	lines := []int{0}
	for i, b := range src {
		if b == '\n' && i+1 < len(src) {
			lines = append(lines, i+1)
		}
	}
	return lines
}

func (c *converter) pos(off int) (line, col int) {
	i := sort.Search(len(c.lines), func(i int) bool { return c.lines[i] > off }) - 1
	if i < 0 {
		i = 0
	}
	return i + 1, off - c.lines[i] + 1
}

// indentColumn returns the column of the first non-blank byte on line.
func (c *converter) indentColumn(line int) int {
	off := c.lines[line-1]
	col := 1
	for off < len(c.src) && (c.src[off] == ' ' || c.src[off] == '\t') {
		off++
		col++
	}
	return col
}

func (c *converter) lineEndColumn(line int) int {
	start := c.lines[line-1]
	end := start
	for end < len(c.src) && c.src[end] != '\n' && c.src[end] != '\r' {
		end++
	}
	return end - start
}

func (c *converter) span(n *node, start, stop int) {
	for stop > start && (c.src[stop-1] == '\n' || c.src[stop-1] == '\r') {
		stop--
	}
	if stop <= start {
		return
	}
	n.startLine, n.startColumn = c.pos(start)
	n.endLine, n.endColumn = c.pos(stop - 1)
}

func (c *converter) segments(n *node, segs *text.Segments) {
	if segs == nil || segs.Len() == 0 {
		return
	}
	c.span(n, segs.At(0).Start, segs.At(segs.Len()-1).Stop)
}

func (c *converter) join(segs *text.Segments) []byte {
	var b bytes.Buffer
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		b.Write(seg.Value(c.src))
	}
	return b.Bytes()
}

func (c *converter) child(parent *node, typ int) *node {
	n := engine.alloc(typ)
	appendChild(parent, n)
	return n
}

func (c *converter) children(gn ast.Node, parent *node) {
	for ch := gn.FirstChild(); ch != nil; ch = ch.NextSibling() {
		c.node(ch, parent)
	}
}

func (c *converter) node(gn ast.Node, parent *node) {
	if gn.Type() == ast.TypeInline {
		c.inline(gn, parent)
		return
	}

	switch n := gn.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		p := c.child(parent, NodeParagraph)
		c.segments(p, gn.Lines())
		c.children(gn, p)
	case *ast.Heading:
		h := c.child(parent, NodeHeading)
		h.headingLevel = n.Level
		c.segments(h, n.Lines())
		c.children(n, h)
	case *ast.ThematicBreak:
		c.child(parent, NodeThematicBreak)
	case *ast.FencedCodeBlock:
		cb := c.child(parent, NodeCodeBlock)
		cb.fenced = true
		cb.literal = string(c.join(n.Lines()))
		c.segments(cb, n.Lines())
		if n.Info != nil {
			cb.info = string(unescape(n.Info.Segment.Value(c.src)))
			cb.startLine, _ = c.pos(n.Info.Segment.Start)
			cb.startColumn = c.indentColumn(cb.startLine)
		}
	case *ast.CodeBlock:
		cb := c.child(parent, NodeCodeBlock)
		cb.literal = string(c.join(n.Lines()))
		c.segments(cb, n.Lines())
	case *ast.HTMLBlock:
		hb := c.child(parent, NodeHTMLBlock)
		lit := c.join(n.Lines())
		c.segments(hb, n.Lines())
		if n.HasClosure() {
			lit = append(lit, n.ClosureLine.Value(c.src)...)
			if hb.startLine == 0 {
				c.span(hb, n.ClosureLine.Start, n.ClosureLine.Stop)
			} else {
				hb.endLine, hb.endColumn = c.pos(n.ClosureLine.Stop - 1)
			}
		}
		hb.literal = string(lit)
	case *ast.Blockquote:
		c.children(n, c.child(parent, NodeBlockQuote))
	case *ast.List:
		l := c.child(parent, NodeList)
		l.listTight = n.IsTight
		if n.IsOrdered() {
			l.listType = OrderedList
			l.listStart = n.Start
			l.listDelim = PeriodDelim
			if n.Marker == ')' {
				l.listDelim = ParenDelim
			}
		}
		c.children(n, l)
	case *ast.ListItem:
		c.children(n, c.child(parent, NodeItem))
	default:
		c.children(gn, c.child(parent, NodeCustomBlock))
	}
}

// endsBlock reports whether a line break after gn would end its block,
// where it carries no meaning.
func endsBlock(gn ast.Node) bool {
	p := gn.Parent()
	return gn.NextSibling() == nil && p != nil && p.Type() == ast.TypeBlock
}

func (c *converter) inline(gn ast.Node, parent *node) {
	switch n := gn.(type) {
	case *ast.Text:
		seg := n.Segment
		v := bytes.TrimRight(seg.Value(c.src), "\r\n")
		soft, hard := n.SoftLineBreak(), n.HardLineBreak()
		if soft || hard {
			v = bytes.TrimRight(v, " \t")
		}
		if !n.IsRaw() {
			v = unescape(v)
		}
		if len(v) > 0 {
			t := c.child(parent, NodeText)
			t.literal = string(v)
			c.span(t, seg.Start, seg.Stop)
		}
		if (soft || hard) && !endsBlock(n) {
			if hard {
				c.child(parent, NodeLineBreak)
			} else {
				c.child(parent, NodeSoftBreak)
			}
		}
	case *ast.String:
		v := n.Value
		if n.IsCode() {
			v = util.ResolveEntityNames(util.ResolveNumericReferences(v))
		}
		c.child(parent, NodeText).literal = string(v)
	case *ast.CodeSpan:
		var b bytes.Buffer
		code := c.child(parent, NodeCode)
		for ch := n.FirstChild(); ch != nil; ch = ch.NextSibling() {
			switch t := ch.(type) {
			case *ast.Text:
				b.Write(t.Segment.Value(c.src))
			case *ast.String:
				b.Write(t.Value)
			}
		}
		code.literal = string(bytes.ReplaceAll(bytes.ReplaceAll(b.Bytes(), []byte("\r\n"), []byte(" ")), []byte("\n"), []byte(" ")))
	case *ast.Emphasis:
		typ := NodeEmph
		if n.Level >= 2 {
			typ = NodeStrong
		}
		c.children(n, c.child(parent, typ))
	case *ast.Link:
		l := c.child(parent, NodeLink)
		l.url = string(unescape(n.Destination))
		l.title = string(unescape(n.Title))
		c.children(n, l)
	case *ast.Image:
		img := c.child(parent, NodeImage)
		img.url = string(unescape(n.Destination))
		img.title = string(unescape(n.Title))
		c.children(n, img)
	case *ast.AutoLink:
		l := c.child(parent, NodeLink)
		url := n.URL(c.src)
		if n.AutoLinkType == ast.AutoLinkEmail && !bytes.HasPrefix(url, []byte("mailto:")) {
			url = append([]byte("mailto:"), url...)
		}
		l.url = string(url)
		c.child(l, NodeText).literal = string(n.Label(c.src))
	case *ast.RawHTML:
		h := c.child(parent, NodeHTMLInline)
		h.literal = string(c.join(n.Segments))
		c.segments(h, n.Segments)
	default:
		c.children(gn, c.child(parent, NodeCustomInline))
	}
}

func unescape(v []byte) []byte {
	return util.ResolveEntityNames(util.ResolveNumericReferences(util.UnescapePunctuations(v)))
}

// fill derives positions of nodes goldmark does not locate from their
// children, and aligns container starts with the line indentation.
func (c *converter) fill(n *node) {
	for ch := n.first; ch != nil; ch = ch.next {
		c.fill(ch)
	}
	if n.typ == NodeDocument {
		return
	}

	if n.startLine == 0 {
		for ch := n.first; ch != nil; ch = ch.next {
			if ch.startLine != 0 {
				n.startLine, n.startColumn = ch.startLine, ch.startColumn
				break
			}
		}
		for ch := n.last; ch != nil; ch = ch.prev {
			if ch.endLine != 0 {
				n.endLine, n.endColumn = ch.endLine, ch.endColumn
				break
			}
		}
	}
	if n.startLine == 0 {
		return
	}

	switch n.typ {
	case NodeHeading:
		n.startColumn = c.indentColumn(n.startLine)
		n.endColumn = c.lineEndColumn(n.endLine)
	case NodeBlockQuote, NodeList, NodeItem:
		if col := c.indentColumn(n.startLine); col < n.startColumn {
			n.startColumn = col
		}
	}
}
