package cmark

import (
	"fmt"
	"strings"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE document SYSTEM "CommonMark.dtd">
`

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// RenderXML renders the subtree rooted at p in the CommonMark XML format.
// It returns "" when p does not resolve.
func RenderXML(p NodePtr, opts Options) string {
	engine.lock()
	defer engine.unlock()
	n := engine.resolve(p, "render_xml")
	if n == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(xmlHeader)
	writeXML(&b, n, 0, opts)
	return b.String()
}

func writeXML(b *strings.Builder, n *node, depth int, opts Options) {
	name := TypeName(n.typ)
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteByte('<')
	b.WriteString(name)

	if opts&OptSourcePos != 0 && n.startLine != 0 {
		fmt.Fprintf(b, ` sourcepos="%d:%d-%d:%d"`, n.startLine, n.startColumn, n.endLine, n.endColumn)
	}

	switch n.typ {
	case NodeDocument:
		b.WriteString(` xmlns="http://commonmark.org/xml/1.0"`)
	case NodeList:
		switch n.listType {
		case OrderedList:
			fmt.Fprintf(b, ` type="ordered" start="%d"`, n.listStart)
			switch n.listDelim {
			case PeriodDelim:
				b.WriteString(` delim="period"`)
			case ParenDelim:
				b.WriteString(` delim="paren"`)
			}
		case BulletList:
			b.WriteString(` type="bullet"`)
		}
		fmt.Fprintf(b, ` tight="%t"`, n.listTight)
	case NodeHeading:
		fmt.Fprintf(b, ` level="%d"`, n.headingLevel)
	case NodeCodeBlock:
		if n.info != "" {
			fmt.Fprintf(b, ` info="%s"`, xmlEscaper.Replace(n.info))
		}
	case NodeLink, NodeImage:
		fmt.Fprintf(b, ` destination="%s" title="%s"`, xmlEscaper.Replace(n.url), xmlEscaper.Replace(n.title))
	}

	if hasLiteral(n.typ) {
		b.WriteString(` xml:space="preserve">`)
		b.WriteString(xmlEscaper.Replace(n.literal))
		fmt.Fprintf(b, "</%s>\n", name)
		return
	}
	if n.first == nil {
		b.WriteString(" />\n")
		return
	}

	b.WriteString(">\n")
	for ch := n.first; ch != nil; ch = ch.next {
		writeXML(b, ch, depth+1, opts)
	}
	b.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(b, "</%s>\n", name)
}
