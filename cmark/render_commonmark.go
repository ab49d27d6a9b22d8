package cmark

import (
	"strconv"
	"strings"
)

// RenderCommonMark renders the subtree rooted at p as CommonMark text.
// The result ends with a newline; it is empty when p does not resolve.
func RenderCommonMark(p NodePtr, opts Options) string {
	engine.lock()
	defer engine.unlock()
	n := engine.resolve(p, "render_commonmark")
	if n == nil {
		return ""
	}
	r := commonmarkRenderer{opts: opts}
	var out string
	if isInline(n.typ) {
		out = r.inline(n)
	} else {
		out = r.block(n)
	}
	return strings.TrimRight(out, "\n") + "\n"
}

type commonmarkRenderer struct {
	opts Options
}

func (r *commonmarkRenderer) block(n *node) string {
	switch n.typ {
	case NodeDocument, NodeList, NodeCustomBlock:
		return r.blocks(n)
	case NodeBlockQuote:
		return prefixLines(r.blocks(n), "> ", ">")
	case NodeItem:
		marker := itemMarker(n)
		body := r.blocks(n)
		if body == "" {
			return strings.TrimRight(marker, " ")
		}
		return marker + indentTail(body, strings.Repeat(" ", len(marker)))
	case NodeParagraph:
		return r.inlines(n)
	case NodeHeading:
		hashes := strings.Repeat("#", n.headingLevel)
		inner := strings.ReplaceAll(r.inlines(n), "\n", " ")
		if inner == "" {
			return hashes
		}
		return hashes + " " + inner
	case NodeThematicBreak:
		return "-----"
	case NodeCodeBlock:
		return codeBlock(n)
	case NodeHTMLBlock:
		return strings.TrimRight(n.literal, "\n")
	}
	return ""
}

func (r *commonmarkRenderer) blocks(n *node) string {
	var b strings.Builder
	for ch := n.first; ch != nil; ch = ch.next {
		if isInline(ch.typ) {
			b.WriteString(r.inline(ch))
			continue
		}
		if ch.prev != nil && !isInline(ch.prev.typ) {
			b.WriteString(separator(ch))
		}
		b.WriteString(r.block(ch))
	}
	return b.String()
}

// separator returns the text between ch and its previous sibling.
func separator(ch *node) string {
	if ch.prev.typ == NodeList && (ch.typ == NodeList || ch.typ == NodeCodeBlock) {
		return "\n\n<!-- end list -->\n\n"
	}
	if ch.typ != NodeCodeBlock && inTightList(ch) {
		return "\n"
	}
	return "\n\n"
}

func inTightList(n *node) bool {
	p := n.parent
	switch {
	case p.typ == NodeList:
		return p.listTight
	case p.typ == NodeItem && p.parent != nil && p.parent.typ == NodeList:
		return p.parent.listTight
	}
	return false
}

func itemMarker(n *node) string {
	l := n.parent
	if l == nil || l.typ != NodeList || l.listType != OrderedList {
		return "  - "
	}
	num := l.listStart
	for s := n.prev; s != nil; s = s.prev {
		num++
	}
	delim := "."
	if l.listDelim == ParenDelim {
		delim = ")"
	}
	if num < 10 {
		return strconv.Itoa(num) + delim + "  "
	}
	return strconv.Itoa(num) + delim + " "
}

func prefixLines(s, prefix, blank string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = blank
		} else {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// indentTail indents every non-empty line of s but the first.
func indentTail(s, indent string) string {
	lines := strings.Split(s, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = indent + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func longestRun(s string, c byte) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return longest
}

func codeBlock(n *node) string {
	code := n.literal
	firstInItem := n.prev == nil && n.parent != nil && n.parent.typ == NodeItem
	indented := !n.fenced && n.info == "" && !firstInItem && len(code) > 2 &&
		!isSpace(code[0]) && !(isSpace(code[len(code)-1]) && isSpace(code[len(code)-2]))

	if indented {
		return prefixLines(strings.TrimSuffix(code, "\n"), "    ", "")
	}

	fenceChar := byte('`')
	if strings.IndexByte(n.info, '`') >= 0 {
		fenceChar = '~'
	}
	fence := strings.Repeat(string(fenceChar), max(3, longestRun(code, fenceChar)+1))

	var b strings.Builder
	b.WriteString(fence)
	b.WriteString(n.info)
	b.WriteByte('\n')
	b.WriteString(code)
	if code != "" && !strings.HasSuffix(code, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(fence)
	return b.String()
}

func (r *commonmarkRenderer) inlines(n *node) string {
	var b strings.Builder
	for ch := n.first; ch != nil; ch = ch.next {
		b.WriteString(r.inline(ch))
	}
	return b.String()
}

func (r *commonmarkRenderer) inline(n *node) string {
	switch n.typ {
	case NodeText:
		return escapeText(n.literal, atLineStart(n))
	case NodeSoftBreak:
		switch {
		case r.opts&OptHardBreaks != 0:
			return "\\\n"
		case r.opts&OptNoBreaks != 0:
			return " "
		}
		return "\n"
	case NodeLineBreak:
		return "\\\n"
	case NodeCode:
		return codeSpan(n.literal)
	case NodeHTMLInline:
		return n.literal
	case NodeEmph:
		return "*" + r.inlines(n) + "*"
	case NodeStrong:
		return "**" + r.inlines(n) + "**"
	case NodeLink:
		if isAutolink(n) {
			return "<" + strings.TrimPrefix(n.url, "mailto:") + ">"
		}
		return "[" + r.inlines(n) + "](" + linkDestination(n.url) + linkTitle(n.title) + ")"
	case NodeImage:
		return "![" + r.inlines(n) + "](" + linkDestination(n.url) + linkTitle(n.title) + ")"
	case NodeCustomInline:
		return r.inlines(n)
	}
	return ""
}

func atLineStart(n *node) bool {
	if n.prev == nil {
		return n.parent == nil || !isInline(n.parent.typ)
	}
	return n.prev.typ == NodeSoftBreak || n.prev.typ == NodeLineBreak
}

func escapeText(s string, lineStart bool) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\', '`', '*', '_', '[', ']', '<':
			b.WriteByte('\\')
		case '&':
			if i+1 < len(s) && (s[i+1] == '#' || isAlpha(s[i+1])) {
				b.WriteByte('\\')
			}
		case '#', '>', '+', '-', '=', '~':
			if lineStart && i == 0 {
				b.WriteByte('\\')
			}
		case '.', ')':
			if lineStart && i > 0 && allDigits(s[:i]) {
				b.WriteByte('\\')
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

func codeSpan(lit string) string {
	ticks := strings.Repeat("`", longestRun(lit, '`')+1)
	pad := ""
	if strings.HasPrefix(lit, "`") || strings.HasSuffix(lit, "`") ||
		(strings.HasPrefix(lit, " ") && strings.HasSuffix(lit, " ") && strings.Trim(lit, " ") != "") {
		pad = " "
	}
	return ticks + pad + lit + pad + ticks
}

// isAutolink reports whether a link can be written as <url>.
func isAutolink(n *node) bool {
	if n.url == "" || n.title != "" || !hasScheme(n.url) ||
		strings.ContainsAny(n.url, " <>") {
		return false
	}
	t := n.first
	if t == nil || t.typ != NodeText || t.next != nil {
		return false
	}
	return strings.TrimPrefix(n.url, "mailto:") == t.literal
}

func hasScheme(url string) bool {
	i := strings.IndexByte(url, ':')
	if i < 2 || i > 32 || !isAlpha(url[0]) {
		return false
	}
	for j := 1; j < i; j++ {
		c := url[j]
		if !isAlpha(c) && (c < '0' || c > '9') && c != '+' && c != '.' && c != '-' {
			return false
		}
	}
	return true
}

func linkDestination(url string) string {
	if strings.ContainsAny(url, " \t\n") {
		return "<" + strings.NewReplacer("<", "\\<", ">", "\\>").Replace(url) + ">"
	}
	return strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)").Replace(url)
}

func linkTitle(title string) string {
	if title == "" {
		return ""
	}
	return ` "` + strings.NewReplacer("\\", "\\\\", `"`, `\"`).Replace(title) + `"`
}
