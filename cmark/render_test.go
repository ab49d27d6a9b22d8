package cmark

import (
	"strings"
	"testing"
)

func TestRenderCommonMark(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"heading", "# Testing\n", "# Testing\n"},
		{"setext heading", "Title\n=====\n", "# Title\n"},
		{"paragraphs", "a\n\nb\n", "a\n\nb\n"},
		{"soft break", "a\nb\n", "a\nb\n"},
		{"hard break", "a  \nb\n", "a\\\nb\n"},
		{"bullet list", "- a\n- b\n", "  - a\n  - b\n"},
		{"loose list", "- a\n\n- b\n", "  - a\n\n  - b\n"},
		{"ordered list", "1. a\n2. b\n", "1.  a\n2.  b\n"},
		{"paren list", "7) a\n", "7)  a\n"},
		{"block quote", "> quote\n>\n> more\n", "> quote\n>\n> more\n"},
		{"thematic break", "***\n", "-----\n"},
		{"fenced code", "```go\nx := 1\n```\n", "```go\nx := 1\n```\n"},
		{"indented code", "    code\n", "    code\n"},
		{"emphasis", "*a* **b** `c`\n", "*a* **b** `c`\n"},
		{"link", "[x](/u \"t\")\n", "[x](/u \"t\")\n"},
		{"image", "![alt](/i.png)\n", "![alt](/i.png)\n"},
		{"autolink", "<https://example.com>\n", "<https://example.com>\n"},
		{"email autolink", "<me@example.com>\n", "<me@example.com>\n"},
		{"escapes", "\\*not emph\\*\n", "\\*not emph\\*\n"},
		{"nested list", "- a\n  - b\n", "  - a\n      - b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := ParseDocument([]byte(tt.input), OptDefault)
			defer NodeFree(doc)
			if got := RenderCommonMark(doc, OptDefault); got != tt.want {
				t.Fatalf("RenderCommonMark(%q) =\n%q\nwant\n%q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRenderCommonMark_BreakOptions(t *testing.T) {
	doc := ParseDocument([]byte("a\nb\n"), OptDefault)
	defer NodeFree(doc)

	tests := []struct {
		opts Options
		want string
	}{
		{OptDefault, "a\nb\n"},
		{OptHardBreaks, "a\\\nb\n"},
		{OptNoBreaks, "a b\n"},
	}
	for _, tt := range tests {
		if got := RenderCommonMark(doc, tt.opts); got != tt.want {
			t.Errorf("opts %d: got %q, want %q", tt.opts, got, tt.want)
		}
	}
}

func TestRenderCommonMark_Subtree(t *testing.T) {
	doc := ParseDocument([]byte("# One\n\ntwo *three*\n"), OptDefault)
	defer NodeFree(doc)

	para := NodeLastChild(doc)
	if got := RenderCommonMark(para, OptDefault); got != "two *three*\n" {
		t.Fatalf("Expected paragraph only, got %q", got)
	}
	emph := NodeLastChild(para)
	if got := RenderCommonMark(emph, OptDefault); got != "*three*\n" {
		t.Fatalf("Expected emph only, got %q", got)
	}
}

func TestRenderCommonMark_Built(t *testing.T) {
	doc := NodeNew(NodeDocument)
	defer NodeFree(doc)

	list := NodeNew(NodeList)
	NodeSetListType(list, OrderedList)
	NodeSetListStart(list, 9)
	NodeSetListTight(list, 1)
	NodeAppendChild(doc, list)
	for _, s := range []string{"nine", "ten"} {
		item := NodeNew(NodeItem)
		para := NodeNew(NodeParagraph)
		text := NodeNew(NodeText)
		NodeSetLiteral(text, s)
		NodeAppendChild(para, text)
		NodeAppendChild(item, para)
		NodeAppendChild(list, item)
	}
	code := NodeNew(NodeCodeBlock)
	NodeSetLiteral(code, "a ``` b\n")
	NodeSetFenceInfo(code, "txt")
	NodeAppendChild(doc, code)

	want := "9.  nine\n10. ten\n\n<!-- end list -->\n\n````txt\na ``` b\n````\n"
	if got := RenderCommonMark(doc, OptDefault); got != want {
		t.Fatalf("got\n%q\nwant\n%q", got, want)
	}
}

func TestRenderCommonMark_Invalid(t *testing.T) {
	p := NodeNew(NodeParagraph)
	NodeFree(p)
	if got := RenderCommonMark(p, OptDefault); got != "" {
		t.Fatalf("Expected empty render for freed node, got %q", got)
	}
	if got := RenderXML(p, OptDefault); got != "" {
		t.Fatalf("Expected empty XML for freed node, got %q", got)
	}
}

func TestRenderXML(t *testing.T) {
	doc := ParseDocument([]byte("# Testing\n"), OptDefault)
	defer NodeFree(doc)

	want := `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE document SYSTEM "CommonMark.dtd">
<document xmlns="http://commonmark.org/xml/1.0">
  <heading level="1">
    <text xml:space="preserve">Testing</text>
  </heading>
</document>
`
	if got := RenderXML(doc, OptDefault); got != want {
		t.Fatalf("got\n%s\nwant\n%s", got, want)
	}
}

func TestRenderXML_Attributes(t *testing.T) {
	doc := ParseDocument([]byte("2. [a & b](/u \"t\")\n\n---\n\n```sh\necho <x>\n```\n"), OptSourcePos)
	defer NodeFree(doc)

	got := RenderXML(doc, OptSourcePos)
	for _, s := range []string{
		`<document sourcepos="1:1-`,
		`type="ordered" start="2" delim="period" tight="true"`,
		`destination="/u" title="t"`,
		`<text xml:space="preserve">a &amp; b</text>`,
		`<thematic_break />`,
		`info="sh" xml:space="preserve">echo &lt;x&gt;`,
	} {
		if !strings.Contains(got, s) {
			t.Errorf("XML does not contain %q:\n%s", s, got)
		}
	}

	if strings.Contains(RenderXML(doc, OptDefault), "sourcepos") {
		t.Error("Expected no sourcepos without the option")
	}
}
