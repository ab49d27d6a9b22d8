package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolySync/doogie"
	"github.com/PolySync/doogie/errors"
	"github.com/PolySync/doogie/node"
)

const previewWidth = 40

func newTreeCmd(a *app) *cobra.Command {
	var smart bool
	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Print the node tree of a document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			data, err := a.read(cmd, name)
			if err != nil {
				return err
			}

			opts := a.cfg.ParseOptions()
			if smart || a.cfg.Parse.Smart {
				opts |= node.OptSmart
			}
			root := doogie.ParseDocumentWithOptions(string(data), opts)
			defer root.Close()
			return writeTree(cmd.OutOrStdout(), root)
		},
	}
	cmd.Flags().BoolVar(&smart, "smart", false, "smart punctuation")
	return cmd
}

// writeTree prints one line per node, indented by depth.
func writeTree(w io.Writer, root *node.Node) error {
	depth := 0
	for n, ev := range root.Traverse.Walk() {
		if ev == node.EventExit {
			depth--
			continue
		}
		line, err := describe(n)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), line); err != nil {
			return errors.Wrap(errors.PhaseRender, errors.KindIO, err, "write tree")
		}
		t, _ := n.Get.Type()
		if len(node.ChildTypes(t)) > 0 {
			depth++
		}
	}
	return nil
}

// describe formats a node as "type [sl:sc-el:ec] attrs "content"".
func describe(n *node.Node) (string, error) {
	g := n.Get
	t, err := g.Type()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(t.String())

	sl, _ := g.StartLine()
	sc, _ := g.StartColumn()
	el, _ := g.EndLine()
	ec, _ := g.EndColumn()
	if sl != 0 {
		fmt.Fprintf(&b, " [%d:%d-%d:%d]", sl, sc, el, ec)
	}

	for _, attr := range attributes(g, t) {
		b.WriteByte(' ')
		b.WriteString(attr)
	}

	if content, _ := g.Content(); content != "" {
		b.WriteByte(' ')
		b.WriteString(preview(content, previewWidth))
	}
	return b.String(), nil
}

func attributes(g *node.Getter, t node.Type) []string {
	var attrs []string
	switch t {
	case node.TypeHeading:
		level, _ := g.HeadingLevel()
		attrs = append(attrs, "level="+strconv.Itoa(level))
	case node.TypeList:
		lt, _ := g.ListType()
		tight, _ := g.ListTight()
		attrs = append(attrs, "type="+lt.String())
		if lt == node.ListOrdered {
			start, _ := g.ListStart()
			delim, _ := g.DelimType()
			attrs = append(attrs, "start="+strconv.Itoa(start), "delim="+delim.String())
		}
		attrs = append(attrs, "tight="+strconv.FormatBool(tight))
	case node.TypeLink, node.TypeImage:
		url, _ := g.URL()
		attrs = append(attrs, "url="+strconv.Quote(url))
		if title, _ := g.Title(); title != "" {
			attrs = append(attrs, "title="+strconv.Quote(title))
		}
	case node.TypeCodeBlock:
		if info, _ := g.FenceInfo(); info != "" {
			attrs = append(attrs, "info="+strconv.Quote(info))
		}
	}
	return attrs
}

// preview quotes s, cut to at most width runes.
func preview(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return strconv.Quote(string(r[:width-1])) + "…"
	}
	return strconv.Quote(s)
}
