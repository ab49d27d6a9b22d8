package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PolySync/doogie"
	"github.com/PolySync/doogie/errors"
	"github.com/PolySync/doogie/node"
)

func newStripCmd(a *app) *cobra.Command {
	var (
		names []string
		flags renderFlags
	)
	cmd := &cobra.Command{
		Use:   "strip --type t1,t2 [file]",
		Short: "Remove every node of the given types and render the rest",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.apply(cmd, a.cfg)
			if err != nil {
				return err
			}
			types, err := parseTypes(names)
			if err != nil {
				return err
			}

			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			data, err := a.read(cmd, name)
			if err != nil {
				return err
			}

			root := doogie.ParseDocumentWithOptions(string(data), cfg.ParseOptions())
			defer root.Close()

			removed, err := strip(root, types)
			if err != nil {
				return err
			}
			a.logger.Info("stripped nodes", zap.String("file", name), zap.Int("removed", removed))

			if cfg.Render.Consolidate {
				if err := root.Mutate.ConsolidateTextNodes(); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(cmd.OutOrStdout(), cfg.RenderNode(root)); err != nil {
				return errors.Wrap(errors.PhaseRender, errors.KindIO, err, "write output")
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&names, "type", "t", nil, "node types to remove, e.g. html_block,image")
	_ = cmd.MarkFlagRequired("type")
	flags.register(cmd)
	return cmd
}

func parseTypes(names []string) (map[node.Type]bool, error) {
	types := make(map[node.Type]bool, len(names))
	for _, name := range names {
		t, ok := node.TypeByName(name)
		if !ok {
			return nil, errors.NotFound(errors.PhaseConfig, "node type", name)
		}
		if t == node.TypeDocument {
			return nil, errors.InvalidInput(errors.PhaseConfig, "the document node cannot be stripped")
		}
		types[t] = true
	}
	return types, nil
}

// strip unlinks and frees every node of the given types below root and
// returns how many subtrees were removed. Matches are collected first so
// the tree is not changed while it is walked.
func strip(root *node.Node, types map[node.Type]bool) (int, error) {
	var matches []*node.Node
	for n, ev := range root.Traverse.Walk() {
		if ev != node.EventEnter {
			continue
		}
		if t, err := n.Get.Type(); err == nil && types[t] {
			matches = append(matches, n)
		}
	}

	removed := 0
	for _, n := range matches {
		// Nested matches go away with their enclosing match.
		if !n.IsValid() {
			continue
		}
		detached, err := n.Mutate.Unlink()
		if err != nil {
			return removed, fmt.Errorf("strip %s: %w", n, err)
		}
		detached.Close()
		removed++
	}
	return removed, nil
}
