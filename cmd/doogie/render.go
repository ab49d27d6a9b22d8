package main

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/PolySync/doogie"
	"github.com/PolySync/doogie/errors"
)

func newRenderCmd(a *app) *cobra.Command {
	var flags renderFlags
	cmd := &cobra.Command{
		Use:   "render [files...]",
		Short: "Parse documents and render them as CommonMark or XML",
		Long: "Parse each file (stdin when none is given) and write the rendered\n" +
			"document to stdout. A file that cannot be read is reported and the\n" +
			"remaining files are still rendered.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.apply(cmd, a.cfg)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				args = []string{"-"}
			}

			var errs error
			for _, name := range args {
				errs = multierr.Append(errs, a.renderFile(cmd, cfg, name))
			}
			return errs
		},
	}
	flags.register(cmd)
	return cmd
}

func (a *app) renderFile(cmd *cobra.Command, cfg Config, name string) error {
	data, err := a.read(cmd, name)
	if err != nil {
		a.logger.Warn("skipping input", zap.String("file", name), zap.Error(err))
		return err
	}

	root := doogie.ParseDocumentWithOptions(string(data), cfg.ParseOptions())
	defer root.Close()

	if cfg.Render.Consolidate {
		if err := root.Mutate.ConsolidateTextNodes(); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(cmd.OutOrStdout(), cfg.RenderNode(root)); err != nil {
		return errors.Wrap(errors.PhaseRender, errors.KindIO, err, "write "+name)
	}
	return nil
}
