package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PolySync/doogie"
	"github.com/PolySync/doogie/errors"
)

// FileReader reads input documents. Tests substitute an in-memory one.
type FileReader interface {
	ReadFile(name string) ([]byte, error)
}

type osFiles struct{}

func (osFiles) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// app holds state shared by the subcommands of one invocation.
type app struct {
	files  FileReader
	cfg    Config
	logger *zap.Logger

	configPath string
	logLevel   string
}

// NewRootCmd creates the doogie command with all subcommands registered.
func NewRootCmd(files FileReader) *cobra.Command {
	a := &app{files: files, cfg: DefaultConfig(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "doogie",
		Short:         "doogie - inspect, edit and render CommonMark documents",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.logger.Sync()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default "+DefaultConfigFile+" if present)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newRenderCmd(a))
	root.AddCommand(newTreeCmd(a))
	root.AddCommand(newStripCmd(a))
	root.AddCommand(newBrowseCmd(a, isTerminal))
	return root
}

// setup loads the config file, applies the global flags and installs the
// logger.
func (a *app) setup(cmd *cobra.Command) error {
	path, required := a.configPath, true
	if path == "" {
		path, required = DefaultConfigFile, false
	}
	cfg, err := LoadConfigFile(path, required)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	logger, err := newLogger(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.logger = logger
	doogie.SetLogger(logger)
	logger.Debug("configured", zap.String("config", path), zap.String("format", cfg.Render.Format))
	return nil
}

// read returns the contents of name, or of stdin for "-" or "".
func (a *app) read(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "" || name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, errors.ParseFailed("stdin", err)
		}
		return data, nil
	}
	data, err := a.files.ReadFile(name)
	if err != nil {
		return nil, errors.ParseFailed(name, err)
	}
	return data, nil
}

// renderFlags binds the render flags of a subcommand to the config. Flags
// override the config file only when given.
type renderFlags struct {
	format      string
	sourcepos   bool
	hardbreaks  bool
	nobreaks    bool
	consolidate bool
	smart       bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.format, "format", FormatCommonMark, "output format: commonmark or xml")
	fl.BoolVar(&f.sourcepos, "sourcepos", false, "include source positions in XML")
	fl.BoolVar(&f.hardbreaks, "hardbreaks", false, "render soft breaks as hard breaks")
	fl.BoolVar(&f.nobreaks, "nobreaks", false, "render soft breaks as spaces")
	fl.BoolVar(&f.consolidate, "consolidate", false, "merge adjacent text nodes before rendering")
	fl.BoolVar(&f.smart, "smart", false, "smart punctuation")
}

func (f *renderFlags) apply(cmd *cobra.Command, cfg Config) (Config, error) {
	fl := cmd.Flags()
	if fl.Changed("format") {
		cfg.Render.Format = f.format
	}
	if fl.Changed("sourcepos") {
		cfg.Render.SourcePos = f.sourcepos
	}
	if fl.Changed("hardbreaks") {
		cfg.Render.HardBreaks = f.hardbreaks
	}
	if fl.Changed("nobreaks") {
		cfg.Render.NoBreaks = f.nobreaks
	}
	if fl.Changed("consolidate") {
		cfg.Render.Consolidate = f.consolidate
	}
	if fl.Changed("smart") {
		cfg.Parse.Smart = f.smart
	}
	return cfg, cfg.Validate()
}
