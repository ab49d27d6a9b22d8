package main

import (
	"bytes"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/PolySync/doogie/errors"
	"github.com/PolySync/doogie/node"
)

// DefaultConfigFile is read when present and no --config flag is given.
const DefaultConfigFile = ".doogie.yaml"

const (
	FormatCommonMark = "commonmark"
	FormatXML        = "xml"
)

// Config is the CLI configuration file.
type Config struct {
	LogLevel string       `yaml:"log_level"`
	Parse    ParseConfig  `yaml:"parse"`
	Render   RenderConfig `yaml:"render"`
}

type ParseConfig struct {
	Smart bool `yaml:"smart"`
}

type RenderConfig struct {
	Format      string `yaml:"format"`
	SourcePos   bool   `yaml:"sourcepos"`
	HardBreaks  bool   `yaml:"hardbreaks"`
	NoBreaks    bool   `yaml:"nobreaks"`
	Consolidate bool   `yaml:"consolidate"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		LogLevel: "warn",
		Render:   RenderConfig{Format: FormatCommonMark},
	}
}

// LoadConfig decodes YAML over the defaults. Unknown keys are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return cfg, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "decode config")
	}
	return cfg, cfg.Validate()
}

// LoadConfigFile reads path. A missing file is an error only when required.
func LoadConfigFile(path string, required bool) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), errors.Wrap(errors.PhaseConfig, errors.KindIO, err, "read "+path)
	}
	return LoadConfig(bytes.NewReader(data))
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Op("log_level").
			Value(c.LogLevel).
			Cause(err).
			Detail("unknown log level %q", c.LogLevel).
			Build()
	}
	switch c.Render.Format {
	case FormatCommonMark, FormatXML:
	default:
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Op("render.format").
			Value(c.Render.Format).
			Detail("unknown format %q, want %s or %s", c.Render.Format, FormatCommonMark, FormatXML).
			Build()
	}
	return nil
}

// ParseOptions returns the engine options used when parsing.
func (c Config) ParseOptions() node.Options {
	opts := node.OptDefault
	if c.Parse.Smart {
		opts |= node.OptSmart
	}
	if c.Render.SourcePos {
		opts |= node.OptSourcePos
	}
	return opts
}

// RenderOptions returns the engine options used when rendering.
func (c Config) RenderOptions() node.Options {
	opts := node.OptDefault
	if c.Render.SourcePos {
		opts |= node.OptSourcePos
	}
	if c.Render.HardBreaks {
		opts |= node.OptHardBreaks
	}
	if c.Render.NoBreaks {
		opts |= node.OptNoBreaks
	}
	return opts
}

// RenderNode serializes n in the configured format.
func (c Config) RenderNode(n *node.Node) string {
	if c.Render.Format == FormatXML {
		return n.Render.XMLWithOptions(c.RenderOptions())
	}
	return n.Render.CommonMarkWithOptions(c.RenderOptions())
}

// newLogger builds a console logger writing to w at the configured level.
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log level")
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}
