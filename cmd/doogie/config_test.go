package main

import (
	"strings"
	"testing"

	"github.com/PolySync/doogie/errors"
	"github.com/PolySync/doogie/node"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Config
		kind  errors.Kind
	}{
		{
			name:  "empty",
			input: "",
			want:  DefaultConfig(),
		},
		{
			name:  "full",
			input: "log_level: debug\nparse:\n  smart: true\nrender:\n  format: xml\n  sourcepos: true\n  nobreaks: true\n  consolidate: true\n",
			want: Config{
				LogLevel: "debug",
				Parse:    ParseConfig{Smart: true},
				Render:   RenderConfig{Format: FormatXML, SourcePos: true, NoBreaks: true, Consolidate: true},
			},
		},
		{
			name:  "partial keeps defaults",
			input: "render:\n  hardbreaks: true\n",
			want: Config{
				LogLevel: "warn",
				Render:   RenderConfig{Format: FormatCommonMark, HardBreaks: true},
			},
		},
		{name: "unknown key", input: "colour: true\n", kind: errors.KindInvalidInput},
		{name: "bad format", input: "render:\n  format: html\n", kind: errors.KindInvalidInput},
		{name: "bad level", input: "log_level: loud\n", kind: errors.KindInvalidInput},
		{name: "not yaml", input: "render: [\n", kind: errors.KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(strings.NewReader(tt.input))
			if tt.kind != "" {
				if !errors.IsKind(err, tt.kind) {
					t.Fatalf("Expected %s, got %v", tt.kind, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}
			if cfg != tt.want {
				t.Fatalf("got %+v, want %+v", cfg, tt.want)
			}
		})
	}
}

func TestLoadConfigFile_Optional(t *testing.T) {
	cfg, err := LoadConfigFile("does-not-exist.yaml", false)
	if err != nil {
		t.Fatalf("Expected a missing optional file to be ignored, got %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("Expected defaults, got %+v", cfg)
	}
}

func TestConfig_Options(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Parse.Smart = true
	cfg.Render.SourcePos = true
	cfg.Render.HardBreaks = true

	if got := cfg.ParseOptions(); got != node.OptSmart|node.OptSourcePos {
		t.Errorf("ParseOptions() = %b", got)
	}
	if got := cfg.RenderOptions(); got != node.OptSourcePos|node.OptHardBreaks {
		t.Errorf("RenderOptions() = %b", got)
	}
}
