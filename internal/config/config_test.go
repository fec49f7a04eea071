package config

import (
	"flag"
	"io"
	"strings"
	"testing"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("segplay", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.AnimationsDir != "animations" {
		t.Errorf("Expected animations dir default, got %q", cfg.AnimationsDir)
	}
	if cfg.Total != -1 {
		t.Errorf("Expected total -1, got %d", cfg.Total)
	}
	if cfg.Actor != "biped" || cfg.Repeat != 1 {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if cfg.Workers < 1 {
		t.Errorf("Workers should default to the CPU count, got %d", cfg.Workers)
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("SEGPLAY_ACTOR", "alice")
	t.Setenv("SEGPLAY_TOTAL", "7")
	t.Setenv("SEGPLAY_STRICT", "true")

	cfg, err := Parse(newFlagSet(), []string{"-total", "3", "-dir", "animations/wave"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Actor != "alice" {
		t.Errorf("Expected actor from env, got %q", cfg.Actor)
	}
	if cfg.Total != 3 {
		t.Errorf("Expected flag to override env total, got %d", cfg.Total)
	}
	if !cfg.Strict {
		t.Error("Expected strict from env")
	}
	if cfg.Dir != "animations/wave" {
		t.Errorf("Unexpected dir %q", cfg.Dir)
	}
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("SEGPLAY_TOTAL", "not-an-int")

	_, err := Parse(newFlagSet(), nil)
	if err == nil {
		t.Fatal("Expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("Expected parse env prefix, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"total below -1", []string{"-total", "-2"}},
		{"total beyond limit", []string{"-total", "1125899906842624"}},
		{"negative repeat", []string{"-repeat", "-1"}},
		{"no workers", []string{"-workers", "0"}},
		{"empty actor", []string{"-actor", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(newFlagSet(), tt.args); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}
