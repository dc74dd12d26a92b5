package main

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestParseValues(t *testing.T) {
	vals, err := parseValues("0.01, 0.1,,1")
	if err != nil {
		t.Fatal(err)
	}
	if len(vals) != 3 || vals[2] != 1 {
		t.Errorf("unexpected values %v", vals)
	}
	if _, err := parseValues("a,b"); err == nil {
		t.Error("expected parse error")
	}
	if _, err := parseValues(""); err == nil {
		t.Error("expected error for empty list")
	}
}

func TestResolveConfig(t *testing.T) {
	cmd := &cobra.Command{Use: "run"}
	addSimFlags(cmd)
	if err := cmd.Flags().Parse([]string{"--width", "40", "--steps", "50"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := resolveConfig(cmd, []string{"box"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 40 || cfg.Steps != 50 {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.Variant != "single_phase" || cfg.Gravity.Y != 0 {
		t.Errorf("box should default to a single-phase run, got %s", cfg.Variant)
	}
}

func TestResolveConfig_UnknownPreset(t *testing.T) {
	cmd := &cobra.Command{Use: "run"}
	addSimFlags(cmd)
	preset = "nope"
	defer func() { preset = "" }()
	if _, err := resolveConfig(cmd, []string{"block"}); err == nil {
		t.Error("expected unknown preset error")
	}
}

func TestSetupLogging(t *testing.T) {
	if err := setupLogging("debug", "json"); err != nil {
		t.Error(err)
	}
	if err := setupLogging("loud", "text"); err == nil {
		t.Error("expected level error")
	}
	if err := setupLogging("info", "xml"); err == nil {
		t.Error("expected format error")
	}
}
