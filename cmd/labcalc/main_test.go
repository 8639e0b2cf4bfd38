package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/labcalc/internal/config"
	"github.com/san-kum/labcalc/internal/decimal"
	"gopkg.in/yaml.v3"
)

func resetGlobals(t *testing.T) {
	t.Helper()
	configFile, preset, theme = "", "", ""
	t.Cleanup(func() {
		configFile, preset, theme = "", "", ""
		_ = config.DefaultConfig().Apply()
	})
}

func effectiveConfig(t *testing.T, args ...string) *config.Config {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(append([]string{"config", "--log-mode", "off"}, args...))
	if err := root.Execute(); err != nil {
		t.Fatalf("config %v: %v", args, err)
	}
	var cfg config.Config
	if err := yaml.Unmarshal(out.Bytes(), &cfg); err != nil {
		t.Fatalf("decode %q: %v", out.String(), err)
	}
	return &cfg
}

func TestSettings_Defaults(t *testing.T) {
	resetGlobals(t)
	cfg := effectiveConfig(t)
	if cfg.Precision != 28 || cfg.Dimensions != "strict" || cfg.Format != "plain" {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestSettings_Precedence(t *testing.T) {
	resetGlobals(t)

	path := filepath.Join(t.TempDir(), "labcalc.yaml")
	if err := os.WriteFile(path, []byte("precision: 10\nformat: latex\ndimensions: legacy\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LABCALC_FORMAT", "macro")

	cfg := effectiveConfig(t, "--config", path, "--precision", "12")
	if cfg.Precision != 12 {
		t.Errorf("flag should win: precision = %d", cfg.Precision)
	}
	if cfg.Format != "macro" {
		t.Errorf("environment should beat the file: format = %s", cfg.Format)
	}
	if cfg.Dimensions != "legacy" {
		t.Errorf("file should beat defaults: dimensions = %s", cfg.Dimensions)
	}
	if decimal.CurrentContext().Precision != 12 {
		t.Errorf("settings were not applied: %+v", decimal.CurrentContext())
	}
}

func TestSettings_Preset(t *testing.T) {
	resetGlobals(t)
	cfg := effectiveConfig(t, "--preset", "quick")
	if cfg.Precision != 6 || cfg.Rounding != "half_up" {
		t.Errorf("preset not applied: %+v", cfg)
	}
}

func TestSettings_Invalid(t *testing.T) {
	resetGlobals(t)
	for _, args := range [][]string{
		{"--preset", "nope"},
		{"--rounding", "banker"},
		{"--config", filepath.Join(t.TempDir(), "missing.yaml")},
	} {
		root := newRootCmd()
		root.SetOut(&bytes.Buffer{})
		root.SetArgs(append([]string{"config", "--log-mode", "off"}, args...))
		if err := root.Execute(); err == nil {
			t.Errorf("expected error for %v", args)
		}
		configFile, preset = "", ""
	}
}

func TestRunCommand_Save(t *testing.T) {
	resetGlobals(t)
	save = false
	t.Cleanup(func() { save = false })

	dir := t.TempDir()
	sheet := filepath.Join(dir, "sheet.yaml")
	body := strings.Join([]string{
		"name: rods",
		"measurements:",
		"  - name: l",
		"    values: [\"1.20\", \"1.22\", \"1.21\"]",
		"    uncertainty: \"0.01\"",
		"    unit: m",
		"steps:",
		"  - name: mean_l",
		"    op: mean",
		"    args: [l]",
	}, "\n")
	if err := os.WriteFile(sheet, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	root := newRootCmd()
	root.SetArgs([]string{"run", sheet, "--save", "--data", filepath.Join(dir, "runs"), "--log-mode", "off"})
	if err := root.Execute(); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "runs"))
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one saved run, got %v (%v)", entries, err)
	}
}

func TestConfigCommand_SaveAndCheck(t *testing.T) {
	resetGlobals(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "saved.yaml")

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"config", "--log-mode", "off", "--preset", "quick", "--save", path})
	if err := root.Execute(); err != nil {
		t.Fatalf("config --save: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load saved config: %v", err)
	}
	if cfg.Precision != 6 || cfg.Rounding != "half_up" || cfg.LogMode != "off" {
		t.Errorf("saved config = %+v", cfg)
	}
	preset = ""

	var out bytes.Buffer
	root = newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"config", "--log-mode", "off", "--check", path})
	if err := root.Execute(); err != nil {
		t.Fatalf("config --check: %v", err)
	}
	if !strings.Contains(out.String(), "ok") {
		t.Errorf("check output = %q", out.String())
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("rounding: banker\n"), 0644); err != nil {
		t.Fatal(err)
	}
	root = newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"config", "--log-mode", "off", "--check", bad})
	if err := root.Execute(); err == nil {
		t.Error("expected --check to reject an invalid rounding mode")
	}
}

func TestTheme_Unknown(t *testing.T) {
	resetGlobals(t)
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"config", "--log-mode", "off", "--theme", "neon"})
	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "cyberpunk") {
		t.Errorf("expected unknown theme error listing the themes, got %v", err)
	}
}

func TestRunCommand_PartialFailure(t *testing.T) {
	resetGlobals(t)
	save = false
	t.Cleanup(func() { save = false })

	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(good, []byte("name: good\nmeasurements:\n  - name: x\n    value: \"2\"\n    unit: m\nsteps:\n  - name: y\n    op: pow\n    args: [x, \"2.0\"]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("name: bad\nmeasurements:\n  - name: x\n    value: \"2\"\nsteps:\n  - name: y\n    op: div\n    args: [x, \"0\"]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	root := newRootCmd()
	root.SetArgs([]string{"run", good, bad, "--save", "--data", filepath.Join(dir, "runs"), "--log-mode", "off"})
	if err := root.Execute(); err == nil || !strings.Contains(err.Error(), "bad") {
		t.Fatalf("expected the bad sheet's error, got %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "runs"))
	if err != nil || len(entries) != 1 {
		t.Fatalf("the good sheet should still be saved, got %v (%v)", entries, err)
	}
}
