package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func TestBuildDefaults(t *testing.T) {
	cfg, err := Build("", nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if cfg.RawDataDir != filepath.Join("data", "raw") {
		t.Errorf("unexpected raw dir: %s", cfg.RawDataDir)
	}
	if cfg.ProcessedDataDir != filepath.Join("data", "processed") {
		t.Errorf("unexpected processed dir: %s", cfg.ProcessedDataDir)
	}
}

func TestBuildEnvOverride(t *testing.T) {
	t.Setenv("LOBBYVIEW_RAW_DATA_DIR", "/tmp/elsewhere")

	cfg, err := Build("", nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if cfg.RawDataDir != "/tmp/elsewhere" {
		t.Errorf("env override ignored, got %s", cfg.RawDataDir)
	}
}

func TestBuildFlagOverride(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("raw-dir", "", "")
	flags.String("processed-dir", "", "")
	if err := flags.Parse([]string{"--raw-dir", "/tmp/from-flag"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Build("", flags)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if cfg.RawDataDir != "/tmp/from-flag" {
		t.Errorf("flag override ignored, got %s", cfg.RawDataDir)
	}
	// processed-dir was not passed, so the default must survive.
	if cfg.ProcessedDataDir != filepath.Join("data", "processed") {
		t.Errorf("untouched flag clobbered the default: %s", cfg.ProcessedDataDir)
	}
}

func TestBuildConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lobbyview.yaml")
	content := "raw_data_dir: /srv/data/raw\nprocessed_data_dir: /srv/data/processed\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Build(path, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if cfg.RawDataDir != "/srv/data/raw" || cfg.ProcessedDataDir != "/srv/data/processed" {
		t.Errorf("config file ignored: %+v", cfg)
	}
}

func TestBuildMissingExplicitConfigFile(t *testing.T) {
	_, err := Build(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	if err == nil {
		t.Fatal("an explicitly named but missing config file should be an error")
	}
}

func TestPaths(t *testing.T) {
	cfg := &Config{RawDataDir: "raw", ProcessedDataDir: "out"}
	if cfg.ReportsPath() != filepath.Join("raw", "reports.csv") {
		t.Errorf("unexpected reports path: %s", cfg.ReportsPath())
	}
	if cfg.ClientsPath() != filepath.Join("raw", "clients.csv") {
		t.Errorf("unexpected clients path: %s", cfg.ClientsPath())
	}
	if cfg.OutputPath() != filepath.Join("out", "lobbying_clean.csv") {
		t.Errorf("unexpected output path: %s", cfg.OutputPath())
	}
}
