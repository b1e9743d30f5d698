package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	chdir(t, work)

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.SolutionsRoot != defaultSolutionsRoot {
		t.Fatalf("solutions_root = %q, want %q", cfg.SolutionsRoot, defaultSolutionsRoot)
	}
	if cfg.SolversDir != defaultSolversDir {
		t.Fatalf("solvers_dir = %q, want %q", cfg.SolversDir, defaultSolversDir)
	}
	if cfg.ModulePath != defaultModulePath {
		t.Fatalf("module_path = %q, want %q", cfg.ModulePath, defaultModulePath)
	}
	if cfg.Output != defaultOutput {
		t.Fatalf("output = %q, want %q", cfg.Output, defaultOutput)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Fatalf("log_level = %q, want %q", cfg.LogLevel, defaultLogLevel)
	}
	if cfg.LogMaxFiles != defaultLogMaxFiles {
		t.Fatalf("log_max_files = %d, want %d", cfg.LogMaxFiles, defaultLogMaxFiles)
	}
	if cfg.Telemetry.Enabled {
		t.Fatal("telemetry should be disabled by default")
	}
}

func TestLoadOverlayProjectOverHome(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)

	writeFile(t, filepath.Join(home, DirName, FileName), `
solutions_root = "Puzzles"
output = "json"
log_level = "DEBUG"

[otel]
endpoint = "http://collector:4318"
`)

	writeFile(t, filepath.Join(work, DirName, FileName), `
output = "yaml"
log_max_files = 3
module_path = "example.com/me/aoc"
`)
	chdir(t, work)

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.SolutionsRoot != "Puzzles" {
		t.Fatalf("solutions_root = %q, want Puzzles", cfg.SolutionsRoot)
	}
	if cfg.Output != "yaml" {
		t.Fatalf("output = %q, want yaml", cfg.Output)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log_level = %q, want debug", cfg.LogLevel)
	}
	if cfg.LogMaxFiles != 3 {
		t.Fatalf("log_max_files = %d, want 3", cfg.LogMaxFiles)
	}
	if cfg.ModulePath != "example.com/me/aoc" {
		t.Fatalf("module_path = %q", cfg.ModulePath)
	}
	if !cfg.Telemetry.Enabled || cfg.Telemetry.Endpoint != "http://collector:4318" {
		t.Fatalf("telemetry = %+v, want enabled collector endpoint", cfg.Telemetry)
	}
}

func TestLoadTelemetryExplicitlyDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, `
[otel]
endpoint = "http://collector:4318"
enabled = false
`)

	cfg, err := LoadFiles(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Telemetry.Enabled {
		t.Fatal("telemetry should be disabled")
	}
	if cfg.Telemetry.Endpoint != "http://collector:4318" {
		t.Fatalf("endpoint = %q", cfg.Telemetry.Endpoint)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "bad output", content: `output = "xml"`, wantErr: "output"},
		{name: "bad log level", content: `log_level = "loud"`, wantErr: "log_level"},
		{name: "non-positive log files", content: `log_max_files = 0`, wantErr: "log_max_files"},
		{name: "empty root", content: `solutions_root = "  "`, wantErr: "solutions_root"},
		{name: "unknown key", content: `colour = "red"`, wantErr: "colour"},
		{name: "malformed toml", content: `output = `, wantErr: "decode config file"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			writeFile(t, path, tc.content)

			_, err := LoadFiles(path)
			if err == nil {
				t.Fatalf("expected error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %v, want substring %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadFilesIgnoresMissingPaths(t *testing.T) {
	cfg, err := LoadFiles(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SolutionsRoot != defaultSolutionsRoot {
		t.Fatalf("solutions_root = %q", cfg.SolutionsRoot)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	t.Cleanup(func() {
		if chdirErr := os.Chdir(cwd); chdirErr != nil {
			t.Fatalf("restore cwd: %v", chdirErr)
		}
	})
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(strings.TrimSpace(content)+"\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
}
