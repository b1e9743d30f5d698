package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// DirName is the per-user and per-project configuration directory.
	DirName = ".aoc"
	// FileName is the configuration file inside DirName.
	FileName = "config.toml"

	defaultSolutionsRoot = "Solutions"
	defaultSolversDir    = "solvers"
	defaultModulePath    = "github.com/aoc-runner/aoc"
	defaultOutput        = "table"
	defaultLogLevel      = "info"
	defaultLogMaxFiles   = 10
)

var (
	validOutputs   = []string{"table", "json", "yaml"}
	validLogLevels = []string{"debug", "info", "warn", "error"}
)

// Config stores runtime settings loaded from TOML files.
type Config struct {
	SolutionsRoot string
	SolversDir    string
	ModulePath    string
	Output        string
	LogLevel      string
	LogMaxFiles   int
	Telemetry     TelemetryConfig
}

// TelemetryConfig controls span export.
type TelemetryConfig struct {
	Enabled  bool
	Endpoint string
}

type fileConfig struct {
	SolutionsRoot *string    `toml:"solutions_root"`
	SolversDir    *string    `toml:"solvers_dir"`
	ModulePath    *string    `toml:"module_path"`
	Output        *string    `toml:"output"`
	LogLevel      *string    `toml:"log_level"`
	LogMaxFiles   *int       `toml:"log_max_files"`
	OTEL          *otelTable `toml:"otel"`
}

type otelTable struct {
	Enabled  *bool   `toml:"enabled"`
	Endpoint *string `toml:"endpoint"`
}

// Load reads config from ~/.aoc/config.toml and overlays a project-local .aoc/config.toml.
func Load(ctx context.Context) (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	workingDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	_ = ctx
	return LoadFiles(
		filepath.Join(homeDir, DirName, FileName),
		filepath.Join(workingDir, DirName, FileName),
	)
}

// LoadFiles applies each existing file over the defaults, in order.
func LoadFiles(paths ...string) (*Config, error) {
	cfg := Defaults()
	for _, path := range paths {
		if err := overlayFromFile(&cfg, path); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		SolutionsRoot: defaultSolutionsRoot,
		SolversDir:    defaultSolversDir,
		ModulePath:    defaultModulePath,
		Output:        defaultOutput,
		LogLevel:      defaultLogLevel,
		LogMaxFiles:   defaultLogMaxFiles,
	}
}

func overlayFromFile(cfg *Config, path string) error {
	if cfg == nil {
		return errors.New("config must not be nil")
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat config file %q: %w", path, err)
	}

	var decoded fileConfig
	meta, err := toml.DecodeFile(path, &decoded)
	if err != nil {
		return fmt.Errorf("decode config file %q: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("parse %s in %q: unsupported key", undecoded[0].String(), path)
	}

	if err := applyPathOverrides(cfg, decoded, path); err != nil {
		return err
	}
	if err := applyOutputOverrides(cfg, decoded, path); err != nil {
		return err
	}
	if err := applyLogOverrides(cfg, decoded, path); err != nil {
		return err
	}
	applyTelemetryOverrides(cfg, decoded)
	return nil
}

func applyPathOverrides(cfg *Config, decoded fileConfig, path string) error {
	if decoded.SolutionsRoot != nil {
		root := strings.TrimSpace(*decoded.SolutionsRoot)
		if root == "" {
			return fmt.Errorf("parse solutions_root in %q: must not be empty", path)
		}
		cfg.SolutionsRoot = root
	}
	if decoded.SolversDir != nil {
		dir := strings.TrimSpace(*decoded.SolversDir)
		if dir == "" {
			return fmt.Errorf("parse solvers_dir in %q: must not be empty", path)
		}
		cfg.SolversDir = dir
	}
	if decoded.ModulePath != nil {
		module := strings.TrimSpace(*decoded.ModulePath)
		if module == "" {
			return fmt.Errorf("parse module_path in %q: must not be empty", path)
		}
		cfg.ModulePath = module
	}
	return nil
}

func applyOutputOverrides(cfg *Config, decoded fileConfig, path string) error {
	if decoded.Output == nil {
		return nil
	}
	output := normalizeKey(*decoded.Output)
	if !contains(validOutputs, output) {
		return fmt.Errorf("parse output in %q: must be one of %s", path, strings.Join(validOutputs, ", "))
	}
	cfg.Output = output
	return nil
}

func applyLogOverrides(cfg *Config, decoded fileConfig, path string) error {
	if decoded.LogLevel != nil {
		level := normalizeKey(*decoded.LogLevel)
		if !contains(validLogLevels, level) {
			return fmt.Errorf("parse log_level in %q: must be one of %s", path, strings.Join(validLogLevels, ", "))
		}
		cfg.LogLevel = level
	}
	if decoded.LogMaxFiles != nil {
		if *decoded.LogMaxFiles <= 0 {
			return fmt.Errorf("parse log_max_files in %q: must be > 0", path)
		}
		cfg.LogMaxFiles = *decoded.LogMaxFiles
	}
	return nil
}

func applyTelemetryOverrides(cfg *Config, decoded fileConfig) {
	if decoded.OTEL == nil {
		return
	}
	if decoded.OTEL.Endpoint != nil {
		cfg.Telemetry.Endpoint = strings.TrimSpace(*decoded.OTEL.Endpoint)
		cfg.Telemetry.Enabled = cfg.Telemetry.Endpoint != ""
	}
	if decoded.OTEL.Enabled != nil {
		cfg.Telemetry.Enabled = *decoded.OTEL.Enabled
	}
}

func normalizeKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func contains(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
