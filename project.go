package goldenscript

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// ProjectConfig holds convention-based configuration for a directory of
// golden scripts: where they live, whether generate mode is on by
// default, and how verbosely to log. It is loaded from goldenscript.toml
// if present, falling back to conventional defaults otherwise.
type ProjectConfig struct {
	// Dir is the directory scripts are discovered under. Defaults to the
	// config file's own directory.
	Dir string `toml:"dir"`
	// Pattern is a filepath.Match glob applied to file names within Dir.
	// Defaults to "*.golden".
	Pattern string `toml:"pattern"`
	// Update, when true, makes Generate mode the default for the CLI
	// instead of Run mode.
	Update bool `toml:"update"`
	// LogLevel names a zerolog level ("debug", "info", "warn", "error").
	// Defaults to "info".
	LogLevel string `toml:"log_level"`
}

const (
	defaultPattern  = "*.golden"
	defaultLogLevel = "info"
	configFileName  = "goldenscript.toml"
)

// LoadProjectConfig loads configuration for the scripts under dir. It
// reads goldenscript.toml if present and fills in any fields left unset
// with the package's conventional defaults. All paths in the returned
// config are absolute.
func LoadProjectConfig(dir string) (*ProjectConfig, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve dir: %w", err)
	}

	cfg := &ProjectConfig{}

	configPath := filepath.Join(absDir, configFileName)
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", configFileName, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// No config file: every field keeps its zero value, filled in below.
	default:
		return nil, fmt.Errorf("read %s: %w", configFileName, err)
	}

	if cfg.Dir == "" {
		cfg.Dir = absDir
	} else if !filepath.IsAbs(cfg.Dir) {
		cfg.Dir = filepath.Join(absDir, cfg.Dir)
	}
	if cfg.Pattern == "" {
		cfg.Pattern = defaultPattern
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}

	return cfg, nil
}

// DiscoverScripts returns the absolute paths of every script matching the
// project's pattern under its Dir, sorted lexically.
func (cfg *ProjectConfig) DiscoverScripts() ([]string, error) {
	entries, err := os.ReadDir(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", cfg.Dir, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		matched, err := filepath.Match(cfg.Pattern, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", cfg.Pattern, err)
		}
		if matched {
			paths = append(paths, filepath.Join(cfg.Dir, entry.Name()))
		}
	}
	return paths, nil
}
