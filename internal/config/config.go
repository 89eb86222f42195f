// Package config resolves tasklist settings from defaults, an optional TOML
// file and TASKLIST_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	DBPath        string `toml:"db_path"`
	LogFile       string `toml:"log_file"`
	LogLevel      string `toml:"log_level"`
	MarkdownStyle string `toml:"markdown_style"`
}

const (
	defaultConfigPath    = "~/.config/tasklist/config.toml"
	defaultDBPath        = "~/.local/share/tasklist/tasklist.db"
	defaultLogFile       = "~/.local/state/tasklist/tasklist.log"
	defaultLogLevel      = "info"
	defaultMarkdownStyle = "dark"
)

func Default() Config {
	return Config{
		DBPath:        defaultDBPath,
		LogFile:       defaultLogFile,
		LogLevel:      defaultLogLevel,
		MarkdownStyle: defaultMarkdownStyle,
	}
}

// DefaultPath returns the config file consulted when no path is given.
func DefaultPath() string {
	return defaultConfigPath
}

// Load reads the config file at path (or the default location), applies env
// overrides and expands ~ in paths. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := strings.TrimSpace(path) != ""
	resolved, err := expandPath(path)
	if !explicit {
		resolved, err = expandPath(defaultConfigPath)
	}
	if err != nil {
		return Config{}, err
	}

	raw, err := os.ReadFile(resolved)
	switch {
	case err == nil:
		var fileCfg Config
		if err := toml.Unmarshal(raw, &fileCfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", resolved, err)
		}
		cfg = merge(cfg, fileCfg)
	case errors.Is(err, os.ErrNotExist):
		if explicit {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg = FromEnv(cfg)
	return cfg.expand()
}

// FromEnv overlays TASKLIST_* environment variables on base.
func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnv("TASKLIST_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnv("TASKLIST_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnv("TASKLIST_LOG_LEVEL"); ok {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := getEnv("TASKLIST_MARKDOWN_STYLE"); ok {
		cfg.MarkdownStyle = v
	}
	return cfg
}

// Override applies non-empty values from flags on top of c.
func (c Config) Override(over Config) (Config, error) {
	return merge(c, over).expand()
}

func merge(base, over Config) Config {
	out := base
	if s := strings.TrimSpace(over.DBPath); s != "" {
		out.DBPath = s
	}
	if s := strings.TrimSpace(over.LogFile); s != "" {
		out.LogFile = s
	}
	if s := strings.TrimSpace(over.LogLevel); s != "" {
		out.LogLevel = strings.ToLower(s)
	}
	if s := strings.TrimSpace(over.MarkdownStyle); s != "" {
		out.MarkdownStyle = s
	}
	return out
}

func (c Config) expand() (Config, error) {
	db, err := expandPath(c.DBPath)
	if err != nil {
		return Config{}, fmt.Errorf("db path: %w", err)
	}
	c.DBPath = db
	// An empty log file disables logging, so it is left alone.
	if strings.TrimSpace(c.LogFile) != "" {
		logFile, err := expandPath(c.LogFile)
		if err != nil {
			return Config{}, fmt.Errorf("log file: %w", err)
		}
		c.LogFile = logFile
	}
	return c, nil
}

func getEnv(name string) (string, bool) {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(raw), true
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if trimmed == ":memory:" {
		return trimmed, nil
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
